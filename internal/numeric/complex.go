package numeric

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

// complexField parses "3+2i", "1-4i", "-2i" or a plain real number.
func complexField(in *engine.Input, name string) complex128 {
	s := strings.ReplaceAll(in.Text(name), " ", "")
	s = strings.ReplaceAll(s, "j", "i")
	z, err := strconv.ParseComplex(s, 128)
	if err != nil {
		in.Reject(name, fmt.Errorf("%q is not a complex number like 3+2i", in.Text(name)))
		return 0
	}
	return z
}

// rect formats a + bi with dp decimals, or exactly when dp < 0.
func rect(z complex128, dp int) string {
	f := num
	if dp >= 0 {
		f = func(v float64) string { return engine.Fixed(v, dp) }
	}
	re, im := real(z), imag(z)
	if im < 0 {
		return f(re) + " - " + f(-im) + "i"
	}
	return f(re) + " + " + f(im) + "i"
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// ComplexArithmetic shows z1 + z2, z1 - z2, z1 * z2 and z1 / z2.
func ComplexArithmetic(in *engine.Input) engine.Result {
	z1, z2 := complexField(in, "z1"), complexField(in, "z2")
	const title = "Complex Arithmetic"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	a, b, c, d := real(z1), imag(z1), real(z2), imag(z2)
	n := engine.Narrate(title)
	n.Lines("Numbers", "z1 = "+rect(z1, -1), "z2 = "+rect(z2, -1))
	n.Step("Addition (add real and imaginary parts)", "z1 + z2 = (%s + %s) + (%s + %s)i = %s",
		num(a), paren(c), num(b), paren(d), rect(z1+z2, -1))
	n.Step("Subtraction", "z1 - z2 = (%s - %s) + (%s - %s)i = %s",
		num(a), paren(c), num(b), paren(d), rect(z1-z2, -1))
	n.Lines("Multiplication (expand, using i^2 = -1)",
		"z1 * z2 = (ac - bd) + (ad + bc)i",
		fmt.Sprintf("        = (%s*%s - %s*%s) + (%s*%s + %s*%s)i", num(a), paren(c), num(b), paren(d), num(a), paren(d), num(b), paren(c)),
		"        = "+rect(z1*z2, -1))

	den := c*c + d*d
	if den < eps {
		return n.Step("Division", "z2 = 0, so z1 / z2 is undefined.").Result()
	}
	q := z1 / z2
	return n.Lines("Division (multiply by the conjugate of z2)",
		fmt.Sprintf("z1 / z2 = z1 * conj(z2) / |z2|^2 = (%s) / %s", rect(z1*cmplx.Conj(z2), -1), num(den)),
		"        = "+rect(q, 2)).Result()
}

// Polar converts a + bi to r(cos(theta) + i sin(theta)).
func Polar(in *engine.Input) engine.Result {
	a, b := in.Float("a"), in.Float("b")
	const title = "Complex Polar Form"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	r := math.Hypot(a, b)
	n := engine.Narrate(title)
	n.Step("Number", "z = %s", rect(complex(a, b), -1))
	n.Lines("Modulus |z| = r",
		fmt.Sprintf("r = sqrt(a^2 + b^2) = sqrt(%s^2 + %s^2)", paren(a), paren(b)),
		fmt.Sprintf("r = sqrt(%s) = %s", num(a*a+b*b), engine.Fixed(r, 4)))
	if r < eps {
		return n.Step("Conclusion", "z = 0 has modulus 0 and no defined argument.").Result()
	}
	theta := math.Atan2(b, a)
	n.Lines("Argument theta (quadrant from the signs of a and b)",
		fmt.Sprintf("theta = atan2(%s, %s)", num(b), num(a)),
		fmt.Sprintf("theta = %s radians (%s degrees)", engine.Fixed(theta, 4), fixed2(degrees(theta))))
	return n.Step("Polar form", "z = %s(cos(%s°) + i*sin(%s°))", fixed2(r), fixed2(degrees(theta)), fixed2(degrees(theta))).Result()
}

// DeMoivre raises a + bi to an integer power with z^n = r^n (cos(n theta) + i sin(n theta)).
func DeMoivre(in *engine.Input) engine.Result {
	a, b, p := in.Float("a"), in.Float("b"), in.Int("n")
	const title = "De Moivre's Theorem"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	r := math.Hypot(a, b)
	theta := math.Atan2(b, a)
	n := engine.Narrate(title)
	n.Step("Calculate", "(%s)^%d", rect(complex(a, b), -1), p)
	if r < eps {
		if p <= 0 {
			return n.Step("Conclusion", "0 raised to a non-positive power is undefined.").Result()
		}
		return n.Step("Result", "0^%d = 0", p).Result()
	}
	n.Step("Convert to polar", "r = %s, theta = %s°", fixed2(r), fixed2(degrees(theta)))

	rn := math.Pow(r, float64(p))
	nt := float64(p) * theta
	n.Lines("Apply the theorem: z^n = r^n (cos(n*theta) + i*sin(n*theta))",
		fmt.Sprintf("r^%d = %s^%d = %s", p, engine.Fixed(r, 4), p, fixed2(rn)),
		fmt.Sprintf("angle = %d * %s° = %s°", p, fixed2(degrees(theta)), fixed2(degrees(nt))))

	re, im := rn*math.Cos(nt), rn*math.Sin(nt)
	n.Lines("Convert back to rectangular",
		fmt.Sprintf("Real = %s * cos(%s°) = %s", fixed2(rn), fixed2(degrees(nt)), fixed2(re)),
		fmt.Sprintf("Imag = %s * sin(%s°) = %s", fixed2(rn), fixed2(degrees(nt)), fixed2(im)))
	return n.Step("Result", "z^%d = %s", p, rect(complex(re, im), 2)).Result()
}
