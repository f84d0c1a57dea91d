package numeric

import (
	"fmt"
	"math"
	"strings"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

// vector reads a field holding one row of numbers.
func vector(in *engine.Input, name string, size int) []float64 {
	m := in.Matrix(name)
	if m == nil {
		return nil
	}
	v := m.Flatten()
	if size > 0 && len(v) != size {
		in.Reject(name, fmt.Errorf("expected %d components, got %d", size, len(v)))
		return nil
	}
	return v
}

// pair reads the vectors u and v and checks they have the same length.
func pair(in *engine.Input, size int) (u, v []float64) {
	u, v = vector(in, "u", size), vector(in, "v", size)
	if u != nil && v != nil && len(u) != len(v) {
		in.Reject("v", fmt.Errorf("u has %d components but v has %d", len(u), len(v)))
	}
	return u, v
}

func angled(v []float64, format func(float64) string) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = format(x)
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

func dot(u, v []float64) float64 {
	var s float64
	for i := range u {
		s += u[i] * v[i]
	}
	return s
}

func norm(v []float64) float64 { return math.Sqrt(dot(v, v)) }

// dotLines shows u.v expanded term by term.
func dotLines(u, v []float64) []string {
	products := make([]string, len(u))
	values := make([]string, len(u))
	for i := range u {
		products[i] = fmt.Sprintf("(%s*%s)", num(u[i]), paren(v[i]))
		values[i] = paren(u[i] * v[i])
	}
	return []string{
		"u.v = " + strings.Join(products, " + "),
		"    = " + strings.Join(values, " + "),
		"    = " + num(dot(u, v)),
	}
}

// Dot computes the dot product.
func Dot(in *engine.Input) engine.Result {
	u, v := pair(in, 0)
	const title = "Dot Product"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Lines("Vectors", "u = "+angled(u, num), "v = "+angled(v, num))
	n.Lines("Multiply matching components and add", dotLines(u, v)...)
	return n.Step("Result", "u.v = %s", num(dot(u, v))).Result()
}

// Cross computes u x v by the determinant method.
func Cross(in *engine.Input) engine.Result {
	u, v := pair(in, 3)
	const title = "Cross Product"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	cx := u[1]*v[2] - u[2]*v[1]
	cy := u[2]*v[0] - u[0]*v[2]
	cz := u[0]*v[1] - u[1]*v[0]

	n := engine.Narrate(title)
	n.Lines("Vectors", "u = "+angled(u, num), "v = "+angled(v, num))
	n.Step("Formula (determinant method)", "u x v = i(u2v3 - u3v2) - j(u1v3 - u3v1) + k(u1v2 - u2v1)")
	n.Lines("Components",
		fmt.Sprintf("i: (%s*%s) - (%s*%s) = %s", num(u[1]), paren(v[2]), num(u[2]), paren(v[1]), num(cx)),
		fmt.Sprintf("j: -[(%s*%s) - (%s*%s)] = -[%s] = %s", num(u[0]), paren(v[2]), num(u[2]), paren(v[0]), num(u[0]*v[2]-u[2]*v[0]), num(cy)),
		fmt.Sprintf("k: (%s*%s) - (%s*%s) = %s", num(u[0]), paren(v[1]), num(u[1]), paren(v[0]), num(cz)))
	return n.Step("Result", "u x v = %s", angled([]float64{cx, cy, cz}, num)).Result()
}

// Angle finds the angle between u and v from cos(theta) = u.v / (|u||v|).
func Angle(in *engine.Input) engine.Result {
	u, v := pair(in, 0)
	const title = "Angle Between Vectors"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	nu, nv := norm(u), norm(v)
	n := engine.Narrate(title)
	n.Lines("Vectors", "u = "+angled(u, num), "v = "+angled(v, num))
	n.Lines("Dot product", dotLines(u, v)...)
	n.Lines("Magnitudes",
		fmt.Sprintf("|u| = sqrt(%s) = %s", num(dot(u, u)), engine.Fixed(nu, 4)),
		fmt.Sprintf("|v| = sqrt(%s) = %s", num(dot(v, v)), engine.Fixed(nv, 4)))
	if nu < eps || nv < eps {
		return n.Step("Conclusion", "A zero vector has no direction, so the angle is undefined.").Result()
	}
	c := math.Max(-1, math.Min(1, dot(u, v)/(nu*nv)))
	theta := math.Acos(c)
	n.Step("Cosine of the angle", "cos(theta) = u.v / (|u||v|) = %s / (%s * %s) = %s",
		num(dot(u, v)), engine.Fixed(nu, 4), engine.Fixed(nv, 4), engine.Fixed(c, 4))
	return n.Step("Result", "theta = arccos(%s) = %s radians (%s degrees)",
		engine.Fixed(c, 4), engine.Fixed(theta, 4), fixed2(theta*180/math.Pi)).Result()
}

// Projection computes proj_v(u) = (u.v / |v|^2) v.
func Projection(in *engine.Input) engine.Result {
	u, v := pair(in, 0)
	const title = "Projection of u onto v"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	vv := dot(v, v)
	n := engine.Narrate(title)
	n.Lines("Vectors", "u = "+angled(u, num), "v = "+angled(v, num))
	n.Step("Formula", "proj_v(u) = (u.v / |v|^2) v")
	n.Lines("Dot product", dotLines(u, v)...)
	n.Step("Squared length of v", "|v|^2 = v.v = %s", num(vv))
	if vv < eps {
		return n.Step("Conclusion", "v is the zero vector, so there is no direction to project onto.").Result()
	}
	k := dot(u, v) / vv
	proj := make([]float64, len(v))
	for i := range v {
		proj[i] = k * v[i]
	}
	n.Step("Scalar factor", "u.v / |v|^2 = %s / %s = %s", num(dot(u, v)), num(vv), engine.Fixed(k, 4))
	return n.Step("Result", "proj_v(u) = %s", angled(proj, fixed2)).Result()
}
