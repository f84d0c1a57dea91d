package symbolic

import (
	"errors"
	"fmt"
	"math"

	"github.com/Shy5ta/studentSuite/internal/cas"
	"github.com/Shy5ta/studentSuite/internal/engine"
)

var errOrder = errors.New("b must be greater than a")

var integralRules = map[string]string{
	"sinh": "∫ sinh(a*x + b) dx = cosh(a*x + b)/a + C",
	"cosh": "∫ cosh(a*x + b) dx = sinh(a*x + b)/a + C",
	"tanh": "∫ tanh(a*x + b) dx = log(cosh(a*x + b))/a + C",
}

// samplePoints are where two expressions are compared numerically.
var samplePoints = []float64{0.37, 1.3, 2.7, -0.8}

// sameFunction reports whether a and b agree at every sample point where
// both are defined, and at least one such point exists.
func sameFunction(a, b cas.Expr, v string) bool {
	compared := 0
	for _, x := range samplePoints {
		env := map[string]float64{v: x}
		fa, okA := cas.Evalf(a, env)
		fb, okB := cas.Evalf(b, env)
		if !okA || !okB {
			continue
		}
		if math.Abs(fa-fb) > 1e-9*(1+math.Abs(fa)) {
			return false
		}
		compared++
	}
	return compared > 0
}

// pole finds a point of [lo, hi] where f is unbounded or undefined. Removable
// zeros of a polynomial denominator are skipped.
func pole(f cas.Expr, lo, hi float64) (float64, bool) {
	_, den := cas.NumDen(f)
	if p, err := cas.PolyOf(den, "x"); err == nil && p.Degree() > 0 {
		for _, r := range p.RealRoots() {
			if r.Approx < lo-1e-12 || r.Approx > hi+1e-12 {
				continue
			}
			if r.Exact {
				if lim, err := cas.Limit(f, "x", r.Value, cas.Both); err == nil && lim.Exact() && finite(lim.Value) {
					continue
				}
			}
			return r.Approx, true
		}
	}
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, false
	}

	const samples = 1000
	xs := make([]float64, samples+1)
	ys := make([]float64, samples+1)
	for i := range xs {
		x := lo + (hi-lo)*float64(i)/samples
		y, ok := absAt(f, x)
		if !ok {
			return x, true
		}
		xs[i], ys[i] = x, y
	}

	// A pole between samples shows up as a local maximum of |f| that keeps
	// growing as its bracket narrows.
	for i := range xs {
		l, r := max(i-1, 0), min(i+1, samples)
		if ys[i] < ys[l] || ys[i] < ys[r] || (ys[i] == ys[l] && ys[i] == ys[r]) {
			continue
		}
		x, peak, ok := climb(f, xs[l], xs[r])
		if ok && peak <= 1e6*(1+ys[i]) {
			continue
		}
		span := 1e-9 * (hi - lo)
		switch {
		case x-lo < span:
			x = lo
		case hi-x < span:
			x = hi
		}
		return x, true
	}
	return 0, false
}

func absAt(f cas.Expr, x float64) (float64, bool) {
	y, ok := cas.Evalf(f, map[string]float64{"x": x})
	return math.Abs(y), ok
}

// climb maximises |f| on [a, b] by golden-section search. It reports false
// with the point where f stopped being defined.
func climb(f cas.Expr, a, b float64) (x, peak float64, ok bool) {
	const phi = 0.6180339887498949
	c, d := b-phi*(b-a), a+phi*(b-a)
	fc, okC := absAt(f, c)
	if !okC {
		return c, 0, false
	}
	fd, okD := absAt(f, d)
	if !okD {
		return d, 0, false
	}
	for i := 0; i < 100; i++ {
		if fc > fd {
			b, d, fd = d, c, fc
			c = b - phi*(b-a)
			if fc, ok = absAt(f, c); !ok {
				return c, 0, false
			}
		} else {
			a, c, fc = c, d, fd
			d = a + phi*(b-a)
			if fd, ok = absAt(f, d); !ok {
				return d, 0, false
			}
		}
	}
	if fc > fd {
		return c, fc, true
	}
	return d, fd, true
}

// realNowhere reports whether f has no real value at either end or the
// middle of [lo, hi].
func realNowhere(f cas.Expr, lo, hi float64) bool {
	for _, x := range []float64{lo, (lo + hi) / 2, hi} {
		if _, ok := cas.Evalf(f, map[string]float64{"x": x}); ok {
			return false
		}
	}
	return true
}

// Indefinite finds an antiderivative and checks it by differentiation.
func Indefinite(in *engine.Input) engine.Result {
	f := fn(in, "f", "x")
	const title = "Indefinite Integral"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	F, err := cas.Integrate(f, "x")
	if err != nil {
		return engine.Fail(title, err)
	}
	n := engine.Narrate(title)
	n.Step("Integral", "∫ %s dx", f)
	if sum, ok := f.(cas.Add); ok {
		var lines []string
		for _, t := range sum.Terms {
			if Ft, err := cas.Integrate(t, "x"); err == nil {
				lines = append(lines, fmt.Sprintf("∫ %s dx = %s", t, Ft))
			}
		}
		if len(lines) == len(sum.Terms) {
			n.Lines("Integrate term by term", lines...)
		}
	}
	if sameFunction(F.Diff("x"), f, "x") {
		n.Step("Check", "d/dx [%s] = %s", F, f)
	}
	return n.Step("Result", "F(x) = %s + C", F).Result()
}

// Definite evaluates the integral of f over [a, b] as F(b) - F(a).
func Definite(in *engine.Input) engine.Result {
	f, a, b := fn(in, "f", "x"), finitePoint(in, "a"), finitePoint(in, "b")
	const title = "Definite Integral"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Integral", "∫[%s, %s] %s dx", a, b, f)
	lo, hi := math.Min(value(a), value(b)), math.Max(value(a), value(b))
	if realNowhere(f, lo, hi) {
		return n.Step("Conclusion", "f is not real-valued on [%s, %s], so the integral has no real value",
			engine.Num(lo), engine.Num(hi)).Result()
	}
	if x, ok := pole(f, lo, hi); ok {
		return n.Step("Conclusion", "f is unbounded or undefined near x = %s, so this is an improper integral",
			engine.Num(x)).Result()
	}
	F, err := cas.Integrate(f, "x")
	if err != nil {
		return engine.Fail(title, err)
	}
	Fb, Fa := F.Sub("x", b), F.Sub("x", a)
	n.Step("Antiderivative", "F(x) = %s", F)
	n.Lines("Fundamental Theorem: F(b) - F(a)",
		fmt.Sprintf("F(%s) = %s", b, approx(Fb)),
		fmt.Sprintf("F(%s) = %s", a, approx(Fa)))
	return n.Step("Result", "∫[%s, %s] %s dx = %s", a, b, f, approx(minus(Fb, Fa))).Result()
}

// area integrates |h| over [a, b], splitting at the zeros of h inside the
// interval so regions below the axis count positively.
func area(n *engine.Narration, h cas.Expr, a, b cas.Expr) (cas.Expr, error) {
	F, err := cas.Integrate(h, "x")
	if err != nil {
		return nil, err
	}
	n.Step("Antiderivative", "F(x) = %s", F)
	cuts := rootsIn(h, "x", value(a), value(b))
	if len(cuts) > 0 {
		n.Step("Sign changes inside the interval", "x = %s", joinExprs(cuts, ", x = "))
	}

	ends := append(append([]cas.Expr{a}, cuts...), b)
	var pieces []cas.Expr
	var lines []string
	for i := 0; i+1 < len(ends); i++ {
		lo, hi := ends[i], ends[i+1]
		piece := minus(F.Sub("x", hi), F.Sub("x", lo))
		line := fmt.Sprintf("∫[%s, %s] = %s", lo, hi, approx(piece))
		if value(piece) < 0 {
			piece = cas.MulOf(cas.N(-1), piece)
			line += ", below the axis, counts as " + approx(piece)
		}
		lines = append(lines, line)
		pieces = append(pieces, piece)
	}
	n.Lines("Integrate each piece", lines...)
	return cas.AddOf(pieces...), nil
}

// AreaUnder computes the area between f(x) and the x-axis on [a, b].
func AreaUnder(in *engine.Input) engine.Result {
	f, a, b := fn(in, "f", "x"), finitePoint(in, "a"), finitePoint(in, "b")
	if in.Err() == nil && value(a) >= value(b) {
		in.Reject("b", errOrder)
	}
	const title = "Area Under Curve"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Region", "between y = %s and the x-axis for %s <= x <= %s", f, a, b)
	if realNowhere(f, value(a), value(b)) {
		return n.Step("Conclusion", "f is not real-valued on [%s, %s], so there is no area to measure", a, b).Result()
	}
	if x, ok := pole(f, value(a), value(b)); ok {
		return n.Step("Conclusion", "f is unbounded or undefined near x = %s, so the area is an improper integral",
			engine.Num(x)).Result()
	}
	total, err := area(n, f, a, b)
	if err != nil {
		return engine.Fail(title, err)
	}
	return n.Step("Result", "Area = %s square units", approx(total)).Result()
}

// AreaBetween computes the area enclosed by f and g on [a, b].
func AreaBetween(in *engine.Input) engine.Result {
	f, g := fn(in, "f", "x"), fn(in, "g", "x")
	a, b := interval(in, "interval")
	const title = "Area Between Curves"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	h := minus(f, g)
	n := engine.Narrate(title)
	n.Step("Curves", "y = %s and y = %s for %s <= x <= %s", f, g, a, b)
	n.Step("Difference", "f(x) - g(x) = %s", h)
	if x, ok := pole(h, value(a), value(b)); ok {
		return n.Step("Conclusion", "the curves are unbounded or undefined near x = %s", engine.Num(x)).Result()
	}
	total, err := area(n, h, a, b)
	if err != nil {
		return engine.Fail(title, err)
	}
	return n.Step("Result", "Area = %s square units", approx(total)).Result()
}

// VolumeDisk rotates the region under R(x) about the x-axis:
// V = pi * ∫ R(x)^2 dx.
func VolumeDisk(in *engine.Input) engine.Result {
	R := fn(in, "R", "x")
	a, b := interval(in, "interval")
	const title = "Volume of Revolution (Disk)"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	r2 := cas.PowOf(R, cas.N(2))
	n := engine.Narrate(title)
	n.Step("Formula", "V = pi * ∫[%s, %s] R(x)^2 dx", a, b)
	n.Step("Square the radius", "R(x)^2 = (%s)^2 = %s", R, r2)
	if x, ok := pole(r2, value(a), value(b)); ok {
		return n.Step("Conclusion", "R is unbounded or undefined near x = %s", engine.Num(x)).Result()
	}
	F, err := cas.Integrate(r2, "x")
	if err != nil {
		return engine.Fail(title, err)
	}
	inner := minus(F.Sub("x", b), F.Sub("x", a))
	n.Step("Integrate", "∫ %s dx = %s, so ∫[%s, %s] = %s", r2, F, a, b, approx(inner))
	return n.Step("Result", "V = %s cubic units", approx(cas.MulOf(cas.Pi, inner))).Result()
}

// ByParts integrates u*dv as u*v - ∫ v du for a given split.
func ByParts(in *engine.Input) engine.Result {
	f, u, dv := fn(in, "f", "x"), fn(in, "u", "x"), fn(in, "dv", "x")
	if in.Err() == nil && !sameFunction(cas.MulOf(u, dv), f, "x") {
		in.Reject("dv", fmt.Errorf("u * dv = %s does not match the integrand %s", cas.MulOf(u, dv), f))
	}
	const title = "Integration by Parts"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	v, du, rest, result, err := cas.IntegrateByParts(u, dv, "x")
	if err != nil {
		return engine.Fail(title, err)
	}
	n := engine.Narrate(title)
	n.Step("Integral", "∫ %s dx", f)
	n.Step("Formula", "∫ u dv = u*v - ∫ v du")
	n.Lines("Choose the parts",
		fmt.Sprintf("u = %s  =>  du = %s dx", u, du),
		fmt.Sprintf("dv = %s dx  =>  v = %s", dv, v))
	n.Lines("Apply the formula",
		fmt.Sprintf("= (%s)*(%s) - ∫ %s dx", u, v, cas.MulOf(v, du)),
		fmt.Sprintf("= %s - (%s)", cas.MulOf(u, v), rest))
	return n.Step("Result", "%s + C", result).Result()
}

// PartialFractions decomposes a rational function and integrates each term.
func PartialFractions(in *engine.Input) engine.Result {
	f := fn(in, "f", "x")
	const title = "Partial Fractions"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	pf, err := cas.Apart(f, "x")
	if err != nil {
		return engine.Fail(title, err)
	}
	n := engine.Narrate(title)
	n.Step("Integrate", "∫ %s dx", f)
	num, den := cas.NumDen(f)
	n.Lines("Numerator and denominator", "N(x) = "+num.String(), "D(x) = "+den.String())
	if pf.Quotient.Degree() >= 0 {
		n.Step("Polynomial part (long division)", "%s", pf.Quotient.Expr("x"))
	}
	n.Step("Decompose into partial fractions", "%s = %s", f, pf.Expr())
	return n.Step("Integrate each term", "%s + C", pf.Integrate()).Result()
}

// endpoint evaluates F at a bound, by a limit when the bound is infinite or
// F is undefined there.
func endpoint(F cas.Expr, bound cas.Expr, dir cas.Direction) (cas.Expr, string, error) {
	if infinite(bound) {
		dir = cas.Both
	} else if v := F.Sub("x", bound); finite(v) {
		return v, fmt.Sprintf("F(%s) = %s", bound, approx(v)), nil
	}
	r, err := cas.Limit(F, "x", bound, dir)
	if err != nil {
		return nil, "", err
	}
	if !r.Exact() {
		return fromFloat(r.Approx), fmt.Sprintf("lim(x->%s%s) F(x) %s", bound, dir, r), nil
	}
	return r.Value, fmt.Sprintf("lim(x->%s%s) F(x) = %s", bound, dir, approx(r.Value)), nil
}

// Improper evaluates an integral with an infinite bound or an integrand
// that is unbounded at an endpoint, reporting convergence.
func Improper(in *engine.Input) engine.Result {
	f, a, b := fn(in, "f", "x"), in.Point("a"), in.Point("b")
	if in.Err() == nil && value(a) >= value(b) {
		in.Reject("b", errOrder)
	}
	const title = "Improper Integral"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Integral", "∫[%s, %s] %s dx", a, b, f)
	lo, hi := value(a), value(b)
	inward := func(x, toward float64) float64 {
		if math.IsInf(x, 0) {
			return x
		}
		return math.Nextafter(x, toward)
	}
	in0, in1 := inward(lo, hi), inward(hi, lo)
	if x, ok := pole(f, in0, in1); ok && x > in0 && x < in1 {
		return n.Step("Conclusion", "f is unbounded near x = %s inside the interval; split the integral there",
			engine.Num(x)).Result()
	}
	F, err := cas.Integrate(f, "x")
	if err != nil {
		return engine.Fail(title, err)
	}
	n.Step("Antiderivative", "F(x) = %s", F)
	n.Step("Set up the limit", "∫[%s, %s] f dx = lim F(x) at %s minus lim F(x) at %s", a, b, b, a)

	Fb, lineB, errB := endpoint(F, b, cas.FromBelow)
	Fa, lineA, errA := endpoint(F, a, cas.FromAbove)
	if errB != nil || errA != nil {
		return n.Step("Result", "the limit does not exist, so the integral DIVERGES").Result()
	}
	n.Lines("Evaluate at the bounds", lineB, lineA)
	if infinite(Fb) || infinite(Fa) {
		return n.Step("Result", "a bound gives an infinite value, so the integral DIVERGES").Result()
	}
	total := minus(Fb, Fa)
	if !finite(total) {
		return n.Step("Result", "the value is not finite, so the integral DIVERGES").Result()
	}
	return n.Step("Result", "%s, so the integral CONVERGES", approx(total)).Result()
}

// HyperbolicIntegral integrates sinh, cosh and tanh expressions.
func HyperbolicIntegral(in *engine.Input) engine.Result {
	f := fn(in, "f", "x")
	const title = "Integral of Hyperbolic Functions"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	F, err := cas.Integrate(f, "x")
	if err != nil {
		return engine.Fail(title, err)
	}
	n := engine.Narrate(title)
	n.Step("Integral", "∫ %s dx", f)
	var rules []string
	for _, name := range funcsIn(f) {
		if r, ok := integralRules[name]; ok {
			rules = append(rules, r)
		}
	}
	if len(rules) > 0 {
		n.Lines("Rules", rules...)
	}
	return n.Step("Result", "%s + C", F).Result()
}
