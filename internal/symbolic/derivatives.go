package symbolic

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Shy5ta/studentSuite/internal/cas"
	"github.com/Shy5ta/studentSuite/internal/engine"
)

const (
	maxOrder = 10
	// searchRadius bounds the numeric root search for non-polynomials.
	searchRadius = 10
)

// derivativeRules are the textbook rules shown for the functions present
// in an expression, written for an inner function u.
var derivativeRules = map[string]string{
	"sin":  "d/dx sin(u) = cos(u) * u'",
	"cos":  "d/dx cos(u) = -sin(u) * u'",
	"tan":  "d/dx tan(u) = u' / cos(u)^2",
	"exp":  "d/dx exp(u) = exp(u) * u'",
	"log":  "d/dx log(u) = u' / u",
	"asin": "d/dx asin(u) = u' / sqrt(1 - u^2)",
	"acos": "d/dx acos(u) = -u' / sqrt(1 - u^2)",
	"atan": "d/dx atan(u) = u' / (1 + u^2)",
	"sinh": "d/dx sinh(u) = cosh(u) * u'",
	"cosh": "d/dx cosh(u) = sinh(u) * u'",
	"tanh": "d/dx tanh(u) = u' / cosh(u)^2",
}

// funcsIn lists the function names used in e, sorted.
func funcsIn(e cas.Expr) []string {
	seen := map[string]bool{}
	var walk func(cas.Expr)
	walk = func(x cas.Expr) {
		switch t := x.(type) {
		case cas.Add:
			for _, c := range t.Terms {
				walk(c)
			}
		case cas.Mul:
			for _, c := range t.Factors {
				walk(c)
			}
		case cas.Pow:
			walk(t.Base)
			walk(t.Exp)
		case cas.Func:
			seen[t.Name] = true
			walk(t.Arg)
		}
	}
	walk(e)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// prime names the k-th derivative: f', f'', f''' then f^(k).
func prime(name string, k int) string {
	if k <= 3 {
		return name + strings.Repeat("'", k)
	}
	return fmt.Sprintf("%s^(%d)", name, k)
}

// Derivative differentiates f(x) term by term.
func Derivative(in *engine.Input) engine.Result {
	f := fn(in, "f", "x")
	const title = "Differentiation"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Function", "f(x) = %s", f)
	if sum, ok := f.(cas.Add); ok {
		lines := make([]string, len(sum.Terms))
		for i, t := range sum.Terms {
			lines[i] = fmt.Sprintf("d/dx [%s] = %s", t, t.Diff("x"))
		}
		n.Lines("Differentiate term by term", lines...)
	} else {
		n.Step("Apply differentiation rules", "f'(x) = d/dx [%s]", f)
	}
	return n.Step("Result", "f'(x) = %s", f.Diff("x")).Result()
}

// HigherDerivative differentiates f(x) repeatedly up to the given order.
func HigherDerivative(in *engine.Input) engine.Result {
	f, order := fn(in, "f", "x"), in.Int("order")
	if in.Err() == nil && (order < 1 || order > maxOrder) {
		in.Reject("order", fmt.Errorf("order must be between 1 and %d, got %d", maxOrder, order))
	}
	const title = "Higher Order Derivative"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Function", "f(x) = %s", f)
	d := f
	lines := make([]string, 0, order)
	for k := 1; k <= order; k++ {
		d = d.Diff("x")
		lines = append(lines, fmt.Sprintf("%s(x) = %s", prime("f", k), d))
	}
	n.Lines("Differentiate one order at a time", lines...)
	return n.Step("Result", "%s(x) = %s", prime("f", order), d).Result()
}

// Implicit finds dy/dx for F(x, y) = 0 as -Fx/Fy.
func Implicit(in *engine.Input) engine.Result {
	F := fn(in, "F", "x", "y")
	const title = "Implicit Differentiation"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	fx, fy := F.Diff("x"), F.Diff("y")
	n := engine.Narrate(title)
	n.Step("Equation", "%s = 0", F)
	n.Lines("Partial derivatives", "Fx = "+fx.String(), "Fy = "+fy.String())
	if cas.IsZero(fy) {
		return n.Step("Conclusion", "Fy = 0, so the equation does not define y as a function of x").Result()
	}
	n.Step("Formula", "dy/dx = -Fx / Fy")
	return n.Step("Result", "dy/dx = %s", cas.MulOf(cas.N(-1), over(fx, fy))).Result()
}

// TangentLine finds the tangent to f(x) at x = a.
func TangentLine(in *engine.Input) engine.Result {
	f, a := fn(in, "f", "x"), finitePoint(in, "a")
	const title = "Equation of Tangent Line"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Function", "f(x) = %s at x = %s", f, a)
	fa := f.Sub("x", a)
	if !finite(fa) {
		return n.Step("Conclusion", "f(%s) is undefined, so there is no tangent line there", a).Result()
	}
	n.Lines("Point of contact", fmt.Sprintf("f(%s) = %s", a, approx(fa)), fmt.Sprintf("point: (%s, %s)", a, fa))
	d := f.Diff("x")
	n.Step("Derivative (slope function)", "f'(x) = %s", d)
	m := d.Sub("x", a)
	if !finite(m) {
		return n.Step("Conclusion", "f'(%s) is undefined, so the tangent is vertical: x = %s", a, a).Result()
	}
	n.Step("Slope at the point", "m = f'(%s) = %s", a, approx(m))
	line := cas.AddOf(cas.MulOf(m, cas.S("x")), minus(fa, cas.MulOf(m, a)))
	return n.Lines("Point-slope form y - y1 = m(x - x1)",
		fmt.Sprintf("y - %s = %s(x - %s)", fa, m, a),
		"y = "+line.String()).Result()
}

// partial differentiates f(x, y) with respect to v.
func partial(in *engine.Input, v string) engine.Result {
	f := fn(in, "f", "x", "y")
	title := "Partial Derivative f" + v
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	other := "y"
	if v == "y" {
		other = "x"
	}
	n := engine.Narrate(title)
	n.Step("Function", "f(x,y) = %s", f)
	n.Step("Method", "differentiate with respect to %s, treating %s as a constant", v, other)
	return n.Step("Result", "df/d%s = %s", v, f.Diff(v)).Result()
}

// PartialX computes df/dx.
func PartialX(in *engine.Input) engine.Result { return partial(in, "x") }

// PartialY computes df/dy.
func PartialY(in *engine.Input) engine.Result { return partial(in, "y") }

// SecondPartials computes fxx, fyy and both mixed partials.
func SecondPartials(in *engine.Input) engine.Result {
	f := fn(in, "f", "x", "y")
	const title = "Second Order Partials"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	fx, fy := f.Diff("x"), f.Diff("y")
	fxx, fyy := fx.Diff("x"), fy.Diff("y")
	fxy, fyx := fx.Diff("y"), fy.Diff("x")
	n := engine.Narrate(title)
	n.Step("Function", "f(x,y) = %s", f)
	n.Lines("First partials", "fx = "+fx.String(), "fy = "+fy.String())
	n.Lines("Pure second partials", "fxx = "+fxx.String(), "fyy = "+fyy.String())
	n.Lines("Mixed partials", "fxy = (fx)_y = "+fxy.String(), "fyx = (fy)_x = "+fyx.String())
	if cas.Equal(cas.Expand(fxy), cas.Expand(fyx)) {
		return n.Step("Check", "fxy = fyx, as Clairaut's theorem predicts").Result()
	}
	return n.Step("Check", "fxy and fyx differ in form; compare them where both are continuous").Result()
}

// ruleDerivative differentiates f(x) after listing the rules for each
// function it uses.
func ruleDerivative(in *engine.Input, title string) engine.Result {
	f := fn(in, "f", "x")
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Function", "y = %s", f)
	var rules []string
	for _, name := range funcsIn(f) {
		if r, ok := derivativeRules[name]; ok {
			rules = append(rules, r)
		}
	}
	if len(rules) > 0 {
		n.Lines("Rules (chain rule with inner function u)", rules...)
	}
	return n.Step("Result", "dy/dx = %s", f.Diff("x")).Result()
}

// InverseTrigDerivative differentiates expressions built from asin, acos
// and atan.
func InverseTrigDerivative(in *engine.Input) engine.Result {
	return ruleDerivative(in, "Derivative of Inverse Trig Functions")
}

// HyperbolicDerivative differentiates expressions built from sinh, cosh
// and tanh.
func HyperbolicDerivative(in *engine.Input) engine.Result {
	return ruleDerivative(in, "Derivative of Hyperbolic Functions")
}

// rootsIn returns the zeros of g strictly inside (lo, hi). Polynomials are
// solved exactly; anything else is bisected.
func rootsIn(g cas.Expr, v string, lo, hi float64) []cas.Expr {
	const tol = 1e-9
	var out []cas.Expr
	if p, err := cas.PolyOf(g, v); err == nil {
		if p.Degree() <= 0 {
			return nil
		}
		for _, r := range p.RealRoots() {
			if r.Approx > lo+tol && r.Approx < hi-tol {
				if r.Exact {
					out = append(out, r.Value)
				} else {
					out = append(out, fromFloat(r.Approx))
				}
			}
		}
		return out
	}
	f := func(x float64) float64 { return g.Float(map[string]float64{v: x}) }
	for _, x := range cas.BisectAll(f, lo, hi, 4000) {
		if x > lo+tol && x < hi-tol {
			out = append(out, fromFloat(x))
		}
	}
	return out
}

func joinExprs(es []cas.Expr, sep string) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, sep)
}

// MeanValue finds every c in (a, b) with f'(c) = (f(b) - f(a)) / (b - a).
func MeanValue(in *engine.Input) engine.Result {
	f := fn(in, "f", "x")
	a, b := interval(in, "interval")
	const title = "Mean Value Theorem"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Function", "f(x) = %s on [%s, %s]", f, a, b)
	fa, fb := f.Sub("x", a), f.Sub("x", b)
	if !finite(fa) || !finite(fb) {
		return n.Step("Conclusion", "f is not defined at both endpoints, so the theorem does not apply").Result()
	}
	n.Lines("Endpoint values", fmt.Sprintf("f(%s) = %s", a, approx(fa)), fmt.Sprintf("f(%s) = %s", b, approx(fb)))
	slope := over(minus(fb, fa), minus(b, a))
	n.Step("Average rate of change", "(f(b) - f(a)) / (b - a) = (%s - %s) / (%s - %s) = %s", fb, fa, b, a, approx(slope))
	d := f.Diff("x")
	g := minus(d, slope)
	n.Step("Solve f'(c) = slope", "%s = %s", d, slope)
	cs := rootsIn(g, "x", value(a), value(b))
	if len(cs) == 0 {
		return n.Step("Result", "no c in (%s, %s) satisfies the equation; check that f is continuous and differentiable there", a, b).Result()
	}
	lines := make([]string, len(cs))
	for i, c := range cs {
		lines[i] = "c = " + approx(c)
	}
	return n.Lines("Result", lines...).Result()
}

// CriticalPoints solves f'(x) = 0 and classifies each root with the second
// derivative test.
func CriticalPoints(in *engine.Input) engine.Result {
	f := fn(in, "f", "x")
	const title = "Critical Points"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Function", "f(x) = %s", f)
	d := f.Diff("x")
	n.Step("First derivative", "f'(x) = %s", d)
	if cas.IsZero(d) {
		return n.Step("Result", "f is constant, so every point is critical").Result()
	}
	lo, hi := math.Inf(-1), math.Inf(1)
	if _, err := cas.PolyOf(d, "x"); err == nil {
		n.Step("Solve f'(x) = 0", "%s = 0", d)
	} else {
		lo, hi = -searchRadius, searchRadius
		n.Step("Solve f'(x) = 0", "%s = 0, searched numerically on [-%d, %d]", d, searchRadius, searchRadius)
	}
	roots := rootsIn(d, "x", lo, hi)
	if len(roots) == 0 {
		return n.Step("Result", "f'(x) is never 0, so f has no critical points").Result()
	}
	n.Step("Critical points", "x = %s", joinExprs(roots, ", x = "))

	dd := d.Diff("x")
	n.Step("Second derivative", "f''(x) = %s", dd)
	lines := make([]string, len(roots))
	for i, c := range roots {
		curv := dd.Sub("x", c)
		fc := f.Sub("x", c)
		var kind string
		switch v := value(curv); {
		case !finite(curv) || zero(curv):
			kind = "test inconclusive"
		case v < 0:
			kind = "local maximum"
		default:
			kind = "local minimum"
		}
		lines[i] = fmt.Sprintf("x = %s: f''(x) = %s, %s, f(x) = %s", c, approx(curv), kind, approx(fc))
	}
	return n.Lines("Second derivative test", lines...).Result()
}
