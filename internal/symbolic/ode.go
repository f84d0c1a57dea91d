package symbolic

import (
	"fmt"
	"math"
	"strings"

	"github.com/Shy5ta/studentSuite/internal/cas"
	"github.com/Shy5ta/studentSuite/internal/engine"
)

// Constants of integration in printed solutions.
var (
	constC = cas.S("C")
	constA = cas.S("A")
)

// odeClass describes dy/dx = f(x, y).
type odeClass struct {
	separable   bool
	g, h        cas.Expr // f = g(x) * h(y)
	linear      bool
	p, q        cas.Expr // f = p(x) * y + q(x)
	bernoulli   bool
	power       cas.Expr // f = p(x) * y + q(x) * y^power
	homogeneous bool
	autonomous  bool
}

// equation reads "y' = f(x, y)" or "dy/dx = f(x, y)" and returns f.
func equation(in *engine.Input, name string) cas.Expr {
	f := in.Equation(name)
	for _, s := range cas.FreeSymbols(f) {
		if s != "x" && s != "y" {
			in.Reject(name, fmt.Errorf("the equation may only use x and y, found %s", s))
			break
		}
	}
	return f
}

func classify(f cas.Expr) odeClass {
	var c odeClass
	c.g, c.h, c.separable = cas.Separate(f, "x", "y")
	if p, q, ok := cas.LinearCoeffs(f, "y"); ok && !cas.Has(p, "y") && !cas.Has(q, "y") {
		c.linear, c.p, c.q = true, p, q
	}
	c.power, c.bernoulli = bernoulliPower(f)
	c.homogeneous = homogeneous(f)
	c.autonomous = !cas.Has(f, "x")
	return c
}

// yPower returns k when h is y^k for a rational k.
func yPower(h cas.Expr) (cas.Expr, bool) {
	switch t := h.(type) {
	case cas.Num:
		if t.Sign() != 0 {
			return cas.N(0), true
		}
	case cas.Sym:
		if t.Name == "y" {
			return cas.N(1), true
		}
	case cas.Pow:
		if s, ok := t.Base.(cas.Sym); ok && s.Name == "y" {
			if k, ok := t.Exp.(cas.Num); ok {
				return k, true
			}
		}
	}
	return nil, false
}

// bernoulliPower recognises p(x)*y + q(x)*y^n with n other than 0 and 1.
func bernoulliPower(f cas.Expr) (cas.Expr, bool) {
	terms := []cas.Expr{cas.Expand(f)}
	if sum, ok := terms[0].(cas.Add); ok {
		terms = sum.Terms
	}
	hasLinear := false
	var power cas.Expr
	for _, t := range terms {
		_, h, ok := cas.Separate(t, "x", "y")
		if !ok {
			return nil, false
		}
		k, ok := yPower(h)
		switch {
		case !ok || cas.IsZero(k):
			return nil, false
		case cas.Equal(k, cas.N(1)):
			hasLinear = true
		case power == nil || cas.Equal(power, k):
			power = k
		default:
			return nil, false
		}
	}
	return power, hasLinear && power != nil
}

// homogeneous checks f(tx, ty) = f(x, y) numerically with t = 2.
func homogeneous(f cas.Expr) bool {
	compared := 0
	for _, pt := range [][2]float64{{1.3, 0.7}, {2.1, -1.7}, {0.6, 2.4}} {
		a, okA := cas.Evalf(f, map[string]float64{"x": pt[0], "y": pt[1]})
		b, okB := cas.Evalf(f, map[string]float64{"x": 2 * pt[0], "y": 2 * pt[1]})
		if !okA || !okB {
			continue
		}
		if math.Abs(a-b) > 1e-9*(1+math.Abs(a)) {
			return false
		}
		compared++
	}
	return compared > 0
}

func (c odeClass) lines() []string {
	return []string{
		"separable g(x)*h(y): " + yesNo(c.separable),
		"first-order linear p(x)*y + q(x): " + yesNo(c.linear),
		"Bernoulli p(x)*y + q(x)*y^n: " + yesNo(c.bernoulli),
		"homogeneous f(tx, ty) = f(x, y): " + yesNo(c.homogeneous),
		"autonomous (no x): " + yesNo(c.autonomous),
	}
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

// coefficient splits e into a rational factor and the rest.
func coefficient(e cas.Expr) (cas.Expr, cas.Expr) {
	if m, ok := e.(cas.Mul); ok {
		if k, ok := m.Factors[0].(cas.Num); ok {
			return k, cas.MulOf(m.Factors[1:]...)
		}
	}
	return cas.N(1), e
}

// invert solves H(y) = rhs for y when H is k*y, k*log|y| or k*y^p. The
// log case absorbs the constant into A.
func invert(H, G cas.Expr) (cas.Expr, bool) {
	k, core := coefficient(H)
	rhs := over(cas.AddOf(G, constC), k)
	switch t := core.(type) {
	case cas.Sym:
		if t.Name == "y" {
			return rhs, true
		}
	case cas.Func:
		if t.Name != "log" {
			break
		}
		arg := t.Arg
		if abs, ok := arg.(cas.Func); ok && abs.Name == "abs" {
			arg = abs.Arg
		}
		if s, ok := arg.(cas.Sym); ok && s.Name == "y" {
			return cas.MulOf(constA, cas.FuncOf("exp", over(G, k))), true
		}
	case cas.Pow:
		if s, ok := t.Base.(cas.Sym); ok && s.Name == "y" && !cas.Has(t.Exp, "x") && !cas.Has(t.Exp, "y") {
			return cas.PowOf(rhs, cas.PowOf(t.Exp, cas.N(-1))), true
		}
	}
	return nil, false
}

// solveSeparable integrates dy/h(y) = g(x) dx.
func solveSeparable(n *engine.Narration, c odeClass) error {
	n.Lines("Separate the variables",
		fmt.Sprintf("dy/dx = (%s) * (%s)", c.g, c.h),
		fmt.Sprintf("g(x) = %s, h(y) = %s", c.g, c.h),
		"1/h(y) dy = g(x) dx")

	var steady []string
	if p, err := cas.PolyOf(c.h, "y"); err == nil && p.Degree() > 0 {
		for _, r := range p.RealRoots() {
			v := r.Value
			if !r.Exact {
				v = fromFloat(r.Approx)
			}
			steady = append(steady, "y = "+v.String())
		}
	}

	H, err := cas.Integrate(over(cas.N(1), c.h), "y")
	if err != nil {
		return err
	}
	G, err := cas.Integrate(c.g, "x")
	if err != nil {
		return err
	}
	n.Lines("Integrate both sides",
		fmt.Sprintf("∫ 1/(%s) dy = %s", c.h, H),
		fmt.Sprintf("∫ %s dx = %s", c.g, G))
	if len(steady) > 0 {
		n.Step("Constant solutions (h(y) = 0)", "%s", strings.Join(steady, ", "))
	}
	if y, ok := invert(H, G); ok {
		n.Step("Implicit solution", "%s = %s + C", H, G)
		n.Step("General solution", "y = %s", y)
		return nil
	}
	n.Step("General solution (implicit)", "%s = %s + C", H, G)
	return nil
}

// solveLinear applies the integrating factor to y' - p(x)y = q(x).
func solveLinear(n *engine.Narration, c odeClass) error {
	negP := cas.MulOf(cas.N(-1), c.p)
	n.Step("Standard linear form", "y' + (%s)y = %s", negP, c.q)
	P, err := cas.Integrate(negP, "x")
	if err != nil {
		return err
	}
	mu := cas.FuncOf("exp", P)
	n.Step("Integrating factor", "mu(x) = exp(∫ %s dx) = %s", negP, mu)
	I, err := cas.Integrate(cas.MulOf(mu, c.q), "x")
	if err != nil {
		return err
	}
	n.Lines("Multiply through and integrate",
		"(mu*y)' = mu*q",
		fmt.Sprintf("mu*y = ∫ %s dx = %s + C", cas.MulOf(mu, c.q), I))
	n.Step("General solution", "y = %s", over(cas.AddOf(I, constC), mu))
	return nil
}

// SeparableDE solves dy/dx = g(x)h(y) by separation of variables.
func SeparableDE(in *engine.Input) engine.Result {
	f := equation(in, "equation")
	const title = "Separable First-Order DE"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Standard form", "dy/dx = %s", f)
	c := classify(f)
	if !c.separable {
		var others []string
		for _, l := range c.lines()[1:] {
			if strings.HasSuffix(l, "YES") {
				others = append(others, strings.TrimSuffix(l, ": YES"))
			}
		}
		msg := "f(x, y) cannot be factored as g(x)*h(y)"
		if len(others) > 0 {
			msg += "; it is " + strings.Join(others, ", ")
		}
		return n.Step("Conclusion", "NOT SEPARABLE: %s", msg).Result()
	}
	if err := solveSeparable(n, c); err != nil {
		return engine.Fail(title, err)
	}
	return n.Result()
}

// SeparabilityCheck classifies a first-order equation and solves it by
// separation or, for linear equations, by an integrating factor.
func SeparabilityCheck(in *engine.Input) engine.Result {
	f := equation(in, "equation")
	const title = "Separability Check"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Step("Standard form", "dy/dx = %s", f)
	c := classify(f)
	n.Lines("Classification", c.lines()...)

	var err error
	switch {
	case c.separable:
		n.Step("RESULT: SEPARABLE", "f(x, y) factors as g(x)*h(y)")
		err = solveSeparable(n, c)
	case c.linear:
		n.Step("RESULT: NOT SEPARABLE", "f(x, y) cannot be factored as g(x)*h(y), but the equation is linear")
		err = solveLinear(n, c)
	default:
		reasons := []string{"f(x, y) cannot be factored as g(x)*h(y)"}
		if c.bernoulli {
			reasons = append(reasons, fmt.Sprintf("substitute v = y^(1 - %s) to make it linear", c.power))
		}
		if c.homogeneous {
			reasons = append(reasons, "substitute y = v*x to make it separable")
		}
		n.Lines("RESULT: NOT SEPARABLE", reasons...)
	}
	if err != nil {
		return engine.Fail(title, err)
	}
	return n.Result()
}
