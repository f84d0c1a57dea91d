package cas

import (
	"errors"
	"fmt"
)

var ErrNoAntiderivative = errors.New("cas: no closed-form antiderivative found")

const (
	maxIntegrateDepth = 6
	substitutionVar   = "_u"
)

// Integrate returns an antiderivative of e with respect to v, without the
// constant of integration.
func Integrate(e Expr, v string) (Expr, error) {
	return integrate(e, v, 0)
}

func integrate(e Expr, v string, depth int) (Expr, error) {
	if depth > maxIntegrateDepth {
		return nil, fmt.Errorf("%w: %s", ErrNoAntiderivative, e)
	}
	if _, ok := e.(Undefined); ok {
		return nil, fmt.Errorf("%w: integrand is undefined", ErrNoAntiderivative)
	}
	if !Has(e, v) {
		return MulOf(e, S(v)), nil
	}

	switch t := e.(type) {
	case Sym:
		return MulOf(Q(1, 2), PowOf(t, N(2))), nil
	case Add:
		parts := make([]Expr, 0, len(t.Terms))
		for _, term := range t.Terms {
			r, err := integrate(term, v, depth)
			if err != nil {
				return nil, err
			}
			parts = append(parts, r)
		}
		return AddOf(parts...), nil
	case Mul:
		var consts, deps []Expr
		for _, f := range t.Factors {
			if Has(f, v) {
				deps = append(deps, f)
			} else {
				consts = append(consts, f)
			}
		}
		if len(consts) > 0 {
			r, err := integrate(MulOf(deps...), v, depth)
			if err != nil {
				return nil, err
			}
			return MulOf(append(consts, r)...), nil
		}
	case Pow:
		if r, ok := integratePow(t, v); ok {
			return r, nil
		}
	case Func:
		if r, ok := integrateFunc(t, v); ok {
			return r, nil
		}
	}

	if pf, err := Apart(e, v); err == nil {
		return pf.Integrate(), nil
	}
	if r, ok := integrateBySubstitution(e, v, depth); ok {
		return r, nil
	}
	if r, ok := integrateByParts(e, v, depth); ok {
		return r, nil
	}
	if ex := Expand(e); !Equal(ex, e) {
		return integrate(ex, v, depth+1)
	}
	return nil, fmt.Errorf("%w: %s", ErrNoAntiderivative, e)
}

func integratePow(p Pow, v string) (Expr, bool) {
	if !Has(p.Exp, v) {
		if a, _, ok := LinearCoeffs(p.Base, v); ok {
			if isNumValue(p.Exp, -1, 1) {
				return MulOf(PowOf(a, N(-1)), FuncOf("log", FuncOf("abs", p.Base))), true
			}
			n1 := AddOf(p.Exp, N(1))
			return MulOf(PowOf(MulOf(a, n1), N(-1)), PowOf(p.Base, n1)), true
		}
		if isNumValue(p.Exp, -1, 2) {
			// (c - k*v^2)^(-1/2) = asin(v*sqrt(k/c))/sqrt(k)
			if cs, ok := PolyCoeffs(p.Base, v); ok && len(cs) == 3 && isZero(cs[1]) {
				c, cok := cs[0].(Num)
				k, kok := cs[2].(Num)
				if cok && kok && c.Sign() > 0 && k.Sign() < 0 {
					kk := MulOf(N(-1), k)
					arg := MulOf(S(v), PowOf(MulOf(kk, PowOf(c, N(-1))), Q(1, 2)))
					return MulOf(PowOf(kk, Q(-1, 2)), FuncOf("asin", arg)), true
				}
			}
		}
		if f, ok := p.Base.(Func); ok && isNumValue(p.Exp, -2, 1) {
			if a, _, ok := LinearCoeffs(f.Arg, v); ok {
				inv := PowOf(a, N(-1))
				switch f.Name {
				case "cos":
					return MulOf(inv, FuncOf("tan", f.Arg)), true
				case "cosh":
					return MulOf(inv, FuncOf("tanh", f.Arg)), true
				case "sin":
					return MulOf(N(-1), inv, PowOf(FuncOf("tan", f.Arg), N(-1))), true
				}
			}
		}
		return nil, false
	}
	if !Has(p.Base, v) {
		if a, _, ok := LinearCoeffs(p.Exp, v); ok {
			return MulOf(p, PowOf(MulOf(a, FuncOf("log", p.Base)), N(-1))), true
		}
	}
	return nil, false
}

func integrateFunc(f Func, v string) (Expr, bool) {
	a, _, ok := LinearCoeffs(f.Arg, v)
	if !ok {
		return nil, false
	}
	u := f.Arg
	oneMinusU2 := AddOf(N(1), MulOf(N(-1), PowOf(u, N(2))))
	var F Expr
	switch f.Name {
	case "sin":
		F = MulOf(N(-1), FuncOf("cos", u))
	case "cos":
		F = FuncOf("sin", u)
	case "tan":
		F = MulOf(N(-1), FuncOf("log", FuncOf("abs", FuncOf("cos", u))))
	case "exp":
		F = f
	case "log":
		F = AddOf(MulOf(u, f), MulOf(N(-1), u))
	case "sinh":
		F = FuncOf("cosh", u)
	case "cosh":
		F = FuncOf("sinh", u)
	case "tanh":
		F = FuncOf("log", FuncOf("cosh", u))
	case "asin":
		F = AddOf(MulOf(u, f), PowOf(oneMinusU2, Q(1, 2)))
	case "acos":
		F = AddOf(MulOf(u, f), MulOf(N(-1), PowOf(oneMinusU2, Q(1, 2))))
	case "atan":
		F = AddOf(MulOf(u, f), MulOf(Q(-1, 2), FuncOf("log", AddOf(PowOf(u, N(2)), N(1)))))
	case "abs":
		F = MulOf(Q(1, 2), u, f)
	default:
		return nil, false
	}
	return MulOf(PowOf(a, N(-1)), F), true
}

// integrateBySubstitution tries u = g(v) for each inner subexpression g,
// succeeding when e/g' can be written in u alone.
func integrateBySubstitution(e Expr, v string, depth int) (Expr, bool) {
	for _, u := range substitutionCandidates(e, v) {
		du := u.Diff(v)
		if isZero(du) {
			continue
		}
		q := Replace(MulOf(e, PowOf(du, N(-1))), u, S(substitutionVar))
		if Has(q, v) {
			continue
		}
		F, err := integrate(q, substitutionVar, depth+1)
		if err != nil {
			continue
		}
		return F.Sub(substitutionVar, u), true
	}
	return nil, false
}

func substitutionCandidates(e Expr, v string) []Expr {
	seen := make(map[string]bool)
	var out []Expr
	add := func(c Expr) {
		if !Has(c, v) {
			return
		}
		if _, ok := c.(Sym); ok {
			return
		}
		if _, _, linear := LinearCoeffs(c, v); linear {
			return
		}
		if k := c.String(); !seen[k] {
			seen[k] = true
			out = append(out, c)
		}
	}
	var walk func(Expr)
	walk = func(x Expr) {
		switch t := x.(type) {
		case Func:
			add(t.Arg)
			add(t)
		case Pow:
			add(t.Base)
		}
		for _, c := range children(x) {
			walk(c)
		}
	}
	walk(e)
	return out
}

// integrateByParts handles polynomial times one transcendental factor.
func integrateByParts(e Expr, v string, depth int) (Expr, bool) {
	m, ok := e.(Mul)
	if !ok {
		return nil, false
	}
	var polys []Expr
	var other Expr
	for _, f := range m.Factors {
		if _, err := PolyOf(f, v); err == nil {
			polys = append(polys, f)
			continue
		}
		if other != nil {
			return nil, false
		}
		other = f
	}
	if other == nil || len(polys) == 0 {
		return nil, false
	}

	poly := MulOf(polys...)
	u, dv := poly, other
	if f, ok := other.(Func); ok {
		switch f.Name {
		case "log", "atan", "asin", "acos":
			u, dv = other, poly
		}
	}

	vInt, err := integrate(dv, v, depth+1)
	if err != nil {
		return nil, false
	}
	rest, err := integrate(MulOf(vInt, u.Diff(v)), v, depth+1)
	if err != nil {
		return nil, false
	}
	return AddOf(MulOf(u, vInt), MulOf(N(-1), rest)), true
}

// IntegrateByParts applies u*v - integral(v du) for a caller-chosen split.
func IntegrateByParts(u, dv Expr, v string) (vInt, du, remaining, result Expr, err error) {
	vInt, err = Integrate(dv, v)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	du = u.Diff(v)
	remaining, err = Integrate(MulOf(vInt, du), v)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	result = AddOf(MulOf(u, vInt), MulOf(N(-1), remaining))
	return vInt, du, remaining, result, nil
}
