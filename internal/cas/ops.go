package cas

import (
	"math"
	"sort"
)

// ============================================================================
// Traversal
// ============================================================================

func children(e Expr) []Expr {
	switch t := e.(type) {
	case Add:
		return t.Terms
	case Mul:
		return t.Factors
	case Pow:
		return []Expr{t.Base, t.Exp}
	case Func:
		return []Expr{t.Arg}
	}
	return nil
}

// mapChildren rebuilds e through the canonical constructors after applying
// f to each direct child.
func mapChildren(e Expr, f func(Expr) Expr) Expr {
	switch t := e.(type) {
	case Add:
		terms := make([]Expr, len(t.Terms))
		for i, c := range t.Terms {
			terms[i] = f(c)
		}
		return AddOf(terms...)
	case Mul:
		factors := make([]Expr, len(t.Factors))
		for i, c := range t.Factors {
			factors[i] = f(c)
		}
		return MulOf(factors...)
	case Pow:
		return PowOf(f(t.Base), f(t.Exp))
	case Func:
		return FuncOf(t.Name, f(t.Arg))
	}
	return e
}

// Has reports whether the symbol v occurs in e.
func Has(e Expr, v string) bool {
	if s, ok := e.(Sym); ok {
		return s.Name == v
	}
	for _, c := range children(e) {
		if Has(c, v) {
			return true
		}
	}
	return false
}

// FreeSymbols returns the sorted names of all symbols in e.
func FreeSymbols(e Expr) []string {
	seen := make(map[string]bool)
	var walk func(Expr)
	walk = func(x Expr) {
		if s, ok := x.(Sym); ok {
			seen[s.Name] = true
			return
		}
		for _, c := range children(x) {
			walk(c)
		}
	}
	walk(e)
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Replace substitutes every occurrence of the subexpression target.
func Replace(e, target, with Expr) Expr {
	if Equal(e, target) {
		return with
	}
	return mapChildren(e, func(c Expr) Expr { return Replace(c, target, with) })
}

// Equal compares canonical forms.
func Equal(a, b Expr) bool { return a.String() == b.String() }

// Evalf evaluates e numerically with the given bindings and reports whether
// the result is a finite number.
func Evalf(e Expr, env map[string]float64) (float64, bool) {
	f := e.Float(env)
	return f, !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ============================================================================
// Differentiation
// ============================================================================

// Diff differentiates e with respect to v.
func Diff(e Expr, v string) Expr { return e.Diff(v) }

// DiffN applies Diff n times.
func DiffN(e Expr, v string, n int) Expr {
	for i := 0; i < n; i++ {
		e = e.Diff(v)
	}
	return e
}

func (a Add) Diff(v string) Expr {
	terms := make([]Expr, len(a.Terms))
	for i, t := range a.Terms {
		terms[i] = t.Diff(v)
	}
	return AddOf(terms...)
}

func (m Mul) Diff(v string) Expr {
	terms := make([]Expr, 0, len(m.Factors))
	for i, f := range m.Factors {
		if !Has(f, v) {
			continue
		}
		parts := make([]Expr, 0, len(m.Factors))
		for j, g := range m.Factors {
			if i == j {
				parts = append(parts, f.Diff(v))
			} else {
				parts = append(parts, g)
			}
		}
		terms = append(terms, MulOf(parts...))
	}
	return AddOf(terms...)
}

func (p Pow) Diff(v string) Expr {
	bHas, eHas := Has(p.Base, v), Has(p.Exp, v)
	switch {
	case !bHas && !eHas:
		return N(0)
	case !eHas:
		return MulOf(p.Exp, PowOf(p.Base, AddOf(p.Exp, N(-1))), p.Base.Diff(v))
	case !bHas:
		return MulOf(p, FuncOf("log", p.Base), p.Exp.Diff(v))
	}
	return MulOf(p, AddOf(
		MulOf(p.Exp.Diff(v), FuncOf("log", p.Base)),
		MulOf(p.Exp, p.Base.Diff(v), PowOf(p.Base, N(-1))),
	))
}

func (f Func) Diff(v string) Expr {
	du := f.Arg.Diff(v)
	if isZero(du) {
		return N(0)
	}
	u := f.Arg
	var outer Expr
	switch f.Name {
	case "sin":
		outer = FuncOf("cos", u)
	case "cos":
		outer = MulOf(N(-1), FuncOf("sin", u))
	case "tan":
		outer = AddOf(PowOf(FuncOf("tan", u), N(2)), N(1))
	case "exp":
		outer = f
	case "log":
		outer = PowOf(u, N(-1))
	case "asin":
		outer = PowOf(AddOf(N(1), MulOf(N(-1), PowOf(u, N(2)))), Q(-1, 2))
	case "acos":
		outer = MulOf(N(-1), PowOf(AddOf(N(1), MulOf(N(-1), PowOf(u, N(2)))), Q(-1, 2)))
	case "atan":
		outer = PowOf(AddOf(PowOf(u, N(2)), N(1)), N(-1))
	case "sinh":
		outer = FuncOf("cosh", u)
	case "cosh":
		outer = FuncOf("sinh", u)
	case "tanh":
		outer = AddOf(N(1), MulOf(N(-1), PowOf(FuncOf("tanh", u), N(2))))
	case "abs":
		outer = MulOf(u, PowOf(f, N(-1)))
	default:
		return Undefined{}
	}
	return MulOf(outer, du)
}

// ============================================================================
// Substitution
// ============================================================================

func (a Add) Sub(v string, val Expr) Expr {
	return mapChildren(a, func(c Expr) Expr { return c.Sub(v, val) })
}

func (m Mul) Sub(v string, val Expr) Expr {
	return mapChildren(m, func(c Expr) Expr { return c.Sub(v, val) })
}

func (p Pow) Sub(v string, val Expr) Expr {
	return mapChildren(p, func(c Expr) Expr { return c.Sub(v, val) })
}

func (f Func) Sub(v string, val Expr) Expr {
	return mapChildren(f, func(c Expr) Expr { return c.Sub(v, val) })
}

// ============================================================================
// Numeric evaluation
// ============================================================================

func (a Add) Float(env map[string]float64) float64 {
	s := 0.0
	for _, t := range a.Terms {
		s += t.Float(env)
	}
	return s
}

func (m Mul) Float(env map[string]float64) float64 {
	p := 1.0
	for _, f := range m.Factors {
		p *= f.Float(env)
	}
	return p
}

func (p Pow) Float(env map[string]float64) float64 {
	b, e := p.Base.Float(env), p.Exp.Float(env)
	if b < 0 {
		// Odd roots of negative numbers stay real.
		if n, ok := p.Exp.(Num); ok && !n.r.IsInt() && n.r.Denom().Bit(0) == 1 {
			r := math.Pow(-b, e)
			if n.r.Num().Bit(0) == 1 {
				return -r
			}
			return r
		}
	}
	return math.Pow(b, e)
}

func (f Func) Float(env map[string]float64) float64 {
	x := f.Arg.Float(env)
	switch f.Name {
	case "sin":
		return math.Sin(x)
	case "cos":
		return math.Cos(x)
	case "tan":
		return math.Tan(x)
	case "exp":
		return math.Exp(x)
	case "log":
		return math.Log(x)
	case "asin":
		return math.Asin(x)
	case "acos":
		return math.Acos(x)
	case "atan":
		return math.Atan(x)
	case "sinh":
		return math.Sinh(x)
	case "cosh":
		return math.Cosh(x)
	case "tanh":
		return math.Tanh(x)
	case "abs":
		return math.Abs(x)
	}
	return math.NaN()
}
