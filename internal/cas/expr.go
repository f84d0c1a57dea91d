// Package cas is a small exact computer-algebra kernel. Expressions are
// immutable trees over rational numbers that are kept in a canonical form by
// their constructors, so like terms are always collected and like bases are
// always merged. On top of that the package provides differentiation,
// antiderivatives, limits, Taylor polynomials, partial fractions and a
// textual parser.
package cas

import (
	"math"
	"math/big"
	"sort"
)

// Expr is an immutable expression node. Build values with N, Q, S, AddOf,
// MulOf, PowOf and FuncOf; never construct composite nodes directly.
type Expr interface {
	String() string
	Diff(v string) Expr
	Sub(v string, val Expr) Expr
	Float(env map[string]float64) float64
}

// ============================================================================
// Atoms
// ============================================================================

// Num is an exact rational constant.
type Num struct{ r *big.Rat }

func N(i int64) Num        { return Num{new(big.Rat).SetInt64(i)} }
func Q(a, b int64) Num     { return Num{big.NewRat(a, b)} }
func NumOf(r *big.Rat) Num { return Num{new(big.Rat).Set(r)} }

// Rat returns a copy of the value.
func (n Num) Rat() *big.Rat { return new(big.Rat).Set(n.r) }
func (n Num) Sign() int     { return n.r.Sign() }
func (n Num) IsInt() bool   { return n.r.IsInt() }

func (n Num) String() string {
	if n.r.IsInt() {
		return n.r.Num().String()
	}
	return n.r.Num().String() + "/" + n.r.Denom().String()
}

func (n Num) Diff(string) Expr      { return N(0) }
func (n Num) Sub(string, Expr) Expr { return n }
func (n Num) Float(map[string]float64) float64 {
	f, _ := n.r.Float64()
	return f
}

// Sym is a free variable.
type Sym struct{ Name string }

func S(name string) Sym { return Sym{Name: name} }

func (s Sym) String() string { return s.Name }
func (s Sym) Diff(v string) Expr {
	if s.Name == v {
		return N(1)
	}
	return N(0)
}
func (s Sym) Sub(v string, val Expr) Expr {
	if s.Name == v {
		return val
	}
	return s
}
func (s Sym) Float(env map[string]float64) float64 {
	if f, ok := env[s.Name]; ok {
		return f
	}
	return math.NaN()
}

// Const is a named mathematical constant.
type Const struct{ Name string }

var Pi = Const{Name: "pi"}

func (c Const) String() string        { return c.Name }
func (c Const) Diff(string) Expr      { return N(0) }
func (c Const) Sub(string, Expr) Expr { return c }
func (c Const) Float(map[string]float64) float64 {
	if c.Name == "pi" {
		return math.Pi
	}
	return math.NaN()
}

// Inf is positive or negative infinity. It only appears as a limit point,
// an integration bound or a limit value.
type Inf struct{ Neg bool }

var (
	Oo    = Inf{}
	NegOo = Inf{Neg: true}
)

func (i Inf) String() string {
	if i.Neg {
		return "-oo"
	}
	return "oo"
}
func (i Inf) Diff(string) Expr      { return N(0) }
func (i Inf) Sub(string, Expr) Expr { return i }
func (i Inf) Float(map[string]float64) float64 {
	if i.Neg {
		return math.Inf(-1)
	}
	return math.Inf(1)
}

// Undefined is the result of an operation with no value, such as 1/0.
// It absorbs every operation it takes part in.
type Undefined struct{}

func (Undefined) String() string                   { return "undefined" }
func (Undefined) Diff(string) Expr                 { return Undefined{} }
func (Undefined) Sub(string, Expr) Expr            { return Undefined{} }
func (Undefined) Float(map[string]float64) float64 { return math.NaN() }

// ============================================================================
// Composite nodes
// ============================================================================

// Add is a canonical sum: at least two terms, no nested sums, like terms
// collected, the rational constant (if any) last.
type Add struct{ Terms []Expr }

// Mul is a canonical product: at least two factors, the rational
// coefficient (if not 1) first, each base appearing once.
type Mul struct{ Factors []Expr }

// Pow is Base raised to Exp.
type Pow struct{ Base, Exp Expr }

// Func is a named elementary function applied to one argument.
type Func struct {
	Name string
	Arg  Expr
}

// ============================================================================
// Canonical constructors
// ============================================================================

// AddOf returns the canonical sum of terms.
func AddOf(terms ...Expr) Expr {
	var flat []Expr
	for _, t := range terms {
		if a, ok := t.(Add); ok {
			flat = append(flat, a.Terms...)
		} else {
			flat = append(flat, t)
		}
	}

	sum := new(big.Rat)
	var keys []string
	coeffs := make(map[string]*big.Rat)
	rests := make(map[string]Expr)
	var infs []Inf

	for _, t := range flat {
		switch v := t.(type) {
		case Undefined:
			return Undefined{}
		case Num:
			sum.Add(sum, v.r)
			continue
		case Inf:
			infs = append(infs, v)
			continue
		}
		c, rest := splitCoeff(t)
		k := rest.String()
		if _, ok := coeffs[k]; !ok {
			keys = append(keys, k)
			coeffs[k] = new(big.Rat)
			rests[k] = rest
		}
		coeffs[k].Add(coeffs[k], c)
	}

	if len(infs) > 0 {
		for _, i := range infs[1:] {
			if i.Neg != infs[0].Neg {
				return Undefined{}
			}
		}
		return infs[0]
	}

	out := make([]Expr, 0, len(keys)+1)
	for _, k := range keys {
		c := coeffs[k]
		if c.Sign() == 0 {
			continue
		}
		if c.Cmp(ratOne) == 0 {
			out = append(out, rests[k])
		} else {
			out = append(out, MulOf(Num{c}, rests[k]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return termLess(out[i], out[j]) })
	if sum.Sign() != 0 {
		out = append(out, Num{sum})
	}

	switch len(out) {
	case 0:
		return N(0)
	case 1:
		return out[0]
	}
	return Add{Terms: out}
}

// MulOf returns the canonical product of factors. A rational coefficient
// times a single sum is distributed over the sum.
func MulOf(factors ...Expr) Expr {
	var flat []Expr
	for _, f := range factors {
		if m, ok := f.(Mul); ok {
			flat = append(flat, m.Factors...)
		} else {
			flat = append(flat, f)
		}
	}

	coeff := big.NewRat(1, 1)
	var keys []string
	bases := make(map[string]Expr)
	exps := make(map[string][]Expr)
	var inf *Inf

	for _, f := range flat {
		switch v := f.(type) {
		case Undefined:
			return Undefined{}
		case Num:
			coeff.Mul(coeff, v.r)
			continue
		case Inf:
			if inf == nil {
				i := v
				inf = &i
			} else {
				inf.Neg = inf.Neg != v.Neg
			}
			continue
		}
		b, e := baseExp(f)
		k := b.String()
		if _, ok := bases[k]; !ok {
			keys = append(keys, k)
			bases[k] = b
		}
		exps[k] = append(exps[k], e)
	}

	if inf != nil {
		if coeff.Sign() == 0 {
			return Undefined{}
		}
		return Inf{Neg: inf.Neg != (coeff.Sign() < 0)}
	}
	if coeff.Sign() == 0 {
		return N(0)
	}

	var out []Expr
	regroup := false
	for _, k := range keys {
		p := PowOf(bases[k], AddOf(exps[k]...))
		switch pv := p.(type) {
		case Undefined:
			return Undefined{}
		case Num:
			coeff.Mul(coeff, pv.r)
		case Mul:
			regroup = true
			out = append(out, pv)
		default:
			out = append(out, p)
		}
	}
	if coeff.Sign() == 0 {
		return N(0)
	}
	if regroup {
		return MulOf(append([]Expr{Num{coeff}}, out...)...)
	}

	sort.SliceStable(out, func(i, j int) bool { return factorLess(out[i], out[j]) })

	isOne := coeff.Cmp(ratOne) == 0
	switch {
	case len(out) == 0:
		return Num{coeff}
	case len(out) == 1 && isOne:
		return out[0]
	case len(out) == 1:
		if a, ok := out[0].(Add); ok {
			terms := make([]Expr, len(a.Terms))
			for i, t := range a.Terms {
				terms[i] = MulOf(Num{coeff}, t)
			}
			return AddOf(terms...)
		}
	}

	fs := make([]Expr, 0, len(out)+1)
	if !isOne {
		fs = append(fs, Num{coeff})
	}
	return Mul{Factors: append(fs, out...)}
}

// PowOf returns the canonical power b^e.
func PowOf(b, e Expr) Expr {
	if _, ok := b.(Undefined); ok {
		return Undefined{}
	}
	if _, ok := e.(Undefined); ok {
		return Undefined{}
	}

	en, eIsNum := e.(Num)
	if eIsNum {
		if en.r.Sign() == 0 {
			return N(1)
		}
		if en.r.Cmp(ratOne) == 0 {
			return b
		}
	}

	switch bv := b.(type) {
	case Num:
		if bv.r.Sign() == 0 {
			if eIsNum {
				if en.r.Sign() > 0 {
					return N(0)
				}
				return Undefined{}
			}
			break
		}
		if bv.r.Cmp(ratOne) == 0 {
			return N(1)
		}
		if eIsNum {
			if r, ok := ratPow(bv.r, en.r); ok {
				return Num{r}
			}
			if k, rest, ok := extractSquare(bv.r, en.r); ok {
				return MulOf(Num{k}, Pow{Base: Num{rest}, Exp: e})
			}
		}
	case Pow:
		if eIsNum && en.r.IsInt() {
			return PowOf(bv.Base, MulOf(bv.Exp, e))
		}
	case Mul:
		if eIsNum && en.r.IsInt() {
			parts := make([]Expr, len(bv.Factors))
			for i, f := range bv.Factors {
				parts[i] = PowOf(f, e)
			}
			return MulOf(parts...)
		}
	case Func:
		if bv.Name == "exp" {
			return FuncOf("exp", MulOf(bv.Arg, e))
		}
	case Inf:
		if eIsNum {
			if en.r.Sign() < 0 {
				return N(0)
			}
			if bv.Neg && en.r.IsInt() && en.r.Num().Bit(0) == 0 {
				return Oo
			}
			return bv
		}
	}
	return Pow{Base: b, Exp: e}
}

// FuncOf applies the named function, folding exact special values.
func FuncOf(name string, arg Expr) Expr {
	if _, ok := arg.(Undefined); ok {
		return Undefined{}
	}
	zero, one := isZero(arg), isOne(arg)

	switch name {
	case "sqrt":
		return PowOf(arg, Q(1, 2))
	case "exp":
		if zero {
			return N(1)
		}
		if f, ok := arg.(Func); ok && f.Name == "log" {
			return f.Arg
		}
		if i, ok := arg.(Inf); ok {
			if i.Neg {
				return N(0)
			}
			return Oo
		}
	case "log":
		if one {
			return N(0)
		}
		if zero {
			return Undefined{}
		}
		if f, ok := arg.(Func); ok && f.Name == "exp" {
			return f.Arg
		}
		if i, ok := arg.(Inf); ok && !i.Neg {
			return Oo
		}
	case "abs":
		switch a := arg.(type) {
		case Num:
			return Num{new(big.Rat).Abs(a.r)}
		case Const:
			return a
		case Func:
			if a.Name == "exp" || a.Name == "abs" || a.Name == "cosh" {
				return a
			}
		case Pow:
			if n, ok := a.Exp.(Num); ok && n.r.IsInt() && n.r.Num().Bit(0) == 0 {
				return a
			}
		}
	case "sin":
		if zero || arg == Expr(Pi) {
			return N(0)
		}
	case "cos":
		if zero {
			return N(1)
		}
		if arg == Expr(Pi) {
			return N(-1)
		}
	case "tan", "asin", "atan", "sinh", "tanh":
		if zero {
			return N(0)
		}
	case "acos":
		if one {
			return N(0)
		}
	case "cosh":
		if zero {
			return N(1)
		}
	}
	return Func{Name: name, Arg: arg}
}

// ============================================================================
// Canonical-form helpers
// ============================================================================

var ratOne = big.NewRat(1, 1)

func isZero(e Expr) bool {
	n, ok := e.(Num)
	return ok && n.r.Sign() == 0
}

func isOne(e Expr) bool {
	n, ok := e.(Num)
	return ok && n.r.Cmp(ratOne) == 0
}

func isNumValue(e Expr, a, b int64) bool {
	n, ok := e.(Num)
	return ok && n.r.Cmp(big.NewRat(a, b)) == 0
}

// IsZero reports whether e is the exact constant 0.
func IsZero(e Expr) bool { return isZero(e) }

// splitCoeff separates the rational coefficient of a term.
func splitCoeff(e Expr) (*big.Rat, Expr) {
	if m, ok := e.(Mul); ok {
		if n, ok := m.Factors[0].(Num); ok {
			rest := m.Factors[1:]
			if len(rest) == 1 {
				return n.r, rest[0]
			}
			return n.r, Mul{Factors: rest}
		}
	}
	return ratOne, e
}

func baseExp(e Expr) (Expr, Expr) {
	if p, ok := e.(Pow); ok {
		return p.Base, p.Exp
	}
	return e, N(1)
}

// sortDegree orders sum terms so polynomials print highest power first.
func sortDegree(e Expr) float64 {
	switch t := e.(type) {
	case Sym:
		return 1
	case Pow:
		if n, ok := t.Exp.(Num); ok {
			f, _ := n.r.Float64()
			return sortDegree(t.Base) * f
		}
	case Mul:
		d := 0.0
		for _, f := range t.Factors {
			d += sortDegree(f)
		}
		return d
	}
	return 0
}

func termLess(a, b Expr) bool {
	da, db := sortDegree(a), sortDegree(b)
	if da != db {
		return da > db
	}
	_, ra := splitCoeff(a)
	_, rb := splitCoeff(b)
	return ra.String() < rb.String()
}

func factorRank(e Expr) int {
	b, _ := baseExp(e)
	switch b.(type) {
	case Num:
		return 0
	case Const:
		return 1
	case Sym:
		return 2
	case Func:
		return 3
	case Add:
		return 4
	}
	return 5
}

func factorLess(a, b Expr) bool {
	ra, rb := factorRank(a), factorRank(b)
	if ra != rb {
		return ra < rb
	}
	return a.String() < b.String()
}

// ratPow computes b^e exactly when the result is rational.
func ratPow(b, e *big.Rat) (*big.Rat, bool) {
	if e.IsInt() {
		n := e.Num()
		if n.CmpAbs(big.NewInt(512)) > 0 {
			return nil, false
		}
		k := new(big.Int).Abs(n)
		num := new(big.Int).Exp(b.Num(), k, nil)
		den := new(big.Int).Exp(b.Denom(), k, nil)
		r := new(big.Rat).SetFrac(num, den)
		if n.Sign() < 0 {
			r.Inv(r)
		}
		return r, true
	}
	if b.Sign() < 0 {
		return nil, false
	}
	q := e.Denom()
	if !q.IsInt64() || q.Int64() > 64 {
		return nil, false
	}
	rn, ok1 := intRoot(b.Num(), q.Int64())
	rd, ok2 := intRoot(b.Denom(), q.Int64())
	if !ok1 || !ok2 {
		return nil, false
	}
	return ratPow(new(big.Rat).SetFrac(rn, rd), new(big.Rat).SetInt(e.Num()))
}

// intRoot returns the exact q-th root of n when n is a perfect power.
func intRoot(n *big.Int, q int64) (*big.Int, bool) {
	if n.Sign() < 0 {
		return nil, false
	}
	f, _ := new(big.Float).SetInt(n).Float64()
	guess := int64(math.Round(math.Pow(f, 1/float64(q))))
	for d := int64(-1); d <= 1; d++ {
		c := big.NewInt(guess + d)
		if c.Sign() < 0 {
			continue
		}
		if new(big.Int).Exp(c, big.NewInt(q), nil).Cmp(n) == 0 {
			return c, true
		}
	}
	return nil, false
}

// extractSquare rewrites sqrt(n) as k*sqrt(rest) for a positive integer n
// with a square factor k^2.
func extractSquare(b, e *big.Rat) (*big.Rat, *big.Rat, bool) {
	if e.Cmp(big.NewRat(1, 2)) != 0 || !b.IsInt() || b.Sign() <= 0 || !b.Num().IsInt64() {
		return nil, nil, false
	}
	n := b.Num().Int64()
	best := int64(1)
	for k := int64(2); k*k <= n && k <= 1_000_000; k++ {
		if n%(k*k) == 0 {
			best = k
		}
	}
	if best == 1 {
		return nil, nil, false
	}
	return big.NewRat(best, 1), big.NewRat(n/(best*best), 1), true
}
