package cas

import (
	"errors"
	"math"
	"math/big"
	"sort"
)

var ErrNotPolynomial = errors.New("cas: not a polynomial with rational coefficients")

// ============================================================================
// Expansion and rational form
// ============================================================================

// Expand multiplies out products and small positive integer powers of sums.
func Expand(e Expr) Expr {
	switch t := e.(type) {
	case Add:
		terms := make([]Expr, len(t.Terms))
		for i, c := range t.Terms {
			terms[i] = Expand(c)
		}
		return AddOf(terms...)
	case Mul:
		acc := Expr(N(1))
		for _, f := range t.Factors {
			acc = mulExpand(acc, Expand(f))
		}
		return acc
	case Pow:
		base := Expand(t.Base)
		if n, ok := t.Exp.(Num); ok && n.r.IsInt() && n.r.Sign() > 0 && n.r.Num().Int64() <= 16 {
			if _, ok := base.(Add); ok {
				acc := Expr(N(1))
				for i := int64(0); i < n.r.Num().Int64(); i++ {
					acc = mulExpand(acc, base)
				}
				return acc
			}
		}
		return PowOf(base, Expand(t.Exp))
	case Func:
		return FuncOf(t.Name, Expand(t.Arg))
	}
	return e
}

func addTerms(e Expr) []Expr {
	if a, ok := e.(Add); ok {
		return a.Terms
	}
	return []Expr{e}
}

func mulExpand(a, b Expr) Expr {
	at, bt := addTerms(a), addTerms(b)
	out := make([]Expr, 0, len(at)*len(bt))
	for _, x := range at {
		for _, y := range bt {
			out = append(out, MulOf(x, y))
		}
	}
	return AddOf(out...)
}

// NumDen splits e into a numerator and a denominator, bringing sums over a
// common denominator.
func NumDen(e Expr) (Expr, Expr) {
	switch t := e.(type) {
	case Num:
		return Num{new(big.Rat).SetInt(t.r.Num())}, Num{new(big.Rat).SetInt(t.r.Denom())}
	case Pow:
		if n, ok := t.Exp.(Num); ok && n.r.Sign() < 0 {
			return N(1), PowOf(t.Base, Num{new(big.Rat).Neg(n.r)})
		}
	case Mul:
		num := make([]Expr, 0, len(t.Factors))
		den := make([]Expr, 0, len(t.Factors))
		for _, f := range t.Factors {
			fn, fd := NumDen(f)
			num = append(num, fn)
			den = append(den, fd)
		}
		return MulOf(num...), MulOf(den...)
	case Add:
		n, d := NumDen(t.Terms[0])
		for _, term := range t.Terms[1:] {
			tn, td := NumDen(term)
			if Equal(d, td) {
				n = AddOf(n, tn)
				continue
			}
			n = AddOf(MulOf(n, td), MulOf(tn, d))
			d = MulOf(d, td)
		}
		return n, d
	}
	return e, N(1)
}

// ============================================================================
// Polynomial coefficients
// ============================================================================

// PolyCoeffs returns the coefficients of e as a polynomial in v, lowest
// degree first. Coefficients may contain other symbols.
func PolyCoeffs(e Expr, v string) ([]Expr, bool) {
	byDeg := make(map[int][]Expr)
	maxDeg := 0
	for _, t := range addTerms(Expand(e)) {
		d, c, ok := monomial(t, v)
		if !ok {
			return nil, false
		}
		byDeg[d] = append(byDeg[d], c)
		if d > maxDeg {
			maxDeg = d
		}
	}
	out := make([]Expr, maxDeg+1)
	for i := range out {
		out[i] = AddOf(byDeg[i]...)
	}
	for len(out) > 1 && isZero(out[len(out)-1]) {
		out = out[:len(out)-1]
	}
	return out, true
}

func monomial(t Expr, v string) (int, Expr, bool) {
	if !Has(t, v) {
		return 0, t, true
	}
	factors := []Expr{t}
	if m, ok := t.(Mul); ok {
		factors = m.Factors
	}
	deg := 0
	var rest []Expr
	for _, f := range factors {
		if !Has(f, v) {
			rest = append(rest, f)
			continue
		}
		switch g := f.(type) {
		case Sym:
			deg++
		case Pow:
			s, ok := g.Base.(Sym)
			n, isNum := g.Exp.(Num)
			if !ok || s.Name != v || !isNum || !n.r.IsInt() || n.r.Sign() <= 0 || !n.r.Num().IsInt64() {
				return 0, nil, false
			}
			deg += int(n.r.Num().Int64())
		default:
			return 0, nil, false
		}
	}
	return deg, MulOf(rest...), true
}

// LinearCoeffs returns a and b with e = a*v + b and a != 0.
func LinearCoeffs(e Expr, v string) (Expr, Expr, bool) {
	cs, ok := PolyCoeffs(e, v)
	if !ok || len(cs) != 2 || isZero(cs[1]) {
		return nil, nil, false
	}
	return cs[1], cs[0], true
}

// Poly is a dense univariate polynomial with rational coefficients,
// lowest degree first.
type Poly []*big.Rat

// PolyOf converts e into a Poly in v.
func PolyOf(e Expr, v string) (Poly, error) {
	cs, ok := PolyCoeffs(e, v)
	if !ok {
		return nil, ErrNotPolynomial
	}
	p := make(Poly, len(cs))
	for i, c := range cs {
		n, ok := c.(Num)
		if !ok {
			return nil, ErrNotPolynomial
		}
		p[i] = n.Rat()
	}
	return p.trim(), nil
}

func (p Poly) trim() Poly {
	for len(p) > 0 && p[len(p)-1].Sign() == 0 {
		p = p[:len(p)-1]
	}
	return p
}

// Degree returns -1 for the zero polynomial.
func (p Poly) Degree() int { return len(p.trim()) - 1 }

// Lead returns the leading coefficient.
func (p Poly) Lead() *big.Rat {
	t := p.trim()
	if len(t) == 0 {
		return new(big.Rat)
	}
	return new(big.Rat).Set(t[len(t)-1])
}

func (p Poly) Eval(x *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(acc, x)
		acc.Add(acc, p[i])
	}
	return acc
}

// Expr renders p as an expression in v.
func (p Poly) Expr(v string) Expr {
	terms := make([]Expr, 0, len(p))
	for i, c := range p {
		if c.Sign() == 0 {
			continue
		}
		terms = append(terms, MulOf(NumOf(c), PowOf(S(v), N(int64(i)))))
	}
	return AddOf(terms...)
}

func (p Poly) Deriv() Poly {
	if len(p) <= 1 {
		return Poly{}
	}
	out := make(Poly, len(p)-1)
	for i := 1; i < len(p); i++ {
		out[i-1] = new(big.Rat).Mul(p[i], big.NewRat(int64(i), 1))
	}
	return out.trim()
}

func polyScale(p Poly, c *big.Rat) Poly {
	out := make(Poly, len(p))
	for i, a := range p {
		out[i] = new(big.Rat).Mul(a, c)
	}
	return out.trim()
}

func polyAdd(a, b Poly) Poly {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(Poly, n)
	for i := range out {
		out[i] = new(big.Rat)
		if i < len(a) {
			out[i].Add(out[i], a[i])
		}
		if i < len(b) {
			out[i].Add(out[i], b[i])
		}
	}
	return out.trim()
}

func polySub(a, b Poly) Poly { return polyAdd(a, polyScale(b, big.NewRat(-1, 1))) }

func polyMul(a, b Poly) Poly {
	if len(a) == 0 || len(b) == 0 {
		return Poly{}
	}
	out := make(Poly, len(a)+len(b)-1)
	for i := range out {
		out[i] = new(big.Rat)
	}
	for i, x := range a {
		for j, y := range b {
			out[i+j].Add(out[i+j], new(big.Rat).Mul(x, y))
		}
	}
	return out.trim()
}

// polyDivMod divides a by a nonzero b.
func polyDivMod(a, b Poly) (Poly, Poly) {
	b = b.trim()
	r := polyAdd(a, Poly{})
	if len(r) < len(b) {
		return Poly{}, r
	}
	q := make(Poly, len(r)-len(b)+1)
	for i := range q {
		q[i] = new(big.Rat)
	}
	lead := b[len(b)-1]
	for len(r) >= len(b) && len(r) > 0 {
		shift := len(r) - len(b)
		c := new(big.Rat).Quo(r[len(r)-1], lead)
		q[shift] = c
		sub := make(Poly, shift+len(b))
		for i := range sub {
			sub[i] = new(big.Rat)
		}
		for i, x := range b {
			sub[i+shift] = new(big.Rat).Mul(x, c)
		}
		r = polySub(r, sub)
	}
	return q.trim(), r
}

// shift returns the coefficients of p(x + c) as a polynomial in x.
func (p Poly) shift(c *big.Rat) Poly {
	out := Poly{}
	lin := Poly{new(big.Rat).Set(c), big.NewRat(1, 1)}
	for i := len(p) - 1; i >= 0; i-- {
		out = polyAdd(polyMul(out, lin), Poly{p[i]})
	}
	return out
}

func polyPow(p Poly, k int) Poly {
	out := Poly{big.NewRat(1, 1)}
	for i := 0; i < k; i++ {
		out = polyMul(out, p)
	}
	return out
}

// ============================================================================
// Roots
// ============================================================================

// Root is a real root of a polynomial. Exact roots carry Value; roots found
// by bisection only carry Approx.
type Root struct {
	Value  Expr
	Approx float64
	Mult   int
	Exact  bool
}

type ratRoot struct {
	value *big.Rat
	mult  int
}

// rationalRoots finds every rational root with multiplicity and returns the
// deflated remainder.
func (p Poly) rationalRoots() ([]ratRoot, Poly) {
	rest := p.trim()
	var roots []ratRoot

	zeros := 0
	for len(rest) > 1 && rest[0].Sign() == 0 {
		rest = rest[1:]
		zeros++
	}
	if zeros > 0 {
		roots = append(roots, ratRoot{value: new(big.Rat), mult: zeros})
	}

	for rest.Degree() > 0 {
		found := false
		for _, c := range rootCandidates(rest) {
			if rest.Eval(c).Sign() != 0 {
				continue
			}
			mult := 0
			for rest.Degree() > 0 && rest.Eval(c).Sign() == 0 {
				rest, _ = polyDivMod(rest, Poly{new(big.Rat).Neg(c), big.NewRat(1, 1)})
				mult++
			}
			roots = append(roots, ratRoot{value: c, mult: mult})
			found = true
			break
		}
		if !found {
			break
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].value.Cmp(roots[j].value) < 0 })
	return roots, rest
}

func rootCandidates(p Poly) []*big.Rat {
	ints := integerCoeffs(p)
	a0, an := ints[0], ints[len(ints)-1]
	ps, qs := divisors(a0), divisors(an)
	seen := make(map[string]bool)
	var out []*big.Rat
	for _, a := range ps {
		for _, b := range qs {
			for _, s := range []int64{1, -1} {
				c := big.NewRat(s*a, b)
				if !seen[c.String()] {
					seen[c.String()] = true
					out = append(out, c)
				}
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cmp(out[j]) < 0 })
	return out
}

func integerCoeffs(p Poly) []*big.Int {
	l := big.NewInt(1)
	for _, c := range p {
		d := c.Denom()
		g := new(big.Int).GCD(nil, nil, l, d)
		l.Mul(l, new(big.Int).Quo(d, g))
	}
	out := make([]*big.Int, len(p))
	for i, c := range p {
		v := new(big.Rat).Mul(c, new(big.Rat).SetInt(l))
		out[i] = new(big.Int).Set(v.Num())
	}
	return out
}

func divisors(n *big.Int) []int64 {
	if !n.IsInt64() {
		return []int64{1}
	}
	v := n.Int64()
	if v < 0 {
		v = -v
	}
	if v == 0 {
		return []int64{1}
	}
	var out []int64
	for i := int64(1); i*i <= v && i <= 10_000_000; i++ {
		if v%i == 0 {
			out = append(out, i)
			if i != v/i {
				out = append(out, v/i)
			}
		}
	}
	return out
}

// RealRoots returns the real roots of p: rational roots exactly, remaining
// quadratic factors by formula, anything else by bisection.
func (p Poly) RealRoots() []Root {
	rr, rest := p.rationalRoots()
	var roots []Root
	for _, r := range rr {
		f, _ := r.value.Float64()
		roots = append(roots, Root{Value: NumOf(r.value), Approx: f, Mult: r.mult, Exact: true})
	}

	switch rest.Degree() {
	case 2:
		a, b, c := rest[2], rest[1], rest[0]
		disc := new(big.Rat).Sub(new(big.Rat).Mul(b, b), new(big.Rat).Mul(big.NewRat(4, 1), new(big.Rat).Mul(a, c)))
		if disc.Sign() > 0 {
			twoA := new(big.Rat).Mul(big.NewRat(2, 1), a)
			center := new(big.Rat).Quo(new(big.Rat).Neg(b), twoA)
			half := new(big.Rat).Quo(big.NewRat(1, 1), twoA)
			sq := PowOf(NumOf(disc), Q(1, 2))
			for _, s := range []int64{-1, 1} {
				val := AddOf(NumOf(center), MulOf(N(s), NumOf(half), sq))
				roots = append(roots, Root{Value: val, Approx: val.Float(nil), Mult: 1, Exact: true})
			}
		}
	default:
		if rest.Degree() > 2 {
			for _, x := range bisectRoots(rest) {
				roots = append(roots, Root{Approx: x, Mult: 1})
			}
		}
	}
	sort.SliceStable(roots, func(i, j int) bool { return roots[i].Approx < roots[j].Approx })
	return roots
}

func bisectRoots(p Poly) []float64 {
	lead, _ := p.Lead().Float64()
	bound := 1.0
	for _, c := range p[:len(p)-1] {
		f, _ := c.Float64()
		if v := 1 + math.Abs(f/lead); v > bound {
			bound = v
		}
	}
	eval := func(x float64) float64 {
		acc := 0.0
		for i := len(p) - 1; i >= 0; i-- {
			c, _ := p[i].Float64()
			acc = acc*x + c
		}
		return acc
	}
	return BisectAll(eval, -bound, bound, 4000)
}

// BisectAll locates sign changes of f on [lo, hi] using n samples and refines
// each by bisection.
func BisectAll(f func(float64) float64, lo, hi float64, n int) []float64 {
	var out []float64
	step := (hi - lo) / float64(n)
	prevX, prevY := lo, f(lo)
	for i := 1; i <= n; i++ {
		x := lo + float64(i)*step
		y := f(x)
		if math.IsNaN(y) || math.IsNaN(prevY) || math.IsInf(y, 0) || math.IsInf(prevY, 0) {
			prevX, prevY = x, y
			continue
		}
		if prevY == 0 {
			out = append(out, prevX)
		} else if prevY*y < 0 {
			a, b, fa := prevX, x, prevY
			for k := 0; k < 100; k++ {
				m := (a + b) / 2
				fm := f(m)
				if fa*fm <= 0 {
					b = m
				} else {
					a, fa = m, fm
				}
			}
			out = append(out, (a+b)/2)
		}
		prevX, prevY = x, y
	}
	return out
}
