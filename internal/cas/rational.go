package cas

import (
	"errors"
	"fmt"
	"math/big"
)

var ErrNotRational = errors.New("cas: not a rational function")

// PartialFractions is the decomposition of a rational function N/D into a
// polynomial part, terms A/(v - r)^k for the rational roots of D, and at
// most one term (B*v + C)/(v^2 + P*v + Q) for an irreducible quadratic factor.
type PartialFractions struct {
	Var       string
	Quotient  Poly
	Linear    []LinearFraction
	Quadratic *QuadraticFraction
}

type LinearFraction struct {
	A     *big.Rat
	Root  *big.Rat
	Power int
}

type QuadraticFraction struct {
	B, C, P, Q *big.Rat
}

// RationalParts returns numerator and denominator of e as polynomials in v.
func RationalParts(e Expr, v string) (Poly, Poly, error) {
	n, d := NumDen(e)
	np, err := PolyOf(n, v)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: numerator %s", ErrNotRational, n)
	}
	dp, err := PolyOf(d, v)
	if err != nil || dp.Degree() < 0 {
		return nil, nil, fmt.Errorf("%w: denominator %s", ErrNotRational, d)
	}
	return np, dp, nil
}

// Apart decomposes e into partial fractions with respect to v.
func Apart(e Expr, v string) (*PartialFractions, error) {
	num, den, err := RationalParts(e, v)
	if err != nil {
		return nil, err
	}
	lead := den.Lead()
	inv := new(big.Rat).Inv(lead)
	num, den = polyScale(num, inv), polyScale(den, inv)

	q, r := polyDivMod(num, den)
	pf := &PartialFractions{Var: v, Quotient: q}
	if r.Degree() < 0 {
		return pf, nil
	}

	roots, rest := den.rationalRoots()
	switch rest.Degree() {
	case 0:
	case 2:
		b, c := rest[1], rest[0]
		disc := new(big.Rat).Sub(new(big.Rat).Mul(b, b), new(big.Rat).Mul(big.NewRat(4, 1), c))
		if disc.Sign() >= 0 {
			return nil, fmt.Errorf("cas: denominator has irrational roots; cannot decompose %s", e)
		}
	default:
		return nil, fmt.Errorf("cas: denominator has an irreducible factor of degree %d; cannot decompose %s", rest.Degree(), e)
	}

	one := big.NewRat(1, 1)
	var sum Poly
	for _, root := range roots {
		linear := Poly{new(big.Rat).Neg(root.value), one}
		g, _ := polyDivMod(den, polyPow(linear, root.mult))
		rs, gs := r.shift(root.value), g.shift(root.value)
		cs := seriesQuotient(rs, gs, root.mult)
		for j, c := range cs {
			if c.Sign() == 0 {
				continue
			}
			k := root.mult - j
			pf.Linear = append(pf.Linear, LinearFraction{A: c, Root: root.value, Power: k})
			cof, _ := polyDivMod(den, polyPow(linear, k))
			sum = polyAdd(sum, polyScale(cof, c))
		}
	}

	if rest.Degree() == 2 {
		cof, _ := polyDivMod(den, rest)
		p, rem := polyDivMod(polySub(r, sum), cof)
		if rem.Degree() >= 0 {
			return nil, fmt.Errorf("cas: partial fraction decomposition of %s did not close", e)
		}
		pf.Quadratic = &QuadraticFraction{
			B: coeffAt(p, 1), C: coeffAt(p, 0),
			P: coeffAt(rest, 1), Q: coeffAt(rest, 0),
		}
	}
	return pf, nil
}

func coeffAt(p Poly, i int) *big.Rat {
	if i < len(p) {
		return new(big.Rat).Set(p[i])
	}
	return new(big.Rat)
}

// seriesQuotient returns the first n power-series coefficients of a/b about 0.
func seriesQuotient(a, b Poly, n int) []*big.Rat {
	out := make([]*big.Rat, n)
	for j := 0; j < n; j++ {
		c := new(big.Rat).Set(coeffAt(a, j))
		for i := 1; i <= j; i++ {
			c.Sub(c, new(big.Rat).Mul(coeffAt(b, i), out[j-i]))
		}
		out[j] = c.Quo(c, b[0])
	}
	return out
}

// Expr renders the decomposition as a sum.
func (pf *PartialFractions) Expr() Expr {
	x := S(pf.Var)
	terms := []Expr{pf.Quotient.Expr(pf.Var)}
	for _, l := range pf.Linear {
		base := AddOf(x, NumOf(new(big.Rat).Neg(l.Root)))
		terms = append(terms, MulOf(NumOf(l.A), PowOf(base, N(int64(-l.Power)))))
	}
	if q := pf.Quadratic; q != nil {
		terms = append(terms, MulOf(AddOf(MulOf(NumOf(q.B), x), NumOf(q.C)), PowOf(pf.quadratic(), N(-1))))
	}
	return AddOf(terms...)
}

func (pf *PartialFractions) quadratic() Expr {
	q := pf.Quadratic
	x := S(pf.Var)
	return AddOf(PowOf(x, N(2)), MulOf(NumOf(q.P), x), NumOf(q.Q))
}

// Integrate returns an antiderivative of the decomposition.
func (pf *PartialFractions) Integrate() Expr {
	x := S(pf.Var)
	var terms []Expr
	for i, c := range pf.Quotient {
		if c.Sign() == 0 {
			continue
		}
		k := int64(i + 1)
		terms = append(terms, MulOf(NumOf(c), Q(1, k), PowOf(x, N(k))))
	}
	for _, l := range pf.Linear {
		base := AddOf(x, NumOf(new(big.Rat).Neg(l.Root)))
		if l.Power == 1 {
			terms = append(terms, MulOf(NumOf(l.A), FuncOf("log", FuncOf("abs", base))))
			continue
		}
		k := int64(1 - l.Power)
		terms = append(terms, MulOf(NumOf(l.A), Q(1, k), PowOf(base, N(k))))
	}
	if q := pf.Quadratic; q != nil {
		// (Bx + C)/(x^2 + Px + Q) = (B/2)(2x + P)/(...) + (C - BP/2)/((x + P/2)^2 + s^2)
		half := big.NewRat(1, 2)
		terms = append(terms, MulOf(NumOf(new(big.Rat).Mul(q.B, half)), FuncOf("log", pf.quadratic())))
		shift := new(big.Rat).Mul(q.P, half)
		rest := new(big.Rat).Sub(q.C, new(big.Rat).Mul(q.B, shift))
		if rest.Sign() != 0 {
			s2 := new(big.Rat).Sub(q.Q, new(big.Rat).Mul(shift, shift))
			s := PowOf(NumOf(s2), Q(1, 2))
			arg := MulOf(AddOf(x, NumOf(shift)), PowOf(s, N(-1)))
			terms = append(terms, MulOf(NumOf(rest), PowOf(s, N(-1)), FuncOf("atan", arg)))
		}
	}
	return AddOf(terms...)
}
