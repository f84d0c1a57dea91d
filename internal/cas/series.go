package cas

import (
	"fmt"
	"math/big"
)

// TaylorTerm is one term f^(k)(a)/k! * (v - a)^k of a Taylor polynomial.
type TaylorTerm struct {
	Order      int
	Derivative Expr
	Coeff      Expr
	Term       Expr
}

// Taylor expands e about a, keeping the terms of order less than n.
func Taylor(e Expr, v string, a Expr, n int) ([]TaylorTerm, Expr, error) {
	if n < 1 {
		return nil, nil, fmt.Errorf("cas: series order must be positive, got %d", n)
	}
	x := AddOf(S(v), MulOf(N(-1), a))
	fact := big.NewRat(1, 1)
	d := e
	terms := make([]TaylorTerm, 0, n)
	var sum []Expr
	for k := 0; k < n; k++ {
		if k > 0 {
			d = d.Diff(v)
			fact.Mul(fact, big.NewRat(int64(k), 1))
		}
		at := d.Sub(v, a)
		if !isFinite(at) {
			r, err := Limit(d, v, a, Both)
			if err != nil || !r.Exact() || !isFinite(r.Value) {
				return nil, nil, fmt.Errorf("cas: derivative of order %d is not defined at %s", k, a)
			}
			at = r.Value
		}
		coeff := MulOf(at, NumOf(new(big.Rat).Inv(fact)))
		term := MulOf(coeff, PowOf(x, N(int64(k))))
		terms = append(terms, TaylorTerm{Order: k, Derivative: at, Coeff: coeff, Term: term})
		sum = append(sum, term)
	}
	return terms, AddOf(sum...), nil
}
