package cas

import (
	"math/big"
	"strings"
)

const (
	precAdd = iota + 1
	precMul
	precPow
	precAtom
)

func prec(e Expr) int {
	switch t := e.(type) {
	case Add:
		return precAdd
	case Mul:
		if isNegativeTerm(t) {
			return precAdd
		}
		return precMul
	case Pow:
		if n, ok := t.Exp.(Num); ok {
			if n.r.Cmp(big.NewRat(1, 2)) == 0 {
				return precAtom
			}
			if n.r.Sign() < 0 {
				return precMul
			}
		}
		return precPow
	case Num:
		if t.r.Sign() < 0 {
			return precAdd
		}
		if !t.r.IsInt() {
			return precMul
		}
	case Inf:
		if t.Neg {
			return precAdd
		}
	}
	return precAtom
}

func wrap(e Expr, min int) string {
	if prec(e) < min {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func isNegativeTerm(e Expr) bool {
	switch t := e.(type) {
	case Num:
		return t.r.Sign() < 0
	case Mul:
		if n, ok := t.Factors[0].(Num); ok {
			return n.r.Sign() < 0
		}
	case Inf:
		return t.Neg
	}
	return false
}

func (a Add) String() string {
	var sb strings.Builder
	for i, t := range a.Terms {
		if i == 0 {
			sb.WriteString(t.String())
			continue
		}
		if isNegativeTerm(t) {
			sb.WriteString(" - ")
			sb.WriteString(MulOf(N(-1), t).String())
		} else {
			sb.WriteString(" + ")
			sb.WriteString(t.String())
		}
	}
	return sb.String()
}

func (m Mul) String() string {
	coeff := ratOne
	var num, den []string
	for _, f := range m.Factors {
		if n, ok := f.(Num); ok {
			coeff = n.r
			continue
		}
		if p, ok := f.(Pow); ok {
			if e, ok := p.Exp.(Num); ok && e.r.Sign() < 0 {
				inv := PowOf(p.Base, Num{new(big.Rat).Neg(e.r)})
				den = append(den, wrap(inv, precMul))
				continue
			}
		}
		num = append(num, wrap(f, precMul))
	}

	sign := ""
	p := new(big.Int).Set(coeff.Num())
	if p.Sign() < 0 {
		sign = "-"
		p.Neg(p)
	}
	if p.Cmp(big.NewInt(1)) != 0 {
		num = append([]string{p.String()}, num...)
	}
	if q := coeff.Denom(); q.Cmp(big.NewInt(1)) != 0 {
		den = append([]string{q.String()}, den...)
	}

	s := strings.Join(num, "*")
	if s == "" {
		s = "1"
	}
	if len(den) == 0 {
		return sign + s
	}
	d := strings.Join(den, "*")
	if len(den) > 1 {
		d = "(" + d + ")"
	}
	return sign + s + "/" + d
}

func (p Pow) String() string {
	if n, ok := p.Exp.(Num); ok {
		if n.r.Cmp(big.NewRat(1, 2)) == 0 {
			return "sqrt(" + p.Base.String() + ")"
		}
		if n.r.Sign() < 0 {
			inv := PowOf(p.Base, Num{new(big.Rat).Neg(n.r)})
			return "1/" + wrap(inv, precPow)
		}
	}
	return wrap(p.Base, precAtom) + "^" + wrap(p.Exp, precAtom)
}

func (f Func) String() string {
	return f.Name + "(" + f.Arg.String() + ")"
}
