package cas

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
)

var (
	ErrLimitDNE         = errors.New("cas: limit does not exist")
	ErrLimitUnsupported = errors.New("cas: limit could not be determined")
)

// Direction selects a one- or two-sided limit.
type Direction int

const (
	Both Direction = iota
	FromAbove
	FromBelow
)

func (d Direction) String() string {
	switch d {
	case FromAbove:
		return "+"
	case FromBelow:
		return "-"
	}
	return ""
}

// LimitResult is the value of a limit and how it was obtained. Value is nil
// when only a numerical estimate was possible.
type LimitResult struct {
	Value  Expr
	Approx float64
	Method string
}

func (r LimitResult) Exact() bool { return r.Value != nil }

func (r LimitResult) String() string {
	if r.Value != nil {
		return r.Value.String()
	}
	return "≈ " + strconv.FormatFloat(r.Approx, 'g', 8, 64)
}

const maxLHopital = 8

// Limit computes the limit of e as v approaches point from dir.
func Limit(e Expr, v string, point Expr, dir Direction) (LimitResult, error) {
	if inf, ok := point.(Inf); ok {
		return limitAtInfinity(e, v, inf.Neg)
	}
	if _, ok := Evalf(point, nil); !ok {
		return LimitResult{}, fmt.Errorf("%w: limit point %s is not a number", ErrLimitUnsupported, point)
	}
	return limitAt(e, v, point, dir, 0)
}

func limitAt(e Expr, v string, a Expr, dir Direction, depth int) (LimitResult, error) {
	if val := e.Sub(v, a); isFinite(val) {
		return LimitResult{Value: val, Method: "direct substitution"}, nil
	}

	num, den := NumDen(e)
	if Has(den, v) && depth < maxLHopital {
		nv := num.Sub(v, a).Float(nil)
		dv := den.Sub(v, a).Float(nil)
		if (nearZero(nv) && nearZero(dv)) || (math.IsInf(nv, 0) && math.IsInf(dv, 0)) {
			q := MulOf(num.Diff(v), PowOf(den.Diff(v), N(-1)))
			if r, err := limitAt(q, v, a, dir, depth+1); err == nil {
				if r.Exact() {
					r.Method = "L'Hopital's rule"
				}
				return r, nil
			}
		}
	}
	return numericLimit(e, v, a, dir)
}

func isFinite(e Expr) bool {
	if len(FreeSymbols(e)) > 0 {
		return false
	}
	_, ok := Evalf(e, nil)
	return ok
}

func nearZero(f float64) bool { return math.Abs(f) < 1e-12 }

func limitAtInfinity(e Expr, v string, neg bool) (LimitResult, error) {
	if num, den, err := RationalParts(e, v); err == nil && num.Degree() >= 0 {
		dn, dd := num.Degree(), den.Degree()
		lead := new(big.Rat).Quo(num.Lead(), den.Lead())
		const method = "comparison of leading terms"
		switch {
		case dn < dd:
			return LimitResult{Value: N(0), Method: method}, nil
		case dn == dd:
			return LimitResult{Value: NumOf(lead), Method: method}, nil
		}
		negative := lead.Sign() < 0
		if neg && (dn-dd)%2 == 1 {
			negative = !negative
		}
		return LimitResult{Value: Inf{Neg: negative}, Method: method}, nil
	}

	sign := 1.0
	if neg {
		sign = -1
	}
	var xs []float64
	for k := 2; k <= 8; k++ {
		xs = append(xs, sign*math.Pow(10, float64(k)))
	}
	return classifySamples(sampleAt(e, v, xs), 1e-4)
}

func numericLimit(e Expr, v string, a Expr, dir Direction) (LimitResult, error) {
	af := a.Float(nil)
	side := func(s float64) (LimitResult, error) {
		var xs []float64
		for k := 3; k <= 7; k++ {
			xs = append(xs, af+s*math.Pow(10, -float64(k)))
		}
		return classifySamples(sampleAt(e, v, xs), 1e-3)
	}
	switch dir {
	case FromAbove:
		return side(1)
	case FromBelow:
		return side(-1)
	}
	right, errR := side(1)
	left, errL := side(-1)
	if errR != nil || errL != nil {
		return LimitResult{}, fmt.Errorf("%w: one-sided limits at %s are not both defined", ErrLimitDNE, a)
	}
	if right.String() != left.String() {
		return LimitResult{}, fmt.Errorf("%w: left limit %s differs from right limit %s", ErrLimitDNE, left, right)
	}
	return right, nil
}

func sampleAt(e Expr, v string, xs []float64) []float64 {
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = e.Float(map[string]float64{v: x})
	}
	return ys
}

// classifySamples decides between convergence, divergence to +-oo and
// non-existence from a sequence of samples approaching the limit point.
func classifySamples(ys []float64, tol float64) (LimitResult, error) {
	n := len(ys)
	last, prev, prev2 := ys[n-1], ys[n-2], ys[n-3]
	if math.IsNaN(last) || math.IsNaN(prev) {
		return LimitResult{}, fmt.Errorf("%w: the function is not defined near the point", ErrLimitDNE)
	}
	if math.IsInf(last, 0) || (math.Abs(last) > 1e6 && math.Abs(last) > math.Abs(prev) && math.Abs(prev) > math.Abs(prev2)) {
		if math.Signbit(last) == math.Signbit(prev) {
			return LimitResult{Value: Inf{Neg: last < 0}, Method: "numerical estimate"}, nil
		}
		return LimitResult{}, fmt.Errorf("%w: the function oscillates without bound", ErrLimitDNE)
	}
	if math.Abs(last-prev) <= tol*(1+math.Abs(last)) {
		if val, ok := Recognize(last); ok {
			return LimitResult{Value: val, Method: "numerical estimate"}, nil
		}
		return LimitResult{Approx: last, Method: "numerical estimate"}, nil
	}
	return LimitResult{}, fmt.Errorf("%w: the function oscillates", ErrLimitDNE)
}

// Recognize maps a float onto a simple exact value: e, pi or a
// small-denominator rational.
func Recognize(x float64) (Expr, bool) {
	if math.Abs(x) < 1e-5 {
		return N(0), true
	}
	if math.Abs(x-math.E) < 1e-5 {
		return FuncOf("exp", N(1)), true
	}
	if math.Abs(x-math.Pi) < 1e-5 {
		return Pi, true
	}
	for den := int64(1); den <= 100; den++ {
		num := math.Round(x * float64(den))
		if math.Abs(num/float64(den)-x) <= 1e-6*(1+math.Abs(x)) {
			return Q(int64(num), den), true
		}
	}
	return nil, false
}
