// Package symbolic holds the calculus solvers: limits, derivatives,
// integrals, series and first-order differential equations. Every result is
// computed exactly by the cas kernel; decimals are only shown alongside.
package symbolic

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/Shy5ta/studentSuite/internal/cas"
	"github.com/Shy5ta/studentSuite/internal/engine"
)

var errInterval = errors.New("interval must be two numbers a, b with a < b")

// fn reads an expression field that may only use the given variables.
func fn(in *engine.Input, name string, vars ...string) cas.Expr {
	e := in.Expr(name)
	for _, s := range cas.FreeSymbols(e) {
		if !slices.Contains(vars, s) {
			in.Reject(name, fmt.Errorf("%s may only use %s, found %s", name, strings.Join(vars, " and "), s))
			break
		}
	}
	return e
}

// finitePoint reads an exact number and rejects infinity.
func finitePoint(in *engine.Input, name string) cas.Expr {
	p := in.Point(name)
	if _, ok := p.(cas.Inf); ok {
		in.Reject(name, fmt.Errorf("%s must be finite", name))
		return cas.N(0)
	}
	return p
}

// interval reads "a, b" as two exact finite numbers with a < b.
func interval(in *engine.Input, name string) (a, b cas.Expr) {
	parts := strings.Split(in.Text(name), ",")
	if len(parts) != 2 {
		in.Reject(name, errInterval)
		return cas.N(0), cas.N(1)
	}
	ends := make([]cas.Expr, 2)
	for i, p := range parts {
		e, err := cas.Parse(p)
		if err != nil {
			in.Reject(name, err)
			return cas.N(0), cas.N(1)
		}
		if !finite(e) {
			in.Reject(name, fmt.Errorf("%w: %q is not a finite number", errInterval, strings.TrimSpace(p)))
			return cas.N(0), cas.N(1)
		}
		ends[i] = e
	}
	if value(ends[0]) >= value(ends[1]) {
		in.Reject(name, errInterval)
		return cas.N(0), cas.N(1)
	}
	return ends[0], ends[1]
}

// finite reports whether e is a constant with a finite value.
func finite(e cas.Expr) bool {
	if len(cas.FreeSymbols(e)) > 0 {
		return false
	}
	_, ok := cas.Evalf(e, nil)
	return ok
}

func value(e cas.Expr) float64 {
	v, _ := cas.Evalf(e, nil)
	return v
}

func zero(e cas.Expr) bool {
	if cas.IsZero(e) {
		return true
	}
	v, ok := cas.Evalf(e, nil)
	return ok && len(cas.FreeSymbols(e)) == 0 && math.Abs(v) < 1e-12
}

func minus(a, b cas.Expr) cas.Expr { return cas.AddOf(a, cas.MulOf(cas.N(-1), b)) }
func over(a, b cas.Expr) cas.Expr  { return cas.MulOf(a, cas.PowOf(b, cas.N(-1))) }

// approx shows an exact constant with its decimal value when that adds
// information.
func approx(e cas.Expr) string {
	if _, ok := e.(cas.Num); ok || !finite(e) {
		return e.String()
	}
	return e.String() + " ≈ " + engine.Fixed(value(e), 4)
}

// fromFloat turns a numerically found point back into an exact expression.
func fromFloat(x float64) cas.Expr {
	if e, ok := cas.Recognize(x); ok {
		return e
	}
	r, _ := cas.Parse(engine.Fixed(x, 6))
	return r
}
