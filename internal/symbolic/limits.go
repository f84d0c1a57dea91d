package symbolic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Shy5ta/studentSuite/internal/cas"
	"github.com/Shy5ta/studentSuite/internal/engine"
)

// maxLHopital bounds the number of differentiation rounds shown.
const maxLHopital = 6

// substitution narrates the direct-substitution check of f at a.
func substitution(n *engine.Narration, f cas.Expr, v string, a cas.Expr) {
	if _, ok := a.(cas.Inf); ok {
		return
	}
	label := "Direct substitution"
	if val := f.Sub(v, a); finite(val) {
		n.Step(label, "f(%s) = %s, so f is continuous there", a, approx(val))
		return
	}
	num, den := cas.NumDen(f)
	nv, dv := num.Sub(v, a), den.Sub(v, a)
	switch {
	case zero(nv) && zero(dv):
		n.Step(label, "f(%s) gives 0/0, an indeterminate form; simplify or use L'Hopital's rule", a)
	case zero(dv):
		n.Step(label, "f(%s) gives %s/0, so f grows without bound near %s", a, nv, a)
	default:
		n.Step(label, "f(%s) is undefined", a)
	}
}

// limitStep finishes a narration with a limit value, or with the reason
// the limit does not exist.
func limitStep(n *engine.Narration, title, lim string, r cas.LimitResult, err error) engine.Result {
	switch {
	case errors.Is(err, cas.ErrLimitDNE):
		return n.Step("Result", "%s: %s", lim, strings.TrimPrefix(err.Error(), "cas: ")).Result()
	case err != nil:
		return engine.Fail(title, err)
	}
	n.Step("Method", "%s", r.Method)
	return n.Step("Result", "%s = %s", lim, r).Result()
}

// LimitPoint evaluates the two-sided limit of f(x) as x approaches a.
func LimitPoint(in *engine.Input) engine.Result {
	f, a := fn(in, "f", "x"), in.Point("a")
	const title = "Limit of a Function"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	lim := fmt.Sprintf("lim(x->%s) %s", a, f)
	n.Step("Calculate", "%s", lim)
	substitution(n, f, "x", a)
	r, err := cas.Limit(f, "x", a, cas.Both)
	return limitStep(n, title, lim, r, err)
}

// OneSidedLimit evaluates a left or right hand limit.
func OneSidedLimit(in *engine.Input) engine.Result {
	f, a := fn(in, "f", "x"), finitePoint(in, "a")
	var dir cas.Direction
	switch d := in.Text("direction"); d {
	case "+", "right":
		dir = cas.FromAbove
	case "-", "left":
		dir = cas.FromBelow
	default:
		in.Reject("direction", fmt.Errorf("direction must be + (from the right) or - (from the left), got %q", d))
	}
	const title = "One-Sided Limit"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	side := "right (x > %s)"
	if dir == cas.FromBelow {
		side = "left (x < %s)"
	}
	n := engine.Narrate(title)
	lim := fmt.Sprintf("lim(x->%s%s) %s", a, dir, f)
	n.Step("Calculate", "%s", lim)
	n.Step("Approach", "x approaches %s from the "+side, a, a)
	substitution(n, f, "x", a)
	r, err := cas.Limit(f, "x", a, dir)
	return limitStep(n, title, lim, r, err)
}

// degreeRule explains a limit at infinity of a rational function by
// comparing degrees.
func degreeRule(n *engine.Narration, f cas.Expr, v string) {
	num, den, err := cas.RationalParts(f, v)
	if err != nil || num.Degree() < 0 {
		return
	}
	dn, dd := num.Degree(), den.Degree()
	var rule string
	switch {
	case dn < dd:
		rule = "the denominator has higher degree, so the quotient tends to 0"
	case dn == dd:
		rule = fmt.Sprintf("equal degrees, so the limit is the ratio of leading coefficients %s/%s",
			num.Lead().RatString(), den.Lead().RatString())
	default:
		rule = "the numerator has higher degree, so the quotient grows without bound"
	}
	n.Lines("Compare degrees (divide through by the highest power)",
		fmt.Sprintf("deg(numerator) = %d, deg(denominator) = %d", dn, dd), rule)
}

// LimitInfinity evaluates the limit of f(x) as x grows without bound.
func LimitInfinity(in *engine.Input) engine.Result {
	f := fn(in, "f", "x")
	const title = "Limit at Infinity"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	lim := fmt.Sprintf("lim(x->oo) %s", f)
	n.Step("Calculate", "%s", lim)
	degreeRule(n, f, "x")
	r, err := cas.Limit(f, "x", cas.Oo, cas.Both)
	return limitStep(n, title, lim, r, err)
}

// SequenceLimit evaluates the limit of a sequence a(n) as n grows.
func SequenceLimit(in *engine.Input) engine.Result {
	f := fn(in, "term", "n")
	const title = "Limit of a Sequence"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	lim := fmt.Sprintf("lim(n->oo) %s", f)
	n.Step("Calculate", "%s", lim)
	degreeRule(n, f, "n")
	r, err := cas.Limit(f, "n", cas.Oo, cas.Both)
	if err == nil {
		if _, inf := r.Value.(cas.Inf); inf {
			n.Step("Behaviour", "the terms grow without bound, so the sequence diverges")
		} else {
			n.Step("Behaviour", "the terms settle on a finite value, so the sequence converges")
		}
	}
	return limitStep(n, title, lim, r, err)
}

// valueAt evaluates e at a, taking a limit when a is infinite.
func valueAt(e cas.Expr, a cas.Expr) cas.Expr {
	if _, ok := a.(cas.Inf); ok {
		r, err := cas.Limit(e, "x", a, cas.Both)
		if err != nil || !r.Exact() {
			return cas.Undefined{}
		}
		return r.Value
	}
	return e.Sub("x", a)
}

func infinite(e cas.Expr) bool {
	_, ok := e.(cas.Inf)
	return ok
}

// LHopital steps through L'Hopital's rule, differentiating numerator and
// denominator until the quotient is no longer indeterminate.
func LHopital(in *engine.Input) engine.Result {
	f, a := fn(in, "f", "x"), in.Point("a")
	const title = "L'Hopital's Rule"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	lim := fmt.Sprintf("lim(x->%s) %s", a, f)
	n.Step("Calculate", "%s", lim)
	num, den := cas.NumDen(f)
	n.Lines("Split into numerator and denominator", "N(x) = "+num.String(), "D(x) = "+den.String())

	for round := 1; round <= maxLHopital; round++ {
		nv, dv := valueAt(num, a), valueAt(den, a)
		form := ""
		switch {
		case zero(nv) && zero(dv):
			form = "0/0"
		case infinite(nv) && infinite(dv):
			form = "oo/oo"
		}
		if form == "" {
			if round == 1 {
				n.Step("Check the form", "N(%s) = %s and D(%s) = %s; not indeterminate, so the rule does not apply", a, nv, a, dv)
			} else {
				n.Step("Evaluate", "N(%s) = %s and D(%s) = %s; no longer indeterminate", a, nv, a, dv)
			}
			break
		}
		num, den = num.Diff("x"), den.Diff("x")
		n.Lines(fmt.Sprintf("Round %d: %s form, differentiate top and bottom", round, form),
			"N'(x) = "+num.String(),
			"D'(x) = "+den.String())
	}

	r, err := cas.Limit(f, "x", a, cas.Both)
	return limitStep(n, title, lim, r, err)
}
