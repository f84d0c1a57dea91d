package symbolic

import (
	"fmt"

	"github.com/Shy5ta/studentSuite/internal/cas"
	"github.com/Shy5ta/studentSuite/internal/engine"
)

const maxTerms = 12

// Taylor expands f(x) about a, keeping the terms of order below n.
func Taylor(in *engine.Input) engine.Result {
	f, a, order := fn(in, "f", "x"), finitePoint(in, "a"), in.Int("order")
	if in.Err() == nil && (order < 1 || order > maxTerms) {
		in.Reject("order", fmt.Errorf("order must be between 1 and %d, got %d", maxTerms, order))
	}
	const title = "Taylor Series"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	terms, poly, err := cas.Taylor(f, "x", a, order)
	if err != nil {
		return engine.Fail(title, err)
	}
	n := engine.Narrate(title)
	n.Step("Expand", "f(x) = %s about x = %s, keeping terms of order below %d", f, a, order)
	n.Step("Formula", "f(x) ≈ Σ f^(k)(a)/k! * (x - a)^k")
	lines := make([]string, len(terms))
	for i, t := range terms {
		lines[i] = fmt.Sprintf("k = %d: %s(%s) = %s, term = %s", t.Order, prime("f", t.Order), a, t.Derivative, t.Term)
	}
	n.Lines("Terms", lines...)
	return n.Step("Result", "P(x) = %s", poly).Result()
}
