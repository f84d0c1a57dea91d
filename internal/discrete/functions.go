package discrete

import (
	"fmt"
	"strings"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

// ClassifyFunction decides whether f is a function from A to B and, if
// so, whether it is injective, surjective and bijective.
func ClassifyFunction(in *engine.Input) engine.Result {
	a, b, f := readSet(in, "A"), readSet(in, "B"), readRelation(in, "f")
	if in.Err() == nil {
		for _, p := range f {
			if !b.Has(p.B) {
				in.Reject("f", fmt.Errorf("pair %s maps to %s, which is not in B = %s", p, p.B, b))
				break
			}
		}
	}
	const title = "Function Classification"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Lines("Input", "A = "+a.String(), "B = "+b.String(), "f = "+f.String())

	domain := make([]string, len(f))
	for i, p := range f {
		domain[i] = p.A
	}
	dom := NewSet(domain...)
	if missing, extra := minus(a, dom), minus(dom, a); len(missing) > 0 || len(extra) > 0 {
		var why []string
		if len(missing) > 0 {
			why = append(why, fmt.Sprintf("%s in A has no image", missing))
		}
		if len(extra) > 0 {
			why = append(why, fmt.Sprintf("%s is mapped but not in A", extra))
		}
		n.Step("Domain check", "dom(f) = %s ≠ A: %s", dom, strings.Join(why, "; "))
		return n.Step("Conclusion", "NOT a function (domain mismatch)").Result()
	}

	image := make(map[string]string, len(f))
	for _, p := range f {
		if prev, ok := image[p.A]; ok {
			n.Step("Single-valued check", "%s maps to both %s and %s", p.A, prev, p.B)
			return n.Step("Conclusion", "NOT a function (one element maps to multiple)").Result()
		}
		image[p.A] = p.B
	}
	n.Step("Domain check", "dom(f) = %s = A, each element mapped exactly once", dom)
	n.Step("Valid function", "YES")

	injective := true
	hit := make(map[string]string, len(image))
	for _, x := range a {
		y := image[x]
		if prev, ok := hit[y]; ok {
			injective = false
			n.Step("Injective: NO", "f(%s) = f(%s) = %s", prev, x, y)
			break
		}
		hit[y] = x
	}
	if injective {
		n.Step("Injective: YES", "distinct elements of A have distinct images")
	}

	rng := NewSet(values(image)...)
	surjective := len(minus(b, rng)) == 0
	if surjective {
		n.Step("Surjective: YES", "range(f) = %s = B", rng)
	} else {
		n.Step("Surjective: NO", "range(f) = %s misses %s", rng, minus(b, rng))
	}

	bijective := injective && surjective
	n.Step("Bijective: "+yesNo(bijective), "a bijection is both injective and surjective")
	return n.Step("Conclusion", "Valid function; injective %s, surjective %s, bijective %s",
		yesNo(injective), yesNo(surjective), yesNo(bijective)).Result()
}

func values(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}
