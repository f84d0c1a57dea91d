package discrete

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

// maxPowerSet bounds the element count so the listing stays printable:
// 2^12 = 4096 subsets.
const maxPowerSet = 12

var errTooLarge = errors.New("set is too large to list")

func union(a, b Set) Set { return NewSet(append(append([]string{}, a...), b...)...) }

func intersect(a, b Set) Set {
	var out []string
	for _, x := range a {
		if b.Has(x) {
			out = append(out, x)
		}
	}
	return NewSet(out...)
}

func minus(a, b Set) Set {
	var out []string
	for _, x := range a {
		if !b.Has(x) {
			out = append(out, x)
		}
	}
	return NewSet(out...)
}

func subset(a, b Set) bool { return len(minus(a, b)) == 0 }

// SetOperations lists union, intersection, both differences and the
// symmetric difference of A and B.
func SetOperations(in *engine.Input) engine.Result {
	a, b := readSet(in, "A"), readSet(in, "B")
	const title = "Set Operations"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Lines("Sets", "A = "+a.String(), "B = "+b.String())
	n.Step("Union (in A or B)", "A ∪ B = %s", union(a, b))
	n.Step("Intersection (in both)", "A ∩ B = %s", intersect(a, b))
	n.Step("Difference (in A, not in B)", "A - B = %s", minus(a, b))
	n.Step("Difference (in B, not in A)", "B - A = %s", minus(b, a))
	return n.Lines("Symmetric difference (in exactly one)",
		"A Δ B = (A - B) ∪ (B - A)",
		"      = "+union(minus(a, b), minus(b, a)).String()).Result()
}

// PowerSet lists every subset of A, grouped by size.
func PowerSet(in *engine.Input) engine.Result {
	a := readSet(in, "A")
	const title = "Power Set"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}
	if len(a) > maxPowerSet {
		return engine.Fail(title, fmt.Errorf("%w: A has %d elements, so P(A) has %d subsets; at most %d elements are listed",
			errTooLarge, len(a), 1<<len(a), maxPowerSet))
	}

	total := 1 << len(a)
	bySize := make([][]string, len(a)+1)
	for mask := 0; mask < total; mask++ {
		var members []string
		for i, x := range a {
			if mask&(1<<i) != 0 {
				members = append(members, x)
			}
		}
		bySize[len(members)] = append(bySize[len(members)], Set(members).String())
	}

	n := engine.Narrate(title)
	n.Step("Set", "A = %s has n = %d elements", a, len(a))
	n.Step("Count", "|P(A)| = 2^n = 2^%d = %d", len(a), total)
	lines := make([]string, 0, len(bySize))
	var all []string
	for size, group := range bySize {
		lines = append(lines, fmt.Sprintf("size %d: %s", size, strings.Join(group, ", ")))
		all = append(all, group...)
	}
	n.Lines("Subsets by size", lines...)
	return n.Step("Result", "P(A) = {%s}", strings.Join(all, ", ")).Result()
}

// Subset decides whether A ⊆ B and whether the inclusion is proper.
func Subset(in *engine.Input) engine.Result {
	a, b := readSet(in, "A"), readSet(in, "B")
	const title = "Subset Check"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Lines("Sets", "A = "+a.String(), "B = "+b.String())
	lines := make([]string, 0, len(a))
	for _, x := range a {
		where := "in B"
		if !b.Has(x) {
			where = "NOT in B"
		}
		lines = append(lines, fmt.Sprintf("%s is %s", x, where))
	}
	if len(lines) == 0 {
		lines = append(lines, "A is empty, and the empty set is a subset of every set")
	}
	n.Lines("Check each element of A", lines...)

	if missing := minus(a, b); len(missing) > 0 {
		n.Step("Subset", "A ⊆ B: NO, because %s is not in B", missing)
		return n.Step("Conclusion", "A is not a subset of B").Result()
	}
	n.Step("Subset", "A ⊆ B: YES")
	if extra := minus(b, a); len(extra) > 0 {
		n.Step("Proper subset", "A ⊂ B: YES, since B also contains %s", extra)
		return n.Step("Conclusion", "A is a proper subset of B").Result()
	}
	n.Step("Proper subset", "A ⊂ B: NO, since A = B")
	return n.Step("Conclusion", "A is a subset of B but not a proper subset").Result()
}
