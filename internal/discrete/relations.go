package discrete

import (
	"fmt"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

// RelationProperties checks a relation R on A for reflexivity, symmetry,
// antisymmetry and transitivity, naming the first counterexample of each.
func RelationProperties(in *engine.Input) engine.Result {
	a, r := readSet(in, "A"), readRelation(in, "R")
	if in.Err() == nil {
		within(in, "R", r, a, a)
	}
	const title = "Relation Properties"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Lines("Relation", "A = "+a.String(), "R = "+r.String())

	reflexive := true
	for _, x := range a {
		if !r.Has(Pair{x, x}) {
			reflexive = false
			n.Step("Reflexive: NO", "(%s,%s) is missing", x, x)
			break
		}
	}
	if reflexive {
		n.Step("Reflexive: YES", "(x,x) is in R for every x in A")
	}

	symmetric := true
	for _, p := range r {
		if !r.Has(Pair{p.B, p.A}) {
			symmetric = false
			n.Step("Symmetric: NO", "%s is in R but (%s,%s) is not", p, p.B, p.A)
			break
		}
	}
	if symmetric {
		n.Step("Symmetric: YES", "every pair (a,b) has its mirror (b,a)")
	}

	antisymmetric := true
	for _, p := range r {
		if p.A != p.B && r.Has(Pair{p.B, p.A}) {
			antisymmetric = false
			n.Step("Antisymmetric: NO", "%s and (%s,%s) are both in R with %s ≠ %s", p, p.B, p.A, p.A, p.B)
			break
		}
	}
	if antisymmetric {
		n.Step("Antisymmetric: YES", "no two distinct elements are related both ways")
	}

	transitive := true
search:
	for _, p := range r {
		for _, q := range r {
			if p.B == q.A && !r.Has(Pair{p.A, q.B}) {
				transitive = false
				n.Step("Transitive: NO", "%s and %s exist, but (%s,%s) is missing", p, q, p.A, q.B)
				break search
			}
		}
	}
	if transitive {
		n.Step("Transitive: YES", "whenever (a,b) and (b,c) are in R, so is (a,c)")
	}

	switch {
	case reflexive && symmetric && transitive:
		return n.Step("Conclusion", "R is an equivalence relation").Result()
	case reflexive && antisymmetric && transitive:
		return n.Step("Conclusion", "R is a partial order").Result()
	}
	return n.Step("Conclusion", "R is neither an equivalence relation nor a partial order").Result()
}

// InverseRelation swaps every pair of R.
func InverseRelation(in *engine.Input) engine.Result {
	r := readRelation(in, "R")
	const title = "Inverse Relation"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	inv := make([]Pair, len(r))
	lines := make([]string, len(r))
	for i, p := range r {
		inv[i] = Pair{p.B, p.A}
		lines[i] = fmt.Sprintf("%s -> %s", p, inv[i])
	}
	n := engine.Narrate(title)
	n.Step("Relation", "R = %s", r)
	if len(lines) > 0 {
		n.Lines("Swap each pair", lines...)
	}
	return n.Step("Result", "R^-1 = %s", NewRelation(inv...)).Result()
}

// Composition builds S∘R = {(a,c) : (a,b) in R and (b,c) in S}.
func Composition(in *engine.Input) engine.Result {
	r, s := readRelation(in, "R"), readRelation(in, "S")
	const title = "Composition of Relations"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n := engine.Narrate(title)
	n.Lines("Relations", "R = "+r.String(), "S = "+s.String())
	n.Step("Rule", "(a,c) is in S∘R when (a,b) is in R and (b,c) is in S for some b")
	var out []Pair
	var links []string
	for _, p := range r {
		for _, q := range s {
			if p.B == q.A {
				out = append(out, Pair{p.A, q.B})
				links = append(links, fmt.Sprintf("%s in R, %s in S gives (%s,%s)", p, q, p.A, q.B))
			}
		}
	}
	if len(links) == 0 {
		links = append(links, "no pair of R ends where a pair of S begins")
	}
	n.Lines("Chain the pairs", links...)
	return n.Step("Result", "S∘R = %s", NewRelation(out...)).Result()
}
