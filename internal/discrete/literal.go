// Package discrete implements the finite-structure solvers: propositional
// truth tables, set algebra, relation properties, function classification
// and integer arithmetic.
package discrete

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

var errLiteral = errors.New("malformed literal")

// Set is a sorted list of distinct element tokens.
type Set []string

// Pair is an ordered pair of element tokens.
type Pair struct{ A, B string }

func (p Pair) String() string { return "(" + p.A + "," + p.B + ")" }

// Relation is a sorted list of distinct pairs.
type Relation []Pair

// less orders numeric tokens by value before all other tokens, which sort
// as strings.
func less(a, b string) bool {
	x, errA := strconv.ParseFloat(a, 64)
	y, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		if x != y {
			return x < y
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	}
	return a < b
}

func pairLess(p, q Pair) bool {
	if p.A != q.A {
		return less(p.A, q.A)
	}
	return less(p.B, q.B)
}

// NewSet sorts and deduplicates tokens.
func NewSet(tokens ...string) Set {
	seen := make(map[string]bool, len(tokens))
	out := make(Set, 0, len(tokens))
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

// NewRelation sorts and deduplicates pairs.
func NewRelation(pairs ...Pair) Relation {
	seen := make(map[Pair]bool, len(pairs))
	out := make(Relation, 0, len(pairs))
	for _, p := range pairs {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return pairLess(out[i], out[j]) })
	return out
}

func (s Set) Has(x string) bool {
	for _, e := range s {
		if e == x {
			return true
		}
	}
	return false
}

func (s Set) String() string { return "{" + strings.Join(s, ", ") + "}" }

func (r Relation) Has(p Pair) bool {
	for _, q := range r {
		if q == p {
			return true
		}
	}
	return false
}

func (r Relation) String() string {
	parts := make([]string, len(r))
	for i, p := range r {
		parts[i] = p.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// unbrace strips one pair of enclosing braces.
func unbrace(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

// ParseSet reads "1, 2, 3" or "{a, b}". Tokens are trimmed; the empty
// string and "{}" are the empty set.
func ParseSet(s string) (Set, error) {
	body := unbrace(s)
	if body == "" {
		return Set{}, nil
	}
	parts := strings.Split(body, ",")
	tokens := make([]string, 0, len(parts))
	for i, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			return nil, fmt.Errorf("%w: element %d is empty", errLiteral, i+1)
		}
		if strings.ContainsAny(t, "{}()") {
			return nil, fmt.Errorf("%w: element %q contains brackets", errLiteral, t)
		}
		tokens = append(tokens, t)
	}
	return NewSet(tokens...), nil
}

// ParseRelation reads "(1,a), (2,b)" with optional enclosing braces.
func ParseRelation(s string) (Relation, error) {
	body := unbrace(s)
	var pairs []Pair
	for i := 0; i < len(body); {
		switch c := body[i]; {
		case c == ' ' || c == '\t' || c == ',' || c == '\n':
			i++
			continue
		case c != '(':
			return nil, fmt.Errorf("%w: expected '(' at position %d, found %q", errLiteral, i+1, c)
		}
		end := strings.IndexByte(body[i:], ')')
		if end < 0 {
			return nil, fmt.Errorf("%w: pair %d is missing ')'", errLiteral, len(pairs)+1)
		}
		inner := body[i+1 : i+end]
		parts := strings.Split(inner, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: pair %d (%s) needs exactly two elements", errLiteral, len(pairs)+1, inner)
		}
		a, b := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if a == "" || b == "" || strings.ContainsAny(inner, "(") {
			return nil, fmt.Errorf("%w: pair %d (%s) has an empty element", errLiteral, len(pairs)+1, inner)
		}
		pairs = append(pairs, Pair{a, b})
		i += end + 1
	}
	return NewRelation(pairs...), nil
}

func readSet(in *engine.Input, name string) Set {
	s, err := ParseSet(in.Text(name))
	if err != nil {
		in.Reject(name, err)
		return nil
	}
	return s
}

func readRelation(in *engine.Input, name string) Relation {
	r, err := ParseRelation(in.Text(name))
	if err != nil {
		in.Reject(name, err)
		return nil
	}
	return r
}

// within rejects a relation that uses elements outside the given sets.
func within(in *engine.Input, name string, r Relation, from, to Set) {
	for _, p := range r {
		switch {
		case !from.Has(p.A):
			in.Reject(name, fmt.Errorf("pair %s uses %s, which is not in %s", p, p.A, from))
			return
		case !to.Has(p.B):
			in.Reject(name, fmt.Errorf("pair %s uses %s, which is not in %s", p, p.B, to))
			return
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
