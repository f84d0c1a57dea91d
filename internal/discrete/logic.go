package discrete

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

var errFormula = errors.New("malformed formula")

// formula is a parsed propositional expression.
type formula interface {
	eval(env map[rune]bool) bool
	String() string
}

type atom rune

type not struct{ x formula }

// binary covers the four connectives, keyed by their operator text.
type binary struct {
	op   string
	l, r formula
}

func (a atom) eval(env map[rune]bool) bool { return env[rune(a)] }
func (a atom) String() string              { return string(rune(a)) }

func (n not) eval(env map[rune]bool) bool { return !n.x.eval(env) }
func (n not) String() string              { return "~" + n.x.String() }

func (b binary) eval(env map[rune]bool) bool {
	l, r := b.l.eval(env), b.r.eval(env)
	switch b.op {
	case "&":
		return l && r
	case "|":
		return l || r
	case "->":
		return !l || r
	}
	return l == r
}

func (b binary) String() string { return "(" + b.l.String() + " " + b.op + " " + b.r.String() + ")" }

// Grammar, loosest first:
//
//	iff   = imp { "<->" imp }
//	imp   = or [ "->" imp ]
//	or    = and { "|" and }
//	and   = unary { "&" unary }
//	unary = "~" unary | letter | "(" iff ")"
type logicParser struct {
	src  []rune
	pos  int
	vars map[rune]bool
}

// parseFormula parses a formula over single-letter variables using
// ~ & | -> <-> and parentheses, and returns its variables sorted.
func parseFormula(s string) (formula, []rune, error) {
	p := &logicParser{src: []rune(s), vars: map[rune]bool{}}
	f, err := p.iff()
	if err != nil {
		return nil, nil, err
	}
	p.space()
	if p.pos < len(p.src) {
		return nil, nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	vars := make([]rune, 0, len(p.vars))
	for v := range p.vars {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i] < vars[j] })
	return f, vars, nil
}

func (p *logicParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at column %d: %s", errFormula, p.pos+1, fmt.Sprintf(format, args...))
}

func (p *logicParser) space() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

// accept consumes tok if it comes next.
func (p *logicParser) accept(tok string) bool {
	p.space()
	if strings.HasPrefix(string(p.src[p.pos:]), tok) {
		p.pos += len([]rune(tok))
		return true
	}
	return false
}

func (p *logicParser) iff() (formula, error) {
	l, err := p.imp()
	for err == nil && p.accept("<->") {
		var r formula
		if r, err = p.imp(); err == nil {
			l = binary{"<->", l, r}
		}
	}
	return l, err
}

func (p *logicParser) imp() (formula, error) {
	l, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.accept("->") {
		r, err := p.imp()
		if err != nil {
			return nil, err
		}
		return binary{"->", l, r}, nil
	}
	return l, nil
}

func (p *logicParser) or() (formula, error) {
	l, err := p.and()
	for err == nil && p.accept("|") {
		var r formula
		if r, err = p.and(); err == nil {
			l = binary{"|", l, r}
		}
	}
	return l, err
}

func (p *logicParser) and() (formula, error) {
	l, err := p.unary()
	for err == nil && p.accept("&") {
		var r formula
		if r, err = p.unary(); err == nil {
			l = binary{"&", l, r}
		}
	}
	return l, err
}

func (p *logicParser) unary() (formula, error) {
	p.space()
	if p.pos >= len(p.src) {
		return nil, p.errorf("formula ends early")
	}
	c := p.src[p.pos]
	switch {
	case c == '~':
		p.pos++
		x, err := p.unary()
		if err != nil {
			return nil, err
		}
		return not{x}, nil
	case c == '(':
		p.pos++
		f, err := p.iff()
		if err != nil {
			return nil, err
		}
		if !p.accept(")") {
			return nil, p.errorf("missing ')'")
		}
		return f, nil
	case unicode.IsLetter(c):
		p.pos++
		if p.pos < len(p.src) && unicode.IsLetter(p.src[p.pos]) {
			return nil, p.errorf("variables are single letters; join them with a connective")
		}
		p.vars[c] = true
		return atom(c), nil
	}
	return nil, p.errorf("unexpected %q", c)
}

func tf(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

// table evaluates f on every assignment, the first variable changing
// slowest and T listed before F.
func table(f formula, vars []rune) (rows []string, results []bool) {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = string(v)
	}
	header := strings.Join(names, " | ") + " || Result"
	rows = append(rows, header, strings.Repeat("-", len(header)))

	total := 1 << len(vars)
	env := make(map[rune]bool, len(vars))
	for row := 0; row < total; row++ {
		cells := make([]string, len(vars))
		for i, v := range vars {
			// Bit set means F so row 0 is all T.
			env[v] = row&(1<<(len(vars)-1-i)) == 0
			cells[i] = tf(env[v])
		}
		r := f.eval(env)
		results = append(results, r)
		rows = append(rows, strings.Join(cells, " | ")+" || "+strings.Repeat(" ", len("Result")-1)+tf(r))
	}
	return rows, results
}

// classify names a formula by its column of results.
func classify(results []bool) string {
	trues := 0
	for _, r := range results {
		if r {
			trues++
		}
	}
	switch trues {
	case len(results):
		return "TAUTOLOGY (always true)"
	case 0:
		return "CONTRADICTION (always false)"
	}
	return "CONTINGENCY (sometimes true, sometimes false)"
}

func readFormula(in *engine.Input, name string) (formula, []rune) {
	f, vars, err := parseFormula(in.Text(name))
	if err != nil {
		in.Reject(name, err)
	}
	return f, vars
}

func formulaSteps(title string, f formula, vars []rune) (*engine.Narration, []bool) {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = string(v)
	}
	rows, results := table(f, vars)
	n := engine.Narrate(title)
	n.Step("Formula (fully bracketed)", "%s", f)
	n.Step("Variables", "%s, so 2^%d = %d rows", strings.Join(names, ", "), len(vars), len(results))
	n.Lines("Truth table", rows...)
	return n, results
}

// TruthTable prints the full truth table of a formula.
func TruthTable(in *engine.Input) engine.Result {
	f, vars := readFormula(in, "formula")
	const title = "Truth Table"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n, results := formulaSteps(title, f, vars)
	trues := 0
	for _, r := range results {
		if r {
			trues++
		}
	}
	return n.Step("Summary", "True in %d of %d rows", trues, len(results)).Result()
}

// Tautology classifies a formula as a tautology, contradiction or
// contingency from its truth table.
func Tautology(in *engine.Input) engine.Result {
	f, vars := readFormula(in, "formula")
	const title = "Tautology Check"
	if err := in.Err(); err != nil {
		return engine.Fail(title, err)
	}

	n, results := formulaSteps(title, f, vars)
	return n.Step("Conclusion", "%s", classify(results)).Result()
}
