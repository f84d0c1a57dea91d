package engine

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Shy5ta/studentSuite/internal/cas"
	"github.com/Shy5ta/studentSuite/internal/matparse"
)

var errNotFinite = errors.New("not a finite number")

// Input is a read-only view over the raw fields of one solve call. The
// typed accessors record the first parse failure instead of returning it,
// so a solver reads every field and then checks Err once.
type Input struct {
	problem ProblemType
	raw     map[string]string
	read    map[string]bool
	err     error
}

// NewInput binds raw field text to a problem's declared fields.
func NewInput(p ProblemType, raw map[string]string) *Input {
	return &Input{problem: p, raw: raw, read: make(map[string]bool, len(p.Fields))}
}

// Err returns the first parse failure, a *FieldError wrapping ErrInputParse.
func (in *Input) Err() error { return in.err }

// Unread lists declared fields the solver never looked at.
func (in *Input) Unread() []string {
	var out []string
	for _, f := range in.problem.Fields {
		if !in.read[f.Name] {
			out = append(out, f.Name)
		}
	}
	return out
}

func (in *Input) field(name string) InputField {
	f, ok := in.problem.Field(name)
	if !ok {
		panic(fmt.Sprintf("engine: problem %s reads undeclared field %q", in.problem.ID, name))
	}
	in.read[name] = true
	return f
}

// Reject records cause as the parse failure of field name.
func (in *Input) Reject(name string, cause error) {
	f := in.field(name)
	if in.err == nil {
		in.err = fieldError(name, f.Kind, cause)
	}
}

// Text returns the trimmed raw text of a field.
func (in *Input) Text(name string) string {
	in.field(name)
	return strings.TrimSpace(in.raw[name])
}

// Float parses a finite decimal number.
func (in *Input) Float(name string) float64 {
	s := in.Text(name)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		in.Reject(name, fmt.Errorf("%q is not a number", s))
		return 0
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		in.Reject(name, errNotFinite)
		return 0
	}
	return v
}

// Int parses a whole number; "5.0" is accepted.
func (in *Input) Int(name string) int {
	s := in.Text(name)
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != math.Trunc(v) || math.Abs(v) > 1<<31 {
		in.Reject(name, fmt.Errorf("%q is not a whole number", s))
		return 0
	}
	return int(v)
}

// Floats parses a comma-separated list of exactly n numbers, such as an
// interval "a, b".
func (in *Input) Floats(name string, n int) []float64 {
	s := in.Text(name)
	parts := strings.Split(s, ",")
	if len(parts) != n {
		in.Reject(name, fmt.Errorf("expected %d comma-separated numbers, got %q", n, s))
		return make([]float64, n)
	}
	out := make([]float64, n)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			in.Reject(name, fmt.Errorf("%q is not a number", strings.TrimSpace(p)))
			return make([]float64, n)
		}
		out[i] = v
	}
	return out
}

// Expr parses a symbolic expression.
func (in *Input) Expr(name string) cas.Expr {
	e, err := cas.Parse(in.Text(name))
	if err != nil {
		in.Reject(name, err)
		return cas.N(0)
	}
	return e
}

// Equation parses "lhs = rhs" and keeps the right-hand side.
func (in *Input) Equation(name string) cas.Expr {
	e, err := cas.ParseEquation(in.Text(name))
	if err != nil {
		in.Reject(name, err)
		return cas.N(0)
	}
	return e
}

// Point parses an exact constant such as 2, -1/2, pi or oo.
func (in *Input) Point(name string) cas.Expr {
	s := in.Text(name)
	e, err := cas.Parse(s)
	if err != nil {
		in.Reject(name, err)
		return cas.N(0)
	}
	if syms := cas.FreeSymbols(e); len(syms) > 0 {
		in.Reject(name, fmt.Errorf("%q must be a number, not an expression in %s", s, strings.Join(syms, ", ")))
		return cas.N(0)
	}
	return e
}

// Matrix parses a single rectangular numeric block.
func (in *Input) Matrix(name string) matparse.Matrix {
	m := matparse.ParseBlock(in.Text(name))
	if _, _, err := matparse.Rectangular(m); err != nil {
		in.Reject(name, err)
		return nil
	}
	return m
}

// Blocks splits a field on blank lines and parses the first n blocks.
// Blocks are not checked for shape.
func (in *Input) Blocks(name string, n int) []matparse.Matrix {
	blocks, err := matparse.SplitBlocks(in.Text(name), n)
	if err != nil {
		in.Reject(name, err)
		return nil
	}
	out := make([]matparse.Matrix, n)
	for i := range out {
		out[i] = matparse.ParseBlock(blocks[i])
		if len(out[i]) == 0 {
			in.Reject(name, fmt.Errorf("block %d: %w", i+1, matparse.ErrEmpty))
			return nil
		}
	}
	return out
}
