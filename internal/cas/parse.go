package cas

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
	"text/scanner"
)

var ErrSyntax = errors.New("cas: syntax error")

// ParseError locates a syntax error in the input. Column is 1-based.
type ParseError struct {
	Input  string
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cas: %s at column %d", e.Msg, e.Column)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }

var functions = map[string]string{
	"sin": "sin", "cos": "cos", "tan": "tan",
	"asin": "asin", "acos": "acos", "atan": "atan",
	"arcsin": "asin", "arccos": "acos", "arctan": "atan",
	"sinh": "sinh", "cosh": "cosh", "tanh": "tanh",
	"exp": "exp", "log": "log", "ln": "log",
	"sqrt": "sqrt", "abs": "abs",
}

// lex wraps text/scanner with one token of lookahead.
type lex struct {
	scanner.Scanner
	input string
	token rune
	text  string
	col   int
}

func (l *lex) next() {
	l.token = l.Scan()
	l.text = l.TokenText()
	l.col = l.Position.Column
	if l.token == scanner.EOF || l.col == 0 {
		l.col = len(l.input) + 1
	}
	if l.token == '*' && l.Peek() == '*' {
		l.Next()
		l.token, l.text = '^', "**"
	}
}

func (l *lex) fail(format string, args ...any) {
	panic(&ParseError{Input: l.input, Column: l.col, Msg: fmt.Sprintf(format, args...)})
}

func (l *lex) expect(r rune) {
	if l.token != r {
		if l.operand() {
			l.fail("expected %q, found %s; use * for multiplication", r, l.describe())
		}
		l.fail("expected %q, found %s", r, l.describe())
	}
	l.next()
}

func (l *lex) operand() bool {
	switch l.token {
	case scanner.Ident, scanner.Int, scanner.Float, '(':
		return true
	}
	return false
}

func (l *lex) describe() string {
	if l.token == scanner.EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", l.text)
}

// Parse reads an expression using + - * / ^ (or **), parentheses, numbers,
// single-letter variables, pi, E, oo and the elementary functions.
func Parse(input string) (e Expr, err error) {
	if strings.TrimSpace(input) == "" {
		return nil, &ParseError{Input: input, Column: 1, Msg: "empty expression"}
	}
	l := &lex{input: input}
	l.Init(strings.NewReader(input))
	l.Mode = scanner.ScanIdents | scanner.ScanFloats | scanner.ScanInts
	l.Error = func(s *scanner.Scanner, msg string) {
		l.col = s.Pos().Column
		l.fail("%s", msg)
	}

	defer func() {
		if r := recover(); r != nil {
			pe, ok := r.(*ParseError)
			if !ok {
				panic(r)
			}
			e, err = nil, pe
		}
	}()

	l.next()
	e = l.expr()
	if l.token != scanner.EOF {
		if l.operand() {
			l.fail("unexpected %s; use * for multiplication", l.describe())
		}
		l.fail("unexpected %s", l.describe())
	}
	return e, nil
}

// ParseEquation parses "lhs = rhs" and returns rhs. Input without '=' is
// parsed whole.
func ParseEquation(input string) (Expr, error) {
	i := strings.Index(input, "=")
	if i < 0 {
		return Parse(input)
	}
	if strings.Count(input, "=") > 1 {
		return nil, &ParseError{Input: input, Column: strings.LastIndex(input, "=") + 1, Msg: "more than one '='"}
	}
	if strings.TrimSpace(input[:i]) == "" {
		return nil, &ParseError{Input: input, Column: 1, Msg: "missing left-hand side"}
	}
	e, err := Parse(input[i+1:])
	var pe *ParseError
	if errors.As(err, &pe) {
		return nil, &ParseError{Input: input, Column: pe.Column + i + 1, Msg: pe.Msg}
	}
	return e, err
}

// MustParse is Parse for trusted constant input.
func MustParse(input string) Expr {
	e, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return e
}

func (l *lex) expr() Expr {
	e := l.term()
	for l.token == '+' || l.token == '-' {
		op := l.token
		l.next()
		rhs := l.term()
		if op == '-' {
			rhs = MulOf(N(-1), rhs)
		}
		e = AddOf(e, rhs)
	}
	return e
}

func (l *lex) term() Expr {
	e := l.unary()
	for l.token == '*' || l.token == '/' {
		op := l.token
		l.next()
		rhs := l.unary()
		if op == '/' {
			rhs = PowOf(rhs, N(-1))
		}
		e = MulOf(e, rhs)
	}
	return e
}

func (l *lex) unary() Expr {
	switch l.token {
	case '-':
		l.next()
		return MulOf(N(-1), l.unary())
	case '+':
		l.next()
		return l.unary()
	}
	return l.power()
}

func (l *lex) power() Expr {
	base := l.primary()
	if l.token == '^' {
		l.next()
		return PowOf(base, l.unary())
	}
	return base
}

func (l *lex) primary() Expr {
	switch l.token {
	case scanner.Int, scanner.Float:
		r, ok := new(big.Rat).SetString(l.text)
		if !ok {
			l.fail("bad number %q", l.text)
		}
		l.next()
		return Num{r}
	case '(':
		l.next()
		e := l.expr()
		l.expect(')')
		return e
	case scanner.Ident:
		return l.ident()
	case scanner.EOF:
		l.fail("unexpected end of input")
	}
	l.fail("unexpected %s", l.describe())
	return nil
}

func (l *lex) ident() Expr {
	name := l.text
	col := l.col
	l.next()

	if fn, ok := functions[name]; ok {
		if l.token != '(' {
			l.fail("function %s needs an argument in parentheses", name)
		}
		l.next()
		arg := l.expr()
		l.expect(')')
		return FuncOf(fn, arg)
	}
	if l.token == '(' {
		l.col = col
		l.fail("unknown function %q", name)
	}
	switch name {
	case "pi":
		return Pi
	case "E":
		return FuncOf("exp", N(1))
	case "oo", "inf":
		return Oo
	}
	if len([]rune(name)) == 1 {
		return S(name)
	}
	l.col = col
	l.fail("unknown name %q; write products of variables with *, as in %s", name, strings.Join(strings.Split(name, ""), "*"))
	return nil
}
