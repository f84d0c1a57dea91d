package engine

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shy5ta/studentSuite/internal/cas"
	"github.com/Shy5ta/studentSuite/internal/logger"
)

func sumProblem() ProblemType {
	return ProblemType{
		ID:    "sum",
		Title: "Sum",
		Fields: []InputField{
			{Name: "a", Kind: Scalar, Default: "1"},
			{Name: "b", Kind: Scalar, Default: "2"},
		},
		Solve: func(in *Input) Result {
			a, b := in.Float("a"), in.Float("b")
			return Narrate("").Step("Add", "%g + %g = %g", a, b, a+b).Result()
		},
	}
}

func testRegistry(t *testing.T, extra ...ProblemType) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Register(sumProblem()))
	ids := []ProblemID{"sum"}
	for _, p := range extra {
		require.NoError(t, r.Register(p))
		ids = append(ids, p.ID)
	}
	require.NoError(t, r.AddTopic(Topic{ID: "arith", Course: "TST101", Title: "Arithmetic", Problems: ids}))
	return r
}

func TestRegistry(t *testing.T) {
	t.Run("rejects duplicates and bad definitions", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(sumProblem()))
		assert.Error(t, r.Register(sumProblem()))
		assert.Error(t, r.Register(ProblemType{ID: "nosolver"}))
		assert.Error(t, r.Register(ProblemType{Solve: sumProblem().Solve}))

		twice := sumProblem()
		twice.ID = "twice"
		twice.Fields = append(twice.Fields, InputField{Name: "a"})
		assert.Error(t, r.Register(twice))
	})

	t.Run("topics reference registered problems", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(sumProblem()))
		assert.Error(t, r.AddTopic(Topic{ID: "t", Problems: []ProblemID{"missing"}}))
		assert.Error(t, r.AddTopic(Topic{ID: "empty"}))
		require.NoError(t, r.AddTopic(Topic{ID: "t", Course: "A", Problems: []ProblemID{"sum"}}))
		assert.Error(t, r.AddTopic(Topic{ID: "t", Course: "A", Problems: []ProblemID{"sum"}}))
	})

	t.Run("ordering and lookups", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register(sumProblem()))
		for _, tp := range []Topic{
			{ID: "b1", Course: "B", Problems: []ProblemID{"sum"}},
			{ID: "a1", Course: "A", Problems: []ProblemID{"sum"}},
			{ID: "b2", Course: "B", Problems: []ProblemID{"sum"}},
		} {
			require.NoError(t, r.AddTopic(tp))
		}
		assert.Equal(t, []string{"B", "A"}, r.Courses())
		require.Len(t, r.TopicsFor("B"), 2)
		assert.Equal(t, "b2", r.TopicsFor("B")[1].ID)

		ps, err := r.ProblemsFor("a1")
		require.NoError(t, err)
		assert.Equal(t, ProblemID("sum"), ps[0].ID)

		_, err = r.ProblemsFor("zz")
		assert.True(t, errors.Is(err, ErrSchemaMismatch))
	})

	t.Run("sealed registry is read-only", func(t *testing.T) {
		r := NewRegistry()
		r.Seal()
		assert.ErrorIs(t, r.Register(sumProblem()), ErrSealed)
		assert.ErrorIs(t, r.AddTopic(Topic{ID: "x"}), ErrSealed)
	})
}

func TestSolve(t *testing.T) {
	t.Run("defaults produce steps", func(t *testing.T) {
		e := New(testRegistry(t))
		res := e.Solve("arith", "sum", sumProblem().Defaults())
		require.False(t, res.Diagnostic, Render(res))
		assert.Equal(t, "Sum", res.Title)
		assert.Equal(t, "1 + 2 = 3", res.Answer())
	})

	t.Run("unparseable field becomes a diagnostic", func(t *testing.T) {
		e := New(testRegistry(t))
		res := e.Solve("arith", "sum", map[string]string{"a": "one", "b": "2"})
		require.True(t, res.Diagnostic)
		require.Len(t, res.Steps, 1)
		assert.Contains(t, res.Steps[0].Body, `field "a"`)
		assert.Contains(t, res.Steps[0].Body, "Hint: "+Scalar.Hint())
	})

	t.Run("field names must match", func(t *testing.T) {
		e := New(testRegistry(t))
		res := e.Solve("arith", "sum", map[string]string{"a": "1", "c": "2"})
		require.True(t, res.Diagnostic)
		assert.Contains(t, res.Answer(), "missing b")
		assert.Contains(t, res.Answer(), "unexpected c")
	})

	t.Run("unknown topic or problem", func(t *testing.T) {
		e := New(testRegistry(t))
		assert.True(t, e.Solve("nope", "sum", nil).Diagnostic)
		assert.True(t, e.Solve("arith", "nope", nil).Diagnostic)

		_, err := e.Describe("arith", "nope")
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("panicking solver is contained", func(t *testing.T) {
		boom := ProblemType{
			ID:     "boom",
			Title:  "Boom",
			Output: KindCode,
			Solve:  func(*Input) Result { panic("index out of range") },
		}
		dir := t.TempDir()
		log, err := logger.New(dir, logger.Info)
		require.NoError(t, err)

		e := New(testRegistry(t, boom), WithLogger(log))
		res := e.Solve("arith", "boom", map[string]string{})
		require.True(t, res.Diagnostic)
		assert.Equal(t, KindCode, res.Kind)
		assert.True(t, strings.HasPrefix(res.Code, "% Error: "+ErrInternalFault.Error()))

		f, err := os.Open(log.Path())
		require.NoError(t, err)
		defer f.Close()
		var events []string
		sc := bufio.NewScanner(f)
		for sc.Scan() {
			var entry struct{ Event string }
			require.NoError(t, json.Unmarshal(sc.Bytes(), &entry))
			events = append(events, entry.Event)
		}
		assert.Equal(t, []string{"solver_panic", "solve"}, events)
	})

	t.Run("solver that ignores a recorded error", func(t *testing.T) {
		careless := ProblemType{
			ID:     "careless",
			Fields: []InputField{{Name: "f", Kind: Expression}},
			Solve: func(in *Input) Result {
				in.Expr("f")
				return Narrate("").Step("Done", "ok").Result()
			},
		}
		e := New(testRegistry(t, careless))
		res := e.Solve("arith", "careless", map[string]string{"f": "2x"})
		require.True(t, res.Diagnostic)
		assert.Contains(t, res.Answer(), "use * for multiplication")
	})
}

func TestInput(t *testing.T) {
	p := ProblemType{
		ID: "all",
		Fields: []InputField{
			{Name: "n", Kind: Scalar},
			{Name: "xs", Kind: Scalar},
			{Name: "f", Kind: Expression},
			{Name: "eq", Kind: Expression},
			{Name: "at", Kind: Expression},
			{Name: "m", Kind: MatrixBlock},
			{Name: "ab", Kind: MatrixBlock},
		},
	}

	t.Run("typed reads", func(t *testing.T) {
		in := NewInput(p, map[string]string{
			"n":  " 5.0 ",
			"xs": "0, 3.5",
			"f":  "x^2",
			"eq": "dy/dx = x*y",
			"at": "-1/2",
			"m":  "1 2\n3 4",
			"ab": "1 0\n0 1\n\n5\n6",
		})
		assert.Equal(t, 5, in.Int("n"))
		assert.Equal(t, []float64{0, 3.5}, in.Floats("xs", 2))
		assert.Equal(t, "x^2", in.Expr("f").String())
		assert.Equal(t, []string{"x", "y"}, cas.FreeSymbols(in.Equation("eq")))
		assert.Equal(t, "-1/2", in.Point("at").String())
		assert.Equal(t, 4.0, in.Matrix("m")[1][1])
		blocks := in.Blocks("ab", 2)
		require.Len(t, blocks, 2)
		assert.Equal(t, 6.0, blocks[1][1][0])
		require.NoError(t, in.Err())
		assert.Empty(t, in.Unread())
	})

	t.Run("first error wins", func(t *testing.T) {
		in := NewInput(p, map[string]string{"n": "2.5", "f": "sin x", "m": "1 2\n3"})
		in.Int("n")
		in.Expr("f")
		in.Matrix("m")

		err := in.Err()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInputParse)
		var fe *FieldError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "n", fe.Field)
		assert.Equal(t, []string{"xs", "eq", "at", "ab"}, in.Unread())
	})

	t.Run("parse errors keep their cause", func(t *testing.T) {
		in := NewInput(p, map[string]string{"f": "(x"})
		in.Expr("f")
		assert.ErrorIs(t, in.Err(), cas.ErrSyntax)
		assert.Equal(t, Expression.Hint(), Hint(in.Err()))
	})

	t.Run("solver failures get a neutral hint", func(t *testing.T) {
		err := fmt.Errorf("no closed-form antiderivative found: %s", "1/sin(x)")
		assert.Equal(t, genericHint, Hint(err))
		assert.Equal(t, Expression.Hint(), Hint(fmt.Errorf("integrand: %w", cas.ErrSyntax)))
	})

	t.Run("point must be constant", func(t *testing.T) {
		in := NewInput(p, map[string]string{"at": "x + 1"})
		in.Point("at")
		assert.ErrorIs(t, in.Err(), ErrInputParse)
	})

	t.Run("undeclared field panics", func(t *testing.T) {
		in := NewInput(p, nil)
		assert.Panics(t, func() { in.Text("zz") })
	})
}

func TestRender(t *testing.T) {
	r := Narrate("Dot product").
		Step("Multiply", "1*4 + 2*5").
		Lines("Result", "u.v = 14", "done").
		Result()
	want := "DOT PRODUCT\n" +
		"-----------\n" +
		"1. Multiply\n" +
		"   1*4 + 2*5\n" +
		"\n" +
		"2. Result\n" +
		"   u.v = 14\n" +
		"   done\n"
	assert.Equal(t, want, Render(r))

	code := Code("det", "A = [1 2; 3 4];\n")
	assert.Equal(t, "A = [1 2; 3 4];\n", Render(code))

	fc := FailCode("det", errors.New("line one\nline two"))
	assert.Equal(t, "% Error: line one\n% Error: line two\n% Hint: "+genericHint+"\n", fc.Code)
}

func TestGenerateSchema(t *testing.T) {
	s := GenerateSchema("arith", sumProblem())
	assert.Equal(t, []string{"a", "b"}, s.Parameters.Required)
	assert.Equal(t, "1", s.Parameters.Properties["a"].Default)

	js, err := SchemaJSON("arith", sumProblem())
	require.NoError(t, err)
	assert.Contains(t, js, `"x-kind": "scalar"`)
	assert.Contains(t, js, `"output": "steps"`)
}
