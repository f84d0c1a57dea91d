package cas

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("polynomial prints highest power first", func(t *testing.T) {
		e, err := Parse("1 + 2*x + x^2")
		require.NoError(t, err)
		assert.Equal(t, "x^2 + 2*x + 1", e.String())
	})

	t.Run("double star is power", func(t *testing.T) {
		a, err := Parse("x**3")
		require.NoError(t, err)
		b, err := Parse("x^3")
		require.NoError(t, err)
		assert.True(t, Equal(a, b))
	})

	t.Run("constants and functions", func(t *testing.T) {
		e, err := Parse("sin(pi/2) + ln(E)")
		require.NoError(t, err)
		v, ok := Evalf(e, nil)
		require.True(t, ok)
		assert.InDelta(t, 2.0, v, 1e-12)
	})

	t.Run("implicit multiplication is rejected with a hint", func(t *testing.T) {
		_, err := Parse("2x + 1")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSyntax))
		assert.Contains(t, err.Error(), "use * for multiplication")

		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 2, pe.Column)
	})

	t.Run("multi-letter names", func(t *testing.T) {
		_, err := Parse("xy + 1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "x*y")
	})

	t.Run("function without parentheses", func(t *testing.T) {
		_, err := Parse("sin x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parentheses")
	})

	t.Run("unbalanced parentheses", func(t *testing.T) {
		_, err := Parse("(x + 1")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSyntax))
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := Parse("   ")
		assert.True(t, errors.Is(err, ErrSyntax))
	})
}

func TestParseEquation(t *testing.T) {
	t.Run("keeps the right-hand side", func(t *testing.T) {
		e, err := ParseEquation("dy/dx = y * (1 - y)")
		require.NoError(t, err)
		v, ok := Evalf(e, map[string]float64{"y": 0.25})
		require.True(t, ok)
		assert.InDelta(t, 0.1875, v, 1e-12)
	})

	t.Run("error column refers to the whole input", func(t *testing.T) {
		_, err := ParseEquation("y' = 2x")
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, 7, pe.Column)
	})

	t.Run("without equals sign", func(t *testing.T) {
		e, err := ParseEquation("x*y")
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "y"}, FreeSymbols(e))
	})
}

func TestDiff(t *testing.T) {
	t.Run("polynomial", func(t *testing.T) {
		d := Diff(MustParse("x^3 + 2*x^2 - 5"), "x")
		assert.Equal(t, "3*x^2 + 4*x", d.String())
	})

	t.Run("second derivative of sine", func(t *testing.T) {
		assert.Equal(t, "-sin(x)", DiffN(MustParse("sin(x)"), "x", 2).String())
	})

	t.Run("chain rule matches a finite difference", func(t *testing.T) {
		f := MustParse("exp(x^2) * atan(3*x) + sqrt(x + 1)")
		d := Diff(f, "x")
		const x0, h = 0.4, 1e-6
		want := (f.Float(map[string]float64{"x": x0 + h}) - f.Float(map[string]float64{"x": x0 - h})) / (2 * h)
		assert.InDelta(t, want, d.Float(map[string]float64{"x": x0}), 1e-5)
	})

	t.Run("constant in the variable", func(t *testing.T) {
		assert.True(t, IsZero(Diff(MustParse("y^2 + pi"), "x")))
	})
}

func TestIntegrate(t *testing.T) {
	t.Run("power and reciprocal", func(t *testing.T) {
		F, err := Integrate(MustParse("x^2 + 1/x"), "x")
		require.NoError(t, err)
		assert.Equal(t, "x^3/3 + log(abs(x))", F.String())
	})

	t.Run("definite integral is exact", func(t *testing.T) {
		F, err := Integrate(MustParse("x^2"), "x")
		require.NoError(t, err)
		area := AddOf(F.Sub("x", N(3)), MulOf(N(-1), F.Sub("x", N(0))))
		assert.Equal(t, "9", area.String())
	})

	antiderivatives := []string{
		"x * exp(x)",
		"x * sin(x)",
		"log(x)",
		"cos(3*x + 1)",
		"sinh(3*x)",
		"2*x * exp(x^2)",
		"1 / (x^2 - 1)",
		"(x + 2) / (x^2 + 2*x + 5)",
		"x^2 * cos(x)",
	}
	for _, src := range antiderivatives {
		t.Run("derivative recovers "+src, func(t *testing.T) {
			f := MustParse(src)
			F, err := Integrate(f, "x")
			require.NoError(t, err)
			back := Diff(F, "x")
			for _, x := range []float64{1.3, 2.7} {
				env := map[string]float64{"x": x}
				assert.InDelta(t, f.Float(env), back.Float(env), 1e-9, "at x=%v", x)
			}
		})
	}

	t.Run("no elementary antiderivative", func(t *testing.T) {
		_, err := Integrate(MustParse("exp(x^2)"), "x")
		assert.True(t, errors.Is(err, ErrNoAntiderivative))
	})
}

func TestApart(t *testing.T) {
	pf, err := Apart(MustParse("1 / (x^2 - 1)"), "x")
	require.NoError(t, err)
	require.Len(t, pf.Linear, 2)
	assert.Nil(t, pf.Quadratic)
	assert.Equal(t, "-1/(2*(x + 1)) + 1/(2*(x - 1))", pf.Expr().String())

	_, err = Apart(MustParse("sin(x) / x"), "x")
	assert.True(t, errors.Is(err, ErrNotRational))
}

func TestLimit(t *testing.T) {
	cases := []struct {
		name  string
		expr  string
		point Expr
		dir   Direction
		want  string
	}{
		{"removable discontinuity", "(x^2 - 4)/(x - 2)", N(2), Both, "4"},
		{"repeated L'Hopital", "(sin(x) - x)/x^3", N(0), Both, "-1/6"},
		{"continuous point", "x^2 + 1", N(3), Both, "10"},
		{"from above", "1/x", N(0), FromAbove, "oo"},
		{"from below", "1/x", N(0), FromBelow, "-oo"},
		{"at infinity", "(2*x^2 + 1)/(x^2 - 3)", Oo, Both, "2"},
		{"sequence", "(n + 1)/n", Oo, Both, "1"},
		{"decaying oscillation", "sin(x)/x", Oo, Both, "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := MustParse(tc.expr)
			v := "x"
			if syms := FreeSymbols(e); len(syms) == 1 {
				v = syms[0]
			}
			r, err := Limit(e, v, tc.point, tc.dir)
			require.NoError(t, err)
			assert.Equal(t, tc.want, r.String())
		})
	}

	t.Run("two-sided limit of 1/x does not exist", func(t *testing.T) {
		_, err := Limit(MustParse("1/x"), "x", N(0), Both)
		assert.True(t, errors.Is(err, ErrLimitDNE))
	})
}

func TestTaylor(t *testing.T) {
	terms, poly, err := Taylor(MustParse("sin(x)"), "x", N(0), 5)
	require.NoError(t, err)
	require.Len(t, terms, 5)
	assert.Equal(t, "-1/6", terms[3].Coeff.String())
	assert.True(t, IsZero(terms[4].Coeff))

	env := map[string]float64{"x": 0.1}
	assert.InDelta(t, 0.1-0.001/6, poly.Float(env), 1e-15)

	_, _, err = Taylor(MustParse("sin(x)"), "x", N(0), 0)
	assert.Error(t, err)
}

func TestSeparate(t *testing.T) {
	t.Run("product", func(t *testing.T) {
		g, h, ok := Separate(MustParse("x*y"), "x", "y")
		require.True(t, ok)
		assert.Equal(t, "x", g.String())
		assert.Equal(t, "y", h.String())
	})

	t.Run("exponential of a sum", func(t *testing.T) {
		g, h, ok := Separate(MustParse("exp(x + y)"), "x", "y")
		require.True(t, ok)
		assert.Equal(t, "exp(x)", g.String())
		assert.Equal(t, "exp(y)", h.String())
	})

	t.Run("common factor", func(t *testing.T) {
		g, h, ok := Separate(MustParse("x*y - y"), "x", "y")
		require.True(t, ok)
		env := map[string]float64{"x": 3, "y": 5}
		assert.InDelta(t, 10.0, g.Float(env)*h.Float(env), 1e-12)
	})

	t.Run("sum of both variables", func(t *testing.T) {
		_, _, ok := Separate(MustParse("x + y"), "x", "y")
		assert.False(t, ok)
	})
}

func TestRecognize(t *testing.T) {
	v, ok := Recognize(0.5)
	require.True(t, ok)
	assert.Equal(t, "1/2", v.String())

	v, ok = Recognize(math.Pi)
	require.True(t, ok)
	assert.Equal(t, "pi", v.String())

	_, ok = Recognize(math.Sqrt(2) / 1000)
	assert.False(t, ok)
}

func TestUndefinedAbsorbs(t *testing.T) {
	e := MustParse("1/x").Sub("x", N(0))
	assert.True(t, strings.Contains(e.String(), "undefined"))
	assert.Equal(t, "undefined", MulOf(N(0), e).String())
}
