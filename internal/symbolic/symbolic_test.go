package symbolic

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shy5ta/studentSuite/internal/cas"
	"github.com/Shy5ta/studentSuite/internal/engine"
)

func run(t *testing.T, solve engine.Solver, fields map[string]string) engine.Result {
	t.Helper()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	p := engine.ProblemType{ID: "test", Solve: solve}
	for _, name := range names {
		p.Fields = append(p.Fields, engine.InputField{Name: name, Kind: engine.Expression})
	}
	in := engine.NewInput(p, fields)
	res := solve(in)
	assert.Empty(t, in.Unread(), "fields never read")
	return res
}

// answer runs a solver that must succeed and returns its final step.
func answer(t *testing.T, solve engine.Solver, fields map[string]string) string {
	t.Helper()
	res := run(t, solve, fields)
	require.False(t, res.Diagnostic, engine.Render(res))
	return res.Answer()
}

func hasStep(res engine.Result, prefix string) (engine.Step, bool) {
	for _, s := range res.Steps {
		if strings.HasPrefix(s.Label, prefix) {
			return s, true
		}
	}
	return engine.Step{}, false
}

// rhs parses the expression after the last "= " of s.
func rhs(t *testing.T, s string) cas.Expr {
	t.Helper()
	i := strings.LastIndex(s, "= ")
	require.GreaterOrEqual(t, i, 0, s)
	e, err := cas.Parse(strings.TrimSuffix(s[i+2:], " + C"))
	require.NoError(t, err, s)
	return e
}

func TestLimits(t *testing.T) {
	t.Run("removable discontinuity", func(t *testing.T) {
		res := run(t, LimitPoint, map[string]string{"f": "(x^2 - 4)/(x - 2)", "a": "2"})
		require.False(t, res.Diagnostic, engine.Render(res))
		s, ok := hasStep(res, "Direct substitution")
		require.True(t, ok)
		assert.Contains(t, s.Body, "0/0")
		assert.True(t, strings.HasSuffix(res.Answer(), "= 4"), res.Answer())
	})

	t.Run("two-sided limit that does not exist", func(t *testing.T) {
		ans := answer(t, LimitPoint, map[string]string{"f": "1/x", "a": "0"})
		assert.Contains(t, ans, "does not exist")
	})

	t.Run("at infinity", func(t *testing.T) {
		res := run(t, LimitInfinity, map[string]string{"f": "(2*x^2 + 1)/(x^2 - 3)"})
		require.False(t, res.Diagnostic)
		s, ok := hasStep(res, "Compare degrees")
		require.True(t, ok)
		assert.Contains(t, s.Body, "2/1")
		assert.True(t, strings.HasSuffix(res.Answer(), "= 2"), res.Answer())
	})

	t.Run("one-sided", func(t *testing.T) {
		right := answer(t, OneSidedLimit, map[string]string{"f": "1/x", "a": "0", "direction": "+"})
		assert.True(t, strings.HasSuffix(right, "= oo"), right)
		left := answer(t, OneSidedLimit, map[string]string{"f": "1/x", "a": "0", "direction": "left"})
		assert.True(t, strings.HasSuffix(left, "= -oo"), left)

		res := run(t, OneSidedLimit, map[string]string{"f": "1/x", "a": "0", "direction": "up"})
		assert.True(t, res.Diagnostic)
	})

	t.Run("sequence", func(t *testing.T) {
		res := run(t, SequenceLimit, map[string]string{"term": "(n + 1)/n"})
		require.False(t, res.Diagnostic)
		s, ok := hasStep(res, "Behaviour")
		require.True(t, ok)
		assert.Contains(t, s.Body, "converges")
		assert.True(t, strings.HasSuffix(res.Answer(), "= 1"), res.Answer())
	})

	t.Run("L'Hopital applied repeatedly", func(t *testing.T) {
		res := run(t, LHopital, map[string]string{"f": "(sin(x) - x)/x^3", "a": "0"})
		require.False(t, res.Diagnostic, engine.Render(res))
		_, ok := hasStep(res, "Round 2")
		assert.True(t, ok, engine.Render(res))
		assert.True(t, strings.HasSuffix(res.Answer(), "= -1/6"), res.Answer())
	})

	t.Run("L'Hopital on a determinate form", func(t *testing.T) {
		res := run(t, LHopital, map[string]string{"f": "(x + 1)/(x + 2)", "a": "0"})
		_, ok := hasStep(res, "Check the form")
		assert.True(t, ok)
		assert.True(t, strings.HasSuffix(res.Answer(), "= 1/2"), res.Answer())
	})

	t.Run("rejects a second variable", func(t *testing.T) {
		res := run(t, LimitPoint, map[string]string{"f": "x*y", "a": "1"})
		assert.True(t, res.Diagnostic)
	})
}

func TestDerivatives(t *testing.T) {
	t.Run("polynomial", func(t *testing.T) {
		ans := answer(t, Derivative, map[string]string{"f": "x^3 + 2*x^2 - 5"})
		assert.Equal(t, "f'(x) = 3*x^2 + 4*x", ans)
	})

	t.Run("higher order", func(t *testing.T) {
		ans := answer(t, HigherDerivative, map[string]string{"f": "sin(x)", "order": "2"})
		assert.Equal(t, "f''(x) = -sin(x)", ans)

		res := run(t, HigherDerivative, map[string]string{"f": "sin(x)", "order": "0"})
		assert.True(t, res.Diagnostic)
	})

	t.Run("implicit", func(t *testing.T) {
		ans := answer(t, Implicit, map[string]string{"F": "x^2 + y^2 - 25"})
		v, ok := cas.Evalf(rhs(t, ans), map[string]float64{"x": 3, "y": 4})
		require.True(t, ok)
		assert.InDelta(t, -0.75, v, 1e-12)
	})

	t.Run("tangent line", func(t *testing.T) {
		ans := answer(t, TangentLine, map[string]string{"f": "x^2", "a": "1"})
		assert.Contains(t, ans, "y = 2*x - 1")
	})

	t.Run("partials", func(t *testing.T) {
		fx := answer(t, PartialX, map[string]string{"f": "x^2*y + sin(y)"})
		assert.True(t, strings.HasPrefix(fx, "df/dx = "), fx)
		v, ok := cas.Evalf(rhs(t, fx), map[string]float64{"x": 2, "y": 3})
		require.True(t, ok)
		assert.InDelta(t, 12.0, v, 1e-12)

		fy := answer(t, PartialY, map[string]string{"f": "x^2*y + sin(y)"})
		v, ok = cas.Evalf(rhs(t, fy), map[string]float64{"x": 2, "y": 0})
		require.True(t, ok)
		assert.InDelta(t, 5.0, v, 1e-12)

		second := answer(t, SecondPartials, map[string]string{"f": "x^2*y + sin(y)"})
		assert.Contains(t, second, "Clairaut")
	})

	t.Run("chain rule through inverse trig", func(t *testing.T) {
		res := run(t, InverseTrigDerivative, map[string]string{"f": "asin(x^2)"})
		require.False(t, res.Diagnostic)
		_, ok := hasStep(res, "Rules")
		assert.True(t, ok)
		v, ok := cas.Evalf(rhs(t, res.Answer()), map[string]float64{"x": 0.5})
		require.True(t, ok)
		assert.InDelta(t, 1/0.9682458365518543, v, 1e-9)
	})

	t.Run("hyperbolic", func(t *testing.T) {
		ans := answer(t, HyperbolicDerivative, map[string]string{"f": "sinh(3*x)"})
		assert.True(t, sameFunction(rhs(t, ans), cas.MustParse("3*cosh(3*x)"), "x"), ans)
	})

	t.Run("mean value theorem", func(t *testing.T) {
		ans := answer(t, MeanValue, map[string]string{"f": "x^3 - x", "interval": "-1, 2"})
		assert.Equal(t, "c = 1", ans)

		res := run(t, MeanValue, map[string]string{"f": "x^3 - x", "interval": "2, -1"})
		assert.True(t, res.Diagnostic)
	})

	t.Run("critical points", func(t *testing.T) {
		res := run(t, CriticalPoints, map[string]string{"f": "x^3 - 3*x^2 + 1"})
		require.False(t, res.Diagnostic, engine.Render(res))
		s, ok := hasStep(res, "Critical points")
		require.True(t, ok)
		assert.Contains(t, s.Body, "x = 0")
		assert.Contains(t, s.Body, "x = 2")
		assert.Contains(t, res.Answer(), "x = 0: f''(x) = -6, local maximum, f(x) = 1")
		assert.Contains(t, res.Answer(), "x = 2: f''(x) = 6, local minimum, f(x) = -3")
	})

	t.Run("no critical points", func(t *testing.T) {
		ans := answer(t, CriticalPoints, map[string]string{"f": "x^3 + x"})
		assert.Contains(t, ans, "no critical points")
	})
}

func TestIntegrals(t *testing.T) {
	t.Run("indefinite", func(t *testing.T) {
		res := run(t, Indefinite, map[string]string{"f": "x^2 + 1/x"})
		require.False(t, res.Diagnostic)
		_, ok := hasStep(res, "Integrate term by term")
		assert.True(t, ok)
		assert.Equal(t, "F(x) = x^3/3 + log(abs(x)) + C", res.Answer())
	})

	t.Run("no elementary antiderivative", func(t *testing.T) {
		res := run(t, Indefinite, map[string]string{"f": "exp(x^2)"})
		assert.True(t, res.Diagnostic)
	})

	t.Run("definite", func(t *testing.T) {
		ans := answer(t, Definite, map[string]string{"f": "x^2", "a": "0", "b": "3"})
		assert.True(t, strings.HasSuffix(ans, " = 9"), ans)
	})

	t.Run("definite across a pole", func(t *testing.T) {
		ans := answer(t, Definite, map[string]string{"f": "1/x", "a": "-1", "b": "1"})
		assert.Contains(t, ans, "improper")
	})

	t.Run("definite across a transcendental pole", func(t *testing.T) {
		for _, tc := range []struct {
			name string
			f, b string
		}{
			{name: "tan", f: "tan(x)", b: "2"},
			{name: "sec", f: "1/cos(x)", b: "3"},
		} {
			t.Run(tc.name, func(t *testing.T) {
				res := run(t, Definite, map[string]string{"f": tc.f, "a": "0", "b": tc.b})
				require.False(t, res.Diagnostic, engine.Render(res))
				ans := res.Answer()
				assert.Contains(t, ans, "improper")
				assert.Contains(t, ans, "1.57")
				_, integrated := hasStep(res, "Antiderivative")
				assert.False(t, integrated)
			})
		}
	})

	t.Run("area across a transcendental pole", func(t *testing.T) {
		res := run(t, AreaUnder, map[string]string{"f": "tan(x)", "a": "0", "b": "2"})
		require.False(t, res.Diagnostic)
		assert.Contains(t, res.Answer(), "improper")
		_, split := hasStep(res, "Sign changes")
		assert.False(t, split)
	})

	t.Run("smooth transcendental integrand is not a pole", func(t *testing.T) {
		ans := answer(t, Definite, map[string]string{"f": "cos(x)", "a": "0", "b": "3"})
		assert.NotContains(t, ans, "improper")
		assert.True(t, strings.HasPrefix(ans, "∫[0, 3] cos(x) dx = "), ans)
	})

	t.Run("integrand with no real values", func(t *testing.T) {
		ans := answer(t, Definite, map[string]string{"f": "sqrt(x)", "a": "-4", "b": "-1"})
		assert.Equal(t, "f is not real-valued on [-4, -1], so the integral has no real value", ans)
	})

	t.Run("improper with an endpoint singularity", func(t *testing.T) {
		ans := answer(t, Improper, map[string]string{"f": "1/sqrt(x)", "a": "0", "b": "1"})
		assert.NotContains(t, ans, "inside the interval")
	})

	t.Run("area counts regions below the axis", func(t *testing.T) {
		ans := answer(t, AreaUnder, map[string]string{"f": "x", "a": "-1", "b": "1"})
		assert.Equal(t, "Area = 1 square units", ans)

		res := run(t, AreaUnder, map[string]string{"f": "x", "a": "1", "b": "-1"})
		assert.True(t, res.Diagnostic)
	})

	t.Run("area between curves", func(t *testing.T) {
		ans := answer(t, AreaBetween, map[string]string{"f": "x", "g": "x^2", "interval": "0, 1"})
		assert.Equal(t, "Area = 1/6 square units", ans)
	})

	t.Run("disk volume", func(t *testing.T) {
		ans := answer(t, VolumeDisk, map[string]string{"R": "sqrt(x)", "interval": "0, 1"})
		assert.Contains(t, ans, "pi/2")
		assert.Contains(t, ans, "1.5708")
	})

	t.Run("by parts", func(t *testing.T) {
		ans := answer(t, ByParts, map[string]string{"f": "x * exp(x)", "u": "x", "dv": "exp(x)"})
		require.True(t, strings.HasSuffix(ans, " + C"), ans)
		F, err := cas.Parse(strings.TrimSuffix(ans, " + C"))
		require.NoError(t, err)
		assert.True(t, sameFunction(F.Diff("x"), cas.MustParse("x*exp(x)"), "x"), ans)
	})

	t.Run("by parts with a mismatched split", func(t *testing.T) {
		res := run(t, ByParts, map[string]string{"f": "x * exp(x)", "u": "x", "dv": "sin(x)"})
		require.True(t, res.Diagnostic)
		assert.Contains(t, engine.Render(res), "does not match")
	})

	t.Run("partial fractions", func(t *testing.T) {
		res := run(t, PartialFractions, map[string]string{"f": "1 / (x^2 - 1)"})
		require.False(t, res.Diagnostic)
		s, ok := hasStep(res, "Decompose")
		require.True(t, ok)
		assert.Contains(t, s.Body, "-1/(2*(x + 1)) + 1/(2*(x - 1))")
		assert.Contains(t, res.Answer(), "log(abs(x - 1))")

		bad := run(t, PartialFractions, map[string]string{"f": "sin(x)/x"})
		assert.True(t, bad.Diagnostic)
	})

	t.Run("improper converges", func(t *testing.T) {
		ans := answer(t, Improper, map[string]string{"f": "1/x^2", "a": "1", "b": "oo"})
		assert.Equal(t, "1, so the integral CONVERGES", ans)
	})

	t.Run("improper diverges", func(t *testing.T) {
		ans := answer(t, Improper, map[string]string{"f": "1/x", "a": "1", "b": "oo"})
		assert.Contains(t, ans, "DIVERGES")
	})

	t.Run("hyperbolic", func(t *testing.T) {
		res := run(t, HyperbolicIntegral, map[string]string{"f": "cosh(2*x)"})
		require.False(t, res.Diagnostic)
		_, ok := hasStep(res, "Rules")
		assert.True(t, ok)
		F, err := cas.Parse(strings.TrimSuffix(res.Answer(), " + C"))
		require.NoError(t, err)
		assert.True(t, sameFunction(F.Diff("x"), cas.MustParse("cosh(2*x)"), "x"))
	})
}

func TestTaylor(t *testing.T) {
	res := run(t, Taylor, map[string]string{"f": "sin(x)", "a": "0", "order": "5"})
	require.False(t, res.Diagnostic, engine.Render(res))
	s, ok := hasStep(res, "Terms")
	require.True(t, ok)
	assert.Len(t, strings.Split(s.Body, "\n"), 5)

	P := rhs(t, res.Answer())
	v, ok := cas.Evalf(P, map[string]float64{"x": 0.1})
	require.True(t, ok)
	assert.InDelta(t, 0.1-0.001/6, v, 1e-15)

	bad := run(t, Taylor, map[string]string{"f": "sin(x)", "a": "0", "order": "40"})
	assert.True(t, bad.Diagnostic)
}

func TestSeparableDE(t *testing.T) {
	t.Run("explicit solution satisfies the equation", func(t *testing.T) {
		res := run(t, SeparableDE, map[string]string{"equation": "y' = x*y"})
		require.False(t, res.Diagnostic, engine.Render(res))
		_, ok := hasStep(res, "Separate the variables")
		assert.True(t, ok)

		y := rhs(t, res.Answer())
		dy := y.Diff("x")
		for _, x := range []float64{-1, 0.5, 1.7} {
			env := map[string]float64{"x": x, "A": 1.5}
			yv, ok := cas.Evalf(y, env)
			require.True(t, ok)
			dv, ok := cas.Evalf(dy, env)
			require.True(t, ok)
			assert.InDelta(t, x*yv, dv, 1e-9, "at x=%v", x)
		}
	})

	t.Run("not separable", func(t *testing.T) {
		ans := answer(t, SeparableDE, map[string]string{"equation": "dy/dx = x + y"})
		assert.Contains(t, ans, "NOT SEPARABLE")
		assert.Contains(t, ans, "linear")
	})

	t.Run("foreign symbol", func(t *testing.T) {
		res := run(t, SeparableDE, map[string]string{"equation": "y' = x*z"})
		assert.True(t, res.Diagnostic)
	})
}

func TestSeparabilityCheck(t *testing.T) {
	t.Run("logistic equation", func(t *testing.T) {
		res := run(t, SeparabilityCheck, map[string]string{"equation": "dy/dx = y * (1 - y)"})
		require.False(t, res.Diagnostic, engine.Render(res))
		_, ok := hasStep(res, "RESULT: SEPARABLE")
		assert.True(t, ok)
		c, ok := hasStep(res, "Classification")
		require.True(t, ok)
		assert.Contains(t, c.Body, "autonomous (no x): YES")
		steady, ok := hasStep(res, "Constant solutions")
		require.True(t, ok)
		assert.Contains(t, steady.Body, "y = 0")
		assert.Contains(t, steady.Body, "y = 1")
		_, ok = hasStep(res, "General solution")
		assert.True(t, ok)
	})

	t.Run("linear equation uses an integrating factor", func(t *testing.T) {
		res := run(t, SeparabilityCheck, map[string]string{"equation": "y' = x + y"})
		require.False(t, res.Diagnostic, engine.Render(res))
		_, ok := hasStep(res, "RESULT: NOT SEPARABLE")
		assert.True(t, ok)
		mu, ok := hasStep(res, "Integrating factor")
		require.True(t, ok)
		assert.Contains(t, mu.Body, "exp(-x)")
		_, ok = hasStep(res, "General solution")
		assert.True(t, ok)
	})

	t.Run("Bernoulli equation", func(t *testing.T) {
		res := run(t, SeparabilityCheck, map[string]string{"equation": "y' = y + x*y^2"})
		require.False(t, res.Diagnostic, engine.Render(res))
		c, ok := hasStep(res, "Classification")
		require.True(t, ok)
		assert.Contains(t, c.Body, "Bernoulli p(x)*y + q(x)*y^n: YES")
		assert.Contains(t, res.Answer(), "v = y^(1 - 2)")
	})

	t.Run("homogeneous equation", func(t *testing.T) {
		res := run(t, SeparabilityCheck, map[string]string{"equation": "y' = (x^2 + y^2)/(x*y)"})
		require.False(t, res.Diagnostic, engine.Render(res))
		c, ok := hasStep(res, "Classification")
		require.True(t, ok)
		assert.Contains(t, c.Body, "homogeneous f(tx, ty) = f(x, y): YES")
		assert.Contains(t, res.Answer(), "y = v*x")
	})
}
