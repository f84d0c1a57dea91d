package numeric

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

// run feeds raw fields to a solver and checks that every field was read.
func run(t *testing.T, solve engine.Solver, fields map[string]string) engine.Result {
	t.Helper()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	p := engine.ProblemType{ID: "test", Solve: solve}
	for _, name := range names {
		p.Fields = append(p.Fields, engine.InputField{Name: name, Kind: engine.Scalar})
	}
	in := engine.NewInput(p, fields)
	res := solve(in)
	assert.Empty(t, in.Unread(), "fields never read")
	return res
}

func answer(t *testing.T, res engine.Result) string {
	t.Helper()
	require.False(t, res.Diagnostic, engine.Render(res))
	return res.Answer()
}

func TestCramer(t *testing.T) {
	t.Run("solution satisfies both equations", func(t *testing.T) {
		systems := [][6]float64{
			{2, 3, 5, 4, 1, 2},
			{1, -1, 0, 1, 1, 2},
			{0.5, 2, -3, -7, 4, 11},
			{3, 0, 9, 0, -2, 4},
		}
		for _, s := range systems {
			a, b, e, c, d, f := s[0], s[1], s[2], s[3], s[4], s[5]
			res := run(t, Cramer, map[string]string{
				"a": num(a), "b": num(b), "e": num(e),
				"c": num(c), "d": num(d), "f": num(f),
			})
			require.False(t, res.Diagnostic)

			det := a*d - b*c
			x, y := (e*d-b*f)/det, (a*f-e*c)/det
			assert.InDelta(t, e, a*x+b*y, 1e-9)
			assert.InDelta(t, f, c*x+d*y, 1e-9)
			assert.Equal(t, fmt.Sprintf("x = %s, y = %s", fixed2(x), fixed2(y)), res.Answer())
		}
	})

	t.Run("default system", func(t *testing.T) {
		res := run(t, Cramer, map[string]string{"a": "2", "b": "3", "e": "5", "c": "4", "d": "1", "f": "2"})
		assert.Equal(t, "x = 0.10, y = 1.60", answer(t, res))
		assert.Equal(t, []string{"2x + 3y = 5", "4x + 1y = 2"}, strings.Split(res.Steps[0].Body, "\n"))
	})

	t.Run("zero determinant is terminal", func(t *testing.T) {
		res := run(t, Cramer, map[string]string{"a": "1", "b": "2", "e": "3", "c": "2", "d": "4", "f": "6"})
		assert.Equal(t, "Since D = 0, the system has no unique solution.", answer(t, res))
		assert.Len(t, res.Steps, 3)
	})

	t.Run("bad number", func(t *testing.T) {
		res := run(t, Cramer, map[string]string{"a": "two", "b": "3", "e": "5", "c": "4", "d": "1", "f": "2"})
		assert.True(t, res.Diagnostic)
	})
}

func TestMatrices(t *testing.T) {
	t.Run("multiply", func(t *testing.T) {
		res := run(t, MatMul, map[string]string{"A": "1 2\n3 4", "B": "2 0\n1 2"})
		assert.Equal(t, "AB = [4 4; 10 8]", answer(t, res))
	})

	t.Run("multiply non-square", func(t *testing.T) {
		res := run(t, MatMul, map[string]string{"A": "1 2 3", "B": "1\n1\n1"})
		assert.Equal(t, "AB = [6]", answer(t, res))
	})

	t.Run("multiply non-conformable", func(t *testing.T) {
		res := run(t, MatMul, map[string]string{"A": "1 2\n3 4", "B": "1 2 3"})
		require.True(t, res.Diagnostic)
		assert.Contains(t, res.Answer(), "A has 2 columns but B has 1 rows")
	})

	t.Run("inverse", func(t *testing.T) {
		res := run(t, Inverse2, map[string]string{"A": "4 7\n2 6"})
		assert.Equal(t, "A^(-1) = (1/10) * adj(A)\nA^(-1) = [0.60 -0.70; -0.20 0.40]", answer(t, res))
	})

	t.Run("singular inverse", func(t *testing.T) {
		res := run(t, Inverse2, map[string]string{"A": "1 2\n2 4"})
		assert.Contains(t, answer(t, res), "singular and has no inverse")
	})

	t.Run("inverse needs 2x2", func(t *testing.T) {
		res := run(t, Inverse2, map[string]string{"A": "1 2 3\n4 5 6"})
		assert.True(t, res.Diagnostic)
	})

	t.Run("non-finite entries are rejected", func(t *testing.T) {
		for _, A := range []string{"NaN 1\n2 3", "Inf 1\n1 1"} {
			res := run(t, Inverse2, map[string]string{"A": A})
			assert.True(t, res.Diagnostic, A)
			assert.NotContains(t, engine.Render(res), "NaN", A)
		}
	})

	t.Run("determinants", func(t *testing.T) {
		assert.Equal(t, "det(A) = -2", answer(t, run(t, Det2, map[string]string{"A": "2 3\n4 5"})))
		assert.Equal(t, "det(A) = 1", answer(t, run(t, Det3, map[string]string{"A": "1 2 3\n0 1 4\n5 6 0"})))
		assert.Equal(t, "det(A) = 0", answer(t, run(t, Det3, map[string]string{"A": "1 2 3\n4 5 6\n7 8 9"})))
	})
}

func TestVectors(t *testing.T) {
	uv := map[string]string{"u": "1 2 3", "v": "4 -5 6"}

	t.Run("dot", func(t *testing.T) {
		res := run(t, Dot, uv)
		assert.Equal(t, "u.v = 12", answer(t, res))
		assert.Contains(t, engine.Render(res), "(2*(-5))")
	})

	t.Run("cross", func(t *testing.T) {
		res := run(t, Cross, map[string]string{"u": "1 0 1", "v": "2 3 0"})
		assert.Equal(t, "u x v = <-3, 2, 3>", answer(t, res))
	})

	t.Run("cross needs three components", func(t *testing.T) {
		res := run(t, Cross, map[string]string{"u": "1 0", "v": "2 3"})
		assert.True(t, res.Diagnostic)
	})

	t.Run("angle", func(t *testing.T) {
		res := run(t, Angle, uv)
		want := math.Acos(12 / (math.Sqrt(14) * math.Sqrt(77)))
		assert.Contains(t, answer(t, res), engine.Fixed(want, 4)+" radians")
	})

	t.Run("angle with zero vector", func(t *testing.T) {
		res := run(t, Angle, map[string]string{"u": "0 0 0", "v": "1 2 3"})
		assert.Contains(t, answer(t, res), "undefined")
	})

	t.Run("projection", func(t *testing.T) {
		res := run(t, Projection, uv)
		assert.Equal(t, "proj_v(u) = <0.62, -0.78, 0.94>", answer(t, res))
	})

	t.Run("length mismatch", func(t *testing.T) {
		res := run(t, Dot, map[string]string{"u": "1 2", "v": "1 2 3"})
		assert.True(t, res.Diagnostic)
	})
}

func TestComplex(t *testing.T) {
	t.Run("arithmetic", func(t *testing.T) {
		res := run(t, ComplexArithmetic, map[string]string{"z1": "3+2i", "z2": "1 - 4i"})
		out := engine.Render(res)
		require.False(t, res.Diagnostic, out)
		assert.Contains(t, out, "z1 + z2 = (3 + 1) + (2 + (-4))i = 4 - 2i")
		assert.Contains(t, out, "z1 - z2 = (3 - 1) + (2 - (-4))i = 2 + 6i")
		assert.Contains(t, out, "= 11 - 10i")
		assert.Contains(t, res.Answer(), "= -0.29 + 0.82i")
	})

	t.Run("division by zero", func(t *testing.T) {
		res := run(t, ComplexArithmetic, map[string]string{"z1": "3+2i", "z2": "0"})
		assert.Equal(t, "z2 = 0, so z1 / z2 is undefined.", answer(t, res))
	})

	t.Run("not a complex number", func(t *testing.T) {
		res := run(t, ComplexArithmetic, map[string]string{"z1": "3+2k", "z2": "1"})
		assert.True(t, res.Diagnostic)
	})

	t.Run("polar uses the correct quadrant", func(t *testing.T) {
		res := run(t, Polar, map[string]string{"a": "-1", "b": "-1"})
		assert.Equal(t, "z = 1.41(cos(-135.00°) + i*sin(-135.00°))", answer(t, res))

		res = run(t, Polar, map[string]string{"a": "1", "b": "1"})
		assert.Contains(t, engine.Render(res), "theta = 0.7854 radians (45.00 degrees)")
	})

	t.Run("de moivre", func(t *testing.T) {
		res := run(t, DeMoivre, map[string]string{"a": "1", "b": "1", "n": "5"})
		assert.Equal(t, "z^5 = -4.00 - 4.00i", answer(t, res))
	})

	t.Run("de moivre matches direct power", func(t *testing.T) {
		z := complex(-2, 0.5)
		res := run(t, DeMoivre, map[string]string{"a": "-2", "b": "0.5", "n": "2"})
		assert.Equal(t, "z^2 = "+rect(z*z, 2), answer(t, res))
		assert.Equal(t, "z^2 = 3.75 - 2.00i", answer(t, res))
	})
}

func TestModels(t *testing.T) {
	cases := []struct {
		name   string
		solve  engine.Solver
		fields map[string]string
		want   string
	}{
		{"malthus population", MalthusPopulation, map[string]string{"P0": "100", "k": "0.02", "t": "10"}, "P(10) = 122.14"},
		{"malthus time", MalthusTime, map[string]string{"P0": "100", "P": "200", "k": "0.02"}, "t = 34.66"},
		{"logistic", Logistic, map[string]string{"P0": "100", "a": "0.2", "b": "0.0001", "t": "5"}, "P(5) = 250.32"},
		{"harvesting", Harvesting, map[string]string{"P0": "100", "k": "0.1", "h": "5", "t": "10"}, "P(10) = 185.91"},
		{"newton temperature", NewtonTemperature, map[string]string{"T0": "100", "Tm": "20", "k": "0.1", "t": "10"}, "T(10) = 49.43"},
		{"newton time", NewtonTime, map[string]string{"T0": "100", "Tm": "20", "k": "0.1", "T": "50"}, "t = 9.81"},
		{"linear difference", LinearDifference, map[string]string{"y0": "5", "a": "2", "b": "0", "n": "4"}, "y(4) = 80"},
		{"linear difference with constant", LinearDifference, map[string]string{"y0": "0", "a": "0.5", "b": "2", "n": "3"}, "y(3) = 3.5"},
		{"savings", Savings, map[string]string{"A0": "1000", "q": "5", "D": "100", "n": "2"}, "Balance after 2 months: 1307.50"},
		{"loan", Loan, map[string]string{"L": "1000", "q": "0", "P": "400", "n": "12"}, "The loan is paid off in month 3."},
		{"growth", GrowthDecay, map[string]string{"y0": "100", "k": "0.05", "t": "10"}, "y(10) = 164.87"},
		{"mixture", Mixture, map[string]string{"A0": "0", "c": "0.5", "V": "100", "r": "100", "t": "1"}, "A(1) = 31.61"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, answer(t, run(t, tc.solve, tc.fields)))
		})
	}

	t.Run("logistic shows constants to four places", func(t *testing.T) {
		res := run(t, Logistic, map[string]string{"P0": "100", "a": "0.2", "b": "0.0001", "t": "5"})
		assert.Contains(t, engine.Render(res), "K = a/b = 0.2/0.0001 = 2000.00")
		assert.Contains(t, engine.Render(res), "= 19.0000")
	})

	t.Run("unreachable temperature", func(t *testing.T) {
		res := run(t, NewtonTime, map[string]string{"T0": "100", "Tm": "20", "k": "0.1", "T": "10"})
		assert.Contains(t, answer(t, res), "never reached")
	})

	t.Run("loan that never shrinks", func(t *testing.T) {
		res := run(t, Loan, map[string]string{"L": "10000", "q": "5", "P": "100", "n": "3"})
		assert.Contains(t, engine.Render(res), "does not exceed the first month's interest")
	})

	t.Run("savings months listing", func(t *testing.T) {
		res := run(t, Savings, map[string]string{"A0": "1000", "q": "5", "D": "100", "n": "12"})
		lines := strings.Split(res.Steps[2].Body, "\n")
		require.Len(t, lines, 5)
		assert.Equal(t, "...", lines[3])
		assert.True(t, strings.HasPrefix(lines[4], "Month 12: "))
	})

	t.Run("predator prey", func(t *testing.T) {
		res := run(t, PredatorPrey, map[string]string{
			"x": "40", "y": "9", "alpha": "0.1", "beta": "0.02", "gamma": "0.1", "delta": "0.01",
		})
		out := engine.Render(res)
		assert.Contains(t, out, "= -3.20")
		assert.Contains(t, out, "= 2.70")
		assert.Equal(t, "Coexistence at (x, y) = (gamma/delta, alpha/beta) = (10.00, 5.00)", answer(t, res))
	})

	t.Run("mixture needs a volume", func(t *testing.T) {
		res := run(t, Mixture, map[string]string{"A0": "0", "c": "0.5", "V": "0", "r": "1", "t": "1"})
		assert.True(t, res.Diagnostic)
	})
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "0.00", fixed2(-0.001))
	assert.Equal(t, "(-2)", paren(-2))
	assert.Equal(t, "1e-07", num(1e-7))
	assert.Equal(t, " - 3y", term(-3, "y", false))
	_, err := strconv.ParseFloat(num(1234567.25), 64)
	assert.NoError(t, err)
}
