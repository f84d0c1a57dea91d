package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shy5ta/studentSuite/internal/config"
	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/problems"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	describeJSON, solveJSON, solvePager = false, false, false
	if sets, ok := solveCmd.Flags().Lookup("set").Value.(pflag.SliceValue); ok {
		require.NoError(t, sets.Replace(nil))
	}

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestCourses(t *testing.T) {
	out, err := run(t, "courses")
	require.NoError(t, err)
	assert.Contains(t, out, "APM1513")
	assert.Contains(t, out, "Theoretical Comp Sci")
}

func TestTopics(t *testing.T) {
	out, err := run(t, "topics", "cos1501")
	require.NoError(t, err)
	assert.Contains(t, out, "COS1501  Theoretical Comp Sci")
	assert.Contains(t, out, "cos1501-integers")
	assert.Contains(t, out, "gcd-lcm")
	assert.NotContains(t, out, "MAT1512")

	_, err = run(t, "topics", "XYZ9999")
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe", "cos1501-integers", "gcd-lcm")
	require.NoError(t, err)
	assert.Contains(t, out, "GCD and LCM")
	assert.Contains(t, out, `default: "252"`)

	out, err = run(t, "describe", "cos1501-integers", "gcd-lcm", "--json")
	require.NoError(t, err)
	var schema engine.ProblemSchema
	require.NoError(t, json.Unmarshal([]byte(out), &schema))
	assert.Equal(t, problems.GCDLCM, schema.Problem)

	_, err = run(t, "describe", "cos1501-sets", "gcd-lcm")
	assert.ErrorIs(t, err, engine.ErrSchemaMismatch)
}

func TestSolve(t *testing.T) {
	out, err := run(t, "solve", "cos1501-integers", "gcd-lcm", "--set", "a=12", "--set", "b=18")
	require.NoError(t, err)
	assert.Contains(t, out, "GCD AND LCM")
	assert.Contains(t, out, "gcd(12, 18) = 6")
	assert.NotContains(t, out, "\x1b[", "no colour when output is not a terminal")
}

func TestSolveJSON(t *testing.T) {
	out, err := run(t, "solve", "apm1513-matrix-properties", "determinant", "--json")
	require.NoError(t, err)
	var res engine.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, engine.KindCode, res.Kind)
	assert.False(t, res.Diagnostic)
}

func TestSolveDiagnostic(t *testing.T) {
	out, err := run(t, "solve", "apm1513-matrix-properties", "determinant", "--set", "A=1 2 3")
	assert.ErrorIs(t, err, errDiagnostic)
	assert.Contains(t, out, "% Error")
}

func TestApplySets(t *testing.T) {
	e := problems.Default()
	p, err := e.Describe("cos1501-integers", problems.GCDLCM)
	require.NoError(t, err)

	t.Run("overrides defaults", func(t *testing.T) {
		fields, err := applySets(p, []string{"a=7"})
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"a": "7", "b": "105"}, fields)
	})

	t.Run("value may contain =", func(t *testing.T) {
		fields, err := applySets(p, []string{"a=1=2"})
		require.NoError(t, err)
		assert.Equal(t, "1=2", fields["a"])
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := applySets(p, []string{"c=1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fields: a, b")
	})

	t.Run("missing =", func(t *testing.T) {
		_, err := applySets(p, []string{"a"})
		assert.Error(t, err)
	})

	t.Run("value from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "a.txt")
		require.NoError(t, os.WriteFile(path, []byte("99\n"), 0o644))
		fields, err := applySets(p, []string{"a=@" + path})
		require.NoError(t, err)
		assert.Equal(t, "99", fields["a"])

		_, err = applySets(p, []string{"a=@" + path + ".missing"})
		assert.Error(t, err)
	})
}

func TestFormatResult(t *testing.T) {
	r := engine.Narrate("Limit").
		Step("Calculate", "one two three four five six seven eight nine ten eleven twelve").
		Step("Result", "= 4").
		Result()

	cfg := &config.Config{WrapWidth: 20}
	var buf bytes.Buffer
	out := formatResult(r, cfg, &buf)
	assert.Contains(t, out, "2. Result\n   = 4\n")
	assert.NotContains(t, out, "\x1b[")
}
