package textutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

func TestTruncateWithEllipsis(t *testing.T) {
	assert.Equal(t, "short", TruncateWithEllipsis("short", 10))
	assert.Equal(t, "abcdefg...", TruncateWithEllipsis("abcdefghijklmnop", 10))
	assert.Equal(t, "..", TruncateWithEllipsis("abcdef", 2))
}

func TestRenderResult(t *testing.T) {
	r := engine.Narrate("Limit").
		Step("Calculate", "one two three four five six seven eight nine ten").
		Step("Result", "= 4").
		Result()

	out := RenderResult(r, 20)
	assert.True(t, strings.HasPrefix(out, "LIMIT\n-----\n1. Calculate\n"))
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, StringWidth(line), 20, line)
	}
	assert.Contains(t, out, "2. Result\n   = 4\n")

	t.Run("no width renders unchanged", func(t *testing.T) {
		assert.Equal(t, engine.Render(r), RenderResult(r, 0))
	})

	t.Run("code is never wrapped", func(t *testing.T) {
		c := engine.Code("Determinant", "% Determinant\nA = [1 2 3 4 5 6 7 8 9 10 11 12];\n")
		assert.Equal(t, c.Code, RenderResult(c, 10))
	})
}

func TestFitLines(t *testing.T) {
	lines := []string{"abcdefghij", "xy"}

	assert.Equal(t, []string{"cdef", ""}, FitLines(lines, 4, 2, false))
	assert.Equal(t, []string{"abcd", "xy"}, FitLines(lines, 4, 0, false))
	assert.Equal(t, []string{"ab cd", "ef", "xy"}, FitLines([]string{"ab cd ef", "xy"}, 5, 0, true))
	assert.Equal(t, 10, MaxLineWidth(lines))
}
