package matparse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBlock(t *testing.T) {
	t.Run("skips comments and blank lines", func(t *testing.T) {
		m := ParseBlock("1 2 3\n# comment\n\n4 5 6")
		assert.Equal(t, Matrix{{1, 2, 3}, {4, 5, 6}}, m)
	})

	t.Run("drops a row with a bad token", func(t *testing.T) {
		m := ParseBlock("1 2\n3 x\n5 6")
		assert.Equal(t, Matrix{{1, 2}, {5, 6}}, m)
	})

	t.Run("drops a row with a non-finite value", func(t *testing.T) {
		assert.Equal(t, Matrix{{2, 3}}, ParseBlock("NaN 1\n2 3"))
		assert.Equal(t, Matrix{{1, 1}}, ParseBlock("Inf 1\n1 1\n-infinity 0\n1e400 2"))
	})

	t.Run("tolerates surrounding whitespace", func(t *testing.T) {
		m := ParseBlock("   -1.5\t2e3  \n")
		assert.Equal(t, Matrix{{-1.5, 2000}}, m)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ParseBlock("\n# only a comment\n"))
	})
}

func TestSplitBlocks(t *testing.T) {
	t.Run("two blocks", func(t *testing.T) {
		blocks, err := SplitBlocks("2 1\n1 3\n\n5\n8", 2)
		require.NoError(t, err)
		assert.Equal(t, []string{"2 1\n1 3", "5\n8"}, blocks)
	})

	t.Run("runs of blank lines count once", func(t *testing.T) {
		blocks, err := SplitBlocks("\n40 60\n\n  \n\n2 1\n1 1\n\t\n70\n40\n", 3)
		require.NoError(t, err)
		assert.Len(t, blocks, 3)
	})

	t.Run("too few blocks", func(t *testing.T) {
		_, err := SplitBlocks("1 2\n3 4", 2)
		assert.True(t, errors.Is(err, ErrTooFewBlocks))
	})
}

func TestRectangular(t *testing.T) {
	r, c, err := Rectangular(Matrix{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)

	_, _, err = Rectangular(Matrix{{1, 2}, {3}})
	assert.True(t, errors.Is(err, ErrRagged))

	_, _, err = Rectangular(nil)
	assert.True(t, errors.Is(err, ErrEmpty))
}

func TestBracketRoundTrip(t *testing.T) {
	m := Matrix{{1, 2.5, -3}, {0.1, 1e-7, 42}}
	s := FormatBracket(m)
	assert.Equal(t, "[1 2.5 -3; 0.1 1e-07 42]", s)

	back, err := ParseBracket(s)
	require.NoError(t, err)
	require.Len(t, back, 2)
	for i := range m {
		for j := range m[i] {
			assert.InDelta(t, m[i][j], back[i][j], 1e-12)
		}
	}

	_, err = ParseBracket("1 2; 3 4")
	assert.True(t, errors.Is(err, ErrBracket))
}

func TestColumnAndFlatten(t *testing.T) {
	m := Matrix{{1, 2}, {3, 4}}
	assert.Equal(t, []float64{2, 4}, m.Column(1))
	assert.Equal(t, []float64{1, 2, 3, 4}, m.Flatten())
}
