package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/problems"
)

func TestSession(t *testing.T) {
	s := New(problems.Default())

	_, err := uuid.Parse(s.ID())
	require.NoError(t, err)
	assert.NotEqual(t, s.ID(), New(s.Engine()).ID())

	t.Run("solve releases the guard", func(t *testing.T) {
		res, err := s.Solve("cos1501-integers", problems.GCDLCM, map[string]string{"a": "12", "b": "18"})
		require.NoError(t, err)
		assert.False(t, res.Diagnostic)
		assert.False(t, s.Busy())
	})

	t.Run("second request while busy is refused", func(t *testing.T) {
		require.NoError(t, s.Begin())
		assert.True(t, s.Busy())
		assert.ErrorIs(t, s.Begin(), ErrBusy)

		_, err := s.Solve("cos1501-integers", problems.GCDLCM, map[string]string{"a": "12", "b": "18"})
		assert.ErrorIs(t, err, ErrBusy)

		s.End()
		assert.False(t, s.Busy())
		require.NoError(t, s.Begin())
		s.End()
	})

	t.Run("diagnostics still release the guard", func(t *testing.T) {
		res, err := s.Solve("cos1501-integers", problems.GCDLCM, map[string]string{"a": "x"})
		require.NoError(t, err)
		assert.True(t, res.Diagnostic)
		assert.Equal(t, engine.KindSteps, res.Kind)
		assert.False(t, s.Busy())
	})
}
