package problems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

func TestCatalogShape(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)

	assert.Equal(t, []string{"APM1513", "APM1514", "MAT1503", "MAT1512", "MAT1613", "COS1501"}, reg.Courses())
	assert.Equal(t, 73, reg.Count())
	assert.Len(t, reg.Topics(), 33)

	t.Run("every problem sits in a topic", func(t *testing.T) {
		listed := make(map[engine.ProblemID]bool)
		for _, topic := range reg.Topics() {
			for _, id := range topic.Problems {
				listed[id] = true
			}
		}
		for _, id := range reg.ProblemIDs() {
			assert.True(t, listed[id], "problem %s is in no topic", id)
		}
	})

	t.Run("separability checker leads every APM1514 topic", func(t *testing.T) {
		topics := reg.TopicsFor("APM1514")
		require.NotEmpty(t, topics)
		for _, topic := range topics {
			assert.Equal(t, SeparabilityCheck, topic.Problems[0], topic.ID)
		}
	})

	t.Run("every field has a default and a description", func(t *testing.T) {
		for _, id := range reg.ProblemIDs() {
			p, _ := reg.Problem(id)
			require.NotEmpty(t, p.Fields, id)
			for _, f := range p.Fields {
				assert.NotEmpty(t, f.Default, "%s.%s", id, f.Name)
				assert.NotEmpty(t, f.Description, "%s.%s", id, f.Name)
			}
		}
	})

	t.Run("registering twice fails", func(t *testing.T) {
		assert.Error(t, Register(reg))
	})
}

func TestDefaultsSolve(t *testing.T) {
	e := Default()
	reg := e.Registry()

	for _, topic := range reg.Topics() {
		problems, err := reg.ProblemsFor(topic.ID)
		require.NoError(t, err)
		for _, p := range problems {
			t.Run(topic.ID+"/"+string(p.ID), func(t *testing.T) {
				res := e.Solve(topic.ID, p.ID, p.Defaults())
				require.False(t, res.Diagnostic, engine.Render(res))
				assert.Equal(t, p.Output, res.Kind)
				if p.Output == engine.KindCode {
					assert.NotEmpty(t, res.Code)
				} else {
					assert.NotEmpty(t, res.Answer())
				}
			})
		}
	}
}

func TestSolversReadEveryField(t *testing.T) {
	reg, err := NewRegistry()
	require.NoError(t, err)
	for _, id := range reg.ProblemIDs() {
		p, _ := reg.Problem(id)
		in := engine.NewInput(p, p.Defaults())
		p.Solve(in)
		assert.Empty(t, in.Unread(), "%s never reads these fields", id)
	}
}

func TestSolveRejectsForeignProblem(t *testing.T) {
	e := Default()
	res := e.Solve("cos1501-sets", Determinant, map[string]string{"A": "1"})
	assert.True(t, res.Diagnostic)
}
