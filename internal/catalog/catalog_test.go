package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shy5ta/studentSuite/internal/problems"
)

func TestDefault(t *testing.T) {
	reg, err := problems.NewRegistry()
	require.NoError(t, err)

	c := Default()
	require.NoError(t, c.Validate(reg))
	assert.Equal(t, reg.Courses(), c.Codes())

	course, ok := c.Course("COS1501")
	require.True(t, ok)
	assert.Equal(t, "Theoretical Comp Sci", course.Name)

	t.Run("lists every registered topic", func(t *testing.T) {
		total := 0
		for _, course := range c.Courses {
			total += len(course.Topics)
		}
		assert.Len(t, reg.Topics(), total)
	})

	t.Run("topics resolve in menu order", func(t *testing.T) {
		topics, err := c.Topics(reg, "MAT1512")
		require.NoError(t, err)
		require.Len(t, topics, 5)
		assert.Equal(t, "Limits", topics[0].Title)
		assert.Equal(t, "Partial Derivatives", topics[4].Title)

		_, err = c.Topics(reg, "XYZ0000")
		assert.Error(t, err)
	})
}

func TestParse(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		for name, src := range map[string]string{
			"not yaml":     "courses: [",
			"empty":        "courses: []",
			"missing code": "courses:\n  - name: X\n    topics: [a]",
			"no topics":    "courses:\n  - code: X\n    name: X",
			"duplicate":    "courses:\n  - code: X\n    topics: [a]\n  - code: X\n    topics: [b]",
		} {
			_, err := Parse([]byte(src))
			assert.Error(t, err, name)
		}
	})

	t.Run("validation names the bad topics", func(t *testing.T) {
		reg, err := problems.NewRegistry()
		require.NoError(t, err)

		c, err := Parse([]byte("courses:\n  - code: MAT1512\n    name: Calculus A\n    topics: [mat1512-limits, cos1501-sets, nowhere, mat1512-limits]\n"))
		require.NoError(t, err)
		err = c.Validate(reg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `topic "cos1501-sets" belongs to COS1501`)
		assert.Contains(t, err.Error(), `unknown topic "nowhere"`)
		assert.Contains(t, err.Error(), `topic "mat1512-limits" listed twice`)
	})
}

func TestLoad(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Len(t, c.Courses, 6)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("courses:\n  - code: COS1501\n    name: Logic only\n    topics: [cos1501-logic]\n"), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"COS1501"}, c.Codes())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
