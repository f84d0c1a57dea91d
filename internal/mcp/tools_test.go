package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shy5ta/studentSuite/internal/catalog"
	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/problems"
	"github.com/Shy5ta/studentSuite/internal/session"
)

func newTools() *tools {
	return &tools{sess: session.New(problems.Default()), cat: catalog.Default()}
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	c, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return c.Text
}

func TestNewServer(t *testing.T) {
	s := NewServer(session.New(problems.Default()), catalog.Default())
	assert.NotNil(t, s)
}

func TestListCourses(t *testing.T) {
	res, err := newTools().listCoursesHandler(context.Background(), call(nil))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var courses []courseInfo
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &courses))
	require.Len(t, courses, 6)
	assert.Equal(t, "APM1513", courses[0].Code)
	assert.Equal(t, "COS1501", courses[5].Code)
	assert.Equal(t, "cos1501-sets", courses[5].Topics[0].ID)
}

func TestListTopics(t *testing.T) {
	tt := newTools()

	res, err := tt.listTopicsHandler(context.Background(), call(map[string]any{"course": "COS1501"}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var topics []topicInfo
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &topics))
	require.Len(t, topics, 5)
	last := topics[4]
	assert.Equal(t, "cos1501-integers", last.ID)
	require.NotEmpty(t, last.Problems)
	assert.Equal(t, problems.GCDLCM, last.Problems[0].ID)
	assert.Equal(t, engine.KindSteps, last.Problems[0].Output)

	t.Run("unknown course", func(t *testing.T) {
		res, err := tt.listTopicsHandler(context.Background(), call(map[string]any{"course": "XYZ9999"}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), "XYZ9999")
	})

	t.Run("missing course", func(t *testing.T) {
		res, err := tt.listTopicsHandler(context.Background(), call(map[string]any{}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}

func TestDescribeProblem(t *testing.T) {
	tt := newTools()

	res, err := tt.describeProblemHandler(context.Background(), call(map[string]any{
		"topic":   "cos1501-integers",
		"problem": string(problems.GCDLCM),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var schema engine.ProblemSchema
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &schema))
	assert.Equal(t, problems.GCDLCM, schema.Problem)
	assert.ElementsMatch(t, []string{"a", "b"}, schema.Parameters.Required)
	assert.Equal(t, "252", schema.Parameters.Properties["a"].Default)

	t.Run("problem outside its topic", func(t *testing.T) {
		res, err := tt.describeProblemHandler(context.Background(), call(map[string]any{
			"topic":   "cos1501-sets",
			"problem": string(problems.GCDLCM),
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})
}

func TestSolve(t *testing.T) {
	tt := newTools()
	ctx := context.Background()

	t.Run("object fields", func(t *testing.T) {
		res, err := tt.solveHandler(ctx, call(map[string]any{
			"topic":   "cos1501-integers",
			"problem": string(problems.GCDLCM),
			"fields":  map[string]any{"a": "12", "b": float64(18)},
		}))
		require.NoError(t, err)
		require.False(t, res.IsError, text(t, res))
		assert.Contains(t, text(t, res), "gcd(12, 18) = 6")
	})

	t.Run("string fields and json output", func(t *testing.T) {
		res, err := tt.solveHandler(ctx, call(map[string]any{
			"topic":   "cos1501-integers",
			"problem": string(problems.GCDLCM),
			"fields":  `{"a": "252"}`,
			"format":  "json",
		}))
		require.NoError(t, err)
		require.False(t, res.IsError)

		var r engine.Result
		require.NoError(t, json.Unmarshal([]byte(text(t, res)), &r))
		assert.Equal(t, engine.KindSteps, r.Kind)
		assert.False(t, r.Diagnostic)
		assert.Contains(t, engine.Render(r), "gcd(252, 105) = 21")
	})

	t.Run("missing fields without defaults is a diagnostic", func(t *testing.T) {
		res, err := tt.solveHandler(ctx, call(map[string]any{
			"topic":        "cos1501-integers",
			"problem":      string(problems.GCDLCM),
			"fields":       map[string]any{"a": "12"},
			"use_defaults": false,
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
	})

	t.Run("bad field type", func(t *testing.T) {
		res, err := tt.solveHandler(ctx, call(map[string]any{
			"topic":   "cos1501-integers",
			"problem": string(problems.GCDLCM),
			"fields":  map[string]any{"a": []any{1, 2}},
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), "want a string")
	})

	t.Run("busy session", func(t *testing.T) {
		require.NoError(t, tt.sess.Begin())
		defer tt.sess.End()

		res, err := tt.solveHandler(ctx, call(map[string]any{
			"topic":   "cos1501-integers",
			"problem": string(problems.GCDLCM),
		}))
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, text(t, res), "already in progress")
	})

	t.Run("code output", func(t *testing.T) {
		res, err := tt.solveHandler(ctx, call(map[string]any{
			"topic":   "apm1513-matrix-properties",
			"problem": "determinant",
		}))
		require.NoError(t, err)
		require.False(t, res.IsError)
		assert.Contains(t, text(t, res), "det(")
	})
}
