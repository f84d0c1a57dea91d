package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

type courseInfo struct {
	Code   string      `json:"code"`
	Name   string      `json:"name"`
	Topics []topicInfo `json:"topics"`
}

type topicInfo struct {
	ID       string        `json:"id"`
	Title    string        `json:"title"`
	Problems []problemInfo `json:"problems,omitempty"`
}

type problemInfo struct {
	ID     engine.ProblemID  `json:"id"`
	Title  string            `json:"title"`
	Output engine.ResultKind `json:"output"`
}

// registerListCourses adds the list_courses tool to the server.
func (t *tools) registerListCourses(s *server.MCPServer) {
	tool := mcp.NewTool("list_courses",
		mcp.WithDescription("List the courses in menu order with their topics."),
	)

	s.AddTool(tool, t.listCoursesHandler)
}

func (t *tools) listCoursesHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reg := t.sess.Engine().Registry()

	out := make([]courseInfo, 0, len(t.cat.Courses))
	for _, c := range t.cat.Courses {
		topics, err := t.cat.Topics(reg, c.Code)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		info := courseInfo{Code: c.Code, Name: c.Name}
		for _, topic := range topics {
			info.Topics = append(info.Topics, topicInfo{ID: topic.ID, Title: topic.Title})
		}
		out = append(out, info)
	}

	return jsonResult(out)
}

// registerListTopics adds the list_topics tool to the server.
func (t *tools) registerListTopics(s *server.MCPServer) {
	tool := mcp.NewTool("list_topics",
		mcp.WithDescription("List the topics of one course with the problems each topic offers."),
		mcp.WithString("course",
			mcp.Required(),
			mcp.Description("Course code (e.g., 'MAT1512', 'COS1501')"),
		),
	)

	s.AddTool(tool, t.listTopicsHandler)
}

func (t *tools) listTopicsHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	course, ok := args["course"].(string)
	if !ok || course == "" {
		return mcp.NewToolResultError("course is required"), nil
	}

	reg := t.sess.Engine().Registry()
	topics, err := t.cat.Topics(reg, course)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := make([]topicInfo, 0, len(topics))
	for _, topic := range topics {
		ps, err := reg.ProblemsFor(topic.ID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		info := topicInfo{ID: topic.ID, Title: topic.Title}
		for _, p := range ps {
			info.Problems = append(info.Problems, problemInfo{ID: p.ID, Title: p.Title, Output: p.Output})
		}
		out = append(out, info)
	}

	return jsonResult(out)
}

// registerDescribeProblem adds the describe_problem tool to the server.
func (t *tools) registerDescribeProblem(s *server.MCPServer) {
	tool := mcp.NewTool("describe_problem",
		mcp.WithDescription("Return the JSON schema of a problem's input fields, with defaults and format hints."),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Topic ID from list_topics"),
		),
		mcp.WithString("problem",
			mcp.Required(),
			mcp.Description("Problem ID from list_topics"),
		),
	)

	s.AddTool(tool, t.describeProblemHandler)
}

func (t *tools) describeProblemHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, id, errRes := target(req.GetArguments())
	if errRes != nil {
		return errRes, nil
	}

	p, err := t.sess.Engine().Describe(topic, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	schema, err := engine.SchemaJSON(topic, p)
	if err != nil {
		return mcp.NewToolResultError("failed to encode schema: " + err.Error()), nil
	}
	return mcp.NewToolResultText(schema), nil
}

// registerSolve adds the solve tool to the server.
func (t *tools) registerSolve(s *server.MCPServer) {
	tool := mcp.NewTool("solve",
		mcp.WithDescription("Solve one problem and return the worked steps or the generated Octave script. Input errors come back as a diagnostic, not a tool failure."),
		mcp.WithString("topic",
			mcp.Required(),
			mcp.Description("Topic ID from list_topics"),
		),
		mcp.WithString("problem",
			mcp.Required(),
			mcp.Description("Problem ID from list_topics"),
		),
		mcp.WithObject("fields",
			mcp.Description("Field values keyed by field name, as described by describe_problem. A JSON object encoded as a string is accepted too."),
		),
		mcp.WithBoolean("use_defaults",
			mcp.Description("Fill fields that are not given with their defaults (default: true)"),
		),
		mcp.WithString("format",
			mcp.Enum("text", "json"),
			mcp.Description("Output format: 'text' for the rendered steps (default), 'json' for the structured result"),
		),
	)

	s.AddTool(tool, t.solveHandler)
}

func (t *tools) solveHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()

	topic, id, errRes := target(args)
	if errRes != nil {
		return errRes, nil
	}

	p, err := t.sess.Engine().Describe(topic, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	fields, err := fieldValues(args["fields"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	useDefaults := true
	if b, ok := args["use_defaults"].(bool); ok {
		useDefaults = b
	}
	if useDefaults {
		for name, val := range p.Defaults() {
			if _, ok := fields[name]; !ok {
				fields[name] = val
			}
		}
	}

	res, err := t.sess.Solve(topic, id, fields)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if format, _ := args["format"].(string); format == "json" {
		return jsonResult(res)
	}
	if res.Diagnostic {
		return mcp.NewToolResultError(engine.Render(res)), nil
	}
	return mcp.NewToolResultText(engine.Render(res)), nil
}

func target(args map[string]any) (string, engine.ProblemID, *mcp.CallToolResult) {
	topic, _ := args["topic"].(string)
	problem, _ := args["problem"].(string)
	if topic == "" || problem == "" {
		return "", "", mcp.NewToolResultError("topic and problem are required")
	}
	return topic, engine.ProblemID(problem), nil
}

// fieldValues flattens the fields argument to strings. Numbers and booleans
// are accepted for convenience.
func fieldValues(raw any) (map[string]string, error) {
	var obj map[string]any
	switch v := raw.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]any:
		obj = v
	case string:
		if v == "" {
			return map[string]string{}, nil
		}
		if err := json.Unmarshal([]byte(v), &obj); err != nil {
			return nil, fmt.Errorf("fields: want a JSON object: %w", err)
		}
	default:
		return nil, errors.New("fields: want an object keyed by field name")
	}

	out := make(map[string]string, len(obj))
	for name, val := range obj {
		switch v := val.(type) {
		case string:
			out[name] = v
		case float64:
			out[name] = strconv.FormatFloat(v, 'g', -1, 64)
		case bool:
			out[name] = strconv.FormatBool(v)
		default:
			return nil, fmt.Errorf("fields: %s: want a string, got %T", name, val)
		}
	}
	return out, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
