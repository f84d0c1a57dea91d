package engine

import "encoding/json"

// ProblemSchema describes a problem's input fields in JSON Schema form for
// the MCP server and `describe --json`.
type ProblemSchema struct {
	Topic      string       `json:"topic"`
	Problem    ProblemID    `json:"problem"`
	Title      string       `json:"title"`
	Output     ResultKind   `json:"output"`
	Parameters SchemaParams `json:"parameters"`
}

// SchemaParams is the object schema of the fields.
type SchemaParams struct {
	Type       string                    `json:"type"`
	Properties map[string]SchemaProperty `json:"properties"`
	Required   []string                  `json:"required"`
}

// SchemaProperty describes one field. Every field travels as a string.
type SchemaProperty struct {
	Type        string    `json:"type"`
	Kind        FieldKind `json:"x-kind"`
	Description string    `json:"description"`
	Default     string    `json:"default,omitempty"`
}

// GenerateSchema converts a problem type to its schema.
func GenerateSchema(topic string, p ProblemType) ProblemSchema {
	properties := make(map[string]SchemaProperty, len(p.Fields))
	required := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		desc := f.Description
		if desc == "" {
			desc = f.Kind.Hint()
		}
		properties[f.Name] = SchemaProperty{
			Type:        "string",
			Kind:        f.Kind,
			Description: desc,
			Default:     f.Default,
		}
		required = append(required, f.Name)
	}
	return ProblemSchema{
		Topic:   topic,
		Problem: p.ID,
		Title:   p.Title,
		Output:  p.Output,
		Parameters: SchemaParams{
			Type:       "object",
			Properties: properties,
			Required:   required,
		},
	}
}

// SchemaJSON returns the indented JSON schema of a problem.
func SchemaJSON(topic string, p ProblemType) (string, error) {
	data, err := json.MarshalIndent(GenerateSchema(topic, p), "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
