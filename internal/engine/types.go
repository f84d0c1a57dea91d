package engine

import "fmt"

// FieldKind is the semantic type of an input field.
type FieldKind int

const (
	Scalar FieldKind = iota
	MatrixBlock
	SetLiteral
	RelationLiteral
	Expression
	Text
)

var fieldKindNames = map[FieldKind]string{
	Scalar:          "scalar",
	MatrixBlock:     "matrix",
	SetLiteral:      "set",
	RelationLiteral: "relation",
	Expression:      "expression",
	Text:            "text",
}

func (k FieldKind) String() string {
	if s, ok := fieldKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// MarshalText encodes the kind by name.
func (k FieldKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *FieldKind) UnmarshalText(b []byte) error {
	for kind, name := range fieldKindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("engine: unknown field kind %q", b)
}

// Multiline reports whether the field usually spans several lines.
func (k FieldKind) Multiline() bool { return k == MatrixBlock }

// Hint is the syntax advice for the kind.
func (k FieldKind) Hint() string {
	switch k {
	case Scalar:
		return "enter a plain number such as 2, -0.5 or 1e-3"
	case MatrixBlock:
		return "one row per line with values separated by spaces; separate blocks with a blank line"
	case SetLiteral:
		return "list elements separated by commas, e.g. 1, 2, 3"
	case RelationLiteral:
		return "list ordered pairs separated by commas, e.g. (1,2), (2,3)"
	case Expression:
		return "use * for multiplication and ^ or ** for powers, e.g. 3*x^2 + sin(x)"
	}
	return "check the format of the input"
}

// InputField describes one named input of a problem.
type InputField struct {
	Name        string    `json:"name"`
	Kind        FieldKind `json:"kind"`
	Default     string    `json:"default"`
	Description string    `json:"description,omitempty"`
}

// ProblemID is the enumerated key of a problem type.
type ProblemID string

// ResultKind tags a Result as narrated steps or generated code.
type ResultKind int

const (
	KindSteps ResultKind = iota
	KindCode
)

func (k ResultKind) String() string {
	if k == KindCode {
		return "code"
	}
	return "steps"
}

// MarshalText encodes the kind by name.
func (k ResultKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *ResultKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "steps":
		*k = KindSteps
	case "code":
		*k = KindCode
	default:
		return fmt.Errorf("engine: unknown result kind %q", b)
	}
	return nil
}

// Solver computes a result from parsed input. Solvers are pure: they read
// only the input and never fail past their own boundary.
type Solver func(in *Input) Result

// ProblemType is one selectable computation.
type ProblemType struct {
	ID     ProblemID
	Title  string
	Fields []InputField
	Output ResultKind
	Solve  Solver
}

// Field returns the declared field with the given name.
func (p ProblemType) Field(name string) (InputField, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return InputField{}, false
}

// Defaults returns the example value of every field.
func (p ProblemType) Defaults() map[string]string {
	out := make(map[string]string, len(p.Fields))
	for _, f := range p.Fields {
		out[f.Name] = f.Default
	}
	return out
}

// Topic is a course chapter grouping problem types.
type Topic struct {
	ID       string
	Course   string
	Title    string
	Problems []ProblemID
}
