package engine

import (
	"errors"
	"fmt"

	"github.com/Shy5ta/studentSuite/internal/cas"
)

var (
	// ErrInputParse marks a field whose raw text could not be parsed.
	ErrInputParse = errors.New("input could not be parsed")

	// ErrSchemaMismatch marks a call whose field names differ from the
	// problem's declared fields, or that names an unknown topic or problem.
	ErrSchemaMismatch = errors.New("fields do not match the problem")

	// ErrInternalFault marks a solver that panicked.
	ErrInternalFault = errors.New("internal solver fault")
)

// FieldError reports which input field failed to parse.
type FieldError struct {
	Field string
	Kind  FieldKind
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

func fieldError(name string, kind FieldKind, cause error) *FieldError {
	return &FieldError{Field: name, Kind: kind, Err: fmt.Errorf("%w: %w", ErrInputParse, cause)}
}

// Hint returns the syntax advice shown with a diagnostic for err.
func Hint(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Kind.Hint()
	}
	if errors.Is(err, ErrSchemaMismatch) {
		return "run `studentsuite describe <topic> <problem>` to list the expected fields"
	}
	if errors.Is(err, cas.ErrSyntax) {
		return Expression.Hint()
	}
	return genericHint
}

const genericHint = "compare the inputs with the field descriptions; try the defaults to see a worked example"
