// Package problems wires every solver into the registry under a fixed
// problem id and groups the problems into course topics. Field defaults
// are worked examples; solving any problem with its defaults succeeds.
package problems

import (
	"github.com/Shy5ta/studentSuite/internal/engine"
)

func field(kind engine.FieldKind, name, def, desc string) engine.InputField {
	return engine.InputField{Name: name, Kind: kind, Default: def, Description: desc}
}

func scalar(name, def, desc string) engine.InputField { return field(engine.Scalar, name, def, desc) }
func matrix(name, def, desc string) engine.InputField { return field(engine.MatrixBlock, name, def, desc) }
func expr(name, def, desc string) engine.InputField   { return field(engine.Expression, name, def, desc) }
func text(name, def, desc string) engine.InputField   { return field(engine.Text, name, def, desc) }
func set(name, def, desc string) engine.InputField    { return field(engine.SetLiteral, name, def, desc) }

func relation(name, def, desc string) engine.InputField {
	return field(engine.RelationLiteral, name, def, desc)
}

// steps declares a problem answered with numbered derivation steps.
func steps(id engine.ProblemID, title string, solve engine.Solver, fields ...engine.InputField) engine.ProblemType {
	return engine.ProblemType{ID: id, Title: title, Fields: fields, Output: engine.KindSteps, Solve: solve}
}

// code declares a problem answered with generated Octave code.
func code(id engine.ProblemID, title string, solve engine.Solver, fields ...engine.InputField) engine.ProblemType {
	return engine.ProblemType{ID: id, Title: title, Fields: fields, Output: engine.KindCode, Solve: solve}
}

// course bundles the problems and topics contributed by one course.
type course struct {
	problems []engine.ProblemType
	topics   []engine.Topic
}

// courses is the menu order.
var courses = []func() course{apm1513, apm1514, mat1503, mat1512, mat1613, cos1501}

// Register adds every problem and topic to reg.
func Register(reg *engine.Registry) error {
	for _, build := range courses {
		c := build()
		if err := reg.RegisterAll(c.problems...); err != nil {
			return err
		}
		for _, t := range c.topics {
			if err := reg.AddTopic(t); err != nil {
				return err
			}
		}
	}
	return nil
}

// NewRegistry returns a registry holding every course.
func NewRegistry() (*engine.Registry, error) {
	reg := engine.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}

// Default builds a sealed engine over every course.
func Default(opts ...engine.Option) *engine.Engine {
	reg, err := NewRegistry()
	if err != nil {
		panic(err)
	}
	return engine.New(reg, opts...)
}
