// Package engine maps a (topic, problem, fields) request onto a registered
// solver and returns its derivation steps or generated code. Every request
// yields a Result; parse failures, schema mismatches and solver panics come
// back as diagnostic results rather than errors.
package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Shy5ta/studentSuite/internal/logger"
)

// Engine dispatches solve requests against a sealed registry.
type Engine struct {
	reg *Registry
	log *logger.Logger
	now func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the event logger. The default discards events.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New creates an engine over reg and seals it.
func New(reg *Registry, opts ...Option) *Engine {
	reg.Seal()
	e := &Engine{reg: reg, log: logger.Discard(), now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Registry exposes the read-only registry.
func (e *Engine) Registry() *Registry { return e.reg }

// Describe returns the problem type if it belongs to topic.
func (e *Engine) Describe(topic string, problem ProblemID) (ProblemType, error) {
	t, ok := e.reg.Topic(topic)
	if !ok {
		return ProblemType{}, fmt.Errorf("%w: unknown topic %q", ErrSchemaMismatch, topic)
	}
	for _, id := range t.Problems {
		if id == problem {
			p, _ := e.reg.Problem(id)
			return p, nil
		}
	}
	return ProblemType{}, fmt.Errorf("%w: topic %q has no problem %q", ErrSchemaMismatch, topic, problem)
}

// Solve runs one problem. fields must hold exactly the declared field names.
func (e *Engine) Solve(topic string, problem ProblemID, fields map[string]string) (res Result) {
	start := e.now()
	defer func() {
		e.log.LogEvent(logger.Info, "solve", map[string]any{
			"topic":       topic,
			"problem":     string(problem),
			"kind":        res.Kind.String(),
			"diagnostic":  res.Diagnostic,
			"duration_ms": e.now().Sub(start).Milliseconds(),
		})
	}()

	p, err := e.Describe(topic, problem)
	if err != nil {
		return Fail(string(problem), err)
	}
	if err := checkFields(p, fields); err != nil {
		return failFor(p, err)
	}
	return e.run(p, fields)
}

func (e *Engine) run(p ProblemType, fields map[string]string) (res Result) {
	in := NewInput(p, fields)
	defer func() {
		if r := recover(); r != nil {
			e.log.LogEvent(logger.Error, "solver_panic", map[string]any{
				"problem": string(p.ID),
				"panic":   fmt.Sprint(r),
			})
			res = failFor(p, fmt.Errorf("%w: %v", ErrInternalFault, r))
		}
	}()

	res = p.Solve(in)
	if err := in.Err(); err != nil && !res.Diagnostic {
		res = failFor(p, err)
	}
	if res.Title == "" {
		res.Title = p.Title
	}
	return res
}

func failFor(p ProblemType, err error) Result {
	if p.Output == KindCode {
		return FailCode(p.Title, err)
	}
	return Fail(p.Title, err)
}

func checkFields(p ProblemType, fields map[string]string) error {
	var missing, extra []string
	for _, f := range p.Fields {
		if _, ok := fields[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	for name := range fields {
		if _, ok := p.Field(name); !ok {
			extra = append(extra, name)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}
	sort.Strings(extra)
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		parts = append(parts, "unexpected "+strings.Join(extra, ", "))
	}
	return fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(parts, "; "))
}
