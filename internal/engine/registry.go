package engine

import (
	"errors"
	"fmt"
	"sort"
)

// ErrSealed is returned when registering after Seal.
var ErrSealed = errors.New("engine: registry is sealed")

// Registry holds problem types and the topics that list them. It is
// populated at start-up and sealed; after Seal it is read-only and safe for
// concurrent use.
type Registry struct {
	problems map[ProblemID]ProblemType
	topics   map[string]Topic
	order    []string
	sealed   bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		problems: make(map[ProblemID]ProblemType),
		topics:   make(map[string]Topic),
	}
}

// Register adds a problem type.
func (r *Registry) Register(p ProblemType) error {
	if r.sealed {
		return ErrSealed
	}
	if p.ID == "" {
		return errors.New("engine: problem has no id")
	}
	if _, exists := r.problems[p.ID]; exists {
		return fmt.Errorf("problem %q already registered", p.ID)
	}
	if p.Solve == nil {
		return fmt.Errorf("problem %q has no solver", p.ID)
	}
	seen := make(map[string]bool, len(p.Fields))
	for _, f := range p.Fields {
		if seen[f.Name] {
			return fmt.Errorf("problem %q declares field %q twice", p.ID, f.Name)
		}
		seen[f.Name] = true
	}
	r.problems[p.ID] = p
	return nil
}

// MustRegister adds a problem type, panicking on error.
func (r *Registry) MustRegister(p ProblemType) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// RegisterAll registers multiple problem types.
func (r *Registry) RegisterAll(ps ...ProblemType) error {
	for _, p := range ps {
		if err := r.Register(p); err != nil {
			return err
		}
	}
	return nil
}

// AddTopic adds a topic. Every problem it lists must already be registered.
func (r *Registry) AddTopic(t Topic) error {
	if r.sealed {
		return ErrSealed
	}
	if _, exists := r.topics[t.ID]; exists {
		return fmt.Errorf("topic %q already registered", t.ID)
	}
	if len(t.Problems) == 0 {
		return fmt.Errorf("topic %q lists no problems", t.ID)
	}
	for _, id := range t.Problems {
		if _, ok := r.problems[id]; !ok {
			return fmt.Errorf("topic %q lists unknown problem %q", t.ID, id)
		}
	}
	r.topics[t.ID] = t
	r.order = append(r.order, t.ID)
	return nil
}

// MustAddTopic adds a topic, panicking on error.
func (r *Registry) MustAddTopic(t Topic) {
	if err := r.AddTopic(t); err != nil {
		panic(err)
	}
}

// Seal makes the registry read-only.
func (r *Registry) Seal() { r.sealed = true }

// Problem retrieves a problem type by id.
func (r *Registry) Problem(id ProblemID) (ProblemType, bool) {
	p, ok := r.problems[id]
	return p, ok
}

// Topic retrieves a topic by id.
func (r *Registry) Topic(id string) (Topic, bool) {
	t, ok := r.topics[id]
	return t, ok
}

// Topics returns all topics in registration order.
func (r *Registry) Topics() []Topic {
	out := make([]Topic, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.topics[id])
	}
	return out
}

// Courses returns the course codes in order of first appearance.
func (r *Registry) Courses() []string {
	var out []string
	seen := make(map[string]bool)
	for _, id := range r.order {
		c := r.topics[id].Course
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// TopicsFor returns the topics of one course in registration order.
func (r *Registry) TopicsFor(course string) []Topic {
	var out []Topic
	for _, id := range r.order {
		if t := r.topics[id]; t.Course == course {
			out = append(out, t)
		}
	}
	return out
}

// ProblemsFor returns the problem types of a topic in menu order.
func (r *Registry) ProblemsFor(topic string) ([]ProblemType, error) {
	t, ok := r.topics[topic]
	if !ok {
		return nil, fmt.Errorf("%w: unknown topic %q", ErrSchemaMismatch, topic)
	}
	out := make([]ProblemType, len(t.Problems))
	for i, id := range t.Problems {
		out[i] = r.problems[id]
	}
	return out, nil
}

// ProblemIDs returns every registered problem id, sorted.
func (r *Registry) ProblemIDs() []ProblemID {
	ids := make([]ProblemID, 0, len(r.problems))
	for id := range r.problems {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Count returns the number of registered problem types.
func (r *Registry) Count() int { return len(r.problems) }
