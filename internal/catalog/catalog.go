// Package catalog describes the course menu shown by the shells: which
// courses exist, their display names, and the order of their topics.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

//go:embed catalog.yaml
var builtin []byte

// Course is one menu entry.
type Course struct {
	Code   string   `yaml:"code" json:"code"`
	Name   string   `yaml:"name" json:"name"`
	Topics []string `yaml:"topics" json:"topics"`
}

// Catalog lists courses in menu order.
type Catalog struct {
	Courses []Course `yaml:"courses" json:"courses"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(builtin)
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in catalog is invalid: %v", err))
	}
	return c
}

// Load reads the catalog at path, or the built-in one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return ParseFile(path)
}

// ParseFile reads a catalog from a YAML file.
func ParseFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes catalog YAML and checks that it is well formed.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}
	if len(c.Courses) == 0 {
		return nil, errors.New("catalog: no courses")
	}
	seen := make(map[string]bool)
	for i, course := range c.Courses {
		switch {
		case course.Code == "":
			return nil, fmt.Errorf("catalog: course %d has no code", i)
		case seen[course.Code]:
			return nil, fmt.Errorf("catalog: duplicate course %s", course.Code)
		case len(course.Topics) == 0:
			return nil, fmt.Errorf("catalog: course %s has no topics", course.Code)
		}
		seen[course.Code] = true
	}
	return &c, nil
}

// Validate checks every topic against the registry. A topic must exist and
// belong to the course that lists it.
func (c *Catalog) Validate(reg *engine.Registry) error {
	var errs []error
	for _, course := range c.Courses {
		listed := make(map[string]bool)
		for _, id := range course.Topics {
			t, ok := reg.Topic(id)
			switch {
			case !ok:
				errs = append(errs, fmt.Errorf("%s: unknown topic %q", course.Code, id))
			case t.Course != course.Code:
				errs = append(errs, fmt.Errorf("%s: topic %q belongs to %s", course.Code, id, t.Course))
			case listed[id]:
				errs = append(errs, fmt.Errorf("%s: topic %q listed twice", course.Code, id))
			}
			listed[id] = true
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("catalog: %w", errors.Join(errs...))
	}
	return nil
}

// Course finds a course by code.
func (c *Catalog) Course(code string) (Course, bool) {
	for _, course := range c.Courses {
		if course.Code == code {
			return course, true
		}
	}
	return Course{}, false
}

// Codes returns the course codes in menu order.
func (c *Catalog) Codes() []string {
	out := make([]string, len(c.Courses))
	for i, course := range c.Courses {
		out[i] = course.Code
	}
	return out
}

// Topics resolves a course's topics against the registry, in menu order.
func (c *Catalog) Topics(reg *engine.Registry, code string) ([]engine.Topic, error) {
	course, ok := c.Course(code)
	if !ok {
		return nil, fmt.Errorf("catalog: unknown course %q", code)
	}
	out := make([]engine.Topic, 0, len(course.Topics))
	for _, id := range course.Topics {
		t, ok := reg.Topic(id)
		if !ok {
			return nil, fmt.Errorf("catalog: %s: unknown topic %q", code, id)
		}
		out = append(out, t)
	}
	return out, nil
}
