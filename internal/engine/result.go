package engine

import (
	"fmt"
	"strings"
)

// Step is one numbered unit of a derivation.
type Step struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
	Body   string `json:"body"`
}

// Result is either a list of steps or a block of generated code.
type Result struct {
	Kind       ResultKind `json:"kind"`
	Title      string     `json:"title"`
	Steps      []Step     `json:"steps,omitempty"`
	Code       string     `json:"code,omitempty"`
	Diagnostic bool       `json:"diagnostic"`
}

// Answer returns the body of the last step, which holds the final answer.
func (r Result) Answer() string {
	if r.Kind == KindCode || len(r.Steps) == 0 {
		return ""
	}
	return r.Steps[len(r.Steps)-1].Body
}

// Narration accumulates steps in order.
type Narration struct {
	title string
	steps []Step
}

// Narrate starts a step result.
func Narrate(title string) *Narration {
	return &Narration{title: title}
}

// Step appends a step whose body is built with fmt.Sprintf.
func (n *Narration) Step(label, format string, args ...any) *Narration {
	return n.add(label, fmt.Sprintf(format, args...))
}

// Lines appends a step whose body is the given lines.
func (n *Narration) Lines(label string, lines ...string) *Narration {
	return n.add(label, strings.Join(lines, "\n"))
}

func (n *Narration) add(label, body string) *Narration {
	n.steps = append(n.steps, Step{Number: len(n.steps) + 1, Label: label, Body: body})
	return n
}

// Len is the number of steps so far.
func (n *Narration) Len() int { return len(n.steps) }

// Result finishes the narration.
func (n *Narration) Result() Result {
	return Result{Kind: KindSteps, Title: n.title, Steps: n.steps}
}

// Code wraps generated source text.
func Code(title, code string) Result {
	return Result{Kind: KindCode, Title: title, Code: code}
}

// Fail converts err into a one-step diagnostic with a syntax hint.
func Fail(title string, err error) Result {
	r := Narrate(title).Lines("Error", err.Error(), "Hint: "+Hint(err)).Result()
	r.Diagnostic = true
	return r
}

// FailCode converts err into comment-only code.
func FailCode(title string, err error) Result {
	var sb strings.Builder
	for _, line := range strings.Split(err.Error(), "\n") {
		sb.WriteString("% Error: " + line + "\n")
	}
	sb.WriteString("% Hint: " + Hint(err) + "\n")
	r := Code(title, sb.String())
	r.Diagnostic = true
	return r
}

// Render formats a result for display: numbered steps, or the code verbatim.
func Render(r Result) string {
	if r.Kind == KindCode {
		return r.Code
	}
	var sb strings.Builder
	if r.Title != "" {
		sb.WriteString(strings.ToUpper(r.Title) + "\n")
		sb.WriteString(strings.Repeat("-", len(r.Title)) + "\n")
	}
	for i, s := range r.Steps {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(RenderStep(s))
	}
	return sb.String()
}

// RenderStep formats one step as "n. Label" followed by its indented body.
func RenderStep(s Step) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d. %s\n", s.Number, s.Label)
	if s.Body != "" {
		for _, line := range strings.Split(s.Body, "\n") {
			sb.WriteString("   " + line + "\n")
		}
	}
	return sb.String()
}
