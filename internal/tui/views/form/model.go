package form

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/tui/components"
	"github.com/Shy5ta/studentSuite/internal/tui/theme"
)

const areaHeight = 6

// SubmitMsg asks the parent to solve with the current values.
type SubmitMsg struct {
	Values map[string]string
}

type field struct {
	def   engine.InputField
	input textinput.Model
	area  textarea.Model
}

func (f field) multiline() bool { return f.def.Kind.Multiline() }

func (f field) value() string {
	if f.multiline() {
		return f.area.Value()
	}
	return f.input.Value()
}

func (f *field) focus() {
	if f.multiline() {
		f.area.Focus()
	} else {
		f.input.Focus()
	}
}

func (f *field) blur() {
	f.area.Blur()
	f.input.Blur()
}

func (f *field) setWidth(w int) {
	f.input.Width = w
	f.area.SetWidth(w)
}

// Model is the input form for one problem, prefilled with its defaults.
type Model struct {
	problem engine.ProblemType
	fields  []field
	focus   int
	width   int
	height  int
	panel   components.Panel
}

func New(p engine.ProblemType) Model {
	m := Model{
		problem: p,
		panel:   components.NewPanel(p.Title).SetFocus(components.FocusInsert),
	}
	for _, def := range p.Fields {
		f := field{def: def}
		if def.Kind.Multiline() {
			f.area = textarea.New()
			f.area.ShowLineNumbers = false
			f.area.SetHeight(areaHeight)
			f.area.CharLimit = 0
			f.area.SetValue(def.Default)
		} else {
			f.input = textinput.New()
			f.input.Prompt = theme.Prompt.Render("❯ ")
			f.input.CharLimit = 512
			f.input.SetValue(def.Default)
		}
		m.fields = append(m.fields, f)
	}
	if len(m.fields) > 0 {
		m.fields[0].focus()
	}
	return m
}

func (m Model) Problem() engine.ProblemType { return m.problem }

func (m Model) SetSize(w, h int) Model {
	m.width = w
	m.height = h
	m.panel = m.panel.SetSize(w, h)
	for i := range m.fields {
		m.fields[i].setWidth(max(w-8, 20))
	}
	return m
}

// Values returns the current text of every field.
func (m Model) Values() map[string]string {
	out := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		out[f.def.Name] = f.value()
	}
	return out
}

// Focused returns the name of the field being edited.
func (m Model) Focused() string {
	if len(m.fields) == 0 {
		return ""
	}
	return m.fields[m.focus].def.Name
}

// Multiline reports whether the focused field takes Enter as a newline.
func (m Model) Multiline() bool {
	return len(m.fields) > 0 && m.fields[m.focus].multiline()
}

// Reset restores every default.
func (m Model) Reset() Model {
	for i := range m.fields {
		f := &m.fields[i]
		if f.multiline() {
			f.area.SetValue(f.def.Default)
		} else {
			f.input.SetValue(f.def.Default)
		}
	}
	return m
}

func (m Model) move(delta int) Model {
	if len(m.fields) == 0 {
		return m
	}
	m.fields[m.focus].blur()
	m.focus = (m.focus + delta + len(m.fields)) % len(m.fields)
	m.fields[m.focus].focus()
	return m
}
