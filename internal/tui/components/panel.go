package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Shy5ta/studentSuite/internal/tui/theme"
)

type FocusState int

const (
	FocusBlurred FocusState = iota
	FocusFocused
	FocusInsert
)

// Panel is a bordered box whose border colour follows its focus state.
type Panel struct {
	Title  string
	Width  int
	Height int
	Focus  FocusState
}

func NewPanel(title string) Panel {
	return Panel{
		Title: title,
		Focus: FocusBlurred,
	}
}

func (p Panel) SetSize(w, h int) Panel {
	p.Width = w
	p.Height = h
	return p
}

func (p Panel) SetFocus(f FocusState) Panel {
	p.Focus = f
	return p
}

func (p Panel) Style() lipgloss.Style {
	switch p.Focus {
	case FocusInsert:
		return theme.InsertModePanel
	case FocusFocused:
		return theme.FocusedPanel
	default:
		return theme.Panel
	}
}

// Render draws content inside the panel. Width and Height are the outer
// size including the border.
func (p Panel) Render(content string) string {
	style := p.Style()
	w, h := p.Width-style.GetHorizontalFrameSize(), p.Height-style.GetVerticalFrameSize()
	if w > 0 {
		style = style.Width(w)
	}
	if h > 0 {
		style = style.Height(h).MaxHeight(p.Height)
	}

	header := ""
	if p.Title != "" {
		header = theme.Header.Render(p.Title) + "\n"
	}
	return style.Render(header + content)
}
