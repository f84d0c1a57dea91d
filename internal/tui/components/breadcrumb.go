package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Shy5ta/studentSuite/internal/tui/theme"
)

// Breadcrumb shows the path from the course menu to the current screen.
type Breadcrumb struct {
	Crumbs     []string
	Width      int
	InsertMode bool
}

func NewBreadcrumb(root string) Breadcrumb {
	return Breadcrumb{Crumbs: []string{root}}
}

// SetPath replaces everything after the root crumb.
func (b Breadcrumb) SetPath(crumbs ...string) Breadcrumb {
	b.Crumbs = append([]string{b.Crumbs[0]}, crumbs...)
	return b
}

func (b Breadcrumb) SetWidth(w int) Breadcrumb {
	b.Width = w
	return b
}

func (b Breadcrumb) SetInsertMode(insert bool) Breadcrumb {
	b.InsertMode = insert
	return b
}

func (b Breadcrumb) Render() string {
	var rendered []string
	last := len(b.Crumbs) - 1
	for i, c := range b.Crumbs {
		switch {
		case i == 0:
			rendered = append(rendered, theme.Title.Render(c))
		case i == last:
			rendered = append(rendered, theme.ActiveCrumb.Render(c))
		default:
			rendered = append(rendered, theme.Crumb.Render(c))
		}
	}
	row := strings.Join(rendered, theme.Dim.Render("›"))

	modeStr := ""
	if b.InsertMode {
		modeStr = theme.ModeIndicator.Render(" INSERT ")
	}

	spacer := ""
	spacerWidth := b.Width - lipgloss.Width(row) - lipgloss.Width(modeStr) - 2
	if spacerWidth > 0 {
		spacer = strings.Repeat(" ", spacerWidth)
	}

	return lipgloss.NewStyle().MaxWidth(b.Width).Render(row + spacer + modeStr)
}
