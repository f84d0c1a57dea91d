package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	crumbs := m.crumbs.SetPath(m.path()...).
		SetWidth(m.width).
		SetInsertMode(m.screen == ScreenForm).
		Render()

	var content string
	var keys help.KeyMap
	switch m.screen {
	case ScreenCourses:
		content, keys = m.courses.View(), menuKeys
	case ScreenTopics:
		content, keys = m.topics.View(), menuKeys
	case ScreenProblems:
		content, keys = m.problems.View(), menuKeys
	case ScreenForm:
		content, keys = m.form.View(), formKeys
	case ScreenResult:
		content, keys = m.result.View(), resultKeys
	}

	info := m.status
	if m.solving {
		info = m.spinner.View() + " Solving..."
	}
	status := m.statusBar.Render(keys, m.screen.String(), info, m.statusErr && !m.solving)

	return lipgloss.JoinVertical(lipgloss.Left, crumbs, content, status)
}

// path lists the breadcrumbs after the root for the current screen.
func (m Model) path() []string {
	var out []string
	if m.screen >= ScreenTopics {
		out = append(out, m.course.Code)
	}
	if m.screen >= ScreenProblems {
		out = append(out, m.topic.Title)
	}
	if m.screen >= ScreenForm {
		out = append(out, m.form.Problem().Title)
	}
	return out
}
