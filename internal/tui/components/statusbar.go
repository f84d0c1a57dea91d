package components

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/Shy5ta/studentSuite/internal/tui/theme"
)

type StatusBar struct {
	Width int
	help  help.Model
}

func NewStatusBar() StatusBar {
	h := help.New()
	h.ShowAll = false
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(theme.Mauve).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(theme.Overlay0)
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(theme.Surface2)
	return StatusBar{
		help: h,
	}
}

func (s StatusBar) SetWidth(w int) StatusBar {
	s.Width = w
	return s
}

// Render shows the key help, the screen label and an optional message.
func (s StatusBar) Render(keys help.KeyMap, label, info string, isErr bool) string {
	helpView := s.help.View(keys)

	labelStyle := lipgloss.NewStyle().
		Foreground(theme.Lavender).
		Bold(true)

	bracketStyle := lipgloss.NewStyle().
		Foreground(theme.Overlay0)

	content := helpView + bracketStyle.Render(" │ [") + labelStyle.Render(label) + bracketStyle.Render("]")

	if info != "" {
		infoStyle := lipgloss.NewStyle().Foreground(theme.Overlay0)
		if isErr {
			infoStyle = infoStyle.Foreground(theme.Red)
		}
		content += bracketStyle.Render(" │ ") + infoStyle.Render(info)
	}

	return theme.StatusBar.Width(s.Width).MaxWidth(s.Width).Render(content)
}
