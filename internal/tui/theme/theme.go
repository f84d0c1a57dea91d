package theme

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Crust    = lipgloss.Color("#11111b")
	Base     = lipgloss.Color("#1e1e2e")
	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Green    = lipgloss.Color("#a6e3a1")
	Yellow   = lipgloss.Color("#f9e2af")
	Blue     = lipgloss.Color("#89b4fa")
	Overlay0 = lipgloss.Color("#6c7086")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Surface2 = lipgloss.Color("#585b70")
	Lavender = lipgloss.Color("#b4befe")
	Text     = lipgloss.Color("#cdd6f4")
)

var Title = lipgloss.NewStyle().
	Bold(true).
	Foreground(Crust).
	Background(Mauve).
	Padding(0, 1)

var Panel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Surface2).
	Padding(0, 1)

var FocusedPanel = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Mauve).
	Padding(0, 1)

var InsertModePanel = lipgloss.NewStyle().
	Border(lipgloss.ThickBorder()).
	BorderForeground(Green).
	Padding(0, 1)

var Header = lipgloss.NewStyle().
	Bold(true).
	Foreground(Lavender)

var Answer = lipgloss.NewStyle().
	Foreground(Green).
	Bold(true)

var Failure = lipgloss.NewStyle().
	Foreground(Red)

var Dim = lipgloss.NewStyle().
	Foreground(Overlay0)

var Key = lipgloss.NewStyle().
	Foreground(Mauve).
	Bold(true)

var Desc = lipgloss.NewStyle().
	Foreground(Overlay0)

var StatusBar = lipgloss.NewStyle().
	Background(Surface0).
	Foreground(Text).
	Padding(0, 1)

var Crumb = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(Overlay0)

var ActiveCrumb = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(Mauve).
	Bold(true)

var ModeIndicator = lipgloss.NewStyle().
	Background(Green).
	Foreground(Crust).
	Padding(0, 1).
	Bold(true)

var Selection = lipgloss.NewStyle().
	Background(Surface1).
	Foreground(Lavender).
	Bold(true)

var Prompt = lipgloss.NewStyle().
	Foreground(Green)

var (
	stepLine    = regexp.MustCompile(`^\d+\. `)
	commentLine = regexp.MustCompile(`^\s*%`)
)

// Steps colours rendered step text: step headings, the final step's body,
// and everything after an Error heading.
func Steps(rendered string, diagnostic bool) string {
	lines := strings.Split(rendered, "\n")
	last := -1
	for i, line := range lines {
		if stepLine.MatchString(line) {
			last = i
		}
	}
	for i, line := range lines {
		switch {
		case line == "":
		case stepLine.MatchString(line):
			lines[i] = Header.Render(line)
		case diagnostic && i > last:
			lines[i] = Failure.Render(line)
		case i > last && last >= 0:
			lines[i] = Answer.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// Code dims Octave comment lines, or colours them as failures when the
// whole block is a diagnostic.
func Code(src string, diagnostic bool) string {
	lines := strings.Split(src, "\n")
	for i, line := range lines {
		switch {
		case diagnostic && line != "":
			lines[i] = Failure.Render(line)
		case commentLine.MatchString(line):
			lines[i] = Dim.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

var Badge = lipgloss.NewStyle().
	Foreground(Crust).
	Background(Overlay0).
	Padding(0, 1)

var BadgeSuccess = Badge.Background(Green)

var BadgeError = Badge.Background(Red)

var BadgeInfo = Badge.Background(Blue)
