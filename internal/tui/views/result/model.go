package result

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/textutil"
	"github.com/Shy5ta/studentSuite/internal/tui/components"
	"github.com/Shy5ta/studentSuite/internal/tui/theme"
)

// Model shows one result. Steps are word wrapped; code keeps its lines
// and scrolls horizontally.
type Model struct {
	width    int
	height   int
	panel    components.Panel
	viewport viewport.Model
	result   engine.Result
	wrap     bool
	xOffset  int
}

func New() Model {
	return Model{
		viewport: viewport.New(0, 0),
		panel:    components.NewPanel("").SetFocus(components.FocusFocused),
		wrap:     true,
	}
}

func (m Model) SetSize(w, h int) Model {
	m.width = w
	m.height = h
	m.panel = m.panel.SetSize(w, h)
	m.viewport.Width = max(w-4, 10)
	m.viewport.Height = max(h-3, 1)
	m.refresh()
	return m
}

func (m Model) SetResult(r engine.Result) Model {
	m.result = r
	m.wrap = r.Kind != engine.KindCode
	m.xOffset = 0
	m.panel.Title = r.Title + " " + components.ResultBadge(r).Render()
	m.refresh()
	m.viewport.GotoTop()
	return m
}

func (m Model) Result() engine.Result { return m.result }

func (m Model) Wrap() bool { return m.wrap }

func (m *Model) refresh() {
	width := m.viewport.Width
	var text string
	if m.result.Kind == engine.KindCode {
		text = m.result.Code
	} else {
		r := m.result
		// the panel header already shows the title
		r.Title = ""
		if m.wrap {
			text = textutil.RenderResult(r, width)
		} else {
			text = engine.Render(r)
		}
	}

	lines := textutil.FitLines(strings.Split(strings.TrimRight(text, "\n"), "\n"), width, m.xOffset, m.wrap)
	joined := strings.Join(lines, "\n")
	if m.result.Kind == engine.KindCode {
		joined = theme.Code(joined, m.result.Diagnostic)
	} else {
		joined = theme.Steps(joined, m.result.Diagnostic)
	}
	m.viewport.SetContent(joined)
}

func (m *Model) scroll(delta int) {
	if m.wrap {
		return
	}
	lines := strings.Split(engine.Render(m.result), "\n")
	limit := max(textutil.MaxLineWidth(lines)-m.viewport.Width, 0)
	m.xOffset = min(max(m.xOffset+delta, 0), limit)
	m.refresh()
}
