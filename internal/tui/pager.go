package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/textutil"
	"github.com/Shy5ta/studentSuite/internal/tui/components"
	"github.com/Shy5ta/studentSuite/internal/tui/theme"
)

// PagerModel shows one result full screen.
type PagerModel struct {
	viewport viewport.Model
	result   engine.Result
	ready    bool
	width    int
	height   int
}

func NewPager(r engine.Result) PagerModel {
	return PagerModel{result: r}
}

func (m PagerModel) Init() tea.Cmd {
	return nil
}

func (m PagerModel) content() string {
	if m.result.Kind == engine.KindCode {
		return theme.Code(m.result.Code, m.result.Diagnostic)
	}
	r := m.result
	r.Title = ""
	return theme.Steps(textutil.RenderResult(r, m.viewport.Width), r.Diagnostic)
}

func (m PagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "g":
			m.viewport.GotoTop()
		case "G":
			m.viewport.GotoBottom()
		}

	case tea.WindowSizeMsg:
		headerHeight := 3
		footerHeight := 2

		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.viewport.SetContent(m.content())
	}

	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m PagerModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	title := theme.Title.Render(m.result.Title)
	badge := components.ResultBadge(m.result).Render()

	scrollPercent := int(m.viewport.ScrollPercent() * 100)
	percent := lipgloss.NewStyle().
		Foreground(theme.Lavender).
		Render(fmt.Sprintf(" %d%% ", scrollPercent))

	header := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge, "  ", percent)
	footer := theme.Dim.Render(" ↑/↓ j/k scroll • g/G top/bottom • q quit ")

	content := theme.Panel.Padding(0).Width(m.width - 2).Render(m.viewport.View())

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		content,
		footer,
	)
}

// RunPager shows a result in a full-screen pager.
func RunPager(r engine.Result) error {
	p := tea.NewProgram(
		NewPager(r),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
