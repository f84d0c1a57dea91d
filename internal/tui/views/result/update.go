package result

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Top        key.Binding
	Bottom     key.Binding
	ToggleWrap key.Binding
	Edit       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.ToggleWrap, k.Edit, k.Back, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.Left, k.Right, k.ToggleWrap},
		{k.Edit, k.Back, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("j/k", "scroll"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("", ""),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("h/l", "pan"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("", ""),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		ToggleWrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wrap"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "esc"),
			key.WithHelp("e", "edit inputs"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "b"),
			key.WithHelp("b", "problems"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Update scrolls the result. Edit, Back and Quit are left to the caller.
func (m Model) Update(msg tea.Msg, keys KeyMap) (Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Top):
			m.viewport.GotoTop()
			return m, nil
		case key.Matches(km, keys.Bottom):
			m.viewport.GotoBottom()
			return m, nil
		case key.Matches(km, keys.Left):
			m.scroll(-8)
			return m, nil
		case key.Matches(km, keys.Right):
			m.scroll(8)
			return m, nil
		case key.Matches(km, keys.ToggleWrap):
			m.wrap = !m.wrap
			m.xOffset = 0
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}
