package menu

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Select, k.Back, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Select, k.Back, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("j/k", "nav"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("", ""),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", "l"),
			key.WithHelp("Enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace", "h"),
			key.WithHelp("Esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Update moves the cursor. Digits 1-9 jump to that entry. Select and Back
// are left to the caller.
func (m Model) Update(msg tea.Msg, keys KeyMap) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(km, keys.Up), key.Matches(km, keys.Down):
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(km)
		return m, cmd

	case key.Matches(km, keys.PageUp):
		m.list.Paginator.PrevPage()
		m.list.Select(m.list.Paginator.Page * m.list.Paginator.PerPage)

	case key.Matches(km, keys.PageDown):
		m.list.Paginator.NextPage()
		m.list.Select(m.list.Paginator.Page * m.list.Paginator.PerPage)
	}

	if n, err := strconv.Atoi(km.String()); err == nil && n >= 1 && n <= len(m.list.Items()) {
		m.list.Select(n - 1)
	}
	return m, nil
}
