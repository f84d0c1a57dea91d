package menu

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Shy5ta/studentSuite/internal/textutil"
	"github.com/Shy5ta/studentSuite/internal/tui/components"
	"github.com/Shy5ta/studentSuite/internal/tui/theme"
)

// Item is one menu entry. ID is what the caller acts on; Title and
// Detail are displayed.
type Item struct {
	ID     string
	Title  string
	Detail string
}

func (i Item) FilterValue() string { return i.Title }

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(Item)
	if !ok {
		return
	}

	title := fmt.Sprintf("%2d. %s", index+1, i.Title)
	detail := ""
	if i.Detail != "" {
		detail = "  " + i.Detail
	}
	line := textutil.TruncateWithEllipsis(" "+title+detail, m.Width())

	if index == m.Index() {
		line = theme.Selection.Width(m.Width()).Render(line)
	} else {
		line = lipgloss.NewStyle().Foreground(theme.Text).Render(line)
	}

	fmt.Fprint(w, line)
}

type Model struct {
	width  int
	height int
	ready  bool
	panel  components.Panel
	list   list.Model
}

func New(title string, items []Item) Model {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}

	l := list.New(listItems, itemDelegate{}, 0, 0)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle().Foreground(theme.Overlay0).Padding(1)

	return Model{
		ready: true,
		list:  l,
		panel: components.NewPanel(title).SetFocus(components.FocusFocused),
	}
}

func (m Model) SetSize(w, h int) Model {
	if !m.ready {
		return m
	}
	m.width = w
	m.height = h
	m.panel = m.panel.SetSize(w, h)
	// border, padding and the panel header
	m.list.SetSize(max(w-4, 10), max(h-3, 1))
	return m
}

// Selected returns the highlighted item.
func (m Model) Selected() (Item, bool) {
	if !m.ready {
		return Item{}, false
	}
	it, ok := m.list.SelectedItem().(Item)
	return it, ok
}

// Len returns the number of items.
func (m Model) Len() int { return len(m.list.Items()) }

// Select moves the cursor to the item with the given id.
func (m Model) Select(id string) Model {
	for i, it := range m.list.Items() {
		if it.(Item).ID == id {
			m.list.Select(i)
			break
		}
	}
	return m
}
