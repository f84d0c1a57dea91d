package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/Shy5ta/studentSuite/internal/tui/views/form"
	"github.com/Shy5ta/studentSuite/internal/tui/views/menu"
	"github.com/Shy5ta/studentSuite/internal/tui/views/result"
)

var (
	forceQuit = key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("Ctrl+c", "quit"),
	)

	menuKeys   = menu.DefaultKeyMap()
	formKeys   = form.DefaultKeyMap()
	resultKeys = result.DefaultKeyMap()
)
