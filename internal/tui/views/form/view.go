package form

import (
	"strings"

	"github.com/Shy5ta/studentSuite/internal/textutil"
	"github.com/Shy5ta/studentSuite/internal/tui/components"
	"github.com/Shy5ta/studentSuite/internal/tui/theme"
)

func (m Model) View() string {
	var content strings.Builder
	width := max(m.width-6, 20)

	for i, f := range m.fields {
		if i > 0 {
			content.WriteString("\n")
		}
		name := theme.Key.Render(f.def.Name)
		if i != m.focus {
			name = theme.Desc.Render(f.def.Name)
		}
		label := name + " " + components.KindBadge(f.def.Kind).Render()
		if f.def.Description != "" {
			label += " " + theme.Dim.Render(f.def.Description)
		}
		content.WriteString(textutil.TruncateWithEllipsis(label, width) + "\n")

		if f.multiline() {
			content.WriteString(f.area.View() + "\n")
		} else {
			content.WriteString(f.input.View() + "\n")
		}
		if i == m.focus {
			content.WriteString(theme.Dim.Render(textutil.WrapText(f.def.Kind.Hint(), width)) + "\n")
		}
	}

	if len(m.fields) == 0 {
		content.WriteString(theme.Dim.Render("This problem takes no input."))
	}
	return m.panel.Render(content.String())
}
