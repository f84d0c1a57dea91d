package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/tui/theme"
)

type BadgeType int

const (
	BadgePlain BadgeType = iota
	BadgeSuccess
	BadgeError
	BadgeInfo
)

// Badge renders a short coloured label.
type Badge struct {
	Label string
	Type  BadgeType
}

func NewBadge(label string) Badge {
	return Badge{Label: label}
}

func (b Badge) SetType(t BadgeType) Badge {
	b.Type = t
	return b
}

func (b Badge) Render() string {
	var style lipgloss.Style
	switch b.Type {
	case BadgeSuccess:
		style = theme.BadgeSuccess
	case BadgeError:
		style = theme.BadgeError
	case BadgeInfo:
		style = theme.BadgeInfo
	default:
		style = theme.Badge
	}
	return style.Render(b.Label)
}

// KindBadge labels an input field with its kind.
func KindBadge(k engine.FieldKind) Badge {
	b := NewBadge(k.String())
	if k == engine.MatrixBlock {
		return b.SetType(BadgeInfo)
	}
	return b
}

// ResultBadge labels a result as steps, code or a diagnostic.
func ResultBadge(r engine.Result) Badge {
	if r.Diagnostic {
		return NewBadge("diagnostic").SetType(BadgeError)
	}
	return NewBadge(r.Kind.String()).SetType(BadgeSuccess)
}
