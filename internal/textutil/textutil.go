// Package textutil fits rendered results to a terminal width.
package textutil

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Shy5ta/studentSuite/internal/engine"
)

// stepIndent matches the body indent of engine.RenderStep.
const stepIndent = 3

func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// WrapIndented wraps text to width and indents every resulting line by n
// spaces, so the indented block still fits in width columns.
func WrapIndented(text string, width, n int) string {
	if w := width - n; w > 0 {
		text = wordwrap.String(text, w)
	}
	return indent.String(text, uint(n))
}

func TruncateWithEllipsis(line string, width int) string {
	lineWidth := ansi.StringWidth(line)
	if lineWidth <= width {
		return line
	}
	if width <= 3 {
		return strings.Repeat(".", width)
	}
	return ansi.Cut(line, 0, width-3) + "..."
}

func StringWidth(s string) int {
	return ansi.StringWidth(s)
}

// RenderResult is engine.Render with step bodies wrapped to width. Code is
// returned verbatim; wrapping would break it.
func RenderResult(r engine.Result, width int) string {
	if r.Kind == engine.KindCode || width <= 0 {
		return engine.Render(r)
	}
	var sb strings.Builder
	if r.Title != "" {
		sb.WriteString(strings.ToUpper(r.Title) + "\n")
		sb.WriteString(strings.Repeat("-", len(r.Title)) + "\n")
	}
	for i, s := range r.Steps {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d. %s\n", s.Number, s.Label)
		if s.Body != "" {
			sb.WriteString(WrapIndented(s.Body, width, stepIndent))
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// FitLines prepares lines for a viewport of the given width. In wrap mode
// long lines are word wrapped; otherwise each line is cut to the window
// starting at column xOffset.
func FitLines(lines []string, width, xOffset int, wrap bool) []string {
	if len(lines) == 0 || width <= 0 {
		return lines
	}

	if wrap {
		var result []string
		for _, line := range lines {
			if ansi.StringWidth(line) <= width {
				result = append(result, line)
			} else {
				wrapped := wordwrap.String(line, width)
				result = append(result, strings.Split(wrapped, "\n")...)
			}
		}
		return result
	}

	result := make([]string, len(lines))
	for i, line := range lines {
		if xOffset == 0 && ansi.StringWidth(line) <= width {
			result[i] = line
		} else {
			result[i] = ansi.Cut(line, xOffset, xOffset+width)
		}
	}
	return result
}

func MaxLineWidth(lines []string) int {
	maxWidth := 0
	for _, line := range lines {
		w := ansi.StringWidth(line)
		if w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}
