package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shy5ta/studentSuite/internal/catalog"
	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/problems"
	"github.com/Shy5ta/studentSuite/internal/session"
	"github.com/Shy5ta/studentSuite/internal/tui/views/form"
)

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	down  = tea.KeyMsg{Type: tea.KeyDown}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T) Model {
	t.Helper()
	m := New(session.New(problems.Default()), catalog.Default())
	return send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

// drain runs cmd and feeds every message it produces back into m. Spinner
// ticks are delivered once and not followed.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = drain(t, m, c)
		}
		return m
	}
	next, more := m.Update(msg)
	m = next.(Model)
	if _, tick := msg.(spinner.TickMsg); tick {
		return m
	}
	return drain(t, m, more)
}

func TestNavigation(t *testing.T) {
	m := newModel(t)
	assert.Equal(t, ScreenCourses, m.Screen())
	assert.Equal(t, 6, m.courses.Len())

	m = send(t, m, enter)
	require.Equal(t, ScreenTopics, m.Screen())
	assert.Equal(t, "APM1513", m.course.Code)
	assert.Equal(t, 6, m.topics.Len())

	m = send(t, m, esc)
	assert.Equal(t, ScreenCourses, m.Screen())

	t.Run("digits jump to an entry", func(t *testing.T) {
		m := send(t, m, runes("6"))
		m = send(t, m, enter)
		assert.Equal(t, "COS1501", m.course.Code)
		assert.Equal(t, 5, m.topics.Len())
	})

	t.Run("down then open", func(t *testing.T) {
		m := send(t, m, down)
		m = send(t, m, enter)
		assert.Equal(t, "APM1514", m.course.Code)

		m = send(t, m, enter)
		require.Equal(t, ScreenProblems, m.Screen())
		assert.Equal(t, "apm1514-malthusian", m.topic.ID)
		item, ok := m.problems.Selected()
		require.True(t, ok)
		assert.Equal(t, string(problems.SeparabilityCheck), item.ID)
	})
}

func TestSolveFromForm(t *testing.T) {
	m := newModel(t)
	m = send(t, m, runes("6")) // COS1501
	m = send(t, m, enter)
	m = send(t, m, runes("5")) // Integers & Quantifiers
	m = send(t, m, enter)
	m = send(t, m, enter) // GCD and LCM
	require.Equal(t, ScreenForm, m.Screen())
	assert.Equal(t, problems.GCDLCM, m.form.Problem().ID)
	assert.Equal(t, map[string]string{"a": "252", "b": "105"}, m.form.Values())

	t.Run("q is typed, not quit", func(t *testing.T) {
		m := send(t, m, runes("q"))
		assert.Equal(t, ScreenForm, m.Screen())
		assert.False(t, m.quitting)
		assert.Equal(t, "252q", m.form.Values()["a"])
	})

	next, cmd := m.Update(enter)
	m = next.(Model)
	m = drain(t, m, cmd)
	require.Equal(t, ScreenResult, m.Screen())
	res := m.result.Result()
	assert.False(t, res.Diagnostic, engine.Render(res))
	assert.False(t, m.solving)
	assert.False(t, m.sess.Busy())
	assert.Contains(t, engine.Render(res), "21")

	t.Run("edit returns to the same inputs", func(t *testing.T) {
		m := send(t, m, runes("e"))
		assert.Equal(t, ScreenForm, m.Screen())
		assert.Equal(t, "252", m.form.Values()["a"])
	})

	t.Run("back returns to the problem list", func(t *testing.T) {
		m := send(t, m, runes("b"))
		assert.Equal(t, ScreenProblems, m.Screen())
	})
}

func TestSolveRefusedWhileBusy(t *testing.T) {
	m := newModel(t)
	m = send(t, m, enter)
	m = send(t, m, enter)
	m = send(t, m, enter)
	require.Equal(t, ScreenForm, m.Screen())

	require.NoError(t, m.sess.Begin())
	next, cmd := m.Update(form.SubmitMsg{Values: m.form.Values()})
	m = drain(t, next.(Model), cmd)
	m.sess.End()

	assert.Equal(t, ScreenForm, m.Screen())
	assert.True(t, m.statusErr)
	assert.Contains(t, m.status, "already in progress")
}

func TestDiagnosticResult(t *testing.T) {
	m := newModel(t)
	m = send(t, m, enter)
	m = send(t, m, enter)
	m = send(t, m, enter) // APM1513 determinant
	require.Equal(t, ScreenForm, m.Screen())

	next, cmd := m.Update(form.SubmitMsg{Values: map[string]string{"A": "1 2 3\n4 5 6"}})
	m = drain(t, next.(Model), cmd)
	require.Equal(t, ScreenResult, m.Screen())
	assert.True(t, m.result.Result().Diagnostic)
	assert.True(t, m.statusErr)
	assert.Contains(t, m.View(), "diagnostic")
}

func TestQuit(t *testing.T) {
	m := newModel(t)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, next.(Model).quitting)
	assert.NotNil(t, cmd)

	next, _ = m.Update(runes("q"))
	assert.True(t, next.(Model).quitting)
	assert.Equal(t, "Goodbye!\n", next.View())
}

func TestView(t *testing.T) {
	m := newModel(t)
	view := m.View()
	assert.Contains(t, view, "studentsuite")
	assert.Contains(t, view, "Applied Linear Algebra")
	assert.Contains(t, view, "courses")

	m = send(t, m, enter)
	assert.Contains(t, m.View(), "APM1513")
	assert.Contains(t, m.View(), "Matrix Properties")
}
