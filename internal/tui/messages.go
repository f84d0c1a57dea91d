package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/session"
)

type solvedMsg struct {
	result engine.Result
	err    error
}

func solve(sess *session.Session, topic string, problem engine.ProblemID, values map[string]string) tea.Cmd {
	return func() tea.Msg {
		res, err := sess.Solve(topic, problem, values)
		return solvedMsg{result: res, err: err}
	}
}
