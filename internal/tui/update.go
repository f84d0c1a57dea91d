package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/tui/views/form"
	"github.com/Shy5ta/studentSuite/internal/tui/views/menu"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar = m.statusBar.SetWidth(msg.Width)
		return m.resize(), nil

	case spinner.TickMsg:
		if !m.solving {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case form.SubmitMsg:
		if m.solving {
			m.setStatus("a solve is already running", true)
			return m, nil
		}
		m.solving = true
		m.setStatus("", false)
		return m, tea.Batch(m.spinner.Tick, solve(m.sess, m.topic.ID, m.form.Problem().ID, msg.Values))

	case solvedMsg:
		m.solving = false
		if msg.err != nil {
			m.setStatus(msg.err.Error(), true)
			return m, nil
		}
		m.result = m.result.SetResult(msg.result)
		m.screen = ScreenResult
		if msg.result.Diagnostic {
			m.setStatus("check the inputs and try again", true)
		} else {
			m.setStatus("", false)
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, forceQuit) {
			m.quitting = true
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	// cursor blink and other input messages
	if m.screen == ScreenForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg, formKeys)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.screen {
	case ScreenCourses:
		switch {
		case key.Matches(msg, menuKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, menuKeys.Select):
			return m.openCourse(), nil
		}
		m.courses, cmd = m.courses.Update(msg, menuKeys)

	case ScreenTopics:
		switch {
		case key.Matches(msg, menuKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, menuKeys.Back):
			m.screen = ScreenCourses
			return m, nil
		case key.Matches(msg, menuKeys.Select):
			return m.openTopic(), nil
		}
		m.topics, cmd = m.topics.Update(msg, menuKeys)

	case ScreenProblems:
		switch {
		case key.Matches(msg, menuKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, menuKeys.Back):
			m.screen = ScreenTopics
			return m, nil
		case key.Matches(msg, menuKeys.Select):
			return m.openProblem()
		}
		m.problems, cmd = m.problems.Update(msg, menuKeys)

	case ScreenForm:
		if m.solving {
			return m, nil
		}
		if key.Matches(msg, formKeys.Back) {
			m.screen = ScreenProblems
			m.setStatus("", false)
			return m, nil
		}
		m.form, cmd = m.form.Update(msg, formKeys)

	case ScreenResult:
		switch {
		case key.Matches(msg, resultKeys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, resultKeys.Edit):
			m.screen = ScreenForm
			return m, nil
		case key.Matches(msg, resultKeys.Back):
			m.screen = ScreenProblems
			m.setStatus("", false)
			return m, nil
		}
		m.result, cmd = m.result.Update(msg, resultKeys)
	}

	return m, cmd
}

func (m Model) openCourse() Model {
	item, ok := m.courses.Selected()
	if !ok {
		return m
	}
	course, _ := m.cat.Course(item.ID)
	topics, err := m.cat.Topics(m.reg, course.Code)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m
	}

	items := make([]menu.Item, len(topics))
	for i, t := range topics {
		items[i] = menu.Item{ID: t.ID, Title: t.Title, Detail: problemCount(len(t.Problems))}
	}
	m.course = course
	m.topics = menu.New(course.Code+": "+course.Name, items)
	m.screen = ScreenTopics
	return m.resize()
}

func (m Model) openTopic() Model {
	item, ok := m.topics.Selected()
	if !ok {
		return m
	}
	topic, _ := m.reg.Topic(item.ID)
	problems, err := m.reg.ProblemsFor(topic.ID)
	if err != nil {
		m.setStatus(err.Error(), true)
		return m
	}

	items := make([]menu.Item, len(problems))
	for i, p := range problems {
		items[i] = menu.Item{ID: string(p.ID), Title: p.Title, Detail: p.Output.String()}
	}
	m.topic = topic
	m.problems = menu.New(topic.Title, items)
	m.screen = ScreenProblems
	return m.resize()
}

func (m Model) openProblem() (tea.Model, tea.Cmd) {
	item, ok := m.problems.Selected()
	if !ok {
		return m, nil
	}
	p, err := m.sess.Engine().Describe(m.topic.ID, engine.ProblemID(item.ID))
	if err != nil {
		m.setStatus(err.Error(), true)
		return m, nil
	}
	m.form = form.New(p)
	m.screen = ScreenForm
	m.setStatus("", false)
	return m.resize(), nil
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m Model) resize() Model {
	w, h := m.width, max(m.height-chrome, 3)
	m.courses = m.courses.SetSize(w, h)
	m.topics = m.topics.SetSize(w, h)
	m.problems = m.problems.SetSize(w, h)
	m.form = m.form.SetSize(w, h)
	m.result = m.result.SetSize(w, h)
	return m
}

func problemCount(n int) string {
	if n == 1 {
		return "1 problem"
	}
	return fmt.Sprintf("%d problems", n)
}
