package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Shy5ta/studentSuite/internal/catalog"
	"github.com/Shy5ta/studentSuite/internal/engine"
	"github.com/Shy5ta/studentSuite/internal/session"
	"github.com/Shy5ta/studentSuite/internal/tui/components"
	"github.com/Shy5ta/studentSuite/internal/tui/theme"
	"github.com/Shy5ta/studentSuite/internal/tui/views/form"
	"github.com/Shy5ta/studentSuite/internal/tui/views/menu"
	"github.com/Shy5ta/studentSuite/internal/tui/views/result"
)

type Screen int

const (
	ScreenCourses Screen = iota
	ScreenTopics
	ScreenProblems
	ScreenForm
	ScreenResult
)

func (s Screen) String() string {
	switch s {
	case ScreenCourses:
		return "courses"
	case ScreenTopics:
		return "topics"
	case ScreenProblems:
		return "problems"
	case ScreenForm:
		return "input"
	}
	return "result"
}

// chrome is the breadcrumb line plus the status bar.
const chrome = 2

type Model struct {
	screen   Screen
	width    int
	height   int
	quitting bool
	solving  bool

	status    string
	statusErr bool

	sess *session.Session
	reg  *engine.Registry
	cat  *catalog.Catalog

	course catalog.Course
	topic  engine.Topic

	courses  menu.Model
	topics   menu.Model
	problems menu.Model
	form     form.Model
	result   result.Model

	crumbs    components.Breadcrumb
	statusBar components.StatusBar
	spinner   spinner.Model
}

// New builds the course menu from the catalog. Solves go through sess.
func New(sess *session.Session, cat *catalog.Catalog) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.Key

	items := make([]menu.Item, len(cat.Courses))
	for i, c := range cat.Courses {
		items[i] = menu.Item{ID: c.Code, Title: c.Code + "  " + c.Name, Detail: topicCount(len(c.Topics))}
	}

	return Model{
		screen:    ScreenCourses,
		sess:      sess,
		reg:       sess.Engine().Registry(),
		cat:       cat,
		courses:   menu.New("Select a module to start studying", items),
		result:    result.New(),
		crumbs:    components.NewBreadcrumb("studentsuite"),
		statusBar: components.NewStatusBar(),
		spinner:   s,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Screen returns the screen being shown.
func (m Model) Screen() Screen { return m.screen }

// Run starts the full-screen UI and blocks until it exits.
func Run(sess *session.Session, cat *catalog.Catalog) error {
	p := tea.NewProgram(New(sess, cat), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func topicCount(n int) string {
	if n == 1 {
		return "1 topic"
	}
	return fmt.Sprintf("%d topics", n)
}
