// Package tui renders a quiz session in the terminal using Bubble Tea.
// It is a pure presentation layer: the session controller is the single
// authoritative store, and every keystroke maps onto one controller
// action.
package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/quizdesk/quizdesk/internal/bank"
	"github.com/quizdesk/quizdesk/internal/registry"
	"github.com/quizdesk/quizdesk/internal/session"
)

// advanceMsg fires the post-answer auto-advance. Gen identifies the
// navigation state it was scheduled under; a stale gen means the user
// navigated in the meantime and the advance is superseded.
type advanceMsg struct {
	gen int
}

// Model drives one session through the terminal.
type Model struct {
	sess  *registry.Session
	snap  session.Snapshot
	delay time.Duration

	jump    textinput.Model
	jumping bool
	status  string
	bad     bool // status is an error message
	gen     int
}

// New builds a model positioned at the session's current question.
func New(sess *registry.Session, advanceDelay time.Duration) Model {
	jump := textinput.New()
	jump.Placeholder = "question number"
	jump.CharLimit = 6
	jump.Width = 16
	return Model{
		sess:  sess,
		snap:  sess.Ctrl.View(),
		delay: advanceDelay,
		jump:  jump,
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case advanceMsg:
		if typed.gen != m.gen || m.snap.Ended {
			return m, nil
		}
		return m.navigate(func(c *session.Controller) error { return c.Next() })
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.snap.Ended {
		return m, tea.Quit // any key leaves the score screen
	}
	if m.jumping {
		return m.handleJumpKey(key)
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "1", "2", "3", "4", "5":
		return m.handleOption(int(key.String()[0] - '0'))
	case "enter":
		if m.snap.Kind == bank.KindMulti {
			return m.confirm()
		}
	case "left", "p":
		return m.navigate(func(c *session.Controller) error { return c.Prev() })
	case "right", "n":
		return m.navigate(func(c *session.Controller) error { return c.Next() })
	case "j", "/":
		m.jumping = true
		m.jump.SetValue("")
		return m, m.jump.Focus()
	}
	return m, nil
}

func (m Model) handleJumpKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.jumping = false
		m.jump.Blur()
		return m, nil
	case tea.KeyEnter:
		target := m.jump.Value()
		m.jumping = false
		m.jump.Blur()
		return m.navigate(func(c *session.Controller) error { return c.JumpTo(target) })
	}
	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(key)
	return m, cmd
}

// handleOption submits on a single-answer question and toggles on a
// multi-answer one; only the former schedules the auto-advance.
func (m Model) handleOption(option int) (tea.Model, tea.Cmd) {
	ctrl := m.sess.Ctrl
	if m.snap.Kind == bank.KindMulti {
		if err := ctrl.ToggleOption(option); err != nil {
			return m.fail(err), nil
		}
		m.snap = ctrl.View()
		m.status, m.bad = "", false
		return m, nil
	}

	rec, err := ctrl.SubmitSingle(option)
	if err != nil {
		return m.fail(err), nil
	}
	m.snap = ctrl.View()
	m.setVerdict(rec.Correct)
	m.gen++
	gen := m.gen
	if m.delay <= 0 {
		return m.navigate(func(c *session.Controller) error { return c.Next() })
	}
	return m, tea.Tick(m.delay, func(time.Time) tea.Msg { return advanceMsg{gen: gen} })
}

func (m Model) confirm() (tea.Model, tea.Cmd) {
	rec, err := m.sess.Ctrl.ConfirmMulti()
	if err != nil {
		return m.fail(err), nil
	}
	m.snap = m.sess.Ctrl.View()
	m.setVerdict(rec.Correct)
	return m, nil
}

// navigate runs a cursor move and re-reads the render state; landing on
// an answered question recalls its verdict. A rejected move (bad jump
// target) leaves any pending auto-advance alive.
func (m Model) navigate(op func(*session.Controller) error) (tea.Model, tea.Cmd) {
	if err := op(m.sess.Ctrl); err != nil {
		if errors.Is(err, session.ErrSessionEnded) {
			m.snap = m.sess.Ctrl.View()
			return m, nil
		}
		return m.fail(err), nil
	}
	m.gen++ // supersede any pending auto-advance
	m.snap = m.sess.Ctrl.View()
	m.status, m.bad = "", false
	if m.snap.Answered {
		m.setVerdict(m.snap.Correct)
	}
	return m, nil
}

func (m Model) fail(err error) Model {
	m.status = err.Error()
	m.bad = true
	return m
}

func (m *Model) setVerdict(correct bool) {
	if correct {
		m.status, m.bad = "Correct!", false
	} else {
		m.status, m.bad = "Incorrect.", true
	}
}
