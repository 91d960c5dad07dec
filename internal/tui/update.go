package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/ysato/pointbook/internal/errors"
	"github.com/ysato/pointbook/internal/session"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) && m.state != StateParentLogin {
			m.quitting = true
			return m, tea.Quit
		}
	}

	switch m.state {
	case StateChild:
		return m.updateChild(msg)
	case StateStudy:
		return m.updateStudy(msg)
	case StateParentLogin:
		return m.updateParentLogin(msg)
	case StateParent:
		return m.updateParent(msg)
	}
	return m, nil
}

func (m Model) updateChild(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	n := len(m.cfg.Children)
	switch {
	case key.Matches(msgKey, m.keys.Tab):
		if n > 0 {
			m.child = (m.child + 1) % n
		}
	case key.Matches(msgKey, m.keys.ShiftTab):
		if n > 0 {
			m.child = (m.child - 1 + n) % n
		}
	case key.Matches(msgKey, m.keys.Study):
		m.state = StateStudy
		m.subject = 0
		m.status = ""
	case key.Matches(msgKey, m.keys.Undo):
		m.undoLatest()
	case key.Matches(msgKey, m.keys.Parent):
		if m.sess.Parent {
			m.state = StateParent
		} else {
			m.password = ""
			m.form = newLoginForm(&m.password)
			m.state = StateParentLogin
			return m, m.form.Init()
		}
	case key.Matches(msgKey, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *Model) undoLatest() {
	child := m.activeChild()
	if child == "" {
		return
	}
	removed, err := m.store.UndoLatest(child)
	if err != nil {
		if apperrors.IsNotFound(err) {
			m.status = fmt.Sprintf("Nothing to undo for %s", child)
		} else {
			m.status = apperrors.Format(err)
		}
		return
	}
	if err := m.refresh(); err != nil {
		m.status = apperrors.Format(err)
		return
	}
	m.status = fmt.Sprintf("Removed %s on %s (%.1f pt)", removed.Task, removed.Date, removed.Points)
}

func (m Model) updateStudy(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	child := m.activeChild()
	subjects := m.sess.Subjects(child)

	switch {
	case key.Matches(msgKey, m.keys.Back):
		m.state = StateChild
		m.status = ""
	case key.Matches(msgKey, m.keys.Up):
		if m.subject > 0 {
			m.subject--
		}
	case key.Matches(msgKey, m.keys.Down):
		if m.subject < len(subjects)-1 {
			m.subject++
		}
	case key.Matches(msgKey, m.keys.Plus):
		if len(subjects) > 0 {
			m.sess.Increment(child, subjects[m.subject])
		}
	case key.Matches(msgKey, m.keys.Minus):
		if len(subjects) > 0 && m.sess.Minutes(child, subjects[m.subject]) >= session.StepMinutes {
			m.sess.Decrement(child, subjects[m.subject])
		}
	case key.Matches(msgKey, m.keys.Reset):
		m.sess.Reset(child)
		m.status = "Buffer cleared"
	case key.Matches(msgKey, m.keys.Flush):
		m.flushBuffer(child)
	}
	return m, nil
}

func (m *Model) flushBuffer(child string) {
	events, err := m.sess.Flush(child, m.cfg)
	if err != nil {
		if apperrors.IsNotFound(err) {
			m.status = "Nothing to flush"
		} else {
			m.status = apperrors.Format(err)
		}
		return
	}
	if err := m.store.Append(events...); err != nil {
		m.status = apperrors.Format(err)
		return
	}
	if err := m.refresh(); err != nil {
		m.status = apperrors.Format(err)
		return
	}
	var total float64
	for _, e := range events {
		total += e.Points
	}
	m.status = fmt.Sprintf("Flushed %d entries, +%.1f pt", len(events), total)
	m.state = StateChild
}

func (m Model) updateParentLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msgKey, ok := msg.(tea.KeyMsg); ok && key.Matches(msgKey, m.keys.Back) {
		m.state = StateChild
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if m.password == m.cfg.ParentPassword {
			m.sess.Parent = true
			m.state = StateParent
			m.status = ""
		} else {
			m.state = StateChild
			m.status = "Parent password does not match"
		}
		m.form = nil
		m.password = ""
	}
	return m, cmd
}

func (m Model) updateParent(msg tea.Msg) (tea.Model, tea.Cmd) {
	msgKey, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(msgKey, m.keys.Back):
		m.state = StateChild
	case key.Matches(msgKey, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}
