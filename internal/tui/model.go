package tui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/ysato/pointbook/internal/models"
	"github.com/ysato/pointbook/internal/session"
	"github.com/ysato/pointbook/internal/storage"
)

type SessionState int

const (
	StateChild SessionState = iota
	StateStudy
	StateParentLogin
	StateParent
)

type Model struct {
	store storage.Provider
	sess  *session.Session

	cfg    models.Config
	events []models.PointEvent

	state    SessionState
	child    int // active child tab
	subject  int // cursor on the study screen
	keys     KeyMap
	help     help.Model
	form     *huh.Form
	password string
	status   string
	width    int
	height   int
	quitting bool
}

// NewModel builds the TUI over an already-loaded store.
func NewModel(store storage.Provider, sess *session.Session) (Model, error) {
	cfg, err := store.Config()
	if err != nil {
		return Model{}, err
	}
	events, err := store.Events()
	if err != nil {
		return Model{}, err
	}

	return Model{
		store:  store,
		sess:   sess,
		cfg:    cfg,
		events: events,
		state:  StateChild,
		keys:   DefaultKeyMap(),
		help:   help.New(),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) refresh() error {
	cfg, err := m.store.Config()
	if err != nil {
		return err
	}
	events, err := m.store.Events()
	if err != nil {
		return err
	}
	m.cfg = cfg
	m.events = events
	if m.child >= len(m.cfg.Children) {
		m.child = 0
	}
	return nil
}

func (m Model) activeChild() string {
	if len(m.cfg.Children) == 0 {
		return ""
	}
	return m.cfg.Children[m.child]
}

func newLoginForm(password *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Parent password").
				EchoMode(huh.EchoModePassword).
				Value(password),
		),
	)
}
