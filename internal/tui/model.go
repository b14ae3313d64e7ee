// Package tui is the terminal front-end: it renders the current image with
// half-block characters and feeds key presses into a triage session.
package tui

import (
	"fotosort/internal/catalog"
	"fotosort/internal/config"
	"fotosort/internal/preview"
	"fotosort/internal/triage"
	"fotosort/internal/watch"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// vanishedMsg carries a candidate that another program removed.
type vanishedMsg struct {
	path string
}

type Model struct {
	session  *triage.Session
	loader   *preview.Loader
	keys     KeyMap
	help     help.Model
	styles   Styles
	vanished <-chan watch.Vanished

	width  int
	height int

	metaPath string
	meta     catalog.Meta
}

// New creates a model driving session. vanished may be nil when the
// candidates are not watched.
func New(session *triage.Session, theme config.Theme, vanished <-chan watch.Vanished) *Model {
	h := help.New()
	h.Width = defaultWidth
	return &Model{
		session:  session,
		loader:   preview.NewLoader(),
		keys:     DefaultKeyMap,
		help:     h,
		styles:   NewStyles(theme),
		vanished: vanished,
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// Run shows the session full screen until it is done.
func Run(session *triage.Session, theme config.Theme, vanished <-chan watch.Vanished) error {
	p := tea.NewProgram(New(session, theme, vanished), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if m.session.Finished() {
		return tea.Quit
	}
	return waitForVanished(m.vanished)
}

func waitForVanished(ch <-chan watch.Vanished) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		v, ok := <-ch
		if !ok {
			return nil
		}
		return vanishedMsg{path: v.Path}
	}
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case vanishedMsg:
		m.session.Remove(msg.path)
		if m.session.Finished() {
			return m, tea.Quit
		}
		return m, waitForVanished(m.vanished)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session.State() == triage.Browsing && key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	ev, mods, ok := m.keys.Translate(msg)
	if !ok {
		return m, nil
	}
	// Escape leaves the program while browsing, as it does in the window.
	if ev.Kind == triage.Deny && m.session.State() == triage.Browsing && msg.String() == "esc" {
		ev = triage.On(triage.Quit)
	}

	out := m.session.Handle(ev, mods)
	if out.Removed != "" {
		m.loader.Forget()
	}
	if m.session.Finished() {
		return m, tea.Quit
	}
	return m, nil
}

// Session returns the driven session
func (m *Model) Session() *triage.Session {
	return m.session
}

// ShowHelp reports whether the full key list is shown.
func (m *Model) ShowHelp() bool {
	return m.help.ShowAll
}
