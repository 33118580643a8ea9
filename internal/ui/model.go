package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/nudge/internal/engine"
	"github.com/stigoleg/nudge/internal/state"
)

// view represents the different views of the TUI.
type view int

const (
	viewStatus view = iota
	viewAbout
)

func (v view) String() string {
	switch v {
	case viewStatus:
		return "Status"
	case viewAbout:
		return "About"
	default:
		return "Unknown"
	}
}

// menu entries on the status view.
const (
	itemToggle = iota
	itemAbout
	itemQuit
	itemCount
)

// Model holds the UI state: the selected menu entry, the latest state
// snapshot, and the command channel into the engine.
type Model struct {
	ActiveView view
	Selected   int
	Snap       state.Snapshot
	Version    string

	commands chan<- engine.Command
	st       *state.State
	now      func() time.Time
	keys     KeyMap
	help     help.Model
}

// NewModel returns the initial model wired to the shared state and the
// engine command channel.
func NewModel(st *state.State, commands chan<- engine.Command) Model {
	return Model{
		ActiveView: viewStatus,
		Selected:   itemToggle,
		Snap:       st.Snapshot(),
		commands:   commands,
		st:         st,
		now:        time.Now,
		keys:       DefaultKeys(),
		help:       help.New(),
	}
}

// SetVersion sets the version string shown on the about view.
func (m *Model) SetVersion(version string) {
	m.Version = version
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := Update(msg, m)
	return newModel, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	return View(m)
}

// send forwards a command to the engine without ever blocking the UI loop.
func (m Model) send(cmd engine.Command) {
	if m.commands == nil {
		return
	}
	select {
	case m.commands <- cmd:
	default:
	}
}
