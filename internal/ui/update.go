package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/nudge/internal/engine"
)

// tickMsg refreshes the displayed snapshot once per second.
type tickMsg time.Time

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.st != nil {
			m.Snap = m.st.Snapshot()
		}
		return m, tick()

	case tea.KeyMsg:
		switch m.ActiveView {
		case viewStatus:
			return updateStatus(msg, m)
		case viewAbout:
			switch msg.String() {
			case "esc", "q", "a", "?":
				m.ActiveView = viewStatus
				return m, nil
			case "ctrl+c":
				m.send(engine.CmdQuit)
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

func updateStatus(msg tea.KeyMsg, m Model) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < itemCount-1 {
			m.Selected++
		}
	case "t":
		m.send(engine.CmdToggle)
	case "a", "?":
		m.ActiveView = viewAbout
	case "enter", " ":
		switch m.Selected {
		case itemToggle:
			m.send(engine.CmdToggle)
		case itemAbout:
			m.ActiveView = viewAbout
		case itemQuit:
			m.send(engine.CmdQuit)
			return m, tea.Quit
		}
	case "q", "esc", "ctrl+c":
		m.send(engine.CmdQuit)
		return m, tea.Quit
	}

	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
