package ui

import (
	"fmt"
	"strings"
	"time"
)

// View renders the current state of the model to a string.
func View(m Model) string {
	switch m.ActiveView {
	case viewStatus:
		return statusView(m)
	case viewAbout:
		return aboutView(m)
	}
	return ""
}

func statusView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("Nudge"))
	b.WriteString("\n\n")

	if m.Snap.Enabled {
		b.WriteString(Current.ActiveStatus.Render("Triggering enabled"))
	} else {
		b.WriteString(Current.InactiveStatus.Render("Triggering disabled"))
	}
	b.WriteString("\n")

	if m.Snap.Suspended {
		b.WriteString(Current.InactiveStatus.Render("System suspended"))
		b.WriteString("\n")
	}

	idle := m.now().Sub(m.Snap.LastActivity).Round(time.Second)
	if idle < 0 {
		idle = 0
	}
	b.WriteString(Current.Unselected.Render(fmt.Sprintf("Idle for %s", idle)))
	b.WriteString("\n")

	sinceMove := m.now().Sub(m.Snap.LastMoved).Round(time.Second)
	if sinceMove < 0 {
		sinceMove = 0
	}
	b.WriteString(Current.Unselected.Render(fmt.Sprintf("Last move %s ago", sinceMove)))
	b.WriteString("\n")

	if m.Snap.ErrorCount > 0 {
		b.WriteString(Current.Error.Render(fmt.Sprintf("Consecutive failures: %d", m.Snap.ErrorCount)))
		b.WriteString("\n")
	}

	b.WriteString("\n")

	menuItems := []string{
		toggleLabel(m.Snap.Enabled),
		"About",
		"Quit",
	}

	for i, opt := range menuItems {
		if i == m.Selected {
			b.WriteString(Current.Selected.Render("> " + opt))
		} else {
			b.WriteString(Current.Unselected.Render("  " + opt))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + Current.Help.Render(m.help.View(m.keys.ForView(viewStatus))))
	return b.String()
}

func toggleLabel(enabled bool) string {
	if enabled {
		return "Disable triggering"
	}
	return "Enable triggering"
}

func aboutView(m Model) string {
	var b strings.Builder

	b.WriteString(Current.Title.Render("About Nudge"))
	b.WriteString("\n\n")

	version := m.Version
	if version == "" {
		version = "dev"
	}
	b.WriteString(Current.Unselected.Render("Version: " + version))
	b.WriteString("\n\n")

	b.WriteString(Current.Unselected.Render(
		"Nudge keeps your workstation awake by issuing small, verified\n" +
			" cursor movements once you have been idle past the configured\n" +
			" threshold. Real input always wins: any keyboard or mouse\n" +
			" activity resets the idle clock."))
	b.WriteString("\n\n")

	b.WriteString(Current.Help.Render(m.help.View(m.keys.ForView(viewAbout))))
	return b.String()
}
