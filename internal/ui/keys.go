package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines key bindings for the UI views.
type KeyMap struct {
	Quit   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Toggle key.Binding
	About  key.Binding
	Back   key.Binding
}

// DefaultKeys returns the default key bindings for the application.
func DefaultKeys() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle"),
		),
		About: key.NewBinding(
			key.WithKeys("a", "?"),
			key.WithHelp("a/?", "about"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

// ForView returns a contextual key map implementing help.KeyMap.
func (k KeyMap) ForView(v view) help.KeyMap {
	return viewKeyMap{keys: k, view: v}
}

type viewKeyMap struct {
	keys KeyMap
	view view
}

// ShortHelp implements help.KeyMap (compact).
func (v viewKeyMap) ShortHelp() []key.Binding {
	switch v.view {
	case viewStatus:
		return []key.Binding{v.keys.Up, v.keys.Down, v.keys.Select, v.keys.Toggle, v.keys.Quit}
	case viewAbout:
		return []key.Binding{v.keys.Back, v.keys.Quit}
	default:
		return []key.Binding{v.keys.Quit}
	}
}

// FullHelp implements help.KeyMap (expanded).
func (v viewKeyMap) FullHelp() [][]key.Binding {
	switch v.view {
	case viewStatus:
		return [][]key.Binding{{v.keys.Up, v.keys.Down, v.keys.Select}, {v.keys.Toggle, v.keys.About, v.keys.Quit}}
	default:
		return [][]key.Binding{{v.keys.Back, v.keys.Quit}}
	}
}
