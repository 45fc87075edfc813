package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the startup view.
type KeyMap struct {
	Up   key.Binding
	Down key.Binding
	Copy key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns a KeyMap with default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy URL"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "stop and quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Copy, k.Quit}
}

// FullHelp returns bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Copy, k.Quit},
	}
}

// setReady enables the bindings that only apply once endpoints are listed.
func (k *KeyMap) setReady(ready bool) {
	k.Up.SetEnabled(ready)
	k.Down.SetEnabled(ready)
	k.Copy.SetEnabled(ready)
}
