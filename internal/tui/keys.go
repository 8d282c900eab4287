package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the terminal card
type KeyMap struct {
	// Form
	NextField key.Binding
	Submit    key.Binding

	// Card navigation
	Left      key.Binding
	Right     key.Binding
	SwitchRow key.Binding

	// Actions
	Click     key.Binding
	Celebrate key.Binding
	Quit      key.Binding
	Escape    key.Binding
	Interrupt key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "down", "up"),
			key.WithHelp("tab", "next field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		SwitchRow: key.NewBinding(
			key.WithKeys("tab", "up", "down", "k", "j"),
			key.WithHelp("tab", "switch row"),
		),
		Click: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "click"),
		),
		Celebrate: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "celebrate"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "quit"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "interrupt"),
		),
	}
}
