// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back returns to the previous view.
	Back key.Binding

	// Up and Down move through menus and tables.
	Up   key.Binding
	Down key.Binding

	// Select confirms a menu selection.
	Select key.Binding

	// NextField and PrevField move focus between form inputs.
	NextField key.Binding
	PrevField key.Binding

	// Submit runs the computation from the measurement form.
	Submit key.Binding

	// NewMeasurement opens an empty form from the results view.
	NewMeasurement key.Binding

	// Edit reopens the form with the last inputs.
	Edit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
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
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter", "ctrl+s"),
			key.WithHelp("enter", "compute"),
		),
		NewMeasurement: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new measurement"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit inputs"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// FormHelp returns keybindings for the measurement form.
func (k *KeyMap) FormHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Submit, k.Back}
}

// ResultsHelp returns keybindings for the results view.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.NewMeasurement, k.Edit, k.Up, k.Down, k.Back}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.NextField, k.PrevField, k.Submit},
		{k.NewMeasurement, k.Edit, k.Back},
		{k.Help, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
