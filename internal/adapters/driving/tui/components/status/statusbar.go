// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/keymap"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

const (
	StateReady     State = "ready"
	StateEditing   State = "editing"
	StateComputing State = "computing"
	StateError     State = "error"
	StateResults   State = "results"
)

// Bar displays application status and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	state    State
	message  string
	readings int
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		width:  80,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Render(left + strings.Repeat(" ", padding) + right)
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateComputing:
		return s.styles.Muted.Render("Computing...")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render("Error: " + s.message)
		}
		return s.styles.Error.Render("Error")
	case StateResults:
		return s.styles.Success.Render(fmt.Sprintf("%d readings", s.readings))
	case StateEditing:
		return s.styles.Normal.Render("Editing")
	case StateReady:
	}
	return s.styles.Muted.Render("Ready")
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch s.state {
	case StateEditing, StateError:
		bindings = s.keymap.FormHelp()
	case StateResults:
		bindings = s.keymap.ResultsHelp()
	case StateReady, StateComputing:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets a custom message shown in the error state.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetReadings sets the number of readings shown in the results state.
func (s *Bar) SetReadings(n int) {
	s.readings = n
}

// Readings returns the reading count.
func (s *Bar) Readings() int {
	return s.readings
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the status bar to default state.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
	s.readings = 0
}
