// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/styles"
)

// Validator checks a field value. A nil Validator accepts anything.
type Validator func(string) error

// Field wraps a bubbles textinput with a label and an optional validator.
type Field struct {
	label     string
	textinput textinput.Model
	styles    *styles.Styles
	validate  Validator
	err       error
	width     int
}

// NewField creates an unfocused labelled input.
func NewField(s *styles.Styles, label, placeholder string, validate Validator) *Field {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 1024
	ti.Width = 40

	return &Field{
		label:     label,
		textinput: ti,
		styles:    s,
		validate:  validate,
		width:     40,
	}
}

// Init initialises the input.
func (f *Field) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages. The field error is cleared on every edit.
func (f *Field) Update(msg tea.Msg) (*Field, tea.Cmd) {
	var cmd tea.Cmd
	before := f.textinput.Value()
	f.textinput, cmd = f.textinput.Update(msg)
	if f.textinput.Value() != before {
		f.err = nil
	}
	return f, cmd
}

// View renders the label, the framed input and any validation error.
func (f *Field) View() string {
	frame := f.styles.InputField
	if f.textinput.Focused() {
		frame = f.styles.FocusedInputField
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center,
		f.styles.Label.Render(f.label),
		frame.Render(f.textinput.View()),
	)
	if f.err != nil {
		return row + "\n" + f.styles.Error.Render("  "+f.err.Error())
	}
	return row
}

// Validate runs the validator and remembers its error for rendering.
func (f *Field) Validate() error {
	f.err = nil
	if f.validate != nil {
		f.err = f.validate(f.textinput.Value())
	}
	return f.err
}

// Err returns the last validation error.
func (f *Field) Err() error {
	return f.err
}

// Label returns the field label.
func (f *Field) Label() string {
	return f.label
}

// Value returns the current input value.
func (f *Field) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *Field) SetValue(value string) {
	f.textinput.SetValue(value)
	f.err = nil
}

// Focus sets focus on the input.
func (f *Field) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *Field) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *Field) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input box, leaving room for the label.
func (f *Field) SetWidth(width int) {
	f.width = width
	inputWidth := width - lipgloss.Width(f.styles.Label.Render("")) - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *Field) Width() int {
	return f.width
}

// Reset clears the input and its error.
func (f *Field) Reset() {
	f.textinput.Reset()
	f.err = nil
}
