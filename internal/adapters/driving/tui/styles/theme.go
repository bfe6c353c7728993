// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// labelWidth aligns form labels and table headers.
const labelWidth = 34

// Theme defines the colour palette of the TUI.
type Theme struct {
	// Primary is the main accent colour.
	Primary lipgloss.Color

	// Secondary highlights labels and headers.
	Secondary lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for hints and less important text.
	Muted lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color

	// Border is the border colour.
	Border lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#1F77B4"), // chart blue
		Secondary:  lipgloss.Color("#17BECF"), // teal
		Foreground: lipgloss.Color("#E4E4E7"),
		Muted:      lipgloss.Color("#71717A"),
		Success:    lipgloss.Color("#2CA02C"),
		Warning:    lipgloss.Color("#FF7F0E"),
		Error:      lipgloss.Color("#D62728"),
		Border:     lipgloss.Color("#3F3F46"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style

	// Selected marks the focused menu item or form field.
	Selected lipgloss.Style

	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style

	// InputField frames a text input.
	InputField lipgloss.Style

	// FocusedInputField frames the text input that has focus.
	FocusedInputField lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style

	// Label is used for field names and table headers.
	Label lipgloss.Style

	// Value is used for computed numbers.
	Value lipgloss.Style

	// Equation is used for fitted line equations.
	Equation lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	field := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		Warning: lipgloss.NewStyle().
			Foreground(theme.Warning),

		InputField:        field,
		FocusedInputField: field.BorderForeground(theme.Primary),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Label: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Width(labelWidth),

		Value: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Equation: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Success),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
