// Package settings provides the settings view for the TUI.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/messages"
	"github.com/kmikayilov/permeability-measurement-app/internal/adapters/driving/tui/styles"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/ports/driving"
)

// ErrNoSettingsService indicates that no settings service was provided.
var ErrNoSettingsService = errors.New("settings service not available")

// Key constants for key handling.
const (
	keyUp    = "up"
	keyDown  = "down"
	keyEnter = "enter"
	keyEsc   = "esc"
)

// View lists every setting and edits one at a time.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	keys   []string
	values map[string]string
	err    error
	notice string

	selected int
	editing  bool
	input    textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	return &View{
		styles:          s,
		settingsService: settingsService,
		input:           ti,
	}
}

// Init loads the settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	return func() tea.Msg {
		if v.settingsService == nil {
			return messages.SettingsLoaded{Err: ErrNoSettingsService}
		}
		values, err := v.settingsService.Values()
		return messages.SettingsLoaded{Keys: v.settingsService.Keys(), Values: values, Err: err}
	}
}

// saveSetting returns a command that writes one setting.
func (v *View) saveSetting(key, value string) tea.Cmd {
	return func() tea.Msg {
		return messages.SettingSaved{Key: key, Err: v.settingsService.Set(key, value)}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		v.err = msg.Err
		if msg.Err == nil {
			v.keys = msg.Keys
			v.values = msg.Values
			if v.selected >= len(v.keys) {
				v.selected = 0
			}
		}
		return v, nil

	case messages.SettingSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.notice = fmt.Sprintf("Saved %s. Restart the server to apply.", msg.Key)
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	if v.editing {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.editing {
		switch msg.String() {
		case keyEsc:
			v.editing = false
			v.input.Blur()
			return v, nil
		case keyEnter:
			v.editing = false
			v.input.Blur()
			return v, v.saveSetting(v.keys[v.selected], v.input.Value())
		}
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	switch msg.String() {
	case keyEsc:
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keyUp, "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(v.keys)-1 {
			v.selected++
		}
	case keyEnter:
		if len(v.keys) == 0 || v.settingsService == nil {
			return v, nil
		}
		v.editing = true
		v.notice = ""
		v.input.SetValue(v.values[v.keys[v.selected]])
		v.input.CursorEnd()
		return v, v.input.Focus()
	}
	return v, nil
}

// View renders the settings list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render("Error: " + v.err.Error()))
		b.WriteString("\n\n")
	}

	for i, key := range v.keys {
		cursor := "  "
		label := v.styles.Label.Render(key)
		if i == v.selected {
			cursor = "> "
			label = v.styles.Selected.Width(v.styles.Label.GetWidth()).Render(key)
		}
		value := v.styles.Value.Render(v.values[key])
		if v.editing && i == v.selected {
			value = v.input.View()
		}
		b.WriteString(cursor + label + value + "\n")
	}

	if v.notice != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Success.Render(v.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if v.editing {
		b.WriteString(v.styles.Help.Render("[Enter] Save  [Esc] Cancel"))
	} else {
		b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Edit  [Esc] Back"))
	}
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Reset leaves edit mode and clears messages.
func (v *View) Reset() {
	v.editing = false
	v.input.Blur()
	v.err = nil
	v.notice = ""
}

// Editing reports whether a value is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
