// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewForm is the measurement entry form.
	ViewForm
	// ViewResults shows the last computed corrections.
	ViewResults
	// ViewSettings shows the active settings.
	ViewSettings
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewForm:
		return "form"
	case ViewResults:
		return "results"
	case ViewSettings:
		return "settings"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ComputeRequested is sent by the form when the user submits it.
type ComputeRequested struct {
	Request domain.CorrectionRequest
}

// ComputeCompleted carries the pipeline result back to the model.
type ComputeCompleted struct {
	Request domain.CorrectionRequest
	Result  *domain.CorrectionResult
	Err     error
}

// EditRequested reopens the form prefilled with a previous request.
type EditRequested struct {
	Request domain.CorrectionRequest
}

// SettingsLoaded carries every setting key with its effective value.
type SettingsLoaded struct {
	Keys   []string
	Values map[string]string
	Err    error
}

// SettingSaved signals a single setting was written.
type SettingSaved struct {
	Key string
	Err error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
