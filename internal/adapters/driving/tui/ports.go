// Package tui provides an interactive terminal user interface for entering
// a permeability measurement and reading back its corrections.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/kmikayilov/permeability-measurement-app/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Corrections runs the correction pipeline.
	Corrections driving.CorrectionService

	// Settings manages application settings. Optional.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(corrections driving.CorrectionService, settings driving.SettingsService) *Ports {
	return &Ports{
		Corrections: corrections,
		Settings:    settings,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Corrections == nil {
		return ErrMissingCorrectionService
	}
	return nil
}
