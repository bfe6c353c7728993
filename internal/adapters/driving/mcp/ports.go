package mcp

import (
	"github.com/kmikayilov/permeability-measurement-app/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Corrections runs the correction pipeline.
	Corrections driving.CorrectionService

	// Settings exposes application settings. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p == nil || p.Corrections == nil {
		return ErrMissingCorrectionService
	}
	return nil
}
