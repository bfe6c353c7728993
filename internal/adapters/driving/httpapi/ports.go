package httpapi

import (
	"github.com/kmikayilov/permeability-measurement-app/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the HTTP server.
type Ports struct {
	// Corrections runs the correction pipeline.
	Corrections driving.CorrectionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Corrections == nil {
		return ErrMissingCorrectionService
	}
	return nil
}
