package driving

import (
	"context"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// CorrectionService computes Forchheimer and Klinkenberg corrections.
type CorrectionService interface {
	// Compute runs the full pipeline for one sample: parse, convert,
	// calculate permeability, fit both corrections and render both charts.
	// Errors wrap domain.ErrParse, domain.ErrDomain or domain.ErrFit for
	// caller-caused failures. No partial result is returned on error.
	Compute(ctx context.Context, req domain.CorrectionRequest) (*domain.CorrectionResult, error)
}
