package driven

import (
	"context"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// PlotRenderer rasterises a chart description.
//
// Implementations must not keep drawing state between calls: every call
// owns its canvas and buffers and releases them before returning, whether
// rendering succeeded or not. Implementations must be safe for concurrent
// use.
type PlotRenderer interface {
	// Render draws spec and returns the encoded image.
	Render(ctx context.Context, spec domain.PlotSpec) (domain.PlotArtifact, error)
}
