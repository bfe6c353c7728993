package services

import (
	"context"
	"sync"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/ports/driven"
)

// mockPlotRenderer is a test double for driven.PlotRenderer.
type mockPlotRenderer struct {
	mu    sync.Mutex
	specs []domain.PlotSpec
	err   error
	// cancel, when set, is called on the first Render to simulate a
	// client going away mid-pipeline.
	cancel context.CancelFunc
}

var _ driven.PlotRenderer = (*mockPlotRenderer)(nil)

func (m *mockPlotRenderer) Render(ctx context.Context, spec domain.PlotSpec) (domain.PlotArtifact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.specs = append(m.specs, spec)
	if m.cancel != nil {
		m.cancel()
	}
	if m.err != nil {
		return domain.PlotArtifact{}, m.err
	}
	if err := ctx.Err(); err != nil {
		return domain.PlotArtifact{}, err
	}
	return domain.PlotArtifact{
		Title:       spec.Title,
		XLabel:      spec.XLabel,
		YLabel:      spec.YLabel,
		Legend:      spec.Legend,
		ContentType: "image/png",
		Width:       spec.Width,
		Height:      spec.Height,
		Data:        []byte("png:" + spec.Title),
	}, nil
}

func (m *mockPlotRenderer) rendered() []domain.PlotSpec {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.PlotSpec(nil), m.specs...)
}
