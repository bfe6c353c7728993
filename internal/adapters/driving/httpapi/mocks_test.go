package httpapi

import (
	"context"
	"sync"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// mockCorrectionService is a mock implementation of driving.CorrectionService.
type mockCorrectionService struct {
	mu       sync.Mutex
	requests []domain.CorrectionRequest
	result   *domain.CorrectionResult
	err      error
	// blockUntilDone makes Compute wait for its context to end.
	blockUntilDone bool
	panicWith      any
}

func (m *mockCorrectionService) Compute(ctx context.Context, req domain.CorrectionRequest) (*domain.CorrectionResult, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.panicWith != nil {
		panic(m.panicWith)
	}
	if m.blockUntilDone {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.result, m.err
}

func (m *mockCorrectionService) calls() []domain.CorrectionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CorrectionRequest(nil), m.requests...)
}

func sampleResult() *domain.CorrectionResult {
	return &domain.CorrectionResult{
		Converted: domain.ConvertedSeries{
			DifferentialPressurePa: []float64{500, 1000, 1500},
			FlowRateM3S:            []float64{1.6666666666666668e-07, 3.3333333333333335e-07, 5e-07},
			MeanPressurePa:         []float64{101575, 101825, 102075},
			PressureProduct:        []float64{50787500, 101825000, 153112500},
		},
		Permeability: domain.PermeabilitySeries{
			PermeabilityM2:      []float64{5.96e-13, 5.95e-13, 5.93e-13},
			InversePermeability: []float64{1.68e12, 1.68e12, 1.69e12},
			InverseMeanPressure: []float64{9.84e-06, 9.82e-06, 9.80e-06},
		},
		Forchheimer:     domain.LinearFit{Name: domain.Forchheimer, Slope: 2.4773e16, Intercept: 1.6734e12},
		Klinkenberg:     domain.LinearFit{Name: domain.Klinkenberg, Slope: 6.0549e-08, Intercept: -5.6546e-27},
		ForchheimerPlot: domain.PlotArtifact{ContentType: "image/png", Data: []byte("forchheimer")},
		KlinkenbergPlot: domain.PlotArtifact{ContentType: "image/png", Data: []byte("klinkenberg")},
	}
}

func testSettings() domain.ServerSettings {
	s := domain.DefaultAppSettings().Server
	s.RateLimitRPS = 0
	return s
}
