package mcp

import (
	"context"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// mockCorrectionService is a mock implementation of driving.CorrectionService.
type mockCorrectionService struct {
	result *domain.CorrectionResult
	err    error
	last   domain.CorrectionRequest
}

func (m *mockCorrectionService) Compute(_ context.Context, req domain.CorrectionRequest) (*domain.CorrectionResult, error) {
	m.last = req
	return m.result, m.err
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings *domain.AppSettings
	err      error
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	return m.settings, m.err
}

func (m *mockSettingsService) Save(_ *domain.AppSettings) error {
	return m.err
}

func (m *mockSettingsService) Set(_, _ string) error {
	return m.err
}

func (m *mockSettingsService) Keys() []string {
	return nil
}

func (m *mockSettingsService) Values() (map[string]string, error) {
	return nil, m.err
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
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
