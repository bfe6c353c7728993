package cli

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// mockCorrectionService implements driving.CorrectionService.
type mockCorrectionService struct {
	mu       sync.Mutex
	requests []domain.CorrectionRequest

	ComputeFunc func(ctx context.Context, req domain.CorrectionRequest) (*domain.CorrectionResult, error)
}

func (m *mockCorrectionService) Compute(ctx context.Context, req domain.CorrectionRequest) (*domain.CorrectionResult, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.ComputeFunc != nil {
		return m.ComputeFunc(ctx, req)
	}
	return sampleResult(), nil
}

func (m *mockCorrectionService) calls() []domain.CorrectionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.CorrectionRequest(nil), m.requests...)
}

// mockSettingsService implements driving.SettingsService over a map.
type mockSettingsService struct {
	settings domain.AppSettings
	values   map[string]string
	getErr   error
	setErr   error
	set      map[string]string
}

func newMockSettingsService() *mockSettingsService {
	return &mockSettingsService{
		settings: domain.DefaultAppSettings(),
		values: map[string]string{
			"chart.width":    "800",
			"server.address": ":8000",
		},
		set: map[string]string{},
	}
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	s := m.settings
	return &s, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	m.settings = *settings
	return nil
}

func (m *mockSettingsService) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.set[key] = value
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (m *mockSettingsService) Values() (map[string]string, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.values, nil
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// sampleResult is a two-reading result with placeholder chart bytes.
func sampleResult() *domain.CorrectionResult {
	return &domain.CorrectionResult{
		Converted: domain.ConvertedSeries{
			DifferentialPressurePa: []float64{500, 1000},
			FlowRateM3S:            []float64{1.6667e-7, 3.3333e-7},
			MeanPressurePa:         []float64{101575, 101825},
			PressureProduct:        []float64{5.07875e7, 1.01825e8},
		},
		Permeability: domain.PermeabilitySeries{
			PermeabilityM2:      []float64{4.0e-13, 3.9e-13},
			InversePermeability: []float64{2.5e12, 2.56e12},
			InverseMeanPressure: []float64{9.845e-6, 9.821e-6},
		},
		Forchheimer:     domain.LinearFit{Name: domain.Forchheimer, Slope: 2.4773e16, Intercept: 1.6734e12},
		Klinkenberg:     domain.LinearFit{Name: domain.Klinkenberg, Slope: 1.5e-9, Intercept: 3.2e-13},
		ForchheimerPlot: domain.PlotArtifact{ContentType: "image/png", Data: []byte("forchheimer-png")},
		KlinkenbergPlot: domain.PlotArtifact{ContentType: "image/png", Data: []byte("klinkenberg-png")},
	}
}

// withServices installs the given services for one test.
func withServices(t *testing.T, corrections *mockCorrectionService, settings *mockSettingsService) {
	t.Helper()
	prevCorrections, prevSettings, prevBuilder := correctionService, settingsService, serviceBuilder

	correctionService = nil
	if corrections != nil {
		correctionService = corrections
	}
	settingsService = nil
	if settings != nil {
		settingsService = settings
	}
	serviceBuilder = nil

	t.Cleanup(func() {
		correctionService, settingsService, serviceBuilder = prevCorrections, prevSettings, prevBuilder
	})
}

// executeCommand runs rootCmd with args and returns the combined output.
func executeCommand(t *testing.T, ctx context.Context, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.ExecuteContext(ctx)
	return buf.String(), err
}

// resetFlags restores every flag in the tree so values do not leak
// between tests sharing the package-level command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}
