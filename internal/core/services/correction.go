package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/ports/driven"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/ports/driving"
	"github.com/kmikayilov/permeability-measurement-app/internal/logger"
)

// Ensure CorrectionService implements the interface.
var _ driving.CorrectionService = (*CorrectionService)(nil)

// Chart text.
const (
	ForchheimerTitle  = "Forchheimer Correction"
	ForchheimerXLabel = "Volumetric Gas Flow Rate (m³/s)"
	ForchheimerYLabel = "Inverse Permeability (1/m²)"

	KlinkenbergTitle  = "Klinkenberg Correction"
	KlinkenbergXLabel = "1/Pm"
	KlinkenbergYLabel = "k (m²)"
)

// CorrectionService runs the full correction pipeline for one request.
// It holds no per-request state and is safe for concurrent use.
type CorrectionService struct {
	renderer driven.PlotRenderer
	chart    domain.ChartSettings
}

// NewCorrectionService creates a correction service that renders charts
// with renderer at the given size.
func NewCorrectionService(renderer driven.PlotRenderer, chart domain.ChartSettings) *CorrectionService {
	return &CorrectionService{
		renderer: renderer,
		chart:    chart,
	}
}

// Compute validates and parses the request, converts the readings,
// calculates permeability, fits both corrections and renders both charts.
// Any failure aborts the pipeline; no partial result is returned.
func (s *CorrectionService) Compute(ctx context.Context, req domain.CorrectionRequest) (*domain.CorrectionResult, error) {
	start := time.Now()
	logger.Section("Correction")

	if err := req.Geometry.Validate(); err != nil {
		return nil, err
	}

	readings, err := ParseMeasurementSeries(req.FlowRates, req.DifferentialPressures)
	if err != nil {
		return nil, err
	}
	logger.Debug("parsed %d readings (L=%g mm, D=%g mm)", readings.Len(), req.Geometry.LengthMM, req.Geometry.DiameterMM)

	converted := Convert(readings)

	perm, err := CalculatePermeability(req.Geometry, converted)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	forchheimer, err := ForchheimerFit(converted, perm)
	if err != nil {
		return nil, err
	}
	klinkenberg, err := KlinkenbergFit(perm)
	if err != nil {
		return nil, err
	}
	logger.Debug("%s: %s", forchheimer.Name, forchheimer.Equation())
	logger.Debug("%s: %s", klinkenberg.Name, klinkenberg.Equation())

	forchheimerSpec, klinkenbergSpec := BuildPlotSpecs(converted, perm, forchheimer, klinkenberg, s.chart)

	forchheimerPlot, err := s.render(ctx, forchheimerSpec)
	if err != nil {
		return nil, err
	}
	klinkenbergPlot, err := s.render(ctx, klinkenbergSpec)
	if err != nil {
		return nil, err
	}

	logger.Debug("correction computed in %s", time.Since(start))

	return &domain.CorrectionResult{
		Converted:       converted,
		Permeability:    perm,
		Forchheimer:     forchheimer,
		Klinkenberg:     klinkenberg,
		ForchheimerPlot: forchheimerPlot,
		KlinkenbergPlot: klinkenbergPlot,
	}, nil
}

func (s *CorrectionService) render(ctx context.Context, spec domain.PlotSpec) (domain.PlotArtifact, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlotArtifact{}, err
	}
	if s.renderer == nil {
		return domain.PlotArtifact{}, fmt.Errorf("%w: no renderer configured", domain.ErrRenderFailed)
	}

	artifact, err := s.renderer.Render(ctx, spec)
	if err != nil {
		return domain.PlotArtifact{}, fmt.Errorf("render %q: %w", spec.Title, err)
	}
	logger.Debug("rendered %q (%d bytes)", spec.Title, len(artifact.Data))
	return artifact, nil
}

// BuildPlotSpecs describes the two diagnostic charts: inverse permeability
// against flow rate with circle markers, and permeability against inverse
// mean pressure with cross markers. Each legend carries its fitted equation.
func BuildPlotSpecs(
	c domain.ConvertedSeries,
	p domain.PermeabilitySeries,
	forchheimer, klinkenberg domain.LinearFit,
	chart domain.ChartSettings,
) (domain.PlotSpec, domain.PlotSpec) {
	forchheimerSpec := domain.PlotSpec{
		Title:  ForchheimerTitle,
		XLabel: ForchheimerXLabel,
		YLabel: ForchheimerYLabel,
		Legend: domain.LegendPrefix + forchheimer.Equation(),
		Marker: domain.MarkerCircle,
		Grid:   true,
		X:      c.FlowRateM3S,
		Y:      p.InversePermeability,
		Width:  chart.Width,
		Height: chart.Height,
		DPI:    chart.DPI,
	}

	klinkenbergSpec := domain.PlotSpec{
		Title:  KlinkenbergTitle,
		XLabel: KlinkenbergXLabel,
		YLabel: KlinkenbergYLabel,
		Legend: domain.LegendPrefix + klinkenberg.Equation(),
		Marker: domain.MarkerCross,
		Grid:   true,
		X:      p.InverseMeanPressure,
		Y:      p.PermeabilityM2,
		Width:  chart.Width,
		Height: chart.Height,
		DPI:    chart.DPI,
	}

	return forchheimerSpec, klinkenbergSpec
}
