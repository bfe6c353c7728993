package domain

import (
	"fmt"
	"math"
)

// Physical constants used by the correction pipeline.
const (
	// AtmosphericPressurePa is the outlet pressure of the core holder.
	AtmosphericPressurePa = 101325.0

	// GasViscosityPaS is the dynamic viscosity of the permeating gas.
	GasViscosityPaS = 0.0000176

	// PascalsPerMillibar converts mbar to Pa.
	PascalsPerMillibar = 100.0

	// MillilitresPerCubicMetre converts mL to m³.
	MillilitresPerCubicMetre = 1e6

	// SecondsPerMinute converts per-minute rates to per-second rates.
	SecondsPerMinute = 60.0

	// MillimetresPerMetre converts mm to m.
	MillimetresPerMetre = 1000.0

	// MinSeriesLength is the smallest series a first-order fit accepts.
	MinSeriesLength = 2
)

// SampleGeometry describes the cylindrical core plug.
type SampleGeometry struct {
	// LengthMM is the plug length in millimetres.
	LengthMM float64 `json:"sample_length"`

	// DiameterMM is the plug diameter in millimetres.
	DiameterMM float64 `json:"sample_diameter"`
}

// Validate checks that both dimensions are finite and positive.
func (g SampleGeometry) Validate() error {
	if math.IsNaN(g.LengthMM) || math.IsInf(g.LengthMM, 0) || g.LengthMM <= 0 {
		return fmt.Errorf("%w: sample length must be > 0 mm, got %g", ErrDomain, g.LengthMM)
	}
	if math.IsNaN(g.DiameterMM) || math.IsInf(g.DiameterMM, 0) || g.DiameterMM <= 0 {
		return fmt.Errorf("%w: sample diameter must be > 0 mm, got %g", ErrDomain, g.DiameterMM)
	}
	return nil
}

// LengthM returns the plug length in metres.
func (g SampleGeometry) LengthM() float64 {
	return g.LengthMM / MillimetresPerMetre
}

// RadiusM returns the plug radius in metres.
func (g SampleGeometry) RadiusM() float64 {
	return g.DiameterMM / (2 * MillimetresPerMetre)
}

// AreaM2 returns the cross-sectional area in square metres.
func (g SampleGeometry) AreaM2() float64 {
	r := g.RadiusM()
	return math.Pi * r * r
}

// MeasurementSeries holds the raw laboratory readings, index aligned.
type MeasurementSeries struct {
	// FlowRatesMLMin are volumetric gas flow rates in mL/min.
	FlowRatesMLMin []float64

	// DifferentialPressuresMbar are pressure drops across the plug in mbar.
	DifferentialPressuresMbar []float64
}

// Len returns the number of readings.
func (m MeasurementSeries) Len() int {
	return len(m.FlowRatesMLMin)
}

// ConvertedSeries holds the readings in SI units plus the derived
// mean core gas pressure, index aligned with MeasurementSeries.
type ConvertedSeries struct {
	DifferentialPressurePa []float64
	FlowRateM3S            []float64
	MeanPressurePa         []float64
	// PressureProduct is Pm × ΔP in Pa².
	PressureProduct []float64
}

// Len returns the number of readings.
func (c ConvertedSeries) Len() int {
	return len(c.FlowRateM3S)
}

// PermeabilitySeries holds apparent permeability and the series derived
// from it, index aligned with ConvertedSeries.
type PermeabilitySeries struct {
	PermeabilityM2      []float64
	InversePermeability []float64
	InverseMeanPressure []float64
}

// Len returns the number of readings.
func (p PermeabilitySeries) Len() int {
	return len(p.PermeabilityM2)
}

// Correction names.
const (
	Forchheimer = "Forchheimer"
	Klinkenberg = "Klinkenberg"
)

// LinearFit is the result of a first-order least-squares fit
// y = Slope·x + Intercept.
type LinearFit struct {
	Name      string  `json:"-"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// Equation formats the fit with four-significant-digit scientific notation.
func (f LinearFit) Equation() string {
	return fmt.Sprintf("y = %.4ex + %.4e", f.Slope, f.Intercept)
}

// Evaluate returns the fitted value at x.
func (f LinearFit) Evaluate(x float64) float64 {
	return f.Slope*x + f.Intercept
}

// CorrectionRequest is the raw input of one correction computation.
type CorrectionRequest struct {
	Geometry SampleGeometry

	// FlowRates is comma-separated numeric text in mL/min.
	FlowRates string

	// DifferentialPressures is comma-separated numeric text in mbar.
	DifferentialPressures string
}

// CorrectionResult is everything derived from one CorrectionRequest.
type CorrectionResult struct {
	Converted    ConvertedSeries
	Permeability PermeabilitySeries

	Forchheimer LinearFit
	Klinkenberg LinearFit

	ForchheimerPlot PlotArtifact
	KlinkenbergPlot PlotArtifact
}
