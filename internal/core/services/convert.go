package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// ParseSeries splits comma-separated numeric text into float64 values.
// Whitespace around each token is ignored. Empty tokens, non-numeric
// tokens and non-finite values are rejected with domain.ErrParse.
func ParseSeries(text string) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: no values given", domain.ErrParse)
	}

	tokens := strings.Split(text, ",")
	values := make([]float64, 0, len(tokens))
	for i, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			return nil, fmt.Errorf("%w: value %d is empty", domain.ErrParse, i+1)
		}
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil || hasBasePrefix(tok) {
			return nil, fmt.Errorf("%w: value %d (%q) is not a number", domain.ErrParse, i+1, tok)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: value %d (%q) is not finite", domain.ErrParse, i+1, tok)
		}
		values = append(values, v)
	}
	return values, nil
}

// hasBasePrefix reports whether tok is written with a 0x, 0o or 0b prefix.
// strconv accepts hexadecimal floats; laboratory readings are decimal only.
func hasBasePrefix(tok string) bool {
	tok = strings.TrimLeft(tok, "+-")
	if len(tok) < 2 || tok[0] != '0' {
		return false
	}
	switch tok[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}
	return false
}

// ParseMeasurementSeries parses both reading series and checks that they
// pair up. A single reading parses; the fitter rejects it with domain.ErrFit.
func ParseMeasurementSeries(flowRates, differentialPressures string) (domain.MeasurementSeries, error) {
	flow, err := ParseSeries(flowRates)
	if err != nil {
		return domain.MeasurementSeries{}, fmt.Errorf("volumetric gas flow rate: %w", err)
	}
	dp, err := ParseSeries(differentialPressures)
	if err != nil {
		return domain.MeasurementSeries{}, fmt.Errorf("differential pressures: %w", err)
	}

	if len(flow) != len(dp) {
		return domain.MeasurementSeries{}, fmt.Errorf(
			"%w: %d flow rates but %d differential pressures", domain.ErrParse, len(flow), len(dp))
	}

	return domain.MeasurementSeries{
		FlowRatesMLMin:            flow,
		DifferentialPressuresMbar: dp,
	}, nil
}

// Convert maps laboratory readings into SI units and derives the mean
// core gas pressure for each reading. Outlet pressure is atmospheric.
func Convert(m domain.MeasurementSeries) domain.ConvertedSeries {
	n := m.Len()
	out := domain.ConvertedSeries{
		DifferentialPressurePa: make([]float64, n),
		FlowRateM3S:            make([]float64, n),
		MeanPressurePa:         make([]float64, n),
		PressureProduct:        make([]float64, n),
	}

	for i := 0; i < n; i++ {
		dp := MillibarToPascal(m.DifferentialPressuresMbar[i])
		pm := (dp + 2*domain.AtmosphericPressurePa) / 2

		out.DifferentialPressurePa[i] = dp
		out.FlowRateM3S[i] = MillilitresPerMinuteToCubicMetresPerSecond(m.FlowRatesMLMin[i])
		out.MeanPressurePa[i] = pm
		out.PressureProduct[i] = pm * dp
	}
	return out
}

// MillibarToPascal converts a pressure from mbar to Pa.
func MillibarToPascal(mbar float64) float64 {
	return mbar * domain.PascalsPerMillibar
}

// PascalToMillibar converts a pressure from Pa to mbar.
func PascalToMillibar(pa float64) float64 {
	return pa / domain.PascalsPerMillibar
}

// MillilitresPerMinuteToCubicMetresPerSecond converts a flow rate from mL/min to m³/s.
func MillilitresPerMinuteToCubicMetresPerSecond(mlPerMin float64) float64 {
	return mlPerMin / domain.MillilitresPerCubicMetre / domain.SecondsPerMinute
}

// CubicMetresPerSecondToMillilitresPerMinute converts a flow rate from m³/s to mL/min.
func CubicMetresPerSecondToMillilitresPerMinute(m3PerSec float64) float64 {
	return m3PerSec * domain.SecondsPerMinute * domain.MillilitresPerCubicMetre
}
