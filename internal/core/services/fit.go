package services

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// FitLine fits y = slope·x + intercept by ordinary least squares.
func FitLine(name string, x, y []float64) (domain.LinearFit, error) {
	if len(x) != len(y) {
		return domain.LinearFit{}, fmt.Errorf("%w: %s: %d x values but %d y values", domain.ErrFit, name, len(x), len(y))
	}
	if len(x) < domain.MinSeriesLength {
		return domain.LinearFit{}, fmt.Errorf("%w: %s: need at least %d points, got %d", domain.ErrFit, name, domain.MinSeriesLength, len(x))
	}
	for i := range x {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return domain.LinearFit{}, fmt.Errorf("%w: %s: point %d is not finite", domain.ErrFit, name, i+1)
		}
	}
	if !hasDistinct(x) {
		return domain.LinearFit{}, fmt.Errorf("%w: %s: all x values are identical", domain.ErrFit, name)
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	if !isFinite(slope) || !isFinite(intercept) {
		return domain.LinearFit{}, fmt.Errorf("%w: %s: regression is not finite", domain.ErrFit, name)
	}

	return domain.LinearFit{
		Name:      name,
		Slope:     slope,
		Intercept: intercept,
	}, nil
}

// ForchheimerFit regresses inverse permeability on flow rate.
func ForchheimerFit(c domain.ConvertedSeries, p domain.PermeabilitySeries) (domain.LinearFit, error) {
	return FitLine(domain.Forchheimer, c.FlowRateM3S, p.InversePermeability)
}

// KlinkenbergFit regresses permeability on inverse mean pressure.
func KlinkenbergFit(p domain.PermeabilitySeries) (domain.LinearFit, error) {
	return FitLine(domain.Klinkenberg, p.InverseMeanPressure, p.PermeabilityM2)
}

func hasDistinct(x []float64) bool {
	for _, v := range x[1:] {
		if v != x[0] {
			return true
		}
	}
	return false
}
