package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

func TestFitLine_RecoversExactLine(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 2*v + 3
	}

	fit, err := FitLine("line", x, y)

	require.NoError(t, err)
	assert.Equal(t, "line", fit.Name)
	assert.InEpsilon(t, 2.0, fit.Slope, 1e-6)
	assert.InEpsilon(t, 3.0, fit.Intercept, 1e-6)
	assert.Equal(t, "y = 2.0000e+00x + 3.0000e+00", fit.Equation())
}

func TestFitLine_TwoPoints(t *testing.T) {
	fit, err := FitLine("pair", []float64{1, 3}, []float64{1, -3})

	require.NoError(t, err)
	assert.InDelta(t, -2.0, fit.Slope, 1e-12)
	assert.InDelta(t, 3.0, fit.Intercept, 1e-12)
}

func TestFitLine_LeastSquares(t *testing.T) {
	// Noisy points around y = x; OLS slope is 0.9, intercept 0.25.
	fit, err := FitLine("noisy", []float64{1, 2, 3, 4}, []float64{1, 2.5, 2.5, 4})

	require.NoError(t, err)
	assert.InDelta(t, 0.9, fit.Slope, 1e-12)
	assert.InDelta(t, 0.25, fit.Intercept, 1e-12)
}

func TestFitLine_Errors(t *testing.T) {
	tests := []struct {
		name     string
		x, y     []float64
		contains string
	}{
		{"single point", []float64{1}, []float64{2}, "need at least 2 points"},
		{"empty", nil, nil, "need at least 2 points"},
		{"unequal lengths", []float64{1, 2, 3}, []float64{1, 2}, "3 x values but 2 y values"},
		{"identical x", []float64{4, 4, 4}, []float64{1, 2, 3}, "all x values are identical"},
		{"non-finite", []float64{1, 2}, []float64{1, inf()}, "point 2 is not finite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitLine("broken", tt.x, tt.y)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFit)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestForchheimerAndKlinkenbergFits(t *testing.T) {
	c := exampleConverted(t)
	p, err := CalculatePermeability(exampleGeometry(), c)
	require.NoError(t, err)

	forchheimer, err := ForchheimerFit(c, p)
	require.NoError(t, err)
	assert.Equal(t, domain.Forchheimer, forchheimer.Name)
	assert.InEpsilon(t, 2.4773e16, forchheimer.Slope, 1e-4)
	assert.InEpsilon(t, 1.6734e12, forchheimer.Intercept, 1e-4)
	assert.Equal(t, "y = 2.4773e+16x + 1.6734e+12", forchheimer.Equation())

	klinkenberg, err := KlinkenbergFit(p)
	require.NoError(t, err)
	assert.Equal(t, domain.Klinkenberg, klinkenberg.Name)
	assert.InEpsilon(t, 6.0549e-8, klinkenberg.Slope, 1e-4)
	// The intercept is numerically zero relative to k.
	assert.InDelta(t, 0, klinkenberg.Intercept, 1e-20)
}

func TestKlinkenbergFit_ConstantPressure(t *testing.T) {
	p := domain.PermeabilitySeries{
		PermeabilityM2:      []float64{1e-13, 2e-13},
		InversePermeability: []float64{1e13, 5e12},
		InverseMeanPressure: []float64{1e-5, 1e-5},
	}

	_, err := KlinkenbergFit(p)

	assert.ErrorIs(t, err, domain.ErrFit)
}

func inf() float64 {
	return math.Inf(1)
}
