package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

func exampleGeometry() domain.SampleGeometry {
	return domain.SampleGeometry{LengthMM: 50, DiameterMM: 25}
}

func exampleConverted(t *testing.T) domain.ConvertedSeries {
	t.Helper()
	m, err := ParseMeasurementSeries("10,20,30", "5,10,15")
	require.NoError(t, err)
	return Convert(m)
}

func TestCalculatePermeability(t *testing.T) {
	p, err := CalculatePermeability(exampleGeometry(), exampleConverted(t))

	require.NoError(t, err)
	require.Equal(t, 3, p.Len())
	assert.Len(t, p.InversePermeability, 3)
	assert.Len(t, p.InverseMeanPressure, 3)

	assert.InEpsilon(t, 5.961029898871731e-13, p.PermeabilityM2[0], 1e-9)
	assert.InEpsilon(t, 5.946394421585035e-13, p.PermeabilityM2[1], 1e-9)
	assert.InEpsilon(t, 5.931830634120951e-13, p.PermeabilityM2[2], 1e-9)
	assert.InEpsilon(t, 1677562463139.5896, p.InversePermeability[0], 1e-9)
	assert.InEpsilon(t, 9.844942160964804e-06, p.InverseMeanPressure[0], 1e-12)

	for i := range p.PermeabilityM2 {
		assert.InEpsilon(t, 1.0, p.PermeabilityM2[i]*p.InversePermeability[i], 1e-12)
	}
}

func TestCalculatePermeability_ZeroDifferentialPressure(t *testing.T) {
	m, err := ParseMeasurementSeries("10,20,30", "5,0,15")
	require.NoError(t, err)

	_, err = CalculatePermeability(exampleGeometry(), Convert(m))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDomain)
	assert.Contains(t, err.Error(), "reading 2")
}

func TestCalculatePermeability_ZeroFlowRate(t *testing.T) {
	m, err := ParseMeasurementSeries("0,20", "5,10")
	require.NoError(t, err)

	_, err = CalculatePermeability(exampleGeometry(), Convert(m))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDomain)
	assert.Contains(t, err.Error(), "permeability is zero")
}

func TestCalculatePermeability_ZeroMeanPressure(t *testing.T) {
	// ΔP = -2·Patm gives Pm = 0.
	m, err := ParseMeasurementSeries("10,20", "-2026.5,10")
	require.NoError(t, err)

	_, err = CalculatePermeability(exampleGeometry(), Convert(m))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDomain)
	assert.Contains(t, err.Error(), "mean pressure is zero")
}

func TestCalculatePermeability_InvalidGeometry(t *testing.T) {
	tests := []struct {
		name string
		geom domain.SampleGeometry
	}{
		{"zero length", domain.SampleGeometry{LengthMM: 0, DiameterMM: 25}},
		{"zero diameter", domain.SampleGeometry{LengthMM: 50, DiameterMM: 0}},
		{"negative diameter", domain.SampleGeometry{LengthMM: 50, DiameterMM: -1}},
		{"nan length", domain.SampleGeometry{LengthMM: math.NaN(), DiameterMM: 25}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CalculatePermeability(tt.geom, exampleConverted(t))
			assert.ErrorIs(t, err, domain.ErrDomain)
		})
	}
}

func TestCalculatePermeability_Overflow(t *testing.T) {
	c := domain.ConvertedSeries{
		DifferentialPressurePa: []float64{1e-300, 1},
		FlowRateM3S:            []float64{1e300, 1},
		MeanPressurePa:         []float64{1e-300, 1},
		PressureProduct:        []float64{1, 1},
	}

	_, err := CalculatePermeability(exampleGeometry(), c)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDomain)
	assert.Contains(t, err.Error(), "not finite")
}
