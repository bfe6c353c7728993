package domain

import (
	"math"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var equationPattern = regexp.MustCompile(`^y = -?\d\.\d{4}e[+-]\d{2}x \+ -?\d\.\d{4}e[+-]\d{2}$`)

func TestSampleGeometry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		geom    SampleGeometry
		wantErr bool
	}{
		{"valid", SampleGeometry{LengthMM: 50, DiameterMM: 25}, false},
		{"zero length", SampleGeometry{LengthMM: 0, DiameterMM: 25}, true},
		{"negative diameter", SampleGeometry{LengthMM: 50, DiameterMM: -1}, true},
		{"zero diameter", SampleGeometry{LengthMM: 50, DiameterMM: 0}, true},
		{"nan length", SampleGeometry{LengthMM: math.NaN(), DiameterMM: 25}, true},
		{"inf diameter", SampleGeometry{LengthMM: 50, DiameterMM: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.geom.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrDomain)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSampleGeometry_Derived(t *testing.T) {
	g := SampleGeometry{LengthMM: 50, DiameterMM: 25}

	assert.InDelta(t, 0.05, g.LengthM(), 1e-15)
	assert.InDelta(t, 0.0125, g.RadiusM(), 1e-15)
	assert.InDelta(t, math.Pi*0.0125*0.0125, g.AreaM2(), 1e-18)
}

func TestLinearFit_Equation(t *testing.T) {
	tests := []struct {
		name     string
		fit      LinearFit
		expected string
	}{
		{"simple", LinearFit{Slope: 2, Intercept: 3}, "y = 2.0000e+00x + 3.0000e+00"},
		{"small", LinearFit{Slope: 1.23456e-12, Intercept: 5e-14}, "y = 1.2346e-12x + 5.0000e-14"},
		{"negative", LinearFit{Slope: -4.5e10, Intercept: -1}, "y = -4.5000e+10x + -1.0000e+00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eq := tt.fit.Equation()
			assert.Equal(t, tt.expected, eq)
			assert.Regexp(t, equationPattern, eq)
		})
	}
}

func TestLinearFit_Evaluate(t *testing.T) {
	fit := LinearFit{Slope: 2, Intercept: 3}
	assert.Equal(t, 3.0, fit.Evaluate(0))
	assert.Equal(t, 7.0, fit.Evaluate(2))
}

func TestSeries_Len(t *testing.T) {
	m := MeasurementSeries{FlowRatesMLMin: []float64{1, 2, 3}, DifferentialPressuresMbar: []float64{4, 5, 6}}
	c := ConvertedSeries{FlowRateM3S: []float64{1, 2}}
	p := PermeabilitySeries{PermeabilityM2: []float64{1}}

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, p.Len())
}

func TestPlotArtifact_Base64(t *testing.T) {
	assert.Equal(t, "", PlotArtifact{}.Base64())
	assert.Equal(t, "aGk=", PlotArtifact{Data: []byte("hi")}.Base64())
}
