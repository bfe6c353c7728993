package services

import (
	"fmt"
	"math"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// CalculatePermeability applies Darcy's law for compressible flow to each
// converted reading:
//
//	k = (q · Patm · μ · L) / (ΔP · A · Pm)
//
// and derives 1/k and 1/Pm. It fails on the first reading that would
// divide by zero or produce a non-finite value, so no partial series is
// ever returned.
func CalculatePermeability(g domain.SampleGeometry, c domain.ConvertedSeries) (domain.PermeabilitySeries, error) {
	if err := g.Validate(); err != nil {
		return domain.PermeabilitySeries{}, err
	}

	length := g.LengthM()
	area := g.AreaM2()
	if area == 0 || !isFinite(area) {
		return domain.PermeabilitySeries{}, fmt.Errorf("%w: cross-sectional area is %g m²", domain.ErrDomain, area)
	}

	n := c.Len()
	out := domain.PermeabilitySeries{
		PermeabilityM2:      make([]float64, n),
		InversePermeability: make([]float64, n),
		InverseMeanPressure: make([]float64, n),
	}

	for i := 0; i < n; i++ {
		dp := c.DifferentialPressurePa[i]
		pm := c.MeanPressurePa[i]
		q := c.FlowRateM3S[i]

		if dp == 0 {
			return domain.PermeabilitySeries{}, fmt.Errorf("%w: reading %d: differential pressure is zero", domain.ErrDomain, i+1)
		}
		if pm == 0 {
			return domain.PermeabilitySeries{}, fmt.Errorf("%w: reading %d: mean pressure is zero", domain.ErrDomain, i+1)
		}

		k := (q * domain.AtmosphericPressurePa * domain.GasViscosityPaS * length) / (dp * area * pm)
		if !isFinite(k) {
			return domain.PermeabilitySeries{}, fmt.Errorf("%w: reading %d: permeability is not finite", domain.ErrDomain, i+1)
		}
		if k == 0 {
			return domain.PermeabilitySeries{}, fmt.Errorf("%w: reading %d: permeability is zero", domain.ErrDomain, i+1)
		}

		invK := 1 / k
		invPm := 1 / pm
		if !isFinite(invK) || !isFinite(invPm) {
			return domain.PermeabilitySeries{}, fmt.Errorf("%w: reading %d: inverse is not finite", domain.ErrDomain, i+1)
		}

		out.PermeabilityM2[i] = k
		out.InversePermeability[i] = invK
		out.InverseMeanPressure[i] = invPm
	}

	return out, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
