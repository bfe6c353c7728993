package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// number is a JSON number that also accepts a numeric string, so that
// form-encoded front ends can post "50" as well as 50.
type number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", s)
		}
		*n = number(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = number(v)
	return nil
}

// plotRequest is the body of POST /plot.
type plotRequest struct {
	SampleLength          *number `json:"sample_length"`
	SampleDiameter        *number `json:"sample_diameter"`
	VolumetricGasFlowRate *string `json:"volumetric_gas_flow_rate"`
	DifferentialPressures *string `json:"differential_pressures"`
}

// toDomain checks that every field is present and builds the request.
func (r plotRequest) toDomain() (domain.CorrectionRequest, error) {
	var missing []string
	if r.SampleLength == nil {
		missing = append(missing, "sample_length")
	}
	if r.SampleDiameter == nil {
		missing = append(missing, "sample_diameter")
	}
	if r.VolumetricGasFlowRate == nil {
		missing = append(missing, "volumetric_gas_flow_rate")
	}
	if r.DifferentialPressures == nil {
		missing = append(missing, "differential_pressures")
	}
	if len(missing) > 0 {
		return domain.CorrectionRequest{}, fmt.Errorf("%w: missing field(s): %s",
			domain.ErrInvalidInput, strings.Join(missing, ", "))
	}

	return domain.CorrectionRequest{
		Geometry: domain.SampleGeometry{
			LengthMM:   float64(*r.SampleLength),
			DiameterMM: float64(*r.SampleDiameter),
		},
		FlowRates:             *r.VolumetricGasFlowRate,
		DifferentialPressures: *r.DifferentialPressures,
	}, nil
}

// plotResponse is the body of a successful POST /plot.
type plotResponse struct {
	DifferentialPressure      []float64 `json:"differential_pressure"`
	VolumetricGasFlowRate     []float64 `json:"volumetric_gas_flow_rate"`
	MeanCoreGasPressure       []float64 `json:"mean_core_gas_pressure"`
	PmDeltaP                  []float64 `json:"pm_delta_p"`
	ForchheimerLinearEquation string    `json:"forchheimer_linear_equation"`
	KlinkenbergLinearEquation string    `json:"klinkenberg_linear_equation"`
	ForchheimerPlot           string    `json:"forchheimer_plot"`
	KlinkenbergPlot           string    `json:"klinkenberg_plot"`

	Permeability        []float64        `json:"permeability"`
	InversePermeability []float64        `json:"inverse_permeability"`
	InverseMeanPressure []float64        `json:"inverse_mean_pressure"`
	ForchheimerFit      domain.LinearFit `json:"forchheimer_fit"`
	KlinkenbergFit      domain.LinearFit `json:"klinkenberg_fit"`
}

func newPlotResponse(res *domain.CorrectionResult) plotResponse {
	return plotResponse{
		DifferentialPressure:      res.Converted.DifferentialPressurePa,
		VolumetricGasFlowRate:     res.Converted.FlowRateM3S,
		MeanCoreGasPressure:       res.Converted.MeanPressurePa,
		PmDeltaP:                  res.Converted.PressureProduct,
		ForchheimerLinearEquation: res.Forchheimer.Equation(),
		KlinkenbergLinearEquation: res.Klinkenberg.Equation(),
		ForchheimerPlot:           res.ForchheimerPlot.Base64(),
		KlinkenbergPlot:           res.KlinkenbergPlot.Base64(),
		Permeability:              res.Permeability.PermeabilityM2,
		InversePermeability:       res.Permeability.InversePermeability,
		InverseMeanPressure:       res.Permeability.InverseMeanPressure,
		ForchheimerFit:            res.Forchheimer,
		KlinkenbergFit:            res.Klinkenberg,
	}
}

// errorBody is the body of every error response.
type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    domain.ErrorCode `json:"code"`
	Message string           `json:"message"`
}
