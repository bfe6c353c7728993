package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

// ComputeInput is the input schema for the compute_corrections tool.
type ComputeInput struct {
	SampleLength          float64 `json:"sample_length" jsonschema:"core plug length in millimetres"`
	SampleDiameter        float64 `json:"sample_diameter" jsonschema:"core plug diameter in millimetres"`
	VolumetricGasFlowRate string  `json:"volumetric_gas_flow_rate" jsonschema:"comma-separated gas flow rates in mL/min"`
	DifferentialPressures string  `json:"differential_pressures" jsonschema:"comma-separated differential pressures in mbar"`
	IncludePlots          bool    `json:"include_plots,omitempty" jsonschema:"include both charts as base64 PNG (default false)"`
}

// ComputeOutput is the output schema for the compute_corrections tool.
type ComputeOutput struct {
	DifferentialPressure  []float64 `json:"differential_pressure"`
	VolumetricGasFlowRate []float64 `json:"volumetric_gas_flow_rate"`
	MeanCoreGasPressure   []float64 `json:"mean_core_gas_pressure"`
	PmDeltaP              []float64 `json:"pm_delta_p"`
	Permeability          []float64 `json:"permeability"`
	InversePermeability   []float64 `json:"inverse_permeability"`
	InverseMeanPressure   []float64 `json:"inverse_mean_pressure"`

	Forchheimer FitOutput `json:"forchheimer"`
	Klinkenberg FitOutput `json:"klinkenberg"`

	// PlotURIs name the resources holding the rendered charts.
	PlotURIs []string `json:"plot_uris"`
}

// FitOutput is one fitted correction line.
type FitOutput struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Equation  string  `json:"equation"`
	Plot      string  `json:"plot,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "compute_corrections",
		Description: "Compute Forchheimer and Klinkenberg corrections for a gas permeability " +
			"measurement on a cylindrical core plug",
	}, s.handleCompute)
}

// handleCompute handles the compute_corrections tool invocation.
func (s *Server) handleCompute(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ComputeInput,
) (*mcp.CallToolResult, ComputeOutput, error) {
	req := domain.CorrectionRequest{
		Geometry: domain.SampleGeometry{
			LengthMM:   input.SampleLength,
			DiameterMM: input.SampleDiameter,
		},
		FlowRates:             input.VolumetricGasFlowRate,
		DifferentialPressures: input.DifferentialPressures,
	}

	res, err := s.ports.Corrections.Compute(ctx, req)
	if err != nil {
		return nil, ComputeOutput{}, fmt.Errorf("%s: %w", domain.CodeOf(err), err)
	}
	s.setLast(res)

	output := ComputeOutput{
		DifferentialPressure:  res.Converted.DifferentialPressurePa,
		VolumetricGasFlowRate: res.Converted.FlowRateM3S,
		MeanCoreGasPressure:   res.Converted.MeanPressurePa,
		PmDeltaP:              res.Converted.PressureProduct,
		Permeability:          res.Permeability.PermeabilityM2,
		InversePermeability:   res.Permeability.InversePermeability,
		InverseMeanPressure:   res.Permeability.InverseMeanPressure,
		Forchheimer:           fitOutput(res.Forchheimer),
		Klinkenberg:           fitOutput(res.Klinkenberg),
		PlotURIs:              []string{plotURI(forchheimerPlot), plotURI(klinkenbergPlot)},
	}
	if input.IncludePlots {
		output.Forchheimer.Plot = res.ForchheimerPlot.Base64()
		output.Klinkenberg.Plot = res.KlinkenbergPlot.Base64()
	}

	return nil, output, nil
}

func fitOutput(f domain.LinearFit) FitOutput {
	return FitOutput{
		Slope:     f.Slope,
		Intercept: f.Intercept,
		Equation:  f.Equation(),
	}
}
