package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for permeability resources.
	uriScheme = "permeability://"

	forchheimerPlot = "forchheimer"
	klinkenbergPlot = "klinkenberg"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Current server and chart settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "constants",
		Name:        "constants",
		Description: "Physical constants used by the correction pipeline",
		MIMEType:    "application/json",
	}, s.handleConstantsResource)

	// Charts of the most recent compute_corrections call.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "plots/{correction}",
		Name:        "correction-plot",
		Description: "Chart of the last computed correction (forchheimer or klinkenberg)",
		MIMEType:    "image/png",
	}, s.handlePlotResource)
}

type settingsInfo struct {
	Address               string   `json:"address"`
	RequestTimeoutSeconds float64  `json:"request_timeout_seconds"`
	MaxBodyBytes          int64    `json:"max_body_bytes"`
	AllowedOrigins        []string `json:"allowed_origins"`
	RateLimitRPS          float64  `json:"rate_limit_rps"`
	RateLimitBurst        int      `json:"rate_limit_burst"`
	ChartWidth            int      `json:"chart_width"`
	ChartHeight           int      `json:"chart_height"`
	ChartDPI              float64  `json:"chart_dpi"`
}

// handleSettingsResource returns the active settings, or the defaults when
// no settings service is wired.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings := domain.DefaultAppSettings()
	if s.ports.Settings != nil {
		current, err := s.ports.Settings.Get()
		if err != nil {
			return nil, fmt.Errorf("getting settings: %w", err)
		}
		settings = *current
	}

	return jsonResource(req.Params.URI, settingsInfo{
		Address:               settings.Server.Address,
		RequestTimeoutSeconds: settings.Server.RequestTimeout.Seconds(),
		MaxBodyBytes:          settings.Server.MaxBodyBytes,
		AllowedOrigins:        settings.Server.AllowedOrigins,
		RateLimitRPS:          settings.Server.RateLimitRPS,
		RateLimitBurst:        settings.Server.RateLimitBurst,
		ChartWidth:            settings.Chart.Width,
		ChartHeight:           settings.Chart.Height,
		ChartDPI:              settings.Chart.DPI,
	})
}

// handleConstantsResource returns the fixed physical constants.
func (s *Server) handleConstantsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, map[string]float64{
		"atmospheric_pressure_pa": domain.AtmosphericPressurePa,
		"gas_viscosity_pa_s":      domain.GasViscosityPaS,
		"pascals_per_millibar":    domain.PascalsPerMillibar,
	})
}

// handlePlotResource returns a chart from the last successful computation.
func (s *Server) handlePlotResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	res := s.lastResult()
	if res == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	var plot domain.PlotArtifact
	switch extractCorrectionName(req.Params.URI) {
	case forchheimerPlot:
		plot = res.ForchheimerPlot
	case klinkenbergPlot:
		plot = res.KlinkenbergPlot
	default:
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if len(plot.Data) == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: plot.ContentType,
			Blob:     plot.Data,
		}},
	}, nil
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// plotURI returns the resource URI of a correction chart.
func plotURI(correction string) string {
	return uriScheme + "plots/" + correction
}

// extractCorrectionName extracts the name from a URI like permeability://plots/{correction}.
func extractCorrectionName(uri string) string {
	const prefix = uriScheme + "plots/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.ToLower(strings.TrimPrefix(uri, prefix))
}
