package domain

import "encoding/base64"

// Marker is the glyph drawn at each data point of a chart.
type Marker string

// Available markers.
const (
	MarkerCircle Marker = "circle"
	MarkerCross  Marker = "cross"
)

// LegendPrefix precedes the fitted equation in chart legends.
const LegendPrefix = "The linear equation is: "

// PlotSpec is a self-contained description of one line-with-markers chart.
// Renderers build their drawing state from it and nothing else.
type PlotSpec struct {
	Title  string
	XLabel string
	YLabel string
	Legend string
	Marker Marker
	Grid   bool

	X []float64
	Y []float64

	Width  int
	Height int
	DPI    float64
}

// PlotArtifact is a rendered chart plus the metadata used to produce it.
type PlotArtifact struct {
	Title       string
	XLabel      string
	YLabel      string
	Legend      string
	ContentType string
	Width       int
	Height      int
	Data        []byte
}

// Base64 returns the image encoded as standard base64 text.
func (p PlotArtifact) Base64() string {
	if len(p.Data) == 0 {
		return ""
	}
	return base64.StdEncoding.EncodeToString(p.Data)
}
