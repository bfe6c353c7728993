package chart

import (
	"bytes"
	"context"
	"fmt"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/kmikayilov/permeability-measurement-app/internal/core/domain"
	"github.com/kmikayilov/permeability-measurement-app/internal/core/ports/driven"
)

// Ensure Renderer implements the interface.
var _ driven.PlotRenderer = (*Renderer)(nil)

// ContentType is the media type of rendered plots.
const ContentType = "image/png"

// Colours and sizes shared by both plots.
var (
	seriesColor = drawing.ColorFromHex("1f77b4")
	gridColor   = drawing.ColorFromHex("d9d9d9")
)

const (
	lineWidth   = 1.5
	markerSize  = 4.0
	titleSize   = 14.0
	rangeMargin = 0.05
	minSize     = 100
)

// Renderer draws a domain.PlotSpec as a line chart with point markers.
type Renderer struct{}

// NewRenderer creates a go-chart backed plot renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render rasterises spec to PNG. The context is checked before and after
// drawing; go-chart itself cannot be interrupted mid-frame.
func (r *Renderer) Render(ctx context.Context, spec domain.PlotSpec) (domain.PlotArtifact, error) {
	if err := ctx.Err(); err != nil {
		return domain.PlotArtifact{}, err
	}
	if err := validateSpec(spec); err != nil {
		return domain.PlotArtifact{}, err
	}

	ch := buildChart(spec)

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return domain.PlotArtifact{}, fmt.Errorf("%w: %s: %v", domain.ErrRenderFailed, spec.Title, err)
	}

	if err := ctx.Err(); err != nil {
		return domain.PlotArtifact{}, err
	}

	return domain.PlotArtifact{
		Title:       spec.Title,
		XLabel:      spec.XLabel,
		YLabel:      spec.YLabel,
		Legend:      spec.Legend,
		ContentType: ContentType,
		Width:       spec.Width,
		Height:      spec.Height,
		Data:        buf.Bytes(),
	}, nil
}

func validateSpec(spec domain.PlotSpec) error {
	if spec.Width < minSize || spec.Height < minSize {
		return fmt.Errorf("%w: %s: image must be at least %dx%d, got %dx%d",
			domain.ErrRenderFailed, spec.Title, minSize, minSize, spec.Width, spec.Height)
	}
	if len(spec.X) != len(spec.Y) {
		return fmt.Errorf("%w: %s: %d x values but %d y values", domain.ErrRenderFailed, spec.Title, len(spec.X), len(spec.Y))
	}
	if len(spec.X) == 0 {
		return fmt.Errorf("%w: %s: no points to plot", domain.ErrRenderFailed, spec.Title)
	}
	for i := range spec.X {
		if !finite(spec.X[i]) || !finite(spec.Y[i]) {
			return fmt.Errorf("%w: %s: point %d is not finite", domain.ErrRenderFailed, spec.Title, i+1)
		}
	}
	return nil
}

func buildChart(spec domain.PlotSpec) gochart.Chart {
	xmin, xmax := paddedRange(spec.X)
	ymin, ymax := paddedRange(spec.Y)

	ch := gochart.Chart{
		Title:      spec.Title,
		TitleStyle: gochart.Style{FontSize: titleSize},
		Width:      spec.Width,
		Height:     spec.Height,
		DPI:        spec.DPI,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 48, Left: 24, Right: 32, Bottom: 24},
		},
		XAxis: gochart.XAxis{
			Name:           spec.XLabel,
			ValueFormatter: gochart.ExponentialValueFormatter,
			Range:          &gochart.ContinuousRange{Min: xmin, Max: xmax},
			GridMajorStyle: gridStyle(spec.Grid),
			GridMinorStyle: gridStyle(spec.Grid),
		},
		YAxis: gochart.YAxis{
			Name:           spec.YLabel,
			ValueFormatter: gochart.ExponentialValueFormatter,
			Range:          &gochart.ContinuousRange{Min: ymin, Max: ymax},
			GridMajorStyle: gridStyle(spec.Grid),
			GridMinorStyle: gridStyle(spec.Grid),
		},
		Series: []gochart.Series{newSeries(spec)},
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch
}

func newSeries(spec domain.PlotSpec) gochart.Series {
	line := gochart.ContinuousSeries{
		Name:    spec.Legend,
		XValues: spec.X,
		YValues: spec.Y,
		Style: gochart.Style{
			StrokeColor: seriesColor,
			StrokeWidth: lineWidth,
		},
	}

	if spec.Marker == domain.MarkerCross {
		return crossSeries{ContinuousSeries: line, size: markerSize}
	}

	line.Style.DotColor = seriesColor
	line.Style.DotWidth = markerSize
	return line
}

func gridStyle(show bool) gochart.Style {
	if !show {
		return gochart.Style{Hidden: true}
	}
	return gochart.Style{
		StrokeColor: gridColor,
		StrokeWidth: 1,
	}
}

// paddedRange returns axis bounds that enclose values with a small margin.
// A zero span, which go-chart rejects, is widened around the value.
func paddedRange(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	span := hi - lo
	if span == 0 {
		span = math.Abs(lo)
		if span == 0 {
			span = 1
		}
	}
	return lo - span*rangeMargin, hi + span*rangeMargin
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
