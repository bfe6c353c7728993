package chart

import (
	gochart "github.com/wcharczuk/go-chart/v2"
)

// crossSeries is a continuous line with an "x" glyph at every point.
// go-chart only draws circular dots, so the glyphs are stroked here.
type crossSeries struct {
	gochart.ContinuousSeries
	size float64
}

// Render draws the joining line and then one cross per point.
func (cs crossSeries) Render(r gochart.Renderer, canvasBox gochart.Box, xrange, yrange gochart.Range, defaults gochart.Style) {
	style := cs.Style.InheritFrom(defaults)
	gochart.Draw.LineSeries(r, canvasBox, xrange, yrange, style, cs.ContinuousSeries)

	arm := int(cs.size + 0.5)
	style.GetStrokeOptions().WriteDrawingOptionsToRenderer(r)
	for i := 0; i < cs.Len(); i++ {
		vx, vy := cs.GetValues(i)
		x := canvasBox.Left + xrange.Translate(vx)
		y := canvasBox.Bottom - yrange.Translate(vy)

		r.MoveTo(x-arm, y-arm)
		r.LineTo(x+arm, y+arm)
		r.MoveTo(x-arm, y+arm)
		r.LineTo(x+arm, y-arm)
	}
	r.Stroke()
}
