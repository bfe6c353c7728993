// Package chart rasterises correction plots to PNG with go-chart.
//
// Every Render call builds its own chart.Chart and output buffer, so a
// single Renderer can be shared by concurrent requests.
package chart
