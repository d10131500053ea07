// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chart re-renders extracted chart data as PNG images. It draws
// grouped bars, lines, pies and scatter plots; the goal is a legible
// picture of the data, not a faithful copy of the original styling.
package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/pdiddy/officemd/pkg/types"
)

// Plot styles chosen from a chart type label.
const (
	StyleBar     = "bar"
	StyleLine    = "line"
	StylePie     = "pie"
	StyleScatter = "scatter"
)

// Options sets the output image size in pixels.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions returns a 1000x600 image.
func DefaultOptions() Options {
	return Options{Width: 1000, Height: 600}
}

const (
	minWidth  = 200
	minHeight = 150
)

// Style maps a chart type label (e.g. "COLUMN_CLUSTERED", "THREE_D_PIE")
// to the plot style used to draw it. Unrecognised types draw as bars.
func Style(chartType string) string {
	t := strings.ToLower(chartType)
	switch {
	case strings.Contains(t, "bar"), strings.Contains(t, "column"):
		return StyleBar
	case strings.Contains(t, "line"):
		return StyleLine
	case strings.Contains(t, "pie"):
		return StylePie
	case strings.Contains(t, "scatter"):
		return StyleScatter
	}
	return StyleBar
}

// Render draws data as a PNG to w. Charts without series produce a
// title-only placeholder. 3D charts are drawn flat with depth cues and a
// "3D Chart" badge.
func Render(data types.ChartData, w io.Writer, opts Options) error {
	if opts.Width < minWidth || opts.Height < minHeight {
		return fmt.Errorf("chart size %dx%d below minimum %dx%d", opts.Width, opts.Height, minWidth, minHeight)
	}

	c := newCanvas(opts.Width, opts.Height)
	title := data.Title
	if title == "" {
		title = "Chart"
	}

	if len(data.Series) == 0 {
		c.textCentered(opts.Width/2, opts.Height/2, c.fit("Title: "+title, opts.Width-20), black)
	} else {
		l := newLayout(opts)
		switch Style(data.ChartType) {
		case StyleLine:
			drawLine(c, l, data)
		case StylePie:
			drawPie(c, l, data)
		case StyleScatter:
			drawScatter(c, l, data)
		default:
			drawBars(c, l, data)
		}
	}

	c.textCentered(opts.Width/2, 22, c.fit(title, opts.Width-40), black)
	if data.Has3D {
		badge(c, "3D Chart")
	}

	if err := png.Encode(w, c.img); err != nil {
		return fmt.Errorf("encoding chart PNG: %w", err)
	}
	return nil
}

func badge(c *canvas, label string) {
	w := c.textWidth(label) + 12
	r := image.Rect(8, 8, 8+w, 30)
	c.fillRect(r, white)
	c.strokeRect(r, black)
	c.text(14, 24, label, black)
}

// layout is the plot rectangle inside the margins.
type layout struct {
	plot image.Rectangle
}

func newLayout(opts Options) layout {
	return layout{plot: image.Rect(70, 50, opts.Width-150, opts.Height-70)}
}

// scale maps values to pixel rows within the plot rectangle.
type scale struct {
	lo, hi float64
	top    int
	bottom int
}

func newScale(values []float64, top, bottom int) scale {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	if hi > 0 {
		hi += pad
	}
	if lo < 0 {
		lo -= pad
	}
	return scale{lo: lo, hi: hi, top: top, bottom: bottom}
}

func (s scale) y(v float64) int {
	return s.bottom - int(math.Round((v-s.lo)/(s.hi-s.lo)*float64(s.bottom-s.top)))
}

func allValues(series []types.SeriesData) []float64 {
	var out []float64
	for _, s := range series {
		out = append(out, s.Values...)
	}
	return out
}

// axes draws the plot background, horizontal grid lines with value
// labels, and the axis lines.
func axes(c *canvas, l layout, s scale, xLabel, yLabel string) {
	p := l.plot
	c.fillRect(p, panelGray)
	const ticks = 5
	for i := 0; i <= ticks; i++ {
		v := s.lo + (s.hi-s.lo)*float64(i)/ticks
		y := s.y(v)
		c.line(p.Min.X, y, p.Max.X-1, y, 1, white)
		label := formatValue(v)
		c.text(p.Min.X-8-c.textWidth(label), y+4, label, axisGray)
	}
	c.line(p.Min.X, p.Max.Y-1, p.Max.X-1, p.Max.Y-1, 1, axisGray)
	c.line(p.Min.X, p.Min.Y, p.Min.X, p.Max.Y-1, 1, axisGray)

	if xLabel != "" {
		c.textCentered((p.Min.X+p.Max.X)/2, p.Max.Y+50, xLabel, black)
	}
	if yLabel != "" {
		c.text(6, p.Min.Y-12, yLabel, black)
	}
}

func formatValue(v float64) string {
	if math.Abs(v) >= 1000 || v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2g", v)
}

// categoryLabels draws labels centered under each slot, shortened to the
// slot width.
func categoryLabels(c *canvas, l layout, labels []string, center func(i int) int, slot int) {
	for i, label := range labels {
		c.textCentered(center(i), l.plot.Max.Y+14+(i%2)*14, c.fit(label, max(slot*2-4, 10)), black)
	}
}

func legend(c *canvas, l layout, series []types.SeriesData, colorOf func(int) color.RGBA) {
	x := l.plot.Max.X + 15
	y := l.plot.Min.Y + 10
	for i, s := range series {
		c.fillRect(image.Rect(x, y-9, x+12, y+3), colorOf(i))
		c.text(x+18, y, c.fit(seriesName(s, i), 110), black)
		y += 18
	}
}

func seriesName(s types.SeriesData, i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("Series %d", i+1)
}

// defaultLabels names n slots "<prefix> 1", "<prefix> 2", ...
func defaultLabels(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s %d", prefix, i+1)
	}
	return out
}
