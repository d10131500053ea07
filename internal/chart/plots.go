// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chart

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/pdiddy/officemd/pkg/types"
)

// drawBars draws grouped bars, one group per category and one bar per
// series. Missing categories are named "Item N".
func drawBars(c *canvas, l layout, data types.ChartData) {
	series := data.Series
	cats := data.Categories
	if len(cats) == 0 {
		cats = defaultLabels("Item", len(series[0].Values))
	}
	if len(cats) == 0 {
		return
	}

	p := l.plot
	s := newScale(allValues(series), p.Min.Y, p.Max.Y-1)
	axes(c, l, s, "Categories", "Values")

	slot := p.Dx() / len(cats)
	width := float64(slot) * 0.6
	if len(series) > 1 {
		width = float64(slot) * 0.8 / float64(len(series))
	}
	center := func(i int) int { return p.Min.X + slot*i + slot/2 }
	zero := s.y(0)
	depth := 0
	if data.Has3D {
		depth = max(int(width/3), 2)
	}

	for si, ser := range series {
		col := seriesColor(si)
		offset := (float64(si) - float64(len(series))/2 + 0.5) * width
		for i, v := range ser.Values {
			if i >= len(cats) {
				break
			}
			x0 := int(math.Round(float64(center(i)) + offset - width/2))
			x1 := int(math.Round(float64(center(i)) + offset + width/2))
			if x1 <= x0 {
				x1 = x0 + 1
			}
			top, bottom := s.y(v), zero
			if top > bottom {
				top, bottom = bottom, top
			}
			bar := image.Rect(x0, top, x1, bottom+1)
			if depth > 0 {
				c.fillRect(bar.Add(image.Pt(depth, -depth)), darker(col, 0.7))
			}
			c.fillRect(bar, col)
			c.strokeRect(bar, black)
		}
	}

	categoryLabels(c, l, cats, center, slot)
	if len(series) > 1 {
		legend(c, l, series, seriesColor)
	}
}

// drawLine draws one polyline with round markers per series. Missing
// categories are named "Point N".
func drawLine(c *canvas, l layout, data types.ChartData) {
	series := data.Series
	cats := data.Categories
	if len(cats) == 0 {
		cats = defaultLabels("Point", len(series[0].Values))
	}
	if len(cats) == 0 {
		return
	}

	p := l.plot
	s := newScale(allValues(series), p.Min.Y, p.Max.Y-1)
	axes(c, l, s, "Categories", "Values")

	slot := p.Dx() / len(cats)
	center := func(i int) int { return p.Min.X + slot*i + slot/2 }
	for i := range cats {
		c.line(center(i), p.Min.Y, center(i), p.Max.Y-2, 1, gridGray)
	}

	for si, ser := range series {
		col := darker(seriesColor(si), 0.75)
		prevX, prevY := -1, -1
		for i, v := range ser.Values {
			if i >= len(cats) {
				break
			}
			x, y := center(i), s.y(v)
			if prevX >= 0 {
				c.line(prevX, prevY, x, y, 2, col)
			}
			c.disc(x, y, 4, col)
			prevX, prevY = x, y
		}
	}

	categoryLabels(c, l, cats, center, slot)
	if len(series) > 1 {
		legend(c, l, series, func(i int) color.RGBA { return darker(seriesColor(i), 0.75) })
	}
}

// drawPie draws the first series as a pie starting at 12 o'clock and
// running counter-clockwise. Non-positive values are dropped. 3D pies are
// exploded over a drop shadow.
func drawPie(c *canvas, l layout, data types.ChartData) {
	values := data.Series[0].Values
	labels := data.Categories
	if len(labels) == 0 {
		labels = defaultLabels("Slice", len(values))
	}

	type slice struct {
		label string
		value float64
	}
	var slices []slice
	total := 0.0
	for i, v := range values {
		if i >= len(labels) || v <= 0 {
			continue
		}
		slices = append(slices, slice{labels[i], v})
		total += v
	}
	if len(slices) == 0 {
		return
	}

	b := c.img.Bounds()
	cx, cy := b.Dx()/2, (b.Dy()+30)/2
	r := min(b.Dx(), b.Dy()-60) * 3 / 8
	explode := 0.0
	if data.Has3D {
		explode = 0.1 * float64(r)
		c.disc(cx+6, cy+6, r+int(explode), shadow)
	}

	start := math.Pi / 2
	for i, sl := range slices {
		sweep := sl.value / total * 2 * math.Pi
		mid := start + sweep/2
		ox := int(math.Round(explode * math.Cos(mid)))
		oy := -int(math.Round(explode * math.Sin(mid)))
		c.wedge(cx+ox, cy+oy, r, start, start+sweep, seriesColor(i))

		lx := cx + ox + int(math.Round(1.15*float64(r)*math.Cos(mid)))
		ly := cy + oy - int(math.Round(1.15*float64(r)*math.Sin(mid)))
		c.textCentered(lx, ly, c.fit(sl.label, 140), black)

		px := cx + ox + int(math.Round(0.6*float64(r)*math.Cos(mid)))
		py := cy + oy - int(math.Round(0.6*float64(r)*math.Sin(mid)))
		c.textCentered(px, py, fmt.Sprintf("%.1f%%", sl.value/total*100), white)

		start += sweep
	}
}

// drawScatter plots the first series as X against the second as Y.
// Fewer than two series leaves the axes empty.
func drawScatter(c *canvas, l layout, data types.ChartData) {
	p := l.plot
	if len(data.Series) < 2 {
		s := newScale(nil, p.Min.Y, p.Max.Y-1)
		axes(c, l, s, "", "")
		return
	}

	xs := data.Series[0].Values
	ys := data.Series[1].Values
	n := min(len(xs), len(ys))
	xs, ys = xs[:n], ys[:n]

	sy := newScale(ys, p.Min.Y, p.Max.Y-1)
	axes(c, l, sy, seriesName(data.Series[0], 0), seriesName(data.Series[1], 1))

	// The x scale reuses the vertical mapping on a flipped axis.
	sx := newScale(xs, 0, p.Dx()-1)
	col := darker(seriesColor(0), 0.75)
	for i := range n {
		x := p.Min.X + (p.Dx() - 1 - sx.y(xs[i]))
		y := sy.y(ys[i])
		c.disc(x, y, 5, col)
	}
}
