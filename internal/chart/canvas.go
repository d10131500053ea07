// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chart

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	white     = color.RGBA{255, 255, 255, 255}
	black     = color.RGBA{0, 0, 0, 255}
	axisGray  = color.RGBA{120, 120, 120, 255}
	gridGray  = color.RGBA{229, 229, 229, 255}
	panelGray = color.RGBA{235, 235, 235, 255}
	shadow    = color.RGBA{170, 170, 170, 255}
)

// palette cycles through qualitative colors for series and slices.
var palette = []color.RGBA{
	{141, 211, 199, 255},
	{255, 237, 111, 255},
	{190, 186, 218, 255},
	{251, 128, 114, 255},
	{128, 177, 211, 255},
	{253, 180, 98, 255},
	{179, 222, 105, 255},
	{252, 205, 229, 255},
	{188, 128, 189, 255},
	{204, 235, 197, 255},
}

func seriesColor(i int) color.RGBA {
	return palette[i%len(palette)]
}

func darker(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{uint8(float64(c.R) * f), uint8(float64(c.G) * f), uint8(float64(c.B) * f), c.A}
}

// canvas is an RGBA image with simple drawing primitives.
type canvas struct {
	img  *image.RGBA
	face font.Face
}

func newCanvas(w, h int) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(white), image.Point{}, draw.Src)
	return &canvas{img: img, face: basicfont.Face7x13}
}

func (c *canvas) fillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.img, r.Canon().Intersect(c.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *canvas) strokeRect(r image.Rectangle, col color.Color) {
	r = r.Canon()
	c.line(r.Min.X, r.Min.Y, r.Max.X-1, r.Min.Y, 1, col)
	c.line(r.Min.X, r.Max.Y-1, r.Max.X-1, r.Max.Y-1, 1, col)
	c.line(r.Min.X, r.Min.Y, r.Min.X, r.Max.Y-1, 1, col)
	c.line(r.Max.X-1, r.Min.Y, r.Max.X-1, r.Max.Y-1, 1, col)
}

// line draws a segment with Bresenham's algorithm; width > 1 stamps a
// square brush at every step.
func (c *canvas) line(x0, y0, x1, y1, width int, col color.Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	half := width / 2
	for {
		if width <= 1 {
			c.img.Set(x0, y0, col)
		} else {
			c.fillRect(image.Rect(x0-half, y0-half, x0-half+width, y0-half+width), col)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *canvas) disc(cx, cy, r int, col color.Color) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.img.Set(cx+x, cy+y, col)
			}
		}
	}
}

// wedge fills the circular sector between angles a0 and a1 (radians,
// counter-clockwise from the positive x axis, screen y pointing down).
func (c *canvas) wedge(cx, cy, r int, a0, a1 float64, col color.Color) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y > r*r {
				continue
			}
			a := math.Atan2(float64(-y), float64(x))
			if angleBetween(a, a0, a1) {
				c.img.Set(cx+x, cy+y, col)
			}
		}
	}
}

// angleBetween reports whether a lies on the counter-clockwise arc from
// a0 to a1.
func angleBetween(a, a0, a1 float64) bool {
	span := a1 - a0
	if span >= 2*math.Pi {
		return true
	}
	d := math.Mod(a-a0, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d <= span
}

func (c *canvas) textWidth(s string) int {
	return font.MeasureString(c.face, s).Round()
}

// text draws s with its baseline-left corner at (x, y).
func (c *canvas) text(x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: c.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textCentered draws s centered horizontally on x with its vertical
// center near y.
func (c *canvas) textCentered(x, y int, s string, col color.Color) {
	c.text(x-c.textWidth(s)/2, y+c.face.Metrics().Ascent.Round()/2, s, col)
}

// fit shortens s so it renders within width pixels.
func (c *canvas) fit(s string, width int) string {
	if c.textWidth(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && c.textWidth(string(r)+"..") > width {
		r = r[:len(r)-1]
	}
	if len(r) == 0 {
		return ""
	}
	return string(r) + ".."
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
