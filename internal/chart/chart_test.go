// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chart

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/officemd/pkg/types"
)

func render(t *testing.T, data types.ChartData) image.Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(data, &buf, DefaultOptions()))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	return img
}

func rgba(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func countNonWhite(img image.Image, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if rgba(img, x, y) != white {
				n++
			}
		}
	}
	return n
}

func TestStyle(t *testing.T) {
	tests := map[string]string{
		"COLUMN_CLUSTERED":         StyleBar,
		"BAR_STACKED":              StyleBar,
		"THREE_D_COLUMN_CLUSTERED": StyleBar,
		"LINE_MARKERS":             StyleLine,
		"THREE_D_PIE":              StylePie,
		"XY_SCATTER":               StyleScatter,
		"DOUGHNUT":                 StyleBar,
		"Unknown":                  StyleBar,
		"":                         StyleBar,
	}
	for in, want := range tests {
		assert.Equal(t, want, Style(in), in)
	}
}

func TestRender_Size(t *testing.T) {
	var buf bytes.Buffer
	err := Render(types.ChartData{Title: "x"}, &buf, Options{Width: 320, Height: 200})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestRender_RejectsTinySize(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Render(types.ChartData{}, &buf, Options{Width: 10, Height: 10}))
	assert.Zero(t, buf.Len())
}

func TestRender_TitleOnlyWithoutSeries(t *testing.T) {
	img := render(t, types.ChartData{Title: "Empty", ChartType: "PIE"})

	// Placeholder text around the center, nothing in the plot corners.
	assert.Positive(t, countNonWhite(img, image.Rect(400, 280, 600, 320)))
	assert.Zero(t, countNonWhite(img, image.Rect(700, 400, 900, 500)))
}

func TestRender_Bars(t *testing.T) {
	img := render(t, types.ChartData{
		Title:      "Sales",
		ChartType:  "COLUMN_CLUSTERED",
		Categories: []string{"A", "B"},
		Series:     []types.SeriesData{{Name: "2025", Values: []float64{10, 20}}},
	})

	assert.Equal(t, palette[0], rgba(img, 265, 400), "inside first bar")
	assert.Equal(t, panelGray, rgba(img, 265, 200), "above first bar")
}

func TestRender_BarsWithoutCategories(t *testing.T) {
	img := render(t, types.ChartData{
		ChartType: "BAR_CLUSTERED",
		Series:    []types.SeriesData{{Values: []float64{5}}},
	})
	assert.Equal(t, palette[0], rgba(img, 460, 450))
}

func TestRender_Pie(t *testing.T) {
	img := render(t, types.ChartData{
		ChartType:  "PIE",
		Categories: []string{"a", "b", "c", "d"},
		Series:     []types.SeriesData{{Values: []float64{1, 1, 1, -4}}},
	})

	// First slice spans 90-210 degrees.
	assert.Equal(t, palette[0], rgba(img, 448, 285))
	// Third slice spans 330-450 degrees, i.e. the right-hand side.
	assert.Equal(t, palette[2], rgba(img, 560, 315))
}

func TestRender_ThreeDBadge(t *testing.T) {
	data := types.ChartData{
		Title:     "Depth",
		ChartType: "THREE_D_PIE",
		Has3D:     true,
		Series:    []types.SeriesData{{Values: []float64{2, 3}}},
	}
	img := render(t, data)
	assert.Equal(t, black, rgba(img, 8, 8))

	data.Has3D = false
	flat := render(t, data)
	assert.Equal(t, white, rgba(flat, 8, 8))
}

func TestRender_LineAndScatter(t *testing.T) {
	series := []types.SeriesData{
		{Name: "x", Values: []float64{1, 2, 3}},
		{Name: "y", Values: []float64{3, 1, 2, 9}},
	}
	for _, typ := range []string{"LINE", "XY_SCATTER"} {
		t.Run(typ, func(t *testing.T) {
			img := render(t, types.ChartData{ChartType: typ, Categories: []string{"p", "q", "r"}, Series: series})
			assert.Positive(t, countNonWhite(img, image.Rect(70, 50, 850, 530)))
		})
	}
}
