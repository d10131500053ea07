// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pptx

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pdiddy/officemd/internal/ooxml"
	"github.com/pdiddy/officemd/pkg/types"
)

const untitledChart = "Untitled Chart"

// plotKinds lists the c:plotArea children that hold a plot.
var plotKinds = []string{
	"barChart", "bar3DChart", "lineChart", "line3DChart", "pieChart",
	"pie3DChart", "doughnutChart", "ofPieChart", "areaChart", "area3DChart",
	"scatterChart", "bubbleChart", "radarChart", "stockChart",
	"surfaceChart", "surface3DChart",
}

// ParseChart extracts title, type, categories and series from a chart
// part (c:chartSpace). DocID is left for the caller to fill.
func ParseChart(data []byte) (types.ChartData, error) {
	cd := types.ChartData{
		Title:      untitledChart,
		ChartType:  "Unknown",
		Categories: []string{},
		Series:     []types.SeriesData{},
	}

	root, err := ooxml.ParseNode(bytes.NewReader(data))
	if err != nil {
		return cd, fmt.Errorf("parsing chart part: %w", err)
	}
	if root.Name() != "chartSpace" {
		return cd, fmt.Errorf("unexpected chart root element %q", root.Name())
	}
	chart := root.Child("chart")
	if chart == nil {
		return cd, fmt.Errorf("chart part has no c:chart element")
	}

	if title := chart.Path("title", "tx", "rich"); title != nil {
		if t := strings.TrimSpace(frameText(textParagraphs(title))); t != "" {
			cd.Title = t
		}
	}

	plotArea := chart.Child("plotArea")
	if plotArea == nil {
		return cd, nil
	}
	plots := plotsOf(plotArea)
	if len(plots) > 0 {
		cd.ChartType = chartTypeLabel(plots[0])
	}
	lower := strings.ToLower(cd.ChartType)
	cd.Has3D = strings.Contains(lower, "3d") || strings.Contains(lower, "three")

	hasBar := false
	for _, plot := range plots {
		if plot.Is("barChart", "bar3DChart") {
			hasBar = true
		}
		if cats := plotCategories(plot); len(cats) > 0 {
			cd.Categories = cats
		}
		for _, ser := range plot.Children("ser") {
			name := seriesName(ser)
			if name == "" {
				name = fmt.Sprintf("Series %d", len(cd.Series)+1)
			}
			cd.Series = append(cd.Series, types.SeriesData{Name: name, Values: seriesValues(ser)})
		}
	}

	if hasBar && plotArea.Child("dTable") != nil {
		cd.IsHybrid = true
		cd.TableLabels = tableLabels(plots, cd.Series)
	}
	return cd, nil
}

func plotsOf(plotArea *ooxml.Node) []*ooxml.Node {
	var plots []*ooxml.Node
	for i := range plotArea.Nodes {
		n := &plotArea.Nodes[i]
		if slices.Contains(plotKinds, n.Name()) {
			plots = append(plots, n)
		}
	}
	return plots
}

func val(n *ooxml.Node, child string) string {
	if c := n.Child(child); c != nil {
		return c.Attr("val")
	}
	return ""
}

// chartTypeLabel names a plot the way chart-type enumerations do, e.g.
// COLUMN_CLUSTERED, BAR_STACKED_100, THREE_D_PIE, XY_SCATTER.
func chartTypeLabel(plot *ooxml.Node) string {
	grouping := val(plot, "grouping")
	suffix := func(standard string) string {
		switch grouping {
		case "stacked":
			return "_STACKED"
		case "percentStacked":
			return "_STACKED_100"
		case "standard":
			return standard
		}
		return "_CLUSTERED"
	}
	stacking := func() string {
		switch grouping {
		case "stacked":
			return "_STACKED"
		case "percentStacked":
			return "_STACKED_100"
		}
		return ""
	}

	switch plot.Name() {
	case "barChart":
		dir := "COLUMN"
		if val(plot, "barDir") == "bar" {
			dir = "BAR"
		}
		return dir + suffix("_CLUSTERED")
	case "bar3DChart":
		dir := "COLUMN"
		if val(plot, "barDir") == "bar" {
			dir = "BAR"
		}
		return "THREE_D_" + dir + suffix("")
	case "lineChart":
		return "LINE" + stacking()
	case "line3DChart":
		return "THREE_D_LINE"
	case "pieChart":
		return "PIE"
	case "pie3DChart":
		return "THREE_D_PIE"
	case "doughnutChart":
		return "DOUGHNUT"
	case "ofPieChart":
		if val(plot, "ofPieType") == "bar" {
			return "BAR_OF_PIE"
		}
		return "PIE_OF_PIE"
	case "areaChart":
		return "AREA" + stacking()
	case "area3DChart":
		return "THREE_D_AREA" + stacking()
	case "scatterChart":
		return "XY_SCATTER"
	case "bubbleChart":
		return "BUBBLE"
	case "radarChart":
		return "RADAR"
	case "stockChart":
		return "STOCK_HLC"
	case "surfaceChart":
		return "SURFACE"
	case "surface3DChart":
		return "THREE_D_SURFACE"
	}
	return strings.ToUpper(plot.Name())
}

// plotCategories reads the category labels of the plot's first series.
func plotCategories(plot *ooxml.Node) []string {
	ser := plot.Child("ser")
	if ser == nil {
		return nil
	}
	cat := ser.Child("cat")
	if cat == nil {
		cat = ser.Child("xVal")
	}
	if cat == nil {
		return nil
	}

	var cache *ooxml.Node
	switch {
	case cat.Path("strRef", "strCache") != nil:
		cache = cat.Path("strRef", "strCache")
	case cat.Path("numRef", "numCache") != nil:
		cache = cat.Path("numRef", "numCache")
	case cat.Child("strLit") != nil:
		cache = cat.Child("strLit")
	case cat.Child("numLit") != nil:
		cache = cat.Child("numLit")
	case cat.Path("multiLvlStrRef", "multiLvlStrCache", "lvl") != nil:
		cache = cat.Path("multiLvlStrRef", "multiLvlStrCache", "lvl")
	default:
		return nil
	}

	pts := points(cache)
	out := make([]string, 0, len(pts))
	for _, p := range pts {
		if p.ok {
			out = append(out, p.v)
		}
	}
	return out
}

type point struct {
	v  string
	ok bool
}

// maxPoints is the per-series point limit Office applies to charts.
// Larger counts or indexes come from damaged parts and are ignored.
const maxPoints = 32000

// points reads c:pt entries into a slice indexed by c:idx, sized by
// c:ptCount. Missing points have ok false.
func points(cache *ooxml.Node) []point {
	count, err := strconv.Atoi(val(cache, "ptCount"))
	if err != nil || count < 0 {
		count = 0
	}
	pts := make([]point, min(count, maxPoints))
	for _, pt := range cache.Children("pt") {
		idx, err := strconv.Atoi(pt.Attr("idx"))
		if err != nil || idx < 0 || idx >= maxPoints {
			continue
		}
		if idx >= len(pts) {
			pts = append(pts, make([]point, idx+1-len(pts))...)
		}
		v := ""
		if c := pt.Child("v"); c != nil {
			v = c.Text
		}
		pts[idx] = point{v: v, ok: true}
	}
	return pts
}

func seriesName(ser *ooxml.Node) string {
	tx := ser.Child("tx")
	if tx == nil {
		return ""
	}
	if cache := tx.Path("strRef", "strCache"); cache != nil {
		for _, p := range points(cache) {
			if p.ok {
				return p.v
			}
		}
	}
	if v := tx.Child("v"); v != nil {
		return v.Text
	}
	return ""
}

// seriesValues reads c:val (or c:yVal for XY plots). Missing or
// non-numeric points are 0.
func seriesValues(ser *ooxml.Node) []float64 {
	v := ser.Child("val")
	if v == nil {
		v = ser.Child("yVal")
	}
	if v == nil {
		return []float64{}
	}
	cache := v.Path("numRef", "numCache")
	if cache == nil {
		cache = v.Child("numLit")
	}
	if cache == nil {
		return []float64{}
	}

	pts := points(cache)
	out := make([]float64, len(pts))
	for i, p := range pts {
		if !p.ok {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(p.v), 64)
		if err == nil {
			out[i] = f
		}
	}
	return out
}

// tableLabels collects rich-text data labels from every plot and series.
// Charts without such labels fall back to their series names.
func tableLabels(plots []*ooxml.Node, series []types.SeriesData) []string {
	var labels []string
	for _, plot := range plots {
		for _, dl := range plot.FindAll("dLbl") {
			rich := dl.Path("tx", "rich")
			if rich == nil {
				continue
			}
			if t := strings.TrimSpace(frameText(textParagraphs(rich))); t != "" {
				labels = append(labels, t)
			}
		}
	}
	if len(labels) > 0 {
		return labels
	}
	for _, s := range series {
		labels = append(labels, s.Name)
	}
	return labels
}
