// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slides

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/officemd/internal/chart"
	"github.com/pdiddy/officemd/internal/pptx"
	"github.com/pdiddy/officemd/internal/table"
	"github.com/pdiddy/officemd/pkg/types"
)

const (
	sectionRule    = "\n---\n"
	maxCategories  = 5
	maxTableLabels = 5
	maxSeries      = 3

	// noChartImage stands in for the image path of a chart that could
	// not be rendered.
	noChartImage = "No chart image generated"
)

// bucket decides where shape output lands on the slide: text first, then
// everything else under "Charts and Media".
type bucket int

const (
	bucketText bucket = iota
	bucketMedia
)

type content struct {
	bucket bucket
	lines  []string
}

// markdown renders the whole presentation. Lines are joined with
// newlines; most lines carry their own trailing newline so blocks end up
// separated by blank lines.
func (r *run) markdown(ctx context.Context, slides []*pptx.Slide) (string, error) {
	var lines []string
	lines = append(lines,
		fmt.Sprintf("# %s\n", r.presentationTitle(slides)),
		fmt.Sprintf("*Converted from PowerPoint on %s*\n", r.now().Format("2006-01-02 15:04:05")),
		fmt.Sprintf("*Document ID: %s*\n", r.DocID),
		"---\n",
		"## Table of Contents\n",
	)
	for _, s := range slides {
		lines = append(lines, fmt.Sprintf("%d. [%s](#slide-%d)\n", s.Number, s.Title(), s.Number))
	}
	lines = append(lines, sectionRule)

	for _, s := range slides {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		lines = append(lines, r.slide(s)...)
		lines = append(lines, sectionRule)
	}
	return strings.Join(lines, "\n"), nil
}

// presentationTitle is the first slide's title, or the file name when the
// first slide has no title of its own.
func (r *run) presentationTitle(slides []*pptx.Slide) string {
	if len(slides) > 0 {
		if t := slides[0].Title(); t != "Slide 1" {
			return t
		}
	}
	return r.base
}

func (r *run) slide(s *pptx.Slide) []string {
	lines := []string{
		fmt.Sprintf("## Slide %d: %s {#slide-%d}\n", s.Number, s.Title(), s.Number),
		fmt.Sprintf("*Layout: %s*\n", s.LayoutName),
	}
	if s.Notes != "" {
		lines = append(lines, fmt.Sprintf("**Presenter Notes:** %s\n", s.Notes))
	}

	var text, media []string
	for i, sh := range s.Shapes {
		c := r.shape(sh, s.Number, fmt.Sprint(i))
		if c == nil {
			continue
		}
		if c.bucket == bucketText {
			text = append(text, c.lines...)
		} else {
			media = append(media, c.lines...)
		}
	}

	lines = append(lines, text...)
	if len(media) > 0 {
		lines = append(lines, "\n### Charts and Media\n")
		lines = append(lines, media...)
	}
	return lines
}

// shape dispatches one shape. idx is the shape's position on the slide;
// shapes inside groups use "<group idx>_g<i>". Failures are logged,
// counted, and yield nil.
func (r *run) shape(sh pptx.Shape, slideNum int, idx string) *content {
	log := r.log.With(zap.Int("slide", slideNum), zap.String("shape", idx), zap.String("kind", string(sh.Kind)))
	if sh.Err != nil {
		r.shapeFailed(log, sh.Err)
		return nil
	}

	var (
		c   *content
		err error
	)
	switch sh.Kind {
	case pptx.ShapeChart:
		c, err = r.chart(sh, slideNum)
	case pptx.ShapePicture:
		c, err = r.picture(sh, slideNum)
	case pptx.ShapeTable:
		c, err = r.table(sh, slideNum, idx)
	case pptx.ShapeText:
		c = textContent(sh)
	case pptx.ShapeGroup:
		c = r.group(sh, slideNum, idx)
	case pptx.ShapeOLE:
		c, err = r.object(sh, slideNum, idx)
	default:
		c = genericContent(sh)
	}
	if err != nil {
		r.shapeFailed(log, err)
		return nil
	}
	return c
}

func (r *run) shapeFailed(log *zap.Logger, err error) {
	r.ShapeErrors++
	log.Warn("skipping shape", zap.Error(err))
}

func (r *run) chart(sh pptx.Shape, slideNum int) (*content, error) {
	id := r.NextChart()
	name := fmt.Sprintf("chart_%s_%d_%d", r.DocID, slideNum, id)

	data, err := pptx.ParseChart(sh.ChartXML)
	if err != nil {
		r.ShapeErrors++
		r.log.Warn("chart data unreadable, using placeholder",
			zap.Int("slide", slideNum), zap.String("part", sh.ChartPart), zap.Error(err))
		data = placeholderChart()
	}
	data.DocID = r.DocID

	imagePath := r.path(ChartsDir, name+".png")
	if err := r.renderChart(data, imagePath); err != nil {
		r.log.Warn("chart image not generated", zap.String("chart", name), zap.Error(err))
		imagePath = ""
	}

	dataPath := r.path(DataDir, name+".json")
	if err := writeJSON(dataPath, data); err != nil {
		return nil, err
	}

	meta := types.AssetMeta{SlideNum: slideNum, Type: types.AssetChart, ChartID: id, Filename: name, Path: imagePath}
	if imagePath == "" {
		meta.Path = noChartImage
	}
	r.Record(meta)

	lines := []string{fmt.Sprintf("#### Chart: %s\n", data.Title)}
	if imagePath != "" {
		lines = append(lines, fmt.Sprintf("![%s](%s)\n", data.Title, r.rel(imagePath)))
	} else {
		lines = append(lines, "**Note:** Chart image could not be generated.\n")
	}
	lines = append(lines, fmt.Sprintf("**Chart Type:** %s\n", data.ChartType))

	if len(data.Categories) > 0 {
		lines = append(lines, "**Categories:** "+strings.Join(first(data.Categories, maxCategories), ", "))
		if len(data.Categories) > maxCategories {
			lines = append(lines, "...")
		}
		lines = append(lines, "\n")
	}
	if data.IsHybrid && len(data.TableLabels) > 0 {
		lines = append(lines, fmt.Sprintf("**Table Labels:** %s\n", strings.Join(first(data.TableLabels, maxTableLabels), ", ")))
	}
	if len(data.Series) > 0 {
		lines = append(lines, "**Data Series:**\n")
		for _, s := range first(data.Series, maxSeries) {
			lines = append(lines, fmt.Sprintf("- %s (%d values)\n", s.Name, len(s.Values)))
		}
		if extra := len(data.Series) - maxSeries; extra > 0 {
			lines = append(lines, fmt.Sprintf("- ... and %d more series\n", extra))
		}
	}
	lines = append(lines, fmt.Sprintf("📊 [View Chart Data](%s)\n", r.rel(dataPath)))

	return &content{bucket: bucketMedia, lines: lines}, nil
}

// placeholderChart stands in for a chart whose part cannot be read.
func placeholderChart() types.ChartData {
	return types.ChartData{
		Title:      "Chart",
		ChartType:  "Unknown",
		Categories: []string{},
		Series:     []types.SeriesData{},
	}
}

func (r *run) renderChart(data types.ChartData, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := chart.Render(data, f, r.c.chartOptions()); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func (r *run) picture(sh pptx.Shape, slideNum int) (*content, error) {
	id := r.NextImage()
	name := fmt.Sprintf("image_%s_%d_%d", r.DocID, slideNum, id)
	path := r.path(ImagesDir, name+"."+sh.MediaExt)
	if err := os.WriteFile(path, sh.Media, 0o644); err != nil {
		return nil, fmt.Errorf("writing image: %w", err)
	}

	r.Record(types.AssetMeta{SlideNum: slideNum, Type: types.AssetImage, ImageID: id, Filename: name, Path: path})
	return &content{bucket: bucketMedia, lines: []string{fmt.Sprintf("![Image](%s)\n", r.rel(path))}}, nil
}

func (r *run) table(sh pptx.Shape, slideNum int, idx string) (*content, error) {
	if len(sh.Table.Rows) == 0 {
		return nil, nil
	}
	name := fmt.Sprintf("table_%s_%d_%s", r.DocID, slideNum, idx)

	data := types.TableData{DocID: r.DocID, SlideNum: slideNum, Rows: make([][]string, len(sh.Table.Rows))}
	for i, row := range sh.Table.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = strings.ReplaceAll(strings.TrimSpace(cell.Text), "\n", " ")
		}
		data.Rows[i] = cells
	}

	dataPath := r.path(DataDir, name+".json")
	if err := writeJSON(dataPath, data); err != nil {
		return nil, err
	}
	r.Record(types.AssetMeta{SlideNum: slideNum, Type: types.AssetTable, TableID: idx, Filename: name, Path: dataPath})

	lines := table.Flatten(sh.Table)
	lines = append(lines, fmt.Sprintf("📋 [View Table Data](%s)\n", r.rel(dataPath)))
	return &content{bucket: bucketMedia, lines: lines}, nil
}

// textContent renders a text frame. Title placeholders get "###" for
// top-level paragraphs; nested paragraphs become indented bullets.
func textContent(sh pptx.Shape) *content {
	title := sh.IsTitle()
	var lines []string
	for _, p := range sh.Paragraphs {
		text := strings.TrimSpace(p.Text)
		if text == "" {
			continue
		}
		switch {
		case p.Level == 0 && title:
			lines = append(lines, fmt.Sprintf("### %s\n", text))
		case p.Level == 0:
			lines = append(lines, text+"\n")
		default:
			lines = append(lines, strings.Repeat("  ", p.Level)+"- "+text+"\n")
		}
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}
	return &content{bucket: bucketText, lines: lines}
}

func (r *run) group(sh pptx.Shape, slideNum int, idx string) *content {
	var lines []string
	for i, child := range sh.Children {
		if c := r.shape(child, slideNum, fmt.Sprintf("%s_g%d", idx, i)); c != nil {
			lines = append(lines, c.lines...)
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return &content{bucket: bucketMedia, lines: lines}
}

func (r *run) object(sh pptx.Shape, slideNum int, idx string) (*content, error) {
	lines := []string{fmt.Sprintf("**Embedded Object:** %s\n", sh.ProgID)}
	if sh.Embedded != nil {
		name := fmt.Sprintf("embedded_%s_%d_%s.%s", r.DocID, slideNum, idx, objectExt(sh.ProgID))
		path := r.path(DataDir, name)
		if err := os.WriteFile(path, sh.Embedded, 0o644); err != nil {
			return nil, fmt.Errorf("writing embedded object: %w", err)
		}
		r.Record(types.AssetMeta{SlideNum: slideNum, Type: types.AssetObject, Filename: name, Path: path})
		lines = append(lines, fmt.Sprintf("📎 [Download Embedded Object](%s)\n", r.rel(path)))
	}
	return &content{bucket: bucketMedia, lines: lines}, nil
}

func objectExt(progID string) string {
	p := strings.ToLower(progID)
	switch {
	case strings.Contains(p, "excel"):
		return "xlsx"
	case strings.Contains(p, "word"):
		return "docx"
	}
	return "bin"
}

func genericContent(sh pptx.Shape) *content {
	lines := []string{fmt.Sprintf("*Shape: %s*\n", sh.Label)}
	if text := strings.TrimSpace(sh.Text()); text != "" {
		lines = append(lines, text+"\n")
	}
	return &content{bucket: bucketMedia, lines: lines}
}

func first[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
