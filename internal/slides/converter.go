// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package slides converts PPTX presentations into a Markdown document plus
// extracted images, re-rendered charts, chart and table data, a charts
// summary, and run metadata.
package slides

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/officemd/internal/chart"
	"github.com/pdiddy/officemd/internal/mdcheck"
	"github.com/pdiddy/officemd/internal/pptx"
	"github.com/pdiddy/officemd/pkg/types"
)

// Output layout inside a presentation's output directory.
const (
	MainFile    = "presentation.md"
	SummaryFile = "charts_summary.md"
	MetaFile    = "metadata.json"
	MetaYAML    = "metadata.yaml"
	ChartsDir   = "charts"
	ImagesDir   = "images"
	DataDir     = "data"
)

// Converter writes the Markdown rendition of PPTX sources.
type Converter struct {
	// OutputDir is the parent of each <base>_markdown directory; empty
	// means the current directory.
	OutputDir string

	// Chart sets the rendered chart size; zero means chart.DefaultOptions.
	Chart chart.Options

	// WriteYAML also writes metadata.yaml.
	WriteYAML bool

	Logger *zap.Logger

	// Now and NewRun replace the clock and run-context factory in tests.
	Now    func() time.Time
	NewRun func() *RunContext
}

// run carries one conversion through the shape handlers.
type run struct {
	*RunContext
	c      *Converter
	log    *zap.Logger
	outDir string
	base   string
}

// Dir returns the output directory for the presentation at path.
func (c *Converter) Dir(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parent := c.OutputDir
	if parent == "" {
		parent = "."
	}
	return filepath.Join(parent, base+"_markdown")
}

// Convert converts the presentation at src.Path. Sources that are not
// valid PPTX packages return an error wrapping ooxml.ErrInvalidPackage.
// Shapes that cannot be converted are logged and skipped; the result is
// then ConversionPartial.
func (c *Converter) Convert(ctx context.Context, src types.Source) (types.Result, error) {
	res := types.Result{Status: types.ConversionFailed}

	pres, err := pptx.Open(src.Path)
	if err != nil {
		return res, fmt.Errorf("opening %s: %w", src.Path, err)
	}
	defer pres.Close()

	slides, err := pres.Slides()
	if err != nil {
		return res, fmt.Errorf("reading %s: %w", src.Path, err)
	}

	r := &run{
		RunContext: c.newRun(),
		c:          c,
		outDir:     c.Dir(src.Path),
		base:       strings.TrimSuffix(filepath.Base(src.Path), filepath.Ext(src.Path)),
	}
	r.log = c.logger().With(zap.String("source", src.Path), zap.String("doc_id", r.DocID))
	res.DocID = r.DocID
	res.OutputDir = r.outDir

	for _, d := range []string{r.outDir, r.path(ImagesDir), r.path(ChartsDir), r.path(DataDir)} {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return res, fmt.Errorf("creating output directory: %w", err)
		}
	}
	r.log.Info("converting presentation", zap.Int("slides", len(slides)))

	md, err := r.markdown(ctx, slides)
	if err != nil {
		return res, err
	}
	mainPath := r.path(MainFile)
	if err := os.WriteFile(mainPath, []byte(md), 0o644); err != nil {
		return res, fmt.Errorf("writing %s: %w", mainPath, err)
	}
	report := mdcheck.Inspect([]byte(md))
	r.log.Debug("presentation written",
		zap.String("output", mainPath),
		zap.Int("headings", report.Headings),
		zap.Int("tables", len(report.Tables)),
		zap.Int("images", len(report.Images)),
	)

	summaryPath, err := r.writeSummary()
	if err != nil {
		return res, err
	}
	if err := r.writeMetadata(filepath.Base(src.Path), len(slides)); err != nil {
		return res, err
	}

	res.Outputs = []string{mainPath, summaryPath}
	res.Assets = r.Assets
	res.Warnings = r.ShapeErrors
	res.Status = types.ConversionDone
	if r.ShapeErrors > 0 {
		res.Status = types.ConversionPartial
	}
	r.log.Info("presentation converted",
		zap.Int("charts", r.Charts),
		zap.Int("images", r.Images),
		zap.Int("shape_errors", r.ShapeErrors),
	)
	return res, nil
}

func (r *run) path(elem ...string) string {
	return filepath.Join(append([]string{r.outDir}, elem...)...)
}

// rel returns p relative to the output directory with forward slashes,
// as used in Markdown links.
func (r *run) rel(p string) string {
	rel, err := filepath.Rel(r.outDir, p)
	if err != nil {
		return filepath.ToSlash(p)
	}
	return filepath.ToSlash(rel)
}

func (r *run) now() time.Time {
	if r.c.Now != nil {
		return r.c.Now()
	}
	return time.Now()
}

func (c *Converter) newRun() *RunContext {
	if c.NewRun != nil {
		return c.NewRun()
	}
	return NewRunContext()
}

func (c *Converter) chartOptions() chart.Options {
	if c.Chart.Width == 0 && c.Chart.Height == 0 {
		return chart.DefaultOptions()
	}
	return c.Chart
}

func (c *Converter) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// writeJSON writes v as indented JSON without HTML escaping.
func writeJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
