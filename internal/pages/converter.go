// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pages

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/officemd/internal/docx"
	"github.com/pdiddy/officemd/internal/mdcheck"
	"github.com/pdiddy/officemd/pkg/types"
)

// Converter writes <base>_page_<n>.md files for DOCX sources.
type Converter struct {
	// OutputDir receives the page files; it is created when missing.
	OutputDir string

	// Frontmatter prepends a YAML block (source, page, converted_at) to
	// every page file.
	Frontmatter bool

	Logger *zap.Logger

	// Now is the clock for frontmatter timestamps; nil means time.Now.
	Now func() time.Time
}

// frontmatter is the YAML header of a page file.
type frontmatter struct {
	Source      string `yaml:"source"`
	Page        int    `yaml:"page"`
	ConvertedAt string `yaml:"converted_at"`
}

// Convert splits the DOCX at src.Path into page files. Sources that are
// not valid DOCX packages return an error wrapping ooxml.ErrInvalidPackage.
func (c *Converter) Convert(ctx context.Context, src types.Source) (types.Result, error) {
	log := c.logger().With(zap.String("source", src.Path))
	res := types.Result{Status: types.ConversionFailed, OutputDir: c.OutputDir}

	doc, err := docx.Open(src.Path)
	if err != nil {
		return res, fmt.Errorf("opening %s: %w", src.Path, err)
	}
	defer doc.Close()

	pages := Paginate(doc.Elements())
	if err := doc.Err(); err != nil {
		return res, fmt.Errorf("reading %s: %w", src.Path, err)
	}

	if err := os.MkdirAll(c.OutputDir, 0o755); err != nil {
		return res, fmt.Errorf("creating output directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(src.Path), filepath.Ext(src.Path))
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		content := p.Markdown()
		if c.Frontmatter {
			content, err = c.withFrontmatter(src.Path, p.Number, content)
			if err != nil {
				return res, err
			}
		}

		out := filepath.Join(c.OutputDir, fmt.Sprintf("%s_page_%d.md", base, p.Number))
		if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
			return res, fmt.Errorf("writing %s: %w", out, err)
		}
		res.Outputs = append(res.Outputs, out)

		report := mdcheck.Inspect([]byte(content))
		log.Debug("page written",
			zap.String("output", out),
			zap.Int("page", p.Number),
			zap.Int("headings", report.Headings),
			zap.Int("tables", len(report.Tables)),
		)
	}

	res.Status = types.ConversionDone
	log.Info("document converted", zap.Int("pages", len(pages)))
	return res, nil
}

func (c *Converter) withFrontmatter(source string, page int, body string) (string, error) {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	fm, err := yaml.Marshal(frontmatter{
		Source:      source,
		Page:        page,
		ConvertedAt: now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}
	return "---\n" + string(fm) + "---\n" + body, nil
}

func (c *Converter) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
