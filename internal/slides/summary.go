// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package slides

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pdiddy/officemd/pkg/types"
)

var titleCase = cases.Title(language.English)

// writeSummary writes charts_summary.md listing every recorded asset by
// slide.
func (r *run) writeSummary() (string, error) {
	var b strings.Builder
	b.WriteString("# Charts and Tables Summary\n\n")
	fmt.Fprintf(&b, "Document ID: %s\n", r.DocID)
	fmt.Fprintf(&b, "Total charts extracted: %d\n", r.Charts)
	fmt.Fprintf(&b, "Total images extracted: %d\n\n", r.Images)
	b.WriteString("## Chart and Table Metadata\n\n")

	for _, a := range sortedAssets(r.Assets) {
		fmt.Fprintf(&b, "- Slide %d: %s (%s)\n", a.SlideNum, titleCase.String(string(a.Type)), a.Filename)
		link := a.Path
		if link != noChartImage {
			link = r.rel(link)
		}
		fmt.Fprintf(&b, "  - Path: [%s](%s)\n", a.Filename, link)
		fmt.Fprintf(&b, "  - Document ID: %s\n", a.DocID)
	}

	path := r.path(SummaryFile)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// sortedAssets orders assets by slide, then by their per-type number.
func sortedAssets(assets []types.AssetMeta) []types.AssetMeta {
	out := slices.Clone(assets)
	slices.SortStableFunc(out, func(a, b types.AssetMeta) int {
		if c := cmp.Compare(a.SlideNum, b.SlideNum); c != 0 {
			return c
		}
		return cmp.Compare(assetOrder(a), assetOrder(b))
	})
	return out
}

func assetOrder(a types.AssetMeta) int {
	switch {
	case a.ChartID != 0:
		return a.ChartID
	case a.ImageID != 0:
		return a.ImageID
	case a.TableID != "":
		lead, _, _ := strings.Cut(a.TableID, "_")
		n, _ := strconv.Atoi(lead)
		return n
	}
	return 0
}

func (r *run) metadata(sourceFile string, totalSlides int) types.PresentationMetadata {
	assets := r.Assets
	if assets == nil {
		assets = []types.AssetMeta{}
	}
	return types.PresentationMetadata{
		DocID:           r.DocID,
		SourceFile:      sourceFile,
		ConversionDate:  r.now().Format("2006-01-02T15:04:05.000000"),
		TotalSlides:     totalSlides,
		ChartsExtracted: r.Charts,
		ImagesExtracted: r.Images,
		ChartMetadata:   assets,
		OutputStructure: types.OutputStructure{
			MainFile:        MainFile,
			ChartsDirectory: ChartsDir + "/",
			ImagesDirectory: ImagesDir + "/",
			DataDirectory:   DataDir + "/",
			SummaryFile:     SummaryFile,
		},
	}
}

// writeMetadata writes metadata.json and, when enabled, metadata.yaml.
func (r *run) writeMetadata(sourceFile string, totalSlides int) error {
	meta := r.metadata(sourceFile, totalSlides)
	if err := writeJSON(r.path(MetaFile), meta); err != nil {
		return err
	}
	if !r.c.WriteYAML {
		return nil
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", MetaYAML, err)
	}
	if err := os.WriteFile(r.path(MetaYAML), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", MetaYAML, err)
	}
	return nil
}
