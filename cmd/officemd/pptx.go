// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/officemd/internal/chart"
	"github.com/pdiddy/officemd/internal/slides"
	"github.com/pdiddy/officemd/pkg/types"
)

var pptxCmd = &cobra.Command{
	Use:   "pptx <files or directories...>",
	Short: "Convert PowerPoint presentations to Markdown with extracted media",
	Long: `Pptx converts each .pptx file into a <name>_markdown directory holding
presentation.md, images/, charts/ (charts re-rendered as PNG), data/ (chart
and table data as JSON, embedded objects), charts_summary.md and
metadata.json.

Shapes that cannot be converted are logged and skipped; the file is then
reported as partial.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPptx,
}

func runPptx(cmd *cobra.Command, args []string) error {
	sources, err := collectSources(args, "pptx", "")
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No .pptx files found.")
		return nil
	}

	conv := &slides.Converter{
		OutputDir: cfg.Pptx.OutputDir,
		Chart:     chart.Options{Width: cfg.Pptx.Chart.Width, Height: cfg.Pptx.Chart.Height},
		WriteYAML: cfg.Pptx.WriteYAML,
		Logger:    logger.Named("pptx"),
	}
	return runBatch(cmd, conv, sources)
}

func init() {
	d := types.DefaultConfig()
	pptxCmd.Flags().String("output-dir", d.Pptx.OutputDir, "parent directory of the <name>_markdown directories (default: current directory)")
	pptxCmd.Flags().Int("chart-width", d.Pptx.Chart.Width, "rendered chart width in pixels")
	pptxCmd.Flags().Int("chart-height", d.Pptx.Chart.Height, "rendered chart height in pixels")
	pptxCmd.Flags().Bool("yaml", d.Pptx.WriteYAML, "also write metadata.yaml")

	bindFlags(pptxCmd.Flags(), map[string]string{
		"pptx.output_dir":   "output-dir",
		"pptx.chart.width":  "chart-width",
		"pptx.chart.height": "chart-height",
		"pptx.write_yaml":   "yaml",
	})

	rootCmd.AddCommand(pptxCmd)
}
