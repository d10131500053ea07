// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/officemd/internal/pages"
	"github.com/pdiddy/officemd/pkg/types"
)

var docxCmd = &cobra.Command{
	Use:   "docx [files or directories...]",
	Short: "Split Word documents into one Markdown file per page",
	Long: `Docx converts each .docx file into <name>_page_<n>.md files, one per
page, splitting at explicit page breaks. Headings become Markdown headings
and tables are flattened into GitHub-flavored Markdown tables; nested
tables are emitted in place of their outer table.

With no arguments the configured input directory is scanned. Files that
are not valid Word documents are skipped.`,
	RunE: runDocx,
}

func runDocx(cmd *cobra.Command, args []string) error {
	sources, err := collectSources(args, "docx", cfg.Docx.InputDir)
	if err != nil {
		return err
	}
	if len(sources) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No .docx files found.")
		return nil
	}

	conv := &pages.Converter{
		OutputDir:   cfg.Docx.OutputDir,
		Frontmatter: cfg.Docx.Frontmatter,
		Logger:      logger.Named("docx"),
	}
	return runBatch(cmd, conv, sources)
}

func init() {
	d := types.DefaultConfig()
	docxCmd.Flags().String("input-dir", d.Docx.InputDir, "directory scanned when no files are given")
	docxCmd.Flags().String("output-dir", d.Docx.OutputDir, "directory for the page files")
	docxCmd.Flags().Bool("frontmatter", d.Docx.Frontmatter, "prepend YAML frontmatter to each page file")

	bindFlags(docxCmd.Flags(), map[string]string{
		"docx.input_dir":   "input-dir",
		"docx.output_dir":  "output-dir",
		"docx.frontmatter": "frontmatter",
	})

	rootCmd.AddCommand(docxCmd)
}
