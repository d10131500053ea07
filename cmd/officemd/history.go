// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pdiddy/officemd/internal/ledger"
	"github.com/pdiddy/officemd/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export recorded conversions",
	Long: `History lists conversions recorded in the ledger, newest first. Filter by
source path, status or kind. Use --export to write the matching history,
with per-asset detail for presentations, to history.yaml or history.json
next to the ledger database.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	if cfg.Ledger.Path == "" {
		return fmt.Errorf("history needs a ledger: set --ledger or ledger.path")
	}
	store, err := ledger.Open(cfg.Ledger)
	if err != nil {
		return err
	}
	defer store.Close()

	path, _ := cmd.Flags().GetString("path")
	status, _ := cmd.Flags().GetString("status")
	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")
	opts := ledger.HistoryOptions{
		Path:   path,
		Status: types.ConversionStatus(status),
		Kind:   types.SourceKind(kind),
		Limit:  limit,
	}

	out := cmd.OutOrStdout()
	ctx := cmd.Context()

	format, _ := cmd.Flags().GetString("export")
	switch format {
	case "":
	case "yaml":
		file, err := store.ExportYAML(ctx, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported to %s\n", file)
		return nil
	case "json":
		file, err := store.ExportJSON(ctx, opts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported to %s\n", file)
		return nil
	default:
		return fmt.Errorf("unsupported export format %q: use yaml or json", format)
	}

	entries, err := store.History(ctx, opts)
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return renderHistory(out, entries, jsonOutput)
}

func renderHistory(w io.Writer, entries []ledger.Entry, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []ledger.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"ID", "When", "File", "Kind", "Status", "Outputs", "Warnings", "Error"})
	for _, e := range entries {
		tw.AppendRow(table.Row{
			e.ID,
			e.ConvertedAt.Local().Format("2006-01-02 15:04:05"),
			filepath.Base(e.SourcePath),
			string(e.Kind),
			string(e.Status),
			e.Outputs,
			e.Warnings,
			e.Error,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{{Name: "Error", WidthMax: 60}})
	tw.SetStyle(table.StyleLight)
	tw.Render()
	fmt.Fprintf(w, "\n%d conversions\n", len(entries))
	return nil
}

func init() {
	historyCmd.Flags().String("path", "", "filter by source file path")
	historyCmd.Flags().String("status", "", "filter by status: converted, partial, skipped, failed")
	historyCmd.Flags().String("kind", "", "filter by kind: docx or pptx")
	historyCmd.Flags().Int("limit", 0, "maximum rows (0 = 50)")
	historyCmd.Flags().Bool("json", false, "output as JSON")
	historyCmd.Flags().String("export", "", "export format: yaml or json")

	rootCmd.AddCommand(historyCmd)
}
