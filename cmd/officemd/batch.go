// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/pdiddy/officemd/internal/convert"
	"github.com/pdiddy/officemd/internal/ledger"
	"github.com/pdiddy/officemd/pkg/types"
)

// collectSources expands args into sources. Directory arguments are
// scanned for files with extension ext; with no arguments, defaultDir is
// scanned.
func collectSources(args []string, ext, defaultDir string) ([]types.Source, error) {
	if len(args) == 0 {
		if defaultDir == "" {
			return nil, fmt.Errorf("no input files given")
		}
		return convert.DiscoverSources(defaultDir, ext)
	}

	var sources []types.Source
	for _, a := range args {
		if info, err := os.Stat(a); err == nil && info.IsDir() {
			found, err := convert.DiscoverSources(a, ext)
			if err != nil {
				return nil, err
			}
			sources = append(sources, found...)
			continue
		}
		sources = append(sources, convert.SourcesFromPaths([]string{a})...)
	}
	return sources, nil
}

// runBatch converts sources with conv, recording outcomes in the ledger
// when one is configured, and prints the per-file summary table.
func runBatch(cmd *cobra.Command, conv convert.Converter, sources []types.Source) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	opts := convert.Options{Incremental: cfg.Ledger.Incremental, Logger: logger}
	if cfg.Ledger.Path != "" {
		store, err := ledger.Open(cfg.Ledger)
		if err != nil {
			return err
		}
		defer store.Close()
		opts.Ledger = store
	}

	out := cmd.OutOrStdout()
	result, err := convert.ConvertBatch(ctx, conv, sources, out, opts)
	renderBatch(out, result)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

// renderBatch prints one row per processed source.
func renderBatch(w io.Writer, r convert.BatchResult) {
	if len(r.Items) == 0 {
		return
	}
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"File", "Status", "Outputs", "Warnings", "Detail"})
	for _, it := range r.Items {
		detail := it.Result.OutputDir
		if it.Err != nil {
			detail = it.Err.Error()
		}
		tw.AppendRow(table.Row{
			filepath.Base(it.Source.Path),
			string(it.Result.Status),
			len(it.Result.Outputs),
			it.Result.Warnings,
			detail,
		})
	}
	tw.AppendFooter(table.Row{"Total", r.Total(), "", "", ""})
	tw.SetStyle(table.StyleLight)
	fmt.Fprintln(w)
	tw.Render()
}
