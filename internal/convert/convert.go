// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs office documents through a Converter one file at a
// time, printing a status line per file and a batch summary. A failing
// file never stops the batch.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/officemd/internal/ledger"
	"github.com/pdiddy/officemd/internal/ooxml"
	"github.com/pdiddy/officemd/pkg/types"
)

// Converter transforms one office document into Markdown outputs. The
// document pipeline (pages) and the presentation pipeline (slides)
// implement this interface.
type Converter interface {
	Convert(ctx context.Context, src types.Source) (types.Result, error)
}

// Ledger stores conversion outcomes and answers incremental-skip queries.
// *ledger.Store implements it.
type Ledger interface {
	Unchanged(ctx context.Context, path string, modTime time.Time) (bool, error)
	Record(ctx context.Context, rec ledger.Record) error
}

// Options configures a batch run. The zero value converts everything and
// records nothing.
type Options struct {
	// Ledger, when set, receives every outcome.
	Ledger Ledger

	// Incremental skips sources the ledger reports unchanged.
	Incremental bool

	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Item is the outcome of one source in a batch.
type Item struct {
	Source types.Source
	Result types.Result
	Err    error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Partial   int
	Skipped   int
	Failed    int

	Items []Item
}

// Total returns the total number of sources processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Partial + r.Skipped + r.Failed
}

// HasFailures reports whether any source failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(it Item) {
	switch it.Result.Status {
	case types.ConversionDone:
		r.Converted++
	case types.ConversionPartial:
		r.Partial++
	case types.ConversionSkipped:
		r.Skipped++
	default:
		r.Failed++
	}
	r.Items = append(r.Items, it)
}

// ConvertSource converts one source and prints its status line to w.
// Sources that are not valid packages of their format are skipped, as are
// sources the ledger reports unchanged in incremental mode; any other
// error fails the source. The returned error is the conversion error, if
// any, for callers that want it.
func ConvertSource(ctx context.Context, c Converter, src types.Source, w io.Writer, opts Options) (types.Result, error) {
	log := opts.logger().With(zap.String("source", src.Path))
	name := filepath.Base(src.Path)

	if opts.Incremental && opts.Ledger != nil {
		unchanged, err := opts.Ledger.Unchanged(ctx, src.Path, src.ModTime)
		if err != nil {
			log.Warn("ledger lookup failed", zap.Error(err))
		}
		if unchanged {
			fmt.Fprintf(w, "skipped: %s (unchanged)\n", name)
			res := types.Result{Status: types.ConversionSkipped}
			record(ctx, log, src, res, nil, opts)
			return res, nil
		}
	}

	res, err := c.Convert(ctx, src)
	switch {
	case errors.Is(err, ooxml.ErrInvalidPackage):
		res.Status = types.ConversionSkipped
		fmt.Fprintf(w, "skipped: %s (not a valid %s file)\n", name, kindName(src))
	case err != nil:
		res.Status = types.ConversionFailed
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		log.Error("conversion failed", zap.Error(err))
	case res.Status == types.ConversionPartial:
		fmt.Fprintf(w, "partial: %s (%d outputs, %d shapes skipped)\n", name, len(res.Outputs), res.Warnings)
	default:
		res.Status = types.ConversionDone
		fmt.Fprintf(w, "converted: %s (%d outputs)\n", name, len(res.Outputs))
	}

	record(ctx, log, src, res, err, opts)
	return res, err
}

func record(ctx context.Context, log *zap.Logger, src types.Source, res types.Result, err error, opts Options) {
	if opts.Ledger == nil {
		return
	}
	rec := ledger.Record{Source: src, Result: res, Err: err}
	if lerr := opts.Ledger.Record(ctx, rec); lerr != nil {
		log.Warn("ledger record failed", zap.Error(lerr))
	}
}

// ConvertBatch processes sources through the converter in order, printing
// per-file status to w and returning a summary. It stops early only when
// ctx is cancelled, returning the partial summary and ctx.Err().
func ConvertBatch(ctx context.Context, c Converter, sources []types.Source, w io.Writer, opts Options) (BatchResult, error) {
	var result BatchResult
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			printSummary(w, result)
			return result, err
		}
		res, err := ConvertSource(ctx, c, src, w, opts)
		result.add(Item{Source: src, Result: res, Err: err})
	}
	printSummary(w, result)
	return result, nil
}

func printSummary(w io.Writer, r BatchResult) {
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d partial, %d skipped, %d failed (total: %d)\n",
		r.Converted, r.Partial, r.Skipped, r.Failed, r.Total())
}

// DiscoverSources lists the files in dir whose extension matches ext
// (case-insensitive, with or without the dot), sorted by name. Office
// lock files ("~$name.docx") are ignored.
func DiscoverSources(dir, ext string) ([]types.Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory %s: %w", dir, err)
	}
	ext = "." + strings.TrimPrefix(strings.ToLower(ext), ".")

	var sources []types.Source
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), "~$") || strings.ToLower(filepath.Ext(e.Name())) != ext {
			continue
		}
		src := NewSource(filepath.Join(dir, e.Name()))
		if info, err := e.Info(); err == nil {
			src.ModTime = info.ModTime()
		}
		sources = append(sources, src)
	}
	return sources, nil
}

// SourcesFromPaths builds sources for explicit file paths, keeping their
// order. Missing files are kept so the batch reports them as failed.
func SourcesFromPaths(paths []string) []types.Source {
	sources := make([]types.Source, len(paths))
	for i, p := range paths {
		sources[i] = NewSource(p)
		if info, err := os.Stat(p); err == nil {
			sources[i].ModTime = info.ModTime()
		}
	}
	return sources
}

// NewSource builds a source for path with its ID derived from the file
// name and its kind from the extension.
func NewSource(path string) types.Source {
	ext := strings.ToLower(filepath.Ext(path))
	return types.Source{
		ID:   strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Path: path,
		Kind: types.SourceKind(strings.TrimPrefix(ext, ".")),
	}
}

func kindName(src types.Source) string {
	if src.Kind == "" {
		return "office"
	}
	return strings.ToUpper(string(src.Kind))
}
