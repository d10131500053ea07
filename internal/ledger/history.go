// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/officemd/pkg/types"
)

const (
	defaultLimit = 50
	exportLimit  = 100000
)

// HistoryOptions filters History queries.
type HistoryOptions struct {
	// Path restricts results to one source file.
	Path string

	// Status restricts results to one outcome.
	Status types.ConversionStatus

	// Kind restricts results to one source format.
	Kind types.SourceKind

	// Limit caps the result count. Zero means 50.
	Limit int
}

// Entry is one stored conversion, newest first in History results.
type Entry struct {
	ID          int64                  `json:"id" yaml:"id"`
	SourcePath  string                 `json:"source_path" yaml:"source_path"`
	SourceID    string                 `json:"source_id" yaml:"source_id"`
	Kind        types.SourceKind       `json:"kind" yaml:"kind"`
	Status      types.ConversionStatus `json:"status" yaml:"status"`
	DocID       string                 `json:"doc_id,omitempty" yaml:"doc_id,omitempty"`
	OutputDir   string                 `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	Outputs     int                    `json:"outputs" yaml:"outputs"`
	Warnings    int                    `json:"warnings" yaml:"warnings"`
	Error       string                 `json:"error,omitempty" yaml:"error,omitempty"`
	ConvertedAt time.Time              `json:"converted_at" yaml:"converted_at"`
	Assets      []types.AssetMeta      `json:"assets,omitempty" yaml:"assets,omitempty"`
}

// History returns stored conversions matching opts, newest first.
func (s *Store) History(ctx context.Context, opts HistoryOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT id, source_path, source_id, kind, status, doc_id, output_dir,
			outputs, warnings, error, converted_at
		FROM conversions
		WHERE 1=1`)
	if opts.Path != "" {
		qb.WriteString(` AND source_path = ?`)
		args = append(args, opts.Path)
	}
	if opts.Status != "" {
		qb.WriteString(` AND status = ?`)
		args = append(args, string(opts.Status))
	}
	if opts.Kind != "" {
		qb.WriteString(` AND kind = ?`)
		args = append(args, string(opts.Kind))
	}
	qb.WriteString(` ORDER BY id DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                             Entry
			sourceID, docID, outDir, errT sql.NullString
			kind, status, at              string
		)
		if err := rows.Scan(&e.ID, &e.SourcePath, &sourceID, &kind, &status, &docID, &outDir,
			&e.Outputs, &e.Warnings, &errT, &at); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.SourceID = sourceID.String
		e.Kind = types.SourceKind(kind)
		e.Status = types.ConversionStatus(status)
		e.DocID = docID.String
		e.OutputDir = outDir.String
		e.Error = errT.String
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			e.ConvertedAt = t
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

// Assets returns the assets stored for one conversion.
func (s *Store) Assets(ctx context.Context, conversionID int64) ([]types.AssetMeta, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT doc_id, slide_num, type, asset_id, filename, path
		 FROM assets WHERE conversion_id = ? ORDER BY rowid`, conversionID)
	if err != nil {
		return nil, fmt.Errorf("querying assets: %w", err)
	}
	defer rows.Close()

	var assets []types.AssetMeta
	for rows.Next() {
		var (
			a       types.AssetMeta
			kind    string
			assetID sql.NullString
		)
		if err := rows.Scan(&a.DocID, &a.SlideNum, &kind, &assetID, &a.Filename, &a.Path); err != nil {
			return nil, fmt.Errorf("scanning asset row: %w", err)
		}
		a.Type = types.AssetType(kind)
		setAssetID(&a, assetID.String)
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func setAssetID(a *types.AssetMeta, id string) {
	var n int
	switch a.Type {
	case types.AssetChart:
		fmt.Sscan(id, &n)
		a.ChartID = n
	case types.AssetImage:
		fmt.Sscan(id, &n)
		a.ImageID = n
	case types.AssetTable:
		a.TableID = id
	}
}

// ExportYAML writes the matching history, with assets, to history.yaml
// next to the database and returns the file path.
func (s *Store) ExportYAML(ctx context.Context, opts HistoryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "history.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the matching history, with assets, to history.json
// next to the database and returns the file path.
func (s *Store) ExportJSON(ctx context.Context, opts HistoryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "history.json")
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, opts HistoryOptions) ([]Entry, error) {
	opts.Limit = exportLimit
	entries, err := s.History(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	for i := range entries {
		assets, err := s.Assets(ctx, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].Assets = assets
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
