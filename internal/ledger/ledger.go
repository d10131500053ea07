// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records conversion runs in a SQLite database: a history
// of every outcome, the assets each presentation run produced, and the
// per-source state used to skip unchanged files on incremental runs.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/officemd/pkg/types"
)

// Store manages the ledger database.
type Store struct {
	db  *sql.DB
	dir string
}

// Open opens or creates the ledger database at cfg.Path, creating its
// parent directory and schema as needed.
func Open(cfg types.LedgerConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("opening ledger: no database path")
	}
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_path TEXT NOT NULL,
			source_id TEXT,
			kind TEXT,
			status TEXT NOT NULL,
			doc_id TEXT,
			output_dir TEXT,
			outputs INTEGER NOT NULL DEFAULT 0,
			warnings INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_source ON conversions(source_path)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
		`CREATE TABLE IF NOT EXISTS assets (
			conversion_id INTEGER NOT NULL REFERENCES conversions(id) ON DELETE CASCADE,
			doc_id TEXT,
			slide_num INTEGER,
			type TEXT NOT NULL,
			asset_id TEXT,
			filename TEXT,
			path TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_assets_conversion ON assets(conversion_id)`,
		`CREATE TABLE IF NOT EXISTS source_status (
			source_path TEXT PRIMARY KEY,
			file_mod_time TEXT NOT NULL,
			status TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record is one conversion outcome to store.
type Record struct {
	Source types.Source
	Result types.Result

	// Err is the conversion error, if any.
	Err error

	// At is the time of the conversion; zero means now.
	At time.Time
}

// Unchanged reports whether path was last converted successfully from a
// file with the same modification time.
func (s *Store) Unchanged(ctx context.Context, path string, modTime time.Time) (bool, error) {
	var stored string
	err := s.db.QueryRowContext(ctx,
		`SELECT file_mod_time FROM source_status WHERE source_path = ?`, path,
	).Scan(&stored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading source status: %w", err)
	}
	return stored == formatTime(modTime), nil
}

// Record stores a conversion outcome and its assets. Successful and
// partial conversions also update the source's incremental state.
func (s *Store) Record(ctx context.Context, rec Record) error {
	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}
	var errText sql.NullString
	if rec.Err != nil {
		errText = sql.NullString{String: rec.Err.Error(), Valid: true}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO conversions (source_path, source_id, kind, status, doc_id, output_dir, outputs, warnings, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Source.Path, rec.Source.ID, string(rec.Source.Kind), string(rec.Result.Status),
		rec.Result.DocID, rec.Result.OutputDir, len(rec.Result.Outputs), rec.Result.Warnings,
		errText, formatTime(at),
	)
	if err != nil {
		return fmt.Errorf("inserting conversion: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading conversion id: %w", err)
	}

	if len(rec.Result.Assets) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO assets (conversion_id, doc_id, slide_num, type, asset_id, filename, path)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("preparing asset insert: %w", err)
		}
		defer stmt.Close()

		for _, a := range rec.Result.Assets {
			if _, err := stmt.ExecContext(ctx,
				id, a.DocID, a.SlideNum, string(a.Type), assetID(a), a.Filename, a.Path,
			); err != nil {
				return fmt.Errorf("inserting asset %s: %w", a.Filename, err)
			}
		}
	}

	switch rec.Result.Status {
	case types.ConversionDone, types.ConversionPartial:
		_, err = tx.ExecContext(ctx,
			`INSERT INTO source_status (source_path, file_mod_time, status) VALUES (?, ?, ?)
			 ON CONFLICT(source_path) DO UPDATE SET file_mod_time=excluded.file_mod_time, status=excluded.status`,
			rec.Source.Path, formatTime(rec.Source.ModTime), string(rec.Result.Status),
		)
		if err != nil {
			return fmt.Errorf("updating source status: %w", err)
		}
	}

	return tx.Commit()
}

func assetID(a types.AssetMeta) string {
	switch {
	case a.ChartID != 0:
		return fmt.Sprint(a.ChartID)
	case a.ImageID != 0:
		return fmt.Sprint(a.ImageID)
	}
	return a.TableID
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
