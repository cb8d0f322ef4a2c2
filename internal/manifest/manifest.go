// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest persists a record of completed conversions in a local
// SQLite database. Recording is best-effort bookkeeping: the text output
// is the contract, the manifest only describes it.
package manifest

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdftext/pkg/types"
)

const defaultMaxResults = 20

// Store manages the conversion manifest database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the manifest database at cfg.Path, creating
// parent directories and the schema as needed.
func NewStore(cfg types.ManifestConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("manifest path is empty")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating manifest directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening manifest database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
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
		`CREATE TABLE IF NOT EXISTS runs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			input_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			backend TEXT NOT NULL,
			pages INTEGER NOT NULL,
			bytes INTEGER NOT NULL,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input_path)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one completed conversion.
func (s *Store) Record(ctx context.Context, run types.Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (input_path, output_path, backend, pages, bytes, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.InputPath, run.OutputPath, string(run.Backend),
		run.Pages, run.Bytes, run.ConvertedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording conversion of %s: %w", run.InputPath, err)
	}
	return nil
}

// List returns recorded conversions, newest first. When limit is zero or
// negative the store's configured maximum applies.
func (s *Store) List(ctx context.Context, limit int) ([]types.Run, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT input_path, output_path, backend, pages, bytes, converted_at
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying manifest: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		var r types.Run
		var backend, convertedAt string
		if err := rows.Scan(&r.InputPath, &r.OutputPath, &backend, &r.Pages, &r.Bytes, &convertedAt); err != nil {
			return nil, fmt.Errorf("scanning manifest row: %w", err)
		}
		r.Backend = types.ExtractBackend(backend)
		ts, err := time.Parse(time.RFC3339, convertedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp %q: %w", convertedAt, err)
		}
		r.ConvertedAt = ts
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest rows: %w", err)
	}
	return runs, nil
}
