// Package sqlite archives every collected batch into a local SQLite database
// so observations survive even when the CSV file is replaced by hand.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"stockmail/internal/dataset"
)

type Store struct {
	db *sql.DB
}

// Snapshot is one archived row.
type Snapshot struct {
	ID         int64
	Symbol     string
	ObservedAt string
	FieldsJSON string
	CreatedAt  string
}

// Open creates the database at path if needed and migrates it.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=3000;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pragma busy_timeout: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS quote_snapshot (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol TEXT NOT NULL,
			observed_at TEXT NOT NULL,
			fields_json TEXT,
			created_at TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quote_snapshot_symbol ON quote_snapshot(symbol);`,
		`CREATE INDEX IF NOT EXISTS idx_quote_snapshot_observed ON quote_snapshot(observed_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Archive inserts every row of batch in a single transaction. Rows without
// a symbol or date are rejected.
func (s *Store) Archive(ctx context.Context, batch dataset.Dataset) error {
	if s == nil || s.db == nil || batch.Len() == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO quote_snapshot (symbol, observed_at, fields_json, created_at) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare archive: %w", err)
	}
	defer stmt.Close()

	createdAt := time.Now().Format(time.RFC3339)
	for i, r := range batch.Rows() {
		symbol, date := r.Text("symbol"), r.Text("date")
		if symbol == "" || date == "" {
			return fmt.Errorf("archive row %d: missing symbol or date", i)
		}
		fields, err := json.Marshal(fieldMap(r))
		if err != nil {
			return fmt.Errorf("encode row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, symbol, date, string(fields), createdAt); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive: %w", err)
	}
	return nil
}

// QueryBySymbol returns archived rows for symbol, oldest first.
func (s *Store) QueryBySymbol(ctx context.Context, symbol string, limit int) ([]Snapshot, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("store not initialized")
	}
	if limit <= 0 {
		limit = 200
	}
	if limit > 1000 {
		limit = 1000
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, symbol, observed_at, fields_json, created_at
		FROM quote_snapshot WHERE symbol = ? ORDER BY id ASC LIMIT ?`,
		symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var sn Snapshot
		if err := rows.Scan(&sn.ID, &sn.Symbol, &sn.ObservedAt, &sn.FieldsJSON, &sn.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, sn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows snapshot: %w", err)
	}
	return out, nil
}

func fieldMap(r dataset.Row) map[string]any {
	out := make(map[string]any, r.Len())
	for _, f := range r.Fields() {
		out[f.Key] = f.Value
	}
	return out
}
