// Package history keeps an observational log of pipeline runs in SQLite.
// It exists for operators checking why a morning quote did not arrive; the
// pipeline itself never reads it.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Run records one pipeline execution.
type Run struct {
	ID        string
	StartedAt time.Time
	Mode      string // webhook | bot
	Source    string // ai | fallback
	Quote     string
	Delivered bool
	Error     string
}

// Store wraps a *sql.DB with run-log operations.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
  id TEXT PRIMARY KEY,
  started_at TEXT NOT NULL,
  mode TEXT NOT NULL,
  source TEXT NOT NULL,
  quote TEXT,
  delivered INTEGER NOT NULL,
  error TEXT
);
`

// Open opens (or creates) the run log at the given path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one run.
func (s *Store) Record(r Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, started_at, mode, source, quote, delivered, error)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.StartedAt.UTC().Format(time.RFC3339), r.Mode, r.Source, r.Quote,
		boolInt(r.Delivered), r.Error,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT id, started_at, mode, source, quote, delivered, error
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt string
		var delivered int
		if err := rows.Scan(&r.ID, &startedAt, &r.Mode, &r.Source, &r.Quote, &delivered, &r.Error); err != nil {
			return nil, err
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
		r.Delivered = delivered != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
