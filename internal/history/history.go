// Package history keeps a SQLite ledger of packaging runs so past output
// can be audited without re-reading manifests.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one recorded packaging run.
type Run struct {
	ID           string
	Timestamp    time.Time
	Target       string
	Profile      string
	SourceCommit string
	FileCount    int
	TotalBytes   int64
	DurationMS   int64
	Status       string
}

// Store persists packaging runs in SQLite.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if needed) the history database at dbPath.
// Use ":memory:" for an in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		timestamp INTEGER NOT NULL,
		target TEXT NOT NULL,
		profile TEXT NOT NULL,
		source_commit TEXT,
		file_count INTEGER NOT NULL,
		total_bytes INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		status TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_target ON runs(target);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append records a run.
func (s *Store) Append(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, timestamp, target, profile, source_commit, file_count, total_bytes, duration_ms, status) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.Timestamp.Unix(), run.Target, run.Profile, run.SourceCommit,
		run.FileCount, run.TotalBytes, run.DurationMS, run.Status,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRecent returns up to limit runs, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, timestamp, target, profile, source_commit, file_count, total_bytes, duration_ms, status FROM runs ORDER BY timestamp DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var ts int64
		if err := rows.Scan(&run.ID, &ts, &run.Target, &run.Profile, &run.SourceCommit,
			&run.FileCount, &run.TotalBytes, &run.DurationMS, &run.Status); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Timestamp = time.Unix(ts, 0).UTC()
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
