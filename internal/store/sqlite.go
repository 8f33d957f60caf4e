package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// SQLite is the canonical Adapter and card catalog backed by a single
// SQLite database.
type SQLite struct {
	db     *sqlx.DB
	seq    *sequenceCounter
	window int
}

// Open connects to the SQLite database at dsn, applies the recommended
// pragmas, and creates the schema if needed.
func Open(dsn string, cfg Config) (*SQLite, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db, seq: seq, window: cfg.window()}, nil
}

// DB returns the underlying *sqlx.DB for raw queries.
func (s *SQLite) DB() *sqlx.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// applyPragmas configures SQLite for single-learner performance.
func applyPragmas(db *sqlx.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

func migrate(db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id TEXT PRIMARY KEY,
			source_text TEXT NOT NULL,
			target_text TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			tier INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS card_progress (
			item_id TEXT PRIMARY KEY,
			ease REAL NOT NULL,
			interval_days INTEGER NOT NULL,
			repetitions INTEGER NOT NULL,
			last_reviewed_at TEXT NOT NULL DEFAULT '',
			due_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS failure_events (
			seq INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			kind TEXT NOT NULL,
			occurred_at TEXT NOT NULL,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			user_answer TEXT NOT NULL DEFAULT '',
			expected_answer TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_failure_events_item
			ON failure_events (item_id, seq DESC)`,
		`CREATE TABLE IF NOT EXISTS success_marks (
			seq INTEGER PRIMARY KEY,
			item_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			occurred_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_success_marks_item
			ON success_marks (item_id, seq DESC)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. WORDTRAIL_DB environment variable
// 2. $XDG_DATA_HOME/wordtrail/wordtrail.db
// 3. ~/.local/share/wordtrail/wordtrail.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("WORDTRAIL_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "wordtrail", "wordtrail.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
