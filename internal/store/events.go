package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/anikdas/wordtrail/internal/mastery"
)

// sequenceCounter assigns a single increasing sequence number to every
// event regardless of table. Per-table auto-increment IDs can't order
// failure events against success marks, and the mastery score depends
// on both logs reading back in true append order.
//
// The mutex serializes within the process; the RETURNING clause makes
// the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sqlx.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sqlx.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

type failureRow struct {
	Seq            int64  `db:"seq"`
	ID             string `db:"id"`
	ItemID         string `db:"item_id"`
	Mode           string `db:"mode"`
	Kind           string `db:"kind"`
	OccurredAt     string `db:"occurred_at"`
	LatencyMs      int    `db:"latency_ms"`
	UserAnswer     string `db:"user_answer"`
	ExpectedAnswer string `db:"expected_answer"`
}

type successRow struct {
	Seq        int64  `db:"seq"`
	ItemID     string `db:"item_id"`
	Mode       string `db:"mode"`
	OccurredAt string `db:"occurred_at"`
}

func (s *SQLite) AppendFailure(ctx context.Context, ev mastery.FailureEvent) error {
	seq, err := s.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO failure_events (seq, id, item_id, mode, kind, occurred_at, latency_ms, user_answer, expected_answer)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seq, ev.ID, ev.ItemID, string(ev.Mode), string(ev.Kind),
		formatTime(ev.OccurredAt), ev.LatencyMs, ev.UserAnswer, ev.ExpectedAnswer)
	if err != nil {
		return fmt.Errorf("append failure event: %w", err)
	}

	return s.prune(ctx, "failure_events", ev.ItemID)
}

func (s *SQLite) AppendSuccess(ctx context.Context, m mastery.SuccessMark) error {
	seq, err := s.seq.Next(ctx)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO success_marks (seq, item_id, mode, occurred_at) VALUES (?, ?, ?, ?)`,
		seq, m.ItemID, string(m.Mode), formatTime(m.OccurredAt))
	if err != nil {
		return fmt.Errorf("append success mark: %w", err)
	}

	return s.prune(ctx, "success_marks", m.ItemID)
}

// prune trims an item's log to the retention window, dropping the
// oldest rows first.
func (s *SQLite) prune(ctx context.Context, table, itemID string) error {
	query := fmt.Sprintf(
		`DELETE FROM %s WHERE item_id = ? AND seq NOT IN (
			SELECT seq FROM %s WHERE item_id = ? ORDER BY seq DESC LIMIT ?
		)`, table, table)
	if _, err := s.db.ExecContext(ctx, query, itemID, itemID, s.window); err != nil {
		return fmt.Errorf("prune %s for %s: %w", table, itemID, err)
	}
	return nil
}

func (s *SQLite) Failures(ctx context.Context, itemID string, limit int) ([]mastery.FailureEvent, error) {
	if limit <= 0 || limit > s.window {
		limit = s.window
	}

	var rows []failureRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT seq, id, item_id, mode, kind, occurred_at, latency_ms, user_answer, expected_answer
		 FROM failure_events WHERE item_id = ? ORDER BY seq DESC LIMIT ?`, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("query failure events %s: %w", itemID, err)
	}

	events := make([]mastery.FailureEvent, 0, len(rows))
	for _, row := range rows {
		at, err := parseTime(row.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("failure event %s: %w", row.ID, err)
		}
		events = append(events, mastery.FailureEvent{
			ID:             row.ID,
			ItemID:         row.ItemID,
			Mode:           mastery.ModeContext(row.Mode),
			Kind:           mastery.ErrorKind(row.Kind),
			OccurredAt:     at,
			LatencyMs:      row.LatencyMs,
			UserAnswer:     row.UserAnswer,
			ExpectedAnswer: row.ExpectedAnswer,
		})
	}
	return events, nil
}

func (s *SQLite) Successes(ctx context.Context, itemID string, limit int) ([]mastery.SuccessMark, error) {
	if limit <= 0 || limit > s.window {
		limit = s.window
	}

	var rows []successRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT seq, item_id, mode, occurred_at
		 FROM success_marks WHERE item_id = ? ORDER BY seq DESC LIMIT ?`, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("query success marks %s: %w", itemID, err)
	}

	marks := make([]mastery.SuccessMark, 0, len(rows))
	for _, row := range rows {
		at, err := parseTime(row.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("success mark for %s: %w", row.ItemID, err)
		}
		marks = append(marks, mastery.SuccessMark{
			ItemID:     row.ItemID,
			Mode:       mastery.ModeContext(row.Mode),
			OccurredAt: at,
		})
	}
	return marks, nil
}
