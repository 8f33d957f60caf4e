package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/anikdas/wordtrail/internal/spacedrep"
)

type progressRow struct {
	ItemID         string  `db:"item_id"`
	Ease           float64 `db:"ease"`
	IntervalDays   int     `db:"interval_days"`
	Repetitions    int     `db:"repetitions"`
	LastReviewedAt string  `db:"last_reviewed_at"`
	DueAt          string  `db:"due_at"`
}

func (s *SQLite) LoadProgress(ctx context.Context, itemID string) (spacedrep.Progress, bool, error) {
	var row progressRow
	err := s.db.GetContext(ctx, &row,
		`SELECT item_id, ease, interval_days, repetitions, last_reviewed_at, due_at
		 FROM card_progress WHERE item_id = ?`, itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return spacedrep.Progress{}, false, nil
	}
	if err != nil {
		return spacedrep.Progress{}, false, fmt.Errorf("load progress %s: %w", itemID, err)
	}

	p := spacedrep.Progress{
		ItemID:       row.ItemID,
		Ease:         row.Ease,
		IntervalDays: row.IntervalDays,
		Repetitions:  row.Repetitions,
	}
	if p.LastReviewedAt, err = parseTime(row.LastReviewedAt); err != nil {
		return spacedrep.Progress{}, false, fmt.Errorf("load progress %s: %w", itemID, err)
	}
	if p.DueAt, err = parseTime(row.DueAt); err != nil {
		return spacedrep.Progress{}, false, fmt.Errorf("load progress %s: %w", itemID, err)
	}
	return p, true, nil
}

func (s *SQLite) SaveProgress(ctx context.Context, p spacedrep.Progress) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO card_progress (item_id, ease, interval_days, repetitions, last_reviewed_at, due_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (item_id) DO UPDATE SET
			ease = excluded.ease,
			interval_days = excluded.interval_days,
			repetitions = excluded.repetitions,
			last_reviewed_at = excluded.last_reviewed_at,
			due_at = excluded.due_at`,
		p.ItemID, p.Ease, p.IntervalDays, p.Repetitions,
		formatTime(p.LastReviewedAt), formatTime(p.DueAt))
	if err != nil {
		return fmt.Errorf("save progress %s: %w", p.ItemID, err)
	}
	return nil
}

// formatTime renders a timestamp for storage; the zero time becomes the
// empty string so "never" survives the round trip.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse stored timestamp %q: %w", s, err)
	}
	return t, nil
}
