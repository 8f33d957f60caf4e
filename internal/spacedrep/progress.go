package spacedrep

import (
	"fmt"
	"time"
)

// DefaultEase is the ease factor assigned to a card on first review.
const DefaultEase = 2.5

// MinEase is the floor below which the ease factor never drops.
const MinEase = 1.3

// Progress holds the spaced repetition state for a single item.
// Created lazily on first review and mutated only by ScheduleNext.
type Progress struct {
	ItemID         string    `json:"item_id"`
	Ease           float64   `json:"ease"`
	IntervalDays   int       `json:"interval_days"`
	Repetitions    int       `json:"repetitions"`
	LastReviewedAt time.Time `json:"last_reviewed_at"` // zero = never reviewed
	DueAt          time.Time `json:"due_at"`           // zero = due immediately
}

// NewProgress returns fresh-card state for an item.
func NewProgress(itemID string) Progress {
	return Progress{ItemID: itemID, Ease: DefaultEase}
}

// IsDue reports whether the item is due for review. An item that has
// never been scheduled is always due.
func (p Progress) IsDue(now time.Time) bool {
	if p.DueAt.IsZero() {
		return true
	}
	return !now.Before(p.DueAt)
}

// CorruptProgressError describes stored progress that violates the
// scheduler's invariants. It is repaired locally, not propagated.
type CorruptProgressError struct {
	ItemID string
	Reason string
}

func (e *CorruptProgressError) Error() string {
	return fmt.Sprintf("spacedrep: corrupt progress for %q: %s", e.ItemID, e.Reason)
}

// Validate checks the scheduler invariants on loaded progress.
// A nil return means the state is usable as-is.
func (p Progress) Validate() error {
	switch {
	case p.Ease < MinEase:
		return &CorruptProgressError{ItemID: p.ItemID, Reason: fmt.Sprintf("ease %.3f below minimum %.1f", p.Ease, MinEase)}
	case p.IntervalDays < 0:
		return &CorruptProgressError{ItemID: p.ItemID, Reason: fmt.Sprintf("negative interval %d", p.IntervalDays)}
	case p.Repetitions < 0:
		return &CorruptProgressError{ItemID: p.ItemID, Reason: fmt.Sprintf("negative repetition count %d", p.Repetitions)}
	case !p.LastReviewedAt.IsZero() && p.DueAt.IsZero():
		return &CorruptProgressError{ItemID: p.ItemID, Reason: "reviewed but never scheduled"}
	}
	return nil
}

// Repair resets invariant-violating progress to fresh-card state,
// keeping only the item identity. A corrupted local cache should not
// block review.
func Repair(p Progress) Progress {
	return NewProgress(p.ItemID)
}
