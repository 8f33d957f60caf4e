// Package store provides the persistence adapter for card progress and
// failure analytics: one interface, one canonical SQLite implementation,
// and an in-memory implementation for tests and embedding hosts.
package store

import (
	"context"

	"github.com/anikdas/wordtrail/internal/mastery"
	"github.com/anikdas/wordtrail/internal/spacedrep"
)

// Adapter is the engine's only I/O boundary. Implementations must keep
// event reads newest first and bound each item's failure log to the
// configured window. Timestamps are normalized to UTC on save.
//
// The engine does not retry adapter failures; retry and backoff policy
// belongs to the host's I/O layer.
type Adapter interface {
	// LoadProgress returns the item's spacing state. The bool is false
	// when the item has never been reviewed.
	LoadProgress(ctx context.Context, itemID string) (spacedrep.Progress, bool, error)

	// SaveProgress inserts or replaces the item's spacing state.
	SaveProgress(ctx context.Context, p spacedrep.Progress) error

	// AppendFailure appends a failure event and prunes the item's log
	// to the retention window.
	AppendFailure(ctx context.Context, ev mastery.FailureEvent) error

	// AppendSuccess appends a lightweight success marker.
	AppendSuccess(ctx context.Context, m mastery.SuccessMark) error

	// Failures returns the item's most recent failure events, newest
	// first. limit <= 0 means the full retained window.
	Failures(ctx context.Context, itemID string, limit int) ([]mastery.FailureEvent, error)

	// Successes returns the item's most recent success marks, newest
	// first. limit <= 0 means the full retained window.
	Successes(ctx context.Context, itemID string, limit int) ([]mastery.SuccessMark, error)
}

// Config holds store retention settings.
type Config struct {
	// EventWindow bounds how many failure events and success marks are
	// retained per item.
	EventWindow int
}

// DefaultConfig returns sensible retention defaults.
func DefaultConfig() Config {
	return Config{EventWindow: mastery.DefaultEventWindow}
}

func (c Config) window() int {
	if c.EventWindow <= 0 {
		return mastery.DefaultEventWindow
	}
	return c.EventWindow
}
