// Package attention ranks vocabulary items that need the learner's
// attention, joining the card catalog with per-item failure analytics.
package attention

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/anikdas/wordtrail/internal/card"
	"github.com/anikdas/wordtrail/internal/mastery"
)

// SortKey selects the ranking criterion for attention lists.
type SortKey string

const (
	SortFailureCount SortKey = "failure-count"
	SortLastFailure  SortKey = "last-failure"
	SortMode         SortKey = "mode"
	SortMastery      SortKey = "mastery"
)

// Valid reports whether k is one of the defined sort keys.
func (k SortKey) Valid() bool {
	switch k {
	case SortFailureCount, SortLastFailure, SortMode, SortMastery:
		return true
	}
	return false
}

// Filter narrows the attention list. Zero-value fields mean "all".
type Filter struct {
	Category string
	Level    mastery.Level // empty = all levels
}

// Entry is one ranked row of the attention list.
type Entry struct {
	Item          card.Item
	Level         mastery.Level
	Score         float64
	FailureCount  int
	LastFailureAt time.Time
	LastMode      mastery.ModeContext // mode of the most recent failure
}

// Selector builds ranked attention lists from a pool of items.
type Selector struct {
	agg *mastery.Aggregator
}

// NewSelector creates a selector over the given aggregator.
func NewSelector(agg *mastery.Aggregator) *Selector {
	return &Selector{agg: agg}
}

// Select filters and ranks the pool. The result is a finite, restartable
// slice: identical inputs always produce the identical ordering, with
// ties broken by item ID ascending.
func (s *Selector) Select(ctx context.Context, pool []card.Item, f Filter, key SortKey, now time.Time) ([]Entry, error) {
	if !key.Valid() {
		return nil, fmt.Errorf("attention: unknown sort key %q", key)
	}
	if f.Level != "" && !f.Level.Valid() {
		return nil, fmt.Errorf("attention: unknown mastery level %q", f.Level)
	}

	var entries []Entry
	for _, it := range pool {
		if f.Category != "" && it.Category != f.Category {
			continue
		}

		sum, err := s.agg.Summarize(ctx, it.ID, now)
		if err != nil {
			return nil, fmt.Errorf("summarize %s: %w", it.ID, err)
		}
		if f.Level != "" && sum.Level != f.Level {
			continue
		}

		e := Entry{
			Item:          it,
			Level:         sum.Level,
			Score:         sum.Score,
			FailureCount:  sum.FailureCount,
			LastFailureAt: sum.LastFailureAt,
		}
		if sum.FailureCount > 0 {
			recent, err := s.agg.History(ctx, it.ID, 1)
			if err != nil {
				return nil, fmt.Errorf("history %s: %w", it.ID, err)
			}
			if len(recent) > 0 {
				e.LastMode = recent[0].Mode
			}
		}
		entries = append(entries, e)
	}

	sortEntries(entries, key)
	return entries, nil
}

// sortEntries orders the list by the chosen key, most attention-worthy
// first, with the item ID as the deterministic tiebreaker.
func sortEntries(entries []Entry, key SortKey) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch key {
		case SortFailureCount:
			if a.FailureCount != b.FailureCount {
				return a.FailureCount > b.FailureCount
			}
		case SortLastFailure:
			if !a.LastFailureAt.Equal(b.LastFailureAt) {
				return a.LastFailureAt.After(b.LastFailureAt)
			}
		case SortMode:
			if a.LastMode != b.LastMode {
				return a.LastMode < b.LastMode
			}
		case SortMastery:
			if a.Level.Rank() != b.Level.Rank() {
				return a.Level.Rank() < b.Level.Rank()
			}
		}
		return a.Item.ID < b.Item.ID
	})
}
