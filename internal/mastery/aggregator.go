package mastery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventLog is the slice of the persistence adapter the aggregator
// needs: append-only failure/success history per item, most recent
// first on read.
type EventLog interface {
	AppendFailure(ctx context.Context, ev FailureEvent) error
	AppendSuccess(ctx context.Context, m SuccessMark) error
	Failures(ctx context.Context, itemID string, limit int) ([]FailureEvent, error)
	Successes(ctx context.Context, itemID string, limit int) ([]SuccessMark, error)
}

// Summary is the per-item analytics roll-up exposed to hosts.
type Summary struct {
	ItemID        string
	Level         Level
	Score         float64
	FailureCount  int
	LastFailureAt time.Time // zero when no failures are on record
}

// Aggregator records failure/success events and derives mastery levels.
// It is constructed with an injected event log; there is no package
// state, so two aggregators never share history by accident.
type Aggregator struct {
	log EventLog
	cfg Config

	// Memoizes Level computations. Strictly a cache: keyed by the
	// last-seen event time and the exact query time, invalidated on
	// every recorded event. Never consulted across differing clocks.
	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	lastEventAt time.Time
	at          time.Time
	score       float64
	level       Level
}

// NewAggregator creates an aggregator over the given event log.
func NewAggregator(log EventLog, cfg Config) (*Aggregator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Aggregator{
		log:   log,
		cfg:   cfg,
		cache: make(map[string]cacheEntry),
	}, nil
}

// Config returns the aggregator's configuration.
func (a *Aggregator) Config() Config { return a.cfg }

// RecordFailure appends a failure event and invalidates any cached
// mastery value for the item. The event ID is assigned here if empty.
func (a *Aggregator) RecordFailure(ctx context.Context, ev FailureEvent) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if err := ev.Validate(); err != nil {
		return err
	}
	if err := a.log.AppendFailure(ctx, ev); err != nil {
		return fmt.Errorf("append failure event: %w", err)
	}
	a.invalidate(ev.ItemID)
	return nil
}

// RecordSuccess appends a success marker for the item. Success markers
// only speed up the decay of prior failures; they never remove events.
func (a *Aggregator) RecordSuccess(ctx context.Context, itemID string, mode ModeContext, now time.Time) error {
	if !mode.Valid() {
		return fmt.Errorf("mastery: unknown mode context %q", mode)
	}
	m := SuccessMark{ItemID: itemID, Mode: mode, OccurredAt: now}
	if err := a.log.AppendSuccess(ctx, m); err != nil {
		return fmt.Errorf("append success mark: %w", err)
	}
	a.invalidate(itemID)
	return nil
}

// Level derives the item's current mastery level from its recent event
// history. Read-only: identical history and now always yield the
// identical level.
func (a *Aggregator) Level(ctx context.Context, itemID string, now time.Time) (Level, error) {
	s, err := a.Summarize(ctx, itemID, now)
	if err != nil {
		return "", err
	}
	return s.Level, nil
}

// Summarize computes the full analytics summary for an item.
func (a *Aggregator) Summarize(ctx context.Context, itemID string, now time.Time) (Summary, error) {
	failures, err := a.log.Failures(ctx, itemID, a.cfg.EventWindow)
	if err != nil {
		return Summary{}, fmt.Errorf("load failure events: %w", err)
	}

	s := Summary{ItemID: itemID, FailureCount: len(failures)}
	if len(failures) > 0 {
		s.LastFailureAt = failures[0].OccurredAt
	}

	if level, score, ok := a.cached(itemID, s.LastFailureAt, now); ok {
		s.Level = level
		s.Score = score
		return s, nil
	}

	successes, err := a.log.Successes(ctx, itemID, a.cfg.EventWindow)
	if err != nil {
		return Summary{}, fmt.Errorf("load success marks: %w", err)
	}

	s.Score = Score(failures, successes, now, a.cfg)
	s.Level = LevelForScore(s.Score, a.cfg.Thresholds)
	a.store(itemID, s.LastFailureAt, now, s.Score, s.Level)
	return s, nil
}

// History returns the item's most recent failure events, newest first.
// limit <= 0 means the full retained window.
func (a *Aggregator) History(ctx context.Context, itemID string, limit int) ([]FailureEvent, error) {
	if limit <= 0 || limit > a.cfg.EventWindow {
		limit = a.cfg.EventWindow
	}
	events, err := a.log.Failures(ctx, itemID, limit)
	if err != nil {
		return nil, fmt.Errorf("load failure events: %w", err)
	}
	return events, nil
}

func (a *Aggregator) invalidate(itemID string) {
	a.mu.Lock()
	delete(a.cache, itemID)
	a.mu.Unlock()
}

func (a *Aggregator) cached(itemID string, lastEventAt, now time.Time) (Level, float64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	e, ok := a.cache[itemID]
	if !ok || !e.lastEventAt.Equal(lastEventAt) || !e.at.Equal(now) {
		return "", 0, false
	}
	return e.level, e.score, true
}

func (a *Aggregator) store(itemID string, lastEventAt, now time.Time, score float64, level Level) {
	a.mu.Lock()
	a.cache[itemID] = cacheEntry{lastEventAt: lastEventAt, at: now, score: score, level: level}
	a.mu.Unlock()
}
