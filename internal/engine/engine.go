// Package engine is the host-facing surface of the review engine:
// queue building, outcome submission, mastery summaries, and attention
// lists, over an injected catalog and persistence adapter.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/anikdas/wordtrail/internal/attention"
	"github.com/anikdas/wordtrail/internal/card"
	"github.com/anikdas/wordtrail/internal/mastery"
	"github.com/anikdas/wordtrail/internal/session"
	"github.com/anikdas/wordtrail/internal/spacedrep"
	"github.com/anikdas/wordtrail/internal/store"
)

// ErrUnknownItem is returned when an operation references an item ID
// the catalog does not contain.
var ErrUnknownItem = errors.New("engine: unknown item")

// Config holds the engine's tuning knobs. Every constant a host might
// reasonably tune is here rather than buried in the packages.
type Config struct {
	QueueSize int
	Scheduler spacedrep.Config
	Mastery   mastery.Config
}

// DefaultConfig returns sensible defaults for the engine.
func DefaultConfig() Config {
	return Config{
		QueueSize: session.DefaultMaxSize,
		Scheduler: spacedrep.DefaultConfig(),
		Mastery:   mastery.DefaultConfig(),
	}
}

// Engine composes the scheduler, aggregator, selector, and queue
// builder behind the interface hosts call. One instance per learner
// store; there are no package-level singletons.
type Engine struct {
	catalog  card.Catalog
	adapter  store.Adapter
	agg      *mastery.Aggregator
	selector *attention.Selector
	cfg      Config
	log      *zap.Logger

	// Overridable for deterministic tests.
	now  func() time.Time
	seed func() int64
}

// New creates an engine over the given catalog and adapter. A nil
// logger disables logging.
func New(catalog card.Catalog, adapter store.Adapter, cfg Config, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = session.DefaultMaxSize
	}

	agg, err := mastery.NewAggregator(adapter, cfg.Mastery)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}

	return &Engine{
		catalog:  catalog,
		adapter:  adapter,
		agg:      agg,
		selector: attention.NewSelector(agg),
		cfg:      cfg,
		log:      log,
		now:      time.Now,
		seed:     func() int64 { return time.Now().UnixNano() },
	}, nil
}

// QueueFilter narrows which catalog items a queue draws from.
type QueueFilter struct {
	Category string
	Tier     *card.DifficultyTier
}

// NextQueue builds a bounded, duplicate-free batch of item IDs for
// review: due and never-seen items first, then a seeded random sample
// of everything else. maxSize <= 0 uses the configured queue size.
func (e *Engine) NextQueue(ctx context.Context, f QueueFilter, maxSize int) ([]string, error) {
	if maxSize <= 0 {
		maxSize = e.cfg.QueueSize
	}

	pool, err := e.catalog.List(ctx, card.Filter{Category: f.Category, Tier: f.Tier})
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}

	progress := make(map[string]spacedrep.Progress, len(pool))
	for _, it := range pool {
		p, ok, err := e.adapter.LoadProgress(ctx, it.ID)
		if err != nil {
			return nil, fmt.Errorf("load progress: %w", err)
		}
		if !ok {
			continue
		}
		progress[it.ID] = e.repaired(p)
	}

	lookup := func(id string) (spacedrep.Progress, bool) {
		p, ok := progress[id]
		return p, ok
	}
	return session.BuildQueue(pool, lookup, maxSize, e.now(), e.seed()), nil
}

// Outcome describes one answered review.
type Outcome struct {
	ItemID         string
	Mode           mastery.ModeContext
	Rating         spacedrep.Rating
	Correct        bool
	Kind           mastery.ErrorKind // required when Correct is false
	LatencyMs      int
	UserAnswer     string
	ExpectedAnswer string
}

// SubmitOutcome applies a review outcome: the spacing update always,
// plus a failure event or success marker depending on correctness.
//
// The event is appended before the progress write, so a failed save
// never yields a card that looks reviewed with its failure uncounted.
// If the save itself fails the host keeps the returned error and
// retries out of band; the in-memory session can continue.
func (e *Engine) SubmitOutcome(ctx context.Context, o Outcome) error {
	if !o.Rating.Valid() {
		return spacedrep.ErrInvalidRating
	}
	if !o.Mode.Valid() {
		return fmt.Errorf("engine: unknown mode context %q", o.Mode)
	}

	if _, err := e.catalog.Get(ctx, o.ItemID); err != nil {
		if errors.Is(err, card.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrUnknownItem, o.ItemID)
		}
		return fmt.Errorf("get item: %w", err)
	}

	now := e.now()

	p, err := e.loadOrFresh(ctx, o.ItemID)
	if err != nil {
		return err
	}

	next, err := spacedrep.ScheduleNext(p, o.Rating, now, e.cfg.Scheduler)
	if err != nil {
		return err
	}

	if o.Correct {
		if err := e.agg.RecordSuccess(ctx, o.ItemID, o.Mode, now); err != nil {
			return err
		}
	} else {
		ev := mastery.FailureEvent{
			ItemID:         o.ItemID,
			Mode:           o.Mode,
			Kind:           o.Kind,
			OccurredAt:     now,
			LatencyMs:      o.LatencyMs,
			UserAnswer:     o.UserAnswer,
			ExpectedAnswer: o.ExpectedAnswer,
		}
		if err := e.agg.RecordFailure(ctx, ev); err != nil {
			return err
		}
	}

	if err := e.adapter.SaveProgress(ctx, next); err != nil {
		e.log.Warn("progress save failed, review continues in memory",
			zap.String("item_id", o.ItemID), zap.Error(err))
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// MasterySummary returns the analytics roll-up for a single item.
func (e *Engine) MasterySummary(ctx context.Context, itemID string) (mastery.Summary, error) {
	if _, err := e.catalog.Get(ctx, itemID); err != nil {
		if errors.Is(err, card.ErrNotFound) {
			return mastery.Summary{}, fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
		}
		return mastery.Summary{}, fmt.Errorf("get item: %w", err)
	}
	return e.agg.Summarize(ctx, itemID, e.now())
}

// FailureHistory returns an item's recent failures, newest first.
func (e *Engine) FailureHistory(ctx context.Context, itemID string, limit int) ([]mastery.FailureEvent, error) {
	return e.agg.History(ctx, itemID, limit)
}

// AttentionList returns the ranked items needing attention, per the
// filter and sort key.
func (e *Engine) AttentionList(ctx context.Context, f attention.Filter, key attention.SortKey) ([]attention.Entry, error) {
	pool, err := e.catalog.List(ctx, card.Filter{Category: f.Category})
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	return e.selector.Select(ctx, pool, f, key, e.now())
}

// Progress returns the current spacing state for an item, repaired if
// the stored copy violated invariants. The bool is false for items
// never reviewed.
func (e *Engine) Progress(ctx context.Context, itemID string) (spacedrep.Progress, bool, error) {
	p, ok, err := e.adapter.LoadProgress(ctx, itemID)
	if err != nil || !ok {
		return spacedrep.Progress{}, ok, err
	}
	return e.repaired(p), true, nil
}

// loadOrFresh loads the item's progress, falling back to fresh-card
// state for never-reviewed items and repairing corrupt state locally.
func (e *Engine) loadOrFresh(ctx context.Context, itemID string) (spacedrep.Progress, error) {
	p, ok, err := e.adapter.LoadProgress(ctx, itemID)
	if err != nil {
		return spacedrep.Progress{}, fmt.Errorf("load progress: %w", err)
	}
	if !ok {
		return spacedrep.NewProgress(itemID), nil
	}
	return e.repaired(p), nil
}

// repaired resets invariant-violating progress to fresh-card state.
// A corrupted local cache should not block review.
func (e *Engine) repaired(p spacedrep.Progress) spacedrep.Progress {
	if err := p.Validate(); err != nil {
		e.log.Warn("corrupt progress reset to fresh state",
			zap.String("item_id", p.ItemID), zap.Error(err))
		return spacedrep.Repair(p)
	}
	return p
}
