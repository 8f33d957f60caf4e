package mastery

import (
	"context"
	"testing"
	"time"
)

// memLog is a minimal in-memory EventLog for tests, newest first on read.
type memLog struct {
	failures  map[string][]FailureEvent
	successes map[string][]SuccessMark
}

func newMemLog() *memLog {
	return &memLog{
		failures:  make(map[string][]FailureEvent),
		successes: make(map[string][]SuccessMark),
	}
}

func (l *memLog) AppendFailure(_ context.Context, ev FailureEvent) error {
	l.failures[ev.ItemID] = append([]FailureEvent{ev}, l.failures[ev.ItemID]...)
	return nil
}

func (l *memLog) AppendSuccess(_ context.Context, m SuccessMark) error {
	l.successes[m.ItemID] = append([]SuccessMark{m}, l.successes[m.ItemID]...)
	return nil
}

func (l *memLog) Failures(_ context.Context, itemID string, limit int) ([]FailureEvent, error) {
	events := l.failures[itemID]
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}

func (l *memLog) Successes(_ context.Context, itemID string, limit int) ([]SuccessMark, error) {
	marks := l.successes[itemID]
	if limit > 0 && len(marks) > limit {
		marks = marks[:limit]
	}
	return marks, nil
}

var aggNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestAggregator(t *testing.T) (*Aggregator, *memLog) {
	t.Helper()
	log := newMemLog()
	agg, err := NewAggregator(log, DefaultConfig())
	if err != nil {
		t.Fatalf("new aggregator: %v", err)
	}
	return agg, log
}

func failure(itemID string, at time.Time) FailureEvent {
	return FailureEvent{
		ItemID:         itemID,
		Mode:           ModeFlashcard,
		Kind:           KindRecall,
		OccurredAt:     at,
		LatencyMs:      1500,
		UserAnswer:     "gato",
		ExpectedAnswer: "perro",
	}
}

func TestRecentFailuresYieldStruggling(t *testing.T) {
	agg, _ := newTestAggregator(t)
	ctx := context.Background()

	// Five failures within the last 3 days across two modes.
	for i := 0; i < 5; i++ {
		ev := failure("item-x", aggNow.Add(-time.Duration(i*12)*time.Hour))
		if i%2 == 1 {
			ev.Mode = ModeTypeRecall
		}
		if err := agg.RecordFailure(ctx, ev); err != nil {
			t.Fatalf("record failure %d: %v", i, err)
		}
	}

	level, err := agg.Level(ctx, "item-x", aggNow)
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	if level != LevelStruggling {
		t.Errorf("level = %v, want struggling", level)
	}
}

func TestNoHistoryIsMastered(t *testing.T) {
	agg, _ := newTestAggregator(t)

	s, err := agg.Summarize(context.Background(), "untouched", aggNow)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if s.Level != LevelMastered {
		t.Errorf("level = %v, want mastered", s.Level)
	}
	if s.FailureCount != 0 || !s.LastFailureAt.IsZero() {
		t.Errorf("summary = %+v, want empty history", s)
	}
}

func TestLevelIsDeterministic(t *testing.T) {
	agg, _ := newTestAggregator(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := agg.RecordFailure(ctx, failure("item-x", aggNow.AddDate(0, 0, -i))); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	first, err := agg.Level(ctx, "item-x", aggNow)
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := agg.Level(ctx, "item-x", aggNow)
		if err != nil {
			t.Fatalf("level: %v", err)
		}
		if again != first {
			t.Fatalf("level changed without new events: %v -> %v", first, again)
		}
	}
}

func TestLevelsRecoverMonotonicallyOverTime(t *testing.T) {
	agg, _ := newTestAggregator(t)
	ctx := context.Background()

	base := aggNow
	for i := 0; i < 6; i++ {
		if err := agg.RecordFailure(ctx, failure("item-x", base)); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	// With no new failures the decayed score only shrinks, so the level
	// rank must never move back toward struggling.
	prevRank := -1
	for day := 0; day <= 120; day += 5 {
		level, err := agg.Level(ctx, "item-x", base.AddDate(0, 0, day))
		if err != nil {
			t.Fatalf("level at day %d: %v", day, err)
		}
		if level.Rank() < prevRank {
			t.Fatalf("level regressed at day %d: rank %d -> %d", day, prevRank, level.Rank())
		}
		prevRank = level.Rank()
	}
	if prevRank != LevelMastered.Rank() {
		t.Errorf("after 120 quiet days rank = %d, want mastered", prevRank)
	}
}

func TestNewFailurePushesLevelBack(t *testing.T) {
	agg, _ := newTestAggregator(t)
	ctx := context.Background()

	if err := agg.RecordFailure(ctx, failure("item-x", aggNow.AddDate(0, 0, -60))); err != nil {
		t.Fatalf("record: %v", err)
	}
	before, err := agg.Level(ctx, "item-x", aggNow)
	if err != nil {
		t.Fatalf("level: %v", err)
	}

	for i := 0; i < 4; i++ {
		if err := agg.RecordFailure(ctx, failure("item-x", aggNow)); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	after, err := agg.Level(ctx, "item-x", aggNow)
	if err != nil {
		t.Fatalf("level: %v", err)
	}
	if after.Rank() >= before.Rank() {
		t.Errorf("fresh failures did not lower level: %v -> %v", before, after)
	}
}

func TestSuccessMarksAccelerateRecovery(t *testing.T) {
	log := newMemLog()
	agg, err := NewAggregator(log, DefaultConfig())
	if err != nil {
		t.Fatalf("new aggregator: %v", err)
	}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := agg.RecordFailure(ctx, failure("item-x", aggNow.AddDate(0, 0, -1))); err != nil {
			t.Fatalf("record failure: %v", err)
		}
	}
	withoutSuccess, err := agg.Summarize(ctx, "item-x", aggNow)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	for i := 0; i < 4; i++ {
		if err := agg.RecordSuccess(ctx, "item-x", ModeFlashcard, aggNow); err != nil {
			t.Fatalf("record success: %v", err)
		}
	}
	withSuccess, err := agg.Summarize(ctx, "item-x", aggNow)
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}

	if withSuccess.Score >= withoutSuccess.Score {
		t.Errorf("score did not drop after successes: %v -> %v", withoutSuccess.Score, withSuccess.Score)
	}
	if withSuccess.FailureCount != withoutSuccess.FailureCount {
		t.Errorf("success marks removed failure events: %d -> %d", withoutSuccess.FailureCount, withSuccess.FailureCount)
	}
}

func TestScoreNeverNegative(t *testing.T) {
	cfg := DefaultConfig()
	marks := []SuccessMark{
		{ItemID: "x", Mode: ModeFlashcard, OccurredAt: aggNow},
		{ItemID: "x", Mode: ModeFlashcard, OccurredAt: aggNow},
	}
	if got := Score(nil, marks, aggNow, cfg); got != 0 {
		t.Errorf("Score = %v, want 0 floor", got)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	agg, _ := newTestAggregator(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if err := agg.RecordFailure(ctx, failure("item-x", aggNow.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	events, err := agg.History(ctx, "item-x", 3)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("len = %d, want 3", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].OccurredAt.After(events[i-1].OccurredAt) {
			t.Fatalf("history not newest first at %d", i)
		}
	}
}

func TestRecordFailureAssignsID(t *testing.T) {
	agg, log := newTestAggregator(t)

	if err := agg.RecordFailure(context.Background(), failure("item-x", aggNow)); err != nil {
		t.Fatalf("record: %v", err)
	}
	if got := log.failures["item-x"][0].ID; got == "" {
		t.Error("event ID not assigned")
	}
}

func TestRecordFailureRejectsOpenEnums(t *testing.T) {
	agg, _ := newTestAggregator(t)
	ctx := context.Background()

	ev := failure("item-x", aggNow)
	ev.Mode = ModeContext("karaoke")
	if err := agg.RecordFailure(ctx, ev); err == nil {
		t.Error("expected error for unknown mode context")
	}

	ev = failure("item-x", aggNow)
	ev.Kind = ErrorKind("vibes")
	if err := agg.RecordFailure(ctx, ev); err == nil {
		t.Error("expected error for unknown error kind")
	}
}

func TestLevelForScoreMonotonic(t *testing.T) {
	th := DefaultConfig().Thresholds

	// Rank must be non-increasing as the score grows.
	last := LevelMastered.Rank()
	for score := 0.0; score < 10; score += 0.1 {
		rank := LevelForScore(score, th).Rank()
		if rank > last {
			t.Fatalf("level rank rose with score at %v", score)
		}
		last = rank
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero half-life", func(c *Config) { c.HalfLifeDays = 0 }},
		{"zero window", func(c *Config) { c.EventWindow = 0 }},
		{"negative credit", func(c *Config) { c.SuccessCredit = -1 }},
		{"unordered thresholds", func(c *Config) { c.Thresholds = Thresholds{Learning: 3, Challenging: 2, Struggling: 1} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if _, err := NewAggregator(newMemLog(), cfg); err == nil {
				t.Error("expected config validation error")
			}
		})
	}
}
