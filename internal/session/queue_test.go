package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/anikdas/wordtrail/internal/card"
	"github.com/anikdas/wordtrail/internal/spacedrep"
)

var qNow = time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

func itemPool(n int) []card.Item {
	items := make([]card.Item, n)
	for i := range items {
		items[i] = card.Item{ID: fmt.Sprintf("item-%02d", i)}
	}
	return items
}

func lookupFrom(progress map[string]spacedrep.Progress) ProgressLookup {
	return func(id string) (spacedrep.Progress, bool) {
		p, ok := progress[id]
		return p, ok
	}
}

func scheduled(id string, dueAt time.Time) spacedrep.Progress {
	return spacedrep.Progress{
		ItemID:         id,
		Ease:           spacedrep.DefaultEase,
		IntervalDays:   3,
		Repetitions:    2,
		LastReviewedAt: dueAt.AddDate(0, 0, -3),
		DueAt:          dueAt,
	}
}

func TestBuildQueue_NeverSeenItemsComeFirst(t *testing.T) {
	progress := map[string]spacedrep.Progress{
		"item-00": scheduled("item-00", qNow.AddDate(0, 0, -2)),
		"item-01": scheduled("item-01", qNow.AddDate(0, 0, -1)),
		// item-02 has no progress: brand new.
	}

	queue := BuildQueue(itemPool(3), lookupFrom(progress), 3, qNow, 1)
	want := []string{"item-02", "item-00", "item-01"}
	for i := range want {
		if queue[i] != want[i] {
			t.Fatalf("queue = %v, want %v", queue, want)
		}
	}
}

func TestBuildQueue_DueSortedByDueDate(t *testing.T) {
	progress := map[string]spacedrep.Progress{
		"item-00": scheduled("item-00", qNow.Add(-1*time.Hour)),
		"item-01": scheduled("item-01", qNow.AddDate(0, 0, -5)),
		"item-02": scheduled("item-02", qNow.AddDate(0, 0, -1)),
	}

	queue := BuildQueue(itemPool(3), lookupFrom(progress), 10, qNow, 1)
	want := []string{"item-01", "item-02", "item-00"}
	for i := range want {
		if queue[i] != want[i] {
			t.Fatalf("queue = %v, want %v", queue, want)
		}
	}
}

func TestBuildQueue_TruncatesAtMaxSize(t *testing.T) {
	queue := BuildQueue(itemPool(30), lookupFrom(nil), 10, qNow, 1)
	if len(queue) != 10 {
		t.Fatalf("len = %d, want 10", len(queue))
	}
}

func TestBuildQueue_NoDuplicates(t *testing.T) {
	pool := itemPool(25)
	// Duplicate IDs in the pool must not produce duplicate queue slots.
	pool = append(pool, pool[:5]...)

	queue := BuildQueue(pool, lookupFrom(nil), 40, qNow, 7)
	seen := make(map[string]bool)
	for _, id := range queue {
		if seen[id] {
			t.Fatalf("duplicate %q in queue", id)
		}
		seen[id] = true
	}
	if len(queue) != 25 {
		t.Fatalf("len = %d, want 25", len(queue))
	}
}

func TestBuildQueue_SmallPoolContainsEveryItemOnce(t *testing.T) {
	queue := BuildQueue(itemPool(4), lookupFrom(nil), 20, qNow, 3)
	if len(queue) != 4 {
		t.Fatalf("len = %d, want 4 (no padding)", len(queue))
	}
}

func TestBuildQueue_NotDueFillIsSeedDeterministic(t *testing.T) {
	progress := make(map[string]spacedrep.Progress)
	pool := itemPool(12)
	// Two items due, the rest scheduled well into the future.
	for i, it := range pool {
		if i < 2 {
			progress[it.ID] = scheduled(it.ID, qNow.AddDate(0, 0, -1))
		} else {
			progress[it.ID] = scheduled(it.ID, qNow.AddDate(0, 0, 10+i))
		}
	}

	first := BuildQueue(pool, lookupFrom(progress), 8, qNow, 42)
	if len(first) != 8 {
		t.Fatalf("len = %d, want 8", len(first))
	}

	same := BuildQueue(pool, lookupFrom(progress), 8, qNow, 42)
	for i := range first {
		if first[i] != same[i] {
			t.Fatalf("same seed diverged: %v vs %v", first, same)
		}
	}

	other := BuildQueue(pool, lookupFrom(progress), 8, qNow, 43)
	diverged := false
	for i := range first {
		if first[i] != other[i] {
			diverged = true
			break
		}
	}
	if !diverged {
		t.Error("different seeds produced identical not-due ordering")
	}

	// Due items are unaffected by the seed.
	if first[0] != "item-00" && first[0] != "item-01" {
		t.Errorf("queue head %q is not a due item", first[0])
	}
	if other[0] != first[0] || other[1] != first[1] {
		t.Errorf("seed changed the due prefix: %v vs %v", first[:2], other[:2])
	}
}

func TestBuildQueue_NotDueExcludedWhenDueFills(t *testing.T) {
	progress := make(map[string]spacedrep.Progress)
	pool := itemPool(10)
	for i, it := range pool {
		if i < 6 {
			progress[it.ID] = scheduled(it.ID, qNow.AddDate(0, 0, -1-i))
		} else {
			progress[it.ID] = scheduled(it.ID, qNow.AddDate(0, 0, 5))
		}
	}

	queue := BuildQueue(pool, lookupFrom(progress), 6, qNow, 1)
	for _, id := range queue {
		if progress[id].DueAt.After(qNow) {
			t.Fatalf("not-due item %q made the queue while due items remained", id)
		}
	}
}

func TestBuildQueue_DefaultMaxSize(t *testing.T) {
	queue := BuildQueue(itemPool(50), lookupFrom(nil), 0, qNow, 1)
	if len(queue) != DefaultMaxSize {
		t.Fatalf("len = %d, want default %d", len(queue), DefaultMaxSize)
	}
}
