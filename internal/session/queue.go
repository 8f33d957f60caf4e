// Package session builds bounded, duplicate-free review queues from due
// and new items.
package session

import (
	"math/rand"
	"sort"
	"time"

	"github.com/anikdas/wordtrail/internal/card"
	"github.com/anikdas/wordtrail/internal/spacedrep"
)

// DefaultMaxSize is the default queue length when the host does not
// specify one.
const DefaultMaxSize = 20

// ProgressLookup resolves an item's spacing state. The second return is
// false for items that have never been reviewed.
type ProgressLookup func(itemID string) (spacedrep.Progress, bool)

// BuildQueue composes an ordered review queue from the pool.
//
// Due items fill the queue first, earliest due date first; items with
// no progress sort ahead of everything (never-seen cards are the most
// urgent "new" work). If due items do not fill maxSize, the remainder
// is drawn from not-yet-due items in a seeded pseudo-random permutation,
// so a given (pool, seed) pair always builds the same queue. No item
// appears twice within a single build.
func BuildQueue(pool []card.Item, lookup ProgressLookup, maxSize int, now time.Time, seed int64) []string {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	type dueItem struct {
		id    string
		dueAt time.Time // zero = never scheduled
	}

	var due []dueItem
	var notDue []string
	seen := make(map[string]bool, len(pool))

	for _, it := range pool {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true

		p, ok := lookup(it.ID)
		if !ok {
			due = append(due, dueItem{id: it.ID})
			continue
		}
		if p.IsDue(now) {
			due = append(due, dueItem{id: it.ID, dueAt: p.DueAt})
		} else {
			notDue = append(notDue, it.ID)
		}
	}

	sort.Slice(due, func(i, j int) bool {
		a, b := due[i], due[j]
		if a.dueAt.IsZero() != b.dueAt.IsZero() {
			return a.dueAt.IsZero()
		}
		if !a.dueAt.Equal(b.dueAt) {
			return a.dueAt.Before(b.dueAt)
		}
		return a.id < b.id
	})

	queue := make([]string, 0, maxSize)
	for _, d := range due {
		if len(queue) == maxSize {
			return queue
		}
		queue = append(queue, d.id)
	}

	// Sort before shuffling so the permutation depends only on the
	// pool's membership and the seed, not on map or input order.
	sort.Strings(notDue)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(notDue), func(i, j int) {
		notDue[i], notDue[j] = notDue[j], notDue[i]
	})

	for _, id := range notDue {
		if len(queue) == maxSize {
			break
		}
		queue = append(queue, id)
	}
	return queue
}
