package store

import (
	"context"
	"sync"

	"github.com/anikdas/wordtrail/internal/mastery"
	"github.com/anikdas/wordtrail/internal/spacedrep"
)

// Memory is an in-memory Adapter for tests and hosts that persist
// elsewhere. It applies the same retention window as the SQLite store.
type Memory struct {
	mu        sync.RWMutex
	window    int
	progress  map[string]spacedrep.Progress
	failures  map[string][]mastery.FailureEvent // newest first
	successes map[string][]mastery.SuccessMark  // newest first
}

// NewMemory creates an empty in-memory adapter.
func NewMemory(cfg Config) *Memory {
	return &Memory{
		window:    cfg.window(),
		progress:  make(map[string]spacedrep.Progress),
		failures:  make(map[string][]mastery.FailureEvent),
		successes: make(map[string][]mastery.SuccessMark),
	}
}

func (m *Memory) LoadProgress(_ context.Context, itemID string) (spacedrep.Progress, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.progress[itemID]
	return p, ok, nil
}

func (m *Memory) SaveProgress(_ context.Context, p spacedrep.Progress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress[p.ItemID] = p
	return nil
}

func (m *Memory) AppendFailure(_ context.Context, ev mastery.FailureEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	log := append([]mastery.FailureEvent{ev}, m.failures[ev.ItemID]...)
	if len(log) > m.window {
		log = log[:m.window]
	}
	m.failures[ev.ItemID] = log
	return nil
}

func (m *Memory) AppendSuccess(_ context.Context, mark mastery.SuccessMark) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	log := append([]mastery.SuccessMark{mark}, m.successes[mark.ItemID]...)
	if len(log) > m.window {
		log = log[:m.window]
	}
	m.successes[mark.ItemID] = log
	return nil
}

func (m *Memory) Failures(_ context.Context, itemID string, limit int) ([]mastery.FailureEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	log := m.failures[itemID]
	if limit <= 0 || limit > len(log) {
		limit = len(log)
	}
	out := make([]mastery.FailureEvent, limit)
	copy(out, log[:limit])
	return out, nil
}

func (m *Memory) Successes(_ context.Context, itemID string, limit int) ([]mastery.SuccessMark, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	log := m.successes[itemID]
	if limit <= 0 || limit > len(log) {
		limit = len(log)
	}
	out := make([]mastery.SuccessMark, limit)
	copy(out, log[:limit])
	return out, nil
}
