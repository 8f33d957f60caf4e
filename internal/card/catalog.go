package card

import (
	"context"
	"sort"
	"sync"
)

// Filter narrows a catalog listing. Zero-value fields mean "all".
type Filter struct {
	Category string
	Tier     *DifficultyTier
}

// Matches reports whether the item passes the filter.
func (f Filter) Matches(it Item) bool {
	if f.Category != "" && it.Category != f.Category {
		return false
	}
	if f.Tier != nil && it.Tier != *f.Tier {
		return false
	}
	return true
}

// Catalog is the read-only vocabulary source consumed by the engine.
type Catalog interface {
	// Get returns the item with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (Item, error)

	// List returns all items matching the filter, ordered by ID.
	List(ctx context.Context, f Filter) ([]Item, error)
}

// MemoryCatalog is an in-memory Catalog, used in tests and by hosts
// that load their vocabulary from elsewhere.
type MemoryCatalog struct {
	mu    sync.RWMutex
	items map[string]Item
}

// NewMemoryCatalog creates a catalog seeded with the given items.
func NewMemoryCatalog(items ...Item) *MemoryCatalog {
	c := &MemoryCatalog{items: make(map[string]Item, len(items))}
	for _, it := range items {
		c.items[it.ID] = it
	}
	return c
}

// Put adds or replaces an item.
func (c *MemoryCatalog) Put(it Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[it.ID] = it
}

func (c *MemoryCatalog) Get(_ context.Context, id string) (Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	it, ok := c.items[id]
	if !ok {
		return Item{}, ErrNotFound
	}
	return it, nil
}

func (c *MemoryCatalog) List(_ context.Context, f Filter) ([]Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var result []Item
	for _, it := range c.items {
		if f.Matches(it) {
			result = append(result, it)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
