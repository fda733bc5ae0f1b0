// Package suggest proposes corrections for invalid node types, resources and
// operations, using curated confusion tables plus edit-distance scoring.
package suggest

import (
	"sync"
	"time"

	"github.com/flowlint/flowlint/pkg/models"
)

// DefaultCacheTTL is how long cached metadata-store reads stay fresh.
const DefaultCacheTTL = 5 * time.Minute

// Bounds for the suggestion-result cache.
const (
	resultCacheMax  = 100
	resultCacheKeep = 50
)

// typeCache holds the full node-type list, refreshed lazily on a TTL. A
// failed refresh keeps serving the last good snapshot.
type typeCache struct {
	load func() ([]models.NodeTypeDescriptor, error)
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	entries  []models.NodeTypeDescriptor
	loadedAt time.Time
}

func newTypeCache(load func() ([]models.NodeTypeDescriptor, error)) *typeCache {
	return &typeCache{
		load: load,
		ttl:  DefaultCacheTTL,
		now:  time.Now,
	}
}

// Get returns the cached list, refreshing it first when stale.
func (c *typeCache) Get() []models.NodeTypeDescriptor {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loadedAt.IsZero() || c.now().Sub(c.loadedAt) > c.ttl {
		c.refreshLocked()
	}

	return c.entries
}

// Refresh forces a reload. On failure the previous snapshot is kept and the
// error is returned.
func (c *typeCache) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.refreshLocked()
}

// Invalidate marks the cache stale so the next Get reloads.
func (c *typeCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loadedAt = time.Time{}
}

func (c *typeCache) refreshLocked() error {
	entries, err := c.load()
	if err != nil {
		// Stale-on-error: keep the last good snapshot but postpone the next
		// attempt a full TTL so a broken store is not hammered.
		c.loadedAt = c.now()

		return err
	}

	c.entries = entries
	c.loadedAt = c.now()

	return nil
}

// valueCache caches per-key valid-value lists (per node type, or per node
// type and resource) on the same TTL contract as typeCache.
type valueCache struct {
	load func(key string) []string
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[string]valueEntry
}

type valueEntry struct {
	values   []string
	loadedAt time.Time
}

func newValueCache(load func(key string) []string) *valueCache {
	return &valueCache{
		load:    load,
		ttl:     DefaultCacheTTL,
		now:     time.Now,
		entries: make(map[string]valueEntry),
	}
}

func (c *valueCache) Get(key string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if ok && c.now().Sub(entry.loadedAt) <= c.ttl {
		return entry.values
	}

	values := c.load(key)
	c.entries[key] = valueEntry{values: values, loadedAt: c.now()}

	return values
}

func (c *valueCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]valueEntry)
}

// resultCache is a bounded cache of computed suggestion lists. When it grows
// past resultCacheMax entries it is evicted down to the most recent
// resultCacheKeep.
type resultCache struct {
	mu      sync.Mutex
	entries map[string][]models.Suggestion
	order   []string
}

func newResultCache() *resultCache {
	return &resultCache{
		entries: make(map[string][]models.Suggestion),
	}
}

func (c *resultCache) Get(key string) ([]models.Suggestion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	suggestions, ok := c.entries[key]

	return suggestions, ok
}

func (c *resultCache) Put(key string, suggestions []models.Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}

	c.entries[key] = suggestions

	if len(c.order) > resultCacheMax {
		cut := len(c.order) - resultCacheKeep
		for _, stale := range c.order[:cut] {
			delete(c.entries, stale)
		}

		c.order = append([]string(nil), c.order[cut:]...)
	}
}

func (c *resultCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string][]models.Suggestion)
	c.order = nil
}
