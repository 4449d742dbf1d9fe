// Package session holds per-learner state: the cached sentence analysis.
package session

import (
	"context"
	"sync"

	"github.com/myssom/letterbrick/internal/feedback"
)

// ComputeFunc produces a fresh analysis for the given text.
type ComputeFunc func(ctx context.Context, original string) (feedback.Result, error)

// LookupObserver is told about every cache lookup.
type LookupObserver interface {
	ObserveCacheLookup(hit bool)
}

// Cache holds at most one analysis, keyed by the exact original text. It is
// either empty or cached for one key; there is no expiry.
type Cache struct {
	mu       sync.Mutex
	key      string
	value    feedback.Result
	ok       bool
	observer LookupObserver
}

func NewCache(observer LookupObserver) *Cache {
	return &Cache{observer: observer}
}

// GetOrCompute returns the cached analysis for original, or runs compute and
// replaces the entry with its result. A failed compute leaves the entry as it
// was. The lock is held across compute so concurrent callers on one session
// cannot lose an update.
func (c *Cache) GetOrCompute(ctx context.Context, original string, compute ComputeFunc) (feedback.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ok && c.key == original {
		c.observe(true)
		return c.value, nil
	}
	c.observe(false)

	res, err := compute(ctx, original)
	if err != nil {
		return feedback.Result{}, err
	}
	c.key, c.value, c.ok = original, res, true
	return res, nil
}

// Lookup returns the cached analysis if its key equals original.
func (c *Cache) Lookup(original string) (feedback.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hit := c.ok && c.key == original
	c.observe(hit)
	if !hit {
		return feedback.Result{}, false
	}
	return c.value, true
}

// Put stores an analysis, replacing any prior entry.
func (c *Cache) Put(original string, res feedback.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key, c.value, c.ok = original, res, true
}

// Key returns the cached key and whether the cache holds an entry.
func (c *Cache) Key() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.key, c.ok
}

// Reset empties the cache.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key, c.value, c.ok = "", feedback.Result{}, false
}

func (c *Cache) observe(hit bool) {
	if c.observer != nil {
		c.observer.ObserveCacheLookup(hit)
	}
}
