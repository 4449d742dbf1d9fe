package session

import (
	"sync"

	"github.com/google/uuid"
)

// Registry keys one Cache per session so concurrent learners never share an
// analysis.
type Registry struct {
	mu       sync.Mutex
	caches   map[uuid.UUID]*Cache
	observer LookupObserver
}

func NewRegistry(observer LookupObserver) *Registry {
	return &Registry{
		caches:   make(map[uuid.UUID]*Cache),
		observer: observer,
	}
}

// Create starts a new session and returns its id.
func (r *Registry) Create() uuid.UUID {
	id := uuid.New()
	r.mu.Lock()
	r.caches[id] = NewCache(r.observer)
	r.mu.Unlock()
	return id
}

// Get returns the cache for id.
func (r *Registry) Get(id uuid.UUID) (*Cache, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.caches[id]
	return c, ok
}

// Reset ends a session and destroys its cache. It reports whether the
// session existed.
func (r *Registry) Reset(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.caches[id]
	if ok {
		c.Reset()
		delete(r.caches, id)
	}
	return ok
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.caches)
}
