package filename

import (
	"strings"
	"sync"
)

// Registry tracks the filename stems already taken in an archive directory.
// Lookups are case-insensitive because common target filesystems are.
// Safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	stems map[string]struct{}
}

// NewRegistry returns a registry seeded with the given stems.
func NewRegistry(stems ...string) *Registry {
	r := &Registry{stems: make(map[string]struct{}, len(stems))}
	for _, s := range stems {
		r.stems[strings.ToLower(s)] = struct{}{}
	}
	return r
}

// Has reports whether stem is already taken.
func (r *Registry) Has(stem string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.stems[strings.ToLower(stem)]
	return ok
}

// Claim atomically records stem as taken if it was free, reporting whether
// the claim succeeded. Concurrent resolvers use it to avoid handing the same
// stem to two callers between a Has check and an Add.
func (r *Registry) Claim(stem string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := strings.ToLower(stem)
	if _, ok := r.stems[key]; ok {
		return false
	}
	r.stems[key] = struct{}{}
	return true
}

// Add records stem as taken. Adding an existing stem is a no-op.
func (r *Registry) Add(stem string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stems[strings.ToLower(stem)] = struct{}{}
}

// Len returns the number of registered stems.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stems)
}
