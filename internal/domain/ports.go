package domain

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=domain

import (
	"context"
	"sort"
	"sync"
)

// PriceLookup fetches cash-priced flight itineraries for a route.
// Implementations must be safe for concurrent use.
type PriceLookup interface {
	// Name returns the unique identifier of this lookup (e.g., "amadeus", "demo")
	Name() string

	// Search returns the priced itineraries for the query.
	// It should respect context cancellation and return promptly when ctx is done.
	Search(ctx context.Context, query RouteQuery) ([]PricedItinerary, error)
}

// FeedbackRepository persists user feedback.
type FeedbackRepository interface {
	// Save stores the feedback, assigning its ID and CreatedAt.
	Save(ctx context.Context, feedback *Feedback) error
}

// LookupRegistry holds the configured price lookups by name.
type LookupRegistry struct {
	mu      sync.RWMutex
	lookups map[string]PriceLookup
}

// NewLookupRegistry creates an empty registry.
func NewLookupRegistry() *LookupRegistry {
	return &LookupRegistry{lookups: make(map[string]PriceLookup)}
}

// Register adds a lookup, replacing any lookup with the same name. Nil lookups are ignored.
func (r *LookupRegistry) Register(lookup PriceLookup) {
	if lookup == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups[lookup.Name()] = lookup
}

// Get returns the lookup registered under name.
func (r *LookupRegistry) Get(name string) (PriceLookup, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lookup, ok := r.lookups[name]
	return lookup, ok
}

// Names returns the registered lookup names in sorted order.
func (r *LookupRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.lookups))
	for name := range r.lookups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
