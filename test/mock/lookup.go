// Package mock provides test doubles for the redemption optimizer.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
)

// Lookup is a configurable mock implementation of domain.PriceLookup.
// It supports configurable delays, errors, and responses for testing
// timeouts and fallback behavior.
type Lookup struct {
	name        string
	itineraries []domain.PricedItinerary
	err         error
	delay       time.Duration
	callCount   int
	lastQuery   domain.RouteQuery
	mu          sync.Mutex
}

// NewLookup creates a new mock lookup with the given name.
// The lookup is configured using the builder pattern methods.
func NewLookup(name string) *Lookup {
	return &Lookup{name: name}
}

// WithItineraries configures the lookup to return the given itineraries.
func (l *Lookup) WithItineraries(itineraries []domain.PricedItinerary) *Lookup {
	l.itineraries = itineraries
	return l
}

// WithError configures the lookup to return the given error.
func (l *Lookup) WithError(err error) *Lookup {
	l.err = err
	return l
}

// WithDelay configures the lookup to wait the given duration before responding.
func (l *Lookup) WithDelay(d time.Duration) *Lookup {
	l.delay = d
	return l
}

// Name returns the lookup's unique identifier.
func (l *Lookup) Name() string {
	return l.name
}

// Search implements domain.PriceLookup.Search.
// It respects context cancellation, applies the configured delay,
// and returns the configured itineraries or error.
func (l *Lookup) Search(ctx context.Context, query domain.RouteQuery) ([]domain.PricedItinerary, error) {
	l.mu.Lock()
	l.callCount++
	l.lastQuery = query
	l.mu.Unlock()

	if l.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.delay):
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if l.err != nil {
		return nil, l.err
	}

	out := make([]domain.PricedItinerary, len(l.itineraries))
	copy(out, l.itineraries)
	return out, nil
}

// CallCount returns the number of times Search was called.
func (l *Lookup) CallCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.callCount
}

// LastQuery returns the query of the most recent Search call.
func (l *Lookup) LastQuery() domain.RouteQuery {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastQuery
}

// Ensure Lookup implements domain.PriceLookup at compile time.
var _ domain.PriceLookup = (*Lookup)(nil)

// Itinerary builds a priced itinerary through the given airports, one segment per hop.
// Fewer than two airports yields an itinerary without segments.
func Itinerary(price float64, airports ...string) domain.PricedItinerary {
	base := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	segments := make([]domain.Segment, 0, len(airports))
	for i := 0; i+1 < len(airports); i++ {
		dep := base.Add(time.Duration(i*3) * time.Hour)
		segments = append(segments, domain.Segment{
			CarrierCode:  "UA",
			FlightNumber: fmt.Sprintf("%d", 500+i),
			Departure:    domain.SegmentPoint{Airport: airports[i], At: dep.Format("2006-01-02T15:04:05")},
			Arrival:      domain.SegmentPoint{Airport: airports[i+1], At: dep.Add(2 * time.Hour).Format("2006-01-02T15:04:05")},
		})
	}

	return domain.PricedItinerary{
		PriceTotal: price,
		Currency:   "USD",
		Direct:     len(segments) == 1,
		Segments:   segments,
		Duration:   domain.NewDurationInfo(len(segments)*120 + (len(segments)-1)*60),
		Source:     "mock",
	}
}

// SampleItineraries returns count direct itineraries from origin to destination,
// priced from 200 upwards in steps of 50.
func SampleItineraries(origin, destination string, count int) []domain.PricedItinerary {
	itineraries := make([]domain.PricedItinerary, count)
	for i := range itineraries {
		itineraries[i] = Itinerary(200+float64(i*50), origin, destination)
	}
	return itineraries
}
