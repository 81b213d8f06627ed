// Package demo provides a built-in price lookup used when live pricing is
// disabled or unavailable. It always answers with the same two itineraries
// for whatever origin and destination are asked for.
package demo

import (
	"context"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
)

// SourceName is the unique identifier for the demonstration dataset.
const SourceName = "demo"

// ConnectionAirport is the hub used by the one-stop demo itinerary.
const ConnectionAirport = "ORD"

// Lookup implements domain.PriceLookup over a fixed dataset.
type Lookup struct{}

// NewLookup creates a demo Lookup.
func NewLookup() *Lookup {
	return &Lookup{}
}

// Name returns the source name.
func (l *Lookup) Name() string {
	return SourceName
}

// Search returns the demonstration itineraries for the query route.
// MaxResults, when positive, caps the number returned.
func (l *Lookup) Search(ctx context.Context, query domain.RouteQuery) ([]domain.PricedItinerary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	itineraries := Itineraries(query.Origin, query.Destination)
	if query.MaxResults > 0 && len(itineraries) > query.MaxResults {
		itineraries = itineraries[:query.MaxResults]
	}
	return itineraries, nil
}

// Itineraries builds the demonstration dataset for a route: a direct
// AA 101 at 320.00 USD and a DL 202 + DL 303 connection via ORD at 280.00 USD.
func Itineraries(origin, destination string) []domain.PricedItinerary {
	direct := domain.PricedItinerary{
		PriceTotal: 320.00,
		Currency:   "USD",
		Direct:     true,
		Segments: []domain.Segment{
			segment("AA", "101", origin, "2025-09-01T08:00:00", destination, "2025-09-01T13:30:00"),
		},
		Duration: mustDuration("PT5H30M"),
		Source:   SourceName,
	}

	connection := domain.PricedItinerary{
		PriceTotal: 280.00,
		Currency:   "USD",
		Direct:     false,
		Segments: []domain.Segment{
			segment("DL", "202", origin, "2025-09-01T09:15:00", ConnectionAirport, "2025-09-01T11:00:00"),
			segment("DL", "303", ConnectionAirport, "2025-09-01T12:00:00", destination, "2025-09-01T16:25:00"),
		},
		Duration: mustDuration("PT7H10M"),
		Source:   SourceName,
	}

	return []domain.PricedItinerary{direct, connection}
}

func segment(carrier, number, from, departAt, to, arriveAt string) domain.Segment {
	return domain.Segment{
		CarrierCode:  carrier,
		FlightNumber: number,
		Departure:    domain.SegmentPoint{Airport: from, At: departAt},
		Arrival:      domain.SegmentPoint{Airport: to, At: arriveAt},
	}
}

func mustDuration(iso string) domain.DurationInfo {
	d, err := domain.ParseISODuration(iso)
	if err != nil {
		panic(err)
	}
	return d
}

// Ensure Lookup implements domain.PriceLookup at compile time.
var _ domain.PriceLookup = (*Lookup)(nil)
