// Package domain contains the core business entities and rules for the redemption optimizer.
// These entities are source-agnostic and form the foundation upon which all other components are built.
package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PricedItinerary is a single flight offer with a cash price, as returned by a price lookup.
// It is immutable once received.
type PricedItinerary struct {
	// PriceTotal is the total cash price of the offer (0 when the source sent no usable price)
	PriceTotal float64 `json:"priceTotal"`

	// Currency is the ISO 4217 currency code (defaults to "USD")
	Currency string `json:"currency"`

	// Direct is true when the outbound itinerary has exactly one segment
	Direct bool `json:"direct"`

	// Segments are the legs of the outbound itinerary, in travel order
	Segments []Segment `json:"segments"`

	// Duration is the total itinerary duration
	Duration DurationInfo `json:"duration"`

	// Source identifies which price lookup produced this itinerary
	Source string `json:"source"`
}

// Segment is one leg of an itinerary.
type Segment struct {
	// CarrierCode is the IATA airline code (e.g., "AA")
	CarrierCode string `json:"carrierCode"`

	// FlightNumber is the carrier's flight number without the carrier prefix (e.g., "101")
	FlightNumber string `json:"flightNumber"`

	Departure SegmentPoint `json:"departure"`
	Arrival   SegmentPoint `json:"arrival"`
}

// SegmentPoint is a departure or arrival point of a segment.
type SegmentPoint struct {
	// Airport is the IATA airport code (e.g., "JFK")
	Airport string `json:"airport"`

	// At is the local date-time as sent by the source (e.g., "2025-09-01T08:00:00")
	At string `json:"at"`
}

// FlightCode returns the carrier code joined with the flight number (e.g., "AA 101").
func (s Segment) FlightCode() string {
	return strings.TrimSpace(s.CarrierCode + " " + s.FlightNumber)
}

// FlightCodes returns the flight codes of every segment in order.
func (p PricedItinerary) FlightCodes() []string {
	codes := make([]string, 0, len(p.Segments))
	for _, seg := range p.Segments {
		codes = append(codes, seg.FlightCode())
	}
	return codes
}

// RouteLabel returns the airports visited in order (e.g., "JFK → ORD → LAX").
func (p PricedItinerary) RouteLabel() string {
	if len(p.Segments) == 0 {
		return ""
	}
	airports := []string{p.Segments[0].Departure.Airport}
	for _, seg := range p.Segments {
		airports = append(airports, seg.Arrival.Airport)
	}
	return strings.Join(airports, " → ")
}

// Stops returns the number of intermediate stops.
func (p PricedItinerary) Stops() int {
	if len(p.Segments) == 0 {
		return 0
	}
	return len(p.Segments) - 1
}

// DurationInfo contains itinerary duration information.
type DurationInfo struct {
	// TotalMinutes is the total duration in minutes
	TotalMinutes int `json:"totalMinutes"`

	// Formatted is a human-readable duration string (e.g., "5h 30m")
	Formatted string `json:"formatted"`
}

// NewDurationInfo creates a DurationInfo from total minutes and formats it.
func NewDurationInfo(totalMinutes int) DurationInfo {
	if totalMinutes < 0 {
		totalMinutes = 0
	}
	hours := totalMinutes / 60
	mins := totalMinutes % 60

	var formatted string
	switch {
	case hours > 0 && mins > 0:
		formatted = fmt.Sprintf("%dh %dm", hours, mins)
	case hours > 0:
		formatted = fmt.Sprintf("%dh", hours)
	default:
		formatted = fmt.Sprintf("%dm", mins)
	}

	return DurationInfo{
		TotalMinutes: totalMinutes,
		Formatted:    formatted,
	}
}

// isoDurationRegex matches the subset of ISO-8601 durations used for itineraries (e.g., "PT5H30M", "P1DT2H").
var isoDurationRegex = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:\d+(?:\.\d+)?S)?)?$`)

// ParseISODuration converts an ISO-8601 duration such as "PT5H30M" into a DurationInfo.
// Seconds are ignored. Returns an error for empty or malformed input.
func ParseISODuration(value string) (DurationInfo, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" || value == "P" || value == "PT" {
		return DurationInfo{}, fmt.Errorf("invalid ISO-8601 duration %q", value)
	}

	m := isoDurationRegex.FindStringSubmatch(value)
	if m == nil {
		return DurationInfo{}, fmt.Errorf("invalid ISO-8601 duration %q", value)
	}

	total := 0
	for i, factor := range []int{24 * 60, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return DurationInfo{}, fmt.Errorf("invalid ISO-8601 duration %q: %w", value, err)
		}
		total += n * factor
	}

	return NewDurationInfo(total), nil
}
