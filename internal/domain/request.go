package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Adult passenger bounds accepted by price lookups.
const (
	MinAdults = 1
	MaxAdults = 9
)

// DateLayout is the layout of departure dates.
const DateLayout = "2006-01-02"

// RouteQuery defines the parameters passed to a price lookup.
type RouteQuery struct {
	// Origin is the IATA code of the departure airport (e.g., "JFK")
	Origin string `json:"origin"`

	// Destination is the IATA code of the arrival airport (e.g., "LAX")
	Destination string `json:"destination"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate"`

	// Adults is the number of adult passengers (default: 1)
	Adults int `json:"adults"`

	// MaxResults caps how many offers the lookup returns (0 means the lookup's own default)
	MaxResults int `json:"maxResults,omitempty"`
}

// RecommendationRequest is the input of a recommendation call.
type RecommendationRequest struct {
	RouteQuery

	// MilesAvailable is the traveler's mile balance
	MilesAvailable int `json:"milesAvailable"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsAirportCode reports whether code is a 3-letter uppercase IATA code.
func IsAirportCode(code string) bool {
	return airportCodeRegex.MatchString(code)
}

// IsDate reports whether value is a valid YYYY-MM-DD calendar date.
func IsDate(value string) bool {
	if !dateRegex.MatchString(value) {
		return false
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}

// NormalizeAirportCode trims and uppercases an airport code.
func NormalizeAirportCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Normalize trims and uppercases the airport codes and trims the date.
func (q *RouteQuery) Normalize() {
	q.Origin = NormalizeAirportCode(q.Origin)
	q.Destination = NormalizeAirportCode(q.Destination)
	q.DepartureDate = strings.TrimSpace(q.DepartureDate)
}

// SetDefaults applies default values to empty optional fields.
func (q *RouteQuery) SetDefaults() {
	if q.Adults == 0 {
		q.Adults = MinAdults
	}
}

// Validate checks if the route query is valid.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (q *RouteQuery) Validate() error {
	if q.Origin == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}
	if !IsAirportCode(q.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, q.Origin)
	}

	if q.Destination == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	if !IsAirportCode(q.Destination) {
		return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, q.Destination)
	}

	if q.Origin == q.Destination {
		return fmt.Errorf("%w: origin and destination must be different", ErrInvalidRequest)
	}

	if q.DepartureDate == "" {
		return fmt.Errorf("%w: departureDate is required", ErrInvalidRequest)
	}
	if !IsDate(q.DepartureDate) {
		return fmt.Errorf("%w: departureDate must be a valid date in YYYY-MM-DD format, got %q", ErrInvalidRequest, q.DepartureDate)
	}

	if q.Adults < MinAdults {
		return fmt.Errorf("%w: adults must be at least %d", ErrInvalidRequest, MinAdults)
	}
	if q.Adults > MaxAdults {
		return fmt.Errorf("%w: adults cannot exceed %d", ErrInvalidRequest, MaxAdults)
	}

	if q.MaxResults < 0 {
		return fmt.Errorf("%w: maxResults cannot be negative", ErrInvalidRequest)
	}

	return nil
}

// Validate checks the route and the mile balance.
func (r *RecommendationRequest) Validate() error {
	if err := r.RouteQuery.Validate(); err != nil {
		return err
	}
	if r.MilesAvailable < 0 {
		return fmt.Errorf("%w: milesAvailable cannot be negative", ErrInvalidRequest)
	}
	return nil
}
