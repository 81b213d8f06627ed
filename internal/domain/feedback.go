package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// Feedback rating bounds and comment length limit.
const (
	MinRating         = 1
	MaxRating         = 5
	MaxCommentsLength = 2000
)

// Feedback is a user's rating of the recommendations for a route.
type Feedback struct {
	// ID is assigned by the repository and increases monotonically
	ID int64 `json:"id"`

	Origin         string `json:"origin,omitempty"`
	Destination    string `json:"destination,omitempty"`
	DepartureDate  string `json:"departureDate,omitempty"`
	MilesAvailable int    `json:"milesAvailable"`

	// Rating is an integer from 1 to 5
	Rating int `json:"rating"`

	Comments string `json:"comments,omitempty"`

	// CreatedAt is assigned by the repository
	CreatedAt time.Time `json:"createdAt"`
}

// Normalize trims free text and uppercases airport codes.
func (f *Feedback) Normalize() {
	f.Origin = NormalizeAirportCode(f.Origin)
	f.Destination = NormalizeAirportCode(f.Destination)
	f.DepartureDate = strings.TrimSpace(f.DepartureDate)
	f.Comments = strings.TrimSpace(f.Comments)
}

// Validate checks the rating, comments and any route fields that are present.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (f *Feedback) Validate() error {
	if f.Rating < MinRating || f.Rating > MaxRating {
		return fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidRequest, MinRating, MaxRating)
	}
	if utf8.RuneCountInString(f.Comments) > MaxCommentsLength {
		return fmt.Errorf("%w: comments cannot exceed %d characters", ErrInvalidRequest, MaxCommentsLength)
	}
	if f.Origin != "" && !IsAirportCode(f.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, f.Origin)
	}
	if f.Destination != "" && !IsAirportCode(f.Destination) {
		return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, f.Destination)
	}
	if f.DepartureDate != "" && !IsDate(f.DepartureDate) {
		return fmt.Errorf("%w: departureDate must be a valid date in YYYY-MM-DD format, got %q", ErrInvalidRequest, f.DepartureDate)
	}
	if f.MilesAvailable < 0 {
		return fmt.Errorf("%w: milesAvailable cannot be negative", ErrInvalidRequest)
	}
	return nil
}
