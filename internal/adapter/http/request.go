// Package http provides the HTTP handler layer for the redemption optimizer.
// It handles request parsing, validation, and response formatting.
package http

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
)

// RecommendationRequest represents the request for redemption recommendations.
// JSON bodies use camelCase; HTML forms and report queries use snake_case.
type RecommendationRequest struct {
	// Origin is the IATA code of the departure airport (e.g., "JFK")
	Origin string `json:"origin" query:"origin" form:"origin" example:"JFK"`

	// Destination is the IATA code of the arrival airport (e.g., "LAX")
	Destination string `json:"destination" query:"destination" form:"destination" example:"LAX"`

	// DepartureDate is the desired departure date in YYYY-MM-DD format
	DepartureDate string `json:"departureDate" query:"departure_date" form:"departure_date" example:"2025-09-01"`

	// MilesAvailable is the traveler's miles balance
	MilesAvailable int `json:"milesAvailable" query:"miles_available" form:"miles_available" example:"30000"`

	// Adults is the number of travelers (1-9, default 1)
	Adults int `json:"adults,omitempty" query:"adults" form:"adults" example:"1"`
}

// FeedbackRequest represents user feedback on a recommendation.
type FeedbackRequest struct {
	Origin         string `json:"origin,omitempty" form:"origin" example:"JFK"`
	Destination    string `json:"destination,omitempty" form:"destination" example:"LAX"`
	DepartureDate  string `json:"departureDate,omitempty" form:"departure_date" example:"2025-09-01"`
	MilesAvailable int    `json:"milesAvailable,omitempty" form:"miles_available" example:"30000"`

	// Rating is the user's score from 1 to 5
	Rating int `json:"rating" form:"rating" example:"5"`

	Comments string `json:"comments,omitempty" form:"comments" example:"The gift card comparison helped."`
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// Has reports whether field already has an error.
func (v *ValidationErrors) Has(field string) bool {
	for _, e := range v.Errors {
		if e.Field == field {
			return true
		}
	}
	return false
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
// The first error of each field wins.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		if _, ok := result[e.Field]; !ok {
			result[e.Field] = e.Message
		}
	}
	return result
}

// Normalize uppercases airport codes and trims whitespace.
func (r *RecommendationRequest) Normalize() {
	r.Origin = domain.NormalizeAirportCode(r.Origin)
	r.Destination = domain.NormalizeAirportCode(r.Destination)
	r.DepartureDate = strings.TrimSpace(r.DepartureDate)
	if r.Adults == 0 {
		r.Adults = domain.MinAdults
	}
}

// Validate normalizes the request and returns every field error found.
func (r *RecommendationRequest) Validate() error {
	errs := &ValidationErrors{}
	r.validate(errs)
	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *RecommendationRequest) validate(errs *ValidationErrors) {
	r.Normalize()

	validateAirport(errs, "origin", r.Origin, true)
	validateAirport(errs, "destination", r.Destination, true)
	if r.Origin != "" && r.Origin == r.Destination && !errs.Has("destination") {
		errs.Add("destination", "origin and destination must be different")
	}

	validateDate(errs, "departureDate", r.DepartureDate, true)

	if r.MilesAvailable < 0 && !errs.Has("milesAvailable") {
		errs.Add("milesAvailable", "milesAvailable cannot be negative")
	}

	if r.Adults < domain.MinAdults {
		errs.Add("adults", "adults must be at least 1")
	} else if r.Adults > domain.MaxAdults {
		errs.Add("adults", "adults cannot exceed 9")
	}
}

// ToDomain converts the request to the use case input.
func (r *RecommendationRequest) ToDomain() domain.RecommendationRequest {
	return domain.RecommendationRequest{
		RouteQuery: domain.RouteQuery{
			Origin:        r.Origin,
			Destination:   r.Destination,
			DepartureDate: r.DepartureDate,
			Adults:        r.Adults,
		},
		MilesAvailable: r.MilesAvailable,
	}
}

// Validate normalizes the feedback and returns every field error found.
// Route fields are optional but must be well formed when present.
func (r *FeedbackRequest) Validate() error {
	errs := &ValidationErrors{}
	r.validate(errs)
	if errs.HasErrors() {
		return errs
	}
	return nil
}

func (r *FeedbackRequest) validate(errs *ValidationErrors) {
	r.Origin = domain.NormalizeAirportCode(r.Origin)
	r.Destination = domain.NormalizeAirportCode(r.Destination)
	r.DepartureDate = strings.TrimSpace(r.DepartureDate)
	r.Comments = strings.TrimSpace(r.Comments)

	validateAirport(errs, "origin", r.Origin, false)
	validateAirport(errs, "destination", r.Destination, false)
	validateDate(errs, "departureDate", r.DepartureDate, false)

	if r.MilesAvailable < 0 && !errs.Has("milesAvailable") {
		errs.Add("milesAvailable", "milesAvailable cannot be negative")
	}

	if !errs.Has("rating") && (r.Rating < domain.MinRating || r.Rating > domain.MaxRating) {
		errs.Add("rating", "rating must be between 1 and 5")
	}

	if utf8.RuneCountInString(r.Comments) > domain.MaxCommentsLength {
		errs.Add("comments", "comments cannot exceed 2000 characters")
	}
}

// ToDomain converts the request to a domain Feedback.
func (r *FeedbackRequest) ToDomain() domain.Feedback {
	return domain.Feedback{
		Origin:         r.Origin,
		Destination:    r.Destination,
		DepartureDate:  r.DepartureDate,
		MilesAvailable: r.MilesAvailable,
		Rating:         r.Rating,
		Comments:       r.Comments,
	}
}

func validateAirport(errs *ValidationErrors, field, code string, required bool) {
	if code == "" {
		if required {
			errs.Add(field, field+" is required")
		}
		return
	}
	if !domain.IsAirportCode(code) {
		errs.Add(field, field+" must be a valid 3-letter IATA airport code")
	}
}

func validateDate(errs *ValidationErrors, field, date string, required bool) {
	if date == "" {
		if required {
			errs.Add(field, field+" is required")
		}
		return
	}
	if !domain.IsDate(date) {
		errs.Add(field, field+" must be a valid date in YYYY-MM-DD format")
	}
}

// parseFormInt reads an optional integer form field. An empty value yields def;
// anything non-numeric is recorded as a field error.
func parseFormInt(errs *ValidationErrors, field, raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		errs.Add(field, field+" must be a whole number")
		return def
	}
	return n
}
