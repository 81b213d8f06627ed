package http

import (
	"time"
)

// RecommendationResponseDTO is the data transfer object for recommendation responses.
// It matches the API output format with snake_case fields.
type RecommendationResponseDTO struct {
	SearchCriteria  SearchCriteriaDTO   `json:"search_criteria"`
	MilesAvailable  int                 `json:"miles_available" example:"30000"`
	Recommendations []RecommendationDTO `json:"recommendations"`
	Assumptions     AssumptionsDTO      `json:"assumptions"`
	Metadata        MetadataDTO         `json:"metadata"`
}

// SearchCriteriaDTO represents the route that was priced.
type SearchCriteriaDTO struct {
	Origin        string `json:"origin" example:"JFK"`
	Destination   string `json:"destination" example:"LAX"`
	DepartureDate string `json:"departure_date" example:"2025-09-01"`
	Adults        int    `json:"adults" example:"1"`
}

// MetadataDTO describes how the recommendation set was assembled.
type MetadataDTO struct {
	FlightCandidates  int    `json:"flight_candidates" example:"2"`
	AffordableFlights int    `json:"affordable_flights" example:"2"`
	NothingAffordable bool   `json:"nothing_affordable" example:"false"`
	DataSource        string `json:"data_source" example:"amadeus"`
}

// AssumptionsDTO discloses the valuation constants, in cents per mile and USD.
type AssumptionsDTO struct {
	FlightAwardCPM float64 `json:"flight_award_cpm_cents" example:"1.3"`
	HotelCPM       float64 `json:"hotel_cpm_cents" example:"0.7"`
	GiftCardCPM    float64 `json:"gift_card_cpm_cents" example:"0.5"`
	FlightTaxesUSD float64 `json:"flight_taxes_usd" example:"5.6"`
}

// RecommendationDTO is one ranked redemption option.
type RecommendationDTO struct {
	Rank              int        `json:"rank" example:"1"`
	Type              string     `json:"type" example:"flight_award"`
	Label             string     `json:"label" example:"JFK → LAX"`
	CashPriceUSD      float64    `json:"cash_price_usd" example:"320"`
	TaxesFeesUSD      float64    `json:"taxes_fees_usd" example:"5.6"`
	MilesNeeded       int        `json:"miles_needed" example:"24185"`
	ValuePerMileUSD   float64    `json:"value_per_mile_usd" example:"0.013"`
	ValuePerMileCents float64    `json:"value_per_mile_cents" example:"1.3"`
	CashValueUSD      *float64   `json:"cash_value_usd,omitempty"`
	Affordable        bool       `json:"affordable" example:"true"`
	Flight            *FlightDTO `json:"flight,omitempty"`
}

// FlightDTO describes the itinerary behind a flight award.
type FlightDTO struct {
	Direct   bool         `json:"direct" example:"true"`
	Stops    int          `json:"stops" example:"0"`
	Currency string       `json:"currency" example:"USD"`
	Duration DurationDTO  `json:"duration"`
	Source   string       `json:"source" example:"amadeus"`
	Segments []SegmentDTO `json:"segments"`
}

// SegmentDTO represents one leg of an itinerary.
type SegmentDTO struct {
	FlightNumber string         `json:"flight_number" example:"AA101"`
	CarrierCode  string         `json:"carrier_code" example:"AA"`
	Departure    FlightPointDTO `json:"departure"`
	Arrival      FlightPointDTO `json:"arrival"`
}

// FlightPointDTO represents a departure or arrival point.
type FlightPointDTO struct {
	Airport  string `json:"airport" example:"JFK"`
	DateTime string `json:"datetime" example:"2025-09-01T08:00:00"`
}

// DurationDTO represents itinerary duration.
type DurationDTO struct {
	TotalMinutes int    `json:"total_minutes" example:"330"`
	Formatted    string `json:"formatted" example:"5h 30m"`
}

// ExamplesDTO holds the illustrative valuations shown on the home page.
type ExamplesDTO struct {
	Flight      ExampleDTO     `json:"flight"`
	Hotel       ExampleDTO     `json:"hotel"`
	GiftCard    ExampleDTO     `json:"gift_card"`
	Assumptions AssumptionsDTO `json:"assumptions"`
}

// ExampleDTO is the valuation of one cash price at one CPM rate.
type ExampleDTO struct {
	CashPriceUSD      float64 `json:"cash_price_usd" example:"350"`
	TaxesFeesUSD      float64 `json:"taxes_fees_usd" example:"5.6"`
	CPMCents          float64 `json:"cpm_cents" example:"1.3"`
	MilesNeeded       int     `json:"miles_needed" example:"26493"`
	ValuePerMileCents float64 `json:"value_per_mile_cents" example:"1.3"`
}

// FeedbackResponseDTO acknowledges stored feedback.
type FeedbackResponseDTO struct {
	ID        int64     `json:"id" example:"1"`
	Rating    int       `json:"rating" example:"5"`
	CreatedAt time.Time `json:"created_at" example:"2025-09-01T12:00:00Z"`
	Message   string    `json:"message" example:"Thanks for your feedback!"`
}
