package domain

// RedemptionType identifies the category of a redemption option.
type RedemptionType string

const (
	RedemptionFlightAward RedemptionType = "flight_award"
	RedemptionHotelAward  RedemptionType = "hotel_award"
	RedemptionGiftCard    RedemptionType = "gift_card"
)

// DisplayName returns the human-readable name of the redemption type.
func (t RedemptionType) DisplayName() string {
	switch t {
	case RedemptionFlightAward:
		return "Flight award"
	case RedemptionHotelAward:
		return "Hotel award"
	case RedemptionGiftCard:
		return "Gift card"
	default:
		return string(t)
	}
}

// RankedRoute is a priced itinerary annotated with its award valuation.
type RankedRoute struct {
	Itinerary PricedItinerary `json:"itinerary"`

	// MilesNeeded is the estimated award cost at the flight award CPM
	MilesNeeded int `json:"milesNeeded"`

	// ValuePerMileUSD is unrounded and is the primary sort key
	ValuePerMileUSD float64 `json:"valuePerMileUsd"`

	ValuePerMileCents float64 `json:"valuePerMileCents"`
}

// RedemptionOption is one way to spend miles. Type selects which optional fields are meaningful:
// flights carry Flight, hotels carry Label, gift cards carry CashValueUSD.
type RedemptionOption struct {
	Type RedemptionType `json:"type"`

	// Label is a short human-readable description (e.g., "JFK → LAX", "Sample hotel night")
	Label string `json:"label"`

	CashPriceUSD float64 `json:"cashPriceUsd"`
	TaxesFeesUSD float64 `json:"taxesFeesUsd"`

	// MilesNeeded is 0 for gift cards, which convert miles directly
	MilesNeeded int `json:"milesNeeded"`

	ValuePerMileUSD   float64 `json:"valuePerMileUsd"`
	ValuePerMileCents float64 `json:"valuePerMileCents"`

	// CashValueUSD is the gift card face value obtainable with the available miles
	CashValueUSD float64 `json:"cashValueUsd,omitempty"`

	// Affordable reports whether MilesNeeded fits within the miles available
	Affordable bool `json:"affordable"`

	// Flight is set only for flight awards
	Flight *FlightDetails `json:"flight,omitempty"`
}

// FlightDetails describes the itinerary behind a flight award option.
type FlightDetails struct {
	Direct   bool         `json:"direct"`
	Currency string       `json:"currency"`
	Duration DurationInfo `json:"duration"`
	Segments []Segment    `json:"segments"`
	Source   string       `json:"source"`
}

// Assumptions discloses the valuation constants behind a recommendation set.
type Assumptions struct {
	FlightAwardCPM float64 `json:"flightAwardCpmCents"`
	HotelCPM       float64 `json:"hotelCpmCents"`
	GiftCardCPM    float64 `json:"giftCardCpmCents"`
	FlightTaxesUSD float64 `json:"flightTaxesUsd"`
}

// NewAssumptions extracts the disclosed constants from valuation settings.
func NewAssumptions(s ValuationSettings) Assumptions {
	return Assumptions{
		FlightAwardCPM: s.FlightAwardCPM,
		HotelCPM:       s.HotelCPM,
		GiftCardCPM:    s.GiftCardCPM,
		FlightTaxesUSD: s.FlightTaxesUSD,
	}
}

// RecommendationMetadata describes how a recommendation set was assembled.
type RecommendationMetadata struct {
	// FlightCandidates is the number of ranked flights considered
	FlightCandidates int `json:"flightCandidates"`

	// AffordableFlights is the number of candidates within the miles available
	AffordableFlights int `json:"affordableFlights"`

	// NothingAffordable is true when flights are shown even though none fit the miles available
	NothingAffordable bool `json:"nothingAffordable"`

	// DataSource names the price lookup(s) that supplied the itineraries
	DataSource string `json:"dataSource"`
}

// RecommendationSet is the ranked result of one recommendation request.
type RecommendationSet struct {
	Criteria RouteQuery `json:"criteria"`

	MilesAvailable int `json:"milesAvailable"`

	// Recommendations are sorted by ValuePerMileCents, highest first
	Recommendations []RedemptionOption `json:"recommendations"`

	Assumptions Assumptions `json:"assumptions"`

	Metadata RecommendationMetadata `json:"metadata"`
}

// CountByType returns how many recommendations have the given type.
func (r *RecommendationSet) CountByType(t RedemptionType) int {
	n := 0
	for _, opt := range r.Recommendations {
		if opt.Type == t {
			n++
		}
	}
	return n
}
