package amadeus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
)

// DefaultCurrency is assumed when an offer carries no currency.
const DefaultCurrency = "USD"

// offersResponse is the envelope of a flight offers search. Entries are kept
// raw so that one malformed offer cannot fail the whole response.
type offersResponse struct {
	Data []json.RawMessage `json:"data"`
}

// offer keeps every field raw. Each one is coerced on its own so that a
// single field of the wrong type cannot discard the rest of the offer.
type offer struct {
	Price       json.RawMessage `json:"price"`
	Itineraries json.RawMessage `json:"itineraries"`
}

type price struct {
	Total    json.RawMessage `json:"total"`
	Currency json.RawMessage `json:"currency"`
}

type itinerary struct {
	Duration json.RawMessage `json:"duration"`
	Segments json.RawMessage `json:"segments"`
}

type segment struct {
	CarrierCode json.RawMessage `json:"carrierCode"`
	Number      json.RawMessage `json:"number"`
	Departure   json.RawMessage `json:"departure"`
	Arrival     json.RawMessage `json:"arrival"`
}

type segmentPoint struct {
	IataCode json.RawMessage `json:"iataCode"`
	At       json.RawMessage `json:"at"`
}

// ParseOffers converts a flight offers response into itineraries.
//
// Parsing is lenient: a missing or unparseable total becomes 0, a missing
// or non-string currency becomes USD, numeric codes are kept as their
// decimal text, and any other mistyped field is left empty. An offer is
// skipped only when it is not an object or its itineraries are missing,
// empty or not an array. Only the first (outbound) itinerary of each offer
// is used. An error is returned only when the envelope itself is not valid
// JSON.
func ParseOffers(body []byte) ([]domain.PricedItinerary, error) {
	var resp offersResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse flight offers: %w", err)
	}

	result := make([]domain.PricedItinerary, 0, len(resp.Data))
	for _, raw := range resp.Data {
		var o offer
		if err := json.Unmarshal(raw, &o); err != nil {
			continue
		}

		var itineraries []json.RawMessage
		if err := json.Unmarshal(o.Itineraries, &itineraries); err != nil || len(itineraries) == 0 {
			continue
		}

		result = append(result, normalizeOffer(o.Price, itineraries[0]))
	}

	return result, nil
}

func normalizeOffer(rawPrice, rawOutbound json.RawMessage) domain.PricedItinerary {
	var p price
	decodeObject(rawPrice, &p)

	var outbound itinerary
	decodeObject(rawOutbound, &outbound)

	var rawSegments []json.RawMessage
	if err := json.Unmarshal(outbound.Segments, &rawSegments); err != nil {
		rawSegments = nil
	}

	segments := make([]domain.Segment, 0, len(rawSegments))
	for _, raw := range rawSegments {
		segments = append(segments, normalizeSegment(raw))
	}

	currency := strings.TrimSpace(stringField(p.Currency, false))
	if currency == "" {
		currency = DefaultCurrency
	}

	// An unreadable duration is left zero; it is display-only.
	duration, _ := domain.ParseISODuration(stringField(outbound.Duration, false))

	return domain.PricedItinerary{
		PriceTotal: parsePrice(p.Total),
		Currency:   currency,
		Direct:     len(segments) == 1,
		Segments:   segments,
		Duration:   duration,
		Source:     SourceName,
	}
}

func normalizeSegment(raw json.RawMessage) domain.Segment {
	var s segment
	decodeObject(raw, &s)

	return domain.Segment{
		CarrierCode:  stringField(s.CarrierCode, false),
		FlightNumber: stringField(s.Number, true),
		Departure:    normalizePoint(s.Departure),
		Arrival:      normalizePoint(s.Arrival),
	}
}

func normalizePoint(raw json.RawMessage) domain.SegmentPoint {
	var p segmentPoint
	decodeObject(raw, &p)

	return domain.SegmentPoint{
		Airport: stringField(p.IataCode, false),
		At:      stringField(p.At, false),
	}
}

// decodeObject fills dst from raw when raw is a JSON object and leaves dst
// zero otherwise. The fields of dst are all json.RawMessage, so an object
// never fails to decode.
func decodeObject(raw json.RawMessage, dst any) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return
	}
	_ = json.Unmarshal(trimmed, dst)
}

// stringField returns raw as text when it is a JSON string. With
// allowNumber set, a JSON number is returned as its literal text (202 ->
// "202"). Anything else yields "".
func stringField(raw json.RawMessage, allowNumber bool) string {
	if len(raw) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return text
	}

	if allowNumber {
		var number json.Number
		if err := json.Unmarshal(raw, &number); err == nil {
			return number.String()
		}
	}

	return ""
}

// parsePrice accepts the total as a JSON string ("320.00") or number (320).
// Anything else, including NaN and infinities, yields 0.
func parsePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return 0
		}
		return finite(v)
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return finite(number)
	}

	return 0
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
