package domain

import (
	"fmt"
	"math"
)

// Default valuation assumptions, in cents per mile (CPM) and USD.
const (
	DefaultFlightAwardCPM     = 1.3
	DefaultHotelCPM           = 0.7
	DefaultGiftCardCPM        = 0.5
	DefaultFlightTaxesUSD     = 5.60
	DefaultSampleHotelCashUSD = 220.00
)

// Fixed inputs used by ExampleCalculations.
const (
	exampleFlightCashUSD   = 350.00
	exampleGiftCardCashUSD = 100.00
)

// ValuationSettings holds the assumptions used to convert cash prices into miles.
// It is built once at startup and passed by value; nothing mutates it afterwards.
type ValuationSettings struct {
	// FlightAwardCPM is the assumed value of an airline mile, in cents
	FlightAwardCPM float64 `json:"flightAwardCpmCents" yaml:"flight_award_cpm"`

	// HotelCPM is the assumed value of a hotel point, in cents
	HotelCPM float64 `json:"hotelCpmCents" yaml:"hotel_cpm"`

	// GiftCardCPM is the conversion rate of miles into gift cards or statement credits, in cents
	GiftCardCPM float64 `json:"giftCardCpmCents" yaml:"gift_card_cpm"`

	// FlightTaxesUSD is the taxes and fees assumed for every award flight
	FlightTaxesUSD float64 `json:"flightTaxesUsd" yaml:"flight_taxes_usd"`

	// SampleHotelCashUSD is the cash price of the illustrative hotel night
	SampleHotelCashUSD float64 `json:"sampleHotelCashUsd" yaml:"sample_hotel_cash_usd"`
}

// DefaultValuationSettings returns the standard valuation assumptions.
func DefaultValuationSettings() ValuationSettings {
	return ValuationSettings{
		FlightAwardCPM:     DefaultFlightAwardCPM,
		HotelCPM:           DefaultHotelCPM,
		GiftCardCPM:        DefaultGiftCardCPM,
		FlightTaxesUSD:     DefaultFlightTaxesUSD,
		SampleHotelCashUSD: DefaultSampleHotelCashUSD,
	}
}

// Validate checks that every rate is positive and every amount is non-negative.
func (s ValuationSettings) Validate() error {
	rates := []struct {
		name  string
		value float64
	}{
		{"flight award CPM", s.FlightAwardCPM},
		{"hotel CPM", s.HotelCPM},
		{"gift card CPM", s.GiftCardCPM},
	}
	for _, r := range rates {
		if r.value <= 0 || math.IsNaN(r.value) || math.IsInf(r.value, 0) {
			return fmt.Errorf("%s must be positive, got %v", r.name, r.value)
		}
	}
	if s.FlightTaxesUSD < 0 || math.IsNaN(s.FlightTaxesUSD) {
		return fmt.Errorf("flight taxes must be non-negative, got %v", s.FlightTaxesUSD)
	}
	if s.SampleHotelCashUSD < 0 || math.IsNaN(s.SampleHotelCashUSD) {
		return fmt.Errorf("sample hotel cash must be non-negative, got %v", s.SampleHotelCashUSD)
	}
	return nil
}

// ValuePerMile returns the dollars of value realized per mile:
// max(cash - taxes, 0) / milesUsed. It returns 0 when milesUsed <= 0.
func ValuePerMile(cashPriceUSD float64, milesUsed int, taxesFeesUSD float64) float64 {
	if milesUsed <= 0 {
		return 0
	}
	return math.Max(cashPriceUSD-taxesFeesUSD, 0) / float64(milesUsed)
}

// MilesNeededForValue returns how many miles cover max(cash - taxes, 0) at the given rate,
// rounded up to a whole mile. It returns 0 when cpmCents <= 0.
func MilesNeededForValue(cashPriceUSD, cpmCents, taxesFeesUSD float64) int {
	if cpmCents <= 0 {
		return 0
	}
	effective := math.Max(cashPriceUSD-taxesFeesUSD, 0)
	return int(math.Ceil(effective / (cpmCents / 100)))
}

// RoundCents rounds v to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// RedemptionSummary is the valuation of one cash price at one CPM rate.
type RedemptionSummary struct {
	CashPriceUSD      float64 `json:"cashPriceUsd"`
	TaxesFeesUSD      float64 `json:"taxesFeesUsd"`
	CPMCents          float64 `json:"cpmCents"`
	MilesNeeded       int     `json:"milesNeeded"`
	ValuePerMileUSD   float64 `json:"valuePerMileUsd"`
	ValuePerMileCents float64 `json:"valuePerMileCents"`
}

// Summarize computes miles needed and realized value per mile for a cash price.
// Value per mile is 0 whenever no miles are needed.
func Summarize(cashPriceUSD, taxesFeesUSD, cpmCents float64) RedemptionSummary {
	miles := MilesNeededForValue(cashPriceUSD, cpmCents, taxesFeesUSD)

	var vpm float64
	if miles > 0 {
		vpm = ValuePerMile(cashPriceUSD, miles, taxesFeesUSD)
	}

	return RedemptionSummary{
		CashPriceUSD:      cashPriceUSD,
		TaxesFeesUSD:      taxesFeesUSD,
		CPMCents:          cpmCents,
		MilesNeeded:       miles,
		ValuePerMileUSD:   vpm,
		ValuePerMileCents: RoundCents(vpm * 100),
	}
}

// ExampleCalculations holds illustrative valuations for each redemption category.
type ExampleCalculations struct {
	Flight   RedemptionSummary `json:"flight"`
	Hotel    RedemptionSummary `json:"hotel"`
	GiftCard RedemptionSummary `json:"giftCard"`
}

// NewExampleCalculations values a $350 flight (with the flight tax default),
// the sample hotel night and a $100 gift card under the given settings.
func NewExampleCalculations(s ValuationSettings) ExampleCalculations {
	return ExampleCalculations{
		Flight:   Summarize(exampleFlightCashUSD, s.FlightTaxesUSD, s.FlightAwardCPM),
		Hotel:    Summarize(s.SampleHotelCashUSD, 0, s.HotelCPM),
		GiftCard: Summarize(exampleGiftCardCashUSD, 0, s.GiftCardCPM),
	}
}
