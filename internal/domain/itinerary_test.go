package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDurationInfo(t *testing.T) {
	tests := []struct {
		name          string
		totalMinutes  int
		wantFormatted string
	}{
		{name: "hours and minutes", totalMinutes: 330, wantFormatted: "5h 30m"},
		{name: "hours only", totalMinutes: 120, wantFormatted: "2h"},
		{name: "minutes only", totalMinutes: 45, wantFormatted: "45m"},
		{name: "zero", totalMinutes: 0, wantFormatted: "0m"},
		{name: "negative clamps to zero", totalMinutes: -5, wantFormatted: "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDurationInfo(tt.totalMinutes)
			assert.Equal(t, tt.wantFormatted, got.Formatted)
			assert.GreaterOrEqual(t, got.TotalMinutes, 0)
		})
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantMinutes int
		wantErr     bool
	}{
		{name: "hours and minutes", input: "PT5H30M", wantMinutes: 330},
		{name: "connecting itinerary", input: "PT7H10M", wantMinutes: 430},
		{name: "hours only", input: "PT2H", wantMinutes: 120},
		{name: "minutes only", input: "PT45M", wantMinutes: 45},
		{name: "days and hours", input: "P1DT2H", wantMinutes: 26 * 60},
		{name: "seconds ignored", input: "PT1H0M30S", wantMinutes: 60},
		{name: "lowercase accepted", input: "pt1h5m", wantMinutes: 65},
		{name: "empty", input: "", wantErr: true},
		{name: "bare designator", input: "PT", wantErr: true},
		{name: "garbage", input: "5 hours", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISODuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMinutes, got.TotalMinutes)
		})
	}
}

func TestPricedItinerary_Labels(t *testing.T) {
	connecting := PricedItinerary{
		Segments: []Segment{
			{CarrierCode: "DL", FlightNumber: "202", Departure: SegmentPoint{Airport: "JFK"}, Arrival: SegmentPoint{Airport: "ORD"}},
			{CarrierCode: "DL", FlightNumber: "303", Departure: SegmentPoint{Airport: "ORD"}, Arrival: SegmentPoint{Airport: "LAX"}},
		},
	}

	assert.Equal(t, "JFK → ORD → LAX", connecting.RouteLabel())
	assert.Equal(t, []string{"DL 202", "DL 303"}, connecting.FlightCodes())
	assert.Equal(t, 1, connecting.Stops())

	empty := PricedItinerary{}
	assert.Equal(t, "", empty.RouteLabel())
	assert.Equal(t, 0, empty.Stops())
	assert.Empty(t, empty.FlightCodes())
}
