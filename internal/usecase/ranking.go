// Package usecase contains the redemption business logic: route ranking,
// recommendation assembly, the pricing fallback strategy and feedback intake.
package usecase

import (
	"sort"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
)

// RankRoutes values every itinerary as an award flight and orders the result.
//
// Each itinerary is annotated with:
//
//	MilesNeeded  = ceil(max(price - FlightTaxesUSD, 0) / (FlightAwardCPM / 100))
//	ValuePerMile = max(price - FlightTaxesUSD, 0) / MilesNeeded
//
// Ordering is by unrounded value per mile (highest first), then by price (cheapest first).
// Sorting is stable, so itineraries that tie on both keep their input order.
//
// Behavior:
//   - Returns an empty slice for empty input
//   - Does NOT mutate the input slice
//   - Never fails: zero-priced itineraries get 0 miles and 0 value
func RankRoutes(itineraries []domain.PricedItinerary, settings domain.ValuationSettings) []domain.RankedRoute {
	ranked := make([]domain.RankedRoute, 0, len(itineraries))
	for _, it := range itineraries {
		ranked = append(ranked, rankRoute(it, settings))
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ValuePerMileUSD != ranked[j].ValuePerMileUSD {
			return ranked[i].ValuePerMileUSD > ranked[j].ValuePerMileUSD
		}
		return ranked[i].Itinerary.PriceTotal < ranked[j].Itinerary.PriceTotal
	})

	return ranked
}

func rankRoute(it domain.PricedItinerary, settings domain.ValuationSettings) domain.RankedRoute {
	miles := domain.MilesNeededForValue(it.PriceTotal, settings.FlightAwardCPM, settings.FlightTaxesUSD)
	vpm := domain.ValuePerMile(it.PriceTotal, miles, settings.FlightTaxesUSD)

	return domain.RankedRoute{
		Itinerary:         it,
		MilesNeeded:       miles,
		ValuePerMileUSD:   vpm,
		ValuePerMileCents: domain.RoundCents(vpm * 100),
	}
}

// SortRecommendations orders options by ValuePerMileCents, highest first.
// Sorting is stable: options with equal cents keep their relative order.
// Does NOT mutate the input slice.
func SortRecommendations(options []domain.RedemptionOption) []domain.RedemptionOption {
	result := make([]domain.RedemptionOption, len(options))
	copy(result, options)

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ValuePerMileCents > result[j].ValuePerMileCents
	})

	return result
}
