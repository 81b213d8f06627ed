package http

import (
	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
)

// FeedbackThanks is the acknowledgement shown after feedback is stored.
const FeedbackThanks = "Thanks for your feedback!"

// ToRecommendationResponseDTO converts a domain RecommendationSet to a RecommendationResponseDTO.
func ToRecommendationResponseDTO(set *domain.RecommendationSet) *RecommendationResponseDTO {
	if set == nil {
		return nil
	}

	dto := &RecommendationResponseDTO{
		SearchCriteria: SearchCriteriaDTO{
			Origin:        set.Criteria.Origin,
			Destination:   set.Criteria.Destination,
			DepartureDate: set.Criteria.DepartureDate,
			Adults:        set.Criteria.Adults,
		},
		MilesAvailable:  set.MilesAvailable,
		Recommendations: make([]RecommendationDTO, len(set.Recommendations)),
		Assumptions:     toAssumptionsDTO(set.Assumptions),
		Metadata: MetadataDTO{
			FlightCandidates:  set.Metadata.FlightCandidates,
			AffordableFlights: set.Metadata.AffordableFlights,
			NothingAffordable: set.Metadata.NothingAffordable,
			DataSource:        set.Metadata.DataSource,
		},
	}

	for i := range set.Recommendations {
		dto.Recommendations[i] = ToRecommendationDTO(i+1, &set.Recommendations[i])
	}

	return dto
}

// ToRecommendationDTO converts a domain RedemptionOption to a RecommendationDTO with the given rank.
func ToRecommendationDTO(rank int, opt *domain.RedemptionOption) RecommendationDTO {
	dto := RecommendationDTO{
		Rank:              rank,
		Type:              string(opt.Type),
		Label:             opt.Label,
		CashPriceUSD:      opt.CashPriceUSD,
		TaxesFeesUSD:      opt.TaxesFeesUSD,
		MilesNeeded:       opt.MilesNeeded,
		ValuePerMileUSD:   opt.ValuePerMileUSD,
		ValuePerMileCents: opt.ValuePerMileCents,
		Affordable:        opt.Affordable,
	}

	if opt.Type == domain.RedemptionGiftCard {
		value := opt.CashValueUSD
		dto.CashValueUSD = &value
	}

	if opt.Flight != nil {
		dto.Flight = toFlightDTO(opt.Flight)
	}

	return dto
}

func toFlightDTO(f *domain.FlightDetails) *FlightDTO {
	dto := &FlightDTO{
		Direct:   f.Direct,
		Currency: f.Currency,
		Duration: DurationDTO{
			TotalMinutes: f.Duration.TotalMinutes,
			Formatted:    f.Duration.Formatted,
		},
		Source:   f.Source,
		Segments: make([]SegmentDTO, len(f.Segments)),
	}
	if len(f.Segments) > 1 {
		dto.Stops = len(f.Segments) - 1
	}

	for i, seg := range f.Segments {
		dto.Segments[i] = SegmentDTO{
			FlightNumber: seg.CarrierCode + seg.FlightNumber,
			CarrierCode:  seg.CarrierCode,
			Departure: FlightPointDTO{
				Airport:  seg.Departure.Airport,
				DateTime: seg.Departure.At,
			},
			Arrival: FlightPointDTO{
				Airport:  seg.Arrival.Airport,
				DateTime: seg.Arrival.At,
			},
		}
	}

	return dto
}

func toAssumptionsDTO(a domain.Assumptions) AssumptionsDTO {
	return AssumptionsDTO{
		FlightAwardCPM: a.FlightAwardCPM,
		HotelCPM:       a.HotelCPM,
		GiftCardCPM:    a.GiftCardCPM,
		FlightTaxesUSD: a.FlightTaxesUSD,
	}
}

// ToExamplesDTO converts example calculations and the settings behind them.
func ToExamplesDTO(ex domain.ExampleCalculations, settings domain.ValuationSettings) *ExamplesDTO {
	return &ExamplesDTO{
		Flight:      toExampleDTO(ex.Flight),
		Hotel:       toExampleDTO(ex.Hotel),
		GiftCard:    toExampleDTO(ex.GiftCard),
		Assumptions: toAssumptionsDTO(domain.NewAssumptions(settings)),
	}
}

func toExampleDTO(s domain.RedemptionSummary) ExampleDTO {
	return ExampleDTO{
		CashPriceUSD:      s.CashPriceUSD,
		TaxesFeesUSD:      s.TaxesFeesUSD,
		CPMCents:          s.CPMCents,
		MilesNeeded:       s.MilesNeeded,
		ValuePerMileCents: s.ValuePerMileCents,
	}
}

// ToFeedbackResponseDTO converts stored feedback to its acknowledgement.
func ToFeedbackResponseDTO(f *domain.Feedback) *FeedbackResponseDTO {
	return &FeedbackResponseDTO{
		ID:        f.ID,
		Rating:    f.Rating,
		CreatedAt: f.CreatedAt,
		Message:   FeedbackThanks,
	}
}
