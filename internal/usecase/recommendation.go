package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/logger"
)

// Default selection limits.
const (
	DefaultMaxFlightCandidates = 10
	DefaultTopFlights          = 5
)

// Labels used for the non-flight options.
const (
	HotelExampleLabel = "Sample hotel night (example)"
	GiftCardLabel     = "Gift card or statement credit"
)

// RecommendationUseCase defines the interface for redemption recommendations.
type RecommendationUseCase interface {
	// Recommend ranks flight awards for the route against a hotel example and a gift card conversion.
	Recommend(ctx context.Context, req domain.RecommendationRequest) (*domain.RecommendationSet, error)

	// Examples returns the illustrative valuations for each redemption category.
	Examples() domain.ExampleCalculations

	// Settings returns the valuation assumptions in use.
	Settings() domain.ValuationSettings
}

// Config contains selection limits for the use case.
type Config struct {
	// MaxFlightCandidates is how many ranked flights are considered
	MaxFlightCandidates int

	// TopFlights is how many flights make it into the recommendation list
	TopFlights int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MaxFlightCandidates: DefaultMaxFlightCandidates,
		TopFlights:          DefaultTopFlights,
	}
}

type recommendationUseCase struct {
	lookup   domain.PriceLookup
	settings domain.ValuationSettings
	config   Config
}

// NewRecommendationUseCase creates a RecommendationUseCase backed by the given price lookup.
// If config is nil, or a limit is not positive, the default is used.
func NewRecommendationUseCase(lookup domain.PriceLookup, settings domain.ValuationSettings, config *Config) RecommendationUseCase {
	cfg := DefaultConfig()
	if config != nil {
		if config.MaxFlightCandidates > 0 {
			cfg.MaxFlightCandidates = config.MaxFlightCandidates
		}
		if config.TopFlights > 0 {
			cfg.TopFlights = config.TopFlights
		}
	}

	return &recommendationUseCase{
		lookup:   lookup,
		settings: settings,
		config:   cfg,
	}
}

// Recommend implements RecommendationUseCase.Recommend.
func (uc *recommendationUseCase) Recommend(ctx context.Context, req domain.RecommendationRequest) (*domain.RecommendationSet, error) {
	req.Normalize()
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	query := req.RouteQuery
	query.MaxResults = uc.config.MaxFlightCandidates

	itineraries, err := uc.lookup.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPricingUnavailable, err)
	}

	log := logger.FromContext(ctx)
	if zeroPriced := countZeroPriced(itineraries); zeroPriced > 0 {
		log.Warn().
			Int("zero_priced", zeroPriced).
			Int("itineraries", len(itineraries)).
			Msg("Pricing source returned itineraries without a usable price")
	}

	ranked := RankRoutes(itineraries, uc.settings)
	if len(ranked) > uc.config.MaxFlightCandidates {
		ranked = ranked[:uc.config.MaxFlightCandidates]
	}

	candidates := make([]domain.RedemptionOption, 0, len(ranked))
	for _, r := range ranked {
		candidates = append(candidates, uc.flightOption(r, req.MilesAvailable))
	}

	flights, affordable := selectTopFlights(candidates, uc.config.TopFlights)

	options := make([]domain.RedemptionOption, 0, len(flights)+2)
	options = append(options, flights...)
	options = append(options, uc.hotelOption(req.MilesAvailable))
	options = append(options, uc.giftCardOption(req.MilesAvailable))

	set := &domain.RecommendationSet{
		Criteria:        req.RouteQuery,
		MilesAvailable:  req.MilesAvailable,
		Recommendations: SortRecommendations(options),
		Assumptions:     domain.NewAssumptions(uc.settings),
		Metadata: domain.RecommendationMetadata{
			FlightCandidates:  len(candidates),
			AffordableFlights: affordable,
			NothingAffordable: len(candidates) > 0 && affordable == 0,
			DataSource:        dataSource(itineraries, uc.lookup.Name()),
		},
	}

	log.Debug().
		Str("origin", req.Origin).
		Str("destination", req.Destination).
		Int("miles_available", req.MilesAvailable).
		Int("flight_candidates", set.Metadata.FlightCandidates).
		Int("affordable_flights", affordable).
		Str("data_source", set.Metadata.DataSource).
		Msg("Recommendations assembled")

	return set, nil
}

// Examples implements RecommendationUseCase.Examples.
func (uc *recommendationUseCase) Examples() domain.ExampleCalculations {
	return domain.NewExampleCalculations(uc.settings)
}

// Settings implements RecommendationUseCase.Settings.
func (uc *recommendationUseCase) Settings() domain.ValuationSettings {
	return uc.settings
}

func (uc *recommendationUseCase) flightOption(r domain.RankedRoute, milesAvailable int) domain.RedemptionOption {
	it := r.Itinerary
	label := it.RouteLabel()
	if codes := it.FlightCodes(); len(codes) > 0 {
		label = fmt.Sprintf("%s (%s)", label, strings.Join(codes, ", "))
	}

	return domain.RedemptionOption{
		Type:              domain.RedemptionFlightAward,
		Label:             label,
		CashPriceUSD:      it.PriceTotal,
		TaxesFeesUSD:      uc.settings.FlightTaxesUSD,
		MilesNeeded:       r.MilesNeeded,
		ValuePerMileUSD:   r.ValuePerMileUSD,
		ValuePerMileCents: r.ValuePerMileCents,
		Affordable:        r.MilesNeeded <= milesAvailable,
		Flight: &domain.FlightDetails{
			Direct:   it.Direct,
			Currency: it.Currency,
			Duration: it.Duration,
			Segments: it.Segments,
			Source:   it.Source,
		},
	}
}

func (uc *recommendationUseCase) hotelOption(milesAvailable int) domain.RedemptionOption {
	s := domain.Summarize(uc.settings.SampleHotelCashUSD, 0, uc.settings.HotelCPM)
	return domain.RedemptionOption{
		Type:              domain.RedemptionHotelAward,
		Label:             HotelExampleLabel,
		CashPriceUSD:      s.CashPriceUSD,
		TaxesFeesUSD:      s.TaxesFeesUSD,
		MilesNeeded:       s.MilesNeeded,
		ValuePerMileUSD:   s.ValuePerMileUSD,
		ValuePerMileCents: s.ValuePerMileCents,
		Affordable:        s.MilesNeeded <= milesAvailable,
	}
}

// giftCardOption converts the whole balance at the gift card rate; there is no cash target to price against.
func (uc *recommendationUseCase) giftCardOption(milesAvailable int) domain.RedemptionOption {
	return domain.RedemptionOption{
		Type:              domain.RedemptionGiftCard,
		Label:             GiftCardLabel,
		CashValueUSD:      domain.RoundCents(float64(milesAvailable) * uc.settings.GiftCardCPM / 100),
		ValuePerMileUSD:   uc.settings.GiftCardCPM / 100,
		ValuePerMileCents: uc.settings.GiftCardCPM,
		Affordable:        true,
	}
}

// selectTopFlights keeps the best n affordable flights, or the best n overall when none are affordable.
// It returns the selection and the number of affordable candidates.
func selectTopFlights(candidates []domain.RedemptionOption, n int) ([]domain.RedemptionOption, int) {
	affordable := make([]domain.RedemptionOption, 0, len(candidates))
	for _, c := range candidates {
		if c.Affordable {
			affordable = append(affordable, c)
		}
	}

	pool := affordable
	if len(pool) == 0 {
		pool = candidates
	}

	pool = SortRecommendations(pool)
	if len(pool) > n {
		pool = pool[:n]
	}
	return pool, len(affordable)
}

func countZeroPriced(itineraries []domain.PricedItinerary) int {
	n := 0
	for _, it := range itineraries {
		if it.PriceTotal <= 0 {
			n++
		}
	}
	return n
}

// dataSource lists the distinct itinerary sources, or the lookup name when there are none.
func dataSource(itineraries []domain.PricedItinerary, lookupName string) string {
	seen := make(map[string]bool)
	for _, it := range itineraries {
		if it.Source != "" {
			seen[it.Source] = true
		}
	}
	if len(seen) == 0 {
		return lookupName
	}

	sources := make([]string, 0, len(seen))
	for s := range seen {
		sources = append(sources, s)
	}
	sort.Strings(sources)
	return strings.Join(sources, ",")
}

// Ensure recommendationUseCase implements RecommendationUseCase at compile time.
var _ RecommendationUseCase = (*recommendationUseCase)(nil)
