package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/logger"
)

// DefaultLookupTimeout bounds how long the primary price lookup may take.
const DefaultLookupTimeout = 8 * time.Second

// FallbackLookup queries a primary price lookup and, when it fails for any reason,
// answers from a fallback lookup instead. It implements domain.PriceLookup.
type FallbackLookup struct {
	primary  domain.PriceLookup
	fallback domain.PriceLookup
	timeout  time.Duration
}

// NewFallbackLookup composes primary and fallback. A non-positive timeout uses DefaultLookupTimeout.
func NewFallbackLookup(primary, fallback domain.PriceLookup, timeout time.Duration) *FallbackLookup {
	if timeout <= 0 {
		timeout = DefaultLookupTimeout
	}
	return &FallbackLookup{
		primary:  primary,
		fallback: fallback,
		timeout:  timeout,
	}
}

// Name returns "<primary>+<fallback>".
func (f *FallbackLookup) Name() string {
	return f.primary.Name() + "+" + f.fallback.Name()
}

// Search implements domain.PriceLookup.
// The timeout applies to the primary only; the fallback runs under the caller's context.
func (f *FallbackLookup) Search(ctx context.Context, query domain.RouteQuery) ([]domain.PricedItinerary, error) {
	itineraries, err := f.searchPrimary(ctx, query)
	if err == nil {
		return itineraries, nil
	}

	log := logger.FromContext(ctx).WithSource(f.primary.Name())
	log.Warn().
		Err(err).
		Str("fallback", f.fallback.Name()).
		Str("origin", query.Origin).
		Str("destination", query.Destination).
		Msg("Primary pricing source failed, using fallback data")

	itineraries, fbErr := f.fallback.Search(ctx, query)
	if fbErr != nil {
		return nil, errors.Join(err, domain.NewPricingError(f.fallback.Name(), fbErr))
	}
	return itineraries, nil
}

// searchPrimary calls the primary lookup with a timeout and converts a panic into an error.
func (f *FallbackLookup) searchPrimary(ctx context.Context, query domain.RouteQuery) (itineraries []domain.PricedItinerary, err error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			itineraries = nil
			err = domain.NewPricingError(f.primary.Name(), fmt.Errorf("lookup panic: %v", r))
		}
	}()

	itineraries, err = f.primary.Search(ctx, query)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, domain.ErrPricingTimeout) {
		err = fmt.Errorf("%w: %w", domain.NewPricingTimeoutError(f.primary.Name()), err)
	}
	return itineraries, err
}

// Ensure FallbackLookup implements domain.PriceLookup at compile time.
var _ domain.PriceLookup = (*FallbackLookup)(nil)
