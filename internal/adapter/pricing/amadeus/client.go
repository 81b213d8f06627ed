// Package amadeus implements domain.PriceLookup against the Amadeus
// Self-Service flight offers API using OAuth2 client credentials.
package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/logger"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/retry"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/timeutil"
	"golang.org/x/sync/singleflight"
)

// SourceName is the unique identifier for the Amadeus price lookup.
const SourceName = "amadeus"

const (
	// DefaultBaseURL is the Amadeus test environment.
	DefaultBaseURL = "https://test.api.amadeus.com"

	// DefaultHTTPTimeout bounds a single HTTP round trip.
	DefaultHTTPTimeout = 10 * time.Second

	tokenPath  = "/v1/security/oauth2/token"
	offersPath = "/v2/shopping/flight-offers"

	// tokenExpiryMargin renews the token slightly before Amadeus expires it.
	tokenExpiryMargin = 30 * time.Second

	// DefaultMaxResponseBytes caps how much of a response body is read.
	DefaultMaxResponseBytes int64 = 5 << 20

	// maxErrorBody caps how much of an error response is kept in error messages.
	maxErrorBody = 256
)

// ErrMissingCredentials is returned when no API key or secret is configured.
var ErrMissingCredentials = errors.New("amadeus credentials not configured")

// ErrResponseTooLarge is returned when a response body exceeds the configured cap.
var ErrResponseTooLarge = errors.New("amadeus response too large")

// Config holds the client configuration.
type Config struct {
	// BaseURL is the API root, without a trailing slash
	BaseURL string

	// APIKey and APISecret are the OAuth2 client credentials
	APIKey    string
	APISecret string

	// HTTPClient is used for all requests; a client with DefaultHTTPTimeout is created when nil
	HTTPClient *http.Client

	// Retry controls how transient failures are retried
	Retry retry.Config

	// Clock drives token expiry; the real clock is used when nil
	Clock timeutil.Clock

	// MaxResponseBytes caps a response body; DefaultMaxResponseBytes is used when zero
	MaxResponseBytes int64
}

// Client is an Amadeus flight offers client.
// The access token is cached and shared across concurrent searches.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  string
	httpClient *http.Client
	retryCfg   retry.Config
	clock      timeutil.Clock
	maxBody    int64

	tokenGroup  singleflight.Group
	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultHTTPTimeout}
	}

	clock := cfg.Clock
	if clock == nil {
		clock = timeutil.NewRealClock()
	}

	retryCfg := cfg.Retry
	if retryCfg.MaxAttempts == 0 {
		retryCfg = retry.PricingConfig
	}

	maxBody := cfg.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = DefaultMaxResponseBytes
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		httpClient: httpClient,
		retryCfg:   retryCfg,
		clock:      clock,
		maxBody:    maxBody,
	}
}

// Name returns the source name.
func (c *Client) Name() string {
	return SourceName
}

// Search fetches flight offers for query and converts them to itineraries.
// Network errors, rate limiting and 5xx responses are retried; other 4xx
// responses fail immediately.
func (c *Client) Search(ctx context.Context, query domain.RouteQuery) ([]domain.PricedItinerary, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return nil, domain.NewPricingError(SourceName, fmt.Errorf("%w: %w", domain.ErrPricingAuth, ErrMissingCredentials))
	}

	log := logger.FromContext(ctx).WithSource(SourceName)

	cfg := c.retryCfg.
		WithRetryIf(domain.IsRetryable).
		WithOnRetry(func(attempt int, err error, wait time.Duration) {
			log.Warn().
				Err(err).
				Int("attempt", attempt).
				Dur("wait", wait).
				Msg("Retrying flight offers search")
		})

	body, err := retry.DoWithResult(ctx, func() ([]byte, error) {
		return c.fetchOffers(ctx, query)
	}, cfg)
	if err != nil {
		return nil, err
	}

	itineraries, err := ParseOffers(body)
	if err != nil {
		return nil, domain.NewPricingError(SourceName, err)
	}

	log.Debug().
		Str("origin", query.Origin).
		Str("destination", query.Destination).
		Int("itineraries", len(itineraries)).
		Msg("Flight offers received")

	return itineraries, nil
}

// fetchOffers performs one authenticated flight offers request.
func (c *Client) fetchOffers(ctx context.Context, query domain.RouteQuery) ([]byte, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("originLocationCode", query.Origin)
	params.Set("destinationLocationCode", query.Destination)
	params.Set("departureDate", query.DepartureDate)
	params.Set("adults", strconv.Itoa(max(query.Adults, domain.MinAdults)))
	if query.MaxResults > 0 {
		params.Set("max", strconv.Itoa(query.MaxResults))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+offersPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, domain.NewPricingError(SourceName, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	res, err := c.do(req)
	if err != nil {
		return nil, err
	}

	if res.status == http.StatusUnauthorized {
		// The cached token was revoked or expired early; the next attempt fetches a new one.
		c.invalidateToken()
		return nil, domain.NewRetryablePricingError(SourceName, fmt.Errorf("%w: offers request returned 401", domain.ErrPricingAuth))
	}
	if err := c.statusError(res); err != nil {
		return nil, err
	}

	return res.body, nil
}

// token returns a cached access token, requesting a new one when missing or expired.
//
// Callers that miss the cache at the same time share one token request, and
// c.mu is never held across it. The shared request ignores the caller's
// cancellation and is bounded by the HTTP client timeout; each caller still
// returns as soon as its own context is done.
func (c *Client) token(ctx context.Context) (string, error) {
	if token, ok := c.cachedToken(); ok {
		return token, nil
	}

	ch := c.tokenGroup.DoChan(tokenPath, func() (any, error) {
		return c.fetchToken(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", domain.NewPricingTimeoutError(SourceName)
		}
		return "", domain.NewPricingError(SourceName, ctx.Err())
	}
}

func (c *Client) cachedToken() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && c.clock.Now().Before(c.tokenExpiry) {
		return c.accessToken, true
	}
	return "", false
}

// fetchToken performs the OAuth2 client credentials exchange and caches the result.
func (c *Client) fetchToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.apiKey)
	form.Set("client_secret", c.apiSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+tokenPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", domain.NewPricingError(SourceName, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := c.do(req)
	if err != nil {
		return "", err
	}

	switch res.status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return "", domain.NewPricingError(SourceName, fmt.Errorf("%w: token request returned %d", domain.ErrPricingAuth, res.status))
	default:
		if err := c.statusError(res); err != nil {
			return "", err
		}
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(res.body, &result); err != nil {
		return "", domain.NewPricingError(SourceName, fmt.Errorf("failed to parse token response: %w", err))
	}
	if result.AccessToken == "" {
		return "", domain.NewPricingError(SourceName, fmt.Errorf("%w: token response has no access_token", domain.ErrPricingAuth))
	}

	lifetime := time.Duration(result.ExpiresIn)*time.Second - tokenExpiryMargin
	if lifetime < 0 {
		lifetime = 0
	}
	c.mu.Lock()
	c.accessToken = result.AccessToken
	c.tokenExpiry = c.clock.Now().Add(lifetime)
	c.mu.Unlock()

	return result.AccessToken, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.accessToken = ""
	c.tokenExpiry = time.Time{}
	c.mu.Unlock()
}

// reply is a fully read HTTP response.
type reply struct {
	status int
	header http.Header
	body   []byte
}

// do sends req and reads the whole body, up to c.maxBody bytes. Transport
// failures are retryable; an oversized body is not.
func (c *Client) do(req *http.Request) (reply, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return reply{}, domain.NewPricingTimeoutError(SourceName)
		}
		return reply{}, domain.NewRetryablePricingError(SourceName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return reply{status: resp.StatusCode}, domain.NewRetryablePricingError(SourceName, fmt.Errorf("failed to read response: %w", err))
	}
	if int64(len(body)) > c.maxBody {
		return reply{status: resp.StatusCode}, domain.NewPricingError(SourceName, fmt.Errorf("%w: limit is %d bytes", ErrResponseTooLarge, c.maxBody))
	}
	return reply{status: resp.StatusCode, header: resp.Header, body: body}, nil
}

// statusError classifies a non-2xx response. Rate limiting and 5xx are
// retryable, honoring Retry-After when the server sends one.
func (c *Client) statusError(res reply) error {
	if res.status >= 200 && res.status < 300 {
		return nil
	}

	err := fmt.Errorf("unexpected status %d: %s", res.status, truncate(res.body))
	if res.status == http.StatusTooManyRequests || res.status >= 500 {
		return retry.After(domain.NewRetryablePricingError(SourceName, err), c.retryAfter(res.header))
	}
	return domain.NewPricingError(SourceName, err)
}

// retryAfter parses a Retry-After header given in seconds or as an HTTP date.
func (c *Client) retryAfter(h http.Header) time.Duration {
	raw := strings.TrimSpace(h.Get("Retry-After"))
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(raw); err == nil {
		return at.Sub(c.clock.Now())
	}
	return 0
}

// truncate shortens body to at most maxErrorBody bytes without splitting a
// UTF-8 sequence.
func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) <= maxErrorBody {
		return s
	}

	cut := maxErrorBody
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// Ensure Client implements domain.PriceLookup at compile time.
var _ domain.PriceLookup = (*Client)(nil)
