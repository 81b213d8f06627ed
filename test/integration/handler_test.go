package integration

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/redemption-optimizer/redemption-optimizer/internal/adapter/http"
	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/pricing/demo"
	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/storage/memory"
	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/storage/sqlstore"
	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/timeutil"
	"github.com/redemption-optimizer/redemption-optimizer/internal/usecase"
	"github.com/redemption-optimizer/redemption-optimizer/test/mock"
	"github.com/redemption-optimizer/redemption-optimizer/test/testutil"
)

func newMemoryRepo() *memory.Repository {
	return memory.NewRepository(timeutil.NewMockClock(FixedNow))
}

// TestHandler_Recommend_DemoData tests the full recommendation flow over the demo dataset.
func TestHandler_Recommend_DemoData(t *testing.T) {
	// Arrange
	ts := NewTestServer(demo.NewLookup(), newMemoryRepo())

	// Act
	resp := ts.RecommendRequest(DefaultRecommendationBody())

	// Assert
	require.Equal(t, http.StatusOK, resp.Code)

	recs, err := resp.ParseRecommendations()
	require.NoError(t, err)
	require.Len(t, recs.Recommendations, 4)
	assert.Equal(t, 30000, recs.MilesAvailable)
	assert.Equal(t, "JFK", recs.SearchCriteria.Origin)
	assert.Equal(t, 2, CountType(recs, domain.RedemptionFlightAward))
	assert.Equal(t, 2, recs.Metadata.AffordableFlights)
	assert.False(t, recs.Metadata.NothingAffordable)
	assert.Equal(t, demo.SourceName, recs.Metadata.DataSource)

	miles := map[float64]int{}
	for _, r := range recs.Recommendations[:2] {
		assert.Equal(t, string(domain.RedemptionFlightAward), r.Type)
		assert.True(t, r.Affordable)
		require.NotNil(t, r.Flight)
		miles[r.CashPriceUSD] = r.MilesNeeded
	}
	assert.Equal(t, 24185, miles[320])
	assert.Equal(t, 21108, miles[280])

	hotel := recs.Recommendations[2]
	assert.Equal(t, string(domain.RedemptionHotelAward), hotel.Type)
	assert.Equal(t, 31429, hotel.MilesNeeded)
	assert.False(t, hotel.Affordable)

	gift := recs.Recommendations[3]
	assert.Equal(t, string(domain.RedemptionGiftCard), gift.Type)
	require.NotNil(t, gift.CashValueUSD)
	assert.Equal(t, 150.0, *gift.CashValueUSD)

	for i, r := range recs.Recommendations {
		assert.Equal(t, i+1, r.Rank)
	}
}

// TestHandler_Recommend_AmadeusOffers tests pricing through the Amadeus client against a fake API.
func TestHandler_Recommend_AmadeusOffers(t *testing.T) {
	// Arrange
	server := testutil.NewPricingServer(t, testutil.LoadTestJSON(t, "amadeus_flight_offers.json"))
	ts := NewTestServer(NewAmadeusLookup(server.URL), newMemoryRepo())

	// Act
	resp := ts.RecommendRequest(DefaultRecommendationBody())

	// Assert
	require.Equal(t, http.StatusOK, resp.Code)

	recs, err := resp.ParseRecommendations()
	require.NoError(t, err)
	assert.Equal(t, 3, recs.Metadata.FlightCandidates)
	assert.Equal(t, 2, recs.Metadata.AffordableFlights)
	assert.Equal(t, "amadeus", recs.Metadata.DataSource)
	assert.Equal(t, 1, server.TokenRequests())
	assert.Equal(t, 1, server.OfferCalls())

	for _, r := range recs.Recommendations {
		if r.Type == string(domain.RedemptionFlightAward) {
			assert.True(t, r.Affordable)
			assert.NotEqual(t, 612.40, r.CashPriceUSD, "unaffordable offer should be dropped")
		}
	}
}

// TestHandler_Recommend_FallsBackToDemo tests that a failing pricing API is replaced by demo data.
func TestHandler_Recommend_FallsBackToDemo(t *testing.T) {
	// Arrange
	server := testutil.NewPricingServer(t, testutil.LoadTestJSON(t, "amadeus_flight_offers.json"))
	server.FailWith(http.StatusBadGateway)
	lookup := usecase.NewFallbackLookup(NewAmadeusLookup(server.URL), demo.NewLookup(), 0)
	ts := NewTestServer(lookup, newMemoryRepo())

	// Act
	resp := ts.RecommendRequest(DefaultRecommendationBody())

	// Assert
	require.Equal(t, http.StatusOK, resp.Code)

	recs, err := resp.ParseRecommendations()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, recs.Metadata.FlightCandidates, 2)
	assert.Equal(t, demo.SourceName, recs.Metadata.DataSource)
	assert.GreaterOrEqual(t, server.OfferCalls(), 1)
}

// TestHandler_Recommend_GiftCardScalesWithBalance tests the gift card cash value.
func TestHandler_Recommend_GiftCardScalesWithBalance(t *testing.T) {
	tests := []struct {
		name  string
		miles int
		want  float64
	}{
		{name: "ten thousand", miles: 10000, want: 50},
		{name: "thirty thousand", miles: 30000, want: 150},
		{name: "zero", miles: 0, want: 0},
	}

	ts := NewTestServer(demo.NewLookup(), newMemoryRepo())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := DefaultRecommendationBody()
			body.MilesAvailable = tt.miles

			resp := ts.RecommendRequest(body)
			require.Equal(t, http.StatusOK, resp.Code)

			recs, err := resp.ParseRecommendations()
			require.NoError(t, err)

			gift := FindType(recs, domain.RedemptionGiftCard)
			require.NotNil(t, gift)
			require.NotNil(t, gift.CashValueUSD)
			assert.Equal(t, tt.want, *gift.CashValueUSD)
		})
	}
}

// TestHandler_Recommend_NothingAffordable tests that flights are still shown when none fit the balance.
func TestHandler_Recommend_NothingAffordable(t *testing.T) {
	// Arrange
	ts := NewTestServer(demo.NewLookup(), newMemoryRepo())
	body := DefaultRecommendationBody()
	body.MilesAvailable = 1000

	// Act
	resp := ts.RecommendRequest(body)

	// Assert
	require.Equal(t, http.StatusOK, resp.Code)
	recs, err := resp.ParseRecommendations()
	require.NoError(t, err)
	assert.True(t, recs.Metadata.NothingAffordable)
	assert.Equal(t, 2, CountType(recs, domain.RedemptionFlightAward))
	for _, r := range recs.Recommendations {
		if r.Type == string(domain.RedemptionFlightAward) {
			assert.False(t, r.Affordable)
		}
	}
}

// TestHandler_ValidationErrors tests request validation through the full stack.
func TestHandler_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RecommendationBody)
		field  string
	}{
		{name: "missing origin", mutate: func(b *RecommendationBody) { b.Origin = "" }, field: "origin"},
		{name: "bad destination", mutate: func(b *RecommendationBody) { b.Destination = "LA" }, field: "destination"},
		{name: "same airports", mutate: func(b *RecommendationBody) { b.Destination = "JFK" }, field: "destination"},
		{name: "bad date", mutate: func(b *RecommendationBody) { b.DepartureDate = "09/01/2025" }, field: "departureDate"},
		{name: "negative miles", mutate: func(b *RecommendationBody) { b.MilesAvailable = -5 }, field: "milesAvailable"},
		{name: "too many adults", mutate: func(b *RecommendationBody) { b.Adults = 10 }, field: "adults"},
	}

	lookup := mock.NewLookup("mock").WithItineraries(mock.SampleItineraries("JFK", "LAX", 2))
	ts := NewTestServer(lookup, newMemoryRepo())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := DefaultRecommendationBody()
			tt.mutate(&body)

			resp := ts.RecommendRequest(body)

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			errResp, err := resp.ParseError()
			require.NoError(t, err)
			assert.Equal(t, "validation_error", errResp["code"])

			details, ok := errResp["details"].(map[string]interface{})
			require.True(t, ok, "details should be a map")
			assert.Contains(t, details, tt.field)
		})
	}

	assert.Zero(t, lookup.CallCount(), "invalid requests must not reach the price lookup")
}

// TestHandler_PricingUnavailable tests that a failing lookup without fallback maps to 503.
func TestHandler_PricingUnavailable(t *testing.T) {
	// Arrange
	lookup := mock.NewLookup("amadeus").WithError(domain.NewPricingError("amadeus", domain.ErrPricingUnavailable))
	ts := NewTestServer(lookup, newMemoryRepo())

	// Act
	resp := ts.RecommendRequest(DefaultRecommendationBody())

	// Assert
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	errResp, err := resp.ParseError()
	require.NoError(t, err)
	assert.Equal(t, "service_unavailable", errResp["code"])
}

// TestHandler_HealthCheck tests the health endpoint.
func TestHandler_HealthCheck(t *testing.T) {
	ts := NewTestServer(demo.NewLookup(), newMemoryRepo())

	resp := ts.Get("/health")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, string(resp.Body), `"status":"ok"`)
	assert.Contains(t, string(resp.Body), `"pricingSource":"demo"`)
}

// TestHandler_InvalidJSON tests handling of malformed request bodies.
func TestHandler_InvalidJSON(t *testing.T) {
	ts := NewTestServer(demo.NewLookup(), newMemoryRepo())

	resp := ts.Do(Request{
		Method:      http.MethodPost,
		Path:        "/api/v1/recommendations",
		RawBody:     "{not json",
		ContentType: "application/json",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

// TestHandler_Examples tests the example calculations endpoint.
func TestHandler_Examples(t *testing.T) {
	ts := NewTestServer(demo.NewLookup(), newMemoryRepo())

	resp := ts.Get("/api/v1/examples")

	require.Equal(t, http.StatusOK, resp.Code)
	body := string(resp.Body)
	assert.Contains(t, body, `"miles_needed":26493`)
	assert.Contains(t, body, `"miles_needed":31429`)
	assert.Contains(t, body, `"miles_needed":20000`)
}

// TestHandler_Report tests the PDF export of a recommendation set.
func TestHandler_Report(t *testing.T) {
	ts := NewTestServer(demo.NewLookup(), newMemoryRepo())

	resp := ts.Get("/api/v1/recommendations/report?origin=JFK&destination=LAX&departure_date=2025-09-01&miles_available=30000")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "application/pdf", resp.Headers.Get("Content-Type"))
	assert.Contains(t, resp.Headers.Get("Content-Disposition"), "attachment")
	assert.Contains(t, resp.Headers.Get("Content-Disposition"), ".pdf")
	assert.True(t, len(resp.Body) > 4 && string(resp.Body[:4]) == "%PDF")
}

// TestHandler_WebPage tests the browser flow from the home page to rendered results.
func TestHandler_WebPage(t *testing.T) {
	ts := NewTestServer(demo.NewLookup(), newMemoryRepo())

	home := ts.Get("/")
	require.Equal(t, http.StatusOK, home.Code)
	assert.Contains(t, home.HTML(), "Redemption Optimizer")
	assert.Contains(t, home.HTML(), "26,493")

	resp := ts.PostForm("/recommend", url.Values{
		"origin":          {"jfk"},
		"destination":     {"lax"},
		"departure_date":  {"2025-09-01"},
		"miles_available": {"30000"},
	})

	require.Equal(t, http.StatusOK, resp.Code)
	html := resp.HTML()
	assert.Contains(t, html, "Top recommendations")
	assert.Contains(t, html, "24,185")
	assert.Contains(t, html, "21,108")
	assert.Contains(t, html, "$150.00 value")
	assert.Contains(t, html, "/api/v1/recommendations/report?")
}

// TestHandler_WebPage_ValidationErrors tests that a bad form is redisplayed with field errors.
func TestHandler_WebPage_ValidationErrors(t *testing.T) {
	ts := NewTestServer(demo.NewLookup(), newMemoryRepo())

	resp := ts.PostForm("/recommend", url.Values{
		"origin":          {"JFK"},
		"destination":     {"JFK"},
		"departure_date":  {"2025-09-01"},
		"miles_available": {"lots"},
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	html := resp.HTML()
	assert.Contains(t, html, "origin and destination must be different")
	assert.Contains(t, html, "must be a whole number")
	assert.NotContains(t, html, "Top recommendations")
}

// TestHandler_Feedback_SQLite tests feedback persistence through the JSON API and the form.
func TestHandler_Feedback_SQLite(t *testing.T) {
	// Arrange
	store, err := sqlstore.Open(context.Background(), sqlstore.DriverSQLite, testutil.TempSQLiteDSN(t), timeutil.NewMockClock(FixedNow))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	ts := NewTestServer(demo.NewLookup(), store)

	// Act
	first := ts.FeedbackRequest(httpAdapter.FeedbackRequest{Origin: "JFK", Destination: "LAX", Rating: 5, Comments: "Helpful"})
	second := ts.FeedbackRequest(httpAdapter.FeedbackRequest{Rating: 3})

	// Assert
	require.Equal(t, http.StatusCreated, first.Code)
	require.Equal(t, http.StatusCreated, second.Code)

	fb1, err := first.ParseFeedback()
	require.NoError(t, err)
	fb2, err := second.ParseFeedback()
	require.NoError(t, err)
	assert.Greater(t, fb2.ID, fb1.ID)
	assert.Equal(t, 5, fb1.Rating)
	assert.True(t, fb1.CreatedAt.Equal(FixedNow))

	form := ts.PostForm("/feedback", url.Values{"rating": {"4"}, "comments": {"From the page"}, "origin": {"JFK"}})
	assert.Equal(t, http.StatusSeeOther, form.Code)
	assert.Equal(t, "/?feedback=thanks", form.Headers.Get("Location"))

	thanks := ts.Get("/?feedback=thanks")
	assert.Contains(t, thanks.HTML(), httpAdapter.FeedbackThanks)
}

// TestHandler_Feedback_Invalid tests that invalid feedback is rejected without being stored.
func TestHandler_Feedback_Invalid(t *testing.T) {
	repo := newMemoryRepo()
	ts := NewTestServer(demo.NewLookup(), repo)

	resp := ts.FeedbackRequest(httpAdapter.FeedbackRequest{Rating: 9})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Zero(t, repo.Len())
}
