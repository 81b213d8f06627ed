// Package integration provides helpers and integration tests for the redemption optimizer.
// Integration tests verify that components work together correctly, including
// HTTP handlers, use cases, price lookups and feedback storage.
package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	httpAdapter "github.com/redemption-optimizer/redemption-optimizer/internal/adapter/http"
	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/http/middleware"
	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/pricing/amadeus"
	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/report"
	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/logger"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/retry"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/timeutil"
	"github.com/redemption-optimizer/redemption-optimizer/internal/usecase"
)

// FixedNow is the time reported by the test clock.
var FixedNow = time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)

// TestServer wraps an Echo instance wired like the real server.
type TestServer struct {
	Echo *echo.Echo
}

// NewTestServer creates a test server backed by lookup and repo with default valuation settings.
func NewTestServer(lookup domain.PriceLookup, repo domain.FeedbackRepository) *TestServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = httpAdapter.MustTemplateRenderer()

	middleware.SetupWithOptions(e, logger.Nop().Logger, middleware.Options{
		Recovery: middleware.RecoveryConfig{HTMLTemplate: httpAdapter.TemplateError},
	})

	recommendations := usecase.NewRecommendationUseCase(lookup, domain.DefaultValuationSettings(), nil)
	feedback := usecase.NewFeedbackUseCase(repo)
	clock := timeutil.NewMockClock(FixedNow)

	api := httpAdapter.NewRecommendationHandler(recommendations, feedback, report.NewGenerator(clock, "UTC"), lookup.Name())
	httpAdapter.RegisterRoutes(e, api, httpAdapter.NewWebHandler(recommendations, feedback))

	return &TestServer{Echo: e}
}

// NewAmadeusLookup creates an Amadeus client pointed at baseURL with fast retries.
func NewAmadeusLookup(baseURL string) *amadeus.Client {
	return amadeus.NewClient(amadeus.Config{
		BaseURL:   baseURL,
		APIKey:    "test-key",
		APISecret: "test-secret",
		Retry:     retry.PricingConfig.WithInitialDelay(time.Millisecond).WithMaxDelay(5 * time.Millisecond),
		Clock:     timeutil.NewMockClock(FixedNow),
	})
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	RawBody     string
	Form        url.Values
	Accept      string
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (ts *TestServer) Do(req Request) Response {
	var bodyReader *bytes.Reader
	switch {
	case req.Form != nil:
		bodyReader = bytes.NewReader([]byte(req.Form.Encode()))
	case req.RawBody != "":
		bodyReader = bytes.NewReader([]byte(req.RawBody))
	case req.Body != nil:
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	default:
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	switch {
	case req.ContentType != "":
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	case req.Form != nil:
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	case req.Body != nil:
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if req.Accept != "" {
		httpReq.Header.Set(echo.HeaderAccept, req.Accept)
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// RecommendRequest posts a JSON recommendation request.
func (ts *TestServer) RecommendRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/recommendations",
		Body:   body,
	})
}

// FeedbackRequest posts JSON feedback.
func (ts *TestServer) FeedbackRequest(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/feedback",
		Body:   body,
	})
}

// PostForm submits an HTML form.
func (ts *TestServer) PostForm(path string, form url.Values) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   path,
		Form:   form,
	})
}

// Get makes a GET request.
func (ts *TestServer) Get(path string) Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   path,
	})
}

// ParseRecommendations parses the response body as a recommendation response.
func (r *Response) ParseRecommendations() (*httpAdapter.RecommendationResponseDTO, error) {
	var resp httpAdapter.RecommendationResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseFeedback parses the response body as a feedback acknowledgement.
func (r *Response) ParseFeedback() (*httpAdapter.FeedbackResponseDTO, error) {
	var resp httpAdapter.FeedbackResponseDTO
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}

// HTML returns the body as a string.
func (r *Response) HTML() string {
	return strings.TrimSpace(string(r.Body))
}

// RecommendationBody is a helper struct for building recommendation request bodies.
type RecommendationBody struct {
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	DepartureDate  string `json:"departureDate"`
	MilesAvailable int    `json:"milesAvailable"`
	Adults         int    `json:"adults,omitempty"`
}

// DefaultRecommendationBody returns JFK → LAX on 2025-09-01 with 30,000 miles.
func DefaultRecommendationBody() RecommendationBody {
	return RecommendationBody{
		Origin:         "JFK",
		Destination:    "LAX",
		DepartureDate:  "2025-09-01",
		MilesAvailable: 30000,
	}
}

// CountType returns how many recommendations have the given type.
func CountType(resp *httpAdapter.RecommendationResponseDTO, t domain.RedemptionType) int {
	n := 0
	for _, r := range resp.Recommendations {
		if r.Type == string(t) {
			n++
		}
	}
	return n
}

// FindType returns the first recommendation of the given type, or nil.
func FindType(resp *httpAdapter.RecommendationResponseDTO, t domain.RedemptionType) *httpAdapter.RecommendationDTO {
	for i := range resp.Recommendations {
		if resp.Recommendations[i].Type == string(t) {
			return &resp.Recommendations[i]
		}
	}
	return nil
}
