package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/http/response"
	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/report"
	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/logger"
	"github.com/redemption-optimizer/redemption-optimizer/internal/usecase"
)

// MsgPricingAuth is returned when the pricing source rejects its credentials.
const MsgPricingAuth = "Flight pricing credentials were rejected"

// RecommendationHandler handles HTTP requests for the JSON API.
type RecommendationHandler struct {
	recommendations usecase.RecommendationUseCase
	feedback        usecase.FeedbackUseCase
	reports         *report.Generator
	pricingSource   string
}

// NewRecommendationHandler creates a new RecommendationHandler.
// pricingSource is reported by the health endpoint.
func NewRecommendationHandler(
	recommendations usecase.RecommendationUseCase,
	feedback usecase.FeedbackUseCase,
	reports *report.Generator,
	pricingSource string,
) *RecommendationHandler {
	return &RecommendationHandler{
		recommendations: recommendations,
		feedback:        feedback,
		reports:         reports,
		pricingSource:   pricingSource,
	}
}

// Recommend handles POST /api/v1/recommendations
//
// @Summary Recommend redemptions
// @Description Rank award flights for a route against a hotel night and a gift card conversion
// @Tags recommendations
// @Accept json
// @Produce json
// @Param request body RecommendationRequest true "Route and miles balance"
// @Success 200 {object} RecommendationResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "Pricing unavailable"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/recommendations [post]
func (h *RecommendationHandler) Recommend(c echo.Context) error {
	var req RecommendationRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	set, err := h.recommendations.Recommend(c.Request().Context(), req.ToDomain())
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Recommendations(c, ToRecommendationResponseDTO(set))
}

// Report handles GET /api/v1/recommendations/report
//
// @Summary Download a recommendation report
// @Description Run a recommendation and render it as a PDF document
// @Tags recommendations
// @Produce application/pdf
// @Param origin query string true "Origin IATA code" example(JFK)
// @Param destination query string true "Destination IATA code" example(LAX)
// @Param departure_date query string true "Departure date (YYYY-MM-DD)" example(2025-09-01)
// @Param miles_available query int false "Miles balance" example(30000)
// @Param adults query int false "Travelers (1-9)" example(1)
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 503 {object} response.ErrorDetail "Pricing unavailable"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/recommendations/report [get]
func (h *RecommendationHandler) Report(c echo.Context) error {
	var req RecommendationRequest

	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	ctx := c.Request().Context()
	set, err := h.recommendations.Recommend(ctx, req.ToDomain())
	if err != nil {
		return h.handleError(c, err)
	}

	body, err := h.reports.Render(set)
	if err != nil {
		logger.FromContext(ctx).Error().Err(err).Msg("Failed to render recommendation report")
		return response.InternalServerError(c)
	}

	return response.PDF(c, report.Filename(set), body)
}

// Examples handles GET /api/v1/examples
//
// @Summary Example valuations
// @Description Illustrative miles-needed and value-per-mile figures for each redemption category
// @Tags recommendations
// @Produce json
// @Success 200 {object} ExamplesDTO
// @Router /api/v1/examples [get]
func (h *RecommendationHandler) Examples(c echo.Context) error {
	return response.OK(c, ToExamplesDTO(h.recommendations.Examples(), h.recommendations.Settings()))
}

// SubmitFeedback handles POST /api/v1/feedback
//
// @Summary Submit feedback
// @Description Rate the recommendations for a route
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body FeedbackRequest true "Rating and comments"
// @Success 201 {object} FeedbackResponseDTO
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 500 {object} response.ErrorDetail "Feedback not saved"
// @Router /api/v1/feedback [post]
func (h *RecommendationHandler) SubmitFeedback(c echo.Context) error {
	var req FeedbackRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	saved, err := h.feedback.Submit(c.Request().Context(), req.ToDomain())
	if err != nil {
		return h.handleError(c, err)
	}

	return response.Created(c, ToFeedbackResponseDTO(saved))
}

// Health handles GET /health
//
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} response.HealthResponse
// @Router /health [get]
func (h *RecommendationHandler) Health(c echo.Context) error {
	return response.Health(c, h.pricingSource)
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *RecommendationHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *RecommendationHandler) handleError(c echo.Context, err error) error {
	logger.FromContext(c.Request().Context()).Warn().Err(err).Msg("Request failed")

	switch errorKind(c.Request().Context(), err) {
	case kindInvalid:
		return response.ValidationErrorWithMessage(c, err.Error())
	case kindCancelled:
		return response.RequestCancelled(c)
	case kindTimeout:
		return response.GatewayTimeout(c)
	case kindPricingAuth:
		return response.ServiceUnavailableWithMessage(c, MsgPricingAuth)
	case kindPricingUnavailable:
		return response.ServiceUnavailable(c)
	case kindFeedbackNotSaved:
		return response.FeedbackNotSaved(c)
	default:
		return response.InternalServerError(c)
	}
}

type failureKind int

const (
	kindInternal failureKind = iota
	kindInvalid
	kindCancelled
	kindTimeout
	kindPricingAuth
	kindPricingUnavailable
	kindFeedbackNotSaved
)

// errorKind classifies err for both the JSON and the HTML handlers.
// A done request context takes precedence over whatever the lookup returned.
func errorKind(ctx context.Context, err error) failureKind {
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return kindInvalid
	case errors.Is(err, context.Canceled):
		return kindCancelled
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, domain.ErrPricingTimeout):
		return kindTimeout
	case errors.Is(err, domain.ErrPricingAuth):
		return kindPricingAuth
	case errors.Is(err, domain.ErrPricingUnavailable):
		return kindPricingUnavailable
	case errors.Is(err, domain.ErrFeedbackNotSaved):
		return kindFeedbackNotSaved
	default:
		return kindInternal
	}
}
