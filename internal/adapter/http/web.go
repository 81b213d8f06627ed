package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/http/response"
	"github.com/redemption-optimizer/redemption-optimizer/internal/domain"
	"github.com/redemption-optimizer/redemption-optimizer/internal/infrastructure/logger"
	"github.com/redemption-optimizer/redemption-optimizer/internal/usecase"
)

// Query values of the feedback flash on the home page.
const (
	feedbackThanks = "thanks"
	feedbackFailed = "error"
)

// WebHandler serves the HTML pages.
type WebHandler struct {
	recommendations usecase.RecommendationUseCase
	feedback        usecase.FeedbackUseCase
}

// NewWebHandler creates a new WebHandler.
func NewWebHandler(recommendations usecase.RecommendationUseCase, feedback usecase.FeedbackUseCase) *WebHandler {
	return &WebHandler{
		recommendations: recommendations,
		feedback:        feedback,
	}
}

// pageForm echoes the submitted form values back into the page.
type pageForm struct {
	Origin         string
	Destination    string
	DepartureDate  string
	MilesAvailable string
	Comments       string
}

// PageData is the view model of the home page.
type PageData struct {
	Form      pageForm
	Errors    map[string]string
	Examples  domain.ExampleCalculations
	Results   *domain.RecommendationSet
	ReportURL string
	Flash     string
	Notice    string
}

func (h *WebHandler) newPage(form pageForm) *PageData {
	return &PageData{
		Form:     form,
		Errors:   map[string]string{},
		Examples: h.recommendations.Examples(),
	}
}

// Index handles GET /
func (h *WebHandler) Index(c echo.Context) error {
	page := h.newPage(pageForm{})

	switch c.QueryParam("feedback") {
	case feedbackThanks:
		page.Flash = FeedbackThanks
	case feedbackFailed:
		page.Notice = response.MsgFeedbackNotSaved
	}

	return c.Render(http.StatusOK, TemplateIndex, page)
}

// Recommend handles POST /recommend
func (h *WebHandler) Recommend(c echo.Context) error {
	form := readForm(c)
	page := h.newPage(form)

	errs := &ValidationErrors{}
	req := RecommendationRequest{
		Origin:        form.Origin,
		Destination:   form.Destination,
		DepartureDate: form.DepartureDate,
	}
	req.MilesAvailable = parseFormInt(errs, "milesAvailable", form.MilesAvailable, 0)
	req.Adults = parseFormInt(errs, "adults", c.FormValue("adults"), domain.MinAdults)
	req.validate(errs)

	if errs.HasErrors() {
		page.Errors = errs.ToMap()
		return c.Render(http.StatusBadRequest, TemplateIndex, page)
	}

	set, err := h.recommendations.Recommend(c.Request().Context(), req.ToDomain())
	if err != nil {
		status, message := pageError(c, err)
		page.Notice = message
		return c.Render(status, TemplateIndex, page)
	}

	page.Form.Origin = set.Criteria.Origin
	page.Form.Destination = set.Criteria.Destination
	page.Results = set
	page.ReportURL = reportURL(&req)
	return c.Render(http.StatusOK, TemplateIndex, page)
}

// Feedback handles POST /feedback
func (h *WebHandler) Feedback(c echo.Context) error {
	form := readForm(c)

	errs := &ValidationErrors{}
	req := FeedbackRequest{
		Origin:        form.Origin,
		Destination:   form.Destination,
		DepartureDate: form.DepartureDate,
		Comments:      form.Comments,
	}
	req.MilesAvailable = parseFormInt(errs, "milesAvailable", form.MilesAvailable, 0)
	req.Rating = parseFormInt(errs, "rating", c.FormValue("rating"), 0)
	req.validate(errs)

	if errs.HasErrors() {
		page := h.newPage(form)
		page.Errors = errs.ToMap()
		page.Notice = response.MsgValidationFailed
		return c.Render(http.StatusBadRequest, TemplateIndex, page)
	}

	if _, err := h.feedback.Submit(c.Request().Context(), req.ToDomain()); err != nil {
		logger.FromContext(c.Request().Context()).Warn().Err(err).Msg("Feedback form not saved")
		return c.Redirect(http.StatusSeeOther, "/?feedback="+feedbackFailed)
	}

	return c.Redirect(http.StatusSeeOther, "/?feedback="+feedbackThanks)
}

func readForm(c echo.Context) pageForm {
	return pageForm{
		Origin:         c.FormValue("origin"),
		Destination:    c.FormValue("destination"),
		DepartureDate:  c.FormValue("departure_date"),
		MilesAvailable: c.FormValue("miles_available"),
		Comments:       c.FormValue("comments"),
	}
}

// pageError maps a use case failure to a status and a notice for the page.
func pageError(c echo.Context, err error) (int, string) {
	logger.FromContext(c.Request().Context()).Warn().Err(err).Msg("Recommendation page failed")

	switch errorKind(c.Request().Context(), err) {
	case kindInvalid:
		return http.StatusBadRequest, err.Error()
	case kindCancelled:
		return http.StatusGatewayTimeout, response.MsgRequestCancelled
	case kindTimeout:
		return http.StatusGatewayTimeout, response.MsgTimeout
	case kindPricingAuth:
		return http.StatusServiceUnavailable, MsgPricingAuth
	case kindPricingUnavailable:
		return http.StatusServiceUnavailable, response.MsgServiceUnavailable
	default:
		return http.StatusInternalServerError, response.MsgInternalError
	}
}

func reportURL(req *RecommendationRequest) string {
	q := url.Values{}
	q.Set("origin", req.Origin)
	q.Set("destination", req.Destination)
	q.Set("departure_date", req.DepartureDate)
	q.Set("miles_available", strconv.Itoa(req.MilesAvailable))
	q.Set("adults", strconv.Itoa(req.Adults))
	return "/api/v1/recommendations/report?" + q.Encode()
}
