package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`

	// PricingSource names the active price lookup chain
	PricingSource string `json:"pricingSource,omitempty"`
}

// Health writes a health check response.
func Health(c echo.Context, pricingSource string) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status:        "ok",
		PricingSource: pricingSource,
	})
}

// Recommendations writes a 200 OK response with a recommendation set.
func Recommendations(c echo.Context, results interface{}) error {
	return c.JSON(http.StatusOK, results)
}

// PDF writes a 200 OK response with a PDF attachment.
func PDF(c echo.Context, filename string, body []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/pdf", body)
}
