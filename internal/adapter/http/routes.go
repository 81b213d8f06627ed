package http

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes registers the JSON API, the HTML pages and the swagger UI.
func RegisterRoutes(e *echo.Echo, api *RecommendationHandler, web *WebHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", api.Health)

	// HTML pages
	e.GET("/", web.Index)
	e.POST("/recommend", web.Recommend)
	e.POST("/feedback", web.Feedback)

	// API v1 group
	v1 := e.Group("/api/v1")
	v1.GET("/examples", api.Examples)
	v1.POST("/feedback", api.SubmitFeedback)

	recommendations := v1.Group("/recommendations")
	recommendations.POST("", api.Recommend)
	recommendations.GET("/report", api.Report)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
}
