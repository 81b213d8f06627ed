package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RequestLogger returns middleware that writes one log line per completed request.
// The request context carries a logger tagged with the request ID, so
// logger.FromContext in handlers and use cases logs with the same ID.
func RequestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			reqLog := log
			if reqID := GetRequestID(c); reqID != "" {
				reqLog = log.With().Str("request_id", reqID).Logger()
			}
			req := c.Request().WithContext(reqLog.WithContext(c.Request().Context()))
			c.SetRequest(req)

			if err := next(c); err != nil {
				// Render the error now so the logged status is the one the client sees.
				c.Error(err)
			}

			res := c.Response()
			reqLog.WithLevel(levelForStatus(res.Status)).
				Str("method", req.Method).
				Str("route", c.Path()).
				Str("path", req.URL.Path).
				Str("query", req.URL.RawQuery).
				Int("status", res.Status).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP()).
				Str("user_agent", req.UserAgent()).
				Msg("HTTP request")

			return nil
		}
	}
}

func levelForStatus(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
