package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// DefaultBodyLimit caps JSON and form bodies; recommendation and feedback payloads are small.
const DefaultBodyLimit = "64K"

// Options configures the middleware stack.
type Options struct {
	// Recovery controls panic handling
	Recovery RecoveryConfig

	// BodyLimit is the maximum request body size (e.g. "64K"); empty uses DefaultBodyLimit
	BodyLimit string
}

// DefaultOptions returns the options used by Setup.
func DefaultOptions() Options {
	return Options{
		Recovery:  DefaultRecoveryConfig(),
		BodyLimit: DefaultBodyLimit,
	}
}

// Setup registers the middleware stack with default options.
// It should be called before registering routes.
func Setup(e *echo.Echo, log zerolog.Logger) {
	SetupWithOptions(e, log, DefaultOptions())
}

// SetupWithOptions registers the middleware stack built by Chain.
func SetupWithOptions(e *echo.Echo, log zerolog.Logger, opts Options) {
	e.Use(Chain(log, opts)...)
}

// Chain returns the middleware stack in order:
//  1. RequestID, so every log line below carries the request ID
//  2. RequestLogger
//  3. Recover, so panics are logged and answered with a 500
//  4. BodyLimit, rejecting oversized bodies with 413 before binding
func Chain(log zerolog.Logger, opts Options) []echo.MiddlewareFunc {
	limit := opts.BodyLimit
	if limit == "" {
		limit = DefaultBodyLimit
	}

	return []echo.MiddlewareFunc{
		RequestID(),
		RequestLogger(log),
		RecoverWithConfig(log, opts.Recovery),
		echomw.BodyLimit(limit),
	}
}
