package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/redemption-optimizer/redemption-optimizer/internal/adapter/http/response"
)

// RecoveryConfig configures the recovery middleware.
type RecoveryConfig struct {
	// DisablePrintStack omits the stack trace from the panic log entry
	DisablePrintStack bool

	// HTMLTemplate is rendered for clients that accept HTML.
	// It receives a map with a "Message" key. Empty means JSON for everyone.
	HTMLTemplate string
}

// DefaultRecoveryConfig returns the default recovery configuration.
func DefaultRecoveryConfig() RecoveryConfig {
	return RecoveryConfig{
		DisablePrintStack: false,
	}
}

// Recover returns middleware that recovers from panics in the handler chain.
// It logs the panic with stack trace and returns a 500 Internal Server Error.
// The server continues to handle subsequent requests.
func Recover(log zerolog.Logger) echo.MiddlewareFunc {
	return RecoverWithConfig(log, DefaultRecoveryConfig())
}

// RecoverWithConfig returns recovery middleware with custom configuration.
func RecoverWithConfig(log zerolog.Logger, config RecoveryConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					reqID := GetRequestID(c)

					var panicMsg string
					if err, ok := r.(error); ok {
						panicMsg = err.Error()
					} else {
						panicMsg = fmt.Sprintf("%v", r)
					}

					event := log.Error().
						Str("request_id", reqID).
						Str("panic", panicMsg)

					if !config.DisablePrintStack {
						event = event.Str("stack", string(debug.Stack()))
					}

					event.Msg("Panic recovered")

					if c.Response().Committed {
						return
					}

					// Generic body so internal details never leak
					if config.HTMLTemplate != "" && c.Echo().Renderer != nil && acceptsHTML(c) {
						err := c.Render(http.StatusInternalServerError, config.HTMLTemplate, map[string]string{
							"Message": response.MsgInternalError,
						})
						if err == nil {
							return
						}
						log.Error().Err(err).Str("request_id", reqID).Msg("Failed to render error page")
						if c.Response().Committed {
							return
						}
					}
					_ = response.InternalServerError(c)
				}
			}()

			return next(c)
		}
	}
}

func acceptsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMETextHTML)
}
