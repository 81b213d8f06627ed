// Package logger wraps zerolog for the service: JSON or console output, a
// process-wide logger for startup code, and a request-scoped logger carried
// in context.Context for everything that runs inside a request.
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultServiceName is attached to every log entry unless overridden.
const DefaultServiceName = "redemption-optimizer"

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config holds the logger configuration options.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error, fatal, panic)
	Level string

	// Format is FormatJSON or FormatConsole
	Format string

	// EnableCaller adds the file and line of the log call
	EnableCaller bool

	// ServiceName is attached to every entry as "service"
	ServiceName string
}

// DefaultConfig returns info-level JSON logging for DefaultServiceName.
func DefaultConfig() Config {
	return Config{
		Level:       zerolog.InfoLevel.String(),
		Format:      FormatJSON,
		ServiceName: DefaultServiceName,
	}
}

// Logger wraps zerolog.Logger with service-specific helpers.
type Logger struct {
	zerolog.Logger
}

// New creates a Logger writing to stdout.
func New(cfg Config) *Logger {
	return NewWithOutput(cfg, os.Stdout)
}

// NewWithOutput creates a Logger writing to output.
// An unknown or empty level falls back to info.
func NewWithOutput(cfg Config, output io.Writer) *Logger {
	service := cfg.ServiceName
	if service == "" {
		service = DefaultServiceName
	}

	zctx := zerolog.New(writerFor(cfg.Format, output)).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str("service", service)
	if cfg.EnableCaller {
		zctx = zctx.Caller()
	}

	return &Logger{Logger: zctx.Logger()}
}

func parseLevel(raw string) zerolog.Level {
	level, err := zerolog.ParseLevel(raw)
	if err != nil || raw == "" {
		return zerolog.InfoLevel
	}
	return level
}

func writerFor(format string, output io.Writer) io.Writer {
	if format == FormatConsole {
		return zerolog.ConsoleWriter{Out: output, TimeFormat: time.RFC3339}
	}
	return output
}

// With returns a child logger carrying an extra string field.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{Logger: l.Logger.With().Str(key, value).Logger()}
}

// WithSource tags entries with a price lookup name.
func (l *Logger) WithSource(source string) *Logger {
	return l.With("source", source)
}

// WithComponent tags entries with the emitting component.
func (l *Logger) WithComponent(component string) *Logger {
	return l.With("component", component)
}

// IntoContext stores the logger in ctx for FromContext.
func (l *Logger) IntoContext(ctx context.Context) context.Context {
	return l.Logger.WithContext(ctx)
}

// FromContext returns the request-scoped logger stored in ctx,
// or the global logger when ctx carries none.
func FromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if zl := zerolog.Ctx(ctx); zl.GetLevel() != zerolog.Disabled {
			return &Logger{Logger: *zl}
		}
	}
	return global()
}

// Nop returns a disabled logger.
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// Global is the process-wide logger used outside of requests.
// It is created with DefaultConfig on first use when Init was not called.
var (
	Global   *Logger
	globalMu sync.Mutex
)

// Init replaces the global logger with one built from cfg.
func Init(cfg Config) {
	SetGlobal(New(cfg))
}

// SetGlobal replaces the global logger. Passing nil resets it to the lazy default.
func SetGlobal(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	Global = l
}

func global() *Logger {
	globalMu.Lock()
	defer globalMu.Unlock()
	if Global == nil {
		Global = New(DefaultConfig())
	}
	return Global
}

// Info starts an info event on the global logger.
func Info() *zerolog.Event {
	return global().Info()
}

// Error starts an error event on the global logger.
func Error() *zerolog.Event {
	return global().Error()
}
