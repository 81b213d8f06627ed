package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "log output should be a single JSON object")
	return entry
}

func TestNewWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: FormatJSON, ServiceName: "test-service"}, &buf)

	log.Info().Int("miles_available", 30000).Msg("Recommendations assembled")

	entry := decode(t, &buf)
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Recommendations assembled", entry["message"])
	assert.Equal(t, "test-service", entry["service"])
	assert.Equal(t, float64(30000), entry["miles_available"])
	assert.NotEmpty(t, entry["time"])
}

func TestNewWithOutput_Console(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOutput(Config{Level: "info", Format: FormatConsole}, &buf)

	log.Info().Msg("server started")

	assert.Contains(t, buf.String(), "server started")
	assert.Contains(t, buf.String(), "INF")
}

func TestNewWithOutput_Level(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		emit        func(*Logger)
		wantLogged  bool
	}{
		{name: "debug at debug", configLevel: "debug", emit: func(l *Logger) { l.Debug().Msg("x") }, wantLogged: true},
		{name: "debug at info", configLevel: "info", emit: func(l *Logger) { l.Debug().Msg("x") }, wantLogged: false},
		{name: "warn at info", configLevel: "info", emit: func(l *Logger) { l.Warn().Msg("x") }, wantLogged: true},
		{name: "info at error", configLevel: "error", emit: func(l *Logger) { l.Info().Msg("x") }, wantLogged: false},
		{name: "error at error", configLevel: "error", emit: func(l *Logger) { l.Error().Msg("x") }, wantLogged: true},
		{name: "unknown level means info", configLevel: "verbose", emit: func(l *Logger) { l.Info().Msg("x") }, wantLogged: true},
		{name: "unknown level hides debug", configLevel: "verbose", emit: func(l *Logger) { l.Debug().Msg("x") }, wantLogged: false},
		{name: "empty level means info", configLevel: "", emit: func(l *Logger) { l.Debug().Msg("x") }, wantLogged: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(NewWithOutput(Config{Level: tt.configLevel}, &buf))

			assert.Equal(t, tt.wantLogged, buf.Len() > 0)
		})
	}
}

func TestNewWithOutput_Caller(t *testing.T) {
	var buf bytes.Buffer
	NewWithOutput(Config{EnableCaller: true}, &buf).Info().Msg("with caller")

	entry := decode(t, &buf)
	caller, ok := entry["caller"].(string)
	require.True(t, ok, "caller should be present")
	assert.Contains(t, caller, "logger_test.go")
}

func TestNewWithOutput_DefaultServiceName(t *testing.T) {
	var buf bytes.Buffer
	NewWithOutput(Config{}, &buf).Info().Msg("test")

	assert.Equal(t, DefaultServiceName, decode(t, &buf)["service"])
}

func TestLogger_Tags(t *testing.T) {
	tests := []struct {
		name  string
		tag   func(*Logger) *Logger
		key   string
		value string
	}{
		{name: "with", tag: func(l *Logger) *Logger { return l.With("route", "JFK-LAX") }, key: "route", value: "JFK-LAX"},
		{name: "source", tag: func(l *Logger) *Logger { return l.WithSource("amadeus") }, key: "source", value: "amadeus"},
		{name: "component", tag: func(l *Logger) *Logger { return l.WithComponent("pricing") }, key: "component", value: "pricing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := NewWithOutput(DefaultConfig(), &buf)

			tt.tag(base).Info().Msg("tagged")
			entry := decode(t, &buf)
			assert.Equal(t, tt.value, entry[tt.key])

			buf.Reset()
			base.Info().Msg("untagged")
			assert.NotContains(t, decode(t, &buf), tt.key, "the parent logger must not be modified")
		})
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	require.NotNil(t, log)
	assert.Equal(t, zerolog.Disabled, log.GetLevel())
	assert.NotPanics(t, func() { log.Error().Msg("discarded") })
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.False(t, cfg.EnableCaller)
	assert.Equal(t, "redemption-optimizer", cfg.ServiceName)
}

func TestGlobal(t *testing.T) {
	t.Cleanup(func() { SetGlobal(nil) })

	var buf bytes.Buffer
	SetGlobal(NewWithOutput(Config{ServiceName: "global-test"}, &buf))

	Info().Msg("global info")
	Error().Msg("global error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "global info")
	assert.Contains(t, lines[1], `"level":"error"`)
	assert.Contains(t, lines[1], "global-test")
}

func TestGlobal_LazyDefault(t *testing.T) {
	SetGlobal(nil)
	t.Cleanup(func() { SetGlobal(nil) })

	assert.NotPanics(t, func() { Info().Msg("auto-init test") })
	assert.NotNil(t, Global)
}

func TestFromContext(t *testing.T) {
	t.Cleanup(func() { SetGlobal(nil) })

	var globalBuf, requestBuf bytes.Buffer
	SetGlobal(NewWithOutput(Config{ServiceName: "global"}, &globalBuf))
	requestLog := NewWithOutput(Config{}, &requestBuf).With("request_id", "req-42")

	tests := []struct {
		name        string
		ctx         context.Context
		wantRequest bool
	}{
		{name: "request logger", ctx: requestLog.IntoContext(context.Background()), wantRequest: true},
		{name: "empty context", ctx: context.Background(), wantRequest: false},
		{name: "nil context", ctx: nil, wantRequest: false},
		{name: "disabled logger", ctx: Nop().IntoContext(context.Background()), wantRequest: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			globalBuf.Reset()
			requestBuf.Reset()

			FromContext(tt.ctx).Info().Msg("from context")

			if tt.wantRequest {
				assert.Contains(t, requestBuf.String(), `"request_id":"req-42"`)
				assert.Empty(t, globalBuf.String())
			} else {
				assert.Contains(t, globalBuf.String(), "from context")
				assert.Empty(t, requestBuf.String())
			}
		})
	}
}
