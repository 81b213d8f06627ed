package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPricingError(t *testing.T) {
	tests := []struct {
		name          string
		source        string
		underlyingErr error
		wantContains  []string
		wantRetryable bool
	}{
		{
			name:          "error message includes source and underlying error",
			source:        "amadeus",
			underlyingErr: errors.New("connection refused"),
			wantContains:  []string{"amadeus", "connection refused"},
			wantRetryable: false, // Default is non-retryable
		},
		{
			name:          "error message with different source",
			source:        "demo",
			underlyingErr: errors.New("no data"),
			wantContains:  []string{"demo", "no data"},
			wantRetryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewPricingError(tt.source, tt.underlyingErr)

			for _, want := range tt.wantContains {
				assert.Contains(t, err.Error(), want)
			}
			assert.True(t, errors.Is(err, tt.underlyingErr))
			assert.Equal(t, tt.wantRetryable, err.Retryable)
		})
	}
}

func TestNewRetryablePricingError(t *testing.T) {
	underlying := errors.New("503 service unavailable")
	err := NewRetryablePricingError("amadeus", underlying)

	assert.Contains(t, err.Error(), "amadeus")
	assert.True(t, errors.Is(err, underlying))
	assert.True(t, err.Retryable)
}

func TestNewPricingTimeoutError(t *testing.T) {
	err := NewPricingTimeoutError("amadeus")

	assert.Contains(t, err.Error(), "amadeus")
	assert.True(t, errors.Is(err, ErrPricingTimeout))
	assert.True(t, err.Retryable)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "permanent pricing error", err: NewPricingError("amadeus", ErrPricingAuth), want: false},
		{name: "retryable pricing error", err: NewRetryablePricingError("amadeus", errors.New("502")), want: true},
		{
			name: "wrapped retryable pricing error",
			err:  fmt.Errorf("search failed: %w", NewPricingTimeoutError("amadeus")),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name      string
		field     string
		message   string
		wantError string
	}{
		{
			name:      "origin field validation",
			field:     "origin",
			message:   "must be a 3-letter code",
			wantError: "origin: must be a 3-letter code",
		},
		{
			name:      "rating field validation",
			field:     "rating",
			message:   "must be between 1 and 5",
			wantError: "rating: must be between 1 and 5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewValidationError(tt.field, tt.message)
			assert.Equal(t, tt.wantError, err.Error())
			assert.Equal(t, tt.field, err.Field)
			assert.Equal(t, tt.message, err.Message)
		})
	}
}

func TestWrapInvalidRequest(t *testing.T) {
	tests := []struct {
		name         string
		format       string
		args         []interface{}
		wantContains string
	}{
		{
			name:         "single argument",
			format:       "field %s is required",
			args:         []interface{}{"origin"},
			wantContains: "field origin is required",
		},
		{
			name:         "multiple arguments",
			format:       "%s must be between %d and %d",
			args:         []interface{}{"adults", 1, 9},
			wantContains: "adults must be between 1 and 9",
		},
		{
			name:         "no arguments",
			format:       "invalid request format",
			args:         nil,
			wantContains: "invalid request format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapInvalidRequest(tt.format, tt.args...)
			assert.True(t, errors.Is(err, ErrInvalidRequest))
			assert.Contains(t, err.Error(), tt.wantContains)
		})
	}
}

func TestErrorCheckers(t *testing.T) {
	tests := []struct {
		name       string
		checkFunc  func(error) bool
		err        error
		wantResult bool
	}{
		{
			name:       "IsInvalidRequest with wrapped error",
			checkFunc:  IsInvalidRequest,
			err:        WrapInvalidRequest("test"),
			wantResult: true,
		},
		{
			name:       "IsInvalidRequest with different error",
			checkFunc:  IsInvalidRequest,
			err:        ErrPricingUnavailable,
			wantResult: false,
		},
		{
			name:       "IsPricingUnavailable with wrapped error",
			checkFunc:  IsPricingUnavailable,
			err:        fmt.Errorf("%w: amadeus down", ErrPricingUnavailable),
			wantResult: true,
		},
		{
			name:       "IsPricingTimeout with timeout pricing error",
			checkFunc:  IsPricingTimeout,
			err:        NewPricingTimeoutError("amadeus"),
			wantResult: true,
		},
		{
			name:       "IsPricingTimeout with different error",
			checkFunc:  IsPricingTimeout,
			err:        ErrInvalidRequest,
			wantResult: false,
		},
		{
			name:       "IsFeedbackNotSaved with wrapped error",
			checkFunc:  IsFeedbackNotSaved,
			err:        fmt.Errorf("%w: disk full", ErrFeedbackNotSaved),
			wantResult: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantResult, tt.checkFunc(tt.err))
		})
	}
}
