package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the redemption optimizer.
var (
	// ErrInvalidRequest indicates the caller sent invalid input.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrPricingUnavailable indicates no price lookup could supply itineraries.
	ErrPricingUnavailable = errors.New("flight pricing unavailable")

	// ErrPricingTimeout indicates a price lookup did not answer in time.
	ErrPricingTimeout = errors.New("flight pricing timeout")

	// ErrPricingAuth indicates the price lookup rejected our credentials.
	ErrPricingAuth = errors.New("flight pricing authentication failed")

	// ErrFeedbackNotSaved indicates feedback could not be persisted.
	ErrFeedbackNotSaved = errors.New("feedback not saved")
)

// PricingError wraps a failure returned by a price lookup.
type PricingError struct {
	// Source is the name of the lookup that failed
	Source string

	// Err is the underlying error
	Err error

	// Retryable is true for transient failures (network, 5xx, rate limit)
	Retryable bool
}

// Error implements the error interface.
func (e *PricingError) Error() string {
	return fmt.Sprintf("pricing source %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying error.
func (e *PricingError) Unwrap() error {
	return e.Err
}

// NewPricingError creates a non-retryable PricingError.
func NewPricingError(source string, err error) *PricingError {
	return &PricingError{Source: source, Err: err}
}

// NewRetryablePricingError creates a PricingError that may succeed on a later attempt.
func NewRetryablePricingError(source string, err error) *PricingError {
	return &PricingError{Source: source, Err: err, Retryable: true}
}

// NewPricingTimeoutError creates a retryable PricingError wrapping ErrPricingTimeout.
func NewPricingTimeoutError(source string) *PricingError {
	return NewRetryablePricingError(source, ErrPricingTimeout)
}

// IsRetryable reports whether err carries a retryable PricingError.
func IsRetryable(err error) bool {
	var pe *PricingError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// ValidationError describes a single invalid field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// NewValidationError creates a ValidationError.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// WrapInvalidRequest formats a message and wraps it with ErrInvalidRequest.
func WrapInvalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// IsInvalidRequest reports whether err is or wraps ErrInvalidRequest.
func IsInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// IsPricingUnavailable reports whether err is or wraps ErrPricingUnavailable.
func IsPricingUnavailable(err error) bool {
	return errors.Is(err, ErrPricingUnavailable)
}

// IsPricingTimeout reports whether err is or wraps ErrPricingTimeout.
func IsPricingTimeout(err error) bool {
	return errors.Is(err, ErrPricingTimeout)
}

// IsFeedbackNotSaved reports whether err is or wraps ErrFeedbackNotSaved.
func IsFeedbackNotSaved(err error) bool {
	return errors.Is(err, ErrFeedbackNotSaved)
}
