// Package errors provides the error body carried in the err side of an API
// envelope.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is the error body of an API response. Message is always set.
type APIError struct {
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Details    any    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// WithDetails returns a copy of the error with additional details.
func (e *APIError) WithDetails(details any) *APIError {
	return &APIError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Details:    details,
	}
}

// WithMessage returns a copy of the error with a custom message.
func (e *APIError) WithMessage(message string) *APIError {
	return &APIError{
		Code:       e.Code,
		Message:    message,
		StatusCode: e.StatusCode,
		Details:    e.Details,
	}
}

// Is matches another APIError by code, so wrapped copies made with
// WithMessage or WithDetails still match their sentinel.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// Standard error definitions
var (
	// ErrBadRequest is returned when a request body does not match its shape.
	ErrBadRequest = &APIError{
		Code:       "bad_request",
		Message:    "Invalid request",
		StatusCode: http.StatusBadRequest,
	}

	// ErrUnauthorized is returned when the Authorization token is missing or expired.
	ErrUnauthorized = &APIError{
		Code:       "unauthorized",
		Message:    "Authentication required",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrForbidden is returned when the caller does not own the dapp.
	ErrForbidden = &APIError{
		Code:       "forbidden",
		Message:    "You don't have permission to perform this action",
		StatusCode: http.StatusForbidden,
	}

	// ErrNotFound is returned for missing resources on non-read calls.
	ErrNotFound = &APIError{
		Code:       "not_found",
		Message:    "Resource not found",
		StatusCode: http.StatusNotFound,
	}

	// ErrConflict is returned when a DappName is already taken.
	ErrConflict = &APIError{
		Code:       "conflict",
		Message:    "Resource already exists",
		StatusCode: http.StatusConflict,
	}

	// ErrQuotaExceeded is returned when the caller has no dapps left on a tier.
	ErrQuotaExceeded = &APIError{
		Code:       "quota_exceeded",
		Message:    "You've reached the dapp limit for this tier",
		StatusCode: http.StatusPaymentRequired,
	}

	// ErrPaymentLapsed is returned when the account's payment status is not ACTIVE.
	ErrPaymentLapsed = &APIError{
		Code:       "payment_lapsed",
		Message:    "Your payment status does not allow this action",
		StatusCode: http.StatusPaymentRequired,
	}

	// ErrInternal is returned for unexpected server errors.
	ErrInternal = &APIError{
		Code:       "internal_error",
		Message:    "An internal error occurred",
		StatusCode: http.StatusInternalServerError,
	}
)

// NewValidationError creates a validation error for a specific field.
func NewValidationError(field, message string) *APIError {
	return &APIError{
		Code:       "validation_error",
		Message:    fmt.Sprintf("Validation failed: %s", message),
		StatusCode: http.StatusBadRequest,
		Details: map[string]string{
			"field": field,
			"error": message,
		},
	}
}

// NewValidationErrors creates a validation error with multiple field errors.
// The message lists the failing fields in a stable order.
func NewValidationErrors(errs map[string]string) *APIError {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msg := "One or more fields failed validation"
	if len(fields) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(fields, ", "))
	}
	return &APIError{
		Code:       "validation_error",
		Message:    msg,
		StatusCode: http.StatusBadRequest,
		Details:    errs,
	}
}

// NewInvalidBodyError reports a request body that is not a valid instance
// of the named shape.
func NewInvalidBodyError(shape string) *APIError {
	return &APIError{
		Code:       "invalid_body",
		Message:    fmt.Sprintf("Request body is not a valid %s", shape),
		StatusCode: http.StatusBadRequest,
	}
}

// New creates an error with the given status; the code is derived from the
// status text.
func New(status int, message string) *APIError {
	return &APIError{
		Code:       codeFor(status),
		Message:    message,
		StatusCode: status,
	}
}

// IsAPIError checks if an error is, or wraps, an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// AsAPIError converts an error to an APIError. Plain errors become internal
// errors that keep their message, since the envelope's err must say what
// went wrong.
func AsAPIError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return ErrInternal.WithMessage(err.Error())
}

func codeFor(status int) string {
	text := http.StatusText(status)
	if text == "" {
		return "error"
	}
	return strings.ReplaceAll(strings.ToLower(text), " ", "_")
}
