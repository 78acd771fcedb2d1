// Package apperror defines the closed error taxonomy for upstream ParkHub
// calls. Every failure that crosses a component boundary is carried as an
// *Error so callers can switch on Kind/Code instead of matching strings.
package apperror

import (
	"fmt"
	"time"
)

// Kind is the taxonomy branch of an Error.
type Kind int

// Taxonomy branches.
const (
	KindUnknown Kind = iota
	KindNetwork
	KindAuthentication
	KindValidation
	KindServer
	KindClient
)

// String returns the branch name as used in logs and API payloads.
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindAuthentication:
		return "authentication"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindClient:
		return "client"
	default:
		return "unknown"
	}
}

// Code is a stable machine-readable error code within a Kind.
type Code string

// Error codes, one set per taxonomy branch.
const (
	CodeConnectionError   Code = "CONNECTION_ERROR"
	CodeTimeout           Code = "TIMEOUT"
	CodeInvalidAPIKey     Code = "INVALID_API_KEY"
	CodeMissingAPIKey     Code = "MISSING_API_KEY"
	CodeInvalidInput      Code = "INVALID_INPUT"
	CodeDuplicateBarcode  Code = "DUPLICATE_BARCODE"
	CodeServerError       Code = "SERVER_ERROR"
	CodeRateLimitExceeded Code = "RATE_LIMIT_EXCEEDED"
	CodeEventNotFound     Code = "EVENT_NOT_FOUND"
	CodeUnknownError      Code = "UNKNOWN_ERROR"
)

// Error is a classified failure. Kind is always set; the remaining fields are
// populated per branch: StatusCode for HTTP-derived errors, Field/FieldErrors
// for validation, Retryable/RetryCount for network and server errors.
type Error struct {
	Kind        Kind
	Code        Code
	Message     string
	Timestamp   time.Time
	StatusCode  int
	Field       string
	FieldErrors map[string]string
	Retryable   bool

	// RetryCount tracks how many times this logical error has been retried.
	// Only meaningful for KindNetwork; the retry loop increments it.
	RetryCount int

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s/%s: %s: %v", e.Kind, e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s/%s: %s", e.Kind, e.Code, e.Message)
}

// Unwrap exposes the original failure for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.cause }

// NewNetwork creates a connection-level error, retryable with a zero retry
// count. Classify downgrades caller cancellation to non-retryable.
func NewNetwork(code Code, cause error) *Error {
	return &Error{
		Kind:      KindNetwork,
		Code:      code,
		Message:   defaultMessage(KindNetwork, code, ""),
		Timestamp: time.Now(),
		Retryable: true,
		cause:     cause,
	}
}

// NewAuthentication creates a credential error for the given HTTP status.
func NewAuthentication(code Code, statusCode int) *Error {
	return &Error{
		Kind:       KindAuthentication,
		Code:       code,
		Message:    defaultMessage(KindAuthentication, code, ""),
		Timestamp:  time.Now(),
		StatusCode: statusCode,
	}
}

// NewValidation creates an input error attributed to field (may be empty).
// An empty message falls back to the taxonomy default.
func NewValidation(code Code, field, message string) *Error {
	if message == "" {
		message = defaultMessage(KindValidation, code, field)
	}
	return &Error{
		Kind:      KindValidation,
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
		Field:     field,
	}
}

// NewServer creates a backend error. Both server codes are retryable.
func NewServer(code Code, statusCode int) *Error {
	return &Error{
		Kind:       KindServer,
		Code:       code,
		Message:    defaultMessage(KindServer, code, ""),
		Timestamp:  time.Now(),
		StatusCode: statusCode,
		Retryable:  true,
	}
}

// NewClient creates an error for an unexpected 4xx status.
func NewClient(code Code, statusCode int) *Error {
	return &Error{
		Kind:       KindClient,
		Code:       code,
		Message:    defaultMessage(KindClient, code, ""),
		Timestamp:  time.Now(),
		StatusCode: statusCode,
	}
}

// NewUnknown wraps a failure that fits no other branch, preserving the
// original error for diagnostics.
func NewUnknown(cause error) *Error {
	return &Error{
		Kind:      KindUnknown,
		Code:      CodeUnknownError,
		Message:   defaultMessage(KindUnknown, CodeUnknownError, ""),
		Timestamp: time.Now(),
		cause:     cause,
	}
}

// IsRetryable reports whether err is a classified error flagged retryable.
func IsRetryable(err error) bool {
	e, ok := As(err)
	return ok && e.Retryable
}

// IsAuthentication reports whether err is a credential failure.
func IsAuthentication(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindAuthentication
}

// WithMessage overrides the default message when the server supplied one.
func (e *Error) WithMessage(msg string) *Error {
	if msg != "" {
		e.Message = msg
	}
	return e
}
