package apperror

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// As extracts a classified error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Classify maps any failure into the taxonomy. It is total and idempotent:
// an already-classified error is returned unchanged.
func Classify(err error) *Error {
	if err == nil {
		return NewUnknown(nil)
	}
	if e, ok := As(err); ok {
		return e
	}

	if isTimeout(err) {
		return NewNetwork(CodeTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		// Cancellation comes from the caller; re-attempting it is pointless.
		e := NewNetwork(CodeConnectionError, err)
		e.Retryable = false
		return e
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return NewNetwork(CodeConnectionError, err)
	}

	return NewUnknown(err)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// FromStatus maps an HTTP status plus the envelope error object (code,
// message, field may all be empty) into the taxonomy. Priority follows the
// classification rules: auth statuses first, then validation, rate limit,
// 5xx, and finally the generic client branch.
func FromStatus(statusCode int, code, message, field string) *Error {
	switch {
	case statusCode == http.StatusUnauthorized:
		return NewAuthentication(CodeInvalidAPIKey, statusCode).WithMessage(message)
	case statusCode == http.StatusForbidden:
		return NewAuthentication(CodeMissingAPIKey, statusCode).WithMessage(message)
	case statusCode == http.StatusBadRequest || statusCode == http.StatusUnprocessableEntity:
		if Code(code) == CodeDuplicateBarcode {
			return NewValidation(CodeDuplicateBarcode, field, message)
		}
		return NewValidation(CodeInvalidInput, field, message)
	case statusCode == http.StatusTooManyRequests:
		return NewServer(CodeRateLimitExceeded, statusCode).WithMessage(message)
	case statusCode >= http.StatusInternalServerError:
		return NewServer(CodeServerError, statusCode).WithMessage(message)
	default:
		if Code(code) == CodeEventNotFound {
			return NewClient(CodeEventNotFound, statusCode).WithMessage(message)
		}
		return NewClient(CodeUnknownError, statusCode).WithMessage(message)
	}
}
