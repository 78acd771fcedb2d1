package parkhub

import (
	"errors"

	"github.com/jump-sdk/parkhub-batch/internal/domain/apperror"
)

// Error is the classified failure type returned by every client operation.
// Use errors.As to extract it.
type Error = apperror.Error

// Kind is the taxonomy branch of an Error.
type Kind = apperror.Kind

// Taxonomy branches re-exported from the domain layer.
const (
	KindUnknown        = apperror.KindUnknown
	KindNetwork        = apperror.KindNetwork
	KindAuthentication = apperror.KindAuthentication
	KindValidation     = apperror.KindValidation
	KindServer         = apperror.KindServer
	KindClient         = apperror.KindClient
)

// Code is a stable machine-readable error code within a Kind.
type Code = apperror.Code

// Error codes re-exported from the domain layer.
const (
	CodeConnectionError   = apperror.CodeConnectionError
	CodeTimeout           = apperror.CodeTimeout
	CodeInvalidAPIKey     = apperror.CodeInvalidAPIKey
	CodeMissingAPIKey     = apperror.CodeMissingAPIKey
	CodeInvalidInput      = apperror.CodeInvalidInput
	CodeDuplicateBarcode  = apperror.CodeDuplicateBarcode
	CodeServerError       = apperror.CodeServerError
	CodeRateLimitExceeded = apperror.CodeRateLimitExceeded
	CodeEventNotFound     = apperror.CodeEventNotFound
	CodeUnknownError      = apperror.CodeUnknownError
)

// AsError extracts the classified error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// IsRetryable reports whether err is a classified error flagged retryable.
func IsRetryable(err error) bool {
	return apperror.IsRetryable(err)
}

// IsAuthentication reports whether err is a credential failure.
func IsAuthentication(err error) bool {
	return apperror.IsAuthentication(err)
}
