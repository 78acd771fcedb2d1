package apperror

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"
)

// timeoutErr satisfies net.Error with Timeout() == true.
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestClassify_Nil(t *testing.T) {
	e := Classify(nil)
	if e.Kind != KindUnknown || e.Code != CodeUnknownError {
		t.Errorf("got %v/%v, want unknown/UNKNOWN_ERROR", e.Kind, e.Code)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	original := NewValidation(CodeDuplicateBarcode, "barcode", "")
	if got := Classify(original); got != original {
		t.Error("classifying a classified error must return it unchanged")
	}

	wrapped := fmt.Errorf("create pass: %w", original)
	if got := Classify(wrapped); got != original {
		t.Error("classifying a wrapped classified error must unwrap to it")
	}
}

func TestClassify_Timeout(t *testing.T) {
	for _, err := range []error{
		context.DeadlineExceeded,
		timeoutErr{},
		&net.OpError{Op: "dial", Err: timeoutErr{}},
	} {
		e := Classify(err)
		if e.Kind != KindNetwork || e.Code != CodeTimeout {
			t.Errorf("Classify(%v) = %v/%v, want network/TIMEOUT", err, e.Kind, e.Code)
		}
		if !e.Retryable {
			t.Errorf("Classify(%v) not retryable", err)
		}
	}
}

func TestClassify_ConnectionError(t *testing.T) {
	opErr := &net.OpError{Op: "dial", Err: errors.New("connection refused")}
	e := Classify(opErr)
	if e.Kind != KindNetwork || e.Code != CodeConnectionError {
		t.Errorf("got %v/%v, want network/CONNECTION_ERROR", e.Kind, e.Code)
	}
	if e.RetryCount != 0 {
		t.Errorf("fresh network error RetryCount = %d, want 0", e.RetryCount)
	}

	if !e.Retryable {
		t.Error("refused connection must be retryable")
	}
}

func TestClassify_CancellationNotRetryable(t *testing.T) {
	for _, err := range []error{
		context.Canceled,
		fmt.Errorf("create pass: %w", context.Canceled),
	} {
		e := Classify(err)
		if e.Kind != KindNetwork || e.Code != CodeConnectionError {
			t.Errorf("Classify(%v) = %v/%v, want network/CONNECTION_ERROR", err, e.Kind, e.Code)
		}
		if e.Retryable {
			t.Errorf("Classify(%v) retryable; cancellation is terminal", err)
		}
	}
}

func TestClassify_Unknown(t *testing.T) {
	cause := errors.New("something odd")
	e := Classify(cause)
	if e.Kind != KindUnknown {
		t.Errorf("Kind = %v, want KindUnknown", e.Kind)
	}
	if !errors.Is(e, cause) {
		t.Error("cause must stay reachable through Unwrap")
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		code      string
		wantKind  Kind
		wantCode  Code
		wantRetry bool
	}{
		{"401 invalid key", 401, "", KindAuthentication, CodeInvalidAPIKey, false},
		{"403 missing key", 403, "", KindAuthentication, CodeMissingAPIKey, false},
		{"400 invalid input", 400, "", KindValidation, CodeInvalidInput, false},
		{"422 invalid input", 422, "", KindValidation, CodeInvalidInput, false},
		{"400 duplicate barcode", 400, "DUPLICATE_BARCODE", KindValidation, CodeDuplicateBarcode, false},
		{"429 rate limited", 429, "", KindServer, CodeRateLimitExceeded, true},
		{"500 server error", 500, "", KindServer, CodeServerError, true},
		{"503 server error", 503, "", KindServer, CodeServerError, true},
		{"404 plain", 404, "", KindClient, CodeUnknownError, false},
		{"404 event not found", 404, "EVENT_NOT_FOUND", KindClient, CodeEventNotFound, false},
		{"418 client", 418, "", KindClient, CodeUnknownError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := FromStatus(tt.status, tt.code, "", "")
			if e.Kind != tt.wantKind || e.Code != tt.wantCode {
				t.Errorf("got %v/%v, want %v/%v", e.Kind, e.Code, tt.wantKind, tt.wantCode)
			}
			if e.Retryable != tt.wantRetry {
				t.Errorf("Retryable = %v, want %v", e.Retryable, tt.wantRetry)
			}
			if e.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", e.StatusCode, tt.status)
			}
		})
	}
}

func TestFromStatus_ServerMessageWins(t *testing.T) {
	e := FromStatus(500, "", "database on fire", "")
	if e.Message != "database on fire" {
		t.Errorf("Message = %q, want the server-supplied one", e.Message)
	}

	e = FromStatus(500, "", "", "")
	if e.Message == "" {
		t.Error("empty server message must fall back to the taxonomy default")
	}
}

func TestDefaultMessage_FieldSpecific(t *testing.T) {
	e := NewValidation(CodeInvalidInput, "lotId", "")
	if e.Message != "lot is required" {
		t.Errorf("Message = %q, want field-specific default", e.Message)
	}
	if e.Field != "lotId" {
		t.Errorf("Field = %q, want lotId", e.Field)
	}

	e = NewValidation(CodeInvalidInput, "unheard-of", "")
	if e.Message != "request was rejected as invalid" {
		t.Errorf("Message = %q, want the generic validation default", e.Message)
	}
}

func TestError_TimestampSet(t *testing.T) {
	before := time.Now()
	e := NewServer(CodeServerError, 500)
	if e.Timestamp.Before(before) {
		t.Error("Timestamp not set at construction")
	}
}
