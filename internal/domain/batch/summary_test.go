package batch

import (
	"errors"
	"testing"

	"github.com/jump-sdk/parkhub-batch/internal/domain/apperror"
)

func TestSummarize_Partition(t *testing.T) {
	outcomes := []Outcome{
		NewSuccess("BC-1", "Ann", "pass-1"),
		NewFailure("BC-2", "Bob", apperror.NewServer(apperror.CodeServerError, 500)),
		NewSuccess("BC-3", "Cat", "pass-3"),
		NewFailure("BC-4", "Dan", apperror.NewValidation(apperror.CodeInvalidInput, "lotId", "")),
	}

	s := Summarize("evt-1", outcomes)

	if s.EventID() != "evt-1" {
		t.Errorf("EventID = %q, want evt-1", s.EventID())
	}
	if s.BatchID() == "" {
		t.Error("BatchID must be assigned")
	}
	if s.TotalSuccess() != 2 || s.TotalFailed() != 2 {
		t.Errorf("partition = %d/%d, want 2/2", s.TotalSuccess(), s.TotalFailed())
	}
	if s.Total() != len(outcomes) {
		t.Errorf("Total = %d, want %d", s.Total(), len(outcomes))
	}

	// порядок внутри списков сохраняется
	if s.Successful()[0].Barcode() != "BC-1" || s.Successful()[1].Barcode() != "BC-3" {
		t.Error("successful outcomes out of order")
	}
	if s.Failed()[0].Barcode() != "BC-2" || s.Failed()[1].Barcode() != "BC-4" {
		t.Error("failed outcomes out of order")
	}
}

func TestSummarize_UniqueBatchIDs(t *testing.T) {
	a := Summarize("evt-1", nil)
	b := Summarize("evt-1", nil)
	if a.BatchID() == b.BatchID() {
		t.Error("two summaries must not share a batch ID")
	}
}

func TestNewFailure_ClassifiesBareErrors(t *testing.T) {
	o := NewFailure("BC-1", "Ann", errors.New("wat"))
	if o.Err() == nil {
		t.Fatal("Err must be set")
	}
	if o.Err().Kind != apperror.KindUnknown {
		t.Errorf("Kind = %v, want KindUnknown", o.Err().Kind)
	}
	if o.Status() != StatusError {
		t.Errorf("Status = %v, want error", o.Status())
	}
}

func TestRetryBatch_AllFailures(t *testing.T) {
	s := Summarize("evt-1", []Outcome{
		NewSuccess("BC-1", "Ann", "pass-1"),
		NewFailure("BC-2", "Bob", apperror.NewServer(apperror.CodeServerError, 500)),
		NewFailure("BC-3", "Cat", apperror.NewServer(apperror.CodeServerError, 502)),
	})

	defaults := RetryDefaults{AccountID: "acc-1", SpotType: "vip", LotID: "lot-9"}
	reqs := s.RetryBatch(nil, defaults)

	if len(reqs) != 2 {
		t.Fatalf("len = %d, want 2", len(reqs))
	}
	for i, req := range reqs {
		if req.EventID != "evt-1" {
			t.Errorf("reqs[%d].EventID = %q, want evt-1", i, req.EventID)
		}
		if req.AccountID != "acc-1" || req.SpotType != "vip" || req.LotID != "lot-9" {
			t.Errorf("reqs[%d] defaults not inherited: %+v", i, req)
		}
	}
	if reqs[0].Barcode != "BC-2" || reqs[0].CustomerName != "Bob" {
		t.Errorf("identity not carried: %+v", reqs[0])
	}
}

func TestRetryBatch_Selection(t *testing.T) {
	s := Summarize("evt-1", []Outcome{
		NewFailure("BC-2", "Bob", apperror.NewServer(apperror.CodeServerError, 500)),
		NewFailure("BC-3", "Cat", apperror.NewServer(apperror.CodeServerError, 502)),
	})

	selected := s.Failed()[1:]
	reqs := s.RetryBatch(selected, RetryDefaults{AccountID: "a", SpotType: "s", LotID: "l"})

	if len(reqs) != 1 || reqs[0].Barcode != "BC-3" {
		t.Errorf("reqs = %+v, want only BC-3", reqs)
	}
}

func TestBuildRetry_EmptySelection(t *testing.T) {
	reqs := BuildRetry("evt-1", nil, RetryDefaults{})
	if len(reqs) != 0 {
		t.Errorf("len = %d, want 0", len(reqs))
	}
}
