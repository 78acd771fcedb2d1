package batch

import (
	"github.com/google/uuid"

	"github.com/jump-sdk/parkhub-batch/internal/domain"
)

// Summary is the reconciled view of one submitted batch. It is immutable
// once produced; retrying the failed subset yields a brand-new Summary that
// replaces this one rather than merging into it.
type Summary struct {
	batchID    string
	eventID    string
	successful []Outcome
	failed     []Outcome
}

// Summarize partitions per-item outcomes into a Summary for eventID.
func Summarize(eventID string, outcomes []Outcome) Summary {
	s := Summary{
		batchID: uuid.NewString(),
		eventID: eventID,
	}
	for _, o := range outcomes {
		if o.Status() == StatusOK {
			s.successful = append(s.successful, o)
		} else {
			s.failed = append(s.failed, o)
		}
	}
	return s
}

// BatchID returns the unique identifier assigned at reconciliation.
func (s Summary) BatchID() string { return s.batchID }

// EventID returns the event the batch was submitted for.
func (s Summary) EventID() string { return s.eventID }

// Successful returns the successful outcomes.
func (s Summary) Successful() []Outcome { return s.successful }

// Failed returns the failed outcomes.
func (s Summary) Failed() []Outcome { return s.failed }

// TotalSuccess returns len(Successful()).
func (s Summary) TotalSuccess() int { return len(s.successful) }

// TotalFailed returns len(Failed()).
func (s Summary) TotalFailed() int { return len(s.failed) }

// Total returns the number of input requests accounted for.
func (s Summary) Total() int { return len(s.successful) + len(s.failed) }

// RetryDefaults are the reference fields a retry request inherits. They come
// from the caller (a sibling successful item or the original payload), never
// from the failure record itself.
type RetryDefaults struct {
	AccountID string
	SpotType  string
	LotID     string
}

// RetryBatch reconstructs creation requests for the selected failures,
// taking barcode and customer name from each failure record and the
// remaining fields from defaults. A nil selection means every failure.
func (s Summary) RetryBatch(selected []Outcome, defaults RetryDefaults) []domain.PassRequest {
	if selected == nil {
		selected = s.failed
	}
	items := make([]RetryItem, 0, len(selected))
	for _, o := range selected {
		items = append(items, RetryItem{Barcode: o.Barcode(), CustomerName: o.CustomerName()})
	}
	return BuildRetry(s.eventID, items, defaults)
}

// RetryItem identifies one failed item selected for re-submission.
type RetryItem struct {
	Barcode      string
	CustomerName string
}

// BuildRetry reconstructs creation requests from failure identities plus the
// caller-supplied reference defaults. Defaults are inherited, never
// fabricated.
func BuildRetry(eventID string, items []RetryItem, defaults RetryDefaults) []domain.PassRequest {
	reqs := make([]domain.PassRequest, 0, len(items))
	for _, it := range items {
		reqs = append(reqs, domain.PassRequest{
			EventID:      eventID,
			AccountID:    defaults.AccountID,
			Barcode:      it.Barcode,
			CustomerName: it.CustomerName,
			SpotType:     defaults.SpotType,
			LotID:        defaults.LotID,
		})
	}
	return reqs
}
