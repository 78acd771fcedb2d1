package parkhub

import (
	"time"

	"github.com/jump-sdk/parkhub-batch/internal/domain"
	dombatch "github.com/jump-sdk/parkhub-batch/internal/domain/batch"
)

// PassRequest is a single parking pass creation request. Barcode is the
// correlation key: unique within a batch and expected unique against
// server-side state.
type PassRequest struct {
	AccountID    string
	Barcode      string
	CustomerName string
	SpotType     string
	LotID        string
}

// Pass is a parking pass record as stored upstream.
type Pass struct {
	PassID       string
	EventID      string
	AccountID    string
	Barcode      string
	CustomerName string
	SpotType     string
	LotID        string
	Status       string
}

// Event is an upstream event record for a landmark.
type Event struct {
	EventID    string
	LandmarkID string
	Name       string
	StartsAt   time.Time
	Venue      string
}

// ItemResult is the settled outcome of one batch item, correlated to its
// input by barcode. Err is nil exactly when PassID is set.
type ItemResult struct {
	Barcode      string
	CustomerName string
	PassID       string
	Err          *Error
}

// Summary is the reconciled view of one submitted batch. Every input request
// appears in exactly one of the two lists.
type Summary struct {
	batchID    string
	eventID    string
	successful []ItemResult
	failed     []ItemResult
}

// BatchID returns the unique identifier assigned at reconciliation.
func (s Summary) BatchID() string { return s.batchID }

// EventID returns the event the batch was submitted for.
func (s Summary) EventID() string { return s.eventID }

// Successful returns the successful outcomes.
func (s Summary) Successful() []ItemResult { return s.successful }

// Failed returns the failed outcomes.
func (s Summary) Failed() []ItemResult { return s.failed }

// TotalSuccess returns len(Successful()).
func (s Summary) TotalSuccess() int { return len(s.successful) }

// TotalFailed returns len(Failed()).
func (s Summary) TotalFailed() int { return len(s.failed) }

// Total returns the number of input requests accounted for.
func (s Summary) Total() int { return len(s.successful) + len(s.failed) }

// RetryDefaults are the reference fields a retried request inherits. They
// come from the caller, never from the failure record.
type RetryDefaults struct {
	AccountID string
	SpotType  string
	LotID     string
}

// FailedRequests rebuilds creation requests for every failed item, taking
// barcode and customer name from the failure and the rest from defaults.
// Feed the result back into CreateBatch for a fresh summary.
func (s Summary) FailedRequests(defaults RetryDefaults) []PassRequest {
	reqs := make([]PassRequest, 0, len(s.failed))
	for _, f := range s.failed {
		reqs = append(reqs, PassRequest{
			AccountID:    defaults.AccountID,
			Barcode:      f.Barcode,
			CustomerName: f.CustomerName,
			SpotType:     defaults.SpotType,
			LotID:        defaults.LotID,
		})
	}
	return reqs
}

func convertRequests(eventID string, reqs []PassRequest) []domain.PassRequest {
	out := make([]domain.PassRequest, len(reqs))
	for i, r := range reqs {
		out[i] = toInternalRequest(eventID, r)
	}
	return out
}

func toInternalRequest(eventID string, r PassRequest) domain.PassRequest {
	return domain.PassRequest{
		EventID:      eventID,
		AccountID:    r.AccountID,
		Barcode:      r.Barcode,
		CustomerName: r.CustomerName,
		SpotType:     r.SpotType,
		LotID:        r.LotID,
	}
}

func fromInternalPass(p domain.Pass) Pass {
	return Pass{
		PassID:       p.PassID,
		EventID:      p.EventID,
		AccountID:    p.AccountID,
		Barcode:      p.Barcode,
		CustomerName: p.CustomerName,
		SpotType:     p.SpotType,
		LotID:        p.LotID,
		Status:       p.Status,
	}
}

func fromInternalEvent(e domain.Event) Event {
	return Event{
		EventID:    e.EventID,
		LandmarkID: e.LandmarkID,
		Name:       e.Name,
		StartsAt:   e.StartsAt,
		Venue:      e.Venue,
	}
}

func fromInternalSummary(s dombatch.Summary) Summary {
	out := Summary{
		batchID: s.BatchID(),
		eventID: s.EventID(),
	}
	for _, o := range s.Successful() {
		out.successful = append(out.successful, ItemResult{
			Barcode:      o.Barcode(),
			CustomerName: o.CustomerName(),
			PassID:       o.PassID(),
		})
	}
	for _, o := range s.Failed() {
		out.failed = append(out.failed, ItemResult{
			Barcode:      o.Barcode(),
			CustomerName: o.CustomerName(),
			Err:          o.Err(),
		})
	}
	return out
}
