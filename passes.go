package parkhub

import (
	"context"
	"fmt"
	"time"
)

// PassService creates parking passes, one at a time or in batches.
type PassService struct {
	creator passCreator
	batch   batchUseCase
	obs     *observer
}

// Create creates a single pass and returns the upstream pass ID. Transient
// failures are retried when the client was built with WithRetry.
func (s *PassService) Create(ctx context.Context, eventID string, req PassRequest) (_ string, err error) {
	start := time.Now()
	defer func() { s.obs.observe("passes.create", start, err) }()

	passID, err := s.creator.CreatePass(ctx, toInternalRequest(eventID, req))
	if err != nil {
		return "", fmt.Errorf("create pass: %w", err)
	}
	return passID, nil
}

// CreateBatch submits every request and returns the reconciled summary.
// Per-item failures land in the summary, not in err: err is non-nil only
// when the batch as a whole could not run (an empty input, or no credential
// configured).
func (s *PassService) CreateBatch(ctx context.Context, eventID string, requests []PassRequest) (_ Summary, err error) {
	start := time.Now()
	defer func() { s.obs.observe("passes.create_batch", start, err) }()

	summary, err := s.batch.CreateBatch(ctx, eventID, convertRequests(eventID, requests))
	if err != nil {
		return Summary{}, fmt.Errorf("create batch: %w", err)
	}
	return fromInternalSummary(summary), nil
}
