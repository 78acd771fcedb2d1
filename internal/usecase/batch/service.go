// Package batch fans out independent pass creation requests with bounded
// concurrency and reconciles the per-item outcomes into a summary.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/jump-sdk/parkhub-batch/internal/domain"
	"github.com/jump-sdk/parkhub-batch/internal/domain/apperror"
	dombatch "github.com/jump-sdk/parkhub-batch/internal/domain/batch"
	"github.com/jump-sdk/parkhub-batch/internal/metrics"
)

// DefaultChunkSize bounds how many creation calls are in flight at once.
const DefaultChunkSize = 10

// ErrEmptyBatch is returned before any network call when the input is empty.
var ErrEmptyBatch = errors.New("batch is empty")

// Service dispatches pass creation batches. Items within a chunk run
// concurrently; chunks run strictly one after another.
type Service struct {
	creator   PassCreator
	chunkSize int
	logger    *zap.Logger
}

// New creates a batch service.
func New(creator PassCreator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		creator:   creator,
		chunkSize: DefaultChunkSize,
		logger:    logger,
	}
}

// WithChunkSize configures the concurrency bound.
func (s *Service) WithChunkSize(size int) *Service {
	if size > 0 {
		s.chunkSize = size
	}
	return s
}

// CreateBatch submits every request and returns the reconciled summary.
// Failure isolation is mandatory: one item failing never affects a sibling's
// outcome, and every input request appears in exactly one of the summary's
// two lists. An empty input and a missing credential are caller errors,
// rejected synchronously before any dispatch.
func (s *Service) CreateBatch(ctx context.Context, eventID string, requests []domain.PassRequest) (dombatch.Summary, error) {
	if len(requests) == 0 {
		return dombatch.Summary{}, ErrEmptyBatch
	}
	// A missing credential would fail every item the same way; that is a
	// structural error of the whole batch, not N item failures.
	if !s.creator.HasKey() {
		return dombatch.Summary{}, apperror.NewAuthentication(apperror.CodeMissingAPIKey, 0)
	}

	outcomes := make([]dombatch.Outcome, len(requests))

	// First occurrence of a barcode dispatches; later occurrences fail
	// locally without a network call. The set spans chunks so a duplicate
	// never races its original.
	seen := make(map[string]struct{}, len(requests))

	for chunkStart := 0; chunkStart < len(requests); chunkStart += s.chunkSize {
		if err := ctx.Err(); err != nil {
			s.abandonRemaining(outcomes, requests, chunkStart, err)
			break
		}

		end := chunkStart + s.chunkSize
		if end > len(requests) {
			end = len(requests)
		}
		s.dispatchChunk(ctx, requests[chunkStart:end], outcomes[chunkStart:end], seen)
	}

	summary := dombatch.Summarize(eventID, outcomes)
	metrics.BatchItemsTotal.WithLabelValues("success").Add(float64(summary.TotalSuccess()))
	metrics.BatchItemsTotal.WithLabelValues("failure").Add(float64(summary.TotalFailed()))

	s.logger.Info("batch settled",
		zap.String("batch_id", summary.BatchID()),
		zap.String("event_id", eventID),
		zap.Int("requested", len(requests)),
		zap.Int("succeeded", summary.TotalSuccess()),
		zap.Int("failed", summary.TotalFailed()),
	)
	return summary, nil
}

// dispatchChunk screens duplicates, then runs the surviving items
// concurrently and waits for all of them to settle.
func (s *Service) dispatchChunk(
	ctx context.Context,
	requests []domain.PassRequest,
	outcomes []dombatch.Outcome,
	seen map[string]struct{},
) {
	var wg sync.WaitGroup
	for i := range requests {
		req := requests[i]

		if _, dup := seen[req.Barcode]; dup {
			outcomes[i] = dombatch.NewFailure(req.Barcode, req.CustomerName,
				apperror.NewValidation(apperror.CodeDuplicateBarcode, "barcode", ""))
			continue
		}
		seen[req.Barcode] = struct{}{}

		wg.Add(1)
		go func(i int, req domain.PassRequest) {
			defer wg.Done()
			outcomes[i] = s.createOne(ctx, req)
		}(i, req)
	}
	wg.Wait()
}

// createOne settles a single item. A panic in the creator is captured as
// that item's failure so it cannot abort sibling calls.
func (s *Service) createOne(ctx context.Context, req domain.PassRequest) (out dombatch.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("pass creation panicked",
				zap.String("barcode", req.Barcode),
				zap.Any("panic", r),
			)
			out = dombatch.NewFailure(req.Barcode, req.CustomerName,
				apperror.NewUnknown(fmt.Errorf("pass creation panicked: %v", r)))
		}
	}()

	if err := req.Validate(); err != nil {
		return dombatch.NewFailure(req.Barcode, req.CustomerName, err)
	}

	passID, err := s.creator.CreatePass(ctx, req)
	if err != nil {
		return dombatch.NewFailure(req.Barcode, req.CustomerName, err)
	}
	return dombatch.NewSuccess(req.Barcode, req.CustomerName, passID)
}

// abandonRemaining records a classified failure for every item that was not
// dispatched because the batch's context ended, keeping accounting total.
func (s *Service) abandonRemaining(
	outcomes []dombatch.Outcome,
	requests []domain.PassRequest,
	from int,
	cause error,
) {
	s.logger.Warn("batch abandoned before completion",
		zap.Int("remaining", len(requests)-from),
		zap.Error(cause),
	)
	for i := from; i < len(requests); i++ {
		outcomes[i] = dombatch.NewFailure(requests[i].Barcode, requests[i].CustomerName, cause)
	}
}
