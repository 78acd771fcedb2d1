package parkhub

import (
	"context"
	"time"

	"github.com/jump-sdk/parkhub-batch/internal/domain"
	dombatch "github.com/jump-sdk/parkhub-batch/internal/domain/batch"
)

// --- eventsUseCase mock ---

type mockEventsUC struct {
	listFn   func(ctx context.Context, dateFrom time.Time) ([]domain.Event, error)
	passesFn func(ctx context.Context, eventID string) ([]domain.Pass, error)
}

func (m *mockEventsUC) List(ctx context.Context, dateFrom time.Time) ([]domain.Event, error) {
	return m.listFn(ctx, dateFrom)
}

func (m *mockEventsUC) Passes(ctx context.Context, eventID string) ([]domain.Pass, error) {
	return m.passesFn(ctx, eventID)
}

// --- batchUseCase mock ---

type mockBatchUC struct {
	createBatchFn func(ctx context.Context, eventID string, requests []domain.PassRequest) (dombatch.Summary, error)
}

func (m *mockBatchUC) CreateBatch(ctx context.Context, eventID string, requests []domain.PassRequest) (dombatch.Summary, error) {
	return m.createBatchFn(ctx, eventID, requests)
}

// --- passCreator mock ---

type mockCreator struct {
	createFn func(ctx context.Context, req domain.PassRequest) (string, error)
}

func (m *mockCreator) CreatePass(ctx context.Context, req domain.PassRequest) (string, error) {
	return m.createFn(ctx, req)
}
