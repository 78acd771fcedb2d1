package events

import (
	"context"
	"testing"
	"time"

	"github.com/jump-sdk/parkhub-batch/internal/domain"
	"github.com/jump-sdk/parkhub-batch/internal/domain/apperror"
)

type mockCatalog struct {
	listEventsFn func(ctx context.Context, dateFrom time.Time) ([]domain.Event, error)
	listPassesFn func(ctx context.Context, eventID string) ([]domain.Pass, error)
}

func (m *mockCatalog) ListEvents(ctx context.Context, dateFrom time.Time) ([]domain.Event, error) {
	return m.listEventsFn(ctx, dateFrom)
}

func (m *mockCatalog) ListPasses(ctx context.Context, eventID string) ([]domain.Pass, error) {
	return m.listPassesFn(ctx, eventID)
}

func TestList_PassesDateFromThrough(t *testing.T) {
	want := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	mock := &mockCatalog{
		listEventsFn: func(_ context.Context, dateFrom time.Time) ([]domain.Event, error) {
			if !dateFrom.Equal(want) {
				t.Errorf("dateFrom = %v, want %v", dateFrom, want)
			}
			return []domain.Event{{EventID: "evt-1"}}, nil
		},
	}

	events, err := New(mock).List(context.Background(), want)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("events = %d, want 1", len(events))
	}
}

func TestPasses_SurfacesClassifiedError(t *testing.T) {
	mock := &mockCatalog{
		listPassesFn: func(_ context.Context, _ string) ([]domain.Pass, error) {
			return nil, apperror.NewClient(apperror.CodeEventNotFound, 404)
		},
	}

	_, err := New(mock).Passes(context.Background(), "evt-404")
	e, ok := apperror.As(err)
	if !ok || e.Code != apperror.CodeEventNotFound {
		t.Fatalf("err = %v, want EVENT_NOT_FOUND", err)
	}
}
