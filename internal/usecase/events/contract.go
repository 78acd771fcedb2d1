package events

import (
	"context"
	"time"

	"github.com/jump-sdk/parkhub-batch/internal/domain"
)

// Catalog reads events and passes from the upstream API.
type Catalog interface {
	ListEvents(ctx context.Context, dateFrom time.Time) ([]domain.Event, error)
	ListPasses(ctx context.Context, eventID string) ([]domain.Pass, error)
}
