// Package events serves the read paths: upstream event listings and the
// passes already created for an event.
package events

import (
	"context"
	"time"

	"github.com/jump-sdk/parkhub-batch/internal/domain"
)

// Service exposes the event and pass read paths.
type Service struct {
	catalog Catalog
}

// New creates an events service.
func New(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// List returns the landmark's events, optionally from a start date.
func (s *Service) List(ctx context.Context, dateFrom time.Time) ([]domain.Event, error) {
	return s.catalog.ListEvents(ctx, dateFrom)
}

// Passes returns the passes already created for an event.
func (s *Service) Passes(ctx context.Context, eventID string) ([]domain.Pass, error) {
	return s.catalog.ListPasses(ctx, eventID)
}
