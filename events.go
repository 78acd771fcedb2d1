package parkhub

import (
	"context"
	"fmt"
	"time"
)

// EventsService reads events and existing passes for the landmark.
type EventsService struct {
	svc eventsUseCase
	obs *observer
}

// List returns the landmark's events. A zero dateFrom returns everything.
func (s *EventsService) List(ctx context.Context, dateFrom time.Time) (_ []Event, err error) {
	start := time.Now()
	defer func() { s.obs.observe("events.list", start, err) }()

	events, err := s.svc.List(ctx, dateFrom)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = fromInternalEvent(e)
	}
	return out, nil
}

// Passes returns the passes already created for an event.
func (s *EventsService) Passes(ctx context.Context, eventID string) (_ []Pass, err error) {
	start := time.Now()
	defer func() { s.obs.observe("events.passes", start, err) }()

	passes, err := s.svc.Passes(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list passes: %w", err)
	}

	out := make([]Pass, len(passes))
	for i, p := range passes {
		out[i] = fromInternalPass(p)
	}
	return out, nil
}
