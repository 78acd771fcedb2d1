package parkhub

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/jump-sdk/parkhub-batch/internal/domain"
	"github.com/jump-sdk/parkhub-batch/internal/domain/apperror"
	"github.com/jump-sdk/parkhub-batch/internal/metrics"
)

// ListEvents fetches the landmark's events, optionally from a start date.
func (c *Client) ListEvents(ctx context.Context, dateFrom time.Time) ([]domain.Event, error) {
	query := url.Values{"landMarkId": {c.landmark}}
	if !dateFrom.IsZero() {
		query.Set("dateFrom", dateFrom.Format("2006-01-02"))
	}

	var events []domain.Event
	if err := c.Get(ctx, "/events/"+c.landmark, query, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListPasses fetches the passes already created for an event.
func (c *Client) ListPasses(ctx context.Context, eventID string) ([]domain.Pass, error) {
	query := url.Values{
		"landMarkId": {c.landmark},
		"eventId":    {eventID},
	}

	var passes []domain.Pass
	if err := c.Get(ctx, "/"+c.landmark+"/passes", query, &passes); err != nil {
		return nil, err
	}
	return passes, nil
}

// CreatePass creates one parking pass and returns the upstream pass ID.
// When the client is configured with a retry policy, retryable failures are
// re-issued with backoff and the final classified error is surfaced
// unchanged.
func (c *Client) CreatePass(ctx context.Context, req domain.PassRequest) (string, error) {
	path := "/" + c.landmark + "/passes"
	endpoint := endpointLabel("POST", path)

	var passID string
	op := func(ctx context.Context) error {
		env, err := c.roundTrip(ctx, "POST", path, nil, req)
		if err != nil {
			return err
		}
		passID = env.PassID
		return nil
	}

	onRetry := func(appErr *apperror.Error, attempt int, delay time.Duration) {
		metrics.UpstreamRetriesTotal.WithLabelValues(endpoint).Inc()
		c.logger.Info("retrying pass creation",
			zap.String("barcode", req.Barcode),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.String("code", string(appErr.Code)),
		)
	}

	if err := c.retry.Do(ctx, op, onRetry); err != nil {
		return "", err
	}
	return passID, nil
}
