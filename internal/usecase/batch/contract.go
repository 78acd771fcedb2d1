package batch

import (
	"context"

	"github.com/jump-sdk/parkhub-batch/internal/domain"
)

// PassCreator creates a single pass upstream and returns its pass ID.
// HasKey reports whether a credential is configured; a batch is rejected
// up front when none is.
type PassCreator interface {
	CreatePass(ctx context.Context, req domain.PassRequest) (string, error)
	HasKey() bool
}
