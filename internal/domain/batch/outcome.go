// Package batch holds the per-item outcomes of a pass creation batch and the
// reconciliation logic that turns them into a summary and a retry batch.
package batch

import "github.com/jump-sdk/parkhub-batch/internal/domain/apperror"

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Outcome is the settled result of one pass creation request, correlated to
// its input by barcode. Exactly one Outcome exists per input request.
type Outcome struct {
	barcode      string
	customerName string
	passID       string
	status       ItemStatus
	err          *apperror.Error
}

// NewSuccess creates a successful outcome carrying the upstream pass ID.
func NewSuccess(barcode, customerName, passID string) Outcome {
	return Outcome{
		barcode:      barcode,
		customerName: customerName,
		passID:       passID,
		status:       StatusOK,
	}
}

// NewFailure creates a failed outcome. err is classified if it is not
// already an *apperror.Error.
func NewFailure(barcode, customerName string, err error) Outcome {
	return Outcome{
		barcode:      barcode,
		customerName: customerName,
		status:       StatusError,
		err:          apperror.Classify(err),
	}
}

// Barcode returns the correlation key.
func (o Outcome) Barcode() string { return o.barcode }

// CustomerName returns the customer the pass was requested for.
func (o Outcome) CustomerName() string { return o.customerName }

// PassID returns the created pass ID, empty on failure.
func (o Outcome) PassID() string { return o.passID }

// Status returns the processing outcome.
func (o Outcome) Status() ItemStatus { return o.status }

// Err returns the classified error, nil on success.
func (o Outcome) Err() *apperror.Error { return o.err }
