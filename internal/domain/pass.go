package domain

import "github.com/jump-sdk/parkhub-batch/internal/domain/apperror"

// PassRequest is a single parking pass creation request. Barcode is the
// correlation key: unique within a batch and expected unique against
// server-side state.
type PassRequest struct {
	EventID      string `json:"eventId"`
	AccountID    string `json:"accountId"`
	Barcode      string `json:"barcode"`
	CustomerName string `json:"customerName"`
	SpotType     string `json:"spotType"`
	LotID        string `json:"lotId"`
}

// Validate checks that every required field is present. The first missing
// field is reported as a validation error attributed to that field.
func (r PassRequest) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"eventId", r.EventID},
		{"accountId", r.AccountID},
		{"barcode", r.Barcode},
		{"customerName", r.CustomerName},
		{"spotType", r.SpotType},
		{"lotId", r.LotID},
	}
	for _, f := range fields {
		if f.value == "" {
			return apperror.NewValidation(apperror.CodeInvalidInput, f.name, "")
		}
	}
	return nil
}

// Pass is a parking pass record as stored upstream.
type Pass struct {
	PassID       string `json:"passId"`
	EventID      string `json:"eventId"`
	AccountID    string `json:"accountId"`
	Barcode      string `json:"barcode"`
	CustomerName string `json:"customerName"`
	SpotType     string `json:"spotType"`
	LotID        string `json:"lotId"`
	Status       string `json:"status"`
}
