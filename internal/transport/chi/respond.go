package chi

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jump-sdk/parkhub-batch/internal/domain/apperror"
	dombatch "github.com/jump-sdk/parkhub-batch/internal/domain/batch"
)

// envelope mirrors the upstream response shape so gateway clients see one
// format on both paths.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message, field string) {
	writeJSON(w, status, envelope{
		Success: false,
		Error:   &errorBody{Code: code, Message: message, Field: field},
	})
}

// handleUpstreamError maps a classified error to a gateway status. Server and
// network faults surface as 502: the gateway itself is healthy, the upstream
// is not.
func (s *Server) handleUpstreamError(w http.ResponseWriter, err error) {
	appErr := apperror.Classify(err)
	s.logger.Warn("upstream error",
		zap.String("kind", appErr.Kind.String()),
		zap.String("code", string(appErr.Code)),
		zap.Error(err),
	)

	status := http.StatusBadGateway
	switch appErr.Kind {
	case apperror.KindAuthentication:
		status = http.StatusUnauthorized
	case apperror.KindValidation:
		status = http.StatusBadRequest
	case apperror.KindClient:
		if appErr.Code == apperror.CodeEventNotFound {
			status = http.StatusNotFound
		} else {
			status = http.StatusBadRequest
		}
	case apperror.KindUnknown:
		status = http.StatusInternalServerError
	}

	writeError(w, status, string(appErr.Code), appErr.Message, appErr.Field)
}

// Summary DTOs. The domain type keeps its fields unexported; the gateway
// flattens it for JSON.
type summaryDTO struct {
	BatchID    string       `json:"batchId"`
	EventID    string       `json:"eventId"`
	Successful []outcomeDTO `json:"successful"`
	Failed     []outcomeDTO `json:"failed"`
	Totals     totalsDTO    `json:"totals"`
}

type outcomeDTO struct {
	Barcode      string     `json:"barcode"`
	CustomerName string     `json:"customerName"`
	PassID       string     `json:"passId,omitempty"`
	Error        *errorBody `json:"error,omitempty"`
}

type totalsDTO struct {
	Success int `json:"success"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}

func summaryToDTO(s dombatch.Summary) summaryDTO {
	dto := summaryDTO{
		BatchID:    s.BatchID(),
		EventID:    s.EventID(),
		Successful: make([]outcomeDTO, 0, s.TotalSuccess()),
		Failed:     make([]outcomeDTO, 0, s.TotalFailed()),
		Totals: totalsDTO{
			Success: s.TotalSuccess(),
			Failed:  s.TotalFailed(),
			Total:   s.Total(),
		},
	}
	for _, o := range s.Successful() {
		dto.Successful = append(dto.Successful, outcomeDTO{
			Barcode:      o.Barcode(),
			CustomerName: o.CustomerName(),
			PassID:       o.PassID(),
		})
	}
	for _, o := range s.Failed() {
		item := outcomeDTO{
			Barcode:      o.Barcode(),
			CustomerName: o.CustomerName(),
		}
		if appErr := o.Err(); appErr != nil {
			item.Error = &errorBody{
				Code:    string(appErr.Code),
				Message: appErr.Message,
				Field:   appErr.Field,
			}
		}
		dto.Failed = append(dto.Failed, item)
	}
	return dto
}
