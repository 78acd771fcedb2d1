// Package chi is the HTTP gateway exposing batch pass creation to
// operators: event and pass listings, batch submission, selective retry,
// and credential rotation.
package chi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jump-sdk/parkhub-batch/internal/domain"
	dombatch "github.com/jump-sdk/parkhub-batch/internal/domain/batch"
	"github.com/jump-sdk/parkhub-batch/internal/keystore"
	batchuc "github.com/jump-sdk/parkhub-batch/internal/usecase/batch"
	eventsuc "github.com/jump-sdk/parkhub-batch/internal/usecase/events"
)

// maxBatchItems caps one gateway submission; larger batches are split by the
// caller.
const maxBatchItems = 500

// CredentialRotator propagates a rotated API key to the upstream client.
type CredentialRotator interface {
	SetAPIKey(apiKey string)
}

// Server handles the gateway routes.
type Server struct {
	events  *eventsuc.Service
	batch   *batchuc.Service
	keys    keystore.Store
	rotator CredentialRotator
	logger  *zap.Logger
}

// NewServer creates the gateway HTTP server.
func NewServer(
	events *eventsuc.Service,
	batch *batchuc.Service,
	keys keystore.Store,
	rotator CredentialRotator,
	logger *zap.Logger,
) *Server {
	return &Server{
		events:  events,
		batch:   batch,
		keys:    keys,
		rotator: rotator,
		logger:  logger,
	}
}

// Mount attaches all routes to the router.
func (s *Server) Mount(r chirouter.Router) {
	r.Get("/health", s.HealthCheck)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Get("/events", s.ListEvents)
	r.Get("/events/{eventID}/passes", s.ListPasses)
	r.Post("/events/{eventID}/passes/batch", s.CreateBatch)
	r.Post("/events/{eventID}/passes/retry", s.RetryBatch)

	r.Put("/credential", s.SetCredential)
	r.Delete("/credential", s.RemoveCredential)
	r.Get("/credential", s.ValidateCredential)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListEvents handles GET /events.
func (s *Server) ListEvents(w http.ResponseWriter, r *http.Request) {
	var dateFrom time.Time
	if raw := r.URL.Query().Get("dateFrom"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_INPUT", "dateFrom must be YYYY-MM-DD", "dateFrom")
			return
		}
		dateFrom = parsed
	}

	events, err := s.events.List(r.Context(), dateFrom)
	if err != nil {
		s.handleUpstreamError(w, err)
		return
	}
	writeData(w, http.StatusOK, events)
}

// ListPasses handles GET /events/{eventID}/passes.
func (s *Server) ListPasses(w http.ResponseWriter, r *http.Request) {
	eventID := chirouter.URLParam(r, "eventID")

	passes, err := s.events.Passes(r.Context(), eventID)
	if err != nil {
		s.handleUpstreamError(w, err)
		return
	}
	writeData(w, http.StatusOK, passes)
}

// batchRequest is the gateway submission payload. Items omit eventId; it
// comes from the URL.
type batchRequest struct {
	Passes []batchItem `json:"passes"`
}

type batchItem struct {
	AccountID    string `json:"accountId"`
	Barcode      string `json:"barcode"`
	CustomerName string `json:"customerName"`
	SpotType     string `json:"spotType"`
	LotID        string `json:"lotId"`
}

// CreateBatch handles POST /events/{eventID}/passes/batch.
func (s *Server) CreateBatch(w http.ResponseWriter, r *http.Request) {
	eventID := chirouter.URLParam(r, "eventID")

	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body: "+err.Error(), "")
		return
	}
	if len(req.Passes) == 0 || len(req.Passes) > maxBatchItems {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT",
			"passes count must be between 1 and 500", "passes")
		return
	}

	requests := make([]domain.PassRequest, len(req.Passes))
	for i, p := range req.Passes {
		requests[i] = domain.PassRequest{
			EventID:      eventID,
			AccountID:    p.AccountID,
			Barcode:      p.Barcode,
			CustomerName: p.CustomerName,
			SpotType:     p.SpotType,
			LotID:        p.LotID,
		}
	}

	s.runBatch(w, r.Context(), eventID, requests)
}

// retryRequest re-submits previously failed items with inherited defaults.
type retryRequest struct {
	Failures []retryFailure `json:"failures"`
	Defaults retryDefaults  `json:"defaults"`
}

type retryFailure struct {
	Barcode      string `json:"barcode"`
	CustomerName string `json:"customerName"`
}

type retryDefaults struct {
	AccountID string `json:"accountId"`
	SpotType  string `json:"spotType"`
	LotID     string `json:"lotId"`
}

// RetryBatch handles POST /events/{eventID}/passes/retry.
func (s *Server) RetryBatch(w http.ResponseWriter, r *http.Request) {
	eventID := chirouter.URLParam(r, "eventID")

	var req retryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body: "+err.Error(), "")
		return
	}
	if len(req.Failures) == 0 {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "failures must not be empty", "failures")
		return
	}

	items := make([]dombatch.RetryItem, len(req.Failures))
	for i, f := range req.Failures {
		items[i] = dombatch.RetryItem{Barcode: f.Barcode, CustomerName: f.CustomerName}
	}
	requests := dombatch.BuildRetry(eventID, items, dombatch.RetryDefaults{
		AccountID: req.Defaults.AccountID,
		SpotType:  req.Defaults.SpotType,
		LotID:     req.Defaults.LotID,
	})

	s.runBatch(w, r.Context(), eventID, requests)
}

func (s *Server) runBatch(w http.ResponseWriter, ctx context.Context, eventID string, requests []domain.PassRequest) {
	summary, err := s.batch.CreateBatch(ctx, eventID, requests)
	if err != nil {
		if err == batchuc.ErrEmptyBatch {
			writeError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error(), "passes")
			return
		}
		s.handleUpstreamError(w, err)
		return
	}
	writeData(w, http.StatusOK, summaryToDTO(summary))
}

// credentialRequest carries a new API key.
type credentialRequest struct {
	APIKey string `json:"apiKey"`
}

// SetCredential handles PUT /credential: stores and rotates the upstream key.
func (s *Server) SetCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "invalid request body: "+err.Error(), "")
		return
	}
	if !keystore.WellFormed(req.APIKey) {
		writeError(w, http.StatusBadRequest, "INVALID_INPUT", "api key is not well-formed", "apiKey")
		return
	}

	if err := s.keys.Set(r.Context(), req.APIKey); err != nil {
		s.logger.Error("failed to store api key", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "UNKNOWN_ERROR", "failed to store api key", "")
		return
	}
	s.rotator.SetAPIKey(req.APIKey)

	writeData(w, http.StatusOK, map[string]bool{"rotated": true})
}

// RemoveCredential handles DELETE /credential.
func (s *Server) RemoveCredential(w http.ResponseWriter, r *http.Request) {
	if err := s.keys.Remove(r.Context()); err != nil {
		s.logger.Error("failed to remove api key", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "UNKNOWN_ERROR", "failed to remove api key", "")
		return
	}
	s.rotator.SetAPIKey("")

	w.WriteHeader(http.StatusNoContent)
}

// ValidateCredential handles GET /credential.
func (s *Server) ValidateCredential(w http.ResponseWriter, r *http.Request) {
	valid, err := s.keys.Validate(r.Context())
	if err != nil {
		s.logger.Error("failed to validate api key", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "UNKNOWN_ERROR", "failed to validate api key", "")
		return
	}
	writeData(w, http.StatusOK, map[string]bool{"valid": valid})
}
