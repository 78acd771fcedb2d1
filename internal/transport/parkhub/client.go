// Package parkhub is the authenticated HTTP client for the upstream ParkHub
// API. It attaches the current credential, decodes the response envelope,
// and routes every failure through the error taxonomy.
package parkhub

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jump-sdk/parkhub-batch/internal/domain/apperror"
	"github.com/jump-sdk/parkhub-batch/internal/metrics"
	"github.com/jump-sdk/parkhub-batch/internal/retry"
)

const defaultTimeout = 30 * time.Second

// Config holds client settings.
type Config struct {
	BaseURL  string
	Landmark string
	APIKey   string
	Timeout  time.Duration
	// Retry applies only to call sites that opt in (pass creation).
	// A zero policy disables automatic retry.
	Retry  retry.Policy
	Logger *zap.Logger
}

// Client performs authenticated calls against the ParkHub API. The
// credential is rotated through SetAPIKey; calls already in flight keep the
// header they were built with.
type Client struct {
	baseURL  string
	landmark string
	http     *http.Client
	retry    retry.Policy
	logger   *zap.Logger

	mu     sync.RWMutex
	apiKey string

	interceptors *interceptorRegistry
}

// NewClient creates a ParkHub API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		landmark:     cfg.Landmark,
		http:         &http.Client{Timeout: timeout},
		retry:        cfg.Retry,
		logger:       logger,
		apiKey:       cfg.APIKey,
		interceptors: newInterceptorRegistry(),
	}
}

// Landmark returns the landmark this client is scoped to.
func (c *Client) Landmark() string { return c.landmark }

// SetAPIKey rotates the credential. Only calls issued after the rotation
// pick up the new key.
func (c *Client) SetAPIKey(apiKey string) {
	c.mu.Lock()
	c.apiKey = apiKey
	c.mu.Unlock()
}

// HasKey reports whether a credential is currently configured.
func (c *Client) HasKey() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.apiKey != ""
}

// OnRequest registers a request interceptor; the returned id removes it.
func (c *Client) OnRequest(fn RequestInterceptor) int {
	return c.interceptors.addRequest(fn)
}

// OnResponse registers a response interceptor; the returned id removes it.
func (c *Client) OnResponse(fn ResponseInterceptor) int {
	return c.interceptors.addResponse(fn)
}

// RemoveInterceptor removes a previously registered interceptor by id.
func (c *Client) RemoveInterceptor(id int) {
	c.interceptors.remove(id)
}

// envelope is the wire format shared by every upstream response.
// Pass creation puts passId at the top level next to success.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	PassID  string          `json:"passId"`
	Error   *envelopeError  `json:"error"`
}

type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// currentKey returns the credential, failing fast before any network I/O
// when none is configured.
func (c *Client) currentKey() (string, error) {
	c.mu.RLock()
	key := c.apiKey
	c.mu.RUnlock()
	if key == "" {
		return "", apperror.NewAuthentication(apperror.CodeMissingAPIKey, 0)
	}
	return key, nil
}

// Get issues an authenticated GET and decodes the envelope data into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues an authenticated POST with a JSON body and decodes the
// envelope data into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	env, err := c.roundTrip(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return apperror.NewUnknown(fmt.Errorf("decode response data: %w", err))
		}
	}
	return nil
}

// roundTrip performs one authenticated HTTP exchange. Every error it
// returns is already classified.
func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	key, err := c.currentKey()
	if err != nil {
		return nil, err
	}

	endpoint := endpointLabel(method, path)
	start := time.Now()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, apperror.NewUnknown(fmt.Errorf("marshal request: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, apperror.NewUnknown(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+key)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.interceptors.applyRequest(req); err != nil {
		return nil, apperror.Classify(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		appErr := apperror.Classify(err)
		c.observe(endpoint, start, appErr)
		return nil, appErr
	}
	defer resp.Body.Close()

	if err := c.interceptors.applyResponse(resp); err != nil {
		appErr := apperror.Classify(err)
		c.observe(endpoint, start, appErr)
		return nil, appErr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		appErr := apperror.Classify(err)
		c.observe(endpoint, start, appErr)
		return nil, appErr
	}

	var env envelope
	if len(raw) > 0 {
		// A decode failure on an error status must not mask the status.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode >= 400 || !env.Success {
		appErr := classifyResponse(resp.StatusCode, env.Error)
		c.observe(endpoint, start, appErr)
		c.logger.Debug("upstream call failed",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("kind", appErr.Kind.String()),
			zap.String("code", string(appErr.Code)),
		)
		return nil, appErr
	}

	c.observe(endpoint, start, nil)
	return &env, nil
}

// classifyResponse maps an HTTP status plus the envelope error object into
// the taxonomy. A 2xx body with success=false is driven by the envelope
// code alone.
func classifyResponse(statusCode int, envErr *envelopeError) *apperror.Error {
	var code, message, field string
	if envErr != nil {
		code, message, field = envErr.Code, envErr.Message, envErr.Field
	}
	if statusCode < 400 && apperror.Code(code) == apperror.CodeDuplicateBarcode {
		return apperror.NewValidation(apperror.CodeDuplicateBarcode, field, message)
	}
	return apperror.FromStatus(statusCode, code, message, field)
}

func (c *Client) observe(endpoint string, start time.Time, err *apperror.Error) {
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		metrics.UpstreamErrorsTotal.WithLabelValues(endpoint, err.Kind.String()).Inc()
		return
	}
	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, "success").Inc()
}

func endpointLabel(method, path string) string {
	return method + " " + path
}
