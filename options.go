package parkhub

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	baseURL  string
	landmark string
	apiKey   string
	timeout  time.Duration

	retryAttempts int
	retryBase     time.Duration
	retryMax      time.Duration

	chunkSize int

	credentials CredentialStore

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithBaseURL sets the ParkHub API base URL. Required.
func WithBaseURL(baseURL string) Option {
	return optionFunc(func(c *clientConfig) {
		c.baseURL = baseURL
	})
}

// WithLandmark scopes the client to a landmark. Required.
func WithLandmark(landmark string) Option {
	return optionFunc(func(c *clientConfig) {
		c.landmark = landmark
	})
}

// WithAPIKey sets the Bearer credential. Without a key (and without a
// credential store holding one) every call fails fast with MISSING_API_KEY.
func WithAPIKey(apiKey string) Option {
	return optionFunc(func(c *clientConfig) {
		c.apiKey = apiKey
	})
}

// WithCredentialStore loads the initial API key from store and keeps store
// in sync on RotateAPIKey. Overrides WithAPIKey when the store holds a key.
func WithCredentialStore(store CredentialStore) Option {
	return optionFunc(func(c *clientConfig) {
		c.credentials = store
	})
}

// WithTimeout sets the per-request HTTP timeout. Default: 30s.
func WithTimeout(timeout time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.timeout = timeout
	})
}

// WithRetry enables automatic retry of transient pass creation failures.
// Delay grows as base*2^attempt, capped at max. Read calls never retry.
func WithRetry(maxAttempts int, base, max time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.retryAttempts = maxAttempts
		c.retryBase = base
		c.retryMax = max
	})
}

// WithChunkSize bounds how many pass creations run concurrently within a
// batch. Default: 10.
func WithChunkSize(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.chunkSize = size
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
