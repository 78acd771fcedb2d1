package parkhub

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jump-sdk/parkhub-batch/internal/domain"
	dombatch "github.com/jump-sdk/parkhub-batch/internal/domain/batch"
	"github.com/jump-sdk/parkhub-batch/internal/keystore"
	"github.com/jump-sdk/parkhub-batch/internal/retry"
	"github.com/jump-sdk/parkhub-batch/internal/transport/parkhub"
	batchuc "github.com/jump-sdk/parkhub-batch/internal/usecase/batch"
	eventsuc "github.com/jump-sdk/parkhub-batch/internal/usecase/events"
)

// CredentialStore persists the API key outside the process, so a rotated
// credential survives restarts and is shared between replicas.
type CredentialStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, apiKey string) error
	Remove(ctx context.Context) error
}

// ErrNoCredential is returned by credential stores holding no key.
var ErrNoCredential = keystore.ErrNotFound

// NewMemoryCredentials creates an in-process credential store.
func NewMemoryCredentials() CredentialStore {
	return keystore.NewMemory()
}

// RedisCredentialsConfig holds connection parameters for a Redis-backed
// credential store.
type RedisCredentialsConfig struct {
	Addrs     []string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
	TTL       time.Duration
}

// NewRedisCredentials creates a Redis-backed credential store.
func NewRedisCredentials(cfg RedisCredentialsConfig) (CredentialStore, error) {
	store, err := keystore.NewRedis(keystore.RedisConfig{
		Addrs:     cfg.Addrs,
		Username:  cfg.Username,
		Password:  cfg.Password,
		DB:        cfg.DB,
		KeyPrefix: cfg.KeyPrefix,
		TTL:       cfg.TTL,
	})
	if err != nil {
		return nil, fmt.Errorf("parkhub: create redis credentials: %w", err)
	}
	return store, nil
}

// Внутренние интерфейсы для подмены в тестах.
type eventsUseCase interface {
	List(ctx context.Context, dateFrom time.Time) ([]domain.Event, error)
	Passes(ctx context.Context, eventID string) ([]domain.Pass, error)
}

type batchUseCase interface {
	CreateBatch(ctx context.Context, eventID string, requests []domain.PassRequest) (dombatch.Summary, error)
}

type passCreator interface {
	CreatePass(ctx context.Context, req domain.PassRequest) (string, error)
}

// Client is the parkhub SDK entry point.
type Client struct {
	transport   *parkhub.Client
	eventsSvc   eventsUseCase
	batchSvc    batchUseCase
	creator     passCreator
	credentials CredentialStore
	obs         *observer
}

// New creates a parkhub Client. The provided context is used to load the
// initial credential when a store is configured.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.baseURL == "" {
		return nil, errors.New("parkhub: base URL required (use WithBaseURL)")
	}
	if cfg.landmark == "" {
		return nil, errors.New("parkhub: landmark required (use WithLandmark)")
	}

	apiKey := cfg.apiKey
	if cfg.credentials != nil {
		stored, err := cfg.credentials.Get(ctx)
		switch {
		case err == nil:
			apiKey = stored
		case errors.Is(err, ErrNoCredential):
			// keep the WithAPIKey value, if any
		default:
			return nil, fmt.Errorf("parkhub: load credential: %w", err)
		}
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	transport := parkhub.NewClient(parkhub.Config{
		BaseURL:  cfg.baseURL,
		Landmark: cfg.landmark,
		APIKey:   apiKey,
		Timeout:  cfg.timeout,
		Retry: retry.Policy{
			MaxAttempts: cfg.retryAttempts,
			BaseDelay:   cfg.retryBase,
			MaxDelay:    cfg.retryMax,
		},
		Logger: zap.NewNop(),
	})

	batchSvc := batchuc.New(transport, zap.NewNop())
	if cfg.chunkSize > 0 {
		batchSvc = batchSvc.WithChunkSize(cfg.chunkSize)
	}

	return &Client{
		transport:   transport,
		eventsSvc:   eventsuc.New(transport),
		batchSvc:    batchSvc,
		creator:     transport,
		credentials: cfg.credentials,
		obs:         obs,
	}, nil
}

// Events returns the event and pass read service.
func (c *Client) Events() *EventsService {
	return &EventsService{svc: c.eventsSvc, obs: c.obs}
}

// Passes returns the pass creation service.
func (c *Client) Passes() *PassService {
	return &PassService{creator: c.creator, batch: c.batchSvc, obs: c.obs}
}

// RotateAPIKey swaps the credential. Calls issued after the rotation use the
// new key; in-flight calls finish with the old one. When a credential store
// is configured the new key is persisted first.
func (c *Client) RotateAPIKey(ctx context.Context, apiKey string) error {
	if c.credentials != nil {
		if err := c.credentials.Set(ctx, apiKey); err != nil {
			return fmt.Errorf("parkhub: persist credential: %w", err)
		}
	}
	c.transport.SetAPIKey(apiKey)
	return nil
}

// RequestInterceptor inspects or mutates an outgoing request before it is
// sent. Returning an error aborts the call.
type RequestInterceptor = parkhub.RequestInterceptor

// ResponseInterceptor inspects a raw response before it is decoded.
// Returning an error fails the call; the error is classified as usual.
type ResponseInterceptor = parkhub.ResponseInterceptor

// OnRequest registers a request interceptor; the returned id removes it.
func (c *Client) OnRequest(fn RequestInterceptor) int {
	return c.transport.OnRequest(fn)
}

// OnResponse registers a response interceptor; the returned id removes it.
func (c *Client) OnResponse(fn ResponseInterceptor) int {
	return c.transport.OnResponse(fn)
}

// RemoveInterceptor removes a previously registered interceptor by id.
func (c *Client) RemoveInterceptor(id int) {
	c.transport.RemoveInterceptor(id)
}
