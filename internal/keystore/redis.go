package keystore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"
)

// Compile-time check: Redis implements Store.
var _ Store = (*Redis)(nil)

// RedisConfig holds connection parameters for a Redis-backed store.
type RedisConfig struct {
	Addrs     []string
	Username  string
	Password  string
	DB        int
	KeyPrefix string
	// TTL expires a stored key after the given duration. Zero means no expiry.
	TTL time.Duration
}

// Redis persists the API key in Redis via rueidis, so a rotated credential
// is picked up by every gateway replica.
type Redis struct {
	client rueidis.Client
	key    string
	ttl    time.Duration
}

// NewRedis creates a Redis-backed store.
func NewRedis(cfg RedisConfig) (*Redis, error) {
	if len(cfg.Addrs) == 0 {
		return nil, fmt.Errorf("addrs is required")
	}

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		SelectDB:     cfg.DB,
		DisableCache: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "parkhub:"
	}

	return &Redis{client: client, key: prefix + "api_key", ttl: cfg.TTL}, nil
}

// NewRedisWithClient wraps an existing rueidis client (used in tests).
func NewRedisWithClient(client rueidis.Client, keyPrefix string, ttl time.Duration) *Redis {
	if keyPrefix == "" {
		keyPrefix = "parkhub:"
	}
	return &Redis{client: client, key: keyPrefix + "api_key", ttl: ttl}
}

// Close shuts down the client.
func (r *Redis) Close() { r.client.Close() }

// Ping checks connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	cmd := r.client.B().Ping().Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Get retrieves the stored key.
func (r *Redis) Get(ctx context.Context) (string, error) {
	cmd := r.client.B().Get().Key(r.key).Build()
	val, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get api key: %w", err)
	}
	return val, nil
}

// Set stores the key, applying the configured TTL if any.
func (r *Redis) Set(ctx context.Context, apiKey string) error {
	var cmd rueidis.Completed
	if r.ttl > 0 {
		cmd = r.client.B().Set().Key(r.key).Value(apiKey).Ex(r.ttl).Build()
	} else {
		cmd = r.client.B().Set().Key(r.key).Value(apiKey).Build()
	}
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("set api key: %w", err)
	}
	return nil
}

// Remove deletes the stored key.
func (r *Redis) Remove(ctx context.Context) error {
	cmd := r.client.B().Del().Key(r.key).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("remove api key: %w", err)
	}
	return nil
}

// Validate reports whether a well-formed key is stored.
func (r *Redis) Validate(ctx context.Context) (bool, error) {
	key, err := r.Get(ctx)
	if err != nil {
		if err == ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return WellFormed(key), nil
}
