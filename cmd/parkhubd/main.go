package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jump-sdk/parkhub-batch/internal/config"
	"github.com/jump-sdk/parkhub-batch/internal/keystore"
	logpkg "github.com/jump-sdk/parkhub-batch/internal/logger"
	"github.com/jump-sdk/parkhub-batch/internal/metrics"
	"github.com/jump-sdk/parkhub-batch/internal/retry"
	chiTransport "github.com/jump-sdk/parkhub-batch/internal/transport/chi"
	"github.com/jump-sdk/parkhub-batch/internal/transport/parkhub"
	batchuc "github.com/jump-sdk/parkhub-batch/internal/usecase/batch"
	eventsuc "github.com/jump-sdk/parkhub-batch/internal/usecase/events"
	"github.com/jump-sdk/parkhub-batch/internal/version"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting parkhubd batch gateway",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("upstream", cfg.Upstream.BaseURL),
		zap.String("landmark", cfg.Upstream.Landmark),
		zap.String("credentials_driver", cfg.Credentials.Driver),
	)

	// Register upstream metrics explicitly (no init())
	metrics.RegisterUpstreamMetrics()

	ctx := context.Background()

	// Create the credential store based on driver
	var keys keystore.Store
	switch cfg.Credentials.Driver {
	case "redis":
		redisStore, err := keystore.NewRedis(keystore.RedisConfig{
			Addrs:     cfg.Credentials.Addrs,
			Username:  cfg.Credentials.Username,
			Password:  cfg.Credentials.Password,
			KeyPrefix: cfg.Credentials.KeyPrefix,
			TTL:       time.Duration(cfg.Credentials.TTLSec) * time.Second,
		})
		if err != nil {
			logger.Fatal("Failed to create redis credential store", zap.Error(err))
		}
		defer redisStore.Close()
		if err := redisStore.Ping(ctx); err != nil {
			logger.Fatal("Credential store not ready", zap.Error(err))
		}
		keys = redisStore
	case "memory":
		keys = keystore.NewMemory()
	default:
		logger.Fatal("Unknown credentials driver", zap.String("driver", cfg.Credentials.Driver))
	}

	// Seed the store from config if a key is provided
	if cfg.Credentials.APIKey != "" {
		if err := keys.Set(ctx, cfg.Credentials.APIKey); err != nil {
			logger.Fatal("Failed to seed api key", zap.Error(err))
		}
	}

	// The client starts with whatever key the store holds; an empty key makes
	// every upstream call fail fast until PUT /credential rotates one in.
	apiKey, err := keys.Get(ctx)
	if err != nil && err != keystore.ErrNotFound {
		logger.Fatal("Failed to read api key", zap.Error(err))
	}

	client := parkhub.NewClient(parkhub.Config{
		BaseURL:  cfg.Upstream.BaseURL,
		Landmark: cfg.Upstream.Landmark,
		APIKey:   apiKey,
		Timeout:  time.Duration(cfg.Upstream.TimeoutSec) * time.Second,
		Retry: retry.Policy{
			MaxAttempts: cfg.Upstream.MaxRetries,
			BaseDelay:   time.Duration(cfg.Upstream.BaseDelayMs) * time.Millisecond,
			MaxDelay:    time.Duration(cfg.Upstream.MaxDelayMs) * time.Millisecond,
		},
		Logger: logger,
	})

	// Create use case services
	eventsSvc := eventsuc.New(client)
	batchSvc := batchuc.New(client, logger).WithChunkSize(cfg.Upstream.ChunkSize)

	// Create chi server
	server := chiTransport.NewServer(eventsSvc, batchSvc, keys, client, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
