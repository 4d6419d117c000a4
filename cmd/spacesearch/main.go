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
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/conntour/spacesearch/internal/config"
	logpkg "github.com/conntour/spacesearch/internal/logger"
	"github.com/conntour/spacesearch/internal/metrics"
	"github.com/conntour/spacesearch/internal/repository/catalog"
	historyrepo "github.com/conntour/spacesearch/internal/repository/history"
	chiTransport "github.com/conntour/spacesearch/internal/transport/chi"
	openaiEmb "github.com/conntour/spacesearch/internal/transport/openai"
	healthuc "github.com/conntour/spacesearch/internal/usecase/health"
	historyuc "github.com/conntour/spacesearch/internal/usecase/history"
	"github.com/conntour/spacesearch/internal/usecase/ingest"
	searchuc "github.com/conntour/spacesearch/internal/usecase/search"
	sourcesuc "github.com/conntour/spacesearch/internal/usecase/sources"
	"github.com/conntour/spacesearch/internal/version"
)

func main() {
	// Load configuration based on ENV
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

	logger.Info("Starting spacesearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("built", version.Date),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("feed_path", cfg.Catalog.FeedPath),
		zap.String("embedding_model", cfg.Embedding.Model),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	embedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Logger:     logger,
	})

	// One-shot catalog build: feed + cached or freshly computed embeddings.
	buildSvc := ingest.New(ingest.Config{
		FeedPath:  cfg.Catalog.FeedPath,
		CachePath: cfg.Catalog.CachePath,
	}, embedder, embedder, logger)

	items, err := buildSvc.Build(context.Background())
	if err != nil {
		logger.Fatal("Failed to build catalog", zap.Error(err))
	}

	cat := catalog.New(items)
	logger.Info("Catalog ready",
		zap.Int("sources", cat.Len()),
		zap.Int("embedded", cat.EmbeddedCount()),
	)

	store := historyrepo.NewStore(historyrepo.WithGauge(metrics.HistoryRecords))

	// Create use case services
	sourcesSvc := sourcesuc.New(cat)
	searchSvc := searchuc.New(cat, embedder, store, logger)
	historySvc := historyuc.New(store, cat, logger)
	healthSvc := healthuc.New(cat, embedder)

	server := chiTransport.NewServer(
		sourcesSvc, searchSvc, historySvc, healthSvc,
		chiTransport.Limits{Default: cfg.Search.DefaultLimit, Max: cfg.Search.MaxLimit},
		chiTransport.Limits{Default: cfg.History.DefaultPageSize, Max: cfg.History.MaxPageSize},
		logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)
	r.Handle("/metrics", promhttp.Handler())

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

			// Set X-Request-ID in response header
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
