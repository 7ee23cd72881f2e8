package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/tair/wordbook/internal/config"
	"github.com/tair/wordbook/internal/word"
	httpDelivery "github.com/tair/wordbook/internal/word/delivery/http"
	"github.com/tair/wordbook/internal/word/domain"
	"github.com/tair/wordbook/kafka"
	"github.com/tair/wordbook/pkg/logger"
	"github.com/tair/wordbook/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("wordbook", true)
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Str("words_file", cfg.WordsFile).
		Str("favorites_file", cfg.FavoritesFile).
		Msg("Starting wordbook service")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize tracer
	tp, err := tracing.InitTracer(ctx, tracing.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    cfg.ServiceName,
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
	})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	var redisClient *redis.Client
	if cfg.Session.Backend == config.SessionBackendRedis {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Logger.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("Failed to connect to Redis")
		}
		logger.Logger.Info().Str("addr", cfg.Redis.Addr).Msg("Redis session store connected")
	}

	var events domain.EventPublisher = domain.NopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Logger.Error().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("Failed to create Kafka publisher, events disabled")
		} else {
			defer publisher.Close()
			events = publisher
		}
	}

	// Initialize handler with Wire DI
	wordbookHandler, err := word.InitializeHandler(cfg, redisClient, events, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	go reloadOnHangup(ctx, wordbookHandler)

	if err := runHTTPServer(ctx, cfg, wordbookHandler); err != nil {
		logger.Logger.Fatal().Err(err).Msg("HTTP server failed")
	}
	logger.Logger.Info().Msg("Server stopped")
}

// reloadOnHangup re-reads the word file on every SIGHUP until ctx ends
func reloadOnHangup(ctx context.Context, wordbookHandler *httpDelivery.WordbookHandler) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			n, err := wordbookHandler.ReloadWords(ctx)
			if err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to reload word file")
				continue
			}
			logger.Logger.Info().Int("words", n).Msg("Word file reloaded on SIGHUP")
		}
	}
}

func runHTTPServer(ctx context.Context, cfg *config.Config, wordbookHandler *httpDelivery.WordbookHandler) error {
	router := mux.NewRouter()

	middlewareConfig := httpDelivery.DefaultMiddlewareConfig(cfg.RequestTimeout, cfg.CORS.AllowedOrigins)
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	wordbookHandler.RegisterRoutes(router)
	wordbookHandler.RegisterHealthCheck(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httpDelivery.SetupCORS(middlewareConfig)(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Logger.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
