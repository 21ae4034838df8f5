// cmd/awards-api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"awards-portal/internal/api"
	"awards-portal/internal/common/auth"
	"awards-portal/internal/common/aws"
	"awards-portal/internal/common/camunda"
	"awards-portal/internal/common/config"
	"awards-portal/internal/common/database"
	"awards-portal/internal/common/logger"
	"awards-portal/internal/common/observability"
	"awards-portal/internal/records"
	"awards-portal/internal/search"
	"awards-portal/internal/storage"
	"awards-portal/internal/submission"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.FromConfig(cfg.Logging)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting awards API...",
		zap.String("environment", cfg.App.Environment),
		zap.String("uploadStrategy", cfg.Storage.UploadStrategy),
	)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	obs := observability.New("awards-api", log)
	defer obs.Shutdown()

	ctx := context.Background()
	readiness := map[string]api.ReadinessCheck{}

	// --- PostgreSQL ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.ConnectPostgres(ctx, cfg.Database.Postgres)
		return err
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		zapLog.Fatal("schema migration failed", zap.Error(err))
	}
	readiness["postgres"] = pg.Ping
	zapLog.Info("PostgreSQL connected successfully")

	var store records.Store = records.NewPostgresStore(pg.DB, log)

	// --- Redis record cache ---
	if cfg.Database.Redis.Enabled() && cfg.Submission.CacheTTL > 0 {
		rdb, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Fatal("redis client failed", zap.Error(err))
		}
		defer rdb.Close()

		if err := rdb.Ping(ctx); err != nil {
			zapLog.Warn("Redis unreachable at startup, cache reads will fall through", zap.Error(err))
		}
		store = records.NewCachedStore(store, rdb.Client, config.GetDuration(cfg.Submission.CacheTTL), log)
		readiness["redis"] = rdb.Ping
		zapLog.Info("Record cache enabled", zap.Int("ttl_ms", cfg.Submission.CacheTTL))
	}

	// --- Object storage ---
	var s3Client storage.S3API
	if cfg.Storage.UploadStrategy == config.StrategyS3 || cfg.Storage.UploadStrategy == config.StrategyFallback {
		client, err := aws.NewS3Client(ctx, cfg.Storage)
		if err != nil {
			zapLog.Fatal("s3 client failed", zap.Error(err))
		}
		s3Client = client
	}

	uploader, err := storage.New(cfg.Storage.UploadStrategy, s3Client, cfg.Storage, log)
	if err != nil {
		zapLog.Fatal("uploader setup failed", zap.Error(err))
	}

	orchestrator := submission.NewOrchestrator(
		&submission.Config{AnonymousUser: cfg.Submission.AnonymousUser},
		store, uploader, auth.ContextIdentity{}, log,
	).WithObservability(obs)

	// --- Camunda ---
	if cfg.Camunda.BrokerAddress != "" {
		var camundaClient *camunda.Client
		err = retryWithBackoff(func() error {
			var err error
			camundaClient, err = camunda.NewClient(cfg.Camunda)
			return err
		}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		defer camundaClient.Close()

		orchestrator.WithPublisher(camunda.NewProcessPublisher(camundaClient, cfg.Camunda.ProcessID, log))
		readiness["zeebe"] = camundaClient.HealthCheck
		zapLog.Info("Zeebe client connected successfully", zap.String("processId", cfg.Camunda.ProcessID))
	}

	deps := api.Dependencies{
		Submitter:      orchestrator,
		Store:          store,
		Uploader:       uploader,
		Readiness:      readiness,
		MaxUploadBytes: cfg.Server.MaxUploadMB << 20,
		SubmitTimeout:  config.GetDuration(cfg.Submission.Timeout),
	}

	// --- Keycloak ---
	if cfg.Auth.Keycloak.Enabled() {
		deps.Identity = auth.NewKeycloakClient(cfg.Auth.Keycloak)
		zapLog.Info("Keycloak enabled", zap.String("realm", cfg.Auth.Keycloak.Realm))
	} else {
		zapLog.Warn("Keycloak not configured, admin routes will answer 503")
	}

	// --- Elasticsearch ---
	if cfg.Database.Elasticsearch.Enabled() {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Fatal("elasticsearch client failed", zap.Error(err))
		}
		index := search.NewIndex(es.Client, cfg.Search, log)
		deps.Search = index
		deps.Indexer = index
		readiness["elasticsearch"] = es.Ping
		zapLog.Info("Elasticsearch search enabled", zap.String("index", cfg.Search.IndexName))
	}

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      api.NewServer(deps, log).Router(),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("API server listening", zap.String("address", cfg.Server.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("API server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down API server", zap.Error(err))
	}

	zapLog.Info("Awards API stopped gracefully")
}
