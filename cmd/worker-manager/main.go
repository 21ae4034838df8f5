// cmd/worker-manager/main.go
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

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"awards-portal/internal/common/aws"
	"awards-portal/internal/common/camunda"
	"awards-portal/internal/common/config"
	"awards-portal/internal/common/database"
	"awards-portal/internal/common/logger"
	"awards-portal/internal/common/observability"
	"awards-portal/internal/records"
	"awards-portal/internal/search"

	ia "awards-portal/internal/workers/application/index-application"
	sn "awards-portal/internal/workers/application/send-notification"
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
			delay *= 2 // Exponential backoff
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

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	obs := observability.New("worker-manager", log)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClient(cfg.Camunda)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
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
	zapLog.Info("PostgreSQL connected successfully")

	var store records.Store = records.NewPostgresStore(pg.DB, log)

	// --- Init Redis with retry ---
	if cfg.Database.Redis.Enabled() && cfg.Submission.CacheTTL > 0 {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.ConnectRedis(ctx, cfg.Database.Redis)
			return err
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()

		store = records.NewCachedStore(store, redis.Client, config.GetDuration(cfg.Submission.CacheTTL), log)
		zapLog.Info("Redis connected successfully")
	}

	var workers []worker.JobWorker
	track := func(w worker.JobWorker) {
		if w != nil {
			workers = append(workers, w)
		}
	}

	// --- index-application ---
	if cfg.Database.Elasticsearch.Enabled() {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")

		index := search.NewIndex(esClient.Client, cfg.Search, log)
		if err := index.EnsureIndex(ctx); err != nil {
			zapLog.Fatal("search index setup failed", zap.Error(err))
		}

		wcfg := config.GetWorkerConfig(cfg, ia.TaskType)
		handler := ia.NewHandler(ia.LoadConfig(wcfg), store, index, log)
		track(camunda.StartWorker(camundaClient.GetClient(), ia.TaskType, wcfg, handler.Handle, log))
	} else {
		zapLog.Warn("Elasticsearch not configured, index-application worker not started")
	}

	// --- send-notification ---
	{
		var sesClient *ses.Client
		var snsClient *sns.Client
		if cfg.Notifications.Email.Enabled {
			sesClient, err = aws.NewSESClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Fatal("ses client failed", zap.Error(err))
			}
		}
		if cfg.Notifications.Reviewers.Enabled {
			snsClient, err = aws.NewSNSClient(ctx, cfg.Notifications.AWS.Region)
			if err != nil {
				zapLog.Fatal("sns client failed", zap.Error(err))
			}
		}

		wcfg := config.GetWorkerConfig(cfg, sn.TaskType)
		var sesService sn.SESService
		if sesClient != nil {
			sesService = sesClient
		}
		var snsService sn.SNSService
		if snsClient != nil {
			snsService = snsClient
		}
		handler := sn.NewHandler(sn.LoadConfig(wcfg, cfg.Notifications), store, sesService, snsService, log)
		track(camunda.StartWorker(camundaClient.GetClient(), sn.TaskType, wcfg, handler.Handle, log))
	}

	zapLog.Info("Workers registered", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		status, code := "ready", http.StatusOK
		if err := camundaClient.HealthCheck(r.Context()); err != nil {
			status, code = "zeebe unavailable", http.StatusServiceUnavailable
		} else if err := pg.Ping(r.Context()); err != nil {
			status, code = "postgres unavailable", http.StatusServiceUnavailable
		}

		w.WriteHeader(code)
		json.NewEncoder(w).Encode(map[string]string{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	mux.Handle("/metrics", promhttp.Handler())

	healthServer := &http.Server{Addr: cfg.Server.MetricsAddress, Handler: mux}
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Server.MetricsAddress))
		if err := healthServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		w.Close()
		w.AwaitClose()
	}

	if err := healthServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
