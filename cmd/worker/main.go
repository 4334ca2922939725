package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/okulikov/docrag/internal/bootstrap"
	"github.com/okulikov/docrag/internal/config"
	"github.com/okulikov/docrag/internal/core/domain"
	"github.com/okulikov/docrag/internal/observability/logging"
	"github.com/okulikov/docrag/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := logging.NewJSONLogger("worker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		logger.Info("worker metrics listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("worker metrics server error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeReindexRequested(ctx, func(handlerCtx context.Context, department string) error {
		reindexCtx, cancel := context.WithTimeout(handlerCtx, 30*time.Minute)
		defer cancel()

		workerMetrics.StartReindex()
		var (
			stats domain.ReindexStats
			err   error
		)
		if department == "" {
			stats, err = app.ReindexUC.ReindexAll(reindexCtx)
		} else {
			stats, err = app.ReindexUC.ReindexDepartment(reindexCtx, department)
		}
		workerMetrics.FinishReindex("worker", stats, err)
		if err != nil {
			logger.Error("reindex failed", "department", department, "error", err)
			return err
		}
		logger.Info("reindex finished",
			"department", department,
			"files", stats.Files,
			"units", stats.Units,
			"chunks", stats.Chunks,
			"error_units", stats.ErrorUnits,
			"duration_ms", stats.Duration.Milliseconds(),
		)
		return nil
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
