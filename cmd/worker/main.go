package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BenLYNC/AI-Automation-Alert/internal/bootstrap"
	"github.com/BenLYNC/AI-Automation-Alert/internal/config"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/observability/logging"
	"github.com/BenLYNC/AI-Automation-Alert/internal/observability/metrics"
)

const (
	serviceName    = "worker"
	requestTimeout = 5 * time.Minute
)

func main() {
	cfg, err := config.Load()
	logger := logging.NewJSONLogger(serviceName, cfg.LogLevel)
	if err != nil {
		logger.Error("config_load_failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workerMetrics := metrics.NewWorkerMetrics(serviceName)
	app, err := bootstrap.New(ctx, cfg, bootstrap.Options{
		Service:      serviceName,
		Logger:       logger,
		Registerer:   workerMetrics.Registry(),
		ConnectQueue: true,
	})
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           workerMetrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("worker_metrics_listening", "addr", metricsServer.Addr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker_metrics_server_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker_subscribed", "subject", cfg.NATSRequestSubject)
	err = app.Queue.SubscribeScoreRequests(ctx, func(handlerCtx context.Context, req domain.ScoreRequest) error {
		runCtx, cancel := context.WithTimeout(handlerCtx, requestTimeout)
		defer cancel()

		workerMetrics.StartRequest()
		start := time.Now()
		report, err := app.Scorer.ScoreOccupation(runCtx, req)
		workerMetrics.FinishRequest(serviceName, time.Since(start), err)
		if err != nil {
			return err
		}
		logger.Info("score_request_completed",
			"soc_code", report.Alert.SOCCode,
			"report_id", report.ID,
			"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
		)
		return nil
	})
	if err != nil {
		logger.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}
