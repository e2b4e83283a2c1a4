package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/BenLYNC/AI-Automation-Alert/internal/config"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/ports"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/usecase"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/llm"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/onet"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/queue/nats"
	"github.com/BenLYNC/AI-Automation-Alert/internal/infrastructure/resilience"
	"github.com/BenLYNC/AI-Automation-Alert/internal/observability/metrics"
)

type Options struct {
	// Service labels metrics and logs.
	Service string
	Logger  *slog.Logger
	// Registerer receives the scoring and breaker collectors. Nil keeps them private.
	Registerer prometheus.Registerer
	// ConnectQueue forces a NATS connection even when alert publishing is off,
	// e.g. for the worker's subscription.
	ConnectQueue bool
}

type App struct {
	Config config.Config
	Logger *slog.Logger

	Scorer *usecase.ScoreOccupationUseCase
	Model  llm.Model
	// Queue is nil unless a NATS connection was requested.
	Queue *nats.Queue

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registerer := opts.Registerer
	if registerer == nil {
		registerer = prometheus.NewRegistry()
	}
	service := strings.TrimSpace(opts.Service)
	if service == "" {
		service = "automation-alert"
	}

	scoringMetrics := metrics.NewScoringMetrics(service, registerer)
	exec := resilience.NewExecutor(resilienceConfig(cfg), logger).
		WithStateObserver(scoringMetrics.ObserveBreakerState)

	model, err := llm.New(ctx, llm.Config{
		Provider:        cfg.LLMProvider,
		Model:           cfg.LLMModel,
		MaxTokens:       cfg.LLMMaxTokens,
		Timeout:         cfg.LLMTimeout(),
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		GeminiAPIKey:    cfg.GeminiAPIKey,
		OllamaURL:       cfg.OllamaURL,
	}, exec)
	if err != nil {
		return nil, fmt.Errorf("init chat model: %w", err)
	}

	source := onet.New(onet.Config{
		BaseURL:      cfg.ONetBaseURL,
		Username:     cfg.ONetUsername,
		Password:     cfg.ONetPassword,
		RateLimitRPS: cfg.ONetRateLimitRPS,
		Timeout:      cfg.ONetTimeout(),
	}, exec)

	var (
		queue     *nats.Queue
		publisher ports.AlertPublisher
	)
	if opts.ConnectQueue || cfg.AlertsPublishEnabled {
		queue, err = nats.NewWithOptions(cfg.NATSURL, cfg.NATSRequestSubject, cfg.NATSAlertSubject, nats.Options{
			ResilienceExecutor: exec,
			Logger:             logger,
		})
		if err != nil {
			return nil, fmt.Errorf("init message queue: %w", err)
		}
		if cfg.AlertsPublishEnabled {
			publisher = queue
		}
	}

	scorer := usecase.NewScoreOccupationUseCase(model, source, publisher, scoringMetrics, logger)

	logger.Info("bootstrap_ready",
		"llm_provider", cfg.LLMProvider,
		"llm_model", model.Model(),
		"onet_base_url", cfg.ONetBaseURL,
		"alerts_publish_enabled", cfg.AlertsPublishEnabled,
		"queue_connected", queue != nil,
	)

	return &App{
		Config: cfg,
		Logger: logger,
		Scorer: scorer,
		Model:  model,
		Queue:  queue,
		closeFn: func() {
			if queue != nil {
				queue.Close()
			}
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func resilienceConfig(cfg config.Config) resilience.Config {
	out := resilience.DefaultConfig()
	if cfg.RetryMaxAttempts > 0 {
		out.RetryMaxAttempts = cfg.RetryMaxAttempts
	}
	out.BreakerEnabled = cfg.BreakerEnabled
	return out
}
