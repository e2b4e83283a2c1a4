package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/BenLYNC/AI-Automation-Alert/internal/config"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/usecase"
	"github.com/BenLYNC/AI-Automation-Alert/internal/observability/metrics"
)

type scorerFake struct {
	err  error
	got  []domain.ScoreRequest
	wait chan struct{}
}

func (f *scorerFake) ScoreOccupation(ctx context.Context, req domain.ScoreRequest) (*domain.Report, error) {
	f.got = append(f.got, req)
	if f.wait != nil {
		<-f.wait
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Report{
		ID:          "report-1",
		GeneratedAt: time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
		Alert: domain.AutomationAlert{
			SOCCode:         req.SOCCode,
			OccupationTitle: req.Title,
		},
	}, nil
}

type samplerFake struct{}

func (samplerFake) SampleReport(context.Context) (*domain.Report, error) {
	return usecase.BuildSampleReport(time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC))
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandlerWith(t *testing.T, cfg config.Config, scorer *scorerFake, m *metrics.HTTPServerMetrics) *Router {
	t.Helper()
	if scorer == nil {
		scorer = &scorerFake{}
	}
	router, err := NewRouter(cfg, scorer, samplerFake{}, m, quietLogger())
	if err != nil {
		t.Fatalf("new router: %v", err)
	}
	return router
}
