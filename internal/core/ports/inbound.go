package ports

import (
	"context"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

// OccupationScorer is the inbound contract for a full occupation scoring run.
type OccupationScorer interface {
	ScoreOccupation(ctx context.Context, req domain.ScoreRequest) (*domain.Report, error)
}

// SampleReporter builds the built-in demonstration report without any upstream calls.
type SampleReporter interface {
	SampleReport(ctx context.Context) (*domain.Report, error)
}
