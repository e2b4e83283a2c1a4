package ports

import (
	"context"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

// ChatModel sends one system+user exchange to a language model and returns the raw text reply.
type ChatModel interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OccupationSource reads O*NET reference data.
type OccupationSource interface {
	FetchOccupation(ctx context.Context, socCode string) (domain.Occupation, error)
	FetchCategory(ctx context.Context, socCode string, category domain.OnetCategory) ([]domain.OnetItem, error)
}

// AlertPublisher publishes finished reports.
type AlertPublisher interface {
	PublishAlertScored(ctx context.Context, report *domain.Report) error
}

// ScoreRequestQueue consumes asynchronous score requests.
type ScoreRequestQueue interface {
	PublishScoreRequest(ctx context.Context, req domain.ScoreRequest) error
	SubscribeScoreRequests(ctx context.Context, handler func(context.Context, domain.ScoreRequest) error) error
}

// ScoringObserver receives scoring telemetry.
type ScoringObserver interface {
	ObserveItemsScored(layer string, category domain.OnetCategory, count int)
	ObserveRejected(layer string, category domain.OnetCategory, count int)
	ObserveModelCall(layer string, status string, seconds float64)
	ObserveOccupationRun(status string, seconds float64)
}
