package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/agentic"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/ports"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/scoring"
)

var socCodePattern = regexp.MustCompile(`^\d{2}-\d{4}(\.\d{2})?$`)

const defaultChangeReason = "re-evaluation"

type ScoreOccupationUseCase struct {
	assessor  *Assessor
	source    ports.OccupationSource
	publisher ports.AlertPublisher
	observer  ports.ScoringObserver
	logger    *slog.Logger
	now       func() time.Time
}

// NewScoreOccupationUseCase wires the orchestration. source and publisher may be nil:
// without a source only inline items are scored, without a publisher nothing is published.
func NewScoreOccupationUseCase(
	model ports.ChatModel,
	source ports.OccupationSource,
	publisher ports.AlertPublisher,
	observer ports.ScoringObserver,
	logger *slog.Logger,
) *ScoreOccupationUseCase {
	if observer == nil {
		observer = noopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ScoreOccupationUseCase{
		assessor:  NewAssessor(model, observer, logger),
		source:    source,
		publisher: publisher,
		observer:  observer,
		logger:    logger,
		now:       time.Now,
	}
}

func (uc *ScoreOccupationUseCase) ScoreOccupation(ctx context.Context, req domain.ScoreRequest) (*domain.Report, error) {
	started := time.Now()
	report, err := uc.scoreOccupation(ctx, req)
	status := "ok"
	if err != nil {
		status = "error"
	}
	uc.observer.ObserveOccupationRun(status, time.Since(started).Seconds())
	return report, err
}

func (uc *ScoreOccupationUseCase) scoreOccupation(ctx context.Context, req domain.ScoreRequest) (*domain.Report, error) {
	req.SOCCode = strings.TrimSpace(req.SOCCode)
	categories, err := validateRequest(req)
	if err != nil {
		return nil, err
	}

	title := uc.resolveTitle(ctx, req)
	summaries := make([]domain.CategorySummary, 0, len(categories))
	agenticScores := make(map[string]domain.AgenticImpactScore)

	for _, category := range categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		items := uc.categoryItems(ctx, req, category)
		if len(items) == 0 {
			continue
		}

		scored, err := uc.assessor.AssessBase(ctx, req.SOCCode, title, category, items)
		if err != nil {
			return nil, err
		}

		if req.IncludeAgentic && len(scored) > 0 {
			scores, err := uc.assessor.AssessAgentic(ctx, req.SOCCode, title, category, items)
			if err != nil {
				return nil, err
			}
			byName := make(map[string]domain.AgenticImpactScore, len(scores))
			for _, s := range scores {
				agenticScores[s.ItemName] = s
				byName[s.ItemName] = s
			}
			scored = agentic.AdjustItems(scored, byName)
		}

		summaries = append(summaries, scoring.SummarizeCategory(category, scored))
	}

	now := uc.now().UTC()
	alert := scoring.BuildAutomationAlert(req.SOCCode, title, summaries, nil, now)
	if req.Previous != nil {
		reason := req.ChangeReason
		if reason == "" {
			reason = defaultChangeReason
		}
		alert.Deltas = scoring.CompareAlerts(*req.Previous, alert, reason, now)
	}

	report := &domain.Report{
		ID:          uuid.NewString(),
		GeneratedAt: now,
		Alert:       alert,
	}
	if len(agenticScores) > 0 {
		report.Agentic = agenticScores
	}

	uc.logger.Info("occupation_scored",
		"report_id", report.ID,
		"soc_code", req.SOCCode,
		"categories", len(summaries),
		"overall_low_pct", alert.OverallTimeSavedLowPct,
		"overall_high_pct", alert.OverallTimeSavedHighPct,
		"risk", alert.OverallAutomationRiskLabel,
	)
	uc.publish(ctx, report)

	return report, nil
}

// SampleReport returns the built-in demonstration report.
func (uc *ScoreOccupationUseCase) SampleReport(_ context.Context) (*domain.Report, error) {
	return BuildSampleReport(uc.now())
}

func validateRequest(req domain.ScoreRequest) ([]domain.OnetCategory, error) {
	if req.SOCCode == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "validate score request", errors.New("soc_code is required"))
	}
	if !socCodePattern.MatchString(req.SOCCode) {
		return nil, domain.WrapError(domain.ErrInvalidInput, "validate score request",
			fmt.Errorf("soc_code %q does not look like an O*NET-SOC code (e.g. 41-9022.00)", req.SOCCode))
	}

	if len(req.Categories) == 0 {
		return domain.ScorableCategories, nil
	}
	seen := make(map[domain.OnetCategory]bool, len(req.Categories))
	categories := make([]domain.OnetCategory, 0, len(req.Categories))
	for _, raw := range req.Categories {
		category, err := domain.ParseOnetCategory(string(raw))
		if err != nil {
			return nil, domain.WrapError(domain.ErrInvalidInput, "validate score request", err)
		}
		if seen[category] {
			continue
		}
		seen[category] = true
		categories = append(categories, category)
	}
	return categories, nil
}

func (uc *ScoreOccupationUseCase) resolveTitle(ctx context.Context, req domain.ScoreRequest) string {
	if title := strings.TrimSpace(req.Title); title != "" {
		return title
	}
	if uc.source == nil {
		return req.SOCCode
	}
	occupation, err := uc.source.FetchOccupation(ctx, req.SOCCode)
	if err != nil {
		uc.logger.Warn("occupation_lookup_failed", "soc_code", req.SOCCode, "error", err)
		return req.SOCCode
	}
	if strings.TrimSpace(occupation.Title) == "" {
		return req.SOCCode
	}
	return occupation.Title
}

func (uc *ScoreOccupationUseCase) categoryItems(ctx context.Context, req domain.ScoreRequest, category domain.OnetCategory) []domain.OnetItem {
	if items, ok := req.Items[category]; ok {
		return items
	}
	if uc.source == nil {
		return nil
	}
	items, err := uc.source.FetchCategory(ctx, req.SOCCode, category)
	if err != nil {
		uc.logger.Warn("category_fetch_failed", "soc_code", req.SOCCode, "category", category, "error", err)
		return nil
	}
	return items
}

func (uc *ScoreOccupationUseCase) publish(ctx context.Context, report *domain.Report) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishAlertScored(ctx, report); err != nil {
		uc.logger.Error("alert_publish_failed", "report_id", report.ID, "error", err)
	}
}
