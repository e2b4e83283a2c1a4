package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/agentic"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/assessment"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/ports"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/scoring"
)

const (
	LayerBase    = "base"
	LayerAgentic = "agentic"
)

type noopObserver struct{}

func (noopObserver) ObserveItemsScored(string, domain.OnetCategory, int) {}
func (noopObserver) ObserveRejected(string, domain.OnetCategory, int)    {}
func (noopObserver) ObserveModelCall(string, string, float64)            {}
func (noopObserver) ObserveOccupationRun(string, float64)                {}

// Assessor asks the model for qualitative assessments of one category and
// runs them through the deterministic engines.
type Assessor struct {
	model    ports.ChatModel
	observer ports.ScoringObserver
	logger   *slog.Logger
}

func NewAssessor(model ports.ChatModel, observer ports.ScoringObserver, logger *slog.Logger) *Assessor {
	if observer == nil {
		observer = noopObserver{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Assessor{model: model, observer: observer, logger: logger}
}

// AssessBase scores every item the model returns a usable record for.
// Malformed records are logged and skipped; a failed model call is returned.
func (a *Assessor) AssessBase(
	ctx context.Context,
	socCode, title string,
	category domain.OnetCategory,
	items []domain.OnetItem,
) ([]domain.ScoredItem, error) {
	if len(items) == 0 {
		return []domain.ScoredItem{}, nil
	}
	a.logger.Info("assessment_started", "layer", LayerBase, "category", category, "soc_code", socCode, "items", len(items))

	elements, err := a.complete(ctx, LayerBase, baseSystemPrompt, buildBasePrompt(socCode, title, category, items))
	if err != nil {
		return nil, fmt.Errorf("assess %s items: %w", category, err)
	}

	inputs, rejected := assessment.DecodeBaseBatch(category, elements)
	scored := make([]domain.ScoredItem, 0, len(inputs))
	for i, in := range inputs {
		item, err := scoring.ScoreItem(in)
		if err != nil {
			rejected = append(rejected, assessment.Rejection{Index: i, ItemName: in.ItemName, Reason: err.Error()})
			continue
		}
		scored = append(scored, item)
	}
	a.report(LayerBase, category, len(scored), rejected)

	return enrichScoredItems(scored, items), nil
}

// AssessAgentic returns the agentic impact scores for the category's items.
func (a *Assessor) AssessAgentic(
	ctx context.Context,
	socCode, title string,
	category domain.OnetCategory,
	items []domain.OnetItem,
) ([]domain.AgenticImpactScore, error) {
	if len(items) == 0 {
		return []domain.AgenticImpactScore{}, nil
	}
	a.logger.Info("assessment_started", "layer", LayerAgentic, "category", category, "soc_code", socCode, "items", len(items))

	elements, err := a.complete(ctx, LayerAgentic, agenticSystemPrompt, buildAgenticPrompt(socCode, title, category, items))
	if err != nil {
		return nil, fmt.Errorf("assess agentic impact of %s items: %w", category, err)
	}

	inputs, rejected := assessment.DecodeAgenticBatch(category, elements)
	scores := make([]domain.AgenticImpactScore, 0, len(inputs))
	for i, in := range inputs {
		score, err := agentic.ScoreItem(in)
		if err != nil {
			rejected = append(rejected, assessment.Rejection{Index: i, ItemName: in.ItemName, Reason: err.Error()})
			continue
		}
		scores = append(scores, score)
	}
	a.report(LayerAgentic, category, len(scores), rejected)

	return scores, nil
}

func (a *Assessor) complete(ctx context.Context, layer, system, user string) ([]json.RawMessage, error) {
	started := time.Now()
	text, err := a.model.Complete(ctx, system, user)
	if err != nil {
		a.observer.ObserveModelCall(layer, "error", time.Since(started).Seconds())
		return nil, err
	}
	a.observer.ObserveModelCall(layer, "ok", time.Since(started).Seconds())
	return assessment.ExtractJSONArray(text)
}

func (a *Assessor) report(layer string, category domain.OnetCategory, accepted int, rejected []assessment.Rejection) {
	for _, r := range rejected {
		a.logger.Warn("assessment_rejected",
			"layer", layer,
			"category", category,
			"index", r.Index,
			"item_name", r.ItemName,
			"reason", r.Reason,
		)
	}
	a.observer.ObserveItemsScored(layer, category, accepted)
	if len(rejected) > 0 {
		a.observer.ObserveRejected(layer, category, len(rejected))
	}
}

// enrichScoredItems copies O*NET identifiers onto scored items whose name
// matches a source item, case-insensitively.
func enrichScoredItems(scored []domain.ScoredItem, source []domain.OnetItem) []domain.ScoredItem {
	byName := make(map[string]domain.OnetItem, len(source))
	for _, item := range source {
		byName[normalizeName(item.Name)] = item
	}
	for i := range scored {
		match, ok := byName[normalizeName(scored[i].ItemName)]
		if !ok {
			continue
		}
		scored[i].OnetElementID = match.ElementID
		scored[i].Importance = match.Importance
		scored[i].Level = match.Level
	}
	return scored
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
