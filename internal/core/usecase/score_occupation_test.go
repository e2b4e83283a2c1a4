package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/ports"
)

const tasksBaseResponse = "```json\n" + `[
  {
    "item_name": "Draft purchase offers",
    "exposure_levels": ["E1"],
    "ceiling_category": "pure_drafting",
    "subtasks": [
      {"bucket": "transformation_drafting", "baseline_share_pct": 0.6, "exposure_levels": ["E1"],
       "leverage_level": "high", "efficiency_gain_low": 0.55, "efficiency_gain_high": 0.75},
      {"bucket": "human_only_execution", "baseline_share_pct": 0.4, "exposure_levels": [],
       "leverage_level": "low", "efficiency_gain_low": 0.0, "efficiency_gain_high": 0.05}
    ],
    "rationale": "Offer language is templated."
  },
  {
    "item_name": "Show homes",
    "exposure_levels": ["E99"],
    "ceiling_category": "physical_execution",
    "subtasks": [],
    "rationale": "Physical."
  }
]` + "\n```"

const skillsBaseResponse = `Here you go:
[
  {
    "item_name": "Negotiation",
    "exposure_levels": ["E7", "E8"],
    "ceiling_category": "relationship_persuasion",
    "subtasks": [
      {"bucket": "transformation_drafting", "baseline_share_pct": 0.5, "exposure_levels": ["E1"],
       "leverage_level": "high", "efficiency_gain_low": 0.5, "efficiency_gain_high": 0.72},
      {"bucket": "human_only_execution", "baseline_share_pct": 0.5, "exposure_levels": [],
       "leverage_level": "low", "efficiency_gain_low": 0.0, "efficiency_gain_high": 0.1}
    ],
    "rationale": "Persuasion stays human."
  }
]`

const tasksAgenticResponse = `[
  {
    "item_name": "Draft purchase offers",
    "recommended_mode": 2,
    "mode_rationale": "Templates with guardrails.",
    "workflow_scores": [
      {"unit": "intake_triage", "time_share_pct": 0.2, "agentic_suitability": 3,
       "execution_automation_pct": 0.6, "oversight_tax_pct": 0.1, "net_gain_pct": 0.5, "rationale": "Forms."},
      {"unit": "tool_actions", "time_share_pct": 0.5, "agentic_suitability": 2,
       "execution_automation_pct": 0.5, "oversight_tax_pct": 0.1, "net_gain_pct": 0.4, "rationale": "E-sign."},
      {"unit": "exceptions_human_only", "time_share_pct": 0.3, "agentic_suitability": 0,
       "execution_automation_pct": 0.0, "oversight_tax_pct": 0.0, "net_gain_pct": 0.0, "rationale": "Counteroffers."}
    ],
    "exception_rate": 0.1,
    "takeover_cost": 0.2,
    "current_maturity": 3,
    "agentic_ceiling": "standardized_backoffice",
    "knowledge_work_type": "routine_cognitive",
    "stakes_level": "high",
    "agentic_rationale": "Structured paperwork."
  }
]`

type chatModelFake struct {
	mu        sync.Mutex
	responses map[string]string
	err       error
	calls     []string
}

func (f *chatModelFake) Complete(_ context.Context, system, user string) (string, error) {
	layer := LayerBase
	if system == agenticSystemPrompt {
		layer = LayerAgentic
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for key, response := range f.responses {
		parts := strings.SplitN(key, ":", 2)
		if parts[0] == layer && strings.Contains(user, parts[1]+" items") {
			f.calls = append(f.calls, key)
			if f.err != nil {
				return "", f.err
			}
			return response, nil
		}
	}
	f.calls = append(f.calls, layer+":unknown")
	if f.err != nil {
		return "", f.err
	}
	return "[]", nil
}

type occupationSourceFake struct {
	occupation domain.Occupation
	occErr     error
	items      map[domain.OnetCategory][]domain.OnetItem
	failing    map[domain.OnetCategory]error
	fetched    []domain.OnetCategory
}

func (f *occupationSourceFake) FetchOccupation(context.Context, string) (domain.Occupation, error) {
	if f.occErr != nil {
		return domain.Occupation{}, f.occErr
	}
	return f.occupation, nil
}

func (f *occupationSourceFake) FetchCategory(_ context.Context, _ string, category domain.OnetCategory) ([]domain.OnetItem, error) {
	f.fetched = append(f.fetched, category)
	if err := f.failing[category]; err != nil {
		return nil, err
	}
	return f.items[category], nil
}

type publisherFake struct {
	reports []*domain.Report
	err     error
}

func (f *publisherFake) PublishAlertScored(_ context.Context, report *domain.Report) error {
	f.reports = append(f.reports, report)
	return f.err
}

type observerFake struct {
	scored   map[string]int
	rejected map[string]int
	runs     []string
}

func newObserverFake() *observerFake {
	return &observerFake{scored: map[string]int{}, rejected: map[string]int{}}
}

func (f *observerFake) ObserveItemsScored(layer string, category domain.OnetCategory, count int) {
	f.scored[layer+":"+string(category)] += count
}

func (f *observerFake) ObserveRejected(layer string, category domain.OnetCategory, count int) {
	f.rejected[layer+":"+string(category)] += count
}

func (f *observerFake) ObserveModelCall(string, string, float64) {}

func (f *observerFake) ObserveOccupationRun(status string, _ float64) {
	f.runs = append(f.runs, status)
}

func ptr(v float64) *float64 { return &v }

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func fixedClock() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

func inlineRequest() domain.ScoreRequest {
	return domain.ScoreRequest{
		SOCCode:        "41-9022.00",
		Title:          "Real Estate Sales Agents",
		Categories:     []domain.OnetCategory{domain.CategoryTasks, domain.CategorySkills},
		IncludeAgentic: true,
		Items: map[domain.OnetCategory][]domain.OnetItem{
			domain.CategoryTasks: {
				{Name: "Draft purchase offers", ElementID: "T-1", Importance: ptr(4.2)},
				{Name: "Show homes"},
			},
			domain.CategorySkills: {
				{Name: "Negotiation", ElementID: "2.B.1.d", Importance: ptr(3.9), Level: ptr(4.1)},
			},
		},
	}
}

func newTestUseCase(model *chatModelFake, source *occupationSourceFake, publisher *publisherFake, observer *observerFake) *ScoreOccupationUseCase {
	var src ports.OccupationSource
	if source != nil {
		src = source
	}
	uc := NewScoreOccupationUseCase(model, src, nil, observer, nil)
	if publisher != nil {
		uc.publisher = publisher
	}
	uc.now = fixedClock
	return uc
}

func defaultModel() *chatModelFake {
	return &chatModelFake{responses: map[string]string{
		"base:Tasks":    tasksBaseResponse,
		"base:Skills":   skillsBaseResponse,
		"agentic:Tasks": tasksAgenticResponse,
	}}
}

func TestScoreOccupationInlineItems(t *testing.T) {
	observer := newObserverFake()
	publisher := &publisherFake{}
	uc := newTestUseCase(defaultModel(), nil, publisher, observer)

	report, err := uc.ScoreOccupation(context.Background(), inlineRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alert := report.Alert
	if alert.SOCCode != "41-9022.00" || alert.OccupationTitle != "Real Estate Sales Agents" {
		t.Fatalf("unexpected identity: %s %s", alert.SOCCode, alert.OccupationTitle)
	}
	if len(alert.CategorySummaries) != 2 {
		t.Fatalf("expected 2 category summaries, got %d", len(alert.CategorySummaries))
	}

	tasks := alert.CategorySummaries[0]
	if tasks.Category != domain.CategoryTasks || tasks.ItemCount != 1 {
		t.Fatalf("expected 1 task after rejecting the malformed record, got %+v", tasks)
	}
	offer := tasks.Items[0]
	// base 26.4/42.3, agentic final 23.4/46.8: the high bound is lifted
	if !approx(offer.TimeSavedLowPct, 26.4) || !approx(offer.TimeSavedHighPct, 46.8) {
		t.Fatalf("unexpected adjusted item: %v/%v", offer.TimeSavedLowPct, offer.TimeSavedHighPct)
	}
	if offer.OnetElementID != "T-1" || offer.Importance == nil || *offer.Importance != 4.2 {
		t.Fatalf("expected O*NET enrichment, got %+v", offer)
	}

	skills := alert.CategorySummaries[1]
	if !approx(skills.AvgTimeSavedLowPct, 20.0) || !approx(skills.AvgTimeSavedHighPct, 36.9) {
		t.Fatalf("unexpected skills summary: %v/%v", skills.AvgTimeSavedLowPct, skills.AvgTimeSavedHighPct)
	}
	if skills.Items[0].Level == nil || *skills.Items[0].Level != 4.1 {
		t.Fatalf("expected level enrichment on skill item")
	}

	if !approx(alert.OverallTimeSavedLowPct, 24.0) || !approx(alert.OverallTimeSavedHighPct, 43.1) {
		t.Fatalf("unexpected composite: %v/%v", alert.OverallTimeSavedLowPct, alert.OverallTimeSavedHighPct)
	}
	if alert.OverallAutomationRiskLabel != "Significant" {
		t.Fatalf("unexpected risk label %q", alert.OverallAutomationRiskLabel)
	}
	if !alert.EvaluatedAt.Equal(fixedClock()) || !report.GeneratedAt.Equal(fixedClock()) {
		t.Fatalf("expected injected clock, got %v", alert.EvaluatedAt)
	}

	score, ok := report.Agentic["Draft purchase offers"]
	if !ok || len(report.Agentic) != 1 {
		t.Fatalf("expected one agentic score, got %+v", report.Agentic)
	}
	if !approx(score.FinalTimeSavedLowPct, 23.4) || !approx(score.FinalTimeSavedHighPct, 46.8) {
		t.Fatalf("unexpected agentic range: %v/%v", score.FinalTimeSavedLowPct, score.FinalTimeSavedHighPct)
	}

	if observer.rejected["base:tasks"] != 1 || observer.scored["base:tasks"] != 1 || observer.scored["agentic:tasks"] != 1 {
		t.Fatalf("unexpected observer counts: scored=%v rejected=%v", observer.scored, observer.rejected)
	}
	if len(observer.runs) != 1 || observer.runs[0] != "ok" {
		t.Fatalf("expected one ok run, got %v", observer.runs)
	}
	if len(publisher.reports) != 1 || publisher.reports[0].ID != report.ID {
		t.Fatalf("expected report to be published once")
	}
	if report.ID == "" {
		t.Fatalf("expected report id")
	}
}

func TestScoreOccupationSkipsAgenticWhenDisabled(t *testing.T) {
	model := defaultModel()
	uc := newTestUseCase(model, nil, nil, newObserverFake())
	req := inlineRequest()
	req.IncludeAgentic = false

	report, err := uc.ScoreOccupation(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Agentic != nil {
		t.Fatalf("expected no agentic scores, got %v", report.Agentic)
	}
	offer := report.Alert.CategorySummaries[0].Items[0]
	if !approx(offer.TimeSavedHighPct, 42.3) {
		t.Fatalf("expected unadjusted base high 42.3, got %v", offer.TimeSavedHighPct)
	}
	for _, call := range model.calls {
		if strings.HasPrefix(call, LayerAgentic) {
			t.Fatalf("unexpected agentic call %q", call)
		}
	}
}

func TestScoreOccupationRejectsBadRequests(t *testing.T) {
	uc := newTestUseCase(defaultModel(), nil, nil, newObserverFake())
	tests := []domain.ScoreRequest{
		{SOCCode: ""},
		{SOCCode: "41-9022.00/../../admin"},
		{SOCCode: "41-9022.00", Categories: []domain.OnetCategory{"hobbies"}},
	}
	for _, req := range tests {
		_, err := uc.ScoreOccupation(context.Background(), req)
		if !domain.IsKind(err, domain.ErrInvalidInput) {
			t.Fatalf("request %+v: expected ErrInvalidInput, got %v", req, err)
		}
	}
}

func TestScoreOccupationModelFailureAborts(t *testing.T) {
	model := defaultModel()
	model.err = domain.WrapError(domain.ErrTemporary, "complete", errors.New("upstream 503"))
	observer := newObserverFake()
	uc := newTestUseCase(model, nil, nil, observer)

	_, err := uc.ScoreOccupation(context.Background(), inlineRequest())
	if !domain.IsKind(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
	if len(observer.runs) != 1 || observer.runs[0] != "error" {
		t.Fatalf("expected failed run to be observed, got %v", observer.runs)
	}
}

func TestScoreOccupationUnparseableResponse(t *testing.T) {
	model := &chatModelFake{responses: map[string]string{"base:Tasks": "I cannot help with that."}}
	uc := newTestUseCase(model, nil, nil, newObserverFake())

	_, err := uc.ScoreOccupation(context.Background(), inlineRequest())
	if !domain.IsKind(err, domain.ErrMalformedAssessment) {
		t.Fatalf("expected malformed assessment error, got %v", err)
	}
}

func TestScoreOccupationFetchesFromSource(t *testing.T) {
	source := &occupationSourceFake{
		occupation: domain.Occupation{SOCCode: "41-9022.00", Title: "Real Estate Sales Agents"},
		items: map[domain.OnetCategory][]domain.OnetItem{
			domain.CategoryTasks: {{Name: "Draft purchase offers"}},
		},
		failing: map[domain.OnetCategory]error{
			domain.CategorySkills: domain.WrapError(domain.ErrNotFound, "fetch skills", errors.New("404")),
		},
	}
	uc := newTestUseCase(defaultModel(), source, nil, newObserverFake())

	report, err := uc.ScoreOccupation(context.Background(), domain.ScoreRequest{SOCCode: "41-9022.00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Alert.OccupationTitle != "Real Estate Sales Agents" {
		t.Fatalf("expected title from source, got %q", report.Alert.OccupationTitle)
	}
	if len(source.fetched) != len(domain.ScorableCategories) {
		t.Fatalf("expected every scorable category fetched, got %v", source.fetched)
	}
	if len(report.Alert.CategorySummaries) != 1 || report.Alert.CategorySummaries[0].Category != domain.CategoryTasks {
		t.Fatalf("expected only the tasks summary, got %+v", report.Alert.CategorySummaries)
	}
}

func TestScoreOccupationTitleFallsBackToSOCCode(t *testing.T) {
	source := &occupationSourceFake{occErr: errors.New("boom")}
	uc := newTestUseCase(defaultModel(), source, nil, newObserverFake())

	report, err := uc.ScoreOccupation(context.Background(), domain.ScoreRequest{SOCCode: "41-9022.00"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Alert.OccupationTitle != "41-9022.00" {
		t.Fatalf("expected soc code as title, got %q", report.Alert.OccupationTitle)
	}
	if len(report.Alert.CategorySummaries) != 0 || report.Alert.OverallAutomationRiskLabel != "Low" {
		t.Fatalf("expected empty low-risk alert, got %+v", report.Alert)
	}
}

func TestScoreOccupationComputesDeltas(t *testing.T) {
	uc := newTestUseCase(defaultModel(), nil, nil, newObserverFake())
	req := inlineRequest()
	req.IncludeAgentic = false

	previous, err := uc.ScoreOccupation(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req.IncludeAgentic = true
	req.Previous = &previous.Alert
	current, err := uc.ScoreOccupation(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	deltas := current.Alert.Deltas
	if len(deltas) != 1 {
		t.Fatalf("expected exactly one changed item, got %+v", deltas)
	}
	if deltas[0].ItemName != "Draft purchase offers" || !approx(deltas[0].DeltaHigh, 4.5) || deltas[0].DeltaLow != 0 {
		t.Fatalf("unexpected delta: %+v", deltas[0])
	}
	if deltas[0].ChangeReason != defaultChangeReason {
		t.Fatalf("expected default change reason, got %q", deltas[0].ChangeReason)
	}
}

func TestScoreOccupationPublishFailureIsNotFatal(t *testing.T) {
	publisher := &publisherFake{err: errors.New("nats down")}
	uc := newTestUseCase(defaultModel(), nil, publisher, newObserverFake())

	if _, err := uc.ScoreOccupation(context.Background(), inlineRequest()); err != nil {
		t.Fatalf("publish failure must not fail the run: %v", err)
	}
	if len(publisher.reports) != 1 {
		t.Fatalf("expected one publish attempt")
	}
}

func TestScoreOccupationHonorsCancellation(t *testing.T) {
	uc := newTestUseCase(defaultModel(), nil, nil, newObserverFake())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := uc.ScoreOccupation(ctx, inlineRequest()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
