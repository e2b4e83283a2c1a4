package scoring

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

func scoredItem(t *testing.T, name string, levels ...domain.ExposureLevel) domain.ScoredItem {
	t.Helper()
	item, err := ScoreItem(ItemInput{
		ItemName:        name,
		Category:        domain.CategoryTasks,
		ExposureLevels:  levels,
		Subtasks:        []domain.SubtaskScore{subtask(domain.BucketTransformationDrafting, 1.0, domain.LeverageHigh, 0.50, 0.80)},
		CeilingCategory: domain.CeilingPureDrafting,
		Rationale:       ".",
	})
	if err != nil {
		t.Fatalf("score %s: %v", name, err)
	}
	return item
}

func TestSummarizeCategoryEmpty(t *testing.T) {
	summary := SummarizeCategory(domain.CategoryTasks, nil)
	if summary.ItemCount != 0 || summary.AvgTimeSavedLowPct != 0 || summary.AvgTimeSavedHighPct != 0 {
		t.Fatalf("expected zeroed summary, got %+v", summary)
	}
	if len(summary.Items) != 0 || len(summary.DominantExposureVectors) != 0 || len(summary.ExposureVectorDistribution) != 0 {
		t.Fatalf("expected empty collections, got %+v", summary)
	}
}

func TestSummarizeCategoryTieKeepsEncounterOrder(t *testing.T) {
	items := []domain.ScoredItem{
		scoredItem(t, "A", domain.E1),
		scoredItem(t, "B", domain.E2),
	}
	summary := SummarizeCategory(domain.CategoryTasks, items)
	if summary.ItemCount != 2 {
		t.Fatalf("expected 2 items, got %d", summary.ItemCount)
	}
	want := []domain.ExposureLevel{domain.E1, domain.E2}
	if diff := cmp.Diff(want, summary.DominantExposureVectors); diff != "" {
		t.Fatalf("dominant vectors mismatch (-want +got):\n%s", diff)
	}
	if summary.AvgTimeSavedLowPct <= 0 {
		t.Fatalf("expected positive mean, got %v", summary.AvgTimeSavedLowPct)
	}
}

func TestSummarizeCategoryRanksByCount(t *testing.T) {
	items := []domain.ScoredItem{
		scoredItem(t, "A", domain.E1, domain.E7),
		scoredItem(t, "B", domain.E7, domain.E2),
		scoredItem(t, "C", domain.E9, domain.E7, domain.E2),
		scoredItem(t, "D", domain.E8),
	}
	summary := SummarizeCategory(domain.CategoryTasks, items)
	want := []domain.ExposureLevel{domain.E7, domain.E2, domain.E1}
	if diff := cmp.Diff(want, summary.DominantExposureVectors); diff != "" {
		t.Fatalf("dominant vectors mismatch (-want +got):\n%s", diff)
	}
	wantDist := map[string]int{"E1": 1, "E7": 3, "E2": 2, "E9": 1, "E8": 1}
	if diff := cmp.Diff(wantDist, summary.ExposureVectorDistribution); diff != "" {
		t.Fatalf("distribution mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarizeCategoryMeanIsUnweighted(t *testing.T) {
	items := []domain.ScoredItem{
		{ItemName: "a", TimeSavedLowPct: 10, TimeSavedHighPct: 20},
		{ItemName: "b", TimeSavedLowPct: 15, TimeSavedHighPct: 25},
		{ItemName: "c", TimeSavedLowPct: 20, TimeSavedHighPct: 31},
	}
	summary := SummarizeCategory(domain.CategorySkills, items)
	if summary.AvgTimeSavedLowPct != 15.0 || summary.AvgTimeSavedHighPct != 25.3 {
		t.Fatalf("expected 15.0/25.3, got %v/%v", summary.AvgTimeSavedLowPct, summary.AvgTimeSavedHighPct)
	}
}

func TestBuildAutomationAlertWeightedComposite(t *testing.T) {
	summaries := []domain.CategorySummary{
		{Category: domain.CategoryTasks, AvgTimeSavedLowPct: 40, AvgTimeSavedHighPct: 60},
		{Category: domain.CategorySkills, AvgTimeSavedLowPct: 20, AvgTimeSavedHighPct: 31},
	}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	alert := BuildAutomationAlert("41-9022.00", "Real Estate Sales Agents", summaries, nil, now)

	// (40*.25 + 20*.15) / .40 = 32.5 ; (60*.25 + 31*.15) / .40 = 49.125
	if alert.OverallTimeSavedLowPct != 32.5 {
		t.Fatalf("expected low 32.5, got %v", alert.OverallTimeSavedLowPct)
	}
	if alert.OverallTimeSavedHighPct != 49.1 {
		t.Fatalf("expected high 49.1, got %v", alert.OverallTimeSavedHighPct)
	}
	if alert.OverallAutomationRiskLabel != "Significant" {
		t.Fatalf("expected Significant, got %q", alert.OverallAutomationRiskLabel)
	}
	if alert.MethodologyVersion != "1.0" || len(alert.DiscountFactorsApplied) != 5 {
		t.Fatalf("unexpected metadata: %q %d", alert.MethodologyVersion, len(alert.DiscountFactorsApplied))
	}
	if !alert.EvaluatedAt.Equal(now) {
		t.Fatalf("expected evaluated_at %v, got %v", now, alert.EvaluatedAt)
	}
	if alert.Deltas == nil {
		t.Fatalf("expected empty, non-nil deltas")
	}
}

func TestBuildAutomationAlertDefaultWeightForUnlistedCategory(t *testing.T) {
	summaries := []domain.CategorySummary{
		{Category: domain.CategoryTasks, AvgTimeSavedLowPct: 10, AvgTimeSavedHighPct: 10},
		{Category: domain.CategoryWorkValues, AvgTimeSavedLowPct: 40, AvgTimeSavedHighPct: 40},
	}
	alert := BuildAutomationAlert("x", "y", summaries, nil, time.Now())
	// (10*.25 + 40*.05) / .30 = 15
	if alert.OverallTimeSavedLowPct != 15.0 {
		t.Fatalf("expected 15.0, got %v", alert.OverallTimeSavedLowPct)
	}
}

func TestBuildAutomationAlertNoSummaries(t *testing.T) {
	alert := BuildAutomationAlert("x", "y", nil, nil, time.Now())
	if alert.OverallTimeSavedLowPct != 0 || alert.OverallTimeSavedHighPct != 0 {
		t.Fatalf("expected zero composite, got %v/%v", alert.OverallTimeSavedLowPct, alert.OverallTimeSavedHighPct)
	}
	if alert.OverallAutomationRiskLabel != "Low" {
		t.Fatalf("expected Low, got %q", alert.OverallAutomationRiskLabel)
	}
	if len(alert.DominantExposureVectors) != 0 {
		t.Fatalf("expected no dominant vectors, got %v", alert.DominantExposureVectors)
	}
}

func TestBuildAutomationAlertVotesPerSummary(t *testing.T) {
	// E1 dominates the items of one category, but each summary votes once.
	summaries := []domain.CategorySummary{
		{Category: domain.CategoryTasks, DominantExposureVectors: []domain.ExposureLevel{domain.E1, domain.E2}},
		{Category: domain.CategorySkills, DominantExposureVectors: []domain.ExposureLevel{domain.E7, domain.E2}},
		{Category: domain.CategoryKnowledge, DominantExposureVectors: []domain.ExposureLevel{domain.E7, domain.E9}},
	}
	alert := BuildAutomationAlert("x", "y", summaries, nil, time.Now())
	want := []domain.ExposureLevel{domain.E2, domain.E7, domain.E1}
	if diff := cmp.Diff(want, alert.DominantExposureVectors); diff != "" {
		t.Fatalf("dominant vectors mismatch (-want +got):\n%s", diff)
	}
}

func TestRiskLabelBoundaries(t *testing.T) {
	tests := []struct {
		low, high float64
		want      string
	}{
		{9.8, 10.0, "Low"},
		{24.8, 25.0, "Moderate"},
		{39.8, 40.0, "Significant"},
		{59.8, 60.0, "High"},
		{60.0, 60.2, "Very High"},
	}
	for _, tt := range tests {
		alert := domain.AutomationAlert{OverallTimeSavedLowPct: tt.low, OverallTimeSavedHighPct: tt.high}
		if got := domain.RiskLabel(alert.MidpointPct()); got != tt.want {
			t.Fatalf("midpoint %v: expected %q, got %q", alert.MidpointPct(), tt.want, got)
		}
	}
	for midpoint, want := range map[float64]string{9.9: "Low", 24.9: "Moderate", 39.9: "Significant", 59.9: "High", 60.1: "Very High"} {
		if got := domain.RiskLabel(midpoint); got != want {
			t.Fatalf("midpoint %v: expected %q, got %q", midpoint, want, got)
		}
	}
}

func TestCompareAlertsOnlyChangedItems(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	prevItems := []domain.ScoredItem{
		{ItemName: "A", Category: domain.CategoryTasks, TimeSavedLowPct: 10, TimeSavedHighPct: 20, ExposureLevels: []domain.ExposureLevel{domain.E1}},
		{ItemName: "B", Category: domain.CategoryTasks, TimeSavedLowPct: 30, TimeSavedHighPct: 40},
	}
	curItems := []domain.ScoredItem{
		{ItemName: "A", Category: domain.CategoryTasks, TimeSavedLowPct: 12.5, TimeSavedHighPct: 26.1, ExposureLevels: []domain.ExposureLevel{domain.E1, domain.E9}},
		{ItemName: "B", Category: domain.CategoryTasks, TimeSavedLowPct: 30, TimeSavedHighPct: 40},
		{ItemName: "C", Category: domain.CategoryTasks, TimeSavedLowPct: 5, TimeSavedHighPct: 6},
	}
	prev := BuildAutomationAlert("x", "y", []domain.CategorySummary{SummarizeCategory(domain.CategoryTasks, prevItems)}, nil, now)
	cur := BuildAutomationAlert("x", "y", []domain.CategorySummary{SummarizeCategory(domain.CategoryTasks, curItems)}, nil, now)

	deltas := CompareAlerts(prev, cur, "agent tooling matured", now)
	if len(deltas) != 1 {
		t.Fatalf("expected 1 delta, got %d", len(deltas))
	}
	d := deltas[0]
	if d.ItemName != "A" || d.DeltaLow != 2.5 || d.DeltaHigh != 6.1 {
		t.Fatalf("unexpected delta: %+v", d)
	}
	if d.ChangeReason != "agent tooling matured" || len(d.CurrentExposure) != 2 {
		t.Fatalf("unexpected delta metadata: %+v", d)
	}
}
