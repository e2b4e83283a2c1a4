package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func subtask(bucket domain.SubtaskBucket, share float64, leverage domain.LeverageLevel, low, high float64) domain.SubtaskScore {
	return domain.SubtaskScore{
		Bucket:             bucket,
		BaselineSharePct:   share,
		ExposureLevels:     []domain.ExposureLevel{},
		LeverageLevel:      leverage,
		EfficiencyGainLow:  low,
		EfficiencyGainHigh: high,
	}
}

func TestComputeRawTimeSavedWeightedSum(t *testing.T) {
	low, high := ComputeRawTimeSaved([]domain.SubtaskScore{
		subtask(domain.BucketInputGathering, 0.5, domain.LeverageMedium, 0.20, 0.40),
		subtask(domain.BucketHumanOnlyExecution, 0.5, domain.LeverageLow, 0.0, 0.10),
	})
	if !approx(low, 0.10) || !approx(high, 0.25) {
		t.Fatalf("expected (0.10, 0.25), got (%v, %v)", low, high)
	}
}

func TestComputeRawTimeSavedEmpty(t *testing.T) {
	low, high := ComputeRawTimeSaved(nil)
	if low != 0 || high != 0 {
		t.Fatalf("expected zeros, got (%v, %v)", low, high)
	}
}

func TestComputeTotalDiscountDefaults(t *testing.T) {
	if got := ComputeTotalDiscount(nil); !approx(got, 0.20) {
		t.Fatalf("expected default discount 0.20, got %v", got)
	}
}

func TestComputeTotalDiscountCapped(t *testing.T) {
	got := ComputeTotalDiscount([]domain.DiscountFactor{
		{Name: "Big risk", DiscountPct: 0.30},
		{Name: "Another", DiscountPct: 0.30},
	})
	if got != 0.50 {
		t.Fatalf("expected capped discount 0.50, got %v", got)
	}
}

func TestComputeTotalDiscountEmptyListIsZero(t *testing.T) {
	if got := ComputeTotalDiscount([]domain.DiscountFactor{}); got != 0 {
		t.Fatalf("expected 0 for explicit empty list, got %v", got)
	}
}

func TestApplyDiscountsAsymmetric(t *testing.T) {
	low, high := ApplyDiscounts(0.50, 0.80, 0.20)
	if !approx(low, 0.40) || !approx(high, 0.72) {
		t.Fatalf("expected (0.40, 0.72), got (%v, %v)", low, high)
	}
}

func TestApplyCeilingCapsBothEnds(t *testing.T) {
	low, high, err := ApplyCeiling(0.30, 0.50, domain.CeilingPhysicalExecution)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if low != 0.25 || high != 0.25 {
		t.Fatalf("expected both bounds at 0.25, got (%v, %v)", low, high)
	}
}

func TestApplyCeilingBelowCapUnchanged(t *testing.T) {
	low, high, err := ApplyCeiling(0.10, 0.20, domain.CeilingPureDrafting)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if low != 0.10 || high != 0.20 {
		t.Fatalf("expected unchanged bounds, got (%v, %v)", low, high)
	}
}

func TestApplyCeilingUnknownCategory(t *testing.T) {
	_, _, err := ApplyCeiling(0.1, 0.2, domain.CeilingCategory("underwater_welding"))
	if !errors.Is(err, domain.ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
}

func TestScoreItemPureDraftingScenario(t *testing.T) {
	item, err := ScoreItem(ItemInput{
		ItemName:       "Draft marketing copy",
		Category:       domain.CategoryTasks,
		ExposureLevels: []domain.ExposureLevel{domain.E1},
		Subtasks: []domain.SubtaskScore{
			subtask(domain.BucketTransformationDrafting, 0.55, domain.LeverageHigh, 0.60, 0.80),
			subtask(domain.BucketInputGathering, 0.10, domain.LeverageLow, 0.05, 0.15),
			subtask(domain.BucketAnalysisPlanning, 0.10, domain.LeverageLow, 0.05, 0.15),
			subtask(domain.BucketCoordinationWorkflow, 0.10, domain.LeverageLow, 0.05, 0.15),
			subtask(domain.BucketReviewQACompliance, 0.10, domain.LeverageLow, 0.0, 0.10),
			subtask(domain.BucketHumanOnlyExecution, 0.05, domain.LeverageLow, 0.0, 0.05),
		},
		CeilingCategory: domain.CeilingPureDrafting,
		Rationale:       "Direct LLM exposure for drafting.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.TimeSavedLowPct > item.TimeSavedHighPct || item.TimeSavedHighPct > 85.0 {
		t.Fatalf("expected low <= high <= 85, got %v/%v", item.TimeSavedLowPct, item.TimeSavedHighPct)
	}
	if item.TotalDiscountPct <= 0 {
		t.Fatalf("expected nonzero total discount")
	}
	if item.CeilingCapPct != 85.0 {
		t.Fatalf("expected ceiling cap 85, got %v", item.CeilingCapPct)
	}
	if item.ExposureLabel != "E1" {
		t.Fatalf("expected label E1, got %q", item.ExposureLabel)
	}
	if len(item.DiscountFactors) != 5 {
		t.Fatalf("expected default discount factors, got %d", len(item.DiscountFactors))
	}
	// raw (0.345, 0.4975) -> discounted (0.276, 0.44775)
	if item.TimeSavedLowPct != 27.6 || item.TimeSavedHighPct != 44.8 {
		t.Fatalf("expected 27.6/44.8, got %v/%v", item.TimeSavedLowPct, item.TimeSavedHighPct)
	}
}

func TestScoreItemMultiVectorLabel(t *testing.T) {
	item, err := ScoreItem(ItemInput{
		ItemName:        "Market analysis",
		Category:        domain.CategoryTasks,
		ExposureLevels:  []domain.ExposureLevel{domain.E2, domain.E7},
		Subtasks:        []domain.SubtaskScore{subtask(domain.BucketAnalysisPlanning, 1.0, domain.LeverageMedium, 0.20, 0.40)},
		CeilingCategory: domain.CeilingHighStakesCompliance,
		Rationale:       "Multi-vector.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ExposureLabel != "E2/E7" {
		t.Fatalf("expected E2/E7, got %q", item.ExposureLabel)
	}
	if item.TimeSavedLowPct != 16.0 || item.TimeSavedHighPct != 36.0 {
		t.Fatalf("expected 16/36, got %v/%v", item.TimeSavedLowPct, item.TimeSavedHighPct)
	}
}

func TestScoreItemCustomDiscountFactors(t *testing.T) {
	item, err := ScoreItem(ItemInput{
		ItemName:        "Reconcile ledger",
		Category:        domain.CategoryTasks,
		ExposureLevels:  []domain.ExposureLevel{domain.E2},
		Subtasks:        []domain.SubtaskScore{subtask(domain.BucketReviewQACompliance, 1.0, domain.LeverageHigh, 0.50, 0.80)},
		CeilingCategory: domain.CeilingPureDrafting,
		DiscountFactors: []domain.DiscountFactor{{Name: "Audit", DiscountPct: 0.10}},
		Rationale:       ".",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.TotalDiscountPct != 0.10 {
		t.Fatalf("expected total discount 0.10, got %v", item.TotalDiscountPct)
	}
	if item.TimeSavedLowPct != 45.0 || item.TimeSavedHighPct != 76.0 {
		t.Fatalf("expected 45/76, got %v/%v", item.TimeSavedLowPct, item.TimeSavedHighPct)
	}
}

func TestScoreItemUnknownCeiling(t *testing.T) {
	_, err := ScoreItem(ItemInput{ItemName: "x", CeilingCategory: "nope"})
	if !domain.IsKind(err, domain.ErrUnknownTag) {
		t.Fatalf("expected ErrUnknownTag, got %v", err)
	}
}
