// Package scoring implements the base exposure engine: weighted subtask
// gains, reality discounts and the task-nature ceiling.
package scoring

import (
	"fmt"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

// ItemInput is one validated base assessment.
type ItemInput struct {
	ItemName         string
	Category         domain.OnetCategory
	ExposureLevels   []domain.ExposureLevel
	Subtasks         []domain.SubtaskScore
	CeilingCategory  domain.CeilingCategory
	Rationale        string
	AdvancementNotes string
	// DiscountFactors nil or empty means domain.DefaultDiscountFactors.
	DiscountFactors []domain.DiscountFactor
	OnetElementID   string
	Importance      *float64
	Level           *float64
}

// ComputeRawTimeSaved returns Σ share·gain for both bounds, as fractions.
func ComputeRawTimeSaved(subtasks []domain.SubtaskScore) (float64, float64) {
	var rawLow, rawHigh float64
	for _, st := range subtasks {
		rawLow += st.BaselineSharePct * st.EfficiencyGainLow
		rawHigh += st.BaselineSharePct * st.EfficiencyGainHigh
	}
	return rawLow, rawHigh
}

// ComputeTotalDiscount sums the factors, capped at domain.MaxTotalDiscount.
// A nil slice means the default factors.
func ComputeTotalDiscount(factors []domain.DiscountFactor) float64 {
	if factors == nil {
		factors = domain.DefaultDiscountFactors()
	}
	total := 0.0
	for _, f := range factors {
		total += f.DiscountPct
	}
	return min(total, domain.MaxTotalDiscount)
}

// ApplyDiscounts takes the full discount off the low bound and half of it off the high bound.
func ApplyDiscounts(rawLow, rawHigh, totalDiscount float64) (float64, float64) {
	return rawLow * (1 - totalDiscount), rawHigh * (1 - totalDiscount*0.5)
}

// ApplyCeiling caps both bounds independently.
func ApplyCeiling(low, high float64, category domain.CeilingCategory) (float64, float64, error) {
	limit, err := domain.CeilingCap(category)
	if err != nil {
		return 0, 0, err
	}
	return min(low, limit), min(high, limit), nil
}

// ScoreItem runs raw sum, discounts and ceiling for one item and packages the result.
func ScoreItem(in ItemInput) (domain.ScoredItem, error) {
	rawLow, rawHigh := ComputeRawTimeSaved(in.Subtasks)

	factors := in.DiscountFactors
	if len(factors) == 0 {
		factors = domain.DefaultDiscountFactors()
	}
	totalDiscount := ComputeTotalDiscount(factors)
	adjLow, adjHigh := ApplyDiscounts(rawLow, rawHigh, totalDiscount)

	finalLow, finalHigh, err := ApplyCeiling(adjLow, adjHigh, in.CeilingCategory)
	if err != nil {
		return domain.ScoredItem{}, fmt.Errorf("score item %q: %w", in.ItemName, err)
	}
	limit, _ := domain.CeilingCap(in.CeilingCategory)

	return domain.ScoredItem{
		ItemName:         in.ItemName,
		Category:         in.Category,
		OnetElementID:    in.OnetElementID,
		Importance:       in.Importance,
		Level:            in.Level,
		ExposureLevels:   in.ExposureLevels,
		ExposureLabel:    domain.ExposureLabel(in.ExposureLevels),
		TimeSavedLowPct:  domain.Round1(finalLow * 100),
		TimeSavedHighPct: domain.Round1(finalHigh * 100),
		CeilingCategory:  in.CeilingCategory,
		CeilingCapPct:    domain.Round1(limit * 100),
		SubtaskScores:    in.Subtasks,
		DiscountFactors:  factors,
		TotalDiscountPct: totalDiscount,
		Rationale:        in.Rationale,
		AdvancementNotes: in.AdvancementNotes,
	}, nil
}
