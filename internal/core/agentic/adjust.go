package agentic

import "github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"

// relevanceThresholdPct is the final agentic high estimate below which an
// item without E9 exposure is left untouched.
const relevanceThresholdPct = 10.0

// ApplyAdjustment lifts a base item's bounds to the agentic estimate when the
// item is agent-relevant. Bounds never drop and stay under the base ceiling.
func ApplyAdjustment(base domain.ScoredItem, score domain.AgenticImpactScore) domain.ScoredItem {
	if !base.HasExposure(domain.E9) && score.FinalTimeSavedHighPct < relevanceThresholdPct {
		return base
	}

	newLow := max(base.TimeSavedLowPct, score.FinalTimeSavedLowPct)
	newHigh := max(base.TimeSavedHighPct, score.FinalTimeSavedHighPct)

	newLow = min(newLow, base.CeilingCapPct)
	newHigh = min(newHigh, base.CeilingCapPct)

	return base.WithTimeSaved(domain.Round1(newLow), domain.Round1(newHigh))
}

// AdjustItems applies ApplyAdjustment to every item that has an agentic score by name.
func AdjustItems(items []domain.ScoredItem, byName map[string]domain.AgenticImpactScore) []domain.ScoredItem {
	out := make([]domain.ScoredItem, 0, len(items))
	for _, item := range items {
		if score, ok := byName[item.ItemName]; ok {
			item = ApplyAdjustment(item, score)
		}
		out = append(out, item)
	}
	return out
}
