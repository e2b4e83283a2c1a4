package scoring

import (
	"time"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

// ComputeDelta compares two evaluations of the same item.
func ComputeDelta(previous, current domain.ScoredItem, reason string, now time.Time) domain.ScoreDelta {
	return domain.ScoreDelta{
		ItemName:              current.ItemName,
		Category:              current.Category,
		PreviousTimeSavedLow:  previous.TimeSavedLowPct,
		PreviousTimeSavedHigh: previous.TimeSavedHighPct,
		CurrentTimeSavedLow:   current.TimeSavedLowPct,
		CurrentTimeSavedHigh:  current.TimeSavedHighPct,
		DeltaLow:              domain.Round1(current.TimeSavedLowPct - previous.TimeSavedLowPct),
		DeltaHigh:             domain.Round1(current.TimeSavedHighPct - previous.TimeSavedHighPct),
		PreviousExposure:      previous.ExposureLevels,
		CurrentExposure:       current.ExposureLevels,
		ChangeReason:          reason,
		EvaluatedAt:           now.UTC(),
	}
}

type itemKey struct {
	category domain.OnetCategory
	name     string
}

// CompareAlerts returns deltas for items present in both alerts whose low or
// high estimate moved. Items are matched by category and name.
func CompareAlerts(previous, current domain.AutomationAlert, reason string, now time.Time) []domain.ScoreDelta {
	prior := make(map[itemKey]domain.ScoredItem)
	for _, item := range previous.Items() {
		prior[itemKey{item.Category, item.ItemName}] = item
	}

	deltas := []domain.ScoreDelta{}
	for _, item := range current.Items() {
		old, ok := prior[itemKey{item.Category, item.ItemName}]
		if !ok {
			continue
		}
		if old.TimeSavedLowPct == item.TimeSavedLowPct && old.TimeSavedHighPct == item.TimeSavedHighPct {
			continue
		}
		deltas = append(deltas, ComputeDelta(old, item, reason, now))
	}
	return deltas
}
