package domain

import (
	"strconv"
	"time"
)

// MethodologyVersion is stamped on every alert.
const MethodologyVersion = "1.0"

type SubtaskScore struct {
	Bucket             SubtaskBucket   `json:"bucket"`
	BaselineSharePct   float64         `json:"baseline_share_pct"`
	ExposureLevels     []ExposureLevel `json:"exposure_levels"`
	LeverageLevel      LeverageLevel   `json:"leverage_level"`
	EfficiencyGainLow  float64         `json:"efficiency_gain_low"`
	EfficiencyGainHigh float64         `json:"efficiency_gain_high"`
}

// ScoredItem is the base-layer result for one O*NET element.
type ScoredItem struct {
	ItemName         string           `json:"item_name"`
	Category         OnetCategory     `json:"category"`
	OnetElementID    string           `json:"onet_element_id,omitempty"`
	Importance       *float64         `json:"importance,omitempty"`
	Level            *float64         `json:"level,omitempty"`
	ExposureLevels   []ExposureLevel  `json:"exposure_levels"`
	ExposureLabel    string           `json:"exposure_label"`
	TimeSavedLowPct  float64          `json:"time_saved_low_pct"`
	TimeSavedHighPct float64          `json:"time_saved_high_pct"`
	CeilingCategory  CeilingCategory  `json:"ceiling_category"`
	CeilingCapPct    float64          `json:"ceiling_cap_pct"`
	SubtaskScores    []SubtaskScore   `json:"subtask_scores"`
	DiscountFactors  []DiscountFactor `json:"discount_factors"`
	TotalDiscountPct float64          `json:"total_discount_pct"`
	Rationale        string           `json:"rationale"`
	AdvancementNotes string           `json:"advancement_notes,omitempty"`
}

// WithTimeSaved returns a copy of the item with only the two time-saved bounds replaced.
func (s ScoredItem) WithTimeSaved(lowPct, highPct float64) ScoredItem {
	out := s
	out.TimeSavedLowPct = lowPct
	out.TimeSavedHighPct = highPct
	return out
}

// HasExposure reports whether the item carries the given vector.
func (s ScoredItem) HasExposure(level ExposureLevel) bool {
	for _, l := range s.ExposureLevels {
		if l == level {
			return true
		}
	}
	return false
}

type CategorySummary struct {
	Category                   OnetCategory    `json:"category"`
	ItemCount                  int             `json:"item_count"`
	AvgTimeSavedLowPct         float64         `json:"avg_time_saved_low_pct"`
	AvgTimeSavedHighPct        float64         `json:"avg_time_saved_high_pct"`
	DominantExposureVectors    []ExposureLevel `json:"dominant_exposure_vectors"`
	ExposureVectorDistribution map[string]int  `json:"exposure_vector_distribution"`
	Items                      []ScoredItem    `json:"items"`
}

// ScoreDelta compares two evaluations of the same item.
type ScoreDelta struct {
	ItemName              string          `json:"item_name"`
	Category              OnetCategory    `json:"category"`
	PreviousTimeSavedLow  float64         `json:"previous_time_saved_low"`
	PreviousTimeSavedHigh float64         `json:"previous_time_saved_high"`
	CurrentTimeSavedLow   float64         `json:"current_time_saved_low"`
	CurrentTimeSavedHigh  float64         `json:"current_time_saved_high"`
	DeltaLow              float64         `json:"delta_low"`
	DeltaHigh             float64         `json:"delta_high"`
	PreviousExposure      []ExposureLevel `json:"previous_exposure"`
	CurrentExposure       []ExposureLevel `json:"current_exposure"`
	ChangeReason          string          `json:"change_reason"`
	EvaluatedAt           time.Time       `json:"evaluated_at"`
}

// AutomationAlert is the occupation-level exposure profile.
type AutomationAlert struct {
	SOCCode                    string            `json:"soc_code"`
	OccupationTitle            string            `json:"occupation_title"`
	EvaluatedAt                time.Time         `json:"evaluated_at"`
	OverallTimeSavedLowPct     float64           `json:"overall_time_saved_low_pct"`
	OverallTimeSavedHighPct    float64           `json:"overall_time_saved_high_pct"`
	OverallAutomationRiskLabel string            `json:"overall_automation_risk_label"`
	DominantExposureVectors    []ExposureLevel   `json:"dominant_exposure_vectors"`
	CategorySummaries          []CategorySummary `json:"category_summaries"`
	Deltas                     []ScoreDelta      `json:"deltas"`
	MethodologyVersion         string            `json:"methodology_version"`
	DiscountFactorsApplied     []DiscountFactor  `json:"discount_factors_applied"`
}

func (a AutomationAlert) MidpointPct() float64 {
	return (a.OverallTimeSavedLowPct + a.OverallTimeSavedHighPct) / 2
}

// Items flattens the scored items of every category summary.
func (a AutomationAlert) Items() []ScoredItem {
	var out []ScoredItem
	for _, cs := range a.CategorySummaries {
		out = append(out, cs.Items...)
	}
	return out
}

// RiskLabel maps a composite midpoint percentage to its label.
func RiskLabel(midpointPct float64) string {
	switch {
	case midpointPct < 10:
		return "Low"
	case midpointPct < 25:
		return "Moderate"
	case midpointPct < 40:
		return "Significant"
	case midpointPct < 60:
		return "High"
	default:
		return "Very High"
	}
}

// Round1 rounds to one decimal place. Rounding follows the exact binary value,
// with exact ties going to even (0.25 -> 0.2).
func Round1(v float64) float64 {
	out, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 1, 64), 64)
	if err != nil {
		return v
	}
	return out
}
