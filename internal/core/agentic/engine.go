// Package agentic scores the impact of autonomous agents on a work element
// and reconciles it with the base exposure estimate.
package agentic

import (
	"fmt"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

const (
	maturityReferenceMidpoint = 0.50
	maxCognitiveDisplacement  = 90.0
)

// Input is one validated agentic assessment. ExceptionRate and TakeoverCost are fractions.
type Input struct {
	ItemName           string
	Category           domain.OnetCategory
	RecommendedMode    domain.OperatingMode
	ModeRationale      string
	WorkflowScores     []domain.WorkflowUnitScore
	ExceptionRate      float64
	TakeoverCost       float64
	CurrentMaturity    domain.AgentMaturityLevel
	AgenticCeiling     domain.AgenticCeilingCategory
	KnowledgeWorkType  domain.KnowledgeWorkType
	StakesLevel        domain.StakesLevel
	AgenticRationale   string
	AdvancementNotes   string
	NearTermProjection string
}

// ComputeRawTimeSaved returns Σ share·(EA−OT) as a percentage, floored at zero.
func ComputeRawTimeSaved(scores []domain.WorkflowUnitScore) float64 {
	total := 0.0
	for _, ws := range scores {
		total += ws.TimeSharePct * ws.NetGainPct
	}
	return domain.Round1(max(total*100, 0))
}

// ApplyCompoundingBonus adds 3 to 15 points depending on the share of units
// with suitability of at least 2. No units means no bonus.
func ApplyCompoundingBonus(rawPct float64, scores []domain.WorkflowUnitScore) (float64, float64) {
	if len(scores) == 0 {
		return rawPct, 0
	}
	suitable := 0
	for _, ws := range scores {
		if ws.AgenticSuitability >= domain.SuitabilityMostly {
			suitable++
		}
	}
	ratio := float64(suitable) / float64(len(scores))
	bonus := domain.Round1(3 + ratio*12)
	return domain.Round1(rawPct + bonus), bonus
}

// ApplyDiscounts subtracts the expected takeover penalty ER·TC in percentage points.
func ApplyDiscounts(adjustedPct, exceptionRate, takeoverCost float64) float64 {
	penalty := exceptionRate * takeoverCost * 100
	return domain.Round1(max(adjustedPct-penalty, 0))
}

// ComputeMaturityRange scales the adjusted estimate by the maturity band,
// normalized around a 50% reference midpoint.
func ComputeMaturityRange(adjustedPct float64, maturity domain.AgentMaturityLevel) (float64, float64, error) {
	band, err := domain.MaturityBand(maturity)
	if err != nil {
		return 0, 0, err
	}
	low := adjustedPct * (band.Low / maturityReferenceMidpoint)
	high := adjustedPct * (band.High / maturityReferenceMidpoint)
	return domain.Round1(max(low, 0)), domain.Round1(min(high, 100)), nil
}

// ApplyCeiling caps both bounds at the agentic ceiling, in percent.
func ApplyCeiling(lowPct, highPct float64, ceiling domain.AgenticCeilingCategory) (float64, float64, error) {
	limit, err := domain.AgenticCeilingCap(ceiling)
	if err != nil {
		return 0, 0, err
	}
	limit *= 100
	return min(lowPct, limit), min(highPct, limit), nil
}

// ComputeCognitiveDisplacement estimates the share of cognitive effort displaced.
func ComputeCognitiveDisplacement(kind domain.KnowledgeWorkType, mode domain.OperatingMode, finalHighPct float64) (float64, error) {
	affinity, ok := domain.KnowledgeWorkAffinity[kind]
	if !ok {
		return 0, fmt.Errorf("%w: knowledge work type %q", domain.ErrUnknownTag, kind)
	}
	modeFactor := 0.5 + float64(mode)*0.15
	raw := (finalHighPct / 100) * affinity * modeFactor * 100
	return domain.Round1(min(raw, maxCognitiveDisplacement)), nil
}

// ScoreItem runs the agentic pipeline: raw, bonus, takeover discount,
// maturity range, ceiling, then cognitive displacement.
func ScoreItem(in Input) (domain.AgenticImpactScore, error) {
	rawPct := ComputeRawTimeSaved(in.WorkflowScores)
	withBonus, bonus := ApplyCompoundingBonus(rawPct, in.WorkflowScores)
	adjustedPct := ApplyDiscounts(withBonus, in.ExceptionRate, in.TakeoverCost)

	lowPct, highPct, err := ComputeMaturityRange(adjustedPct, in.CurrentMaturity)
	if err != nil {
		return domain.AgenticImpactScore{}, fmt.Errorf("score agentic item %q: %w", in.ItemName, err)
	}
	finalLow, finalHigh, err := ApplyCeiling(lowPct, highPct, in.AgenticCeiling)
	if err != nil {
		return domain.AgenticImpactScore{}, fmt.Errorf("score agentic item %q: %w", in.ItemName, err)
	}
	displacement, err := ComputeCognitiveDisplacement(in.KnowledgeWorkType, in.RecommendedMode, finalHigh)
	if err != nil {
		return domain.AgenticImpactScore{}, fmt.Errorf("score agentic item %q: %w", in.ItemName, err)
	}
	ceilingCap, _ := domain.AgenticCeilingCap(in.AgenticCeiling)

	return domain.AgenticImpactScore{
		ItemName:                    in.ItemName,
		Category:                    in.Category,
		RecommendedMode:             in.RecommendedMode,
		ModeRationale:               in.ModeRationale,
		WorkflowScores:              in.WorkflowScores,
		RawAgenticTimeSavedPct:      rawPct,
		WorkflowCompoundingBonusPct: bonus,
		ExceptionRatePct:            in.ExceptionRate * 100,
		TakeoverCostPct:             in.TakeoverCost * 100,
		AdjustedAgenticTimeSavedPct: adjustedPct,
		CurrentMaturity:             in.CurrentMaturity,
		TimeSavedLowPct:             lowPct,
		TimeSavedHighPct:            highPct,
		AgenticCeiling:              in.AgenticCeiling,
		CeilingCapPct:               ceilingCap * 100,
		FinalTimeSavedLowPct:        finalLow,
		FinalTimeSavedHighPct:       finalHigh,
		KnowledgeWorkType:           in.KnowledgeWorkType,
		CognitiveDisplacementPct:    displacement,
		StakesLevel:                 in.StakesLevel,
		AgenticRationale:            in.AgenticRationale,
		AdvancementNotes:            in.AdvancementNotes,
		NearTermProjection:          in.NearTermProjection,
	}, nil
}
