package assessment

import (
	"fmt"
	"math"
	"strings"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/agentic"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/scoring"
)

// Pointer fields and nil slices mark values the model left out.

type SubtaskRecord struct {
	Bucket             *string  `json:"bucket"`
	BaselineSharePct   *float64 `json:"baseline_share_pct"`
	ExposureLevels     []string `json:"exposure_levels"`
	LeverageLevel      *string  `json:"leverage_level"`
	EfficiencyGainLow  *float64 `json:"efficiency_gain_low"`
	EfficiencyGainHigh *float64 `json:"efficiency_gain_high"`
}

// BaseRecord is one base-layer assessment as produced by the model.
type BaseRecord struct {
	ItemName         *string         `json:"item_name"`
	ExposureLevels   []string        `json:"exposure_levels"`
	CeilingCategory  *string         `json:"ceiling_category"`
	Subtasks         []SubtaskRecord `json:"subtasks"`
	Rationale        *string         `json:"rationale"`
	AdvancementNotes string          `json:"advancement_notes"`
}

type WorkflowRecord struct {
	Unit                   *string  `json:"unit"`
	TimeSharePct           *float64 `json:"time_share_pct"`
	AgenticSuitability     *float64 `json:"agentic_suitability"`
	ExecutionAutomationPct *float64 `json:"execution_automation_pct"`
	OversightTaxPct        *float64 `json:"oversight_tax_pct"`
	NetGainPct             *float64 `json:"net_gain_pct"`
	Rationale              *string  `json:"rationale"`
}

// AgenticRecord is one agentic-layer assessment as produced by the model.
type AgenticRecord struct {
	ItemName           *string          `json:"item_name"`
	RecommendedMode    *float64         `json:"recommended_mode"`
	ModeRationale      *string          `json:"mode_rationale"`
	WorkflowScores     []WorkflowRecord `json:"workflow_scores"`
	ExceptionRate      *float64         `json:"exception_rate"`
	TakeoverCost       *float64         `json:"takeover_cost"`
	CurrentMaturity    *float64         `json:"current_maturity"`
	AgenticCeiling     *string          `json:"agentic_ceiling"`
	KnowledgeWorkType  *string          `json:"knowledge_work_type"`
	StakesLevel        *string          `json:"stakes_level"`
	AgenticRationale   *string          `json:"agentic_rationale"`
	AdvancementNotes   string           `json:"advancement_notes"`
	NearTermProjection string           `json:"near_term_projection"`
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrMalformedAssessment, fmt.Sprintf(format, args...))
}

func requireString(field string, v *string) (string, error) {
	if v == nil {
		return "", malformed("missing %s", field)
	}
	return *v, nil
}

func requireNonEmpty(field string, v *string) (string, error) {
	s, err := requireString(field, v)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", malformed("empty %s", field)
	}
	return s, nil
}

func requireRange(field string, v *float64, lo, hi float64) (float64, error) {
	if v == nil {
		return 0, malformed("missing %s", field)
	}
	if math.IsNaN(*v) || *v < lo || *v > hi {
		return 0, malformed("%s %v outside [%v, %v]", field, *v, lo, hi)
	}
	return *v, nil
}

func requireInt(field string, v *float64, lo, hi int) (int, error) {
	f, err := requireRange(field, v, float64(lo), float64(hi))
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, malformed("%s %v is not an integer", field, f)
	}
	return int(f), nil
}

func parseTag[T any](field string, v *string, parse func(string) (T, error)) (T, error) {
	var zero T
	raw, err := requireString(field, v)
	if err != nil {
		return zero, err
	}
	tag, err := parse(raw)
	if err != nil {
		return zero, malformed("%s: %v", field, err)
	}
	return tag, nil
}

func parseExposure(field string, codes []string) ([]domain.ExposureLevel, error) {
	if codes == nil {
		return nil, malformed("missing %s", field)
	}
	levels := make([]domain.ExposureLevel, 0, len(codes))
	for _, code := range codes {
		level, err := domain.ParseExposureLevel(code)
		if err != nil {
			return nil, malformed("%s: %v", field, err)
		}
		levels = append(levels, level)
	}
	return levels, nil
}

func (r SubtaskRecord) toSubtask(i int) (domain.SubtaskScore, error) {
	prefix := fmt.Sprintf("subtasks[%d].", i)
	bucket, err := parseTag(prefix+"bucket", r.Bucket, domain.ParseSubtaskBucket)
	if err != nil {
		return domain.SubtaskScore{}, err
	}
	share, err := requireRange(prefix+"baseline_share_pct", r.BaselineSharePct, 0, 1)
	if err != nil {
		return domain.SubtaskScore{}, err
	}
	levels, err := parseExposure(prefix+"exposure_levels", r.ExposureLevels)
	if err != nil {
		return domain.SubtaskScore{}, err
	}
	leverage, err := parseTag(prefix+"leverage_level", r.LeverageLevel, domain.ParseLeverageLevel)
	if err != nil {
		return domain.SubtaskScore{}, err
	}
	low, err := requireRange(prefix+"efficiency_gain_low", r.EfficiencyGainLow, 0, 1)
	if err != nil {
		return domain.SubtaskScore{}, err
	}
	high, err := requireRange(prefix+"efficiency_gain_high", r.EfficiencyGainHigh, 0, 1)
	if err != nil {
		return domain.SubtaskScore{}, err
	}
	if low > high {
		return domain.SubtaskScore{}, malformed("%sefficiency_gain_low %v exceeds efficiency_gain_high %v", prefix, low, high)
	}
	return domain.SubtaskScore{
		Bucket:             bucket,
		BaselineSharePct:   share,
		ExposureLevels:     levels,
		LeverageLevel:      leverage,
		EfficiencyGainLow:  low,
		EfficiencyGainHigh: high,
	}, nil
}

// ToItemInput validates the record. Any subset of subtask buckets is accepted.
func (r BaseRecord) ToItemInput(category domain.OnetCategory) (scoring.ItemInput, error) {
	name, err := requireNonEmpty("item_name", r.ItemName)
	if err != nil {
		return scoring.ItemInput{}, err
	}
	levels, err := parseExposure("exposure_levels", r.ExposureLevels)
	if err != nil {
		return scoring.ItemInput{}, err
	}
	ceiling, err := parseTag("ceiling_category", r.CeilingCategory, domain.ParseCeilingCategory)
	if err != nil {
		return scoring.ItemInput{}, err
	}
	if r.Subtasks == nil {
		return scoring.ItemInput{}, malformed("missing subtasks")
	}
	subtasks := make([]domain.SubtaskScore, 0, len(r.Subtasks))
	for i, st := range r.Subtasks {
		score, err := st.toSubtask(i)
		if err != nil {
			return scoring.ItemInput{}, err
		}
		subtasks = append(subtasks, score)
	}
	rationale, err := requireString("rationale", r.Rationale)
	if err != nil {
		return scoring.ItemInput{}, err
	}

	return scoring.ItemInput{
		ItemName:         name,
		Category:         category,
		ExposureLevels:   levels,
		Subtasks:         subtasks,
		CeilingCategory:  ceiling,
		Rationale:        rationale,
		AdvancementNotes: r.AdvancementNotes,
	}, nil
}

func (r WorkflowRecord) toScore(i int) (domain.WorkflowUnitScore, error) {
	prefix := fmt.Sprintf("workflow_scores[%d].", i)
	unit, err := parseTag(prefix+"unit", r.Unit, domain.ParseWorkflowUnit)
	if err != nil {
		return domain.WorkflowUnitScore{}, err
	}
	share, err := requireRange(prefix+"time_share_pct", r.TimeSharePct, 0, 1)
	if err != nil {
		return domain.WorkflowUnitScore{}, err
	}
	suitability, err := requireInt(prefix+"agentic_suitability", r.AgenticSuitability, 0, 3)
	if err != nil {
		return domain.WorkflowUnitScore{}, err
	}
	ea, err := requireRange(prefix+"execution_automation_pct", r.ExecutionAutomationPct, 0, 1)
	if err != nil {
		return domain.WorkflowUnitScore{}, err
	}
	ot, err := requireRange(prefix+"oversight_tax_pct", r.OversightTaxPct, 0, 1)
	if err != nil {
		return domain.WorkflowUnitScore{}, err
	}
	net, err := requireRange(prefix+"net_gain_pct", r.NetGainPct, -1, 1)
	if err != nil {
		return domain.WorkflowUnitScore{}, err
	}
	rationale, err := requireString(prefix+"rationale", r.Rationale)
	if err != nil {
		return domain.WorkflowUnitScore{}, err
	}
	return domain.WorkflowUnitScore{
		Unit:                   unit,
		TimeSharePct:           share,
		AgenticSuitability:     domain.AgenticSuitability(suitability),
		ExecutionAutomationPct: ea,
		OversightTaxPct:        ot,
		NetGainPct:             net,
		Rationale:              rationale,
	}, nil
}

// ToInput validates the record into an agentic pipeline input.
func (r AgenticRecord) ToInput(category domain.OnetCategory) (agentic.Input, error) {
	name, err := requireNonEmpty("item_name", r.ItemName)
	if err != nil {
		return agentic.Input{}, err
	}
	mode, err := requireInt("recommended_mode", r.RecommendedMode, 0, 3)
	if err != nil {
		return agentic.Input{}, err
	}
	modeRationale, err := requireString("mode_rationale", r.ModeRationale)
	if err != nil {
		return agentic.Input{}, err
	}
	if r.WorkflowScores == nil {
		return agentic.Input{}, malformed("missing workflow_scores")
	}
	scores := make([]domain.WorkflowUnitScore, 0, len(r.WorkflowScores))
	for i, ws := range r.WorkflowScores {
		score, err := ws.toScore(i)
		if err != nil {
			return agentic.Input{}, err
		}
		scores = append(scores, score)
	}
	exceptionRate, err := requireRange("exception_rate", r.ExceptionRate, 0, 1)
	if err != nil {
		return agentic.Input{}, err
	}
	takeoverCost, err := requireRange("takeover_cost", r.TakeoverCost, 0, 1)
	if err != nil {
		return agentic.Input{}, err
	}
	maturity, err := requireInt("current_maturity", r.CurrentMaturity, 1, 4)
	if err != nil {
		return agentic.Input{}, err
	}
	ceiling, err := parseTag("agentic_ceiling", r.AgenticCeiling, domain.ParseAgenticCeiling)
	if err != nil {
		return agentic.Input{}, err
	}
	workType, err := parseTag("knowledge_work_type", r.KnowledgeWorkType, domain.ParseKnowledgeWorkType)
	if err != nil {
		return agentic.Input{}, err
	}
	stakes, err := parseTag("stakes_level", r.StakesLevel, domain.ParseStakesLevel)
	if err != nil {
		return agentic.Input{}, err
	}
	rationale, err := requireString("agentic_rationale", r.AgenticRationale)
	if err != nil {
		return agentic.Input{}, err
	}

	return agentic.Input{
		ItemName:           name,
		Category:           category,
		RecommendedMode:    domain.OperatingMode(mode),
		ModeRationale:      modeRationale,
		WorkflowScores:     scores,
		ExceptionRate:      exceptionRate,
		TakeoverCost:       takeoverCost,
		CurrentMaturity:    domain.AgentMaturityLevel(maturity),
		AgenticCeiling:     ceiling,
		KnowledgeWorkType:  workType,
		StakesLevel:        stakes,
		AgenticRationale:   rationale,
		AdvancementNotes:   r.AdvancementNotes,
		NearTermProjection: r.NearTermProjection,
	}, nil
}
