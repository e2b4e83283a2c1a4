package domain

type WorkflowUnitScore struct {
	Unit                   WorkflowUnit       `json:"unit"`
	TimeSharePct           float64            `json:"time_share_pct"`
	AgenticSuitability     AgenticSuitability `json:"agentic_suitability"`
	ExecutionAutomationPct float64            `json:"execution_automation_pct"`
	OversightTaxPct        float64            `json:"oversight_tax_pct"`
	NetGainPct             float64            `json:"net_gain_pct"`
	Rationale              string             `json:"rationale"`
}

// AgenticImpactScore is the agentic-layer result for one item. Every
// percentage field is on a 0..100 scale.
type AgenticImpactScore struct {
	ItemName        string        `json:"item_name"`
	Category        OnetCategory  `json:"category"`
	RecommendedMode OperatingMode `json:"recommended_mode"`
	ModeRationale   string        `json:"mode_rationale"`

	WorkflowScores []WorkflowUnitScore `json:"workflow_scores"`

	RawAgenticTimeSavedPct      float64 `json:"raw_agentic_time_saved_pct"`
	WorkflowCompoundingBonusPct float64 `json:"workflow_compounding_bonus_pct"`

	ExceptionRatePct            float64 `json:"exception_rate_pct"`
	TakeoverCostPct             float64 `json:"takeover_cost_pct"`
	AdjustedAgenticTimeSavedPct float64 `json:"adjusted_agentic_time_saved_pct"`

	CurrentMaturity  AgentMaturityLevel `json:"current_maturity"`
	TimeSavedLowPct  float64            `json:"time_saved_low_pct"`
	TimeSavedHighPct float64            `json:"time_saved_high_pct"`

	AgenticCeiling        AgenticCeilingCategory `json:"agentic_ceiling"`
	CeilingCapPct         float64                `json:"ceiling_cap_pct"`
	FinalTimeSavedLowPct  float64                `json:"final_time_saved_low_pct"`
	FinalTimeSavedHighPct float64                `json:"final_time_saved_high_pct"`

	KnowledgeWorkType        KnowledgeWorkType `json:"knowledge_work_type"`
	CognitiveDisplacementPct float64           `json:"cognitive_displacement_pct"`
	StakesLevel              StakesLevel       `json:"stakes_level"`

	AgenticRationale   string `json:"agentic_rationale"`
	AdvancementNotes   string `json:"advancement_notes,omitempty"`
	NearTermProjection string `json:"near_term_projection,omitempty"`
}
