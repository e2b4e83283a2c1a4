package domain

import (
	"fmt"
	"strings"
)

// OperatingMode is the autonomy level an agent is presumed to run at.
type OperatingMode int

const (
	ModeCopilot OperatingMode = iota
	ModeAssisted
	ModeBoundedAutonomy
	ModeFullAutonomy
)

var OperatingModeLabels = map[OperatingMode]string{
	ModeCopilot:         "Mode 0 (Copilot): drafts steps, human executes",
	ModeAssisted:        "Mode 1 (Assisted execution): agent executes after explicit approval per step",
	ModeBoundedAutonomy: "Mode 2 (Bounded autonomy): agent executes within guardrails",
	ModeFullAutonomy:    "Mode 3 (Full autonomy): agent executes end-to-end, human audits exceptions",
}

func (m OperatingMode) Valid() bool {
	return m >= ModeCopilot && m <= ModeFullAutonomy
}

// ExecutionAutomationRanges is the EA band per operating mode.
var ExecutionAutomationRanges = map[OperatingMode]Range{
	ModeCopilot:         {0.0, 0.10},
	ModeAssisted:        {0.10, 0.30},
	ModeBoundedAutonomy: {0.30, 0.60},
	ModeFullAutonomy:    {0.60, 0.85},
}

// WorkflowUnit is one of the seven agent-ready workflow units W1..W7.
type WorkflowUnit string

const (
	UnitIntakeTriage        WorkflowUnit = "intake_triage"
	UnitInfoRetrieval       WorkflowUnit = "info_retrieval"
	UnitPlanning            WorkflowUnit = "planning"
	UnitToolActions         WorkflowUnit = "tool_actions"
	UnitVerificationQA      WorkflowUnit = "verification_qa"
	UnitApprovalsCompliance WorkflowUnit = "approvals_compliance"
	UnitExceptionsHumanOnly WorkflowUnit = "exceptions_human_only"
)

var WorkflowUnits = []WorkflowUnit{
	UnitIntakeTriage,
	UnitInfoRetrieval,
	UnitPlanning,
	UnitToolActions,
	UnitVerificationQA,
	UnitApprovalsCompliance,
	UnitExceptionsHumanOnly,
}

var WorkflowUnitLabels = map[WorkflowUnit]string{
	UnitIntakeTriage:        "W1: Intake & triage (read request, classify, route)",
	UnitInfoRetrieval:       "W2: Info retrieval (search systems, pull data, open docs)",
	UnitPlanning:            "W3: Planning (decide steps, dependencies, schedule)",
	UnitToolActions:         "W4: Tool actions (create/update/send/schedule/upload/submit)",
	UnitVerificationQA:      "W5: Verification & QA (confirm correct, reconcile inconsistencies)",
	UnitApprovalsCompliance: "W6: Approvals & compliance (policy checks, approvals, audit notes)",
	UnitExceptionsHumanOnly: "W7: Exceptions / human-only (judgment calls, relationship, physical)",
}

// Code returns the short "W1".."W7" form.
func (u WorkflowUnit) Code() string {
	for i, unit := range WorkflowUnits {
		if unit == u {
			return fmt.Sprintf("W%d", i+1)
		}
	}
	return string(u)
}

func ParseWorkflowUnit(raw string) (WorkflowUnit, error) {
	unit := WorkflowUnit(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := WorkflowUnitLabels[unit]; !ok {
		return "", unknownTag("workflow unit", raw)
	}
	return unit, nil
}

// AgenticSuitability rates a workflow unit 0 (not suitable) to 3 (highly suitable).
type AgenticSuitability int

const (
	SuitabilityNone AgenticSuitability = iota
	SuitabilityPartial
	SuitabilityMostly
	SuitabilityHighly
)

func (s AgenticSuitability) Valid() bool {
	return s >= SuitabilityNone && s <= SuitabilityHighly
}

type StakesLevel string

const (
	StakesLow    StakesLevel = "low"
	StakesMedium StakesLevel = "medium"
	StakesHigh   StakesLevel = "high"
)

// OversightTaxRanges is the OT band per stakes level.
var OversightTaxRanges = map[StakesLevel]Range{
	StakesLow:    {0.05, 0.15},
	StakesMedium: {0.10, 0.25},
	StakesHigh:   {0.20, 0.50},
}

func ParseStakesLevel(raw string) (StakesLevel, error) {
	level := StakesLevel(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := OversightTaxRanges[level]; !ok {
		return "", unknownTag("stakes level", raw)
	}
	return level, nil
}

// AgentMaturityLevel describes how robust an agent implementation is (1..4).
type AgentMaturityLevel int

const (
	MaturityScripted AgentMaturityLevel = iota + 1
	MaturityToolIntegrated
	MaturityPolicyGoverned
	MaturitySelfHealing
)

var MaturityLabels = map[AgentMaturityLevel]string{
	MaturityScripted:       "Level 1: Scripted agent (narrow, brittle)",
	MaturityToolIntegrated: "Level 2: Tool-integrated agent (APIs, reliable actions)",
	MaturityPolicyGoverned: "Level 3: Policy-governed agent (guardrails, audit, rollbacks)",
	MaturitySelfHealing:    "Level 4: Self-healing agent (detects failures, retries, escalates)",
}

// MaturityBands are net time-saved bands for workflow-heavy tasks.
var MaturityBands = map[AgentMaturityLevel]Range{
	MaturityScripted:       {0.10, 0.25},
	MaturityToolIntegrated: {0.20, 0.45},
	MaturityPolicyGoverned: {0.30, 0.60},
	MaturitySelfHealing:    {0.45, 0.75},
}

func MaturityBand(level AgentMaturityLevel) (Range, error) {
	band, ok := MaturityBands[level]
	if !ok {
		return Range{}, unknownTag("maturity level", fmt.Sprint(int(level)))
	}
	return band, nil
}

type AgenticCeilingCategory string

const (
	AgenticCeilingRegulatedSignoffs      AgenticCeilingCategory = "regulated_signoffs"
	AgenticCeilingHighTouchRelationship  AgenticCeilingCategory = "high_touch_relationship"
	AgenticCeilingPhysicalExecution      AgenticCeilingCategory = "physical_execution"
	AgenticCeilingUnstructuredBespoke    AgenticCeilingCategory = "unstructured_bespoke"
	AgenticCeilingStandardizedBackoffice AgenticCeilingCategory = "standardized_backoffice"
)

var AgenticCeilingCaps = map[AgenticCeilingCategory]float64{
	AgenticCeilingRegulatedSignoffs:      0.50,
	AgenticCeilingHighTouchRelationship:  0.30,
	AgenticCeilingPhysicalExecution:      0.15,
	AgenticCeilingUnstructuredBespoke:    0.32,
	AgenticCeilingStandardizedBackoffice: 0.80,
}

func ParseAgenticCeiling(raw string) (AgenticCeilingCategory, error) {
	category := AgenticCeilingCategory(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := AgenticCeilingCaps[category]; !ok {
		return "", unknownTag("agentic ceiling", raw)
	}
	return category, nil
}

func AgenticCeilingCap(category AgenticCeilingCategory) (float64, error) {
	limit, ok := AgenticCeilingCaps[category]
	if !ok {
		return 0, unknownTag("agentic ceiling", string(category))
	}
	return limit, nil
}

// KnowledgeWorkType classifies the cognitive nature of a work element.
type KnowledgeWorkType string

const (
	WorkRoutineCognitive       KnowledgeWorkType = "routine_cognitive"
	WorkComplexCognitive       KnowledgeWorkType = "complex_cognitive"
	WorkCreativeCognitive      KnowledgeWorkType = "creative_cognitive"
	WorkInterpersonalCognitive KnowledgeWorkType = "interpersonal_cognitive"
	WorkPhysicalManual         KnowledgeWorkType = "physical_manual"
)

var KnowledgeWorkAffinity = map[KnowledgeWorkType]float64{
	WorkRoutineCognitive:       0.85,
	WorkComplexCognitive:       0.55,
	WorkCreativeCognitive:      0.40,
	WorkInterpersonalCognitive: 0.25,
	WorkPhysicalManual:         0.05,
}

func ParseKnowledgeWorkType(raw string) (KnowledgeWorkType, error) {
	kind := KnowledgeWorkType(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := KnowledgeWorkAffinity[kind]; !ok {
		return "", unknownTag("knowledge work type", raw)
	}
	return kind, nil
}

// AdvancementDrivers are the environment changes that raise agentic savings.
var AdvancementDrivers = []string{
	"Standardize inputs: forms, required fields, templates",
	"Define SOPs & policies: 'if X then Y' playbooks",
	"Tool integration: APIs > RPA/UI clicking",
	"Add verification hooks: tests, reconciliations, checklists",
	"Reduce exception rates: better data, clearer rules",
	"Add safe rollback: undo actions, versioning, audit logs",
	"Guardrails: spend limits, approval gates, allowed actions",
}
