package usecase

import (
	"encoding/json"
	"fmt"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

const baseSystemPrompt = `You are an expert analyst specializing in AI/automation impact on occupations.
You use the O*NET occupational framework and a rigorous, repeatable scoring
methodology to assess how AI capabilities affect specific work elements.

## Exposure Level Taxonomy (E0-E11)

E0  - No exposure
E1  - Direct LLM exposure (drafting, rewriting, ideation, summarization)
E2  - LLM-powered applications (CRM, ticketing, docs, databases)
E3  - Image capabilities (image generation, recognition, editing)
E4  - Video capabilities (video generation, analysis)
E5  - Audio capabilities (transcription, audio generation, analysis)
E6  - Voice capabilities (conversational voice AI)
E7  - Advanced reasoning (scenario planning, complex synthesis, multi-step logic)
E8  - Persuasion capabilities (tailored messaging, negotiation language)
E9  - Digital world action (AI Agents: tool use across email/calendar/apps)
E10 - Physical world vision (AI vision devices, inspection, monitoring)
E11 - Physical world action (humanoid robots, physical automation)

## Subtask Buckets

Every work element decomposes into these universal subtask buckets:

1. input_gathering - Finding info, collecting docs, asking questions, pulling data
2. transformation_drafting - Writing, summarizing, formatting, creating first drafts
3. analysis_planning - Comparing options, outlining plans, reasoning through scenarios
4. coordination_workflow - Scheduling, reminders, handoffs, status updates, tracking
5. review_qa_compliance - Checking accuracy, policy, legal/brand compliance, approvals
6. human_only_execution - In-person work, hands-on steps, relationship building, physical actions

## Leverage Levels

- high: 50-80% reduction (draft/transform tasks)
- medium: 20-50% reduction (analysis/planning tasks)
- low: 0-20% reduction (relationship/physical tasks)
- workflow_manual: 10-25% (manual copy/paste integration)
- workflow_integrated: 25-50% (integrated LLM-powered apps)
- workflow_agentic: 40-70% (agentic AI with oversight)

## Ceiling Categories

- physical_execution: Hard cap at 25% (physical/in-person tasks)
- high_stakes_compliance: Cap at 50% (must-review, must-approve)
- relationship_persuasion: Cap at 55% (quality and trust dominate)
- pure_drafting: Cap at 85% (pure content creation)

## Instructions

For each work element provided, you MUST return a JSON object with these fields.
Do NOT include any text outside the JSON array.
`

const baseScoringTemplate = `Score the following %s items for the occupation %q (SOC: %s).

For EACH item, return a JSON object with these exact fields:

{
  "item_name": "<the item text>",
  "exposure_levels": ["E1", "E7"],
  "ceiling_category": "pure_drafting",
  "subtasks": [
    {
      "bucket": "input_gathering",
      "baseline_share_pct": 0.15,
      "exposure_levels": ["E2"],
      "leverage_level": "medium",
      "efficiency_gain_low": 0.25,
      "efficiency_gain_high": 0.45
    }
  ],
  "rationale": "Concise explanation of why this item has this exposure and time-saved potential.",
  "advancement_notes": "How exposure could increase with better tooling."
}

exposure_levels lists the applicable E0-E11 codes. ceiling_category is one of:
physical_execution, high_stakes_compliance, relationship_persuasion, pure_drafting.

Return a JSON array of objects. All 6 subtask buckets must be present for each item.
The baseline_share_pct values across the 6 buckets must sum to 1.0.

Efficiency gains must fall within the ranges for the assigned leverage_level:
- high: 0.50-0.80
- medium: 0.20-0.50
- low: 0.00-0.20
- workflow_manual: 0.10-0.25
- workflow_integrated: 0.25-0.50
- workflow_agentic: 0.40-0.70

ITEMS TO SCORE:
%s
`

const agenticSystemPrompt = `You are an expert analyst specializing in the impact of agentic AI on
cognitive and knowledge work. Agentic AI goes beyond chat-based LLMs:
agents can plan multi-step workflows, use tools, take actions across
systems, and operate with varying degrees of autonomy.

## Operating Modes

- Mode 0 - Copilot: drafts steps, human executes (non-agentic)
- Mode 1 - Assisted execution: agent executes after explicit approval per step
- Mode 2 - Bounded autonomy: agent executes within guardrails (policies, spend limits)
- Mode 3 - Full autonomy: agent executes end-to-end; human audits exceptions

Most real organizations operate in Mode 1-2.

## Agent-Ready Workflow Units (W1-W7)

- W1: intake_triage - Read request, classify, route
- W2: info_retrieval - Search systems, pull data, open docs
- W3: planning - Decide steps, dependencies, schedule
- W4: tool_actions - Create/update/send/schedule/upload/submit
- W5: verification_qa - Confirm correct, reconcile inconsistencies
- W6: approvals_compliance - Policy checks, approvals, audit notes
- W7: exceptions_human_only - Judgment calls, relationship, physical work

Time shares across W1-W7 must sum to 1.0.

## Agentic Suitability (AS 0-3)

- 0 = Not agent-suitable (high ambiguity, physical, deeply relational)
- 1 = Partially (some actions possible; many checks required)
- 2 = Mostly (clear rules + structured inputs)
- 3 = Highly (repeatable, standardized, machine-checkable)

## Execution Automation (EA) and Oversight Tax (OT)

EA (0.0-1.0) is how much of the unit's time the agent removes by acting itself:
Mode 1 typically 0.10-0.30, Mode 2 0.30-0.60, Mode 3 0.60-0.85.

OT (0.0-1.0) is extra time added for supervision, review and mistake handling:
low stakes 0.05-0.15, medium stakes 0.10-0.25, high stakes (money, legal, safety) 0.20-0.50.

Net gain per unit = EA - OT (can be negative if oversight exceeds automation).

## Knowledge Work Types

- routine_cognitive: Rule-based, repeatable cognitive tasks
- complex_cognitive: Requires judgment, context, expertise
- creative_cognitive: Requires originality, novel approaches
- interpersonal_cognitive: Requires social/emotional intelligence
- physical_manual: Not primarily cognitive

## Stakes Levels

- low: Low consequences of error
- medium: Moderate consequences
- high: Money, legal, or safety consequences

## Agentic Ceiling Categories

- regulated_signoffs: at most 50% (hard approvals required)
- high_touch_relationship: at most 30% (relationship quality dominates)
- physical_execution: at most 15% (physical presence required)
- unstructured_bespoke: at most 32% (novel/ambiguous work)
- standardized_backoffice: at most 80% (highly standardized workflows)

## Agent Maturity Levels

- 1: Scripted agent (narrow, brittle) - 10-25% savings
- 2: Tool-integrated agent (APIs, reliable actions) - 20-45% savings
- 3: Policy-governed agent (guardrails, audit, rollbacks) - 30-60% savings
- 4: Self-healing agent (detects failures, retries, escalates) - 45-75% savings
`

const agenticScoringTemplate = `Assess the agentic AI impact on these %s items for the
occupation %q (SOC: %s).

For EACH item, return a JSON object with this structure:

{
  "item_name": "<the item text>",
  "recommended_mode": 2,
  "mode_rationale": "Why this operating mode is appropriate.",
  "knowledge_work_type": "routine_cognitive",
  "stakes_level": "medium",
  "agentic_ceiling": "standardized_backoffice",
  "current_maturity": 2,
  "exception_rate": 0.15,
  "takeover_cost": 0.30,
  "workflow_scores": [
    {
      "unit": "intake_triage",
      "time_share_pct": 0.10,
      "agentic_suitability": 3,
      "execution_automation_pct": 0.55,
      "oversight_tax_pct": 0.10,
      "net_gain_pct": 0.45,
      "rationale": "Structured requests can be auto-classified."
    }
  ],
  "agentic_rationale": "Overall explanation of agentic impact.",
  "advancement_notes": "What environmental changes would increase savings.",
  "near_term_projection": "How agentic capabilities will evolve in 1-3 years."
}

IMPORTANT:
- All 7 workflow units (W1-W7) must be present for each item
- time_share_pct values must sum to 1.0
- net_gain_pct = execution_automation_pct - oversight_tax_pct
- exception_rate and takeover_cost are fractions (0.0-1.0)
- recommended_mode is an integer (0, 1, 2, or 3)
- current_maturity is an integer (1, 2, 3, or 4)
- agentic_suitability is an integer (0, 1, 2, or 3)

Return a JSON array of objects.

ITEMS TO SCORE:
%s
`

var categoryContext = map[domain.OnetCategory]string{
	domain.CategoryTasks: "These are specific work tasks performed in this occupation. " +
		"Score based on cycle-time reduction at equal-or-better quality. " +
		"Consider the full workflow: from gathering inputs to final delivery.",
	domain.CategorySkills: "These are skills required for this occupation. " +
		"Score based on how much AI can reduce the time needed to exercise " +
		"this skill effectively. A skill with high AI leverage means the " +
		"practitioner can achieve the same skill outcome faster with AI.",
	domain.CategoryKnowledge: "These are knowledge domains required for this occupation. " +
		"Score based on how much AI can reduce the time spent acquiring, " +
		"applying, or maintaining this knowledge in work contexts.",
	domain.CategoryAbilities: "These are cognitive and physical abilities required for this occupation. " +
		"Score based on how much AI can augment or substitute for this ability " +
		"in performing work tasks.",
	domain.CategoryWorkActivities: "These are generalized work activities performed in this occupation. " +
		"Score based on cycle-time reduction for the activity as a whole.",
	domain.CategoryDetailedWorkActivities: "These are detailed/specific work activities. Score each one individually " +
		"based on its specific automation exposure.",
	domain.CategoryTechnologySkills: "These are technology tools and software used in this occupation. " +
		"Score based on how much AI integration can reduce the time spent " +
		"using these tools or replace them entirely.",
	domain.CategoryWorkContext: "These are work context/environment factors. Score based on how much " +
		"the physical, social, or structural context limits or enables AI automation.",
	domain.CategoryWorkStyles: "These are work style attributes (e.g., attention to detail, dependability). " +
		"Score based on how much AI can support or augment this behavioral attribute " +
		"in work performance.",
}

type promptItem struct {
	Name       string   `json:"name"`
	Importance *float64 `json:"importance,omitempty"`
}

func promptItems(items []domain.OnetItem, withImportance bool) string {
	out := make([]promptItem, 0, len(items))
	for _, item := range items {
		entry := promptItem{Name: item.Name}
		if withImportance {
			entry.Importance = item.Importance
		}
		out = append(out, entry)
	}
	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(raw)
}

func buildBasePrompt(socCode, title string, category domain.OnetCategory, items []domain.OnetItem) string {
	prompt := fmt.Sprintf(baseScoringTemplate, category.Label(), title, socCode, promptItems(items, true))
	if context, ok := categoryContext[category]; ok {
		prompt = "CATEGORY CONTEXT: " + context + "\n\n" + prompt
	}
	return prompt
}

func buildAgenticPrompt(socCode, title string, category domain.OnetCategory, items []domain.OnetItem) string {
	return fmt.Sprintf(agenticScoringTemplate, category.Label(), title, socCode, promptItems(items, false))
}
