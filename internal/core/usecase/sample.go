package usecase

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/agentic"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/scoring"
)

const (
	SampleSOCCode = "41-9022.00"
	SampleTitle   = "Real Estate Sales Agents"
)

type sampleSubtask struct {
	bucket   domain.SubtaskBucket
	share    float64
	leverage domain.LeverageLevel
	gainLow  float64
	gainHigh float64
}

type sampleItem struct {
	name        string
	exposure    []domain.ExposureLevel
	ceiling     domain.CeilingCategory
	subtasks    []sampleSubtask
	rationale   string
	advancement string
}

func sampleTasks() []sampleItem {
	return []sampleItem{
		{
			name:     "Prospecting & lead list building (sphere, farming, online leads)",
			exposure: []domain.ExposureLevel{domain.E2},
			ceiling:  domain.CeilingRelationshipPersuasion,
			subtasks: []sampleSubtask{
				{domain.BucketInputGathering, 0.25, domain.LeverageMedium, 0.30, 0.45},
				{domain.BucketTransformationDrafting, 0.30, domain.LeverageHigh, 0.50, 0.70},
				{domain.BucketAnalysisPlanning, 0.10, domain.LeverageMedium, 0.20, 0.35},
				{domain.BucketCoordinationWorkflow, 0.15, domain.LeverageWorkflowIntegrated, 0.25, 0.40},
				{domain.BucketReviewQACompliance, 0.05, domain.LeverageLow, 0.05, 0.15},
				{domain.BucketHumanOnlyExecution, 0.15, domain.LeverageLow, 0.00, 0.10},
			},
			rationale: "LLM-powered CRMs can draft outreach sequences, personalize messages by segment, " +
				"and suggest follow-up timing; still needs agent judgment and relationship context.",
			advancement: "E2 -> E9 when agents can autonomously manage drip sequences and respond to lead signals.",
		},
		{
			name:     "Initial client discovery (needs analysis, budget, timeline, motivation)",
			exposure: []domain.ExposureLevel{domain.E7},
			ceiling:  domain.CeilingRelationshipPersuasion,
			subtasks: []sampleSubtask{
				{domain.BucketInputGathering, 0.20, domain.LeverageMedium, 0.25, 0.40},
				{domain.BucketTransformationDrafting, 0.15, domain.LeverageHigh, 0.50, 0.65},
				{domain.BucketAnalysisPlanning, 0.25, domain.LeverageMedium, 0.20, 0.40},
				{domain.BucketCoordinationWorkflow, 0.10, domain.LeverageWorkflowManual, 0.10, 0.20},
				{domain.BucketReviewQACompliance, 0.05, domain.LeverageLow, 0.05, 0.10},
				{domain.BucketHumanOnlyExecution, 0.25, domain.LeverageLow, 0.00, 0.05},
			},
			rationale: "LLM can generate structured intake questions, summarize notes, and flag risks; " +
				"humans still do rapport-building and read sensitive negotiation cues.",
			advancement: "E7 -> E7/E8 with better persuasion and emotional intelligence capabilities.",
		},
		{
			name:     "Market research & pricing guidance (CMAs, comps, neighborhood insights)",
			exposure: []domain.ExposureLevel{domain.E2, domain.E7},
			ceiling:  domain.CeilingHighStakesCompliance,
			subtasks: []sampleSubtask{
				{domain.BucketInputGathering, 0.30, domain.LeverageMedium, 0.30, 0.50},
				{domain.BucketTransformationDrafting, 0.25, domain.LeverageHigh, 0.50, 0.75},
				{domain.BucketAnalysisPlanning, 0.25, domain.LeverageMedium, 0.25, 0.45},
				{domain.BucketCoordinationWorkflow, 0.05, domain.LeverageWorkflowManual, 0.10, 0.20},
				{domain.BucketReviewQACompliance, 0.10, domain.LeverageLow, 0.10, 0.20},
				{domain.BucketHumanOnlyExecution, 0.05, domain.LeverageLow, 0.00, 0.05},
			},
			rationale: "LLM tools can summarize listing data, draft CMA narratives, and explain pricing logic; " +
				"E2 potential rises when MLS/AVM integrations auto-pull comps and calculate adjustments.",
			advancement: "E2 -> E2/E9 when integrated with MLS APIs for automatic comp pulling and valuation.",
		},
		{
			name:     "Listing description & marketing copy (MLS remarks, brochures, ads)",
			exposure: []domain.ExposureLevel{domain.E1},
			ceiling:  domain.CeilingPureDrafting,
			subtasks: []sampleSubtask{
				{domain.BucketInputGathering, 0.10, domain.LeverageMedium, 0.25, 0.40},
				{domain.BucketTransformationDrafting, 0.55, domain.LeverageHigh, 0.60, 0.80},
				{domain.BucketAnalysisPlanning, 0.05, domain.LeverageMedium, 0.20, 0.35},
				{domain.BucketCoordinationWorkflow, 0.05, domain.LeverageWorkflowManual, 0.10, 0.20},
				{domain.BucketReviewQACompliance, 0.15, domain.LeverageLow, 0.10, 0.20},
				{domain.BucketHumanOnlyExecution, 0.10, domain.LeverageLow, 0.00, 0.05},
			},
			rationale: "Drafting and iterating copy, headlines, FAQs, and neighborhood value props is highly " +
				"automatable; the agent reviews for accuracy and compliance.",
			advancement: "E1 -> E1/E3 with image-aware models that can describe photos and match copy to visuals.",
		},
		{
			name:     "Client communications (status updates, FAQs, objection handling)",
			exposure: []domain.ExposureLevel{domain.E8},
			ceiling:  domain.CeilingRelationshipPersuasion,
			subtasks: []sampleSubtask{
				{domain.BucketInputGathering, 0.10, domain.LeverageMedium, 0.20, 0.35},
				{domain.BucketTransformationDrafting, 0.40, domain.LeverageHigh, 0.55, 0.75},
				{domain.BucketAnalysisPlanning, 0.05, domain.LeverageMedium, 0.20, 0.30},
				{domain.BucketCoordinationWorkflow, 0.15, domain.LeverageWorkflowIntegrated, 0.30, 0.50},
				{domain.BucketReviewQACompliance, 0.10, domain.LeverageLow, 0.10, 0.20},
				{domain.BucketHumanOnlyExecution, 0.20, domain.LeverageLow, 0.00, 0.10},
			},
			rationale: "LLM can draft empathetic updates, handle common objections, and tailor tone; " +
				"the agent must validate facts, avoid misstatements, and manage emotions.",
			advancement: "E8 -> E8/E9 when agents can send communications autonomously within guardrails.",
		},
		{
			name:     "Transaction coordination (deadlines, inspection/appraisal steps, reminders)",
			exposure: []domain.ExposureLevel{domain.E2, domain.E9},
			ceiling:  domain.CeilingHighStakesCompliance,
			subtasks: []sampleSubtask{
				{domain.BucketInputGathering, 0.15, domain.LeverageMedium, 0.25, 0.45},
				{domain.BucketTransformationDrafting, 0.10, domain.LeverageHigh, 0.50, 0.65},
				{domain.BucketAnalysisPlanning, 0.10, domain.LeverageMedium, 0.20, 0.35},
				{domain.BucketCoordinationWorkflow, 0.40, domain.LeverageWorkflowAgentic, 0.40, 0.65},
				{domain.BucketReviewQACompliance, 0.15, domain.LeverageLow, 0.10, 0.20},
				{domain.BucketHumanOnlyExecution, 0.10, domain.LeverageLow, 0.00, 0.05},
			},
			rationale: "Integrated apps can automate reminders and workflow; E9 potential increases with agentic " +
				"tools that read email and calendars and trigger tasks, but oversight is required.",
			advancement: "E9 already present; advances further as agents gain trusted access to transaction management systems.",
		},
	}
}

func sampleSkills() []sampleItem {
	return []sampleItem{
		{
			name:     "Active Listening",
			exposure: []domain.ExposureLevel{domain.E6, domain.E7},
			ceiling:  domain.CeilingRelationshipPersuasion,
			subtasks: []sampleSubtask{
				{domain.BucketInputGathering, 0.30, domain.LeverageMedium, 0.20, 0.35},
				{domain.BucketTransformationDrafting, 0.10, domain.LeverageHigh, 0.50, 0.65},
				{domain.BucketAnalysisPlanning, 0.15, domain.LeverageMedium, 0.25, 0.40},
				{domain.BucketCoordinationWorkflow, 0.05, domain.LeverageLow, 0.05, 0.15},
				{domain.BucketReviewQACompliance, 0.05, domain.LeverageLow, 0.05, 0.10},
				{domain.BucketHumanOnlyExecution, 0.35, domain.LeverageLow, 0.00, 0.05},
			},
			rationale: "Voice AI can transcribe and summarize conversations, flag key points, and identify client " +
				"sentiment; listening and responding empathetically remains human-led.",
			advancement: "E6/E7 -> E6/E7/E8 as voice AI gains real-time coaching ability.",
		},
		{
			name:     "Negotiation",
			exposure: []domain.ExposureLevel{domain.E7, domain.E8},
			ceiling:  domain.CeilingRelationshipPersuasion,
			subtasks: []sampleSubtask{
				{domain.BucketInputGathering, 0.15, domain.LeverageMedium, 0.25, 0.40},
				{domain.BucketTransformationDrafting, 0.15, domain.LeverageHigh, 0.50, 0.70},
				{domain.BucketAnalysisPlanning, 0.30, domain.LeverageMedium, 0.25, 0.45},
				{domain.BucketCoordinationWorkflow, 0.05, domain.LeverageLow, 0.05, 0.15},
				{domain.BucketReviewQACompliance, 0.05, domain.LeverageLow, 0.05, 0.10},
				{domain.BucketHumanOnlyExecution, 0.30, domain.LeverageLow, 0.00, 0.10},
			},
			rationale: "LLM can model scenarios, draft negotiation language, and anticipate counteroffers; " +
				"persuasion is sensitive and local norms matter.",
			advancement: "Advances with better multi-party reasoning and emotional modeling.",
		},
		{
			name:     "Critical Thinking",
			exposure: []domain.ExposureLevel{domain.E7},
			ceiling:  domain.CeilingHighStakesCompliance,
			subtasks: []sampleSubtask{
				{domain.BucketInputGathering, 0.20, domain.LeverageMedium, 0.25, 0.45},
				{domain.BucketTransformationDrafting, 0.10, domain.LeverageHigh, 0.50, 0.65},
				{domain.BucketAnalysisPlanning, 0.40, domain.LeverageMedium, 0.20, 0.40},
				{domain.BucketCoordinationWorkflow, 0.05, domain.LeverageLow, 0.05, 0.10},
				{domain.BucketReviewQACompliance, 0.10, domain.LeverageLow, 0.10, 0.20},
				{domain.BucketHumanOnlyExecution, 0.15, domain.LeverageLow, 0.00, 0.05},
			},
			rationale: "Advanced reasoning can surface options, flag inconsistencies, and structure complex analyses; " +
				"final judgment on ambiguous situations remains with the professional.",
			advancement: "Improves as reasoning models handle more complex multi-step logic.",
		},
	}
}

type sampleUnit struct {
	unit        domain.WorkflowUnit
	share       float64
	suitability domain.AgenticSuitability
	ea, ot      float64
	rationale   string
}

func workflowScores(units []sampleUnit) []domain.WorkflowUnitScore {
	out := make([]domain.WorkflowUnitScore, 0, len(units))
	for _, u := range units {
		out = append(out, domain.WorkflowUnitScore{
			Unit:                   u.unit,
			TimeSharePct:           u.share,
			AgenticSuitability:     u.suitability,
			ExecutionAutomationPct: u.ea,
			OversightTaxPct:        u.ot,
			NetGainPct:             u.ea - u.ot,
			Rationale:              u.rationale,
		})
	}
	return out
}

func sampleAgentic() []agentic.Input {
	return []agentic.Input{
		{
			ItemName:        "Transaction coordination (deadlines, inspection/appraisal steps, reminders)",
			Category:        domain.CategoryTasks,
			RecommendedMode: domain.ModeBoundedAutonomy,
			ModeRationale:   "Deadlines and reminders run inside clear guardrails; contract changes still need the agent.",
			WorkflowScores: workflowScores([]sampleUnit{
				{domain.UnitIntakeTriage, 0.10, domain.SuitabilityHighly, 0.55, 0.15, "Contract events arrive in structured form."},
				{domain.UnitInfoRetrieval, 0.15, domain.SuitabilityMostly, 0.45, 0.15, "Pull dates and documents from the transaction system."},
				{domain.UnitPlanning, 0.15, domain.SuitabilityMostly, 0.35, 0.20, "Timeline follows the contract contingencies."},
				{domain.UnitToolActions, 0.25, domain.SuitabilityHighly, 0.55, 0.20, "Send reminders, book inspections, update the CRM."},
				{domain.UnitVerificationQA, 0.10, domain.SuitabilityMostly, 0.35, 0.25, "Reconcile dates across lender, title and inspector."},
				{domain.UnitApprovalsCompliance, 0.15, domain.SuitabilityPartial, 0.15, 0.30, "Broker review and signatures stay manual."},
				{domain.UnitExceptionsHumanOnly, 0.10, domain.SuitabilityNone, 0.00, 0.00, "Failed inspections and renegotiation."},
			}),
			ExceptionRate:      0.15,
			TakeoverCost:       0.30,
			CurrentMaturity:    domain.MaturityToolIntegrated,
			AgenticCeiling:     domain.AgenticCeilingRegulatedSignoffs,
			KnowledgeWorkType:  domain.WorkRoutineCognitive,
			StakesLevel:        domain.StakesHigh,
			AgenticRationale:   "Most coordination steps are rule-driven and checkable; money and legal deadlines keep oversight high.",
			AdvancementNotes:   "Trusted write access to transaction management platforms.",
			NearTermProjection: "Agents run the full reminder and scheduling loop with broker sign-off only.",
		},
		{
			ItemName:        "Listing description & marketing copy (MLS remarks, brochures, ads)",
			Category:        domain.CategoryTasks,
			RecommendedMode: domain.ModeAssisted,
			ModeRationale:   "Each listing is approved by the agent before publishing.",
			WorkflowScores: workflowScores([]sampleUnit{
				{domain.UnitIntakeTriage, 0.05, domain.SuitabilityHighly, 0.30, 0.10, "Listing intake forms are structured."},
				{domain.UnitInfoRetrieval, 0.10, domain.SuitabilityMostly, 0.30, 0.10, "Pull property facts and photos."},
				{domain.UnitPlanning, 0.10, domain.SuitabilityPartial, 0.15, 0.10, "Pick channels and angles."},
				{domain.UnitToolActions, 0.45, domain.SuitabilityMostly, 0.30, 0.15, "Post to MLS and marketing channels."},
				{domain.UnitVerificationQA, 0.15, domain.SuitabilityMostly, 0.25, 0.15, "Check facts against the listing record."},
				{domain.UnitApprovalsCompliance, 0.10, domain.SuitabilityPartial, 0.10, 0.15, "Fair-housing language review."},
				{domain.UnitExceptionsHumanOnly, 0.05, domain.SuitabilityNone, 0.00, 0.00, "Seller preferences and tone."},
			}),
			ExceptionRate:      0.10,
			TakeoverCost:       0.20,
			CurrentMaturity:    domain.MaturityToolIntegrated,
			AgenticCeiling:     domain.AgenticCeilingUnstructuredBespoke,
			KnowledgeWorkType:  domain.WorkCreativeCognitive,
			StakesLevel:        domain.StakesMedium,
			AgenticRationale:   "Drafting is already covered by the base layer; the agent adds publishing and syndication.",
			AdvancementNotes:   "Direct MLS publishing APIs.",
			NearTermProjection: "Agent-published listings with a single approval step.",
		},
	}
}

func scoreSampleItems(category domain.OnetCategory, items []sampleItem) ([]domain.ScoredItem, error) {
	out := make([]domain.ScoredItem, 0, len(items))
	for _, item := range items {
		subtasks := make([]domain.SubtaskScore, 0, len(item.subtasks))
		for _, st := range item.subtasks {
			subtasks = append(subtasks, domain.SubtaskScore{
				Bucket:             st.bucket,
				BaselineSharePct:   st.share,
				ExposureLevels:     []domain.ExposureLevel{},
				LeverageLevel:      st.leverage,
				EfficiencyGainLow:  st.gainLow,
				EfficiencyGainHigh: st.gainHigh,
			})
		}
		scored, err := scoring.ScoreItem(scoring.ItemInput{
			ItemName:         item.name,
			Category:         category,
			ExposureLevels:   item.exposure,
			Subtasks:         subtasks,
			CeilingCategory:  item.ceiling,
			Rationale:        item.rationale,
			AdvancementNotes: item.advancement,
		})
		if err != nil {
			return nil, fmt.Errorf("score sample item: %w", err)
		}
		out = append(out, scored)
	}
	return out, nil
}

// BuildSampleReport scores the built-in Real Estate Sales Agents occupation
// without calling a model or O*NET.
func BuildSampleReport(now time.Time) (*domain.Report, error) {
	tasks, err := scoreSampleItems(domain.CategoryTasks, sampleTasks())
	if err != nil {
		return nil, err
	}
	skills, err := scoreSampleItems(domain.CategorySkills, sampleSkills())
	if err != nil {
		return nil, err
	}

	byName := make(map[string]domain.AgenticImpactScore)
	for _, in := range sampleAgentic() {
		score, err := agentic.ScoreItem(in)
		if err != nil {
			return nil, fmt.Errorf("score sample agentic item: %w", err)
		}
		byName[score.ItemName] = score
	}
	tasks = agentic.AdjustItems(tasks, byName)

	summaries := []domain.CategorySummary{
		scoring.SummarizeCategory(domain.CategoryTasks, tasks),
		scoring.SummarizeCategory(domain.CategorySkills, skills),
	}
	alert := scoring.BuildAutomationAlert(SampleSOCCode, SampleTitle, summaries, nil, now)

	return &domain.Report{
		ID:          uuid.NewString(),
		GeneratedAt: now.UTC(),
		Alert:       alert,
		Agentic:     byName,
	}, nil
}
