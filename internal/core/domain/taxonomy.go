package domain

import (
	"fmt"
	"strings"
)

// ExposureLevel names the AI capability vector that makes a work element
// susceptible to automation.
type ExposureLevel string

const (
	E0  ExposureLevel = "E0"
	E1  ExposureLevel = "E1"
	E2  ExposureLevel = "E2"
	E3  ExposureLevel = "E3"
	E4  ExposureLevel = "E4"
	E5  ExposureLevel = "E5"
	E6  ExposureLevel = "E6"
	E7  ExposureLevel = "E7"
	E8  ExposureLevel = "E8"
	E9  ExposureLevel = "E9"
	E10 ExposureLevel = "E10"
	E11 ExposureLevel = "E11"
)

// ExposureLevels lists every level in taxonomy order.
var ExposureLevels = []ExposureLevel{E0, E1, E2, E3, E4, E5, E6, E7, E8, E9, E10, E11}

var ExposureLabels = map[ExposureLevel]string{
	E0:  "No exposure",
	E1:  "Direct LLM exposure",
	E2:  "LLM-powered applications",
	E3:  "Image capabilities",
	E4:  "Video capabilities",
	E5:  "Audio capabilities",
	E6:  "Voice capabilities",
	E7:  "Advanced reasoning",
	E8:  "Persuasion capabilities",
	E9:  "Digital world action (AI Agents)",
	E10: "Physical world vision (AI Vision Devices)",
	E11: "Physical world action (Humanoid Robots)",
}

func ParseExposureLevel(raw string) (ExposureLevel, error) {
	level := ExposureLevel(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := ExposureLabels[level]; !ok {
		return "", unknownTag("exposure level", raw)
	}
	return level, nil
}

// ExposureLabel joins exposure codes the way reports show them, e.g. "E2/E7".
func ExposureLabel(levels []ExposureLevel) string {
	parts := make([]string, 0, len(levels))
	for _, level := range levels {
		parts = append(parts, string(level))
	}
	return strings.Join(parts, "/")
}

// OnetCategory is an O*NET attribute category.
type OnetCategory string

const (
	CategoryTasks                  OnetCategory = "tasks"
	CategorySkills                 OnetCategory = "skills"
	CategoryKnowledge              OnetCategory = "knowledge"
	CategoryAbilities              OnetCategory = "abilities"
	CategoryWorkActivities         OnetCategory = "work_activities"
	CategoryDetailedWorkActivities OnetCategory = "detailed_work_activities"
	CategoryTechnologySkills       OnetCategory = "technology_skills"
	CategoryWorkContext            OnetCategory = "work_context"
	CategoryWorkStyles             OnetCategory = "work_styles"
	CategoryWorkValues             OnetCategory = "work_values"
	CategoryInterests              OnetCategory = "interests"
	CategoryJobZones               OnetCategory = "job_zones"
	CategoryEducation              OnetCategory = "education"
)

var allCategories = map[OnetCategory]bool{
	CategoryTasks: true, CategorySkills: true, CategoryKnowledge: true,
	CategoryAbilities: true, CategoryWorkActivities: true, CategoryDetailedWorkActivities: true,
	CategoryTechnologySkills: true, CategoryWorkContext: true, CategoryWorkStyles: true,
	CategoryWorkValues: true, CategoryInterests: true, CategoryJobZones: true, CategoryEducation: true,
}

// OnetCategories lists every category: the scorable ones first, in report order.
var OnetCategories = []OnetCategory{
	CategoryTasks, CategorySkills, CategoryKnowledge, CategoryAbilities,
	CategoryWorkActivities, CategoryDetailedWorkActivities, CategoryTechnologySkills,
	CategoryWorkContext, CategoryWorkStyles,
	CategoryWorkValues, CategoryInterests, CategoryJobZones, CategoryEducation,
}

// ScorableCategories receive full exposure scoring, in report order.
var ScorableCategories = []OnetCategory{
	CategoryTasks,
	CategorySkills,
	CategoryKnowledge,
	CategoryAbilities,
	CategoryWorkActivities,
	CategoryDetailedWorkActivities,
	CategoryTechnologySkills,
	CategoryWorkContext,
	CategoryWorkStyles,
}

// CategoryWeights drive the occupation composite. Tasks and work activities
// describe the work itself and carry the most weight.
var CategoryWeights = map[OnetCategory]float64{
	CategoryTasks:                  0.25,
	CategoryWorkActivities:         0.20,
	CategorySkills:                 0.15,
	CategoryTechnologySkills:       0.12,
	CategoryKnowledge:              0.08,
	CategoryAbilities:              0.07,
	CategoryDetailedWorkActivities: 0.05,
	CategoryWorkContext:            0.04,
	CategoryWorkStyles:             0.04,
}

// DefaultCategoryWeight applies to categories missing from CategoryWeights.
const DefaultCategoryWeight = 0.05

func CategoryWeight(category OnetCategory) float64 {
	if w, ok := CategoryWeights[category]; ok {
		return w
	}
	return DefaultCategoryWeight
}

func ParseOnetCategory(raw string) (OnetCategory, error) {
	category := OnetCategory(strings.ToLower(strings.TrimSpace(raw)))
	if !allCategories[category] {
		return "", unknownTag("onet category", raw)
	}
	return category, nil
}

// Label renders "work_activities" as "Work Activities".
func (c OnetCategory) Label() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

type SubtaskBucket string

const (
	BucketInputGathering         SubtaskBucket = "input_gathering"
	BucketTransformationDrafting SubtaskBucket = "transformation_drafting"
	BucketAnalysisPlanning       SubtaskBucket = "analysis_planning"
	BucketCoordinationWorkflow   SubtaskBucket = "coordination_workflow"
	BucketReviewQACompliance     SubtaskBucket = "review_qa_compliance"
	BucketHumanOnlyExecution     SubtaskBucket = "human_only_execution"
)

var SubtaskBuckets = []SubtaskBucket{
	BucketInputGathering,
	BucketTransformationDrafting,
	BucketAnalysisPlanning,
	BucketCoordinationWorkflow,
	BucketReviewQACompliance,
	BucketHumanOnlyExecution,
}

var SubtaskLabels = map[SubtaskBucket]string{
	BucketInputGathering:         "Input gathering (finding info, collecting docs, pulling data)",
	BucketTransformationDrafting: "Transformation / drafting (writing, summarizing, formatting)",
	BucketAnalysisPlanning:       "Analysis / planning / decision support",
	BucketCoordinationWorkflow:   "Coordination / workflow (scheduling, reminders, handoffs)",
	BucketReviewQACompliance:     "Review / QA / compliance (checking accuracy, approvals)",
	BucketHumanOnlyExecution:     "Human-only / real-world execution (physical, relationship)",
}

func ParseSubtaskBucket(raw string) (SubtaskBucket, error) {
	bucket := SubtaskBucket(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := SubtaskLabels[bucket]; !ok {
		return "", unknownTag("subtask bucket", raw)
	}
	return bucket, nil
}

// LeverageLevel is how much leverage AI provides for a subtask.
type LeverageLevel string

const (
	LeverageHigh               LeverageLevel = "high"
	LeverageMedium             LeverageLevel = "medium"
	LeverageLow                LeverageLevel = "low"
	LeverageWorkflowManual     LeverageLevel = "workflow_manual"
	LeverageWorkflowIntegrated LeverageLevel = "workflow_integrated"
	LeverageWorkflowAgentic    LeverageLevel = "workflow_agentic"
)

// Range is a closed [Low, High] band of fractions.
type Range struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

var LeverageGainRanges = map[LeverageLevel]Range{
	LeverageHigh:               {0.50, 0.80},
	LeverageMedium:             {0.20, 0.50},
	LeverageLow:                {0.00, 0.20},
	LeverageWorkflowManual:     {0.10, 0.25},
	LeverageWorkflowIntegrated: {0.25, 0.50},
	LeverageWorkflowAgentic:    {0.40, 0.70},
}

func ParseLeverageLevel(raw string) (LeverageLevel, error) {
	level := LeverageLevel(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := LeverageGainRanges[level]; !ok {
		return "", unknownTag("leverage level", raw)
	}
	return level, nil
}

// CeilingCategory bounds plausible automation by the nature of the task.
type CeilingCategory string

const (
	CeilingPhysicalExecution      CeilingCategory = "physical_execution"
	CeilingHighStakesCompliance   CeilingCategory = "high_stakes_compliance"
	CeilingRelationshipPersuasion CeilingCategory = "relationship_persuasion"
	CeilingPureDrafting           CeilingCategory = "pure_drafting"
)

var CeilingCaps = map[CeilingCategory]float64{
	CeilingPhysicalExecution:      0.25,
	CeilingHighStakesCompliance:   0.50,
	CeilingRelationshipPersuasion: 0.55,
	CeilingPureDrafting:           0.85,
}

func ParseCeilingCategory(raw string) (CeilingCategory, error) {
	category := CeilingCategory(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := CeilingCaps[category]; !ok {
		return "", unknownTag("ceiling category", raw)
	}
	return category, nil
}

// CeilingCap returns the cap fraction for a ceiling category.
func CeilingCap(category CeilingCategory) (float64, error) {
	limit, ok := CeilingCaps[category]
	if !ok {
		return 0, unknownTag("ceiling category", string(category))
	}
	return limit, nil
}

// DiscountFactor is a named friction that reduces raw estimates.
type DiscountFactor struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DiscountPct float64 `json:"discount_pct"`
}

// MaxTotalDiscount caps the combined haircut of all discount factors.
const MaxTotalDiscount = 0.50

// DefaultDiscountFactors returns a fresh copy of the standard factor list (sum 0.20).
func DefaultDiscountFactors() []DiscountFactor {
	return []DiscountFactor{
		{Name: "Verification tax", Description: "Fact-checking, hallucination risk", DiscountPct: 0.05},
		{Name: "Compliance / liability", Description: "Must-read, must-approve steps", DiscountPct: 0.05},
		{Name: "Tool friction", Description: "Copy/paste, poor integrations, context switching", DiscountPct: 0.05},
		{Name: "Stakeholder delays", Description: "Approvals, external dependencies", DiscountPct: 0.03},
		{Name: "Novelty / edge cases", Description: "Rare or complex situations", DiscountPct: 0.02},
	}
}

func unknownTag(kind, raw string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownTag, kind, raw)
}
