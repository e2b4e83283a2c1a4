package usecase

import (
	"sort"
	"strconv"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

type CategoryInfo struct {
	Category domain.OnetCategory `json:"category"`
	Label    string              `json:"label"`
	Weight   float64             `json:"weight"`
	Scorable bool                `json:"scorable"`
}

type LabeledCode struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

type CappedCode struct {
	Code   string  `json:"code"`
	CapPct float64 `json:"cap_pct"`
}

// TaxonomyView is the read-only vocabulary the scoring engines accept.
type TaxonomyView struct {
	MethodologyVersion string         `json:"methodology_version"`
	Categories         []CategoryInfo `json:"categories"`
	ExposureLevels     []LabeledCode  `json:"exposure_levels"`
	SubtaskBuckets     []LabeledCode  `json:"subtask_buckets"`
	CeilingCategories  []CappedCode   `json:"ceiling_categories"`
	OperatingModes     []LabeledCode  `json:"operating_modes"`
	WorkflowUnits      []LabeledCode  `json:"workflow_units"`
	MaturityLevels     []LabeledCode  `json:"maturity_levels"`
	AgenticCeilings    []CappedCode   `json:"agentic_ceilings"`
}

func Taxonomy() TaxonomyView {
	scorable := make(map[domain.OnetCategory]bool, len(domain.ScorableCategories))
	for _, c := range domain.ScorableCategories {
		scorable[c] = true
	}

	view := TaxonomyView{MethodologyVersion: domain.MethodologyVersion}
	for _, c := range domain.OnetCategories {
		view.Categories = append(view.Categories, CategoryInfo{
			Category: c,
			Label:    c.Label(),
			Weight:   domain.CategoryWeight(c),
			Scorable: scorable[c],
		})
	}
	for _, level := range domain.ExposureLevels {
		view.ExposureLevels = append(view.ExposureLevels, LabeledCode{Code: string(level), Label: domain.ExposureLabels[level]})
	}
	for _, bucket := range domain.SubtaskBuckets {
		view.SubtaskBuckets = append(view.SubtaskBuckets, LabeledCode{Code: string(bucket), Label: domain.SubtaskLabels[bucket]})
	}
	for ceiling, limit := range domain.CeilingCaps {
		view.CeilingCategories = append(view.CeilingCategories, CappedCode{Code: string(ceiling), CapPct: limit * 100})
	}
	sortCapped(view.CeilingCategories)
	for mode := domain.ModeCopilot; mode <= domain.ModeFullAutonomy; mode++ {
		view.OperatingModes = append(view.OperatingModes, LabeledCode{Code: strconv.Itoa(int(mode)), Label: domain.OperatingModeLabels[mode]})
	}
	for _, unit := range domain.WorkflowUnits {
		view.WorkflowUnits = append(view.WorkflowUnits, LabeledCode{Code: unit.Code(), Label: domain.WorkflowUnitLabels[unit]})
	}
	for level := domain.MaturityScripted; level <= domain.MaturitySelfHealing; level++ {
		view.MaturityLevels = append(view.MaturityLevels, LabeledCode{Code: "L" + strconv.Itoa(int(level)), Label: domain.MaturityLabels[level]})
	}
	for ceiling, limit := range domain.AgenticCeilingCaps {
		view.AgenticCeilings = append(view.AgenticCeilings, CappedCode{Code: string(ceiling), CapPct: limit * 100})
	}
	sortCapped(view.AgenticCeilings)
	return view
}

// sortCapped orders by cap, lowest first.
func sortCapped(codes []CappedCode) {
	sort.Slice(codes, func(i, j int) bool {
		if codes[i].CapPct != codes[j].CapPct {
			return codes[i].CapPct < codes[j].CapPct
		}
		return codes[i].Code < codes[j].Code
	})
}
