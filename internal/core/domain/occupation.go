package domain

import "time"

type Occupation struct {
	SOCCode     string `json:"soc_code"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// OnetItem is one element of an O*NET category as fed into an assessment.
type OnetItem struct {
	Name       string   `json:"name"`
	ElementID  string   `json:"element_id,omitempty"`
	Importance *float64 `json:"importance,omitempty"`
	Level      *float64 `json:"level,omitempty"`
}

// ScoreRequest drives one occupation scoring run.
type ScoreRequest struct {
	SOCCode        string                      `json:"soc_code"`
	Title          string                      `json:"title,omitempty"`
	Categories     []OnetCategory              `json:"categories,omitempty"`
	IncludeAgentic bool                        `json:"include_agentic"`
	Items          map[OnetCategory][]OnetItem `json:"items,omitempty"`
	Previous       *AutomationAlert            `json:"previous,omitempty"`
	ChangeReason   string                      `json:"change_reason,omitempty"`
}

// Report bundles the occupation alert with the agentic scores keyed by item name.
type Report struct {
	ID          string                        `json:"id"`
	GeneratedAt time.Time                     `json:"generated_at"`
	Alert       AutomationAlert               `json:"alert"`
	Agentic     map[string]AgenticImpactScore `json:"agentic_impact,omitempty"`
}
