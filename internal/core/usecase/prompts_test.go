package usecase

import (
	"strings"
	"testing"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

func TestBuildBasePrompt(t *testing.T) {
	items := []domain.OnetItem{{Name: "Negotiation", Importance: ptr(3.9)}}
	prompt := buildBasePrompt("41-9022.00", "Real Estate Sales Agents", domain.CategorySkills, items)

	for _, want := range []string{
		"CATEGORY CONTEXT: These are skills required",
		`Score the following Skills items for the occupation "Real Estate Sales Agents" (SOC: 41-9022.00)`,
		`"name": "Negotiation"`,
		`"importance": 3.9`,
	} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestBuildBasePromptWithoutContext(t *testing.T) {
	prompt := buildBasePrompt("41-9022.00", "Agents", domain.CategoryWorkValues, []domain.OnetItem{{Name: "Achievement"}})
	if strings.HasPrefix(prompt, "CATEGORY CONTEXT") {
		t.Fatalf("unexpected category context for work values")
	}
	if !strings.Contains(prompt, "Work Values items") {
		t.Fatalf("expected title-cased category label")
	}
}

func TestBuildAgenticPromptOmitsImportance(t *testing.T) {
	items := []domain.OnetItem{{Name: "Negotiation", Importance: ptr(3.9)}}
	prompt := buildAgenticPrompt("41-9022.00", "Agents", domain.CategoryTasks, items)
	if strings.Contains(prompt, "importance") {
		t.Fatalf("agentic prompt should not carry importance")
	}
	if !strings.Contains(prompt, "All 7 workflow units (W1-W7)") {
		t.Fatalf("expected workflow unit instructions")
	}
}
