// Package assessment turns raw model output into validated engine inputs.
package assessment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

// ExtractJSONArray pulls the outermost JSON array out of a model response,
// tolerating markdown code fences and surrounding prose.
func ExtractJSONArray(text string) ([]json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```") {
		lines := strings.Split(text, "\n")
		kept := lines[:0]
		for _, line := range lines {
			if !strings.HasPrefix(strings.TrimSpace(line), "```") {
				kept = append(kept, line)
			}
		}
		text = strings.Join(kept, "\n")
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("%w: no JSON array found in response: %s", domain.ErrMalformedAssessment, preview(text))
	}

	var elements []json.RawMessage
	if err := json.Unmarshal([]byte(text[start:end+1]), &elements); err != nil {
		return nil, fmt.Errorf("%w: decode JSON array: %w", domain.ErrMalformedAssessment, err)
	}
	if elements == nil {
		elements = []json.RawMessage{}
	}
	return elements, nil
}

func preview(text string) string {
	const limit = 200
	if len(text) > limit {
		return text[:limit]
	}
	return text
}
