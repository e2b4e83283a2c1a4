package onet

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
)

// wrapperKeys are the keys O*NET uses to wrap element lists, in lookup order.
var wrapperKeys = []string{
	"task", "skill", "knowledge", "ability",
	"work_activity", "detailed_work_activity",
	"technology_skill", "work_context", "work_style",
	"work_value", "interest", "job_zone", "education",
	"element", "category",
}

var errNoElements = errors.New("response carries no element list")

// unwrapElements finds the element list in a category response. A wrapper
// holding a single object is treated as a one-element list; without a known
// wrapper the first list-valued key (in key order) wins.
func unwrapElements(payload map[string]json.RawMessage) ([]map[string]any, error) {
	for _, key := range wrapperKeys {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		return decodeElements(raw)
	}

	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		raw := payload[key]
		if trimmed := strings.TrimSpace(string(raw)); strings.HasPrefix(trimmed, "[") {
			return decodeElements(raw)
		}
	}
	if len(payload) == 0 {
		return nil, nil
	}
	return nil, errNoElements
}

func decodeElements(raw json.RawMessage) ([]map[string]any, error) {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		var single map[string]any
		if err := json.Unmarshal(raw, &single); err != nil {
			return nil, err
		}
		return []map[string]any{single}, nil
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		var element map[string]any
		if err := json.Unmarshal(entry, &element); err != nil {
			// scalar entries such as education levels
			var scalar any
			if err := json.Unmarshal(entry, &scalar); err != nil {
				return nil, err
			}
			element = map[string]any{"name": scalar}
		}
		out = append(out, element)
	}
	return out, nil
}

func toItems(elements []map[string]any) []domain.OnetItem {
	items := make([]domain.OnetItem, 0, len(elements))
	for _, element := range elements {
		item := domain.OnetItem{
			Name:      elementName(element),
			ElementID: firstString(element, "id", "element_id"),
		}
		if item.Name == "" {
			continue
		}
		if score, ok := element["score"].(map[string]any); ok {
			if value, ok := score["value"].(float64); ok {
				scale, _ := score["scale"].(string)
				if strings.Contains(strings.ToLower(scale), "level") {
					item.Level = &value
				} else {
					item.Importance = &value
				}
			}
		}
		items = append(items, item)
	}
	return items
}

func elementName(element map[string]any) string {
	if name := firstString(element, "name", "title", "description", "statement"); name != "" {
		return name
	}
	if len(element) == 0 {
		return ""
	}
	raw, err := json.Marshal(element)
	if err != nil {
		return ""
	}
	return string(raw)
}

// firstString returns the first non-empty value among keys. Nested objects
// contribute their own name or title, numbers are formatted.
func firstString(element map[string]any, keys ...string) string {
	for _, key := range keys {
		switch value := element[key].(type) {
		case string:
			if s := strings.TrimSpace(value); s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(value, 'f', -1, 64)
		case map[string]any:
			if s := firstString(value, "name", "title"); s != "" {
				return s
			}
		}
	}
	return ""
}
