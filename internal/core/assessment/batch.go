package assessment

import (
	"encoding/json"
	"fmt"

	"github.com/BenLYNC/AI-Automation-Alert/internal/core/agentic"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/domain"
	"github.com/BenLYNC/AI-Automation-Alert/internal/core/scoring"
)

// Rejection records why one element of a batch was skipped.
type Rejection struct {
	Index    int    `json:"index"`
	ItemName string `json:"item_name,omitempty"`
	Reason   string `json:"reason"`
}

func (r Rejection) Error() string {
	if r.ItemName == "" {
		return fmt.Sprintf("record %d: %s", r.Index, r.Reason)
	}
	return fmt.Sprintf("record %d (%s): %s", r.Index, r.ItemName, r.Reason)
}

// itemName recovers the item name of an element that failed to decode, if any.
func itemName(raw json.RawMessage) string {
	var probe struct {
		ItemName string `json:"item_name"`
	}
	_ = json.Unmarshal(raw, &probe)
	return probe.ItemName
}

func decodeElement(raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return malformed("decode record: %v", err)
	}
	return nil
}

// DecodeBaseBatch converts every element it can. A bad element becomes a
// Rejection and never stops the rest of the batch.
func DecodeBaseBatch(category domain.OnetCategory, elements []json.RawMessage) ([]scoring.ItemInput, []Rejection) {
	inputs := make([]scoring.ItemInput, 0, len(elements))
	var rejected []Rejection
	for i, raw := range elements {
		var record BaseRecord
		err := decodeElement(raw, &record)
		var in scoring.ItemInput
		if err == nil {
			in, err = record.ToItemInput(category)
		}
		if err != nil {
			rejected = append(rejected, Rejection{Index: i, ItemName: itemName(raw), Reason: err.Error()})
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs, rejected
}

// DecodeAgenticBatch is DecodeBaseBatch for agentic records.
func DecodeAgenticBatch(category domain.OnetCategory, elements []json.RawMessage) ([]agentic.Input, []Rejection) {
	inputs := make([]agentic.Input, 0, len(elements))
	var rejected []Rejection
	for i, raw := range elements {
		var record AgenticRecord
		err := decodeElement(raw, &record)
		var in agentic.Input
		if err == nil {
			in, err = record.ToInput(category)
		}
		if err != nil {
			rejected = append(rejected, Rejection{Index: i, ItemName: itemName(raw), Reason: err.Error()})
			continue
		}
		inputs = append(inputs, in)
	}
	return inputs, rejected
}
