package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// SimpleJSONFormat is a minimal JSON format for importing cash events
// Example:
//
//	{
//	  "events": [
//	    {"name": "Salary", "amount": 4200, "recurrence": "monthly", "type": "income", "taxable": true},
//	    {"name": "New laptop", "amount": -1800, "recurrence": "once", "start": "2026-11"}
//	  ]
//	}
//
// This format is easy to convert to from any budgeting tool or data source.
type SimpleJSONFormat struct {
	Events []SimpleJSONEvent `json:"events"`
}

type SimpleJSONEvent struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`     // Signed; sign is overridden when a type is given
	Recurrence string          `json:"recurrence"` // once, daily, weekly, biweekly, monthly, quarterly, yearly
	Type       string          `json:"type,omitempty"`
	Taxable    bool            `json:"taxable,omitempty"`
	Start      string          `json:"start,omitempty"` // YYYY-MM
}

// ParseSimpleJSON parses a JSON file in the simple JSON format
func ParseSimpleJSON(path string) ([]CashEvent, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var jsonData SimpleJSONFormat
	if err := json.Unmarshal(data, &jsonData); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	var events []CashEvent
	for i, je := range jsonData.Events {
		recurrence, err := ParseRecurrence(je.Recurrence)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}

		ev := CashEvent{
			Name:       je.Name,
			Amount:     je.Amount,
			Recurrence: recurrence,
			Type:       Other,
			Taxable:    je.Taxable,
		}

		if je.Type != "" {
			typ, err := ParseEventType(je.Type)
			if err != nil {
				return nil, fmt.Errorf("event %d: %w", i, err)
			}
			ev.Type = typ
			if typ == Income {
				ev.Amount = ev.Amount.Abs()
			} else {
				ev.Amount = ev.Amount.Abs().Neg()
			}
		}

		if je.Start != "" {
			m, err := ParseMonth(je.Start)
			if err != nil {
				return nil, fmt.Errorf("%w: event %d: %v", ErrInvalidEvent, i, err)
			}
			ev.Start = m
		}

		events = append(events, ev)
	}

	return events, nil
}

func init() {
	RegisterParser("simple-json", ParserFunc(ParseSimpleJSON))
}
