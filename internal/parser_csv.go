package internal

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// ParseCSV reads cash events from a CSV file with a header row. Recognized
// columns (case-insensitive): name, usd/amount, frequency/recurrence, type,
// is_taxable/taxable, start. Name, amount and frequency are required; the
// rest are optional. One-off dates may be embedded in the frequency cell
// ("once(2023-12-01)") or given as YYYY-MM in the start column.
func ParseCSV(path string) ([]CashEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidEvent)
	}

	cols, err := mapColumns(records[0])
	if err != nil {
		return nil, err
	}

	var events []CashEvent
	for i, row := range records[1:] {
		if isBlankRow(row) {
			continue
		}
		raw := rawEvent{
			name:      cols.cell(row, cols.name),
			amount:    cols.cell(row, cols.amount),
			frequency: cols.cell(row, cols.frequency),
			typ:       cols.cell(row, cols.typ),
			taxable:   cols.cell(row, cols.taxable),
			start:     cols.cell(row, cols.start),
			line:      i + 2, // 1-based, after the header
		}
		ev, err := buildEvent(raw)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// columns holds the index of each recognized column, -1 when absent.
type columns struct {
	name, amount, frequency, typ, taxable, start int
}

func (c columns) cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func mapColumns(header []string) (columns, error) {
	cols := columns{name: -1, amount: -1, frequency: -1, typ: -1, taxable: -1, start: -1}
	for i, cell := range header {
		switch strings.ToLower(strings.TrimSpace(cell)) {
		case "name", "label":
			cols.name = i
		case "usd", "amount":
			cols.amount = i
		case "frequency", "recurrence":
			cols.frequency = i
		case "type":
			cols.typ = i
		case "is_taxable", "taxable":
			cols.taxable = i
		case "start", "start_month":
			cols.start = i
		}
	}
	if cols.name < 0 || cols.amount < 0 || cols.frequency < 0 {
		return columns{}, fmt.Errorf("%w: missing required columns (need name, amount, frequency)", ErrInvalidEvent)
	}
	return cols, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
