package internal

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ParseXLSX reads cash events from the first sheet of an Excel workbook.
// The header row is discovered by scanning for the same column names the
// CSV loader accepts, so exports with leading title rows still work.
func ParseXLSX(path string) ([]CashEvent, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in file")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet: %w", err)
	}

	// Find the header row
	var cols columns
	dataStart := -1
	for i, row := range rows {
		c, err := mapColumns(row)
		if err == nil {
			cols = c
			dataStart = i + 1
			break
		}
	}
	if dataStart < 0 {
		return nil, fmt.Errorf("%w: missing required columns (need name, amount, frequency)", ErrInvalidEvent)
	}

	var events []CashEvent
	for i := dataStart; i < len(rows); i++ {
		row := rows[i]
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
			line:      i + 1,
		}
		ev, err := buildEvent(raw)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}
