package internal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Aggregate groups contributions by calendar month and produces one
// ProjectionRow per horizon month in chronological order, with no gaps: a
// month no contribution lands in still gets a row with a zero net total.
// A contribution outside the horizon means the expander is broken and is
// reported as ErrOutsideHorizon rather than dropped.
func Aggregate(contribs []Contribution, h Horizon) ([]ProjectionRow, error) {
	if h.Months < 1 {
		return nil, fmt.Errorf("%w: month count must be at least 1, got %d", ErrInvalidHorizon, h.Months)
	}

	months := h.EachMonth()
	buckets := make(map[time.Time]decimal.Decimal, len(months))
	for _, m := range months {
		buckets[m] = decimal.Zero
	}

	for _, c := range contribs {
		m := MonthOf(c.Month)
		total, ok := buckets[m]
		if !ok {
			return nil, fmt.Errorf("%w: %s not in [%s, %s)", ErrOutsideHorizon,
				m.Format(MonthLayout), h.Start.Format(MonthLayout), h.End().Format(MonthLayout))
		}
		buckets[m] = total.Add(c.Amount)
	}

	rows := make([]ProjectionRow, 0, len(months))
	running := decimal.Zero
	for _, m := range months {
		running = running.Add(buckets[m])
		rows = append(rows, ProjectionRow{Month: m, Monthly: buckets[m], Cumulative: running})
	}
	return rows, nil
}

// Project expands events against the horizon and aggregates the result into
// projection rows. It is a pure function of its inputs.
func Project(events []CashEvent, h Horizon, opts ExpandOptions) ([]ProjectionRow, error) {
	contribs, err := Expand(events, h, opts)
	if err != nil {
		return nil, err
	}
	return Aggregate(contribs, h)
}
