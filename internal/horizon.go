package internal

import (
	"fmt"
	"time"
)

// MonthLayout is the format for calendar months in flags, event files and
// output.
const MonthLayout = "2006-01"

// MonthOf truncates a time to its calendar month (first day, midnight UTC).
// All month bucketing and comparison goes through this so that times from
// different sources land on the same key.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// ParseMonth parses a YYYY-MM month.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing month %q: %w", s, err)
	}
	return t, nil
}

// Horizon is the contiguous range of calendar months being projected.
type Horizon struct {
	Start  time.Time
	Months int
}

// NewHorizon builds a horizon starting at the month containing start,
// spanning months calendar months. A count below 1 or a zero start is
// rejected with ErrInvalidHorizon.
func NewHorizon(start time.Time, months int) (Horizon, error) {
	if months < 1 {
		return Horizon{}, fmt.Errorf("%w: month count must be at least 1, got %d", ErrInvalidHorizon, months)
	}
	if start.IsZero() {
		return Horizon{}, fmt.Errorf("%w: missing start month", ErrInvalidHorizon)
	}
	return Horizon{Start: MonthOf(start), Months: months}, nil
}

// End returns the first month after the horizon (exclusive upper bound).
func (h Horizon) End() time.Time {
	return h.Start.AddDate(0, h.Months, 0)
}

// Contains reports whether the month containing m falls inside the horizon.
func (h Horizon) Contains(m time.Time) bool {
	m = MonthOf(m)
	return !m.Before(h.Start) && m.Before(h.End())
}

// EachMonth returns the horizon's months in chronological order.
func (h Horizon) EachMonth() []time.Time {
	months := make([]time.Time, 0, h.Months)
	for m := h.Start; m.Before(h.End()); m = m.AddDate(0, 1, 0) {
		months = append(months, m)
	}
	return months
}
