package internal

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Monthly-equivalent factors for sub-monthly and super-monthly recurrences.
var (
	daysPerMonth     = decimal.NewFromInt(30)
	weeksPerMonth    = decimal.NewFromFloat(4.5)
	biweeksPerMonth  = decimal.NewFromFloat(2.25)
	monthsPerQuarter = decimal.NewFromInt(3)
	monthsPerYear    = decimal.NewFromInt(12)
	one              = decimal.NewFromInt(1)
)

// ExpandOptions tunes event expansion.
type ExpandOptions struct {
	// TaxRate is deducted from taxable event amounts (0.25 keeps 75%).
	// A zero rate leaves amounts untouched.
	TaxRate decimal.Decimal
}

// Expand turns declared cash events into concrete per-month contributions,
// clipped to the horizon. A one-off contributes once, in its start month,
// if that month lies inside the horizon. A recurring event contributes its
// monthly-equivalent amount to every horizon month at or after its start;
// an event with no declared start is active for the whole horizon.
//
// Emission order is unspecified; Aggregate re-buckets by month.
func Expand(events []CashEvent, h Horizon, opts ExpandOptions) ([]Contribution, error) {
	if h.Months < 1 {
		return nil, fmt.Errorf("%w: month count must be at least 1, got %d", ErrInvalidHorizon, h.Months)
	}

	var out []Contribution
	for _, ev := range events {
		amount := ev.Amount
		if ev.Taxable && !opts.TaxRate.IsZero() {
			amount = amount.Mul(one.Sub(opts.TaxRate))
		}

		switch ev.Recurrence {
		case OneOff:
			if ev.Start.IsZero() {
				continue // one-off without a date never lands anywhere
			}
			m := MonthOf(ev.Start)
			if h.Contains(m) {
				out = append(out, Contribution{Month: m, Amount: amount})
			}
		case Daily, Weekly, BiWeekly, Monthly, Quarterly, Yearly:
			monthly := monthlyEquivalent(ev.Recurrence, amount)
			for _, m := range h.EachMonth() {
				if !ev.Start.IsZero() && m.Before(MonthOf(ev.Start)) {
					continue
				}
				out = append(out, Contribution{Month: m, Amount: monthly})
			}
		default:
			return nil, fmt.Errorf("%w: %q has unknown recurrence %d", ErrInvalidEvent, ev.Name, int(ev.Recurrence))
		}
	}
	return out, nil
}

// monthlyEquivalent converts a per-occurrence amount into what it adds to a
// single calendar month.
func monthlyEquivalent(r Recurrence, amount decimal.Decimal) decimal.Decimal {
	switch r {
	case Daily:
		return amount.Mul(daysPerMonth)
	case Weekly:
		return amount.Mul(weeksPerMonth)
	case BiWeekly:
		return amount.Mul(biweeksPerMonth)
	case Quarterly:
		return amount.Div(monthsPerQuarter)
	case Yearly:
		return amount.Div(monthsPerYear)
	default: // Monthly; OneOff never reaches here
		return amount
	}
}
