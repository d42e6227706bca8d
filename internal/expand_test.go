package internal

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func month(s string) time.Time {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func horizon(t *testing.T, start string, months int) Horizon {
	t.Helper()
	h, err := NewHorizon(month(start), months)
	if err != nil {
		t.Fatalf("NewHorizon: %v", err)
	}
	return h
}

func TestExpandOneOffClipping(t *testing.T) {
	tests := []struct {
		name      string
		start     string // empty = no declared start
		wantCount int
		wantMonth string
	}{
		{"before horizon", "2022-03", 0, ""},
		{"at horizon start", "2023-01", 1, "2023-01"},
		{"inside horizon", "2023-04", 1, "2023-04"},
		{"at horizon last month", "2023-06", 1, "2023-06"},
		{"after horizon end", "2023-07", 0, ""},
		{"no declared date", "", 0, ""},
	}

	h := horizon(t, "2023-01", 6)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := CashEvent{Name: "x", Amount: dec("100"), Recurrence: OneOff}
			if tt.start != "" {
				ev.Start = month(tt.start)
			}
			contribs, err := Expand([]CashEvent{ev}, h, ExpandOptions{})
			if err != nil {
				t.Fatalf("Expand: %v", err)
			}
			if len(contribs) != tt.wantCount {
				t.Fatalf("expected %d contributions, got %d", tt.wantCount, len(contribs))
			}
			if tt.wantCount == 1 {
				if !contribs[0].Month.Equal(month(tt.wantMonth)) {
					t.Errorf("month = %s, want %s", contribs[0].Month.Format(MonthLayout), tt.wantMonth)
				}
				if !contribs[0].Amount.Equal(dec("100")) {
					t.Errorf("amount = %s, want 100", contribs[0].Amount)
				}
			}
		})
	}
}

func TestExpandMonthlyRecurrence(t *testing.T) {
	tests := []struct {
		name       string
		start      string
		wantMonths []string
	}{
		{"starts before horizon", "2020-01", []string{"2023-01", "2023-02", "2023-03"}},
		{"starts at horizon start", "2023-01", []string{"2023-01", "2023-02", "2023-03"}},
		{"starts mid-horizon", "2023-02", []string{"2023-02", "2023-03"}},
		{"starts after horizon end", "2024-01", nil},
		{"no declared start", "", []string{"2023-01", "2023-02", "2023-03"}},
	}

	h := horizon(t, "2023-01", 3)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := CashEvent{Name: "rent", Amount: dec("-950"), Recurrence: Monthly}
			if tt.start != "" {
				ev.Start = month(tt.start)
			}
			contribs, err := Expand([]CashEvent{ev}, h, ExpandOptions{})
			if err != nil {
				t.Fatalf("Expand: %v", err)
			}
			if len(contribs) != len(tt.wantMonths) {
				t.Fatalf("expected %d contributions, got %d", len(tt.wantMonths), len(contribs))
			}
			for i, want := range tt.wantMonths {
				if !contribs[i].Month.Equal(month(want)) {
					t.Errorf("contribution %d: month = %s, want %s", i, contribs[i].Month.Format(MonthLayout), want)
				}
				if !contribs[i].Amount.Equal(dec("-950")) {
					t.Errorf("contribution %d: amount = %s, want -950", i, contribs[i].Amount)
				}
			}
		})
	}
}

func TestExpandMonthlyEquivalents(t *testing.T) {
	tests := []struct {
		name       string
		recurrence Recurrence
		amount     string
		want       string
	}{
		{"daily times 30", Daily, "10", "300"},
		{"weekly times 4.5", Weekly, "10", "45"},
		{"biweekly times 2.25", BiWeekly, "10", "22.5"},
		{"monthly unchanged", Monthly, "10", "10"},
		{"quarterly divided by 3", Quarterly, "30", "10"},
		{"yearly divided by 12", Yearly, "120", "10"},
	}

	h := horizon(t, "2023-01", 1)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := CashEvent{Name: "x", Amount: dec(tt.amount), Recurrence: tt.recurrence}
			contribs, err := Expand([]CashEvent{ev}, h, ExpandOptions{})
			if err != nil {
				t.Fatalf("Expand: %v", err)
			}
			if len(contribs) != 1 {
				t.Fatalf("expected 1 contribution, got %d", len(contribs))
			}
			if !contribs[0].Amount.Equal(dec(tt.want)) {
				t.Errorf("amount = %s, want %s", contribs[0].Amount, tt.want)
			}
		})
	}
}

func TestExpandTaxRate(t *testing.T) {
	h := horizon(t, "2023-01", 1)
	events := []CashEvent{
		{Name: "salary", Amount: dec("1000"), Recurrence: Monthly, Taxable: true},
		{Name: "rent", Amount: dec("-500"), Recurrence: Monthly},
	}

	contribs, err := Expand(events, h, ExpandOptions{TaxRate: dec("0.25")})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if len(contribs) != 2 {
		t.Fatalf("expected 2 contributions, got %d", len(contribs))
	}
	if !contribs[0].Amount.Equal(dec("750")) {
		t.Errorf("taxable amount = %s, want 750", contribs[0].Amount)
	}
	if !contribs[1].Amount.Equal(dec("-500")) {
		t.Errorf("non-taxable amount = %s, want -500", contribs[1].Amount)
	}

	// Zero rate leaves taxable events untouched
	contribs, err = Expand(events, h, ExpandOptions{})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if !contribs[0].Amount.Equal(dec("1000")) {
		t.Errorf("amount with zero rate = %s, want 1000", contribs[0].Amount)
	}
}

func TestExpandInvalidHorizon(t *testing.T) {
	for _, months := range []int{0, -3} {
		_, err := Expand(nil, Horizon{Start: month("2023-01"), Months: months}, ExpandOptions{})
		if !errors.Is(err, ErrInvalidHorizon) {
			t.Errorf("months=%d: expected ErrInvalidHorizon, got %v", months, err)
		}
	}
}

func TestNewHorizonValidation(t *testing.T) {
	if _, err := NewHorizon(month("2023-01"), 0); !errors.Is(err, ErrInvalidHorizon) {
		t.Errorf("expected ErrInvalidHorizon for zero months, got %v", err)
	}
	if _, err := NewHorizon(time.Time{}, 12); !errors.Is(err, ErrInvalidHorizon) {
		t.Errorf("expected ErrInvalidHorizon for zero start, got %v", err)
	}

	// Start dates are truncated to their month
	h, err := NewHorizon(time.Date(2023, 7, 19, 14, 30, 0, 0, time.UTC), 2)
	if err != nil {
		t.Fatalf("NewHorizon: %v", err)
	}
	if !h.Start.Equal(month("2023-07")) {
		t.Errorf("start = %s, want 2023-07", h.Start.Format(MonthLayout))
	}
	if !h.End().Equal(month("2023-09")) {
		t.Errorf("end = %s, want 2023-09", h.End().Format(MonthLayout))
	}
}
