package internal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidHorizon signals a horizon the projection refuses to run with
	// (month count below 1, unparseable start month).
	ErrInvalidHorizon = errors.New("invalid horizon")

	// ErrInvalidEvent signals a cash event that could not be constructed from
	// its input record (unknown recurrence or type, unparseable amount or date).
	ErrInvalidEvent = errors.New("invalid cash event")

	// ErrOutsideHorizon signals a contribution landing outside the requested
	// horizon. The expander clips everything to the horizon, so hitting this
	// is a programming error, not bad input.
	ErrOutsideHorizon = errors.New("contribution outside horizon")
)

// Recurrence is how often a cash event occurs.
type Recurrence int

const (
	OneOff Recurrence = iota
	Daily
	Weekly
	BiWeekly
	Monthly
	Quarterly
	Yearly
)

// ParseRecurrence parses a recurrence name. It accepts the short and long
// spellings used in event files: "1"/"once"/"onetime", "d"/"day"/"daily",
// "w"/"week"/"weekly", "biweekly", "m"/"month"/"monthly",
// "quarter"/"quarterly", "y"/"year"/"yearly".
func ParseRecurrence(s string) (Recurrence, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "once", "onetime":
		return OneOff, nil
	case "d", "day", "daily":
		return Daily, nil
	case "w", "week", "weekly":
		return Weekly, nil
	case "biweekly":
		return BiWeekly, nil
	case "m", "month", "monthly":
		return Monthly, nil
	case "quarter", "quarterly":
		return Quarterly, nil
	case "y", "year", "yearly":
		return Yearly, nil
	default:
		return 0, fmt.Errorf("%w: unknown recurrence %q", ErrInvalidEvent, s)
	}
}

func (r Recurrence) String() string {
	switch r {
	case OneOff:
		return "one-off"
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case BiWeekly:
		return "biweekly"
	case Monthly:
		return "monthly"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "yearly"
	default:
		return fmt.Sprintf("recurrence(%d)", int(r))
	}
}

// EventType categorizes a cash event. The type drives the sign convention
// in loaders: Income counts as an inflow, everything else as an outflow.
type EventType int

const (
	Bill EventType = iota
	Income
	Investment
	Subscription
	Other
)

func ParseEventType(s string) (EventType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bill":
		return Bill, nil
	case "income":
		return Income, nil
	case "investment":
		return Investment, nil
	case "sub", "subscription":
		return Subscription, nil
	case "other":
		return Other, nil
	default:
		return 0, fmt.Errorf("%w: unknown event type %q", ErrInvalidEvent, s)
	}
}

func (t EventType) String() string {
	switch t {
	case Bill:
		return "bill"
	case Income:
		return "income"
	case Investment:
		return "investment"
	case Subscription:
		return "subscription"
	case Other:
		return "other"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

// CashEvent is one declared financial event. Amounts are signed: positive
// for inflows, negative for outflows. Start is the first calendar month the
// event applies; a zero Start means a recurring event has always been
// active, and a one-off with no date never contributes. Events are built
// once by a loader and never mutated.
type CashEvent struct {
	Name       string
	Amount     decimal.Decimal
	Recurrence Recurrence
	Type       EventType
	Taxable    bool
	Start      time.Time
}

// Contribution is a single (month, amount) pairing produced by expanding
// one event against a horizon.
type Contribution struct {
	Month  time.Time
	Amount decimal.Decimal
}

// ProjectionRow is one line of projection output: the month's net total and
// the running balance from the horizon's first month through this one.
type ProjectionRow struct {
	Month      time.Time
	Monthly    decimal.Decimal
	Cumulative decimal.Decimal
}
