package internal

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Parser loads cash event files into a list of events
type Parser interface {
	Parse(path string) ([]CashEvent, error)
}

// ParserFunc is a function that implements Parser
type ParserFunc func(path string) ([]CashEvent, error)

func (f ParserFunc) Parse(path string) ([]CashEvent, error) {
	return f(path)
}

// parsers is the registry of available parsers
var parsers = map[string]Parser{}

// RegisterParser registers a parser with the given name
func RegisterParser(name string, p Parser) {
	parsers[name] = p
}

// GetParser returns the parser for the given source type
func GetParser(source string) (Parser, error) {
	p, ok := parsers[source]
	if !ok {
		return nil, fmt.Errorf("unknown source type: %s (available: %v)", source, AvailableSources())
	}
	return p, nil
}

// AvailableSources returns a list of registered source types
func AvailableSources() []string {
	var sources []string
	for name := range parsers {
		sources = append(sources, name)
	}
	return sources
}

// IsKnownParser returns true if the name is a registered parser
func IsKnownParser(name string) bool {
	_, ok := parsers[name]
	return ok
}

// ParseFileArg parses a file argument that may have a format prefix.
// Returns (format, path). If no valid prefix, format is empty.
// Example: "simple-json:events.json" → ("simple-json", "events.json")
// Example: "events.csv" → ("", "events.csv")
// Example: "C:\path\events.xlsx" → ("", "C:\path\events.xlsx") // Windows path
func ParseFileArg(arg string) (format, path string) {
	idx := strings.Index(arg, ":")
	if idx == -1 {
		return "", arg
	}
	prefix := arg[:idx]
	if IsKnownParser(prefix) {
		return prefix, arg[idx+1:]
	}
	return "", arg // Not a known parser, treat whole thing as path
}

// rawEvent is one tabular record before any interpretation. Loaders fill it
// from their source cells; buildEvent does the rest.
type rawEvent struct {
	name      string
	amount    string
	frequency string
	typ       string // empty when the source has no type column
	taxable   string
	start     string // YYYY-MM, empty when the source has no start column
	line      int
}

// buildEvent constructs a CashEvent from a raw record. When a type is
// declared, the sign convention applies: income counts positive, everything
// else negative, regardless of the declared sign. Without a type the
// declared sign stands.
func buildEvent(raw rawEvent) (CashEvent, error) {
	amountStr := strings.ReplaceAll(strings.TrimSpace(raw.amount), ",", ".")
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return CashEvent{}, fmt.Errorf("%w: row %d: bad amount %q", ErrInvalidEvent, raw.line, raw.amount)
	}

	recurrence, start, err := parseFrequencyCell(raw.frequency)
	if err != nil {
		return CashEvent{}, fmt.Errorf("row %d: %w", raw.line, err)
	}

	typ := Other
	if strings.TrimSpace(raw.typ) != "" {
		typ, err = ParseEventType(raw.typ)
		if err != nil {
			return CashEvent{}, fmt.Errorf("row %d: %w", raw.line, err)
		}
		if typ == Income {
			amount = amount.Abs()
		} else {
			amount = amount.Abs().Neg()
		}
	}

	taxable := false
	if s := strings.TrimSpace(raw.taxable); s != "" {
		taxable, err = strconv.ParseBool(s)
		if err != nil {
			return CashEvent{}, fmt.Errorf("%w: row %d: bad taxable flag %q", ErrInvalidEvent, raw.line, raw.taxable)
		}
	}

	// A dedicated start column wins over a date embedded in the frequency cell
	if s := strings.TrimSpace(raw.start); s != "" {
		m, err := ParseMonth(s)
		if err != nil {
			return CashEvent{}, fmt.Errorf("%w: row %d: %v", ErrInvalidEvent, raw.line, err)
		}
		start = m
	}

	return CashEvent{
		Name:       strings.TrimSpace(raw.name),
		Amount:     amount,
		Recurrence: recurrence,
		Type:       typ,
		Taxable:    taxable,
		Start:      start,
	}, nil
}

// parseFrequencyCell parses a frequency cell, which may embed a one-off
// date: "once(2023-12-01)" → (OneOff, 2023-12).
func parseFrequencyCell(s string) (Recurrence, time.Time, error) {
	name, rest, hasDate := strings.Cut(strings.TrimSpace(s), "(")
	recurrence, err := ParseRecurrence(name)
	if err != nil {
		return 0, time.Time{}, err
	}
	if !hasDate {
		return recurrence, time.Time{}, nil
	}

	dateStr, ok := strings.CutSuffix(rest, ")")
	if !ok {
		return 0, time.Time{}, fmt.Errorf("%w: malformed frequency %q", ErrInvalidEvent, s)
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("%w: bad date in frequency %q", ErrInvalidEvent, s)
	}
	return recurrence, MonthOf(date), nil
}

func init() {
	// Register built-in parsers
	RegisterParser("csv", ParserFunc(ParseCSV))
	RegisterParser("xlsx", ParserFunc(ParseXLSX))
}
