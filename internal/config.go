package internal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// ExcludeRule drops matching events before projection. Bounds compare
// against the event's start month: Before excludes only events starting
// before that month, After only events starting at or after it. Events
// without a declared start are matched by unbounded rules only.
type ExcludeRule struct {
	Pattern string `yaml:"pattern"`
	Before  string `yaml:"before,omitempty"` // YYYY-MM
	After   string `yaml:"after,omitempty"`  // YYYY-MM

	// compiled fields
	regex       *regexp.Regexp `yaml:"-"`
	beforeMonth time.Time      `yaml:"-"`
	afterMonth  time.Time      `yaml:"-"`
}

type Config struct {
	// TaxRate is the default tax rate applied to taxable events (the
	// --tax-rate flag overrides it)
	TaxRate *float64 `yaml:"tax_rate,omitempty"`

	// Currency is the display currency code for table and JSON output
	Currency string `yaml:"currency,omitempty"`

	// Exclude is a list of exclusion rules (can be strings or objects with month bounds)
	Exclude []yaml.Node `yaml:"exclude,omitempty"`

	// compiled exclusion rules (not serialized)
	excludeRules []ExcludeRule `yaml:"-"`
}

// DefaultConfigPath returns the default config file path (~/.cashflow-projector/config.yaml)
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cashflow-projector", "config.yaml")
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Parse exclude rules (supports both strings and objects)
	for _, node := range cfg.Exclude {
		var rule ExcludeRule

		if node.Kind == yaml.ScalarNode {
			// Simple string pattern
			rule.Pattern = node.Value
		} else if node.Kind == yaml.MappingNode {
			// Object with pattern and optional month bounds
			if err := node.Decode(&rule); err != nil {
				return nil, fmt.Errorf("parsing exclude rule: %w", err)
			}
		} else {
			return nil, fmt.Errorf("invalid exclude rule format")
		}

		re, err := regexp.Compile("(?i)" + rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", rule.Pattern, err)
		}
		rule.regex = re

		if rule.Before != "" {
			m, err := ParseMonth(rule.Before)
			if err != nil {
				return nil, fmt.Errorf("invalid 'before' month %q: %w", rule.Before, err)
			}
			rule.beforeMonth = m
		}
		if rule.After != "" {
			m, err := ParseMonth(rule.After)
			if err != nil {
				return nil, fmt.Errorf("invalid 'after' month %q: %w", rule.After, err)
			}
			rule.afterMonth = m
		}

		cfg.excludeRules = append(cfg.excludeRules, rule)
	}

	return &cfg, nil
}

// ShouldExclude returns true if the event matches any exclude rule,
// considering month bounds against the event's start month
func (c *Config) ShouldExclude(ev CashEvent) bool {
	if c == nil {
		return false
	}
	for _, rule := range c.excludeRules {
		if !rule.regex.MatchString(ev.Name) {
			continue
		}

		bounded := !rule.beforeMonth.IsZero() || !rule.afterMonth.IsZero()
		if bounded && ev.Start.IsZero() {
			continue // No start month to compare against
		}
		if !rule.beforeMonth.IsZero() && !MonthOf(ev.Start).Before(rule.beforeMonth) {
			continue
		}
		if !rule.afterMonth.IsZero() && MonthOf(ev.Start).Before(rule.afterMonth) {
			continue
		}

		return true
	}
	return false
}

// FilterEvents drops excluded events, warning on w for each one. The core
// never skips rows silently; this is loader policy applied before
// projection.
func (c *Config) FilterEvents(events []CashEvent, w io.Writer) []CashEvent {
	if c == nil || len(c.excludeRules) == 0 {
		return events
	}
	result := make([]CashEvent, 0, len(events))
	for _, ev := range events {
		if c.ShouldExclude(ev) {
			fmt.Fprintf(w, "Warning: excluding event %q (matched exclude rule)\n", ev.Name)
			continue
		}
		result = append(result, ev)
	}
	return result
}
