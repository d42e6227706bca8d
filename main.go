package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/shopspring/decimal"

	"github.com/gigurra/cashflow-projector/internal"
)

const defaultTaxRate = 0.169

type Params struct {
	File     string  `descr:"Path to the cash events file, optionally prefixed with a format (e.g. simple-json:events.json)" positional:"true"`
	Months   int     `short:"m" default:"12" descr:"Number of months to project"`
	Start    string  `short:"s" optional:"true" descr:"First month of the projection (YYYY-MM), defaults to the current month"`
	TaxRate  float64 `short:"t" default:"-1" descr:"Tax rate applied to taxable events (overrides config, default 0.169)"`
	Output   string  `short:"o" default:"plain" alts:"plain,table,json" strict:"true" descr:"Output format"`
	Currency string  `short:"c" optional:"true" descr:"Currency code for table/json output (detected from system locale by default)"`
	Config   string  `optional:"true" descr:"Path to the config file"`
	Verbose  bool    `short:"v" descr:"Print parsed events before projecting"`
}

func main() {
	boa.NewCmdT[Params]("cashflow-projector").
		WithShort("Project future cash balances from one-off and recurring cash events").
		WithLong("Expands declared cash events (salary, bills, subscriptions, one-off purchases) into monthly contributions over a horizon and prints per-month net amounts with a running balance.").
		WithRunFunc(run).
		Run()
}

func run(params *Params) {
	cfg := loadConfig(params.Config)

	format, path := internal.ParseFileArg(params.File)
	if format == "" {
		format = formatFromExtension(path)
	}
	parser, err := internal.GetParser(format)
	if err != nil {
		fatal("Error: %v\n", err)
	}

	events, err := parser.Parse(path)
	if err != nil {
		fatal("Error parsing %s: %v\n", path, err)
	}
	events = cfg.FilterEvents(events, os.Stderr)

	if params.Verbose {
		for _, ev := range events {
			start := "-"
			if !ev.Start.IsZero() {
				start = ev.Start.Format(internal.MonthLayout)
			}
			fmt.Printf("%-25s  %10s  %-9s  %-12s  taxable=%-5v  start=%s\n",
				ev.Name, ev.Amount.StringFixed(2), ev.Recurrence, ev.Type, ev.Taxable, start)
		}
		fmt.Println()
	}

	start := internal.MonthOf(time.Now())
	if params.Start != "" {
		start, err = internal.ParseMonth(params.Start)
		if err != nil {
			fatal("Error: %v\n", err)
		}
	}
	horizon, err := internal.NewHorizon(start, params.Months)
	if err != nil {
		fatal("Error: %v\n", err)
	}

	opts := internal.ExpandOptions{TaxRate: decimal.NewFromFloat(resolveTaxRate(params, cfg))}
	rows, err := internal.Project(events, horizon, opts)
	if err != nil {
		fatal("Error: %v\n", err)
	}

	switch params.Output {
	case "json":
		internal.PrintProjectionJSON(os.Stdout, rows, resolveCurrency(params, cfg))
	case "table":
		internal.PrintProjectionTable(os.Stdout, rows, resolveCurrency(params, cfg))
	default:
		internal.PrintProjectionPlain(os.Stdout, rows)
	}
}

// loadConfig loads the config from the given path, or from the default
// location if it exists. Missing default config is fine; an explicit
// --config that fails to load is not.
func loadConfig(path string) *internal.Config {
	if path != "" {
		cfg, err := internal.LoadConfig(path)
		if err != nil {
			fatal("Error: %v\n", err)
		}
		return cfg
	}
	defPath := internal.DefaultConfigPath()
	if defPath == "" {
		return nil
	}
	if _, err := os.Stat(defPath); err != nil {
		return nil
	}
	cfg, err := internal.LoadConfig(defPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring config %s: %v\n", defPath, err)
		return nil
	}
	return cfg
}

// resolveTaxRate: flag > config > built-in default. The flag's -1 default
// means "not set".
func resolveTaxRate(params *Params, cfg *internal.Config) float64 {
	if params.TaxRate >= 0 {
		return params.TaxRate
	}
	if cfg != nil && cfg.TaxRate != nil {
		return *cfg.TaxRate
	}
	return defaultTaxRate
}

// resolveCurrency: flag > config > system locale detection > USD.
func resolveCurrency(params *Params, cfg *internal.Config) internal.Currency {
	code := params.Currency
	if code == "" && cfg != nil {
		code = cfg.Currency
	}
	if code == "" || strings.EqualFold(code, "auto") {
		code = internal.DetectSystemCurrency()
	}
	if code == "" {
		code = "USD"
	}
	return internal.GetCurrency(code)
}

func formatFromExtension(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return "xlsx"
	case ".json":
		return "simple-json"
	default:
		return "csv"
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}
