package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// PrintProjectionPlain writes rows in the classic ledger format, one per
// month, two-decimal fixed and right-aligned:
//
//	2023-07:    7192.33  ==>     7192.33
func PrintProjectionPlain(w io.Writer, rows []ProjectionRow) {
	for _, row := range rows {
		fmt.Fprintf(w, "%s:\t%10s\t==>\t%10s\n",
			row.Month.Format(MonthLayout),
			row.Monthly.StringFixed(2),
			row.Cumulative.StringFixed(2))
	}
}

// JSONOutput is the root JSON output object
type JSONOutput struct {
	Rows    []JSONRow   `json:"rows"`
	Summary JSONSummary `json:"summary"`
}

// JSONRow is the JSON output format for one projected month
type JSONRow struct {
	Month   string  `json:"month"`
	Net     float64 `json:"net"`
	Balance float64 `json:"balance"`
}

// JSONSummary contains aggregate statistics
type JSONSummary struct {
	Months       int     `json:"months"`
	FinalBalance float64 `json:"final_balance"`
	Currency     string  `json:"currency"`
}

// PrintProjectionJSON outputs projection rows in JSON format
func PrintProjectionJSON(w io.Writer, rows []ProjectionRow, currency Currency) {
	out := JSONOutput{Rows: make([]JSONRow, 0, len(rows))}
	for _, row := range rows {
		out.Rows = append(out.Rows, JSONRow{
			Month:   row.Month.Format(MonthLayout),
			Net:     row.Monthly.Round(2).InexactFloat64(),
			Balance: row.Cumulative.Round(2).InexactFloat64(),
		})
	}
	out.Summary = JSONSummary{
		Months:   len(rows),
		Currency: currency.Code,
	}
	if len(rows) > 0 {
		out.Summary.FinalBalance = rows[len(rows)-1].Cumulative.Round(2).InexactFloat64()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.Encode(out)
}

// PrintProjectionTable outputs projection rows as a formatted table
func PrintProjectionTable(w io.Writer, rows []ProjectionRow, currency Currency) {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	t.AppendHeader(table.Row{"Month", "Net", "Balance"})
	for _, row := range rows {
		net := currency.Format(row.Monthly.Round(2).InexactFloat64())
		balance := currency.Format(row.Cumulative.Round(2).InexactFloat64())
		if row.Monthly.IsNegative() {
			net = text.FgRed.Sprint(net)
		}
		t.AppendRow(table.Row{row.Month.Format(MonthLayout), net, balance})
	}

	t.AppendSeparator()
	final := "-"
	if len(rows) > 0 {
		final = currency.Format(rows[len(rows)-1].Cumulative.Round(2).InexactFloat64())
	}
	t.AppendFooter(table.Row{"", text.Bold.Sprint("Final"), text.Bold.Sprint(final)})

	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
	})

	t.Render()
}
