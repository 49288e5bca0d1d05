package journal

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"text/template"
	"time"

	"github.com/rustyeddy/tradejournal/analytics"
)

// Report is a statistics summary over one filtered view of the journal.
type Report struct {
	Created time.Time
	// Scope describes the filter the metrics were computed under.
	Scope    string
	Accounts []string

	StartBalance float64
	EndBalance   float64
	Metrics      analytics.KeyMetrics

	Symbols map[string]analytics.Statistics
	Notes   []string
}

// NewReport computes a report from key metrics and the curve start.
func NewReport(scope string, startBalance float64, km analytics.KeyMetrics) Report {
	return Report{
		Created:      time.Now(),
		Scope:        scope,
		StartBalance: startBalance,
		EndBalance:   startBalance + km.NetProfit,
		Metrics:      km,
	}
}

// ReturnPct is the net P&L as a percentage of the start balance, or 0
// without a start balance.
func (r Report) ReturnPct() float64 {
	if r.StartBalance == 0 {
		return 0
	}
	return r.Metrics.NetProfit / r.StartBalance * 100
}

var reportOrgFuncs = template.FuncMap{
	"mul100": func(x float64) float64 { return x * 100.0 },
	"pf":     formatProfitFactor,
	"dur":    analytics.FormatDuration,
	"orTime": func(t time.Time) time.Time {
		if t.IsZero() {
			return time.Now()
		}
		return t
	},
}

var reportOrg = template.Must(template.New("report").Funcs(reportOrgFuncs).Parse(ReportOrgTemplate))

// WriteOrg renders r as an Org-mode document to w.
func (r Report) WriteOrg(w io.Writer) error {
	return reportOrg.Execute(w, r)
}

// WriteOrgFile renders r to path.
func (r Report) WriteOrgFile(path string) error {
	buf := new(bytes.Buffer)
	if err := r.WriteOrg(buf); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

const ReportOrgTemplate = `
* JOURNAL: {{if .Scope}}{{.Scope}}{{else}}all trades{{end}}
:PROPERTIES:
:CREATED:     [{{(orTime .Created).Format "2006-01-02 Mon 15:04"}}]
:START_BAL:   {{printf "%.2f" .StartBalance}}
:END_BAL:     {{printf "%.2f" .EndBalance}}
:NET_PL:      {{printf "%.2f" .Metrics.NetProfit}}
:RETURN_PCT:  {{printf "%.2f" .ReturnPct}}
:MAX_DD:      {{printf "%.2f" .Metrics.MaxDrawdown}}
:TRADES:      {{.Metrics.Total}}
:WINS:        {{.Metrics.Winners}}
:LOSSES:      {{.Metrics.Losers}}
:WIN_RATE:    {{printf "%.2f" .Metrics.WinRate}}
:PROFIT_FAC:  {{pf .Metrics.ProfitFactor}}
:END:

** Performance Summary
- Net P/L:          *{{printf "%.2f" .Metrics.NetProfit}}*
- Return:           *{{printf "%.2f" .ReturnPct}}%*
- Max Drawdown:     *{{printf "%.2f" .Metrics.MaxDrawdown}}*
- Win Rate:         *{{printf "%.1f" (mul100 .Metrics.WinRate)}}%*
- Profit Factor:    *{{pf .Metrics.ProfitFactor}}*
- Average Win:      *{{printf "%.2f" .Metrics.AverageWin}}*
- Average Loss:     *{{printf "%.2f" .Metrics.AverageLoss}}*
- Largest Win:      *{{printf "%.2f" .Metrics.LargestWin}}*
- Largest Loss:     *{{printf "%.2f" .Metrics.LargestLoss}}*

** Long / Short
| Side  | Trades | Win Rate | Net P/L | Avg. Hold |
|-------+--------+----------+---------+-----------|
| Long  | {{.Metrics.Long}} | {{printf "%.1f" (mul100 .Metrics.LongWinRate)}}% | {{printf "%.2f" .Metrics.LongProfit}} | {{dur .Metrics.AvgLongHold}} |
| Short | {{.Metrics.Short}} | {{printf "%.1f" (mul100 .Metrics.ShortWinRate)}}% | {{printf "%.2f" .Metrics.ShortProfit}} | {{dur .Metrics.AvgShortHold}} |

** Holding Time
| Trades  | Avg. Hold |
|---------+-----------|
| All     | {{dur .Metrics.AvgHold}} |
| Winners | {{dur .Metrics.AvgWinHold}} |
| Losers  | {{dur .Metrics.AvgLossHold}} |

** Trade Distribution
| Outcome | Count |
|---------+-------|
| Wins    | {{.Metrics.Winners}} |
| Losses  | {{.Metrics.Losers}} |
| Total   | {{.Metrics.Total}} |

{{- if .Symbols }}

** By Symbol
| Symbol | Trades | Win Rate | Net P/L |
|--------+--------+----------+---------|
{{- range $sym, $st := .Symbols }}
| {{$sym}} | {{$st.Total}} | {{printf "%.1f" (mul100 $st.WinRate)}}% | {{printf "%.2f" $st.NetProfit}} |
{{- end }}
{{- end }}

{{- if .Notes }}

** Observations
{{- range .Notes }}
- {{.}}
{{- end }}
{{- end }}
`

// PrintReport writes a plain-text summary of r to w.
func PrintReport(w io.Writer, r Report) {
	m := r.Metrics

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Journal Statistics")
	fmt.Fprintln(w, "==================================================")

	if r.Scope != "" {
		fmt.Fprintf(w, "Scope:         %s\n", r.Scope)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", m.Total)
	fmt.Fprintf(w, "Wins:          %d\n", m.Winners)
	fmt.Fprintf(w, "Losses:        %d\n", m.Losers)
	fmt.Fprintf(w, "Win Rate:      %.1f%%\n", m.WinRate*100)
	fmt.Fprintf(w, "Profit Factor: %s\n", formatProfitFactor(m.ProfitFactor))
	fmt.Fprintf(w, "Average Win:   %.2f\n", m.AverageWin)
	fmt.Fprintf(w, "Average Loss:  %.2f\n", m.AverageLoss)
	fmt.Fprintf(w, "Largest Win:   %.2f\n", m.LargestWin)
	fmt.Fprintf(w, "Largest Loss:  %.2f\n", m.LargestLoss)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Long / Short")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Long Trades:   %d (%.1f%% wins, %.2f)\n", m.Long, m.LongWinRate*100, m.LongProfit)
	fmt.Fprintf(w, "Short Trades:  %d (%.1f%% wins, %.2f)\n", m.Short, m.ShortWinRate*100, m.ShortProfit)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Holding Time")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Average:       %s\n", analytics.FormatDuration(m.AvgHold))
	fmt.Fprintf(w, "Long:          %s\n", analytics.FormatDuration(m.AvgLongHold))
	fmt.Fprintf(w, "Short:         %s\n", analytics.FormatDuration(m.AvgShortHold))
	fmt.Fprintf(w, "Winners:       %s\n", analytics.FormatDuration(m.AvgWinHold))
	fmt.Fprintf(w, "Losers:        %s\n", analytics.FormatDuration(m.AvgLossHold))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Balance: %.2f\n", r.StartBalance)
	fmt.Fprintf(w, "End Balance:   %.2f\n", r.EndBalance)
	fmt.Fprintf(w, "Net P/L:       %.2f\n", m.NetProfit)
	if r.StartBalance != 0 {
		fmt.Fprintf(w, "Return:        %.2f%%\n", r.ReturnPct())
	}
	if m.MaxDrawdown > 0 {
		fmt.Fprintf(w, "Max Drawdown:  %.2f\n", m.MaxDrawdown)
	}

	if len(r.Notes) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Observations")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, note := range r.Notes {
			fmt.Fprintf(w, "- %s\n", note)
		}
	}

	fmt.Fprintln(w)
}

func formatProfitFactor(pf float64) string {
	if math.IsInf(pf, 1) {
		return "inf"
	}
	return fmt.Sprintf("%.2f", pf)
}
