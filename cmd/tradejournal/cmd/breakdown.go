package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/trade"
)

var breakdownKinds = map[string]func([]trade.Trade) []analytics.Bucket{
	"hour":          analytics.ProfitByHour,
	"weekday":       analytics.ProfitByWeekday,
	"month":         analytics.ProfitByMonth,
	"entry-hour":    analytics.EntriesByHour,
	"entry-weekday": analytics.EntriesByWeekday,
	"entry-month":   analytics.EntriesByMonth,
}

var breakdownCmd = &cobra.Command{
	Use:   "breakdown <kind>",
	Short: "Break P&L down by time of day, weekday, month or calendar",
	Long: `Group the trades matching the filter flags into time buckets.

Kinds:
  hour, weekday, month                     - by close time
  entry-hour, entry-weekday, entry-month   - by open time
  daily                                    - one row per trading day
  calendar                                 - days and weekly totals of --month

Examples:
  tradejournal breakdown hour --period 90d
  tradejournal breakdown calendar --month 2024-05`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: append(sortedKeys(breakdownKinds), "daily", "calendar"),
	RunE:      runBreakdown,
}

var (
	breakdownFilter filterFlags
	breakdownMonth  string
)

func init() {
	rootCmd.AddCommand(breakdownCmd)

	breakdownFilter.bind(breakdownCmd)
	breakdownCmd.Flags().StringVar(&breakdownMonth, "month", "", "calendar month (YYYY-MM, default current)")
}

func runBreakdown(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	kind := args[0]

	fn, bucketed := breakdownKinds[kind]
	if !bucketed && kind != "daily" && kind != "calendar" {
		return fmt.Errorf("unknown breakdown %q (want one of %v)", kind, cmd.ValidArgs)
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := breakdownFilter.selected(j)
	if err != nil {
		return err
	}

	switch {
	case bucketed:
		var rows [][]string
		for _, b := range fn(trades) {
			rows = append(rows, []string{b.Label, fmt.Sprint(b.Count), money(b.Profit)})
		}
		renderTable(out, []string{"Bucket", "Trades", "Net"}, rows)

	case kind == "daily":
		var rows [][]string
		for _, d := range analytics.Daily(trades) {
			rows = append(rows, []string{d.Date.Format("2006-01-02 Mon"), fmt.Sprint(d.Count), money(d.Profit)})
		}
		renderTable(out, []string{"Day", "Trades", "Net"}, rows)

	default:
		cursor := now()
		if breakdownMonth != "" {
			cursor, err = parseMonth(breakdownMonth)
			if err != nil {
				return fmt.Errorf("--month: %w", err)
			}
		}
		days, weeks := analytics.Month(trades, cursor)

		title(out, cursor.Format("January 2006"))
		var rows [][]string
		for _, d := range days {
			if d.Count == 0 {
				continue
			}
			rows = append(rows, []string{d.Date.Format("Mon 02"), fmt.Sprint(d.Count), money(d.Profit)})
		}
		renderTable(out, []string{"Day", "Trades", "Net"}, rows)

		var totals [][]string
		for _, w := range weeks {
			totals = append(totals, []string{
				fmt.Sprintf("Week %d", w.Number),
				w.First.Format("Jan 02") + " - " + w.Last.Format("Jan 02"),
				fmt.Sprint(w.TradeCount),
				money(w.Profit),
			})
		}
		renderTable(out, []string{"Week", "Dates", "Trades", "Net"}, totals)
	}
	return nil
}

func parseMonth(s string) (time.Time, error) {
	loc, err := cfg.Location()
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation("2006-01", s, loc)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
