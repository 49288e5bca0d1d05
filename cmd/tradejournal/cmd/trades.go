package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/trade"
)

var tradesCmd = &cobra.Command{
	Use:   "trades",
	Short: "List journal trades",
	Long: `List the trades matching the filter flags.

Examples:
  tradejournal trades --period 30d
  tradejournal trades --strategy Breakout --direction long
  tradejournal trades --from 2024-01-01 --to 2024-03-31 --org`,
	Args: cobra.NoArgs,
	RunE: runTrades,
}

var (
	tradesFilter filterFlags
	tradesOrg    bool
)

func init() {
	rootCmd.AddCommand(tradesCmd)

	tradesFilter.bind(tradesCmd)
	tradesCmd.Flags().BoolVar(&tradesOrg, "org", false, "print Org-mode trade blocks")
}

func runTrades(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := tradesFilter.selected(j)
	if err != nil {
		return err
	}

	if tradesOrg {
		fmt.Fprintln(out, journal.FormatTradesOrg(trades))
		return nil
	}

	rows := make([][]string, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, tradeRow(t))
	}
	renderTable(out, []string{"Ticket", "Symbol", "Type", "Size", "Open", "Close", "Net", "Strategy", "Account"}, rows)
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d trades", len(trades))))
	return nil
}

func tradeRow(t trade.Trade) []string {
	return []string{
		t.Ticket,
		t.Symbol,
		t.Direction.DisplayName(),
		strconv.FormatFloat(t.Size, 'f', 2, 64),
		shortTime(t.OpenTime),
		shortTime(t.CloseTime),
		money(t.NetProfit()),
		t.Strategy,
		t.Account,
	}
}

func shortTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
