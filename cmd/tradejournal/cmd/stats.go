package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/trade"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print trade statistics and key metrics",
	Long: `Print win rate, profit factor, drawdown and holding times for the
trades matching the filter flags. The starting balance is the account's
when --account is given, otherwise the sum of all accounts.

Examples:
  tradejournal stats --period this-month
  tradejournal stats --account Main --by-symbol
  tradejournal stats --strategy Breakout --org report.org`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var (
	statsFilter   filterFlags
	statsBySymbol bool
	statsOrgPath  string
)

func init() {
	rootCmd.AddCommand(statsCmd)

	statsFilter.bind(statsCmd)
	statsCmd.Flags().BoolVar(&statsBySymbol, "by-symbol", false, "add per-symbol statistics")
	statsCmd.Flags().StringVar(&statsOrgPath, "org", "", "also write an Org-mode report to this file")
}

func runStats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := statsFilter.selected(j)
	if err != nil {
		return err
	}
	balance, err := statsFilter.balance(j)
	if err != nil {
		return err
	}

	rep := journal.NewReport(statsFilter.describe(), balance, analytics.ComputeKeyMetrics(trades, balance))
	if statsFilter.account != "" {
		rep.Accounts = []string{statsFilter.account}
	}
	if statsBySymbol {
		rep.Symbols = analytics.StatsBy(trades, func(t trade.Trade) string { return t.Symbol })
	}

	journal.PrintReport(out, rep)

	if statsBySymbol && len(rep.Symbols) > 0 {
		rows := make([][]string, 0, len(rep.Symbols))
		for _, sym := range sortedKeys(rep.Symbols) {
			st := rep.Symbols[sym]
			rows = append(rows, []string{
				sym,
				fmt.Sprint(st.Total),
				fmt.Sprintf("%.1f%%", st.WinRate*100),
				money(st.NetProfit),
			})
		}
		renderTable(out, []string{"Symbol", "Trades", "Win Rate", "Net"}, rows)
	}

	if statsOrgPath != "" {
		if err := rep.WriteOrgFile(statsOrgPath); err != nil {
			return err
		}
		success(out, "Wrote %s", statsOrgPath)
	}
	return nil
}
