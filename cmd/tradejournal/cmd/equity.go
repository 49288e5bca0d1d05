package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Print the equity curve",
	Long: `Print the equity curve of the trades matching the filter flags.

With --by-strategy one curve is built per strategy label, each starting at
the balance of the account of its first trade.

Examples:
  tradejournal equity --account Main
  tradejournal equity --by-strategy
  tradejournal equity --period this-year --csv equity.csv`,
	Args: cobra.NoArgs,
	RunE: runEquity,
}

var (
	equityFilter     filterFlags
	equityByStrategy bool
	equityCSV        string
)

func init() {
	rootCmd.AddCommand(equityCmd)

	equityFilter.bind(equityCmd)
	equityCmd.Flags().BoolVar(&equityByStrategy, "by-strategy", false, "one curve per strategy")
	equityCmd.Flags().StringVar(&equityCSV, "csv", "", "write the curve to this CSV file instead")
}

func runEquity(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := equityFilter.selected(j)
	if err != nil {
		return err
	}

	if equityByStrategy {
		accts, err := j.Accounts()
		if err != nil {
			return fmt.Errorf("load accounts: %w", err)
		}
		curves := analytics.CurvesByStrategy(trades, func(account string) float64 {
			return journal.BalanceOf(accts, account)
		})
		for _, c := range curves {
			title(out, fmt.Sprintf("%s (start %.2f)", c.Strategy, c.Balance))
			printCurve(cmd, c.Points)
		}
		return nil
	}

	balance, err := equityFilter.balance(j)
	if err != nil {
		return err
	}
	pts := analytics.Build(trades, balance)

	if equityCSV != "" {
		f, err := os.Create(equityCSV)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := journal.WriteEquityCSV(f, pts); err != nil {
			return fmt.Errorf("write equity: %w", err)
		}
		success(out, "Wrote %d points to %s", len(pts), equityCSV)
		return nil
	}

	printCurve(cmd, pts)
	fmt.Fprintf(out, "Max drawdown: %.2f\n", analytics.MaxDrawdown(pts))
	return nil
}

func printCurve(cmd *cobra.Command, pts []analytics.Point) {
	rows := make([][]string, 0, len(pts))
	for _, p := range pts {
		rows = append(rows, []string{
			fmt.Sprint(p.Index),
			shortTime(p.Time),
			p.Ticket,
			fmt.Sprintf("%.2f", p.Equity),
		})
	}
	renderTable(cmd.OutOrStdout(), []string{"#", "Time", "Ticket", "Equity"}, rows)
}
