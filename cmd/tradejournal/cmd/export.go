package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trades and equity to CSV or Org-mode",
	Long: `Write the trades matching the filter flags to CSV, together with their
equity curve, or to an Org-mode file.

Examples:
  tradejournal export --trades trades.csv --equity equity.csv
  tradejournal export --strategy Breakout --org breakout.org`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFilter filterFlags
	exportTrades string
	exportEquity string
	exportOrg    string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportFilter.bind(exportCmd)
	exportCmd.Flags().StringVar(&exportTrades, "trades", "trades.csv", "trades CSV output")
	exportCmd.Flags().StringVar(&exportEquity, "equity", "equity.csv", "equity CSV output")
	exportCmd.Flags().StringVar(&exportOrg, "org", "", "write Org-mode trade blocks to this file instead of CSV")
}

func runExport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := exportFilter.selected(j)
	if err != nil {
		return err
	}

	if exportOrg != "" {
		if err := os.WriteFile(exportOrg, []byte(journal.FormatTradesOrg(trades)), 0644); err != nil {
			return fmt.Errorf("write org: %w", err)
		}
		success(out, "Wrote %d trades to %s", len(trades), exportOrg)
		return nil
	}

	balance, err := exportFilter.balance(j)
	if err != nil {
		return err
	}

	w, err := journal.NewCSV(exportTrades, exportEquity)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	for _, t := range trades {
		if err := w.WriteTrade(t); err != nil {
			_ = w.Close()
			return fmt.Errorf("write trade: %w", err)
		}
	}
	for _, p := range analytics.Build(trades, balance) {
		if err := w.WriteEquity(p); err != nil {
			_ = w.Close()
			return fmt.Errorf("write equity: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	success(out, "Wrote %d trades to %s and their equity to %s", len(trades), exportTrades, exportEquity)
	return nil
}
