package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/importer"
	"github.com/rustyeddy/tradejournal/internal/metrics"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/reconcile"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an account history export",
	Long: `Import trades from a broker export and merge them into the journal.

Supported formats:
  .xlsx, .xlsm  - tabular history exports; the header row is detected
  .txt, .csv    - semicolon-delimited trade lines

Re-importing a file updates prices, times and results but keeps the
strategy, comment, magic number and account you curated. The
import.default_account and import.default_strategy settings only fill
trades that have none; --account and --strategy override every trade.

Examples:
  tradejournal import history.xlsx
  tradejournal import trades.txt --account Prop --strategy Breakout`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	importAccount  string
	importStrategy string
	importShowRows int
	importMetrics  string
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVar(&importAccount, "account", "", "assign every imported trade to this account")
	importCmd.Flags().StringVar(&importStrategy, "strategy", "", "assign every imported trade to this strategy")
	importCmd.Flags().IntVar(&importShowRows, "show-errors", 10, "number of row errors to print")
	importCmd.Flags().StringVar(&importMetrics, "metrics-file", "", "write Prometheus textfile metrics here (overrides config)")
}

func runImport(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := args[0]

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	im := importer.New(log.With().Str("component", "importer").Logger())
	im.Location = loc

	m := metrics.New()
	metricsPath := importMetrics
	if metricsPath == "" {
		metricsPath = cfg.Metrics.Textfile
	}
	defer func() {
		if metricsPath == "" {
			return
		}
		if err := m.WriteTextfile(metricsPath); err != nil {
			log.Warn().Err(err).Str("path", metricsPath).Msg("write metrics")
		}
	}()

	started := time.Now()
	res := <-im.StartFile(path)
	rep := res.Report
	m.ObserveImport(rep, time.Since(started), res.Err)
	if res.Err != nil {
		return res.Err
	}

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	opts := reconcile.Options{
		Account:         importAccount,
		Strategy:        importStrategy,
		DefaultAccount:  cfg.Import.DefaultAccount,
		DefaultStrategy: cfg.Import.DefaultStrategy,
	}

	result, err := reconcile.Apply(j, rep.Trades, opts, log)
	if err != nil {
		return fmt.Errorf("save import: %w", err)
	}
	m.ObserveReconcile(result)
	if err := register(j, firstNonEmpty(opts.Strategy, opts.DefaultStrategy), firstNonEmpty(opts.Account, opts.DefaultAccount)); err != nil {
		return err
	}

	err = j.RecordImport(journal.ImportRun{
		Source:   path,
		Format:   rep.Format,
		Imported: result.Saved,
		Failed:   rep.Failed,
	})
	if err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	title(out, "Import: "+path)
	fmt.Fprintln(out, rep.String())
	success(out, "Saved %d trades (%d new, %d updated)", result.Saved, result.New, result.Merged)

	for i, rowErr := range rep.Errors {
		if i >= importShowRows {
			warn(out, "... %d more row errors", len(rep.Errors)-i)
			break
		}
		warn(out, "%v", rowErr)
	}
	return nil
}

// register adds the batch strategy and account labels to the journal.
func register(j journal.Journal, strategy, account string) error {
	if strategy != "" {
		if err := j.AddStrategy(strategy); err != nil {
			return fmt.Errorf("register strategy: %w", err)
		}
	}
	if account == "" {
		return nil
	}
	if _, err := j.FindAccount(account); errors.Is(err, journal.ErrNotFound) {
		if err := j.SaveAccount(journal.Account{Name: account}); err != nil {
			return fmt.Errorf("register account: %w", err)
		}
	} else if err != nil {
		return err
	}
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
