package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/trade"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Show, edit, add or delete a single trade",
	Long: `Work with one trade by ticket.

Subcommands:
  show    - Print a trade as an Org-mode block
  set     - Change fields of a trade
  add     - Enter a trade by hand
  delete  - Remove a trade

Examples:
  tradejournal trade show 12345678
  tradejournal trade set 12345678 --strategy Breakout --comment "late entry"
  tradejournal trade add --symbol EURUSD --direction buy --size 0.5 --profit 42
  tradejournal trade delete 12345678`,
}

var tradeShowCmd = &cobra.Command{
	Use:   "show <ticket>",
	Short: "Print a trade as an Org-mode block",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

var tradeSetCmd = &cobra.Command{
	Use:   "set <ticket>",
	Short: "Change fields of a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeSet,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Enter a trade by hand",
	Long: `Enter a trade by hand. Without --ticket a MAN- ticket is generated.
Times use the configured import timezone and the layout YYYY-MM-DD HH:MM.`,
	Args: cobra.NoArgs,
	RunE: runTradeAdd,
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <ticket>",
	Short: "Remove a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeDelete,
}

// tradeFields are the editable fields shared by set and add.
type tradeFields struct {
	strategy, account, comment string
	symbol, direction          string
	magic                      int64

	ticket                string
	size                  float64
	openTime, closeTime   string
	openPrice, closePrice float64
	stopLoss, takeProfit  float64
	profit, commission    float64
	swap                  float64
}

var (
	setFields tradeFields
	addFields tradeFields
)

const timeLayout = "2006-01-02 15:04"

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeShowCmd)
	tradeCmd.AddCommand(tradeSetCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeDeleteCmd)

	bindMeta(tradeSetCmd, &setFields)

	bindMeta(tradeAddCmd, &addFields)
	fl := tradeAddCmd.Flags()
	fl.StringVar(&addFields.ticket, "ticket", "", "ticket (default generated)")
	fl.Float64Var(&addFields.size, "size", 0, "position size in lots")
	fl.StringVar(&addFields.openTime, "open", "", "open time (YYYY-MM-DD HH:MM)")
	fl.StringVar(&addFields.closeTime, "close", "", "close time (YYYY-MM-DD HH:MM)")
	fl.Float64Var(&addFields.openPrice, "open-price", 0, "open price")
	fl.Float64Var(&addFields.closePrice, "close-price", 0, "close price")
	fl.Float64Var(&addFields.stopLoss, "sl", 0, "stop loss")
	fl.Float64Var(&addFields.takeProfit, "tp", 0, "take profit")
	fl.Float64Var(&addFields.profit, "profit", 0, "gross profit")
	fl.Float64Var(&addFields.commission, "commission", 0, "commission")
	fl.Float64Var(&addFields.swap, "swap", 0, "swap")
	_ = tradeAddCmd.MarkFlagRequired("symbol")
}

func bindMeta(cmd *cobra.Command, f *tradeFields) {
	fl := cmd.Flags()
	fl.StringVar(&f.strategy, "strategy", "", "strategy label")
	fl.StringVar(&f.account, "account", "", "account name")
	fl.StringVar(&f.comment, "comment", "", "comment")
	fl.StringVar(&f.symbol, "symbol", "", "symbol")
	fl.StringVar(&f.direction, "direction", "", "direction (buy, sell, buy limit, ...)")
	fl.Int64Var(&f.magic, "magic", 0, "magic number")
}

func runTradeShow(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	t, err := j.FindByTicket(args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
	return nil
}

func runTradeSet(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	t, err := j.FindByTicket(args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fl := cmd.Flags()
	if fl.Changed("strategy") {
		t = t.WithStrategy(setFields.strategy)
	}
	if fl.Changed("account") {
		t = t.WithAccount(setFields.account)
	}
	if fl.Changed("comment") {
		t = t.WithComment(setFields.comment)
	}
	if fl.Changed("symbol") {
		t = t.WithSymbol(setFields.symbol)
	}
	if fl.Changed("magic") {
		t = t.WithMagic(setFields.magic)
	}
	if fl.Changed("direction") {
		d, err := trade.LookupDirection(setFields.direction)
		if err != nil {
			return err
		}
		t = t.WithDirection(d)
	}

	if err := j.Save(t); err != nil {
		return fmt.Errorf("save trade: %w", err)
	}
	success(cmd.OutOrStdout(), "Updated trade %s", t.Ticket)
	return nil
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	f := addFields
	if f.size < 0 {
		return fmt.Errorf("%w: --size %g is negative; the direction carries the side", journal.ErrInvalidInput, f.size)
	}
	d, err := trade.LookupDirection(f.direction)
	if err != nil {
		return err
	}
	openAt, err := parseTime(f.openTime, loc)
	if err != nil {
		return fmt.Errorf("--open: %w", err)
	}
	closeAt, err := parseTime(f.closeTime, loc)
	if err != nil {
		return fmt.Errorf("--close: %w", err)
	}

	t := trade.Trade{
		Ticket:     trade.ManualTicket(f.ticket),
		Direction:  d,
		Symbol:     f.symbol,
		Size:       f.size,
		OpenTime:   openAt,
		OpenPrice:  f.openPrice,
		StopLoss:   f.stopLoss,
		TakeProfit: f.takeProfit,
		Comment:    f.comment,
		Strategy:   f.strategy,
		Account:    f.account,
		Magic:      f.magic,
	}.WithClose(closeAt, f.closePrice).WithResult(f.profit, f.commission, f.swap)

	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.Save(t); err != nil {
		return fmt.Errorf("save trade: %w", err)
	}
	success(cmd.OutOrStdout(), "Added trade %s", t.Ticket)
	return nil
}

func runTradeDelete(cmd *cobra.Command, args []string) error {
	j, err := openJournal()
	if err != nil {
		return err
	}
	defer j.Close()

	ok, err := j.Delete(args[0])
	if err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	if !ok {
		return fmt.Errorf("trade %q: %w", args[0], journal.ErrNotFound)
	}
	success(cmd.OutOrStdout(), "Deleted trade %s", args[0])
	return nil
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(timeLayout, s, loc)
}
