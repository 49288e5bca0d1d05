package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/filter"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/trade"
)

const dateLayout = "2006-01-02"

// filterFlags are the selection flags shared by the read-only commands.
type filterFlags struct {
	strategy  string
	account   string
	symbol    string
	magic     string
	period    string
	from      string
	to        string
	direction string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.strategy, "strategy", "", "only trades with this strategy")
	fl.StringVar(&f.account, "account", "", "only trades of this account")
	fl.StringVar(&f.symbol, "symbol", "", "only trades of this symbol")
	fl.StringVar(&f.magic, "magic", "", "only trades with this magic number")
	fl.StringVar(&f.period, "period", "all", "all, today, 7d, 30d, 90d, this-month, last-month, this-year, custom")
	fl.StringVar(&f.from, "from", "", "custom range start (YYYY-MM-DD)")
	fl.StringVar(&f.to, "to", "", "custom range end (YYYY-MM-DD)")
	fl.StringVar(&f.direction, "direction", "all", "all, long or short")
}

// selection builds the filter. --from or --to alone imply a custom period.
func (f *filterFlags) selection() (filter.Selection, error) {
	loc, err := cfg.Location()
	if err != nil {
		return filter.Selection{}, err
	}

	p, err := filter.ParsePeriod(f.period)
	if err != nil {
		return filter.Selection{}, err
	}
	side, err := filter.ParseSide(f.direction)
	if err != nil {
		return filter.Selection{}, err
	}

	w := filter.Window{Period: p}
	if f.from != "" || f.to != "" {
		w.Period = filter.Custom
		if w.From, err = parseDate(f.from, loc); err != nil {
			return filter.Selection{}, fmt.Errorf("--from: %w", err)
		}
		if w.To, err = parseDate(f.to, loc); err != nil {
			return filter.Selection{}, fmt.Errorf("--to: %w", err)
		}
	}

	return filter.Selection{
		Strategy: f.strategy,
		Account:  f.account,
		Symbol:   f.symbol,
		Magic:    f.magic,
		Window:   w,
		Side:     side,
	}, nil
}

// describe is a short human label for the active filters.
func (f *filterFlags) describe() string {
	var parts []string
	add := func(k, v string) {
		if v != "" {
			parts = append(parts, k+" "+v)
		}
	}
	add("strategy", f.strategy)
	add("account", f.account)
	add("symbol", f.symbol)
	add("magic", f.magic)
	if f.from != "" || f.to != "" {
		add("range", f.from+".."+f.to)
	} else if f.period != "" && f.period != "all" {
		add("period", f.period)
	}
	if f.direction != "" && f.direction != "all" {
		add("direction", f.direction)
	}
	return strings.Join(parts, ", ")
}

// selected loads every trade from j and applies the flags.
func (f *filterFlags) selected(j journal.Store) ([]trade.Trade, error) {
	sel, err := f.selection()
	if err != nil {
		return nil, err
	}
	all, err := j.FindAll()
	if err != nil {
		return nil, fmt.Errorf("load trades: %w", err)
	}
	at := now()
	for i := range all {
		all[i] = localize(all[i], at.Location())
	}
	return sel.Apply(all, at), nil
}

// localize moves trade timestamps into loc so hour and day buckets follow
// the configured timezone.
func localize(t trade.Trade, loc *time.Location) trade.Trade {
	if !t.OpenTime.IsZero() {
		t.OpenTime = t.OpenTime.In(loc)
	}
	if !t.CloseTime.IsZero() {
		t.CloseTime = t.CloseTime.In(loc)
	}
	return t
}

// balance is the starting balance for the account filter, or the sum of
// all accounts.
func (f *filterFlags) balance(j journal.Journal) (float64, error) {
	accts, err := j.Accounts()
	if err != nil {
		return 0, fmt.Errorf("load accounts: %w", err)
	}
	if f.account != "" {
		return journal.BalanceOf(accts, f.account), nil
	}
	return journal.TotalBalance(accts), nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation(dateLayout, s, loc)
}
