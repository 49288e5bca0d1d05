// Package reconcile merges freshly imported trades into a stored journal.
// A re-import is the source of truth for trade economics, never for the
// metadata a user curated by hand.
package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/trade"
)

// Finder looks up a stored trade by ticket. A journal.ErrNotFound means
// the trade is new.
type Finder interface {
	FindByTicket(ticket string) (trade.Trade, error)
}

// Merge combines an imported trade with its stored counterpart. Strategy
// and comment are kept from stored when imported leaves them empty, as is
// a magic number when imported has 0. The stored account is kept unless
// the batch forced one. Every other field comes from imported.
func Merge(imported, stored trade.Trade, forcedAccount bool) trade.Trade {
	out := imported
	if out.Strategy == "" {
		out = out.WithStrategy(stored.Strategy)
	}
	if out.Comment == "" {
		out = out.WithComment(stored.Comment)
	}
	if out.Magic == 0 {
		out = out.WithMagic(stored.Magic)
	}
	if !forcedAccount {
		out = out.WithAccount(stored.Account)
	}
	return out
}

// MergeAll merges each imported trade with the stored trade of the same
// ticket. Trades not found in f pass through unchanged. The returned
// count is the number of trades that matched a stored trade.
func MergeAll(f Finder, imported []trade.Trade, forcedAccount bool) ([]trade.Trade, int, error) {
	out := make([]trade.Trade, 0, len(imported))
	merged := 0
	for _, t := range imported {
		stored, err := f.FindByTicket(t.Ticket)
		switch {
		case err == nil:
			out = append(out, Merge(t, stored, forcedAccount))
			merged++
		case errors.Is(err, journal.ErrNotFound):
			out = append(out, t)
		default:
			return nil, 0, fmt.Errorf("lookup %q: %w", t.Ticket, err)
		}
	}
	return out, merged, nil
}

// Options assigns an account or strategy to a whole import batch.
// Account and Strategy are forced onto every trade. DefaultAccount and
// DefaultStrategy only fill trades whose field is still empty after the
// merge, so they never replace a stored value.
type Options struct {
	Account  string
	Strategy string

	DefaultAccount  string
	DefaultStrategy string
}

// Forced reports whether the batch carries its own account.
func (o Options) Forced() bool {
	return strings.TrimSpace(o.Account) != ""
}

// Stamp returns a copy of trades with the batch account and strategy
// applied. Empty options leave the trades as they are.
func (o Options) Stamp(trades []trade.Trade) []trade.Trade {
	account := strings.TrimSpace(o.Account)
	strategy := strings.TrimSpace(o.Strategy)

	out := make([]trade.Trade, len(trades))
	for i, t := range trades {
		if account != "" {
			t = t.WithAccount(account)
		}
		if strategy != "" {
			t = t.WithStrategy(strategy)
		}
		out[i] = t
	}
	return out
}

// Fill returns a copy of trades with the default account and strategy
// set where the trade has none.
func (o Options) Fill(trades []trade.Trade) []trade.Trade {
	account := strings.TrimSpace(o.DefaultAccount)
	strategy := strings.TrimSpace(o.DefaultStrategy)

	out := make([]trade.Trade, len(trades))
	for i, t := range trades {
		if account != "" && t.Account == "" {
			t = t.WithAccount(account)
		}
		if strategy != "" && t.Strategy == "" {
			t = t.WithStrategy(strategy)
		}
		out[i] = t
	}
	return out
}

// Result summarizes one Apply.
type Result struct {
	Saved  int
	New    int
	Merged int
}

// Apply stamps trades with opts, merges them against store, fills the
// defaults and writes the result in one SaveAll.
func Apply(store journal.Store, trades []trade.Trade, opts Options, log zerolog.Logger) (Result, error) {
	log = log.With().Str("component", "reconcile").Logger()

	stamped := opts.Stamp(trades)
	merged, n, err := MergeAll(store, stamped, opts.Forced())
	if err != nil {
		return Result{}, err
	}
	merged = opts.Fill(merged)

	if err := store.SaveAll(merged); err != nil {
		return Result{}, fmt.Errorf("save merged trades: %w", err)
	}

	res := Result{Saved: len(merged), New: len(merged) - n, Merged: n}
	log.Info().
		Int("saved", res.Saved).
		Int("new", res.New).
		Int("merged", res.Merged).
		Str("account", opts.Account).
		Str("strategy", opts.Strategy).
		Msg("reconciled import")
	return res, nil
}
