// Package filter narrows a trade set by the selections a journal view
// offers: strategy, account, symbol, magic number, time window and side.
package filter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/trade"
)

// Side restricts trades to one direction.
type Side int

const (
	BothSides Side = iota
	LongOnly
	ShortOnly
)

// ParseSide accepts "all", "long" or "short" and the display names
// "Long Only" and "Short Only". Empty means BothSides.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "all types", "both":
		return BothSides, nil
	case "long", "long only", "buy":
		return LongOnly, nil
	case "short", "short only", "sell":
		return ShortOnly, nil
	}
	return BothSides, fmt.Errorf("unknown side %q", s)
}

// Selection is a set of independent predicates. Empty string fields
// select everything; non-empty ones must match exactly.
type Selection struct {
	Strategy string
	Account  string
	Symbol   string
	// Magic is compared against the decimal form of the magic number.
	Magic  string
	Window Window
	Side   Side
}

// Match reports whether t passes every predicate of s.
func (s Selection) Match(t trade.Trade, now time.Time) bool {
	if s.Strategy != "" && t.Strategy != s.Strategy {
		return false
	}
	if s.Account != "" && t.Account != s.Account {
		return false
	}
	if s.Symbol != "" && t.Symbol != s.Symbol {
		return false
	}
	if s.Magic != "" && strconv.FormatInt(t.Magic, 10) != s.Magic {
		return false
	}
	if !s.Window.Contains(t.CloseTime, now) {
		return false
	}
	switch s.Side {
	case LongOnly:
		return t.Direction == trade.Buy
	case ShortOnly:
		return t.Direction == trade.Sell
	}
	return true
}

// Apply returns the trades matching s, in input order. now anchors the
// relative time windows.
func (s Selection) Apply(trades []trade.Trade, now time.Time) []trade.Trade {
	out := make([]trade.Trade, 0, len(trades))
	for _, t := range trades {
		if s.Match(t, now) {
			out = append(out, t)
		}
	}
	return out
}

// Strategies returns the distinct non-empty strategy labels, sorted.
func Strategies(trades []trade.Trade) []string {
	return distinct(trades, func(t trade.Trade) string { return t.Strategy })
}

// Accounts returns the distinct non-empty accounts, sorted.
func Accounts(trades []trade.Trade) []string {
	return distinct(trades, func(t trade.Trade) string { return t.Account })
}

// Symbols returns the distinct non-empty symbols, sorted.
func Symbols(trades []trade.Trade) []string {
	return distinct(trades, func(t trade.Trade) string { return t.Symbol })
}

// Magics returns the distinct magic numbers as strings, numerically
// sorted.
func Magics(trades []trade.Trade) []string {
	seen := map[int64]bool{}
	var nums []int64
	for _, t := range trades {
		if !seen[t.Magic] {
			seen[t.Magic] = true
			nums = append(nums, t.Magic)
		}
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })

	out := make([]string, len(nums))
	for i, n := range nums {
		out[i] = strconv.FormatInt(n, 10)
	}
	return out
}

func distinct(trades []trade.Trade, field func(trade.Trade) string) []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range trades {
		v := field(t)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
