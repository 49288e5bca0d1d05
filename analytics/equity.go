// Package analytics derives equity curves, statistics and time-bucketed
// breakdowns from trade sets. Every function is a pure computation over
// its input; nothing here is persisted.
package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/trade"
)

// StartTicket labels the synthetic first point of a curve.
const StartTicket = "Start"

// Point is one step of an equity curve.
type Point struct {
	Time   time.Time
	Equity float64
	// Index is 0 for the start point and the 1-based trade position
	// otherwise.
	Index  int
	Ticket string
}

// Build returns the equity curve of the closed trades in trades, ordered
// by close time. Trades closing at the same instant keep their input
// order. The curve opens one second before the first close at
// startingBalance; with no closed trades it is empty.
func Build(trades []trade.Trade, startingBalance float64) []Point {
	closed := closedByCloseTime(trades)
	if len(closed) == 0 {
		return nil
	}

	pts := make([]Point, 0, len(closed)+1)
	pts = append(pts, Point{
		Time:   closed[0].CloseTime.Add(-time.Second),
		Equity: startingBalance,
		Index:  0,
		Ticket: StartTicket,
	})

	equity := decimal.NewFromFloat(startingBalance)
	for i, t := range closed {
		equity = equity.Add(net(t))
		pts = append(pts, Point{
			Time:   t.CloseTime,
			Equity: equity.InexactFloat64(),
			Index:  i + 1,
			Ticket: t.Ticket,
		})
	}
	return pts
}

// ByStrategy builds the curve of trades whose strategy matches
// case-insensitively. An empty strategy selects every trade.
func ByStrategy(trades []trade.Trade, strategy string, startingBalance float64) []Point {
	return Build(selectFold(trades, strategy, func(t trade.Trade) string { return t.Strategy }), startingBalance)
}

// ByAccount builds the curve of trades whose account matches
// case-insensitively. An empty account selects every trade.
func ByAccount(trades []trade.Trade, account string, startingBalance float64) []Point {
	return Build(selectFold(trades, account, func(t trade.Trade) string { return t.Account }), startingBalance)
}

// StrategyCurve is the curve of one strategy label.
type StrategyCurve struct {
	Strategy string
	Balance  float64
	Points   []Point
}

// CurvesByStrategy builds one curve per non-empty strategy label, sorted
// by label. Each curve starts at balance(account) of the first trade to
// close under that label; balance may be nil for zero-based curves.
func CurvesByStrategy(trades []trade.Trade, balance func(account string) float64) []StrategyCurve {
	groups := map[string][]trade.Trade{}
	var names []string
	for _, t := range closedByCloseTime(trades) {
		if t.Strategy == "" {
			continue
		}
		key := strings.ToLower(t.Strategy)
		if _, seen := groups[key]; !seen {
			names = append(names, t.Strategy)
		}
		groups[key] = append(groups[key], t)
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	out := make([]StrategyCurve, 0, len(names))
	for _, name := range names {
		group := groups[strings.ToLower(name)]
		start := 0.0
		if balance != nil {
			start = balance(group[0].Account)
		}
		out = append(out, StrategyCurve{
			Strategy: name,
			Balance:  start,
			Points:   Build(group, start),
		})
	}
	return out
}

func closedByCloseTime(trades []trade.Trade) []trade.Trade {
	closed := make([]trade.Trade, 0, len(trades))
	for _, t := range trades {
		if t.IsClosed() {
			closed = append(closed, t)
		}
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].CloseTime.Before(closed[j].CloseTime)
	})
	return closed
}

func selectFold(trades []trade.Trade, want string, field func(trade.Trade) string) []trade.Trade {
	if strings.TrimSpace(want) == "" {
		return trades
	}
	out := make([]trade.Trade, 0, len(trades))
	for _, t := range trades {
		if strings.EqualFold(field(t), want) {
			out = append(out, t)
		}
	}
	return out
}

func net(t trade.Trade) decimal.Decimal { return t.NetDecimal() }
