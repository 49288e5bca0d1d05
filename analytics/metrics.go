package analytics

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/trade"
)

// KeyMetrics extends Statistics with side and holding-time figures.
// Long and short cover plain BUY and SELL trades only.
type KeyMetrics struct {
	Statistics

	Long, Short               int
	LongWinRate, ShortWinRate float64
	LongProfit, ShortProfit   float64

	MaxDrawdown float64

	AvgHold, AvgLongHold, AvgShortHold time.Duration
	AvgWinHold, AvgLossHold            time.Duration
}

// ComputeKeyMetrics derives KeyMetrics from the closed trades in trades.
// The drawdown is measured on the curve starting at startingBalance.
// Holding times skip trades without an open time.
func ComputeKeyMetrics(trades []trade.Trade, startingBalance float64) KeyMetrics {
	km := KeyMetrics{
		Statistics:  Compute(trades),
		MaxDrawdown: MaxDrawdown(Build(trades, startingBalance)),
	}

	var (
		longWins, shortWins       int
		longProfit, shortProfit   decimal.Decimal
		all, long, short, win, lo holdAvg
	)

	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		n := net(t)
		hold, timed := t.HoldingTime(), !t.OpenTime.IsZero()

		switch t.Direction {
		case trade.Buy:
			km.Long++
			longProfit = longProfit.Add(n)
			if t.IsWinner() {
				longWins++
			}
			long.add(hold, timed)
		case trade.Sell:
			km.Short++
			shortProfit = shortProfit.Add(n)
			if t.IsWinner() {
				shortWins++
			}
			short.add(hold, timed)
		}

		all.add(hold, timed)
		switch {
		case t.IsWinner():
			win.add(hold, timed)
		case t.IsLoser():
			lo.add(hold, timed)
		}
	}

	if km.Long > 0 {
		km.LongWinRate = float64(longWins) / float64(km.Long)
	}
	if km.Short > 0 {
		km.ShortWinRate = float64(shortWins) / float64(km.Short)
	}
	km.LongProfit = longProfit.InexactFloat64()
	km.ShortProfit = shortProfit.InexactFloat64()

	km.AvgHold = all.mean()
	km.AvgLongHold = long.mean()
	km.AvgShortHold = short.mean()
	km.AvgWinHold = win.mean()
	km.AvgLossHold = lo.mean()
	return km
}

type holdAvg struct {
	sum time.Duration
	n   int
}

func (h *holdAvg) add(d time.Duration, ok bool) {
	if !ok {
		return
	}
	h.sum += d
	h.n++
}

func (h holdAvg) mean() time.Duration {
	if h.n == 0 {
		return 0
	}
	return h.sum / time.Duration(h.n)
}

// FormatDuration renders d as "2d 5h", "3h 30m" or "45m", truncating to
// minutes. Zero renders as "0h".
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0h"
	}
	days := d / (24 * time.Hour)
	hours := (d % (24 * time.Hour)) / time.Hour
	minutes := (d % time.Hour) / time.Minute

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
