package analytics

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/trade"
)

// Statistics is a snapshot over the closed trades of a set. GrossLoss is a
// positive magnitude; AverageLoss and LargestLoss are negative or 0.
type Statistics struct {
	Total   int
	Winners int
	Losers  int

	GrossProfit float64
	GrossLoss   float64
	NetProfit   float64

	// WinRate is a fraction in [0, 1].
	WinRate float64
	// ProfitFactor is +Inf when there are gains and no losses.
	ProfitFactor float64

	LargestWin  float64
	LargestLoss float64
	AverageWin  float64
	AverageLoss float64
}

// Compute aggregates the closed trades in trades. Open trades are
// ignored; with no closed trades every field is 0. Trades netting exactly
// 0 count toward Total only.
func Compute(trades []trade.Trade) Statistics {
	var (
		st          Statistics
		gross, loss decimal.Decimal
		maxWin      decimal.Decimal
		minLoss     decimal.Decimal
	)

	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		st.Total++

		n := net(t)
		switch {
		case t.IsWinner():
			if st.Winners == 0 || n.GreaterThan(maxWin) {
				maxWin = n
			}
			st.Winners++
			gross = gross.Add(n)
		case t.IsLoser():
			if st.Losers == 0 || n.LessThan(minLoss) {
				minLoss = n
			}
			st.Losers++
			loss = loss.Add(n)
		}
	}
	if st.Total == 0 {
		return st
	}

	st.GrossProfit = gross.InexactFloat64()
	st.GrossLoss = loss.Abs().InexactFloat64()
	st.NetProfit = gross.Add(loss).InexactFloat64()
	st.WinRate = float64(st.Winners) / float64(st.Total)
	st.ProfitFactor = profitFactor(gross, loss.Abs())
	st.LargestWin = maxWin.InexactFloat64()
	st.LargestLoss = minLoss.InexactFloat64()

	if st.Winners > 0 {
		st.AverageWin = gross.Div(decimal.NewFromInt(int64(st.Winners))).InexactFloat64()
	}
	if st.Losers > 0 {
		st.AverageLoss = loss.Div(decimal.NewFromInt(int64(st.Losers))).InexactFloat64()
	}
	return st
}

// BySymbol computes statistics for trades whose symbol matches
// case-insensitively. An empty symbol selects every trade.
func BySymbol(trades []trade.Trade, symbol string) Statistics {
	return Compute(selectFold(trades, symbol, func(t trade.Trade) string { return t.Symbol }))
}

// MaxDrawdown is the largest fall from a running peak of the curve. The
// peak starts at the first point.
func MaxDrawdown(pts []Point) float64 {
	if len(pts) == 0 {
		return 0
	}
	peak, worst := pts[0].Equity, 0.0
	for _, p := range pts {
		if p.Equity > peak {
			peak = p.Equity
		}
		if dd := peak - p.Equity; dd > worst {
			worst = dd
		}
	}
	return worst
}

func profitFactor(gross, loss decimal.Decimal) float64 {
	if loss.IsZero() {
		if gross.IsPositive() {
			return math.Inf(1)
		}
		return 0
	}
	return gross.Div(loss).InexactFloat64()
}

// StatsBy groups closed trades by key (case-insensitively, first-seen
// spelling) and computes statistics per group. Trades with an empty key
// are skipped.
func StatsBy(trades []trade.Trade, key func(trade.Trade) string) map[string]Statistics {
	groups := map[string][]trade.Trade{}
	names := map[string]string{}
	for _, t := range trades {
		k := key(t)
		if k == "" {
			continue
		}
		lk := strings.ToLower(k)
		if _, ok := names[lk]; !ok {
			names[lk] = k
		}
		groups[lk] = append(groups[lk], t)
	}

	out := make(map[string]Statistics, len(groups))
	for lk, g := range groups {
		out[names[lk]] = Compute(g)
	}
	return out
}
