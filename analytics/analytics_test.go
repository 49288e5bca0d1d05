package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/trade"
)

var day0 = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func closedTrade(ticket string, net float64, closeAt time.Time) trade.Trade {
	return trade.Trade{
		Ticket:    ticket,
		Direction: trade.Buy,
		Symbol:    "EURUSD",
		OpenTime:  closeAt.Add(-time.Hour),
		CloseTime: closeAt,
		Profit:    net,
	}
}

func TestBuildEmpty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Build(nil, 1000))

	open := trade.Trade{Ticket: "1", Profit: 50}
	assert.Empty(t, Build([]trade.Trade{open}, 1000))
}

func TestBuildCurve(t *testing.T) {
	t.Parallel()

	trades := []trade.Trade{
		closedTrade("c", 20, day0.Add(3*time.Hour)),
		closedTrade("a", 100, day0.Add(time.Hour)),
		{Ticket: "open", Profit: 999},
		closedTrade("b", -40, day0.Add(2*time.Hour)),
	}

	pts := Build(trades, 1000)
	require.Len(t, pts, 4)

	assert.Equal(t, Point{Time: day0.Add(time.Hour - time.Second), Equity: 1000, Index: 0, Ticket: StartTicket}, pts[0])
	assert.Equal(t, "a", pts[1].Ticket)
	assert.Equal(t, 1, pts[1].Index)
	assert.InDelta(t, 1100, pts[1].Equity, 1e-9)
	assert.Equal(t, "b", pts[2].Ticket)
	assert.InDelta(t, 1060, pts[2].Equity, 1e-9)
	assert.Equal(t, "c", pts[3].Ticket)
	assert.Equal(t, 3, pts[3].Index)
	assert.InDelta(t, 1080, pts[3].Equity, 1e-9)
}

func TestBuildStableTies(t *testing.T) {
	t.Parallel()

	at := day0.Add(time.Hour)
	trades := []trade.Trade{
		closedTrade("z", 1, at),
		closedTrade("y", 2, at),
		closedTrade("x", 3, at),
	}

	pts := Build(trades, 0)
	require.Len(t, pts, 4)
	assert.Equal(t, []string{StartTicket, "z", "y", "x"}, []string{pts[0].Ticket, pts[1].Ticket, pts[2].Ticket, pts[3].Ticket})
}

func TestBuildEndpoints(t *testing.T) {
	t.Parallel()

	nets := []float64{0.1, 0.2, -0.3, 12.34, -5.67, 0.01}
	var trades []trade.Trade
	sum := 0.0
	for i, n := range nets {
		trades = append(trades, closedTrade(string(rune('a'+i)), n, day0.Add(time.Duration(i)*time.Minute)))
		sum += n
	}

	for _, start := range []float64{0, 250.5, -10} {
		pts := Build(trades, start)
		require.NotEmpty(t, pts)
		assert.Equal(t, start, pts[0].Equity)
		assert.InDelta(t, start+sum, pts[len(pts)-1].Equity, 1e-9)
	}
}

func TestByStrategyAndAccount(t *testing.T) {
	t.Parallel()

	trades := []trade.Trade{
		closedTrade("1", 10, day0).WithStrategy("Breakout").WithAccount("Main"),
		closedTrade("2", 20, day0.Add(time.Hour)).WithStrategy("breakout").WithAccount("Prop"),
		closedTrade("3", 30, day0.Add(2*time.Hour)).WithStrategy("Scalp").WithAccount("main"),
	}

	pts := ByStrategy(trades, "BREAKOUT", 0)
	require.Len(t, pts, 3)
	assert.InDelta(t, 30, pts[2].Equity, 1e-9)

	pts = ByAccount(trades, "MAIN", 100)
	require.Len(t, pts, 3)
	assert.Equal(t, "3", pts[2].Ticket)
	assert.InDelta(t, 140, pts[2].Equity, 1e-9)

	assert.Len(t, ByStrategy(trades, "", 0), 4)
	assert.Len(t, ByStrategy(trades, "  ", 0), 4)
	assert.Len(t, ByAccount(trades, "\t", 0), 4)
	assert.Equal(t, 3, BySymbol(trades, " ").Total)
	assert.Empty(t, ByAccount(trades, "nobody", 0))
}

func TestCurvesByStrategy(t *testing.T) {
	t.Parallel()

	trades := []trade.Trade{
		closedTrade("1", 10, day0.Add(time.Hour)).WithStrategy("Scalp").WithAccount("Prop"),
		closedTrade("2", 20, day0).WithStrategy("Scalp").WithAccount("Main"),
		closedTrade("3", 30, day0).WithStrategy("Breakout").WithAccount("Prop"),
		closedTrade("4", 40, day0),
	}
	balances := map[string]float64{"Main": 1000, "Prop": 5000}

	curves := CurvesByStrategy(trades, func(a string) float64 { return balances[a] })
	require.Len(t, curves, 2)

	assert.Equal(t, "Breakout", curves[0].Strategy)
	assert.Equal(t, 5000.0, curves[0].Balance)
	assert.Equal(t, "Scalp", curves[1].Strategy)
	// trade 2 closes first, so the Main balance seeds the curve
	assert.Equal(t, 1000.0, curves[1].Balance)
	assert.InDelta(t, 1030, curves[1].Points[len(curves[1].Points)-1].Equity, 1e-9)
}

func TestComputeScenario(t *testing.T) {
	t.Parallel()

	trades := []trade.Trade{
		closedTrade("1", 100, day0),
		closedTrade("2", -40, day0.Add(time.Hour)),
		closedTrade("3", 20, day0.Add(2*time.Hour)),
	}

	st := Compute(trades)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.Winners)
	assert.Equal(t, 1, st.Losers)
	assert.InDelta(t, 120, st.GrossProfit, 1e-9)
	assert.InDelta(t, 40, st.GrossLoss, 1e-9)
	assert.InDelta(t, 80, st.NetProfit, 1e-9)
	assert.InDelta(t, 0.667, st.WinRate, 1e-3)
	assert.InDelta(t, 3.0, st.ProfitFactor, 1e-9)
	assert.InDelta(t, 100, st.LargestWin, 1e-9)
	assert.InDelta(t, -40, st.LargestLoss, 1e-9)
	assert.InDelta(t, 60, st.AverageWin, 1e-9)
	assert.InDelta(t, -40, st.AverageLoss, 1e-9)
}

func TestComputeDegenerate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Statistics{}, Compute(nil))
	assert.Equal(t, Statistics{}, Compute([]trade.Trade{{Ticket: "open", Profit: 10}}))

	winsOnly := Compute([]trade.Trade{closedTrade("1", 5, day0), closedTrade("2", 7, day0)})
	assert.True(t, math.IsInf(winsOnly.ProfitFactor, 1))
	assert.Zero(t, winsOnly.LargestLoss)
	assert.Zero(t, winsOnly.AverageLoss)

	flat := Compute([]trade.Trade{closedTrade("1", 0, day0)})
	assert.Equal(t, 1, flat.Total)
	assert.Zero(t, flat.Winners)
	assert.Zero(t, flat.Losers)
	assert.Zero(t, flat.ProfitFactor)
	assert.Zero(t, flat.WinRate)
	assert.False(t, math.IsNaN(flat.AverageWin))
}

func TestComputeCommissionAndSwap(t *testing.T) {
	t.Parallel()

	tr := closedTrade("1", 5, day0).WithResult(5, -3, -2)
	st := Compute([]trade.Trade{tr})
	assert.Equal(t, 1, st.Total)
	assert.Zero(t, st.Winners)
	assert.Zero(t, st.Losers)
}

func TestComputeAgreesWithTradeOutcome(t *testing.T) {
	t.Parallel()

	noise := closedTrade("n", 0, day0).WithResult(0.3, -0.1, -0.2)
	loss := closedTrade("l", 0, day0.Add(time.Hour)).WithResult(0.3, -0.1, -0.25)
	trades := []trade.Trade{noise, loss}

	st := Compute(trades)
	assert.Equal(t, 2, st.Total)
	assert.Equal(t, 0, st.Winners)
	assert.Equal(t, 1, st.Losers)
	assert.InDelta(t, -0.05, st.NetProfit, 1e-12)

	assert.False(t, noise.IsWinner() || noise.IsLoser())
	assert.True(t, loss.IsLoser())

	km := ComputeKeyMetrics(trades, 0)
	assert.Equal(t, 0, km.Winners)
	assert.Equal(t, 1, km.Losers)
	assert.Equal(t, time.Hour, km.AvgLossHold)
	assert.Equal(t, time.Duration(0), km.AvgWinHold)
}

func TestBySymbol(t *testing.T) {
	t.Parallel()

	trades := []trade.Trade{
		closedTrade("1", 10, day0).WithSymbol("EURUSD"),
		closedTrade("2", -5, day0).WithSymbol("gbpusd"),
	}
	st := BySymbol(trades, "GBPUSD")
	assert.Equal(t, 1, st.Total)
	assert.InDelta(t, -5, st.NetProfit, 1e-9)
	assert.Equal(t, 2, BySymbol(trades, "").Total)

	per := StatsBy(trades, func(t trade.Trade) string { return t.Symbol })
	assert.Len(t, per, 2)
	assert.Equal(t, 1, per["gbpusd"].Losers)
}

func TestMaxDrawdown(t *testing.T) {
	t.Parallel()

	curve := func(eq ...float64) []Point {
		pts := make([]Point, len(eq))
		for i, e := range eq {
			pts[i] = Point{Equity: e, Index: i}
		}
		return pts
	}

	tests := []struct {
		name string
		pts  []Point
		want float64
	}{
		{"empty", nil, 0},
		{"rising", curve(0, 10, 20), 0},
		{"single dip", curve(100, 80, 120), 20},
		{"deeper later", curve(0, 50, 30, 80, 10, 90), 70},
		{"below start", curve(100, 60, 70), 40},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, MaxDrawdown(tt.pts), 1e-9)
		})
	}
}
