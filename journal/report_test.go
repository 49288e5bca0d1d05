package journal

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/trade"
)

func reportTrades() []trade.Trade {
	base := time.Date(2024, 5, 6, 10, 0, 0, 0, time.UTC)
	mk := func(ticket string, dir trade.Direction, profit float64, hours int) trade.Trade {
		return trade.Trade{
			Ticket:    ticket,
			Direction: dir,
			Symbol:    "EURUSD",
			OpenTime:  base,
			CloseTime: base.Add(time.Duration(hours) * time.Hour),
			Profit:    profit,
		}
	}
	return []trade.Trade{
		mk("1", trade.Buy, 100, 2),
		mk("2", trade.Sell, -40, 4),
		mk("3", trade.Buy, 20, 6),
	}
}

func TestNewReport(t *testing.T) {
	t.Parallel()

	km := analytics.ComputeKeyMetrics(reportTrades(), 1000)
	r := NewReport("strategy Trend", 1000, km)

	assert.Equal(t, 1080.0, r.EndBalance)
	assert.InDelta(t, 8.0, r.ReturnPct(), 1e-9)
	assert.False(t, r.Created.IsZero())

	assert.Equal(t, 0.0, Report{}.ReturnPct())
}

func TestReportWriteOrg(t *testing.T) {
	t.Parallel()

	trades := reportTrades()
	r := NewReport("", 1000, analytics.ComputeKeyMetrics(trades, 1000))
	r.Created = time.Date(2024, 5, 7, 8, 0, 0, 0, time.UTC)
	r.Symbols = analytics.StatsBy(trades, func(t trade.Trade) string { return t.Symbol })
	r.Notes = []string{"shorts underperform"}

	var buf bytes.Buffer
	require.NoError(t, r.WriteOrg(&buf))
	out := buf.String()

	assert.Contains(t, out, "* JOURNAL: all trades\n")
	assert.Contains(t, out, ":CREATED:     [2024-05-07 Tue 08:00]")
	assert.Contains(t, out, ":NET_PL:      80.00")
	assert.Contains(t, out, ":TRADES:      3")
	assert.Contains(t, out, ":PROFIT_FAC:  3.00")
	assert.Contains(t, out, "- Win Rate:         *66.7%*")
	assert.Contains(t, out, "| Long  | 2 | 100.0% | 120.00 | 4h 0m |")
	assert.Contains(t, out, "| EURUSD | 3 |")
	assert.Contains(t, out, "- shorts underperform")
}

func TestReportWriteOrgFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.org")
	r := NewReport("account Main", 0, analytics.ComputeKeyMetrics(nil, 0))
	require.NoError(t, r.WriteOrgFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "* JOURNAL: account Main")
	assert.NotContains(t, string(data), "** By Symbol")
}

func TestPrintReport(t *testing.T) {
	t.Parallel()

	r := NewReport("period 30d", 1000, analytics.ComputeKeyMetrics(reportTrades(), 1000))

	var buf bytes.Buffer
	PrintReport(&buf, r)
	out := buf.String()

	assert.Contains(t, out, "Scope:         period 30d")
	assert.Contains(t, out, "Trades:        3")
	assert.Contains(t, out, "Win Rate:      66.7%")
	assert.Contains(t, out, "End Balance:   1080.00")
	assert.Contains(t, out, "Return:        8.00%")
	assert.Contains(t, out, "Max Drawdown:  40.00")
}

func TestFormatProfitFactor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "inf", formatProfitFactor(math.Inf(1)))
	assert.Equal(t, "1.50", formatProfitFactor(1.5))
	assert.Equal(t, "0.00", formatProfitFactor(0))
}
