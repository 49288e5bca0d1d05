package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradejournal/trade"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	tr := sampleTrade("1234567890")
	tr.Direction = trade.Sell
	out := FormatTradeOrg(tr)

	assert.True(t, strings.HasPrefix(out, "** Trade: EURUSD Sell (12345678)\n"), out)
	assert.Contains(t, out, ":TICKET: 1234567890\n")
	assert.Contains(t, out, ":DIRECTION: SELL\n")
	assert.Contains(t, out, ":SIZE: 0.50\n")
	assert.Contains(t, out, ":OPEN_PRICE: 1.08500\n")
	assert.Contains(t, out, ":OPEN_TIME: 2024-03-04T09:30:00Z\n")
	assert.Contains(t, out, ":NET_PROFIT: 246.25\n")
	assert.Contains(t, out, ":STRATEGY: Trend\n")
	assert.Contains(t, out, ":MAGIC: 42\n")
	assert.Contains(t, out, "*** Execution\n- breakout\n")
	assert.Contains(t, out, "*** Review\n")
}

func TestFormatTradeOrgSparse(t *testing.T) {
	t.Parallel()

	out := FormatTradeOrg(trade.Trade{Ticket: "MAN-1", Symbol: "XAUUSD"})

	assert.True(t, strings.HasPrefix(out, "** Trade: XAUUSD (MAN-1)\n"), out)
	assert.Contains(t, out, ":CLOSE_TIME: (open)\n")
	assert.NotContains(t, out, ":STRATEGY:")
	assert.NotContains(t, out, ":ACCOUNT:")
	assert.NotContains(t, out, ":MAGIC:")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	a := sampleTrade("A")
	b := sampleTrade("B")
	b.CloseTime = time.Time{}

	out := FormatTradesOrg([]trade.Trade{a, b})
	assert.Equal(t, 2, strings.Count(out, "** Trade: "))
	assert.Contains(t, out, "\n\n\n** Trade: EURUSD Buy (B)")
	assert.Empty(t, FormatTradesOrg(nil))
}

func TestFormatNoteOrg(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 5, 6, 7, 8, 0, 0, time.UTC)
	n := Note{ID: "01HXNOTE", Title: "Monday plan", Content: "  wait for London open \n", Created: at, Updated: at.Add(time.Hour)}
	out := FormatNoteOrg(n)

	assert.True(t, strings.HasPrefix(out, "** Note: Monday plan\n"), out)
	assert.Contains(t, out, ":ID: 01HXNOTE\n")
	assert.Contains(t, out, ":CREATED: 2024-05-06T07:08:00Z\n")
	assert.Contains(t, out, ":UPDATED: 2024-05-06T08:08:00Z\n")
	assert.True(t, strings.HasSuffix(out, ":END:\n\nwait for London open\n"), out)

	empty := FormatNoteOrg(Note{ID: "x"})
	assert.Contains(t, empty, "** Note: Untitled Note\n")
	assert.True(t, strings.HasSuffix(empty, ":END:\n"))
}
