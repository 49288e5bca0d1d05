package trade

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetProfitAndOutcome(t *testing.T) {
	t.Parallel()

	tr := Trade{Profit: 50, Commission: -2, Swap: -0.5}
	assert.InDelta(t, 47.5, tr.NetProfit(), 1e-9)
	assert.True(t, tr.IsWinner())
	assert.False(t, tr.IsLoser())

	flat := Trade{Profit: 2, Commission: -2}
	assert.False(t, flat.IsWinner())
	assert.False(t, flat.IsLoser())

	loss := Trade{Profit: -10}
	assert.True(t, loss.IsLoser())

	// 0.3 - 0.1 - 0.2 is -2.8e-17 in float arithmetic
	noise := Trade{Profit: 0.3, Commission: -0.1, Swap: -0.2}
	assert.Equal(t, 0.0, noise.NetProfit())
	assert.True(t, noise.NetDecimal().IsZero())
	assert.False(t, noise.IsWinner())
	assert.False(t, noise.IsLoser())
}

func TestIsClosedAndHoldingTime(t *testing.T) {
	t.Parallel()

	open := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	tr := Trade{Ticket: "1", OpenTime: open}
	assert.False(t, tr.IsClosed())
	assert.Equal(t, time.Duration(0), tr.HoldingTime())

	closed := tr.WithClose(open.Add(2*time.Hour), 1.1)
	assert.True(t, closed.IsClosed())
	assert.Equal(t, 2*time.Hour, closed.HoldingTime())

	// the receiver is untouched
	assert.False(t, tr.IsClosed())
}

func TestWithMethodsReturnCopies(t *testing.T) {
	t.Parallel()

	base := Trade{Ticket: "T1", Strategy: "breakout", Account: "main", Magic: 7}
	edited := base.WithStrategy("scalp").WithAccount("demo").WithMagic(9).WithComment("note").WithDirection(Sell)

	assert.Equal(t, "breakout", base.Strategy)
	assert.Equal(t, "main", base.Account)
	assert.Equal(t, int64(7), base.Magic)

	assert.Equal(t, "scalp", edited.Strategy)
	assert.Equal(t, "demo", edited.Account)
	assert.Equal(t, int64(9), edited.Magic)
	assert.Equal(t, "note", edited.Comment)
	assert.Equal(t, Sell, edited.Direction)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"", Unset},
		{"   ", Unset},
		{"buy", Buy},
		{"Sell", Sell},
		{"Buy Limit", BuyLimit},
		{"SELL LIMIT", SellLimit},
		{"buy stop", BuyStop},
		{"sell stop", SellStop},
		{"balance", Balance},
		{"Credit", Credit},
		{"something else", Buy},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDirection(tt.in))
		})
	}
}

func TestLookupDirection(t *testing.T) {
	d, err := LookupDirection("Buy Limit")
	require.NoError(t, err)
	assert.Equal(t, BuyLimit, d)

	d, err = LookupDirection("sell_stop")
	require.NoError(t, err)
	assert.Equal(t, SellStop, d)

	d, err = LookupDirection("")
	require.NoError(t, err)
	assert.Equal(t, Unset, d)

	_, err = LookupDirection("long")
	assert.Error(t, err)
}

func TestDirectionSides(t *testing.T) {
	assert.True(t, BuyStop.IsBuy())
	assert.True(t, SellLimit.IsSell())
	assert.False(t, Balance.IsBuy())
	assert.False(t, Balance.IsSell())
	assert.Equal(t, "Buy Limit", BuyLimit.DisplayName())
	assert.True(t, Unset.Valid())
	assert.False(t, Direction("LONG").Valid())
}

func TestManualTicket(t *testing.T) {
	assert.Equal(t, "X1", ManualTicket("  X1 "))

	gen := ManualTicket("")
	assert.True(t, strings.HasPrefix(gen, ManualPrefix))
	assert.Len(t, gen, len(ManualPrefix)+8)
	assert.True(t, IsSynthetic(gen))
	assert.NotEqual(t, gen, ManualTicket(""))

	assert.True(t, IsSynthetic("GEN-4-1700000000000"))
	assert.False(t, IsSynthetic("1001"))
}
