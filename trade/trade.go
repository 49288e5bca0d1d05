// trade/trade.go
package trade

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is the canonical record of one broker trade. It is a value type:
// copies are independent, and edits go through the With* methods so merge
// rules can be written as plain functions.
//
// A zero OpenTime or CloseTime means the timestamp is absent. A trade
// without a CloseTime is still open.
type Trade struct {
	Ticket    string
	Direction Direction
	Symbol    string
	Size      float64

	OpenTime   time.Time
	CloseTime  time.Time
	OpenPrice  float64
	ClosePrice float64
	StopLoss   float64
	TakeProfit float64

	Profit     float64
	Commission float64
	Swap       float64

	Comment  string
	Strategy string
	Account  string
	Magic    int64
}

// NetDecimal is gross profit plus commission plus swap, summed exactly so
// that 0.3 - 0.1 - 0.2 nets to 0.
func (t Trade) NetDecimal() decimal.Decimal {
	return decimal.NewFromFloat(t.Profit).
		Add(decimal.NewFromFloat(t.Commission)).
		Add(decimal.NewFromFloat(t.Swap))
}

// NetProfit is NetDecimal as a float.
func (t Trade) NetProfit() float64 {
	return t.NetDecimal().InexactFloat64()
}

// A trade netting exactly 0 is neither a winner nor a loser.
func (t Trade) IsWinner() bool { return t.NetDecimal().IsPositive() }
func (t Trade) IsLoser() bool  { return t.NetDecimal().IsNegative() }
func (t Trade) IsClosed() bool { return !t.CloseTime.IsZero() }

// HoldingTime is the time between open and close. It is zero unless both
// timestamps are present.
func (t Trade) HoldingTime() time.Duration {
	if t.OpenTime.IsZero() || t.CloseTime.IsZero() {
		return 0
	}
	return t.CloseTime.Sub(t.OpenTime)
}

func (t Trade) WithStrategy(s string) Trade {
	t.Strategy = s
	return t
}

func (t Trade) WithAccount(a string) Trade {
	t.Account = a
	return t
}

func (t Trade) WithComment(c string) Trade {
	t.Comment = c
	return t
}

func (t Trade) WithMagic(m int64) Trade {
	t.Magic = m
	return t
}

func (t Trade) WithDirection(d Direction) Trade {
	t.Direction = d
	return t
}

func (t Trade) WithSymbol(s string) Trade {
	t.Symbol = s
	return t
}

// WithClose sets the close side of the trade.
func (t Trade) WithClose(at time.Time, price float64) Trade {
	t.CloseTime = at
	t.ClosePrice = price
	return t
}

// WithResult sets the economic result fields.
func (t Trade) WithResult(profit, commission, swap float64) Trade {
	t.Profit = profit
	t.Commission = commission
	t.Swap = swap
	return t
}
