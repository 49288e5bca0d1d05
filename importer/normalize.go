package importer

import (
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/tradejournal/trade"
)

// GeneratedTicket is the ticket given to rows of a sheet without a ticket
// column: row index plus the batch timestamp in epoch milliseconds.
func GeneratedTicket(rowIndex int, now time.Time) string {
	return fmt.Sprintf("%s%d-%d", trade.GeneratedPrefix, rowIndex, now.UnixMilli())
}

// NormalizeRow converts one data row into a Trade using cols. ok is false
// when the sheet has a ticket column but this row leaves it blank.
func NormalizeRow(row []Cell, rowIndex int, cols ColumnMap, now time.Time) (t trade.Trade, ok bool) {
	str := func(r Role) (string, bool) {
		if !cols.Has(r) {
			return "", false
		}
		return cellAt(row, cols.Index(r)).String()
	}
	num := func(r Role) float64 {
		if !cols.Has(r) {
			return 0
		}
		return cellAt(row, cols.Index(r)).Float()
	}
	ts := func(r Role) time.Time {
		if !cols.Has(r) {
			return time.Time{}
		}
		return cellAt(row, cols.Index(r)).Timestamp()
	}

	if cols.Has(RoleTicket) {
		s, present := str(RoleTicket)
		if !present {
			return trade.Trade{}, false
		}
		t.Ticket = s
	} else {
		t.Ticket = GeneratedTicket(rowIndex, now)
	}

	if s, present := str(RoleType); present {
		t.Direction = trade.ParseDirection(s)
	}
	if s, present := str(RoleSymbol); present {
		t.Symbol = s
	}
	if s, present := str(RoleComment); present {
		t.Comment = s
	}
	if s, present := str(RoleStrategy); present {
		t.Strategy = s
	}
	if s, present := str(RoleAccount); present {
		t.Account = s
	}

	t.OpenTime = ts(RoleOpenTime)
	t.CloseTime = ts(RoleCloseTime)

	t.Size = math.Abs(num(RoleSize))
	t.OpenPrice = num(RoleOpenPrice)
	t.ClosePrice = num(RoleClosePrice)
	t.StopLoss = num(RoleStopLoss)
	t.TakeProfit = num(RoleTakeProfit)
	t.Profit = num(RoleProfit)
	t.Commission = num(RoleCommission)
	t.Swap = num(RoleSwap)

	return t, true
}
