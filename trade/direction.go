package trade

import (
	"fmt"
	"strings"
)

// Direction is the trade operation type as exported by MT-style terminals.
type Direction string

const (
	Unset     Direction = ""
	Buy       Direction = "BUY"
	Sell      Direction = "SELL"
	BuyLimit  Direction = "BUY_LIMIT"
	SellLimit Direction = "SELL_LIMIT"
	BuyStop   Direction = "BUY_STOP"
	SellStop  Direction = "SELL_STOP"
	Balance   Direction = "BALANCE"
	Credit    Direction = "CREDIT"
)

var displayNames = map[Direction]string{
	Buy:       "Buy",
	Sell:      "Sell",
	BuyLimit:  "Buy Limit",
	SellLimit: "Sell Limit",
	BuyStop:   "Buy Stop",
	SellStop:  "Sell Stop",
	Balance:   "Balance",
	Credit:    "Credit",
}

// Directions lists every valid direction in display order.
var Directions = []Direction{Buy, Sell, BuyLimit, SellLimit, BuyStop, SellStop, Balance, Credit}

// DisplayName returns the human label, or "" for Unset.
func (d Direction) DisplayName() string {
	return displayNames[d]
}

func (d Direction) IsBuy() bool {
	return d == Buy || d == BuyLimit || d == BuyStop
}

func (d Direction) IsSell() bool {
	return d == Sell || d == SellLimit || d == SellStop
}

// Valid reports whether d is one of the known directions or Unset.
func (d Direction) Valid() bool {
	if d == Unset {
		return true
	}
	_, ok := displayNames[d]
	return ok
}

// ParseDirection reads a terminal's type column ("buy", "Sell Limit",
// "balance", ...). Empty text is Unset. Text that matches nothing known
// falls back to Buy, which is what the export tools imply for plain
// market orders.
func ParseDirection(s string) Direction {
	n := strings.ToLower(strings.TrimSpace(s))
	switch {
	case n == "":
		return Unset
	case strings.Contains(n, "buy limit"):
		return BuyLimit
	case strings.Contains(n, "sell limit"):
		return SellLimit
	case strings.Contains(n, "buy stop"):
		return BuyStop
	case strings.Contains(n, "sell stop"):
		return SellStop
	case strings.Contains(n, "buy"):
		return Buy
	case strings.Contains(n, "sell"):
		return Sell
	case strings.Contains(n, "balance"):
		return Balance
	case strings.Contains(n, "credit"):
		return Credit
	}
	return Buy
}

// LookupDirection is the strict form used for manual edits: it accepts the
// canonical name ("BUY_LIMIT") or the display name ("Buy Limit") and
// rejects anything else.
func LookupDirection(s string) (Direction, error) {
	n := strings.TrimSpace(s)
	if n == "" {
		return Unset, nil
	}
	for _, d := range Directions {
		if strings.EqualFold(n, string(d)) || strings.EqualFold(n, d.DisplayName()) {
			return d, nil
		}
	}
	return Unset, fmt.Errorf("unknown direction %q", s)
}
