package importer

import (
	"strings"
)

// Role is the canonical meaning of a sheet column.
type Role int

const (
	RoleTicket Role = iota
	RoleOpenTime
	RoleCloseTime
	RoleType
	RoleSize
	RoleSymbol
	RoleOpenPrice
	RoleClosePrice
	RoleStopLoss
	RoleTakeProfit
	RoleCommission
	RoleSwap
	RoleProfit
	RoleComment
	RoleStrategy
	RoleAccount
	numRoles
)

// Absent is the column index of a role the header does not provide.
const Absent = -1

var roleNames = [numRoles]string{
	"ticket", "open_time", "close_time", "type", "size", "symbol",
	"open_price", "close_price", "stop_loss", "take_profit",
	"commission", "swap", "profit", "comment", "strategy", "account",
}

func (r Role) String() string {
	if r < 0 || r >= numRoles {
		return "unknown"
	}
	return roleNames[r]
}

// ColumnMap maps each role to a column index or Absent.
type ColumnMap [numRoles]int

func NewColumnMap() ColumnMap {
	var m ColumnMap
	for i := range m {
		m[i] = Absent
	}
	return m
}

func (m ColumnMap) Index(r Role) int { return m[r] }
func (m ColumnMap) Has(r Role) bool  { return m[r] != Absent }

// pairSlot assigns the first matching column to the open role and the
// second to the close role. Later matches are ignored.
type pairSlot struct {
	openFilled, closeFilled bool
}

func (p *pairSlot) assign(m *ColumnMap, open, close Role, col int) {
	switch {
	case !p.openFilled:
		m[open] = col
		p.openFilled = true
	case !p.closeFilled:
		m[close] = col
		p.closeFilled = true
	}
}

// MapColumns assigns roles to header cells by substring match on the
// lower-cased trimmed label. Rules are tried in a fixed order and the
// first rule that matches claims the column.
//
// The stop-loss ("s" and "l") and take-profit ("t" and "p") rules are
// loose: any label holding those letters that no earlier rule claimed
// lands there. A plain "Profit" header, for example, reaches the
// take-profit rule before the profit rule.
func MapColumns(header []string) ColumnMap {
	m := NewColumnMap()
	var times, prices pairSlot

	for i, label := range header {
		n := strings.ToLower(strings.TrimSpace(label))
		if n == "" {
			continue
		}

		switch {
		case has(n, "ticket", "order", "deal") || n == "position":
			m[RoleTicket] = i
		case has(n, "time"):
			times.assign(&m, RoleOpenTime, RoleCloseTime, i)
		case has(n, "type"):
			m[RoleType] = i
		case has(n, "size", "volume", "lots"):
			m[RoleSize] = i
		case has(n, "symbol", "item"):
			m[RoleSymbol] = i
		case has(n, "price"):
			prices.assign(&m, RoleOpenPrice, RoleClosePrice, i)
		case strings.Contains(n, "s") && strings.Contains(n, "l"):
			m[RoleStopLoss] = i
		case strings.Contains(n, "t") && strings.Contains(n, "p"):
			m[RoleTakeProfit] = i
		case has(n, "commission"):
			m[RoleCommission] = i
		case has(n, "swap"):
			m[RoleSwap] = i
		case has(n, "profit"):
			m[RoleProfit] = i
		case has(n, "comment"):
			m[RoleComment] = i
		case has(n, "strategy", "tag"):
			m[RoleStrategy] = i
		case has(n, "account", "acct"):
			m[RoleAccount] = i
		}
	}

	return m
}

// HeaderLabels renders a header row as text for MapColumns.
func HeaderLabels(row []Cell) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i], _ = c.String()
	}
	return out
}

func has(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
