package journal

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rustyeddy/tradejournal/trade"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (trade.Trade, error) {
	var (
		t           trade.Trade
		dir         string
		open, close sql.NullTime
	)
	err := s.Scan(
		&t.Ticket, &dir, &t.Symbol, &t.Size,
		&open, &close,
		&t.OpenPrice, &t.ClosePrice, &t.StopLoss, &t.TakeProfit,
		&t.Profit, &t.Commission, &t.Swap,
		&t.Comment, &t.Strategy, &t.Account, &t.Magic,
	)
	if err != nil {
		return trade.Trade{}, err
	}
	t.Direction = trade.Direction(dir)
	if open.Valid {
		t.OpenTime = open.Time
	}
	if close.Valid {
		t.CloseTime = close.Time
	}
	return t, nil
}

// FindByTicket returns a single trade by ticket.
func (j *SQLite) FindByTicket(ticket string) (trade.Trade, error) {
	row := j.db.QueryRow(`SELECT `+tradeColumns+` FROM trades WHERE ticket = ?`, ticket)

	t, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return trade.Trade{}, fmt.Errorf("trade %q: %w", ticket, ErrNotFound)
		}
		return trade.Trade{}, err
	}
	return t, nil
}

// FindAll returns every trade in the order it was first saved.
func (j *SQLite) FindAll() ([]trade.Trade, error) {
	rows, err := j.db.Query(`SELECT ` + tradeColumns + ` FROM trades ORDER BY rowid ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []trade.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
