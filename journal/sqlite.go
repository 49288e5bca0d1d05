package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradejournal/trade"
)

// SQLite is a Journal backed by a SQLite database file.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// one connection keeps ":memory:" databases shared and serializes writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

const tradeColumns = `ticket, direction, symbol, size, open_time, close_time,
	open_price, close_price, stop_loss, take_profit, profit, commission, swap,
	comment, strategy, account, magic`

const upsertTrade = `
	INSERT INTO trades (` + tradeColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(ticket) DO UPDATE SET
		direction = excluded.direction,
		symbol = excluded.symbol,
		size = excluded.size,
		open_time = excluded.open_time,
		close_time = excluded.close_time,
		open_price = excluded.open_price,
		close_price = excluded.close_price,
		stop_loss = excluded.stop_loss,
		take_profit = excluded.take_profit,
		profit = excluded.profit,
		commission = excluded.commission,
		swap = excluded.swap,
		comment = excluded.comment,
		strategy = excluded.strategy,
		account = excluded.account,
		magic = excluded.magic`

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func saveTrade(x execer, t trade.Trade) error {
	_, err := x.Exec(upsertTrade,
		t.Ticket, string(t.Direction), t.Symbol, t.Size,
		nullTime(t.OpenTime), nullTime(t.CloseTime),
		t.OpenPrice, t.ClosePrice, t.StopLoss, t.TakeProfit,
		t.Profit, t.Commission, t.Swap,
		t.Comment, t.Strategy, t.Account, t.Magic,
	)
	if err != nil {
		return fmt.Errorf("save trade %q: %w", t.Ticket, err)
	}
	return nil
}

func (j *SQLite) Save(t trade.Trade) error {
	if err := validTicket(t); err != nil {
		return err
	}
	return saveTrade(j.db, t)
}

// SaveAll writes trades in one transaction.
func (j *SQLite) SaveAll(trades []trade.Trade) error {
	for _, t := range trades {
		if err := validTicket(t); err != nil {
			return err
		}
	}

	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	for _, t := range trades {
		if err := saveTrade(tx, t); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (j *SQLite) Delete(ticket string) (bool, error) {
	return j.deleteOne(`DELETE FROM trades WHERE ticket = ?`, ticket)
}

func (j *SQLite) DeleteAll() error {
	_, err := j.db.Exec(`DELETE FROM trades`)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
