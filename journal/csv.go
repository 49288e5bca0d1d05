package journal

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/trade"
)

var (
	TradeHeader = []string{
		"ticket", "direction", "symbol", "size", "open_time", "close_time",
		"open_price", "close_price", "stop_loss", "take_profit",
		"profit", "commission", "swap", "net_profit",
		"comment", "strategy", "account", "magic",
	}
	EquityHeader = []string{"time", "equity", "index", "ticket"}
)

// CSVWriter exports trades and an equity curve to two CSV files.
type CSVWriter struct {
	trades *csv.Writer
	equity *csv.Writer
	tf, ef *os.File
}

func NewCSV(tradesPath, equityPath string) (*CSVWriter, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		_ = tf.Close()
		return nil, err
	}

	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := tw.Write(TradeHeader); err != nil {
		return nil, err
	}
	if err := ew.Write(EquityHeader); err != nil {
		return nil, err
	}

	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}
	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}

	return &CSVWriter{tw, ew, tf, ef}, nil
}

func (w *CSVWriter) WriteTrade(t trade.Trade) error {
	if err := w.trades.Write(tradeRecord(t)); err != nil {
		return err
	}
	w.trades.Flush()
	return w.trades.Error()
}

func (w *CSVWriter) WriteEquity(p analytics.Point) error {
	if err := w.equity.Write(equityRecord(p)); err != nil {
		return err
	}
	w.equity.Flush()
	return w.equity.Error()
}

func (w *CSVWriter) Close() error {
	w.trades.Flush()
	if err := w.trades.Error(); err != nil {
		return err
	}
	w.equity.Flush()
	if err := w.equity.Error(); err != nil {
		return err
	}

	if err := w.tf.Close(); err != nil {
		return err
	}
	if err := w.ef.Close(); err != nil {
		return err
	}
	return nil
}

// WriteTradesCSV writes a header and one record per trade to w.
func WriteTradesCSV(w io.Writer, trades []trade.Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(TradeHeader); err != nil {
		return err
	}
	for _, t := range trades {
		if err := cw.Write(tradeRecord(t)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEquityCSV writes a header and one record per curve point to w.
func WriteEquityCSV(w io.Writer, pts []analytics.Point) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EquityHeader); err != nil {
		return err
	}
	for _, p := range pts {
		if err := cw.Write(equityRecord(p)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func tradeRecord(t trade.Trade) []string {
	return []string{
		t.Ticket,
		string(t.Direction),
		t.Symbol,
		f(t.Size),
		ts(t.OpenTime),
		ts(t.CloseTime),
		f(t.OpenPrice),
		f(t.ClosePrice),
		f(t.StopLoss),
		f(t.TakeProfit),
		f(t.Profit),
		f(t.Commission),
		f(t.Swap),
		f(t.NetProfit()),
		t.Comment,
		t.Strategy,
		t.Account,
		strconv.FormatInt(t.Magic, 10),
	}
}

func equityRecord(p analytics.Point) []string {
	return []string{
		ts(p.Time),
		f(p.Equity),
		strconv.Itoa(p.Index),
		p.Ticket,
	}
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

// ts formats t as RFC3339; a zero time is an empty field.
func ts(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
