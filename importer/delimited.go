package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/trade"
)

const (
	fieldSeparator = ";"
	minFields      = 11
	// DelimitedTimeLayout is the timestamp layout of delimited exports.
	DelimitedTimeLayout = "2006.01.02 15:04"

	maxLineSize = 1 << 20
)

// Field positions of a delimited line.
const (
	fieldTicket = iota
	fieldSymbol
	fieldSize
	fieldDirection
	fieldOpenPrice
	fieldOpenTime
	fieldClosePrice
	fieldCloseTime
	fieldCommission
	fieldSwap
	fieldProfit
	fieldStopLoss
	fieldTakeProfit
	fieldMagic
)

var (
	ErrTooFewFields = errors.New("too few fields")
	ErrNoTicket     = errors.New("empty ticket")
)

// ParseLine parses one semicolon-delimited trade line. Timestamps are read
// as wall-clock time in loc (time.Local when nil). Unparseable numbers
// are 0 and unparseable times are zero.
func ParseLine(line string, loc *time.Location) (trade.Trade, error) {
	if loc == nil {
		loc = time.Local
	}

	f := splitFields(line)
	if len(f) < minFields {
		return trade.Trade{}, fmt.Errorf("%w: got %d, need at least %d", ErrTooFewFields, len(f), minFields)
	}

	field := func(i int) string {
		if i >= len(f) {
			return ""
		}
		return strings.TrimSpace(f[i])
	}

	t := trade.Trade{
		Ticket:     field(fieldTicket),
		Symbol:     field(fieldSymbol),
		Size:       math.Abs(parseFloat(field(fieldSize))),
		Direction:  parseSide(field(fieldDirection)),
		OpenPrice:  parseFloat(field(fieldOpenPrice)),
		OpenTime:   parseDelimitedTime(field(fieldOpenTime), loc),
		ClosePrice: parseFloat(field(fieldClosePrice)),
		CloseTime:  parseDelimitedTime(field(fieldCloseTime), loc),
		Commission: parseFloat(field(fieldCommission)),
		Swap:       parseFloat(field(fieldSwap)),
		Profit:     parseFloat(field(fieldProfit)),
		StopLoss:   parseFloat(field(fieldStopLoss)),
		TakeProfit: parseFloat(field(fieldTakeProfit)),
		Magic:      parseInt(field(fieldMagic)),
	}
	if t.Ticket == "" {
		return trade.Trade{}, ErrNoTicket
	}
	return t, nil
}

// ImportDelimited parses every line of r. Malformed lines are counted and
// logged; only a read error fails the import.
func (im *Importer) ImportDelimited(r io.Reader) (Report, error) {
	log := im.Log.With().Str("component", "delimited").Logger()
	rep := Report{Format: FormatDelimited, HeaderRow: -1}
	loc := im.loc()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if n == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" {
			rep.Empty++
			continue
		}
		rep.Processed++

		t, err := ParseLine(line, loc)
		switch {
		case errors.Is(err, ErrNoTicket):
			rep.NoTicket++
			log.Debug().Int("line", n).Msg("line skipped: no ticket")
		case err != nil:
			rep.fail(n, err)
			log.Warn().Int("line", n).Err(err).Msg("line skipped")
		default:
			rep.Trades = append(rep.Trades, t)
		}
	}
	if err := sc.Err(); err != nil {
		return rep, fmt.Errorf("read line %d: %w", n+1, err)
	}
	return rep, nil
}

// splitFields splits on the separator and drops trailing empty fields, so
// "a;b;;" has two fields.
func splitFields(line string) []string {
	f := strings.Split(strings.TrimRight(line, "\r"), fieldSeparator)
	for len(f) > 0 && f[len(f)-1] == "" {
		f = f[:len(f)-1]
	}
	return f
}

func parseSide(s string) trade.Direction {
	switch strings.ToLower(s) {
	case "long":
		return trade.Buy
	case "short":
		return trade.Sell
	}
	return trade.Unset
}

func parseDelimitedTime(s string, loc *time.Location) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(DelimitedTimeLayout, s, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}
