package importer

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CellKind is the storage type of a spreadsheet cell.
type CellKind int

const (
	Blank CellKind = iota
	Text
	Number
	// Date is a numeric cell carrying a date number format.
	Date
	Bool
)

// Cell is one spreadsheet value. Num holds the raw serial for Date cells
// as well, the way spreadsheet numeric storage does.
type Cell struct {
	Kind CellKind
	Str  string
	Num  float64
	Time time.Time
	Flag bool
}

func TextCell(s string) Cell    { return Cell{Kind: Text, Str: s} }
func NumberCell(n float64) Cell { return Cell{Kind: Number, Num: n} }
func BoolCell(b bool) Cell      { return Cell{Kind: Bool, Flag: b} }

// DateCell builds a date-formatted numeric cell. serial is optional.
func DateCell(t time.Time, serial ...float64) Cell {
	c := Cell{Kind: Date, Time: t}
	if len(serial) > 0 {
		c.Num = serial[0]
	}
	return c
}

// Sheet is the grid read from the first worksheet of a workbook. Missing
// rows are empty slices; RowErrors holds rows whose cells could not be
// read, keyed by 0-based row index.
type Sheet struct {
	Name      string
	Rows      [][]Cell
	RowErrors map[int]error
}

// cellAt returns the cell at column j, or a Blank cell when the row is
// shorter.
func cellAt(row []Cell, j int) Cell {
	if j < 0 || j >= len(row) {
		return Cell{}
	}
	return row[j]
}

// String renders the cell as text. ok is false for blank cells. Numbers
// render as integers, which is how ticket columns stored as numbers read
// back ("1001", not "1001.0").
func (c Cell) String() (s string, ok bool) {
	switch c.Kind {
	case Text:
		return c.Str, true
	case Number:
		return strconv.FormatInt(int64(c.Num), 10), true
	case Date:
		return c.Time.Format("2006-01-02 15:04:05"), true
	case Bool:
		return strconv.FormatBool(c.Flag), true
	}
	return "", false
}

// Float coerces the cell to a number. Anything unparseable is 0.
func (c Cell) Float() float64 {
	switch c.Kind {
	case Number, Date:
		return finite(c.Num)
	case Text:
		return parseFloat(c.Str)
	}
	return 0
}

// Timestamp returns the cell's time for date-formatted numeric cells.
// Text that looks like a date is not parsed; the result is then zero.
func (c Cell) Timestamp() time.Time {
	if c.Kind == Date {
		return c.Time
	}
	return time.Time{}
}

func isEmptyRow(row []Cell) bool {
	for _, c := range row {
		if c.Kind != Blank {
			return false
		}
	}
	return true
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return finite(v)
}

func parseInt(s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
