package importer

import (
	"fmt"

	"github.com/rustyeddy/tradejournal/trade"
)

const (
	FormatXLSX      = "xlsx"
	FormatDelimited = "delimited"
)

// RowError records a row or line that was skipped because it failed to
// parse. Row is 0-based for sheets and 1-based (line number) for
// delimited files.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Report is the outcome of one import.
type Report struct {
	Source string
	Format string
	// HeaderRow is the detected header index; -1 for delimited input.
	HeaderRow int

	Trades []trade.Trade

	// Processed counts non-empty rows examined.
	Processed int
	// Empty counts blank rows or lines that were skipped.
	Empty int
	// NoTicket counts rows dropped because no ticket could be produced.
	NoTicket int
	// Failed counts rows that errored while parsing.
	Failed int
	Errors []RowError
}

func (r *Report) fail(row int, err error) {
	r.Failed++
	r.Errors = append(r.Errors, RowError{Row: row, Err: err})
}

func (r Report) String() string {
	return fmt.Sprintf("%s import of %q: %d trades, %d processed, %d empty, %d without ticket, %d failed",
		r.Format, r.Source, len(r.Trades), r.Processed, r.Empty, r.NoTicket, r.Failed)
}
