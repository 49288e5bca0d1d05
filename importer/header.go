package importer

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// headerScanRows is the last row index inspected for a header.
	headerScanRows = 20
	// headerScanCols caps the cells inspected per row.
	headerScanCols = 20

	minHeaderMatches = 3
	minHeaderCells   = 5

	previewRows = 5
	previewCols = 10
)

var headerKeywords = []string{
	"ticket", "order", "deal", "time", "type", "symbol",
	"volume", "size", "price", "profit", "commission", "swap",
}

// ErrHeaderNotFound is matched by HeaderNotFoundError.
var ErrHeaderNotFound = errors.New("header row not found")

// HeaderNotFoundError reports a sheet whose first rows contain no header.
// Preview holds one line per leading row with its non-empty cells.
type HeaderNotFoundError struct {
	Preview []string
}

func (e *HeaderNotFoundError) Error() string {
	var b strings.Builder
	b.WriteString("could not find header row in workbook")
	if len(e.Preview) > 0 {
		fmt.Fprintf(&b, "\nfirst %d rows found:", len(e.Preview))
		for _, line := range e.Preview {
			b.WriteString("\n")
			b.WriteString(line)
		}
	}
	b.WriteString("\nexpected headers like: Ticket, Symbol, Type, Time, Profit")
	return b.String()
}

func (e *HeaderNotFoundError) Is(target error) bool {
	return target == ErrHeaderNotFound
}

// DetectHeader returns the index of the first row among rows 0..20 that
// has at least five non-empty cells, three of which contain a header
// keyword.
func DetectHeader(rows [][]Cell) (int, error) {
	last := min(headerScanRows, len(rows)-1)

	for i := 0; i <= last; i++ {
		row := rows[i]
		matches, cells := 0, 0

		for j := 0; j < min(headerScanCols, len(row)); j++ {
			s, ok := row[j].String()
			if !ok || strings.TrimSpace(s) == "" {
				continue
			}
			cells++
			if containsKeyword(strings.ToLower(strings.TrimSpace(s))) {
				matches++
			}
		}

		if matches >= minHeaderMatches && cells >= minHeaderCells {
			return i, nil
		}
	}

	return -1, &HeaderNotFoundError{Preview: previewRowsOf(rows)}
}

func containsKeyword(s string) bool {
	for _, k := range headerKeywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func previewRowsOf(rows [][]Cell) []string {
	n := min(previewRows, len(rows))
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		var b strings.Builder
		fmt.Fprintf(&b, "Row %d:", i)
		for j := 0; j < min(previewCols, len(rows[i])); j++ {
			s, ok := rows[i][j].String()
			if !ok || strings.TrimSpace(s) == "" {
				continue
			}
			fmt.Fprintf(&b, " [%s]", strings.TrimSpace(s))
		}
		out = append(out, b.String())
	}
	return out
}
