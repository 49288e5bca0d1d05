package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ImportWorkbook reads the first worksheet of an .xlsx workbook and
// imports it with ImportSheet.
func (im *Importer) ImportWorkbook(r io.Reader) (Report, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Report{Format: FormatXLSX, HeaderRow: -1}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet, err := ReadSheet(f, im.loc())
	if err != nil {
		return Report{Format: FormatXLSX, HeaderRow: -1}, err
	}
	return im.ImportSheet(sheet)
}

// ReadSheet converts the first worksheet of f into a Sheet. Numeric cells
// whose number format is a date format become Date cells, with the
// serial interpreted as wall-clock time in loc (time.Local when nil).
func ReadSheet(f *excelize.File, loc *time.Location) (Sheet, error) {
	if loc == nil {
		loc = time.Local
	}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Sheet{}, fmt.Errorf("workbook has no sheets")
	}
	name := sheets[0]

	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return Sheet{}, fmt.Errorf("read sheet %q: %w", name, err)
	}

	rd := sheetReader{
		f:      f,
		sheet:  name,
		loc:    loc,
		styles: map[int]bool{},
	}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		rd.date1904 = *props.Date1904
	}

	out := Sheet{Name: name, Rows: make([][]Cell, len(raw))}
	for i, cols := range raw {
		row := make([]Cell, len(cols))
		for j, v := range cols {
			c, err := rd.cell(i, j, v)
			if err != nil {
				if out.RowErrors == nil {
					out.RowErrors = map[int]error{}
				}
				out.RowErrors[i] = err
				break
			}
			row[j] = c
		}
		out.Rows[i] = row
	}
	return out, nil
}

type sheetReader struct {
	f        *excelize.File
	sheet    string
	loc      *time.Location
	date1904 bool
	// styles caches whether a style index carries a date format.
	styles map[int]bool
}

func (rd *sheetReader) cell(row, col int, v string) (Cell, error) {
	if v == "" {
		return Cell{}, nil
	}

	axis, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return Cell{}, err
	}
	ct, err := rd.f.GetCellType(rd.sheet, axis)
	if err != nil {
		return Cell{}, fmt.Errorf("cell %s: %w", axis, err)
	}

	switch ct {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeError:
		return TextCell(v), nil
	case excelize.CellTypeBool:
		return BoolCell(v == "1" || strings.EqualFold(v, "true")), nil
	case excelize.CellTypeDate:
		if t, ok := parseISOTime(v, rd.loc); ok {
			return DateCell(t), nil
		}
		return TextCell(v), nil
	}

	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		// formula cells with a string result
		return TextCell(v), nil
	}

	isDate, err := rd.dateStyled(axis)
	if err != nil {
		return Cell{}, fmt.Errorf("cell %s: %w", axis, err)
	}
	if !isDate {
		return NumberCell(n), nil
	}

	t, err := excelize.ExcelDateToTime(n, rd.date1904)
	if err != nil {
		// out-of-range serials stay numeric
		return NumberCell(n), nil
	}
	return DateCell(rebase(t, rd.loc), n), nil
}

func (rd *sheetReader) dateStyled(axis string) (bool, error) {
	idx, err := rd.f.GetCellStyle(rd.sheet, axis)
	if err != nil {
		return false, err
	}
	if d, ok := rd.styles[idx]; ok {
		return d, nil
	}

	d := false
	if idx != 0 {
		st, err := rd.f.GetStyle(idx)
		if err != nil {
			return false, err
		}
		switch {
		case st.CustomNumFmt != nil:
			d = isDateFormat(*st.CustomNumFmt)
		default:
			d = isBuiltinDateFormat(st.NumFmt)
		}
	}
	rd.styles[idx] = d
	return d, nil
}

// isBuiltinDateFormat reports whether a built-in number format id is a
// date or time format.
func isBuiltinDateFormat(id int) bool {
	switch {
	case id >= 14 && id <= 22,
		id >= 27 && id <= 36,
		id >= 45 && id <= 47,
		id >= 50 && id <= 58:
		return true
	}
	return false
}

// isDateFormat reports whether a custom format code contains date or time
// tokens outside quoted literals and bracketed sections.
func isDateFormat(code string) bool {
	inQuote, inBracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = r != '"'
		case inBracket:
			inBracket = r != ']'
		case r == '\\':
			escaped = true
		case r == '"':
			inQuote = true
		case r == '[':
			inBracket = true
		default:
			switch r {
			case 'y', 'Y', 'm', 'M', 'd', 'D', 'h', 'H', 's', 'S':
				return true
			}
		}
	}
	return false
}

// rebase keeps the wall clock of t and moves it into loc. Spreadsheet
// serials carry no zone.
func rebase(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

func parseISOTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
