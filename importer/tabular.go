package importer

import (
	"github.com/rs/zerolog"
)

// ImportSheet locates the header of sheet, maps its columns and
// normalizes every following row. Only a missing header fails the
// import; bad rows are counted and skipped.
func (im *Importer) ImportSheet(sheet Sheet) (Report, error) {
	log := im.Log.With().Str("component", "xlsx").Str("sheet", sheet.Name).Logger()
	rep := Report{Format: FormatXLSX, HeaderRow: -1}

	headerRow, err := DetectHeader(sheet.Rows)
	if err != nil {
		log.Debug().Err(err).Msg("header detection failed")
		return rep, err
	}
	rep.HeaderRow = headerRow

	labels := HeaderLabels(sheet.Rows[headerRow])
	cols := MapColumns(labels)
	logColumns(log, headerRow, labels, cols)

	now := im.now()
	for i := headerRow + 1; i < len(sheet.Rows); i++ {
		if err, bad := sheet.RowErrors[i]; bad {
			rep.Processed++
			rep.fail(i, err)
			log.Warn().Int("row", i).Err(err).Msg("row skipped")
			continue
		}

		row := sheet.Rows[i]
		if isEmptyRow(row) {
			rep.Empty++
			continue
		}
		rep.Processed++

		t, ok := NormalizeRow(row, i, cols, now)
		if !ok {
			rep.NoTicket++
			log.Debug().Int("row", i).Msg("row skipped: no ticket")
			continue
		}
		rep.Trades = append(rep.Trades, t)
	}

	return rep, nil
}

func logColumns(log zerolog.Logger, headerRow int, labels []string, cols ColumnMap) {
	if e := log.Debug(); e.Enabled() {
		d := zerolog.Dict()
		for r := Role(0); r < numRoles; r++ {
			if cols.Has(r) {
				d = d.Int(r.String(), cols.Index(r))
			}
		}
		e.Int("header_row", headerRow).Strs("labels", labels).Dict("columns", d).Msg("header mapped")
	}
}
