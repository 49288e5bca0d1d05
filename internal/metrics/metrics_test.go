package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/importer"
	"github.com/rustyeddy/tradejournal/reconcile"
	"github.com/rustyeddy/tradejournal/trade"
)

func counterValue(t *testing.T, m *Metrics, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
	next:
		for _, metric := range fam.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if labels[lp.GetName()] != lp.GetValue() {
					continue next
				}
			}
			if c := metric.GetCounter(); c != nil {
				return c.GetValue()
			}
			return metric.GetGauge().GetValue()
		}
	}
	return 0
}

func TestObserveImport(t *testing.T) {
	t.Parallel()

	m := New()
	rep := importer.Report{
		Format:   importer.FormatDelimited,
		Trades:   []trade.Trade{{Ticket: "1"}, {Ticket: "2"}},
		Empty:    1,
		NoTicket: 2,
		Failed:   3,
	}
	m.ObserveImport(rep, 20*time.Millisecond, nil)
	m.ObserveImport(importer.Report{Format: importer.FormatXLSX}, time.Millisecond, errors.New("bad header"))

	assert.Equal(t, 1.0, counterValue(t, m, "tradejournal_import_runs_total", map[string]string{"format": "delimited", "status": "ok"}))
	assert.Equal(t, 1.0, counterValue(t, m, "tradejournal_import_runs_total", map[string]string{"format": "xlsx", "status": "error"}))
	assert.Equal(t, 2.0, counterValue(t, m, "tradejournal_import_rows_total", map[string]string{"format": "delimited", "outcome": "imported"}))
	assert.Equal(t, 3.0, counterValue(t, m, "tradejournal_import_rows_total", map[string]string{"format": "delimited", "outcome": "failed"}))
	assert.Greater(t, counterValue(t, m, "tradejournal_import_last_success_timestamp_seconds", nil), 0.0)
}

func TestObserveReconcileAndTextfile(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveReconcile(reconcile.Result{Saved: 5, New: 3, Merged: 2})

	assert.Equal(t, 3.0, counterValue(t, m, "tradejournal_journal_trades_saved_total", map[string]string{"kind": "new"}))

	path := filepath.Join(t.TempDir(), "tradejournal.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `tradejournal_journal_trades_saved_total{kind="merged"} 2`)
}
