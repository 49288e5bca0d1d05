// Package metrics counts import activity with Prometheus collectors. The
// CLI is short-lived, so the registry is written out in the node exporter
// textfile format rather than served.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rustyeddy/tradejournal/importer"
	"github.com/rustyeddy/tradejournal/reconcile"
)

const namespace = "tradejournal"

// Metrics holds the collectors of one process.
type Metrics struct {
	reg *prometheus.Registry

	ImportsTotal   *prometheus.CounterVec
	RowsTotal      *prometheus.CounterVec
	TradesSaved    *prometheus.CounterVec
	ImportDuration *prometheus.HistogramVec
	LastImport     prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		ImportsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "runs_total",
			Help:      "Total number of imports by format and status",
		}, []string{"format", "status"}),
		RowsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Rows examined by outcome",
		}, []string{"format", "outcome"}),
		TradesSaved: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "journal",
			Name:      "trades_saved_total",
			Help:      "Trades written by reconciliation, new or merged",
		}, []string{"kind"}),
		ImportDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "duration_seconds",
			Help:      "Import parse duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		}, []string{"format"}),
		LastImport: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "import",
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful import",
		}),
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// ObserveImport records one parsed import. err is the import error, if any.
func (m *Metrics) ObserveImport(rep importer.Report, took time.Duration, err error) {
	format := rep.Format
	if format == "" {
		format = "unknown"
	}

	status := "ok"
	if err != nil {
		status = "error"
	}
	m.ImportsTotal.WithLabelValues(format, status).Inc()
	m.ImportDuration.WithLabelValues(format).Observe(took.Seconds())
	if err != nil {
		return
	}

	m.RowsTotal.WithLabelValues(format, "imported").Add(float64(len(rep.Trades)))
	m.RowsTotal.WithLabelValues(format, "empty").Add(float64(rep.Empty))
	m.RowsTotal.WithLabelValues(format, "no_ticket").Add(float64(rep.NoTicket))
	m.RowsTotal.WithLabelValues(format, "failed").Add(float64(rep.Failed))
	m.LastImport.SetToCurrentTime()
}

// ObserveReconcile records the trades one reconciliation wrote.
func (m *Metrics) ObserveReconcile(res reconcile.Result) {
	m.TradesSaved.WithLabelValues("new").Add(float64(res.New))
	m.TradesSaved.WithLabelValues("merged").Add(float64(res.Merged))
}

// WriteTextfile writes the registry to path for a textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
