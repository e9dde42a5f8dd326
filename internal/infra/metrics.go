package infra

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Operation results recorded by Metrics.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Metrics publishes engine counters on a private Prometheus registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry     *prometheus.Registry
	operations   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	saleUnits    prometheus.Counter
	importedRows *prometheus.CounterVec
	persistFails prometheus.Counter
	closings     prometheus.Counter
	receiptQueue prometheus.Gauge
}

// NewMetrics registers the collectors. Each call gets its own registry so
// tests can build as many as they like.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventario",
			Name:      "operations_total",
			Help:      "Engine operations by name and result.",
		}, []string{"operation", "result"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "inventario",
			Name:      "operation_duration_seconds",
			Help:      "Engine operation latency including persistence.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		saleUnits: f.NewCounter(prometheus.CounterOpts{
			Namespace: "inventario",
			Name:      "sold_units_total",
			Help:      "Units sold across all branches.",
		}),
		importedRows: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "inventario",
			Name:      "imported_rows_total",
			Help:      "Bulk import rows by outcome (created, updated).",
		}, []string{"outcome"}),
		persistFails: f.NewCounter(prometheus.CounterOpts{
			Namespace: "inventario",
			Name:      "persistence_failures_total",
			Help:      "Failed saves; the triggering mutation was discarded.",
		}),
		closings: f.NewCounter(prometheus.CounterOpts{
			Namespace: "inventario",
			Name:      "daily_closings_total",
			Help:      "Daily closing reports rendered.",
		}),
		receiptQueue: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "inventario",
			Name:      "receipt_queue_depth",
			Help:      "Receipt jobs waiting for a worker.",
		}),
	}
}

// ObserveOperation records one operation outcome and its latency.
func (m *Metrics) ObserveOperation(op, result string, started time.Time) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

func (m *Metrics) AddSoldUnits(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.saleUnits.Add(float64(n))
}

func (m *Metrics) AddImportedRows(created, updated int) {
	if m == nil {
		return
	}
	m.importedRows.WithLabelValues("created").Add(float64(created))
	m.importedRows.WithLabelValues("updated").Add(float64(updated))
}

func (m *Metrics) IncPersistenceFailure() {
	if m == nil {
		return
	}
	m.persistFails.Inc()
}

func (m *Metrics) IncClosing() {
	if m == nil {
		return
	}
	m.closings.Inc()
}

func (m *Metrics) SetReceiptQueueDepth(n int) {
	if m == nil {
		return
	}
	m.receiptQueue.Set(float64(n))
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
