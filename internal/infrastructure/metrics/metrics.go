// Package metrics expone las métricas Prometheus del libro de movimientos y la auditoría.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/octavian/nexus-inventory/internal/application/audit"
	"github.com/octavian/nexus-inventory/internal/application/inventory"
	"github.com/octavian/nexus-inventory/internal/domain/entity"
)

var (
	_ inventory.LedgerObserver = (*Metrics)(nil)
	_ audit.Observer           = (*Metrics)(nil)
)

// Metrics agrupa los collectors en un registry propio.
type Metrics struct {
	registry  *prometheus.Registry
	movements *prometheus.CounterVec
	duration  *prometheus.HistogramVec
	audits    *prometheus.CounterVec
}

// New crea el registry con los collectors de la app, del runtime Go y del proceso.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		movements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_movements_total",
			Help: "Movimientos de stock procesados por tipo y resultado.",
		}, []string{"kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_movement_duration_seconds",
			Help:    "Duración de ApplyMovement, incluida la transacción.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		audits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_records_total",
			Help: "Intentos de auditoría por resultado.",
		}, []string{"outcome"}),
	}
	m.registry.MustRegister(
		m.movements,
		m.duration,
		m.audits,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveMovement implementa inventory.LedgerObserver.
func (m *Metrics) ObserveMovement(kind entity.MovementKind, outcome string, elapsed time.Duration) {
	m.movements.WithLabelValues(string(kind), outcome).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

// ObserveAudit implementa audit.Observer.
func (m *Metrics) ObserveAudit(outcome string) {
	m.audits.WithLabelValues(outcome).Inc()
}

// Handler devuelve el handler HTTP de exposición (/metrics).
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry devuelve el registry (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
