package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "traefikkv"

// Cycle results reported by the refresh_cycles_total counter.
const (
	cycleResultOK          = "ok"
	cycleResultSourceError = "source_error"
	cycleResultSinkError   = "sink_error"
)

// Metrics holds the refresh loop collectors.
type Metrics struct {
	cycles             *prometheus.CounterVec
	entriesWritten     prometheus.Counter
	containersSkipped  *prometheus.CounterVec
	eligibleContainers prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg. Panics on duplicate registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "refresh_cycles_total",
			Help:      "Counter of refresh cycles by result.",
		}, []string{"result"}),
		entriesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "entries_written_total",
			Help:      "Counter of configuration entries written to the store.",
		}),
		containersSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "containers_skipped_total",
			Help:      "Counter of eligible containers skipped because of malformed or inconsistent metadata.",
		}, []string{"reason"}),
		eligibleContainers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "eligible_containers",
			Help:      "Number of containers configured by the last successful cycle.",
		}),
	}
	reg.MustRegister(m.cycles, m.entriesWritten, m.containersSkipped, m.eligibleContainers)
	return m
}

func (m *Metrics) cycleFailed(result string) {
	m.cycles.WithLabelValues(result).Inc()
}

func (m *Metrics) cycleSucceeded(containers, entries int) {
	m.cycles.WithLabelValues(cycleResultOK).Inc()
	m.entriesWritten.Add(float64(entries))
	m.eligibleContainers.Set(float64(containers))
}

func (m *Metrics) containerSkipped(reason string) {
	if reason == "" {
		reason = ErrInternalServerError
	}
	m.containersSkipped.WithLabelValues(reason).Inc()
}
