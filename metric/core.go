package metric

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Label values used by the registry metrics
const (
	OperationResolve = "resolve"
	OperationShrink  = "shrink"

	DirectionImport = "import"
	DirectionExport = "export"

	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
)

// Metrics contains the prefix registry and transport metrics.
// All Record methods are safe on a nil *Metrics.
type Metrics struct {
	Lookups          *prometheus.CounterVec
	StreamEvents     *prometheus.CounterVec
	StreamOperations *prometheus.CounterVec

	NATSConnected prometheus.Gauge
}

// NewMetrics creates the metric set, unregistered
func NewMetrics() *Metrics {
	return &Metrics{
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prefixmap",
				Name:      "lookups_total",
				Help:      "Resolve and shrink calls by outcome",
			},
			[]string{"operation", "result"},
		),

		StreamEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prefixmap",
				Subsystem: "stream",
				Name:      "events_total",
				Help:      "Prefix events applied on import or emitted on export",
			},
			[]string{"direction"},
		),

		StreamOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "prefixmap",
				Subsystem: "stream",
				Name:      "operations_total",
				Help:      "Finished import and export operations by outcome",
			},
			[]string{"direction", "outcome"},
		),

		NATSConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "prefixmap",
				Subsystem: "nats",
				Name:      "connected",
				Help:      "NATS connection status (0=disconnected, 1=connected)",
			},
		),
	}
}

// Collectors returns every collector in the set
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Lookups, m.StreamEvents, m.StreamOperations, m.NATSConnected}
}

// RecordLookup counts a resolve or shrink call
func (m *Metrics) RecordLookup(operation string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.Lookups.WithLabelValues(operation, result).Inc()
}

// RecordStreamEvent counts one applied or emitted prefix event
func (m *Metrics) RecordStreamEvent(direction string) {
	if m == nil {
		return
	}
	m.StreamEvents.WithLabelValues(direction).Inc()
}

// RecordStreamOperation counts a settled import or export
func (m *Metrics) RecordStreamOperation(direction string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeCompleted
	if err != nil {
		outcome = OutcomeFailed
	}
	m.StreamOperations.WithLabelValues(direction, outcome).Inc()
}

// RecordNATSStatus updates the NATS connection gauge
func (m *Metrics) RecordNATSStatus(connected bool) {
	if m == nil {
		return
	}
	value := 0.0
	if connected {
		value = 1.0
	}
	m.NATSConnected.Set(value)
}
