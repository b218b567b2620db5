package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "meshsense"

// Metrics holds the node's collectors.
type Metrics struct {
	registry *prometheus.Registry

	// QueriesTotal counts sensor queries by property and result status.
	QueriesTotal *prometheus.CounterVec

	// ClampedTotal counts values saturated to their format's range.
	ClampedTotal *prometheus.CounterVec

	// QueryDuration observes the time spent answering a query.
	QueryDuration prometheus.Histogram

	// BootstrapState is the numeric bootstrap state (0=uninitialized ... 3=ready).
	BootstrapState prometheus.Gauge

	// RegisteredProfiles is the size of the registered profile record table.
	RegisteredProfiles prometheus.Gauge
}

// New creates the node metrics and registers them, together with the Go
// runtime collectors, in a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sensor",
				Name:      "queries_total",
				Help:      "Total number of sensor queries by property and status",
			},
			[]string{"property", "status"},
		),

		ClampedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "sensor",
				Name:      "clamped_total",
				Help:      "Total number of values clamped to the format range",
			},
			[]string{"property"},
		),

		QueryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "sensor",
				Name:      "query_duration_seconds",
				Help:      "Sensor query duration in seconds",
				Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
			},
		),

		BootstrapState: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "bootstrap",
				Name:      "state",
				Help:      "Bootstrap state (0=uninitialized, 1=profile_registered, 2=settings_ready, 3=ready)",
			},
		),

		RegisteredProfiles: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "bootstrap",
				Name:      "registered_profiles",
				Help:      "Number of profile records accepted by the stack",
			},
		),
	}

	m.registry.MustRegister(
		m.QueriesTotal,
		m.ClampedTotal,
		m.QueryDuration,
		m.BootstrapState,
		m.RegisteredProfiles,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying Prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler returns an HTTP handler serving the registry in the Prometheus
// exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveQuery records one answered query.
func (m *Metrics) ObserveQuery(property uint16, status string, took time.Duration) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(propertyLabel(property), status).Inc()
	m.QueryDuration.Observe(took.Seconds())
}

// IncClamped records a value saturated to its format's range.
func (m *Metrics) IncClamped(property uint16) {
	if m == nil {
		return
	}
	m.ClampedTotal.WithLabelValues(propertyLabel(property)).Inc()
}

// SetBootstrapState records the current bootstrap state.
func (m *Metrics) SetBootstrapState(state int) {
	if m == nil {
		return
	}
	m.BootstrapState.Set(float64(state))
}

// SetRegisteredProfiles records the size of the registered record table.
func (m *Metrics) SetRegisteredProfiles(n int) {
	if m == nil {
		return
	}
	m.RegisteredProfiles.Set(float64(n))
}

func propertyLabel(p uint16) string {
	return fmt.Sprintf("0x%04X", p)
}
