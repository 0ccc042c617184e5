package metrics

import (
	"errors"
	"time"

	"github.com/ougirez/agrorating/internal/pkg/constants"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "agrorating"

type Metrics struct {
	registry *prometheus.Registry

	pipelineDuration *prometheus.HistogramVec
	sourceFailures   *prometheus.CounterVec
	marketQuotes     *prometheus.CounterVec
}

// New registers the engine metrics, plus the Go and process collectors, on a
// dedicated registry.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.pipelineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "duration_seconds",
			Help:      "Duration of one projection pipeline run, fetch included.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "outcome"},
	)

	m.sourceFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "source_failures_total",
			Help:      "Collections the store could not return, by entity.",
		},
		[]string{"entity"},
	)

	m.marketQuotes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "market",
			Name:      "quotes_total",
			Help:      "Market quotes written by the backfill, by kind.",
		},
		[]string{"kind"},
	)

	m.registry.MustRegister(
		m.pipelineDuration,
		m.sourceFailures,
		m.marketQuotes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObservePipeline records how long operation took and counts a store failure
// against its entity.
func (m *Metrics) ObservePipeline(operation string, started time.Time, err error) {
	if m == nil {
		return
	}

	outcome := "ok"
	if err != nil {
		outcome = "error"

		var unavailable *constants.SourceUnavailableError
		if errors.As(err, &unavailable) {
			m.sourceFailures.WithLabelValues(string(unavailable.Entity)).Inc()
		}
	}

	m.pipelineDuration.WithLabelValues(operation, outcome).Observe(time.Since(started).Seconds())
}

func (m *Metrics) AddMarketQuotes(kind string, n int) {
	if m == nil {
		return
	}
	m.marketQuotes.WithLabelValues(kind).Add(float64(n))
}
