package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Search outcomes.
const (
	SearchHit       = "hit"
	SearchMiss      = "miss"
	SearchSuggested = "suggested"
)

// Snapshot sources.
const (
	SourceStore = "store"
	SourceCache = "cache"
)

// Config labels every series with the running service.
type Config struct {
	ServiceName string
	Environment string
}

// Metrics exposes the catalog instruments.
type Metrics struct {
	searches       *prometheus.CounterVec
	searchDuration prometheus.Observer
	snapshotLoads  *prometheus.CounterVec
	writeFailures  *prometheus.CounterVec
}

// NewRegistry returns the registry served on /metrics.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

func constLabels(cfg Config) prometheus.Labels {
	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "kstore"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	return prometheus.Labels{"service": serviceName, "env": environment}
}

// New registers the catalog instruments on registerer.
func New(registerer prometheus.Registerer, cfg Config) (*Metrics, error) {
	labels := constLabels(cfg)

	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "kstore_search_total",
		Help:        "Storefront searches by outcome.",
		ConstLabels: labels,
	}, []string{"outcome"})
	searchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:        "kstore_search_duration_seconds",
		Help:        "Time spent filtering and ranking a search.",
		Buckets:     []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		ConstLabels: labels,
	})
	snapshotLoads := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "kstore_snapshot_loads_total",
		Help:        "Catalog snapshot loads by source.",
		ConstLabels: labels,
	}, []string{"source"})
	writeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name:        "kstore_write_failures_total",
		Help:        "Admin writes that failed after the product document was stored.",
		ConstLabels: labels,
	}, []string{"collection"})

	for _, c := range []prometheus.Collector{searches, searchDuration, snapshotLoads, writeFailures} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}

	return &Metrics{
		searches:       searches,
		searchDuration: searchDuration,
		snapshotLoads:  snapshotLoads,
		writeFailures:  writeFailures,
	}, nil
}

func (m *Metrics) RecordSearch(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(outcome).Inc()
	m.searchDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) RecordSnapshotLoad(source string) {
	if m == nil {
		return
	}
	m.snapshotLoads.WithLabelValues(source).Inc()
}

func (m *Metrics) RecordWriteFailure(collection string) {
	if m == nil {
		return
	}
	m.writeFailures.WithLabelValues(collection).Inc()
}
