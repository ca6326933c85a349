// Package metrics exposes Prometheus collectors for the scouting panel.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Option applies a configuration option to the Manager.
type Option func(*Manager)

func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.buckets = buckets
		}
	}
}

// WithRuntimeCollectors adds the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(m *Manager) {
		m.runtime = true
	}
}

// Manager owns a private registry. A nil *Manager is valid and records nothing.
type Manager struct {
	namespace string
	buckets   []float64
	runtime   bool
	registry  *prometheus.Registry

	cacheRequests   *prometheus.CounterVec
	queryDuration   *prometheus.HistogramVec
	queryErrors     *prometheus.CounterVec
	circuitState    *prometheus.GaugeVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	warmupDuration  prometheus.Histogram
	invalidatedKeys prometheus.Counter
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "scouting",
		buckets:   prometheus.DefBuckets,
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.runtime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	auto := promauto.With(m.registry)
	m.cacheRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "Cache lookups by cache name and result.",
	}, []string{"cache", "result"})
	m.queryDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "warehouse",
		Name:      "query_duration_seconds",
		Help:      "Warehouse query latency.",
		Buckets:   m.buckets,
	}, []string{"backend", "query"})
	m.queryErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "warehouse",
		Name:      "query_errors_total",
		Help:      "Failed warehouse queries.",
	}, []string{"backend", "query"})
	m.circuitState = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "warehouse",
		Name:      "circuit_state",
		Help:      "Circuit breaker state: 0 closed, 1 half open, 2 open.",
	}, []string{"name"})
	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status.",
	}, []string{"route", "method", "status"})
	m.httpDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   m.buckets,
	}, []string{"route", "method"})
	m.warmupDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "warmup_duration_seconds",
		Help:      "Time spent preloading window caches.",
		Buckets:   m.buckets,
	})
	m.invalidatedKeys = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "cache",
		Name:      "invalidated_entries_total",
		Help:      "Entries dropped by explicit cache invalidation.",
	})

	return m
}

func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Manager) RecordCacheHit(cache string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(cache, "hit").Inc()
}

func (m *Manager) RecordCacheMiss(cache string) {
	if m == nil {
		return
	}
	m.cacheRequests.WithLabelValues(cache, "miss").Inc()
}

func (m *Manager) ObserveQuery(backend, query string, seconds float64, failed bool) {
	if m == nil {
		return
	}
	m.queryDuration.WithLabelValues(backend, query).Observe(seconds)
	if failed {
		m.queryErrors.WithLabelValues(backend, query).Inc()
	}
}

// SetCircuitState records a breaker transition by state name.
func (m *Manager) SetCircuitState(name, state string) {
	if m == nil {
		return
	}
	value := 0.0
	switch state {
	case "half_open":
		value = 1
	case "open":
		value = 2
	}
	m.circuitState.WithLabelValues(name).Set(value)
}

func (m *Manager) ObserveHTTP(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(seconds)
}

func (m *Manager) ObserveWarmup(seconds float64) {
	if m == nil {
		return
	}
	m.warmupDuration.Observe(seconds)
}

func (m *Manager) AddInvalidated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.invalidatedKeys.Add(float64(n))
}
