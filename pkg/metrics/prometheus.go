package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the service's Prometheus collectors.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// RPC surface
	rpcRequests        *prometheus.CounterVec
	rpcRequestDuration *prometheus.HistogramVec
	rateLimited        *prometheus.CounterVec

	// Engine
	sessionsProposed   prometheus.Counter
	sessionTransitions *prometheus.CounterVec
	transitionRaces    prometheus.Counter
	threadFailures     prometheus.Counter
	ratingsSubmitted   prometheus.Counter
	aggregateFailures  prometheus.Counter
	matchResults       prometheus.Histogram
	messagesSent       prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton used by package-level recorders

// Custom registry to keep the exposition limited to our metrics plus runtime.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	customRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "skillswap",
		subsystem:        "api",
		histogramBuckets: []float64{1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rpcRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rpc_requests_total",
		Help:      "Total number of RPCs by method and status code",
	}, []string{"method", "code"})

	m.rpcRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rpc_request_duration_milliseconds",
		Help:      "RPC handling latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"method", "code"})

	m.rateLimited = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rate_limited_total",
		Help:      "Requests rejected by the rate limiter",
	}, []string{"method"})

	m.sessionsProposed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sessions",
		Name:      "proposed_total",
		Help:      "Sessions created in pending state",
	})

	m.sessionTransitions = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sessions",
		Name:      "transitions_total",
		Help:      "Applied session status transitions",
	}, []string{"from", "to"})

	m.transitionRaces = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sessions",
		Name:      "transition_conflicts_total",
		Help:      "Transitions rejected because another writer moved the session first",
	})

	m.threadFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "sessions",
		Name:      "thread_ensure_failures_total",
		Help:      "Best-effort chat thread creations that failed on confirm",
	})

	m.ratingsSubmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ratings",
		Name:      "submitted_total",
		Help:      "Ratings stored",
	})

	m.aggregateFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "ratings",
		Name:      "aggregate_failures_total",
		Help:      "Ratings stored whose aggregate write failed and needs reconciling",
	})

	m.matchResults = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "matcher",
		Name:      "results",
		Help:      "Number of matches returned per computation",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})

	m.messagesSent = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "chat",
		Name:      "messages_sent_total",
		Help:      "Chat messages stored",
	})
}

// RecordRPC records one finished RPC.
func (m *Manager) RecordRPC(method, code string, durationMs float64) {
	m.rpcRequests.WithLabelValues(method, code).Inc()
	m.rpcRequestDuration.WithLabelValues(method, code).Observe(durationMs)
}

// RecordRateLimited records a request rejected by the limiter.
func (m *Manager) RecordRateLimited(method string) { m.rateLimited.WithLabelValues(method).Inc() }

// RecordSessionProposed counts a new pending session.
func (m *Manager) RecordSessionProposed() { m.sessionsProposed.Inc() }

// RecordSessionTransition counts an applied status change.
func (m *Manager) RecordSessionTransition(from, to string) {
	m.sessionTransitions.WithLabelValues(from, to).Inc()
}

// RecordTransitionConflict counts a lost compare-and-set.
func (m *Manager) RecordTransitionConflict() { m.transitionRaces.Inc() }

// RecordThreadFailure counts a failed best-effort thread creation.
func (m *Manager) RecordThreadFailure() { m.threadFailures.Inc() }

// RecordRatingSubmitted counts a stored rating.
func (m *Manager) RecordRatingSubmitted() { m.ratingsSubmitted.Inc() }

// RecordAggregateFailure counts a rating whose aggregate is stale.
func (m *Manager) RecordAggregateFailure() { m.aggregateFailures.Inc() }

// RecordMatchResults observes the size of a match list.
func (m *Manager) RecordMatchResults(n int) { m.matchResults.Observe(float64(n)) }

// RecordMessageSent counts a stored chat message.
func (m *Manager) RecordMessageSent() { m.messagesSent.Inc() }

// Package-level recorders on the global manager.

func RecordRPC(method, code string, durationMs float64) {
	globalManager.RecordRPC(method, code, durationMs)
}
func RecordRateLimited(method string)         { globalManager.RecordRateLimited(method) }
func RecordSessionProposed()                  { globalManager.RecordSessionProposed() }
func RecordSessionTransition(from, to string) { globalManager.RecordSessionTransition(from, to) }
func RecordTransitionConflict()               { globalManager.RecordTransitionConflict() }
func RecordThreadFailure()                    { globalManager.RecordThreadFailure() }
func RecordRatingSubmitted()                  { globalManager.RecordRatingSubmitted() }
func RecordAggregateFailure()                 { globalManager.RecordAggregateFailure() }
func RecordMatchResults(n int)                { globalManager.RecordMatchResults(n) }
func RecordMessageSent()                      { globalManager.RecordMessageSent() }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Handler serves the custom registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(customRegistry, promhttp.HandlerOpts{})
}
