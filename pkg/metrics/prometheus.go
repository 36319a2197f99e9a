// Package metrics provides Prometheus metrics for the recommendation
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager holds all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Pipeline metrics
	recommendations      prometheus.Counter
	recommendationErrors prometheus.Counter
	gamesParsed          prometheus.Counter
	fetchErrors          prometheus.Counter
	fetchLatency         prometheus.Histogram
	startupFitDuration   prometheus.Gauge

	// Reference population gauges
	referenceGames   prometheus.Gauge
	referencePlayers prometheus.Gauge

	// HTTP performance metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid the default Go collectors.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // singleton registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "shatranj",
		subsystem:        "recommender",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	factory := m.registry

	counter := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		})
		factory.MustRegister(c)
		return c
	}
	gauge := func(name, help string) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
		})
		factory.MustRegister(g)
		return g
	}
	histogram := func(name, help string) prometheus.Histogram {
		h := prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help,
			Buckets: m.histogramBuckets,
		})
		factory.MustRegister(h)
		return h
	}

	m.recommendations = counter("recommendations_total", "Completed recommendation runs.")
	m.recommendationErrors = counter("recommendation_errors_total", "Failed recommendation runs.")
	m.gamesParsed = counter("games_parsed_total", "User games parsed from transcripts.")
	m.fetchErrors = counter("fetch_errors_total", "Upstream transcript fetch failures.")
	m.fetchLatency = histogram("fetch_latency_ms", "Upstream transcript fetch latency in milliseconds.")
	m.startupFitDuration = gauge("startup_fit_duration_ms", "Style-space model fit duration at startup.")

	m.referenceGames = gauge("reference_games", "Reference games loaded at startup.")
	m.referencePlayers = gauge("reference_players", "Reference players loaded at startup.")

	m.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_requests_total", Help: "HTTP requests by endpoint, method and status.",
	}, []string{"endpoint", "method", "status"})
	factory.MustRegister(m.httpRequests)

	m.httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem,
		Name: "http_request_duration_ms", Help: "HTTP request duration in milliseconds.",
		Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
	factory.MustRegister(m.httpRequestDuration)

	m.systemMemoryUsage = gauge("system_memory_bytes", "Allocated heap bytes.")
	m.systemGoroutineCount = gauge("system_goroutines", "Current goroutine count.")
}

// GetRegistry returns the registry backing the global manager, for
// serving with promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording on the global manager.

// RecordRecommendation counts one completed recommendation run.
func RecordRecommendation() {
	if globalManager.enabled {
		globalManager.recommendations.Inc()
	}
}

// RecordRecommendationError counts one failed recommendation run.
func RecordRecommendationError() {
	if globalManager.enabled {
		globalManager.recommendationErrors.Inc()
	}
}

// RecordGamesParsed counts games parsed from one user transcript.
func RecordGamesParsed(n int) {
	if globalManager.enabled && n > 0 {
		globalManager.gamesParsed.Add(float64(n))
	}
}

// RecordFetchError counts one upstream fetch failure.
func RecordFetchError() {
	if globalManager.enabled {
		globalManager.fetchErrors.Inc()
	}
}

// RecordFetchLatency observes one upstream fetch duration.
func RecordFetchLatency(ms float64) {
	if globalManager.enabled {
		globalManager.fetchLatency.Observe(ms)
	}
}

// ObserveStartupFit records the startup model fit duration.
func ObserveStartupFit(ms float64) {
	if globalManager.enabled {
		globalManager.startupFitDuration.Set(ms)
	}
}

// UpdateReferenceGames sets the loaded reference game count.
func UpdateReferenceGames(n int) {
	if globalManager.enabled {
		globalManager.referenceGames.Set(float64(n))
	}
}

// UpdateReferencePlayers sets the loaded reference player count.
func UpdateReferencePlayers(n int) {
	if globalManager.enabled {
		globalManager.referencePlayers.Set(float64(n))
	}
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if globalManager.enabled {
		globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
	}
}

// RecordHTTPRequestDuration observes one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	if globalManager.enabled {
		globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
	}
}

// UpdateSystemMemoryUsage sets the allocated heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	if globalManager.enabled {
		globalManager.systemMemoryUsage.Set(float64(bytes))
	}
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(n int) {
	if globalManager.enabled {
		globalManager.systemGoroutineCount.Set(float64(n))
	}
}
