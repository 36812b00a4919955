package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "domkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "http").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer

	// PathLabel maps a served request to its path label. It runs after
	// the handler, so router patterns are already resolved.
	// Default: the URL path.
	PathLabel func(r *http.Request) string
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// WithPathLabel sets the function that derives the path label. Use a
// route pattern to keep label cardinality bounded.
func WithPathLabel(fn func(r *http.Request) string) MetricsOption {
	return func(c *MetricsConfig) {
		c.PathLabel = fn
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "domkit",
		Subsystem:   "http",
		ConstLabels: nil,
		Buckets:     prometheus.DefBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the Prometheus metrics for the preview server.
type metrics struct {
	requestsTotal    *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	requestsInFlight prometheus.Gauge
	wsConnections    prometheus.Gauge
	wsErrors         *prometheus.CounterVec
}

// globalMetrics is the singleton metrics instance.
// Created on first call to Prometheus().
var (
	globalMetrics   *metrics
	globalMetricsMu sync.Mutex
)

// initMetrics initializes the Prometheus metrics.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of HTTP requests served",
			ConstLabels: config.ConstLabels,
		}, []string{"path", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"path"}),

		requestsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_in_flight",
			Help:        "Number of HTTP requests being served",
			ConstLabels: config.ConstLabels,
		}),

		wsConnections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_connections",
			Help:        "Number of open websocket connections",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total websocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),
	}
}

// Prometheus creates middleware that collects request metrics.
//
// Metrics are registered once per process; later calls reuse them and
// only apply the PathLabel option.
func Prometheus(opts ...MetricsOption) func(http.Handler) http.Handler {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	globalMetricsMu.Lock()
	if globalMetrics == nil {
		globalMetrics = initMetrics(config)
	}
	m := globalMetrics
	globalMetricsMu.Unlock()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			m.requestsInFlight.Inc()
			defer m.requestsInFlight.Dec()

			rec := NewStatusRecorder(w)
			next.ServeHTTP(rec, r)

			path := r.URL.Path
			if config.PathLabel != nil {
				if p := config.PathLabel(r); p != "" {
					path = p
				}
			}
			if path == "" {
				path = "/"
			}

			m.requestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
			m.requestsTotal.WithLabelValues(path, strconv.Itoa(rec.Status())).Inc()
		})
	}
}

// categorizeError returns a category for the error type.
// This prevents high-cardinality labels from error messages.
func categorizeError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return "timeout"
	case strings.Contains(msg, "close"):
		return "close"
	case strings.Contains(msg, "decode"), strings.Contains(msg, "invalid"):
		return "decode"
	case strings.Contains(msg, "render"):
		return "render"
	default:
		return "internal"
	}
}

// =============================================================================
// Metrics Recording Functions
// =============================================================================

// RecordWebSocketOpen records a new websocket connection.
func RecordWebSocketOpen() {
	if globalMetrics != nil {
		globalMetrics.wsConnections.Inc()
	}
}

// RecordWebSocketClose records a closed websocket connection.
func RecordWebSocketClose() {
	if globalMetrics != nil {
		globalMetrics.wsConnections.Dec()
	}
}

// RecordWebSocketError records a websocket error under a coarse category.
func RecordWebSocketError(err error) {
	if globalMetrics != nil && err != nil {
		globalMetrics.wsErrors.WithLabelValues(categorizeError(err)).Inc()
	}
}

// =============================================================================
// Metrics Collector
// =============================================================================

// Collector exposes the metrics for use in custom registrations.
type Collector struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge
	WSConnections    prometheus.Gauge
	WSErrors         *prometheus.CounterVec
}

// GetMetrics returns the global metrics collector.
// Returns nil if Prometheus middleware has not been initialized.
func GetMetrics() *Collector {
	globalMetricsMu.Lock()
	defer globalMetricsMu.Unlock()
	if globalMetrics == nil {
		return nil
	}
	return &Collector{
		RequestsTotal:    globalMetrics.requestsTotal,
		RequestDuration:  globalMetrics.requestDuration,
		RequestsInFlight: globalMetrics.requestsInFlight,
		WSConnections:    globalMetrics.wsConnections,
		WSErrors:         globalMetrics.wsErrors,
	}
}
