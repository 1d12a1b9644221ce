package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// Global metrics instance for singleton pattern
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	// Registry for this collector instance
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Navigation metrics
	Navigations        *prometheus.CounterVec
	NavigationDuration prometheus.Histogram
	PathHops           prometheus.Histogram

	// Side-effect metrics
	SideEffects        *prometheus.CounterVec
	SideEffectFailures *prometheus.CounterVec

	// WebSocket metrics
	NarrationClients prometheus.Gauge
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	// Use singleton pattern to avoid duplicate registration in tests
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	// Return existing collector if already created
	if globalCollector != nil {
		return globalCollector
	}

	// Create a new registry for this collector
	registry := prometheus.NewRegistry()

	// Create metrics (not auto-registered)
	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	navigations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigations_total",
			Help:      "Total number of navigation requests by outcome",
		},
		[]string{"outcome"},
	)

	navigationDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "navigation_duration_seconds",
			Help:      "Time spent validating, searching and narrating a route",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)

	pathHops := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "navigation_path_hops",
			Help:      "Number of hops in successfully computed routes",
			Buckets:   prometheus.LinearBuckets(0, 1, 10),
		},
	)

	sideEffects := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "side_effect_dispatches_total",
			Help:      "Total number of voice and map-render dispatches",
		},
		[]string{"collaborator", "status"},
	)

	sideEffectFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "side_effect_failures_total",
			Help:      "Side-effect failures that were logged and swallowed",
		},
		[]string{"collaborator"},
	)

	narrationClients := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "narration_clients",
			Help:      "Currently connected live-narration WebSocket clients",
		},
	)

	// Register all metrics with the registry
	registry.MustRegister(
		httpRequests,
		httpDuration,
		navigations,
		navigationDuration,
		pathHops,
		sideEffects,
		sideEffectFailures,
		narrationClients,
	)

	// Create and store the collector
	globalCollector = &Collector{
		registry:           registry,
		HTTPRequests:       httpRequests,
		HTTPDuration:       httpDuration,
		Navigations:        navigations,
		NavigationDuration: navigationDuration,
		PathHops:           pathHops,
		SideEffects:        sideEffects,
		SideEffectFailures: sideEffectFailures,
		NarrationClients:   narrationClients,
	}

	return globalCollector
}

// ResetForTesting resets the global collector for testing purposes
func ResetForTesting() {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()
	globalCollector = nil
}

// GetRegistry returns the Prometheus registry for this collector
func (c *Collector) GetRegistry() *prometheus.Registry {
	return c.registry
}
