// Package metrics defines the Prometheus collectors exported by the server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager holds the collectors recorded by the HTTP layer and services.
type Manager struct {
	// counters
	CounterRequests           *prometheus.CounterVec
	CounterHandleRequestPanic prometheus.Counter
	CounterPlanRegenerations  prometheus.Counter
	CounterPlanToggles        *prometheus.CounterVec
	CounterGoalFallbacks      prometheus.Counter
	CounterSessionsPurged     prometheus.Counter

	// gauges
	GaugeRequests prometheus.Gauge

	// histograms
	HistRequestDuration prometheus.Histogram
}

// NewTestManager returns a Manager on a private registry.
func NewTestManager() *Manager {
	return NewManager("fitplan", "test_server", prometheus.NewRegistry())
}

// NewTestManagerAndRegistry is NewTestManager that also returns the registry
// for gathering.
func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitplan", "test_server", reg), reg
}

// NewManager creates every collector under namespace and subsystem and
// registers it with reg.
func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_total",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic_total",
		Help:      "The total number of serve request panics",
	})
	counterPlanRegenerations := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plan_regenerations_total",
		Help:      "The total number of generated weekly plans",
	})
	counterPlanToggles := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "plan_toggles_total",
		Help:      "The total number of completion toggles",
	}, []string{"kind"})
	counterGoalFallbacks := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "goal_fallbacks_total",
		Help:      "Plans generated for an unknown goal using maintenance templates",
	})
	counterSessionsPurged := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sessions_purged_total",
		Help:      "Number of expired sessions removed",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})

	histReqDuration := factory.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Buckets: []float64{
				0.0001, 0.0005, 0.001, 0.0025, 0.005,
				0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 10,
			},
			Name: "request_duration_seconds",
			Help: "Total duration of requests in seconds",
		},
	)

	return &Manager{
		CounterRequests:           counterRequests,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		CounterPlanRegenerations:  counterPlanRegenerations,
		CounterPlanToggles:        counterPlanToggles,
		CounterGoalFallbacks:      counterGoalFallbacks,
		CounterSessionsPurged:     counterSessionsPurged,
		GaugeRequests:             gaugeRequests,
		HistRequestDuration:       histReqDuration,
	}
}
