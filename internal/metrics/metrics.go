// Package metrics exposes Prometheus collectors for the provider
// operations, the event bridge, and the reward subsystem.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	operationsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "social_bridge",
			Subsystem: "operations",
			Name:      "started_total",
			Help:      "Operations dispatched to a provider.",
		},
		[]string{"provider", "operation"},
	)

	operationsTerminal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "social_bridge",
			Subsystem: "operations",
			Name:      "terminal_total",
			Help:      "Terminal operation outcomes by kind.",
		},
		[]string{"provider", "operation", "outcome"},
	)

	operationsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "social_bridge",
			Subsystem: "operations",
			Name:      "inflight",
			Help:      "Operations dispatched but not yet terminal. A value that only grows points at a native call that never completed.",
		},
	)

	boundaryMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "social_bridge",
			Subsystem: "bridge",
			Name:      "boundary_messages_total",
			Help:      "Inbound boundary messages by handling result.",
		},
		[]string{"result"}, // decoded | dropped | ignored
	)

	decodeFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "social_bridge",
			Subsystem: "bridge",
			Name:      "decode_failures_total",
			Help:      "Boundary messages dropped for a missing or malformed field.",
		},
		[]string{"kind"},
	)

	rewardsGranted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "social_bridge",
			Subsystem: "rewards",
			Name:      "granted_total",
			Help:      "Rewards granted on finished operations.",
		},
	)

	busPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "social_bridge",
			Subsystem: "bus",
			Name:      "events_published_total",
			Help:      "Domain events published on the internal bus.",
		},
		[]string{"kind"},
	)
)

func init() {
	Registry.MustRegister(
		operationsStarted,
		operationsTerminal,
		operationsInFlight,
		boundaryMessages,
		decodeFailures,
		rewardsGranted,
		busPublished,
	)
}

// Outcome labels for RecordTerminal.
const (
	OutcomeFinished  = "finished"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

// RecordStarted counts an operation dispatch and raises the in-flight
// gauge.
func RecordStarted(provider, operation string) {
	operationsStarted.WithLabelValues(provider, operation).Inc()
	operationsInFlight.Inc()
}

// RecordTerminal counts a terminal outcome and lowers the in-flight
// gauge.
func RecordTerminal(provider, operation, outcome string) {
	operationsTerminal.WithLabelValues(provider, operation, outcome).Inc()
	operationsInFlight.Dec()
}

// RecordBoundaryMessage counts one inbound boundary message.
func RecordBoundaryMessage(result string) {
	boundaryMessages.WithLabelValues(result).Inc()
}

// RecordDecodeFailure counts a dropped boundary message.
func RecordDecodeFailure(kind string) {
	decodeFailures.WithLabelValues(kind).Inc()
	boundaryMessages.WithLabelValues("dropped").Inc()
}

// RecordRewardGranted counts a granted reward.
func RecordRewardGranted() {
	rewardsGranted.Inc()
}

// RecordPublished counts a bus publish.
func RecordPublished(kind string) {
	busPublished.WithLabelValues(kind).Inc()
}

// Handler returns the HTTP handler serving the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
