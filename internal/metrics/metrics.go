package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// WebhookRequestsTotal counts webhook deliveries by provider, event and HTTP
	// status. The event label is the canonical event, "ignored" for unmapped
	// events, or "none" when the delivery was rejected before mapping.
	WebhookRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relay",
		Subsystem: "webhook",
		Name:      "requests_total",
		Help:      "Total webhook deliveries by provider, event and HTTP status.",
	}, []string{"provider", "event", "status"})

	// WebhookDuration tracks webhook handling latency, including the backend call.
	WebhookDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "relay",
		Subsystem: "webhook",
		Name:      "duration_seconds",
		Help:      "Webhook handling duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"provider"})

	// BackendCallsTotal counts apply-premium calls by outcome.
	BackendCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "relay",
		Subsystem: "backend",
		Name:      "calls_total",
		Help:      "Apply-premium backend calls by outcome.",
	}, []string{"outcome"})

	// BackendRetriesTotal counts retried apply-premium calls.
	BackendRetriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relay",
		Subsystem: "backend",
		Name:      "retries_total",
		Help:      "Apply-premium calls retried after a transient failure.",
	})
)
