package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lpr"

// Registry holds all relay metrics, kept separate from the default registry
// so tests can scrape it in isolation.
var Registry = prometheus.NewRegistry()

var SubmissionsReceived = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_received_total",
		Help:      "Valid LPR submissions accepted by the ingest endpoint",
	},
)

var EventsPublished = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Canonical events published on the bus",
	},
)

var PublishFailures = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "publish_failures_total",
		Help:      "Bus publish attempts that returned an error",
	},
)

var EventsForwarded = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_forwarded_total",
		Help:      "Events delivered to the external collector",
	},
)

var ForwardFailures = promauto.With(Registry).NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forward_failures_total",
		Help:      "Collector POSTs that failed or returned a non-200 status",
	},
)

// EventsConsumed counts subscriber outcomes: ok, incomplete or decode_error.
var EventsConsumed = promauto.With(Registry).NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_consumed_total",
		Help:      "Bus messages handled by the subscriber, by outcome",
	},
	[]string{"outcome"},
)
