// Package metrics defines all custom Prometheus metrics for the storefront
// client. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time;
// embedders expose them however they expose the rest of their process
// metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Backend request metrics ──────────────────────────────────────────────────

// BackendRequestsTotal counts completed backend calls.
// Labels:
//   - endpoint: logical endpoint name (e.g. "signin", "submit_order")
//   - status: HTTP status class ("2xx", "4xx", "5xx") or "network_error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of backend REST calls, labelled by endpoint and outcome.",
	},
	[]string{"endpoint", "status"},
)

// BackendRequestDuration measures backend call latency end-to-end.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend REST calls from send to decoded response.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// SessionPurgesTotal counts session purges.
// Label:
//   - reason: "unauthorized", "expired", "corrupt", "incomplete", "invalid"
var SessionPurgesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_purges_total",
		Help:      "Total number of times the persisted session was purged, by reason.",
	},
	[]string{"reason"},
)

// ── Cart metrics ─────────────────────────────────────────────────────────────

// CartMutationsTotal counts cart mutations.
// Label:
//   - op: "add", "set_quantity", "remove", "clear"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations, by operation.",
	},
	[]string{"op"},
)

// OrdersSubmittedTotal counts checkout attempts that reached the backend.
// Label:
//   - result: "ok", "unauthorized", "error"
var OrdersSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_submitted_total",
		Help:      "Total number of order submissions, by result.",
	},
	[]string{"result"},
)
