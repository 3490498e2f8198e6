// Package metrics defines and registers all custom Prometheus metrics for the
// job portal API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Session metrics ───────────────────────────────────────────────────────────

// AuthAttemptsTotal counts authentication operations.
// Labels:
//   - operation: "signin", "signup", "confirm", "signout", "refresh"
//   - result: "ok", or the failure class (e.g. "invalid_credentials", "validation")
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// GuardDecisionsTotal counts access guard outcomes.
// Label:
//   - state: "initializing", "authorized", or "redirecting"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of access guard decisions, by final state.",
	},
	[]string{"state"},
)

// ── View cache metrics ────────────────────────────────────────────────────────

// ViewCacheLookupsTotal counts reads of the composite view cache.
// Label:
//   - result: "hit" or "miss"
var ViewCacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "view_cache_lookups_total",
		Help:      "Total number of composite view cache reads, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// RevalidationsTotal counts background view refreshes.
// Label:
//   - result: "ok", "error", or "dropped" (queue full)
var RevalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "revalidations_total",
		Help:      "Total number of background composite view revalidations, by result.",
	},
	[]string{"result"},
)

// RevalidationQueueDepth tracks pending refreshes in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var RevalidationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "revalidation_queue_depth",
		Help:      "Current number of revalidations pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// RevalidationDuration measures how long a background refresh takes.
var RevalidationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "revalidation_duration_seconds",
		Help:      "Duration of a background composite view revalidation.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Portal metrics ────────────────────────────────────────────────────────────

// JobMutationsTotal counts successful job writes.
// Label:
//   - operation: "create", "update", or "delete"
var JobMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "job_mutations_total",
		Help:      "Total number of job postings written, by operation.",
	},
	[]string{"operation"},
)

// JobsExpiredTotal counts postings closed by the expiry sweep.
var JobsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_expired_total",
		Help:      "Total number of job postings deactivated after their application deadline.",
	},
)

// UploadsTotal counts file uploads.
// Labels:
//   - bucket: target bucket (e.g. "avatars", "resumes")
//   - result: "ok", "rejected", or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of file uploads, by bucket and result.",
	},
	[]string{"bucket", "result"},
)
