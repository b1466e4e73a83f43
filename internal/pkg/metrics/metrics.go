// Package metrics defines and registers all custom Prometheus metrics for the
// MKX community store. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mkx"

// ── Account metrics ───────────────────────────────────────────────────────────

// AccountsRegisteredTotal counts accounts appended to the users record.
var AccountsRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "accounts_registered_total",
		Help:      "Total number of accounts registered.",
	},
)

// RegistrationsRejectedTotal counts registrations that failed validation.
// Label:
//   - reason: "missing_fields", "invalid_username", "password_mismatch",
//     "email_domain", "username_taken", "email_taken"
var RegistrationsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_rejected_total",
		Help:      "Total number of rejected registrations, by reason.",
	},
	[]string{"reason"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts.
// Label:
//   - content_type: the free-form classification tag of the post
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, by content type.",
	},
	[]string{"content_type"},
)

// PostsDeletedTotal counts posts removed by their author.
var PostsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_deleted_total",
		Help:      "Total number of posts deleted.",
	},
)

// ── Avatar metrics ────────────────────────────────────────────────────────────

// AvatarUpdatesTotal counts successful avatar changes.
var AvatarUpdatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "avatar_updates_total",
		Help:      "Total number of avatar changes.",
	},
)

// AvatarPropagatedPostsTotal counts post author snapshots rewritten by the
// avatar propagation sweep.
var AvatarPropagatedPostsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "avatar_propagated_posts_total",
		Help:      "Total number of post author snapshots rewritten by avatar changes.",
	},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// CorruptRecordsTotal counts stored values that failed to decode and were
// cleared.
// Label:
//   - key: the store key ("users", "currentUser", "posts")
var CorruptRecordsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "corrupt_records_total",
		Help:      "Total number of undecodable store records discarded, by key.",
	},
	[]string{"key"},
)

// ExecutorQueueDepth tracks operations waiting for the serial executor.
var ExecutorQueueDepth = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "executor_queue_depth",
		Help:      "Current number of operations waiting for the serial executor.",
	},
)

// OperationDuration measures how long an operation holds the executor.
// Label:
//   - outcome: "ok" or "error"
var OperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Duration of store operations run by the serial executor.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)
