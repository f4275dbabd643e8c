// Package metrics defines the custom Prometheus metrics of the blog API. It is
// the single source of truth for metric names, labels and help strings.
//
// Metrics are registered with the default registry on package init through
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── User metrics ──────────────────────────────────────────────────────────────

var UsersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created.",
	},
)

// UsersDeletedTotal counts deleted users. Posts removed with them are
// counted in PostsDeletedTotal{reason="cascade"}.
var UsersDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_deleted_total",
		Help:      "Total number of users deleted.",
	},
)

// ── Post metrics ──────────────────────────────────────────────────────────────

var PostsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created.",
	},
)

// PostsDeletedTotal counts deleted posts.
// Label:
//   - reason: "direct" (DELETE /api/posts/:id) or "cascade" (author removed)
var PostsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_deleted_total",
		Help:      "Total number of posts deleted, by reason.",
	},
	[]string{"reason"},
)

// ── Request pipeline metrics ──────────────────────────────────────────────────

// ValidationFailuresTotal counts rejected requests.
// Label:
//   - location: body, query or params of the first failing field
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of requests rejected by the validation pipeline.",
	},
	[]string{"location"},
)

// AuthFailuresTotal counts rejected bearer tokens.
// Label:
//   - reason: "missing_header", "malformed_header" or "invalid_token"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the identity middleware.",
	},
	[]string{"reason"},
)

// IdempotentReplaysTotal counts responses served from the idempotency store.
var IdempotentReplaysTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "idempotent_replays_total",
		Help:      "Total number of create requests answered from a stored response.",
	},
)
