// Package metrics defines and registers all custom Prometheus metrics for the
// Q&A API. It is the single source of truth for metric names, labels, and
// help strings. Metrics are registered with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "qa"

// ── Content metrics ───────────────────────────────────────────────────────────

// QuestionsCreatedTotal counts newly created questions.
var QuestionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "questions_created_total",
		Help:      "Total number of questions created.",
	},
)

// AnswersCreatedTotal counts newly posted answers.
var AnswersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_created_total",
		Help:      "Total number of answers posted.",
	},
)

// VotesCastTotal counts applied votes.
// Labels:
//   - target: "question" or "answer"
//   - type: "upvote", "downvote" or "remove"
var VotesCastTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_cast_total",
		Help:      "Total number of votes applied, by target and vote type.",
	},
	[]string{"target", "type"},
)

// AnswersAcceptedTotal counts completed acceptance workflows.
var AnswersAcceptedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "answers_accepted_total",
		Help:      "Total number of answers accepted.",
	},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsCreatedTotal counts persisted notifications.
// Label:
//   - type: notification type (answer, comment, mention, accept, admin)
var NotificationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_created_total",
		Help:      "Total number of notifications persisted, by type.",
	},
	[]string{"type"},
)

// NotificationErrorsTotal counts notifications that could not be persisted.
var NotificationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_errors_total",
		Help:      "Total number of notifications that failed to persist, by type.",
	},
	[]string{"type"},
)

// ── Push metrics ──────────────────────────────────────────────────────────────

// PushPublishedTotal counts push events handed to the pub/sub channel.
// Label:
//   - result: "ok" or "error"
var PushPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_published_total",
		Help:      "Total number of push events published, by result.",
	},
	[]string{"result"},
)

// PushDroppedTotal counts push events dropped because a worker queue was full.
var PushDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "push_dropped_total",
		Help:      "Total number of push events dropped due to a full worker queue.",
	},
)

// PushQueueDepth tracks the number of push events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var PushQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "push_queue_depth",
		Help:      "Current number of push events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// PushDuration measures publish latency from dequeue to pub/sub acknowledgement.
var PushDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "push_duration_seconds",
		Help:      "Duration of a push publish from dequeue to acknowledgement.",
		Buckets:   prometheus.DefBuckets,
	},
)

// WebsocketConnections tracks open real-time connections.
var WebsocketConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "websocket_connections",
		Help:      "Current number of open WebSocket connections.",
	},
)
