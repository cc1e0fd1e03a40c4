// Package metrics defines and registers all custom Prometheus metrics for the
// sportmeet backend. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sportmeet"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - result: "success", "already_registered", "email_error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "not_enabled"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// ── Event & chat metrics ──────────────────────────────────────────────────────

// EventsCreatedTotal counts newly created events.
var EventsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_created_total",
		Help:      "Total number of events created.",
	},
)

// MessagesPostedTotal counts chat messages by chat kind.
// Label:
//   - chat_kind: "event" or "private"
var MessagesPostedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_posted_total",
		Help:      "Total number of chat messages posted, by chat kind.",
	},
	[]string{"chat_kind"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsDeliveredTotal counts notifications handed to a recipient.
// Label:
//   - channel: "socket" or "rest"
var NotificationsDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_delivered_total",
		Help:      "Total number of notifications delivered to recipients, by channel.",
	},
	[]string{"channel"},
)

// NotificationsQueuedTotal counts notifications parked for offline recipients.
var NotificationsQueuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_queued_total",
		Help:      "Total number of notifications queued for offline recipients.",
	},
)

// NotificationsDroppedTotal counts best-effort deliveries that were dropped.
var NotificationsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dropped_total",
		Help:      "Total number of socket notifications dropped (offline recipient or full buffer).",
	},
)

// ConnectedUsers tracks the number of accounts with a live socket connection.
var ConnectedUsers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "connected_users",
		Help:      "Current number of accounts connected to the notification stream.",
	},
)
