// Package metrics defines and registers all custom Prometheus metrics for
// the chatbot-builder API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chatbot_builder"

// ── Auth metrics ──────────────────────────────────────────────────────────────

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

// RegistrationsTotal counts successfully created accounts.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of accounts created.",
	},
)

// ── Chatbot metrics ───────────────────────────────────────────────────────────

// ChatbotsSavedTotal counts configuration saves through any entry point.
// Label:
//   - result: "created" or "updated"
var ChatbotsSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chatbots_saved_total",
		Help:      "Total number of chatbot configuration saves, by created/updated.",
	},
	[]string{"result"},
)

// ChatbotsDeletedTotal counts permanently removed records.
var ChatbotsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chatbots_deleted_total",
		Help:      "Total number of chatbot records deleted.",
	},
)

// ── AI passthrough metrics ────────────────────────────────────────────────────

// AIRequestsTotal counts passthrough calls.
// Labels:
//   - type: "chatbot_response" or "correct_input"
//   - result: "ok" or "degraded" (upstream failed, fallback served)
var AIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_requests_total",
		Help:      "Total number of AI passthrough requests, by type and result.",
	},
	[]string{"type", "result"},
)

// AIRequestDuration measures the external completion round trip.
// Label:
//   - type: "chatbot_response" or "correct_input"
var AIRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_request_duration_seconds",
		Help:      "Duration of AI passthrough requests including the external call.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"type"},
)
