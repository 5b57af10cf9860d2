// Package metrics defines and registers the portal's custom Prometheus
// metrics. It is the single source of truth for metric names, labels, and
// help strings. Registration happens at import time via promauto against
// the default registry, which echoprometheus also serves.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

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

// GuardDecisionsTotal counts route-guard verdicts.
// Label:
//   - decision: "allow", "loading", "redirect_login", "redirect_unauthorized"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route-guard decisions, by verdict.",
	},
	[]string{"decision"},
)

// EdgeOutcomesTotal counts edge-redirector outcomes.
// Label:
//   - outcome: "passed", "redirected_to_login", "redirected_to_landing"
var EdgeOutcomesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "edge_outcomes_total",
		Help:      "Total number of edge-redirector evaluations, by outcome.",
	},
	[]string{"outcome"},
)

// LogsSubmittedTotal counts driving-log submissions.
// Label:
//   - status: "submitted" or "flagged"
var LogsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "driving_logs_submitted_total",
		Help:      "Total number of driving logs submitted, by intake status.",
	},
	[]string{"status"},
)

// ReservationsCreatedTotal counts newly requested appointments.
// Label:
//   - service_type: "installation", "inspection", "maintenance", "repair"
var ReservationsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_created_total",
		Help:      "Total number of reservations created, by service type.",
	},
	[]string{"service_type"},
)
