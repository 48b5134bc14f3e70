// Package metrics defines all custom Prometheus metrics for the dealership
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dealership"

// MutationsTotal counts mutation attempts through the coordinator.
// Labels:
//   - entity: "User", "Car", or "Sale"
//   - operation: "create", "update", "delete"
//   - outcome: "committed", "validation_failure", "not_found", "error"
var MutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Total number of domain mutations, by entity, operation, and outcome.",
	},
	[]string{"entity", "operation", "outcome"},
)

// MutationDuration measures the wall-clock time of one mutation unit of work,
// from transaction begin to commit or rollback.
// Label:
//   - entity: "User", "Car", or "Sale"
var MutationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mutation_duration_seconds",
		Help:      "Duration of a mutation unit of work including the audit write.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"entity"},
)

// AuditEntriesTotal counts committed audit log rows, by entity kind.
var AuditEntriesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_entries_total",
		Help:      "Total number of audit log entries committed alongside mutations.",
	},
	[]string{"entity"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "inactive", "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
