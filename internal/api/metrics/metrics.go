// Package metrics defines and registers all custom Prometheus metrics for the
// rental property API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init; the
// /metrics endpoint exposes them alongside the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rental"

// AuthAttemptsTotal counts authentication operations.
// Labels:
//   - op: "login" or "register"
//   - result: "ok", "denied", or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by operation and result.",
	},
	[]string{"op", "result"},
)

// PropertiesCreatedTotal counts newly created properties.
// Label:
//   - type: "casa", "apartamento", "local", or "oficina"
var PropertiesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "properties_created_total",
		Help:      "Total number of properties created, by property type.",
	},
	[]string{"type"},
)

// PropertyMutationsTotal counts property mutation outcomes.
// Labels:
//   - op: "create", "update", or "delete"
//   - result: "ok", "invalid", "denied", "not_found", or "error"
var PropertyMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "property_mutations_total",
		Help:      "Total number of property mutations, by operation and outcome.",
	},
	[]string{"op", "result"},
)

// StatsRequestsTotal counts portfolio stats rollups served.
var StatsRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_requests_total",
		Help:      "Total number of portfolio stats rollups computed.",
	},
)
