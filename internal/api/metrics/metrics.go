// Package metrics defines and registers all custom Prometheus metrics for the
// Acquisitions user API. It is the single source of truth for metric names,
// labels, and help strings. Collectors register themselves with the default
// registry via promauto at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "acquisitions"

// RegistrationsTotal counts successful account registrations.
// Label:
//   - role: the role assigned to the new account ("admin" or "user")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successfully registered users, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "invalid_credentials", "not_found", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// UserMutationsTotal counts successful mutations of the user resource.
// Label:
//   - operation: "update" or "delete"
var UserMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_mutations_total",
		Help:      "Total number of successful user updates and deletions.",
	},
	[]string{"operation"},
)

// AuthzDenialsTotal counts mutations rejected by the authorization policy.
// Label:
//   - operation: "update" or "delete"
var AuthzDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denials_total",
		Help:      "Total number of mutations denied by the ownership/role policy.",
	},
	[]string{"operation"},
)

// UserListCacheTotal counts listing cache lookups.
// Label:
//   - result: "hit" or "miss"
var UserListCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_list_cache_total",
		Help:      "Total number of user listing cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)
