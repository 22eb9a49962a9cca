// Package metrics defines the custom Prometheus metrics of the accounts API.
//
// All metrics register with the default registry at package init through
// promauto; HTTP request metrics come from echoprometheus in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "accounts"

// UsersRegisteredTotal counts successful registrations.
// Label:
//   - role: the role name the user was attached to ("Business", "Client")
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

// RolesCreatedTotal counts role records created by fetch-or-create.
// Label:
//   - role: the created role name
var RolesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "roles_created_total",
		Help:      "Total number of role records created on first use of a category.",
	},
	[]string{"role"},
)

// UserListRequestsTotal counts listing requests by resolved scope.
// Label:
//   - user_type: "all", "business" or "client"
var UserListRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "user_list_requests_total",
		Help:      "Total number of user listing requests, by resolved user_type.",
	},
	[]string{"user_type"},
)

// SignInsTotal counts sign-in attempts.
// Label:
//   - result: "success" or "failure"
var SignInsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sign_ins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)
