// Package metrics defines and registers the custom Prometheus metrics
// for the blog API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the
// default registry via promauto; the request-level HTTP metrics come
// from the echoprometheus middleware wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blogapi"

// SignupsTotal counts registration attempts.
// Label:
//   - result: "success", "conflict" or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts credential login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of credential login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts token checks performed by the
// authentication gate. Requests with no candidate token are not counted.
// Label:
//   - result: "success", "expired", "malformed", "bad_signature", "unsupported"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, by result.",
	},
	[]string{"result"},
)

// ExternalLoginsTotal counts completed federated login callbacks.
// Label:
//   - result: "success" or "failure"
var ExternalLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "external_logins_total",
		Help:      "Total number of federated login callbacks, by result.",
	},
	[]string{"result"},
)
