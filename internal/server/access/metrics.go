package access

import "github.com/prometheus/client_golang/prometheus"

const (
	ResultAllow = "allow"
	ResultDeny  = "deny"
)

var decisions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "dogcatalog_access_decisions_total",
		Help: "Total number of access decisions by policy and result",
	},
	[]string{"policy", "result"},
)

// RecordDecision counts one allow or deny made by the named policy.
func RecordDecision(policy string, allowed bool) {
	result := ResultDeny
	if allowed {
		result = ResultAllow
	}
	decisions.WithLabelValues(policy, result).Inc()
}

// RegisterMetrics adds the access counters to reg.
func RegisterMetrics(reg prometheus.Registerer) error {
	return reg.Register(decisions)
}
