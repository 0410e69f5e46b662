package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the lead pipeline. Spam blocks are
// counted here and in logs only; the HTTP response never distinguishes them.
type Metrics struct {
	LeadsCreated         prometheus.Counter
	LeadsBlocked         prometheus.Counter
	RateLimited          prometheus.Counter
	ValidationFailures   prometheus.Counter
	NotificationFailures prometheus.Counter
	Assignments          *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		LeadsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propworth_leads_created_total",
			Help: "Total number of leads persisted.",
		}),
		LeadsBlocked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propworth_leads_blocked_total",
			Help: "Total number of submissions silently discarded by the honeypot.",
		}),
		RateLimited: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propworth_submissions_rate_limited_total",
			Help: "Total number of submissions rejected by the rate limiter.",
		}),
		ValidationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propworth_submissions_invalid_total",
			Help: "Total number of submissions failing structural validation or consent.",
		}),
		NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "propworth_notification_failures_total",
			Help: "Total number of agent notification attempts that failed.",
		}),
		Assignments: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "propworth_assignments_total",
			Help: "Total number of agent assignments by reason.",
		}, []string{"reason"}),
	}
}
