// Package observability owns the in-process log buffer and the prometheus
// collectors of the tenancy subsystem.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tenancy"

type Metrics struct {
	resolutions          *prometheus.CounterVec
	guardDecisions       *prometheus.CounterVec
	provisionings        *prometheus.CounterVec
	provisioningDuration prometheus.Histogram
	compensationFailures *prometheus.CounterVec
	roleCache            *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resolver",
			Name:      "requests_total",
			Help:      "Number of requests classified by hostname resolution outcome.",
		}, []string{"outcome"}),
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "guard",
			Name:      "decisions_total",
			Help:      "Number of access guard decisions.",
		}, []string{"decision", "reason"}),
		provisionings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provisioning",
			Name:      "runs_total",
			Help:      "Number of tenant provisioning runs by final state.",
		}, []string{"state"}),
		provisioningDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "provisioning",
			Name:      "duration_seconds",
			Help:      "Wall time of tenant provisioning runs, compensation included.",
			Buckets:   prometheus.DefBuckets,
		}),
		compensationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "provisioning",
			Name:      "compensation_failures_total",
			Help:      "Number of compensating actions that failed and left an orphaned artifact.",
		}, []string{"step"}),
		roleCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "role_cache",
			Name:      "lookups_total",
			Help:      "Number of role cache lookups.",
		}, []string{"status"}),
	}
	if reg != nil {
		reg.MustRegister(m.PrometheusCollectors()...)
	}
	return m
}

func (m *Metrics) PrometheusCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.resolutions,
		m.guardDecisions,
		m.provisionings,
		m.provisioningDuration,
		m.compensationFailures,
		m.roleCache,
	}
}

func (m *Metrics) ObserveResolution(outcome string) {
	m.resolutions.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveGuardDecision(allowed bool, reason string) {
	decision := "deny"
	if allowed {
		decision = "allow"
	}
	m.guardDecisions.WithLabelValues(decision, reason).Inc()
}

func (m *Metrics) ObserveProvisioning(state string, took time.Duration) {
	m.provisionings.WithLabelValues(state).Inc()
	m.provisioningDuration.Observe(took.Seconds())
}

func (m *Metrics) ObserveCompensationFailure(step string) {
	m.compensationFailures.WithLabelValues(step).Inc()
}

func (m *Metrics) ObserveRoleCache(hit bool) {
	status := "miss"
	if hit {
		status = "hit"
	}
	m.roleCache.WithLabelValues(status).Inc()
}
