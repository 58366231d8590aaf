// Package metrics exposes Prometheus counters for the auth subsystem.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the counters published on /metrics. Construct once per
// process with the default registerer; tests pass their own registry.
type Metrics struct {
	Registrations    prometheus.Counter
	Logins           *prometheus.CounterVec
	OtpIssued        prometheus.Counter
	OtpVerifications *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Registrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_auth_registrations_total",
			Help: "Total number of new identity records created.",
		}),
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_auth_logins_total",
			Help: "Total number of login attempts by outcome.",
		}, []string{"outcome"}),
		OtpIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "marketplace_auth_otp_issued_total",
			Help: "Total number of one-time codes issued.",
		}),
		OtpVerifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "marketplace_auth_otp_verifications_total",
			Help: "Total number of OTP verification attempts by result.",
		}, []string{"result"}),
	}
}

// Login outcome / OTP result label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
