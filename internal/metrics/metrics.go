package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the identity and branding
// services.
type Metrics struct {
	LoginsTotal        *prometheus.CounterVec
	RegistrationsTotal prometheus.Counter
	SessionsActive     prometheus.Gauge
	ExpirationsTotal   prometheus.Counter
	ThemeSwitchesTotal *prometheus.CounterVec
	TenantSwitchTotal  prometheus.Counter
}

// New initializes and registers the metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		LoginsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mlms",
			Subsystem: "session",
			Name:      "logins_total",
			Help:      "Total number of login attempts by status.",
		}, []string{"status"}), // status: ok, invalid_credentials, error
		RegistrationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "mlms",
			Subsystem: "session",
			Name:      "registrations_total",
			Help:      "Total number of successful registrations.",
		}),
		SessionsActive: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "mlms",
			Subsystem: "session",
			Name:      "active_gauge",
			Help:      "Whether a session is currently active (1 or 0).",
		}),
		ExpirationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "mlms",
			Subsystem: "session",
			Name:      "expirations_total",
			Help:      "Total number of sessions ended by the expiry watcher.",
		}),
		ThemeSwitchesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mlms",
			Subsystem: "branding",
			Name:      "theme_switches_total",
			Help:      "Total number of theme switch requests by status.",
		}, []string{"status"}), // status: ok, unknown_key
		TenantSwitchTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "mlms",
			Subsystem: "branding",
			Name:      "tenant_switches_total",
			Help:      "Total number of tenant switches.",
		}),
	}
}
