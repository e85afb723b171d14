package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the auth service.
type Metrics struct {
	SignupsTotal           prometheus.Counter
	LoginsTotal            prometheus.Counter
	LoginFailuresTotal     prometheus.Counter
	TokenRefreshesTotal    prometheus.Counter
	RefreshRejectionsTotal prometheus.Counter
}

// New creates all Prometheus metrics on the given registerer. Production
// passes prometheus.DefaultRegisterer; tests pass a fresh registry so
// repeated construction never collides.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SignupsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "shopgate_signups_total",
			Help: "Total number of accounts created",
		}),
		LoginsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "shopgate_logins_total",
			Help: "Total number of successful logins",
		}),
		LoginFailuresTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "shopgate_login_failures_total",
			Help: "Total number of rejected login attempts",
		}),
		TokenRefreshesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "shopgate_token_refreshes_total",
			Help: "Total number of access tokens minted via refresh",
		}),
		RefreshRejectionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "shopgate_refresh_rejections_total",
			Help: "Total number of refresh attempts rejected as invalid, revoked or superseded",
		}),
	}
}
