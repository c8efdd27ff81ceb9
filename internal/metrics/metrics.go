// Package metrics exposes Prometheus instrumentation for the biometric
// verification service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aslbio"

// Metrics holds the service collectors. Counters are incremented by the API
// layer; the active-sessions gauge is sampled on scrape.
type Metrics struct {
	registry *prometheus.Registry

	SessionsInitialized prometheus.Counter
	Enrollments         *prometheus.CounterVec
	Verifications       *prometheus.CounterVec
}

// New registers the service collectors on a fresh registry. activeSessions
// is sampled on every scrape; pass nil to skip the gauge.
func New(activeSessions func() float64) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		SessionsInitialized: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_initialized_total",
			Help:      "Telehealth verification sessions created.",
		}),
		Enrollments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrollments_total",
			Help:      "Biometric enrollment attempts by result.",
		}, []string{"result"}),
		Verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Identity verification attempts by result.",
		}, []string{"result"}),
	}

	registry.MustRegister(m.SessionsInitialized, m.Enrollments, m.Verifications)

	if activeSessions != nil {
		registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Currently tracked telehealth sessions.",
		}, activeSessions))
	}

	return m
}

// Handler returns the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
