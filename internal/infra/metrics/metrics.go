// Package metrics exposes Prometheus counters for conversations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/runoshun/secbot/internal/intent"
)

// Metrics holds secbot's collectors on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	resolutions *prometheus.CounterVec
	reminders   prometheus.Counter
	sessions    prometheus.Gauge
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "secbot_resolutions_total",
				Help: "Utterances resolved, by the pipeline tier that answered.",
			},
			[]string{"tier"},
		),
		reminders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "secbot_reminders_total",
			Help: "Reminder notifications delivered.",
		}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "secbot_chat_sessions",
			Help: "Open HTTP chat sessions.",
		}),
	}
	m.registry.MustRegister(m.resolutions, m.reminders, m.sessions)
	return m
}

// ObserveResult counts one resolution. Pass it to intent.WithObserver.
func (m *Metrics) ObserveResult(res intent.Result) {
	m.resolutions.WithLabelValues(string(res.Tier)).Inc()
}

// AddReminders counts n delivered reminders.
func (m *Metrics) AddReminders(n int) {
	m.reminders.Add(float64(n))
}

// SessionOpened increments the open-session gauge.
func (m *Metrics) SessionOpened() {
	m.sessions.Inc()
}

// SessionClosed decrements the open-session gauge.
func (m *Metrics) SessionClosed() {
	m.sessions.Dec()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
