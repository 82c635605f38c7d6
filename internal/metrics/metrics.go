// Package metrics holds the process's Prometheus collectors on a private
// registry, exposed through the status server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "palnotify"

// Outcome label values shared by the poll and notification counters
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics bundles every collector the application records into
type Metrics struct {
	registry *prometheus.Registry

	PollsTotal         *prometheus.CounterVec
	PollDuration       prometheus.Histogram
	PlayersOnline      prometheus.Gauge
	EventsTotal        *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
}

// New creates the collectors and registers them, along with the standard Go
// and process collectors, on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PollsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Player list polls, by outcome.",
		}, []string{"outcome"}),
		PollDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Time spent fetching and diffing one player list poll.",
			Buckets:   prometheus.DefBuckets,
		}),
		PlayersOnline: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "players_online",
			Help:      "Connected players as of the last successful poll.",
		}),
		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Observed player join/leave events.",
		}, []string{"type"}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notification deliveries, by sink and outcome.",
		}, []string{"sink", "outcome"}),
	}

	m.registry.MustRegister(
		m.PollsTotal,
		m.PollDuration,
		m.PlayersOnline,
		m.EventsTotal,
		m.NotificationsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry backing the /metrics endpoint
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
