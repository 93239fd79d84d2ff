package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the server's Prometheus collectors on a private registry so
// multiple servers can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	ActiveGames    prometheus.Gauge
	HandsCompleted prometheus.Counter
	ActionsApplied *prometheus.CounterVec
	AIDecisions    *prometheus.CounterVec
}

// NewMetrics creates and registers the server collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		ActiveGames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "holdem",
			Name:      "active_games",
			Help:      "Games currently running.",
		}),
		HandsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "holdem",
			Name:      "hands_completed_total",
			Help:      "Hands played to resolution.",
		}),
		ActionsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "holdem",
			Name:      "actions_applied_total",
			Help:      "Player actions accepted by the state machine.",
		}, []string{"action"}),
		AIDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "holdem",
			Name:      "ai_decisions_total",
			Help:      "Strategy decisions taken, by strategy.",
		}, []string{"strategy"}),
	}
	m.Registry.MustRegister(m.ActiveGames, m.HandsCompleted, m.ActionsApplied, m.AIDecisions)
	return m
}
