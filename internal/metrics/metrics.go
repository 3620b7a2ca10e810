// Package metrics exposes Prometheus collectors for game activity.
// All methods are safe to call on a nil *Metrics, so local play can run
// without a registry.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "t2048"

// Outcome labels for finished games.
const (
	OutcomeWon       = "won"
	OutcomeLost      = "lost"
	OutcomeWonLost   = "won_lost"
	OutcomeAbandoned = "abandoned"
)

// Metrics holds the collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	gamesStarted  prometheus.Counter
	gamesFinished *prometheus.CounterVec
	moves         *prometheus.CounterVec
	maxTile       prometheus.Histogram
	sshSessions   prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		gamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Games started, including resets.",
		}),
		gamesFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Games that ended, by outcome.",
		}, []string{"outcome"}),
		moves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_total",
			Help:      "Move attempts, by direction and whether the board changed.",
		}, []string{"direction", "moved"}),
		maxTile: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "max_tile",
			Help:      "Largest tile reached in finished games.",
			Buckets:   prometheus.ExponentialBuckets(16, 2, 10), // 16 .. 8192
		}),
		sshSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ssh_sessions_active",
			Help:      "Currently connected SSH players.",
		}),
	}

	m.registry.MustRegister(
		m.gamesStarted,
		m.gamesFinished,
		m.moves,
		m.maxTile,
		m.sshSessions,
		collectors.NewGoCollector(),
	)
	return m
}

// Registry returns the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GameStarted counts a new or reset game.
func (m *Metrics) GameStarted() {
	if m == nil {
		return
	}
	m.gamesStarted.Inc()
}

// GameFinished counts a game end and observes its largest tile.
func (m *Metrics) GameFinished(outcome string, maxTile int) {
	if m == nil {
		return
	}
	m.gamesFinished.WithLabelValues(outcome).Inc()
	m.maxTile.Observe(float64(maxTile))
}

// Move counts a move attempt.
func (m *Metrics) Move(direction string, moved bool) {
	if m == nil {
		return
	}
	label := "false"
	if moved {
		label = "true"
	}
	m.moves.WithLabelValues(direction, label).Inc()
}

// SessionOpened increments the active SSH session gauge.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.sshSessions.Inc()
}

// SessionClosed decrements the active SSH session gauge.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.sshSessions.Dec()
}
