// Package metrics exposes Prometheus counters for the placement engine and
// its persistence boundary.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service counters on a dedicated registry so tests
// can construct isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	DragsStarted   *prometheus.CounterVec
	Snaps          *prometheus.CounterVec
	Commits        prometheus.Counter
	CommitFailures prometheus.Counter
}

// New constructs a Metrics with its own registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		DragsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moviegrid",
			Name:      "drags_started_total",
			Help:      "Drag sessions started, by mode.",
		}, []string{"mode"}),
		Snaps: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "moviegrid",
			Name:      "snaps_total",
			Help:      "Drag releases, by snap outcome.",
		}, []string{"outcome"}),
		Commits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "moviegrid",
			Name:      "score_commits_total",
			Help:      "Score commits handed to the persistence adapter.",
		}),
		CommitFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "moviegrid",
			Name:      "score_commit_failures_total",
			Help:      "Score commits the persistence adapter reported failed.",
		}),
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
