// Package metrics exports search outcomes as Prometheus metrics.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brunokim/rewrite-search/search"
)

const namespace = "rwsearch"

// Result labels.
const (
	ResultSolved        = "solved"
	ResultMaxIterations = "max_iterations"
	ResultExhausted     = "exhausted"
	ResultError         = "error"
)

// Metrics observes searches. It implements search.Observer and is safe for
// concurrent use.
type Metrics struct {
	SearchesTotal   *prometheus.CounterVec
	ExpansionsTotal prometheus.Counter
	RewritesTotal   prometheus.Counter
	Vertices        prometheus.Histogram
	Expanded        prometheus.Histogram
}

// New creates the metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	buckets := prometheus.ExponentialBuckets(1, 4, 8)
	return &Metrics{
		SearchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Number of finished searches by result.",
		}, []string{"result"}),
		ExpansionsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "expansions_total",
			Help:      "Number of vertices expanded across all searches.",
		}),
		RewritesTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rewrites_total",
			Help:      "Number of rewrites found by rule discovery across all searches.",
		}),
		Vertices: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_vertices",
			Help:      "Distinct terms discovered per search.",
			Buckets:   buckets,
		}),
		Expanded: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_expanded",
			Help:      "Vertices expanded per search.",
			Buckets:   buckets,
		}),
	}
}

// Result classifies a search error as a label value.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultSolved
	case errors.Is(err, search.ErrMaxIterationsReached):
		return ResultMaxIterations
	case errors.Is(err, search.ErrAllVerticesExplored):
		return ResultExhausted
	}
	return ResultError
}

func (m *Metrics) OnExpanded(rewrites int) {
	m.ExpansionsTotal.Inc()
	m.RewritesTotal.Add(float64(rewrites))
}

func (m *Metrics) OnFinished(stats search.Stats, err error) {
	m.SearchesTotal.WithLabelValues(Result(err)).Inc()
	m.Vertices.Observe(float64(stats.Vertices))
	m.Expanded.Observe(float64(stats.Expanded))
}

// Observer adapts m to search.Observer.
func (m *Metrics) Observer() search.Observer {
	return observer{m}
}

type observer struct{ m *Metrics }

func (o observer) Expanded(rewrites int) { o.m.OnExpanded(rewrites) }
func (o observer) Finished(stats search.Stats, err error) { o.m.OnFinished(stats, err) }

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
