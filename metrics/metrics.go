// Package metrics exposes search statistics as Prometheus metrics.
//
// A Collector implements astar.Recorder, so it can be handed to any search
// through astar.WithRecorder. Every metric carries an "algorithm" label
// (astar, kastar, kastar-h):
//
//	gridsearch_searches_total               completed search calls
//	gridsearch_nodes_expanded_total         records moved to a closed set
//	gridsearch_heuristic_evaluations_total  Grid.Heuristic calls
//	gridsearch_unreachable_goals_total      goals left without a path
//	gridsearch_search_duration_seconds      wall time per call
//
// Example queries:
//
//	# expansions per search, by algorithm
//	rate(gridsearch_nodes_expanded_total[5m]) / rate(gridsearch_searches_total[5m])
//
//	# 95th percentile search latency
//	histogram_quantile(0.95, sum by (le, algorithm) (rate(gridsearch_search_duration_seconds_bucket[5m])))
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/gridsearch/astar"
)

const (
	namespace = "gridsearch"
	label     = "algorithm"
)

// Collector records astar.Stats into Prometheus vectors.
// The vectors are safe for concurrent use, so one Collector may serve
// searches running on several goroutines.
type Collector struct {
	searches    *prometheus.CounterVec
	expanded    *prometheus.CounterVec
	heuristics  *prometheus.CounterVec
	unreachable *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

var _ astar.Recorder = (*Collector)(nil)

// NewCollector creates the metric vectors and registers them with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
// It panics if a metric with the same name is already registered on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	c := &Collector{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Number of completed search calls.",
		}, []string{label}),
		expanded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_expanded_total",
			Help:      "Number of records moved to a closed set.",
		}, []string{label}),
		heuristics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "heuristic_evaluations_total",
			Help:      "Number of grid heuristic evaluations.",
		}, []string{label}),
		unreachable: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unreachable_goals_total",
			Help:      "Number of goals for which no path exists.",
		}, []string{label}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Wall time of one search call.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs .. ~2.6s
		}, []string{label}),
	}
	reg.MustRegister(c.searches, c.expanded, c.heuristics, c.unreachable, c.duration)

	return c
}

// ObserveSearch adds one completed search call to the metrics.
func (c *Collector) ObserveSearch(algorithm string, stats astar.Stats, elapsed time.Duration) {
	c.searches.WithLabelValues(algorithm).Inc()
	c.expanded.WithLabelValues(algorithm).Add(float64(stats.Expanded))
	c.heuristics.WithLabelValues(algorithm).Add(float64(stats.HeuristicCalls))
	c.unreachable.WithLabelValues(algorithm).Add(float64(stats.Unreachable))
	c.duration.WithLabelValues(algorithm).Observe(elapsed.Seconds())
}

// Handler returns an HTTP handler serving the metrics gathered from g in the
// Prometheus text format. A nil g serves prometheus.DefaultGatherer.
func Handler(g prometheus.Gatherer) http.Handler {
	if g == nil {
		g = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
