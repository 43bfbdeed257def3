package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplesearch",
			Name:      "searches_total",
			Help:      "Total number of directory and external searches",
		},
		[]string{"source", "status"}, // source: "local" / "external"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "peoplesearch",
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"source"},
	)

	AutocompleteResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplesearch",
			Name:      "autocomplete_responses_total",
			Help:      "Autocomplete responses by delivery outcome",
		},
		[]string{"outcome"}, // "rendered" / "stale" / "cleared"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(AutocompleteResponsesTotal)
	searchMetricsRegistered = true
}
