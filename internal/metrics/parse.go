package metrics

import "github.com/prometheus/client_golang/prometheus"

// Query-parse Prometheus metrics.
var (
	ParseRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplesearch",
			Name:      "parse_requests_total",
			Help:      "Total number of LLM parse requests",
		},
		[]string{"provider", "model", "status"},
	)

	ParseRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "peoplesearch",
			Name:      "parse_request_duration_seconds",
			Help:      "LLM parse request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	ParseTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplesearch",
			Name:      "parse_tokens_total",
			Help:      "Total parse tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	ParseErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplesearch",
			Name:      "parse_errors_total",
			Help:      "Total parse errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	ParseBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "peoplesearch",
			Name:      "parse_budget_tokens_remaining",
			Help:      "Remaining parse token budget",
		},
		[]string{"provider", "period"},
	)

	ParseCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "peoplesearch",
			Name:      "parse_cache_total",
			Help:      "Parse cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var parseMetricsRegistered bool

// RegisterParseMetrics registers Prometheus parse metrics. Must be called once from main.
func RegisterParseMetrics() {
	if parseMetricsRegistered {
		return
	}
	prometheus.MustRegister(ParseRequestsTotal)
	prometheus.MustRegister(ParseRequestDuration)
	prometheus.MustRegister(ParseTokensTotal)
	prometheus.MustRegister(ParseErrorsTotal)
	prometheus.MustRegister(ParseBudgetTokensRemaining)
	prometheus.MustRegister(ParseCacheTotal)
	parseMetricsRegistered = true
}
