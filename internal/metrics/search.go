package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "spacesearch",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"status"}, // "ok" / "empty" / "embed_error"
	)

	SearchCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "spacesearch",
			Name:      "search_candidates",
			Help:      "Number of embedded catalog items considered per search",
			Buckets:   []float64{0, 10, 25, 50, 100, 250, 500, 1000, 2500},
		},
	)

	HistoryRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "spacesearch",
			Name:      "history_records",
			Help:      "Current number of stored history records",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchCandidates)
	prometheus.MustRegister(HistoryRecords)
	searchMetricsRegistered = true
}
