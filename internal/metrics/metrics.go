package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search and demand-tracking Prometheus metrics.
var (
	SearchOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notehub",
			Name:      "search_outcomes_total",
			Help:      "Total number of searches by outcome",
		},
		[]string{"outcome"}, // "hit" / "miss"
	)

	SearchCandidatesReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "notehub",
			Name:      "search_candidates_returned",
			Help:      "Number of ranked results returned per hit",
			Buckets:   []float64{0, 1, 2, 5, 10, 20},
		},
	)

	ChallengesCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notehub",
			Name:      "challenges_created_total",
			Help:      "Total number of demand challenges opened",
		},
	)

	DemandLogConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "notehub",
			Name:      "demand_log_conflicts_total",
			Help:      "Duplicate demand log inserts absorbed",
		},
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notehub",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "notehub",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "notehub",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"model", "type"},
	)
)

var registered bool

// Register registers the notehub metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(SearchOutcomesTotal)
	prometheus.MustRegister(SearchCandidatesReturned)
	prometheus.MustRegister(ChallengesCreatedTotal)
	prometheus.MustRegister(DemandLogConflictsTotal)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	registered = true
}
