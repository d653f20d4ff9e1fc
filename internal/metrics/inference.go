package metrics

import "github.com/prometheus/client_golang/prometheus"

// Inference Prometheus metrics.
var (
	InferenceRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remedex",
			Name:      "inference_requests_total",
			Help:      "Total number of classifier inference requests",
		},
		[]string{"provider", "model", "status"},
	)

	InferenceRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "remedex",
			Name:      "inference_request_duration_seconds",
			Help:      "Classifier inference request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	InferenceTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remedex",
			Name:      "inference_tokens_total",
			Help:      "Total classifier tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	InferenceErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remedex",
			Name:      "inference_errors_total",
			Help:      "Total classifier inference errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	InferenceBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "remedex",
			Name:      "inference_budget_tokens_remaining",
			Help:      "Remaining token budget",
		},
		[]string{"provider", "period"},
	)

	PredictionCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remedex",
			Name:      "prediction_cache_total",
			Help:      "Prediction cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var inferenceMetricsRegistered bool

// RegisterInferenceMetrics registers Prometheus inference metrics. Must be called once from main.
func RegisterInferenceMetrics() {
	if inferenceMetricsRegistered {
		return
	}
	prometheus.MustRegister(InferenceRequestsTotal)
	prometheus.MustRegister(InferenceRequestDuration)
	prometheus.MustRegister(InferenceTokensTotal)
	prometheus.MustRegister(InferenceErrorsTotal)
	prometheus.MustRegister(InferenceBudgetTokensRemaining)
	prometheus.MustRegister(PredictionCacheTotal)
	inferenceMetricsRegistered = true
}
