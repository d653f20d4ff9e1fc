package metrics

import "github.com/prometheus/client_golang/prometheus"

// Consultation Prometheus metrics.
var (
	ConsultationOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "remedex",
			Name:      "consultation_outcomes_total",
			Help:      "Consultation outcomes by status",
		},
		[]string{"status"}, // recommended / no_match / unrecognized
	)

	RemedyCandidates = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "remedex",
			Name:      "remedy_candidates",
			Help:      "Number of qualifying remedy rows per match",
			Buckets:   []float64{0, 1, 2, 3, 5, 10, 25},
		},
	)

	RemedyTableRows = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "remedex",
			Name:      "remedy_table_rows",
			Help:      "Rows loaded into the remedy table",
		},
	)
)

var consultationMetricsRegistered bool

// RegisterConsultationMetrics registers consultation metrics. Must be called once from main.
func RegisterConsultationMetrics() {
	if consultationMetricsRegistered {
		return
	}
	prometheus.MustRegister(ConsultationOutcomesTotal)
	prometheus.MustRegister(RemedyCandidates)
	prometheus.MustRegister(RemedyTableRows)
	consultationMetricsRegistered = true
}
