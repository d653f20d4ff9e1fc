package remedex

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "remedex"

// sdkMetrics counts SDK calls. Consultation outcomes are labelled separately
// so no-match and unrecognized answers stay visible without being errors.
type sdkMetrics struct {
	calls    *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "operations_total",
			Help:      "SDK calls by operation and result class.",
		}, []string{"operation", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "operation_duration_seconds",
			Help:      "SDK call latency in seconds.",
			Buckets:   []float64{.001, .005, .025, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "sdk",
			Name:      "consultation_outcomes_total",
			Help:      "Consultations by outcome status.",
		}, []string{"status"}),
	}
	for _, err := range []error{
		adopt(reg, &m.calls),
		adopt(reg, &m.latency),
		adopt(reg, &m.outcomes),
	} {
		if err != nil {
			return nil, err
		}
	}
	return m, nil
}

// adopt registers c, or swaps in the collector already registered under the
// same descriptor so several clients can share one registry.
func adopt[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	err := reg.Register(*c)
	if err == nil {
		return nil
	}
	var dup prometheus.AlreadyRegisteredError
	if !errors.As(err, &dup) {
		return fmt.Errorf("remedex: register metric: %w", err)
	}
	existing, ok := dup.ExistingCollector.(T)
	if !ok {
		return fmt.Errorf("remedex: metric registered with type %T", dup.ExistingCollector)
	}
	*c = existing
	return nil
}

// errorClass buckets an SDK error for the status label. Caller mistakes are
// kept apart from provider trouble so alerts can ignore the former.
func errorClass(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidQuery):
		return "invalid"
	case errors.Is(err, ErrInferenceQuotaExceeded):
		return "quota"
	case errors.Is(err, ErrMissingCredential):
		return "unconfigured"
	case errors.Is(err, ErrInferenceProvider):
		return "provider"
	default:
		return "error"
	}
}

// observer logs and counts SDK calls. A nil observer is a no-op.
type observer struct {
	log *slog.Logger
	m   *sdkMetrics
}

func newObserver(log *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	o := &observer{log: log}
	if reg == nil {
		return o, nil
	}
	m, err := newSDKMetrics(reg)
	if err != nil {
		return nil, err
	}
	o.m = m
	return o, nil
}

func (o *observer) observe(op string, start time.Time, err error) {
	if o == nil {
		return
	}
	elapsed := time.Since(start)
	class := errorClass(err)

	if o.m != nil {
		o.m.calls.WithLabelValues(op, class).Inc()
		o.m.latency.WithLabelValues(op).Observe(elapsed.Seconds())
	}
	if o.log == nil {
		return
	}

	switch class {
	case "ok":
		o.log.Debug("remedex call", "op", op, "duration", elapsed)
	case "invalid":
		o.log.Info("remedex call rejected", "op", op, "duration", elapsed, "error", err)
	default:
		o.log.Warn("remedex call failed", "op", op, "class", class, "duration", elapsed, "error", err)
	}
}

// outcome records a consultation result kind.
func (o *observer) outcome(status Status) {
	if o == nil {
		return
	}
	if o.m != nil {
		o.m.outcomes.WithLabelValues(string(status)).Inc()
	}
	if o.log != nil {
		o.log.Debug("consultation outcome", "status", string(status))
	}
}
