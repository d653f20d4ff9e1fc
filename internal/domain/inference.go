package domain

import (
	"context"
	"fmt"
	"time"
)

// Inferer is the text-generation contract shared between layers.
// system carries the instructions, user carries the query; the answer is returned verbatim.
type Inferer interface {
	Infer(ctx context.Context, system, user string) (InferenceResult, error)
}

// HealthChecker verifies inference provider availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// InferenceResult carries the raw answer and token usage through the decorator chain.
type InferenceResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// InferFunc adapts a plain function to the Inferer interface.
type InferFunc func(ctx context.Context, system, user string) (InferenceResult, error)

// Infer calls f.
func (f InferFunc) Infer(ctx context.Context, system, user string) (InferenceResult, error) {
	return f(ctx, system, user)
}

// TimeoutInferer is a domain decorator that bounds every call with a deadline.
type TimeoutInferer struct {
	inner   Inferer
	timeout time.Duration
}

// NewTimeoutInferer creates a decorator. A non-positive timeout disables the deadline.
func NewTimeoutInferer(inner Inferer, timeout time.Duration) *TimeoutInferer {
	return &TimeoutInferer{inner: inner, timeout: timeout}
}

// Infer delegates to the inner inferer under the configured deadline.
func (t *TimeoutInferer) Infer(ctx context.Context, system, user string) (InferenceResult, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	res, err := t.inner.Infer(ctx, system, user)
	if err != nil {
		return InferenceResult{}, fmt.Errorf("timeout infer: %w", err)
	}
	return res, nil
}

// HealthCheck forwards to the inner inferer when it supports health checks.
func (t *TimeoutInferer) HealthCheck(ctx context.Context) error {
	if hc, ok := t.inner.(HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}
