package domain

import "context"

type inferenceUsageKey struct{}

// InferenceUsage collects token usage for a single HTTP request.
// The handler puts a mutable pointer into the context before calling the service;
// the inference chain writes after the call; the handler reads it for response headers.
type InferenceUsage struct {
	TotalTokens int
	Used        bool // true if inference was called, even on a cache hit with 0 tokens
}

// NewContextWithUsage returns a context with an embedded usage collector.
func NewContextWithUsage(ctx context.Context) (context.Context, *InferenceUsage) {
	u := &InferenceUsage{}
	return context.WithValue(ctx, inferenceUsageKey{}, u), u
}

// UsageFromContext extracts the usage collector from context. Returns nil if not set.
func UsageFromContext(ctx context.Context) *InferenceUsage {
	u, _ := ctx.Value(inferenceUsageKey{}).(*InferenceUsage)
	return u
}

// AddTokens records consumed tokens.
func (u *InferenceUsage) AddTokens(n int) {
	if u != nil {
		u.TotalTokens += n
		u.Used = true
	}
}
