package remedex

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/remedex/internal/domain"
)

// Inferer produces a free-text answer for a system and a user prompt.
type Inferer interface {
	Infer(ctx context.Context, system, user string) (InferenceResult, error)
}

// InferenceResult carries the raw answer and token counts.
type InferenceResult struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// InferFunc adapts a function to the Inferer interface.
type InferFunc func(ctx context.Context, system, user string) (InferenceResult, error)

// Infer calls f.
func (f InferFunc) Infer(ctx context.Context, system, user string) (InferenceResult, error) {
	return f(ctx, system, user)
}

// Picker chooses an index in [0, n) among n qualifying remedies.
type Picker interface {
	Pick(n int) int
}

// PickerFunc adapts a function to the Picker interface.
type PickerFunc func(n int) int

// Pick calls f.
func (f PickerFunc) Pick(n int) int { return f(n) }

// infererAdapter wraps public Inferer to satisfy internal domain.Inferer.
type infererAdapter struct {
	inner Inferer
}

func (a *infererAdapter) Infer(ctx context.Context, system, user string) (domain.InferenceResult, error) {
	r, err := a.inner.Infer(ctx, system, user)
	if err != nil {
		return domain.InferenceResult{}, fmt.Errorf("infer: %w", err)
	}
	return domain.InferenceResult{
		Text:             r.Text,
		PromptTokens:     r.PromptTokens,
		CompletionTokens: r.CompletionTokens,
		TotalTokens:      r.TotalTokens,
	}, nil
}

// noopInferer fails every call (used when no classifier is configured).
type noopInferer struct{}

func (noopInferer) Infer(_ context.Context, _, _ string) (domain.InferenceResult, error) {
	return domain.InferenceResult{}, fmt.Errorf(
		"remedex: classifier not configured (use WithOpenAI or WithInferer): %w", domain.ErrMissingCredential,
	)
}
