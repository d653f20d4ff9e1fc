package classify

import (
	"context"

	"github.com/kailas-cloud/remedex/internal/domain"
)

// Inferer produces a free-text answer for a system prompt and a user query.
type Inferer interface {
	Infer(ctx context.Context, system, user string) (domain.InferenceResult, error)
}
