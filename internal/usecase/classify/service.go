package classify

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/remedex/internal/domain"
	"github.com/kailas-cloud/remedex/internal/domain/disease"
	"github.com/kailas-cloud/remedex/internal/domain/query"
	"github.com/kailas-cloud/remedex/internal/domain/symptom"
)

// Service maps symptoms onto the disease catalog through an external inferer.
type Service struct {
	inferer Inferer
	system  string
}

// New creates a classification service.
func New(inferer Inferer) *Service {
	return &Service{inferer: inferer, system: SystemPrompt()}
}

// Classify asks the inferer for the most likely disease and decodes the answer strictly.
// An answer outside the catalog yields disease.Unrecognized, not an error.
// Inferer failures are wrapped with domain.ErrInferenceProvider.
func (s *Service) Classify(
	ctx context.Context, age int, preConditions string, symptoms []symptom.Symptom,
) (disease.Prediction, error) {
	if err := query.CheckAge(age); err != nil {
		return disease.Unrecognized, err
	}
	if len(symptoms) == 0 {
		return disease.Unrecognized, domain.NewValidationError("symptoms", query.MsgNoSymptoms)
	}

	result, err := s.inferer.Infer(ctx, s.system, UserPrompt(age, preConditions, symptoms))
	if err != nil {
		return disease.Unrecognized, fmt.Errorf("classify: %w: %w", domain.ErrInferenceProvider, err)
	}

	domain.UsageFromContext(ctx).AddTokens(result.TotalTokens)

	return disease.Decode(result.Text), nil
}
