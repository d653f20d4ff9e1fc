package consult

import (
	"context"

	"github.com/kailas-cloud/remedex/internal/domain/disease"
	domremedy "github.com/kailas-cloud/remedex/internal/domain/remedy"
	"github.com/kailas-cloud/remedex/internal/domain/remedy/filter"
	"github.com/kailas-cloud/remedex/internal/domain/symptom"
)

// Classifier predicts a disease from the applicant's profile.
type Classifier interface {
	Classify(ctx context.Context, age int, preConditions string, symptoms []symptom.Symptom) (disease.Prediction, error)
}

// Matcher selects one qualifying remedy.
type Matcher interface {
	Match(c filter.Criteria) (domremedy.Record, bool)
}
