package consult

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/remedex/internal/domain/consultation"
	"github.com/kailas-cloud/remedex/internal/domain/query"
	"github.com/kailas-cloud/remedex/internal/domain/remedy/filter"
	"github.com/kailas-cloud/remedex/internal/logger"
	"github.com/kailas-cloud/remedex/internal/metrics"
)

// Service runs the classifier and, for a recognized disease, the remedy matcher.
type Service struct {
	classifier Classifier
	matcher    Matcher
}

// New creates a consultation service.
func New(classifier Classifier, matcher Matcher) *Service {
	return &Service{classifier: classifier, matcher: matcher}
}

// Consult resolves a validated query into an outcome.
// Unrecognized and no-match are outcomes; only classifier failures are returned as errors.
func (s *Service) Consult(ctx context.Context, q query.Query) (consultation.Outcome, error) {
	prediction, err := s.classifier.Classify(ctx, q.Age(), q.PreConditions(), q.Symptoms())
	if err != nil {
		return consultation.Outcome{}, fmt.Errorf("consult: %w", err)
	}

	log := logger.FromContext(ctx)

	d, ok := prediction.Disease()
	if !ok {
		log.Debug("Classifier answer outside the catalog")
		return record(ctx, consultation.Unrecognized()), nil
	}

	c := filter.New(string(d), q.Age(), string(q.Allergy()), q.Diet())
	r, ok := s.matcher.Match(c)
	if !ok {
		log.Debug("No qualifying remedy", zap.String("disease", string(d)))
		return record(ctx, consultation.NoMatch(d)), nil
	}

	log.Debug("Remedy selected", zap.String("disease", string(d)), zap.String("remedy", r.Name()))
	return record(ctx, consultation.Recommended(d, r)), nil
}

// record counts the outcome and attaches it to the request's wide event.
func record(ctx context.Context, o consultation.Outcome) consultation.Outcome {
	metrics.ConsultationOutcomesTotal.WithLabelValues(string(o.Status())).Inc()

	fields := []zap.Field{zap.String("outcome", string(o.Status()))}
	if d, ok := o.Disease(); ok {
		fields = append(fields, zap.String("disease", string(d)))
	}
	if r, ok := o.Remedy(); ok {
		fields = append(fields, zap.String("remedy", r.Name()))
	}
	logger.AddFields(ctx, fields...)
	return o
}
