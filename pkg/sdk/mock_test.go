package remedex

import (
	"context"

	"github.com/kailas-cloud/remedex/internal/domain/consultation"
	"github.com/kailas-cloud/remedex/internal/domain/disease"
	"github.com/kailas-cloud/remedex/internal/domain/query"
	domremedy "github.com/kailas-cloud/remedex/internal/domain/remedy"
	"github.com/kailas-cloud/remedex/internal/domain/remedy/filter"
	"github.com/kailas-cloud/remedex/internal/domain/symptom"
	domusage "github.com/kailas-cloud/remedex/internal/domain/usage"
	healthuc "github.com/kailas-cloud/remedex/internal/usecase/health"
)

// --- consultUseCase mock ---

type mockConsultUC struct {
	fn func(ctx context.Context, q query.Query) (consultation.Outcome, error)
}

func (m *mockConsultUC) Consult(ctx context.Context, q query.Query) (consultation.Outcome, error) {
	return m.fn(ctx, q)
}

// --- classifyUseCase mock ---

type mockClassifyUC struct {
	fn func(ctx context.Context, age int, pre string, ss []symptom.Symptom) (disease.Prediction, error)
}

func (m *mockClassifyUC) Classify(
	ctx context.Context, age int, pre string, ss []symptom.Symptom,
) (disease.Prediction, error) {
	return m.fn(ctx, age, pre, ss)
}

// --- remedyUseCase mock ---

type mockRemedyUC struct {
	rows []domremedy.Record
	got  filter.Criteria
}

func (m *mockRemedyUC) Match(c filter.Criteria) (domremedy.Record, bool) {
	m.got = c
	if len(m.rows) == 0 {
		return domremedy.Record{}, false
	}
	return m.rows[0], true
}

func (m *mockRemedyUC) Candidates(c filter.Criteria) []domremedy.Record {
	m.got = c
	return m.rows
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- usageUseCase mock ---

type mockUsageUC struct {
	report domusage.Report
	period domusage.Period
}

func (m *mockUsageUC) GetReport(_ context.Context, p domusage.Period) domusage.Report {
	m.period = p
	return m.report
}

// --- public Inferer mock ---

type mockInferer struct {
	calls int
	fn    func(ctx context.Context, system, user string) (InferenceResult, error)
}

func (m *mockInferer) Infer(ctx context.Context, system, user string) (InferenceResult, error) {
	m.calls++
	return m.fn(ctx, system, user)
}
