package usage

import (
	"context"
	"testing"
	"time"

	domusage "github.com/kailas-cloud/remedex/internal/domain/usage"
)

type mockBudgetReader struct {
	dailyLimit, dailyUsed, dailyRequests       int64
	monthlyLimit, monthlyUsed, monthlyRequests int64
}

func (m *mockBudgetReader) DailyLimit() int64      { return m.dailyLimit }
func (m *mockBudgetReader) MonthlyLimit() int64    { return m.monthlyLimit }
func (m *mockBudgetReader) DailyUsed() int64       { return m.dailyUsed }
func (m *mockBudgetReader) MonthlyUsed() int64     { return m.monthlyUsed }
func (m *mockBudgetReader) DailyRequests() int64   { return m.dailyRequests }
func (m *mockBudgetReader) MonthlyRequests() int64 { return m.monthlyRequests }

func fixedService(br BudgetReader, now time.Time) *Service {
	svc := New(br, "llama3-70b-8192")
	svc.now = func() time.Time { return now }
	return svc
}

func ms(y int, m time.Month, d int) int64 { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).UnixMilli() }

func TestGetReport(t *testing.T) {
	br := &mockBudgetReader{
		dailyLimit: 10000, dailyUsed: 3000, dailyRequests: 12,
		monthlyLimit: 100000, monthlyUsed: 100000, monthlyRequests: 310,
	}
	now := time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC)

	tests := []struct {
		period                   domusage.Period
		wantStart, wantEnd       int64
		wantLimit, wantRemaining int
		wantTokens, wantRequests int
		wantExhausted            bool
	}{
		{domusage.PeriodDay, ms(2026, 12, 31), ms(2027, 1, 1), 10000, 7000, 3000, 12, false},
		{domusage.PeriodMonth, ms(2026, 12, 1), ms(2027, 1, 1), 100000, 0, 100000, 310, true},
		{domusage.PeriodTotal, 0, 0, 100000, 0, 100000, 310, true},
	}
	for _, tc := range tests {
		t.Run(string(tc.period), func(t *testing.T) {
			r := fixedService(br, now).GetReport(context.Background(), tc.period)

			if r.Period() != tc.period || r.Model() != "llama3-70b-8192" {
				t.Errorf("period/model = %q/%q", r.Period(), r.Model())
			}
			if r.PeriodStart() != tc.wantStart || r.PeriodEnd() != tc.wantEnd {
				t.Errorf("bounds = [%d, %d), want [%d, %d)", r.PeriodStart(), r.PeriodEnd(), tc.wantStart, tc.wantEnd)
			}
			if r.Budget().ResetsAt() != tc.wantEnd {
				t.Errorf("resets_at = %d, want %d", r.Budget().ResetsAt(), tc.wantEnd)
			}
			if r.Budget().TokensLimit() != tc.wantLimit || r.Budget().TokensRemaining() != tc.wantRemaining {
				t.Errorf("limit/remaining = %d/%d, want %d/%d",
					r.Budget().TokensLimit(), r.Budget().TokensRemaining(), tc.wantLimit, tc.wantRemaining)
			}
			if r.Budget().IsExhausted() != tc.wantExhausted {
				t.Errorf("exhausted = %v, want %v", r.Budget().IsExhausted(), tc.wantExhausted)
			}
			if r.Metrics().Tokens() != tc.wantTokens || r.Metrics().InferenceRequests() != tc.wantRequests {
				t.Errorf("tokens/requests = %d/%d, want %d/%d",
					r.Metrics().Tokens(), r.Metrics().InferenceRequests(), tc.wantTokens, tc.wantRequests)
			}
		})
	}
}

func TestGetReport_NilBudgetReader(t *testing.T) {
	r := New(nil, "").GetReport(context.Background(), domusage.PeriodDay)

	if !r.Budget().IsUnlimited() || r.Budget().IsExhausted() {
		t.Errorf("nil reader should be unlimited and not exhausted, got %+v", r.Budget())
	}
	if r.Metrics().Tokens() != 0 || r.Metrics().InferenceRequests() != 0 {
		t.Error("nil reader should report no usage")
	}
	if r.PeriodStart() == 0 {
		t.Error("day period should still have boundaries")
	}
}

func TestGetReport_UnlimitedTracker(t *testing.T) {
	br := &mockBudgetReader{dailyUsed: 400, dailyRequests: 3}
	r := fixedService(br, time.Now()).GetReport(context.Background(), domusage.PeriodDay)

	if r.Budget().IsExhausted() || r.Budget().TokensRemaining() != 0 {
		t.Errorf("unlimited budget: %+v", r.Budget())
	}
	if r.Metrics().Tokens() != 400 {
		t.Errorf("tokens = %d, want 400", r.Metrics().Tokens())
	}
}
