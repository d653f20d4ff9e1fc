// Package usage reports classifier token spend per window.
package usage

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/remedex/internal/domain/usage"
	"github.com/kailas-cloud/remedex/internal/domain/usage/budget"
	"github.com/kailas-cloud/remedex/internal/domain/usage/metrics"
)

// Service handles usage reporting.
type Service struct {
	br    BudgetReader
	model string
	now   func() time.Time
}

// New creates a Service. br can be nil (unlimited mode, no counters).
func New(br BudgetReader, model string) *Service {
	return &Service{br: br, model: model, now: time.Now}
}

// counters is one budget window as seen by the tracker.
type counters struct {
	limit, used, requests int64
}

// GetReport builds a usage report for the given period. The total period has
// no boundaries and reports the monthly counters, the widest window tracked.
func (s *Service) GetReport(_ context.Context, period domusage.Period) domusage.Report {
	start, end := bounds(period, s.now().UTC())
	c := s.counters(period)

	return domusage.NewReport(period, start, end, s.model,
		metrics.New(int(c.requests), int(c.used)),
		budget.New(int(c.limit), int(c.used), end),
	)
}

func (s *Service) counters(period domusage.Period) counters {
	if s.br == nil {
		return counters{}
	}
	if period == domusage.PeriodDay {
		return counters{s.br.DailyLimit(), s.br.DailyUsed(), s.br.DailyRequests()}
	}
	return counters{s.br.MonthlyLimit(), s.br.MonthlyUsed(), s.br.MonthlyRequests()}
}

// bounds returns the UTC window [start, end) in unix millis, zero for total.
func bounds(period domusage.Period, now time.Time) (start, end int64) {
	var from, to time.Time
	switch period {
	case domusage.PeriodDay:
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 0, 1)
	case domusage.PeriodMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0)
	default:
		return 0, 0
	}
	return from.UnixMilli(), to.UnixMilli()
}
