package usage

import (
	"github.com/kailas-cloud/remedex/internal/domain/usage/budget"
	"github.com/kailas-cloud/remedex/internal/domain/usage/metrics"
)

// Period is the aggregation granularity.
type Period string

// Aggregation period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodTotal Period = "total"
)

// ParsePeriod maps a query value to a Period. Empty means day.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case "", PeriodDay:
		return PeriodDay, true
	case PeriodMonth:
		return PeriodMonth, true
	case PeriodTotal:
		return PeriodTotal, true
	default:
		return "", false
	}
}

// Window is a half-open [Start, End) interval in unix millis. The zero
// Window is unbounded and covers all recorded usage.
type Window struct {
	Start int64
	End   int64
}

// Bounded reports whether w has a finite extent.
func (w Window) Bounded() bool { return w.End > w.Start }

// Contains reports whether the instant ms falls inside w.
func (w Window) Contains(ms int64) bool {
	if !w.Bounded() {
		return true
	}
	return ms >= w.Start && ms < w.End
}

// Report summarises classifier consumption for one period.
type Report struct {
	period  Period
	window  Window
	model   string
	metrics metrics.Metrics
	budget  budget.Budget
}

// NewReport creates a usage report. start and end are unix millis; pass
// zeros for the unbounded total period.
func NewReport(period Period, start, end int64, model string, m metrics.Metrics, b budget.Budget) Report {
	return Report{period: period, window: Window{Start: start, End: end}, model: model, metrics: m, budget: b}
}

func (r *Report) Period() Period           { return r.period }
func (r *Report) Window() Window           { return r.window }
func (r *Report) PeriodStart() int64       { return r.window.Start }
func (r *Report) PeriodEnd() int64         { return r.window.End }
func (r *Report) Model() string            { return r.model }
func (r *Report) Metrics() metrics.Metrics { return r.metrics }
func (r *Report) Budget() budget.Budget    { return r.budget }
