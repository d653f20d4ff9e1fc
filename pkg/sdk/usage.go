package remedex

import (
	"context"
	"time"

	domusage "github.com/kailas-cloud/remedex/internal/domain/usage"
)

// UsagePeriod is the aggregation granularity for usage reports.
type UsagePeriod string

// UsagePeriod constants.
const (
	PeriodDay   UsagePeriod = "day"
	PeriodMonth UsagePeriod = "month"
	PeriodTotal UsagePeriod = "total"
)

// UsageReport contains classifier usage statistics for a time period.
// PeriodStart and PeriodEnd are zero for PeriodTotal.
type UsageReport struct {
	Period      UsagePeriod  `json:"period"`
	PeriodStart time.Time    `json:"period_start,omitzero"`
	PeriodEnd   time.Time    `json:"period_end,omitzero"`
	Model       string       `json:"model"`
	Metrics     UsageMetrics `json:"metrics"`
	Budget      BudgetStatus `json:"budget"`
}

// UsageMetrics counts classifier calls and the tokens they spent.
type UsageMetrics struct {
	InferenceRequests int `json:"inference_requests"`
	Tokens            int `json:"tokens"`
}

// BudgetStatus is the token quota at report time. A zero TokensLimit means
// no quota; TokensRemaining is then 0 and IsExhausted is never set.
type BudgetStatus struct {
	TokensLimit     int       `json:"tokens_limit"`
	TokensRemaining int       `json:"tokens_remaining"`
	IsExhausted     bool      `json:"is_exhausted"`
	ResetsAt        time.Time `json:"resets_at,omitzero"`
}

// Unlimited reports whether no token quota is configured.
func (b BudgetStatus) Unlimited() bool { return b.TokensLimit == 0 }

// Usage returns a classifier usage report for the given period.
// Counters are tracked only with WithBudget; otherwise the report is empty and unlimited.
func (c *Client) Usage(ctx context.Context, period UsagePeriod) UsageReport {
	start := time.Now()
	defer func() { c.obs.observe("usage", start, nil) }()

	report := c.usageSvc.GetReport(ctx, domusage.Period(period))
	m := report.Metrics()
	b := report.Budget()

	r := UsageReport{
		Period: UsagePeriod(report.Period()),
		Model:  report.Model(),
		Metrics: UsageMetrics{
			InferenceRequests: m.InferenceRequests(),
			Tokens:            m.Tokens(),
		},
		Budget: BudgetStatus{
			TokensLimit:     b.TokensLimit(),
			TokensRemaining: b.TokensRemaining(),
			IsExhausted:     b.IsExhausted(),
		},
	}
	if w := report.Window(); w.Bounded() {
		r.PeriodStart = time.UnixMilli(w.Start).UTC()
		r.PeriodEnd = time.UnixMilli(w.End).UTC()
	}
	if b.ResetsAt() > 0 {
		r.Budget.ResetsAt = time.UnixMilli(b.ResetsAt()).UTC()
	}
	return r
}

// usageUseCase is the internal interface for usage reports.
type usageUseCase interface {
	GetReport(ctx context.Context, period domusage.Period) domusage.Report
}
