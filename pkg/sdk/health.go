package remedex

import (
	"context"
	"sort"
	"time"

	healthuc "github.com/kailas-cloud/remedex/internal/usecase/health"
)

// HealthState is the aggregated health verdict.
type HealthState string

// HealthState constants. HealthError means the remedy table is empty and no
// consultation can succeed; HealthDegraded means an optional dependency failed.
const (
	HealthOK       HealthState = HealthState(healthuc.Healthy)
	HealthDegraded HealthState = HealthState(healthuc.Degraded)
	HealthError    HealthState = HealthState(healthuc.Unhealthy)
)

// HealthStatus is the verdict plus one "ok"/"error" entry per checked component
// ("remedy_table", and "cache" when WithCache is set).
type HealthStatus struct {
	Status HealthState       `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Ready reports whether consultations can be served.
func (h HealthStatus) Ready() bool { return h.Status != HealthError }

// Failing lists the components whose check failed, sorted.
func (h HealthStatus) Failing() []string {
	var out []string
	for name, res := range h.Checks {
		if res != string(healthuc.CheckOK) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// Health checks the remedy table and, when configured, the cache store.
func (c *Client) Health(ctx context.Context) HealthStatus {
	start := time.Now()
	report := c.healthSvc.Check(ctx)
	c.obs.observe("health", start, nil)

	h := HealthStatus{
		Status: HealthState(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
	}
	for name, res := range report.Checks {
		h.Checks[name] = string(res)
	}
	return h
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
