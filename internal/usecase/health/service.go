package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the service cannot answer consultations.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names used as Report.Checks keys.
const (
	ComponentRemedyTable = "remedy_table"
	ComponentCache       = "cache"
	ComponentInference   = "inference"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	table     TableCounter
	store     StorePinger
	inference InferenceChecker
}

// New creates a Service. store and inference can be nil.
func New(table TableCounter, store StorePinger, inference InferenceChecker) *Service {
	return &Service{table: table, store: store, inference: inference}
}

// Check runs health checks against all components.
// An empty remedy table is fatal; other failures degrade.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if s.table == nil || s.table.Len() == 0 {
		checks[ComponentRemedyTable] = CheckError
	} else {
		checks[ComponentRemedyTable] = CheckOK
	}

	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			checks[ComponentCache] = CheckError
		} else {
			checks[ComponentCache] = CheckOK
		}
	}

	if s.inference != nil {
		if err := s.inference.HealthCheck(ctx); err != nil {
			checks[ComponentInference] = CheckError
		} else {
			checks[ComponentInference] = CheckOK
		}
	}

	if checks[ComponentRemedyTable] == CheckError {
		return Report{Status: Unhealthy, Checks: checks}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}
