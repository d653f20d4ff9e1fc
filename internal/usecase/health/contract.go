package health

import "context"

// TableCounter reports the number of loaded remedy rows.
type TableCounter interface {
	Len() int
}

// StorePinger checks cache store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// InferenceChecker checks inference provider availability.
type InferenceChecker interface {
	HealthCheck(ctx context.Context) error
}
