package remedex

import "github.com/kailas-cloud/remedex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound               = domain.ErrNotFound
	ErrInvalidQuery           = domain.ErrInvalidQuery
	ErrMissingCredential      = domain.ErrMissingCredential
	ErrInferenceProvider      = domain.ErrInferenceProvider
	ErrInferenceQuotaExceeded = domain.ErrInferenceQuotaExceeded
	ErrRateLimited            = domain.ErrRateLimited
	ErrDatasetSchema          = domain.ErrDatasetSchema
)

// ValidationError carries a user-facing message for invalid input. Use errors.As() to extract it.
type ValidationError = domain.ValidationError
