package main

import (
	"errors"
	"fmt"

	remedex "github.com/kailas-cloud/remedex/pkg/sdk"
)

// userError turns validation failures into their user-facing message.
func userError(err error) error {
	var ve *remedex.ValidationError
	if errors.As(err, &ve) {
		return fmt.Errorf("invalid %s: %s", ve.Field, ve.Message)
	}
	switch {
	case errors.Is(err, remedex.ErrMissingCredential):
		return fmt.Errorf("%w (set --api-key or REMEDEX_API_KEY)", err)
	case errors.Is(err, remedex.ErrInferenceQuotaExceeded):
		return fmt.Errorf("classifier quota exhausted: %w", err)
	}
	return err
}
