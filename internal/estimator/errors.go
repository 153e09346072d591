package estimator

import (
	"errors"
	"fmt"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

var (
	// ErrMissingDriverMapping means the catalog has no multiplier for a chosen
	// driver option. The catalog is inconsistent; no estimate may be stored.
	ErrMissingDriverMapping = errors.New("missing driver mapping")

	// ErrNoActivities means the estimate input selected no activity.
	ErrNoActivities = errors.New("at least one activity is required")

	// ErrUnknownActivity means a selected activity code is not in the catalog.
	ErrUnknownActivity = errors.New("unknown activity")
)

// ConfigError reports a reference-catalog inconsistency. It is fatal for
// estimate creation and kept distinct from ValidationError.
type ConfigError struct {
	Dimension domain.DriverDimension
	Option    string
	Err       error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s=%q", e.Err, e.Dimension, e.Option)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ValidationError reports bad estimate input supplied by the caller.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }
