package travel

import (
	"errors"
	"fmt"
)

// ErrPlanTimeout is returned when a plan does not complete within the caller's deadline.
var ErrPlanTimeout = errors.New("travel plan timed out")

// ConfigurationError reports a missing or invalid required setting.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s is not set", e.Key)
}

// ProviderError reports a failed call to the external search service.
// Status is zero for transport failures.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	if e.Status == 0 {
		return "provider: " + e.Message
	}
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Message)
}

// ValidationError reports malformed input to a tool operation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Invalid builds a ValidationError.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// OrchestrationFailure wraps an unexpected error that escaped a plan stage.
type OrchestrationFailure struct {
	Stage string
	Err   error
}

func (e *OrchestrationFailure) Error() string {
	return fmt.Sprintf("%s stage failed: %v", e.Stage, e.Err)
}

func (e *OrchestrationFailure) Unwrap() error { return e.Err }
