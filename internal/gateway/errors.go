package gateway

import "fmt"

// ValidationError indicates bad or empty input. It is surfaced immediately
// and never triggers a call to the external service.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// ServiceUnavailableError indicates the external generation service stayed
// unreachable after the retry budget was exhausted.
type ServiceUnavailableError struct {
	Attempts int
	Cause    error
}

func (e *ServiceUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation service unavailable after %d attempts: %v", e.Attempts, e.Cause)
	}
	return fmt.Sprintf("generation service unavailable after %d attempts", e.Attempts)
}

func (e *ServiceUnavailableError) Unwrap() error {
	return e.Cause
}

// ExtractionError indicates the service responded but the response could not
// be mapped to the expected structure. Callers degrade to defaults; this
// error never aborts the pipeline.
type ExtractionError struct {
	Kind    PromptKind
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction error for %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("extraction error for %s: %s", e.Kind, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// TimeoutError indicates an external call exceeded its deadline.
type TimeoutError struct {
	Operation string
	Cause     error
}

func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("timeout during %s: %v", e.Operation, e.Cause)
	}
	return fmt.Sprintf("timeout during %s", e.Operation)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}
