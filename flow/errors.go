package flow

import (
	"fmt"
	"strings"
)

// ValidationError is a user-correctable input error. The engine re-prompts
// the same step and leaves state untouched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Invalid builds a ValidationError from a format string.
func Invalid(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// CompletenessError means a required field was missing at commit time.
// This is an engine defect: the flow is aborted and the session cleared.
type CompletenessError struct {
	Missing []StepName
}

func (e *CompletenessError) Error() string {
	names := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		names[i] = string(m)
	}
	return "draft incomplete, missing: " + strings.Join(names, ", ")
}

// ExternalError wraps a failure reported by the ads collaborator. The
// platform message is surfaced verbatim to the user.
type ExternalError struct {
	Op      string
	Message string
	Err     error
}

func (e *ExternalError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalError) Unwrap() error {
	return e.Err
}
