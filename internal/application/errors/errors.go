// Package apperrors defines application-level error types.
package apperrors

import (
	"fmt"
	"strings"
)

// Constraint kinds reported by schema validation.
const (
	ConstraintType   = "type"
	ConstraintEnum   = "enum"
	ConstraintFormat = "format"
)

// ValidationError indicates a resolved profile violates the schema.
type ValidationError struct {
	Field      string   // Dotted field path, e.g. build.release.android.buildType
	Constraint string   // Violated constraint kind (type, enum, format)
	Message    string   // Error message
	Allowed    []string // Legal values for enum violations
	Value      any      // Offending value, when known
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error.
func NewValidationError(field, constraint, message string) *ValidationError {
	return &ValidationError{
		Field:      field,
		Constraint: constraint,
		Message:    message,
	}
}

// ValidationErrors is every violation found in one resolved profile.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", ve.Field, ve.Message))
	}
	return fmt.Sprintf("profile validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Unwrap exposes the individual violations to errors.As.
func (e ValidationErrors) Unwrap() []error {
	errs := make([]error, len(e))
	for i, ve := range e {
		errs[i] = ve
	}
	return errs
}

// ConfigurationError indicates a CLI settings or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}
