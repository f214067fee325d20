// Package errors provides a lightweight structured error type (PackagerError)
// for category-based classification and exit-code mapping in the CLI.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of a packager error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Filesystem and artifact errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryArtifact   ErrorCategory = "artifact"

	// Runtime and infrastructure errors
	CategoryHistory  ErrorCategory = "history"
	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// PackagerError is a structured error with category, severity, and context
type PackagerError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for PackagerError
type ContextFields map[string]any

// Error implements the error interface
func (e *PackagerError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *PackagerError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *PackagerError) WithContext(key string, value any) *PackagerError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new PackagerError
func New(category ErrorCategory, severity ErrorSeverity, message string) *PackagerError {
	return &PackagerError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new PackagerError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *PackagerError {
	return &PackagerError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if pe, ok := err.(*PackagerError); ok {
		return pe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a PackagerError
func GetCategory(err error) ErrorCategory {
	if pe, ok := err.(*PackagerError); ok {
		return pe.Category
	}
	return CategoryInternal
}
