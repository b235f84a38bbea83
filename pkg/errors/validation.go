package errors

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultsHelp is the command that prints every config section with its
// default values.
const DefaultsHelp = "skillsearch config --show-defaults"

// ValidationError represents a configuration or flag validation failure.
//
// Fields:
//   - Field: Name of the invalid field or setting
//   - Message: Description of what's wrong
//   - Expected: What the valid value should look like
//   - ValidKeys: List of valid options (for enum-like fields)
//   - DocSection: Config section holding this setting, shown with the
//     command that prints its defaults
//   - Hint: Actionable hint for fixing the error
//
// Example:
//
//	return &ValidationError{
//	    Field:      "matching.mode",
//	    Message:    "unknown matching mode \"fuzzy\"",
//	    ValidKeys:  []string{"token", "word_boundary"},
//	    DocSection: "matching",
//	}
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Message describes what is wrong with the field.
	Message string

	// Expected describes what a valid value should look like.
	Expected string

	// ValidKeys lists valid options for enum-like fields.
	ValidKeys []string

	// DocSection links to documentation for this field.
	DocSection string

	// Hint provides an actionable suggestion for fixing the error.
	Hint string
}

// Error implements the error interface.
//
// Returns:
//   - string: "field: message", or just the message when Field is empty
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// VerboseError returns a detailed error message with schema hints.
//
// Returns:
//   - string: Detailed error with expected values and documentation links
func (e *ValidationError) VerboseError() string {
	var sb strings.Builder

	sb.WriteString(e.Error())

	if e.Expected != "" {
		sb.WriteString(fmt.Sprintf("\n    Expected: %s", e.Expected))
	}

	if len(e.ValidKeys) > 0 {
		sb.WriteString(fmt.Sprintf("\n    Valid keys: %s", strings.Join(e.ValidKeys, ", ")))
	}

	if e.DocSection != "" {
		sb.WriteString("\n    See: " + DefaultsHelp)
		if e.DocSection != "configuration" {
			sb.WriteString(fmt.Sprintf(" (%s section)", e.DocSection))
		}
	}

	if e.Hint != "" {
		sb.WriteString(fmt.Sprintf("\n    Hint: %s", e.Hint))
	}

	return sb.String()
}

// IsValidationError checks if err is a ValidationError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ValidationError: The ValidationError if err is one, nil otherwise
//   - bool: true if err is a ValidationError
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// NewConfigValidationError creates a ValidationError for configuration issues.
//
// Parameters:
//   - field: The field name that failed validation
//   - message: Description of the error
//
// Returns:
//   - *ValidationError: New validation error
//
// Example:
//
//	err := errors.NewConfigValidationError("display.preview_rows", "must not be negative")
func NewConfigValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}
