package errors

import (
	"fmt"
	"io"
	"strings"
)

// PrintErrorWithHints prints errors with actionable hints to the writer.
//
// This is the single implementation for error display across all commands.
// It formats errors consistently and looks up hints for each error.
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - errs: Slice of errors to display
//   - verbose: If true, includes additional details for validation errors
//
// Output format:
//
//	Error: <error message>
//	  💡 <actionable hint if available>
func PrintErrorWithHints(w io.Writer, errs []error, verbose bool) {
	for _, err := range errs {
		printSingleError(w, err, verbose)
	}
}

// printSingleError prints a single error with appropriate formatting.
//
// Validation errors, empty inputs and missing criteria each get their own
// prefix; everything else is printed as "Error:" with a hint lookup.
//
// Parameters:
//   - w: Writer to output to
//   - err: The error to print
//   - verbose: If true, includes detailed information
func printSingleError(w io.Writer, err error, verbose bool) {
	if err == nil {
		return
	}

	if ve, ok := IsValidationError(err); ok {
		if verbose {
			_, _ = fmt.Fprintf(w, "Validation Error: %s\n", ve.VerboseError())
		} else {
			_, _ = fmt.Fprintf(w, "Validation Error: %s\n", ve.Error())
		}
		return
	}

	switch {
	case IsEmptyTable(err):
		_, _ = fmt.Fprintf(w, "No Data: %s\n", err.Error())
		return
	case IsMissingCriteria(err):
		_, _ = fmt.Fprintf(w, "Warning: %s\n", EnhanceErrorWithHint(err))
		return
	}

	_, _ = fmt.Fprintf(w, "Error: %s\n", EnhanceErrorWithHint(err))
}

// FormatErrorsWithHints formats multiple errors with hints for display.
//
// Parameters:
//   - errs: Slice of errors to format
//
// Returns:
//   - string: Formatted error messages, each prefixed with an error indicator
func FormatErrorsWithHints(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, err := range errs {
		sb.WriteString("❌ " + EnhanceErrorWithHint(err) + "\n")
	}
	return sb.String()
}

// ValidationResult holds the results of validation operations.
//
// Fields:
//   - Errors: Slice of validation errors
//   - Warnings: Slice of warning messages
type ValidationResult struct {
	// Errors contains all validation errors encountered.
	Errors []*ValidationError

	// Warnings contains non-fatal warning messages.
	Warnings []string
}

// NewValidationResult creates a new empty ValidationResult.
//
// Returns:
//   - *ValidationResult: New validation result with empty error and warning slices
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Errors:   make([]*ValidationError, 0),
		Warnings: make([]string, 0),
	}
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AddError adds a validation error to the result.
//
// Parameters:
//   - err: The validation error to add to the errors list
func (r *ValidationResult) AddError(err *ValidationError) {
	r.Errors = append(r.Errors, err)
}

// AddWarning adds a warning message to the result.
//
// Parameters:
//   - msg: The warning message to add to the warnings list
func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// ErrorMessage returns a formatted error message for all validation errors.
//
// Returns:
//   - string: Formatted error messages, or empty string if no errors
func (r *ValidationResult) ErrorMessage() string {
	return r.format(false)
}

// VerboseErrorMessage returns detailed error messages with hints.
//
// Returns:
//   - string: Detailed error messages with hints, or empty string if no errors
func (r *ValidationResult) VerboseErrorMessage() string {
	return r.format(true)
}

func (r *ValidationResult) format(verbose bool) string {
	if len(r.Errors) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("Validation failed:\n")
	for _, err := range r.Errors {
		if verbose {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.VerboseError()))
		} else {
			sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
		}
	}
	return sb.String()
}

// PrintTo writes validation results to the given writer.
//
// Parameters:
//   - w: Writer to output to
//   - verbose: If true, includes detailed error information
func (r *ValidationResult) PrintTo(w io.Writer, verbose bool) {
	for _, warning := range r.Warnings {
		_, _ = fmt.Fprintf(w, "Warning: %s\n", warning)
	}

	if len(r.Errors) > 0 {
		_, _ = fmt.Fprint(w, r.format(verbose))
	}
}

// Err returns the result as an error, or nil when there are no errors.
//
// The first validation error is wrapped so GetExitCode maps it to
// ExitConfigError; the message lists every failure.
//
// Returns:
//   - error: nil when valid, otherwise an ExitError carrying all messages
func (r *ValidationResult) Err() error {
	if !r.HasErrors() {
		return nil
	}
	return &ExitError{Code: ExitConfigError, Message: strings.TrimRight(r.ErrorMessage(), "\n"), Err: r.Errors[0]}
}
