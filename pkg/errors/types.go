package errors

import (
	"errors"
	"fmt"
)

// Exit codes for scripting integration.
// These codes allow scripts to distinguish between different failure modes.
const (
	// ExitSuccess indicates the command completed and produced output.
	ExitSuccess = 0

	// ExitNoData indicates the input parsed but held no data rows.
	ExitNoData = 1

	// ExitFailure indicates the input could not be loaded or another critical error occurred.
	ExitFailure = 2

	// ExitConfigError indicates a configuration or validation error.
	// The command could not proceed due to invalid config or flags.
	ExitConfigError = 3

	// ExitMissingCriteria indicates a search was triggered without an ID or skills.
	ExitMissingCriteria = 4
)

// ErrNoTable is returned when a search runs before any table was loaded.
var ErrNoTable = errors.New("no table loaded: upload a CSV file first")

// ExitError represents a command termination with a specific exit code.
//
// Use this error when a command needs to exit with a non-zero status
// while providing context about what went wrong.
//
// Fields:
//   - Code: Exit code (use constants ExitSuccess, ExitFailure, ...)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
//
// Example:
//
//	return &ExitError{
//	    Code:    ExitFailure,
//	    Message: "failed to load config",
//	    Err:     err,
//	}
type ExitError struct {
	// Code is the exit code for the command.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
//
// Returns:
//   - string: The error message
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// NewExitErrorf creates an ExitError with the given code and formatted message.
//
// Parameters:
//   - code: Exit code
//   - format: Printf-style format string
//   - args: Format arguments
//
// Returns:
//   - *ExitError: New exit error with formatted message
func NewExitErrorf(code int, format string, args ...interface{}) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// GetExitCode extracts the exit code from an error.
//
// It performs the following operations:
//   - Returns ExitSuccess for nil
//   - Returns the code of an ExitError anywhere in the chain
//   - Maps EmptyTableError to ExitNoData
//   - Maps MissingCriteriaError to ExitMissingCriteria
//   - Maps ValidationError to ExitConfigError
//   - Returns ExitFailure for everything else
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
//
// Example:
//
//	code := errors.GetExitCode(err)
//	os.Exit(code)
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	switch {
	case IsEmptyTable(err):
		return ExitNoData
	case IsMissingCriteria(err):
		return ExitMissingCriteria
	}
	if _, ok := IsValidationError(err); ok {
		return ExitConfigError
	}

	return ExitFailure
}

// IsExitError checks if err is an ExitError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ExitError: The ExitError if err is one, nil otherwise
//   - bool: true if err is an ExitError
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

// LoadError indicates that an uploaded file could not be parsed into a table.
//
// Covers malformed CSV structure, invalid text encoding, unreadable
// spreadsheets and inputs that exceed the configured limits. A LoadError
// never leaves a partially loaded table behind.
//
// Fields:
//   - Source: Display name of the input (file name or "stdin")
//   - Line: 1-based line of the offending record, 0 when unknown
//   - Err: Underlying parse or I/O error
//
// Example:
//
//	return nil, &LoadError{Source: name, Err: err}
type LoadError struct {
	Source string
	Line   int
	Err    error
}

// Error implements the error interface.
//
// Returns:
//   - string: "failed to load <source>[: line N]: <cause>"
func (e *LoadError) Error() string {
	src := e.Source
	if src == "" {
		src = "input"
	}
	cause := "unknown error"
	if e.Err != nil {
		cause = e.Err.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("failed to load %s: line %d: %s", src, e.Line, cause)
	}
	return fmt.Sprintf("failed to load %s: %s", src, cause)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying parse error
func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError creates a LoadError for the given source.
//
// Parameters:
//   - source: Display name of the input
//   - err: Underlying error
//
// Returns:
//   - *LoadError: New load error
func NewLoadError(source string, err error) *LoadError {
	return &LoadError{Source: source, Err: err}
}

// IsLoadError checks if err is a LoadError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *LoadError: The LoadError if err is one, nil otherwise
//   - bool: true if err is a LoadError
func IsLoadError(err error) (*LoadError, bool) {
	var le *LoadError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}

// EmptyTableError indicates that an input parsed but contains zero data rows.
//
// Fields:
//   - Source: Display name of the input
type EmptyTableError struct {
	Source string
}

// Error implements the error interface.
//
// Returns:
//   - string: Message naming the empty source
func (e *EmptyTableError) Error() string {
	if e.Source == "" {
		return "no data: the uploaded file is empty"
	}
	return fmt.Sprintf("no data: %s is empty", e.Source)
}

// IsEmptyTable reports whether err is or wraps an EmptyTableError.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if err is an EmptyTableError
func IsEmptyTable(err error) bool {
	var ee *EmptyTableError
	return errors.As(err, &ee)
}

// MissingCriteriaError indicates a search was triggered with neither an
// identifier nor any selected skills. No filtering is performed.
type MissingCriteriaError struct{}

// Error implements the error interface.
//
// Returns:
//   - string: User-facing prompt to enter criteria
func (e *MissingCriteriaError) Error() string {
	return "missing search criteria: enter an ID or select at least one skill"
}

// ErrMissingCriteria is the shared MissingCriteriaError value.
var ErrMissingCriteria error = &MissingCriteriaError{}

// IsMissingCriteria reports whether err is or wraps a MissingCriteriaError.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if err is a MissingCriteriaError
func IsMissingCriteria(err error) bool {
	var me *MissingCriteriaError
	return errors.As(err, &me)
}

// IsNoTable reports whether err is or wraps ErrNoTable.
func IsNoTable(err error) bool {
	return errors.Is(err, ErrNoTable)
}
