// Package errors provides unified error types and display for skillsearch.
//
// This package consolidates all error handling into a single location:
//   - ExitError: Command exit with specific exit code
//   - LoadError: Input could not be parsed (malformed CSV, bad encoding, limits)
//   - EmptyTableError: Input parsed but has no data rows
//   - MissingCriteriaError: Search triggered with no ID and no skills
//   - ValidationError: Configuration or flag validation failures
//
// None of these errors are fatal to a running session: the TUI and the HTTP
// server surface them as messages and keep the previous state.
//
// Error Display:
//
//	errors.PrintErrorWithHints(os.Stderr, errs, verbose)
//
// Exit Codes:
//   - ExitSuccess (0): Command completed
//   - ExitNoData (1): Input had a header but no rows
//   - ExitFailure (2): Input could not be loaded or another critical error
//   - ExitConfigError (3): Configuration or flag error
//   - ExitMissingCriteria (4): Search without criteria
package errors
