package errors

import (
	"strings"
)

// ErrorHint provides actionable resolution hints for common errors.
//
// Fields:
//   - Pattern: Substring to match in error message (case-insensitive)
//   - Hint: Brief description of the issue
//   - Resolution: Command or action to resolve the issue
type ErrorHint struct {
	// Pattern is a substring to match in error messages (case-insensitive).
	Pattern string

	// Hint is a brief description of the problem.
	Hint string

	// Resolution is a command or action to fix the problem.
	Resolution string
}

// CommonErrorHints maps error patterns to actionable hints.
// These are used by EnhanceErrorWithHint to add context to errors.
// More specific patterns must come first.
var CommonErrorHints = []ErrorHint{
	{
		Pattern:    "wrong number of fields",
		Hint:       "A row has more cells than the header",
		Resolution: "Quote cells that contain commas, or fix the row so it matches the header",
	},
	{
		Pattern:    "bare \" in non-quoted-field",
		Hint:       "Unescaped quote inside a cell",
		Resolution: "Wrap the cell in double quotes and double any embedded quotes (\"\")",
	},
	{
		Pattern:    "invalid utf-8",
		Hint:       "File is not UTF-8 encoded",
		Resolution: "Re-export the file as 'CSV UTF-8' from your spreadsheet tool",
	},
	{
		Pattern:    "exceeds limit",
		Hint:       "Input is larger than the configured limits",
		Resolution: "Raise limits.max_file_size or limits.max_rows in .skillsearch.yml",
	},
	{
		Pattern:    "no header",
		Hint:       "File has no header row",
		Resolution: "Add a header row naming the columns, e.g. [ID],[Code Mapping Skill],OPCode",
	},
	{
		Pattern:    "no data",
		Hint:       "File has a header but no rows",
		Resolution: "Check that the export contains data rows",
	},
	{
		Pattern:    "missing search criteria",
		Hint:       "Nothing to search for",
		Resolution: "Pass --id and/or --skill (see 'skillsearch skills <file>' for valid skills)",
	},
	{
		Pattern:    "no table loaded",
		Hint:       "Search ran before a file was loaded",
		Resolution: "Upload or open a CSV file first",
	},
	{
		Pattern:    "failed to load config",
		Hint:       "Configuration file is invalid or not found",
		Resolution: "Run 'skillsearch config --validate' to check it, or 'skillsearch config --init' to create one",
	},
	{
		Pattern:    "failed to load",
		Hint:       "Input could not be parsed",
		Resolution: "Check that the file is a comma-separated CSV or an .xlsx workbook",
	},
	{
		Pattern:    "no such file or directory",
		Hint:       "File or directory not found",
		Resolution: "Verify the path exists and you have read permissions",
	},
	{
		Pattern:    "permission denied",
		Hint:       "Insufficient permissions",
		Resolution: "Check file permissions or run with appropriate privileges",
	},
	{
		Pattern:    "address already in use",
		Hint:       "Server port is taken",
		Resolution: "Choose another address with --addr or server.addr",
	},
}

// GetHint returns an actionable hint for the given error.
//
// It searches the error message for known patterns in CommonErrorHints
// and returns a formatted hint if one matches.
//
// Parameters:
//   - err: The error to get a hint for
//
// Returns:
//   - string: The hint with resolution, or empty string if no hint found
func GetHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := strings.ToLower(err.Error())
	for _, hint := range CommonErrorHints {
		if strings.Contains(errStr, strings.ToLower(hint.Pattern)) {
			return hint.Hint + ": " + hint.Resolution
		}
	}

	return ""
}

// RegisterHint adds a custom hint to the registry.
//
// Parameters:
//   - pattern: Lowercase substring to match in error messages
//   - hint: Brief description of the issue
//   - resolution: Actionable suggestion for fixing the error
func RegisterHint(pattern, hint, resolution string) {
	CommonErrorHints = append(CommonErrorHints, ErrorHint{
		Pattern:    pattern,
		Hint:       hint,
		Resolution: resolution,
	})
}

// EnhanceErrorWithHint adds actionable hints to an error message if a matching pattern is found.
//
// Parameters:
//   - err: The error to enhance
//
// Returns:
//   - string: Error message with hint appended if found, otherwise just the error message
//
// Example:
//
//	enhanced := errors.EnhanceErrorWithHint(err)
//	fmt.Fprintf(os.Stderr, "Error: %s\n", enhanced)
func EnhanceErrorWithHint(err error) string {
	if err == nil {
		return ""
	}

	errStr := err.Error()
	if hint := GetHint(err); hint != "" {
		return errStr + "\n  \U0001F4A1 " + hint
	}

	return errStr
}
