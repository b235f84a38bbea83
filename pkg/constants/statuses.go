// Package constants provides centralized string constants used throughout the application.
// This eliminates magic strings and provides a single source of truth for column names,
// session states, and display icons.
package constants

// Known column headers as they appear in the reference data.
//
// The bracket-decorated names are the canonical export format; the bare names
// are accepted as aliases by the default configuration.
const (
	// ColumnID is the identifier column header.
	ColumnID = "[ID]"

	// ColumnSkill is the multi-value skill column header.
	ColumnSkill = "[Code Mapping Skill]"

	// ColumnOPCode is the optional column that participates in de-duplication.
	ColumnOPCode = "OPCode"
)

// Session state names, used in logs, the HTTP API and the terminal UI.
const (
	// StateIdle means no table is loaded or no search has been triggered.
	StateIdle = "Idle"

	// StateCriteriaEntered means criteria were captured but not yet applied.
	StateCriteriaEntered = "CriteriaEntered"

	// StateFiltering means a search is being evaluated.
	StateFiltering = "Filtering"

	// StateDone means the last search produced a result table.
	StateDone = "Done"

	// StateError means the last search trigger was rejected.
	StateError = "Error"
)

// Matching mode names accepted by configuration and the --mode flag.
const (
	// MatchModeToken splits the cell into tokens and compares them exactly.
	MatchModeToken = "token"

	// MatchModeWordBoundary searches the raw cell for the token between word boundaries.
	MatchModeWordBoundary = "word_boundary"
)

// Placeholder values for display when data is not available.
const (
	// PlaceholderEmpty is shown in tables for a missing cell.
	PlaceholderEmpty = ""

	// PlaceholderNone is shown when a list (vocabulary, criteria) is empty.
	PlaceholderNone = "(none)"
)

// Icon constants for status display.
// These provide visual indicators for load and search outcomes in CLI output.
const (
	// IconSuccess indicates a successful or positive state (green circle).
	IconSuccess = "🟢"

	// IconWarning indicates a warning or caution state (orange circle).
	IconWarning = "🟠"

	// IconError indicates an error or failed state (red X).
	IconError = "❌"

	// IconInfo indicates informational or neutral state (blue circle).
	IconInfo = "🔵"

	// IconSearch prefixes search headers.
	IconSearch = "🔍"

	// IconWarn is the warning prefix for messages.
	IconWarn = "⚠️"

	// IconCheckmarkBox indicates successful validation (checkmark in box).
	IconCheckmarkBox = "✅"

	// IconLightbulb indicates a hint or suggestion.
	IconLightbulb = "💡"
)
