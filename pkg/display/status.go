package display

import (
	"fmt"

	"github.com/ajxudir/skillsearch/pkg/constants"
)

// StateIcon returns the icon for a session state.
//
// Parameters:
//   - state: One of the constants.State* values
//
// Returns:
//   - string: The icon for this state, or empty string if unknown
func StateIcon(state string) string {
	switch state {
	case constants.StateIdle:
		return constants.IconInfo
	case constants.StateCriteriaEntered, constants.StateFiltering:
		return constants.IconSearch
	case constants.StateDone:
		return constants.IconSuccess
	case constants.StateError:
		return constants.IconWarning
	default:
		return ""
	}
}

// FormatState formats a session state with its icon.
//
// Example:
//
//	display.FormatState("Done")   // Returns "🟢 Done"
func FormatState(state string) string {
	icon := StateIcon(state)
	if icon == "" {
		return state
	}
	return fmt.Sprintf("%s %s", icon, state)
}
