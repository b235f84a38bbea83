package filtering

import (
	"strings"

	"github.com/ajxudir/skillsearch/pkg/config"
	"github.com/ajxudir/skillsearch/pkg/constants"
	"github.com/ajxudir/skillsearch/pkg/skills"
)

// Criteria is one search request.
//
// Fields:
//   - ID: Trimmed identifier; "" means no identifier filter
//   - Skills: Distinct trimmed tokens; empty means no skill filter
//
// Criteria values are built fresh for every search and never modified.
type Criteria struct {
	ID     string
	Skills []string
}

// NewCriteria normalizes raw user input into Criteria.
//
// Parameters:
//   - id: Identifier as typed; surrounding whitespace is removed
//   - selected: Selected skills; blanks and duplicates are removed
//
// Returns:
//   - Criteria: Normalized criteria, possibly empty
//
// Example:
//
//	c := filtering.NewCriteria(" 200027 ", []string{"1", "1", ""})
//	// c.ID = "200027", c.Skills = ["1"]
func NewCriteria(id string, selected []string) Criteria {
	return Criteria{
		ID:     strings.TrimSpace(id),
		Skills: skills.Normalize(selected),
	}
}

// ParseCriteria builds Criteria from flag values, where skillList is a
// comma or semicolon separated list such as "1,2;3".
func ParseCriteria(id, skillList string) Criteria {
	return NewCriteria(id, skills.ParseList(skillList))
}

// Empty reports whether neither an identifier nor any skill is set.
//
// Returns:
//   - bool: true when a search must be rejected with MissingCriteriaError
func (c Criteria) Empty() bool {
	return c.ID == "" && len(c.Skills) == 0
}

// HasID reports whether an identifier filter is set.
func (c Criteria) HasID() bool {
	return c.ID != ""
}

// HasSkills reports whether a skill filter is set.
func (c Criteria) HasSkills() bool {
	return len(c.Skills) > 0
}

// String renders the criteria for logs and status lines.
func (c Criteria) String() string {
	id := c.ID
	if id == "" {
		id = constants.PlaceholderNone
	}
	sk := constants.PlaceholderNone
	if len(c.Skills) > 0 {
		sk = strings.Join(c.Skills, ", ")
	}
	return "ID: " + id + "; skills: " + sk
}

// SearchOptions tune how a search is evaluated.
//
// Fields:
//   - MatchMode: Skill matcher mode ("token" or "word_boundary"); "" means token
type SearchOptions struct {
	MatchMode string
}

// SearchOptionsFromConfig returns the search options configured in cfg.
func SearchOptionsFromConfig(cfg *config.Config) SearchOptions {
	return SearchOptions{MatchMode: cfg.GetMatchMode()}
}

// WithMatchMode returns a copy with the match mode set.
func (o SearchOptions) WithMatchMode(mode string) SearchOptions {
	o.MatchMode = mode
	return o
}
