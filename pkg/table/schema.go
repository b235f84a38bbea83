package table

import (
	"fmt"

	"github.com/ajxudir/skillsearch/pkg/config"
	"github.com/ajxudir/skillsearch/pkg/constants"
	"github.com/ajxudir/skillsearch/pkg/utils"
)

// Aliases lists the accepted header names for each recognized column.
// Each list is tried in order; the first header that matches wins.
type Aliases struct {
	ID     []string
	Skill  []string
	OPCode []string
}

// DefaultAliases returns the aliases used when no configuration is given.
func DefaultAliases() Aliases {
	return AliasesFromConfig(nil)
}

// AliasesFromConfig builds aliases from the columns section of cfg.
//
// Parameters:
//   - cfg: Loaded configuration; nil yields the built-in aliases
//
// Returns:
//   - Aliases: Header names to resolve against
func AliasesFromConfig(cfg *config.Config) Aliases {
	return Aliases{
		ID:     cfg.IDColumns(),
		Skill:  cfg.SkillColumns(),
		OPCode: cfg.OPCodeColumns(),
	}
}

// Schema describes the columns of a loaded table.
//
// Columns holds every header in source order after blank and duplicate
// names were made unique. ID, Skill and OPCode hold the header that
// resolved for each recognized column, or "" when the table lacks it.
type Schema struct {
	Columns []string
	ID      string
	Skill   string
	OPCode  string

	index    map[string]int
	warnings []string
}

// NewSchema resolves the recognized columns within header.
//
// Header lookup ignores case and surrounding whitespace. A header already
// claimed by an earlier role is not reused, so one column can never be both
// the identifier and the skill column.
//
// Parameters:
//   - header: Unique column names in source order
//   - aliases: Accepted names per recognized column
//
// Returns:
//   - *Schema: Resolved schema; missing columns are reported by Warnings
func NewSchema(header []string, aliases Aliases) *Schema {
	s := &Schema{
		Columns: append([]string(nil), header...),
		index:   make(map[string]int, len(header)),
	}
	for i, name := range s.Columns {
		s.index[name] = i
	}

	claimed := make(map[int]bool, 3)
	resolve := func(names []string) string {
		for _, alias := range names {
			idx := utils.IndexFold(s.Columns, alias)
			if idx >= 0 && !claimed[idx] {
				claimed[idx] = true
				return s.Columns[idx]
			}
		}
		return ""
	}

	s.ID = resolve(aliases.ID)
	s.Skill = resolve(aliases.Skill)
	s.OPCode = resolve(aliases.OPCode)

	if s.ID == "" {
		s.warnings = append(s.warnings, fmt.Sprintf(
			"column %s not found: the ID filter is disabled", describeAliases(aliases.ID, constants.ColumnID)))
	}
	if s.Skill == "" {
		s.warnings = append(s.warnings, fmt.Sprintf(
			"column %s not found: the skill filter is disabled and no skills are listed", describeAliases(aliases.Skill, constants.ColumnSkill)))
	}
	if s.OPCode == "" && len(aliases.OPCode) > 0 {
		s.warnings = append(s.warnings, fmt.Sprintf(
			"column %s not found: duplicate results are not removed", describeAliases(aliases.OPCode, constants.ColumnOPCode)))
	}

	return s
}

func describeAliases(aliases []string, fallback string) string {
	if len(aliases) == 0 {
		return fallback
	}
	return aliases[0]
}

// HasID reports whether the identifier column was found.
func (s *Schema) HasID() bool { return s != nil && s.ID != "" }

// HasSkill reports whether the skill column was found.
func (s *Schema) HasSkill() bool { return s != nil && s.Skill != "" }

// HasOPCode reports whether the OPCode column was found.
func (s *Schema) HasOPCode() bool { return s != nil && s.OPCode != "" }

// Index returns the position of a column, or -1.
func (s *Schema) Index(name string) int {
	if s == nil {
		return -1
	}
	if i, ok := s.index[name]; ok {
		return i
	}
	return -1
}

// Warnings returns schema mismatch messages in a stable order.
func (s *Schema) Warnings() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.warnings...)
}

// uniqueHeader names blank headers "Unnamed: <i>" and suffixes repeated
// headers with ".1", ".2" and so on, matching common spreadsheet exports.
func uniqueHeader(raw []string) []string {
	out := make([]string, len(raw))
	used := make(map[string]bool, len(raw))
	for i, name := range raw {
		if isBlank(name) {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		candidate := name
		for n := 1; used[candidate]; n++ {
			candidate = fmt.Sprintf("%s.%d", name, n)
		}
		used[candidate] = true
		out[i] = candidate
	}
	return out
}
