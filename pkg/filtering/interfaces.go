package filtering

import (
	"github.com/ajxudir/skillsearch/pkg/skills"
	"github.com/ajxudir/skillsearch/pkg/table"
)

// RowFilter defines one stage of the filter pipeline.
//
// This interface enables composing and testing stages independently; the
// search pipeline is a sequence of RowFilters followed by de-duplication.
//
// Example:
//
//	type keepFirst struct{}
//	func (keepFirst) Filter(rows []table.Row, _ *table.Schema) []table.Row {
//	    return rows[:1]
//	}
type RowFilter interface {
	// Filter returns the rows that pass this stage.
	//
	// Parameters:
	//   - rows: Candidate rows; must not be modified
	//   - schema: Schema the rows were loaded with
	//
	// Returns:
	//   - []table.Row: Passing rows in input order
	Filter(rows []table.Row, schema *table.Schema) []table.Row
}

// IDFilter is a RowFilter keeping rows whose identifier equals ID.
type IDFilter struct {
	ID string
}

// Filter applies FilterByID.
func (f IDFilter) Filter(rows []table.Row, schema *table.Schema) []table.Row {
	return FilterByID(rows, schema, f.ID)
}

// SkillFilter is a RowFilter keeping rows whose skill cell matches.
type SkillFilter struct {
	Matcher *skills.Matcher
}

// Filter applies FilterBySkills.
func (f SkillFilter) Filter(rows []table.Row, schema *table.Schema) []table.Row {
	return FilterBySkills(rows, schema, f.Matcher)
}

// Verify that the stages implement the RowFilter interface.
var (
	_ RowFilter = IDFilter{}
	_ RowFilter = SkillFilter{}
)
