// Package table loads uploaded CSV and xlsx files into an immutable,
// in-memory table with a resolved schema.
//
// Only three columns carry meaning: the identifier, the multi-value skill
// column and the OPCode column used for de-duplication. Everything else is
// kept verbatim for display. All cells are text; no numeric or date typing
// is attempted.
package table

import (
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/skillsearch/pkg/skills"
)

// Row is one data record.
//
// Cells are stored exactly as the file holds them, so identifier lookups and
// de-duplication compare the stored text and matchers see the raw skill
// cell. Extra holds every other column
// by header name. Missing cells are empty strings.
type Row struct {
	ID     string
	Skill  string
	OPCode string
	Extra  map[string]string
}

// Get returns the cell for a column name.
//
// Parameters:
//   - schema: Schema the row was loaded with
//   - column: Header name from schema.Columns
//
// Returns:
//   - string: Cell text, "" when the column is unknown or the cell is missing
func (r Row) Get(schema *Schema, column string) string {
	switch {
	case schema.HasID() && column == schema.ID:
		return r.ID
	case schema.HasSkill() && column == schema.Skill:
		return r.Skill
	case schema.HasOPCode() && column == schema.OPCode:
		return r.OPCode
	default:
		return r.Extra[column]
	}
}

// Values returns the row's cells in source column order.
func (r Row) Values(schema *Schema) []string {
	if schema == nil {
		return nil
	}
	values := make([]string, len(schema.Columns))
	for i, col := range schema.Columns {
		values[i] = r.Get(schema, col)
	}
	return values
}

// Ordered returns the row as an ordered map keyed by header, preserving
// source column order when marshaled to JSON.
func (r Row) Ordered(schema *Schema) *orderedmap.OrderedMap {
	om := orderedmap.New()
	om.SetEscapeHTML(false)
	if schema == nil {
		return om
	}
	for _, col := range schema.Columns {
		om.Set(col, r.Get(schema, col))
	}
	return om
}

// Table is a loaded upload. It is never modified after loading and may be
// shared between goroutines.
type Table struct {
	// Source is the display name of the input, usually the file name.
	Source string
	Schema *Schema
	Rows   []Row

	warnings []string
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Head returns at most n leading rows. The result shares storage with the
// table and must not be modified.
func (t *Table) Head(n int) []Row {
	if t == nil || n <= 0 {
		return nil
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// SkillCells returns the raw skill cell of every row, or nil when the
// table has no skill column.
func (t *Table) SkillCells() []string {
	if t == nil || !t.Schema.HasSkill() {
		return nil
	}
	cells := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = row.Skill
	}
	return cells
}

// Vocabulary returns the sorted distinct skill tokens of the table.
//
// Returns:
//   - []string: Sorted tokens; empty when the skill column is absent or
//     every skill cell is blank
func (t *Table) Vocabulary() []string {
	return skills.Vocabulary(t.SkillCells())
}

// Warnings returns schema mismatch and load warnings.
func (t *Table) Warnings() []string {
	if t == nil {
		return nil
	}
	out := t.Schema.Warnings()
	return append(out, t.warnings...)
}

// newRow maps positional cells onto a Row using the schema.
func newRow(schema *Schema, cells []string) Row {
	var row Row
	for i, col := range schema.Columns {
		var cell string
		if i < len(cells) {
			cell = cells[i]
		}
		switch col {
		case schema.ID:
			row.ID = cell
		case schema.Skill:
			row.Skill = cell
		case schema.OPCode:
			row.OPCode = cell
		default:
			if row.Extra == nil {
				row.Extra = make(map[string]string, len(schema.Columns))
			}
			row.Extra[col] = cell
		}
	}
	return row
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
