package filtering

import (
	"fmt"

	"github.com/ajxudir/skillsearch/pkg/errors"
	"github.com/ajxudir/skillsearch/pkg/skills"
	"github.com/ajxudir/skillsearch/pkg/table"
	"github.com/ajxudir/skillsearch/pkg/verbose"
)

// Result is the outcome of one search.
//
// Fields:
//   - Criteria: The criteria that produced this result
//   - Rows: Matching rows after de-duplication, in table order
//   - Matched: Number of matching rows before de-duplication
//   - Warnings: Filters that were skipped because their column is missing
//   - Table: The table the rows were taken from
//   - Mode: The effective skill matching mode
type Result struct {
	Criteria Criteria
	Table    *table.Table
	Mode     string
	Rows     []table.Row
	Matched  int
	Warnings []string
}

// Len returns the number of result rows.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Empty reports whether the search matched no rows.
func (r *Result) Empty() bool {
	return r.Len() == 0
}

// Duplicates returns how many matching rows de-duplication removed.
func (r *Result) Duplicates() int {
	if r == nil {
		return 0
	}
	return r.Matched - len(r.Rows)
}

// FilterByID keeps rows whose identifier equals id exactly.
//
// Comparison is plain text equality on the stored cell, so "200027" never
// matches "2000271" or " 200027". Only the criterion is trimmed. An empty id, or a schema without an identifier column,
// passes rows through unchanged.
//
// Parameters:
//   - rows: Candidate rows
//   - schema: Schema the rows were loaded with
//   - id: Trimmed identifier
//
// Returns:
//   - []table.Row: Matching rows in input order
func FilterByID(rows []table.Row, schema *table.Schema, id string) []table.Row {
	if id == "" || !schema.HasID() {
		return rows
	}

	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		if row.ID == id {
			out = append(out, row)
		}
	}
	return out
}

// FilterBySkills keeps rows whose skill cell contains any selected token.
//
// Selected tokens are combined with OR. Blank skill cells never match. A
// nil or empty matcher, or a schema without a skill column, passes rows
// through unchanged.
//
// Parameters:
//   - rows: Candidate rows
//   - schema: Schema the rows were loaded with
//   - m: Matcher for the selected tokens
//
// Returns:
//   - []table.Row: Matching rows in input order
func FilterBySkills(rows []table.Row, schema *table.Schema, m *skills.Matcher) []table.Row {
	if m == nil || m.Empty() || !schema.HasSkill() {
		return rows
	}

	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		if m.Match(row.Skill) {
			out = append(out, row)
		}
	}
	return out
}

// dedupeKey identifies a row for de-duplication.
type dedupeKey struct {
	id     string
	opcode string
}

// Dedupe keeps the first row of every distinct (ID, OPCode) pair.
//
// De-duplication needs both columns; when either is missing rows are
// returned unchanged. The result is always a new slice.
//
// Parameters:
//   - rows: Rows in table order
//   - schema: Schema the rows were loaded with
//
// Returns:
//   - []table.Row: Distinct rows, first occurrences in input order
func Dedupe(rows []table.Row, schema *table.Schema) []table.Row {
	out := make([]table.Row, 0, len(rows))
	if !schema.HasID() || !schema.HasOPCode() {
		return append(out, rows...)
	}

	seen := make(map[dedupeKey]struct{}, len(rows))
	for _, row := range rows {
		key := dedupeKey{id: row.ID, opcode: row.OPCode}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, row)
	}
	return out
}

// Search runs one search action against a loaded table.
//
// It performs the following operations:
//   - Step 1: Rejects empty criteria with errors.ErrMissingCriteria
//   - Step 2: Applies the identifier filter, then the skill filter
//   - Step 3: De-duplicates on (ID, OPCode)
//
// Parameters:
//   - t: Loaded table
//   - c: Criteria; see NewCriteria
//   - opts: Matcher settings
//
// Returns:
//   - *Result: Result rows, possibly empty
//   - error: errors.ErrNoTable when t is nil, errors.ErrMissingCriteria for
//     empty criteria, or an error for an unknown match mode
func Search(t *table.Table, c Criteria, opts SearchOptions) (*Result, error) {
	if t == nil {
		return nil, errors.ErrNoTable
	}
	if c.Empty() {
		return nil, errors.ErrMissingCriteria
	}

	matcher, err := skills.NewMatcher(opts.MatchMode, c.Skills)
	if err != nil {
		return nil, err
	}

	result := &Result{Criteria: c, Table: t, Mode: matcher.Mode()}
	if c.HasID() && !t.Schema.HasID() {
		result.Warnings = append(result.Warnings, fmt.Sprintf("ID filter %q ignored: the table has no ID column", c.ID))
	}
	if c.HasSkills() && !t.Schema.HasSkill() {
		result.Warnings = append(result.Warnings, "skill filter ignored: the table has no skill column")
	}

	pipeline := []RowFilter{IDFilter{ID: c.ID}, SkillFilter{Matcher: matcher}}
	rows := t.Rows
	for _, stage := range pipeline {
		rows = stage.Filter(rows, t.Schema)
	}

	result.Matched = len(rows)
	result.Rows = Dedupe(rows, t.Schema)

	verbose.SearchRun(c.ID, c.Skills, result.Matched, len(result.Rows))
	return result, nil
}
