// Package filtering implements the row filter engine: identifier filter,
// skill filter and (ID, OPCode) de-duplication.
//
// Basic Search:
//
// Build criteria from user input and run a search against a loaded table:
//
//	c := filtering.NewCriteria("200027", []string{"1"})
//	result, err := filtering.Search(tbl, c, filtering.SearchOptions{})
//	if errors.IsMissingCriteria(err) {
//	    // prompt for criteria
//	}
//
// Or use ParseCriteria for CLI integration:
//
//	c := filtering.ParseCriteria(idFlag, skillFlag)
//
// Building Blocks:
//
// The individual stages are exported for reuse and testing:
//
//	rows := filtering.FilterByID(tbl.Rows, tbl.Schema, "200027")
//	rows = filtering.FilterBySkills(rows, tbl.Schema, matcher)
//	rows = filtering.Dedupe(rows, tbl.Schema)
//
// Every function here is pure: inputs are never modified, and the same
// table and criteria always produce the same result.
package filtering
