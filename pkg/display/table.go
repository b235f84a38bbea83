package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/ajxudir/skillsearch/pkg/constants"
	"github.com/ajxudir/skillsearch/pkg/filtering"
	"github.com/ajxudir/skillsearch/pkg/output"
	"github.com/ajxudir/skillsearch/pkg/table"
)

// RowValues returns rows as string slices in the schema's column order.
func RowValues(rows []table.Row, schema *table.Schema) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Values(schema))
	}
	return out
}

// NewRowsTable sizes a terminal table for rows of a loaded file.
//
// Parameters:
//   - schema: Schema the rows were loaded with
//   - rows: Rows to display
//   - maxWidth: Per-column cap; 0 disables clipping
//
// Returns:
//   - *output.Table: Sized table
//   - [][]string: Row values the table was sized for
func NewRowsTable(schema *table.Schema, rows []table.Row, maxWidth int) (*output.Table, [][]string) {
	var headers []string
	if schema != nil {
		headers = schema.Columns
	}
	values := RowValues(rows, schema)
	return output.NewTableFor(headers, values, maxWidth), values
}

// PrintLoaded prints the load success line followed by the head of the
// table and any schema warnings.
//
// Parameters:
//   - w: Destination writer
//   - t: Loaded table
//   - previewRows: Number of leading rows to show
//   - maxWidth: Per-column cap
//
// Example output:
//
//	🟢 File loaded: skills.csv (3 rows)
//
//	All data (first 2 of 3 rows)
//	[ID]    [Code Mapping Skill]  OPCode
//	------  --------------------  ------
//	200027  1, 10                 A
//	200027  10, 21                A
func PrintLoaded(w io.Writer, t *table.Table, previewRows, maxWidth int) {
	Loaded(t).Fprint(w)
	_, _ = fmt.Fprintln(w)
	PrintPreview(w, t, previewRows, maxWidth)
	PrintWarnings(w, t.Warnings())
}

// PrintPreview prints the head of a table under a title.
func PrintPreview(w io.Writer, t *table.Table, n, maxWidth int) {
	head := t.Head(n)
	_, _ = fmt.Fprintln(w, PreviewHeader(len(head), t.Len()))
	tbl, values := NewRowsTable(t.Schema, head, maxWidth)
	tbl.Render(w, values)
}

// PrintResults prints a search result: the count header and the rows, or
// the no-results notice.
//
// Parameters:
//   - w: Destination writer
//   - t: Searched table
//   - res: Search result
//   - maxWidth: Per-column cap
func PrintResults(w io.Writer, t *table.Table, res *filtering.Result, maxWidth int) {
	_, _ = fmt.Fprintf(w, "%s %s\n", constants.IconSearch, ResultsHeader(res.Len()))
	if res.Empty() {
		NoResults().Fprint(w)
	} else {
		tbl, values := NewRowsTable(t.Schema, res.Rows, maxWidth)
		tbl.Render(w, values)
	}
	PrintWarnings(w, res.Warnings)
}

// PrintSkills prints the skill vocabulary, one per line, or a placeholder
// when it is empty.
func PrintSkills(w io.Writer, vocabulary []string) {
	_, _ = fmt.Fprintf(w, "Skills (%d)\n", len(vocabulary))
	if len(vocabulary) == 0 {
		_, _ = fmt.Fprintln(w, constants.PlaceholderNone)
		return
	}
	_, _ = fmt.Fprintln(w, strings.Join(vocabulary, "\n"))
}
