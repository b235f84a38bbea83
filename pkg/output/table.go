package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ajxudir/skillsearch/pkg/utils"
)

// Column represents a single table column with its header and current width.
//
// Fields:
//   - Header: The display text for this column's header
//   - Width: The current display width for this column in characters
type Column struct {
	Header string
	Width  int
}

// Table provides a terminal table formatter with dynamic column widths.
// It handles Unicode-aware width calculations and caps every column at a
// maximum width, clipping longer cells with "…".
//
// Fields:
//   - columns: Columns with their headers and widths
//   - separator: String used to separate columns in formatted output (default: "  ")
//   - maxWidth: Per-column cap; 0 disables clipping
type Table struct {
	columns   []Column
	separator string
	maxWidth  int
}

// NewTable creates a new table formatter and returns a pointer to it.
//
// Returns:
//   - *Table: A new table instance ready for column configuration
func NewTable() *Table {
	return &Table{
		columns:   make([]Column, 0),
		separator: "  ",
	}
}

// NewTableFor creates a table with one column per header, sized for the
// headers and rows.
//
// Parameters:
//   - headers: Column headers
//   - rows: Data rows used to size the columns
//   - maxWidth: Per-column cap; 0 disables clipping
//
// Returns:
//   - *Table: Sized table
func NewTableFor(headers []string, rows [][]string, maxWidth int) *Table {
	t := NewTable().WithMaxWidth(maxWidth)
	for _, h := range headers {
		t.AddColumn(h)
	}
	for _, row := range rows {
		t.UpdateWidths(row...)
	}
	return t
}

// WithSeparator sets a custom column separator and returns the table.
func (t *Table) WithSeparator(sep string) *Table {
	t.separator = sep
	return t
}

// WithMaxWidth caps every column at width display cells. Widths of columns
// that were already added are reset to their headers, so call UpdateWidths
// again afterwards.
func (t *Table) WithMaxWidth(width int) *Table {
	if width < 0 {
		width = 0
	}
	t.maxWidth = width
	for i := range t.columns {
		t.columns[i].Width = utils.DisplayWidth(t.clip(t.columns[i].Header))
	}
	return t
}

// AddColumn adds a new column with the given header and returns the table.
//
// The initial width is set to the header's display width, clipped to the
// table's maximum width.
//
// Parameters:
//   - header: The column header text
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) AddColumn(header string) *Table {
	t.columns = append(t.columns, Column{
		Header: header,
		Width:  utils.DisplayWidth(t.clip(header)),
	})
	return t
}

// UpdateWidths updates column widths based on the provided values and returns the table.
//
// Each value is clipped to the maximum width before it is measured, so a
// single long skill list cannot stretch its column past the cap.
//
// Parameters:
//   - values: Variable number of strings representing a data row
//
// Returns:
//   - *Table: The table instance for method chaining
func (t *Table) UpdateWidths(values ...string) *Table {
	for i, val := range values {
		if i < len(t.columns) {
			width := utils.DisplayWidth(t.clip(val))
			if width > t.columns[i].Width {
				t.columns[i].Width = width
			}
		}
	}
	return t
}

func (t *Table) clip(val string) string {
	return utils.TruncateWidth(val, t.maxWidth)
}

// HeaderRow returns the formatted header row string.
func (t *Table) HeaderRow() string {
	parts := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		parts = append(parts, utils.ToWidth(t.clip(col.Header), col.Width))
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// SeparatorRow returns a separator row with dashes matching column widths.
func (t *Table) SeparatorRow() string {
	parts := make([]string, 0, len(t.columns))
	for _, col := range t.columns {
		parts = append(parts, strings.Repeat("-", col.Width))
	}
	return strings.Join(parts, t.separator)
}

// FormatRow formats a data row with proper padding for each column and returns the formatted string.
//
// Values are clipped to the maximum width and padded to their column's
// width. Missing values are treated as empty strings; extra values are
// ignored. Trailing padding is removed.
//
// Parameters:
//   - values: Variable number of strings representing the row data, one per column
//
// Returns:
//   - string: Formatted row with values separated by the separator
func (t *Table) FormatRow(values ...string) string {
	parts := make([]string, 0, len(t.columns))
	for i, col := range t.columns {
		val := ""
		if i < len(values) {
			val = values[i]
		}
		parts = append(parts, utils.ToWidth(t.clip(val), col.Width))
	}
	return strings.TrimRight(strings.Join(parts, t.separator), " ")
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// GetColumnWidth returns the width of a column by index, or 0 if the index
// is out of range.
func (t *Table) GetColumnWidth(index int) int {
	if index >= 0 && index < len(t.columns) {
		return t.columns[index].Width
	}
	return 0
}

// Fprint outputs the table header and separator to the given writer.
//
// Parameters:
//   - w: The writer to output to (e.g., os.Stdout, os.Stderr, or a buffer)
func (t *Table) Fprint(w io.Writer) {
	_, _ = fmt.Fprintln(w, t.HeaderRow())
	_, _ = fmt.Fprintln(w, t.SeparatorRow())
}

// Render writes the header, separator and every row.
func (t *Table) Render(w io.Writer, rows [][]string) {
	t.Fprint(w)
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, t.FormatRow(row...))
	}
}

// String returns a string representation of the table structure for debugging.
//
// The output has the form "Table{columns: [Header1:Width1, Header2:Width2]}".
func (t *Table) String() string {
	var sb strings.Builder
	sb.WriteString("Table{columns: [")
	for i, col := range t.columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(fmt.Sprintf("%s:%d", col.Header, col.Width))
	}
	sb.WriteString("]}")
	return sb.String()
}

// WriteTable renders headers and rows as a terminal table.
//
// Parameters:
//   - w: Destination writer
//   - headers: Column headers
//   - rows: Data rows
//   - maxWidth: Per-column cap; 0 disables clipping
func WriteTable(w io.Writer, headers []string, rows [][]string, maxWidth int) {
	NewTableFor(headers, rows, maxWidth).Render(w, rows)
}

// SearchTableRows returns the rows of r as string slices for WriteTable.
func SearchTableRows(r *SearchResult) [][]string {
	if r == nil {
		return nil
	}
	return rowValues(r.Rows)
}
