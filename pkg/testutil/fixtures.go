package testutil

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// StandardHeader is the header of the reference export.
var StandardHeader = []string{"[ID]", "[Code Mapping Skill]", "OPCode", "Description"}

// ScenarioCSV is the three-row reference scenario:
//
//	200027 | "1, 10"  | A
//	200027 | "10, 21" | A
//	300001 | "2"      | B
//
// Searching ID 200027 with skill 1 returns only the first row; searching
// skill 1 alone never returns the "10, 21" row.
const ScenarioCSV = "[ID],[Code Mapping Skill],OPCode,Description\n" +
	"200027,\"1, 10\",A,first\n" +
	"200027,\"10, 21\",A,second\n" +
	"300001,2,B,third\n"

// DuplicatesCSV contains repeated (ID, OPCode) pairs with different skills.
const DuplicatesCSV = "[ID],[Code Mapping Skill],OPCode\n" +
	"1,a,X\n" +
	"1,\"a, b\",X\n" +
	"1,a,Y\n" +
	"2,b,X\n" +
	"1,b,X\n"

// HeaderOnlyCSV has a header and no data rows.
const HeaderOnlyCSV = "[ID],[Code Mapping Skill],OPCode\n"

// CSVBuilder provides a fluent API for building CSV test input.
type CSVBuilder struct {
	header []string
	rows   [][]string
}

// NewCSV creates a builder with the given header.
//
// Parameters:
//   - header: Column names; defaults to StandardHeader when empty
//
// Returns:
//   - *CSVBuilder: New builder instance ready for method chaining
func NewCSV(header ...string) *CSVBuilder {
	if len(header) == 0 {
		header = StandardHeader
	}
	return &CSVBuilder{header: header}
}

// Row appends a data row. Cells beyond the header are kept, which is how
// tests produce ragged input.
func (b *CSVBuilder) Row(cells ...string) *CSVBuilder {
	b.rows = append(b.rows, cells)
	return b
}

// Rows appends n rows produced by fn.
func (b *CSVBuilder) Rows(n int, fn func(i int) []string) *CSVBuilder {
	for i := 0; i < n; i++ {
		b.rows = append(b.rows, fn(i))
	}
	return b
}

// String renders the CSV with quoting as needed.
func (b *CSVBuilder) String() string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	_ = w.Write(b.header)
	for _, row := range b.rows {
		_ = w.Write(row)
	}
	w.Flush()
	return sb.String()
}

// Bytes renders the CSV as bytes.
func (b *CSVBuilder) Bytes() []byte {
	return []byte(b.String())
}

// WriteFile writes content to dir/name and returns the full path.
//
// Parameters:
//   - t: Testing instance for helper marking and failure
//   - dir: Target directory, usually t.TempDir()
//   - name: File name
//   - content: File contents
//
// Returns:
//   - string: Path of the written file
func WriteFile(t testing.TB, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
