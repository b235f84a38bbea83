package output

import (
	"encoding/xml"
	"strings"

	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/skillsearch/pkg/filtering"
	"github.com/ajxudir/skillsearch/pkg/table"
)

// Cell is one column value of an exported row.
//
// Fields:
//   - Column: Header name, written as an XML attribute
//   - Value: Cell text
type Cell struct {
	Column string `json:"column" xml:"column,attr"`
	Value  string `json:"value" xml:",chardata"`
}

// ResultRow is an exported row. It marshals to a JSON object whose keys
// follow source column order, and to a list of <cell> elements in XML.
type ResultRow struct {
	Cells []Cell `xml:"cell"`

	ordered *orderedmap.OrderedMap
}

// NewResultRow converts a table row using its schema's column order.
func NewResultRow(r table.Row, schema *table.Schema) ResultRow {
	om := r.Ordered(schema)
	keys := om.Keys()
	cells := make([]Cell, 0, len(keys))
	for _, k := range keys {
		v, _ := om.Get(k)
		s, _ := v.(string)
		cells = append(cells, Cell{Column: k, Value: s})
	}
	return ResultRow{Cells: cells, ordered: om}
}

// Values returns the cell texts in column order.
func (r ResultRow) Values() []string {
	values := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		values[i] = c.Value
	}
	return values
}

// MarshalJSON writes the row as an object keyed by column name.
func (r ResultRow) MarshalJSON() ([]byte, error) {
	om := r.ordered
	if om == nil {
		om = orderedmap.New()
		om.SetEscapeHTML(false)
		for _, c := range r.Cells {
			om.Set(c.Column, c.Value)
		}
	}
	return om.MarshalJSON()
}

func newResultRows(rows []table.Row, schema *table.Schema) []ResultRow {
	out := make([]ResultRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewResultRow(r, schema))
	}
	return out
}

func rowValues(rows []ResultRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Values())
	}
	return out
}

// SearchResult represents the output data for the search command.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Summary: Criteria and counts for the search
//   - Columns: Header names in source order
//   - Rows: Matching rows after de-duplication
//   - Warnings: Filters that were skipped (omitted if empty)
type SearchResult struct {
	XMLName  xml.Name      `json:"-" xml:"searchResult"`
	Summary  SearchSummary `json:"summary" xml:"summary"`
	Columns  []string      `json:"columns" xml:"columns>column"`
	Rows     []ResultRow   `json:"rows" xml:"rows>row"`
	Warnings []string      `json:"warnings,omitempty" xml:"warnings>warning,omitempty"`
}

// SearchSummary holds the criteria and counts of a search.
//
// Fields:
//   - Source: Name of the searched file
//   - ID: Identifier criterion, empty when not used
//   - Skills: Selected skills, empty when not used
//   - Mode: Skill matching mode
//   - Matched: Rows that matched before de-duplication
//   - Returned: Rows returned after de-duplication
//   - Duplicates: Rows removed by de-duplication
type SearchSummary struct {
	Source     string   `json:"source" xml:"source"`
	ID         string   `json:"id,omitempty" xml:"id,omitempty"`
	Skills     []string `json:"skills,omitempty" xml:"skills>skill,omitempty"`
	Mode       string   `json:"mode" xml:"mode"`
	Matched    int      `json:"matched" xml:"matched"`
	Returned   int      `json:"returned" xml:"returned"`
	Duplicates int      `json:"duplicates" xml:"duplicates"`
}

// NewSearchResult converts a search result for export.
//
// Parameters:
//   - t: Table that was searched
//   - res: Search result
//   - mode: Matching mode the search used
//
// Returns:
//   - *SearchResult: Export view; Rows is never nil
func NewSearchResult(t *table.Table, res *filtering.Result, mode string) *SearchResult {
	out := &SearchResult{Rows: []ResultRow{}, Summary: SearchSummary{Mode: mode}}
	if t != nil {
		out.Summary.Source = t.Source
		if t.Schema != nil {
			out.Columns = t.Schema.Columns
		}
	}
	if res == nil {
		return out
	}
	out.Summary.ID = res.Criteria.ID
	out.Summary.Skills = res.Criteria.Skills
	out.Summary.Matched = res.Matched
	out.Summary.Returned = res.Len()
	out.Summary.Duplicates = res.Duplicates()
	out.Warnings = res.Warnings
	if t != nil {
		out.Rows = newResultRows(res.Rows, t.Schema)
	}
	return out
}

// SkillsResult represents the output data for the skills command.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Summary: Source and vocabulary size
//   - Skills: Sorted distinct skills
//   - Warnings: Schema warnings (omitted if empty)
type SkillsResult struct {
	XMLName  xml.Name      `json:"-" xml:"skillsResult"`
	Summary  SkillsSummary `json:"summary" xml:"summary"`
	Skills   []string      `json:"skills" xml:"skills>skill"`
	Warnings []string      `json:"warnings,omitempty" xml:"warnings>warning,omitempty"`
}

// SkillsSummary holds summary statistics for the skill vocabulary.
type SkillsSummary struct {
	Source string `json:"source" xml:"source"`
	Total  int    `json:"total" xml:"total"`
}

// NewSkillsResult builds the vocabulary export for t.
func NewSkillsResult(t *table.Table) *SkillsResult {
	vocab := t.Vocabulary()
	out := &SkillsResult{
		Skills:   vocab,
		Summary:  SkillsSummary{Total: len(vocab)},
		Warnings: t.Warnings(),
	}
	if t != nil {
		out.Summary.Source = t.Source
	}
	return out
}

// PreviewResult represents the output data for the preview command.
//
// Fields:
//   - XMLName: XML root element name (used only for XML marshaling)
//   - Summary: Table dimensions
//   - Columns: Header names in source order
//   - Rows: Leading rows of the table
//   - Warnings: Schema and load warnings (omitted if empty)
type PreviewResult struct {
	XMLName  xml.Name       `json:"-" xml:"previewResult"`
	Summary  PreviewSummary `json:"summary" xml:"summary"`
	Columns  []string       `json:"columns" xml:"columns>column"`
	Rows     []ResultRow    `json:"rows" xml:"rows>row"`
	Warnings []string       `json:"warnings,omitempty" xml:"warnings>warning,omitempty"`
}

// PreviewSummary holds the dimensions of a loaded table.
//
// Fields:
//   - Source: File name
//   - Rows: Total data rows
//   - Columns: Number of columns
//   - Skills: Size of the skill vocabulary
//   - IDColumn: Resolved identifier column, empty when absent
//   - SkillColumn: Resolved skill column, empty when absent
//   - OPCodeColumn: Resolved OPCode column, empty when absent
type PreviewSummary struct {
	Source       string `json:"source" xml:"source"`
	Rows         int    `json:"rows" xml:"rows"`
	Columns      int    `json:"columns" xml:"columns"`
	Skills       int    `json:"skills" xml:"skills"`
	IDColumn     string `json:"id_column,omitempty" xml:"idColumn,omitempty"`
	SkillColumn  string `json:"skill_column,omitempty" xml:"skillColumn,omitempty"`
	OPCodeColumn string `json:"opcode_column,omitempty" xml:"opcodeColumn,omitempty"`
}

// NewPreviewResult builds the head export for t.
//
// Parameters:
//   - t: Loaded table
//   - n: Number of leading rows to include
func NewPreviewResult(t *table.Table, n int) *PreviewResult {
	out := &PreviewResult{Rows: []ResultRow{}}
	if t == nil {
		return out
	}
	out.Summary = PreviewSummary{
		Source: t.Source,
		Rows:   t.Len(),
		Skills: len(t.Vocabulary()),
	}
	if s := t.Schema; s != nil {
		out.Columns = s.Columns
		out.Summary.Columns = len(s.Columns)
		out.Summary.IDColumn = s.ID
		out.Summary.SkillColumn = s.Skill
		out.Summary.OPCodeColumn = s.OPCode
	}
	out.Rows = newResultRows(t.Head(n), t.Schema)
	out.Warnings = t.Warnings()
	return out
}

// sheetFor names the export worksheet after the source file.
func sheetFor(source string) string {
	if i := strings.LastIndex(source, "."); i > 0 {
		source = source[:i]
	}
	return sheetName(source)
}
