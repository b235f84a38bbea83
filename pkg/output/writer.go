package output

import (
	"fmt"
	"io"
)

// WriteSearchResult writes search results in the specified format.
//
// CSV and xlsx carry the source columns and matching rows only; JSON and
// XML also carry the summary and warnings.
//
// Parameters:
//   - w: Destination writer for the output
//   - format: Output format (FormatJSON, FormatXML, FormatCSV or FormatXLSX)
//   - result: Search result data to write
//
// Returns:
//   - error: When format is unsupported, returns an error; when write fails, returns the underlying error; otherwise returns nil
func WriteSearchResult(w io.Writer, format Format, result *SearchResult) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(result)
	case FormatXML:
		return formatter.WriteXML(result)
	case FormatCSV, FormatXLSX:
		return formatter.writeTabular(sheetFor(result.Summary.Source), result.Columns, rowValues(result.Rows))
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteSkillsResult writes the skill vocabulary in the specified format.
//
// Parameters:
//   - w: Destination writer for the output
//   - format: Output format (FormatJSON, FormatXML, FormatCSV or FormatXLSX)
//   - result: Vocabulary to write
//
// Returns:
//   - error: When format is unsupported, returns an error; when write fails, returns the underlying error; otherwise returns nil
func WriteSkillsResult(w io.Writer, format Format, result *SkillsResult) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(result)
	case FormatXML:
		return formatter.WriteXML(result)
	case FormatCSV, FormatXLSX:
		rows := make([][]string, 0, len(result.Skills))
		for _, s := range result.Skills {
			rows = append(rows, []string{s})
		}
		return formatter.writeTabular("Skills", []string{"SKILL"}, rows)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// WritePreviewResult writes the head of a table in the specified format.
//
// Parameters:
//   - w: Destination writer for the output
//   - format: Output format (FormatJSON, FormatXML, FormatCSV or FormatXLSX)
//   - result: Preview data to write
//
// Returns:
//   - error: When format is unsupported, returns an error; when write fails, returns the underlying error; otherwise returns nil
func WritePreviewResult(w io.Writer, format Format, result *PreviewResult) error {
	formatter := NewFormatter(format, w)

	switch format {
	case FormatJSON:
		return formatter.WriteJSON(result)
	case FormatXML:
		return formatter.WriteXML(result)
	case FormatCSV, FormatXLSX:
		return formatter.writeTabular(sheetFor(result.Summary.Source), result.Columns, rowValues(result.Rows))
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
