// Package output provides formatters for exporting command results in various formats.
// It supports CSV, JSON, XML and xlsx output as alternatives to the default table display.
package output

import (
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Format represents the output format type.
type Format string

const (
	// FormatTable is the default terminal table output.
	FormatTable Format = "table"
	// FormatCSV outputs data as comma-separated values.
	FormatCSV Format = "csv"
	// FormatJSON outputs data as JSON.
	FormatJSON Format = "json"
	// FormatXML outputs data as XML.
	FormatXML Format = "xml"
	// FormatXLSX outputs data as an Excel workbook.
	FormatXLSX Format = "xlsx"
)

// ParseFormat parses a format string into a Format type.
//
// The parsing is case-insensitive. Valid values are "csv", "json", "xml" and "xlsx".
// Any unrecognized format returns FormatTable as the default.
//
// Parameters:
//   - s: Format string to parse (e.g., "csv", "JSON", "XlSx")
//
// Returns:
//   - Format: The parsed format, or FormatTable if unrecognized
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV
	case "json":
		return FormatJSON
	case "xml":
		return FormatXML
	case "xlsx", "excel":
		return FormatXLSX
	default:
		return FormatTable
	}
}

// ParseFormatStrict is like ParseFormat but rejects unknown values instead
// of falling back to the table format. An empty string means table.
//
// Returns:
//   - Format: The parsed format
//   - error: Non-nil for an unrecognized format name
func ParseFormatStrict(s string) (Format, error) {
	f := ParseFormat(s)
	if f == FormatTable {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "table":
		default:
			return FormatTable, fmt.Errorf("unknown output format %q (valid: table, csv, json, xml, xlsx)", s)
		}
	}
	return f, nil
}

// IsStructuredFormat returns true if the format requires structured output (not table).
//
// Parameters:
//   - f: The format to check
//
// Returns:
//   - bool: true if format is CSV, JSON, XML or xlsx; false for table format
func IsStructuredFormat(f Format) bool {
	return f == FormatCSV || f == FormatJSON || f == FormatXML || f == FormatXLSX
}

// IsBinaryFormat reports whether the format produces bytes that should not
// be written to a terminal.
func IsBinaryFormat(f Format) bool {
	return f == FormatXLSX
}

// Formatter handles writing data in a specific format.
//
// Fields:
//   - format: The output format
//   - writer: Destination for formatted output
type Formatter struct {
	format Format
	writer io.Writer
}

// NewFormatter creates a new formatter for the given format and writer.
//
// Parameters:
//   - format: The desired output format
//   - writer: Destination for formatted output
//
// Returns:
//   - *Formatter: A new formatter instance ready to write data
func NewFormatter(format Format, writer io.Writer) *Formatter {
	return &Formatter{
		format: format,
		writer: writer,
	}
}

// Format returns the current format.
func (f *Formatter) Format() Format {
	return f.format
}

// WriteCSV writes data as CSV to the output writer.
//
// Note: csv.Writer buffers all writes and only reports errors via Error() after Flush().
//
// Parameters:
//   - headers: Column headers for the CSV
//   - rows: Data rows, each row should have the same number of columns as headers
//
// Returns:
//   - error: When write or flush fails, returns the underlying error; otherwise returns nil
func (f *Formatter) WriteCSV(headers []string, rows [][]string) error {
	w := csv.NewWriter(f.writer)

	_ = w.Write(headers)
	for _, row := range rows {
		_ = w.Write(row)
	}

	w.Flush()
	return w.Error()
}

// WriteJSON writes data as compact JSON to the output writer.
//
// HTML characters are not escaped, so skill names such as "C++ & Go" are
// written verbatim.
func (f *Formatter) WriteJSON(data interface{}) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(data)
}

// WriteXML writes data as indented XML, preceded by the XML header.
//
// Parameters:
//   - data: Data structure to encode as XML (must be marshallable and have xml tags)
//
// Returns:
//   - error: When encoding fails, returns the underlying error; otherwise returns nil
func (f *Formatter) WriteXML(data interface{}) error {
	_, _ = fmt.Fprint(f.writer, xml.Header)
	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(f.writer)
	return nil
}

// WriteXLSX writes data as a single-sheet workbook.
//
// Parameters:
//   - sheet: Worksheet name
//   - headers: Column headers for the first row
//   - rows: Data rows
//
// Returns:
//   - error: When the workbook cannot be built or written
func (f *Formatter) WriteXLSX(sheet string, headers []string, rows [][]string) error {
	return WriteWorkbook(f.writer, sheet, headers, rows)
}

// writeTabular dispatches CSV and xlsx writes for results that reduce to a
// header plus string rows.
func (f *Formatter) writeTabular(sheet string, headers []string, rows [][]string) error {
	switch f.format {
	case FormatCSV:
		return f.WriteCSV(headers, rows)
	case FormatXLSX:
		return f.WriteXLSX(sheet, headers, rows)
	default:
		return fmt.Errorf("unsupported format: %s", f.format)
	}
}
