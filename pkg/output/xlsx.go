package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ajxudir/skillsearch/pkg/utils"
)

const (
	// DefaultSheetName is used when a caller passes an empty sheet name.
	DefaultSheetName = "Results"

	// maxSheetNameLen is the worksheet name limit imposed by Excel.
	maxSheetNameLen = 31

	minColWidth = 8
	maxColWidth = 60
)

// BuildWorkbook lays out headers and rows on a single worksheet.
//
// The header row is bold on a grey fill, frozen, and carries an auto
// filter. Column widths follow the widest cell, clamped to a readable range.
// Callers own the returned file and must Close it.
//
// Parameters:
//   - sheet: Worksheet name; invalid characters are replaced and long names cut
//   - headers: Column headers for the first row
//   - rows: Data rows; short rows leave trailing cells empty
//
// Returns:
//   - *excelize.File: Workbook ready to be written
//   - error: When a cell or style cannot be set
func BuildWorkbook(sheet string, headers []string, rows [][]string) (*excelize.File, error) {
	sheet = sheetName(sheet)
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeSheetRow(f, sheet, 1, headers); err != nil {
		_ = f.Close()
		return nil, err
	}
	for i, row := range rows {
		if err := writeSheetRow(f, sheet, i+2, row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	if len(headers) > 0 {
		if err := styleHeader(f, sheet, headers, rows); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return f, nil
}

// WriteWorkbook builds a workbook and streams it to w.
func WriteWorkbook(w io.Writer, sheet string, headers []string, rows [][]string) error {
	f, err := BuildWorkbook(sheet, headers, rows)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheetRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	if len(values) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write row %d: %w", rowNum, err)
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, headers []string, rows [][]string) error {
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	lastRow := len(rows) + 1
	if err := f.AutoFilter(sheet, fmt.Sprintf("A1:%s%d", lastCol, lastRow), nil); err != nil {
		return fmt.Errorf("auto filter: %w", err)
	}

	for i, h := range headers {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := utils.DisplayWidth(h) + 2
		for _, row := range rows {
			if i < len(row) {
				width = utils.Max(width, utils.DisplayWidth(row[i])+2)
			}
		}
		width = utils.Max(minColWidth, width)
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(sheet, name, name, float64(width)); err != nil {
			return fmt.Errorf("column width: %w", err)
		}
	}
	return nil
}

// sheetName makes s acceptable as a worksheet name.
func sheetName(s string) string {
	s = strings.NewReplacer(
		":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "_", "]", "_",
	).Replace(strings.TrimSpace(s))
	s = strings.Trim(s, "'")
	if s == "" {
		return DefaultSheetName
	}
	if r := []rune(s); len(r) > maxSheetNameLen {
		s = string(r[:maxSheetNameLen])
	}
	return s
}
