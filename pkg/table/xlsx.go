package table

import (
	"bytes"
	stderrors "errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ajxudir/skillsearch/pkg/errors"
)

// unzipRatio caps the uncompressed workbook size relative to the upload limit.
const unzipRatio = 10

// ParseXLSX parses the first worksheet of an Office Open XML workbook.
//
// The first non-blank row is the header. The header is widened to the
// longest row so cells to the right of the last named column are kept
// under "Unnamed: <i>" headers. Blank rows are skipped, as blank CSV lines are.
//
// Parameters:
//   - source: Display name of the input
//   - data: Workbook contents
//   - opts: Aliases and limits
//
// Returns:
//   - *Table: Loaded table
//   - error: *errors.LoadError or *errors.EmptyTableError
func ParseXLSX(source string, data []byte, opts Options) (*Table, error) {
	var xopts excelize.Options
	if opts.MaxBytes > 0 {
		xopts.UnzipSizeLimit = opts.MaxBytes * unzipRatio
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data), xopts)
	if err != nil {
		return nil, errors.NewLoadError(source, fmt.Errorf("open workbook: %w", err))
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.NewLoadError(source, stderrors.New("workbook has no sheets"))
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, errors.NewLoadError(source, fmt.Errorf("read sheet %q: %w", sheets[0], err))
	}

	var (
		header  []string
		records [][]string
		width   int
	)
	for _, row := range rows {
		if blankRow(row) {
			continue
		}
		if header == nil {
			header = append([]string(nil), row...)
			width = len(row)
			continue
		}
		records = append(records, row)
		if len(row) > width {
			width = len(row)
		}
		if opts.MaxRows > 0 && len(records) > opts.MaxRows {
			return nil, rowLimitError(source, opts.MaxRows)
		}
	}

	if header == nil {
		return nil, errors.NewLoadError(source, fmt.Errorf("no header row found in sheet %q", sheets[0]))
	}
	for len(header) < width {
		header = append(header, "")
	}

	return build(source, header, records, opts, nil)
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if !isBlank(cell) {
			return false
		}
	}
	return true
}
