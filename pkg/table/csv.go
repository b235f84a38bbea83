package table

import (
	"bytes"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ajxudir/skillsearch/pkg/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseCSV parses comma-separated UTF-8 text.
//
// It performs the following operations:
//   - Step 1: Strips a leading UTF-8 byte order mark and rejects invalid UTF-8
//   - Step 2: Reads the first non-empty record as the header
//   - Step 3: Reads data records, skipping blank lines
//   - Step 4: Rejects records with more fields than the header and pads short
//     ones with empty cells
//   - Step 5: Resolves the schema and builds rows
//
// Parameters:
//   - source: Display name of the input
//   - data: File contents
//   - opts: Aliases and row limit
//
// Returns:
//   - *Table: Loaded table
//   - error: *errors.LoadError (with Line when known) or *errors.EmptyTableError
func ParseCSV(source string, data []byte, opts Options) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return nil, errors.NewLoadError(source, stderrors.New("invalid UTF-8 encoding: save the file as UTF-8 CSV"))
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, errors.NewLoadError(source, stderrors.New("no header row found"))
	}
	if err != nil {
		return nil, csvLoadError(source, err)
	}

	var (
		records [][]string
		short   int
	)
	for {
		rec, err := r.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvLoadError(source, err)
		}

		switch {
		case len(rec) > len(header):
			line, _ := r.FieldPos(0)
			return nil, &errors.LoadError{
				Source: source,
				Line:   line,
				Err:    fmt.Errorf("%w: expected %d, got %d", csv.ErrFieldCount, len(header), len(rec)),
			}
		case len(rec) < len(header):
			short++
		}

		records = append(records, rec)
		if opts.MaxRows > 0 && len(records) > opts.MaxRows {
			return nil, rowLimitError(source, opts.MaxRows)
		}
	}

	var warnings []string
	if short > 0 {
		warnings = append(warnings, fmt.Sprintf("%d row(s) have fewer fields than the header; missing cells are empty", short))
	}
	return build(source, header, records, opts, warnings)
}

func csvLoadError(source string, err error) error {
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		return &errors.LoadError{Source: source, Line: pe.Line, Err: pe.Err}
	}
	return errors.NewLoadError(source, err)
}
