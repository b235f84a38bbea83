package table

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajxudir/skillsearch/pkg/config"
	"github.com/ajxudir/skillsearch/pkg/errors"
	"github.com/ajxudir/skillsearch/pkg/verbose"
)

// Options control how an upload is parsed.
//
// A zero MaxBytes or MaxRows disables the corresponding check.
type Options struct {
	Aliases  Aliases
	MaxBytes int64
	MaxRows  int
}

// DefaultOptions returns the options used without configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(nil)
}

// OptionsFromConfig builds load options from cfg.
//
// Parameters:
//   - cfg: Loaded configuration; nil yields built-in defaults
//
// Returns:
//   - Options: Aliases and limits for the loader
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Aliases:  AliasesFromConfig(cfg),
		MaxBytes: cfg.GetMaxFileSize(),
		MaxRows:  cfg.GetMaxRows(),
	}
}

// xlsxMagic is the local file header that starts every zip archive.
var xlsxMagic = []byte("PK\x03\x04")

// IsSpreadsheet reports whether an upload should be parsed as xlsx, based
// on the file extension or, failing that, the zip magic bytes.
func IsSpreadsheet(source string, data []byte) bool {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".xlsx", ".xlsm":
		return true
	case ".csv", ".txt":
		return false
	}
	return bytes.HasPrefix(data, xlsxMagic)
}

// Parse loads a table from an in-memory upload.
//
// It performs the following operations:
//   - Step 1: Rejects data above opts.MaxBytes
//   - Step 2: Dispatches to ParseXLSX or ParseCSV
//   - Step 3: Logs the outcome when verbose mode is enabled
//
// Parameters:
//   - source: Display name, usually the uploaded file name
//   - data: Complete file contents
//   - opts: Aliases and limits
//
// Returns:
//   - *Table: Loaded table with at least one data row
//   - error: *errors.LoadError for unreadable input, *errors.EmptyTableError
//     for a header with no rows
func Parse(source string, data []byte, opts Options) (*Table, error) {
	if opts.MaxBytes > 0 && int64(len(data)) > opts.MaxBytes {
		return nil, errors.NewLoadError(source, fmt.Errorf("file size %d bytes exceeds limit of %d bytes", len(data), opts.MaxBytes))
	}

	var (
		t   *Table
		err error
	)
	if IsSpreadsheet(source, data) {
		t, err = ParseXLSX(source, data, opts)
	} else {
		t, err = ParseCSV(source, data, opts)
	}
	if err != nil {
		verbose.Printf("Load of %s failed: %v\n", source, err)
		return nil, err
	}

	verbose.TableLoaded(source, t.Len(), len(t.Schema.Columns), false)
	return t, nil
}

// Read loads a table from a stream, reading at most opts.MaxBytes+1 bytes so
// oversized uploads are rejected without buffering them entirely.
//
// Parameters:
//   - source: Display name of the input
//   - r: Stream positioned at the start of the file
//   - opts: Aliases and limits
//
// Returns:
//   - *Table: Loaded table
//   - error: Same as Parse, plus read failures as *errors.LoadError
func Read(source string, r io.Reader, opts Options) (*Table, error) {
	data, err := ReadAll(source, r, opts.MaxBytes)
	if err != nil {
		return nil, err
	}
	return Parse(source, data, opts)
}

// ReadAll reads an upload body while enforcing a byte limit.
//
// Parameters:
//   - source: Display name used in errors
//   - r: Stream to read
//   - maxBytes: Limit; zero disables it
//
// Returns:
//   - []byte: Complete contents
//   - error: *errors.LoadError on read failure or when the limit is exceeded
func ReadAll(source string, r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.NewLoadError(source, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, errors.NewLoadError(source, fmt.Errorf("file size exceeds limit of %d bytes", maxBytes))
	}
	return data, nil
}

// LoadFile loads a table from disk. The table's Source is the base name of path.
//
// Parameters:
//   - path: File to read
//   - opts: Aliases and limits
//
// Returns:
//   - *Table: Loaded table
//   - error: *errors.LoadError when the file cannot be opened or parsed
func LoadFile(path string, opts Options) (*Table, error) {
	data, err := ReadFile(path, opts.MaxBytes)
	if err != nil {
		return nil, err
	}
	return Parse(filepath.Base(path), data, opts)
}

// ReadFile reads a file from disk, checking its size before reading.
func ReadFile(path string, maxBytes int64) ([]byte, error) {
	source := filepath.Base(path)
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.NewLoadError(source, err)
	}
	if info.IsDir() {
		return nil, errors.NewLoadError(source, fmt.Errorf("%s is a directory", path))
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, errors.NewLoadError(source, fmt.Errorf("file size %d bytes exceeds limit of %d bytes", info.Size(), maxBytes))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewLoadError(source, err)
	}
	defer f.Close()

	return ReadAll(source, f, maxBytes)
}

// build turns a header and positional records into a Table.
func build(source string, header []string, records [][]string, opts Options, warnings []string) (*Table, error) {
	schema := NewSchema(uniqueHeader(header), opts.Aliases)
	if len(records) == 0 {
		return nil, &errors.EmptyTableError{Source: source}
	}

	rows := make([]Row, len(records))
	for i, rec := range records {
		rows[i] = newRow(schema, rec)
	}

	return &Table{
		Source:   source,
		Schema:   schema,
		Rows:     rows,
		warnings: warnings,
	}, nil
}

func rowLimitError(source string, limit int) error {
	return errors.NewLoadError(source, fmt.Errorf("row count exceeds limit of %d rows", limit))
}
