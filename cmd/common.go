package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajxudir/skillsearch/pkg/config"
	"github.com/ajxudir/skillsearch/pkg/errors"
	"github.com/ajxudir/skillsearch/pkg/output"
	"github.com/ajxudir/skillsearch/pkg/session"
	"github.com/ajxudir/skillsearch/pkg/table"
	"github.com/ajxudir/skillsearch/pkg/verbose"
	"github.com/ajxudir/skillsearch/pkg/warnings"
)

var (
	loadConfigFunc = config.LoadConfig
	writeFileFunc  = os.WriteFile
	readFileFunc   = config.ReadConfigFile
	getwdFunc      = os.Getwd
)

// loadAndValidateConfig loads the configuration and validates it for unknown fields.
//
// This provides preflight validation to catch configuration errors early,
// ensuring users are notified of typos before any file is loaded.
//
// Parameters:
//   - configPath: Path to custom config file, or empty for auto-discovery
//   - workDir: Working directory to search for a local config
//
// Returns:
//   - *config.Config: Loaded and validated configuration
//   - error: ExitError with ExitConfigError on validation failure
func loadAndValidateConfig(configPath, workDir string) (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.FindLocalConfig(workDir)
	}

	if path != "" {
		data, err := readFileFunc(path)
		if err != nil {
			return nil, errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to read config file '%s': %w", path, err))
		}

		result := config.ValidateConfigData(data, config.FormatForPath(path))
		if result.HasErrors() {
			var errBuilder strings.Builder
			errBuilder.WriteString(fmt.Sprintf("configuration validation failed for %s:\n", path))
			for _, e := range result.Errors {
				errBuilder.WriteString(fmt.Sprintf("  - %s\n", e.Error()))
			}
			errBuilder.WriteString("\n💡 Run 'skillsearch config --validate' for details")
			verbose.WithDocRef("config", fmt.Sprintf("Exit code %d (config error): configuration validation failed for %s", errors.ExitConfigError, path))
			return nil, errors.NewExitError(errors.ExitConfigError, fmt.Errorf("%s", errBuilder.String()))
		}
	}

	cfg, err := loadConfigFunc(path, workDir)
	if err != nil {
		return nil, errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to load config: %w", err))
	}
	return cfg, nil
}

// loadCommandConfig loads the configuration named by --config, or the
// local config of the working directory.
func loadCommandConfig() (*config.Config, error) {
	workDir, err := getwdFunc()
	if err != nil {
		workDir = "."
	}
	return loadAndValidateConfig(configFlag, workDir)
}

// loadSession loads path into a new standalone session.
//
// Parameters:
//   - cfg: Effective configuration
//   - path: CSV or xlsx file
//
// Returns:
//   - *session.Session: Session holding the table
//   - *table.Table: Loaded table
//   - error: *errors.LoadError or *errors.EmptyTableError
func loadSession(cfg *config.Config, path string) (*session.Session, *table.Table, error) {
	s := session.New(session.OptionsFromConfig(cfg))
	t, _, err := s.LoadFile(path)
	if err != nil {
		if strings.Contains(err.Error(), "exceeds limit") {
			verbose.WithDocRef("limits", err.Error())
		}
		return s, nil, err
	}
	for _, w := range t.Schema.Warnings() {
		verbose.WithDocRef("columns", w)
	}
	return s, t, nil
}

// parseOutputFlag validates an --output value.
//
// Returns:
//   - output.Format: Parsed format; FormatTable when empty
//   - error: ExitError with ExitConfigError for unknown formats
func parseOutputFlag(value string) (output.Format, error) {
	format, err := output.ParseFormatStrict(value)
	if err != nil {
		return output.FormatTable, errors.NewExitError(errors.ExitConfigError, err)
	}
	return format, nil
}

// openOutput returns the destination for structured output.
//
// With an empty path or "-", output goes to stdout; xlsx then requires an
// explicit "-" so a workbook is never dumped on a terminal by accident.
//
// Parameters:
//   - path: Value of --out
//   - format: Output format
//
// Returns:
//   - io.Writer: Destination
//   - func() error: Closes the destination; must be called
//   - error: ExitError with ExitConfigError when xlsx has no --out
func openOutput(path string, format output.Format) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch path {
	case "":
		if output.IsBinaryFormat(format) {
			return nil, noop, errors.NewExitErrorf(errors.ExitConfigError, "%s output is binary: use --out <file> (or --out - for stdout)", format)
		}
		return os.Stdout, noop, nil
	case "-":
		return os.Stdout, noop, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, noop, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

// writeStructured opens the destination and runs write against it. Warnings
// are sent to the warning writer for formats that cannot carry them.
func writeStructured(path string, format output.Format, warns []string, write func(io.Writer) error) (err error) {
	w, closeFn, err := openOutput(path, format)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeFn(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := write(w); err != nil {
		return err
	}
	if format == output.FormatCSV || format == output.FormatXLSX {
		warnings.WarnAll(warns)
	}
	if path != "" && path != "-" {
		verbose.Printf("Wrote %s output to %s\n", format, path)
	}
	return nil
}
