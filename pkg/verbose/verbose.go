// Package verbose provides debug logging with references to the built-in help.
//
// Messages are rendered through a zerolog console logger so that the same
// sink can carry structured fields (row counts, criteria, durations) while
// keeping the familiar "[DEBUG] message" line format on the terminal.
package verbose

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	enabled bool
	writer  io.Writer = os.Stderr
	logger            = newConsoleLogger(os.Stderr)
)

// levelLabels maps zerolog level names to the bracketed labels used on the terminal.
var levelLabels = map[string]string{
	"trace": "[TRACE]",
	"debug": "[DEBUG]",
	"info":  "[INFO]",
	"warn":  "[WARN]",
	"error": "[ERROR]",
}

// newConsoleLogger builds a plain-text zerolog logger writing to w.
//
// Timestamps and colors are omitted so that output stays stable in tests and
// when piped. The level is rendered as a bracketed label before the message.
//
// Parameters:
//   - w: Destination writer
//
// Returns:
//   - zerolog.Logger: Logger writing "[LEVEL] message key=value" lines
func newConsoleLogger(w io.Writer) zerolog.Logger {
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		PartsOrder: []string{zerolog.LevelFieldName, zerolog.MessageFieldName},
		FormatLevel: func(i interface{}) string {
			name, _ := i.(string)
			if label, ok := levelLabels[name]; ok {
				return label
			}
			return "[" + strings.ToUpper(name) + "]"
		},
	}
	return zerolog.New(cw).Level(zerolog.TraceLevel)
}

// NewLogger creates an always-on logger for long-running surfaces.
//
// Unlike the package-level debug logger this one is not gated by Enable, and
// it includes timestamps. The HTTP server uses it for request logs.
//
// Parameters:
//   - w: Destination writer; os.Stderr when nil
//
// Returns:
//   - zerolog.Logger: Console logger at info level with timestamps
func NewLogger(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	return zerolog.New(cw).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// Enable turns on verbose logging and allows debug messages to be printed.
func Enable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = true
}

// Disable turns off verbose logging and prevents debug messages from being printed.
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	enabled = false
}

// IsEnabled returns whether verbose logging is currently enabled.
//
// Returns:
//   - bool: true if verbose logging is enabled, false otherwise
func IsEnabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetWriter sets the output writer for verbose messages.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Replaces the writer and rebuilds the console logger if w is not nil
//   - Releases the write lock
//
// Parameters:
//   - w: The io.Writer to use for output; if nil, the writer remains unchanged
func SetWriter(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w != nil {
		writer = w
		logger = newConsoleLogger(w)
	}
}

// getWriter returns the current writer with proper locking for internal use.
func getWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return writer
}

// Logger returns the debug logger for structured events.
//
// When verbose logging is disabled the returned logger is a no-op logger, so
// callers can chain fields without checking IsEnabled first.
//
// Returns:
//   - *zerolog.Logger: Debug logger or a disabled logger
//
// Example:
//
//	verbose.Logger().Debug().Int("rows", n).Msg("table parsed")
func Logger() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		nop := zerolog.Nop()
		return &nop
	}
	l := logger
	return &l
}

// Printf prints a formatted verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Printf(format string, args ...any) {
	Logger().Debug().Msg(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// Info prints an informational verbose message if enabled.
//
// Parameters:
//   - msg: The message string to print
func Info(msg string) {
	Logger().Debug().Msg(msg)
}

// Infof prints a formatted informational verbose message if enabled.
//
// Parameters:
//   - format: Printf-style format string
//   - args: Variadic arguments to format into the string
func Infof(format string, args ...any) {
	Logger().Debug().Msg(fmt.Sprintf(format, args...))
}

// DocRef points a verbose message at the built-in help for a topic.
//
// Fields:
//   - Topic: A human-readable name for the topic
//   - Help: The command that prints the relevant help or defaults
//   - Hint: A short actionable hint
type DocRef struct {
	Topic string
	Help  string
	Hint  string
}

// Help references by topic.
var docRefs = map[string]DocRef{
	"config": {
		Topic: "Configuration",
		Help:  "skillsearch config --show-defaults",
		Hint:  "Run 'skillsearch config --init' to create a .skillsearch.yml template",
	},
	"columns": {
		Topic: "Column Mapping",
		Help:  "skillsearch config --show-defaults (columns section)",
		Hint:  "Add your header names to columns.id, columns.skill or columns.opcode",
	},
	"matching": {
		Topic: "Skill Matching",
		Help:  "skillsearch search --help (--mode)",
		Hint:  "Switch between token and word_boundary matching with matching.mode",
	},
	"limits": {
		Topic: "Input Limits",
		Help:  "skillsearch config --show-defaults (limits section)",
		Hint:  "Raise limits.max_file_size or limits.max_rows for larger exports",
	},
}

// WithDocRef prints a verbose message with a help reference if enabled.
//
// Parameters:
//   - topic: The help topic key (e.g., "config", "columns", "matching", "limits")
//   - message: The main message to print
func WithDocRef(topic, message string) {
	if !IsEnabled() {
		return
	}
	Info(message)
	if ref, ok := docRefs[strings.ToLower(topic)]; ok {
		w := getWriter()
		_, _ = fmt.Fprintf(w, "        📖 %s: %s\n", ref.Topic, ref.Help)
		_, _ = fmt.Fprintf(w, "        💡 %s\n", ref.Hint)
	}
}

// ConfigLoaded logs which config file was loaded if enabled.
//
// Parameters:
//   - path: The file path of the loaded configuration, or "built-in defaults"
func ConfigLoaded(path string) {
	Logger().Debug().Str("path", path).Msg("Config loaded")
}

// TableLoaded logs the outcome of parsing an uploaded table if enabled.
//
// Parameters:
//   - source: Display name of the uploaded file
//   - rows: Number of data rows parsed
//   - columns: Number of columns in the header
//   - cached: Whether the table was served from the session cache
func TableLoaded(source string, rows, columns int, cached bool) {
	Logger().Debug().
		Str("source", source).
		Int("rows", rows).
		Int("columns", columns).
		Bool("cached", cached).
		Msg("Table loaded")
}

// SearchRun logs a completed search action if enabled.
//
// Long identifiers and skill lists are truncated to keep the line readable.
//
// Parameters:
//   - id: Trimmed identifier criterion (may be empty)
//   - skills: Selected skill tokens (may be empty)
//   - matched: Rows that satisfied the filters
//   - returned: Rows left after de-duplication
func SearchRun(id string, skills []string, matched, returned int) {
	Logger().Debug().
		Str("id", truncate(id, 40)).
		Str("skills", truncate(strings.Join(skills, ","), 60)).
		Int("matched", matched).
		Int("returned", returned).
		Msg("Search completed")
}

// truncate shortens a string to at most maxLen display cells.
//
// Cuts fall on rune boundaries, so Thai or accented criteria stay valid
// UTF-8 in the log line.
//
// Parameters:
//   - s: The string to truncate
//   - maxLen: The maximum display width of the result (must be at least 3)
//
// Returns:
//   - string: The original or truncated string with "..." suffix if truncated
func truncate(s string, maxLen int) string {
	if runewidth.StringWidth(s) <= maxLen {
		return s
	}
	return runewidth.Truncate(s, maxLen, "...")
}
