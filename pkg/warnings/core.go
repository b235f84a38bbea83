// Package warnings routes non-fatal, user-facing warnings (schema mismatches,
// ragged CSV rows, degraded filters) to a swappable writer.
//
// Commands swap the writer for a display.WarningCollector so warnings can be
// printed after the result table instead of interleaving with it.
package warnings

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
)

var (
	mu         sync.RWMutex
	warnWriter io.Writer = os.Stderr
)

// Warnf writes a formatted warning message to the configured warning writer.
//
// A trailing newline is appended when the formatted message lacks one, so
// collectors that split on newlines always see complete lines.
//
// Parameters:
//   - format: Printf-style format string for the warning message
//   - args: Variadic arguments to format into the string
func Warnf(format string, args ...any) {
	mu.RLock()
	w := warnWriter
	mu.RUnlock()

	msg := fmt.Sprintf(format, args...)
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = io.WriteString(w, msg)
}

// WarnAll writes each message as its own warning line.
//
// Parameters:
//   - messages: Pre-formatted warning messages; empty entries are skipped
func WarnAll(messages []string) {
	for _, m := range messages {
		if strings.TrimSpace(m) == "" {
			continue
		}
		Warnf("%s", m)
	}
}

// WarningWriter returns the currently configured warning writer.
//
// Returns:
//   - io.Writer: The currently configured writer for warning messages
func WarningWriter() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return warnWriter
}

// SetWarningWriter swaps the warning writer and returns a restore function.
//
// It performs the following operations:
//   - Acquires a write lock to ensure thread-safe modification
//   - Saves the previous warning writer for restoration
//   - Sets the new warning writer (defaults to os.Stderr if nil)
//   - Returns a function that restores the previous writer when called
//
// Parameters:
//   - w: The new io.Writer to use; if nil, defaults to os.Stderr
//
// Returns:
//   - func(): A restore function that sets the writer back to the previous value
func SetWarningWriter(w io.Writer) func() {
	mu.Lock()
	defer mu.Unlock()

	previous := warnWriter
	if w == nil {
		warnWriter = os.Stderr
	} else {
		warnWriter = w
	}

	return func() {
		mu.Lock()
		defer mu.Unlock()
		warnWriter = previous
	}
}

// Capture runs fn while redirecting warnings into a buffer and returns the
// captured lines.
//
// Parameters:
//   - fn: Function that may emit warnings
//
// Returns:
//   - []string: Non-empty, trimmed warning lines in emission order
func Capture(fn func()) []string {
	var buf bytes.Buffer
	restore := SetWarningWriter(&buf)
	fn()
	restore()

	var lines []string
	for _, line := range strings.Split(buf.String(), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}
