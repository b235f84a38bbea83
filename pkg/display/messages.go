package display

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/ajxudir/skillsearch/pkg/constants"
	"github.com/ajxudir/skillsearch/pkg/errors"
	"github.com/ajxudir/skillsearch/pkg/table"
)

// Kind classifies a message for styling.
type Kind int

const (
	// KindInfo is a neutral notice.
	KindInfo Kind = iota
	// KindSuccess reports a completed action.
	KindSuccess
	// KindWarning asks the user to change their input.
	KindWarning
	// KindError reports a failed action.
	KindError
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// Icon returns the icon shown before messages of this kind.
func (k Kind) Icon() string {
	switch k {
	case KindSuccess:
		return constants.IconSuccess
	case KindWarning:
		return constants.IconWarning
	case KindError:
		return constants.IconError
	default:
		return constants.IconInfo
	}
}

// Message is one line of user feedback.
type Message struct {
	Kind Kind
	Text string
}

// String returns the message with its icon.
func (m Message) String() string {
	return m.Kind.Icon() + " " + m.Text
}

// Fprint writes the message on its own line.
func (m Message) Fprint(w io.Writer) {
	_, _ = fmt.Fprintln(w, m.String())
}

// Message texts.
const (
	TextEmptyFile       = "The file is empty or has no readable data"
	TextMissingCriteria = "Enter an ID or select at least one Code Mapping Skill to search"
	TextNoResults       = "No data matches the search criteria"
	TextNoTable         = "Load a file before searching"
)

// Loaded reports a successful load.
//
// Parameters:
//   - t: Loaded table
//
// Returns:
//   - Message: Success message naming the file and its row count
func Loaded(t *table.Table) Message {
	return Message{
		Kind: KindSuccess,
		Text: fmt.Sprintf("File loaded: %s (%s)", t.Source, rowCount(t.Len())),
	}
}

// Reloaded reports that a watched file was loaded again.
func Reloaded(t *table.Table) Message {
	return Message{
		Kind: KindSuccess,
		Text: fmt.Sprintf("File reloaded: %s (%s)", t.Source, rowCount(t.Len())),
	}
}

// EmptyFile reports a file without data rows.
func EmptyFile() Message {
	return Message{Kind: KindError, Text: TextEmptyFile}
}

// MissingCriteria asks for an ID or at least one skill.
func MissingCriteria() Message {
	return Message{Kind: KindWarning, Text: TextMissingCriteria}
}

// NoResults reports a search that matched nothing.
func NoResults() Message {
	return Message{Kind: KindInfo, Text: TextNoResults}
}

// Results reports the number of result rows.
func Results(n int) Message {
	return Message{Kind: KindSuccess, Text: ResultsHeader(n)}
}

// ResultsHeader returns the title shown above a result table.
func ResultsHeader(n int) string {
	return fmt.Sprintf("Results (%s)", rowCount(n))
}

// PreviewHeader returns the title shown above the head of a table.
func PreviewHeader(shown, total int) string {
	if shown >= total {
		return fmt.Sprintf("All data (%s)", rowCount(total))
	}
	return fmt.Sprintf("All data (first %d of %d rows)", shown, total)
}

// ForError maps a load or search error to the message shown to the user.
//
// Parameters:
//   - err: Error returned by a load or search
//
// Returns:
//   - Message: Matching message; unknown errors are reported verbatim
func ForError(err error) Message {
	switch {
	case err == nil:
		return Message{Kind: KindInfo}
	case errors.IsEmptyTable(err):
		return EmptyFile()
	case errors.IsMissingCriteria(err):
		return MissingCriteria()
	case errors.IsNoTable(err):
		return Message{Kind: KindWarning, Text: TextNoTable}
	}
	if le, ok := errors.IsLoadError(err); ok {
		return Message{Kind: KindError, Text: "Error loading file: " + le.Error()}
	}
	return Message{Kind: KindError, Text: err.Error()}
}

func rowCount(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}

// PrintWarnings prints warning messages to the writer.
//
// Formats each warning on its own line with a warning icon prefix.
// Does nothing if warnings slice is empty.
// Prints a blank line before the warnings for separation.
//
// Parameters:
//   - w: Writer to output to (typically os.Stderr)
//   - warnings: Slice of warning messages
//
// Example output:
//
//	<blank line>
//	⚠️ column OPCode not found: duplicate results are not removed
func PrintWarnings(w io.Writer, warnings []string) {
	if len(warnings) == 0 {
		return
	}

	_, _ = fmt.Fprintln(w)
	PrintWarningsInline(w, warnings)
}

// PrintWarningsInline prints warning messages without a leading blank line.
func PrintWarningsInline(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		_, _ = fmt.Fprintf(w, "%s %s\n", constants.IconWarn, warning)
	}
}

// WarningCollector captures warnings for deferred output.
//
// Implements io.Writer so it can be used as a warning sink. Repeated lines
// are kept once, since reloading the same file reports the same schema
// warnings again.
//
// Example:
//
//	collector := display.NewWarningCollector()
//	restore := warnings.SetWarningWriter(collector)
//	// ... operations that may produce warnings ...
//	restore()
//	display.PrintWarnings(os.Stderr, collector.Messages())
type WarningCollector struct {
	mu       sync.Mutex
	messages []string
	seen     map[string]bool
}

// Write implements io.Writer for capturing warning messages.
//
// Splits input on newlines and stores non-empty trimmed lines.
//
// Parameters:
//   - p: Byte slice containing warning message data
//
// Returns:
//   - int: Number of bytes written (always len(p))
//   - error: Always nil, never returns an error
func (c *WarningCollector) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, line := range strings.Split(string(p), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || c.seen[trimmed] {
			continue
		}
		if c.seen == nil {
			c.seen = make(map[string]bool)
		}
		c.seen[trimmed] = true
		c.messages = append(c.messages, trimmed)
	}
	return len(p), nil
}

// Messages returns a copy of all collected warning messages.
func (c *WarningCollector) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	copied := make([]string, len(c.messages))
	copy(copied, c.messages)
	return copied
}

// Reset clears all collected messages.
func (c *WarningCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
	c.seen = nil
}

// NewWarningCollector creates a new WarningCollector.
//
// Returns:
//   - *WarningCollector: A new empty warning collector ready for use
func NewWarningCollector() *WarningCollector {
	return &WarningCollector{}
}
