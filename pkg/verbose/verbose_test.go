package verbose

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
)

// TestEnableDisable tests the behavior of Enable and Disable functions.
//
// It verifies:
//   - Disable sets enabled state to false
//   - Enable sets enabled state to true
//   - IsEnabled returns correct state
func TestEnableDisable(t *testing.T) {
	Disable()
	assert.False(t, IsEnabled())

	Enable()
	assert.True(t, IsEnabled())

	Disable()
	assert.False(t, IsEnabled())
}

// TestSetWriter tests the behavior of SetWriter.
//
// It verifies:
//   - Writer can be set and messages are written to it
//   - nil writer parameter is ignored
//   - Verbose messages include [DEBUG] prefix
func TestSetWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)

	Enable()
	Printf("test message")
	Disable()

	assert.Contains(t, buf.String(), "[DEBUG] test message")

	SetWriter(nil)
	buf.Reset()
	Enable()
	Printf("another message")
	Disable()
	assert.Contains(t, buf.String(), "[DEBUG] another message")
}

// TestPrintf tests the behavior of Printf.
//
// It verifies:
//   - No output when verbose is disabled
//   - Formatted output appears when verbose is enabled
//   - Trailing newlines in the format are not doubled
func TestPrintf(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)

	Disable()
	Printf("should not appear")
	assert.Empty(t, buf.String())

	Enable()
	Printf("test %s %d\n", "arg", 42)
	Disable()

	assert.Contains(t, buf.String(), "[DEBUG] test arg 42")
	assert.NotContains(t, buf.String(), "\n\n")
}

// TestInfoAndInfof tests the behavior of Info and Infof.
//
// It verifies:
//   - Both helpers are silent when disabled
//   - Both helpers print with the [DEBUG] label when enabled
func TestInfoAndInfof(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)

	Disable()
	Info("hidden")
	Infof("hidden %d", 1)
	assert.Empty(t, buf.String())

	Enable()
	Info("plain")
	Infof("formatted %d", 7)
	Disable()

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] plain")
	assert.Contains(t, out, "[DEBUG] formatted 7")
}

// TestStructuredHelpers tests the topic helpers that attach fields.
//
// It verifies:
//   - TableLoaded renders source, rows, columns and cached fields
//   - SearchRun renders criteria and counts
//   - ConfigLoaded renders the path
func TestStructuredHelpers(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)
	Enable()
	defer Disable()

	TableLoaded("skills.csv", 12, 4, true)
	SearchRun("200027", []string{"1", "2"}, 5, 3)
	ConfigLoaded(".skillsearch.yml")

	out := buf.String()
	assert.Contains(t, out, "Table loaded")
	assert.Contains(t, out, "source=skills.csv")
	assert.Contains(t, out, "rows=12")
	assert.Contains(t, out, "cached=true")
	assert.Contains(t, out, "Search completed")
	assert.Contains(t, out, "skills=1,2")
	assert.Contains(t, out, "returned=3")
	assert.Contains(t, out, "path=.skillsearch.yml")
}

// TestLoggerDisabledIsNop tests that Logger returns a no-op logger when disabled.
func TestLoggerDisabledIsNop(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)
	Disable()

	Logger().Debug().Str("k", "v").Msg("nothing")
	assert.Empty(t, buf.String())
}

// TestWithDocRef tests the behavior of WithDocRef.
//
// It verifies:
//   - Known topics print the help command and hint
//   - Unknown topics print only the message
//   - Nothing is printed when disabled
func TestWithDocRef(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)

	Disable()
	WithDocRef("config", "hidden")
	assert.Empty(t, buf.String())

	Enable()
	WithDocRef("COLUMNS", "skill column missing")
	WithDocRef("unknown", "plain message")
	Disable()

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] skill column missing")
	assert.Contains(t, out, "📖 Column Mapping: skillsearch config --show-defaults (columns section)")
	assert.NotContains(t, out, "docs/")
	assert.Contains(t, out, "[DEBUG] plain message")
	assert.Equal(t, 1, strings.Count(out, "📖"))
}

// TestNewLogger tests the always-on logger used by the server.
func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	l := NewLogger(buf)
	l.Info().Str("path", "/healthz").Msg("request")
	l.Debug().Msg("filtered out")

	assert.Contains(t, buf.String(), "request")
	assert.Contains(t, buf.String(), "path=/healthz")
	assert.NotContains(t, buf.String(), "filtered out")
}

// TestTruncate tests the behavior of truncate.
//
// It verifies:
//   - Short strings are returned unchanged
//   - ASCII strings are cut to the limit with a "..." suffix
//   - Multi-byte text is cut on rune boundaries and stays valid UTF-8
func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "กขค", truncate("กขค", 3))

	thai := strings.Repeat("กขคง", 20)
	got := truncate(thai, 40)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, runewidth.StringWidth(got), 40)

	accented := strings.Repeat("é", 50)
	got = truncate(accented, 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("é", 7)+"...", got)
}

// TestSearchRunMultiByte tests that SearchRun keeps long non-ASCII criteria
// valid in the log line.
func TestSearchRunMultiByte(t *testing.T) {
	buf := &bytes.Buffer{}
	SetWriter(buf)
	Enable()
	defer Disable()

	SearchRun(strings.Repeat("é", 45), []string{strings.Repeat("กข", 40)}, 3, 2)

	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "Search completed")
	assert.Contains(t, out, "...")
}
