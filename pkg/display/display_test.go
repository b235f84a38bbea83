package display

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/skillsearch/pkg/constants"
	"github.com/ajxudir/skillsearch/pkg/errors"
	"github.com/ajxudir/skillsearch/pkg/filtering"
	"github.com/ajxudir/skillsearch/pkg/table"
	"github.com/ajxudir/skillsearch/pkg/testutil"
	"github.com/ajxudir/skillsearch/pkg/warnings"
)

func loadCSV(t *testing.T, name, data string) *table.Table {
	t.Helper()
	tbl, err := table.Parse(name, []byte(data), table.DefaultOptions())
	require.NoError(t, err)
	return tbl
}

// TestMessages tests the fixed user messages.
//
// It verifies:
//   - Each message carries the icon of its kind
//   - Row counts use singular and plural forms
func TestMessages(t *testing.T) {
	tbl := loadCSV(t, "scenario.csv", testutil.ScenarioCSV)

	assert.Equal(t, constants.IconSuccess+" File loaded: scenario.csv (3 rows)", Loaded(tbl).String())
	assert.Equal(t, "File reloaded: scenario.csv (3 rows)", Reloaded(tbl).Text)
	assert.Equal(t, KindError, EmptyFile().Kind)
	assert.Equal(t, constants.IconWarning+" "+TextMissingCriteria, MissingCriteria().String())
	assert.Equal(t, KindInfo, NoResults().Kind)
	assert.Equal(t, "Results (1 row)", Results(1).Text)
	assert.Equal(t, "Results (0 rows)", ResultsHeader(0))
	assert.Equal(t, "All data (3 rows)", PreviewHeader(3, 3))
	assert.Equal(t, "All data (first 5 of 10 rows)", PreviewHeader(5, 10))
}

// TestKind tests kind names and icons.
func TestKind(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
		icon string
	}{
		{KindInfo, "info", constants.IconInfo},
		{KindSuccess, "success", constants.IconSuccess},
		{KindWarning, "warning", constants.IconWarning},
		{KindError, "error", constants.IconError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.kind.String())
			assert.Equal(t, tt.icon, tt.kind.Icon())
		})
	}
}

// TestForError tests mapping errors to messages.
//
// It verifies:
//   - Empty files, missing criteria and missing tables get their own text
//   - Load errors are prefixed
//   - Other errors are shown verbatim
func TestForError(t *testing.T) {
	assert.Equal(t, "", ForError(nil).Text)
	assert.Equal(t, EmptyFile(), ForError(&errors.EmptyTableError{Source: "a.csv"}))
	assert.Equal(t, MissingCriteria(), ForError(fmt.Errorf("search: %w", errors.ErrMissingCriteria)))
	assert.Equal(t, TextNoTable, ForError(errors.ErrNoTable).Text)

	m := ForError(errors.NewLoadError("a.csv", fmt.Errorf("bad quote")))
	assert.Equal(t, KindError, m.Kind)
	assert.Equal(t, "Error loading file: failed to load a.csv: bad quote", m.Text)

	assert.Equal(t, "boom", ForError(fmt.Errorf("boom")).Text)
}

// TestPrintLoaded tests the load summary.
//
// It verifies:
//   - The success line, preview title and head rows are printed
//   - Rows beyond the preview count are not printed
//   - Schema warnings follow the table
func TestPrintLoaded(t *testing.T) {
	var buf bytes.Buffer
	PrintLoaded(&buf, loadCSV(t, "scenario.csv", testutil.ScenarioCSV), 2, 0)
	out := buf.String()

	assert.Contains(t, out, "File loaded: scenario.csv (3 rows)")
	assert.Contains(t, out, "All data (first 2 of 3 rows)")
	assert.Contains(t, out, "[ID]    [Code Mapping Skill]  OPCode  Description")
	assert.Contains(t, out, "200027  10, 21                A       second")
	assert.NotContains(t, out, "third")

	buf.Reset()
	PrintLoaded(&buf, loadCSV(t, "noop.csv", "[ID],[Code Mapping Skill]\n1,a\n"), 5, 0)
	assert.Contains(t, buf.String(), constants.IconWarn+" column OPCode not found")
}

// TestPrintResults tests result rendering.
//
// It verifies:
//   - A non-empty result prints the count header and rows
//   - An empty result prints the no-results notice
func TestPrintResults(t *testing.T) {
	tbl := loadCSV(t, "scenario.csv", testutil.ScenarioCSV)

	res, err := filtering.Search(tbl, filtering.NewCriteria("", []string{"1"}), filtering.SearchOptions{})
	require.NoError(t, err)
	var buf bytes.Buffer
	PrintResults(&buf, tbl, res, 0)
	assert.Contains(t, buf.String(), "Results (1 row)")
	assert.Contains(t, buf.String(), "first")
	assert.NotContains(t, buf.String(), "second")

	res, err = filtering.Search(tbl, filtering.NewCriteria("999", nil), filtering.SearchOptions{})
	require.NoError(t, err)
	buf.Reset()
	PrintResults(&buf, tbl, res, 0)
	assert.Contains(t, buf.String(), "Results (0 rows)")
	assert.Contains(t, buf.String(), TextNoResults)
}

// TestPrintSkills tests vocabulary rendering.
func TestPrintSkills(t *testing.T) {
	var buf bytes.Buffer
	PrintSkills(&buf, []string{"1", "2"})
	assert.Equal(t, "Skills (2)\n1\n2\n", buf.String())

	buf.Reset()
	PrintSkills(&buf, nil)
	assert.Equal(t, "Skills (0)\n(none)\n", buf.String())
}

// TestNewRowsTable tests clipping in row tables.
func TestNewRowsTable(t *testing.T) {
	tbl := loadCSV(t, "s.csv", testutil.NewCSV().Row("1", strings.Repeat("skill,", 20), "A", "d").String())
	rt, values := NewRowsTable(tbl.Schema, tbl.Rows, 12)
	require.Len(t, values, 1)
	assert.Equal(t, 12, rt.GetColumnWidth(1))
}

// TestFormatState tests state labels.
func TestFormatState(t *testing.T) {
	assert.Equal(t, constants.IconSuccess+" Done", FormatState(constants.StateDone))
	assert.Equal(t, constants.IconWarning+" Error", FormatState(constants.StateError))
	assert.Equal(t, constants.IconSearch, StateIcon(constants.StateFiltering))
	assert.Equal(t, "Unknown", FormatState("Unknown"))
}

// TestPrintWarnings tests the PrintWarnings function.
//
// It verifies that:
//   - Empty warnings produce no output
//   - Warnings are printed with the warning icon after a blank line
func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer
	PrintWarnings(&buf, nil)
	assert.Empty(t, buf.String())

	PrintWarnings(&buf, []string{"w1", "w2"})
	assert.Equal(t, "\n"+constants.IconWarn+" w1\n"+constants.IconWarn+" w2\n", buf.String())
}

// TestWarningCollector tests collecting warnings from pkg/warnings.
//
// It verifies:
//   - Lines are split, trimmed and de-duplicated
//   - Messages returns a copy
//   - Reset clears state
//   - Concurrent writes are safe
func TestWarningCollector(t *testing.T) {
	c := NewWarningCollector()
	restore := warnings.SetWarningWriter(c)
	warnings.Warnf("first")
	warnings.WarnAll([]string{"second", "", "first"})
	restore()

	msgs := c.Messages()
	assert.Equal(t, []string{"first", "second"}, msgs)
	msgs[0] = "changed"
	assert.Equal(t, "first", c.Messages()[0])

	c.Reset()
	assert.Empty(t, c.Messages())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = fmt.Fprintf(c, "w%d\n", i)
		}(i)
	}
	wg.Wait()
	assert.Len(t, c.Messages(), 10)
}
