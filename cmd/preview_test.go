package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/skillsearch/pkg/errors"
	"github.com/ajxudir/skillsearch/pkg/testutil"
)

// TestPreviewTable tests the default preview output.
//
// It verifies:
//   - The load confirmation names the file and row count
//   - Every row fits under the default preview size
//   - The skill count is printed
func TestPreviewTable(t *testing.T) {
	out, err := runCLI(t, "preview", scenarioFile(t))
	require.NoError(t, err)

	assert.Contains(t, out, "File loaded: scenario.csv (3 rows)")
	assert.Contains(t, out, "All data (3 rows)")
	assert.Contains(t, out, "third")
	assert.Contains(t, out, "Code Mapping Skills: 4")
}

// TestPreviewRowsFlag tests -n.
func TestPreviewRowsFlag(t *testing.T) {
	out, err := runCLI(t, "preview", scenarioFile(t), "-n", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "All data (first 2 of 3 rows)")
	assert.Contains(t, out, "second")
	assert.NotContains(t, out, "third")
}

// TestPreviewJSON tests JSON preview output.
func TestPreviewJSON(t *testing.T) {
	out, err := runCLI(t, "preview", scenarioFile(t), "-n", "1", "-o", "json")
	require.NoError(t, err)

	var result struct {
		Summary struct {
			Rows   int `json:"rows"`
			Skills int `json:"skills"`
		} `json:"summary"`
		Columns []string          `json:"columns"`
		Rows    []json.RawMessage `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result), out)
	assert.Equal(t, 3, result.Summary.Rows)
	assert.Equal(t, 4, result.Summary.Skills)
	assert.Equal(t, testutil.StandardHeader, result.Columns)
	assert.Len(t, result.Rows, 1)
}

// TestPreviewLoadErrors tests files that cannot be previewed.
//
// It verifies:
//   - A header-only file is an EmptyTableError
//   - A missing file is a LoadError
func TestPreviewLoadErrors(t *testing.T) {
	dir := t.TempDir()
	headerOnly := testutil.WriteFile(t, dir, "empty.csv", []byte(testutil.HeaderOnlyCSV))

	_, err := runCLI(t, "preview", headerOnly)
	require.Error(t, err)
	assert.True(t, errors.IsEmptyTable(err))

	_, err = runCLI(t, "preview", dir+"/missing.csv")
	require.Error(t, err)
	_, ok := errors.IsLoadError(err)
	assert.True(t, ok)
}
