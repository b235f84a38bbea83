package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestValidateConfigFileUnknownFields tests strict YAML decoding.
//
// It verifies:
//   - Unknown fields report the line, valid keys and doc section
//   - Known typos get a "did you mean" suggestion
//   - Kebab-case keys suggest the snake_case form
func TestValidateConfigFileUnknownFields(t *testing.T) {
	tests := []struct {
		name       string
		yaml       string
		wantMsg    string
		wantKeys   []string
		wantDoc    string
		suggestion string
	}{
		{
			name:       "top level typo",
			yaml:       "column:\n  id: [\"[ID]\"]\n",
			wantMsg:    "unknown field 'column' (line 1)",
			wantKeys:   []string{"columns", "matching", "display", "limits", "server"},
			wantDoc:    "configuration",
			suggestion: "columns",
		},
		{
			name:       "nested typo",
			yaml:       "display:\n  previewRows: 3\n",
			wantMsg:    "unknown field 'previewRows' (line 2)",
			wantKeys:   []string{"preview_rows", "max_cell_width"},
			wantDoc:    "display",
			suggestion: "preview_rows",
		},
		{
			name:       "kebab case",
			yaml:       "server:\n  max-sessions: 3\n",
			wantMsg:    "unknown field 'max-sessions'",
			wantKeys:   []string{"addr", "max_sessions", "max_upload_size"},
			wantDoc:    "server",
			suggestion: "max_sessions",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateConfigFile([]byte(tt.yaml))
			require.True(t, result.HasErrors())
			require.Len(t, result.Errors, 1)

			verr := result.Errors[0]
			assert.Contains(t, verr.Message, tt.wantMsg)
			assert.Equal(t, tt.wantKeys, verr.ValidKeys)
			assert.Equal(t, tt.wantDoc, verr.DocSection)
			assert.Contains(t, verr.Message, "did you mean '"+tt.suggestion+"'")
		})
	}
}

// TestValidateConfigDataTOML tests strict TOML decoding.
//
// It verifies:
//   - Unknown keys are reported with their dotted path and suggestion
//   - Syntax errors carry a position
//   - Valid TOML passes
func TestValidateConfigDataTOML(t *testing.T) {
	result := ValidateConfigData([]byte("[display]\npreview_row = 3\n"), FormatTOML)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "unknown field 'display.preview_row' (line 2)")
	assert.Contains(t, result.Errors[0].Message, "did you mean 'preview_rows'")
	assert.Equal(t, "display", result.Errors[0].DocSection)

	result = ValidateConfigData([]byte("[display\n"), FormatTOML)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "TOML syntax error at line 1")

	result = ValidateConfigData([]byte("[matching]\nmode = \"token\"\n"), FormatTOML)
	assert.False(t, result.HasErrors())
}

// TestValidateConfigFileSyntaxAndTypes tests non-field decode failures.
//
// It verifies:
//   - YAML syntax errors are labeled as such
//   - Type mismatches report the expected Go type
//   - Empty documents are valid
func TestValidateConfigFileSyntaxAndTypes(t *testing.T) {
	result := ValidateConfigFile([]byte("display: [\n"))
	require.Len(t, result.Errors, 1)
	assert.True(t, strings.HasPrefix(result.Errors[0].Message, "YAML syntax error"))

	result = ValidateConfigFile([]byte("display:\n  preview_rows: many\n"))
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "int", result.Errors[0].Expected)

	result = ValidateConfigFile([]byte("  \n"))
	assert.False(t, result.HasErrors())
}

// TestValidateConfigStruct tests semantic validation.
//
// It verifies:
//   - Unknown match modes list the valid modes
//   - Empty required alias lists and blank aliases are errors
//   - Negative limits are errors
//   - Headers shared by id and skill are errors
//   - Malformed listen addresses are errors
//   - An empty opcode list is only a warning
func TestValidateConfigStruct(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(c *Config)
		wantField string
		warnOnly  bool
	}{
		{"bad mode", func(c *Config) { c.Matching.Mode = "fuzzy" }, "matching.mode", false},
		{"no id aliases", func(c *Config) { c.Columns.ID = nil }, "columns.id", false},
		{"blank skill alias", func(c *Config) { c.Columns.Skill = []string{"ok", " "} }, "columns.skill[1]", false},
		{"negative rows", func(c *Config) { c.Limits.MaxRows = -1 }, "limits.max_rows", false},
		{"negative preview", func(c *Config) { c.Display.PreviewRows = -2 }, "display.preview_rows", false},
		{"shared header", func(c *Config) { c.Columns.Skill = []string{" id "} }, "columns", false},
		{"bad addr", func(c *Config) { c.Server.Addr = "localhost" }, "server.addr", false},
		{"no opcode", func(c *Config) { c.Columns.OPCode = nil }, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			result := cfg.Validate()

			if tt.warnOnly {
				assert.False(t, result.HasErrors())
				assert.True(t, result.HasWarnings())
				return
			}
			require.True(t, result.HasErrors())
			assert.Equal(t, tt.wantField, result.Errors[0].Field)
		})
	}

	result := Default().Validate()
	assert.False(t, result.HasErrors())
}

// TestExtractHelpers tests the YAML error parsing helpers.
func TestExtractHelpers(t *testing.T) {
	field, typeName := extractFieldAndType("line 4: field foo not found in type config.LimitsCfg")
	assert.Equal(t, "foo", field)
	assert.Equal(t, "LimitsCfg", typeName)

	assert.Equal(t, 4, extractLineNumber("line 4: field foo"))
	assert.Equal(t, 0, extractLineNumber("no line here"))

	assert.Equal(t, "int", extractExpectedType("cannot unmarshal !!str `x` into int"))
	assert.Equal(t, "", extractExpectedType("other"))

	assert.Equal(t, "", suggestSimilarField("zzz", "Config"))
	assert.Equal(t, "", suggestSimilarField("x", "UnknownType"))
}
