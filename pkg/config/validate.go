package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net"
	"regexp"
	"strings"

	"github.com/ajxudir/skillsearch/pkg/constants"
	"github.com/ajxudir/skillsearch/pkg/errors"
	"github.com/ajxudir/skillsearch/pkg/utils"
	"github.com/ajxudir/skillsearch/pkg/verbose"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ValidMatchModes lists the accepted matching.mode values.
var ValidMatchModes = []string{constants.MatchModeToken, constants.MatchModeWordBoundary}

type schemaInfo struct {
	fields []string
	doc    string
}

// Schema information for validation errors, keyed by Go type name.
var configSchema = map[string]schemaInfo{
	"Config":      {fields: []string{"columns", "matching", "display", "limits", "server"}, doc: "configuration"},
	"ColumnsCfg":  {fields: []string{"id", "skill", "opcode"}, doc: "columns"},
	"MatchingCfg": {fields: []string{"mode"}, doc: "matching"},
	"DisplayCfg":  {fields: []string{"preview_rows", "max_cell_width"}, doc: "display"},
	"LimitsCfg":   {fields: []string{"max_file_size", "max_rows"}, doc: "limits"},
	"ServerCfg":   {fields: []string{"addr", "max_sessions", "max_upload_size"}, doc: "server"},
}

// sectionTypes maps top-level keys to their schema type, for TOML key paths.
var sectionTypes = map[string]string{
	"columns":  "ColumnsCfg",
	"matching": "MatchingCfg",
	"display":  "DisplayCfg",
	"limits":   "LimitsCfg",
	"server":   "ServerCfg",
}

// commonTypos maps common typos to correct field names.
var commonTypos = map[string]map[string]string{
	"Config": {
		"column":  "columns",
		"match":   "matching",
		"limit":   "limits",
		"output":  "display",
		"servers": "server",
	},
	"ColumnsCfg": {
		"ids":        "id",
		"skills":     "skill",
		"op_code":    "opcode",
		"opcodes":    "opcode",
		"OPCode":     "opcode",
		"code_skill": "skill",
	},
	"MatchingCfg": {
		"type":     "mode",
		"strategy": "mode",
	},
	"DisplayCfg": {
		"preview":      "preview_rows",
		"preview_row":  "preview_rows",
		"previewRows":  "preview_rows",
		"max_width":    "max_cell_width",
		"maxCellWidth": "max_cell_width",
		"cell_width":   "max_cell_width",
	},
	"LimitsCfg": {
		"max_size":    "max_file_size",
		"maxFileSize": "max_file_size",
		"rows":        "max_rows",
		"maxRows":     "max_rows",
	},
	"ServerCfg": {
		"address":       "addr",
		"listen":        "addr",
		"sessions":      "max_sessions",
		"maxSessions":   "max_sessions",
		"upload_size":   "max_upload_size",
		"maxUploadSize": "max_upload_size",
	},
}

// ValidateConfigFile validates YAML configuration data.
//
// Parameters:
//   - data: YAML configuration data as bytes
//
// Returns:
//   - *errors.ValidationResult: validation result with any errors and warnings found
func ValidateConfigFile(data []byte) *errors.ValidationResult {
	return ValidateConfigData(data, FormatYAML)
}

// ValidateConfigData validates configuration data for syntax errors and unknown fields.
//
// It performs the following operations:
//   - Decodes with unknown-field rejection (yaml KnownFields / toml DisallowUnknownFields)
//   - Converts decoder errors into ValidationErrors with schema hints and typo suggestions
//   - Runs semantic checks on the decoded structure
//
// Parameters:
//   - data: configuration file contents
//   - format: FormatYAML or FormatTOML
//
// Returns:
//   - *errors.ValidationResult: validation result with any errors and warnings found
func ValidateConfigData(data []byte, format Format) *errors.ValidationResult {
	result := errors.NewValidationResult()

	verbose.Printf("Config validation: starting %s parsing with strict field checking", format)

	cfg := loadDefaultConfig()
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg)
	default:
		if len(bytes.TrimSpace(data)) > 0 {
			decoder := yaml.NewDecoder(bytes.NewReader(data))
			decoder.KnownFields(true)
			err = decoder.Decode(cfg)
		}
	}

	if err != nil {
		verbose.Printf("Config validation FAILED: decode error: %v", err)
		addDecodeErrors(err, format, result)
		return result
	}

	validateConfigStruct(cfg, result)

	if result.HasErrors() {
		verbose.Printf("Config validation FAILED: %d errors found", len(result.Errors))
	} else {
		verbose.Printf("Config validation PASSED: no errors found")
	}
	return result
}

// Validate validates a loaded Config struct.
//
// Returns:
//   - *errors.ValidationResult: validation result with any errors and warnings found
func (c *Config) Validate() *errors.ValidationResult {
	result := errors.NewValidationResult()
	validateConfigStruct(c, result)
	return result
}

// addDecodeErrors translates decoder failures into validation errors.
func addDecodeErrors(err error, format Format, result *errors.ValidationResult) {
	var strict *toml.StrictMissingError
	if stderrors.As(err, &strict) {
		for _, de := range strict.Errors {
			key := []string(de.Key())
			if len(key) == 0 {
				continue
			}
			row, _ := de.Position()
			field := key[len(key)-1]
			typeName := "Config"
			if len(key) > 1 {
				typeName = sectionTypes[key[0]]
			}
			result.AddError(unknownFieldError(strings.Join(key, "."), field, typeName, row))
		}
		return
	}

	var tomlErr *toml.DecodeError
	if stderrors.As(err, &tomlErr) {
		row, col := tomlErr.Position()
		result.AddError(&errors.ValidationError{
			Message:    fmt.Sprintf("TOML syntax error at line %d, column %d: %s", row, col, tomlErr.Error()),
			DocSection: "configuration",
		})
		return
	}

	errMsg := err.Error()
	switch {
	case strings.Contains(errMsg, "field") && strings.Contains(errMsg, "not found"):
		for _, line := range strings.Split(errMsg, "\n") {
			if !strings.Contains(line, "not found in type") {
				continue
			}
			field, typeName := extractFieldAndType(line)
			result.AddError(unknownFieldError(field, field, typeName, extractLineNumber(line)))
		}
	case strings.Contains(errMsg, "cannot unmarshal"):
		result.AddError(&errors.ValidationError{
			Message:  errMsg,
			Expected: extractExpectedType(errMsg),
		})
	case strings.Contains(errMsg, "yaml:"):
		result.AddError(&errors.ValidationError{
			Message:    fmt.Sprintf("YAML syntax error: %s", errMsg),
			DocSection: "configuration",
		})
	default:
		result.AddError(&errors.ValidationError{Message: fmt.Sprintf("invalid %s: %s", format, errMsg)})
	}
}

// unknownFieldError builds the error for an unknown key with schema hints.
func unknownFieldError(path, field, typeName string, line int) *errors.ValidationError {
	verr := &errors.ValidationError{Message: fmt.Sprintf("unknown field '%s'", path)}
	if line > 0 {
		verr.Message = fmt.Sprintf("unknown field '%s' (line %d)", path, line)
	}
	if schema, ok := configSchema[typeName]; ok {
		verr.ValidKeys = schema.fields
		verr.DocSection = schema.doc
	}
	if suggestion := suggestSimilarField(field, typeName); suggestion != "" {
		verr.Message += fmt.Sprintf(" (did you mean '%s'?)", suggestion)
	}
	return verr
}

// validateConfigStruct runs semantic checks on a decoded configuration.
//
// Parameters:
//   - cfg: the configuration to validate
//   - result: validation result to append errors and warnings to
func validateConfigStruct(cfg *Config, result *errors.ValidationResult) {
	if cfg == nil {
		return
	}

	if mode := cfg.Matching.Mode; mode != "" && !utils.Contains(ValidMatchModes, mode) {
		result.AddError(&errors.ValidationError{
			Field:      "matching.mode",
			Message:    fmt.Sprintf("unknown matching mode %q", mode),
			ValidKeys:  ValidMatchModes,
			DocSection: "matching",
		})
	}

	validateAliases("columns.id", cfg.Columns.ID, true, result)
	validateAliases("columns.skill", cfg.Columns.Skill, true, result)
	validateAliases("columns.opcode", cfg.Columns.OPCode, false, result)
	if len(cfg.Columns.OPCode) == 0 {
		result.AddWarning("columns.opcode is empty; results will not be de-duplicated")
	}
	for _, alias := range cfg.Columns.ID {
		if utils.IndexFold(cfg.Columns.Skill, alias) >= 0 {
			result.AddError(&errors.ValidationError{
				Field:      "columns",
				Message:    fmt.Sprintf("header %q is listed as both id and skill", alias),
				DocSection: "columns",
			})
		}
	}

	nonNegative := []struct {
		field string
		value int64
	}{
		{"display.preview_rows", int64(cfg.Display.PreviewRows)},
		{"display.max_cell_width", int64(cfg.Display.MaxCellWidth)},
		{"limits.max_file_size", cfg.Limits.MaxFileSize},
		{"limits.max_rows", int64(cfg.Limits.MaxRows)},
		{"server.max_sessions", int64(cfg.Server.MaxSessions)},
		{"server.max_upload_size", cfg.Server.MaxUploadSize},
	}
	for _, nn := range nonNegative {
		if nn.value < 0 {
			result.AddError(&errors.ValidationError{
				Field:    nn.field,
				Message:  fmt.Sprintf("must not be negative (got %d)", nn.value),
				Expected: "integer >= 0 (0 disables the limit)",
			})
		}
	}

	if cfg.Server.Addr != "" {
		if _, _, err := net.SplitHostPort(cfg.Server.Addr); err != nil {
			result.AddError(&errors.ValidationError{
				Field:    "server.addr",
				Message:  fmt.Sprintf("invalid listen address %q: %v", cfg.Server.Addr, err),
				Expected: "host:port, e.g. 127.0.0.1:8080 or :8080",
			})
		}
	}
}

// validateAliases checks one header alias list.
func validateAliases(field string, aliases []string, required bool, result *errors.ValidationResult) {
	if required && len(aliases) == 0 {
		result.AddError(&errors.ValidationError{
			Field:      field,
			Message:    "at least one header name is required",
			DocSection: "columns",
		})
		return
	}
	for i, alias := range aliases {
		if strings.TrimSpace(alias) == "" {
			result.AddError(&errors.ValidationError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: "header name cannot be empty",
			})
		}
	}
}

// extractFieldAndType extracts the field name and type from a YAML error message.
//
// Parameters:
//   - errMsg: line like "line 3: field foo not found in type config.DisplayCfg"
//
// Returns:
//   - field: the unknown field name
//   - typeName: the Go type name without package prefix
func extractFieldAndType(errMsg string) (field, typeName string) {
	parts := strings.SplitN(errMsg, "field ", 2)
	if len(parts) == 2 {
		fieldPart := parts[1]
		if spaceIdx := strings.Index(fieldPart, " "); spaceIdx > 0 {
			field = fieldPart[:spaceIdx]
		} else {
			field = fieldPart
		}
	}

	if idx := strings.Index(errMsg, "in type config."); idx >= 0 {
		typePart := errMsg[idx+len("in type config."):]
		if endIdx := strings.IndexAny(typePart, " \n"); endIdx > 0 {
			typeName = typePart[:endIdx]
		} else {
			typeName = typePart
		}
	}

	return field, typeName
}

var lineNumberRe = regexp.MustCompile(`line (\d+):`)

// extractLineNumber extracts the line number from a YAML error message, or 0.
func extractLineNumber(errMsg string) int {
	matches := lineNumberRe.FindStringSubmatch(errMsg)
	if len(matches) >= 2 {
		var lineNum int
		_, _ = fmt.Sscanf(matches[1], "%d", &lineNum)
		return lineNum
	}
	return 0
}

// extractExpectedType extracts Y from "cannot unmarshal X into Y" messages.
func extractExpectedType(errMsg string) string {
	if idx := strings.Index(errMsg, "into "); idx >= 0 {
		typePart := errMsg[idx+5:]
		if endIdx := strings.IndexAny(typePart, " \n"); endIdx > 0 {
			return typePart[:endIdx]
		}
		return typePart
	}
	return ""
}

// suggestSimilarField returns a suggested field name if the input looks like a typo.
//
// Parameters:
//   - field: the unknown field name
//   - typeName: the type name where the field was found
//
// Returns:
//   - string: suggested correct field name, or empty string if no suggestion
func suggestSimilarField(field, typeName string) string {
	if typos, ok := commonTypos[typeName]; ok {
		if suggestion, found := typos[field]; found {
			return suggestion
		}
	}

	if strings.Contains(field, "-") {
		snakeCase := strings.ReplaceAll(field, "-", "_")
		if schema, ok := configSchema[typeName]; ok && utils.Contains(schema.fields, snakeCase) {
			return snakeCase
		}
	}

	return ""
}
