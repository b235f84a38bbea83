package config

import (
	"github.com/ajxudir/skillsearch/pkg/constants"
)

// Fallback values used when a section is missing or a value is zero.
const (
	DefaultPreviewRows    = 5
	DefaultMaxCellWidth   = 60
	DefaultMaxFileSize    = 50 << 20
	DefaultMaxRows        = 1_000_000
	DefaultAddr           = "127.0.0.1:8080"
	DefaultMaxSessions    = 16
	DefaultMaxUploadSize  = 50 << 20
	DefaultMaxConfigBytes = 1 << 20
)

// Config is the root configuration structure.
type Config struct {
	Columns  ColumnsCfg  `yaml:"columns" toml:"columns" json:"columns"`
	Matching MatchingCfg `yaml:"matching" toml:"matching" json:"matching"`
	Display  DisplayCfg  `yaml:"display" toml:"display" json:"display"`
	Limits   LimitsCfg   `yaml:"limits" toml:"limits" json:"limits"`
	Server   ServerCfg   `yaml:"server" toml:"server" json:"server"`

	// SourcePath is the file the config was read from, empty for built-in defaults.
	SourcePath string `yaml:"-" toml:"-" json:"-"`
}

// ColumnsCfg lists accepted header names for the recognized columns.
//
// Each list is tried in order; matching ignores case and surrounding
// whitespace. An empty OPCode list disables de-duplication.
type ColumnsCfg struct {
	ID     []string `yaml:"id" toml:"id" json:"id"`
	Skill  []string `yaml:"skill" toml:"skill" json:"skill"`
	OPCode []string `yaml:"opcode" toml:"opcode" json:"opcode"`
}

// MatchingCfg selects how selected skills are matched against skill cells.
type MatchingCfg struct {
	// Mode is "token" (default) or "word_boundary".
	Mode string `yaml:"mode" toml:"mode" json:"mode"`
}

// DisplayCfg controls table rendering.
type DisplayCfg struct {
	PreviewRows  int `yaml:"preview_rows" toml:"preview_rows" json:"preview_rows"`
	MaxCellWidth int `yaml:"max_cell_width" toml:"max_cell_width" json:"max_cell_width"`
}

// LimitsCfg bounds memory use while loading. Zero disables a check.
type LimitsCfg struct {
	MaxFileSize int64 `yaml:"max_file_size" toml:"max_file_size" json:"max_file_size"`
	MaxRows     int   `yaml:"max_rows" toml:"max_rows" json:"max_rows"`
}

// ServerCfg configures the HTTP upload server.
type ServerCfg struct {
	Addr          string `yaml:"addr" toml:"addr" json:"addr"`
	MaxSessions   int    `yaml:"max_sessions" toml:"max_sessions" json:"max_sessions"`
	MaxUploadSize int64  `yaml:"max_upload_size" toml:"max_upload_size" json:"max_upload_size"`
}

// GetMatchMode returns the configured matching mode or the token default.
//
// Returns:
//   - string: constants.MatchModeToken or constants.MatchModeWordBoundary
func (c *Config) GetMatchMode() string {
	if c == nil || c.Matching.Mode == "" {
		return constants.MatchModeToken
	}
	return c.Matching.Mode
}

// GetPreviewRows returns the number of rows to show after load.
//
// Negative values are treated as the default; zero disables the preview.
func (c *Config) GetPreviewRows() int {
	if c == nil || c.Display.PreviewRows < 0 {
		return DefaultPreviewRows
	}
	return c.Display.PreviewRows
}

// GetMaxCellWidth returns the cell clip width for table output (0 = unlimited).
func (c *Config) GetMaxCellWidth() int {
	if c == nil || c.Display.MaxCellWidth < 0 {
		return DefaultMaxCellWidth
	}
	return c.Display.MaxCellWidth
}

// GetMaxFileSize returns the input size limit in bytes (0 = unlimited).
func (c *Config) GetMaxFileSize() int64 {
	if c == nil || c.Limits.MaxFileSize < 0 {
		return DefaultMaxFileSize
	}
	return c.Limits.MaxFileSize
}

// GetMaxRows returns the data row limit (0 = unlimited).
func (c *Config) GetMaxRows() int {
	if c == nil || c.Limits.MaxRows < 0 {
		return DefaultMaxRows
	}
	return c.Limits.MaxRows
}

// GetAddr returns the server listen address.
func (c *Config) GetAddr() string {
	if c == nil || c.Server.Addr == "" {
		return DefaultAddr
	}
	return c.Server.Addr
}

// GetMaxSessions returns how many loaded files the server keeps.
func (c *Config) GetMaxSessions() int {
	if c == nil || c.Server.MaxSessions <= 0 {
		return DefaultMaxSessions
	}
	return c.Server.MaxSessions
}

// GetMaxUploadSize returns the multipart upload size limit in bytes.
func (c *Config) GetMaxUploadSize() int64 {
	if c == nil || c.Server.MaxUploadSize <= 0 {
		return DefaultMaxUploadSize
	}
	return c.Server.MaxUploadSize
}

// IDColumns returns the accepted identifier headers.
func (c *Config) IDColumns() []string {
	if c == nil || len(c.Columns.ID) == 0 {
		return []string{constants.ColumnID, "ID"}
	}
	return c.Columns.ID
}

// SkillColumns returns the accepted skill headers.
func (c *Config) SkillColumns() []string {
	if c == nil || len(c.Columns.Skill) == 0 {
		return []string{constants.ColumnSkill, "CodeMappingSkill", "Code Mapping Skill"}
	}
	return c.Columns.Skill
}

// OPCodeColumns returns the accepted OPCode headers.
//
// Unlike the other lists, an explicitly empty list is honored so users can
// turn de-duplication off; only a nil config falls back to the default.
func (c *Config) OPCodeColumns() []string {
	if c == nil {
		return []string{constants.ColumnOPCode}
	}
	return c.Columns.OPCode
}
