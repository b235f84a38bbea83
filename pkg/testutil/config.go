package testutil

import (
	"github.com/ajxudir/skillsearch/pkg/config"
)

// ConfigBuilder provides a fluent API for building test configurations.
//
// The builder starts from the embedded defaults so tests only set the
// values they care about.
type ConfigBuilder struct {
	cfg *config.Config
}

// NewConfig creates a new ConfigBuilder seeded with the default configuration.
//
// Returns:
//   - *ConfigBuilder: New builder instance ready for method chaining
func NewConfig() *ConfigBuilder {
	return &ConfigBuilder{cfg: config.Default()}
}

// WithMatchMode sets matching.mode.
//
// Parameters:
//   - mode: "token" or "word_boundary"
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithMatchMode(mode string) *ConfigBuilder {
	b.cfg.Matching.Mode = mode
	return b
}

// WithColumns replaces the alias lists. A nil list keeps the current value;
// an empty non-nil list clears it.
//
// Parameters:
//   - id: Identifier aliases
//   - skill: Skill aliases
//   - opcode: OPCode aliases
//
// Returns:
//   - *ConfigBuilder: Self for method chaining
func (b *ConfigBuilder) WithColumns(id, skill, opcode []string) *ConfigBuilder {
	if id != nil {
		b.cfg.Columns.ID = id
	}
	if skill != nil {
		b.cfg.Columns.Skill = skill
	}
	if opcode != nil {
		b.cfg.Columns.OPCode = opcode
	}
	return b
}

// WithLimits sets the loader limits.
func (b *ConfigBuilder) WithLimits(maxFileSize int64, maxRows int) *ConfigBuilder {
	b.cfg.Limits.MaxFileSize = maxFileSize
	b.cfg.Limits.MaxRows = maxRows
	return b
}

// WithPreviewRows sets display.preview_rows.
func (b *ConfigBuilder) WithPreviewRows(n int) *ConfigBuilder {
	b.cfg.Display.PreviewRows = n
	return b
}

// WithMaxSessions sets server.max_sessions.
func (b *ConfigBuilder) WithMaxSessions(n int) *ConfigBuilder {
	b.cfg.Server.MaxSessions = n
	return b
}

// WithMaxUploadSize sets server.max_upload_size.
func (b *ConfigBuilder) WithMaxUploadSize(n int64) *ConfigBuilder {
	b.cfg.Server.MaxUploadSize = n
	return b
}

// Build returns the built configuration.
//
// Returns:
//   - *config.Config: Pointer to the built configuration
func (b *ConfigBuilder) Build() *config.Config {
	return b.cfg
}
