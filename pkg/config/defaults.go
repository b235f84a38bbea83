package config

import (
	_ "embed"

	"github.com/ajxudir/skillsearch/pkg/constants"
	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultConfigYAML string

//go:embed template.yml
var templateConfigYAML string

// loadDefaultConfig loads the embedded default configuration.
//
// If unmarshaling fails, returns a config built from the Go fallback constants
// so that callers always get usable column aliases and limits.
//
// Returns:
//   - *Config: the default configuration
func loadDefaultConfig() *Config {
	var cfg Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &cfg); err == nil {
		return &cfg
	}
	return fallbackConfig()
}

// fallbackConfig mirrors default.yml in Go.
func fallbackConfig() *Config {
	var nilCfg *Config
	return &Config{
		Columns: ColumnsCfg{
			ID:     nilCfg.IDColumns(),
			Skill:  nilCfg.SkillColumns(),
			OPCode: nilCfg.OPCodeColumns(),
		},
		Matching: MatchingCfg{Mode: constants.MatchModeToken},
		Display:  DisplayCfg{PreviewRows: DefaultPreviewRows, MaxCellWidth: DefaultMaxCellWidth},
		Limits:   LimitsCfg{MaxFileSize: DefaultMaxFileSize, MaxRows: DefaultMaxRows},
		Server:   ServerCfg{Addr: DefaultAddr, MaxSessions: DefaultMaxSessions, MaxUploadSize: DefaultMaxUploadSize},
	}
}

// Default returns a fresh copy of the built-in configuration.
//
// Returns:
//   - *Config: the default configuration; callers may mutate it freely
func Default() *Config {
	return loadDefaultConfig()
}

// GetDefaultConfig returns the embedded default configuration YAML.
//
// Returns:
//   - string: the default configuration as YAML
func GetDefaultConfig() string {
	return defaultConfigYAML
}

// GetTemplateConfig returns the embedded template configuration YAML.
//
// This is what 'skillsearch config --init' writes to .skillsearch.yml.
//
// Returns:
//   - string: the template configuration as YAML
func GetTemplateConfig() string {
	return templateConfigYAML
}
