// Package config handles configuration loading and validation for skillsearch.
// It supports YAML (.skillsearch.yml) and TOML (.skillsearch.toml) files that
// overlay the embedded defaults key by key.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ajxudir/skillsearch/pkg/verbose"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies the syntax of a configuration file.
type Format string

const (
	// FormatYAML is the default configuration syntax.
	FormatYAML Format = "yaml"
	// FormatTOML is accepted for files ending in .toml.
	FormatTOML Format = "toml"
)

// LocalConfigNames are the file names discovered in the working directory, in priority order.
var LocalConfigNames = []string{".skillsearch.yml", ".skillsearch.yaml", ".skillsearch.toml"}

// FormatForPath returns the configuration syntax implied by a file name.
//
// Parameters:
//   - path: config file path
//
// Returns:
//   - Format: FormatTOML for *.toml, FormatYAML otherwise
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// LoadConfig loads configuration from the specified path or defaults.
//
// If configPath is provided, it loads that specific config file.
// Otherwise, it looks for one of LocalConfigNames in workDir.
// If no config is found, it returns the built-in default configuration.
//
// Parameters:
//   - configPath: path to the config file, or empty to auto-discover
//   - workDir: directory searched for a local config file
//
// Returns:
//   - *Config: the loaded configuration overlaid on defaults
//   - error: any error encountered during loading or validation
func LoadConfig(configPath, workDir string) (*Config, error) {
	if configPath == "" {
		configPath = FindLocalConfig(workDir)
		if configPath == "" {
			verbose.Info("Using built-in default configuration")
			verbose.ConfigLoaded("built-in defaults")
			return loadDefaultConfig(), nil
		}
		verbose.Infof("Found local config: %s", configPath)
	}

	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
	}

	if result := cfg.Validate(); result.HasErrors() {
		return nil, fmt.Errorf("failed to load config %s: %w", configPath, result.Err())
	}

	verbose.ConfigLoaded(configPath)
	return cfg, nil
}

// FindLocalConfig returns the first LocalConfigNames entry present in dir.
//
// Parameters:
//   - dir: directory to search; "." when empty
//
// Returns:
//   - string: path of the discovered file, or "" if none exists
func FindLocalConfig(dir string) string {
	if dir == "" {
		dir = "."
	}
	for _, name := range LocalConfigNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// ReadConfigFile reads a config file after checking its size.
//
// Parameters:
//   - path: path to the config file
//
// Returns:
//   - []byte: file contents
//   - error: error if the file is missing, unreadable or larger than DefaultMaxConfigBytes
func ReadConfigFile(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > DefaultMaxConfigBytes {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d bytes)", info.Size(), DefaultMaxConfigBytes)
	}
	return os.ReadFile(path)
}

// loadConfigFile reads and parses a config file in the format implied by its extension.
func loadConfigFile(path string) (*Config, error) {
	data, err := ReadConfigFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfigData(data, FormatForPath(path))
	if err != nil {
		return nil, err
	}
	cfg.SourcePath = path
	return cfg, nil
}

// loadConfigData parses configuration data on top of the embedded defaults.
//
// Keys absent from data keep their default values; lists present in data
// replace the default list entirely.
//
// Parameters:
//   - data: configuration file contents
//   - format: FormatYAML or FormatTOML
//
// Returns:
//   - *Config: the merged configuration
//   - error: error if the syntax is invalid
func loadConfigData(data []byte, format Format) (*Config, error) {
	cfg := loadDefaultConfig()

	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid TOML: %w", err)
		}
	default:
		if len(bytes.TrimSpace(data)) == 0 {
			return cfg, nil
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML: %w", err)
		}
	}

	return cfg, nil
}

// Marshal renders cfg in the given format.
//
// Parameters:
//   - cfg: configuration to render
//   - format: FormatYAML or FormatTOML
//
// Returns:
//   - []byte: rendered configuration
//   - error: encoding error
func Marshal(cfg *Config, format Format) ([]byte, error) {
	if format == FormatTOML {
		return toml.Marshal(cfg)
	}
	return yaml.Marshal(cfg)
}
