package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/skillsearch/pkg/config"
	"github.com/ajxudir/skillsearch/pkg/constants"
	"github.com/ajxudir/skillsearch/pkg/errors"
	"github.com/ajxudir/skillsearch/pkg/verbose"
)

var (
	configShowDefaultsFlag  bool
	configShowEffectiveFlag bool
	configInitFlag          bool
	configValidateFlag      bool
	configFormatFlag        string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or create configuration",
	Long: `Show or create configuration files.

Configuration is read from --config, or from .skillsearch.yml,
.skillsearch.yaml or .skillsearch.toml in the current directory. It sets the
accepted column names, the skill matching mode, display limits, load limits
and server settings.`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configShowDefaultsFlag, "show-defaults", false, "Show default configuration")
	configCmd.Flags().BoolVar(&configShowEffectiveFlag, "show-effective", false, "Show effective configuration")
	configCmd.Flags().BoolVar(&configInitFlag, "init", false, "Create .skillsearch.yml template")
	configCmd.Flags().BoolVar(&configValidateFlag, "validate", false, "Validate configuration file (rejects unknown fields)")
	configCmd.Flags().StringVar(&configFormatFlag, "format", "yaml", "Format for --show-effective: yaml, toml")
}

// runConfig executes the config command with the specified flags.
//
// Behavior depends on flags:
//   - --init: Creates a .skillsearch.yml template file
//   - --validate: Validates the configuration file for schema errors
//   - --show-defaults: Displays the default configuration
//   - --show-effective: Displays the effective configuration
//
// Parameters:
//   - cmd: Cobra command instance
//   - args: Command line arguments
//
// Returns:
//   - error: Returns error on validation or file operation failure
func runConfig(cmd *cobra.Command, args []string) error {
	if configInitFlag {
		return createConfigTemplate()
	}

	if configValidateFlag {
		return validateConfigFile()
	}

	if configShowDefaultsFlag {
		fmt.Println("Default configuration:")
		fmt.Println()
		fmt.Println(config.GetDefaultConfig())
		return nil
	}

	if configShowEffectiveFlag {
		return showEffectiveConfig()
	}

	return cmd.Help()
}

// showEffectiveConfig prints the configuration commands would use.
func showEffectiveConfig() error {
	format := config.FormatYAML
	switch configFormatFlag {
	case "", "yaml", "yml":
	case "toml":
		format = config.FormatTOML
	default:
		return errors.NewExitErrorf(errors.ExitConfigError, "unknown config format %q (valid: yaml, toml)", configFormatFlag)
	}

	cfg, err := loadCommandConfig()
	if err != nil {
		return err
	}

	data, err := config.Marshal(cfg, format)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	source := cfg.SourcePath
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Println("Effective configuration:")
	fmt.Printf("Source: %s\n\n", source)
	fmt.Print(string(data))
	return nil
}

// validateConfigFile validates the configuration file at the specified path.
//
// If no path is specified via --config flag, validates the local config in
// the current working directory. Reports validation errors and warnings.
//
// Returns:
//   - error: Returns ExitError with ExitConfigError code on validation failure
func validateConfigFile() error {
	configPath := configFlag
	if configPath == "" {
		workDir, _ := getwdFunc()
		configPath = config.FindLocalConfig(workDir)
		if configPath == "" {
			return errors.NewExitErrorf(errors.ExitConfigError, "no config file found: create one with 'skillsearch config --init' or pass --config")
		}
	}

	data, err := readFileFunc(configPath)
	if err != nil {
		return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("failed to read config file '%s': %w", configPath, err))
	}

	result := config.ValidateConfigData(data, config.FormatForPath(configPath))

	if result.HasErrors() {
		fmt.Printf("%s Configuration validation failed for: %s\n\n", constants.IconError, configPath)

		if verbose.IsEnabled() {
			for _, e := range result.Errors {
				fmt.Printf("  ERROR: %s\n", e.VerboseError())
			}
		} else {
			for _, e := range result.Errors {
				fmt.Printf("  ERROR: %s\n", e.Error())
			}
		}

		if len(result.Warnings) > 0 {
			fmt.Println()
			for _, w := range result.Warnings {
				fmt.Printf("  WARNING: %s\n", w)
			}
		}
		fmt.Println()
		if !verbose.IsEnabled() {
			fmt.Printf("%s Run with --verbose for detailed schema information\n", constants.IconLightbulb)
		}
		verbose.Infof("Exit code %d (config error): configuration validation failed for %s", errors.ExitConfigError, configPath)
		return errors.NewExitError(errors.ExitConfigError, fmt.Errorf("configuration validation failed"))
	}

	if len(result.Warnings) > 0 {
		fmt.Printf("%s Configuration valid with warnings: %s\n\n", constants.IconWarn, configPath)
		for _, w := range result.Warnings {
			fmt.Printf("  WARNING: %s\n", w)
		}
		fmt.Println()
	} else {
		fmt.Printf("%s Configuration valid: %s\n", constants.IconCheckmarkBox, configPath)
	}

	return nil
}

// createConfigTemplate creates a new .skillsearch.yml template file.
//
// The template is created in the current directory. Fails if a config
// file already exists at that location.
//
// Returns:
//   - error: Returns error if file exists or cannot be created
func createConfigTemplate() error {
	configPath := config.LocalConfigNames[0]
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	// 0600: owner read/write only.
	if err := writeFileFunc(configPath, []byte(config.GetTemplateConfig()), 0600); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Created configuration template: %s\n", configPath)
	return nil
}
