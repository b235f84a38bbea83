// Package cmd implements the command-line interface for skillsearch.
// It provides commands for previewing a CSV or xlsx export, listing its
// Code Mapping Skill vocabulary, searching it by ID and skills, browsing it
// interactively and serving it over HTTP.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajxudir/skillsearch/pkg/errors"
	"github.com/ajxudir/skillsearch/pkg/verbose"
)

var exitFunc = os.Exit
var verboseFlag bool
var versionFlag bool
var skipBuildChecksFlag bool
var configFlag string

const usageGuide = `How to use:
  1. Prepare the file: make sure the CSV or xlsx export has the columns
     [ID] and [Code Mapping Skill] (OPCode is used to drop duplicates).
  2. Load it: pass the file to preview, skills, search or browse, or upload
     it to the server started with serve.
  3. Search: enter an ID and/or select one or more Code Mapping Skills.
  4. Results: matching rows are shown as a table; use --output for csv,
     json, xml or xlsx.`

var rootCmd = &cobra.Command{
	Use:   "skillsearch",
	Short: "Filter CSV exports by ID and Code Mapping Skill",
	Long: `Load a CSV or xlsx export and filter its rows by exact ID and by
whole-token Code Mapping Skill matches, dropping duplicate (ID, OPCode) rows.

` + usageGuide,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verboseFlag {
			verbose.Enable()
		}
		// Build warnings go to stderr so structured stdout stays parseable.
		if !skipBuildChecksFlag {
			if warnings := GetBuildWarnings(); warnings != "" {
				fmt.Fprint(os.Stderr, warnings)
				fmt.Fprintln(os.Stderr)
			}
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if versionFlag {
			printVersionOutput()
			return
		}
		_ = cmd.Help()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with appropriate code:
//   - 0: Success
//   - 1: The file loaded but has no data rows
//   - 2: The file could not be loaded, or another failure
//   - 3: Configuration or validation error
//   - 4: Search without an ID or skills
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errors.PrintErrorWithHints(os.Stderr, []error{err}, verboseFlag)
		code := errors.GetExitCode(err)
		verbose.Infof("Exit code %d: %v", code, err)
		exitFunc(code)
	}
}

// ExecuteTest runs the root command for testing (returns error instead of exiting).
//
// Unlike Execute(), this function returns the error directly without calling
// os.Exit, making it suitable for use in test suites.
//
// Returns:
//   - error: Command execution error, or nil on success
func ExecuteTest() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&skipBuildChecksFlag, "skip-build-checks", false, "Skip build validation warnings (dev build, arch mismatch)")
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Config file path (default: .skillsearch.yml in the current directory)")

	rootCmd.Flags().BoolVarP(&versionFlag, "version", "v", false, "Show version information")

	// Commands ordered logically: info → config → workflow (preview → skills → search → browse → serve)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(serveCmd)
}
