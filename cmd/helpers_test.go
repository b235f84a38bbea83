package cmd

import (
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ajxudir/skillsearch/pkg/testutil"
	"github.com/ajxudir/skillsearch/pkg/verbose"
)

// chdir changes the working directory to dir for the duration of the test,
// restoring the previous one on cleanup (equivalent of Go 1.24's t.Chdir).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}

// captureStdout is a test helper that captures stdout during function execution.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	return testutil.CaptureStdout(t, fn)
}

// resetFlags restores every flag of cmd and its children to its default,
// since cobra keeps parsed values between Execute calls.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

// runCLI executes the root command with args and returns what it printed
// to stdout. Build warnings are skipped.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		verbose.Disable()
	})

	rootCmd.SetArgs(append([]string{"--skip-build-checks"}, args...))
	var err error
	out := captureStdout(t, func() {
		err = ExecuteTest()
	})
	return out, err
}

// scenarioFile writes the reference three-row scenario and returns its path.
func scenarioFile(t *testing.T) string {
	t.Helper()
	return testutil.WriteFile(t, t.TempDir(), "scenario.csv", []byte(testutil.ScenarioCSV))
}
