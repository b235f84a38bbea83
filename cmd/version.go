package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ajxudir/skillsearch/pkg/constants"
)

// Version information set at build time via ldflags.
// Example: go build -ldflags="-X github.com/ajxudir/skillsearch/cmd.Version=1.0.0"
var (
	Version   = "dev"
	BuildTime = ""
	GitCommit = ""
	BuildOS   = ""
	BuildArch = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Long:  `Show version, build date, and system information.`,
	Run: func(cmd *cobra.Command, args []string) {
		printVersionOutput()
	},
}

// printVersionOutput prints version, build, and runtime information to stdout.
func printVersionOutput() {
	writeVersion(os.Stdout)
}

// writeVersion writes the build target, the runtime platform when it
// differs, the Go version, optional build metadata and the version.
func writeVersion(w io.Writer) {
	buildOS, buildArch := getBuildTarget()
	fmt.Fprintf(w, "  Build:   %s/%s\n", buildOS, buildArch)
	if buildOS != runtime.GOOS || buildArch != runtime.GOARCH {
		fmt.Fprintf(w, "  Runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
	fmt.Fprintf(w, "  Go:      %s\n", runtime.Version())
	if BuildTime != "" {
		fmt.Fprintf(w, "  Date:    %s\n", BuildTime)
	}
	fmt.Fprintln(w)
	if GitCommit != "" {
		fmt.Fprintf(w, "  Git:     %s\n", GitCommit)
	}
	fmt.Fprintf(w, "  Version: %s\n", Version)
}

// getBuildTarget returns the OS and architecture the binary was built for,
// falling back to the runtime values for builds without ldflags.
func getBuildTarget() (string, string) {
	buildOS, buildArch := BuildOS, BuildArch
	if buildOS == "" {
		buildOS = runtime.GOOS
	}
	if buildArch == "" {
		buildArch = runtime.GOARCH
	}
	return buildOS, buildArch
}

// HasArchMismatch reports whether the binary was built for another platform.
func HasArchMismatch() bool {
	if BuildOS == "" && BuildArch == "" {
		return false
	}
	buildOS, buildArch := getBuildTarget()
	return buildOS != runtime.GOOS || buildArch != runtime.GOARCH
}

// IsDevBuild reports whether the binary was built without a version tag.
func IsDevBuild() bool {
	return Version == "dev"
}

// GetBuildWarnings returns the warnings printed before every command.
//
// Returns:
//   - string: Architecture mismatch and dev build warnings; empty when none apply
func GetBuildWarnings() string {
	var warnings string
	if HasArchMismatch() {
		buildOS, buildArch := getBuildTarget()
		warnings += fmt.Sprintf("%s  Architecture mismatch: binary built for %s/%s but running on %s/%s\n",
			constants.IconWarn, buildOS, buildArch, runtime.GOOS, runtime.GOARCH)
	}
	if IsDevBuild() {
		warnings += constants.IconWarn + "  Development build: this is an unreleased version without a version tag.\n"
	}
	return warnings
}
