package cmd

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withBuildInfo sets the build variables for one test and restores them.
func withBuildInfo(t *testing.T, version, buildTime, commit, goos, arch string) {
	t.Helper()
	old := []string{Version, BuildTime, GitCommit, BuildOS, BuildArch}
	t.Cleanup(func() {
		Version, BuildTime, GitCommit, BuildOS, BuildArch = old[0], old[1], old[2], old[3], old[4]
	})
	Version, BuildTime, GitCommit, BuildOS, BuildArch = version, buildTime, commit, goos, arch
}

// TestWriteVersion tests the version block.
//
// It verifies:
//   - Version, Go version and build target are always shown
//   - Date and commit appear only when set
//   - The runtime platform appears when it differs from the build target
func TestWriteVersion(t *testing.T) {
	tests := []struct {
		name        string
		buildTime   string
		commit      string
		goos, arch  string
		contains    []string
		notContains []string
	}{
		{
			name:        "basic",
			contains:    []string{"Version: 1.0.0", "Go:", "Build:   " + runtime.GOOS + "/" + runtime.GOARCH},
			notContains: []string{"Date:", "Git:", "Runtime:"},
		},
		{
			name:      "metadata",
			buildTime: "2025-06-15T12:00:00Z",
			commit:    "def456",
			contains:  []string{"Date:    2025-06-15T12:00:00Z", "Git:     def456"},
		},
		{
			name:     "cross build",
			goos:     "plan9",
			arch:     "mips",
			contains: []string{"Build:   plan9/mips", "Runtime: " + runtime.GOOS},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, "1.0.0", tt.buildTime, tt.commit, tt.goos, tt.arch)
			var buf bytes.Buffer
			writeVersion(&buf)
			for _, s := range tt.contains {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}

// TestVersionCommand tests `skillsearch version`.
func TestVersionCommand(t *testing.T) {
	withBuildInfo(t, "2.0.0", "", "", "", "")
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version: 2.0.0")
}

// TestGetBuildWarnings tests the warnings shown before every command.
//
// It verifies:
//   - Release builds on the right platform have no warnings
//   - Dev builds get the development warning
//   - A foreign build target gets the architecture warning
func TestGetBuildWarnings(t *testing.T) {
	withBuildInfo(t, "1.0.0", "", "", "", "")
	assert.Empty(t, GetBuildWarnings())
	assert.False(t, HasArchMismatch())
	assert.False(t, IsDevBuild())

	Version = "dev"
	assert.True(t, IsDevBuild())
	assert.Contains(t, GetBuildWarnings(), "Development build")

	Version, BuildOS, BuildArch = "1.0.0", "plan9", "mips"
	assert.True(t, HasArchMismatch())
	assert.Contains(t, GetBuildWarnings(), "Architecture mismatch: binary built for plan9/mips")

	BuildOS, BuildArch = runtime.GOOS, runtime.GOARCH
	assert.False(t, HasArchMismatch())
}
