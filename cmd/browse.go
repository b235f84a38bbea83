package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ajxudir/skillsearch/pkg/display"
	"github.com/ajxudir/skillsearch/pkg/tui"
	"github.com/ajxudir/skillsearch/pkg/warnings"
)

var (
	browseWatchFlag       bool
	browseNoAltScreenFlag bool
)

var runBrowserFunc = tui.Run

var browseCmd = &cobra.Command{
	Use:   "browse <file>",
	Short: "Search a file interactively",
	Long: `Open an interactive browser over a CSV or xlsx export: type an ID,
select Code Mapping Skills with space, press enter to search and ctrl+r to
clear. With --watch the file is loaded again whenever it changes on disk.

` + usageGuide,
	Args: cobra.ExactArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().BoolVarP(&browseWatchFlag, "watch", "w", false, "Reload the file when it changes")
	browseCmd.Flags().BoolVar(&browseNoAltScreenFlag, "no-alt-screen", false, "Render inline instead of on the alternate screen")
}

// runBrowse executes the browse command.
//
// Without --watch a file that cannot be loaded is an error. With --watch the
// browser starts anyway and shows the load error until the file is fixed.
// Reload warnings are collected and printed once the browser exits.
func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadCommandConfig()
	if err != nil {
		return err
	}

	s, _, err := loadSession(cfg, args[0])
	if err != nil && !browseWatchFlag {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
	defer stop()

	opts := tui.RunOptions{
		Options: tui.Options{
			PreviewRows:  cfg.GetPreviewRows(),
			MaxCellWidth: cfg.GetMaxCellWidth(),
		},
		AltScreen: !browseNoAltScreenFlag,
	}
	if browseWatchFlag {
		opts.WatchPath = args[0]
	}

	// Warnings raised while the browser owns the terminal are shown after it exits.
	collector := display.NewWarningCollector()
	restore := warnings.SetWarningWriter(collector)
	err = runBrowserFunc(ctx, s, opts)
	restore()
	display.PrintWarnings(os.Stderr, collector.Messages())
	return err
}

// cmdContext returns the command's context, or Background when unset.
func cmdContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}
