package tui

import (
	"context"
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ajxudir/skillsearch/pkg/session"
	"github.com/ajxudir/skillsearch/pkg/table"
)

// RunOptions configures Run.
//
// Fields:
//   - Options: Display options of the browser
//   - WatchPath: File to watch for changes; empty disables watching
//   - Input: Terminal input; nil uses stdin
//   - Output: Terminal output; nil uses stdout
//   - AltScreen: Use the alternate screen buffer
type RunOptions struct {
	Options
	WatchPath string
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
}

// Run starts the browser and blocks until the user quits or ctx is
// cancelled. With a WatchPath, changes to the file reload the session and
// refresh the browser.
//
// Parameters:
//   - ctx: Cancels the program and the watcher
//   - s: Session holding the loaded file
//   - opts: Program options
//
// Returns:
//   - error: Non-nil if the watcher cannot start or the program fails
func Run(ctx context.Context, s *session.Session, opts RunOptions) error {
	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	p := tea.NewProgram(New(s, opts.Options), programOpts...)

	if opts.WatchPath != "" {
		w, err := session.NewWatcher(s, opts.WatchPath, func(t *table.Table, cached bool, err error) {
			p.Send(ReloadMsg{Table: t, Cached: cached, Err: err})
		})
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			w.Stop()
			return err
		}
		defer w.Stop()
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
