package session

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ajxudir/skillsearch/pkg/table"
	"github.com/ajxudir/skillsearch/pkg/verbose"
	"github.com/ajxudir/skillsearch/pkg/warnings"
)

// DefaultDebounce is how long a file must be quiet before it is reloaded.
const DefaultDebounce = 300 * time.Millisecond

// ReloadFunc receives the outcome of every reload.
type ReloadFunc func(t *table.Table, cached bool, err error)

// Watcher reloads a session's file when it changes on disk.
//
// The parent directory is watched rather than the file itself, so editors
// that save by writing a temporary file and renaming it are handled.
// Bursts of events are collapsed into one reload per debounce window.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	session  *Session
	path     string
	debounce time.Duration
	onReload ReloadFunc
	pending  time.Time
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// NewWatcher creates a watcher for path that reloads into s.
//
// Parameters:
//   - s: Session to reload
//   - path: File to watch
//   - onReload: Optional callback invoked after every reload
//
// Returns:
//   - *Watcher: Stopped watcher; call Start to begin watching
//   - error: Non-nil if the OS watcher cannot be created
func NewWatcher(s *Session, path string, onReload ReloadFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &Watcher{
		watcher:  fw,
		session:  s,
		path:     filepath.Clean(abs),
		debounce: DefaultDebounce,
		onReload: onReload,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// SetDebounce changes the debounce window. It must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	w.debounce = d
	w.mu.Unlock()
}

// Start begins watching. It is non-blocking; events are processed in a
// goroutine until ctx is cancelled or Stop is called.
//
// Returns:
//   - error: Non-nil if the parent directory cannot be watched
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		w.mu.Unlock()
		return err
	}
	w.running = true
	w.mu.Unlock()

	verbose.Printf("Watching %s for changes\n", w.path)
	go w.run(ctx)
	return nil
}

// Stop stops the watcher, waits for the event loop to exit and releases
// the OS watcher. Stop is safe to call more than once and without Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	wasRunning := w.running
	w.running = false
	w.mu.Unlock()

	if wasRunning {
		select {
		case <-w.stopCh:
		default:
			close(w.stopCh)
		}
		<-w.doneCh
	}
	_ = w.watcher.Close()
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	tick := w.debounce / 3
	if tick <= 0 {
		tick = 10 * time.Millisecond
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			verbose.Printf("Watcher error: %v\n", err)
			warnings.Warnf("watching %s: %v", w.path, err)
		case <-ticker.C:
			w.processPending()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	w.mu.Lock()
	w.pending = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) processPending() {
	w.mu.Lock()
	if w.pending.IsZero() || time.Since(w.pending) < w.debounce {
		w.mu.Unlock()
		return
	}
	w.pending = time.Time{}
	w.mu.Unlock()

	t, cached, err := w.session.LoadFile(w.path)
	if err != nil {
		verbose.Printf("Reload of %s failed: %v\n", w.path, err)
	} else if !cached {
		warnings.WarnAll(t.Warnings())
	}
	if w.onReload != nil {
		w.onReload(t, cached, err)
	}
}
