// Package session holds the mutable state of one interactive search session:
// the loaded table, the pending criteria and the last result.
//
// A Session moves through the states
//
//	Idle -> CriteriaEntered -> Filtering -> Done | Error
//
// and returns to CriteriaEntered whenever new criteria are entered. Store
// keeps one Session per upload for the HTTP server, and Watcher reloads a
// session's file when it changes on disk.
package session

import (
	"path/filepath"
	"sync"

	"github.com/ajxudir/skillsearch/pkg/config"
	"github.com/ajxudir/skillsearch/pkg/constants"
	"github.com/ajxudir/skillsearch/pkg/errors"
	"github.com/ajxudir/skillsearch/pkg/filtering"
	"github.com/ajxudir/skillsearch/pkg/skills"
	"github.com/ajxudir/skillsearch/pkg/table"
	"github.com/ajxudir/skillsearch/pkg/verbose"
)

// Options configure a Session.
//
// Fields:
//   - Load: Loader aliases and limits
//   - Search: Matcher settings
//   - Observer: Optional callback invoked on every state transition
type Options struct {
	Load     table.Options
	Search   filtering.SearchOptions
	Observer func(from, to string)
}

// OptionsFromConfig builds session options from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Load:   table.OptionsFromConfig(cfg),
		Search: filtering.SearchOptionsFromConfig(cfg),
	}
}

// Session is safe for concurrent use. The Observer, if set, runs while the
// session lock is held and must not call back into the session.
type Session struct {
	mu sync.RWMutex

	id       string
	opts     Options
	state    string
	key      UploadKey
	table    *table.Table
	criteria filtering.Criteria
	last     *filtering.Result
	lastErr  error

	// seq orders sessions by last use within a Store.
	seq uint64
}

// New creates an idle session with no table.
//
// Parameters:
//   - opts: Loader and search settings
//
// Returns:
//   - *Session: Session in state Idle
func New(opts Options) *Session {
	return &Session{opts: opts, state: constants.StateIdle}
}

// ID returns the identifier assigned by a Store, or "" for standalone sessions.
func (s *Session) ID() string {
	return s.id
}

// setState must be called with s.mu held.
func (s *Session) setState(to string) {
	from := s.state
	s.state = to
	if from != to {
		verbose.Printf("Session %s: %s -> %s\n", s.label(), from, to)
	}
	if s.opts.Observer != nil {
		s.opts.Observer(from, to)
	}
}

func (s *Session) label() string {
	if s.id != "" {
		return s.id
	}
	if s.table != nil {
		return s.table.Source
	}
	return "-"
}

// Load parses an upload and makes it the session's table.
//
// Uploading the same name and bytes again reuses the parsed table and keeps
// the current state. A different upload replaces the table, clears the
// criteria and last result, and returns the session to Idle. A failed upload
// leaves the session with no table.
//
// Parameters:
//   - name: File name as uploaded
//   - data: File contents
//
// Returns:
//   - *table.Table: The session's table
//   - bool: true when the table was reused from the previous identical upload
//   - error: *errors.LoadError or *errors.EmptyTableError
func (s *Session) Load(name string, data []byte) (*table.Table, bool, error) {
	key := NewUploadKey(name, data)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.table != nil && s.key == key {
		verbose.TableLoaded(name, s.table.Len(), len(s.table.Schema.Columns), true)
		return s.table, true, nil
	}

	t, err := table.Parse(name, data, s.opts.Load)
	s.key = UploadKey{}
	s.table = nil
	s.criteria = filtering.Criteria{}
	s.last = nil
	s.lastErr = err
	if err != nil {
		s.setState(constants.StateIdle)
		return nil, false, err
	}

	s.key = key
	s.table = t
	s.setState(constants.StateIdle)
	return t, false, nil
}

// LoadFile reads path and loads it with Load, using the base name as the
// upload name.
func (s *Session) LoadFile(path string) (*table.Table, bool, error) {
	data, err := table.ReadFile(path, s.opts.Load.MaxBytes)
	if err != nil {
		s.mu.Lock()
		s.key, s.table, s.last, s.lastErr = UploadKey{}, nil, nil, err
		s.criteria = filtering.Criteria{}
		s.setState(constants.StateIdle)
		s.mu.Unlock()
		return nil, false, err
	}
	return s.Load(filepath.Base(path), data)
}

// SetCriteria records the criteria for the next search and moves the
// session to CriteriaEntered. It never filters.
//
// Parameters:
//   - c: Criteria built with filtering.NewCriteria
func (s *Session) SetCriteria(c filtering.Criteria) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
	s.setState(constants.StateCriteriaEntered)
}

// SetMatchMode changes the skill matcher for later searches.
//
// Returns:
//   - error: Non-nil for an unknown mode; the current mode is kept
func (s *Session) SetMatchMode(mode string) error {
	if _, err := skills.NewMatcher(mode, nil); err != nil {
		return err
	}
	s.mu.Lock()
	s.opts.Search = s.opts.Search.WithMatchMode(mode)
	s.mu.Unlock()
	return nil
}

// Search applies the recorded criteria to the loaded table.
//
// It performs the following operations:
//   - Step 1: Without a table, moves to Error with errors.ErrNoTable
//   - Step 2: With empty criteria, moves to Error with errors.ErrMissingCriteria
//     and keeps the previous result
//   - Step 3: Otherwise moves to Filtering, runs the search and moves to Done
//
// Returns:
//   - *filtering.Result: The new result
//   - error: Why the search was rejected; the session is then in Error
func (s *Session) Search() (*filtering.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchLocked()
}

// searchLocked runs Search with s.mu held.
func (s *Session) searchLocked() (*filtering.Result, error) {
	if s.table == nil {
		s.lastErr = errors.ErrNoTable
		s.setState(constants.StateError)
		return nil, errors.ErrNoTable
	}
	if s.criteria.Empty() {
		s.lastErr = errors.ErrMissingCriteria
		s.setState(constants.StateError)
		return nil, errors.ErrMissingCriteria
	}

	s.setState(constants.StateFiltering)
	result, err := filtering.Search(s.table, s.criteria, s.opts.Search)
	if err != nil {
		s.lastErr = err
		s.setState(constants.StateError)
		return nil, err
	}

	s.last = result
	s.lastErr = nil
	s.setState(constants.StateDone)
	return result, nil
}

// Run records c and searches, as one user action.
//
// Both steps happen under one lock, so a concurrent upload or criteria
// change cannot land between them. The result's Table and Mode are the ones
// the search actually used.
func (s *Session) Run(c filtering.Criteria) (*filtering.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = c
	s.setState(constants.StateCriteriaEntered)
	return s.searchLocked()
}

// Reset clears criteria and the last result, keeping the table.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = filtering.Criteria{}
	s.last = nil
	s.lastErr = nil
	s.setState(constants.StateIdle)
}

// State returns the current state name.
func (s *Session) State() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Table returns the loaded table, or nil.
func (s *Session) Table() *table.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table
}

// Key returns the identity of the loaded upload.
func (s *Session) Key() UploadKey {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

// Criteria returns the criteria recorded by SetCriteria.
func (s *Session) Criteria() filtering.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// LastResult returns the result of the last successful search, or nil.
func (s *Session) LastResult() *filtering.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// LastError returns the error of the last load or search, or nil.
func (s *Session) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// MatchMode returns the matcher mode used by Search.
func (s *Session) MatchMode() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.opts.Search.MatchMode == "" {
		return constants.MatchModeToken
	}
	return s.opts.Search.MatchMode
}
