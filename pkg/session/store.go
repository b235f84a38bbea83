package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/ajxudir/skillsearch/pkg/verbose"
)

// Store keeps one Session per upload, addressed by a random ID.
//
// When the store is full, creating a session evicts the least recently used
// one. Store is safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	max      int
	opts     Options
	clock    uint64
}

// NewStore creates an empty store.
//
// Parameters:
//   - max: Maximum number of live sessions; values below 1 mean 1
//   - opts: Options for every new session
//
// Returns:
//   - *Store: Empty store
func NewStore(max int, opts Options) *Store {
	if max < 1 {
		max = 1
	}
	return &Store{
		sessions: make(map[string]*Session),
		max:      max,
		opts:     opts,
	}
}

// tick must be called with st.mu held.
func (st *Store) tick(s *Session) {
	st.clock++
	s.seq = st.clock
}

// Create adds a new idle session, evicting the least recently used session
// if the store is full.
//
// Returns:
//   - *Session: New session with a UUID identifier
func (st *Store) Create() *Session {
	s := New(st.opts)
	s.id = uuid.NewString()

	st.mu.Lock()
	defer st.mu.Unlock()

	for len(st.sessions) >= st.max {
		st.evictOldest()
	}
	st.sessions[s.id] = s
	st.tick(s)
	verbose.Printf("Session %s created (%d/%d)\n", s.id, len(st.sessions), st.max)
	return s
}

// evictOldest must be called with st.mu held.
func (st *Store) evictOldest() {
	var (
		oldestID  string
		oldestSeq uint64
	)
	for id, s := range st.sessions {
		if oldestID == "" || s.seq < oldestSeq {
			oldestID, oldestSeq = id, s.seq
		}
	}
	if oldestID != "" {
		delete(st.sessions, oldestID)
		verbose.Printf("Session %s evicted\n", oldestID)
	}
}

// Get returns the session with the given ID and marks it recently used.
//
// Returns:
//   - *Session: The session, or nil
//   - bool: false when no such session exists
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	if ok {
		st.tick(s)
	}
	return s, ok
}

// Delete removes a session.
//
// Returns:
//   - bool: true if the session existed
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
