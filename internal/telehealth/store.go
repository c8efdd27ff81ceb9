package telehealth

import (
	"errors"
	"sync"

	"github.com/pinkycollie/DEAF-FIRST-PLATFORM/internal/gesture"
)

// ErrSessionNotFound is returned when a session id is unknown.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore abstracts session and challenge persistence. A challenge is
// associated 1:1 with a session while pending. Implementations must be safe
// for concurrent use; per-session serialization is the Manager's job.
type SessionStore interface {
	// Get returns the stored session or ErrSessionNotFound.
	Get(sessionID string) (*Session, error)

	// Save creates or replaces a session.
	Save(s *Session) error

	// Delete removes a session and its challenge, reporting whether the
	// session existed.
	Delete(sessionID string) bool

	// List returns all stored sessions.
	List() []*Session

	// Challenge returns the pending challenge for a session, if any.
	Challenge(sessionID string) (gesture.Challenge, bool)

	// SetChallenge attaches a challenge, replacing any existing one.
	SetChallenge(sessionID string, c gesture.Challenge)

	// DeleteChallenge removes the pending challenge, if any.
	DeleteChallenge(sessionID string)
}

// MemorySessionStore is the in-memory SessionStore.
type MemorySessionStore struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	challenges map[string]gesture.Challenge
}

// NewMemorySessionStore creates an empty in-memory store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions:   make(map[string]*Session),
		challenges: make(map[string]gesture.Challenge),
	}
}

// Get returns a copy of the stored session.
func (s *MemorySessionStore) Get(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess.Clone(), nil
}

// Save stores a copy of the session.
func (s *MemorySessionStore) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sess.SessionID] = sess.Clone()
	return nil
}

// Delete removes the session and any pending challenge.
func (s *MemorySessionStore) Delete(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	delete(s.challenges, sessionID)
	return ok
}

// List returns copies of all stored sessions.
func (s *MemorySessionStore) List() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess.Clone())
	}
	return out
}

// Challenge returns the pending challenge for the session.
func (s *MemorySessionStore) Challenge(sessionID string) (gesture.Challenge, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.challenges[sessionID]
	return c, ok
}

// SetChallenge attaches a challenge, replacing any existing one.
func (s *MemorySessionStore) SetChallenge(sessionID string, c gesture.Challenge) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.challenges[sessionID] = c
}

// DeleteChallenge removes the pending challenge.
func (s *MemorySessionStore) DeleteChallenge(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.challenges, sessionID)
}
