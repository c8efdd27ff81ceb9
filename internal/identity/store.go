package identity

import (
	"errors"
	"sync"
)

// ErrProfileNotFound is returned when no profile exists for a user.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore abstracts profile persistence. Implementations must be safe
// for concurrent use; read-modify-write cycles are serialized per user by the
// Matcher, not the store.
type ProfileStore interface {
	// Get returns the stored profile or ErrProfileNotFound.
	Get(userID string) (*Profile, error)

	// Save creates or replaces the profile for its user id.
	Save(p *Profile) error

	// Delete removes the profile, reporting whether one existed.
	Delete(userID string) (bool, error)
}

// MemoryProfileStore is the in-memory ProfileStore used in tests and when no
// database path is configured.
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewMemoryProfileStore creates an empty in-memory store.
func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]*Profile)}
}

// Get returns a deep copy of the stored profile.
func (s *MemoryProfileStore) Get(userID string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return p.Clone(), nil
}

// Save stores a deep copy of the profile.
func (s *MemoryProfileStore) Save(p *Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[p.UserID] = p.Clone()
	return nil
}

// Delete removes the profile if present.
func (s *MemoryProfileStore) Delete(userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.profiles[userID]
	delete(s.profiles, userID)
	return ok, nil
}
