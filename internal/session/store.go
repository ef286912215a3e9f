// Package session holds the process-wide state of the authenticated user.
package session

import (
	"sync"

	"github.com/kwachira/walletctl/internal/model"
)

// Store caches the authenticated user's profile for the life of the
// process. It starts empty, is populated by the first successful profile
// fetch, and is cleared on logout. Consumers read the cached profile instead
// of re-fetching while it is populated.
//
// The store is injected explicitly rather than living as a package global;
// only the login/logout flows and the profile-fetch success path mutate it.
type Store struct {
	profile *model.UserProfile
	mu      sync.RWMutex
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{}
}

// Profile returns the cached profile, if one is populated.
func (s *Store) Profile() (model.UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile == nil {
		return model.UserProfile{}, false
	}
	return *s.profile, true
}

// SetProfile overwrites the cached profile.
func (s *Store) SetProfile(profile model.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = &profile
}

// Clear empties the store. Called on logout.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = nil
}
