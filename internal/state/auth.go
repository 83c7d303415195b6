package state

import (
	"sync"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/storage"
)

// AuthStore owns the session token and username.
type AuthStore struct {
	status

	mu       sync.RWMutex
	store    storage.Store
	token    string
	username string
}

func NewAuthStore(store storage.Store) *AuthStore {
	return &AuthStore{store: store}
}

func (s *AuthStore) Session() entities.AuthSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entities.AuthSession{Token: s.token, Username: s.username}
}

// Token returns the current token, empty when anonymous.
func (s *AuthStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetSession installs new credentials and persists both keys.
func (s *AuthStore) SetSession(session entities.AuthSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = session.Token
	s.username = session.Username
	persist(s.store, KeyAuthToken, s.token)
	persist(s.store, KeyAuthUsername, s.username)
}

// Clear drops the credentials from memory and storage.
func (s *AuthStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.username = ""
	forget(s.store, KeyAuthToken)
	forget(s.store, KeyAuthUsername)
}

func (s *AuthStore) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var token, username string
	if restore(s.store, KeyAuthToken, &token) {
		s.token = token
	}
	if restore(s.store, KeyAuthUsername, &username) {
		s.username = username
	}
}

// Reset restores in-memory defaults. Persisted copies are left in place.
func (s *AuthStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.username = ""
	s.resetStatus()
}
