package state

import (
	"sync"

	"github.com/mrlokans/lexiclient/internal/storage"
)

// OnboardingStore remembers whether the onboarding flow was completed.
type OnboardingStore struct {
	mu        sync.RWMutex
	store     storage.Store
	completed bool
}

func NewOnboardingStore(store storage.Store) *OnboardingStore {
	return &OnboardingStore{store: store}
}

func (s *OnboardingStore) Completed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completed
}

func (s *OnboardingStore) SetCompleted(completed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = completed
	persist(s.store, KeyOnboardingCompleted, completed)
}

func (s *OnboardingStore) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var completed bool
	if restore(s.store, KeyOnboardingCompleted, &completed) {
		s.completed = completed
	}
}

func (s *OnboardingStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = false
}
