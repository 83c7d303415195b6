// Package state holds the client-side state containers. Each container owns
// one slice of application state, writes through to a storage.Store and can
// be hydrated from it at startup.
//
// Persistence failures are logged and never roll back the in-memory value:
// for the rest of the session memory is authoritative.
package state

import (
	"log"
	"sync"

	"github.com/mrlokans/lexiclient/internal/storage"
)

// status is the loading/error pair every container exposes.
type status struct {
	statusMu sync.RWMutex
	loading  bool
	err      string
}

// Loading reports whether a request for this container is in flight.
func (s *status) Loading() bool {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.loading
}

// LastError returns the last failure message, empty when none.
func (s *status) LastError() string {
	s.statusMu.RLock()
	defer s.statusMu.RUnlock()
	return s.err
}

func (s *status) SetLoading(loading bool) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.loading = loading
}

func (s *status) SetError(message string) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.err = message
}

// BeginRequest marks the container loading and clears the previous error.
func (s *status) BeginRequest() {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.loading = true
	s.err = ""
}

func (s *status) resetStatus() {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.loading = false
	s.err = ""
}

func persist(store storage.Store, key string, v any) {
	if err := storage.SetJSON(store, key, v); err != nil {
		log.Printf("[STATE] Failed to persist %s: %v", key, err)
	}
}

func forget(store storage.Store, key string) {
	if err := store.Remove(key); err != nil {
		log.Printf("[STATE] Failed to remove %s: %v", key, err)
	}
}

// restore decodes key into v. Absent, unreadable and malformed values all
// report false and leave v for the caller to discard.
func restore(store storage.Store, key string, v any) bool {
	ok, err := storage.GetJSON(store, key, v)
	if err != nil {
		log.Printf("[STATE] Ignoring persisted %s: %v", key, err)
		return false
	}
	return ok
}
