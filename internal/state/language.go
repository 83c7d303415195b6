package state

import (
	"slices"
	"sync"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/storage"
)

var slotKeys = map[entities.LanguageSlot]string{
	entities.SlotSource:  KeySourceLanguage,
	entities.SlotTarget1: KeyTargetLanguage1,
	entities.SlotTarget2: KeyTargetLanguage2,
}

// LanguageStore owns the language catalog and the three selected languages.
type LanguageStore struct {
	status

	mu        sync.RWMutex
	store     storage.Store
	languages []entities.Language
	selected  entities.SelectedLanguages
}

func NewLanguageStore(store storage.Store) *LanguageStore {
	return &LanguageStore{store: store}
}

// Languages returns the cached catalog.
func (s *LanguageStore) Languages() []entities.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.languages)
}

// SetLanguages replaces the catalog and persists it.
func (s *LanguageStore) SetLanguages(languages []entities.Language) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.languages = slices.Clone(languages)
	persist(s.store, KeyLanguages, s.languages)
}

// Selected returns a copy of the current selections.
func (s *LanguageStore) Selected() entities.SelectedLanguages {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entities.SelectedLanguages{
		Source:  copyLanguage(s.selected.Source),
		Target1: copyLanguage(s.selected.Target1),
		Target2: copyLanguage(s.selected.Target2),
	}
}

// SetLanguage fills (or, with nil, empties) one slot. The slot and its
// persisted copy change under the same write lock.
func (s *LanguageStore) SetLanguage(slot entities.LanguageSlot, language *entities.Language) {
	key, ok := slotKeys[slot]
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	language = copyLanguage(language)
	switch slot {
	case entities.SlotSource:
		s.selected.Source = language
	case entities.SlotTarget1:
		s.selected.Target1 = language
	case entities.SlotTarget2:
		s.selected.Target2 = language
	}

	if language == nil {
		forget(s.store, key)
		return
	}
	persist(s.store, key, language)
}

// Hydrate loads the catalog and selections from storage. Missing or
// malformed keys keep their defaults.
func (s *LanguageStore) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var languages []entities.Language
	if restore(s.store, KeyLanguages, &languages) {
		s.languages = languages
	}

	for slot, key := range slotKeys {
		var language entities.Language
		if !restore(s.store, key, &language) || language.Code == "" {
			continue
		}
		switch slot {
		case entities.SlotSource:
			s.selected.Source = &language
		case entities.SlotTarget1:
			s.selected.Target1 = &language
		case entities.SlotTarget2:
			s.selected.Target2 = &language
		}
	}
}

// Reset restores in-memory defaults. Persisted copies are left in place.
func (s *LanguageStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.languages = nil
	s.selected = entities.SelectedLanguages{}
	s.resetStatus()
}

func copyLanguage(l *entities.Language) *entities.Language {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}
