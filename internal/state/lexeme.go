package state

import (
	"slices"
	"sync"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/storage"
)

// LexemeStore owns search results, the clicked lexeme, its detail payload
// and the active detail tab.
type LexemeStore struct {
	status

	mu           sync.RWMutex
	store        storage.Store
	query        string
	results      []entities.LexemeSearchResult
	clicked      *entities.LexemeSearchResult
	detail       *entities.LexemeDetailResult
	activeTab    entities.ActiveTab
	missingAudio []entities.MissingAudioLexeme
}

func NewLexemeStore(store storage.Store) *LexemeStore {
	return &LexemeStore{store: store, activeTab: entities.TabSource}
}

// Query returns the text of the last applied search.
func (s *LexemeStore) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

func (s *LexemeStore) Results() []entities.LexemeSearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.results)
}

// SetResults replaces the search results wholesale and persists them.
func (s *LexemeStore) SetResults(query string, results []entities.LexemeSearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = query
	s.results = slices.Clone(results)
	if s.results == nil {
		s.results = []entities.LexemeSearchResult{}
	}
	persist(s.store, KeyLexemes, s.results)
}

func (s *LexemeStore) Clicked() *entities.LexemeSearchResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.clicked == nil {
		return nil
	}
	c := *s.clicked
	return &c
}

// SetClicked records the selected search result; nil clears it.
func (s *LexemeStore) SetClicked(result *entities.LexemeSearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if result == nil {
		s.clicked = nil
		forget(s.store, KeyClickedLexeme)
		return
	}
	c := *result
	s.clicked = &c
	persist(s.store, KeyClickedLexeme, s.clicked)
}

func (s *LexemeStore) Detail() *entities.LexemeDetailResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.detail == nil {
		return nil
	}
	d := *s.detail
	d.Glosses = slices.Clone(s.detail.Glosses)
	return &d
}

// SetDetail replaces the shown detail payload and persists it.
func (s *LexemeStore) SetDetail(detail *entities.LexemeDetailResult) {
	if detail == nil {
		s.ClearDetail()
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := *detail
	d.Glosses = slices.Clone(detail.Glosses)
	s.detail = &d
	persist(s.store, KeySelectedLexeme, s.detail)
}

// ClearDetail drops the detail payload from memory and storage.
func (s *LexemeStore) ClearDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detail = nil
	forget(s.store, KeySelectedLexeme)
}

func (s *LexemeStore) ActiveTab() entities.ActiveTab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeTab
}

func (s *LexemeStore) SetActiveTab(tab entities.ActiveTab) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeTab = tab
}

func (s *LexemeStore) MissingAudio() []entities.MissingAudioLexeme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.missingAudio)
}

// SetMissingAudio keeps the last missing-audio listing. It is not persisted.
func (s *LexemeStore) SetMissingAudio(lexemes []entities.MissingAudioLexeme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missingAudio = slices.Clone(lexemes)
}

// Hydrate restores results, the clicked lexeme and its detail payload.
func (s *LexemeStore) Hydrate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	var results []entities.LexemeSearchResult
	if restore(s.store, KeyLexemes, &results) {
		s.results = results
	}

	var clicked entities.LexemeSearchResult
	if restore(s.store, KeyClickedLexeme, &clicked) && clicked.ID != "" {
		s.clicked = &clicked
	}

	var detail entities.LexemeDetailResult
	if restore(s.store, KeySelectedLexeme, &detail) && detail.Lexeme.ID != "" {
		s.detail = &detail
	}
}

// Reset restores in-memory defaults. Persisted copies are left in place.
func (s *LexemeStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = ""
	s.results = nil
	s.clicked = nil
	s.detail = nil
	s.activeTab = entities.TabSource
	s.missingAudio = nil
	s.resetStatus()
}
