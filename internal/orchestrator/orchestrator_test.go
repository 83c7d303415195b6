package orchestrator

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/lexapi"
	"github.com/mrlokans/lexiclient/internal/notify"
	"github.com/mrlokans/lexiclient/internal/state"
	"github.com/mrlokans/lexiclient/internal/storage"
)

var catalog = []entities.Language{
	{Code: "en", Label: "English", WikidataID: "Q1860"},
	{Code: "es", Label: "Spanish", WikidataID: "Q1321"},
	{Code: "fr", Label: "French", WikidataID: "Q150"},
	{Code: "de", Label: "German", WikidataID: "Q188"},
}

// fakeAPI records calls and answers from the configured funcs.
type fakeAPI struct {
	mu sync.Mutex

	languagesCalls int
	searches       []lexapi.SearchRequest
	details        []lexapi.DetailRequest
	tokens         []string

	languages    func() ([]entities.Language, error)
	search       func(req lexapi.SearchRequest) ([]entities.LexemeSearchResult, error)
	detail       func(req lexapi.DetailRequest) (*entities.LexemeDetailResult, error)
	addLabeled   func() error
	addAudio     func() error
	login        func() (*entities.LoginRedirect, error)
	callback     func(verifier, token string) (*entities.AuthSession, error)
	logout       func() error
	missingAudio func(lang string) ([]entities.MissingAudioLexeme, error)
}

func (f *fakeAPI) GetLanguages(ctx context.Context) ([]entities.Language, error) {
	f.mu.Lock()
	f.languagesCalls++
	f.mu.Unlock()
	if f.languages == nil {
		return catalog, nil
	}
	return f.languages()
}

func (f *fakeAPI) SearchLexemes(ctx context.Context, req lexapi.SearchRequest) ([]entities.LexemeSearchResult, error) {
	f.mu.Lock()
	f.searches = append(f.searches, req)
	f.mu.Unlock()
	if f.search == nil {
		return []entities.LexemeSearchResult{{ID: "L10", Label: req.Search}}, nil
	}
	return f.search(req)
}

func (f *fakeAPI) GetLexemeDetails(ctx context.Context, req lexapi.DetailRequest) (*entities.LexemeDetailResult, error) {
	f.mu.Lock()
	f.details = append(f.details, req)
	f.mu.Unlock()
	if f.detail == nil {
		return &entities.LexemeDetailResult{Lexeme: entities.Lexeme{ID: req.ID}}, nil
	}
	return f.detail(req)
}

func (f *fakeAPI) AddLabeledTranslation(ctx context.Context, token string, entries []entities.LabeledTranslation) error {
	f.recordToken(token)
	if f.addLabeled == nil {
		return nil
	}
	return f.addLabeled()
}

func (f *fakeAPI) AddAudioTranslation(ctx context.Context, token string, entries []entities.AudioTranslation) error {
	f.recordToken(token)
	if f.addAudio == nil {
		return nil
	}
	return f.addAudio()
}

func (f *fakeAPI) Login(ctx context.Context) (*entities.LoginRedirect, error) {
	if f.login == nil {
		return &entities.LoginRedirect{RedirectURL: "https://auth.example.org/authorize"}, nil
	}
	return f.login()
}

func (f *fakeAPI) OAuthCallback(ctx context.Context, verifier, token string) (*entities.AuthSession, error) {
	if f.callback == nil {
		return &entities.AuthSession{Token: "tok-" + token, Username: "ada"}, nil
	}
	return f.callback(verifier, token)
}

func (f *fakeAPI) Logout(ctx context.Context, token string) error {
	f.recordToken(token)
	if f.logout == nil {
		return nil
	}
	return f.logout()
}

func (f *fakeAPI) GetLexemeMissingAudio(ctx context.Context, token, lang string) ([]entities.MissingAudioLexeme, error) {
	f.recordToken(token)
	if f.missingAudio == nil {
		return []entities.MissingAudioLexeme{{ID: "L1", Language: lang}}, nil
	}
	return f.missingAudio(lang)
}

func (f *fakeAPI) recordToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, token)
}

func (f *fakeAPI) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches)
}

func (f *fakeAPI) detailCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.details)
}

type fixture struct {
	api   *fakeAPI
	store *storage.Memory
	feed  *notify.Feed
	orch  *Orchestrator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := storage.NewMemory()
	return newFixtureWithStore(t, store)
}

func newFixtureWithStore(t *testing.T, store *storage.Memory) *fixture {
	t.Helper()
	api := &fakeAPI{}
	feed := notify.NewFeed(0)
	orch := New(api, Stores{
		Languages:  state.NewLanguageStore(store),
		Lexemes:    state.NewLexemeStore(store),
		Auth:       state.NewAuthStore(store),
		Onboarding: state.NewOnboardingStore(store),
	}, feed)
	return &fixture{api: api, store: store, feed: feed, orch: orch}
}

// selectAll loads the catalog and fills the three slots with en/es/fr.
func (f *fixture) selectAll(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := f.orch.LoadLanguages(ctx, false)
	require.NoError(t, err)
	for slot, code := range map[entities.LanguageSlot]string{
		entities.SlotSource:  "en",
		entities.SlotTarget1: "es",
		entities.SlotTarget2: "fr",
	} {
		_, err := f.orch.SelectLanguage(ctx, slot, code)
		require.NoError(t, err)
	}
}

func httpError(status int) error {
	return &lexapi.APIError{Kind: lexapi.KindHTTP, Status: status, Message: http.StatusText(status)}
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query is a no-op", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)

		results, err := f.orch.Search(ctx, "   ", false)

		assert.NoError(t, err)
		assert.Nil(t, results)
		assert.Equal(t, 0, f.api.searchCount())
		assert.False(t, f.orch.Stores().Lexemes.Loading())
		assert.Empty(t, f.feed.Recent())
	})

	t.Run("missing source language is a no-op", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.orch.Search(ctx, "cat", false)

		assert.NoError(t, err)
		assert.Equal(t, 0, f.api.searchCount())
		assert.False(t, f.orch.Stores().Lexemes.Loading())
	})

	t.Run("results replace the list and persist", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)

		results, err := f.orch.Search(ctx, " cat ", true)
		require.NoError(t, err)

		require.Len(t, f.api.searches, 1)
		assert.Equal(t, lexapi.SearchRequest{Search: "cat", SrcLang: "en", IsMatch: true}, f.api.searches[0])
		assert.Equal(t, results, f.orch.Stores().Lexemes.Results())
		assert.Equal(t, "cat", f.orch.Stores().Lexemes.Query())
		assert.False(t, f.orch.Stores().Lexemes.Loading())

		var persisted []entities.LexemeSearchResult
		ok, err := storage.GetJSON(f.store, state.KeyLexemes, &persisted)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, results, persisted)
	})

	t.Run("failure sets error and notifies once", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)
		f.api.search = func(lexapi.SearchRequest) ([]entities.LexemeSearchResult, error) {
			return nil, &lexapi.APIError{Kind: lexapi.KindTimeout, Message: "the server did not respond in time"}
		}

		_, err := f.orch.Search(ctx, "cat", false)

		var apiErr *lexapi.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, lexapi.KindTimeout, apiErr.Kind)
		assert.Equal(t, "the server did not respond in time", f.orch.Stores().Lexemes.LastError())
		assert.False(t, f.orch.Stores().Lexemes.Loading())

		notes := f.feed.Recent()
		require.Len(t, notes, 1)
		assert.Equal(t, notify.LevelError, notes[0].Level)
		assert.Equal(t, ActionSearch, notes[0].Action)
	})

	t.Run("stale response is discarded", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)

		older := f.orch.PrepareSearch("ca", false)
		newer := f.orch.PrepareSearch("cat", false)

		latest, err := newer(ctx)
		require.NoError(t, err)
		assert.False(t, f.orch.Stores().Lexemes.Loading())

		_, err = older(ctx)
		assert.ErrorIs(t, err, ErrSuperseded)
		assert.Equal(t, latest, f.orch.Stores().Lexemes.Results())
		assert.Equal(t, "cat", f.orch.Stores().Lexemes.Query())
	})

	t.Run("stale failure is silent", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)
		f.api.search = func(req lexapi.SearchRequest) ([]entities.LexemeSearchResult, error) {
			if req.Search == "ca" {
				return nil, httpError(http.StatusInternalServerError)
			}
			return []entities.LexemeSearchResult{{ID: "L7"}}, nil
		}

		older := f.orch.PrepareSearch("ca", false)
		newer := f.orch.PrepareSearch("cat", false)
		_, err := newer(ctx)
		require.NoError(t, err)

		_, err = older(ctx)
		assert.ErrorIs(t, err, ErrSuperseded)
		assert.Empty(t, f.orch.Stores().Lexemes.LastError())
		assert.Empty(t, f.feed.Recent())
	})
}

func TestFetchDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("reads selections at call time", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)
		f.orch.Stores().Lexemes.SetClicked(&entities.LexemeSearchResult{ID: "L10"})

		de := catalog[3]
		f.orch.Stores().Languages.SetLanguage(entities.SlotTarget2, &de)

		_, err := f.orch.FetchDetails(ctx)
		require.NoError(t, err)

		require.Equal(t, 1, f.api.detailCount())
		assert.Equal(t, lexapi.DetailRequest{ID: "L10", SrcLang: "en", Lang1: "es", Lang2: "de"}, f.api.details[0])
	})

	t.Run("requires all languages", func(t *testing.T) {
		f := newFixture(t)
		f.orch.Stores().Lexemes.SetClicked(&entities.LexemeSearchResult{ID: "L10"})

		_, err := f.orch.FetchDetails(ctx)

		assert.ErrorIs(t, err, ErrLanguagesRequired)
		assert.Equal(t, 0, f.api.detailCount())
		assert.False(t, f.orch.Stores().Lexemes.Loading())
		notes := f.feed.Recent()
		require.Len(t, notes, 1)
		assert.Equal(t, notify.LevelInfo, notes[0].Level)
	})

	t.Run("requires a clicked lexeme", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)

		_, err := f.orch.FetchDetails(ctx)

		assert.ErrorIs(t, err, ErrNoLexemeSelected)
		assert.Equal(t, 0, f.api.detailCount())
		assert.False(t, f.orch.Stores().Lexemes.Loading())
		notes := f.feed.Recent()
		require.Len(t, notes, 1)
		assert.Equal(t, notify.LevelInfo, notes[0].Level)
		assert.Equal(t, ActionFetchDetails, notes[0].Action)
	})

	t.Run("failure clears previous detail", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)
		_, err := f.orch.SelectLexeme(ctx, entities.LexemeSearchResult{ID: "L10"})
		require.NoError(t, err)
		require.NotNil(t, f.orch.Stores().Lexemes.Detail())

		f.api.detail = func(lexapi.DetailRequest) (*entities.LexemeDetailResult, error) {
			return nil, httpError(http.StatusBadGateway)
		}
		_, err = f.orch.FetchDetails(ctx)

		require.Error(t, err)
		assert.Nil(t, f.orch.Stores().Lexemes.Detail())
		_, getErr := f.store.Get(state.KeySelectedLexeme)
		assert.ErrorIs(t, getErr, storage.ErrNotFound)
		assert.False(t, f.orch.Stores().Lexemes.Loading())
		assert.Len(t, f.feed.Recent(), 1)
	})

	t.Run("slow older response is discarded", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)
		f.orch.Stores().Lexemes.SetClicked(&entities.LexemeSearchResult{ID: "L1"})

		release := make(chan struct{})
		started := make(chan struct{})
		f.api.detail = func(req lexapi.DetailRequest) (*entities.LexemeDetailResult, error) {
			if req.ID == "L1" {
				close(started)
				<-release
			}
			return &entities.LexemeDetailResult{Lexeme: entities.Lexeme{ID: req.ID}}, nil
		}

		errs := make(chan error, 1)
		go func() {
			_, err := f.orch.FetchDetails(ctx)
			errs <- err
		}()
		<-started

		_, err := f.orch.SelectLexeme(ctx, entities.LexemeSearchResult{ID: "L2"})
		require.NoError(t, err)
		close(release)

		select {
		case err := <-errs:
			assert.ErrorIs(t, err, ErrSuperseded)
		case <-time.After(2 * time.Second):
			t.Fatal("older fetch did not return")
		}
		assert.Equal(t, "L2", f.orch.Stores().Lexemes.Detail().Lexeme.ID)
		assert.False(t, f.orch.Stores().Lexemes.Loading())
	})

	t.Run("open lexeme uses result from list", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)
		_, err := f.orch.Search(ctx, "cat", false)
		require.NoError(t, err)

		_, err = f.orch.OpenLexeme(ctx, "L10")
		require.NoError(t, err)

		clicked := f.orch.Stores().Lexemes.Clicked()
		require.NotNil(t, clicked)
		assert.Equal(t, "cat", clicked.Label)
	})
}

func TestDetailViews(t *testing.T) {
	f := newFixture(t)
	f.selectAll(t)
	f.api.detail = func(req lexapi.DetailRequest) (*entities.LexemeDetailResult, error) {
		return &entities.LexemeDetailResult{
			Lexeme: entities.Lexeme{ID: req.ID},
			Glosses: []entities.GlossWithSense{
				{SenseID: "S1", Gloss: entities.Gloss{Language: "en"}},
				{SenseID: "S1", Gloss: entities.Gloss{Language: "es"}},
				{SenseID: "S1", Gloss: entities.Gloss{Language: "fr"}},
			},
		}, nil
	}
	_, err := f.orch.OpenLexeme(context.Background(), "L10")
	require.NoError(t, err)

	f.orch.SetActiveTab(entities.TabTarget1)
	views, tab := f.orch.DetailViews()

	assert.Equal(t, entities.TabTarget1, tab)
	require.Len(t, views.View(tab), 1)
	assert.Equal(t, "es", views.View(tab)[0].Gloss.Language)
}

func TestLanguages(t *testing.T) {
	ctx := context.Background()

	t.Run("catalog fetched once per session", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.orch.LoadLanguages(ctx, false)
		require.NoError(t, err)
		langs, err := f.orch.LoadLanguages(ctx, false)
		require.NoError(t, err)

		assert.Equal(t, catalog, langs)
		assert.Equal(t, 1, f.api.languagesCalls)

		_, err = f.orch.LoadLanguages(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, 2, f.api.languagesCalls)
	})

	t.Run("failure is reported and retried next time", func(t *testing.T) {
		f := newFixture(t)
		f.api.languages = func() ([]entities.Language, error) {
			return nil, &lexapi.APIError{Kind: lexapi.KindNetworkUnavailable, Message: "network unavailable"}
		}

		_, err := f.orch.LoadLanguages(ctx, false)
		require.Error(t, err)
		assert.Equal(t, "network unavailable", f.orch.Stores().Languages.LastError())

		f.api.languages = nil
		_, err = f.orch.LoadLanguages(ctx, false)
		require.NoError(t, err)
		assert.Empty(t, f.orch.Stores().Languages.LastError())
		assert.Len(t, f.feed.Recent(), 1)
	})

	t.Run("find language", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.orch.LoadLanguages(ctx, false)
		require.NoError(t, err)

		for query, want := range map[string]string{
			"es":      "es",
			"FRENCH":  "fr",
			"Spansh":  "es",
			"germen":  "de",
			" en ":    "en",
			"English": "en",
		} {
			lang, err := f.orch.FindLanguage(query)
			require.NoError(t, err, query)
			assert.Equal(t, want, lang.Code, query)
		}

		_, err = f.orch.FindLanguage("Klingon")
		assert.ErrorIs(t, err, ErrUnknownLanguage)
	})

	t.Run("select persists and clears", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)

		fresh := newFixtureWithStore(t, f.store)
		fresh.orch.Hydrate()
		assert.True(t, fresh.orch.Stores().Languages.Selected().TranslationEnabled())

		_, err := f.orch.SelectLanguage(ctx, entities.SlotTarget2, "")
		require.NoError(t, err)
		assert.False(t, f.orch.Stores().Languages.Selected().TranslationEnabled())

		_, err = f.orch.SelectLanguage(ctx, entities.LanguageSlot("middle"), "en")
		assert.Error(t, err)
	})

	t.Run("completing the triple refreshes an open lexeme", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)
		_, err := f.orch.OpenLexeme(ctx, "L10")
		require.NoError(t, err)
		require.Equal(t, 1, f.api.detailCount())

		_, err = f.orch.SelectLanguage(ctx, entities.SlotTarget2, "de")
		require.NoError(t, err)

		require.Equal(t, 2, f.api.detailCount())
		assert.Equal(t, "de", f.api.details[1].Lang2)
	})
}

func TestContributions(t *testing.T) {
	ctx := context.Background()
	entries := []entities.LabeledTranslation{{LexemeID: "L10", SenseID: "L10-S1", Language: "es", Value: "gato"}}

	t.Run("requires a session", func(t *testing.T) {
		f := newFixture(t)

		err := f.orch.AddLabeledTranslation(ctx, entries)

		assert.ErrorIs(t, err, ErrNotAuthenticated)
		assert.Empty(t, f.api.tokens)
		require.Len(t, f.feed.Recent(), 1)
	})

	t.Run("attaches token", func(t *testing.T) {
		f := newFixture(t)
		f.orch.Stores().Auth.SetSession(entities.AuthSession{Token: "tok", Username: "ada"})

		require.NoError(t, f.orch.AddLabeledTranslation(ctx, entries))
		require.NoError(t, f.orch.AddAudioTranslation(ctx, []entities.AudioTranslation{{LexemeID: "L10"}}))

		assert.Equal(t, []string{"tok", "tok"}, f.api.tokens)
	})

	t.Run("401 ends the session", func(t *testing.T) {
		f := newFixture(t)
		f.orch.Stores().Auth.SetSession(entities.AuthSession{Token: "tok", Username: "ada"})
		f.api.addLabeled = func() error { return httpError(http.StatusUnauthorized) }

		err := f.orch.AddLabeledTranslation(ctx, entries)

		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.ErrorIs(t, err, lexapi.ErrUnauthorized)
		assert.Empty(t, f.orch.Stores().Auth.Token())
		_, getErr := f.store.Get(state.KeyAuthToken)
		assert.ErrorIs(t, getErr, storage.ErrNotFound)
		_, getErr = f.store.Get(state.KeyAuthUsername)
		assert.ErrorIs(t, getErr, storage.ErrNotFound)

		notes := f.feed.Recent()
		require.Len(t, notes, 1)
		assert.Equal(t, sessionExpiredMessage, notes[0].Message)
	})

	t.Run("other failures keep the session", func(t *testing.T) {
		f := newFixture(t)
		f.orch.Stores().Auth.SetSession(entities.AuthSession{Token: "tok"})
		f.api.addAudio = func() error { return httpError(http.StatusBadRequest) }

		err := f.orch.AddAudioTranslation(ctx, []entities.AudioTranslation{{LexemeID: "L10"}})

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrSessionExpired)
		assert.Equal(t, "tok", f.orch.Stores().Auth.Token())
	})

	t.Run("empty contribution", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.orch.AddLabeledTranslation(ctx, nil), ErrEmptyContribution)
	})

	t.Run("refreshes the open lexeme", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)
		f.orch.Stores().Auth.SetSession(entities.AuthSession{Token: "tok"})
		_, err := f.orch.OpenLexeme(ctx, "L10")
		require.NoError(t, err)

		require.NoError(t, f.orch.AddLabeledTranslation(ctx, entries))
		assert.Equal(t, 2, f.api.detailCount())
	})

	t.Run("background submit expires session quietly otherwise", func(t *testing.T) {
		f := newFixture(t)
		f.orch.Stores().Auth.SetSession(entities.AuthSession{Token: "tok"})
		f.api.addLabeled = func() error { return httpError(http.StatusServiceUnavailable) }

		err := f.orch.SubmitLabeledTranslation(ctx, entries)
		require.Error(t, err)
		assert.Empty(t, f.feed.Recent())
		assert.Empty(t, f.orch.Stores().Lexemes.LastError())

		f.api.addLabeled = func() error { return httpError(http.StatusUnauthorized) }
		err = f.orch.SubmitLabeledTranslation(ctx, entries)
		assert.ErrorIs(t, err, ErrSessionExpired)
		assert.Empty(t, f.orch.Stores().Auth.Token())
		assert.Len(t, f.feed.Recent(), 1)

		assert.ErrorIs(t, f.orch.SubmitAudioTranslation(ctx, nil), ErrNotAuthenticated)
	})

	t.Run("missing audio defaults to source language", func(t *testing.T) {
		f := newFixture(t)
		f.selectAll(t)
		f.orch.Stores().Auth.SetSession(entities.AuthSession{Token: "tok"})

		missing, err := f.orch.MissingAudio(ctx, "")
		require.NoError(t, err)

		require.Len(t, missing, 1)
		assert.Equal(t, "en", missing[0].Language)
		assert.Equal(t, missing, f.orch.Stores().Lexemes.MissingAudio())
	})
}

func TestAuth(t *testing.T) {
	ctx := context.Background()

	t.Run("login returns redirect", func(t *testing.T) {
		f := newFixture(t)

		redirect, err := f.orch.Login(ctx)

		require.NoError(t, err)
		assert.Equal(t, "https://auth.example.org/authorize", redirect.RedirectURL)
		assert.False(t, f.orch.Stores().Auth.Loading())
	})

	t.Run("callback stores session", func(t *testing.T) {
		f := newFixture(t)

		session, err := f.orch.CompleteOAuth(ctx, "verifier", "req")
		require.NoError(t, err)
		assert.Equal(t, "tok-req", session.Token)

		fresh := newFixtureWithStore(t, f.store)
		fresh.orch.Hydrate()
		assert.Equal(t, session, fresh.orch.Stores().Auth.Session())
	})

	t.Run("callback validation", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.orch.CompleteOAuth(ctx, "", "req")
		assert.ErrorIs(t, err, ErrInvalidCallback)
	})

	t.Run("callback without token fails", func(t *testing.T) {
		f := newFixture(t)
		f.api.callback = func(string, string) (*entities.AuthSession, error) {
			return &entities.AuthSession{}, nil
		}

		_, err := f.orch.CompleteOAuth(ctx, "v", "t")

		require.Error(t, err)
		assert.False(t, f.orch.Stores().Auth.Session().Authenticated())
		assert.Len(t, f.feed.Recent(), 1)
	})

	t.Run("logout clears session", func(t *testing.T) {
		f := newFixture(t)
		f.orch.Stores().Auth.SetSession(entities.AuthSession{Token: "tok", Username: "ada"})

		require.NoError(t, f.orch.Logout(ctx))

		assert.Equal(t, []string{"tok"}, f.api.tokens)
		assert.Equal(t, 0, f.store.Len())
	})

	t.Run("logout failure keeps session", func(t *testing.T) {
		f := newFixture(t)
		f.orch.Stores().Auth.SetSession(entities.AuthSession{Token: "tok"})
		f.api.logout = func() error { return errors.New("boom") }

		require.Error(t, f.orch.Logout(ctx))
		assert.Equal(t, "tok", f.orch.Stores().Auth.Token())
	})

	t.Run("logout without session", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.orch.Logout(ctx))
		assert.Empty(t, f.api.tokens)
	})
}

func TestSnapshotAndReset(t *testing.T) {
	f := newFixture(t)
	f.selectAll(t)
	f.orch.Stores().Auth.SetSession(entities.AuthSession{Token: "tok", Username: "ada"})
	f.orch.CompleteOnboarding()

	snap := f.orch.Snapshot()
	assert.True(t, snap.Languages.TranslationEnabled)
	assert.True(t, snap.Auth.Authenticated)
	assert.Equal(t, "ada", snap.Auth.Username)
	assert.True(t, snap.OnboardingCompleted)

	f.orch.ResetAll()
	snap = f.orch.Snapshot()
	assert.False(t, snap.Languages.TranslationEnabled)
	assert.False(t, snap.Auth.Authenticated)

	f.orch.Hydrate()
	snap = f.orch.Snapshot()
	assert.True(t, snap.Languages.TranslationEnabled)
	assert.True(t, snap.Auth.Authenticated)
	assert.True(t, snap.OnboardingCompleted)
}
