package lexapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/lexiclient/internal/entities"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, Options{MaxRetries: 2, RetryDelay: time.Millisecond}), server
}

func TestClient_GetLanguages(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/languages", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(requestIDHeader))
		assert.Empty(t, r.Header.Get(AccessTokenHeader))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lang_code":"en","lang_label":"English","lang_wd_id":"Q1860"}]`))
	})

	languages, err := client.GetLanguages(context.Background())
	require.NoError(t, err)
	require.Len(t, languages, 1)
	assert.Equal(t, entities.Language{Code: "en", Label: "English", WikidataID: "Q1860"}, languages[0])
}

func TestClient_SearchLexemes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/lexemes", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cat", body["search"])
		assert.Equal(t, "en", body["src_lang"])
		assert.Equal(t, float64(1), body["ismatch"])

		w.Write([]byte(`[{"id":"L2","label":"cat","description":"noun"},{"id":"L1","label":"catalog","description":"noun"}]`))
	})

	results, err := client.SearchLexemes(context.Background(), SearchRequest{Search: "cat", SrcLang: "en", IsMatch: true})
	require.NoError(t, err)
	require.Len(t, results, 2)
	// server order is preserved
	assert.Equal(t, "L2", results[0].ID)
	assert.Equal(t, "L1", results[1].ID)
}

func TestClient_GetLexemeDetails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/lexemes/L10/translations", r.URL.Path)

		var body DetailRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, DetailRequest{ID: "L10", SrcLang: "en", Lang1: "es", Lang2: "fr"}, body)

		w.Write([]byte(`{
			"lexeme": {"id": "L10", "lexicalCategoryId": "Q1084", "lexicalCategoryLabel": "noun"},
			"glosses": [
				{"senseId": "L10-S1", "gloss": {"formId": "L10-F1", "value": "cat", "language": "en", "audio": "https://example.org/cat.ogg"}},
				{"senseId": "L10-S1", "gloss": {"formId": "L10-F2", "language": "es"}}
			]
		}`))
	})

	detail, err := client.GetLexemeDetails(context.Background(), DetailRequest{ID: "L10", SrcLang: "en", Lang1: "es", Lang2: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "noun", detail.Lexeme.LexicalCategoryLabel)
	assert.Nil(t, detail.Lexeme.Image)
	require.Len(t, detail.Glosses, 2)
	require.NotNil(t, detail.Glosses[0].Gloss.Value)
	assert.Equal(t, "cat", *detail.Glosses[0].Gloss.Value)
	assert.Nil(t, detail.Glosses[1].Gloss.Value)
	assert.Nil(t, detail.Glosses[1].Gloss.Audio)
}

func TestClient_AuthenticatedCalls(t *testing.T) {
	t.Run("token header is attached", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/lexemes/translations/add", r.URL.Path)
			assert.Equal(t, "tok", r.Header.Get(AccessTokenHeader))

			var entries []entities.LabeledTranslation
			require.NoError(t, json.NewDecoder(r.Body).Decode(&entries))
			assert.Len(t, entries, 1)
			w.WriteHeader(http.StatusOK)
		})

		err := client.AddLabeledTranslation(context.Background(), "tok", []entities.LabeledTranslation{
			{LexemeID: "L10", SenseID: "L10-S1", Language: "es", Value: "gato"},
		})
		assert.NoError(t, err)
	})

	t.Run("401 is distinguishable", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"token expired"}`))
		})

		err := client.AddAudioTranslation(context.Background(), "tok", []entities.AudioTranslation{{LexemeID: "L10"}})
		require.Error(t, err)
		assert.True(t, IsUnauthorized(err))

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, KindHTTP, apiErr.Kind)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
		assert.Equal(t, "token expired", apiErr.Message)
	})

	t.Run("logout sends token", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/auth/logout", r.URL.Path)
			assert.Equal(t, "tok", r.Header.Get(AccessTokenHeader))
		})
		assert.NoError(t, client.Logout(context.Background(), "tok"))
	})
}

func TestClient_OAuth(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"redirect_url":"https://auth.example.org/authorize?x=1"}`))
		case "/oauth-callback":
			assert.Equal(t, "ver", r.URL.Query().Get("oauth_verifier"))
			assert.Equal(t, "req-tok", r.URL.Query().Get("oauth_token"))
			w.Write([]byte(`{"token":"session","username":"ada"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	redirect, err := client.Login(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://auth.example.org/authorize?x=1", redirect.RedirectURL)

	session, err := client.OAuthCallback(context.Background(), "ver", "req-tok")
	require.NoError(t, err)
	assert.Equal(t, entities.AuthSession{Token: "session", Username: "ada"}, *session)
}

func TestClient_GetLexemeMissingAudio(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "fr", body["lang"])
		w.Write([]byte(`[{"id":"L5","label":"chat","formId":"L5-F1","language":"fr"}]`))
	})

	lexemes, err := client.GetLexemeMissingAudio(context.Background(), "", "fr")
	require.NoError(t, err)
	require.Len(t, lexemes, 1)
	assert.Equal(t, "L5-F1", lexemes[0].FormID)
}

func TestClient_Retries(t *testing.T) {
	t.Run("GET retried on server error", func(t *testing.T) {
		var calls int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.Write([]byte(`[]`))
		})

		languages, err := client.GetLanguages(context.Background())
		require.NoError(t, err)
		assert.Empty(t, languages)
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("zero retries makes a single attempt", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, Options{MaxRetries: 0, RetryDelay: time.Millisecond})
		_, err := client.GetLanguages(context.Background())
		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("negative retries uses the default", func(t *testing.T) {
		client := NewClient("http://x", Options{MaxRetries: -1})
		assert.Equal(t, defaultMaxRetries, client.maxRetries)
	})

	t.Run("GET not retried on client error", func(t *testing.T) {
		var calls int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.GetLanguages(context.Background())
		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.Equal(t, "Not Found", Normalize(err).Message)
	})

	t.Run("POST never retried", func(t *testing.T) {
		var calls int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		_, err := client.SearchLexemes(context.Background(), SearchRequest{Search: "cat", SrcLang: "en"})
		require.Error(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		assert.Equal(t, http.StatusServiceUnavailable, Normalize(err).Status)
	})
}

func TestClient_ErrorNormalization(t *testing.T) {
	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client := NewClient(server.URL, Options{Timeout: 20 * time.Millisecond})
		_, err := client.SearchLexemes(context.Background(), SearchRequest{Search: "cat", SrcLang: "en"})
		require.Error(t, err)
		assert.Equal(t, KindTimeout, Normalize(err).Kind)
		assert.Zero(t, Normalize(err).Status)
	})

	t.Run("network unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client := NewClient(url, Options{})
		_, err := client.SearchLexemes(context.Background(), SearchRequest{Search: "cat", SrcLang: "en"})
		require.Error(t, err)
		assert.Equal(t, KindNetworkUnavailable, Normalize(err).Kind)
	})

	t.Run("malformed body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		})
		_, err := client.SearchLexemes(context.Background(), SearchRequest{Search: "cat", SrcLang: "en"})
		require.Error(t, err)
		assert.Equal(t, KindUnknown, Normalize(err).Kind)
	})

	t.Run("server error message from error field", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"src_lang missing"}`))
		})
		_, err := client.SearchLexemes(context.Background(), SearchRequest{Search: "cat"})
		require.Error(t, err)
		assert.Equal(t, "src_lang missing", Normalize(err).Message)
		assert.False(t, IsUnauthorized(err))
	})
}

func TestCalculateRetryDelay(t *testing.T) {
	c := NewClient("http://x", Options{RetryDelay: time.Second})
	assert.Equal(t, time.Second, c.calculateRetryDelay(1))
	assert.Equal(t, 2*time.Second, c.calculateRetryDelay(2))
	assert.Equal(t, 4*time.Second, c.calculateRetryDelay(3))
	assert.Equal(t, maxRetryDelay, c.calculateRetryDelay(10))
}
