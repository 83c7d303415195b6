// Package lexapi is the client for the remote lexeme/translation API. It is
// the only place that talks HTTP to the service and it reports every failure
// as an *APIError.
package lexapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/lexiclient/internal/entities"
)

const (
	// AccessTokenHeader carries the session token on authenticated calls.
	AccessTokenHeader = "X-Access-Token"
	requestIDHeader   = "X-Request-ID"

	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 3
	initialRetryDelay  = 1 * time.Second
	maxRetryDelay      = 30 * time.Second
	retryBackoffFactor = 2
	maxErrorBodyBytes  = 4096
)

// Options tunes the HTTP behaviour of a Client.
type Options struct {
	// Timeout bounds a single request. Default: 30s
	Timeout time.Duration

	// MaxRetries is how many times a failed idempotent GET is repeated after
	// the first attempt. Zero disables retries; negative uses the default (3).
	MaxRetries int

	// RetryDelay is the first backoff delay, doubled per attempt. Default: 1s
	RetryDelay time.Duration

	// HTTPClient overrides the underlying client (tests).
	HTTPClient *http.Client
}

// Client interfaces with the lexeme API
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	retryDelay time.Duration
}

// NewClient creates a new API client for baseURL.
func NewClient(baseURL string, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = initialRetryDelay
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
	}
}

// SearchRequest is the body of a lexeme search.
type SearchRequest struct {
	Search  string
	SrcLang string
	IsMatch bool
}

// DetailRequest asks for one lexeme's glosses in three languages.
type DetailRequest struct {
	ID      string `json:"id"`
	SrcLang string `json:"src_lang"`
	Lang1   string `json:"lang_1"`
	Lang2   string `json:"lang_2"`
}

type searchBody struct {
	Search  string `json:"search"`
	SrcLang string `json:"src_lang"`
	IsMatch int    `json:"ismatch"`
}

type missingAudioBody struct {
	Lang string `json:"lang"`
}

// GetLanguages fetches the full language catalog.
func (c *Client) GetLanguages(ctx context.Context) ([]entities.Language, error) {
	var languages []entities.Language
	if err := c.getWithRetry(ctx, "/languages", &languages); err != nil {
		return nil, err
	}
	return languages, nil
}

// SearchLexemes returns matches in the server's relevance order.
func (c *Client) SearchLexemes(ctx context.Context, req SearchRequest) ([]entities.LexemeSearchResult, error) {
	body := searchBody{Search: req.Search, SrcLang: req.SrcLang}
	if req.IsMatch {
		body.IsMatch = 1
	}

	var results []entities.LexemeSearchResult
	if err := c.do(ctx, http.MethodPost, "/lexemes", "", body, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// GetLexemeDetails fetches the lexeme and its glosses in all languages.
func (c *Client) GetLexemeDetails(ctx context.Context, req DetailRequest) (*entities.LexemeDetailResult, error) {
	path := "/lexemes/" + url.PathEscape(req.ID) + "/translations"

	var detail entities.LexemeDetailResult
	if err := c.do(ctx, http.MethodPost, path, "", req, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// AddLabeledTranslation submits new glosses. Requires a session token.
func (c *Client) AddLabeledTranslation(ctx context.Context, token string, entries []entities.LabeledTranslation) error {
	return c.do(ctx, http.MethodPost, "/lexemes/translations/add", token, entries, nil)
}

// AddAudioTranslation uploads pronunciation recordings. Requires a session token.
func (c *Client) AddAudioTranslation(ctx context.Context, token string, entries []entities.AudioTranslation) error {
	return c.do(ctx, http.MethodPost, "/lexeme/audio/add", token, entries, nil)
}

// Login starts the OAuth handshake and returns where to send the user.
func (c *Client) Login(ctx context.Context) (*entities.LoginRedirect, error) {
	var redirect entities.LoginRedirect
	if err := c.getWithRetry(ctx, "/auth/login", &redirect); err != nil {
		return nil, err
	}
	return &redirect, nil
}

// OAuthCallback finalises the handshake and returns the issued session.
func (c *Client) OAuthCallback(ctx context.Context, verifier, token string) (*entities.AuthSession, error) {
	q := url.Values{}
	q.Set("oauth_verifier", verifier)
	q.Set("oauth_token", token)

	var session entities.AuthSession
	if err := c.do(ctx, http.MethodGet, "/oauth-callback?"+q.Encode(), "", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Logout invalidates the server-side session for token.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodGet, "/auth/logout", token, nil, nil)
}

// GetLexemeMissingAudio lists lexemes lacking audio for lang.
func (c *Client) GetLexemeMissingAudio(ctx context.Context, token, lang string) ([]entities.MissingAudioLexeme, error) {
	var lexemes []entities.MissingAudioLexeme
	if err := c.do(ctx, http.MethodPost, "/lexemes/missing/audio", token, missingAudioBody{Lang: lang}, &lexemes); err != nil {
		return nil, err
	}
	return lexemes, nil
}

func (c *Client) getWithRetry(ctx context.Context, path string, out any) error {
	var lastErr *APIError

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return transportError(ctx.Err())
			case <-time.After(c.calculateRetryDelay(attempt)):
			}
		}

		err := c.do(ctx, http.MethodGet, path, "", nil, out)
		if err == nil {
			return nil
		}
		lastErr = Normalize(err)

		// Only retry on rate limits or server errors
		if !isRetryable(lastErr) {
			return lastErr
		}
	}

	return lastErr
}

func (c *Client) calculateRetryDelay(attempt int) time.Duration {
	delay := c.retryDelay
	for i := 1; i < attempt; i++ {
		delay *= time.Duration(retryBackoffFactor)
	}
	if delay > maxRetryDelay {
		delay = maxRetryDelay
	}
	return delay
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	requestID := uuid.NewString()

	err := c.send(ctx, method, path, token, requestID, body, out)
	if err != nil {
		log.Printf("[API] %s %s failed (request %s): %v", method, strings.SplitN(path, "?", 2)[0], requestID, err)
		return err
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path, token, requestID string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: KindUnknown, Message: fmt.Sprintf("failed to encode request: %v", err), Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Kind: KindUnknown, Message: fmt.Sprintf("failed to create request: %v", err), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(AccessTokenHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return httpError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: KindUnknown, Message: fmt.Sprintf("failed to decode response: %v", err), Status: 0, Err: err}
	}
	return nil
}

type serverMessage struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func httpError(resp *http.Response) *APIError {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))

	message := ""
	var parsed serverMessage
	if json.Unmarshal(raw, &parsed) == nil {
		message = parsed.Message
		if message == "" {
			message = parsed.Error
		}
	}
	if message == "" {
		message = strings.TrimSpace(string(raw))
	}
	if message == "" || strings.HasPrefix(message, "<") {
		message = http.StatusText(resp.StatusCode)
	}

	return &APIError{Kind: KindHTTP, Message: message, Status: resp.StatusCode}
}
