// Package orchestrator sequences every user action against the remote API:
// it reads current container state, validates locally, calls the API and
// writes the outcome (or a normalised error) back into the owning container.
package orchestrator

import (
	"fmt"
	"time"

	"go.uber.org/atomic"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/lexapi"
	"github.com/mrlokans/lexiclient/internal/notify"
	"github.com/mrlokans/lexiclient/internal/state"
)

// Action names used in notifications.
const (
	ActionLoadLanguages   = "load languages"
	ActionSearch          = "search"
	ActionFetchDetails    = "lexeme details"
	ActionLogin           = "login"
	ActionCompleteLogin   = "complete login"
	ActionLogout          = "logout"
	ActionAddTranslation  = "add translation"
	ActionAddAudio        = "add audio"
	ActionMissingAudio    = "missing audio"
	sessionExpiredMessage = "Your session has expired, please sign in again"
)

// Stores groups the state containers the orchestrator drives.
type Stores struct {
	Languages  *state.LanguageStore
	Lexemes    *state.LexemeStore
	Auth       *state.AuthStore
	Onboarding *state.OnboardingStore
}

type Orchestrator struct {
	api      API
	stores   Stores
	notifier notify.Notifier

	searches      *gate
	details       *gate
	catalogLoaded *atomic.Bool
}

func New(api API, stores Stores, notifier notify.Notifier) *Orchestrator {
	if notifier == nil {
		notifier = notify.Log{}
	}
	return &Orchestrator{
		api:           api,
		stores:        stores,
		notifier:      notifier,
		searches:      newGate(),
		details:       newGate(),
		catalogLoaded: atomic.NewBool(false),
	}
}

// Stores returns the containers, for presentation code that renders them.
func (o *Orchestrator) Stores() Stores {
	return o.stores
}

// Hydrate restores every container from storage. It never fails.
func (o *Orchestrator) Hydrate() {
	o.stores.Languages.Hydrate()
	o.stores.Lexemes.Hydrate()
	o.stores.Auth.Hydrate()
	o.stores.Onboarding.Hydrate()
}

// ResetAll restores in-memory defaults in every container. Persisted values
// stay, so a later Hydrate brings them back.
func (o *Orchestrator) ResetAll() {
	o.stores.Languages.Reset()
	o.stores.Lexemes.Reset()
	o.stores.Auth.Reset()
	o.stores.Onboarding.Reset()
	o.catalogLoaded.Store(false)
}

// CompleteOnboarding records that the onboarding flow was finished.
func (o *Orchestrator) CompleteOnboarding() {
	o.stores.Onboarding.SetCompleted(true)
}

func (o *Orchestrator) notify(level notify.Level, action, message string) {
	o.notifier.Notify(notify.Notification{
		Level:   level,
		Action:  action,
		Message: message,
		At:      time.Now(),
	})
}

// fail records a failed network call on the owning container, emits the
// single notification for it and wraps the error for the caller.
func (o *Orchestrator) fail(action string, sink statusSink, err error) error {
	apiErr := lexapi.Normalize(err)
	sink.SetError(apiErr.Message)
	o.notify(notify.LevelError, action, apiErr.Message)
	return fmt.Errorf("%s: %w", action, apiErr)
}

// failAuthenticated is fail for calls made with a token: a 401 ends the
// session instead of being reported as an ordinary error.
func (o *Orchestrator) failAuthenticated(action string, sink statusSink, err error) error {
	if !lexapi.IsUnauthorized(err) {
		return o.fail(action, sink, err)
	}
	sink.SetError(sessionExpiredMessage)
	return o.expireSession(action, err)
}

func (o *Orchestrator) expireSession(action string, err error) error {
	o.stores.Auth.Clear()
	o.notify(notify.LevelError, action, sessionExpiredMessage)
	return fmt.Errorf("%s: %w: %w", action, ErrSessionExpired, lexapi.Normalize(err))
}

// requireSession returns the current token or ErrNotAuthenticated with a notice.
func (o *Orchestrator) requireSession(action string) (string, error) {
	token := o.stores.Auth.Token()
	if token == "" {
		o.notify(notify.LevelInfo, action, "Sign in to contribute")
		return "", ErrNotAuthenticated
	}
	return token, nil
}

// LanguageState is the presentation view of the language container.
type LanguageState struct {
	Catalog            []entities.Language        `json:"catalog"`
	Selected           entities.SelectedLanguages `json:"selected"`
	TranslationEnabled bool                       `json:"translation_enabled"`
	Loading            bool                       `json:"loading"`
	Error              string                     `json:"error,omitempty"`
}

// LexemeState is the presentation view of the lexeme container.
type LexemeState struct {
	Query        string                        `json:"query"`
	Results      []entities.LexemeSearchResult `json:"results"`
	Clicked      *entities.LexemeSearchResult  `json:"clicked,omitempty"`
	Detail       *entities.LexemeDetailResult  `json:"detail,omitempty"`
	ActiveTab    entities.ActiveTab            `json:"active_tab"`
	MissingAudio []entities.MissingAudioLexeme `json:"missing_audio,omitempty"`
	Loading      bool                          `json:"loading"`
	Error        string                        `json:"error,omitempty"`
}

// AuthState never carries the token itself.
type AuthState struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	Loading       bool   `json:"loading"`
	Error         string `json:"error,omitempty"`
}

type Snapshot struct {
	Languages           LanguageState `json:"languages"`
	Lexemes             LexemeState   `json:"lexemes"`
	Auth                AuthState     `json:"auth"`
	OnboardingCompleted bool          `json:"onboarding_completed"`
}

// Snapshot reads every container. Each container is read consistently on
// its own; the snapshot as a whole is not atomic.
func (o *Orchestrator) Snapshot() Snapshot {
	languages, lexemes, auth := o.stores.Languages, o.stores.Lexemes, o.stores.Auth
	selected := languages.Selected()
	session := auth.Session()

	return Snapshot{
		Languages: LanguageState{
			Catalog:            languages.Languages(),
			Selected:           selected,
			TranslationEnabled: selected.TranslationEnabled(),
			Loading:            languages.Loading(),
			Error:              languages.LastError(),
		},
		Lexemes: LexemeState{
			Query:        lexemes.Query(),
			Results:      lexemes.Results(),
			Clicked:      lexemes.Clicked(),
			Detail:       lexemes.Detail(),
			ActiveTab:    lexemes.ActiveTab(),
			MissingAudio: lexemes.MissingAudio(),
			Loading:      lexemes.Loading(),
			Error:        lexemes.LastError(),
		},
		Auth: AuthState{
			Authenticated: session.Authenticated(),
			Username:      session.Username,
			Loading:       auth.Loading(),
			Error:         auth.LastError(),
		},
		OnboardingCompleted: o.stores.Onboarding.Completed(),
	}
}
