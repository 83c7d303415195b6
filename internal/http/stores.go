package http

import (
	"context"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/notify"
	"github.com/mrlokans/lexiclient/internal/orchestrator"
)

// This file gathers the interfaces the bridge controllers depend on. Each
// controller takes only the slice it uses; Actions combines them and is
// satisfied by *orchestrator.Orchestrator.

// StateReader renders container state.
type StateReader interface {
	Snapshot() orchestrator.Snapshot
}

type LanguageActions interface {
	LoadLanguages(ctx context.Context, force bool) ([]entities.Language, error)
	SelectLanguage(ctx context.Context, slot entities.LanguageSlot, query string) (*entities.Language, error)
}

type LexemeActions interface {
	FetchDetails(ctx context.Context) (*entities.LexemeDetailResult, error)
	DetailViews() (entities.GlossViews, entities.ActiveTab)
	SetActiveTab(tab entities.ActiveTab)
}

type AuthActions interface {
	Login(ctx context.Context) (*entities.LoginRedirect, error)
	CompleteOAuth(ctx context.Context, verifier, token string) (entities.AuthSession, error)
	Logout(ctx context.Context) error
}

type ContributionActions interface {
	AddLabeledTranslation(ctx context.Context, entries []entities.LabeledTranslation) error
	AddAudioTranslation(ctx context.Context, entries []entities.AudioTranslation) error
	MissingAudio(ctx context.Context, lang string) ([]entities.MissingAudioLexeme, error)
}

// Actions combines every orchestrator capability the bridge exposes.
type Actions interface {
	StateReader
	LanguageActions
	LexemeActions
	AuthActions
	ContributionActions
}

// Trigger is the debounced query input (*debounce.Trigger).
type Trigger interface {
	Input(query string)
	SubmitMatch(ctx context.Context, query string, match bool) ([]entities.LexemeSearchResult, error)
	Select(ctx context.Context, result entities.LexemeSearchResult) error
}

type NotificationFeed interface {
	Recent() []notify.Notification
}

// Outbox queues contributions for background submission (*tasks.Outbox).
type Outbox interface {
	QueueTranslations(entries []entities.LabeledTranslation) (string, error)
	QueueAudio(entries []entities.AudioTranslation) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// Pinger is anything the health check can probe.
type Pinger interface {
	Ping() error
}
