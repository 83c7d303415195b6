package orchestrator

import (
	"context"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/lexapi"
)

// API is the remote lexeme service as the orchestrator uses it.
// *lexapi.Client satisfies it; tests use a fake.
type API interface {
	GetLanguages(ctx context.Context) ([]entities.Language, error)
	SearchLexemes(ctx context.Context, req lexapi.SearchRequest) ([]entities.LexemeSearchResult, error)
	GetLexemeDetails(ctx context.Context, req lexapi.DetailRequest) (*entities.LexemeDetailResult, error)
	AddLabeledTranslation(ctx context.Context, token string, entries []entities.LabeledTranslation) error
	AddAudioTranslation(ctx context.Context, token string, entries []entities.AudioTranslation) error
	Login(ctx context.Context) (*entities.LoginRedirect, error)
	OAuthCallback(ctx context.Context, verifier, token string) (*entities.AuthSession, error)
	Logout(ctx context.Context, token string) error
	GetLexemeMissingAudio(ctx context.Context, token, lang string) ([]entities.MissingAudioLexeme, error)
}

// statusSink is the loading/error half of a state container.
type statusSink interface {
	BeginRequest()
	SetLoading(loading bool)
	SetError(message string)
}
