package orchestrator

import (
	"context"
	"log"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/lexapi"
	"github.com/mrlokans/lexiclient/internal/notify"
)

// AddLabeledTranslation submits glosses on behalf of the signed-in user and
// refreshes the open lexeme when it is one of those changed.
func (o *Orchestrator) AddLabeledTranslation(ctx context.Context, entries []entities.LabeledTranslation) error {
	if len(entries) == 0 {
		return ErrEmptyContribution
	}
	token, err := o.requireSession(ActionAddTranslation)
	if err != nil {
		return err
	}

	lexemes := o.stores.Lexemes
	lexemes.BeginRequest()
	err = o.api.AddLabeledTranslation(ctx, token, entries)
	lexemes.SetLoading(false)
	if err != nil {
		return o.failAuthenticated(ActionAddTranslation, lexemes, err)
	}

	o.notify(notify.LevelInfo, ActionAddTranslation, "Translation added")
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.LexemeID
	}
	o.refreshIfOpen(ctx, ids)
	return nil
}

// AddAudioTranslation uploads pronunciation recordings.
func (o *Orchestrator) AddAudioTranslation(ctx context.Context, entries []entities.AudioTranslation) error {
	if len(entries) == 0 {
		return ErrEmptyContribution
	}
	token, err := o.requireSession(ActionAddAudio)
	if err != nil {
		return err
	}

	lexemes := o.stores.Lexemes
	lexemes.BeginRequest()
	err = o.api.AddAudioTranslation(ctx, token, entries)
	lexemes.SetLoading(false)
	if err != nil {
		return o.failAuthenticated(ActionAddAudio, lexemes, err)
	}

	o.notify(notify.LevelInfo, ActionAddAudio, "Audio added")
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.LexemeID
	}
	o.refreshIfOpen(ctx, ids)
	return nil
}

// SubmitLabeledTranslation is the background form of AddLabeledTranslation
// used by the contribution outbox: it leaves container status alone and
// only notifies when the session expires.
func (o *Orchestrator) SubmitLabeledTranslation(ctx context.Context, entries []entities.LabeledTranslation) error {
	token := o.stores.Auth.Token()
	if token == "" {
		return ErrNotAuthenticated
	}
	if err := o.api.AddLabeledTranslation(ctx, token, entries); err != nil {
		if lexapi.IsUnauthorized(err) {
			return o.expireSession(ActionAddTranslation, err)
		}
		return lexapi.Normalize(err)
	}
	return nil
}

// SubmitAudioTranslation is the background form of AddAudioTranslation.
func (o *Orchestrator) SubmitAudioTranslation(ctx context.Context, entries []entities.AudioTranslation) error {
	token := o.stores.Auth.Token()
	if token == "" {
		return ErrNotAuthenticated
	}
	if err := o.api.AddAudioTranslation(ctx, token, entries); err != nil {
		if lexapi.IsUnauthorized(err) {
			return o.expireSession(ActionAddAudio, err)
		}
		return lexapi.Normalize(err)
	}
	return nil
}

// MissingAudio lists forms in lang that still lack a recording and keeps
// the listing in the lexeme container.
func (o *Orchestrator) MissingAudio(ctx context.Context, lang string) ([]entities.MissingAudioLexeme, error) {
	if lang == "" {
		if source := o.stores.Languages.Selected().Source; source != nil {
			lang = source.Code
		}
	}
	if lang == "" {
		o.notify(notify.LevelInfo, ActionMissingAudio, "Select a language first")
		return nil, ErrLanguagesRequired
	}
	token, err := o.requireSession(ActionMissingAudio)
	if err != nil {
		return nil, err
	}

	lexemes := o.stores.Lexemes
	lexemes.BeginRequest()
	defer lexemes.SetLoading(false)

	missing, err := o.api.GetLexemeMissingAudio(ctx, token, lang)
	if err != nil {
		return nil, o.failAuthenticated(ActionMissingAudio, lexemes, err)
	}
	lexemes.SetMissingAudio(missing)
	return missing, nil
}

func (o *Orchestrator) refreshIfOpen(ctx context.Context, lexemeIDs []string) {
	clicked := o.stores.Lexemes.Clicked()
	if clicked == nil || !o.stores.Languages.Selected().TranslationEnabled() {
		return
	}
	for _, id := range lexemeIDs {
		if id == clicked.ID {
			if _, err := o.FetchDetails(ctx); err != nil {
				log.Printf("[ORCHESTRATOR] Failed to refresh %s after contribution: %v", id, err)
			}
			return
		}
	}
}
