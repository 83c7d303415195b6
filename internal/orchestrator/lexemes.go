package orchestrator

import (
	"context"
	"strings"

	"github.com/mrlokans/lexiclient/internal/entities"
	"github.com/mrlokans/lexiclient/internal/lexapi"
	"github.com/mrlokans/lexiclient/internal/notify"
)

// SearchFunc runs a prepared search.
type SearchFunc func(ctx context.Context) ([]entities.LexemeSearchResult, error)

// Search looks up lexemes matching query in the selected source language.
// A blank query or a missing source language is a no-op: no call is made,
// nothing is returned and no state changes.
func (o *Orchestrator) Search(ctx context.Context, query string, match bool) ([]entities.LexemeSearchResult, error) {
	return o.PrepareSearch(query, match)(ctx)
}

// PrepareSearch validates the search and reserves its place in the search
// order without calling the network. The returned function performs the
// call; its result is applied only if no later search was prepared in the
// meantime, otherwise it returns ErrSuperseded. A prepared search must be
// run, or the lexeme container stays loading until the next one finishes.
func (o *Orchestrator) PrepareSearch(query string, match bool) SearchFunc {
	query = strings.TrimSpace(query)
	source := o.stores.Languages.Selected().Source
	if query == "" || source == nil {
		return func(context.Context) ([]entities.LexemeSearchResult, error) {
			return nil, nil
		}
	}

	lexemes := o.stores.Lexemes
	seq := o.searches.issue()
	lexemes.BeginRequest()
	req := lexapi.SearchRequest{Search: query, SrcLang: source.Code, IsMatch: match}

	return func(ctx context.Context) ([]entities.LexemeSearchResult, error) {
		results, err := o.api.SearchLexemes(ctx, req)

		var failure error
		applied := o.searches.apply(seq, func() {
			defer lexemes.SetLoading(false)
			if err != nil {
				failure = o.fail(ActionSearch, lexemes, err)
				return
			}
			lexemes.SetResults(query, results)
		})
		if !applied {
			return nil, ErrSuperseded
		}
		if failure != nil {
			return nil, failure
		}
		return results, nil
	}
}

// SelectLexeme records result as the clicked lexeme and fetches its
// details. A result carrying only an id takes its label and description
// from the current search results when it is among them.
func (o *Orchestrator) SelectLexeme(ctx context.Context, result entities.LexemeSearchResult) (*entities.LexemeDetailResult, error) {
	result.ID = strings.TrimSpace(result.ID)
	if result.ID == "" {
		return nil, ErrNoLexemeSelected
	}
	if result.Label == "" {
		for _, r := range o.stores.Lexemes.Results() {
			if r.ID == result.ID {
				result = r
				break
			}
		}
	}
	o.stores.Lexemes.SetClicked(&result)
	return o.FetchDetails(ctx)
}

// OpenLexeme selects a lexeme by id.
func (o *Orchestrator) OpenLexeme(ctx context.Context, id string) (*entities.LexemeDetailResult, error) {
	return o.SelectLexeme(ctx, entities.LexemeSearchResult{ID: id})
}

// FetchDetails loads the detail payload of the clicked lexeme for the three
// selected languages, all read at call time. On failure the previously shown
// detail is dropped from memory and storage.
func (o *Orchestrator) FetchDetails(ctx context.Context) (*entities.LexemeDetailResult, error) {
	lexemes := o.stores.Lexemes
	clicked := lexemes.Clicked()
	if clicked == nil || clicked.ID == "" {
		o.notify(notify.LevelInfo, ActionFetchDetails, "Select a lexeme first")
		return nil, ErrNoLexemeSelected
	}
	selected := o.stores.Languages.Selected()
	if !selected.TranslationEnabled() {
		o.notify(notify.LevelInfo, ActionFetchDetails, "Select a source language and two target languages first")
		return nil, ErrLanguagesRequired
	}

	seq := o.details.issue()
	lexemes.BeginRequest()

	detail, err := o.api.GetLexemeDetails(ctx, lexapi.DetailRequest{
		ID:      clicked.ID,
		SrcLang: selected.Source.Code,
		Lang1:   selected.Target1.Code,
		Lang2:   selected.Target2.Code,
	})

	var failure error
	applied := o.details.apply(seq, func() {
		defer lexemes.SetLoading(false)
		if err != nil {
			lexemes.ClearDetail()
			failure = o.fail(ActionFetchDetails, lexemes, err)
			return
		}
		lexemes.SetDetail(detail)
	})
	if !applied {
		return nil, ErrSuperseded
	}
	if failure != nil {
		return nil, failure
	}
	return lexemes.Detail(), nil
}

// DetailViews splits the shown detail payload per selected language and
// reports which view is active.
func (o *Orchestrator) DetailViews() (entities.GlossViews, entities.ActiveTab) {
	selected := o.stores.Languages.Selected()
	detail := o.stores.Lexemes.Detail()
	views := detail.Partition(code(selected.Source), code(selected.Target1), code(selected.Target2))
	return views, o.stores.Lexemes.ActiveTab()
}

func (o *Orchestrator) SetActiveTab(tab entities.ActiveTab) {
	o.stores.Lexemes.SetActiveTab(tab)
}

func code(l *entities.Language) string {
	if l == nil {
		return ""
	}
	return l.Code
}
