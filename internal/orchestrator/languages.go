package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mrlokans/lexiclient/internal/entities"
)

// maxLabelDistance bounds how far a typed name may be from a catalog label.
const maxLabelDistance = 2

// LoadLanguages fetches the language catalog. The catalog is fetched once
// per session; later calls return the cached copy unless force is set.
func (o *Orchestrator) LoadLanguages(ctx context.Context, force bool) ([]entities.Language, error) {
	languages := o.stores.Languages
	if !force && o.catalogLoaded.Load() {
		return languages.Languages(), nil
	}

	languages.BeginRequest()
	defer languages.SetLoading(false)

	catalog, err := o.api.GetLanguages(ctx)
	if err != nil {
		return nil, o.fail(ActionLoadLanguages, languages, err)
	}

	languages.SetLanguages(catalog)
	o.catalogLoaded.Store(true)
	return languages.Languages(), nil
}

// FindLanguage resolves a code or label against the cached catalog. Exact
// matches (case-insensitive) win; otherwise the closest label within a small
// edit distance is used.
func (o *Orchestrator) FindLanguage(query string) (*entities.Language, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, ErrUnknownLanguage
	}

	catalog := o.stores.Languages.Languages()
	for i := range catalog {
		if strings.ToLower(catalog[i].Code) == query || strings.ToLower(catalog[i].Label) == query {
			return &catalog[i], nil
		}
	}

	best, bestDistance := -1, maxLabelDistance+1
	for i := range catalog {
		d := levenshtein.ComputeDistance(query, strings.ToLower(catalog[i].Label))
		if d < bestDistance {
			best, bestDistance = i, d
		}
	}
	if best < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLanguage, query)
	}
	return &catalog[best], nil
}

// SelectLanguage fills a slot with the language matching query; an empty
// query clears the slot. When the selection completes the language triple
// and a lexeme is open, its details are refreshed for the new languages.
// The selection is kept even if that refresh fails.
func (o *Orchestrator) SelectLanguage(ctx context.Context, slot entities.LanguageSlot, query string) (*entities.Language, error) {
	if _, ok := entities.ParseLanguageSlot(string(slot)); !ok {
		return nil, fmt.Errorf("unknown language slot %q", slot)
	}

	if strings.TrimSpace(query) == "" {
		o.stores.Languages.SetLanguage(slot, nil)
		return nil, nil
	}

	language, err := o.FindLanguage(query)
	if err != nil {
		return nil, err
	}
	o.stores.Languages.SetLanguage(slot, language)

	if o.stores.Languages.Selected().TranslationEnabled() && o.stores.Lexemes.Clicked() != nil {
		if _, err := o.FetchDetails(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
			return language, err
		}
	}
	return language, nil
}
