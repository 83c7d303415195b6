package entities

// LexemeSearchResult is one hit of a lexeme search, in server relevance order.
type LexemeSearchResult struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Lexeme is the language-independent part of a detail payload.
type Lexeme struct {
	ID                   string  `json:"id"`
	Image                *string `json:"image,omitempty"`
	LexicalCategoryID    string  `json:"lexicalCategoryId"`
	LexicalCategoryLabel string  `json:"lexicalCategoryLabel"`
}

// Gloss is a single language's rendering of a sense.
type Gloss struct {
	FormID   string  `json:"formId"`
	Value    *string `json:"value,omitempty"`
	Language string  `json:"language"`
	Audio    *string `json:"audio,omitempty"`
}

// GlossWithSense ties a gloss to the sense it renders.
type GlossWithSense struct {
	SenseID string `json:"senseId"`
	Gloss   Gloss  `json:"gloss"`
}

// LexemeDetailResult is the full detail payload of a lexeme, covering all languages.
type LexemeDetailResult struct {
	Lexeme  Lexeme           `json:"lexeme"`
	Glosses []GlossWithSense `json:"glosses"`
}

// GlossViews holds the glosses of a detail payload split per selected language.
type GlossViews struct {
	Source  []GlossWithSense `json:"source"`
	Target1 []GlossWithSense `json:"target1"`
	Target2 []GlossWithSense `json:"target2"`
}

// View returns the glosses shown on the given tab.
func (v GlossViews) View(tab ActiveTab) []GlossWithSense {
	switch tab {
	case TabTarget1:
		return v.Target1
	case TabTarget2:
		return v.Target2
	default:
		return v.Source
	}
}

// Partition filters the glosses by language code. Glosses in none of the
// three languages are left out; order within each view is preserved.
func (d *LexemeDetailResult) Partition(source, target1, target2 string) GlossViews {
	views := GlossViews{
		Source:  []GlossWithSense{},
		Target1: []GlossWithSense{},
		Target2: []GlossWithSense{},
	}
	if d == nil {
		return views
	}
	for _, g := range d.Glosses {
		switch g.Gloss.Language {
		case source:
			views.Source = append(views.Source, g)
		case target1:
			views.Target1 = append(views.Target1, g)
		case target2:
			views.Target2 = append(views.Target2, g)
		}
	}
	return views
}

// ActiveTab is the detail view currently shown. It is never persisted.
type ActiveTab string

const (
	TabSource  ActiveTab = "source"
	TabTarget1 ActiveTab = "target1"
	TabTarget2 ActiveTab = "target2"
)

// ParseActiveTab validates a tab name; unknown names fall back to TabSource.
func ParseActiveTab(s string) ActiveTab {
	switch ActiveTab(s) {
	case TabTarget1, TabTarget2:
		return ActiveTab(s)
	}
	return TabSource
}

// MissingAudioLexeme is a lexeme form that has no pronunciation recording
// for the requested language.
type MissingAudioLexeme struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	FormID   string `json:"formId"`
	Language string `json:"language"`
}
