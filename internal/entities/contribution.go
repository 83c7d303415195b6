package entities

// LabeledTranslation adds a gloss for a sense in one language.
type LabeledTranslation struct {
	LexemeID string `json:"lexeme_id"`
	SenseID  string `json:"sense_id"`
	Language string `json:"language"`
	Value    string `json:"value"`
}

// AudioTranslation uploads a pronunciation recording for a form.
// Content is the base64-encoded audio file.
type AudioTranslation struct {
	LexemeID string `json:"lexeme_id"`
	FormID   string `json:"form_id"`
	Language string `json:"language"`
	Filename string `json:"filename"`
	Content  string `json:"file_content"`
}
