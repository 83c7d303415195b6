package entities

// Language is one entry of the remote language catalog.
type Language struct {
	Code       string `json:"lang_code"`
	Label      string `json:"lang_label"`
	WikidataID string `json:"lang_wd_id"`
}

// LanguageSlot names one of the three language selections.
type LanguageSlot string

const (
	SlotSource  LanguageSlot = "source"
	SlotTarget1 LanguageSlot = "target1"
	SlotTarget2 LanguageSlot = "target2"
)

// ParseLanguageSlot validates a slot name coming from user input.
func ParseLanguageSlot(s string) (LanguageSlot, bool) {
	switch LanguageSlot(s) {
	case SlotSource, SlotTarget1, SlotTarget2:
		return LanguageSlot(s), true
	}
	return "", false
}

// SelectedLanguages holds the three independent language selections.
// A nil slot means nothing is selected.
type SelectedLanguages struct {
	Source  *Language `json:"source"`
	Target1 *Language `json:"target1"`
	Target2 *Language `json:"target2"`
}

// TranslationEnabled reports whether all three slots are filled.
func (s SelectedLanguages) TranslationEnabled() bool {
	return s.Source != nil && s.Target1 != nil && s.Target2 != nil
}

// Slot returns the language selected for the given slot.
func (s SelectedLanguages) Slot(slot LanguageSlot) *Language {
	switch slot {
	case SlotSource:
		return s.Source
	case SlotTarget1:
		return s.Target1
	case SlotTarget2:
		return s.Target2
	}
	return nil
}
