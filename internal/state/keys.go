package state

// Persisted keys, one per concept.
const (
	KeySourceLanguage      = "selected_source_language"
	KeyTargetLanguage1     = "selected_target_language_1"
	KeyTargetLanguage2     = "selected_target_language_2"
	KeyLanguages           = "languages"
	KeyLexemes             = "lexemes"
	KeyClickedLexeme       = "clicked_lexeme"
	KeySelectedLexeme      = "selected_lexeme"
	KeyAuthToken           = "auth_token"
	KeyAuthUsername        = "auth_username"
	KeyOnboardingCompleted = "onboarding_completed"
)

// CredentialKeys are the keys whose values must be encrypted at rest.
var CredentialKeys = []string{KeyAuthToken, KeyAuthUsername}
