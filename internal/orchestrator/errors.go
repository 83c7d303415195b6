package orchestrator

import "errors"

var (
	// ErrLanguagesRequired is returned when an action needs all three languages selected.
	ErrLanguagesRequired = errors.New("source and both target languages must be selected")

	ErrNoLexemeSelected = errors.New("no lexeme selected")

	// ErrNotAuthenticated is returned by contribution actions when nobody is signed in.
	ErrNotAuthenticated = errors.New("sign in required")

	ErrUnknownLanguage = errors.New("unknown language")

	// ErrSessionExpired wraps a 401 from an authenticated call. The stored
	// credentials are already cleared when it is returned.
	ErrSessionExpired = errors.New("session expired")

	// ErrSuperseded means a newer request of the same kind was issued while
	// this one was in flight; its response was discarded.
	ErrSuperseded = errors.New("superseded by a newer request")

	ErrEmptyContribution = errors.New("nothing to submit")

	ErrInvalidCallback = errors.New("oauth verifier and token are required")
)
