package entities

// AuthSession holds the credentials issued by the OAuth handshake.
// An empty Token means the user is anonymous.
type AuthSession struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Authenticated reports whether a token is present.
func (s AuthSession) Authenticated() bool {
	return s.Token != ""
}

// LoginRedirect starts the external OAuth handshake.
type LoginRedirect struct {
	RedirectURL string `json:"redirect_url"`
}
