package orchestrator

import (
	"context"
	"errors"
	"strings"

	"github.com/mrlokans/lexiclient/internal/entities"
)

// Login starts the OAuth handshake and returns where to send the user.
func (o *Orchestrator) Login(ctx context.Context) (*entities.LoginRedirect, error) {
	auth := o.stores.Auth
	auth.BeginRequest()
	defer auth.SetLoading(false)

	redirect, err := o.api.Login(ctx)
	if err != nil {
		return nil, o.fail(ActionLogin, auth, err)
	}
	return redirect, nil
}

// CompleteOAuth exchanges the callback parameters for a session. It is the
// only place credentials enter the auth container.
func (o *Orchestrator) CompleteOAuth(ctx context.Context, verifier, token string) (entities.AuthSession, error) {
	verifier, token = strings.TrimSpace(verifier), strings.TrimSpace(token)
	if verifier == "" || token == "" {
		return entities.AuthSession{}, ErrInvalidCallback
	}

	auth := o.stores.Auth
	auth.BeginRequest()
	defer auth.SetLoading(false)

	session, err := o.api.OAuthCallback(ctx, verifier, token)
	if err == nil && (session == nil || !session.Authenticated()) {
		err = errors.New("the server did not issue an access token")
	}
	if err != nil {
		return entities.AuthSession{}, o.fail(ActionCompleteLogin, auth, err)
	}

	auth.SetSession(*session)
	return *session, nil
}

// Logout ends the session on the server and forgets the credentials. With
// no session it only clears local state. A non-401 failure keeps the session.
func (o *Orchestrator) Logout(ctx context.Context) error {
	auth := o.stores.Auth
	token := auth.Token()
	if token == "" {
		auth.Clear()
		return nil
	}

	auth.BeginRequest()
	defer auth.SetLoading(false)

	if err := o.api.Logout(ctx, token); err != nil {
		return o.failAuthenticated(ActionLogout, auth, err)
	}
	auth.Clear()
	return nil
}
