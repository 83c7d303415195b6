package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	actions AuthActions
}

func NewAuthController(actions AuthActions) *AuthController {
	return &AuthController{actions: actions}
}

// Login handles GET /api/auth/login
// Returns the provider URL; ?redirect=true sends the browser there instead.
func (ac *AuthController) Login(c *gin.Context) {
	redirect, err := ac.actions.Login(c.Request.Context())
	if err != nil {
		respondActionError(c, err)
		return
	}
	if queryBool(c, "redirect") && redirect.RedirectURL != "" {
		c.Redirect(http.StatusFound, redirect.RedirectURL)
		return
	}
	c.JSON(http.StatusOK, redirect)
}

// Callback handles GET /oauth-callback
// The provider redirects here with oauth_verifier and oauth_token.
func (ac *AuthController) Callback(c *gin.Context) {
	session, err := ac.actions.CompleteOAuth(c.Request.Context(), c.Query("oauth_verifier"), c.Query("oauth_token"))
	if err != nil {
		respondActionError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"username":      session.Username,
	})
}

// Logout handles POST /api/auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.actions.Logout(c.Request.Context()); err != nil {
		respondActionError(c, err)
		return
	}
	respondSuccess(c, "signed out")
}
