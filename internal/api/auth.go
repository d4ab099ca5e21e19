package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

type tokenSvc interface {
	Valid(ctx context.Context) (*oauth2.Token, error)
	AuthURL() (string, error)
	AuthorizeCode(ctx context.Context, code, state string) error
}

type profileSvc interface {
	Profile(ctx context.Context) (string, error)
}

// AuthGroup handles the OAuth status check and the consent callback.
type AuthGroup struct {
	tok         tokenSvc
	mail        profileSvc
	frontendURL string
}

// NewAuthGroup creates and registers the auth routes.
func NewAuthGroup(g *echo.Group, tok tokenSvc, mail profileSvc, frontendURL string) *AuthGroup {
	ag := &AuthGroup{tok: tok, mail: mail, frontendURL: frontendURL}

	g.POST("/authenticate", ag.Authenticate)
	g.GET("/oauth2callback", ag.OAuth2Callback)

	return ag
}

// AuthenticateResponse reports either a working credential or the consent
// URL the user agent must visit.
type AuthenticateResponse struct {
	Status  string `json:"status"`
	Email   string `json:"email,omitempty"`
	AuthURL string `json:"auth_url,omitempty"`
}

// Authenticate reports the credential state. Any failure to use the stored
// token falls through to handing out a fresh consent URL.
func (ag *AuthGroup) Authenticate(c echo.Context) error {
	ctx := c.Request().Context()

	if _, err := ag.tok.Valid(ctx); err == nil {
		email, err := ag.mail.Profile(ctx)
		if err == nil {
			return c.JSON(http.StatusOK, AuthenticateResponse{Status: "authenticated", Email: email})
		}

		log.Warn().Err(err).Msg("profile lookup failed, restarting auth flow")
	}

	authURL, err := ag.tok.AuthURL()
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, AuthenticateResponse{Status: "needs_auth", AuthURL: authURL})
}

// OAuth2Callback completes the consent flow and bounces the user agent back
// to the frontend with the outcome in the query string.
func (ag *AuthGroup) OAuth2Callback(c echo.Context) error {
	code := c.QueryParam("code")
	state := c.QueryParam("state")

	if err := ag.tok.AuthorizeCode(c.Request().Context(), code, state); err != nil {
		log.Warn().Err(err).Msg("authorization code exchange failed")

		// Error detail in the URL is fine at this local-tool boundary.
		return c.Redirect(http.StatusFound,
			ag.frontendURL+"/?auth=error&detail="+url.QueryEscape(err.Error()))
	}

	return c.Redirect(http.StatusFound, ag.frontendURL+"/?auth=success")
}
