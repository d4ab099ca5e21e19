package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/draftdesk/draftdesk/internal/auth"
)

func newTokenEndpoint(t *testing.T, accessToken string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": accessToken,
			"token_type":   "Bearer",
			"expires_in":   3600,
		}))
	}))
}

func newOauthCfg(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8000/oauth2callback",
		Scopes:       []string{"https://www.googleapis.com/auth/gmail.modify"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.example.com/auth",
			TokenURL: tokenURL,
		},
	}
}

func writeTokenFile(t *testing.T, path string, tok *oauth2.Token) {
	t.Helper()

	data, err := json.Marshal(tok)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0600))
}

func readTokenFile(t *testing.T, path string) *oauth2.Token {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	tok := &oauth2.Token{}
	require.NoError(t, json.Unmarshal(data, tok))

	return tok
}

func TestValidWithoutToken(t *testing.T) {
	tok, err := auth.NewToken(newOauthCfg("http://unused"), filepath.Join(t.TempDir(), "token.json"))
	require.NoError(t, err)

	_, err = tok.Valid(context.Background())
	require.ErrorIs(t, err, auth.ErrAuthRequired)
}

func TestValidLoadsPersistedToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	writeTokenFile(t, path, &oauth2.Token{
		AccessToken: "cached-token",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	})

	tok, err := auth.NewToken(newOauthCfg("http://unused"), path)
	require.NoError(t, err)

	got, err := tok.Valid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cached-token", got.AccessToken)
}

func TestValidExpiredWithoutRefreshToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	writeTokenFile(t, path, &oauth2.Token{
		AccessToken: "stale-token",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(-time.Hour),
	})

	tok, err := auth.NewToken(newOauthCfg("http://unused"), path)
	require.NoError(t, err)

	_, err = tok.Valid(context.Background())
	require.ErrorIs(t, err, auth.ErrAuthRequired)
}

func TestValidRefreshesAndPersists(t *testing.T) {
	srv := newTokenEndpoint(t, "fresh-token")
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "token.json")
	writeTokenFile(t, path, &oauth2.Token{
		AccessToken:  "stale-token",
		TokenType:    "Bearer",
		RefreshToken: "refresh-token",
		Expiry:       time.Now().Add(-time.Hour),
	})

	tok, err := auth.NewToken(newOauthCfg(srv.URL), path)
	require.NoError(t, err)

	got, err := tok.Valid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", got.AccessToken)

	persisted := readTokenFile(t, path)
	assert.Equal(t, "fresh-token", persisted.AccessToken)
}

func TestValidRefreshFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "token.json")
	writeTokenFile(t, path, &oauth2.Token{
		AccessToken:  "stale-token",
		TokenType:    "Bearer",
		RefreshToken: "revoked",
		Expiry:       time.Now().Add(-time.Hour),
	})

	tok, err := auth.NewToken(newOauthCfg(srv.URL), path)
	require.NoError(t, err)

	_, err = tok.Valid(context.Background())
	require.ErrorIs(t, err, auth.ErrAuthRequired)
}

func TestAuthorizeCodeFlow(t *testing.T) {
	srv := newTokenEndpoint(t, "exchanged-token")
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "token.json")
	tok, err := auth.NewToken(newOauthCfg(srv.URL), path)
	require.NoError(t, err)

	consentURL, err := tok.AuthURL()
	require.NoError(t, err)

	parsed, err := url.Parse(consentURL)
	require.NoError(t, err)
	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)
	assert.Equal(t, "offline", parsed.Query().Get("access_type"))

	require.NoError(t, tok.AuthorizeCode(context.Background(), "auth-code", state))

	got, err := tok.Valid(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "exchanged-token", got.AccessToken)

	persisted := readTokenFile(t, path)
	assert.Equal(t, "exchanged-token", persisted.AccessToken)

	// State values are single-use.
	err = tok.AuthorizeCode(context.Background(), "auth-code", state)
	require.Error(t, err)
}

func TestAuthorizeCodeRejectsUnknownState(t *testing.T) {
	tok, err := auth.NewToken(newOauthCfg("http://unused"), "")
	require.NoError(t, err)

	err = tok.AuthorizeCode(context.Background(), "auth-code", "never-issued")
	require.Error(t, err)

	err = tok.AuthorizeCode(context.Background(), "auth-code", "")
	require.Error(t, err)
}
