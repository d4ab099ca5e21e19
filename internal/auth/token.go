// Package auth handles OAuth2 credential management and persistence.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

// ErrAuthRequired indicates no usable credential is available and the
// interactive OAuth flow must be (re)run.
var ErrAuthRequired = errors.New("authorization required")

// Token manages the OAuth2 credential with thread-safe operations.
type Token struct {
	mu          sync.RWMutex
	cfg         *oauth2.Config
	token       *oauth2.Token
	persistPath string
	stateStore  map[string]time.Time
}

// NewToken creates a Token manager, loading the cached credential from disk
// if the file exists.
func NewToken(cfg *oauth2.Config, persistPath string) (*Token, error) {
	t := &Token{
		cfg:         cfg,
		persistPath: persistPath,
		stateStore:  make(map[string]time.Time),
	}
	if persistPath == "" {
		return t, nil
	}

	f, err := os.Open(persistPath)
	defer func() { _ = f.Close() }()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info().Str("path", persistPath).Msg("token file not found, will be created after authorization")

			return t, nil
		}

		return nil, fmt.Errorf("os.Open failed: %w", err)
	}

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, fmt.Errorf("json.NewDecoder.Decode failed: %w", err)
	}
	t.token = token

	return t, nil
}

// AuthURL generates the OAuth2 consent URL with a secure random state.
func (t *Token) AuthURL() (string, error) {
	state, err := t.generateState()
	if err != nil {
		return "", fmt.Errorf("generateState failed: %w", err)
	}

	return t.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (t *Token) generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand.Read failed: %w", err)
	}
	state := base64.URLEncoding.EncodeToString(b)

	t.mu.Lock()
	defer t.mu.Unlock()

	now := time.Now()
	t.stateStore[state] = now.Add(5 * time.Minute)

	for s, exp := range t.stateStore {
		if exp.Before(now) {
			delete(t.stateStore, s)
		}
	}

	return state, nil
}

func (t *Token) validateState(state string) bool {
	if state == "" {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	expiry, exists := t.stateStore[state]
	if !exists {
		return false
	}

	delete(t.stateStore, state)

	return !time.Now().After(expiry)
}

// AuthorizeCode exchanges an authorization code for a credential after
// validating the state parameter, then persists the result.
func (t *Token) AuthorizeCode(ctx context.Context, code string, state string) error {
	if !t.validateState(state) {
		return errors.New("invalid or expired state parameter")
	}

	tok, err := t.cfg.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("cfg.Exchange failed: %w", err)
	}

	t.mu.Lock()
	t.token = tok
	t.mu.Unlock()

	if err := t.Persist(); err != nil {
		return fmt.Errorf("tok.Persist failed: %w", err)
	}

	return nil
}

// Valid returns a usable credential, refreshing and persisting it when
// expired. Without a stored token, or when the refresh fails, the error
// wraps ErrAuthRequired.
func (t *Token) Valid(ctx context.Context) (*oauth2.Token, error) {
	t.mu.RLock()
	tok := t.token
	t.mu.RUnlock()

	if tok == nil {
		return nil, fmt.Errorf("no stored token: %w", ErrAuthRequired)
	}
	if tok.Valid() {
		return tok, nil
	}
	if tok.RefreshToken == "" {
		return nil, fmt.Errorf("token expired without refresh token: %w", ErrAuthRequired)
	}

	refreshed, err := t.cfg.TokenSource(ctx, tok).Token()
	if err != nil {
		return nil, fmt.Errorf("token refresh failed (%v): %w", err, ErrAuthRequired)
	}

	t.mu.Lock()
	t.token = refreshed
	t.mu.Unlock()

	if err := t.Persist(); err != nil {
		return nil, fmt.Errorf("tok.Persist failed: %w", err)
	}

	log.Info().Time("expiry", refreshed.Expiry).Msg("token refreshed")

	return refreshed, nil
}

// Persist saves the credential to disk.
func (t *Token) Persist() error {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.persistPath == "" || t.token == nil {
		return nil
	}

	f, err := os.OpenFile(t.persistPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	defer func() { _ = f.Close() }()
	if err != nil {
		return fmt.Errorf("os.OpenFile failed: %w", err)
	}

	if err := json.NewEncoder(f).Encode(t.token); err != nil {
		return fmt.Errorf("json.NewEncoder.Encode failed: %w", err)
	}

	return nil
}
