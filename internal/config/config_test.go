package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftdesk/draftdesk/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.True(t, cfg.PrettyLogs)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Server.FrontendURL)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	assert.Equal(t, "credentials.json", cfg.OAuth.CredentialsFile)
	assert.Equal(t, "token.json", cfg.OAuth.TokenFile)
	assert.Equal(t, "http://localhost:8000/oauth2callback", cfg.OAuth.RedirectURL)

	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Generator.BaseURL)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.Generator.Model)
	assert.Equal(t, 0.7, cfg.Generator.Temperature)
	assert.Equal(t, int64(500), cfg.Generator.MaxTokens)
	assert.Equal(t, 30*time.Second, cfg.Generator.Timeout)

	assert.Equal(t, int64(10), cfg.Mailbox.MaxUnread)
	assert.Equal(t, 500, cfg.Mailbox.PreviewLength)
	assert.Equal(t, 24*time.Hour, cfg.Drafts.TTL)
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: 9090
  frontendURL: https://mail.example.com
generator:
  model: llama-3.1-8b-instant
  timeout: 5s
drafts:
  ttl: 1h
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "https://mail.example.com", cfg.Server.FrontendURL)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Generator.Model)
	assert.Equal(t, 5*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, time.Hour, cfg.Drafts.TTL)

	// Untouched keys keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Generator.BaseURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
