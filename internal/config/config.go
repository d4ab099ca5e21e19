// Package config loads application configuration from built-in defaults
// and an optional YAML file.
package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// Config is the root configuration for draftdesk.
type Config struct {
	PrettyLogs bool            `key:"prettyLogs"`
	Server     ServerConfig    `key:"server"`
	OAuth      OAuthConfig     `key:"oauth"`
	Generator  GeneratorConfig `key:"generator"`
	Mailbox    MailboxConfig   `key:"mailbox"`
	Drafts     DraftsConfig    `key:"drafts"`
}

// ServerConfig configures the HTTP listener and frontend redirect target.
type ServerConfig struct {
	Host            string        `key:"host"`
	Port            int           `key:"port"`
	FrontendURL     string        `key:"frontendURL"`
	AllowedOrigins  []string      `key:"allowedOrigins"`
	ShutdownTimeout time.Duration `key:"shutdownTimeout"`
}

// OAuthConfig locates the Google client secret and the cached token.
type OAuthConfig struct {
	CredentialsFile string `key:"credentialsFile"`
	TokenFile       string `key:"tokenFile"`
	RedirectURL     string `key:"redirectURL"`
}

// GeneratorConfig configures the chat-completion service used for drafting.
// The API key is taken from the GROQ_API_KEY environment variable, not from
// the config file.
type GeneratorConfig struct {
	BaseURL     string        `key:"baseURL"`
	Model       string        `key:"model"`
	Temperature float64       `key:"temperature"`
	MaxTokens   int64         `key:"maxTokens"`
	Timeout     time.Duration `key:"timeout"`
}

// MailboxConfig bounds how much mail is pulled per request.
type MailboxConfig struct {
	MaxUnread     int64 `key:"maxUnread"`
	PreviewLength int   `key:"previewLength"`
}

// DraftsConfig configures the in-memory draft store.
type DraftsConfig struct {
	TTL time.Duration `key:"ttl"`
}

var defaultConfig = []byte(`
prettyLogs: true
server:
  host: 0.0.0.0
  port: 8000
  frontendURL: http://localhost:3000
  allowedOrigins:
    - "*"
  shutdownTimeout: 10s
oauth:
  credentialsFile: credentials.json
  tokenFile: token.json
  redirectURL: http://localhost:8000/oauth2callback
generator:
  baseURL: https://api.groq.com/openai/v1
  model: llama-3.3-70b-versatile
  temperature: 0.7
  maxTokens: 500
  timeout: 30s
mailbox:
  maxUnread: 10
  previewLength: 500
drafts:
  ttl: 24h
`)

// Load reads the defaults and overlays the YAML file at path when given.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), yaml.Parser()); err != nil {
		return Config{}, fmt.Errorf("load defaults failed: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load %s failed: %w", path, err)
		}
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "key"}); err != nil {
		return Config{}, fmt.Errorf("unmarshal config failed: %w", err)
	}

	return cfg, nil
}
