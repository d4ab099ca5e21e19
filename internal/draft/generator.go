package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// ErrNotConfigured indicates drafting is disabled because no API key was
// provided.
var ErrNotConfigured = errors.New("generator API key not configured")

const replyPrompt = `You are a professional email assistant. Generate a polite, helpful reply to this email.

From: %s
Subject: %s
Body: %s

Generate a professional reply that:
- Addresses the sender's concerns
- Is concise and clear
- Has a friendly but professional tone
- Includes a proper greeting and closing

Reply:`

// GeneratorConfig configures the chat-completion client.
type GeneratorConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int64
	Timeout     time.Duration
}

// Generator drafts reply text through an OpenAI-compatible chat-completion
// endpoint.
type Generator struct {
	client     openai.Client
	cfg        GeneratorConfig
	configured bool
}

// NewGenerator creates a Generator. Retries are disabled so a provider
// failure surfaces immediately instead of stalling the request.
func NewGenerator(cfg GeneratorConfig) *Generator {
	return &Generator{
		client: openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
			option.WithMaxRetries(0),
		),
		cfg:        cfg,
		configured: cfg.APIKey != "",
	}
}

// Configured reports whether an API key is set.
func (g *Generator) Configured() bool {
	return g.configured
}

// Reply generates a draft reply for the given message. Without an API key it
// returns ErrNotConfigured; the caller decides how to degrade.
func (g *Generator) Reply(ctx context.Context, sender, subject, body string) (string, error) {
	if !g.configured {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	prompt := fmt.Sprintf(replyPrompt, sender, subject, body)

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(prompt),
					},
				},
			},
		},
		Model:       shared.ChatModel(g.cfg.Model),
		Temperature: openai.Float(g.cfg.Temperature),
		MaxTokens:   openai.Int(g.cfg.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat.Completions.New failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return completion.Choices[0].Message.Content, nil
}
