// Package gservice wraps the Gmail API behind mailbox operations.
package gservice

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/draftdesk/draftdesk/internal/auth"
	"github.com/draftdesk/draftdesk/internal/format"
)

const gmailUserID = "me"

// NewGmail creates a Gmail client bound to the credential holder.
func NewGmail(cfg *oauth2.Config, tok *auth.Token) *GMail {
	return &GMail{
		cfg: cfg,
		tok: tok,
	}
}

// GMail performs mailbox operations, building a service per call so every
// request picks up the freshest credential.
type GMail struct {
	cfg *oauth2.Config
	tok *auth.Token
}

// ListUnread returns up to maxResults unread inbox messages.
func (m *GMail) ListUnread(ctx context.Context, maxResults int64) ([]*gmail.Message, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	result, err := svc.Users.Messages.List(gmailUserID).
		LabelIds("INBOX", "UNREAD").
		MaxResults(maxResults).
		Do()
	if err != nil {
		return nil, fmt.Errorf("messages.List failed: %w", err)
	}

	return result.Messages, nil
}

// GetMessage retrieves a message with its full payload.
func (m *GMail) GetMessage(ctx context.Context, msgID string) (*gmail.Message, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return nil, fmt.Errorf("newSvc failed: %w", err)
	}

	msg, err := svc.Users.Messages.Get(gmailUserID, msgID).Format("full").Do()
	if err != nil {
		return nil, fmt.Errorf("messages.Get failed: %w", err)
	}

	return msg, nil
}

// SendReply sends a plain-text reply on the given thread.
func (m *GMail) SendReply(ctx context.Context, to, subject, threadID, body string) error {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return fmt.Errorf("newSvc failed: %w", err)
	}

	msg := &gmail.Message{
		Raw:      format.EncodeReply(to, subject, body),
		ThreadId: threadID,
	}

	if _, err := svc.Users.Messages.Send(gmailUserID, msg).Do(); err != nil {
		return fmt.Errorf("messages.Send failed: %w", err)
	}

	return nil
}

// MarkRead removes the UNREAD label from a message.
func (m *GMail) MarkRead(ctx context.Context, msgID string) error {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return fmt.Errorf("newSvc failed: %w", err)
	}

	req := &gmail.ModifyMessageRequest{RemoveLabelIds: []string{"UNREAD"}}
	if _, err := svc.Users.Messages.Modify(gmailUserID, msgID, req).Do(); err != nil {
		return fmt.Errorf("messages.Modify failed: %w", err)
	}

	return nil
}

// Profile returns the authenticated account's email address.
func (m *GMail) Profile(ctx context.Context) (string, error) {
	svc, err := m.newSvc(ctx)
	if err != nil {
		return "", fmt.Errorf("newSvc failed: %w", err)
	}

	profile, err := svc.Users.GetProfile(gmailUserID).Do()
	if err != nil {
		return "", fmt.Errorf("users.GetProfile failed: %w", err)
	}

	return profile.EmailAddress, nil
}

func (m *GMail) newSvc(ctx context.Context) (*gmail.Service, error) {
	t, err := m.tok.Valid(ctx)
	if err != nil {
		return nil, fmt.Errorf("tok.Valid failed: %w", err)
	}

	clt := m.cfg.Client(ctx, t)

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(clt))
	if err != nil {
		return nil, fmt.Errorf("gmail.NewService failed: %w", err)
	}

	return svc, nil
}
