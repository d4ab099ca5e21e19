package tool

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/draftdesk/draftdesk/internal/workflow"
)

// ListUnreadRequest has no parameters; the mailbox bound is server-side.
type ListUnreadRequest struct{}

// EmailDraft is one unread email with its reply draft.
type EmailDraft struct {
	ID      string `json:"id" jsonschema:"message ID"`
	Sender  string `json:"sender" jsonschema:"sender address from the From header"`
	Subject string `json:"subject" jsonschema:"email subject"`
	Body    string `json:"body" jsonschema:"plain-text body preview"`
	Reply   string `json:"reply" jsonschema:"drafted reply text"`
	Status  string `json:"status" jsonschema:"draft status"`
}

// ListUnreadResponse contains unread emails with their drafts.
type ListUnreadResponse struct {
	Emails []EmailDraft `json:"emails" jsonschema:"unread emails with drafts"`
	Total  int          `json:"total" jsonschema:"number of emails returned"`
}

type listUnreadSvc interface {
	ListUnreadWithDrafts(ctx context.Context) ([]workflow.Email, error)
}

// NewListUnread creates the list_unread_emails tool.
func NewListUnread(svc listUnreadSvc) *ListUnread {
	return &ListUnread{svc: svc}
}

// ListUnread lists unread emails paired with reply drafts.
type ListUnread struct {
	svc listUnreadSvc
}

// ListUnread fetches the unread mailbox slice and drafts replies.
func (t *ListUnread) ListUnread(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListUnreadRequest,
) (*mcp.CallToolResult, ListUnreadResponse, error) {
	emails, err := t.svc.ListUnreadWithDrafts(ctx)
	if err != nil {
		return nil, ListUnreadResponse{}, fmt.Errorf("svc.ListUnreadWithDrafts failed: %w", err)
	}

	out := make([]EmailDraft, 0, len(emails))
	for _, e := range emails {
		out = append(out, EmailDraft{
			ID:      e.ID,
			Sender:  e.Sender,
			Subject: e.Subject,
			Body:    e.Body,
			Reply:   e.Reply,
			Status:  e.Status,
		})
	}

	return nil, ListUnreadResponse{Emails: out, Total: len(out)}, nil
}
