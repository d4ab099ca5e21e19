package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/draftdesk/draftdesk/internal/draft"
)

// ListDraftsRequest has no parameters.
type ListDraftsRequest struct{}

// DraftSummary is one stored reply draft awaiting approval.
type DraftSummary struct {
	EmailID  string `json:"email_id" jsonschema:"message ID the draft answers"`
	Sender   string `json:"sender" jsonschema:"original sender"`
	Subject  string `json:"subject" jsonschema:"original subject"`
	Original string `json:"original_email" jsonschema:"original body preview"`
	Reply    string `json:"draft_reply" jsonschema:"current draft text"`
	Status   string `json:"status" jsonschema:"pending_approval or edited"`
}

// ListDraftsResponse contains the unsent drafts.
type ListDraftsResponse struct {
	Drafts []DraftSummary `json:"drafts" jsonschema:"drafts pending approval"`
	Total  int            `json:"total" jsonschema:"number of drafts returned"`
}

type listDraftsSvc interface {
	ListDrafts() []draft.Draft
}

// NewListDrafts creates the list_drafts tool.
func NewListDrafts(svc listDraftsSvc) *ListDrafts {
	return &ListDrafts{svc: svc}
}

// ListDrafts lists the stored unsent drafts.
type ListDrafts struct {
	svc listDraftsSvc
}

// ListDrafts returns the drafts pending approval, newest first.
func (t *ListDrafts) ListDrafts(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ ListDraftsRequest,
) (*mcp.CallToolResult, ListDraftsResponse, error) {
	drafts := t.svc.ListDrafts()

	out := make([]DraftSummary, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, DraftSummary{
			EmailID:  d.EmailID,
			Sender:   d.Sender,
			Subject:  d.Subject,
			Original: d.Original,
			Reply:    d.Reply,
			Status:   d.Status,
		})
	}

	return nil, ListDraftsResponse{Drafts: out, Total: len(out)}, nil
}
