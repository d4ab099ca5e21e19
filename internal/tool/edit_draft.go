package tool

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// EditDraftRequest replaces the draft text for one email.
type EditDraftRequest struct {
	EmailID    string `json:"email_id" jsonschema:"message ID the draft answers"`
	DraftReply string `json:"draft_reply" jsonschema:"replacement draft text"`
}

// EditDraftResponse echoes the stored draft back.
type EditDraftResponse struct {
	EmailID    string `json:"email_id" jsonschema:"message ID"`
	DraftReply string `json:"draft_reply" jsonschema:"stored draft text"`
	Status     string `json:"status" jsonschema:"update status"`
}

type editDraftSvc interface {
	EditDraft(emailID, text string) string
}

// NewEditDraft creates the edit_draft tool.
func NewEditDraft(svc editDraftSvc) *EditDraft {
	return &EditDraft{svc: svc}
}

// EditDraft replaces a stored draft before approval.
type EditDraft struct {
	svc editDraftSvc
}

// EditDraft stores the edited reply and confirms it verbatim.
func (t *EditDraft) EditDraft(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input EditDraftRequest,
) (*mcp.CallToolResult, EditDraftResponse, error) {
	if input.EmailID == "" {
		return nil, EditDraftResponse{}, errors.New("email_id is required")
	}

	reply := t.svc.EditDraft(input.EmailID, input.DraftReply)

	return nil, EditDraftResponse{
		EmailID:    input.EmailID,
		DraftReply: reply,
		Status:     "draft_updated",
	}, nil
}
