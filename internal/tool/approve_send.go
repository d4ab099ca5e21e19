package tool

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/draftdesk/draftdesk/internal/workflow"
)

// ApproveSendRequest approves a draft for sending.
type ApproveSendRequest struct {
	EmailID   string `json:"email_id" jsonschema:"message ID to reply to"`
	ReplyText string `json:"reply_text" jsonschema:"approved reply text"`
}

// ApproveSendResponse confirms where the reply went.
type ApproveSendResponse struct {
	Status  string `json:"status" jsonschema:"send status"`
	To      string `json:"to" jsonschema:"recipient address"`
	Subject string `json:"subject" jsonschema:"reply subject"`
}

type approveSendSvc interface {
	ApproveAndSend(ctx context.Context, emailID, text string) (workflow.SendResult, error)
}

// NewApproveSend creates the approve_send tool.
func NewApproveSend(svc approveSendSvc) *ApproveSend {
	return &ApproveSend{svc: svc}
}

// ApproveSend sends an approved reply and marks the original read.
type ApproveSend struct {
	svc approveSendSvc
}

// ApproveSend delivers the reply to the original sender on its thread.
func (t *ApproveSend) ApproveSend(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ApproveSendRequest,
) (*mcp.CallToolResult, ApproveSendResponse, error) {
	if input.EmailID == "" {
		return nil, ApproveSendResponse{}, errors.New("email_id is required")
	}

	result, err := t.svc.ApproveAndSend(ctx, input.EmailID, input.ReplyText)
	if err != nil {
		return nil, ApproveSendResponse{}, fmt.Errorf("svc.ApproveAndSend failed: %w", err)
	}

	return nil, ApproveSendResponse{
		Status:  "sent",
		To:      result.To,
		Subject: result.Subject,
	}, nil
}
