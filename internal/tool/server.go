// Package tool exposes the reply workflow as MCP tools for machine clients.
package tool

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type workflowSvc interface {
	listUnreadSvc
	listDraftsSvc
	editDraftSvc
	approveSendSvc
}

// NewServer creates an MCP server with the reply-workflow tools.
func NewServer(svc workflowSvc) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "draftdesk", Version: "v1.0.0"}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_unread_emails",
		Description: "List unread emails, each paired with an AI-drafted reply awaiting approval",
	}, NewListUnread(svc).ListUnread)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_drafts",
		Description: "List stored reply drafts pending approval, including manual edits",
	}, NewListDrafts(svc).ListDrafts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "edit_draft",
		Description: "Replace the reply draft for an email before approval",
	}, NewEditDraft(svc).EditDraft)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "approve_send",
		Description: "Approve a reply draft, send it to the original sender and mark the email read",
	}, NewApproveSend(svc).ApproveSend)

	return server
}
