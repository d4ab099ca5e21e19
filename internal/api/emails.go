package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/draftdesk/draftdesk/internal/draft"
	"github.com/draftdesk/draftdesk/internal/workflow"
)

type workflowSvc interface {
	ListUnreadWithDrafts(ctx context.Context) ([]workflow.Email, error)
	ListDrafts() []draft.Draft
	EditDraft(emailID, text string) string
	ApproveAndSend(ctx context.Context, emailID, text string) (workflow.SendResult, error)
}

// EmailGroup handles the unread/draft/edit/send endpoints.
type EmailGroup struct {
	svc workflowSvc
}

// NewEmailGroup creates and registers the email routes.
func NewEmailGroup(g *echo.Group, svc workflowSvc) *EmailGroup {
	eg := &EmailGroup{svc: svc}

	g.GET("/unread", eg.ListUnread)
	g.GET("/drafts", eg.ListDrafts)
	g.POST("/edit-draft", eg.EditDraft)
	g.POST("/send", eg.Send)

	return eg
}

// UnreadResponse lists unread messages with their reply drafts.
type UnreadResponse struct {
	Emails  []workflow.Email `json:"emails"`
	Total   int              `json:"total"`
	Message string           `json:"message"`
}

// ListUnread returns unread messages paired with drafts awaiting approval.
func (eg *EmailGroup) ListUnread(c echo.Context) error {
	emails, err := eg.svc.ListUnreadWithDrafts(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}

	msg := "Unread emails with drafts ready for approval"
	if len(emails) == 0 {
		msg = "No unread emails"
	}

	return c.JSON(http.StatusOK, UnreadResponse{
		Emails:  emails,
		Total:   len(emails),
		Message: msg,
	})
}

// DraftsResponse lists the stored drafts pending approval, edits included.
type DraftsResponse struct {
	Drafts  []draft.Draft `json:"drafts"`
	Total   int           `json:"total"`
	Message string        `json:"message"`
}

// ListDrafts returns the unsent drafts from the store.
func (eg *EmailGroup) ListDrafts(c echo.Context) error {
	drafts := eg.svc.ListDrafts()

	msg := "Review these drafts before sending"
	if len(drafts) == 0 {
		msg = "No drafts pending approval"
	}

	return c.JSON(http.StatusOK, DraftsResponse{
		Drafts:  drafts,
		Total:   len(drafts),
		Message: msg,
	})
}

// EditDraftRequest replaces the draft text for one message.
type EditDraftRequest struct {
	EmailID    string `json:"email_id"`
	DraftReply string `json:"draft_reply"`
}

// EditDraftResponse echoes the updated draft back.
type EditDraftResponse struct {
	Status     string `json:"status"`
	EmailID    string `json:"email_id"`
	DraftReply string `json:"draft_reply"`
	Message    string `json:"message"`
}

// EditDraft stores the edited reply and confirms it verbatim.
func (eg *EmailGroup) EditDraft(c echo.Context) error {
	var req EditDraftRequest
	if err := c.Bind(&req); err != nil {
		return httpBadRequest(c, "invalid request body")
	}
	if req.EmailID == "" {
		return httpBadRequest(c, "email_id is required")
	}

	reply := eg.svc.EditDraft(req.EmailID, req.DraftReply)

	return c.JSON(http.StatusOK, EditDraftResponse{
		Status:     "draft_updated",
		EmailID:    req.EmailID,
		DraftReply: reply,
		Message:    "Draft updated. Ready to approve and send",
	})
}

// SendRequest approves a draft for sending.
type SendRequest struct {
	EmailID   string `json:"email_id"`
	ReplyText string `json:"reply_text"`
}

// SendResponse confirms the sent reply.
type SendResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	To      string `json:"to"`
	Subject string `json:"subject"`
}

// Send delivers the approved reply and marks the original message read.
func (eg *EmailGroup) Send(c echo.Context) error {
	var req SendRequest
	if err := c.Bind(&req); err != nil {
		return httpBadRequest(c, "invalid request body")
	}
	if req.EmailID == "" {
		return httpBadRequest(c, "email_id is required")
	}

	result, err := eg.svc.ApproveAndSend(c.Request().Context(), req.EmailID, req.ReplyText)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(http.StatusOK, SendResponse{
		Status:  "sent",
		Message: "Email sent successfully",
		To:      result.To,
		Subject: result.Subject,
	})
}
