// Package workflow sequences the unread → draft → approve → send actions
// over the mail gateway, the draft generator and the draft store.
package workflow

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/gmail/v1"

	"github.com/draftdesk/draftdesk/internal/draft"
	"github.com/draftdesk/draftdesk/internal/format"
)

// PlaceholderReply stands in for a draft when generation fails; the entry is
// flagged so the caller can tell it apart from a real draft.
const PlaceholderReply = "Error generating reply"

// StatusFailed flags an entry whose draft could not be generated.
const StatusFailed = "generation_failed"

const (
	defaultSender  = "Unknown"
	defaultSubject = "No Subject"
)

type mailSvc interface {
	ListUnread(ctx context.Context, maxResults int64) ([]*gmail.Message, error)
	GetMessage(ctx context.Context, msgID string) (*gmail.Message, error)
	SendReply(ctx context.Context, to, subject, threadID, body string) error
	MarkRead(ctx context.Context, msgID string) error
}

type generatorSvc interface {
	Reply(ctx context.Context, sender, subject, body string) (string, error)
}

type draftStore interface {
	Get(emailID string) (draft.Draft, bool)
	Put(d draft.Draft)
	SetReply(emailID, reply string) draft.Draft
	MarkSent(emailID string)
	List() []draft.Draft
}

// Email is one unread message with its draft reply.
type Email struct {
	ID      string `json:"id"`
	Sender  string `json:"sender"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Reply   string `json:"reply"`
	Status  string `json:"status"`
}

// SendResult confirms where an approved reply went.
type SendResult struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
}

// Config bounds how much mail is pulled and previewed per request.
type Config struct {
	MaxUnread     int64
	PreviewLength int
}

// NewService wires the orchestrator with its collaborators.
func NewService(mail mailSvc, gen generatorSvc, store draftStore, cfg Config) *Service {
	if cfg.MaxUnread <= 0 {
		cfg.MaxUnread = 10
	}
	if cfg.PreviewLength <= 0 {
		cfg.PreviewLength = 500
	}

	return &Service{mail: mail, gen: gen, store: store, cfg: cfg}
}

// Service implements the four user-facing workflow actions.
type Service struct {
	mail  mailSvc
	gen   generatorSvc
	store draftStore
	cfg   Config
}

// ListUnreadWithDrafts fetches unread messages and pairs each with a reply
// draft. A live stored draft is reused so edits survive re-listing; only
// messages without one go to the generator.
func (s *Service) ListUnreadWithDrafts(ctx context.Context) ([]Email, error) {
	refs, err := s.mail.ListUnread(ctx, s.cfg.MaxUnread)
	if err != nil {
		return nil, fmt.Errorf("mail.ListUnread failed: %w", err)
	}

	emails := make([]Email, 0, len(refs))

	for _, ref := range refs {
		msg, err := s.mail.GetMessage(ctx, ref.Id)
		if err != nil {
			return nil, fmt.Errorf("get message %s failed: %w", ref.Id, err)
		}

		email := Email{
			ID:      msg.Id,
			Sender:  headerValue(msg.Payload, "From", defaultSender),
			Subject: headerValue(msg.Payload, "Subject", defaultSubject),
			Body:    format.Truncate(format.PlainTextBody(msg.Payload), s.cfg.PreviewLength),
		}

		if stored, ok := s.store.Get(email.ID); ok && stored.Status != draft.StatusSent {
			email.Reply = stored.Reply
			email.Status = stored.Status

			emails = append(emails, email)

			continue
		}

		email.Reply, email.Status = s.generate(ctx, email)

		s.store.Put(draft.Draft{
			EmailID:  email.ID,
			Sender:   email.Sender,
			Subject:  email.Subject,
			Original: email.Body,
			Reply:    email.Reply,
			Status:   email.Status,
		})

		emails = append(emails, email)
	}

	return emails, nil
}

func (s *Service) generate(ctx context.Context, email Email) (reply, status string) {
	reply, err := s.gen.Reply(ctx, email.Sender, email.Subject, email.Body)
	if err != nil {
		log.Warn().Err(err).Str("email_id", email.ID).Msg("draft generation failed")

		return PlaceholderReply, StatusFailed
	}

	return reply, draft.StatusPending
}

// ListDrafts returns the stored unsent drafts, edits included.
func (s *Service) ListDrafts() []draft.Draft {
	return s.store.List()
}

// EditDraft stores the edited reply and echoes it back unchanged.
func (s *Service) EditDraft(emailID, text string) string {
	d := s.store.SetReply(emailID, text)

	return d.Reply
}

// ApproveAndSend sends the approved reply to the ORIGINAL message's sender,
// threaded on the original conversation, then marks the message read.
func (s *Service) ApproveAndSend(ctx context.Context, emailID, text string) (SendResult, error) {
	msg, err := s.mail.GetMessage(ctx, emailID)
	if err != nil {
		return SendResult{}, fmt.Errorf("get message %s failed: %w", emailID, err)
	}

	to := headerValue(msg.Payload, "From", "")
	subject := format.ReplySubject(headerValue(msg.Payload, "Subject", ""))

	if err := s.mail.SendReply(ctx, to, subject, msg.ThreadId, text); err != nil {
		return SendResult{}, fmt.Errorf("mail.SendReply failed: %w", err)
	}

	if err := s.mail.MarkRead(ctx, emailID); err != nil {
		return SendResult{}, fmt.Errorf("mail.MarkRead failed: %w", err)
	}

	s.store.MarkSent(emailID)

	log.Info().Str("email_id", emailID).Str("to", to).Msg("reply sent")

	return SendResult{To: to, Subject: subject}, nil
}

func headerValue(payload *gmail.MessagePart, name, fallback string) string {
	if payload == nil {
		return fallback
	}

	for _, h := range payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}

	return fallback
}
