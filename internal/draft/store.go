// Package draft generates reply drafts and keeps them in memory while they
// await human review.
package draft

import (
	"sort"
	"sync"
	"time"
)

// Statuses a draft moves through before leaving the store.
const (
	StatusPending = "pending_approval"
	StatusEdited  = "edited"
	StatusSent    = "sent"
)

// DefaultTTL is how long drafts live before cleanup.
const DefaultTTL = 24 * time.Hour

// Draft is an AI-generated reply awaiting review, keyed by the message it
// answers.
type Draft struct {
	EmailID   string    `json:"id"`
	Sender    string    `json:"sender"`
	Subject   string    `json:"subject"`
	Original  string    `json:"original_email"`
	Reply     string    `json:"draft_reply"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type storedDraft struct {
	draft     Draft
	expiresAt time.Time
}

// Store manages drafts in memory with TTL cleanup.
type Store struct {
	mu     sync.RWMutex
	drafts map[string]storedDraft
	ttl    time.Duration
	stopCh chan struct{}
}

// NewStore creates a draft store with a cleanup goroutine.
func NewStore(ttl time.Duration) *Store {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		drafts: make(map[string]storedDraft),
		ttl:    ttl,
		stopCh: make(chan struct{}),
	}
	go s.cleanupLoop()
	return s
}

// Put stores a draft, replacing any existing draft for the same message.
func (s *Store) Put(d Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = now
	}
	d.UpdatedAt = now

	s.drafts[d.EmailID] = storedDraft{draft: d, expiresAt: now.Add(s.ttl)}
}

// Get retrieves the draft for a message.
func (s *Store) Get(emailID string) (Draft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.drafts[emailID]
	if !ok || time.Now().After(stored.expiresAt) {
		return Draft{}, false
	}

	return stored.draft, true
}

// SetReply replaces the reply text and marks the draft edited, creating the
// draft when none exists yet.
func (s *Store) SetReply(emailID, reply string) Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	stored, ok := s.drafts[emailID]
	if !ok || now.After(stored.expiresAt) {
		stored = storedDraft{draft: Draft{EmailID: emailID, CreatedAt: now}}
	}

	stored.draft.Reply = reply
	stored.draft.Status = StatusEdited
	stored.draft.UpdatedAt = now
	stored.expiresAt = now.Add(s.ttl)

	s.drafts[emailID] = stored

	return stored.draft
}

// MarkSent flags the draft as sent so listings no longer include it.
func (s *Store) MarkSent(emailID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.drafts[emailID]
	if !ok {
		return
	}

	stored.draft.Status = StatusSent
	stored.draft.UpdatedAt = time.Now()
	s.drafts[emailID] = stored
}

// List returns unsent drafts, most recently updated first.
func (s *Store) List() []Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := time.Now()
	drafts := make([]Draft, 0, len(s.drafts))
	for _, stored := range s.drafts {
		if stored.draft.Status == StatusSent || now.After(stored.expiresAt) {
			continue
		}
		drafts = append(drafts, stored.draft)
	}

	sort.Slice(drafts, func(i, j int) bool {
		return drafts[i].UpdatedAt.After(drafts[j].UpdatedAt)
	})

	return drafts
}

// Stop stops the cleanup goroutine.
func (s *Store) Stop() {
	close(s.stopCh)
}

func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, stored := range s.drafts {
		if now.After(stored.expiresAt) {
			delete(s.drafts, id)
		}
	}
}
