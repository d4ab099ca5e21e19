package draft_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftdesk/draftdesk/internal/draft"
)

func TestStorePutGet(t *testing.T) {
	s := draft.NewStore(time.Hour)
	defer s.Stop()

	s.Put(draft.Draft{
		EmailID: "m1",
		Sender:  "alice@example.com",
		Subject: "Status?",
		Reply:   "On it.",
		Status:  draft.StatusPending,
	})

	got, ok := s.Get("m1")
	require.True(t, ok)
	assert.Equal(t, "On it.", got.Reply)
	assert.Equal(t, draft.StatusPending, got.Status)
	assert.False(t, got.CreatedAt.IsZero())

	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStoreSetReply(t *testing.T) {
	s := draft.NewStore(time.Hour)
	defer s.Stop()

	s.Put(draft.Draft{EmailID: "m1", Reply: "first", Status: draft.StatusPending})

	edited := s.SetReply("m1", "second")
	assert.Equal(t, "second", edited.Reply)
	assert.Equal(t, draft.StatusEdited, edited.Status)

	// Unknown ids are upserted so an edit never fails.
	created := s.SetReply("m2", "fresh")
	assert.Equal(t, "fresh", created.Reply)
	assert.Equal(t, draft.StatusEdited, created.Status)

	got, ok := s.Get("m2")
	require.True(t, ok)
	assert.Equal(t, "fresh", got.Reply)
}

func TestStoreListExcludesSent(t *testing.T) {
	s := draft.NewStore(time.Hour)
	defer s.Stop()

	s.Put(draft.Draft{EmailID: "m1", Status: draft.StatusPending})
	s.Put(draft.Draft{EmailID: "m2", Status: draft.StatusPending})
	s.MarkSent("m1")

	drafts := s.List()
	require.Len(t, drafts, 1)
	assert.Equal(t, "m2", drafts[0].EmailID)

	got, ok := s.Get("m1")
	require.True(t, ok)
	assert.Equal(t, draft.StatusSent, got.Status)
}

func TestStoreListNewestFirst(t *testing.T) {
	s := draft.NewStore(time.Hour)
	defer s.Stop()

	s.Put(draft.Draft{EmailID: "old", Status: draft.StatusPending})
	time.Sleep(5 * time.Millisecond)
	s.Put(draft.Draft{EmailID: "new", Status: draft.StatusPending})

	drafts := s.List()
	require.Len(t, drafts, 2)
	assert.Equal(t, "new", drafts[0].EmailID)
	assert.Equal(t, "old", drafts[1].EmailID)
}

func TestStoreTTLExpiry(t *testing.T) {
	s := draft.NewStore(10 * time.Millisecond)
	defer s.Stop()

	s.Put(draft.Draft{EmailID: "m1", Status: draft.StatusPending})
	time.Sleep(20 * time.Millisecond)

	_, ok := s.Get("m1")
	assert.False(t, ok)
	assert.Empty(t, s.List())
}
