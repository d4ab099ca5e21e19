package format_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/draftdesk/draftdesk/internal/format"
)

func TestReplySubject(t *testing.T) {
	cases := []struct {
		name     string
		subject  string
		expected string
	}{
		{name: "plain subject gets prefix", subject: "Meeting", expected: "Re: Meeting"},
		{name: "existing prefix kept", subject: "Re: Meeting", expected: "Re: Meeting"},
		{name: "uppercase prefix kept", subject: "RE: Meeting", expected: "RE: Meeting"},
		{name: "empty subject", subject: "", expected: "Re: "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, format.ReplySubject(tc.subject))
		})
	}
}

func TestEncodeReply(t *testing.T) {
	encoded := format.EncodeReply("bob@example.com", "Re: Meeting", "Works for me.\nSee you then.")

	raw, err := base64.URLEncoding.DecodeString(encoded)
	require.NoError(t, err)

	expected := "To: bob@example.com\r\n" +
		"Subject: Re: Meeting\r\n" +
		"Content-Type: text/plain; charset=\"UTF-8\"\r\n" +
		"\r\n" +
		"Works for me.\nSee you then."
	assert.Equal(t, expected, string(raw))
}
