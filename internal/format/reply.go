package format

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ReplySubject prefixes subject with "Re: " unless it already has one.
func ReplySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(subject), "re:") {
		return subject
	}

	return "Re: " + subject
}

// EncodeReply builds a raw RFC 822 plain-text message the way the Gmail
// send API expects it: headers, a blank line, the body, base64url-encoded.
func EncodeReply(to, subject, body string) string {
	headers := fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "Content-Type: text/plain; charset=\"UTF-8\"\r\n"

	raw := headers + "\r\n" + body

	return base64.URLEncoding.EncodeToString([]byte(raw))
}
