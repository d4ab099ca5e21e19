// Package format handles Gmail payload decoding and reply message encoding.
package format

import (
	"encoding/base64"

	"google.golang.org/api/gmail/v1"
)

// PlainTextBody extracts the plain-text body from a message payload.
// Multipart messages yield the first top-level text/plain part that carries
// data; single-part messages yield the payload body. Anything else is empty.
func PlainTextBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	if len(payload.Parts) > 0 {
		for _, part := range payload.Parts {
			if part.MimeType != "text/plain" || part.Body == nil || part.Body.Data == "" {
				continue
			}

			return decodeBase64URL(part.Body.Data)
		}

		return ""
	}

	if payload.Body == nil || payload.Body.Data == "" {
		return ""
	}

	return decodeBase64URL(payload.Body.Data)
}

func decodeBase64URL(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return data
		}
	}
	return string(decoded)
}

// Truncate shortens s to at most max runes.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}

	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max])
}
