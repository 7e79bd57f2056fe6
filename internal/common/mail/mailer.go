// internal/common/mail/mailer.go
package mail

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"
)

// Attachment is a single file carried with a message, raw bytes plus the
// original filename.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is one outbound notification. Constructed per submission, sent
// once, never stored.
type Message struct {
	FromName string
	From     string
	To       string
	Subject  string
	HTMLBody string

	Attachment *Attachment
}

// Mailer dispatches a single message synchronously. Implementations do not
// retry; a failure surfaces to the caller.
type Mailer interface {
	Send(ctx context.Context, msg *Message) error
}

const mixedBoundary = "mundolaboral-mime-boundary"

// BuildMIME renders the message into a raw RFC 2822 payload, usable both for
// SMTP DATA and for the SES raw-send API. Attachments produce a
// multipart/mixed body with the HTML part first.
func BuildMIME(msg *Message) []byte {
	var builder strings.Builder

	from := msg.From
	if msg.FromName != "" {
		from = fmt.Sprintf("%s <%s>", msg.FromName, msg.From)
	}

	builder.WriteString(fmt.Sprintf("From: %s\r\n", from))
	builder.WriteString(fmt.Sprintf("To: %s\r\n", msg.To))
	builder.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", msg.Subject)))
	builder.WriteString("MIME-Version: 1.0\r\n")

	if msg.Attachment == nil {
		builder.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		builder.WriteString("\r\n")
		builder.WriteString(msg.HTMLBody)
		return []byte(builder.String())
	}

	builder.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q\r\n", mixedBoundary))
	builder.WriteString("\r\n")

	builder.WriteString(fmt.Sprintf("--%s\r\n", mixedBoundary))
	builder.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(msg.HTMLBody)
	builder.WriteString("\r\n")

	builder.WriteString(fmt.Sprintf("--%s\r\n", mixedBoundary))
	builder.WriteString(fmt.Sprintf("Content-Type: %s\r\n", contentTypeFor(msg.Attachment.Filename)))
	builder.WriteString("Content-Transfer-Encoding: base64\r\n")
	builder.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=%q\r\n", msg.Attachment.Filename))
	builder.WriteString("\r\n")
	builder.WriteString(wrapBase64(msg.Attachment.Content))
	builder.WriteString("\r\n")
	builder.WriteString(fmt.Sprintf("--%s--\r\n", mixedBoundary))

	return []byte(builder.String())
}

func contentTypeFor(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// wrapBase64 encodes content with 76-character lines per RFC 2045.
func wrapBase64(content []byte) string {
	encoded := base64.StdEncoding.EncodeToString(content)
	var builder strings.Builder
	for len(encoded) > 76 {
		builder.WriteString(encoded[:76])
		builder.WriteString("\r\n")
		encoded = encoded[76:]
	}
	builder.WriteString(encoded)
	return builder.String()
}

// GenerateMessageID derives a stable-format message id for logging.
func GenerateMessageID(msg *Message, host string) string {
	timestamp := time.Now().UnixNano()
	return fmt.Sprintf("<%d.%s@%s>", timestamp, sanitizeLocalPart(msg.To), host)
}

func sanitizeLocalPart(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) > 0 {
		local := strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
				return r
			}
			return -1
		}, parts[0])

		if len(local) > 10 {
			local = local[:10]
		}
		return local
	}
	return "user"
}
