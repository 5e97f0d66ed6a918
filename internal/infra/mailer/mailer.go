package mailer

import (
	"context"
	"strings"

	"eventcrm/internal/pkg/errs"
)

var (
	ErrInvalidConfig    = errs.New("invalid smtp configuration")
	ErrConnectionFailed = errs.New("smtp connection failed")
	ErrSendFailed       = errs.New("smtp send failed")
)

// SMTPConfig travels with every relay request. Credentials are never cached
// or pooled server-side; each send builds a fresh transport from this value.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Validate separates malformed configuration (a caller error, 400) from
// connection failures against a well-formed config (500).
func (c SMTPConfig) Validate() error {
	switch {
	case strings.TrimSpace(c.Host) == "" || strings.ContainsAny(c.Host, " \t"):
		return errs.Mark(errs.New("invalid smtp host"), ErrInvalidConfig)
	case c.Port < 1 || c.Port > 65535:
		return errs.Mark(errs.New("smtp port out of range"), ErrInvalidConfig)
	case strings.TrimSpace(c.From) == "":
		return errs.Mark(errs.New("smtp from address is required"), ErrInvalidConfig)
	}
	return nil
}

// ImplicitTLS reports whether the transport should start TLS before any SMTP
// traffic. Inferred solely from the port, matching common provider behavior.
func (c SMTPConfig) ImplicitTLS() bool {
	return c.Port == 465
}

type Attachment struct {
	Filename    string
	Content     []byte
	ContentType string
}

type Message struct {
	To          string
	Subject     string
	HTMLBody    string
	ReplyTo     string
	Attachments []Attachment
}

// Mailer verifies the transport before sending. Implementations return an
// error marked ErrConnectionFailed when the pre-flight verification fails,
// and ErrSendFailed when delivery itself does.
type Mailer interface {
	Send(ctx context.Context, cfg SMTPConfig, msg Message) (messageID string, err error)
}
