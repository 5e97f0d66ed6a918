package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"time"

	"eventcrm/internal/pkg/errs"

	gomail "github.com/wneessen/go-mail"
)

const defaultAttachmentType = "application/octet-stream"

type GoMail struct {
	connectTimeout time.Duration
	socketTimeout  time.Duration
}

func NewGoMail(connectTimeout, socketTimeout time.Duration) *GoMail {
	return &GoMail{
		connectTimeout: connectTimeout,
		socketTimeout:  socketTimeout,
	}
}

// Send opens a transient connection, verifies it, delivers the message and
// closes. Certificate validation is disabled on purpose: the relay has to
// work against arbitrary customer SMTP servers, self-signed included.
func (g *GoMail) Send(ctx context.Context, cfg SMTPConfig, msg Message) (string, error) {
	client, err := g.newClient(cfg)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "building smtp client"), ErrConnectionFailed)
	}

	m, err := buildMessage(cfg, msg)
	if err != nil {
		return "", errs.Mark(err, ErrSendFailed)
	}

	dialCtx, cancel := context.WithTimeout(ctx, g.connectTimeout)
	defer cancel()

	if err := client.DialWithContext(dialCtx); err != nil {
		return "", errs.Mark(errs.Wrap(err, "verifying smtp connection"), ErrConnectionFailed)
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Send(m); err != nil {
		return "", errs.Mark(errs.Wrap(err, "sending message"), ErrSendFailed)
	}

	return m.GetMessageID(), nil
}

func (g *GoMail) newClient(cfg SMTPConfig) (*gomail.Client, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(g.socketTimeout),
		gomail.WithTLSConfig(&tls.Config{
			InsecureSkipVerify: true, // #nosec G402 -- compatibility with customer servers
			ServerName:         cfg.Host,
		}),
	}

	if cfg.ImplicitTLS() {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	return gomail.NewClient(cfg.Host, opts...)
}

func buildMessage(cfg SMTPConfig, msg Message) (*gomail.Msg, error) {
	m := gomail.NewMsg()

	if cfg.FromName != "" {
		if err := m.FromFormat(cfg.FromName, cfg.From); err != nil {
			return nil, errs.Wrap(err, "invalid from address")
		}
	} else if err := m.From(cfg.From); err != nil {
		return nil, errs.Wrap(err, "invalid from address")
	}

	if err := m.To(msg.To); err != nil {
		return nil, errs.Wrap(err, "invalid recipient address")
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, errs.Wrap(err, "invalid reply-to address")
		}
	}

	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)
	m.SetMessageID()

	for _, a := range msg.Attachments {
		contentType := a.ContentType
		if contentType == "" {
			contentType = defaultAttachmentType
		}
		if err := m.AttachReader(a.Filename, bytes.NewReader(a.Content),
			gomail.WithFileContentType(gomail.ContentType(contentType))); err != nil {
			return nil, errs.Wrap(err, "attaching file")
		}
	}

	return m, nil
}
