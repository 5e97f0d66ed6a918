package request

import (
	"encoding/base64"

	"eventcrm/internal/infra/mailer"
	"eventcrm/internal/pkg/errs"
)

type RelaySMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
	FromName string `json:"fromName"`
}

type RelayAttachment struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"` // base64
	ContentType string `json:"contentType"`
}

// SendEmailRequest is the relay wire contract. Field presence is checked by
// hand instead of binding tags because the error message names the first
// missing field.
type SendEmailRequest struct {
	SMTPConfig  *RelaySMTPConfig  `json:"smtpConfig"`
	To          string            `json:"to"`
	Subject     string            `json:"subject"`
	Body        string            `json:"body"`
	ReplyTo     string            `json:"replyTo"`
	Attachments []RelayAttachment `json:"attachments"`
}

// MissingField returns the name of the first absent required field, or "".
func (r SendEmailRequest) MissingField() string {
	switch {
	case r.SMTPConfig == nil:
		return "smtpConfig"
	case r.To == "":
		return "to"
	case r.Subject == "":
		return "subject"
	case r.Body == "":
		return "body"
	}
	return ""
}

func (r SendEmailRequest) ToSMTPConfig() mailer.SMTPConfig {
	return mailer.SMTPConfig{
		Host:     r.SMTPConfig.Host,
		Port:     r.SMTPConfig.Port,
		Username: r.SMTPConfig.Username,
		Password: r.SMTPConfig.Password,
		From:     r.SMTPConfig.From,
		FromName: r.SMTPConfig.FromName,
	}
}

func (r SendEmailRequest) ToMessage() (mailer.Message, error) {
	msg := mailer.Message{
		To:       r.To,
		Subject:  r.Subject,
		HTMLBody: r.Body,
		ReplyTo:  r.ReplyTo,
	}
	for _, a := range r.Attachments {
		content, err := base64.StdEncoding.DecodeString(a.Content)
		if err != nil {
			return mailer.Message{}, errs.Wrap(err, "decoding attachment "+a.Filename)
		}
		msg.Attachments = append(msg.Attachments, mailer.Attachment{
			Filename:    a.Filename,
			Content:     content,
			ContentType: a.ContentType,
		})
	}
	return msg, nil
}
