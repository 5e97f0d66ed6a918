package relayclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"eventcrm/internal/infra/mailer"
	"eventcrm/internal/pkg/errs"
)

var (
	ErrRelayRejected    = errs.New("relay rejected the request")
	ErrRelayUnreachable = errs.New("relay unreachable")
)

// Client delegates actual delivery to a remote relay instance over HTTP,
// speaking the same contract cmd/relay serves. Used when the CRM runs apart
// from the relay worker.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

func New(baseURL, secret string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		http:    &http.Client{Timeout: timeout},
	}
}

type smtpConfigPayload struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
	FromName string `json:"fromName"`
}

type attachmentPayload struct {
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	ContentType string `json:"contentType,omitempty"`
}

type sendEmailPayload struct {
	SMTPConfig  smtpConfigPayload   `json:"smtpConfig"`
	To          string              `json:"to"`
	Subject     string              `json:"subject"`
	Body        string              `json:"body"`
	ReplyTo     string              `json:"replyTo,omitempty"`
	Attachments []attachmentPayload `json:"attachments,omitempty"`
}

type sendEmailResult struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
	Error     string `json:"error"`
}

func (c *Client) Send(ctx context.Context, cfg mailer.SMTPConfig, msg mailer.Message) (string, error) {
	payload := sendEmailPayload{
		SMTPConfig: smtpConfigPayload{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Username: cfg.Username,
			Password: cfg.Password,
			From:     cfg.From,
			FromName: cfg.FromName,
		},
		To:      msg.To,
		Subject: msg.Subject,
		Body:    msg.HTMLBody,
		ReplyTo: msg.ReplyTo,
	}
	for _, a := range msg.Attachments {
		payload.Attachments = append(payload.Attachments, attachmentPayload{
			Filename:    a.Filename,
			Content:     base64.StdEncoding.EncodeToString(a.Content),
			ContentType: a.ContentType,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", errs.Wrap(err, "encoding relay payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/send-email", bytes.NewReader(body))
	if err != nil {
		return "", errs.Wrap(err, "building relay request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "calling relay"), ErrRelayUnreachable)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var result sendEmailResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errs.Mark(errs.Wrap(err, "decoding relay response"), ErrRelayUnreachable)
	}

	if resp.StatusCode != http.StatusOK || !result.Success {
		reason := result.Error
		if reason == "" {
			reason = resp.Status
		}
		return "", errs.Mark(errs.Wrap(errs.New(reason), "relay send failed"), ErrRelayRejected)
	}

	return result.MessageID, nil
}
