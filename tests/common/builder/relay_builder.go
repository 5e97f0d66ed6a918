//go:build unit || e2e

package builder

import (
	reqdto "eventcrm/internal/handler/dto/request"
)

type RelayRequestBuilder struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	To       string
	Subject  string
	Body     string
}

func NewRelayRequestBuilder() *RelayRequestBuilder {
	return &RelayRequestBuilder{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mailer",
		Password: "secret",
		From:     "offers@example.com",
		FromName: "Offers",
		To:       "client@example.com",
		Subject:  "Your offer",
		Body:     "<p>Hello</p>",
	}
}

func (b *RelayRequestBuilder) BuildDTO() reqdto.SendEmailRequest {
	return reqdto.SendEmailRequest{
		SMTPConfig: &reqdto.RelaySMTPConfig{
			Host:     b.Host,
			Port:     b.Port,
			Username: b.Username,
			Password: b.Password,
			From:     b.From,
			FromName: b.FromName,
		},
		To:      b.To,
		Subject: b.Subject,
		Body:    b.Body,
	}
}

func (b *RelayRequestBuilder) WithHost(host string) *RelayRequestBuilder {
	b.Host = host
	return b
}

func (b *RelayRequestBuilder) WithTo(to string) *RelayRequestBuilder {
	b.To = to
	return b
}
