package commands

import (
	"context"

	"eventcrm/internal/infra/mailer"
	"eventcrm/internal/pkg/errs"
)

var ErrInvalidSMTPConfig = errs.New("invalid smtp configuration")

// RelayCommands is the whole surface of the relay worker: one send operation
// per request, no cross-request state.
type RelayCommands interface {
	SendEmail(ctx context.Context, cfg mailer.SMTPConfig, msg mailer.Message) (string, error)
}

type relayCommandsImpl struct {
	mailer mailer.Mailer
}

func NewRelayCommands(m mailer.Mailer) RelayCommands {
	return &relayCommandsImpl{mailer: m}
}

func (r *relayCommandsImpl) SendEmail(ctx context.Context, cfg mailer.SMTPConfig, msg mailer.Message) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", errs.Mark(err, ErrInvalidSMTPConfig)
	}
	return r.mailer.Send(ctx, cfg, msg)
}
