package commands

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"eventcrm/internal/domain/offer"
	"eventcrm/internal/infra"
	"eventcrm/internal/infra/mailer"
	"eventcrm/internal/infra/writerepo"
	"eventcrm/internal/pkg/clock"
	"eventcrm/internal/pkg/errs"
	"eventcrm/internal/usecase/queries"
	"eventcrm/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOfferNotFound       = errs.New("offer not found")
	ErrOfferAccess         = errs.New("offer access denied")
	ErrMailAccountNotFound = errs.New("no mail account configured for user")
	ErrMailDelivery        = errs.New("offer email delivery failed")
)

// RelaySender delivers a message through the mail relay. Satisfied by both
// the in-process mailer and the HTTP relay client.
type RelaySender interface {
	Send(ctx context.Context, cfg mailer.SMTPConfig, msg mailer.Message) (string, error)
}

type SendOfferResult struct {
	MessageID string
	Recipient string
}

type OfferCommands interface {
	SendOffer(ctx context.Context, offerID, senderID uuid.UUID, recipient string) (*SendOfferResult, error)
}

type offerCommandsImpl struct {
	offers       queries.OfferReadStore
	mailAccounts MailAccountReadStore
	sender       RelaySender
	uow          shared.UnitOfWork
	clock        clock.Clock
}

type MailAccountReadStore interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*queries.MailAccountView, error)
}

func NewOfferCommands(offers queries.OfferReadStore, mailAccounts MailAccountReadStore, sender RelaySender, uow shared.UnitOfWork, clock clock.Clock) OfferCommands {
	return &offerCommandsImpl{
		offers:       offers,
		mailAccounts: mailAccounts,
		sender:       sender,
		uow:          uow,
		clock:        clock,
	}
}

// SendOffer renders the offer, delivers it through the relay and records the
// message on confirmed success. No retry: a failed delivery surfaces to the
// caller, who decides whether to try again.
func (c *offerCommandsImpl) SendOffer(ctx context.Context, offerID, senderID uuid.UUID, recipient string) (*SendOfferResult, error) {
	view, err := c.offers.FindByID(ctx, offerID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	if view.OwnerID != senderID {
		return nil, ErrOfferAccess
	}

	account, err := c.mailAccounts.FindByUserID(ctx, senderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrMailAccountNotFound
		}
		return nil, err
	}

	subject := "Offer: " + view.Title
	body, err := renderOfferHTML(view)
	if err != nil {
		return nil, errs.Wrap(err, "rendering offer email")
	}

	smtpCfg := mailer.SMTPConfig{
		Host:     account.Host,
		Port:     int(account.Port),
		Username: account.Username,
		Password: account.Password,
		From:     account.FromAddress,
		FromName: account.FromName,
	}

	messageID, err := c.sender.Send(ctx, smtpCfg, mailer.Message{
		To:       recipient,
		Subject:  subject,
		HTMLBody: body,
		ReplyTo:  account.FromAddress,
	})
	if err != nil {
		return nil, errs.Mark(err, ErrMailDelivery)
	}

	now := c.clock.Now()
	logErr := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.MailLog().Insert(ctx, writerepo.MailLogEntry{
			ID:        uuid.New(),
			UserID:    senderID,
			OfferID:   &offerID,
			Recipient: recipient,
			Subject:   subject,
			Body:      body,
			MessageID: messageID,
			SentAt:    now,
		}); err != nil {
			return err
		}
		return tx.Offers().UpdateStatus(ctx, offerID, offer.StatusSent, now)
	})
	if logErr != nil {
		// The message is already out; failed bookkeeping must not fail the call.
		slog.Warn("failed to record sent offer email", "offer_id", offerID, "error", logErr.Error())
	}

	return &SendOfferResult{MessageID: messageID, Recipient: recipient}, nil
}

var offerEmailTemplate = template.Must(template.New("offer").Parse(`<html>
<body>
<h2>{{.Title}}</h2>
<table border="1" cellpadding="4" cellspacing="0">
<tr><th>Item</th><th>Qty</th><th>Unit price</th><th>Discount</th><th>Subtotal</th></tr>
{{range .Items}}<tr>
<td>{{.Name}}{{if .Unit}} ({{.Unit}}){{end}}</td>
<td>{{printf "%.2f" .Quantity}}</td>
<td>{{printf "%.2f" .UnitPrice}}</td>
<td>{{printf "%.1f" .DiscountPercent}}%</td>
<td>{{printf "%.2f" .Subtotal}}</td>
</tr>
{{end}}</table>
<p><strong>Total: {{printf "%.2f" .Total}}</strong></p>
</body>
</html>`))

func renderOfferHTML(view *queries.OfferView) (string, error) {
	var sb strings.Builder
	if err := offerEmailTemplate.Execute(&sb, view); err != nil {
		return "", fmt.Errorf("executing offer template: %w", err)
	}
	return sb.String(), nil
}
