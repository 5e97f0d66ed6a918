package writerepo

import (
	"context"
	"time"

	"eventcrm/internal/infra/db"
	"eventcrm/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type MailLogEntry struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	OfferID   *uuid.UUID
	Recipient string
	Subject   string
	Body      string
	MessageID string
	SentAt    time.Time
}

type MailLogRepository struct {
	db db.DBTX
}

func NewMailLogRepository(db db.DBTX) *MailLogRepository {
	return &MailLogRepository{db: db}
}

const insertMailLogQuery = `
INSERT INTO mail_log (id, user_id, offer_id, recipient, subject, body, message_id, sent_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// Insert records a copy of a message after confirmed delivery. The log is
// write-once; delivery failures never reach it.
func (r *MailLogRepository) Insert(ctx context.Context, entry MailLogEntry) error {
	_, err := r.db.Exec(ctx, insertMailLogQuery,
		entry.ID, entry.UserID, pgconv.UUIDPtrToPgtype(entry.OfferID),
		entry.Recipient, entry.Subject, entry.Body, entry.MessageID, entry.SentAt)
	if err != nil {
		return classifyWriteErr("failed to insert mail log entry", err)
	}
	return nil
}
