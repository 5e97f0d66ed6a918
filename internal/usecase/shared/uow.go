package shared

import (
	"context"
	"time"

	"eventcrm/internal/domain/offer"
	"eventcrm/internal/domain/user"
	"eventcrm/internal/infra/db"
	"eventcrm/internal/infra/writerepo"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Offers() OfferRepository
	MailLog() MailLogRepository
	Users() UserRepository
	DB() db.DBTX
}

type OfferRepository interface {
	Create(ctx context.Context, id, ownerID uuid.UUID, title string, total float64, items []offer.LineItem, now time.Time) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string, now time.Time) error
}

type MailLogRepository interface {
	Insert(ctx context.Context, entry writerepo.MailLogEntry) error
}

type UserRepository interface {
	Create(ctx context.Context, id uuid.UUID, email user.Email, passwordHash string, role user.Role, now time.Time) error
	UpdateLastLogin(ctx context.Context, id uuid.UUID, now time.Time) error
}
