package readstore

import (
	"context"

	"eventcrm/internal/infra"
	"eventcrm/internal/infra/db"
	"eventcrm/internal/pkg/pgconv"
	"eventcrm/internal/usecase/queries"

	"github.com/google/uuid"
)

type MailAccountReadStore struct {
	db db.DBTX
}

func NewMailAccountReadStore(db db.DBTX) *MailAccountReadStore {
	return &MailAccountReadStore{db: db}
}

const findMailAccountByUserQuery = `
SELECT id, user_id, smtp_host, smtp_port, smtp_username, smtp_password,
       from_address, from_name
FROM mail_accounts
WHERE user_id = $1
`

func (r *MailAccountReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*queries.MailAccountView, error) {
	var view queries.MailAccountView
	err := r.db.QueryRow(ctx, findMailAccountByUserQuery, userID).
		Scan(&view.ID, &view.UserID, &view.Host, &view.Port, &view.Username,
			&view.Password, &view.FromAddress, &view.FromName)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("mail account not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find mail account", err)
	}
	return &view, nil
}
