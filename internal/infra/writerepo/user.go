package writerepo

import (
	"context"
	"time"

	"eventcrm/internal/domain/user"
	"eventcrm/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(db db.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

const insertUserQuery = `
INSERT INTO users (id, email, password_hash, role, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, true, $5, $5)
`

func (r *UserRepository) Create(ctx context.Context, id uuid.UUID, email user.Email, passwordHash string, role user.Role, now time.Time) error {
	_, err := r.db.Exec(ctx, insertUserQuery, id, email.Value(), passwordHash, role.String(), now)
	if err != nil {
		return classifyWriteErr("failed to insert user", err)
	}
	return nil
}

const updateLastLoginQuery = `
UPDATE users
SET last_login_at = $2, updated_at = $2
WHERE id = $1
`

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, now time.Time) error {
	if _, err := r.db.Exec(ctx, updateLastLoginQuery, id, now); err != nil {
		return classifyWriteErr("failed to update last login", err)
	}
	return nil
}
