package repository

import (
	"context"

	"companion-booking/internal/domain/user"
	"companion-booking/internal/infra"
	"companion-booking/internal/infra/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	var (
		id                   pgtype.UUID
		storedEmail          string
		passwordHash, role   string
		isActive             bool
		createdAt, updatedAt pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, is_active, created_at, updated_at
		FROM users WHERE email = $1`,
		email,
	).Scan(&id, &storedEmail, &passwordHash, &role, &isActive, &createdAt, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	emailVO, err := user.NewEmail(storedEmail)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid email in store", err)
	}
	roleVO, err := user.NewRole(role)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid role in store", err)
	}

	return user.ReconstructUser(
		pgconv.UUIDFromPgtype(id),
		emailVO,
		passwordHash,
		roleVO,
		isActive,
		pgconv.TimeFromPgtype(createdAt),
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}
