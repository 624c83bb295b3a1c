package repository

import (
	"context"

	"companion-booking/internal/domain/credential"
	"companion-booking/internal/infra"
	"companion-booking/internal/infra/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CredentialRepository struct {
	pool *pgxpool.Pool
}

func NewCredentialRepository(pool *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{pool: pool}
}

// Upsert is idempotent: re-running an OAuth exchange for a connected
// companion simply replaces the stored token set.
func (r *CredentialRepository) Upsert(ctx context.Context, cred *credential.CalendarCredential) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO calendar_credentials (companion_id, access_token, refresh_token, expires_at, scopes, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (companion_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expires_at = EXCLUDED.expires_at,
			scopes = EXCLUDED.scopes,
			updated_at = now()`,
		pgconv.UUIDToPgtype(cred.CompanionID()),
		cred.AccessToken(),
		cred.RefreshToken(),
		pgconv.TimeToPgtype(cred.ExpiresAt()),
		cred.Scopes(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert calendar credential", err)
	}
	return nil
}

func (r *CredentialRepository) FindByCompanion(ctx context.Context, companionID uuid.UUID) (*credential.CalendarCredential, error) {
	var (
		accessToken, refreshToken string
		expiresAt, updatedAt      pgtype.Timestamptz
		scopes                    []string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT access_token, refresh_token, expires_at, scopes, updated_at
		FROM calendar_credentials WHERE companion_id = $1`,
		pgconv.UUIDToPgtype(companionID),
	).Scan(&accessToken, &refreshToken, &expiresAt, &scopes, &updatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("calendar credential not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find calendar credential", err)
	}

	return credential.ReconstructCalendarCredential(
		companionID,
		accessToken,
		refreshToken,
		pgconv.TimeFromPgtype(expiresAt),
		scopes,
		pgconv.TimeFromPgtype(updatedAt),
	), nil
}

// Delete clears the stored credential. Missing rows are not an error so
// revocation stays idempotent.
func (r *CredentialRepository) Delete(ctx context.Context, companionID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM calendar_credentials WHERE companion_id = $1`,
		pgconv.UUIDToPgtype(companionID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to delete calendar credential", err)
	}
	return nil
}
