package repository

import (
	"context"

	"companion-booking/internal/infra"
	"companion-booking/internal/infra/pgconv"
	"companion-booking/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CompanionRepository struct {
	pool *pgxpool.Pool
}

func NewCompanionRepository(pool *pgxpool.Pool) *CompanionRepository {
	return &CompanionRepository{pool: pool}
}

func (r *CompanionRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.CompanionRM, error) {
	var (
		ownerID     pgtype.UUID
		displayName string
		timezone    string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT owner_user_id, display_name, timezone
		FROM companions WHERE id = $1`,
		pgconv.UUIDToPgtype(id),
	).Scan(&ownerID, &displayName, &timezone)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("companion not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find companion", err)
	}

	return &readmodel.CompanionRM{
		ID:          id,
		OwnerUserID: pgconv.UUIDFromPgtype(ownerID),
		DisplayName: displayName,
		Timezone:    timezone,
	}, nil
}
