package repository

import (
	"context"

	"companion-booking/internal/domain/quota"
	"companion-booking/internal/infra"
	"companion-booking/internal/infra/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type QuotaRepository struct {
	pool *pgxpool.Pool
}

func NewQuotaRepository(pool *pgxpool.Pool) *QuotaRepository {
	return &QuotaRepository{pool: pool}
}

// Reserve performs the atomic check-and-increment in a single conditional
// UPDATE: concurrent reservations for the same user serialize on the row and
// the ceiling can never be exceeded. KindConflict means the quota is
// exhausted.
func (r *QuotaRepository) Reserve(ctx context.Context, userID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE subscription_quotas
		SET interactions_used = interactions_used + 1, updated_at = now()
		WHERE user_id = $1
		  AND (interactions_allowed IS NULL OR interactions_used < interactions_allowed)`,
		pgconv.UUIDToPgtype(userID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to reserve quota", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// Distinguish exhausted from unknown user.
	var exists bool
	err = r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM subscription_quotas WHERE user_id = $1)`,
		pgconv.UUIDToPgtype(userID),
	).Scan(&exists)
	if err != nil {
		return infra.WrapRepoErr("failed to check quota existence", err)
	}
	if !exists {
		return infra.WrapRepoErr("subscription quota not found", nil, infra.KindNotFound)
	}
	return infra.WrapRepoErr("interaction quota exhausted", nil, infra.KindConflict)
}

// Release rolls a reservation back; the floor at zero keeps a double release
// harmless.
func (r *QuotaRepository) Release(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE subscription_quotas
		SET interactions_used = GREATEST(interactions_used - 1, 0), updated_at = now()
		WHERE user_id = $1`,
		pgconv.UUIDToPgtype(userID),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to release quota", err)
	}
	return nil
}

func (r *QuotaRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*quota.SubscriptionQuota, error) {
	var (
		planType string
		allowed  pgtype.Int4
		used     int32
	)
	err := r.pool.QueryRow(ctx, `
		SELECT plan_type, interactions_allowed, interactions_used
		FROM subscription_quotas WHERE user_id = $1`,
		pgconv.UUIDToPgtype(userID),
	).Scan(&planType, &allowed, &used)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("subscription quota not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find subscription quota", err)
	}

	plan, err := quota.NewPlanType(planType)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid plan type in store", err)
	}

	return &quota.SubscriptionQuota{
		UserID:              userID,
		PlanType:            plan,
		InteractionsAllowed: pgconv.Int32PtrFromPgtype(allowed),
		InteractionsUsed:    used,
	}, nil
}

// UpsertPlan installs a plan with a fresh usage counter. Driven only by
// billing events (activation, cancellation).
func (r *QuotaRepository) UpsertPlan(ctx context.Context, userID uuid.UUID, plan quota.PlanType, allowed *int32) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO subscription_quotas (user_id, plan_type, interactions_allowed, interactions_used, updated_at)
		VALUES ($1, $2, $3, 0, now())
		ON CONFLICT (user_id) DO UPDATE SET
			plan_type = EXCLUDED.plan_type,
			interactions_allowed = EXCLUDED.interactions_allowed,
			interactions_used = 0,
			updated_at = now()`,
		pgconv.UUIDToPgtype(userID), string(plan), pgconv.Int32PtrToPgtype(allowed),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert subscription plan", err)
	}
	return nil
}
