package repository

import (
	"context"

	"companion-booking/internal/domain/webhook"
	"companion-booking/internal/infra"
	"companion-booking/internal/infra/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ChannelRepository struct {
	pool *pgxpool.Pool
}

func NewChannelRepository(pool *pgxpool.Pool) *ChannelRepository {
	return &ChannelRepository{pool: pool}
}

// Replace installs a new channel for the companion, invalidating any previous
// record (one active channel per companion).
func (r *ChannelRepository) Replace(ctx context.Context, ch *webhook.Channel) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO webhook_channels (companion_id, external_channel_id, resource_id, validation_token, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (companion_id) DO UPDATE SET
			external_channel_id = EXCLUDED.external_channel_id,
			resource_id = EXCLUDED.resource_id,
			validation_token = EXCLUDED.validation_token,
			expires_at = EXCLUDED.expires_at,
			created_at = now()`,
		pgconv.UUIDToPgtype(ch.CompanionID),
		ch.ExternalChannelID,
		ch.ResourceID,
		ch.ValidationToken,
		pgconv.TimeToPgtype(ch.ExpiresAt),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to replace webhook channel", err)
	}
	return nil
}

// FindByExternalID resolves the companion owning a provider channel. This is
// the only join path from a push notification back to a companion.
func (r *ChannelRepository) FindByExternalID(ctx context.Context, externalChannelID string) (*webhook.Channel, error) {
	var (
		companionID               pgtype.UUID
		resourceID, validation    string
		expiresAt                 pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, `
		SELECT companion_id, resource_id, validation_token, expires_at
		FROM webhook_channels WHERE external_channel_id = $1`,
		externalChannelID,
	).Scan(&companionID, &resourceID, &validation, &expiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("webhook channel not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find webhook channel", err)
	}

	return &webhook.Channel{
		CompanionID:       pgconv.UUIDFromPgtype(companionID),
		ExternalChannelID: externalChannelID,
		ResourceID:        resourceID,
		ValidationToken:   validation,
		ExpiresAt:         pgconv.TimeFromPgtype(expiresAt),
	}, nil
}

func (r *ChannelRepository) FindByCompanion(ctx context.Context, companionID uuid.UUID) (*webhook.Channel, error) {
	var (
		externalID, resourceID, validation string
		expiresAt                          pgtype.Timestamptz
	)
	err := r.pool.QueryRow(ctx, `
		SELECT external_channel_id, resource_id, validation_token, expires_at
		FROM webhook_channels WHERE companion_id = $1`,
		pgconv.UUIDToPgtype(companionID),
	).Scan(&externalID, &resourceID, &validation, &expiresAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("webhook channel not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find webhook channel", err)
	}

	return &webhook.Channel{
		CompanionID:       companionID,
		ExternalChannelID: externalID,
		ResourceID:        resourceID,
		ValidationToken:   validation,
		ExpiresAt:         pgconv.TimeFromPgtype(expiresAt),
	}, nil
}

// DedupStore records notification identities exactly once.
type DedupStore struct {
	pool *pgxpool.Pool
}

func NewDedupStore(pool *pgxpool.Pool) *DedupStore {
	return &DedupStore{pool: pool}
}

// TryInsert returns false when the (channel, state, message) triple was
// already recorded, making duplicate notifications a no-op.
func (r *DedupStore) TryInsert(ctx context.Context, externalChannelID, resourceState string, messageNumber int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO webhook_notifications (external_channel_id, resource_state, message_number)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING`,
		externalChannelID, resourceState, messageNumber,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to record webhook notification", err)
	}
	return tag.RowsAffected() > 0, nil
}
