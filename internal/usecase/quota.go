package usecase

import (
	"context"

	"companion-booking/internal/domain/quota"
	"companion-booking/internal/infra"
	"companion-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// QuotaUseCase exposes the interaction ledger: reads for the quota API,
// RecordInteraction for metered features, and ApplyPlanChange for billing
// events. Plan changes reset the used counter.
type QuotaUseCase interface {
	GetQuota(ctx context.Context, userID uuid.UUID) (*quota.SubscriptionQuota, error)
	RecordInteraction(ctx context.Context, userID uuid.UUID) error
	ApplyPlanChange(ctx context.Context, userID uuid.UUID, plan string) error
}

type quotaUseCaseImpl struct {
	quotaRepo QuotaRepository
}

func NewQuotaUseCase(quotaRepo QuotaRepository) QuotaUseCase {
	return &quotaUseCaseImpl{quotaRepo: quotaRepo}
}

func (q *quotaUseCaseImpl) GetQuota(ctx context.Context, userID uuid.UUID) (*quota.SubscriptionQuota, error) {
	sq, err := q.quotaRepo.FindByUser(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrQuotaNotFound
		}
		return nil, errs.Wrap(err, "failed to load quota")
	}
	return sq, nil
}

func (q *quotaUseCaseImpl) RecordInteraction(ctx context.Context, userID uuid.UUID) error {
	if err := q.quotaRepo.Reserve(ctx, userID); err != nil {
		switch {
		case infra.IsKind(err, infra.KindConflict):
			return ErrQuotaExceeded
		case infra.IsKind(err, infra.KindNotFound):
			return ErrQuotaNotFound
		default:
			return errs.Wrap(err, "failed to record interaction")
		}
	}
	return nil
}

func (q *quotaUseCaseImpl) ApplyPlanChange(ctx context.Context, userID uuid.UUID, plan string) error {
	planType, err := quota.NewPlanType(plan)
	if err != nil {
		return err
	}
	if err := q.quotaRepo.UpsertPlan(ctx, userID, planType, planType.Allowance()); err != nil {
		return errs.Wrap(err, "failed to apply plan change")
	}
	return nil
}
