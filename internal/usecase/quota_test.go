//go:build unit

package usecase_test

import (
	"context"
	"sync"
	"testing"

	"companion-booking/internal/domain/quota"
	"companion-booking/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestQuota_RecordInteraction_ConcurrentCeiling(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	repo := newFakeQuotaRepo()
	repo.set(userID, quota.PlanFree, ptr32(10), 0)
	uc := usecase.NewQuotaUseCase(repo)

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = uc.RecordInteraction(context.Background(), userID)
		}(i)
	}
	wg.Wait()

	granted := 0
	for _, err := range errs {
		if err == nil {
			granted++
			continue
		}
		require.ErrorIs(t, err, usecase.ErrQuotaExceeded)
	}
	require.Equal(t, 10, granted)
	require.Equal(t, int32(10), repo.used(userID))
}

func TestQuota_RecordInteraction_UnlimitedPlan(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	repo := newFakeQuotaRepo()
	repo.set(userID, quota.PlanPremium, nil, 0)
	uc := usecase.NewQuotaUseCase(repo)

	for i := 0; i < 200; i++ {
		require.NoError(t, uc.RecordInteraction(context.Background(), userID))
	}
}

func TestQuota_RecordInteraction_MissingQuota(t *testing.T) {
	t.Parallel()

	uc := usecase.NewQuotaUseCase(newFakeQuotaRepo())
	err := uc.RecordInteraction(context.Background(), uuid.New())
	require.ErrorIs(t, err, usecase.ErrQuotaNotFound)
}

func TestQuota_GetQuota(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	repo := newFakeQuotaRepo()
	repo.set(userID, quota.PlanStandard, ptr32(100), 42)
	uc := usecase.NewQuotaUseCase(repo)

	q, err := uc.GetQuota(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, quota.PlanStandard, q.PlanType)
	require.Equal(t, int32(42), q.InteractionsUsed)
	require.Equal(t, int32(58), *q.Remaining())

	_, err = uc.GetQuota(context.Background(), uuid.New())
	require.ErrorIs(t, err, usecase.ErrQuotaNotFound)
}

func TestQuota_ApplyPlanChange(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	repo := newFakeQuotaRepo()
	repo.set(userID, quota.PlanFree, ptr32(10), 9)
	uc := usecase.NewQuotaUseCase(repo)

	require.NoError(t, uc.ApplyPlanChange(context.Background(), userID, "standard"))

	q, err := uc.GetQuota(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, quota.PlanStandard, q.PlanType)
	require.Equal(t, int32(100), *q.InteractionsAllowed)
	require.Zero(t, q.InteractionsUsed)
}

func TestQuota_ApplyPlanChange_UnknownPlan(t *testing.T) {
	t.Parallel()

	uc := usecase.NewQuotaUseCase(newFakeQuotaRepo())
	err := uc.ApplyPlanChange(context.Background(), uuid.New(), "platinum")
	require.ErrorIs(t, err, quota.ErrUnknownPlan)
}
