package response

import (
	"companion-booking/internal/domain/quota"

	"github.com/google/uuid"
)

type QuotaResponse struct {
	UserID    uuid.UUID `json:"userId"`
	Plan      string    `json:"plan"`
	Allowed   *int32    `json:"allowed"`
	Used      int32     `json:"used"`
	Remaining *int32    `json:"remaining"`
	Unlimited bool      `json:"unlimited"`
}

func FromQuota(q *quota.SubscriptionQuota) *QuotaResponse {
	return &QuotaResponse{
		UserID:    q.UserID,
		Plan:      string(q.PlanType),
		Allowed:   q.InteractionsAllowed,
		Used:      q.InteractionsUsed,
		Remaining: q.Remaining(),
		Unlimited: q.Unlimited(),
	}
}
