package quota

import (
	"errors"

	"github.com/google/uuid"
)

var ErrUnknownPlan = errors.New("unknown plan type")

type PlanType string

const (
	PlanFree     PlanType = "free"
	PlanStandard PlanType = "standard"
	PlanPremium  PlanType = "premium"
)

func (p PlanType) IsValid() bool {
	switch p {
	case PlanFree, PlanStandard, PlanPremium:
		return true
	default:
		return false
	}
}

// Allowance returns the interaction ceiling for a plan; nil means unlimited.
func (p PlanType) Allowance() *int32 {
	switch p {
	case PlanFree:
		return ptr(int32(10))
	case PlanStandard:
		return ptr(int32(100))
	case PlanPremium:
		return nil
	default:
		return ptr(int32(0))
	}
}

func NewPlanType(s string) (PlanType, error) {
	p := PlanType(s)
	if !p.IsValid() {
		return "", ErrUnknownPlan
	}
	return p, nil
}

// SubscriptionQuota is the per-user interaction ledger. InteractionsUsed is
// monotonically non-decreasing within a billing period; it resets only through
// a billing event.
type SubscriptionQuota struct {
	UserID              uuid.UUID
	PlanType            PlanType
	InteractionsAllowed *int32 // nil = unlimited
	InteractionsUsed    int32
}

func (q SubscriptionQuota) Unlimited() bool {
	return q.InteractionsAllowed == nil
}

// Remaining returns nil for unlimited plans.
func (q SubscriptionQuota) Remaining() *int32 {
	if q.InteractionsAllowed == nil {
		return nil
	}
	left := *q.InteractionsAllowed - q.InteractionsUsed
	if left < 0 {
		left = 0
	}
	return &left
}

func (q SubscriptionQuota) Exhausted() bool {
	return q.InteractionsAllowed != nil && q.InteractionsUsed >= *q.InteractionsAllowed
}

func ptr(v int32) *int32 {
	return &v
}
