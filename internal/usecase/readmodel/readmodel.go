// Package readmodel holds query-side shapes returned by repositories
// directly to handlers, bypassing domain entities.
package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type CompanionRM struct {
	ID          uuid.UUID
	OwnerUserID uuid.UUID
	DisplayName string
	Timezone    string
}

type AppointmentRM struct {
	ID          uuid.UUID
	CompanionID uuid.UUID
	UserID      uuid.UUID
	StartsAt    time.Time
	EndsAt      time.Time
	Status      string
	CreatedAt   time.Time
}

type QuotaRM struct {
	UserID              uuid.UUID
	PlanType            string
	InteractionsAllowed *int32
	InteractionsUsed    int32
}
