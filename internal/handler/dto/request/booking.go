package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	CompanionID uuid.UUID `json:"companionId" binding:"required"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
}
