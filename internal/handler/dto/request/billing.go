package request

import (
	"github.com/google/uuid"
)

// BillingEventRequest is the payload posted by the billing provider when a
// subscription changes.
type BillingEventRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	Plan   string    `json:"plan" binding:"required"`
}
