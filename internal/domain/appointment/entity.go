package appointment

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus   = errors.New("invalid appointment status")
	ErrAlreadyCanceled = errors.New("appointment is already canceled")
	ErrNotPending      = errors.New("only pending appointments can be confirmed")
)

// Appointment is the only long-lived record the booking protocol writes.
// Lifecycle: pending on creation, confirmed on commit, canceled on explicit
// cancel or failed commit. Per companion, no two active (pending/confirmed)
// appointments may overlap.
type Appointment struct {
	id          uuid.UUID
	companionID uuid.UUID
	userID      uuid.UUID
	slot        TimeSlot
	status      Status
	createdAt   time.Time
	updatedAt   time.Time
}

func NewAppointment(companionID, userID uuid.UUID, slot TimeSlot) *Appointment {
	return &Appointment{
		id:          uuid.New(),
		companionID: companionID,
		userID:      userID,
		slot:        slot,
		status:      StatusPending,
	}
}

func ReconstructAppointment(
	id, companionID, userID uuid.UUID,
	slot TimeSlot,
	status Status,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:          id,
		companionID: companionID,
		userID:      userID,
		slot:        slot,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (a *Appointment) Confirm() error {
	if a.status != StatusPending {
		return ErrNotPending
	}
	a.status = StatusConfirmed
	return nil
}

func (a *Appointment) Cancel() error {
	if a.status == StatusCanceled {
		return ErrAlreadyCanceled
	}
	a.status = StatusCanceled
	return nil
}

func (a *Appointment) IsActive() bool {
	return a.status.IsActive()
}

func (a *Appointment) HasExpired(now time.Time) bool {
	return now.After(a.slot.End())
}

func (a *Appointment) ID() uuid.UUID          { return a.id }
func (a *Appointment) CompanionID() uuid.UUID { return a.companionID }
func (a *Appointment) UserID() uuid.UUID      { return a.userID }
func (a *Appointment) Slot() TimeSlot         { return a.slot }
func (a *Appointment) Status() Status         { return a.status }
func (a *Appointment) CreatedAt() time.Time   { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time   { return a.updatedAt }
