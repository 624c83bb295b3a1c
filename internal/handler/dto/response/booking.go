package response

import (
	"time"

	"companion-booking/internal/domain/appointment"

	"github.com/google/uuid"
)

type AppointmentResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanionID uuid.UUID `json:"companionId"`
	UserID      uuid.UUID `json:"userId"`
	StartsAt    time.Time `json:"startsAt"`
	EndsAt      time.Time `json:"endsAt"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromAppointment(a *appointment.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:          a.ID(),
		CompanionID: a.CompanionID(),
		UserID:      a.UserID(),
		StartsAt:    a.Slot().Start(),
		EndsAt:      a.Slot().End(),
		Status:      a.Status().String(),
		CreatedAt:   a.CreatedAt(),
	}
}

func FromAppointments(appts []*appointment.Appointment) []*AppointmentResponse {
	out := make([]*AppointmentResponse, len(appts))
	for i, a := range appts {
		out[i] = FromAppointment(a)
	}
	return out
}
