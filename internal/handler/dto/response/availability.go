package response

import (
	"time"

	"companion-booking/internal/domain/schedule"
)

type SlotResponse struct {
	StartsAt time.Time `json:"startsAt"`
	EndsAt   time.Time `json:"endsAt"`
	State    string    `json:"state"`
}

type AvailabilityResponse struct {
	Date  string         `json:"date"`
	Slots []SlotResponse `json:"slots"`
}

func FromSlots(date schedule.CivilDate, slots []schedule.AvailabilitySlot) *AvailabilityResponse {
	out := make([]SlotResponse, len(slots))
	for i, s := range slots {
		out[i] = SlotResponse{
			StartsAt: s.Start,
			EndsAt:   s.End,
			State:    string(s.State),
		}
	}
	return &AvailabilityResponse{
		Date:  date.String(),
		Slots: out,
	}
}
