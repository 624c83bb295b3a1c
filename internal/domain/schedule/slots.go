package schedule

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

type SlotState string

const (
	SlotFree   SlotState = "free"
	SlotBooked SlotState = "booked"
)

// AvailabilitySlot is a derived entity: the authoritative truth for "free" is
// the absence of an overlapping busy interval and of an active appointment.
type AvailabilitySlot struct {
	CompanionID uuid.UUID
	Start       time.Time
	End         time.Time
	State       SlotState
}

// Reconcile derives the bookable slot sequence for one companion and date.
// It is pure: the same rules, busy intervals and appointment windows always
// produce an identical slice, so repeated runs without underlying changes are
// idempotent.
//
// Policy decisions, in order:
//   - overlapping working-hour windows are unioned before slotting;
//   - a busy interval that even partially covers a slot removes the slot
//     entirely (never offer a slot that could not be fully honored);
//   - a slot covered by an active internal appointment stays in the sequence
//     marked booked; internal state wins over a stale external read.
func Reconcile(
	companionID uuid.UUID,
	date CivilDate,
	rules []WorkingHoursRule,
	busy []BusyInterval,
	booked []AppointmentWindow,
	slotLen time.Duration,
) []AvailabilitySlot {
	windows := dayWindows(date, rules)

	slots := make([]AvailabilitySlot, 0, 16)
	for _, w := range windows {
		for start := w.start; !start.Add(slotLen).After(w.end); start = start.Add(slotLen) {
			end := start.Add(slotLen)
			if overlapsBusy(busy, start, end) {
				continue
			}

			state := SlotFree
			if overlapsBooked(booked, start, end) {
				state = SlotBooked
			}
			slots = append(slots, AvailabilitySlot{
				CompanionID: companionID,
				Start:       start,
				End:         end,
				State:       state,
			})
		}
	}
	return slots
}

// Free filters a reconciled sequence down to bookable slots.
func Free(slots []AvailabilitySlot) []AvailabilitySlot {
	out := make([]AvailabilitySlot, 0, len(slots))
	for _, s := range slots {
		if s.State == SlotFree {
			out = append(out, s)
		}
	}
	return out
}

type window struct {
	start time.Time
	end   time.Time
}

// dayWindows materializes the matching rules onto the date and unions
// overlapping or adjacent windows, sorted chronologically.
func dayWindows(date CivilDate, rules []WorkingHoursRule) []window {
	windows := make([]window, 0, len(rules))
	for _, r := range rules {
		start, end, ok := r.WindowOn(date)
		if !ok {
			continue
		}
		windows = append(windows, window{start: start, end: end})
	}

	sort.Slice(windows, func(i, j int) bool {
		if windows[i].start.Equal(windows[j].start) {
			return windows[i].end.Before(windows[j].end)
		}
		return windows[i].start.Before(windows[j].start)
	})

	merged := windows[:0]
	for _, w := range windows {
		if n := len(merged); n > 0 && !w.start.After(merged[n-1].end) {
			if w.end.After(merged[n-1].end) {
				merged[n-1].end = w.end
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

func overlapsBusy(busy []BusyInterval, start, end time.Time) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

func overlapsBooked(booked []AppointmentWindow, start, end time.Time) bool {
	for _, w := range booked {
		if w.Overlaps(start, end) {
			return true
		}
	}
	return false
}
