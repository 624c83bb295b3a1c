package schedule

import (
	"time"

	"github.com/google/uuid"
)

// BusyInterval mirrors one opaque busy block from the external calendar.
// Intervals are ephemeral: recomputed on every reconciliation run and never
// persisted.
type BusyInterval struct {
	CompanionID uuid.UUID
	Start       time.Time
	End         time.Time
}

// Overlaps uses half-open [start,end) semantics.
func (b BusyInterval) Overlaps(start, end time.Time) bool {
	return b.Start.Before(end) && start.Before(b.End)
}

// AppointmentWindow is the [start,end) range of an internally booked
// (pending or confirmed) appointment, as seen by the reconciler.
type AppointmentWindow struct {
	Start time.Time
	End   time.Time
}

func (w AppointmentWindow) Overlaps(start, end time.Time) bool {
	return w.Start.Before(end) && start.Before(w.End)
}
