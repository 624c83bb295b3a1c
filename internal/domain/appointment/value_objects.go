package appointment

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeSlot = errors.New("invalid time slot")
	ErrSlotInPast      = errors.New("slot start cannot be in the past")
	ErrWrongSlotLength = errors.New("slot does not match the configured slot length")
	ErrSlotNotAligned  = errors.New("slot start is not aligned to the slot length")
)

// TimeSlot is a half-open [start,end) interval, stored in UTC.
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !start.Before(end) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}
	return TimeSlot{
		start: start.UTC(),
		end:   end.UTC(),
	}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// Overlaps uses half-open semantics: back-to-back slots do not overlap.
func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return ts.start.Before(other.end) && other.start.Before(ts.end)
}

func (ts TimeSlot) ToTstzrange() string {
	return fmt.Sprintf("[%s,%s)", ts.start.Format(time.RFC3339), ts.end.Format(time.RFC3339))
}

// ValidateBookable checks the granularity contract: the slot must start in the
// future, span exactly one slot length, and start on a slot boundary.
func (ts TimeSlot) ValidateBookable(now time.Time, slotLen time.Duration) error {
	if !ts.start.After(now) {
		return ErrSlotInPast
	}
	if ts.Duration() != slotLen {
		return ErrWrongSlotLength
	}
	if ts.start.Sub(ts.start.Truncate(slotLen)) != 0 {
		return ErrSlotNotAligned
	}
	return nil
}
