package schedule

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidWorkingHours = errors.New("invalid working hours rule")
	ErrUnknownTimezone     = errors.New("unknown timezone")
)

// WorkingHoursRule declares a weekly recurring availability window in the
// companion's local timezone. Start/End are minutes from local midnight.
// Rules are treated as immutable snapshots for the duration of one
// reconciliation run.
type WorkingHoursRule struct {
	CompanionID uuid.UUID
	Weekday     time.Weekday
	StartMinute int
	EndMinute   int
	Timezone    string
}

func NewWorkingHoursRule(companionID uuid.UUID, weekday time.Weekday, startMinute, endMinute int, timezone string) (WorkingHoursRule, error) {
	if startMinute < 0 || endMinute > 24*60 || startMinute >= endMinute {
		return WorkingHoursRule{}, ErrInvalidWorkingHours
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return WorkingHoursRule{}, ErrUnknownTimezone
	}
	return WorkingHoursRule{
		CompanionID: companionID,
		Weekday:     weekday,
		StartMinute: startMinute,
		EndMinute:   endMinute,
		Timezone:    timezone,
	}, nil
}

// WindowOn materializes the rule onto a civil date, returning UTC instants.
// The rule applies only when the date's weekday (in the rule's timezone)
// matches; otherwise ok is false.
func (r WorkingHoursRule) WindowOn(date CivilDate) (start, end time.Time, ok bool) {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	midnight := time.Date(date.Year, date.Month, date.Day, 0, 0, 0, 0, loc)
	if midnight.Weekday() != r.Weekday {
		return time.Time{}, time.Time{}, false
	}

	start = midnight.Add(time.Duration(r.StartMinute) * time.Minute).UTC()
	end = midnight.Add(time.Duration(r.EndMinute) * time.Minute).UTC()
	return start, end, true
}

// CivilDate is a timezone-free calendar date. Reconciliation is keyed by it so
// "the same day" means the companion's local day, not a UTC day.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) CivilDate {
	return CivilDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return CivilDate{}, err
	}
	return DateOf(t), nil
}

func (d CivilDate) AddDays(n int) CivilDate {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return DateOf(t)
}

func (d CivilDate) String() string {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}
