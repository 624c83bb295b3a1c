package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"companion-booking/internal/domain/schedule"
	"companion-booking/internal/metrics"
	"companion-booking/internal/pkg/config"
	"companion-booking/internal/pkg/errs"
	"companion-booking/internal/pkg/keylock"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

var (
	ErrReconcileBusy = errors.New("reconciliation already in progress")
)

const snapshotCacheSize = 1024

type WorkingHoursRepository interface {
	ListByCompanion(ctx context.Context, companionID uuid.UUID) ([]schedule.WorkingHoursRule, error)
}

type AppointmentWindowLister interface {
	ListActiveWindows(ctx context.Context, companionID uuid.UUID, from, to time.Time) ([]schedule.AppointmentWindow, error)
}

// AvailabilityReconciler computes bookable slots for a companion and day.
// Runs for the same companion are serialized; concurrent callers wait up to
// the configured bound and then fail instead of piling up.
type AvailabilityReconciler interface {
	Availability(ctx context.Context, companionID uuid.UUID, date schedule.CivilDate) ([]schedule.AvailabilitySlot, error)
	ResyncRange(ctx context.Context, companionID uuid.UUID, from schedule.CivilDate, days int) error
}

type availabilityReconcilerImpl struct {
	hoursRepo  WorkingHoursRepository
	apptLister AppointmentWindowLister
	gateway    CalendarGateway
	locks      *keylock.KeyedMutex
	snapshots  *lru.Cache[string, []schedule.BusyInterval]
	bookingCfg config.BookingConfig
}

func NewAvailabilityReconciler(
	hoursRepo WorkingHoursRepository,
	apptLister AppointmentWindowLister,
	gateway CalendarGateway,
	locks *keylock.KeyedMutex,
	bookingCfg config.BookingConfig,
) (AvailabilityReconciler, error) {
	snapshots, err := lru.New[string, []schedule.BusyInterval](snapshotCacheSize)
	if err != nil {
		return nil, errs.Wrap(err, "failed to build snapshot cache")
	}
	return &availabilityReconcilerImpl{
		hoursRepo:  hoursRepo,
		apptLister: apptLister,
		gateway:    gateway,
		locks:      locks,
		snapshots:  snapshots,
		bookingCfg: bookingCfg,
	}, nil
}

func (r *availabilityReconcilerImpl) Availability(ctx context.Context, companionID uuid.UUID, date schedule.CivilDate) ([]schedule.AvailabilitySlot, error) {
	lockCtx, cancel := context.WithTimeout(ctx, r.bookingCfg.ReconcileWait)
	defer cancel()

	release, err := r.locks.Acquire(lockCtx, "reconcile:"+companionID.String())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrReconcileBusy
		}
		return nil, err
	}
	defer release()

	rules, err := r.hoursRepo.ListByCompanion(ctx, companionID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load working hours")
	}

	from, to, open := dayBounds(date, rules)
	if !open {
		return []schedule.AvailabilitySlot{}, nil
	}

	busy, err := r.fetchBusy(ctx, companionID, date, from, to)
	if err != nil {
		return nil, err
	}

	booked, err := r.apptLister.ListActiveWindows(ctx, companionID, from, to)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load active appointments")
	}

	return schedule.Reconcile(companionID, date, rules, busy, booked, r.bookingCfg.SlotLength()), nil
}

// ResyncRange recomputes availability for [from, from+days). Day failures
// are logged and skipped so one bad day does not starve the rest; the last
// error is returned for visibility.
func (r *availabilityReconcilerImpl) ResyncRange(ctx context.Context, companionID uuid.UUID, from schedule.CivilDate, days int) error {
	var lastErr error
	for i := 0; i < days; i++ {
		date := from.AddDays(i)
		if _, err := r.Availability(ctx, companionID, date); err != nil {
			slog.Warn("resync failed for day",
				"companion_id", companionID,
				"date", date.String(),
				"error", err)
			lastErr = err
		}
	}
	return lastErr
}

// fetchBusy asks the provider for busy intervals and keeps a per-day
// snapshot. When the provider is down the last snapshot is served so
// availability degrades to slightly stale instead of failing outright.
func (r *availabilityReconcilerImpl) fetchBusy(ctx context.Context, companionID uuid.UUID, date schedule.CivilDate, from, to time.Time) ([]schedule.BusyInterval, error) {
	key := companionID.String() + "|" + date.String()

	busy, err := r.gateway.BusyIntervals(ctx, companionID, from, to)
	if err != nil {
		if errors.Is(err, ErrExternalService) {
			if snapshot, ok := r.snapshots.Get(key); ok {
				metrics.ReconcileRunsTotal.WithLabelValues(metrics.ReconcileSnapshot).Inc()
				slog.Warn("provider unavailable, serving busy snapshot",
					"companion_id", companionID,
					"date", date.String())
				return snapshot, nil
			}
		}
		metrics.ReconcileRunsTotal.WithLabelValues(metrics.ReconcileFailed).Inc()
		return nil, err
	}

	metrics.ReconcileRunsTotal.WithLabelValues(metrics.ReconcileFresh).Inc()
	r.snapshots.Add(key, busy)
	return busy, nil
}

// dayBounds returns the earliest start and latest end over the rules that
// apply to date. open is false when no rule covers the day.
func dayBounds(date schedule.CivilDate, rules []schedule.WorkingHoursRule) (from, to time.Time, open bool) {
	for _, rule := range rules {
		start, end, ok := rule.WindowOn(date)
		if !ok {
			continue
		}
		if !open || start.Before(from) {
			from = start
		}
		if !open || end.After(to) {
			to = end
		}
		open = true
	}
	return from, to, open
}
