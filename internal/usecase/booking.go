package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"companion-booking/internal/domain/appointment"
	"companion-booking/internal/domain/quota"
	"companion-booking/internal/infra"
	"companion-booking/internal/infra/repository"
	"companion-booking/internal/pkg/clock"
	"companion-booking/internal/pkg/config"
	"companion-booking/internal/pkg/errs"
	"companion-booking/internal/pkg/keylock"
	"companion-booking/internal/usecase/readmodel"
	"companion-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCompanionNotFound   = errors.New("companion not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotSlotOwner        = errors.New("appointment belongs to another user")
	ErrSlotTaken           = errors.New("slot already booked")
	ErrSlotBusy            = errors.New("slot is being booked by another request")
	ErrQuotaExceeded       = errors.New("interaction quota exhausted")
	ErrQuotaNotFound       = errors.New("no subscription quota for user")

	ErrBookingStoreFault = errors.New("booking store operation failed")
)

type AppointmentRepository interface {
	Create(ctx context.Context, db repository.DBTX, a *appointment.Appointment) error
	UpdateStatus(ctx context.Context, db repository.DBTX, id uuid.UUID, status appointment.Status) error
	HasActiveOverlap(ctx context.Context, db repository.DBTX, companionID uuid.UUID, start, end time.Time) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*appointment.Appointment, error)
}

type QuotaRepository interface {
	Reserve(ctx context.Context, userID uuid.UUID) error
	Release(ctx context.Context, userID uuid.UUID) error
	FindByUser(ctx context.Context, userID uuid.UUID) (*quota.SubscriptionQuota, error)
	UpsertPlan(ctx context.Context, userID uuid.UUID, plan quota.PlanType, allowed *int32) error
}

type CompanionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.CompanionRM, error)
}

// BookingUseCase books and cancels appointments. Booking is atomic across
// the slot check, the quota reservation, and the appointment insert: a
// failure at any step leaves no partial state behind.
type BookingUseCase interface {
	Book(ctx context.Context, userID, companionID uuid.UUID, startsAt time.Time) (*appointment.Appointment, error)
	Cancel(ctx context.Context, userID, appointmentID uuid.UUID) error
	GetAppointment(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error)
	UserAppointments(ctx context.Context, userID uuid.UUID) ([]*appointment.Appointment, error)
}

type bookingUseCaseImpl struct {
	apptRepo      AppointmentRepository
	quotaRepo     QuotaRepository
	companionRepo CompanionRepository
	tx            shared.TxRunner
	db            repository.DBTX
	locks         *keylock.KeyedMutex
	clock         clock.Clock
	bookingCfg    config.BookingConfig
}

func NewBookingUseCase(
	apptRepo AppointmentRepository,
	quotaRepo QuotaRepository,
	companionRepo CompanionRepository,
	tx shared.TxRunner,
	db repository.DBTX,
	locks *keylock.KeyedMutex,
	clk clock.Clock,
	bookingCfg config.BookingConfig,
) BookingUseCase {
	return &bookingUseCaseImpl{
		apptRepo:      apptRepo,
		quotaRepo:     quotaRepo,
		companionRepo: companionRepo,
		tx:            tx,
		db:            db,
		locks:         locks,
		clock:         clk,
		bookingCfg:    bookingCfg,
	}
}

func (b *bookingUseCaseImpl) Book(ctx context.Context, userID, companionID uuid.UUID, startsAt time.Time) (*appointment.Appointment, error) {
	slot, err := appointment.NewTimeSlot(startsAt, startsAt.Add(b.bookingCfg.SlotLength()))
	if err != nil {
		return nil, err
	}
	if err := slot.ValidateBookable(b.clock.Now(), b.bookingCfg.SlotLength()); err != nil {
		return nil, err
	}

	if _, err := b.companionRepo.FindByID(ctx, companionID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCompanionNotFound
		}
		return nil, errs.Mark(err, ErrBookingStoreFault)
	}

	release, err := b.acquireSlotLock(ctx, companionID, slot.Start())
	if err != nil {
		return nil, err
	}
	defer release()

	taken, err := b.apptRepo.HasActiveOverlap(ctx, b.db, companionID, slot.Start(), slot.End())
	if err != nil {
		return nil, errs.Mark(err, ErrBookingStoreFault)
	}
	if taken {
		return nil, ErrSlotTaken
	}

	if err := b.quotaRepo.Reserve(ctx, userID); err != nil {
		switch {
		case infra.IsKind(err, infra.KindConflict):
			return nil, ErrQuotaExceeded
		case infra.IsKind(err, infra.KindNotFound):
			return nil, ErrQuotaNotFound
		default:
			return nil, errs.Mark(err, ErrBookingStoreFault)
		}
	}

	appt := appointment.NewAppointment(companionID, userID, slot)
	if err := b.commitBooking(ctx, appt); err != nil {
		b.releaseQuota(ctx, userID)
		return nil, err
	}
	return appt, nil
}

func (b *bookingUseCaseImpl) Cancel(ctx context.Context, userID, appointmentID uuid.UUID) error {
	appt, err := b.loadAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.UserID() != userID {
		return ErrNotSlotOwner
	}
	if err := appt.Cancel(); err != nil {
		return err
	}

	// The consumed interaction stays consumed: usage only decreases on a
	// billing rollover, not when the slot is freed.
	err = b.tx.InTx(ctx, func(db repository.DBTX) error {
		return b.apptRepo.UpdateStatus(ctx, db, appt.ID(), appointment.StatusCanceled)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrAppointmentNotFound
		}
		return errs.Mark(err, ErrBookingStoreFault)
	}
	return nil
}

func (b *bookingUseCaseImpl) GetAppointment(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	return b.loadAppointment(ctx, id)
}

func (b *bookingUseCaseImpl) UserAppointments(ctx context.Context, userID uuid.UUID) ([]*appointment.Appointment, error) {
	appts, err := b.apptRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrBookingStoreFault)
	}
	return appts, nil
}

func (b *bookingUseCaseImpl) loadAppointment(ctx context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	appt, err := b.apptRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, errs.Mark(err, ErrBookingStoreFault)
	}
	return appt, nil
}

// acquireSlotLock serializes booking attempts on one companion slot. A
// caller that cannot get the lock within the configured wait loses to the
// holder rather than queueing indefinitely.
func (b *bookingUseCaseImpl) acquireSlotLock(ctx context.Context, companionID uuid.UUID, start time.Time) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, b.bookingCfg.SlotLockWait)
	defer cancel()

	key := "slot:" + companionID.String() + ":" + start.UTC().Format(time.RFC3339)
	release, err := b.locks.Acquire(lockCtx, key)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrSlotBusy
		}
		return nil, err
	}
	return release, nil
}

// commitBooking inserts the pending appointment and confirms it in one
// transaction. The exclusion constraint is the last line of defense against
// a racing insert that slipped past the overlap check.
func (b *bookingUseCaseImpl) commitBooking(ctx context.Context, appt *appointment.Appointment) error {
	err := b.tx.InTx(ctx, func(db repository.DBTX) error {
		if err := b.apptRepo.Create(ctx, db, appt); err != nil {
			return err
		}
		if err := appt.Confirm(); err != nil {
			return err
		}
		return b.apptRepo.UpdateStatus(ctx, db, appt.ID(), appointment.StatusConfirmed)
	})
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return ErrSlotTaken
		}
		return errs.Mark(err, ErrBookingStoreFault)
	}
	return nil
}

func (b *bookingUseCaseImpl) releaseQuota(ctx context.Context, userID uuid.UUID) {
	if err := b.quotaRepo.Release(ctx, userID); err != nil {
		slog.Error("failed to release quota reservation",
			"user_id", userID, "error", err)
	}
}
