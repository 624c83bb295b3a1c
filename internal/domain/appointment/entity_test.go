//go:build unit

package appointment_test

import (
	"testing"
	"time"

	"companion-booking/internal/domain/appointment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSlot(t *testing.T, start, end time.Time) appointment.TimeSlot {
	t.Helper()
	slot, err := appointment.NewTimeSlot(start, end)
	require.NoError(t, err)
	return slot
}

func TestTimeSlot(t *testing.T) {
	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)

	t.Run("rejects empty and inverted ranges", func(t *testing.T) {
		_, err := appointment.NewTimeSlot(base, base)
		assert.ErrorIs(t, err, appointment.ErrInvalidTimeSlot)

		_, err = appointment.NewTimeSlot(base.Add(time.Hour), base)
		assert.ErrorIs(t, err, appointment.ErrInvalidTimeSlot)
	})

	t.Run("overlap is half-open", func(t *testing.T) {
		a := mustSlot(t, base, base.Add(30*time.Minute))
		backToBack := mustSlot(t, base.Add(30*time.Minute), base.Add(time.Hour))
		partial := mustSlot(t, base.Add(15*time.Minute), base.Add(45*time.Minute))

		assert.False(t, a.Overlaps(backToBack))
		assert.False(t, backToBack.Overlaps(a))
		assert.True(t, a.Overlaps(partial))
		assert.True(t, partial.Overlaps(a))
	})

	t.Run("bookable validation", func(t *testing.T) {
		now := base.Add(-24 * time.Hour)
		slotLen := 30 * time.Minute

		ok := mustSlot(t, base, base.Add(slotLen))
		assert.NoError(t, ok.ValidateBookable(now, slotLen))

		past := mustSlot(t, now.Add(-time.Hour), now.Add(-30*time.Minute))
		assert.ErrorIs(t, past.ValidateBookable(now, slotLen), appointment.ErrSlotInPast)

		long := mustSlot(t, base, base.Add(time.Hour))
		assert.ErrorIs(t, long.ValidateBookable(now, slotLen), appointment.ErrWrongSlotLength)

		unaligned := mustSlot(t, base.Add(10*time.Minute), base.Add(40*time.Minute))
		assert.ErrorIs(t, unaligned.ValidateBookable(now, slotLen), appointment.ErrSlotNotAligned)
	})
}

func TestAppointmentLifecycle(t *testing.T) {
	base := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	slot := mustSlot(t, base, base.Add(30*time.Minute))

	t.Run("created pending, confirmed on commit", func(t *testing.T) {
		a := appointment.NewAppointment(uuid.New(), uuid.New(), slot)
		assert.Equal(t, appointment.StatusPending, a.Status())
		assert.True(t, a.IsActive())

		require.NoError(t, a.Confirm())
		assert.Equal(t, appointment.StatusConfirmed, a.Status())
	})

	t.Run("confirm requires pending", func(t *testing.T) {
		a := appointment.NewAppointment(uuid.New(), uuid.New(), slot)
		require.NoError(t, a.Confirm())
		assert.ErrorIs(t, a.Confirm(), appointment.ErrNotPending)
	})

	t.Run("cancel frees the slot exactly once", func(t *testing.T) {
		a := appointment.NewAppointment(uuid.New(), uuid.New(), slot)
		require.NoError(t, a.Cancel())
		assert.False(t, a.IsActive())
		assert.ErrorIs(t, a.Cancel(), appointment.ErrAlreadyCanceled)
	})

	t.Run("expiry", func(t *testing.T) {
		a := appointment.NewAppointment(uuid.New(), uuid.New(), slot)
		assert.False(t, a.HasExpired(base.Add(15*time.Minute)))
		assert.True(t, a.HasExpired(base.Add(31*time.Minute)))
	})
}
