package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
)

func TestCancelFreesSlotAndWakesWaitlist(t *testing.T) {
	f := newFixture(t)
	ap := f.book("2026-03-03", "10:00")

	entry, err := f.waitlist.Join(f.ctx, JoinWaitlistInput{
		BarbershopID: f.shop.ID,
		BarberID:     f.barber.ID,
		Date:         "2026-03-03",
		ClientName:   "Bruno",
		ClientPhone:  "+5511977770000",
	})
	require.NoError(t, err)

	again, err := f.waitlist.Join(f.ctx, JoinWaitlistInput{
		BarbershopID: f.shop.ID,
		BarberID:     f.barber.ID,
		Date:         "2026-03-03",
		ClientName:   "Bruno",
		ClientPhone:  "+5511977770000",
	})
	require.NoError(t, err)
	assert.Equal(t, entry.ID, again.ID)

	sub := f.hub.Subscribe(nil)
	actor := uint(99)
	cancelled, err := f.cancel.Execute(f.ctx, CancelInput{
		BarbershopID:  f.shop.ID,
		AppointmentID: ap.ID,
		ActorID:       &actor,
		Reason:        "client asked",
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	update := <-sub.C()
	assert.Equal(t, "2026-03-03", update.Date)

	assert.Equal(t, []notification.Kind{
		notification.KindBookingConfirmed,
		notification.KindBookingCancelled,
		notification.KindWaitlistOpening,
	}, f.msgs.kinds())

	entries, err := f.waitlist.List(f.ctx, f.shop.ID, f.barber.ID, "2026-03-03")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.WaitlistNotified, entries[0].Status)

	// the slot can be booked again
	rebooked := f.book("2026-03-03", "10:00")
	assert.NotEqual(t, ap.ID, rebooked.ID)
}

func TestCancelTwiceIsInvalidState(t *testing.T) {
	f := newFixture(t)
	ap := f.book("2026-03-03", "10:00")

	_, err := f.cancel.Execute(f.ctx, CancelInput{BarbershopID: f.shop.ID, AppointmentID: ap.ID})
	require.NoError(t, err)

	_, err = f.cancel.Execute(f.ctx, CancelInput{BarbershopID: f.shop.ID, AppointmentID: ap.ID})
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))
}

func TestCancelScopedToBarber(t *testing.T) {
	f := newFixture(t)
	ap := f.book("2026-03-03", "10:00")
	other := uint(12345)

	_, err := f.cancel.Execute(f.ctx, CancelInput{BarbershopID: f.shop.ID, AppointmentID: ap.ID, BarberID: &other})
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))
}

func TestUpdateStatusLifecycle(t *testing.T) {
	f := newFixture(t)
	ap := f.book("2026-03-03", "10:00")

	steps := []domain.Status{domain.StatusConfirmed, domain.StatusArrived, domain.StatusInProgress, domain.StatusCompleted}
	for _, to := range steps {
		got, err := f.status.Execute(f.ctx, UpdateStatusInput{
			BarbershopID:  f.shop.ID,
			AppointmentID: ap.ID,
			Status:        string(to),
		})
		require.NoError(t, err, "to %s", to)
		assert.Equal(t, string(to), got.Status)
	}

	stored, err := f.store.GetAppointment(f.ctx, f.shop.ID, ap.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.ConfirmedAt)
	assert.NotNil(t, stored.CompletedAt)

	_, err = f.status.Execute(f.ctx, UpdateStatusInput{
		BarbershopID:  f.shop.ID,
		AppointmentID: ap.ID,
		Status:        string(domain.StatusConfirmed),
	})
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))
}

func TestUpdateStatusNoShowFreesSlot(t *testing.T) {
	f := newFixture(t)
	ap := f.book("2026-03-03", "10:00")

	_, err := f.status.Execute(f.ctx, UpdateStatusInput{
		BarbershopID:  f.shop.ID,
		AppointmentID: ap.ID,
		Status:        string(domain.StatusNoShow),
	})
	require.NoError(t, err)

	check, err := f.check.Execute(f.ctx, CheckSlotInput{
		BarbershopID: f.shop.ID,
		BarberID:     f.barber.ID,
		Date:         "2026-03-03",
		Start:        "10:00",
		End:          "10:30",
	})
	require.NoError(t, err)
	assert.True(t, check.Available)
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	ap := f.book("2026-03-03", "10:00")

	_, err := f.status.Execute(f.ctx, UpdateStatusInput{
		BarbershopID:  f.shop.ID,
		AppointmentID: ap.ID,
		Status:        "teleported",
	})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestBookingFulfilsWaitlistEntry(t *testing.T) {
	f := newFixture(t)

	_, err := f.waitlist.Join(f.ctx, JoinWaitlistInput{
		BarbershopID: f.shop.ID,
		BarberID:     f.barber.ID,
		Date:         "2026-03-03",
		ClientName:   "Ana",
		ClientPhone:  "+5511999990000",
	})
	require.NoError(t, err)

	f.book("2026-03-03", "15:00")

	entries, err := f.waitlist.List(f.ctx, f.shop.ID, f.barber.ID, "2026-03-03")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.WaitlistFulfilled, entries[0].Status)
}

func TestWaitlistRejectsPastDate(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	_, err := f.waitlist.Join(f.ctx, JoinWaitlistInput{
		BarbershopID: f.shop.ID,
		BarberID:     f.barber.ID,
		Date:         "2026-03-03",
		ClientName:   "Ana",
		ClientPhone:  "+5511999990000",
	})
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestStaleTransitionCannotReviveCancelled(t *testing.T) {
	f := newFixture(t)
	ap := f.book("2026-03-03", "10:00")

	stale, err := f.store.GetAppointment(f.ctx, f.shop.ID, ap.ID)
	require.NoError(t, err)

	_, err = f.cancel.Execute(f.ctx, CancelInput{BarbershopID: f.shop.ID, AppointmentID: ap.ID, Reason: "client asked"})
	require.NoError(t, err)

	from := stale.Status
	require.NoError(t, domain.Transition(stale, domain.StatusConfirmed, nil, "", f.now))
	err = f.store.UpdateAppointment(f.ctx, stale, from)
	assert.ErrorIs(t, err, domain.ErrStatusChanged)
	assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))

	got, err := f.store.GetAppointment(f.ctx, f.shop.ID, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
	assert.NotNil(t, got.CancelledAt)
}
