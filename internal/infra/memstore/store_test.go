package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func appointmentAt(barberID uint, code string, h, m, minutes int) *models.Appointment {
	start := time.Date(2026, 3, 3, h, m, 0, 0, time.UTC)
	return &models.Appointment{
		BarbershopID:     1,
		BarberID:         barberID,
		StartAt:          start,
		EndAt:            start.Add(time.Duration(minutes) * time.Minute),
		Status:           string(domain.StatusPending),
		ConfirmationCode: code,
	}
}

func TestCreateAppointmentExclusive(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateAppointmentExclusive(ctx, appointmentAt(1, "AAAAAA", 10, 0, 30)))

	err := s.CreateAppointmentExclusive(ctx, appointmentAt(1, "BBBBBB", 10, 15, 30))
	assert.True(t, httperr.IsKind(err, httperr.KindSlotConflict))

	err = s.CreateAppointmentExclusive(ctx, appointmentAt(2, "AAAAAA", 12, 0, 30))
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)

	// touching intervals and other barbers are fine
	require.NoError(t, s.CreateAppointmentExclusive(ctx, appointmentAt(1, "CCCCCC", 10, 30, 30)))
	require.NoError(t, s.CreateAppointmentExclusive(ctx, appointmentAt(2, "DDDDDD", 10, 0, 30)))

	exists, err := s.ConfirmationCodeExists(ctx, "CCCCCC")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 3, s.AppointmentCount())
}

func TestCancelledAppointmentReleasesInterval(t *testing.T) {
	ctx := context.Background()
	s := New()

	ap := appointmentAt(1, "AAAAAA", 10, 0, 30)
	require.NoError(t, s.CreateAppointmentExclusive(ctx, ap))
	from := ap.Status
	ap.Status = string(domain.StatusCancelled)
	require.NoError(t, s.UpdateAppointment(ctx, ap, from))

	require.NoError(t, s.CreateAppointmentExclusive(ctx, appointmentAt(1, "BBBBBB", 10, 0, 30)))

	active, err := s.ListActiveAppointments(ctx, 1, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "BBBBBB", active[0].ConfirmationCode)
}

func TestGuestClientByPhone(t *testing.T) {
	ctx := context.Background()
	s := New()

	a, err := s.GetOrCreateGuestClient(ctx, 1, "Ana", "+551199", "")
	require.NoError(t, err)
	b, err := s.GetOrCreateGuestClient(ctx, 1, "Ana Maria", "+551199", "ana@example.com")
	require.NoError(t, err)
	c, err := s.GetOrCreateGuestClient(ctx, 2, "Ana", "+551199", "")
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.NotEqual(t, a.ID, c.ID)
	assert.True(t, a.IsGuest)
}

func TestMissingRowsAreNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.GetBarbershopByID(ctx, 42)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	_, err = s.GetAppointment(ctx, 1, 42)
	assert.True(t, httperr.IsKind(err, httperr.KindNotFound))

	wh, err := s.GetWorkingHours(ctx, 1, 2)
	require.NoError(t, err)
	assert.Nil(t, wh)
}

func breakAt(barberID uint, h, m, minutes int) *models.Break {
	start := time.Date(2026, 3, 3, h, m, 0, 0, time.UTC)
	return &models.Break{
		BarbershopID: 1,
		BarberID:     barberID,
		Date:         time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:    start.Format("15:04"),
		EndTime:      start.Add(time.Duration(minutes) * time.Minute).Format("15:04"),
		StartAt:      start,
		EndAt:        start.Add(time.Duration(minutes) * time.Minute),
	}
}

func TestBreaksAndBookingsExcludeEachOther(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.CreateBreakExclusive(ctx, breakAt(1, 10, 0, 60)))
	err := s.CreateAppointmentExclusive(ctx, appointmentAt(1, "AAAAAA", 10, 30, 30))
	assert.True(t, httperr.IsKind(err, httperr.KindSlotConflict))

	require.NoError(t, s.CreateAppointmentExclusive(ctx, appointmentAt(1, "BBBBBB", 14, 0, 30)))
	err = s.CreateBreakExclusive(ctx, breakAt(1, 14, 15, 30))
	assert.True(t, httperr.IsKind(err, httperr.KindSlotConflict))

	// another barber and touching windows are free
	require.NoError(t, s.CreateAppointmentExclusive(ctx, appointmentAt(2, "CCCCCC", 10, 0, 30)))
	require.NoError(t, s.CreateBreakExclusive(ctx, breakAt(1, 14, 30, 30)))
}

func TestConcurrentBreakAndBookingOneWins(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		s := New()
		var wg sync.WaitGroup
		errs := make([]error, 2)
		wg.Add(2)
		go func() {
			defer wg.Done()
			errs[0] = s.CreateBreakExclusive(ctx, breakAt(1, 10, 0, 60))
		}()
		go func() {
			defer wg.Done()
			errs[1] = s.CreateAppointmentExclusive(ctx, appointmentAt(1, "AAAAAA", 10, 0, 30))
		}()
		wg.Wait()

		failed := 0
		for _, err := range errs {
			if err != nil {
				assert.True(t, httperr.IsKind(err, httperr.KindSlotConflict))
				failed++
			}
		}
		assert.Equal(t, 1, failed)
	}
}
