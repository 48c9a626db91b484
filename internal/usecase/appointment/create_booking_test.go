package appointment

import (
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
)

var codePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestCreateBookingCommits(t *testing.T) {
	f := newFixture(t)
	sub := f.hub.Subscribe(nil)

	ap := f.book("2026-03-03", "10:00", f.haircut.ID, f.beard.ID)

	assert.Regexp(t, codePattern, ap.ConfirmationCode)
	assert.Equal(t, string(domain.StatusPending), ap.Status)
	assert.Equal(t, 45, ap.TotalDurationMinutes)
	assert.Equal(t, 75.0, ap.TotalPrice)
	assert.Equal(t, time.Date(2026, 3, 3, 10, 45, 0, 0, time.UTC), ap.EndAt)
	assert.Equal(t, 2, f.store.LineCount(ap.ID))
	require.Len(t, ap.Services, 2)
	assert.Equal(t, "Beard", ap.Services[1].ServiceName)

	update := <-sub.C()
	assert.Equal(t, f.barber.ID, update.BarberID)
	assert.Equal(t, "2026-03-03", update.Date)
	assert.Positive(t, update.AvailableSlots)

	assert.Equal(t, []notification.Kind{notification.KindBookingConfirmed}, f.msgs.kinds())
}

func TestCreateBookingCodesAreUnique(t *testing.T) {
	f := newFixture(t)
	seen := map[string]bool{}

	for day := 3; day <= 4; day++ {
		for m := 9 * 60; m < 12*60+30; m += 30 {
			ap := f.book(fmt.Sprintf("2026-03-%02d", day), schedule.MinutesToTime(m))
			assert.Regexp(t, codePattern, ap.ConfirmationCode)
			assert.False(t, seen[ap.ConfirmationCode], "duplicate code %s", ap.ConfirmationCode)
			seen[ap.ConfirmationCode] = true
		}
	}
	assert.Len(t, seen, 14)
}

func TestCreateBookingConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)

	const racers = 2
	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		errs  = make([]error, racers)
	)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = f.create.Execute(f.ctx, f.booking("2026-03-03", "10:00", fmt.Sprintf("+55119999900%02d", i)))
		}(i)
	}
	close(start)
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		var rej *domain.Rejection
		require.True(t, errors.As(err, &rej), "unexpected error %v", err)
		assert.Equal(t, httperr.KindSlotConflict, rej.Kind)
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, f.store.AppointmentCount())
}

func TestCreateBookingGuestIsIdempotent(t *testing.T) {
	f := newFixture(t)

	first := f.book("2026-03-03", "10:00")
	second := f.book("2026-03-03", "11:00")

	assert.Equal(t, first.ClientID, second.ClientID)
	assert.True(t, first.Client.IsGuest)
}

func TestCreateBookingRollsBackHeader(t *testing.T) {
	f := newFixture(t)
	f.store.FailAppointmentServices(errors.New("disk full"))

	_, err := f.create.Execute(f.ctx, f.booking("2026-03-03", "10:00", "+5511999990000"))

	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindPersistence))
	assert.ErrorContains(t, err, "disk full")
	assert.Zero(t, f.store.AppointmentCount())

	f.store.FailAppointmentServices(nil)
	ap := f.book("2026-03-03", "10:00")
	assert.NotZero(t, ap.ID)
}

func TestCreateBookingMinimumNotice(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2026, 3, 3, 9, 0, 0, 0, time.UTC)

	_, err := f.create.Execute(f.ctx, f.booking("2026-03-03", "10:00", "+5511999990000"))

	var rej *domain.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, httperr.KindBusinessRule, rej.Kind)
	assert.Equal(t, []string{"Minimum 2 hours notice required"}, rej.Messages())
}

func TestCreateBookingAccumulatesViolations(t *testing.T) {
	f := newFixture(t)
	f.book("2026-03-03", "16:30")

	_, err := f.create.Execute(f.ctx, f.booking("2026-03-03", "16:45", "+5511988880000"))

	var rej *domain.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, httperr.KindSlotConflict, rej.Kind)
	assert.Equal(t, []string{
		"Requested time is outside working hours",
		"Time slot occupied",
	}, rej.Messages())
	assert.NotEmpty(t, rej.Suggestions)
	assert.LessOrEqual(t, len(rej.Suggestions), domain.MaxSuggestions)
}

func TestCreateBookingRejectsInactiveService(t *testing.T) {
	f := newFixture(t)
	f.beard.IsActive = false
	require.NoError(t, f.store.UpdateService(f.ctx, f.beard))

	_, err := f.create.Execute(f.ctx, f.booking("2026-03-03", "10:00", "+5511999990000", f.haircut.ID, f.beard.ID))

	assert.True(t, httperr.IsKind(err, httperr.KindServiceUnavailable))
	assert.Zero(t, f.store.AppointmentCount())
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)

	in := f.booking("03/03/2026", "10:00", "+5511999990000")
	_, err := f.create.Execute(f.ctx, in)
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))

	in = f.booking("2026-03-03", "10:00", "")
	_, err = f.create.Execute(f.ctx, in)
	assert.True(t, httperr.IsBusiness(err, "missing_client"))

	in = f.booking("2026-03-03", "10:00", "+5511999990000")
	in.ServiceIDs = nil
	_, err = f.create.Execute(f.ctx, in)
	assert.True(t, httperr.IsBusiness(err, "missing_services"))
}

func TestCreateBookingCodeExhausted(t *testing.T) {
	f := newFixture(t)
	taken := f.book("2026-03-03", "10:00").ConfirmationCode

	d := f.deps
	d.Codes = func() (string, error) { return taken, nil }
	uc := NewCreateBooking(d, nil, nil)

	_, err := uc.Execute(f.ctx, f.booking("2026-03-03", "11:00", "+5511999990000"))
	assert.True(t, httperr.IsKind(err, httperr.KindCodeExhausted))
	assert.Equal(t, 1, f.store.AppointmentCount())
}

func TestCreateBookingSuggestsOtherBarbers(t *testing.T) {
	f := newFixture(t)
	other := &models.Barber{BarbershopID: f.shop.ID, Name: "Leo", Active: true}
	f.store.AddBarber(other)
	require.NoError(t, f.store.ReplaceWorkingHours(f.ctx, other.ID, []models.WorkingHours{
		{Weekday: int(time.Sunday), IsWorking: true, StartTime: "10:00", EndTime: "14:00"},
	}))

	_, err := f.create.Execute(f.ctx, f.booking("2026-03-08", "10:00", "+5511999990000"))

	var rej *domain.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, httperr.KindSlotConflict, rej.Kind)
	assert.Equal(t, []string{"Barber is not working on this date"}, rej.Messages())
	require.Len(t, rej.Suggestions, domain.MaxSuggestions)
	assert.Equal(t, domain.Suggestion{BarberID: other.ID, Start: "10:00", End: "10:30"}, rej.Suggestions[0])
	for _, s := range rej.Suggestions {
		assert.Equal(t, other.ID, s.BarberID)
	}
}

func TestCreateBookingCannotRunPastMidnightClose(t *testing.T) {
	f := newFixture(t)

	shopWeek := make([]models.ShopHours, 0, 7)
	barberWeek := make([]models.WorkingHours, 0, 7)
	for wd := 0; wd < 7; wd++ {
		shopWeek = append(shopWeek, models.ShopHours{Weekday: wd, OpenTime: "18:00", CloseTime: "24:00"})
		barberWeek = append(barberWeek, models.WorkingHours{Weekday: wd, IsWorking: true, StartTime: "18:00", EndTime: "24:00"})
	}
	require.NoError(t, f.store.ReplaceShopHours(f.ctx, f.shop.ID, shopWeek))
	require.NoError(t, f.store.ReplaceWorkingHours(f.ctx, f.barber.ID, barberWeek))

	// 45 minutes from 23:30 ends at 00:15 the next day.
	_, err := f.create.Execute(f.ctx, f.booking("2026-03-03", "23:30", "+5511999990000", f.haircut.ID, f.beard.ID))

	var rej *domain.Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, httperr.KindSlotConflict, rej.Kind)
	assert.NotEmpty(t, rej.Violations)
	assert.Zero(t, f.store.AppointmentCount())

	ap, err := f.create.Execute(f.ctx, f.booking("2026-03-03", "23:30", "+5511999990000"))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC), ap.EndAt.UTC())
}
