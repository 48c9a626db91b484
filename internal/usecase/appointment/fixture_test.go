package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/infra/cache"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/notifier"
	ucschedule "github.com/BruksfildServices01/barber-booking/internal/usecase/schedule"
)

type recordingMessages struct {
	mu   sync.Mutex
	sent []notification.Message
}

func (r *recordingMessages) Send(_ context.Context, m notification.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, m)
	return nil
}

func (r *recordingMessages) kinds() []notification.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notification.Kind, 0, len(r.sent))
	for _, m := range r.sent {
		out = append(out, m.Kind)
	}
	return out
}

type fixture struct {
	t     *testing.T
	ctx   context.Context
	store *memstore.Store
	hub   *notifier.Hub
	msgs  *recordingMessages
	now   time.Time
	deps  Deps

	shop    *models.Barbershop
	barber  *models.Barber
	haircut *models.Service
	beard   *models.Service

	availability *GetAvailability
	check        *CheckSlot
	create       *CreateBooking
	cancel       *CancelAppointment
	status       *UpdateAppointmentStatus
	waitlist     *Waitlist
}

// newFixture seeds a shop open 09:00-18:00 every day and a barber working
// 09:00-17:00 with a 13:00-14:00 break, Monday to Saturday. The clock is
// Monday 2026-03-02 08:00 UTC.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memstore.New()

	shop := &models.Barbershop{
		Name:                "Navalha",
		Slug:                "navalha",
		Timezone:            "UTC",
		MinNoticeHours:      2,
		MaxAdvanceDays:      30,
		SlotIntervalMinutes: 15,
	}
	store.AddBarbershop(shop)

	barber := &models.Barber{BarbershopID: shop.ID, Name: "Rafa", Active: true}
	store.AddBarber(barber)

	haircut := &models.Service{BarbershopID: shop.ID, Name: "Haircut", DurationMinutes: 30, Price: 50, IsActive: true}
	beard := &models.Service{BarbershopID: shop.ID, Name: "Beard", DurationMinutes: 15, Price: 25, IsActive: true}
	require.NoError(t, store.CreateService(ctx, haircut))
	require.NoError(t, store.CreateService(ctx, beard))

	shopWeek := make([]models.ShopHours, 0, 7)
	barberWeek := make([]models.WorkingHours, 0, 7)
	for wd := 0; wd < 7; wd++ {
		shopWeek = append(shopWeek, models.ShopHours{Weekday: wd, OpenTime: "09:00", CloseTime: "18:00"})
		wh := models.WorkingHours{Weekday: wd}
		if wd != int(time.Sunday) {
			wh = models.WorkingHours{Weekday: wd, IsWorking: true, StartTime: "09:00", EndTime: "17:00", BreakStart: "13:00", BreakEnd: "14:00"}
		}
		barberWeek = append(barberWeek, wh)
	}
	require.NoError(t, store.ReplaceShopHours(ctx, shop.ID, shopWeek))
	require.NoError(t, store.ReplaceWorkingHours(ctx, barber.ID, barberWeek))

	f := &fixture{
		t:       t,
		ctx:     ctx,
		store:   store,
		hub:     notifier.NewHub(),
		msgs:    &recordingMessages{},
		now:     time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		shop:    shop,
		barber:  barber,
		haircut: haircut,
		beard:   beard,
	}

	f.deps = Deps{
		Repo:     store,
		Schedule: store,
		Resolver: ucschedule.NewResolver(store, cache.NewScheduleCache(time.Minute)),
		Notifier: f.hub,
		Messages: f.msgs,
		Log:      zerolog.Nop(),
		Now:      func() time.Time { return f.now },
	}

	f.waitlist = NewWaitlist(f.deps)
	announcer := NewAnnouncer(f.deps, f.waitlist)
	f.availability = NewGetAvailability(f.deps)
	f.check = NewCheckSlot(f.deps)
	f.create = NewCreateBooking(f.deps, announcer, f.waitlist)
	f.cancel = NewCancelAppointment(f.deps, announcer)
	f.status = NewUpdateAppointmentStatus(f.deps, f.cancel, announcer)
	return f
}

func (f *fixture) booking(date, hm, phone string, services ...uint) CreateBookingInput {
	if len(services) == 0 {
		services = []uint{f.haircut.ID}
	}
	return CreateBookingInput{
		BarbershopID: f.shop.ID,
		BarberID:     f.barber.ID,
		ClientName:   "Ana",
		ClientPhone:  phone,
		ServiceIDs:   services,
		Date:         date,
		Time:         hm,
	}
}

func (f *fixture) book(date, hm string, services ...uint) *models.Appointment {
	f.t.Helper()
	ap, err := f.create.Execute(f.ctx, f.booking(date, hm, "+5511999990000", services...))
	require.NoError(f.t, err)
	return ap
}
