package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// day is everything the slot generator and the conflict checker need for
// one barber on one date, in minutes of the shop's wall clock.
type day struct {
	shop  *models.Barbershop
	start time.Time
	hours schedule.EffectiveHours
	occ   schedule.Occupancy
}

// loadDay always reads appointments and breaks from the store. fresh also
// bypasses the configuration cache.
func (d Deps) loadDay(
	ctx context.Context,
	shop *models.Barbershop,
	barberID uint,
	date time.Time,
	fresh bool,
) (*day, error) {

	start := schedule.DayStart(date, timezone.Location(shop.Timezone))

	hours, err := d.Resolver.Resolve(ctx, shop, barberID, start, fresh)
	if err != nil {
		return nil, err
	}

	aps, err := d.Repo.ListActiveAppointments(ctx, barberID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, httperr.Persistence("list appointments", err)
	}

	breaks, err := d.Schedule.ListBreaks(ctx, barberID, schedule.CivilDate(start))
	if err != nil {
		return nil, httperr.Persistence("list breaks", err)
	}

	occ := schedule.Occupancy{
		Appointments: make([]schedule.Interval, 0, len(aps)),
		Breaks:       make([]schedule.Interval, 0, len(breaks)),
	}
	for _, ap := range aps {
		occ.Appointments = append(occ.Appointments, schedule.Interval{
			Start: schedule.MinuteOfDay(start, ap.StartAt),
			End:   schedule.MinuteOfDay(start, ap.EndAt),
		})
	}
	for _, b := range breaks {
		iv, err := schedule.ParseInterval(b.StartTime, b.EndTime)
		if err != nil {
			d.Log.Warn().Err(err).Uint("break_id", b.ID).Msg("skipping malformed break")
			continue
		}
		occ.Breaks = append(occ.Breaks, iv)
	}

	return &day{shop: shop, start: start, hours: hours, occ: occ}, nil
}

func (dy *day) slots(duration int) []schedule.Slot {
	return schedule.GenerateSlots(dy.hours, dy.occ, duration, dy.shop.SlotIntervalMinutes)
}
