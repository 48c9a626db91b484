package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notifier"
)

// ReferenceDuration sizes the slot count pushed to subscribers.
const ReferenceDuration = 30

// Announcer runs the post-commit side effects of anything that changes a
// barber-day. Failures are logged and never returned.
type Announcer struct {
	d        Deps
	waitlist *Waitlist
}

func NewAnnouncer(d Deps, waitlist *Waitlist) *Announcer {
	return &Announcer{d: d, waitlist: waitlist}
}

func (a *Announcer) AvailabilityChanged(ctx context.Context, shop *models.Barbershop, barberID uint, date time.Time) {
	a.broadcast(ctx, shop, barberID, date)
}

// SlotFreed also wakes the waitlist for that day.
func (a *Announcer) SlotFreed(ctx context.Context, shop *models.Barbershop, barberID uint, date time.Time) {
	available := a.broadcast(ctx, shop, barberID, date)
	if a.waitlist != nil && available > 0 {
		a.waitlist.notifyOpening(ctx, shop, barberID, date)
	}
}

func (a *Announcer) broadcast(ctx context.Context, shop *models.Barbershop, barberID uint, date time.Time) int {
	log := a.d.Log.With().Uint("barber_id", barberID).Str("date", date.Format("2006-01-02")).Logger()

	dy, err := a.d.loadDay(ctx, shop, barberID, date, true)
	if err != nil {
		log.Warn().Err(err).Msg("availability recount failed")
		a.d.Metrics.Pushed("error")
		return 0
	}
	available := schedule.CountAvailable(dy.slots(ReferenceDuration))

	if a.d.Notifier == nil {
		return available
	}
	err = a.d.Notifier.Broadcast(ctx, notifier.Update{
		BarberID:       barberID,
		Date:           dy.start.Format("2006-01-02"),
		AvailableSlots: available,
		At:             a.d.now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Msg("availability broadcast failed")
		a.d.Metrics.Pushed("error")
		return available
	}
	a.d.Metrics.Pushed("ok")
	return available
}
