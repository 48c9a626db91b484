package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type CheckSlotInput struct {
	BarbershopID uint
	BarberID     uint
	Date         string
	Start        string
	End          string
}

// CheckSlot answers whether one interval is bookable right now. It reads
// configuration fresh and stops at the first violation.
type CheckSlot struct {
	d Deps
}

func NewCheckSlot(d Deps) *CheckSlot {
	return &CheckSlot{d: d}
}

func (uc *CheckSlot) Execute(ctx context.Context, in CheckSlotInput) (schedule.Check, error) {
	ctx, span := tracer.Start(ctx, "availability.check")
	defer span.End()

	shop, err := uc.d.shop(ctx, in.BarbershopID)
	if err != nil {
		return schedule.Check{}, err
	}
	if _, err := uc.d.activeBarber(ctx, shop.ID, in.BarberID); err != nil {
		return schedule.Check{}, err
	}

	date, err := timezone.ParseDate(shop.Timezone, in.Date)
	if err != nil {
		return schedule.Check{}, httperr.Validation("invalid_date", "date must be YYYY-MM-DD")
	}
	iv, err := schedule.ParseInterval(in.Start, in.End)
	if err != nil {
		return schedule.Check{}, httperr.Validation("invalid_time", err.Error())
	}

	dy, err := uc.d.loadDay(ctx, shop, in.BarberID, date, true)
	if err != nil {
		return schedule.Check{}, err
	}
	return schedule.CheckInterval(dy.hours, dy.occ, iv), nil
}
