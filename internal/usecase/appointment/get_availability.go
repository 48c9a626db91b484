package appointment

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	Date         string

	// ServiceIDs wins over DurationMinutes when both are set.
	ServiceIDs      []uint
	DurationMinutes int
}

type GetAvailability struct {
	d Deps
}

func NewGetAvailability(d Deps) *GetAvailability {
	return &GetAvailability{d: d}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in AvailabilityInput,
) (*dto.DayAvailability, error) {

	ctx, span := tracer.Start(ctx, "availability.get")
	defer span.End()
	span.SetAttributes(
		attribute.Int("barber.id", int(in.BarberID)),
		attribute.String("date", in.Date),
	)

	shop, err := uc.d.shop(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.d.activeBarber(ctx, shop.ID, in.BarberID); err != nil {
		return nil, err
	}

	date, err := timezone.ParseDate(shop.Timezone, in.Date)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "date must be YYYY-MM-DD")
	}

	duration := in.DurationMinutes
	if len(in.ServiceIDs) > 0 {
		svcs, err := uc.d.services(ctx, shop.ID, in.ServiceIDs)
		if err != nil {
			return nil, err
		}
		duration = totalDuration(svcs)
	}
	if duration <= 0 {
		return nil, httperr.Validation("invalid_duration", "service_ids or a positive duration is required")
	}

	dy, err := uc.d.loadDay(ctx, shop, in.BarberID, date, false)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	slots := dy.slots(duration)
	uc.d.Metrics.SlotsGenerated(started)

	out := &dto.DayAvailability{
		Date:        in.Date,
		BarberID:    in.BarberID,
		IsAvailable: schedule.CountAvailable(slots) > 0,
		Slots:       slots,
	}
	if dy.hours.IsWorking {
		out.WorkingHours = &dto.HoursWindow{
			Start: schedule.MinutesToTime(dy.hours.Open),
			End:   schedule.MinutesToTime(dy.hours.Close),
		}
		out.BreakHours = dto.Windows(append(append([]schedule.Interval{}, dy.hours.Breaks...), dy.occ.Breaks...))
	} else {
		out.Reason = dy.hours.Reason
		out.Message = dy.hours.Message()
	}

	return out, nil
}
