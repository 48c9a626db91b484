package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/dto"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ListAppointmentsByDate struct {
	d Deps
}

func NewListAppointmentsByDate(d Deps) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{d: d}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	barbershopID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	shop, err := uc.d.shop(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.d.Repo.GetBarber(ctx, shop.ID, barberID); err != nil {
		return nil, httperr.Persistence("load barber", err)
	}

	start, err := timezone.ParseDate(shop.Timezone, date)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "date must be YYYY-MM-DD")
	}
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.d.Repo.ListAppointmentsForPeriod(ctx, barberID, start, end)
	if err != nil {
		return nil, httperr.Persistence("list appointments", err)
	}
	return dto.AppointmentList(appointments), nil
}

type ListAppointmentsByMonth struct {
	d Deps
}

func NewListAppointmentsByMonth(d Deps) *ListAppointmentsByMonth {
	return &ListAppointmentsByMonth{d: d}
}

func (uc *ListAppointmentsByMonth) Execute(
	ctx context.Context,
	barberID uint,
	barbershopID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if month < 1 || month > 12 || year < 2000 {
		return nil, httperr.Validation("invalid_month", "year and month are required")
	}

	shop, err := uc.d.shop(ctx, barbershopID)
	if err != nil {
		return nil, err
	}
	if _, err := uc.d.Repo.GetBarber(ctx, shop.ID, barberID); err != nil {
		return nil, httperr.Persistence("load barber", err)
	}

	loc := timezone.Location(shop.Timezone)
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	appointments, err := uc.d.Repo.ListAppointmentsForPeriod(ctx, barberID, start, end)
	if err != nil {
		return nil, httperr.Persistence("list appointments", err)
	}
	return dto.AppointmentList(appointments), nil
}
