package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type CreateBreakInput struct {
	BarbershopID uint
	BarberID     uint
	ActorID      *uint
	Date         string
	StartTime    string
	EndTime      string
	Reason       string
}

type ManageBreaks struct {
	d Deps
}

func NewManageBreaks(d Deps) *ManageBreaks {
	return &ManageBreaks{d: d}
}

// Create blocks part of a working day. The break must sit inside the
// effective hours and must not cover an active appointment.
func (uc *ManageBreaks) Create(ctx context.Context, in CreateBreakInput) (*models.Break, error) {
	shop, err := uc.d.Directory.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.Persistence("load barbershop", err)
	}
	if _, err := uc.d.Directory.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		return nil, httperr.Persistence("load barber", err)
	}

	day, err := timezone.ParseDate(shop.Timezone, in.Date)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "date must be YYYY-MM-DD")
	}
	iv, err := domain.ParseInterval(in.StartTime, in.EndTime)
	if err != nil {
		return nil, httperr.Validation("invalid_time", err.Error())
	}

	hours, err := uc.d.Resolver.Resolve(ctx, shop, in.BarberID, day, true)
	if err != nil {
		return nil, err
	}
	if !hours.IsWorking {
		return nil, httperr.New(httperr.KindBusinessRule, "not_working", hours.Message())
	}
	if !iv.Within(hours.Window()) {
		return nil, httperr.New(httperr.KindBusinessRule, "outside_working_hours", "Break must fall within working hours")
	}

	b := &models.Break{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		Date:         domain.CivilDate(day),
		StartTime:    domain.MinutesToTime(iv.Start),
		EndTime:      domain.MinutesToTime(iv.End),
		Reason:       in.Reason,
		StartAt:      domain.At(day, iv.Start),
		EndAt:        domain.At(day, iv.End),
	}
	if err := uc.d.Repo.CreateBreakExclusive(ctx, b); err != nil {
		return nil, httperr.Persistence("create break", err)
	}

	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		ActorID:      in.ActorID,
		Action:       "break_created",
		Entity:       "break",
		EntityID:     uintPtr(b.ID),
		Metadata:     map[string]any{"date": in.Date, "start": b.StartTime, "end": b.EndTime},
	})

	uc.d.changed(ctx, shop, in.BarberID, day)
	return b, nil
}

func (uc *ManageBreaks) List(ctx context.Context, barbershopID, barberID uint, date string) ([]models.Break, error) {
	shop, err := uc.d.Directory.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, httperr.Persistence("load barbershop", err)
	}
	day, err := timezone.ParseDate(shop.Timezone, date)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "date must be YYYY-MM-DD")
	}
	out, err := uc.d.Repo.ListBreaks(ctx, barberID, domain.CivilDate(day))
	if err != nil {
		return nil, httperr.Persistence("list breaks", err)
	}
	return out, nil
}

// Delete removes a break. A non-nil barberID restricts it to that barber's
// breaks.
func (uc *ManageBreaks) Delete(ctx context.Context, barbershopID, id uint, barberID, actorID *uint) error {
	if barberID != nil {
		b, err := uc.d.Repo.GetBreak(ctx, barbershopID, id)
		if err != nil {
			return httperr.Persistence("load break", err)
		}
		if b.BarberID != *barberID {
			return httperr.NotFoundErr("break")
		}
	}

	b, err := uc.d.Repo.DeleteBreak(ctx, barbershopID, id)
	if err != nil {
		return httperr.Persistence("delete break", err)
	}

	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		ActorID:      actorID,
		Action:       "break_deleted",
		Entity:       "break",
		EntityID:     uintPtr(id),
	})

	if shop, err := uc.d.Directory.GetBarbershopByID(ctx, barbershopID); err == nil {
		loc := timezone.Location(shop.Timezone)
		day := time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(), 0, 0, 0, 0, loc)
		uc.d.changed(ctx, shop, b.BarberID, day)
	}
	return nil
}
