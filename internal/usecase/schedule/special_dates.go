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

type SaveSpecialDateInput struct {
	BarbershopID uint
	ActorID      *uint

	BarberID  *uint
	Date      string
	IsHoliday bool
	OpenTime  string
	CloseTime string
	Note      string
	Breaks    []models.SpecialDateBreak
}

type ManageSpecialDates struct {
	d Deps
}

func NewManageSpecialDates(d Deps) *ManageSpecialDates {
	return &ManageSpecialDates{d: d}
}

// Save creates or replaces the exception of the shop or barber for a date.
func (uc *ManageSpecialDates) Save(ctx context.Context, in SaveSpecialDateInput) (*models.SpecialDate, error) {
	shop, err := uc.d.Directory.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, httperr.Persistence("load barbershop", err)
	}
	if in.BarberID != nil {
		if _, err := uc.d.Directory.GetBarber(ctx, in.BarbershopID, *in.BarberID); err != nil {
			return nil, httperr.Persistence("load barber", err)
		}
	}

	day, err := timezone.ParseDate(shop.Timezone, in.Date)
	if err != nil {
		return nil, httperr.Validation("invalid_date", "date must be YYYY-MM-DD")
	}

	sd := &models.SpecialDate{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		Date:         domain.CivilDate(day),
		IsHoliday:    in.IsHoliday,
		OpenTime:     in.OpenTime,
		CloseTime:    in.CloseTime,
		Note:         in.Note,
		Breaks:       in.Breaks,
	}
	if err := domain.ValidateSpecialDate(sd); err != nil {
		return nil, httperr.Validation("invalid_special_date", err.Error())
	}

	if err := uc.d.Repo.SaveSpecialDate(ctx, sd); err != nil {
		return nil, httperr.Persistence("save special date", err)
	}
	uc.d.Resolver.InvalidateShop(in.BarbershopID)

	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		ActorID:      in.ActorID,
		Action:       "special_date_saved",
		Entity:       "special_date",
		EntityID:     uintPtr(sd.ID),
		Metadata:     map[string]any{"date": in.Date, "holiday": in.IsHoliday},
	})

	if in.BarberID != nil {
		uc.d.changed(ctx, shop, *in.BarberID, day)
	}
	return sd, nil
}

func (uc *ManageSpecialDates) List(ctx context.Context, barbershopID uint, from, to time.Time) ([]models.SpecialDate, error) {
	if to.Before(from) {
		return nil, httperr.Validation("invalid_range", "to must not be before from")
	}
	out, err := uc.d.Repo.ListSpecialDates(ctx, barbershopID, domain.CivilDate(from), domain.CivilDate(to))
	if err != nil {
		return nil, httperr.Persistence("list special dates", err)
	}
	return out, nil
}

func (uc *ManageSpecialDates) Delete(ctx context.Context, barbershopID, id uint, actorID *uint) error {
	sd, err := uc.d.Repo.DeleteSpecialDate(ctx, barbershopID, id)
	if err != nil {
		return httperr.Persistence("delete special date", err)
	}
	uc.d.Resolver.InvalidateShop(barbershopID)

	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		ActorID:      actorID,
		Action:       "special_date_deleted",
		Entity:       "special_date",
		EntityID:     uintPtr(id),
	})

	if sd.BarberID != nil {
		if shop, err := uc.d.Directory.GetBarbershopByID(ctx, barbershopID); err == nil {
			loc := timezone.Location(shop.Timezone)
			day := time.Date(sd.Date.Year(), sd.Date.Month(), sd.Date.Day(), 0, 0, 0, 0, loc)
			uc.d.changed(ctx, shop, *sd.BarberID, day)
		}
	}
	return nil
}
