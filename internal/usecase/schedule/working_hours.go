package schedule

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type ReplaceWorkingHoursInput struct {
	BarbershopID uint
	BarberID     uint
	ActorID      *uint
	Days         []models.WorkingHours
}

// ======================================================
// USE CASE
// ======================================================

type ManageWorkingHours struct {
	d Deps
}

func NewManageWorkingHours(d Deps) *ManageWorkingHours {
	return &ManageWorkingHours{d: d}
}

func (uc *ManageWorkingHours) Get(ctx context.Context, barbershopID, barberID uint) ([]models.WorkingHours, error) {
	if _, err := uc.d.Directory.GetBarber(ctx, barbershopID, barberID); err != nil {
		return nil, httperr.Persistence("load barber", err)
	}
	days, err := uc.d.Repo.ListWorkingHours(ctx, barberID)
	if err != nil {
		return nil, httperr.Persistence("list working hours", err)
	}
	return days, nil
}

// Replace swaps the whole weekly template. Weekdays left out are stored as
// non-working.
func (uc *ManageWorkingHours) Replace(ctx context.Context, in ReplaceWorkingHoursInput) ([]models.WorkingHours, error) {
	if _, err := uc.d.Directory.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		return nil, httperr.Persistence("load barber", err)
	}

	byDay := make(map[int]models.WorkingHours, 7)
	for _, d := range in.Days {
		if _, dup := byDay[d.Weekday]; dup {
			return nil, httperr.Validation("duplicate_weekday", "each weekday may appear once")
		}
		if err := domain.ValidateWorkingHours(&d); err != nil {
			return nil, httperr.Validation("invalid_working_hours", err.Error())
		}
		d.BarberID = in.BarberID
		byDay[d.Weekday] = d
	}

	week := make([]models.WorkingHours, 0, 7)
	for wd := 0; wd < 7; wd++ {
		d, ok := byDay[wd]
		if !ok {
			d = models.WorkingHours{BarberID: in.BarberID, Weekday: wd}
		}
		week = append(week, d)
	}

	if err := uc.d.Repo.ReplaceWorkingHours(ctx, in.BarberID, week); err != nil {
		return nil, httperr.Persistence("replace working hours", err)
	}
	uc.d.Resolver.InvalidateBarber(in.BarberID)

	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		ActorID:      in.ActorID,
		Action:       "working_hours_updated",
		Entity:       "barber",
		EntityID:     uintPtr(in.BarberID),
		Metadata:     map[string]any{"days": len(in.Days)},
	})

	return week, nil
}
