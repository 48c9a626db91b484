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

// Approved ranges longer than this only announce their first days.
const maxAnnouncedDays = 62

type RequestTimeOffInput struct {
	BarbershopID uint
	BarberID     uint
	ActorID      *uint
	StartDate    string
	EndDate      string
	Reason       string
}

type ManageTimeOff struct {
	d Deps
}

func NewManageTimeOff(d Deps) *ManageTimeOff {
	return &ManageTimeOff{d: d}
}

func (uc *ManageTimeOff) Request(ctx context.Context, in RequestTimeOffInput) (*models.TimeOff, error) {
	if _, err := uc.d.Directory.GetBarber(ctx, in.BarbershopID, in.BarberID); err != nil {
		return nil, httperr.Persistence("load barber", err)
	}

	start, err1 := time.Parse("2006-01-02", in.StartDate)
	end, err2 := time.Parse("2006-01-02", in.EndDate)
	if err1 != nil || err2 != nil {
		return nil, httperr.Validation("invalid_date", "dates must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return nil, httperr.Validation("invalid_range", "end_date must not be before start_date")
	}

	to := &models.TimeOff{
		BarbershopID: in.BarbershopID,
		BarberID:     in.BarberID,
		StartDate:    domain.CivilDate(start),
		EndDate:      domain.CivilDate(end),
		Status:       models.TimeOffPending,
		Reason:       in.Reason,
	}
	if err := uc.d.Repo.CreateTimeOff(ctx, to); err != nil {
		return nil, httperr.Persistence("create time off", err)
	}

	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		ActorID:      in.ActorID,
		Action:       "time_off_requested",
		Entity:       "time_off",
		EntityID:     uintPtr(to.ID),
	})
	return to, nil
}

func (uc *ManageTimeOff) List(ctx context.Context, barbershopID, barberID uint) ([]models.TimeOff, error) {
	if _, err := uc.d.Directory.GetBarber(ctx, barbershopID, barberID); err != nil {
		return nil, httperr.Persistence("load barber", err)
	}
	out, err := uc.d.Repo.ListTimeOff(ctx, barberID)
	if err != nil {
		return nil, httperr.Persistence("list time off", err)
	}
	return out, nil
}

// Approve fails with a slot conflict when another approved range of the
// same barber overlaps.
func (uc *ManageTimeOff) Approve(ctx context.Context, barbershopID, id uint, actorID *uint) (*models.TimeOff, error) {
	to, err := uc.load(ctx, barbershopID, id)
	if err != nil {
		return nil, err
	}
	if to.Status != models.TimeOffPending {
		return nil, httperr.InvalidState("invalid_state", "only pending time off can be approved")
	}

	now := uc.d.now()
	to.Status = models.TimeOffApproved
	to.ApprovedBy = actorID
	to.ApprovedAt = &now

	if err := uc.d.Repo.ApproveTimeOff(ctx, to); err != nil {
		return nil, httperr.Persistence("approve time off", err)
	}

	uc.audit(to, actorID, "time_off_approved")
	uc.announce(ctx, to)
	return to, nil
}

func (uc *ManageTimeOff) Reject(ctx context.Context, barbershopID, id uint, actorID *uint) (*models.TimeOff, error) {
	to, err := uc.load(ctx, barbershopID, id)
	if err != nil {
		return nil, err
	}
	if to.Status != models.TimeOffPending {
		return nil, httperr.InvalidState("invalid_state", "only pending time off can be rejected")
	}

	to.Status = models.TimeOffRejected
	if err := uc.d.Repo.UpdateTimeOff(ctx, to); err != nil {
		return nil, httperr.Persistence("reject time off", err)
	}
	uc.audit(to, actorID, "time_off_rejected")
	return to, nil
}

// Cancel withdraws a request or an approved range. A non-nil barberID
// restricts it to that barber's own entries.
func (uc *ManageTimeOff) Cancel(ctx context.Context, barbershopID, id uint, barberID, actorID *uint) (*models.TimeOff, error) {
	to, err := uc.load(ctx, barbershopID, id)
	if err != nil {
		return nil, err
	}
	if barberID != nil && to.BarberID != *barberID {
		return nil, httperr.NotFoundErr("time_off")
	}
	wasApproved := to.Status == models.TimeOffApproved
	if to.Status != models.TimeOffPending && !wasApproved {
		return nil, httperr.InvalidState("invalid_state", "time off is already closed")
	}

	to.Status = models.TimeOffCancelled
	if err := uc.d.Repo.UpdateTimeOff(ctx, to); err != nil {
		return nil, httperr.Persistence("cancel time off", err)
	}
	uc.audit(to, actorID, "time_off_cancelled")

	if wasApproved {
		uc.announce(ctx, to)
	}
	return to, nil
}

func (uc *ManageTimeOff) load(ctx context.Context, barbershopID, id uint) (*models.TimeOff, error) {
	to, err := uc.d.Repo.GetTimeOff(ctx, barbershopID, id)
	if err != nil {
		return nil, httperr.Persistence("load time off", err)
	}
	return to, nil
}

func (uc *ManageTimeOff) audit(to *models.TimeOff, actorID *uint, action string) {
	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: to.BarbershopID,
		ActorID:      actorID,
		Action:       action,
		Entity:       "time_off",
		EntityID:     uintPtr(to.ID),
		Metadata: map[string]any{
			"barber_id":  to.BarberID,
			"start_date": to.StartDate.Format("2006-01-02"),
			"end_date":   to.EndDate.Format("2006-01-02"),
		},
	})
}

func (uc *ManageTimeOff) announce(ctx context.Context, to *models.TimeOff) {
	if uc.d.Notifier == nil {
		return
	}
	shop, err := uc.d.Directory.GetBarbershopByID(ctx, to.BarbershopID)
	if err != nil {
		uc.d.Log.Warn().Err(err).Uint("time_off_id", to.ID).Msg("skip availability announce")
		return
	}
	loc := timezone.Location(shop.Timezone)
	day := time.Date(to.StartDate.Year(), to.StartDate.Month(), to.StartDate.Day(), 0, 0, 0, 0, loc)
	last := time.Date(to.EndDate.Year(), to.EndDate.Month(), to.EndDate.Day(), 0, 0, 0, 0, loc)

	for n := 0; !day.After(last) && n < maxAnnouncedDays; n++ {
		uc.d.changed(ctx, shop, to.BarberID, day)
		day = day.AddDate(0, 0, 1)
	}
}
