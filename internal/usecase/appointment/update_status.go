package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
)

type UpdateStatusInput struct {
	BarbershopID  uint
	AppointmentID uint
	BarberID      *uint
	ActorID       *uint
	Status        string
	Notes         string
}

type UpdateAppointmentStatus struct {
	d         Deps
	cancel    *CancelAppointment
	announcer *Announcer
}

func NewUpdateAppointmentStatus(d Deps, cancel *CancelAppointment, announcer *Announcer) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{d: d, cancel: cancel, announcer: announcer}
}

// Execute applies a guarded status change. Cancellation goes through the
// cancel flow; no_show frees the slot too.
func (uc *UpdateAppointmentStatus) Execute(ctx context.Context, in UpdateStatusInput) (*models.Appointment, error) {
	to := domain.Status(in.Status)
	if !to.Valid() {
		return nil, httperr.Validation("invalid_status", "unknown status "+in.Status)
	}
	if to == domain.StatusCancelled {
		return uc.cancel.Execute(ctx, CancelInput{
			BarbershopID:  in.BarbershopID,
			AppointmentID: in.AppointmentID,
			ActorID:       in.ActorID,
			Reason:        in.Notes,
			BarberID:      in.BarberID,
		})
	}

	ctx, span := tracer.Start(ctx, "booking.status")
	defer span.End()

	shop, err := uc.d.shop(ctx, in.BarbershopID)
	if err != nil {
		return nil, err
	}
	ap, err := loadAppointment(ctx, uc.d, shop.ID, in.AppointmentID, in.BarberID)
	if err != nil {
		return nil, err
	}

	from := ap.Status
	if err := domain.Transition(ap, to, in.ActorID, in.Notes, uc.d.now()); err != nil {
		return nil, err
	}
	if err := uc.d.Repo.UpdateAppointment(ctx, ap, from); err != nil {
		return nil, httperr.Persistence("update appointment status", err)
	}

	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		ActorID:      in.ActorID,
		Action:       "appointment_" + string(to),
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata:     map[string]any{"from": from, "to": ap.Status},
	})

	if to == domain.StatusConfirmed {
		notifyClient(ctx, uc.d, shop, ap, notification.KindStatusChanged,
			"Booking "+ap.ConfirmationCode+" is confirmed.")
	}

	if to.FreesSlot() && uc.announcer != nil {
		uc.announcer.SlotFreed(ctx, shop, ap.BarberID, ap.StartAt)
	}
	return ap, nil
}
