package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/notification"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type CancelInput struct {
	BarbershopID  uint
	AppointmentID uint
	ActorID       *uint
	Reason        string

	// BarberID restricts the lookup to one barber's agenda.
	BarberID *uint
}

type CancelAppointment struct {
	d         Deps
	announcer *Announcer
}

func NewCancelAppointment(d Deps, announcer *Announcer) *CancelAppointment {
	return &CancelAppointment{d: d, announcer: announcer}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	in CancelInput,
) (*models.Appointment, error) {

	ctx, span := tracer.Start(ctx, "booking.cancel")
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
	now := uc.d.now().In(timezone.Location(shop.Timezone))
	if err := domain.Cancel(ap, in.ActorID, in.Reason, now); err != nil {
		return nil, err
	}

	if err := uc.d.Repo.UpdateAppointment(ctx, ap, from); err != nil {
		return nil, httperr.Persistence("cancel appointment", err)
	}

	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		ActorID:      in.ActorID,
		Action:       "appointment_cancelled",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata:     map[string]any{"reason": in.Reason},
	})

	notifyClient(ctx, uc.d, shop, ap, notification.KindBookingCancelled,
		"Booking "+ap.ConfirmationCode+" was cancelled.")

	if uc.announcer != nil {
		uc.announcer.SlotFreed(ctx, shop, ap.BarberID, ap.StartAt)
	}
	return ap, nil
}

func loadAppointment(ctx context.Context, d Deps, shopID, id uint, barberID *uint) (*models.Appointment, error) {
	ap, err := d.Repo.GetAppointment(ctx, shopID, id)
	if err != nil {
		return nil, httperr.Persistence("load appointment", err)
	}
	if barberID != nil && ap.BarberID != *barberID {
		return nil, httperr.NotFoundErr("appointment")
	}
	return ap, nil
}

func notifyClient(ctx context.Context, d Deps, shop *models.Barbershop, ap *models.Appointment, kind notification.Kind, body string) {
	if d.Messages == nil {
		return
	}
	err := d.Messages.Send(ctx, notification.Message{
		Kind:          kind,
		BarbershopID:  shop.ID,
		AppointmentID: ap.ID,
		ClientID:      ap.ClientID,
		Recipient:     ap.Client.Phone,
		Email:         ap.Client.Email,
		Body:          body,
		Data:          map[string]string{"status": ap.Status},
	})
	if err != nil {
		d.Log.Warn().Err(err).Uint("appointment_id", ap.ID).Str("kind", string(kind)).Msg("client message failed")
	}
}
