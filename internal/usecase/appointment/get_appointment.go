package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type GetAppointment struct {
	d Deps
}

func NewGetAppointment(d Deps) *GetAppointment {
	return &GetAppointment{d: d}
}

func (uc *GetAppointment) Execute(ctx context.Context, barbershopID, id uint, barberID *uint) (*models.Appointment, error) {
	return loadAppointment(ctx, uc.d, barbershopID, id, barberID)
}
