package schedule

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Directory is the slice of the booking store the schedule use cases read.
type Directory interface {
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
	GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.Barber, error)
}

// AvailabilityNotifier is told when a barber-day may have changed.
type AvailabilityNotifier interface {
	AvailabilityChanged(ctx context.Context, shop *models.Barbershop, barberID uint, date time.Time)
}

type Deps struct {
	Repo      domain.Repository
	Directory Directory
	Resolver  *Resolver
	Notifier  AvailabilityNotifier
	Audit     *audit.Dispatcher
	Log       zerolog.Logger
	Now       func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) changed(ctx context.Context, shop *models.Barbershop, barberID uint, date time.Time) {
	if d.Notifier != nil {
		d.Notifier.AvailabilityChanged(ctx, shop, barberID, date)
	}
}

func uintPtr(v uint) *uint {
	return &v
}
