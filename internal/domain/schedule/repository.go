package schedule

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Repository reads and writes schedule configuration. Single-row lookups of
// optional configuration return (nil, nil) when nothing is stored.
// Dates are civil dates (see CivilDate).
type Repository interface {
	// -------- Shop hours --------
	GetShopHours(ctx context.Context, barbershopID uint, weekday int) (*models.ShopHours, error)
	ListShopHours(ctx context.Context, barbershopID uint) ([]models.ShopHours, error)
	ReplaceShopHours(ctx context.Context, barbershopID uint, hours []models.ShopHours) error

	// -------- Barber template --------
	GetWorkingHours(ctx context.Context, barberID uint, weekday int) (*models.WorkingHours, error)
	ListWorkingHours(ctx context.Context, barberID uint) ([]models.WorkingHours, error)
	ReplaceWorkingHours(ctx context.Context, barberID uint, hours []models.WorkingHours) error

	// -------- Special dates --------
	GetSpecialDate(ctx context.Context, barbershopID uint, barberID *uint, date time.Time) (*models.SpecialDate, error)
	ListSpecialDates(ctx context.Context, barbershopID uint, from, to time.Time) ([]models.SpecialDate, error)
	SaveSpecialDate(ctx context.Context, sd *models.SpecialDate) error
	DeleteSpecialDate(ctx context.Context, barbershopID, id uint) (*models.SpecialDate, error)

	// -------- Time off --------
	HasApprovedTimeOff(ctx context.Context, barberID uint, date time.Time) (bool, error)
	CreateTimeOff(ctx context.Context, to *models.TimeOff) error
	GetTimeOff(ctx context.Context, barbershopID, id uint) (*models.TimeOff, error)
	ListTimeOff(ctx context.Context, barberID uint) ([]models.TimeOff, error)
	// ApproveTimeOff flips a pending request to approved unless another
	// approved range of the same barber overlaps it.
	ApproveTimeOff(ctx context.Context, to *models.TimeOff) error
	UpdateTimeOff(ctx context.Context, to *models.TimeOff) error

	// -------- Ad-hoc breaks --------
	ListBreaks(ctx context.Context, barberID uint, date time.Time) ([]models.Break, error)
	GetBreak(ctx context.Context, barbershopID, id uint) (*models.Break, error)
	// CreateBreakExclusive inserts b unless an active appointment of the
	// barber overlaps [b.StartAt, b.EndAt), atomically with the check.
	CreateBreakExclusive(ctx context.Context, b *models.Break) error
	DeleteBreak(ctx context.Context, barbershopID, id uint) (*models.Break, error)
}
