package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apdomain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// optional returns (nil, nil) for a missing row.
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// --------------------------------------------------
// Shop hours
// --------------------------------------------------

func (r *ScheduleGormRepository) GetShopHours(
	ctx context.Context,
	barbershopID uint,
	weekday int,
) (*models.ShopHours, error) {

	var sh models.ShopHours
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND weekday = ?", barbershopID, weekday).
		First(&sh).Error
	return optional(&sh, err)
}

func (r *ScheduleGormRepository) ListShopHours(ctx context.Context, barbershopID uint) ([]models.ShopHours, error) {
	var out []models.ShopHours
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ?", barbershopID).
		Order("weekday ASC").
		Find(&out).Error
	return out, err
}

func (r *ScheduleGormRepository) ReplaceShopHours(
	ctx context.Context,
	barbershopID uint,
	hours []models.ShopHours,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barbershop_id = ?", barbershopID).Delete(&models.ShopHours{}).Error; err != nil {
			return err
		}
		if len(hours) == 0 {
			return nil
		}
		for i := range hours {
			hours[i].ID = 0
			hours[i].BarbershopID = barbershopID
		}
		return tx.Create(&hours).Error
	})
}

// --------------------------------------------------
// Barber template
// --------------------------------------------------

func (r *ScheduleGormRepository) GetWorkingHours(
	ctx context.Context,
	barberID uint,
	weekday int,
) (*models.WorkingHours, error) {

	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error
	return optional(&wh, err)
}

func (r *ScheduleGormRepository) ListWorkingHours(ctx context.Context, barberID uint) ([]models.WorkingHours, error) {
	var out []models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday ASC").
		Find(&out).Error
	return out, err
}

func (r *ScheduleGormRepository) ReplaceWorkingHours(
	ctx context.Context,
	barberID uint,
	hours []models.WorkingHours,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("barber_id = ?", barberID).Delete(&models.WorkingHours{}).Error; err != nil {
			return err
		}
		if len(hours) == 0 {
			return nil
		}
		for i := range hours {
			hours[i].ID = 0
			hours[i].BarberID = barberID
		}
		return tx.Create(&hours).Error
	})
}

// --------------------------------------------------
// Special dates
// --------------------------------------------------

func ownedBy(q *gorm.DB, barberID *uint) *gorm.DB {
	if barberID == nil {
		return q.Where("barber_id IS NULL")
	}
	return q.Where("barber_id = ?", *barberID)
}

func (r *ScheduleGormRepository) GetSpecialDate(
	ctx context.Context,
	barbershopID uint,
	barberID *uint,
	date time.Time,
) (*models.SpecialDate, error) {

	var sd models.SpecialDate
	q := r.db.WithContext(ctx).
		Preload("Breaks").
		Where("barbershop_id = ? AND date = ?", barbershopID, date)
	err := ownedBy(q, barberID).First(&sd).Error
	return optional(&sd, err)
}

func (r *ScheduleGormRepository) ListSpecialDates(
	ctx context.Context,
	barbershopID uint,
	from time.Time,
	to time.Time,
) ([]models.SpecialDate, error) {

	var out []models.SpecialDate
	err := r.db.WithContext(ctx).
		Preload("Breaks").
		Where("barbershop_id = ? AND date >= ? AND date <= ?", barbershopID, from, to).
		Order("date ASC").
		Find(&out).Error
	return out, err
}

// SaveSpecialDate replaces any existing exception of the same owner and
// date, breaks included.
func (r *ScheduleGormRepository) SaveSpecialDate(ctx context.Context, sd *models.SpecialDate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.SpecialDate
		q := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("barbershop_id = ? AND date = ?", sd.BarbershopID, sd.Date)
		err := ownedBy(q, sd.BarberID).First(&existing).Error

		switch {
		case err == nil:
			sd.ID = existing.ID
			sd.CreatedAt = existing.CreatedAt
			if err := tx.Where("special_date_id = ?", sd.ID).Delete(&models.SpecialDateBreak{}).Error; err != nil {
				return err
			}
			if err := tx.Omit(clause.Associations).Save(sd).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Omit(clause.Associations).Create(sd).Error; err != nil {
				return err
			}
		default:
			return err
		}

		if len(sd.Breaks) == 0 {
			return nil
		}
		for i := range sd.Breaks {
			sd.Breaks[i].ID = 0
			sd.Breaks[i].SpecialDateID = sd.ID
		}
		return tx.Create(&sd.Breaks).Error
	})
}

func (r *ScheduleGormRepository) DeleteSpecialDate(
	ctx context.Context,
	barbershopID uint,
	id uint,
) (*models.SpecialDate, error) {

	var sd models.SpecialDate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("id = ? AND barbershop_id = ?", id, barbershopID).
			First(&sd).Error; err != nil {
			return notFound(err, "special_date")
		}
		if err := tx.Where("special_date_id = ?", id).Delete(&models.SpecialDateBreak{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SpecialDate{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &sd, nil
}

// --------------------------------------------------
// Time off
// --------------------------------------------------

func (r *ScheduleGormRepository) HasApprovedTimeOff(
	ctx context.Context,
	barberID uint,
	date time.Time,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.TimeOff{}).
		Where(
			"barber_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			barberID, models.TimeOffApproved, date, date,
		).
		Count(&count).Error
	return count > 0, err
}

func (r *ScheduleGormRepository) CreateTimeOff(ctx context.Context, to *models.TimeOff) error {
	return r.db.WithContext(ctx).Create(to).Error
}

func (r *ScheduleGormRepository) GetTimeOff(
	ctx context.Context,
	barbershopID uint,
	id uint,
) (*models.TimeOff, error) {

	var to models.TimeOff
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&to).Error; err != nil {
		return nil, notFound(err, "time_off")
	}
	return &to, nil
}

func (r *ScheduleGormRepository) ListTimeOff(ctx context.Context, barberID uint) ([]models.TimeOff, error) {
	var out []models.TimeOff
	err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("start_date ASC").
		Find(&out).Error
	return out, err
}

// ApproveTimeOff locks the barber row so two approvals of overlapping
// ranges cannot both pass the check.
func (r *ScheduleGormRepository) ApproveTimeOff(ctx context.Context, to *models.TimeOff) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var barber models.Barber
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&barber, to.BarberID).Error; err != nil {
			return notFound(err, "barber")
		}

		var count int64
		if err := tx.
			Model(&models.TimeOff{}).
			Where(
				"barber_id = ? AND id <> ? AND status = ? AND start_date <= ? AND end_date >= ?",
				to.BarberID, to.ID, models.TimeOffApproved, to.EndDate, to.StartDate,
			).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.SlotConflict("time_off_overlap", "Overlapping approved time off exists")
		}

		return tx.Save(to).Error
	})
}

func (r *ScheduleGormRepository) UpdateTimeOff(ctx context.Context, to *models.TimeOff) error {
	return r.db.WithContext(ctx).Save(to).Error
}

// --------------------------------------------------
// Ad-hoc breaks
// --------------------------------------------------

func (r *ScheduleGormRepository) ListBreaks(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]models.Break, error) {

	var out []models.Break
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("start_time ASC").
		Find(&out).Error
	return out, err
}

// CreateBreakExclusive takes the same barber row lock as bookings, so a
// break and an appointment for the same window cannot both commit.
func (r *ScheduleGormRepository) CreateBreakExclusive(ctx context.Context, b *models.Break) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var barber models.Barber
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&barber, b.BarberID).Error; err != nil {
			return notFound(err, "barber")
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"barber_id = ? AND status IN ? AND start_at < ? AND end_at > ?",
				b.BarberID, apdomain.ActiveStatuses, b.EndAt, b.StartAt,
			).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.SlotConflict("break_overlaps_appointment", "Break overlaps an existing appointment")
		}

		return tx.Create(b).Error
	})
}

func (r *ScheduleGormRepository) GetBreak(
	ctx context.Context,
	barbershopID uint,
	id uint,
) (*models.Break, error) {

	var b models.Break
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&b).Error; err != nil {
		return nil, notFound(err, "break")
	}
	return &b, nil
}

func (r *ScheduleGormRepository) DeleteBreak(
	ctx context.Context,
	barbershopID uint,
	id uint,
) (*models.Break, error) {

	var b models.Break
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&b).Error; err != nil {
		return nil, notFound(err, "break")
	}
	if err := r.db.WithContext(ctx).Delete(&models.Break{}, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

var _ schedule.Repository = (*ScheduleGormRepository)(nil)
