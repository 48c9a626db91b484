package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// notFound turns gorm's missing-row error into the API's not-found error.
func notFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.NotFoundErr(entity)
	}
	return err
}

// --------------------------------------------------
// Barbershop / staff
// --------------------------------------------------

func (r *AppointmentGormRepository) GetBarbershopByID(
	ctx context.Context,
	id uint,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, notFound(err, "barbershop")
	}
	return &shop, nil
}

func (r *AppointmentGormRepository) GetBarbershopBySlug(
	ctx context.Context,
	slug string,
) (*models.Barbershop, error) {

	var shop models.Barbershop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, notFound(err, "barbershop")
	}
	return &shop, nil
}

// UpdateBarbershop writes the profile and booking rules. Zero values are
// written too.
func (r *AppointmentGormRepository) UpdateBarbershop(ctx context.Context, shop *models.Barbershop) error {
	res := r.db.WithContext(ctx).
		Model(shop).
		Select("name", "phone", "address", "timezone",
			"min_notice_hours", "max_advance_days", "same_day_cutoff", "slot_interval_minutes").
		Updates(shop)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.NotFoundErr("barbershop")
	}
	return nil
}

func (r *AppointmentGormRepository) GetBarber(
	ctx context.Context,
	barbershopID uint,
	barberID uint,
) (*models.Barber, error) {

	var b models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", barberID, barbershopID).
		First(&b).Error; err != nil {
		return nil, notFound(err, "barber")
	}
	return &b, nil
}

func (r *AppointmentGormRepository) ListBarbers(
	ctx context.Context,
	barbershopID uint,
) ([]models.Barber, error) {

	var out []models.Barber
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND active = ?", barbershopID, true).
		Order("name ASC").
		Find(&out).Error
	return out, err
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *AppointmentGormRepository) GetServices(
	ctx context.Context,
	barbershopID uint,
	ids []uint,
) ([]models.Service, error) {

	var out []models.Service
	err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND id IN ?", barbershopID, ids).
		Find(&out).Error
	return out, err
}

func (r *AppointmentGormRepository) ListServices(
	ctx context.Context,
	barbershopID uint,
	onlyActive bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Where("barbershop_id = ?", barbershopID)
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}

	var out []models.Service
	err := q.Order("category ASC, name ASC").Find(&out).Error
	return out, err
}

func (r *AppointmentGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	barbershopID uint,
	id uint,
) (*models.Service, error) {

	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&s).Error; err != nil {
		return nil, notFound(err, "service")
	}
	return &s, nil
}

// UpdateService uses Select("*") so is_active=false is written too.
func (r *AppointmentGormRepository) UpdateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).
		Model(s).
		Select("*").
		Omit("id", "barbershop_id", "created_at").
		Updates(s).Error
}

// --------------------------------------------------
// Clients
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(
	ctx context.Context,
	barbershopID uint,
	clientID uint,
) (*models.Client, error) {

	var c models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND barbershop_id = ?", clientID, barbershopID).
		First(&c).Error; err != nil {
		return nil, notFound(err, "client")
	}
	return &c, nil
}

func (r *AppointmentGormRepository) ListClients(
	ctx context.Context,
	barbershopID uint,
	search string,
) ([]models.Client, error) {

	q := r.db.WithContext(ctx).Where("barbershop_id = ?", barbershopID)
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?", like, like, like)
	}

	var out []models.Client
	err := q.Order("name ASC").Limit(200).Find(&out).Error
	return out, err
}

// GetOrCreateGuestClient inserts with ON CONFLICT DO NOTHING on
// (barbershop_id, phone) and reads the row back, so concurrent first
// bookings of the same guest end up with one profile.
func (r *AppointmentGormRepository) GetOrCreateGuestClient(
	ctx context.Context,
	barbershopID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	client := models.Client{
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
		IsGuest:      true,
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barbershop_id"}, {Name: "phone"}},
			DoNothing: true,
		}).
		Create(&client).Error; err != nil {
		return nil, err
	}

	var stored models.Client
	if err := r.db.WithContext(ctx).
		Where("barbershop_id = ? AND phone = ?", barbershopID, phone).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// --------------------------------------------------
// Appointment (create)
// --------------------------------------------------

func (r *AppointmentGormRepository) ConfirmationCodeExists(
	ctx context.Context,
	code string,
) (bool, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("confirmation_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

// CreateAppointmentExclusive serializes bookings of one barber on the
// barber row lock, rechecks overlap with appointments and ad-hoc breaks,
// then inserts. The exclusion
// constraint created by the migration backs this up.
func (r *AppointmentGormRepository) CreateAppointmentExclusive(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var barber models.Barber
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&barber, ap.BarberID).Error; err != nil {
			return notFound(err, "barber")
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"barber_id = ? AND status IN ? AND start_at < ? AND end_at > ?",
				ap.BarberID,
				domain.ActiveStatuses,
				ap.EndAt,
				ap.StartAt,
			).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.SlotConflict("time_conflict", "Time slot occupied")
		}

		if err := tx.
			Model(&models.Break{}).
			Where("barber_id = ? AND start_at < ? AND end_at > ?", ap.BarberID, ap.EndAt, ap.StartAt).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.SlotConflict("break_conflict", "Requested time overlaps a break")
		}

		return tx.Omit(clause.Associations).Create(ap).Error
	})

	return appointmentInsertError(err)
}

// appointmentInsertError maps constraint violations raised by postgres
// when the in-transaction checks were raced.
func appointmentInsertError(err error) error {
	switch {
	case err == nil:
		return nil
	case httperr.IsExclusionConflict(err):
		return httperr.SlotConflict("time_conflict", "Time slot occupied")
	case httperr.IsUniqueViolation(err, "idx_appointments_confirmation_code"):
		return domain.ErrDuplicateCode
	default:
		return err
	}
}

func (r *AppointmentGormRepository) CreateAppointmentServices(
	ctx context.Context,
	appointmentID uint,
	lines []models.AppointmentService,
) error {

	for i := range lines {
		lines[i].AppointmentID = appointmentID
	}
	return r.db.WithContext(ctx).Create(&lines).Error
}

func (r *AppointmentGormRepository) DeleteAppointment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("appointment_id = ?", id).Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Appointment{}, id).Error
	})
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	barbershopID uint,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Barber").
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Where("id = ? AND barbershop_id = ?", id, barbershopID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment")
	}
	return &ap, nil
}

// UpdateAppointment is a compare-and-set on status, so a stale transition
// never overwrites a concurrent one.
func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
	from string,
) error {
	res := r.db.WithContext(ctx).
		Model(ap).
		Where("status = ?", from).
		Select("*").
		Omit(clause.Associations, "CreatedAt").
		Updates(ap)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrStatusChanged
	}
	return nil
}

// --------------------------------------------------
// Appointment (reads)
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveAppointments(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	err := r.db.WithContext(ctx).
		Select("id", "start_at", "end_at", "status").
		Where(
			"barber_id = ? AND status IN ? AND start_at < ? AND end_at > ?",
			barberID, domain.ActiveStatuses, end, start,
		).
		Order("start_at ASC").
		Find(&apps).Error
	return apps, err
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Services", func(db *gorm.DB) *gorm.DB { return db.Order("order_index ASC") }).
		Where(
			"barber_id = ? AND start_at >= ? AND start_at < ?",
			barberID,
			start,
			end,
		).
		Order("start_at ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Waitlist
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateWaitlistEntry(ctx context.Context, e *models.WaitlistEntry) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(e).Error
}

func (r *AppointmentGormRepository) ListWaitlist(
	ctx context.Context,
	barberID uint,
	date time.Time,
	status string,
) ([]models.WaitlistEntry, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Where("barber_id = ? AND date = ?", barberID, date)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var out []models.WaitlistEntry
	err := q.Order("id ASC").Find(&out).Error
	return out, err
}

func (r *AppointmentGormRepository) UpdateWaitlistEntry(ctx context.Context, e *models.WaitlistEntry) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(e).Error
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
