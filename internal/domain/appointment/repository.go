package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type Repository interface {
	// -------- Barbershop / staff --------
	GetBarbershopByID(ctx context.Context, id uint) (*models.Barbershop, error)
	GetBarbershopBySlug(ctx context.Context, slug string) (*models.Barbershop, error)
	UpdateBarbershop(ctx context.Context, shop *models.Barbershop) error
	GetBarber(ctx context.Context, barbershopID, barberID uint) (*models.Barber, error)
	ListBarbers(ctx context.Context, barbershopID uint) ([]models.Barber, error)

	// -------- Services --------
	GetServices(ctx context.Context, barbershopID uint, ids []uint) ([]models.Service, error)
	ListServices(ctx context.Context, barbershopID uint, onlyActive bool) ([]models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	GetService(ctx context.Context, barbershopID, id uint) (*models.Service, error)
	UpdateService(ctx context.Context, s *models.Service) error

	// -------- Clients --------
	GetClient(ctx context.Context, barbershopID, clientID uint) (*models.Client, error)
	ListClients(ctx context.Context, barbershopID uint, search string) ([]models.Client, error)
	// GetOrCreateGuestClient is idempotent on (barbershop, phone).
	GetOrCreateGuestClient(ctx context.Context, barbershopID uint, name, phone, email string) (*models.Client, error)

	// -------- Appointment (create) --------
	ConfirmationCodeExists(ctx context.Context, code string) (bool, error)
	// CreateAppointmentExclusive inserts the header only if no active
	// appointment of the barber overlaps it, atomically with the check.
	CreateAppointmentExclusive(ctx context.Context, ap *models.Appointment) error
	CreateAppointmentServices(ctx context.Context, appointmentID uint, lines []models.AppointmentService) error
	DeleteAppointment(ctx context.Context, id uint) error

	// -------- Appointment (state change) --------
	GetAppointment(ctx context.Context, barbershopID, id uint) (*models.Appointment, error)
	// UpdateAppointment writes ap only while the stored status is still
	// from; otherwise it returns ErrStatusChanged.
	UpdateAppointment(ctx context.Context, ap *models.Appointment, from string) error

	// -------- Appointment (reads) --------
	// ListActiveAppointments returns active appointments overlapping [start, end).
	ListActiveAppointments(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error)
	ListAppointmentsForPeriod(ctx context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error)

	// -------- Waitlist --------
	CreateWaitlistEntry(ctx context.Context, e *models.WaitlistEntry) error
	ListWaitlist(ctx context.Context, barberID uint, date time.Time, status string) ([]models.WaitlistEntry, error)
	UpdateWaitlistEntry(ctx context.Context, e *models.WaitlistEntry) error
}

// ErrDuplicateCode is returned by CreateAppointmentExclusive when the
// confirmation code was taken between the check and the insert.
var ErrDuplicateCode = errors.New("confirmation code already taken")

// ErrStatusChanged means another request moved the appointment first.
var ErrStatusChanged = httperr.InvalidState("status_changed", "appointment status changed, reload and retry")
