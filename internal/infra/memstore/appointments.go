package memstore

import (
	"context"
	"sort"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func active(status string) bool {
	return domain.Status(status).Active()
}

func (s *Store) ConfirmationCodeExists(_ context.Context, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ap := range s.appointments {
		if ap.ConfirmationCode == code {
			return true, nil
		}
	}
	return false, nil
}

// CreateAppointmentExclusive runs the overlap check and the insert under
// the store lock, like the row lock in the SQL repository.
func (s *Store) CreateAppointmentExclusive(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.appointments {
		if other.ConfirmationCode == ap.ConfirmationCode {
			return domain.ErrDuplicateCode
		}
		if other.BarberID == ap.BarberID && active(other.Status) &&
			other.StartAt.Before(ap.EndAt) && other.EndAt.After(ap.StartAt) {
			return httperr.SlotConflict("time_conflict", "Time slot occupied")
		}
	}
	for _, b := range s.breaks {
		if b.BarberID == ap.BarberID && b.StartAt.Before(ap.EndAt) && b.EndAt.After(ap.StartAt) {
			return httperr.SlotConflict("break_conflict", "Requested time overlaps a break")
		}
	}

	ap.ID = s.id()
	now := time.Now()
	ap.CreatedAt, ap.UpdatedAt = now, now
	header := *ap
	header.Services = nil
	s.appointments[ap.ID] = header
	return nil
}

func (s *Store) CreateAppointmentServices(_ context.Context, appointmentID uint, lines []models.AppointmentService) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failLines != nil {
		return s.failLines
	}
	if _, ok := s.appointments[appointmentID]; !ok {
		return httperr.NotFoundErr("appointment")
	}
	out := make([]models.AppointmentService, len(lines))
	for i, l := range lines {
		l.ID = s.id()
		l.AppointmentID = appointmentID
		out[i] = l
	}
	s.lines[appointmentID] = out
	return nil
}

func (s *Store) DeleteAppointment(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.appointments, id)
	delete(s.lines, id)
	return nil
}

func (s *Store) GetAppointment(_ context.Context, barbershopID, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ap, ok := s.appointments[id]
	if !ok || ap.BarbershopID != barbershopID {
		return nil, httperr.NotFoundErr("appointment")
	}
	s.hydrate(&ap)
	return &ap, nil
}

func (s *Store) UpdateAppointment(_ context.Context, ap *models.Appointment, from string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.appointments[ap.ID]
	if !ok {
		return httperr.NotFoundErr("appointment")
	}
	if cur.Status != from {
		return domain.ErrStatusChanged
	}
	ap.UpdatedAt = time.Now()
	header := *ap
	header.Services = nil
	header.Client = models.Client{}
	header.Barber = models.Barber{}
	s.appointments[ap.ID] = header
	return nil
}

func (s *Store) ListActiveAppointments(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.BarberID == barberID && active(ap.Status) && ap.StartAt.Before(end) && ap.EndAt.After(start) {
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out, nil
}

func (s *Store) ListAppointmentsForPeriod(_ context.Context, barberID uint, start, end time.Time) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Appointment
	for _, ap := range s.appointments {
		if ap.BarberID == barberID && !ap.StartAt.Before(start) && ap.StartAt.Before(end) {
			s.hydrate(&ap)
			out = append(out, ap)
		}
	}
	sortByStart(out)
	return out, nil
}

// LineCount reports the stored line items of an appointment.
func (s *Store) LineCount(appointmentID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines[appointmentID])
}

func (s *Store) AppointmentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

func (s *Store) hydrate(ap *models.Appointment) {
	ap.Client = s.clients[ap.ClientID]
	ap.Barber = s.barbers[ap.BarberID]
	ap.Services = append([]models.AppointmentService(nil), s.lines[ap.ID]...)
	sort.Slice(ap.Services, func(i, j int) bool { return ap.Services[i].OrderIndex < ap.Services[j].OrderIndex })
}

func sortByStart(aps []models.Appointment) {
	sort.Slice(aps, func(i, j int) bool { return aps[i].StartAt.Before(aps[j].StartAt) })
}

// ======================================================
// WAITLIST
// ======================================================

func (s *Store) CreateWaitlistEntry(_ context.Context, e *models.WaitlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.id()
	e.CreatedAt = time.Now()
	stored := *e
	stored.Client = models.Client{}
	s.waitlist[e.ID] = stored
	return nil
}

func (s *Store) ListWaitlist(_ context.Context, barberID uint, date time.Time, status string) ([]models.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.WaitlistEntry
	for _, e := range s.waitlist {
		if e.BarberID != barberID || !e.Date.Equal(date) {
			continue
		}
		if status != "" && e.Status != status {
			continue
		}
		e.Client = s.clients[e.ClientID]
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateWaitlistEntry(_ context.Context, e *models.WaitlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.waitlist[e.ID]; !ok {
		return httperr.NotFoundErr("waitlist_entry")
	}
	stored := *e
	stored.Client = models.Client{}
	s.waitlist[e.ID] = stored
	return nil
}
