// Package memstore keeps every booking table in process memory. It backs
// STORE_DRIVER=memory and the use case tests, and follows the same
// contracts as the gorm repositories.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var (
	_ domain.Repository   = (*Store)(nil)
	_ schedule.Repository = (*Store)(nil)
	_ audit.Store         = (*Store)(nil)
)

type Store struct {
	mu     sync.Mutex
	nextID uint

	shops        map[uint]models.Barbershop
	barbers      map[uint]models.Barber
	services     map[uint]models.Service
	clients      map[uint]models.Client
	appointments map[uint]models.Appointment
	lines        map[uint][]models.AppointmentService
	waitlist     map[uint]models.WaitlistEntry

	shopHours    map[uint]map[int]models.ShopHours
	workingHours map[uint]map[int]models.WorkingHours
	specialDates map[uint]models.SpecialDate
	timeOff      map[uint]models.TimeOff
	breaks       map[uint]models.Break
	auditLogs    []models.AuditLog

	failLines error
}

func New() *Store {
	return &Store{
		shops:        map[uint]models.Barbershop{},
		barbers:      map[uint]models.Barber{},
		services:     map[uint]models.Service{},
		clients:      map[uint]models.Client{},
		appointments: map[uint]models.Appointment{},
		lines:        map[uint][]models.AppointmentService{},
		waitlist:     map[uint]models.WaitlistEntry{},
		shopHours:    map[uint]map[int]models.ShopHours{},
		workingHours: map[uint]map[int]models.WorkingHours{},
		specialDates: map[uint]models.SpecialDate{},
		timeOff:      map[uint]models.TimeOff{},
		breaks:       map[uint]models.Break{},
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// FailAppointmentServices makes the next line item writes fail with err
// until it is called again with nil.
func (s *Store) FailAppointmentServices(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLines = err
}

// ======================================================
// SEEDING
// ======================================================

func (s *Store) AddBarbershop(b *models.Barbershop) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.id()
	}
	s.shops[b.ID] = *b
}

func (s *Store) AddBarber(b *models.Barber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.ID == 0 {
		b.ID = s.id()
	}
	s.barbers[b.ID] = *b
}

// ======================================================
// BARBERSHOP / STAFF
// ======================================================

func (s *Store) GetBarbershopByID(_ context.Context, id uint) (*models.Barbershop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.shops[id]
	if !ok {
		return nil, httperr.NotFoundErr("barbershop")
	}
	return &b, nil
}

func (s *Store) GetBarbershopBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.shops {
		if b.Slug == slug {
			return &b, nil
		}
	}
	return nil, httperr.NotFoundErr("barbershop")
}

func (s *Store) UpdateBarbershop(_ context.Context, b *models.Barbershop) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shops[b.ID]; !ok {
		return httperr.NotFoundErr("barbershop")
	}
	s.shops[b.ID] = *b
	return nil
}

func (s *Store) GetBarber(_ context.Context, barbershopID, barberID uint) (*models.Barber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.barbers[barberID]
	if !ok || b.BarbershopID != barbershopID {
		return nil, httperr.NotFoundErr("barber")
	}
	return &b, nil
}

func (s *Store) ListBarbers(_ context.Context, barbershopID uint) ([]models.Barber, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Barber
	for _, b := range s.barbers {
		if b.BarbershopID == barbershopID && b.Active {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ======================================================
// SERVICES
// ======================================================

func (s *Store) GetServices(_ context.Context, barbershopID uint, ids []uint) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Service
	for _, id := range ids {
		if sv, ok := s.services[id]; ok && sv.BarbershopID == barbershopID {
			out = append(out, sv)
		}
	}
	return out, nil
}

func (s *Store) ListServices(_ context.Context, barbershopID uint, onlyActive bool) ([]models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Service
	for _, sv := range s.services {
		if sv.BarbershopID == barbershopID && (!onlyActive || sv.IsActive) {
			out = append(out, sv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CreateService(_ context.Context, sv *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sv.ID = s.id()
	s.services[sv.ID] = *sv
	return nil
}

func (s *Store) GetService(_ context.Context, barbershopID, id uint) (*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sv, ok := s.services[id]
	if !ok || sv.BarbershopID != barbershopID {
		return nil, httperr.NotFoundErr("service")
	}
	return &sv, nil
}

func (s *Store) UpdateService(_ context.Context, sv *models.Service) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.services[sv.ID]; !ok {
		return httperr.NotFoundErr("service")
	}
	s.services[sv.ID] = *sv
	return nil
}

// ======================================================
// CLIENTS
// ======================================================

func (s *Store) GetClient(_ context.Context, barbershopID, clientID uint) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[clientID]
	if !ok || c.BarbershopID != barbershopID {
		return nil, httperr.NotFoundErr("client")
	}
	return &c, nil
}

func (s *Store) ListClients(_ context.Context, barbershopID uint, search string) ([]models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	search = strings.ToLower(search)
	var out []models.Client
	for _, c := range s.clients {
		if c.BarbershopID != barbershopID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) && !strings.Contains(c.Phone, search) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetOrCreateGuestClient(_ context.Context, barbershopID uint, name, phone, email string) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.clients {
		if c.BarbershopID == barbershopID && c.Phone == phone {
			return &c, nil
		}
	}
	c := models.Client{
		ID:           s.id(),
		BarbershopID: barbershopID,
		Name:         name,
		Phone:        phone,
		Email:        email,
		IsGuest:      true,
		CreatedAt:    time.Now(),
	}
	s.clients[c.ID] = c
	return &c, nil
}
