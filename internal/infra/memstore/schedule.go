package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// SHOP HOURS
// ======================================================

func (s *Store) GetShopHours(_ context.Context, barbershopID uint, weekday int) (*models.ShopHours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shopHours[barbershopID][weekday]
	if !ok {
		return nil, nil
	}
	return &sh, nil
}

func (s *Store) ListShopHours(_ context.Context, barbershopID uint) ([]models.ShopHours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ShopHours, 0, 7)
	for _, sh := range s.shopHours[barbershopID] {
		out = append(out, sh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

func (s *Store) ReplaceShopHours(_ context.Context, barbershopID uint, hours []models.ShopHours) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	week := make(map[int]models.ShopHours, len(hours))
	for i := range hours {
		hours[i].ID = s.id()
		hours[i].BarbershopID = barbershopID
		week[hours[i].Weekday] = hours[i]
	}
	s.shopHours[barbershopID] = week
	return nil
}

// ======================================================
// WORKING HOURS
// ======================================================

func (s *Store) GetWorkingHours(_ context.Context, barberID uint, weekday int) (*models.WorkingHours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	wh, ok := s.workingHours[barberID][weekday]
	if !ok {
		return nil, nil
	}
	return &wh, nil
}

func (s *Store) ListWorkingHours(_ context.Context, barberID uint) ([]models.WorkingHours, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.WorkingHours, 0, 7)
	for _, wh := range s.workingHours[barberID] {
		out = append(out, wh)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

func (s *Store) ReplaceWorkingHours(_ context.Context, barberID uint, hours []models.WorkingHours) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	week := make(map[int]models.WorkingHours, len(hours))
	for i := range hours {
		hours[i].ID = s.id()
		hours[i].BarberID = barberID
		week[hours[i].Weekday] = hours[i]
	}
	s.workingHours[barberID] = week
	return nil
}

// ======================================================
// SPECIAL DATES
// ======================================================

func sameOwner(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func (s *Store) GetSpecialDate(_ context.Context, barbershopID uint, barberID *uint, date time.Time) (*models.SpecialDate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sd := range s.specialDates {
		if sd.BarbershopID == barbershopID && sameOwner(sd.BarberID, barberID) && sd.Date.Equal(date) {
			return &sd, nil
		}
	}
	return nil, nil
}

func (s *Store) ListSpecialDates(_ context.Context, barbershopID uint, from, to time.Time) ([]models.SpecialDate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.SpecialDate
	for _, sd := range s.specialDates {
		if sd.BarbershopID == barbershopID && !sd.Date.Before(from) && !sd.Date.After(to) {
			out = append(out, sd)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) SaveSpecialDate(_ context.Context, sd *models.SpecialDate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.specialDates {
		if existing.BarbershopID == sd.BarbershopID && sameOwner(existing.BarberID, sd.BarberID) && existing.Date.Equal(sd.Date) {
			delete(s.specialDates, id)
		}
	}
	sd.ID = s.id()
	breaks := make([]models.SpecialDateBreak, len(sd.Breaks))
	for i, b := range sd.Breaks {
		b.ID = s.id()
		b.SpecialDateID = sd.ID
		breaks[i] = b
	}
	sd.Breaks = breaks
	s.specialDates[sd.ID] = *sd
	return nil
}

func (s *Store) DeleteSpecialDate(_ context.Context, barbershopID, id uint) (*models.SpecialDate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sd, ok := s.specialDates[id]
	if !ok || sd.BarbershopID != barbershopID {
		return nil, httperr.NotFoundErr("special_date")
	}
	delete(s.specialDates, id)
	return &sd, nil
}

// ======================================================
// TIME OFF
// ======================================================

func (s *Store) HasApprovedTimeOff(_ context.Context, barberID uint, date time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, to := range s.timeOff {
		if to.BarberID == barberID && to.Status == models.TimeOffApproved &&
			!date.Before(to.StartDate) && !date.After(to.EndDate) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateTimeOff(_ context.Context, to *models.TimeOff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	to.ID = s.id()
	s.timeOff[to.ID] = *to
	return nil
}

func (s *Store) GetTimeOff(_ context.Context, barbershopID, id uint) (*models.TimeOff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	to, ok := s.timeOff[id]
	if !ok || to.BarbershopID != barbershopID {
		return nil, httperr.NotFoundErr("time_off")
	}
	return &to, nil
}

func (s *Store) ListTimeOff(_ context.Context, barberID uint) ([]models.TimeOff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.TimeOff
	for _, to := range s.timeOff {
		if to.BarberID == barberID {
			out = append(out, to)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (s *Store) ApproveTimeOff(_ context.Context, to *models.TimeOff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.timeOff {
		if other.ID == to.ID || other.BarberID != to.BarberID || other.Status != models.TimeOffApproved {
			continue
		}
		if !other.StartDate.After(to.EndDate) && !to.StartDate.After(other.EndDate) {
			return httperr.SlotConflict("time_off_overlap", "Overlapping approved time off exists")
		}
	}
	s.timeOff[to.ID] = *to
	return nil
}

func (s *Store) UpdateTimeOff(_ context.Context, to *models.TimeOff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timeOff[to.ID]; !ok {
		return httperr.NotFoundErr("time_off")
	}
	s.timeOff[to.ID] = *to
	return nil
}

// ======================================================
// BREAKS
// ======================================================

func (s *Store) ListBreaks(_ context.Context, barberID uint, date time.Time) ([]models.Break, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Break
	for _, b := range s.breaks {
		if b.BarberID == barberID && b.Date.Equal(date) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime < out[j].StartTime })
	return out, nil
}

func (s *Store) GetBreak(_ context.Context, barbershopID, id uint) (*models.Break, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.breaks[id]
	if !ok || b.BarbershopID != barbershopID {
		return nil, httperr.NotFoundErr("break")
	}
	return &b, nil
}

func (s *Store) CreateBreakExclusive(_ context.Context, b *models.Break) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ap := range s.appointments {
		if ap.BarberID == b.BarberID && active(ap.Status) &&
			ap.StartAt.Before(b.EndAt) && ap.EndAt.After(b.StartAt) {
			return httperr.SlotConflict("break_overlaps_appointment", "Break overlaps an existing appointment")
		}
	}
	b.ID = s.id()
	b.CreatedAt = time.Now()
	s.breaks[b.ID] = *b
	return nil
}

func (s *Store) DeleteBreak(_ context.Context, barbershopID, id uint) (*models.Break, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.breaks[id]
	if !ok || b.BarbershopID != barbershopID {
		return nil, httperr.NotFoundErr("break")
	}
	delete(s.breaks, id)
	return &b, nil
}
