package appointment

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// Catalog exposes the shop's services, barbers and clients.
type Catalog struct {
	d Deps
}

func NewCatalog(d Deps) *Catalog {
	return &Catalog{d: d}
}

func (uc *Catalog) ShopBySlug(ctx context.Context, slug string) (*models.Barbershop, error) {
	shop, err := uc.d.Repo.GetBarbershopBySlug(ctx, strings.ToLower(strings.TrimSpace(slug)))
	if err != nil {
		return nil, httperr.Persistence("load barbershop", err)
	}
	return shop, nil
}

func (uc *Catalog) Shop(ctx context.Context, id uint) (*models.Barbershop, error) {
	return uc.d.shop(ctx, id)
}

func (uc *Catalog) Barbers(ctx context.Context, barbershopID uint) ([]models.Barber, error) {
	out, err := uc.d.Repo.ListBarbers(ctx, barbershopID)
	if err != nil {
		return nil, httperr.Persistence("list barbers", err)
	}
	return out, nil
}

func (uc *Catalog) Barber(ctx context.Context, barbershopID, id uint) (*models.Barber, error) {
	b, err := uc.d.Repo.GetBarber(ctx, barbershopID, id)
	if err != nil {
		return nil, httperr.Persistence("load barber", err)
	}
	return b, nil
}

func (uc *Catalog) Services(ctx context.Context, barbershopID uint, onlyActive bool) ([]models.Service, error) {
	out, err := uc.d.Repo.ListServices(ctx, barbershopID, onlyActive)
	if err != nil {
		return nil, httperr.Persistence("list services", err)
	}
	return out, nil
}

type ServiceInput struct {
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
	Category        string
	IsActive        *bool
}

func (in ServiceInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return httperr.Validation("invalid_service", "name is required")
	}
	if in.DurationMinutes <= 0 || in.DurationMinutes > 8*60 {
		return httperr.Validation("invalid_service", "duration_minutes must be between 1 and 480")
	}
	if in.Price < 0 {
		return httperr.Validation("invalid_service", "price must not be negative")
	}
	return nil
}

func (uc *Catalog) CreateService(ctx context.Context, barbershopID uint, actorID *uint, in ServiceInput) (*models.Service, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	s := &models.Service{
		BarbershopID:    barbershopID,
		Name:            strings.TrimSpace(in.Name),
		Description:     in.Description,
		DurationMinutes: in.DurationMinutes,
		Price:           in.Price,
		Category:        strings.ToLower(strings.TrimSpace(in.Category)),
		IsActive:        in.IsActive == nil || *in.IsActive,
	}
	if err := uc.d.Repo.CreateService(ctx, s); err != nil {
		return nil, httperr.Persistence("create service", err)
	}
	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		ActorID:      actorID,
		Action:       "service_created",
		Entity:       "service",
		EntityID:     &s.ID,
	})
	return s, nil
}

// ServicePatch changes only the fields that are set.
type ServicePatch struct {
	Name            *string
	Description     *string
	DurationMinutes *int
	Price           *float64
	Category        *string
	IsActive        *bool
}

// UpdateService edits the catalog entry. Booked appointments keep the
// snapshot taken at booking time.
func (uc *Catalog) UpdateService(ctx context.Context, barbershopID, id uint, actorID *uint, p ServicePatch) (*models.Service, error) {
	s, err := uc.d.Repo.GetService(ctx, barbershopID, id)
	if err != nil {
		return nil, httperr.Persistence("load service", err)
	}

	in := ServiceInput{
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Category:        s.Category,
	}
	if p.Name != nil {
		in.Name = *p.Name
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if p.DurationMinutes != nil {
		in.DurationMinutes = *p.DurationMinutes
	}
	if p.Price != nil {
		in.Price = *p.Price
	}
	if p.Category != nil {
		in.Category = *p.Category
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	s.Name = strings.TrimSpace(in.Name)
	s.Description = in.Description
	s.DurationMinutes = in.DurationMinutes
	s.Price = in.Price
	s.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	if err := uc.d.Repo.UpdateService(ctx, s); err != nil {
		return nil, httperr.Persistence("update service", err)
	}
	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		ActorID:      actorID,
		Action:       "service_updated",
		Entity:       "service",
		EntityID:     &s.ID,
	})
	return s, nil
}

func (uc *Catalog) Clients(ctx context.Context, barbershopID uint, search string) ([]models.Client, error) {
	out, err := uc.d.Repo.ListClients(ctx, barbershopID, strings.TrimSpace(search))
	if err != nil {
		return nil, httperr.Persistence("list clients", err)
	}
	return out, nil
}

// ShopSettingsInput carries the editable profile and booking rules. Nil
// fields are left unchanged.
type ShopSettingsInput struct {
	Name                *string
	Phone               *string
	Address             *string
	Timezone            *string
	MinNoticeHours      *int
	MaxAdvanceDays      *int
	SameDayCutoff       *string
	SlotIntervalMinutes *int
}

func (uc *Catalog) UpdateShopSettings(ctx context.Context, barbershopID uint, actorID *uint, in ShopSettingsInput) (*models.Barbershop, error) {
	shop, err := uc.d.shop(ctx, barbershopID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, httperr.Validation("invalid_name", "name must not be empty")
		}
		shop.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		shop.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		shop.Address = strings.TrimSpace(*in.Address)
	}
	if in.Timezone != nil {
		if !timezone.IsValid(*in.Timezone) {
			return nil, httperr.Validation("invalid_timezone", "timezone must be an IANA name")
		}
		shop.Timezone = *in.Timezone
	}
	if in.MinNoticeHours != nil {
		if *in.MinNoticeHours < 0 {
			return nil, httperr.ErrBusiness("invalid_min_notice")
		}
		shop.MinNoticeHours = *in.MinNoticeHours
	}
	if in.MaxAdvanceDays != nil {
		if *in.MaxAdvanceDays < 0 {
			return nil, httperr.ErrBusiness("invalid_max_advance")
		}
		shop.MaxAdvanceDays = *in.MaxAdvanceDays
	}
	if in.SameDayCutoff != nil {
		if *in.SameDayCutoff != "" {
			if _, err := schedule.TimeToMinutes(*in.SameDayCutoff); err != nil {
				return nil, httperr.Validation("invalid_cutoff", "same_day_cutoff must be HH:MM")
			}
		}
		shop.SameDayCutoff = *in.SameDayCutoff
	}
	if in.SlotIntervalMinutes != nil {
		if *in.SlotIntervalMinutes < 5 || *in.SlotIntervalMinutes > 120 {
			return nil, httperr.Validation("invalid_slot_interval", "slot_interval_minutes must be between 5 and 120")
		}
		shop.SlotIntervalMinutes = *in.SlotIntervalMinutes
	}

	if err := uc.d.Repo.UpdateBarbershop(ctx, shop); err != nil {
		return nil, httperr.Persistence("update barbershop", err)
	}
	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: barbershopID,
		ActorID:      actorID,
		Action:       "barbershop_updated",
		Entity:       "barbershop",
		EntityID:     &shop.ID,
	})
	return shop, nil
}
