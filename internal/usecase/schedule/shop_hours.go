package schedule

import (
	"context"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type ReplaceShopHoursInput struct {
	BarbershopID uint
	ActorID      *uint
	Days         []models.ShopHours
}

type ManageShopHours struct {
	d Deps
}

func NewManageShopHours(d Deps) *ManageShopHours {
	return &ManageShopHours{d: d}
}

func (uc *ManageShopHours) Get(ctx context.Context, barbershopID uint) ([]models.ShopHours, error) {
	days, err := uc.d.Repo.ListShopHours(ctx, barbershopID)
	if err != nil {
		return nil, httperr.Persistence("list shop hours", err)
	}
	return days, nil
}

// Replace stores only the weekdays given; a weekday with no row puts no
// bound on barber hours.
func (uc *ManageShopHours) Replace(ctx context.Context, in ReplaceShopHoursInput) ([]models.ShopHours, error) {
	seen := make(map[int]bool, 7)
	days := make([]models.ShopHours, 0, len(in.Days))
	for _, d := range in.Days {
		if seen[d.Weekday] {
			return nil, httperr.Validation("duplicate_weekday", "each weekday may appear once")
		}
		seen[d.Weekday] = true
		if err := domain.ValidateShopHours(&d); err != nil {
			return nil, httperr.Validation("invalid_shop_hours", err.Error())
		}
		d.BarbershopID = in.BarbershopID
		days = append(days, d)
	}

	if err := uc.d.Repo.ReplaceShopHours(ctx, in.BarbershopID, days); err != nil {
		return nil, httperr.Persistence("replace shop hours", err)
	}
	uc.d.Resolver.InvalidateShop(in.BarbershopID)

	uc.d.Audit.Dispatch(audit.Event{
		BarbershopID: in.BarbershopID,
		ActorID:      in.ActorID,
		Action:       "shop_hours_updated",
		Entity:       "barbershop",
		EntityID:     uintPtr(in.BarbershopID),
	})

	return days, nil
}
