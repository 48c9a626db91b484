package memstore

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Demo is what SeedDemo created.
type Demo struct {
	Shop     *models.Barbershop
	Owner    *models.Barber
	Barber   *models.Barber
	Services []models.Service
}

// SeedDemo loads a shop "demo" open 09:00-19:00 Monday to Saturday, an
// owner and a barber working 09:00-18:00 with a 12:00-13:00 break, and two
// services.
func SeedDemo(ctx context.Context, s *Store, tz string) (*Demo, error) {
	shop := &models.Barbershop{
		Name:                "Demo Barbershop",
		Slug:                "demo",
		Timezone:            tz,
		MinNoticeHours:      2,
		MaxAdvanceDays:      30,
		SlotIntervalMinutes: 15,
	}
	s.AddBarbershop(shop)

	owner := &models.Barber{BarbershopID: shop.ID, Name: "Owner", Role: "owner", Active: true}
	barber := &models.Barber{BarbershopID: shop.ID, Name: "Barber", Role: "barber", Active: true}
	s.AddBarber(owner)
	s.AddBarber(barber)

	services := []models.Service{
		{BarbershopID: shop.ID, Name: "Haircut", DurationMinutes: 30, Price: 50, Category: "hair", IsActive: true},
		{BarbershopID: shop.ID, Name: "Beard", DurationMinutes: 20, Price: 30, Category: "beard", IsActive: true},
	}
	for i := range services {
		if err := s.CreateService(ctx, &services[i]); err != nil {
			return nil, err
		}
	}

	shopWeek := make([]models.ShopHours, 0, 7)
	week := make([]models.WorkingHours, 0, 7)
	for wd := 0; wd < 7; wd++ {
		if wd == int(time.Sunday) {
			shopWeek = append(shopWeek, models.ShopHours{Weekday: wd, IsClosed: true})
			week = append(week, models.WorkingHours{Weekday: wd})
			continue
		}
		shopWeek = append(shopWeek, models.ShopHours{Weekday: wd, OpenTime: "09:00", CloseTime: "19:00"})
		week = append(week, models.WorkingHours{
			Weekday: wd, IsWorking: true,
			StartTime: "09:00", EndTime: "18:00",
			BreakStart: "12:00", BreakEnd: "13:00",
		})
	}
	if err := s.ReplaceShopHours(ctx, shop.ID, shopWeek); err != nil {
		return nil, err
	}
	for _, b := range []*models.Barber{owner, barber} {
		if err := s.ReplaceWorkingHours(ctx, b.ID, week); err != nil {
			return nil, err
		}
	}

	return &Demo{Shop: shop, Owner: owner, Barber: barber, Services: services}, nil
}
