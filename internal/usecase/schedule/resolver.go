package schedule

import (
	"context"
	"fmt"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Cache holds resolved configuration rows between requests.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, v any)
	DeletePrefix(prefix string)
}

// ======================================================
// RESOLVER
// ======================================================

// Resolver merges shop hours, special dates, time off and the weekly
// template into the effective hours of one barber-day.
type Resolver struct {
	repo  domain.Repository
	cache Cache
}

func NewResolver(repo domain.Repository, cache Cache) *Resolver {
	return &Resolver{repo: repo, cache: cache}
}

// Resolve reads configuration through the cache unless fresh is set.
// date is any instant on the wanted calendar day in the shop timezone.
// Time off is always read from the store.
func (r *Resolver) Resolve(
	ctx context.Context,
	shop *models.Barbershop,
	barberID uint,
	date time.Time,
	fresh bool,
) (domain.EffectiveHours, error) {

	src, err := r.Sources(ctx, shop, barberID, date, fresh)
	if err != nil {
		return domain.EffectiveHours{}, err
	}

	h, err := domain.Resolve(src)
	if err != nil {
		return domain.EffectiveHours{}, httperr.Persistence("resolve schedule", err)
	}
	return h, nil
}

func (r *Resolver) Sources(
	ctx context.Context,
	shop *models.Barbershop,
	barberID uint,
	date time.Time,
	fresh bool,
) (domain.Sources, error) {

	weekday := int(date.Weekday())
	civil := domain.CivilDate(date)
	var src domain.Sources

	shopHours, err := cached(r, fresh, shopHoursKey(shop.ID, weekday), func() (*models.ShopHours, error) {
		return r.repo.GetShopHours(ctx, shop.ID, weekday)
	})
	if err != nil {
		return src, httperr.Persistence("load shop hours", err)
	}

	shopEx, err := cached(r, fresh, specialDateKey(shop.ID, nil, civil), func() (*models.SpecialDate, error) {
		return r.repo.GetSpecialDate(ctx, shop.ID, nil, civil)
	})
	if err != nil {
		return src, httperr.Persistence("load shop special date", err)
	}

	barberEx, err := cached(r, fresh, specialDateKey(shop.ID, &barberID, civil), func() (*models.SpecialDate, error) {
		return r.repo.GetSpecialDate(ctx, shop.ID, &barberID, civil)
	})
	if err != nil {
		return src, httperr.Persistence("load barber special date", err)
	}

	tmpl, err := cached(r, fresh, workingHoursKey(barberID, weekday), func() (*models.WorkingHours, error) {
		return r.repo.GetWorkingHours(ctx, barberID, weekday)
	})
	if err != nil {
		return src, httperr.Persistence("load working hours", err)
	}

	onTimeOff, err := r.repo.HasApprovedTimeOff(ctx, barberID, civil)
	if err != nil {
		return src, httperr.Persistence("load time off", err)
	}

	return domain.Sources{
		ShopHours:       shopHours,
		ShopException:   shopEx,
		BarberException: barberEx,
		Template:        tmpl,
		OnTimeOff:       onTimeOff,
	}, nil
}

func (r *Resolver) InvalidateShop(shopID uint) {
	if r.cache != nil {
		r.cache.DeletePrefix(shopPrefix(shopID))
	}
}

func (r *Resolver) InvalidateBarber(barberID uint) {
	if r.cache != nil {
		r.cache.DeletePrefix(barberPrefix(barberID))
	}
}

// entry wraps a cached pointer so a stored nil (nothing configured) is
// told apart from a miss.
type entry[T any] struct {
	v T
}

func cached[T any](r *Resolver, fresh bool, key string, load func() (T, error)) (T, error) {
	if r.cache != nil && !fresh {
		if v, ok := r.cache.Get(key); ok {
			if e, ok := v.(entry[T]); ok {
				return e.v, nil
			}
		}
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if r.cache != nil {
		r.cache.Set(key, entry[T]{v: v})
	}
	return v, nil
}

// ======================================================
// KEYS
// ======================================================

func shopPrefix(shopID uint) string {
	return fmt.Sprintf("shop:%d:", shopID)
}

func barberPrefix(barberID uint) string {
	return fmt.Sprintf("barber:%d:", barberID)
}

func shopHoursKey(shopID uint, weekday int) string {
	return fmt.Sprintf("%shours:%d", shopPrefix(shopID), weekday)
}

func workingHoursKey(barberID uint, weekday int) string {
	return fmt.Sprintf("%shours:%d", barberPrefix(barberID), weekday)
}

// Special dates live under the shop prefix so any special date write can
// drop them all at once.
func specialDateKey(shopID uint, barberID *uint, date time.Time) string {
	owner := "shop"
	if barberID != nil {
		owner = fmt.Sprintf("barber-%d", *barberID)
	}
	return fmt.Sprintf("%sspecial:%s:%s", shopPrefix(shopID), owner, date.Format("2006-01-02"))
}
