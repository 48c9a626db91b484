package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// BookingRules are the shop-level policies checked after the schedule.
type BookingRules struct {
	MinNoticeHours int
	MaxAdvanceDays int
	SameDayCutoff  string
}

func RulesFor(shop *models.Barbershop) BookingRules {
	return BookingRules{
		MinNoticeHours: shop.MinNoticeHours,
		MaxAdvanceDays: shop.MaxAdvanceDays,
		SameDayCutoff:  shop.SameDayCutoff,
	}
}

// Check returns one message per rule the requested start breaks. now and
// start must be in the shop timezone.
func (r BookingRules) Check(now, start time.Time) []string {
	var out []string

	if start.Before(now) {
		out = append(out, "Requested time is in the past")
	} else if r.MinNoticeHours > 0 && start.Sub(now) < time.Duration(r.MinNoticeHours)*time.Hour {
		out = append(out, fmt.Sprintf("Minimum %d hours notice required", r.MinNoticeHours))
	}

	today := schedule.DayStart(now, now.Location())
	day := schedule.DayStart(start, now.Location())

	if r.MaxAdvanceDays > 0 && day.After(today.AddDate(0, 0, r.MaxAdvanceDays)) {
		out = append(out, fmt.Sprintf("Bookings can be made at most %d days in advance", r.MaxAdvanceDays))
	}

	if r.SameDayCutoff != "" && day.Equal(today) {
		if cutoff, err := schedule.TimeToMinutes(r.SameDayCutoff); err == nil {
			if schedule.MinuteOfDay(today, now) >= cutoff {
				out = append(out, fmt.Sprintf("Same-day bookings close at %s", r.SameDayCutoff))
			}
		}
	}

	return out
}
