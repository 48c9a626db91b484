package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

func TestBookingRulesMinNotice(t *testing.T) {
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	r := BookingRules{MinNoticeHours: 2}

	assert.Equal(t, []string{"Minimum 2 hours notice required"}, r.Check(now, now.Add(time.Hour)))
	assert.Empty(t, r.Check(now, now.Add(2*time.Hour)))
	assert.Equal(t, []string{"Requested time is in the past"}, r.Check(now, now.Add(-time.Minute)))
}

func TestBookingRulesAdvanceAndCutoff(t *testing.T) {
	now := time.Date(2026, 6, 1, 17, 30, 0, 0, time.UTC)
	r := BookingRules{MaxAdvanceDays: 30, SameDayCutoff: "17:00"}

	assert.Len(t, r.Check(now, now.AddDate(0, 0, 31)), 1)
	assert.Empty(t, r.Check(now, now.AddDate(0, 0, 30)))
	assert.Equal(t, []string{"Same-day bookings close at 17:00"}, r.Check(now, now.Add(time.Hour)))
}

func TestSuggestFromNearestFirst(t *testing.T) {
	slots := []schedule.Slot{
		{Start: "09:00", End: "09:30", StartMinute: 540, Available: true},
		{Start: "09:30", End: "10:00", StartMinute: 570, Available: true},
		{Start: "10:00", End: "10:30", StartMinute: 600},
		{Start: "10:30", End: "11:00", StartMinute: 630, Available: true},
		{Start: "11:00", End: "11:30", StartMinute: 660, Available: true},
	}

	got := SuggestFrom(slots, 600)
	assert.Equal(t, []Suggestion{
		{Start: "10:30", End: "11:00"},
		{Start: "09:30", End: "10:00"},
		{Start: "11:00", End: "11:30"},
	}, got)

	assert.Empty(t, SuggestFrom(nil, 600))
}
