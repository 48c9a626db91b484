package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func shop(open, close string) *models.ShopHours {
	return &models.ShopHours{OpenTime: open, CloseTime: close}
}

func template(start, end, bs, be string) *models.WorkingHours {
	return &models.WorkingHours{IsWorking: true, StartTime: start, EndTime: end, BreakStart: bs, BreakEnd: be}
}

func TestResolveTemplateWithBreak(t *testing.T) {
	h, err := Resolve(Sources{
		ShopHours: shop("09:00", "18:00"),
		Template:  template("09:00", "17:00", "13:00", "14:00"),
	})
	require.NoError(t, err)

	assert.True(t, h.IsWorking)
	assert.Equal(t, 540, h.Open)
	assert.Equal(t, 1020, h.Close)
	assert.Equal(t, []Interval{{Start: 780, End: 840}}, h.Breaks)
}

func TestResolveClipsToShopHours(t *testing.T) {
	h, err := Resolve(Sources{
		ShopHours: shop("10:00", "16:00"),
		Template:  template("08:00", "18:00", "", ""),
	})
	require.NoError(t, err)

	assert.Equal(t, 600, h.Open)
	assert.Equal(t, 960, h.Close)
}

func TestResolveShopClosedDominates(t *testing.T) {
	h, err := Resolve(Sources{
		ShopHours:       &models.ShopHours{IsClosed: true},
		BarberException: &models.SpecialDate{OpenTime: "10:00", CloseTime: "12:00"},
		Template:        template("09:00", "17:00", "", ""),
	})
	require.NoError(t, err)

	assert.False(t, h.IsWorking)
	assert.Equal(t, ReasonClosed, h.Reason)
}

func TestResolveBarberHolidayShortCircuits(t *testing.T) {
	h, err := Resolve(Sources{
		ShopHours:       shop("09:00", "18:00"),
		BarberException: &models.SpecialDate{IsHoliday: true},
		Template:        template("09:00", "17:00", "", ""),
	})
	require.NoError(t, err)

	assert.False(t, h.IsWorking)
	assert.Equal(t, ReasonClosed, h.Reason)
	assert.Equal(t, 540, h.Open, "nominal window follows the template")
	assert.Equal(t, 1020, h.Close)
}

func TestResolveBarberCustomHoursBeatTimeOff(t *testing.T) {
	h, err := Resolve(Sources{
		ShopHours: shop("09:00", "18:00"),
		BarberException: &models.SpecialDate{
			OpenTime:  "11:00",
			CloseTime: "15:00",
			Breaks:    []models.SpecialDateBreak{{StartTime: "12:00", EndTime: "12:30"}},
		},
		Template:  template("09:00", "17:00", "13:00", "14:00"),
		OnTimeOff: true,
	})
	require.NoError(t, err)

	assert.True(t, h.IsWorking)
	assert.Equal(t, Interval{Start: 660, End: 900}, h.Window())
	assert.Equal(t, []Interval{{Start: 720, End: 750}}, h.Breaks)
}

func TestResolveTimeOff(t *testing.T) {
	h, err := Resolve(Sources{
		ShopHours: shop("09:00", "18:00"),
		Template:  template("09:00", "17:00", "", ""),
		OnTimeOff: true,
	})
	require.NoError(t, err)

	assert.False(t, h.IsWorking)
	assert.Equal(t, ReasonTimeOff, h.Reason)
}

func TestResolveNoTemplate(t *testing.T) {
	h, err := Resolve(Sources{})
	require.NoError(t, err)

	assert.False(t, h.IsWorking)
	assert.Equal(t, ReasonOutsideHours, h.Reason)
	assert.Equal(t, DefaultOpenMinute, h.Open)
	assert.Equal(t, DefaultCloseMinute, h.Close)
}

func TestResolveShopSpecialDateCustomHours(t *testing.T) {
	h, err := Resolve(Sources{
		ShopHours:     shop("09:00", "18:00"),
		ShopException: &models.SpecialDate{OpenTime: "12:00", CloseTime: "16:00"},
		Template:      template("09:00", "17:00", "", ""),
	})
	require.NoError(t, err)

	assert.True(t, h.IsWorking)
	assert.Equal(t, Interval{Start: 720, End: 960}, h.Window())
}

func TestValidateWorkingHours(t *testing.T) {
	wh := template("09:00", "17:00", "16:30", "17:30")
	assert.Error(t, ValidateWorkingHours(wh))

	wh = template("09:00", "17:00", "13:00", "")
	assert.Error(t, ValidateWorkingHours(wh))

	wh = &models.WorkingHours{Weekday: 2, IsWorking: false, StartTime: "09:00"}
	require.NoError(t, ValidateWorkingHours(wh))
	assert.Empty(t, wh.StartTime)
}
