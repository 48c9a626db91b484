package schedule

import (
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ValidateWorkingHours enforces the template invariants and clears the time
// fields of a non-working day.
func ValidateWorkingHours(wh *models.WorkingHours) error {
	if wh.Weekday < 0 || wh.Weekday > 6 {
		return fmt.Errorf("invalid weekday %d", wh.Weekday)
	}
	if !wh.IsWorking {
		wh.StartTime, wh.EndTime, wh.BreakStart, wh.BreakEnd = "", "", "", ""
		return nil
	}

	win, err := ParseInterval(wh.StartTime, wh.EndTime)
	if err != nil {
		return err
	}

	if (wh.BreakStart == "") != (wh.BreakEnd == "") {
		return fmt.Errorf("break_start and break_end must be set together")
	}
	if wh.BreakStart == "" {
		return nil
	}
	br, err := ParseInterval(wh.BreakStart, wh.BreakEnd)
	if err != nil {
		return err
	}
	if !br.Within(win) {
		return fmt.Errorf("break %s-%s is outside working hours", wh.BreakStart, wh.BreakEnd)
	}
	return nil
}

func ValidateShopHours(sh *models.ShopHours) error {
	if sh.Weekday < 0 || sh.Weekday > 6 {
		return fmt.Errorf("invalid weekday %d", sh.Weekday)
	}
	if sh.IsClosed {
		sh.OpenTime, sh.CloseTime = "", ""
		return nil
	}
	_, err := ParseInterval(sh.OpenTime, sh.CloseTime)
	return err
}

func ValidateSpecialDate(sd *models.SpecialDate) error {
	if sd.IsHoliday {
		sd.OpenTime, sd.CloseTime = "", ""
		sd.Breaks = nil
		return nil
	}
	win, err := ParseInterval(sd.OpenTime, sd.CloseTime)
	if err != nil {
		return err
	}
	for _, b := range sd.Breaks {
		br, err := ParseInterval(b.StartTime, b.EndTime)
		if err != nil {
			return err
		}
		if !br.Within(win) {
			return fmt.Errorf("break %s-%s is outside custom hours", b.StartTime, b.EndTime)
		}
	}
	return nil
}
