package schedule

import (
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Nominal window used to lay out slots when neither the barber nor the shop
// has hours for the day.
const (
	DefaultOpenMinute  = 9 * 60
	DefaultCloseMinute = 18 * 60
)

// Sources holds every configuration layer that can shape one barber-day.
// Nil pointers mean "not configured".
type Sources struct {
	ShopHours       *models.ShopHours
	ShopException   *models.SpecialDate
	BarberException *models.SpecialDate
	Template        *models.WorkingHours
	OnTimeOff       bool
}

// EffectiveHours is the resolved schedule for one barber on one date.
// When IsWorking is false, Open and Close still carry a nominal window so
// callers can lay out slots tagged with Reason.
type EffectiveHours struct {
	IsWorking bool
	Open      int
	Close     int
	Breaks    []Interval
	Reason    Reason

	HasShopBounds bool
	ShopOpen      int
	ShopClose     int
}

func (h EffectiveHours) Window() Interval {
	return Interval{Start: h.Open, End: h.Close}
}

func (h EffectiveHours) Message() string {
	if h.IsWorking {
		return ""
	}
	return dayMessage(h.Reason)
}

// Resolve applies the precedence: shop closure, barber exception, approved
// time off, weekly template. A barber is never open outside shop hours.
func Resolve(src Sources) (EffectiveHours, error) {
	out := EffectiveHours{Open: DefaultOpenMinute, Close: DefaultCloseMinute}

	shopWin, shopClosed, shopBreaks, hasShop, err := shopDay(src)
	if err != nil {
		return EffectiveHours{}, err
	}
	if hasShop {
		out.HasShopBounds = true
		out.ShopOpen, out.ShopClose = shopWin.Start, shopWin.End
		if !shopClosed {
			out.Open, out.Close = shopWin.Start, shopWin.End
		}
	}

	if t := src.Template; t != nil && t.IsWorking {
		if win, err := ParseInterval(t.StartTime, t.EndTime); err == nil {
			out.Open, out.Close = win.Start, win.End
		}
	}

	if shopClosed {
		return closedDay(out, ReasonClosed), nil
	}

	if ex := src.BarberException; ex != nil {
		if ex.IsHoliday {
			return closedDay(out, ReasonClosed), nil
		}
		win, err := ParseInterval(ex.OpenTime, ex.CloseTime)
		if err != nil {
			return EffectiveHours{}, fmt.Errorf("barber special date %d: %w", ex.ID, err)
		}
		breaks, err := exceptionBreaks(ex)
		if err != nil {
			return EffectiveHours{}, err
		}
		return openDay(out, win, append(shopBreaks, breaks...)), nil
	}

	if src.OnTimeOff {
		return closedDay(out, ReasonTimeOff), nil
	}

	t := src.Template
	if t == nil || !t.IsWorking {
		return closedDay(out, ReasonOutsideHours), nil
	}

	win, err := ParseInterval(t.StartTime, t.EndTime)
	if err != nil {
		return EffectiveHours{}, fmt.Errorf("working hours weekday %d: %w", t.Weekday, err)
	}
	breaks := shopBreaks
	if t.BreakStart != "" && t.BreakEnd != "" {
		br, err := ParseInterval(t.BreakStart, t.BreakEnd)
		if err != nil {
			return EffectiveHours{}, fmt.Errorf("working hours break weekday %d: %w", t.Weekday, err)
		}
		breaks = append(breaks, br)
	}
	return openDay(out, win, breaks), nil
}

func openDay(out EffectiveHours, win Interval, breaks []Interval) EffectiveHours {
	if out.HasShopBounds {
		win.Start = max(win.Start, out.ShopOpen)
		win.End = min(win.End, out.ShopClose)
		if win.Start >= win.End {
			return closedDay(out, ReasonClosed)
		}
	}
	out.IsWorking = true
	out.Open, out.Close = win.Start, win.End
	out.Breaks = breaks
	out.Reason = ""
	return out
}

func closedDay(out EffectiveHours, r Reason) EffectiveHours {
	out.IsWorking = false
	out.Reason = r
	out.Breaks = nil
	return out
}

func shopDay(src Sources) (win Interval, closed bool, breaks []Interval, ok bool, err error) {
	if ex := src.ShopException; ex != nil {
		if ex.IsHoliday {
			if src.ShopHours != nil && !src.ShopHours.IsClosed {
				win, _ = ParseInterval(src.ShopHours.OpenTime, src.ShopHours.CloseTime)
			}
			return win, true, nil, true, nil
		}
		win, err = ParseInterval(ex.OpenTime, ex.CloseTime)
		if err != nil {
			return Interval{}, false, nil, false, fmt.Errorf("shop special date %d: %w", ex.ID, err)
		}
		breaks, err = exceptionBreaks(ex)
		return win, false, breaks, true, err
	}

	sh := src.ShopHours
	if sh == nil {
		return Interval{}, false, nil, false, nil
	}
	if sh.IsClosed {
		return Interval{}, true, nil, true, nil
	}
	win, err = ParseInterval(sh.OpenTime, sh.CloseTime)
	if err != nil {
		return Interval{}, false, nil, false, fmt.Errorf("shop hours weekday %d: %w", sh.Weekday, err)
	}
	return win, false, nil, true, nil
}

func exceptionBreaks(ex *models.SpecialDate) ([]Interval, error) {
	out := make([]Interval, 0, len(ex.Breaks))
	for _, b := range ex.Breaks {
		iv, err := ParseInterval(b.StartTime, b.EndTime)
		if err != nil {
			return nil, fmt.Errorf("special date %d break: %w", ex.ID, err)
		}
		out = append(out, iv)
	}
	return out, nil
}
