package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const MinutesPerDay = 24 * 60

// Interval is a half-open [Start, End) range in minutes since local midnight.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (i Interval) Overlaps(o Interval) bool {
	return IntervalsOverlap(i.Start, i.End, o.Start, o.End)
}

func (i Interval) Within(outer Interval) bool {
	return i.Start >= outer.Start && i.End <= outer.End
}

func (i Interval) Duration() int {
	return i.End - i.Start
}

// IntervalsOverlap treats touching endpoints as free: 09:00-09:30 and
// 09:30-10:00 do not overlap.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

func overlapsAny(iv Interval, set []Interval) bool {
	for _, o := range set {
		if iv.Overlaps(o) {
			return true
		}
	}
	return false
}

// TimeToMinutes parses "HH:MM" or "HH:MM:SS". Seconds are discarded.
// "24:00" is accepted as end of day.
func TimeToMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid time %q", s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		if len(p) != 2 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid time %q", s)
		}
		nums[i] = n
	}

	h, m := nums[0], nums[1]
	if m > 59 || (len(nums) == 3 && nums[2] > 59) {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	if h == 24 && m == 0 {
		return MinutesPerDay, nil
	}
	if h > 23 {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	return h*60 + m, nil
}

func MinutesToTime(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseInterval reads a pair of wall-clock times and rejects empty or
// inverted ranges.
func ParseInterval(start, end string) (Interval, error) {
	s, err := TimeToMinutes(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := TimeToMinutes(end)
	if err != nil {
		return Interval{}, err
	}
	if s >= e {
		return Interval{}, fmt.Errorf("start %s must be before end %s", start, end)
	}
	return Interval{Start: s, End: e}, nil
}

// ======================================================
// CALENDAR HELPERS
// ======================================================

// DayStart is local midnight of t's calendar date in loc.
func DayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// CivilDate is the storage form of a calendar date: UTC midnight.
func CivilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MinuteOfDay is the wall-clock minute of t on dayStart's date, clamped
// to [0, MinutesPerDay] for instants on other dates.
func MinuteOfDay(dayStart, t time.Time) int {
	t = t.In(dayStart.Location())
	if t.Before(dayStart) {
		return 0
	}
	if !t.Before(dayStart.AddDate(0, 0, 1)) {
		return MinutesPerDay
	}
	return t.Hour()*60 + t.Minute()
}

// At returns the instant minute m past dayStart, on the wall clock.
func At(dayStart time.Time, m int) time.Time {
	return time.Date(dayStart.Year(), dayStart.Month(), dayStart.Day(), m/60, m%60, 0, 0, dayStart.Location())
}
