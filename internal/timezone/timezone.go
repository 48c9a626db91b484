package timezone

import "time"

var DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ParseDate reads a YYYY-MM-DD date as midnight in the shop timezone.
func ParseDate(tz, s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, Location(tz))
}

func ParseDateTime(tz, date, hm string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hm, Location(tz))
}
