package schedule

const DefaultSlotIntervalMinutes = 15

type Slot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
	Reason    Reason `json:"reason,omitempty"`

	StartMinute int `json:"-"`
	EndMinute   int `json:"-"`
}

// Occupancy is everything already placed on a barber-day.
type Occupancy struct {
	Appointments []Interval
	Breaks       []Interval
}

// GenerateSlots lays out candidate starts every interval minutes from the
// opening time while the whole service still fits before closing. A slot
// overlapping a break is tagged "break" even if an appointment also covers it.
func GenerateSlots(hours EffectiveHours, occ Occupancy, duration, interval int) []Slot {
	if duration <= 0 {
		return nil
	}
	if interval <= 0 {
		interval = DefaultSlotIntervalMinutes
	}

	slots := make([]Slot, 0, (hours.Close-hours.Open)/interval+1)
	for cur := hours.Open; cur+duration <= hours.Close; cur += interval {
		iv := Interval{Start: cur, End: cur + duration}
		s := Slot{
			Start:       MinutesToTime(iv.Start),
			End:         MinutesToTime(iv.End),
			Available:   true,
			StartMinute: iv.Start,
			EndMinute:   iv.End,
		}

		switch {
		case !hours.IsWorking:
			s.Reason = hours.Reason
		case overlapsAny(iv, hours.Breaks), overlapsAny(iv, occ.Breaks):
			s.Reason = ReasonBreak
		case overlapsAny(iv, occ.Appointments):
			s.Reason = ReasonAppointment
		}
		s.Available = s.Reason == ""
		slots = append(slots, s)
	}
	return slots
}

func CountAvailable(slots []Slot) int {
	n := 0
	for _, s := range slots {
		if s.Available {
			n++
		}
	}
	return n
}
