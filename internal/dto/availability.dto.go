package dto

import "github.com/BruksfildServices01/barber-booking/internal/domain/schedule"

type HoursWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DayAvailability struct {
	Date         string          `json:"date"`
	BarberID     uint            `json:"barber_id"`
	IsAvailable  bool            `json:"is_available"`
	Reason       schedule.Reason `json:"reason,omitempty"`
	Message      string          `json:"message,omitempty"`
	Slots        []schedule.Slot `json:"slots"`
	WorkingHours *HoursWindow    `json:"working_hours,omitempty"`
	BreakHours   []HoursWindow   `json:"break_hours,omitempty"`
}

func Windows(ivs []schedule.Interval) []HoursWindow {
	if len(ivs) == 0 {
		return nil
	}
	out := make([]HoursWindow, 0, len(ivs))
	for _, iv := range ivs {
		out = append(out, HoursWindow{
			Start: schedule.MinutesToTime(iv.Start),
			End:   schedule.MinutesToTime(iv.End),
		})
	}
	return out
}
