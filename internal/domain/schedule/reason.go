package schedule

// Reason explains why a slot or a requested interval is unavailable.
type Reason string

const (
	ReasonAppointment  Reason = "appointment"
	ReasonBreak        Reason = "break"
	ReasonTimeOff      Reason = "time_off"
	ReasonOutsideHours Reason = "outside_hours"
	ReasonClosed       Reason = "closed"
)

func dayMessage(r Reason) string {
	switch r {
	case ReasonClosed:
		return "Barbershop is closed on this date"
	case ReasonTimeOff:
		return "Barber is on approved time off"
	default:
		return "Barber is not working on this date"
	}
}

func timeMessage(r Reason) string {
	switch r {
	case ReasonClosed:
		return "Barbershop is closed at the requested time"
	case ReasonOutsideHours:
		return "Requested time is outside working hours"
	case ReasonBreak:
		return "Requested time overlaps a break"
	case ReasonAppointment:
		return "Time slot occupied"
	default:
		return dayMessage(r)
	}
}
