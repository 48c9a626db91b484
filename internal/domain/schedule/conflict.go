package schedule

// Check is the verdict for one requested interval.
type Check struct {
	Available bool   `json:"available"`
	Reason    Reason `json:"reason,omitempty"`
	Message   string `json:"message,omitempty"`
}

type Violation struct {
	Reason  Reason `json:"reason"`
	Message string `json:"message"`
}

// CheckInterval stops at the first failing rule. The verdict agrees with
// GenerateSlots for any interval that matches a generated slot.
func CheckInterval(hours EffectiveHours, occ Occupancy, iv Interval) Check {
	if v := CollectViolations(hours, occ, iv); len(v) > 0 {
		return Check{Reason: v[0].Reason, Message: v[0].Message}
	}
	return Check{Available: true}
}

// CollectViolations reports every rule the interval breaks, in check order:
// day closed, outside shop hours, outside barber hours, schedule break,
// existing appointment, ad-hoc break.
func CollectViolations(hours EffectiveHours, occ Occupancy, iv Interval) []Violation {
	var out []Violation
	add := func(r Reason, msg string) {
		out = append(out, Violation{Reason: r, Message: msg})
	}

	if iv.Start >= iv.End {
		add(ReasonOutsideHours, "Requested interval is empty")
		return out
	}

	if !hours.IsWorking {
		add(hours.Reason, dayMessage(hours.Reason))
	} else {
		shop := Interval{Start: hours.ShopOpen, End: hours.ShopClose}
		switch {
		case hours.HasShopBounds && !iv.Within(shop):
			add(ReasonClosed, timeMessage(ReasonClosed))
		case !iv.Within(hours.Window()):
			add(ReasonOutsideHours, timeMessage(ReasonOutsideHours))
		}
		if overlapsAny(iv, hours.Breaks) {
			add(ReasonBreak, timeMessage(ReasonBreak))
		}
	}

	if overlapsAny(iv, occ.Appointments) {
		add(ReasonAppointment, timeMessage(ReasonAppointment))
	}
	if hours.IsWorking && overlapsAny(iv, occ.Breaks) && !overlapsAny(iv, hours.Breaks) {
		add(ReasonBreak, timeMessage(ReasonBreak))
	}
	return out
}
