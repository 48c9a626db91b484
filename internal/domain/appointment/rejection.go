package appointment

import (
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

const MaxSuggestions = 3

// Suggestion is an alternative start on the requested day.
type Suggestion struct {
	BarberID uint   `json:"barber_id,omitempty"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// Rejection is returned when a booking request breaks schedule or business
// rules. Every violation found is listed, not only the first.
type Rejection struct {
	Kind        httperr.Kind         `json:"kind"`
	Violations  []schedule.Violation `json:"violations"`
	Suggestions []Suggestion         `json:"suggestions"`
}

func (r *Rejection) Error() string {
	msgs := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		msgs = append(msgs, v.Message)
	}
	return string(r.Kind) + ": " + strings.Join(msgs, "; ")
}

func (r *Rejection) Messages() []string {
	out := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v.Message)
	}
	return out
}

// SuggestFrom picks up to MaxSuggestions available slots, nearest to the
// requested start first.
func SuggestFrom(slots []schedule.Slot, requested int) []Suggestion {
	var after, before []Suggestion
	for _, s := range slots {
		if !s.Available {
			continue
		}
		sg := Suggestion{Start: s.Start, End: s.End}
		if s.StartMinute >= requested {
			after = append(after, sg)
		} else {
			before = append([]Suggestion{sg}, before...)
		}
	}

	out := make([]Suggestion, 0, MaxSuggestions)
	for len(out) < MaxSuggestions && (len(after) > 0 || len(before) > 0) {
		if len(after) > 0 {
			out = append(out, after[0])
			after = after[1:]
		}
		if len(out) < MaxSuggestions && len(before) > 0 {
			out = append(out, before[0])
			before = before[1:]
		}
	}
	return out
}

// ReasonBusinessRule tags shop policy violations in a rejection.
const ReasonBusinessRule schedule.Reason = "business_rule"
