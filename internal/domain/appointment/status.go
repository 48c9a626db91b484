package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusArrived    Status = "arrived"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

var transitions = map[Status][]Status{
	StatusPending:    {StatusConfirmed, StatusArrived, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusArrived, StatusInProgress, StatusCancelled, StatusNoShow},
	StatusArrived:    {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// ActiveStatuses occupy the barber's time.
var ActiveStatuses = []string{
	string(StatusPending),
	string(StatusConfirmed),
	string(StatusArrived),
	string(StatusInProgress),
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusArrived, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

func (s Status) Active() bool {
	return s.Valid() && !s.Terminal()
}

// FreesSlot is true for transitions that give the time back to the barber.
func (s Status) FreesSlot() bool {
	return s == StatusCancelled || s == StatusNoShow
}

// ===============================
// Validations
// ===============================

func CanTransition(from, to Status) error {
	if !to.Valid() {
		return httperr.Validation("invalid_status", fmt.Sprintf("unknown status %q", to))
	}
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.InvalidState(
		"invalid_state",
		fmt.Sprintf("cannot move appointment from %s to %s", from, to),
	)
}

func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}

func CanComplete(current Status) error {
	return CanTransition(current, StatusCompleted)
}

func InitialStatus() Status {
	return StatusPending
}
