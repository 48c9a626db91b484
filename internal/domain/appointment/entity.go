package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, actorID *uint, reason string, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.CancelledBy = actorID
	ap.CancellationReason = reason
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Transition applies any allowed status change and stamps the matching
// timestamp.
func Transition(ap *models.Appointment, to Status, actorID *uint, notes string, now time.Time) error {
	switch to {
	case StatusCancelled:
		return Cancel(ap, actorID, notes, now)
	case StatusCompleted:
		if err := Complete(ap, now); err != nil {
			return err
		}
	default:
		if err := CanTransition(Status(ap.Status), to); err != nil {
			return err
		}
		ap.Status = string(to)
		if to == StatusConfirmed {
			ap.ConfirmedAt = &now
		}
	}

	if notes != "" {
		ap.StatusNotes = notes
	}
	return nil
}
