package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]Status{
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusNoShow},
		{StatusConfirmed, StatusArrived},
		{StatusArrived, StatusInProgress},
		{StatusInProgress, StatusCompleted},
		{StatusInProgress, StatusCancelled},
	}
	for _, tr := range allowed {
		assert.NoError(t, CanTransition(tr[0], tr[1]), "%s -> %s", tr[0], tr[1])
	}

	denied := [][2]Status{
		{StatusPending, StatusCompleted},
		{StatusCompleted, StatusCancelled},
		{StatusCancelled, StatusConfirmed},
		{StatusNoShow, StatusArrived},
		{StatusArrived, StatusConfirmed},
	}
	for _, tr := range denied {
		err := CanTransition(tr[0], tr[1])
		require.Error(t, err, "%s -> %s", tr[0], tr[1])
		assert.True(t, httperr.IsKind(err, httperr.KindInvalidState))
	}

	err := CanTransition(StatusPending, Status("lost"))
	assert.True(t, httperr.IsKind(err, httperr.KindValidation))
}

func TestTerminalStatuses(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.True(t, s.Terminal())
		assert.False(t, s.Active())
	}
	for _, s := range ActiveStatuses {
		assert.True(t, Status(s).Active())
	}
}

func TestCancelStampsFields(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	actor := uint(7)
	ap := &models.Appointment{Status: string(StatusConfirmed)}

	require.NoError(t, Cancel(ap, &actor, "client asked", now))
	assert.Equal(t, string(StatusCancelled), ap.Status)
	assert.Equal(t, &now, ap.CancelledAt)
	assert.Equal(t, &actor, ap.CancelledBy)
	assert.Equal(t, "client asked", ap.CancellationReason)

	assert.Error(t, Cancel(ap, &actor, "again", now))
}

func TestTransitionConfirmAndComplete(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusPending)}

	require.NoError(t, Transition(ap, StatusConfirmed, nil, "", now))
	assert.NotNil(t, ap.ConfirmedAt)

	require.NoError(t, Transition(ap, StatusInProgress, nil, "chair 2", now))
	assert.Equal(t, "chair 2", ap.StatusNotes)

	require.NoError(t, Transition(ap, StatusCompleted, nil, "", now))
	assert.NotNil(t, ap.CompletedAt)
}
